package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for REPL output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL drives. App satisfies it.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Profiles(ctx context.Context) error
	AddProfile(ctx context.Context) error
	Report(ctx context.Context) error
	Recent(ctx context.Context) error
	Sync(ctx context.Context) error
}

// runREPL reads commands from reader and dispatches them to a until the
// user types exit or quit, input ends or ctx is done. Errors returned by
// commands are printed and the loop continues.
//
//	Locked:
//	  - help, register, login, exit | quit
//
//	Unlocked:
//	  - help, profiles, addprofile, report, recent, sync, login, exit | quit
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}

		printlnFn(fmt.Sprintf("simpletemp (%s) > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		var cmdErr error
		switch cmd := strings.ToLower(parts[0]); cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: profiles, addprofile, report, recent, sync, login, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			cmdErr = a.Register(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "profiles":
			cmdErr = a.Profiles(ctx)

		case "addprofile":
			cmdErr = a.AddProfile(ctx)

		case "report":
			cmdErr = a.Report(ctx)

		case "recent":
			cmdErr = a.Recent(ctx)

		case "sync":
			cmdErr = a.Sync(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}
	}
}
