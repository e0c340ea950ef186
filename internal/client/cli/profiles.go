package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/simpletemp/internal/client/models"
)

var errNoProfiles = errors.New("no profiles yet, use 'addprofile'")

// Profiles lists the saved profiles.
func (a *App) Profiles(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	list, err := a.profiles.List(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No profiles")
		return nil
	}
	for i, p := range list {
		fmt.Fprintln(a.out, formatProfile(i+1, p))
	}
	return nil
}

// AddProfile asks for the profile fields and saves a new profile.
func (a *App) AddProfile(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	p := a.profiles.Create()

	name, err := getSimpleText(a.reader, "Name", a.out)
	if err != nil {
		return err
	}
	if name == "" {
		return errEmptyAnswer
	}
	p.Name = name

	year, err := getSimpleText(a.reader, "Birth year (optional)", a.out)
	if err != nil {
		return err
	}
	if p.BirthYear, err = parseYear(year); err != nil {
		return err
	}

	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Street (optional)", &p.Street},
		{"City (optional)", &p.City},
		{"State (optional)", &p.State},
		{"Zip (optional)", &p.Zip},
	}
	for _, f := range fields {
		if *f.dst, err = getSimpleText(a.reader, f.prompt, a.out); err != nil {
			return err
		}
	}

	conditions, err := getSimpleText(a.reader, "Conditions, comma separated (HEART, RESP, DIABETES, DEPRESSION)", a.out)
	if err != nil {
		return err
	}
	if p.Conditions, err = models.ParseConditions(splitList(conditions)); err != nil {
		return err
	}

	if err := a.profiles.Save(ctx, p); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Profile saved:", p.ID)
	return nil
}

// selectProfile lists the profiles and asks for one by number.
func (a *App) selectProfile(ctx context.Context) (*models.Person, error) {
	list, err := a.profiles.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, errNoProfiles
	}
	for i, p := range list {
		fmt.Fprintln(a.out, formatProfile(i+1, p))
	}

	answer, err := getSimpleText(a.reader, "Profile number", a.out)
	if err != nil {
		return nil, err
	}
	n, err := strconv.Atoi(answer)
	if err != nil || n < 1 || n > len(list) {
		return nil, fmt.Errorf("no profile number %q", answer)
	}
	return &list[n-1], nil
}

func formatProfile(n int, p models.Person) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d. %s", n, p.Name)
	if p.BirthYear != 0 {
		fmt.Fprintf(&b, " (%d)", p.BirthYear)
	}
	if len(p.Conditions) > 0 {
		conds := make([]string, len(p.Conditions))
		for i, c := range p.Conditions {
			conds[i] = string(c)
		}
		fmt.Fprintf(&b, " [%s]", strings.Join(conds, ", "))
	}
	return b.String()
}
