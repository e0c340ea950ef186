// Package cli provides the interactive SimpleTemp command-line client.
//
// NewApp wires configuration, the local document store, the dispatch
// queues, the identity and report services and the replication transport
// into an App. App.Run shows the login prompt and then a REPL; App.Close
// waits for background work and releases the store.
//
// Commands:
//   - register / login: create or unlock the local identity
//   - profiles / addprofile: manage the people reports are recorded for
//   - report / recent: record a temperature and view the history
//   - sync: replicate located reports now
package cli
