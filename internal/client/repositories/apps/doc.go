// Package apps persists the single per-installation App identity record.
//
// The record is stored as one "app" document in the document store. Salt and
// IV are base64 encoded; the obfuscated id and password are already base64
// ciphertext. The record is cached after the first successful read.
//
// At most one record may exist. RegisterApp refuses a second one with
// common.ErrAlreadyRegistered. If the store nonetheless holds several,
// GetApp logs a warning, picks the oldest by store sequence and reports the
// anomaly as common.ErrIntegrity alongside the record.
package apps
