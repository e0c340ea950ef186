// Package models defines the client-side records: the per-device App
// identity, the Person profiles kept on the device and the symptom Reports.
package models
