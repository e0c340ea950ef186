// Package profiles persists Person profiles as "profile" documents. Profiles
// are local only and never match the replication filter.
package profiles
