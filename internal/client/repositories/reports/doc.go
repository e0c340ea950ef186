// Package reports persists temperature/symptom reports as "report" documents.
//
// Reports carry only hashed app and profile ids. A report with a location is
// eligible for replication; see the sync package for the filter.
package reports
