package sync

import (
	"github.com/dmitrijs2005/simpletemp/internal/client/docstore"
	"github.com/dmitrijs2005/simpletemp/internal/client/repositories/reports"
)

// Special properties a peer may set on replicated documents.
const (
	PropDeleted = "_deleted"
	PropRemoved = "_removed"
)

// DocumentFlags describes the replication state of a candidate document.
type DocumentFlags struct {
	Deleted       bool
	AccessRemoved bool
}

// Filter decides whether a document may cross in one direction. It must be
// pure; it can be called concurrently.
type Filter func(doc docstore.Document, flags DocumentFlags) bool

// ShouldSync reports whether doc is a report carrying a location.
func ShouldSync(doc docstore.Document) bool {
	return doc.Type() == reports.DocType && doc.Has(reports.PropLocation)
}

// ReportFilter is ShouldSync as a Filter. Flags do not matter.
func ReportFilter(doc docstore.Document, _ DocumentFlags) bool {
	return ShouldSync(doc)
}

// AllowAll lets every document through.
func AllowAll(docstore.Document, DocumentFlags) bool { return true }

func flagsOf(doc docstore.Document) DocumentFlags {
	deleted, _ := doc.Props[PropDeleted].(bool)
	removed, _ := doc.Props[PropRemoved].(bool)
	return DocumentFlags{Deleted: deleted, AccessRemoved: removed}
}
