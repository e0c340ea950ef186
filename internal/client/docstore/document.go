package docstore

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/simpletemp/internal/common"
)

// PropDocType is the property every document uses to declare its type.
const PropDocType = "document_type"

// Document is a schemaless record. Props holds JSON-compatible values:
// string, float64, bool, nil, []any and map[string]any. Numbers read back
// from a store are always float64.
type Document struct {
	ID    string
	Seq   int64
	Props map[string]any
}

// NewDocument returns an empty document of the given type. An empty id lets
// the store assign one on Save.
func NewDocument(id, docType string) *Document {
	return &Document{ID: id, Props: map[string]any{PropDocType: docType}}
}

// Type returns the declared document type, or "" if none.
func (d Document) Type() string {
	return d.String(PropDocType)
}

// Has reports whether prop is present, whatever its value.
func (d Document) Has(prop string) bool {
	_, ok := d.Props[prop]
	return ok
}

// String returns prop as a string, or "" if it is absent or not a string.
func (d Document) String(prop string) string {
	s, _ := d.Props[prop].(string)
	return s
}

// Float returns prop as a float64 and whether it was a number.
func (d Document) Float(prop string) (float64, bool) {
	switch v := d.Props[prop].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// Strings returns prop as a string slice; non-string elements are skipped.
func (d Document) Strings(prop string) []string {
	switch v := d.Props[prop].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// Set stores value under prop, removing prop when value is nil.
func (d *Document) Set(prop string, value any) {
	if d.Props == nil {
		d.Props = map[string]any{}
	}
	if value == nil {
		delete(d.Props, prop)
		return
	}
	d.Props[prop] = value
}

// Query selects documents of Type (all documents when empty) whose string
// properties equal the values in Equals. Results are ordered by Seq.
type Query struct {
	Type   string
	Equals map[string]string
}

// Store is the embedded document database.
type Store interface {
	// Get returns the document with id, or common.ErrNotFound.
	Get(ctx context.Context, id string) (*Document, error)

	// Save inserts or replaces doc. An empty ID is filled with a new uuid.
	// Every save assigns doc a new Seq greater than any before it.
	Save(ctx context.Context, doc *Document) error

	// Query returns the documents matching q ordered by Seq.
	Query(ctx context.Context, q Query) ([]*Document, error)

	// Changes returns up to limit documents with Seq > since, ordered by Seq.
	// limit <= 0 means no limit.
	Changes(ctx context.Context, since int64, limit int) ([]*Document, error)

	Close() error
}

func validProp(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty property name", common.ErrInvalidInput)
	}
	for _, c := range name {
		if !(c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9') {
			return fmt.Errorf("%w: property name %q", common.ErrInvalidInput, name)
		}
	}
	return nil
}

func storageErr(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{common.ErrStorage}, args...)...)
}
