package client

import (
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/simpletemp/internal/client/docstore"
	"google.golang.org/protobuf/types/known/structpb"
)

// EncodeDocs turns documents into the wire list. Props are normalized
// through JSON first so that typed slices and integers become values
// structpb accepts.
func EncodeDocs(docs []docstore.Document) ([]any, error) {
	out := make([]any, 0, len(docs))
	for _, d := range docs {
		props, err := normalize(d.Props)
		if err != nil {
			return nil, fmt.Errorf("document[%s]: %w", d.ID, err)
		}
		out = append(out, map[string]any{
			"id":    d.ID,
			"seq":   float64(d.Seq),
			"props": props,
		})
	}
	return out, nil
}

// DecodeDocs is the inverse of EncodeDocs.
func DecodeDocs(v *structpb.Value) ([]docstore.Document, error) {
	if v == nil {
		return nil, nil
	}
	list := v.GetListValue()
	if list == nil {
		return nil, fmt.Errorf("%w: docs is not a list", ErrBadResponse)
	}

	docs := make([]docstore.Document, 0, len(list.Values))
	for i, item := range list.Values {
		s := item.GetStructValue()
		if s == nil {
			return nil, fmt.Errorf("%w: docs[%d] is not an object", ErrBadResponse, i)
		}
		m := s.AsMap()

		id, _ := m["id"].(string)
		if id == "" {
			return nil, fmt.Errorf("%w: docs[%d] has no id", ErrBadResponse, i)
		}
		seq, _ := m["seq"].(float64)
		props, _ := m["props"].(map[string]any)
		if props == nil {
			props = map[string]any{}
		}
		docs = append(docs, docstore.Document{ID: id, Seq: int64(seq), Props: props})
	}
	return docs, nil
}

func normalize(props map[string]any) (map[string]any, error) {
	b, err := json.Marshal(props)
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}
