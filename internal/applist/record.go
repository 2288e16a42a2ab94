package applist

import (
	"fmt"
	"maps"
	"strings"
)

const (
	// NameKey holds the title used for lookup.
	NameKey = "name"
	// ImageKey receives the resolved cover URL.
	ImageKey = "image-path"
)

// Record is one application entry. Unknown keys are preserved.
type Record map[string]any

// Name returns the record's title, or "" when absent.
func (r Record) Name() string {
	switch v := r[NameKey].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// ImagePath returns the current cover reference, or "".
func (r Record) ImagePath() string {
	if v, ok := r[ImageKey].(string); ok {
		return v
	}
	return ""
}

// WithImagePath returns a copy of the record with image-path set. The
// receiver is never modified.
func (r Record) WithImagePath(url string) Record {
	out := make(Record, len(r)+1)
	maps.Copy(out, r)
	out[ImageKey] = url
	return out
}

// Clone returns a shallow copy.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	return maps.Clone(r)
}

// HasName reports whether the record carries a non-blank title.
func (r Record) HasName() bool {
	return strings.TrimSpace(r.Name()) != ""
}
