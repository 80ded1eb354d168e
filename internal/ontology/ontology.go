// Package ontology loads Gene Ontology term definitions from either the OBO
// text format or the OBO-graph JSON export into a term-ID lookup table.
package ontology

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Term is the metadata kept for a single GO term. Definition is a string for
// OBO text input and a nested object for OBO-graph input.
type Term struct {
	ID         string `json:"id"`
	URL        string `json:"url,omitempty"`
	Name       string `json:"name,omitempty"`
	Type       string `json:"type,omitempty"`
	Definition any    `json:"definition,omitempty"`
	Obsolete   bool   `json:"-"`
}

// Table maps a GO term ID to its metadata. Alternate IDs are extra keys
// pointing at the same *Term, so obsolete or merged IDs resolve to the
// current record.
type Table map[string]*Term

// LoadFile parses the ontology file at path, dispatching on its extension:
// .obo for the text format, .json for the OBO-graph export.
func LoadFile(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch ext := filepath.Ext(path); ext {
	case ".obo":
		return ParseOBO(f)
	case ".json":
		return ParseGraph(f)
	default:
		return nil, fmt.Errorf("ontology: unsupported file extension %q", ext)
	}
}

// goID rewrites an underscore-separated identifier (GO_0000001) to the
// canonical colon form (GO:0000001).
func goID(id string) string {
	return strings.Replace(id, "_", ":", 1)
}
