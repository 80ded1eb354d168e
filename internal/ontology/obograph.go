package ontology

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"goannot/internal/norm"
)

type graphDoc struct {
	Graphs []struct {
		Nodes []graphNode `json:"nodes"`
	} `json:"graphs"`
}

type graphNode struct {
	ID   string         `json:"id"`
	Lbl  string         `json:"lbl"`
	Type string         `json:"type"`
	Meta map[string]any `json:"meta"`
}

// ParseGraph parses an OBO-graph JSON export from the given reader. Only the
// first graph is read, and only nodes whose URL tail carries the GO_ prefix
// are kept; their IDs are rewritten to the canonical colon form.
func ParseGraph(r io.Reader) (Table, error) {
	var doc graphDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("ontology: decoding graph: %w", err)
	}
	if len(doc.Graphs) == 0 {
		return nil, fmt.Errorf("ontology: document has no graphs")
	}

	table := make(Table, initialTermCapacity)
	for _, node := range doc.Graphs[0].Nodes {
		tail := node.ID
		if idx := strings.LastIndexByte(tail, '/'); idx >= 0 {
			tail = tail[idx+1:]
		}
		if !strings.HasPrefix(tail, "GO_") {
			continue
		}

		var def any
		if node.Meta != nil {
			def = norm.Compact(node.Meta["definition"])
		}
		id := goID(tail)
		table[id] = &Term{
			ID:         id,
			URL:        node.ID,
			Name:       node.Lbl,
			Type:       node.Type,
			Definition: def,
		}
	}
	return table, nil
}
