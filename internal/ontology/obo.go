package ontology

import (
	"bufio"
	"io"
	"strings"
)

const (
	initialTermCapacity = 50000 // GO has ~43k non-obsolete terms
	scannerBufferSize   = 1 << 20
)

// oboStanza accumulates one [Term] stanza until its terminating blank line.
type oboStanza struct {
	term   Term
	altIDs []string
}

// ParseOBO parses an OBO-format ontology from the given reader.
//
// The parser is a two-state loop: outside a stanza, lines are ignored until a
// [Term] marker; inside, each "key: value" line is folded into the current
// accumulator, and a blank line (or the next stanza marker, or EOF) commits
// the record. Every alt_id becomes an additional table key aliasing the same
// record.
func ParseOBO(r io.Reader) (Table, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, scannerBufferSize), scannerBufferSize)

	table := make(Table, initialTermCapacity)
	var cur *oboStanza // nil while outside a [Term] stanza

	commit := func() {
		if cur == nil {
			return
		}
		if cur.term.ID != "" {
			t := &cur.term
			table[t.ID] = t
			for _, alt := range cur.altIDs {
				table[alt] = t
			}
		}
		cur = nil
	}

	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "":
			commit()
		case line == "[Term]":
			commit()
			cur = &oboStanza{}
		case strings.HasPrefix(line, "["):
			// Some other stanza type, e.g. [Typedef]
			commit()
		case cur != nil:
			parseTermLine(cur, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	commit() // stanza not followed by a blank line before EOF

	return table, nil
}

func parseTermLine(cur *oboStanza, line string) {
	key, val, ok := strings.Cut(line, ": ")
	if !ok {
		return
	}
	// Trailing " ! comment" sits outside any quoted text
	if idx := strings.Index(val, " ! "); idx > 0 {
		val = val[:idx]
	}
	val = strings.TrimSpace(val)
	// Quoted values (def lines always, others occasionally) lose their quotes
	// and anything past the closing quote, like trailing xref brackets
	if strings.HasPrefix(val, "\"") {
		val = parseQuoted(val)
	}

	switch key {
	case "id":
		cur.term.ID = val
	case "name":
		cur.term.Name = val
	case "namespace":
		cur.term.Type = val
	case "def":
		cur.term.Definition = val
	case "alt_id":
		cur.altIDs = append(cur.altIDs, val)
	case "is_obsolete":
		cur.term.Obsolete = val == "true"
	}
}

// parseQuoted extracts text between the first pair of double quotes, or
// returns the input unchanged if it is not quoted.
func parseQuoted(s string) string {
	start := strings.IndexByte(s, '"')
	if start < 0 {
		return s
	}
	start++
	end := strings.IndexByte(s[start:], '"')
	if end < 0 {
		return s[start:]
	}
	return s[start : start+end]
}
