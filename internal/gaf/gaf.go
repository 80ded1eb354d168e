// Package gaf streams gzip-compressed Gene Annotation Files and aggregates
// their rows into per-GO-term gene sets.
package gaf

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

// GAF 2.x column indices consumed by the loader.
const (
	colUniprot    = 1
	colSymbol     = 2
	colQualifiers = 3
	colGOID       = 4
	colTaxon      = 12
	minColumns    = 13
)

const scannerBufferSize = 1 << 20

// GeneRef identifies one annotated gene: its UniProt accession paired with
// its symbol. Identical pairs from different rows collapse via set membership.
type GeneRef struct {
	Uniprot string
	Symbol  string
}

// GeneSet is a deduplicated collection of gene references.
type GeneSet map[GeneRef]struct{}

func (s GeneSet) add(ref GeneRef) GeneSet {
	if s == nil {
		s = make(GeneSet)
	}
	s[ref] = struct{}{}
	return s
}

// Annotation aggregates every row sharing one GO term ID. A gene lands in
// Genes only when none of the NOT / contributes_to / colocalizes_with
// qualifiers are present on its row; the qualified buckets are non-exclusive,
// so a single row can populate more than one of them.
type Annotation struct {
	ID                string
	IsPublic          bool
	Taxid             string
	Genes             GeneSet
	ExcludedGenes     GeneSet
	ContributingGenes GeneSet
	ColocalizedGenes  GeneSet
}

// AllGenes returns the union of all four buckets.
func (a *Annotation) AllGenes() GeneSet {
	union := make(GeneSet)
	for _, set := range []GeneSet{a.Genes, a.ExcludedGenes, a.ContributingGenes, a.ColocalizedGenes} {
		for ref := range set {
			union[ref] = struct{}{}
		}
	}
	return union
}

// ParseFile opens a gzip-compressed GAF file and parses it.
func ParseFile(path string) (map[string]*Annotation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("gaf: opening %s: %w", path, err)
	}
	defer gz.Close()

	anns, err := Parse(gz)
	if err != nil {
		return nil, fmt.Errorf("gaf: parsing %s: %w", path, err)
	}
	return anns, nil
}

// Parse reads tab-delimited GAF rows and returns annotations keyed by GO term
// ID. Header and comment rows start with "!" and are skipped; a row with too
// few columns aborts the parse.
func Parse(r io.Reader) (map[string]*Annotation, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, scannerBufferSize), scannerBufferSize)

	anns := make(map[string]*Annotation)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "!") {
			continue
		}
		rec := strings.Split(line, "\t")
		if len(rec) < minColumns {
			return nil, fmt.Errorf("row %d has %d columns, want at least %d", lineno, len(rec), minColumns)
		}

		id := rec[colGOID]
		ann := anns[id]
		if ann == nil {
			ann = &Annotation{
				ID:       id,
				IsPublic: true,
				Taxid:    parseTaxid(rec[colTaxon]),
			}
			anns[id] = ann
		}

		ref := GeneRef{Uniprot: rec[colUniprot], Symbol: rec[colSymbol]}
		qualifiers := strings.Split(rec[colQualifiers], "|")
		qualified := false
		if contains(qualifiers, "NOT") {
			ann.ExcludedGenes = ann.ExcludedGenes.add(ref)
			qualified = true
		}
		if contains(qualifiers, "contributes_to") {
			ann.ContributingGenes = ann.ContributingGenes.add(ref)
			qualified = true
		}
		if contains(qualifiers, "colocalizes_with") {
			ann.ColocalizedGenes = ann.ColocalizedGenes.add(ref)
			qualified = true
		}
		if !qualified {
			ann.Genes = ann.Genes.add(ref)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return anns, nil
}

// parseTaxid extracts the numeric taxon ID from a pipe-delimited GAF taxon
// field such as "taxon:9606" or "taxon:9606|taxon:10090".
func parseTaxid(field string) string {
	first, _, _ := strings.Cut(field, "|")
	return strings.TrimPrefix(first, "taxon:")
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
