// Package docs assembles the final per-term annotation documents from the
// parsed gene sets, the ontology table, and the resolved Entrez IDs.
package docs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"goannot/internal/gaf"
	"goannot/internal/norm"
	"goannot/internal/ontology"
	"goannot/internal/resolver"
)

// Gene is one annotated gene in an output document. Ncbigene is a scalar ID,
// a list of IDs for ambiguous symbols, or absent when unresolved.
type Gene struct {
	Uniprot  string `json:"uniprot,omitempty"`
	Symbol   string `json:"symbol,omitempty"`
	Ncbigene any    `json:"ncbigene,omitempty"`
}

// Document is the assembled record for one (GO term, taxon) pair, before the
// final normalization pass.
type Document struct {
	ID                string         `json:"_id"`
	IsPublic          bool           `json:"is_public"`
	Taxid             string         `json:"taxid"`
	Genes             []Gene         `json:"genes"`
	ExcludedGenes     []Gene         `json:"excluded_genes,omitempty"`
	ContributingGenes []Gene         `json:"contributing_genes,omitempty"`
	ColocalizedGenes  []Gene         `json:"colocalized_genes,omitempty"`
	GO                *ontology.Term `json:"go"`
}

// Record is one normalized output document: the Document after the compact
// pass, so empty leaves are swept out and a one-gene bucket carries the lone
// gene object rather than a single-element list.
type Record map[string]any

// Assemble builds the document for one annotation. It returns (nil, nil) for
// terms without any unqualified member gene: a term carrying only excluded,
// contributing, or colocalized genes is not emitted. A term ID missing from
// the ontology table is an error, aborting the file.
func Assemble(ann *gaf.Annotation, terms ontology.Table, ids resolver.IDMap) (Record, error) {
	term := terms[ann.ID]
	if term == nil {
		return nil, fmt.Errorf("docs: term %s not found in ontology", ann.ID)
	}
	if len(ann.Genes) == 0 {
		return nil, nil
	}

	doc := &Document{
		ID:                ann.ID + "_" + ann.Taxid,
		IsPublic:          ann.IsPublic,
		Taxid:             ann.Taxid,
		Genes:             geneList(ann.Genes, ids),
		ExcludedGenes:     geneList(ann.ExcludedGenes, ids),
		ContributingGenes: geneList(ann.ContributingGenes, ids),
		ColocalizedGenes:  geneList(ann.ColocalizedGenes, ids),
		GO:                term,
	}
	return compactDoc(doc)
}

// compactDoc applies the normalization pass to the whole record by
// round-tripping it through its JSON form.
func compactDoc(doc *Document) (Record, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("docs: encoding %s: %w", doc.ID, err)
	}
	var rec map[string]any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber() // keep entrez IDs as written
	if err := dec.Decode(&rec); err != nil {
		return nil, fmt.Errorf("docs: decoding %s: %w", doc.ID, err)
	}
	out, ok := norm.Compact(rec).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("docs: record %s is empty after normalization", doc.ID)
	}
	return Record(out), nil
}

// geneList converts a gene set into a sorted list of output genes with their
// resolved IDs attached, looked up by symbol first and UniProt accession
// second.
func geneList(set gaf.GeneSet, ids resolver.IDMap) []Gene {
	if len(set) == 0 {
		return nil
	}
	genes := make([]Gene, 0, len(set))
	for ref := range set {
		g := Gene{Uniprot: ref.Uniprot, Symbol: ref.Symbol}
		if id, ok := ids.Lookup(ref.Symbol, ref.Uniprot); ok {
			g.Ncbigene = id
		}
		genes = append(genes, g)
	}
	sort.Slice(genes, func(i, j int) bool {
		if genes[i].Uniprot != genes[j].Uniprot {
			return genes[i].Uniprot < genes[j].Uniprot
		}
		return genes[i].Symbol < genes[j].Symbol
	})
	return genes
}
