// Package pipeline wires the loaders, the resolver, and the assembler into
// the per-release batch run: one ontology load, then one pass over every
// annotation file in the data folder.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sort"
	"time"

	"goannot/internal/config"
	"goannot/internal/docs"
	"goannot/internal/gaf"
	"goannot/internal/mygene"
	"goannot/internal/ontology"
	"goannot/internal/resolver"
)

type Pipeline struct {
	cfg    *config.Config
	client *mygene.Client
}

func New(cfg *config.Config) *Pipeline {
	return &Pipeline{
		cfg: cfg,
		client: mygene.NewClient(
			cfg.MyGene.BaseURL,
			cfg.MyGene.BatchSize,
			time.Duration(cfg.MyGene.TimeoutSeconds)*time.Second,
		),
	}
}

// Run executes the full pipeline, streaming each assembled document to onDoc
// in deterministic (term-ID) order. A non-nil error from onDoc stops the run.
//
// Identifier resolution is scoped per file: every file is resolved against a
// single taxon, taken from its first record in term order. GAF releases are
// per-species, so this holds in practice; a file mixing taxa would resolve
// all of its terms against that one taxon.
func (p *Pipeline) Run(ctx context.Context, onDoc func(docs.Record) error) error {
	folder := p.cfg.Data.Folder

	terms, err := ontology.LoadFile(filepath.Join(folder, p.cfg.Data.Ontology))
	if err != nil {
		return fmt.Errorf("loading ontology: %w", err)
	}
	log.Printf("loaded %d ontology terms", len(terms))

	files, err := filepath.Glob(filepath.Join(folder, "*.gaf.gz"))
	if err != nil {
		return err
	}
	sort.Strings(files)

	for _, file := range files {
		if err := p.runFile(ctx, file, terms, onDoc); err != nil {
			return fmt.Errorf("processing %s: %w", filepath.Base(file), err)
		}
	}
	return nil
}

func (p *Pipeline) runFile(ctx context.Context, file string, terms ontology.Table, onDoc func(docs.Record) error) error {
	anns, err := gaf.ParseFile(file)
	if err != nil {
		return err
	}

	termIDs := make([]string, 0, len(anns))
	for id := range anns {
		termIDs = append(termIDs, id)
	}
	sort.Strings(termIDs)

	// Union of every bucket across the file, resolved in one batch
	pairs, taxid := collectGenes(anns, termIDs)
	log.Printf("%s: %d terms, %d genes, taxon %s", filepath.Base(file), len(anns), len(pairs), taxid)

	ids, err := resolver.Resolve(ctx, p.client, pairs, taxid)
	if err != nil {
		return fmt.Errorf("resolving gene IDs: %w", err)
	}

	for _, id := range termIDs {
		doc, err := docs.Assemble(anns[id], terms, ids)
		if err != nil {
			return err
		}
		if doc == nil {
			continue
		}
		if err := onDoc(doc); err != nil {
			return err
		}
	}
	return nil
}

// collectGenes gathers the deduplicated (symbol, uniprot) pairs across all
// of a file's annotations, plus the taxon ID of the first term in order.
func collectGenes(anns map[string]*gaf.Annotation, termIDs []string) ([]resolver.Pair, string) {
	var taxid string
	union := make(gaf.GeneSet)
	for _, id := range termIDs {
		ann := anns[id]
		if taxid == "" {
			taxid = ann.Taxid
		}
		for ref := range ann.AllGenes() {
			union[ref] = struct{}{}
		}
	}

	pairs := make([]resolver.Pair, 0, len(union))
	for ref := range union {
		pairs = append(pairs, resolver.Pair{Symbol: ref.Symbol, Uniprot: ref.Uniprot})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Symbol != pairs[j].Symbol {
			return pairs[i].Symbol < pairs[j].Symbol
		}
		return pairs[i].Uniprot < pairs[j].Uniprot
	})
	return pairs, taxid
}
