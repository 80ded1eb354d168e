// Package resolver maps annotated gene symbols to Entrez gene IDs through
// the mygene.info service, with a UniProt-accession fallback for symbols the
// first pass cannot match.
package resolver

import (
	"context"

	"goannot/internal/mygene"
	"goannot/internal/norm"
)

// Pair couples a gene symbol with the UniProt accession it was annotated
// under. The accession is the retry key when the symbol is unmatched.
type Pair struct {
	Symbol  string
	Uniprot string
}

// IDMap maps a query term (symbol, or UniProt accession for second-pass
// matches) to its resolved Entrez ID: a scalar for unambiguous symbols, a
// list when one symbol matched several genes. Terms unresolved after both
// passes are absent.
type IDMap map[string]any

// Lookup returns the resolved ID for a gene, trying its symbol first and
// falling back to its UniProt accession.
func (m IDMap) Lookup(symbol, uniprot string) (any, bool) {
	if id, ok := m[symbol]; ok {
		return id, true
	}
	if id, ok := m[uniprot]; ok {
		return id, true
	}
	return nil, false
}

// Resolve performs the two-pass lookup for one annotation file's genes,
// restricted to taxid. Pass one queries every symbol; pass two re-queries the
// UniProt accessions paired with the symbols the service reported missing.
// A symbol matching several genes keeps all of their IDs.
func Resolve(ctx context.Context, client *mygene.Client, pairs []Pair, taxid string) (IDMap, error) {
	symbols := make([]string, 0, len(pairs))
	uniprotFor := make(map[string]string, len(pairs))
	for _, p := range pairs {
		symbols = append(symbols, p.Symbol)
		if _, ok := uniprotFor[p.Symbol]; !ok {
			uniprotFor[p.Symbol] = p.Uniprot
		}
	}

	ids := make(map[string][]any)
	res, err := client.QueryMany(ctx, symbols, mygene.ScopeSymbol, taxid)
	if err != nil {
		return nil, err
	}
	collect(ids, res.Hits)

	// Retry the misses under their UniProt accessions
	retry := make([]string, 0, len(res.Missing))
	seen := make(map[string]struct{}, len(res.Missing))
	for _, symbol := range res.Missing {
		uniprot := uniprotFor[symbol]
		if uniprot == "" {
			continue
		}
		if _, ok := seen[uniprot]; ok {
			continue
		}
		seen[uniprot] = struct{}{}
		retry = append(retry, uniprot)
	}
	res, err = client.QueryMany(ctx, retry, mygene.ScopeUniprot, taxid)
	if err != nil {
		return nil, err
	}
	collect(ids, res.Hits)

	out := make(IDMap, len(ids))
	for k, v := range ids {
		out[k] = v
	}
	norm.Compact(map[string]any(out))
	return out, nil
}

func collect(ids map[string][]any, hits []mygene.Hit) {
	for _, hit := range hits {
		if hit.Entrezgene == nil {
			continue
		}
		ids[hit.Query] = append(ids[hit.Query], hit.Entrezgene)
	}
}
