package docs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goannot/internal/gaf"
	"goannot/internal/ontology"
	"goannot/internal/resolver"
)

func testTable() ontology.Table {
	return ontology.Table{
		"GO:0000001": &ontology.Term{
			ID:         "GO:0000001",
			Name:       "mitochondrion inheritance",
			Type:       "biological_process",
			Definition: "The distribution of mitochondria.",
		},
	}
}

func TestAssemble(t *testing.T) {
	ann := &gaf.Annotation{
		ID:       "GO:0000001",
		IsPublic: true,
		Taxid:    "9606",
		Genes: gaf.GeneSet{
			{Uniprot: "P2", Symbol: "GENE2"}: {},
			{Uniprot: "P1", Symbol: "GENE1"}: {},
		},
		ExcludedGenes: gaf.GeneSet{
			{Uniprot: "P3", Symbol: "GENE3"}: {},
		},
	}
	ids := resolver.IDMap{
		"GENE1": "1111",
		"P3":    "3333",
	}

	doc, err := Assemble(ann, testTable(), ids)
	require.NoError(t, err)
	require.NotNil(t, doc)

	t.Run("ID carries the taxid suffix", func(t *testing.T) {
		assert.Equal(t, "GO:0000001_9606", doc["_id"])
		assert.Equal(t, "9606", doc["taxid"])
		assert.Equal(t, true, doc["is_public"])
	})

	t.Run("Ontology metadata is attached", func(t *testing.T) {
		meta, ok := doc["go"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "mitochondrion inheritance", meta["name"])
		assert.Equal(t, "The distribution of mitochondria.", meta["definition"])
	})

	t.Run("Multi-gene bucket stays a sorted list", func(t *testing.T) {
		genes, ok := doc["genes"].([]any)
		require.True(t, ok)
		require.Len(t, genes, 2)
		first := genes[0].(map[string]any)
		second := genes[1].(map[string]any)
		assert.Equal(t, "P1", first["uniprot"])
		assert.Equal(t, "P2", second["uniprot"])
		assert.Equal(t, "1111", first["ncbigene"])
		assert.NotContains(t, second, "ncbigene")
	})

	t.Run("Singleton bucket collapses to its object", func(t *testing.T) {
		excluded, ok := doc["excluded_genes"].(map[string]any)
		require.True(t, ok, "one-gene bucket should be an object, not a list")
		assert.Equal(t, "P3", excluded["uniprot"])
		assert.Equal(t, "3333", excluded["ncbigene"])
	})

	t.Run("Empty buckets are absent", func(t *testing.T) {
		assert.NotContains(t, doc, "contributing_genes")
		assert.NotContains(t, doc, "colocalized_genes")
	})
}

func TestAssemble_EmptyLeavesStripped(t *testing.T) {
	ann := &gaf.Annotation{
		ID:       "GO:0000001",
		IsPublic: true,
		Taxid:    "9606",
		Genes: gaf.GeneSet{
			{Uniprot: "P9", Symbol: ""}: {},
		},
	}

	doc, err := Assemble(ann, testTable(), nil)
	require.NoError(t, err)
	require.NotNil(t, doc)

	gene, ok := doc["genes"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "P9", gene["uniprot"])
	assert.NotContains(t, gene, "symbol")
}

func TestAssemble_NoMembers(t *testing.T) {
	ann := &gaf.Annotation{
		ID:    "GO:0000001",
		Taxid: "9606",
		ExcludedGenes: gaf.GeneSet{
			{Uniprot: "P1", Symbol: "GENE1"}: {},
		},
	}

	doc, err := Assemble(ann, testTable(), nil)
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestAssemble_UnknownTerm(t *testing.T) {
	ann := &gaf.Annotation{
		ID:    "GO:9999999",
		Taxid: "9606",
		Genes: gaf.GeneSet{
			{Uniprot: "P1", Symbol: "GENE1"}: {},
		},
	}

	_, err := Assemble(ann, testTable(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GO:9999999")
}
