package ontology

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleGraph = `{
  "graphs": [
    {
      "nodes": [
        {
          "id": "http://purl.obolibrary.org/obo/GO_0000001",
          "lbl": "mitochondrion inheritance",
          "type": "CLASS",
          "meta": {
            "definition": {
              "val": "The distribution of mitochondria.",
              "xrefs": ["GOC:mcc"]
            }
          }
        },
        {
          "id": "http://purl.obolibrary.org/obo/BFO_0000015",
          "lbl": "process",
          "type": "CLASS"
        },
        {
          "id": "http://purl.obolibrary.org/obo/GO_0000002",
          "lbl": "mitochondrial genome maintenance",
          "type": "CLASS",
          "meta": {}
        }
      ]
    }
  ]
}`

func TestParseGraph(t *testing.T) {
	table, err := ParseGraph(strings.NewReader(sampleGraph))
	require.NoError(t, err)

	t.Run("Rewrites IDs to colon form", func(t *testing.T) {
		term := table["GO:0000001"]
		require.NotNil(t, term)
		assert.Equal(t, "GO:0000001", term.ID)
		assert.Equal(t, "http://purl.obolibrary.org/obo/GO_0000001", term.URL)
		assert.Equal(t, "mitochondrion inheritance", term.Name)
		assert.Equal(t, "CLASS", term.Type)
	})

	t.Run("Skips non-GO nodes", func(t *testing.T) {
		assert.Len(t, table, 2)
		assert.NotContains(t, table, "BFO:0000015")
	})

	t.Run("Definition is compacted", func(t *testing.T) {
		term := table["GO:0000001"]
		require.NotNil(t, term)
		// Singleton xrefs list collapses to its element
		assert.Equal(t, map[string]any{
			"val":   "The distribution of mitochondria.",
			"xrefs": "GOC:mcc",
		}, term.Definition)
	})

	t.Run("Missing definition stays absent", func(t *testing.T) {
		term := table["GO:0000002"]
		require.NotNil(t, term)
		assert.Nil(t, term.Definition)
	})
}

func TestParseGraph_NoGraphs(t *testing.T) {
	_, err := ParseGraph(strings.NewReader(`{"graphs": []}`))
	assert.Error(t, err)
}
