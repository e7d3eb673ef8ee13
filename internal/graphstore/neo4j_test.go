package graphstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solana-wallet-forensics/internal/domain"
)

func TestExportParams(t *testing.T) {
	g := domain.MultiHopGraph{
		Subject: "a",
		MaxHops: 2,
		Nodes: []domain.GraphNode{
			{Address: "a", Hop: 0},
			{Address: "b", Hop: 1},
			{Address: "c", Hop: 2},
		},
		Edges: []domain.GraphEdge{
			{From: "a", To: "b", Count: 3, Hop: 1},
			{From: "b", To: "c", Count: 1, Hop: 2},
		},
	}

	nodes, edges := exportParams(g)

	require.Len(t, nodes, 3)
	assert.Equal(t, true, nodes[0]["subject"])
	assert.Equal(t, false, nodes[1]["subject"])
	assert.Equal(t, int64(2), nodes[2]["hop"])

	require.Len(t, edges, 2)
	assert.Equal(t, "a", edges[0]["from"])
	assert.Equal(t, "b", edges[0]["to"])
	assert.Equal(t, int64(3), edges[0]["count"])
	assert.Equal(t, int64(2), edges[1]["hop"])
}

func TestExportParams_Empty(t *testing.T) {
	nodes, edges := exportParams(domain.MultiHopGraph{Subject: "a"})
	assert.NotNil(t, nodes)
	assert.NotNil(t, edges)
	assert.Empty(t, edges)
}
