package graph

import (
	"testing"

	"solana-wallet-forensics/internal/domain"
	"solana-wallet-forensics/internal/registry"
	"solana-wallet-forensics/internal/testutil"
)

func TestBuild(t *testing.T) {
	subject := testutil.Addr("s")
	a, b := testutil.Addr("a"), testutil.Addr("b")

	txs := []domain.Transaction{
		testutil.Tx("1", 0, a),
		testutil.Tx("2", 0, b),
		testutil.Tx("3", 0, a),
		testutil.Tx("4", 0, registry.PumpFunProgram),
		testutil.Tx("5", 0),
	}

	g := Build(subject, txs, registry.Default())

	wantNodes := []string{subject, a, b}
	if len(g.Nodes) != len(wantNodes) {
		t.Fatalf("expected nodes %v, got %v", wantNodes, g.Nodes)
	}
	for i := range wantNodes {
		if g.Nodes[i] != wantNodes[i] {
			t.Errorf("node[%d] = %s, want %s", i, g.Nodes[i], wantNodes[i])
		}
	}

	if len(g.Edges) != 2 {
		t.Fatalf("expected 2 edges, got %d", len(g.Edges))
	}
	if g.Edges[0] != (domain.GraphEdge{From: subject, To: a, Count: 2, Hop: 1}) {
		t.Errorf("unexpected edge %+v", g.Edges[0])
	}
	if g.Edges[1] != (domain.GraphEdge{From: subject, To: b, Count: 1, Hop: 1}) {
		t.Errorf("unexpected edge %+v", g.Edges[1])
	}

	for _, n := range g.Nodes {
		if registry.Default().IsKnown(n) {
			t.Errorf("known entity %s in graph", n)
		}
	}
}

func TestBuild_Empty(t *testing.T) {
	subject := testutil.Addr("s")
	g := Build(subject, nil, registry.Default())

	if len(g.Nodes) != 1 || g.Nodes[0] != subject {
		t.Errorf("expected only the subject, got %v", g.Nodes)
	}
	if g.Edges == nil || len(g.Edges) != 0 {
		t.Errorf("expected empty non-nil edges, got %v", g.Edges)
	}
}
