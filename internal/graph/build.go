// Package graph builds interaction graphs around a subject wallet.
package graph

import (
	"solana-wallet-forensics/internal/domain"
	"solana-wallet-forensics/internal/profile"
	"solana-wallet-forensics/internal/registry"
)

// Build returns the 1-hop graph of subject: one edge per distinct primary
// counterparty, nodes in first-appearance order after the subject.
func Build(subject string, txs []domain.Transaction, reg *registry.Registry) domain.Graph {
	g := domain.Graph{
		Subject: subject,
		Nodes:   []string{subject},
		Edges:   []domain.GraphEdge{},
	}

	index := make(map[string]int)
	for i := range txs {
		c, ok := profile.PrimaryCounterparty(subject, &txs[i], reg)
		if !ok {
			continue
		}
		if at, seen := index[c]; seen {
			g.Edges[at].Count++
			continue
		}
		index[c] = len(g.Edges)
		g.Nodes = append(g.Nodes, c)
		g.Edges = append(g.Edges, domain.GraphEdge{From: subject, To: c, Count: 1, Hop: 1})
	}

	return g
}
