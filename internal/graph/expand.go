package graph

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"solana-wallet-forensics/internal/domain"
	"solana-wallet-forensics/internal/fetcher"
	"solana-wallet-forensics/internal/profile"
	"solana-wallet-forensics/internal/registry"
)

// Expansion bounds.
const (
	MaxHops         = 3
	MaxPerNodeLimit = 5
	DefaultHops     = 2
)

// ClampHops bounds hops into [1, MaxHops].
func ClampHops(hops int) int {
	return clamp(hops, 1, MaxHops)
}

// ClampPerNodeLimit bounds the per-node sample into [1, MaxPerNodeLimit].
func ClampPerNodeLimit(limit int) int {
	return clamp(limit, 1, MaxPerNodeLimit)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Expander performs breadth-first multi-hop expansion.
type Expander struct {
	fetcher  fetcher.Fetcher
	registry *registry.Registry
	fanOut   int
	logger   *zap.Logger
}

// NewExpander creates an expander. fanOut bounds concurrent fetches per hop.
func NewExpander(f fetcher.Fetcher, reg *registry.Registry, fanOut int, logger *zap.Logger) *Expander {
	if fanOut <= 0 {
		fanOut = fetcher.DefaultFanOut
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Expander{fetcher: f, registry: reg, fanOut: fanOut, logger: logger}
}

type fetchResult struct {
	txs []domain.Transaction
	err error
}

// pairKey identifies an undirected edge.
type pairKey struct{ a, b string }

func newPairKey(x, y string) pairKey {
	if x < y {
		return pairKey{x, y}
	}
	return pairKey{y, x}
}

// Expand walks outward from subject one hop per round. Every address keeps
// the smallest hop at which it was reached and is fetched at most once.
// All fetches of a round complete before their results are merged in
// frontier order, so the output does not depend on scheduling.
//
// A failed fetch of the subject fails the expansion; failures of other
// nodes are reported in MultiHopGraph.Errors.
func (e *Expander) Expand(ctx context.Context, subject string, maxHops, perNodeLimit int) (domain.MultiHopGraph, error) {
	maxHops = ClampHops(maxHops)
	perNodeLimit = ClampPerNodeLimit(perNodeLimit)

	result := domain.MultiHopGraph{
		Subject: subject,
		MaxHops: maxHops,
		Nodes:   []domain.GraphNode{{Address: subject, Hop: 0}},
		Edges:   []domain.GraphEdge{},
	}

	visited := map[string]int{subject: 0}
	edgeIndex := make(map[pairKey]int)
	counted := make(map[pairKey]map[string]bool)
	frontier := []string{subject}

	for hop := 1; hop <= maxHops && len(frontier) > 0; hop++ {
		results := e.fetchRound(ctx, frontier, perNodeLimit)
		if err := ctx.Err(); err != nil {
			return domain.MultiHopGraph{}, err
		}

		var next []string
		for i, addr := range frontier {
			r := results[i]
			if r.err != nil {
				if addr == subject {
					return domain.MultiHopGraph{}, fmt.Errorf("expand %s: %w", subject, r.err)
				}
				e.logger.Warn("node fetch failed, continuing expansion",
					zap.String("address", addr),
					zap.Int("hop", visited[addr]),
					zap.Error(r.err))
				result.Errors = append(result.Errors, domain.NodeError{
					Address: addr,
					Hop:     visited[addr],
					Error:   r.err.Error(),
				})
				continue
			}

			for j := range r.txs {
				tx := &r.txs[j]
				c, ok := profile.PrimaryCounterparty(addr, tx, e.registry)
				if !ok {
					continue
				}

				key := newPairKey(addr, c)
				if at, ok := edgeIndex[key]; ok {
					// The same transaction is seen from both ends.
					if !counted[key][tx.Signature] {
						counted[key][tx.Signature] = true
						result.Edges[at].Count++
					}
				} else {
					edgeIndex[key] = len(result.Edges)
					counted[key] = map[string]bool{tx.Signature: true}
					result.Edges = append(result.Edges, domain.GraphEdge{From: addr, To: c, Count: 1, Hop: hop})
				}

				if _, seen := visited[c]; !seen {
					visited[c] = hop
					result.Nodes = append(result.Nodes, domain.GraphNode{Address: c, Hop: hop})
					next = append(next, c)
				}
			}
		}

		frontier = next
	}

	return result, nil
}

// fetchRound fetches every frontier node with bounded concurrency.
// Results are indexed by frontier position.
func (e *Expander) fetchRound(ctx context.Context, frontier []string, limit int) []fetchResult {
	results := make([]fetchResult, len(frontier))

	var g errgroup.Group
	g.SetLimit(e.fanOut)
	for i, addr := range frontier {
		g.Go(func() error {
			txs, err := e.fetcher.FetchTransactions(ctx, addr, limit)
			results[i] = fetchResult{txs: txs, err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}
