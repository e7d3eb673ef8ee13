// Package graphstore exports multi-hop interaction graphs to Neo4j so
// investigators can query and visualise them across cases.
package graphstore

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"solana-wallet-forensics/internal/domain"
)

// Exporter persists multi-hop graphs.
type Exporter interface {
	ExportMultiHop(ctx context.Context, g domain.MultiHopGraph) error
}

// Config holds Neo4j connection settings.
type Config struct {
	URI                          string
	Username                     string
	Password                     string
	Database                     string
	MaxConnectionPoolSize        int
	ConnectionAcquisitionTimeout time.Duration
}

// Neo4jExporter writes graphs as (:Wallet)-[:INTERACTED]->(:Wallet).
type Neo4jExporter struct {
	driver   neo4j.DriverWithContext
	database string
	logger   *zap.Logger
	now      func() time.Time
}

// Connect creates the driver, verifies connectivity and ensures the schema.
func Connect(ctx context.Context, cfg Config, logger *zap.Logger) (*Neo4jExporter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Info("connecting to Neo4j", zap.String("uri", cfg.URI))

	driver, err := neo4j.NewDriverWithContext(
		cfg.URI,
		neo4j.BasicAuth(cfg.Username, cfg.Password, ""),
		func(c *neo4j.Config) {
			if cfg.MaxConnectionPoolSize > 0 {
				c.MaxConnectionPoolSize = cfg.MaxConnectionPoolSize
			}
			if cfg.ConnectionAcquisitionTimeout > 0 {
				c.ConnectionAcquisitionTimeout = cfg.ConnectionAcquisitionTimeout
			}
		},
	)
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return nil, fmt.Errorf("verify neo4j connectivity: %w", err)
	}

	e := &Neo4jExporter{
		driver:   driver,
		database: cfg.Database,
		logger:   logger,
		now:      time.Now,
	}
	e.setupSchema(ctx)

	return e, nil
}

func (e *Neo4jExporter) setupSchema(ctx context.Context) {
	session := e.driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: e.database})
	defer session.Close(ctx)

	statements := []string{
		"CREATE CONSTRAINT wallet_address IF NOT EXISTS FOR (w:Wallet) REQUIRE w.address IS UNIQUE",
		"CREATE INDEX wallet_last_expanded IF NOT EXISTS FOR (w:Wallet) ON (w.last_expanded)",
	}
	for _, stmt := range statements {
		_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
			return tx.Run(ctx, stmt, nil)
		})
		if err != nil {
			e.logger.Warn("schema statement failed", zap.String("statement", stmt), zap.Error(err))
		}
	}
}

const exportNodesQuery = `
	UNWIND $nodes AS n
	MERGE (w:Wallet {address: n.address})
	SET w.last_expanded = datetime($at)
	WITH w, n
	WHERE n.subject
	SET w.last_subject = datetime($at)
`

const exportEdgesQuery = `
	UNWIND $edges AS e
	MATCH (a:Wallet {address: e.from})
	MATCH (b:Wallet {address: e.to})
	MERGE (a)-[r:INTERACTED]-(b)
	SET r.count = CASE WHEN r.count IS NULL OR r.count < e.count THEN e.count ELSE r.count END,
	    r.last_seen_in = $subject
`

// ExportMultiHop upserts every node and edge of g in one write transaction.
func (e *Neo4jExporter) ExportMultiHop(ctx context.Context, g domain.MultiHopGraph) error {
	nodes, edges := exportParams(g)
	at := e.now().UTC().Format(time.RFC3339)

	session := e.driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: e.database})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		if _, err := tx.Run(ctx, exportNodesQuery, map[string]any{"nodes": nodes, "at": at}); err != nil {
			return nil, err
		}
		if len(edges) == 0 {
			return nil, nil
		}
		_, err := tx.Run(ctx, exportEdgesQuery, map[string]any{"edges": edges, "subject": g.Subject})
		return nil, err
	})
	if err != nil {
		return fmt.Errorf("export graph of %s: %w", g.Subject, err)
	}

	e.logger.Debug("graph exported",
		zap.String("wallet", g.Subject),
		zap.Int("nodes", len(nodes)),
		zap.Int("edges", len(edges)))
	return nil
}

// exportParams converts g into Cypher parameter lists.
func exportParams(g domain.MultiHopGraph) ([]map[string]any, []map[string]any) {
	nodes := make([]map[string]any, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		nodes = append(nodes, map[string]any{
			"address": n.Address,
			"hop":     int64(n.Hop),
			"subject": n.Address == g.Subject,
		})
	}

	edges := make([]map[string]any, 0, len(g.Edges))
	for _, edge := range g.Edges {
		edges = append(edges, map[string]any{
			"from":  edge.From,
			"to":    edge.To,
			"count": int64(edge.Count),
			"hop":   int64(edge.Hop),
		})
	}

	return nodes, edges
}

// Close closes the driver.
func (e *Neo4jExporter) Close(ctx context.Context) error {
	if e.driver == nil {
		return nil
	}
	return e.driver.Close(ctx)
}

var _ Exporter = (*Neo4jExporter)(nil)
