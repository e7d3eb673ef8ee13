// Command report writes a Markdown case report for one wallet.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	"solana-wallet-forensics/internal/bootstrap"
	"solana-wallet-forensics/internal/cache"
	"solana-wallet-forensics/internal/config"
	"solana-wallet-forensics/internal/forensics"
	"solana-wallet-forensics/internal/logger"
	"solana-wallet-forensics/internal/registry"
	"solana-wallet-forensics/internal/reporting"
	"solana-wallet-forensics/internal/storage"
	"solana-wallet-forensics/internal/storage/memory"
	pgstore "solana-wallet-forensics/internal/storage/postgres"
)

func main() {
	// Parse flags
	rpcURL := flag.String("rpc-url", envOr("SOLANA_RPC_URL", "https://api.mainnet-beta.solana.com"), "Solana JSON-RPC endpoint")
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string for prior analyses (optional)")
	wallet := flag.String("wallet", "", "Wallet address to report on (required)")
	limit := flag.Int("limit", 25, "Transactions sampled for the risk profile (max 50)")
	hops := flag.Int("hops", 2, "Interaction graph depth, 0 to skip (max 3)")
	perNode := flag.Int("per-node", 5, "Transactions sampled per graph node (max 5)")
	tokens := flag.Bool("tokens", true, "Include token holdings")
	output := flag.String("output", "", "Output file (default: stdout)")
	timeout := flag.Duration("timeout", 3*time.Minute, "Overall timeout")
	flag.Parse()

	if *wallet == "" && flag.NArg() > 0 {
		*wallet = flag.Arg(0)
	}
	if *wallet == "" {
		fmt.Fprintln(os.Stderr, "Error: --wallet is required")
		os.Exit(1)
	}

	log, err := logger.NewLogger("warn", "console")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	// Prior analyses come from the shared audit trail when one is configured
	var audit storage.AnalysisStore = memory.NewAnalysisStore()
	historyLimit := 0
	if *postgresDSN != "" {
		pool, err := pgstore.NewPool(ctx, *postgresDSN, 2)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error connecting to postgres: %v\n", err)
			os.Exit(1)
		}
		defer pool.Close()
		audit = pgstore.NewAnalysisStore(pool)
		historyLimit = 10
	}

	cfg := &config.Config{
		Solana: config.SolanaConfig{RPCURL: *rpcURL, MaxRetries: 2, Timeout: 15 * time.Second},
		Fetch:  config.FetchConfig{DefaultLimit: *limit},
		Cache:  config.CacheConfig{TTL: time.Minute},
	}
	reg := registry.Default()
	rpc := bootstrap.NewRPCClient(cfg.Solana, log.Logger)
	engine := forensics.New(forensics.Deps{
		Fetcher:  bootstrap.NewFetcher(rpc, reg, cache.NewMemory(), cfg, log.Logger),
		Registry: reg,
		Audit:    audit,
		Logger:   log.Logger,
	}, bootstrap.EngineConfig(cfg.Fetch))

	report, err := reporting.NewGenerator(engine).Generate(ctx, *wallet, reporting.Options{
		Limit:        *limit,
		Hops:         *hops,
		PerNodeLimit: *perNode,
		Tokens:       *tokens,
		HistoryLimit: historyLimit,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating report: %v\n", err)
		os.Exit(1)
	}

	md := reporting.RenderMarkdown(report)
	if *output == "" {
		fmt.Print(md)
		return
	}

	if err := os.MkdirAll(filepath.Dir(*output), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*output, []byte(md), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
		os.Exit(1)
	}
	log.Info("Report written", zap.String("path", *output))
	fmt.Printf("Case report written to %s\n", *output)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
