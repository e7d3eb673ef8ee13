// Command scan triages every Solana address found in a local evidence file.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
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
)

func main() {
	// Parse flags
	rpcURL := flag.String("rpc-url", envOr("SOLANA_RPC_URL", "https://api.mainnet-beta.solana.com"), "Solana JSON-RPC endpoint")
	file := flag.String("file", "", "Evidence file to scan (required)")
	format := flag.String("format", "json", "Output format: json or csv")
	limit := flag.Int("limit", 25, "Transactions sampled per address (max 50)")
	fanOut := flag.Int("fan-out", 6, "Concurrent address analyses")
	maxAddresses := flag.Int("max-addresses", 50, "Maximum addresses analyzed per file")
	timeout := flag.Duration("timeout", 5*time.Minute, "Overall scan timeout")
	verbose := flag.Bool("verbose", false, "Log progress to stderr")
	flag.Parse()

	if *file == "" && flag.NArg() > 0 {
		*file = flag.Arg(0)
	}
	if *file == "" {
		fmt.Fprintln(os.Stderr, "Error: --file is required")
		os.Exit(1)
	}
	if *format != "json" && *format != "csv" {
		fmt.Fprintf(os.Stderr, "Error: unknown format %q\n", *format)
		os.Exit(1)
	}

	document, err := os.ReadFile(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", *file, err)
		os.Exit(1)
	}

	level := "warn"
	if *verbose {
		level = "info"
	}
	log, err := logger.NewLogger(level, "console")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	cfg := &config.Config{
		Solana: config.SolanaConfig{RPCURL: *rpcURL, MaxRetries: 2, Timeout: 15 * time.Second},
		Fetch:  config.FetchConfig{DefaultLimit: *limit, FanOut: *fanOut, MaxScanAddresses: *maxAddresses},
		Cache:  config.CacheConfig{TTL: time.Minute},
	}
	engine := newEngine(cfg, log.Logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	result, err := engine.ScanFile(ctx, string(document))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error scanning: %v\n", err)
		os.Exit(1)
	}

	switch *format {
	case "csv":
		fmt.Print(reporting.RenderScanCSV(result))
	default:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			os.Exit(1)
		}
	}

	log.Info("Scan complete", zap.Int("found", result.Found), zap.Int("analyzed", result.Analyzed))
}

// newEngine builds an engine with an in-memory audit trail. Addresses seen
// twice in one run are served from the memory cache.
func newEngine(cfg *config.Config, log *zap.Logger) *forensics.Engine {
	reg := registry.Default()
	rpc := bootstrap.NewRPCClient(cfg.Solana, log)
	f := bootstrap.NewFetcher(rpc, reg, cache.NewMemory(), cfg, log)
	return forensics.New(forensics.Deps{
		Fetcher:  f,
		Registry: reg,
		Logger:   log,
	}, bootstrap.EngineConfig(cfg.Fetch))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
