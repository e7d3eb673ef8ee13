package reporting

import (
	"fmt"
	"strings"
	"time"

	"solana-wallet-forensics/internal/domain"
)

// maxTableRows bounds long tables in the rendered report.
const maxTableRows = 25

// RenderMarkdown renders report as Markdown string.
func RenderMarkdown(r *CaseReport) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# Wallet Case Report\n\n")
	sb.WriteString(fmt.Sprintf("Wallet: `%s`\n\n", r.Wallet))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))
	if r.Summary != "" {
		sb.WriteString(fmt.Sprintf("> %s\n\n", r.Summary))
	}

	// Risk
	sb.WriteString("## Risk Assessment\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Score | %d / 100 |\n", r.Risk.Score))
	sb.WriteString(fmt.Sprintf("| Label | %s |\n", r.Risk.Label))
	sb.WriteString(fmt.Sprintf("| Classification | %s |\n", r.Risk.WalletType))
	sb.WriteString(fmt.Sprintf("| Pump.fun Activity | %s |\n", yesNo(r.PumpFunActivity)))
	if r.OnCurve != nil {
		kind := "keypair (on curve)"
		if !*r.OnCurve {
			kind = "program-derived (off curve)"
		}
		sb.WriteString(fmt.Sprintf("| Account Type | %s |\n", kind))
	}
	if r.Balance != nil {
		sb.WriteString(fmt.Sprintf("| SOL Balance | %s |\n", r.Balance.String()))
	}
	sb.WriteString("\n")

	sb.WriteString("### Flags\n\n")
	if len(r.Risk.Flags) > 0 {
		for _, f := range r.Risk.Flags {
			sb.WriteString(fmt.Sprintf("- %s\n", f))
		}
	} else {
		sb.WriteString("No risk signals triggered.\n")
	}
	sb.WriteString("\n")

	// Profile
	p := r.Profile
	sb.WriteString("## Activity Profile\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Sampled Transactions | %d |\n", p.TxCount))
	sb.WriteString(fmt.Sprintf("| Unique Counterparties | %d |\n", p.UniqueCounterparties))
	sb.WriteString(fmt.Sprintf("| First Seen | %s |\n", formatTime(p.FirstSeen)))
	sb.WriteString(fmt.Sprintf("| Last Seen | %s |\n", formatTime(p.LastSeen)))
	sb.WriteString("\n")

	sb.WriteString("### Top Counterparties\n\n")
	if len(p.TopCounterparties) > 0 {
		sb.WriteString("| Address | Interactions |\n")
		sb.WriteString("|---------|--------------|\n")
		for i, c := range p.TopCounterparties {
			if i == maxTableRows {
				sb.WriteString(fmt.Sprintf("\n%d more not shown.\n", len(p.TopCounterparties)-maxTableRows))
				break
			}
			sb.WriteString(fmt.Sprintf("| `%s` | %d |\n", c.Address, c.Count))
		}
	} else {
		sb.WriteString("No counterparties outside known infrastructure.\n")
	}
	sb.WriteString("\n")

	sb.WriteString("### Recent Transactions\n\n")
	if len(p.RecentTransactions) > 0 {
		sb.WriteString("| Signature | Time | Status |\n")
		sb.WriteString("|-----------|------|--------|\n")
		for i, tx := range p.RecentTransactions {
			if i == maxTableRows {
				break
			}
			sb.WriteString(fmt.Sprintf("| `%s` | %s | %s |\n", tx.Signature, formatUnix(tx.BlockTime), txStatus(tx)))
		}
	} else {
		sb.WriteString("No transactions sampled.\n")
	}
	sb.WriteString("\n")

	// Graph
	if r.Graph != nil {
		sb.WriteString(fmt.Sprintf("## Interaction Graph (%d hops)\n\n", r.Graph.MaxHops))
		perHop := make(map[int]int)
		for _, n := range r.Graph.Nodes {
			perHop[n.Hop]++
		}
		sb.WriteString("| Hop | Wallets |\n")
		sb.WriteString("|-----|---------|\n")
		for hop := 1; hop <= r.Graph.MaxHops; hop++ {
			sb.WriteString(fmt.Sprintf("| %d | %d |\n", hop, perHop[hop]))
		}
		sb.WriteString("\n")

		if len(r.Graph.Edges) > 0 {
			sb.WriteString("| From | To | Count | Hop |\n")
			sb.WriteString("|------|----|-------|-----|\n")
			for i, e := range r.Graph.Edges {
				if i == maxTableRows {
					sb.WriteString(fmt.Sprintf("\n%d more edges not shown.\n", len(r.Graph.Edges)-maxTableRows))
					break
				}
				sb.WriteString(fmt.Sprintf("| `%s` | `%s` | %d | %d |\n", e.From, e.To, e.Count, e.Hop))
			}
			sb.WriteString("\n")
		}

		if len(r.Graph.Errors) > 0 {
			sb.WriteString("### Unexpanded Nodes\n\n")
			for _, ne := range r.Graph.Errors {
				sb.WriteString(fmt.Sprintf("- `%s` (hop %d): %s\n", ne.Address, ne.Hop, ne.Error))
			}
			sb.WriteString("\n")
		}
	}

	// Tokens
	if r.Tokens != nil {
		sb.WriteString("## Token Holdings\n\n")
		if len(r.Tokens) > 0 {
			sb.WriteString("| Mint | Amount | Label |\n")
			sb.WriteString("|------|--------|-------|\n")
			for _, t := range r.Tokens {
				label := t.Label
				if label == "" {
					label = "-"
				}
				sb.WriteString(fmt.Sprintf("| `%s` | %s | %s |\n", t.Mint, t.Amount.String(), label))
			}
		} else {
			sb.WriteString("No token balances.\n")
		}
		sb.WriteString("\n")
	}

	// History
	if len(r.History) > 0 {
		sb.WriteString("## Prior Analyses\n\n")
		sb.WriteString("| Time | Kind | Score | Classification |\n")
		sb.WriteString("|------|------|-------|----------------|\n")
		for _, h := range r.History {
			score := "-"
			if h.Score != nil {
				score = fmt.Sprintf("%d", *h.Score)
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n",
				h.CreatedAt.Format(time.RFC3339), h.Kind, score, dash(h.WalletType)))
		}
		sb.WriteString("\n")
	}

	// Section errors
	if len(r.SectionErrors) > 0 {
		sb.WriteString("## Incomplete Sections\n\n")
		for _, e := range r.SectionErrors {
			sb.WriteString(fmt.Sprintf("- %s: %s\n", e.Section, e.Error))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func formatTime(t *time.Time) string {
	if t == nil {
		return "unknown"
	}
	return t.UTC().Format(time.RFC3339)
}

func formatUnix(ts *int64) string {
	if ts == nil {
		return "unknown"
	}
	return time.Unix(*ts, 0).UTC().Format(time.RFC3339)
}

func txStatus(tx domain.Transaction) string {
	switch {
	case tx.Partial:
		return "details unavailable"
	case tx.Failed:
		return "failed"
	default:
		return "ok"
	}
}
