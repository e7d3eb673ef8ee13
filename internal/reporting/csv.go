package reporting

import (
	"fmt"
	"strings"

	"solana-wallet-forensics/internal/domain"
)

// RenderScanCSV renders triage results as CSV string, in result order.
func RenderScanCSV(res *domain.ScanResult) string {
	var sb strings.Builder

	// Header
	sb.WriteString("wallet,score,label,wallet_type,tx_count,unique_counterparties,error\n")

	// Rows
	for _, e := range res.Results {
		if e.Failed() {
			sb.WriteString(fmt.Sprintf("%s,,,,,,%s\n", e.Wallet, csvQuote(e.Error)))
			continue
		}
		sb.WriteString(fmt.Sprintf("%s,%d,%s,%s,%d,%d,\n",
			e.Wallet,
			e.Risk.Score,
			e.Risk.Label,
			csvQuote(e.Risk.WalletType),
			e.TxCount,
			e.UniqueCounterparties,
		))
	}

	return sb.String()
}

// csvQuote quotes s when it contains separators or quotes.
func csvQuote(s string) string {
	if !strings.ContainsAny(s, ",\"\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
