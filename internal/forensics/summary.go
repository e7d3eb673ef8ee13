package forensics

import (
	"fmt"
	"strings"
)

// Summarize renders the one-paragraph prose summary of a report.
func Summarize(r *ReportResult) string {
	p := r.Profile

	if p.TxCount == 0 {
		return fmt.Sprintf("Wallet %s has no transactions in the sampled history and is classified as %s.",
			Short(r.Wallet), r.Risk.WalletType)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Wallet %s made %d sampled transactions with %d unique counterparties",
		Short(r.Wallet), p.TxCount, p.UniqueCounterparties)
	if p.FirstSeen != nil && p.LastSeen != nil {
		fmt.Fprintf(&b, " between %s and %s",
			p.FirstSeen.Format("2006-01-02"), p.LastSeen.Format("2006-01-02"))
	}
	fmt.Fprintf(&b, ". Risk is %s (%d/100), classified as %s", r.Risk.Label, r.Risk.Score, r.Risk.WalletType)

	if n := len(r.Risk.Flags); n > 0 {
		fmt.Fprintf(&b, " on %d signal", n)
		if n > 1 {
			b.WriteString("s")
		}
	}
	b.WriteString(".")

	if r.PumpFunActivity {
		b.WriteString(" The wallet has interacted with the pump.fun launchpad.")
	}
	if r.OnCurve != nil && !*r.OnCurve {
		b.WriteString(" The address is off-curve, so it is a program-derived account rather than a keypair wallet.")
	}

	return b.String()
}

// Short abbreviates an address for prose.
func Short(address string) string {
	if len(address) <= 12 {
		return address
	}
	return address[:4] + "…" + address[len(address)-4:]
}
