package domain

// ScanEntry is the triage outcome for one extracted address.
// Exactly one of Risk or Error is set.
type ScanEntry struct {
	Wallet               string     `json:"wallet"`
	Risk                 *RiskScore `json:"risk,omitempty"`
	TxCount              int        `json:"tx_count,omitempty"`
	UniqueCounterparties int        `json:"unique_counterparties,omitempty"`
	Error                string     `json:"error,omitempty"`
}

// Failed reports whether the entry carries an error instead of a score.
func (e *ScanEntry) Failed() bool {
	return e.Risk == nil
}

// ScanResult is the ranked triage of all addresses found in one document.
// Analyzed counts entries that produced a score.
type ScanResult struct {
	Found    int         `json:"found"`
	Analyzed int         `json:"analyzed"`
	Results  []ScanEntry `json:"results"`
}
