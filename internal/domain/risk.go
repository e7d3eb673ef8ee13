package domain

// RiskLabel is the qualitative band of a risk score.
type RiskLabel string

const (
	RiskLow    RiskLabel = "LOW"
	RiskMedium RiskLabel = "MEDIUM"
	RiskHigh   RiskLabel = "HIGH"
)

// Behavioural classifications, in decision-list priority order.
const (
	WalletTypeDormant      = "DORMANT"
	WalletTypeMixer        = "LIKELY MIXER / AUTOMATED"
	WalletTypePassThrough  = "PASS-THROUGH / RELAY"
	WalletTypeNew          = "NEW / UNESTABLISHED"
	WalletTypeHighActivity = "HIGH ACTIVITY — REVIEW REQUIRED"
	WalletTypeNormal       = "NORMAL USER"
)

// RiskScore is the composite score for one wallet.
// Score is always within [0, 100]; Flags are in evaluation order.
type RiskScore struct {
	Score      int       `json:"score"`
	Label      RiskLabel `json:"label"`
	Flags      []string  `json:"flags"`
	WalletType string    `json:"wallet_type"`
}
