// Package risk scores wallet profiles and classifies their behaviour.
package risk

import (
	"fmt"
	"sort"
	"time"

	"solana-wallet-forensics/internal/domain"
)

// Signal thresholds and weights.
const (
	HighVolumeTxs     = 40
	ModerateVolumeTxs = 15
	ChurnRatio        = 0.85
	BurstTxs          = 10
	BurstWindow       = 5 * time.Minute
	NewWalletAge      = 7 * 24 * time.Hour

	// MinPatternSample is the smallest sample on which ratio-based signals
	// (churn, pass-through) are evaluated. A wallet with only a handful of
	// one-off transfers is new and quiet, not a mixer: below this size it
	// scores NEW_WALLET alone and stays LOW.
	MinPatternSample = 5

	PointsHighVolume     = 40
	PointsModerateVolume = 20
	PointsChurn          = 20
	PointsBurst          = 25
	PointsPassThrough    = 15
	PointsNewWallet      = 10

	MaxScore = 100
)

// Label cut-offs: score >= HighThreshold is HIGH, >= MediumThreshold MEDIUM.
const (
	HighThreshold   = 66
	MediumThreshold = 33
)

// Signal codes prefix every flag.
const (
	SignalHighVolume     = "HIGH_VOLUME"
	SignalModerateVolume = "MODERATE_VOLUME"
	SignalHighChurn      = "HIGH_CHURN"
	SignalBurst          = "BURST_ACTIVITY"
	SignalPassThrough    = "PASS_THROUGH"
	SignalNewWallet      = "NEW_WALLET"
)

// Scorer computes RiskScore values. It is pure apart from its clock.
type Scorer struct {
	now func() time.Time
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithClock overrides the wall clock used for wallet age.
func WithClock(now func() time.Time) Option {
	return func(s *Scorer) {
		s.now = now
	}
}

// NewScorer creates a scorer.
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score evaluates every signal in fixed order and classifies the wallet.
func (s *Scorer) Score(p domain.WalletProfile) domain.RiskScore {
	if p.TxCount == 0 {
		return domain.RiskScore{
			Score:      0,
			Label:      domain.RiskLow,
			Flags:      []string{},
			WalletType: domain.WalletTypeDormant,
		}
	}

	var (
		score int
		flags = []string{}
		churn bool
		burst bool
		relay bool
		young bool
	)

	switch {
	case p.TxCount >= HighVolumeTxs:
		score += PointsHighVolume
		flags = append(flags, fmt.Sprintf("%s: %d transactions in recent sample", SignalHighVolume, p.TxCount))
	case p.TxCount >= ModerateVolumeTxs:
		score += PointsModerateVolume
		flags = append(flags, fmt.Sprintf("%s: %d transactions in recent sample", SignalModerateVolume, p.TxCount))
	}

	ratio := float64(p.UniqueCounterparties) / float64(p.TxCount)
	if p.TxCount >= MinPatternSample && ratio > ChurnRatio {
		churn = true
		score += PointsChurn
		flags = append(flags, fmt.Sprintf("%s: %d of %d transactions went to distinct counterparties (%.0f%%)",
			SignalHighChurn, p.UniqueCounterparties, p.TxCount, ratio*100))
	}

	if n, ok := burstSize(p.RecentTransactions); ok {
		burst = true
		score += PointsBurst
		flags = append(flags, fmt.Sprintf("%s: %d transactions within %s", SignalBurst, n, BurstWindow))
	}

	if p.TxCount >= MinPatternSample && noRepeats(p.TopCounterparties) {
		relay = true
		score += PointsPassThrough
		flags = append(flags, fmt.Sprintf("%s: none of %d counterparties seen more than once", SignalPassThrough, len(p.TopCounterparties)))
	}

	if p.FirstSeen != nil {
		if age := s.now().Sub(*p.FirstSeen); age < NewWalletAge {
			young = true
			score += PointsNewWallet
			flags = append(flags, fmt.Sprintf("%s: first seen %s ago", SignalNewWallet, age.Truncate(time.Minute)))
		}
	}

	if score > MaxScore {
		score = MaxScore
	}

	var walletType string
	switch {
	case burst && churn:
		walletType = domain.WalletTypeMixer
	case relay:
		walletType = domain.WalletTypePassThrough
	case young:
		walletType = domain.WalletTypeNew
	case score >= HighThreshold:
		walletType = domain.WalletTypeHighActivity
	default:
		walletType = domain.WalletTypeNormal
	}

	return domain.RiskScore{
		Score:      score,
		Label:      LabelFor(score),
		Flags:      flags,
		WalletType: walletType,
	}
}

// LabelFor maps a score onto its qualitative band.
func LabelFor(score int) domain.RiskLabel {
	switch {
	case score >= HighThreshold:
		return domain.RiskHigh
	case score >= MediumThreshold:
		return domain.RiskMedium
	default:
		return domain.RiskLow
	}
}

func noRepeats(top []domain.CounterpartyCount) bool {
	if len(top) == 0 {
		return false
	}
	for _, c := range top {
		if c.Count != 1 {
			return false
		}
	}
	return true
}

// burstSize reports the largest number of timestamped transactions falling
// in one BurstWindow, and whether it reaches BurstTxs.
// Transactions without a block time are ignored.
func burstSize(txs []domain.Transaction) (int, bool) {
	times := make([]int64, 0, len(txs))
	for i := range txs {
		if txs[i].BlockTime != nil {
			times = append(times, *txs[i].BlockTime)
		}
	}
	if len(times) < BurstTxs {
		return 0, false
	}
	sort.Slice(times, func(i, j int) bool { return times[i] < times[j] })

	window := int64(BurstWindow / time.Second)
	best, lo := 0, 0
	for hi := range times {
		for times[hi]-times[lo] > window {
			lo++
		}
		if n := hi - lo + 1; n > best {
			best = n
		}
	}
	return best, best >= BurstTxs
}
