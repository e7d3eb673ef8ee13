package risk

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solana-wallet-forensics/internal/domain"
	"solana-wallet-forensics/internal/profile"
	"solana-wallet-forensics/internal/registry"
	"solana-wallet-forensics/internal/testutil"
)

var fixedNow = time.Unix(1_800_000_000, 0)

func newTestScorer() *Scorer {
	return NewScorer(WithClock(func() time.Time { return fixedNow }))
}

func score(t *testing.T, txs []domain.Transaction) domain.RiskScore {
	t.Helper()
	subject := testutil.Addr("subject")
	return newTestScorer().Score(profile.Build(subject, txs, registry.Default()))
}

func hasSignal(flags []string, signal string) bool {
	for _, f := range flags {
		if strings.HasPrefix(f, signal+":") {
			return true
		}
	}
	return false
}

func TestScore_Dormant(t *testing.T) {
	got := score(t, nil)

	assert.Equal(t, 0, got.Score)
	assert.Equal(t, domain.RiskLow, got.Label)
	assert.Equal(t, domain.WalletTypeDormant, got.WalletType)
	assert.NotNil(t, got.Flags)
	assert.Empty(t, got.Flags)
}

func TestScore_LikelyMixer(t *testing.T) {
	base := fixedNow.Add(-30 * 24 * time.Hour).Unix()

	var txs []domain.Transaction
	for i := 0; i < 45; i++ {
		peer := testutil.Addr(fmt.Sprintf("peer%d", i%40))
		txs = append(txs, testutil.Tx(fmt.Sprint(i), base+int64(i*5), peer))
	}

	got := score(t, txs)

	assert.Equal(t, 85, got.Score)
	assert.Equal(t, domain.RiskHigh, got.Label)
	assert.Equal(t, domain.WalletTypeMixer, got.WalletType)
	require.Len(t, got.Flags, 3)
	assert.True(t, strings.HasPrefix(got.Flags[0], SignalHighVolume))
	assert.True(t, strings.HasPrefix(got.Flags[1], SignalHighChurn))
	assert.True(t, strings.HasPrefix(got.Flags[2], SignalBurst))
}

func TestScore_NewWallet(t *testing.T) {
	base := fixedNow.Add(-2 * 24 * time.Hour).Unix()

	txs := []domain.Transaction{
		testutil.Tx("3", base+7200, testutil.Addr("c")),
		testutil.Tx("2", base+3600, testutil.Addr("b")),
		testutil.Tx("1", base, testutil.Addr("a")),
	}

	got := score(t, txs)

	assert.Equal(t, 10, got.Score)
	assert.Equal(t, domain.RiskLow, got.Label)
	assert.Equal(t, domain.WalletTypeNew, got.WalletType)
	require.Len(t, got.Flags, 1)
	assert.True(t, hasSignal(got.Flags, SignalNewWallet))
}

func TestScore_PassThrough(t *testing.T) {
	base := fixedNow.Add(-60 * 24 * time.Hour).Unix()

	var txs []domain.Transaction
	for i := 0; i < 6; i++ {
		txs = append(txs, testutil.Tx(fmt.Sprint(i), base+int64(i)*86400, testutil.Addr(fmt.Sprint(i))))
	}

	got := score(t, txs)

	assert.Equal(t, PointsChurn+PointsPassThrough, got.Score)
	assert.Equal(t, domain.RiskMedium, got.Label)
	assert.Equal(t, domain.WalletTypePassThrough, got.WalletType)
	assert.True(t, hasSignal(got.Flags, SignalHighChurn))
	assert.True(t, hasSignal(got.Flags, SignalPassThrough))
}

func TestScore_SmallSampleSkipsPatternSignals(t *testing.T) {
	txs := []domain.Transaction{
		testutil.Tx("1", 0, testutil.Addr("a")),
		testutil.Tx("2", 0, testutil.Addr("b")),
	}

	got := score(t, txs)

	assert.Equal(t, 0, got.Score)
	assert.Equal(t, domain.WalletTypeNormal, got.WalletType)
}

func TestScore_ModerateVolumeNormalUser(t *testing.T) {
	base := fixedNow.Add(-90 * 24 * time.Hour).Unix()

	var txs []domain.Transaction
	for i := 0; i < 20; i++ {
		peer := testutil.Addr(fmt.Sprint(i % 4))
		txs = append(txs, testutil.Tx(fmt.Sprint(i), base+int64(i)*3600, peer))
	}

	got := score(t, txs)

	assert.Equal(t, PointsModerateVolume, got.Score)
	assert.Equal(t, domain.RiskLow, got.Label)
	assert.Equal(t, domain.WalletTypeNormal, got.WalletType)
	assert.True(t, hasSignal(got.Flags, SignalModerateVolume))
}

func TestScore_ClampedToMax(t *testing.T) {
	base := fixedNow.Add(-time.Hour).Unix()

	var txs []domain.Transaction
	for i := 0; i < 50; i++ {
		txs = append(txs, testutil.Tx(fmt.Sprint(i), base+int64(i), testutil.Addr(fmt.Sprint(i))))
	}

	got := score(t, txs)

	assert.Equal(t, MaxScore, got.Score)
	assert.Len(t, got.Flags, 5)
	assert.Equal(t, domain.WalletTypeMixer, got.WalletType)
}

func TestScore_BoundsHoldForVariedSamples(t *testing.T) {
	for n := 0; n <= 50; n += 5 {
		for repeat := 1; repeat <= 5; repeat++ {
			var txs []domain.Transaction
			for i := 0; i < n; i++ {
				txs = append(txs, testutil.Tx(fmt.Sprint(i), fixedNow.Unix()-int64(i), testutil.Addr(fmt.Sprint(i/repeat))))
			}
			got := score(t, txs)
			if got.Score < 0 || got.Score > MaxScore {
				t.Errorf("n=%d repeat=%d: score %d out of bounds", n, repeat, got.Score)
			}
			if got.Label != LabelFor(got.Score) {
				t.Errorf("n=%d repeat=%d: label %s inconsistent with score %d", n, repeat, got.Label, got.Score)
			}
		}
	}
}

func TestBurstWindowBoundary(t *testing.T) {
	build := func(span int64) []domain.Transaction {
		var txs []domain.Transaction
		for i := int64(0); i < BurstTxs; i++ {
			ts := 1_700_000_000 + i*span/(BurstTxs-1)
			txs = append(txs, testutil.Tx(fmt.Sprint(i), ts))
		}
		return txs
	}

	if _, ok := burstSize(build(300)); !ok {
		t.Error("expected 10 transactions over 300s to be a burst")
	}
	if _, ok := burstSize(build(310)); ok {
		t.Error("expected 10 transactions over 310s not to be a burst")
	}
}

func TestBurstIgnoresMissingTimestamps(t *testing.T) {
	var txs []domain.Transaction
	for i := 0; i < 9; i++ {
		txs = append(txs, testutil.Tx(fmt.Sprint(i), 1_700_000_000))
	}
	for i := 0; i < 5; i++ {
		txs = append(txs, testutil.Tx(fmt.Sprint("nt", i), 0))
	}

	if _, ok := burstSize(txs); ok {
		t.Error("expected transactions without block time to be ignored")
	}
}

func TestLabelFor(t *testing.T) {
	tests := []struct {
		score int
		want  domain.RiskLabel
	}{
		{0, domain.RiskLow},
		{32, domain.RiskLow},
		{33, domain.RiskMedium},
		{65, domain.RiskMedium},
		{66, domain.RiskHigh},
		{100, domain.RiskHigh},
	}
	for _, tt := range tests {
		if got := LabelFor(tt.score); got != tt.want {
			t.Errorf("LabelFor(%d) = %s, want %s", tt.score, got, tt.want)
		}
	}
}
