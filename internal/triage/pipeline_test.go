package triage

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solana-wallet-forensics/internal/fetcher"
	"solana-wallet-forensics/internal/registry"
	"solana-wallet-forensics/internal/risk"
	"solana-wallet-forensics/internal/solana"
	"solana-wallet-forensics/internal/solana/stub"
	"solana-wallet-forensics/internal/testutil"
)

func newPipeline(rpc *stub.RPCClient, cfg Config) *Pipeline {
	reg := registry.Default()
	return NewPipeline(fetcher.NewRPCFetcher(rpc, reg), reg, risk.NewScorer(), cfg, nil)
}

func TestScan_OneFailureDoesNotAbortBatch(t *testing.T) {
	quiet, busy, broken := testutil.Addr("quiet"), testutil.Addr("busy"), testutil.Addr("broken")
	old := time.Now().Add(-90 * 24 * time.Hour).Unix()

	rpc := stub.NewRPCClient()
	for i := 0; i < 20; i++ {
		rpc.AddTransfer(fmt.Sprint("busy", i), busy, testutil.Addr(fmt.Sprint(i%3)), testutil.Ptr(old+int64(i)*3600))
	}
	rpc.Failures[broken] = fmt.Errorf("attempt timed out: %w", solana.ErrUnavailable)

	doc := fmt.Sprintf("first %s then %s and finally %s", broken, quiet, busy)

	res, err := newPipeline(rpc, DefaultConfig()).Scan(context.Background(), doc)
	require.NoError(t, err)

	assert.Equal(t, 3, res.Found)
	assert.Equal(t, 2, res.Analyzed)
	require.Len(t, res.Results, 3)

	assert.Equal(t, busy, res.Results[0].Wallet)
	assert.Equal(t, risk.PointsModerateVolume, res.Results[0].Risk.Score)
	assert.Equal(t, 20, res.Results[0].TxCount)
	assert.Equal(t, 3, res.Results[0].UniqueCounterparties)

	assert.Equal(t, quiet, res.Results[1].Wallet)
	assert.Equal(t, 0, res.Results[1].Risk.Score)

	last := res.Results[2]
	assert.Equal(t, broken, last.Wallet)
	assert.True(t, last.Failed())
	assert.NotEmpty(t, last.Error)
}

func TestScan_SortedByScoreStable(t *testing.T) {
	a, b, c := testutil.Addr("a"), testutil.Addr("b"), testutil.Addr("c")
	rpc := stub.NewRPCClient()

	res, err := newPipeline(rpc, DefaultConfig()).Scan(context.Background(), strings.Join([]string{a, b, c}, "\n"))
	require.NoError(t, err)

	require.Len(t, res.Results, 3)
	for i, want := range []string{a, b, c} {
		assert.Equal(t, want, res.Results[i].Wallet)
	}
}

func TestScan_MaxAddresses(t *testing.T) {
	var lines []string
	for i := 0; i < 5; i++ {
		lines = append(lines, testutil.Addr(fmt.Sprint(i)))
	}

	rpc := stub.NewRPCClient()
	res, err := newPipeline(rpc, Config{MaxAddresses: 2}).Scan(context.Background(), strings.Join(lines, " "))
	require.NoError(t, err)

	assert.Equal(t, 5, res.Found)
	assert.Equal(t, 2, res.Analyzed)
	assert.Len(t, res.Results, 2)
	assert.Equal(t, 2, rpc.Calls("getSignaturesForAddress"))
}

func TestScan_NoAddresses(t *testing.T) {
	res, err := newPipeline(stub.NewRPCClient(), DefaultConfig()).Scan(context.Background(), "nothing to see")
	require.NoError(t, err)

	assert.Equal(t, 0, res.Found)
	assert.Equal(t, 0, res.Analyzed)
	assert.NotNil(t, res.Results)
	assert.Empty(t, res.Results)
}

func TestScan_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newPipeline(stub.NewRPCClient(), DefaultConfig()).Scan(ctx, testutil.Addr("a"))
	assert.ErrorIs(t, err, context.Canceled)
}
