package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"nft-auction/internal/auctionerrors"
	"nft-auction/internal/models"

	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, dir string, args ...string) ([]byte, error) {
	t.Helper()
	var out bytes.Buffer
	err := run(context.Background(), append([]string{"--data", dir}, args...), &out)
	return out.Bytes(), err
}

func mustRun(t *testing.T, dir string, args ...string) []byte {
	t.Helper()
	out, err := runCLI(t, dir, args...)
	require.NoError(t, err, "auctionctl %v", args)
	return out
}

func TestRun_AuctionLifecycleAcrossInvocations(t *testing.T) {
	dir := t.TempDir()

	mustRun(t, dir, "connect", "alice")

	var created models.Auction
	require.NoError(t, json.Unmarshal(mustRun(t, dir, "create", "Mona Lisa NFT", "100"), &created))
	require.Equal(t, "alice", created.Creator)
	require.Equal(t, models.StatusOpen, created.Status)

	var w models.Wallet
	require.NoError(t, json.Unmarshal(mustRun(t, dir, "balance"), &w))
	require.Equal(t, "31237", w.Balance.String())

	mustRun(t, dir, "connect", "bob")
	_, err := runCLI(t, dir, "bid", created.ID, "90")
	require.ErrorIs(t, err, auctionerrors.ErrBidTooLow)
	mustRun(t, dir, "bid", created.ID, "150")

	var myBids []models.Auction
	require.NoError(t, json.Unmarshal(mustRun(t, dir, "mybids"), &myBids))
	require.Len(t, myBids, 1)

	_, err = runCLI(t, dir, "end", created.ID)
	require.ErrorIs(t, err, auctionerrors.ErrForbidden)

	mustRun(t, dir, "connect", "alice")
	mustRun(t, dir, "end", created.ID)

	var settled models.Auction
	require.NoError(t, json.Unmarshal(mustRun(t, dir, "settle", created.ID), &settled))
	require.Equal(t, models.StatusSettled, settled.Status)
	require.Equal(t, "150", settled.HighestBid.String())
	require.Equal(t, "bob", settled.HighestBidder)

	var shown models.Auction
	require.NoError(t, json.Unmarshal(mustRun(t, dir, "show", created.ID), &shown))
	require.Equal(t, models.StatusSettled, shown.Status)

	var history []models.TransactionRecord
	require.NoError(t, json.Unmarshal(mustRun(t, dir, "history"), &history))
	require.Equal(t, models.TxCredit, history[0].Type)
	require.Equal(t, "150", history[0].Amount.String())

	mustRun(t, dir, "clear")
	var all []models.Auction
	require.NoError(t, json.Unmarshal(mustRun(t, dir, "list"), &all))
	require.Empty(t, all)
}

func TestRun_Disconnected(t *testing.T) {
	dir := t.TempDir()

	mustRun(t, dir, "connect", "alice")
	mustRun(t, dir, "disconnect")

	_, err := runCLI(t, dir, "create", "Lot", "10")
	require.ErrorIs(t, err, auctionerrors.ErrWalletNotConnected)

	var mine []models.Auction
	require.NoError(t, json.Unmarshal(mustRun(t, dir, "mine"), &mine))
	require.Empty(t, mine)
}

// Tests argument errors
func TestRun_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no_command", args: nil},
		{name: "unknown_command", args: []string{"teleport"}},
		{name: "missing_address", args: []string{"connect"}},
		{name: "bad_amount", args: []string{"create", "Lot", "ten"}},
		{name: "extra_args", args: []string{"end", "a", "b"}},
		{name: "unknown_flag", args: []string{"--nope", "list"}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := runCLI(t, t.TempDir(), tc.args...)
			require.True(t, errors.Is(err, errUsage), "expected usage error, got: %v", err)
		})
	}
}
