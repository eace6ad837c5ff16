package rules

import (
	"errors"
	"testing"

	"nft-auction/internal/auctionerrors"
	"nft-auction/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestNormalizeAddress(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      string
		wantError bool
	}{
		{name: "plain", input: "alice", want: "alice"},
		{name: "trimmed", input: "  bob\t", want: "bob"},
		{name: "empty", input: "", wantError: true},
		{name: "whitespace_only", input: "   ", wantError: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := NormalizeAddress(tc.input)
			if tc.wantError {
				require.ErrorIs(t, err, auctionerrors.ErrValidation)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestValidateListing(t *testing.T) {
	tests := []struct {
		name      string
		title     string
		price     decimal.Decimal
		wantError bool
	}{
		{name: "valid", title: "Mona", price: d(100)},
		{name: "fractional_price", title: "Mona", price: decimal.RequireFromString("0.5")},
		{name: "blank_title", title: "  ", price: d(100), wantError: true},
		{name: "zero_price", title: "Mona", price: d(0), wantError: true},
		{name: "negative_price", title: "Mona", price: d(-1), wantError: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateListing(tc.title, tc.price)
			if tc.wantError {
				require.ErrorIs(t, err, auctionerrors.ErrValidation)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestCheckDebit(t *testing.T) {
	require.NoError(t, CheckDebit(d(100), d(100)))
	require.NoError(t, CheckDebit(d(100), d(0)))
	require.ErrorIs(t, CheckDebit(d(99), d(100)), auctionerrors.ErrInsufficientBalance)
	require.ErrorIs(t, CheckDebit(d(100), d(-1)), auctionerrors.ErrValidation)

	err := CheckDebit(d(10), d(150))
	require.Contains(t, err.Error(), "need 150 tNIGHT, have 10 tNIGHT")
}

func TestCheckBid(t *testing.T) {
	tests := []struct {
		name     string
		status   models.AuctionStatus
		highest  int64
		amount   int64
		creator  string
		bidder   string
		expected error
	}{
		{name: "valid", status: models.StatusOpen, highest: 100, amount: 150, creator: "alice", bidder: "bob"},
		{name: "equal_amount", status: models.StatusOpen, highest: 100, amount: 100, creator: "alice", bidder: "bob", expected: auctionerrors.ErrBidTooLow},
		{name: "lower_amount", status: models.StatusOpen, highest: 150, amount: 120, creator: "alice", bidder: "bob", expected: auctionerrors.ErrBidTooLow},
		{name: "self_bid", status: models.StatusOpen, highest: 100, amount: 150, creator: "alice", bidder: "alice", expected: auctionerrors.ErrForbidden},
		{name: "ended", status: models.StatusEnded, highest: 100, amount: 150, creator: "alice", bidder: "bob", expected: auctionerrors.ErrInvalidState},
		{name: "settled", status: models.StatusSettled, highest: 100, amount: 150, creator: "alice", bidder: "bob", expected: auctionerrors.ErrInvalidState},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := CheckBid(tc.status, d(tc.highest), d(tc.amount), tc.creator, tc.bidder)
			if tc.expected == nil {
				require.NoError(t, err)
				return
			}
			require.True(t, errors.Is(err, tc.expected), "expected error: %v, got: %v", tc.expected, err)
		})
	}
}

func TestBidTooLowIsValidationError(t *testing.T) {
	err := CheckBid(models.StatusOpen, d(150), d(120), "alice", "bob")
	require.ErrorIs(t, err, auctionerrors.ErrValidation)
	require.Contains(t, err.Error(), "current highest bid of 150 tNIGHT")
}

func TestCheckEndAndSettle(t *testing.T) {
	require.NoError(t, CheckEnd(models.StatusOpen, "alice", "alice"))
	require.ErrorIs(t, CheckEnd(models.StatusOpen, "alice", "bob"), auctionerrors.ErrForbidden)
	require.ErrorIs(t, CheckEnd(models.StatusEnded, "alice", "alice"), auctionerrors.ErrInvalidState)
	require.ErrorIs(t, CheckEnd(models.StatusSettled, "alice", "alice"), auctionerrors.ErrInvalidState)

	require.NoError(t, CheckSettle(models.StatusEnded, "alice", "alice"))
	require.ErrorIs(t, CheckSettle(models.StatusEnded, "alice", "bob"), auctionerrors.ErrForbidden)
	require.ErrorIs(t, CheckSettle(models.StatusOpen, "alice", "alice"), auctionerrors.ErrInvalidState)
	require.ErrorIs(t, CheckSettle(models.StatusSettled, "alice", "alice"), auctionerrors.ErrInvalidState)

	// role is checked before state
	require.ErrorIs(t, CheckEnd(models.StatusEnded, "alice", "bob"), auctionerrors.ErrForbidden)
	require.ErrorIs(t, CheckSettle(models.StatusOpen, "alice", "bob"), auctionerrors.ErrForbidden)
}

func TestCheckStart(t *testing.T) {
	require.NoError(t, CheckStart(models.ContractInit))
	require.NoError(t, CheckStart(models.ContractDone))
	require.ErrorIs(t, CheckStart(models.ContractOpen), auctionerrors.ErrInvalidState)
	require.ErrorIs(t, CheckStart(models.ContractClosed), auctionerrors.ErrInvalidState)
}
