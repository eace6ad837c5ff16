// Package rules holds the auction and balance checks shared by the
// single-user auction engine and the contract runtime. Every function is
// pure: callers run the checks before mutating anything.
package rules

import (
	"fmt"
	"strings"

	"nft-auction/internal/auctionerrors"
	"nft-auction/internal/models"

	"github.com/shopspring/decimal"
)

// Token unit used in user-facing messages
const TokenUnit = "tNIGHT"

// HistoryLimit is the number of transaction log entries kept
const HistoryLimit = 50

var (
	// CreationFee is charged to the creator of every auction
	CreationFee = decimal.NewFromInt(100)
	// SingleUserGrant seeds a wallet on its first connect
	SingleUserGrant = decimal.NewFromInt(31337)
	// MultiUserGrant seeds each new address in the contract runtime
	MultiUserGrant = decimal.NewFromInt(10000)
	// TransactionFee is the flat fee of every contract state change
	TransactionFee = decimal.NewFromInt(5)
	// DefaultMinIncrement is the bid step used when a bid carries no amount
	DefaultMinIncrement = decimal.NewFromInt(100)
)

// NormalizeAddress trims an address and rejects a blank one
func NormalizeAddress(address string) (string, error) {
	trimmed := strings.TrimSpace(address)
	if trimmed == "" {
		return "", fmt.Errorf("address cannot be empty: %w", auctionerrors.ErrValidation)
	}
	return trimmed, nil
}

// ValidateListing checks the title and starting price of a new auction
func ValidateListing(title string, startingPrice decimal.Decimal) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("title cannot be empty: %w", auctionerrors.ErrValidation)
	}
	if !startingPrice.IsPositive() {
		return fmt.Errorf("starting price must be greater than 0: %w", auctionerrors.ErrValidation)
	}
	return nil
}

// CheckDebit rejects a debit that would make balance negative
func CheckDebit(balance, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("debit amount must not be negative: %w", auctionerrors.ErrValidation)
	}
	if balance.LessThan(amount) {
		return fmt.Errorf("need %s %s, have %s %s: %w",
			amount.String(), TokenUnit, balance.String(), TokenUnit, auctionerrors.ErrInsufficientBalance)
	}
	return nil
}

// CheckCredit rejects negative credits; there is no upper cap
func CheckCredit(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("credit amount must not be negative: %w", auctionerrors.ErrValidation)
	}
	return nil
}

// CheckBid validates a bid against the auction state.
// Order: state, amount, self-bid.
func CheckBid(status models.AuctionStatus, highestBid, amount decimal.Decimal, creator, bidder string) error {
	if status != models.StatusOpen {
		return fmt.Errorf("auction is not open (status %q): %w", status, auctionerrors.ErrInvalidState)
	}
	if amount.LessThanOrEqual(highestBid) {
		return fmt.Errorf("bid must be higher than current highest bid of %s %s: %w",
			highestBid.String(), TokenUnit, auctionerrors.ErrBidTooLow)
	}
	if creator == bidder {
		return auctionerrors.ErrSelfBid
	}
	return nil
}

// CheckEnd allows only the creator to end an open auction
func CheckEnd(status models.AuctionStatus, creator, caller string) error {
	if creator != caller {
		return fmt.Errorf("end auction: %w", auctionerrors.ErrNotCreator)
	}
	if status != models.StatusOpen {
		return fmt.Errorf("auction is already %s: %w", status, auctionerrors.ErrInvalidState)
	}
	return nil
}

// CheckSettle allows only the creator to settle an ended auction
func CheckSettle(status models.AuctionStatus, creator, caller string) error {
	if creator != caller {
		return fmt.Errorf("settle auction: %w", auctionerrors.ErrNotCreator)
	}
	if status != models.StatusEnded {
		return fmt.Errorf("auction must be ended before settlement (status %q): %w", status, auctionerrors.ErrInvalidState)
	}
	return nil
}

// CheckStart allows a contract to open a new auction only when idle or done
func CheckStart(status models.ContractStatus) error {
	if status != models.ContractInit && status != models.ContractDone {
		return fmt.Errorf("auction already running (status %s): %w", status.Name(), auctionerrors.ErrInvalidState)
	}
	return nil
}
