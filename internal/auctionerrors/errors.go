package auctionerrors

import (
	"errors"
	"fmt"
)

// Repository-level errors
var (
	ErrRecordNotFound = errors.New("record not found")
)

// Error kinds raised by the wallet, auction and contract rules
var (
	ErrValidation          = errors.New("validation error")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrNotFound            = errors.New("not found")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidState        = errors.New("invalid state")
)

// business logic errors
var (
	ErrBidTooLow          = fmt.Errorf("bid amount too low: %w", ErrValidation)
	ErrAuctionNotFound    = fmt.Errorf("auction %w", ErrNotFound)
	ErrSelfBid            = fmt.Errorf("cannot bid on your own auction: %w", ErrForbidden)
	ErrNotCreator         = fmt.Errorf("only the creator can do this: %w", ErrForbidden)
	ErrWalletNotConnected = fmt.Errorf("wallet not connected: %w", ErrForbidden)
)
