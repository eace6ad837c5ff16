package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet is the persisted single-user wallet record
type Wallet struct {
	Address   string          `json:"address,omitempty"`
	Balance   decimal.Decimal `json:"balance"`
	Connected bool            `json:"connected"`
}

// TransactionType tags an entry of the transaction log
type TransactionType string

const (
	TxConnect    TransactionType = "CONNECT"
	TxDisconnect TransactionType = "DISCONNECT"
	TxDebit      TransactionType = "DEBIT"
	TxCredit     TransactionType = "CREDIT"

	// contract runtime lifecycle tags
	TxStartAuction     TransactionType = "START_AUCTION"
	TxRecordBid        TransactionType = "RECORD_BID"
	TxEndAuction       TransactionType = "END_AUCTION"
	TxSettle           TransactionType = "SETTLE"
	TxSettlementPayout TransactionType = "SETTLEMENT_PAYOUT"
)

// TransactionRecord is one entry of an append-only transaction log
type TransactionRecord struct {
	ID        string           `json:"id"`
	Type      TransactionType  `json:"type"`
	Amount    decimal.Decimal  `json:"amount"`
	Fee       *decimal.Decimal `json:"fee,omitempty"`
	Total     *decimal.Decimal `json:"total,omitempty"`
	Reason    string           `json:"reason"`
	Balance   decimal.Decimal  `json:"balance"`
	Timestamp time.Time        `json:"timestamp"`
	Address   string           `json:"address,omitempty"`
}

// PrependCapped puts tx in front of history and drops entries beyond limit.
// The returned slice never aliases history.
func PrependCapped(history []TransactionRecord, tx TransactionRecord, limit int) []TransactionRecord {
	n := len(history) + 1
	if n > limit {
		n = limit
	}
	out := make([]TransactionRecord, 0, n)
	out = append(out, tx)
	for _, h := range history {
		if len(out) == n {
			break
		}
		out = append(out, h)
	}
	return out
}

// AuctionStatus is the lifecycle state of an auction
type AuctionStatus string

const (
	StatusOpen    AuctionStatus = "open"
	StatusEnded   AuctionStatus = "ended"
	StatusSettled AuctionStatus = "settled"
)

// ContractStatus is the numeric status stored by the contract ledger
type ContractStatus int

const (
	ContractInit ContractStatus = iota
	ContractOpen
	ContractClosed
	ContractDone
)

// Name returns the display name of a contract status code
func (s ContractStatus) Name() string {
	switch s {
	case ContractInit:
		return "Init"
	case ContractOpen:
		return "Open"
	case ContractClosed:
		return "Closed"
	case ContractDone:
		return "Done"
	default:
		return "Unknown"
	}
}

// AuctionStatus maps a contract status code onto the auction lifecycle.
// Init has no auction status and returns "".
func (s ContractStatus) AuctionStatus() AuctionStatus {
	switch s {
	case ContractOpen:
		return StatusOpen
	case ContractClosed:
		return StatusEnded
	case ContractDone:
		return StatusSettled
	default:
		return ""
	}
}

// BidRecord is a single accepted bid
type BidRecord struct {
	Bidder    string          `json:"bidder"`
	Amount    decimal.Decimal `json:"amount"`
	Timestamp time.Time       `json:"timestamp"`
}

// Auction represents a single lot in the auction ledger
type Auction struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	StartingPrice decimal.Decimal `json:"startingPrice"`
	HighestBid    decimal.Decimal `json:"highestBid"`
	HighestBidder string          `json:"highestBidder,omitempty"`
	Creator       string          `json:"creator"`
	Status        AuctionStatus   `json:"status"`
	Bids          []BidRecord     `json:"bids"`
	CreatedAt     time.Time       `json:"createdAt"`
	EndedAt       *time.Time      `json:"endedAt,omitempty"`
	SettledAt     *time.Time      `json:"settledAt,omitempty"`
}

// Clone returns a deep copy so callers cannot mutate ledger state
func (a Auction) Clone() Auction {
	c := a
	c.Bids = append([]BidRecord(nil), a.Bids...)
	if a.EndedAt != nil {
		t := *a.EndedAt
		c.EndedAt = &t
	}
	if a.SettledAt != nil {
		t := *a.SettledAt
		c.SettledAt = &t
	}
	return c
}

// AuctionData describes the NFT listed on the contract runtime
type AuctionData struct {
	SellerAddress string          `json:"sellerAddress"`
	NFTID         string          `json:"nftId,omitempty"`
	NFTName       string          `json:"nftName"`
	Description   string          `json:"description,omitempty"`
	EndTime       int             `json:"endTime,omitempty"` // hours
	ReservePrice  decimal.Decimal `json:"reservePrice"`
	MinIncrement  decimal.Decimal `json:"minIncrement"`
	HideBidders   bool            `json:"hideBidders"`
	HideAmounts   bool            `json:"hideAmounts"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ContractLedger is the public state of the mock contract
type ContractLedger struct {
	AuctionStatus ContractStatus  `json:"auctionStatus"`
	HighestBid    decimal.Decimal `json:"highestBid"`
	TotalBids     int64           `json:"totalBids"`
	Seller        string          `json:"seller,omitempty"`
	HighestBidder string          `json:"highestBidder,omitempty"`
}

// ContractSnapshot is everything the contract runtime persists. Each address
// keeps its own transaction log, capped independently.
type ContractSnapshot struct {
	Ledger       ContractLedger                 `json:"ledger"`
	AuctionData  *AuctionData                   `json:"auctionData,omitempty"`
	Balances     map[string]decimal.Decimal     `json:"balances"`
	Transactions map[string][]TransactionRecord `json:"transactions"`
}

// WalletInfo is the public view of a runtime wallet
type WalletInfo struct {
	Address           string          `json:"address"`
	Balance           decimal.Decimal `json:"balance"`
	ShieldedAddress   string          `json:"shieldedAddress,omitempty"`
	UnshieldedAddress string          `json:"unshieldedAddress,omitempty"`
	TransactionCount  int             `json:"transactionCount"`
	ContractAddress   string          `json:"contractAddress"`
}
