package helpers

import (
	"time"

	"nft-auction/internal/models"

	"github.com/shopspring/decimal"
)

// Request DTOs. Every field is optional: a missing address means the
// operator wallet, a missing bid amount means highest bid + min increment.
type StartAuctionRequest struct {
	SellerAddress string          `json:"sellerAddress"`
	NFTID         string          `json:"nftId"`
	NFTName       string          `json:"nftName"`
	Description   string          `json:"description"`
	EndTime       int             `json:"endTime" binding:"gte=0"`
	ReservePrice  decimal.Decimal `json:"reservePrice"`
	MinIncrement  decimal.Decimal `json:"minIncrement"`
	HideBidders   bool            `json:"hideBidders"`
	HideAmounts   bool            `json:"hideAmounts"`
}

type BidRequest struct {
	Bidder string          `json:"bidder"`
	Amount decimal.Decimal `json:"amount"`
}

type CallerRequest struct {
	Caller string `json:"caller"`
}

// LedgerResponse is the ledger as shown to clients
type LedgerResponse struct {
	AuctionStatus models.ContractStatus `json:"auctionStatus"`
	StatusName    string                `json:"statusName"`
	HighestBid    *decimal.Decimal      `json:"highestBid,omitempty"`
	TotalBids     int64                 `json:"totalBids"`
	Seller        string                `json:"seller,omitempty"`
	HighestBidder string                `json:"highestBidder,omitempty"`
}

// StatusResponse is the reply of GET /auction/status
type StatusResponse struct {
	AuctionStatus models.ContractStatus `json:"auctionStatus"`
	StatusName    string                `json:"statusName"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Contract  string `json:"contract"`
	Mode      string `json:"mode"`
	Timestamp string `json:"timestamp"`
}

// NewLedgerResponse renders ledger in full
func NewLedgerResponse(ledger models.ContractLedger) LedgerResponse {
	bid := ledger.HighestBid
	return LedgerResponse{
		AuctionStatus: ledger.AuctionStatus,
		StatusName:    ledger.AuctionStatus.Name(),
		HighestBid:    &bid,
		TotalBids:     ledger.TotalBids,
		Seller:        ledger.Seller,
		HighestBidder: ledger.HighestBidder,
	}
}

// NewPublicLedgerResponse renders ledger honoring the privacy flags of the listed NFT
func NewPublicLedgerResponse(ledger models.ContractLedger, data *models.AuctionData) LedgerResponse {
	resp := NewLedgerResponse(ledger)
	if data == nil {
		return resp
	}
	if data.HideBidders {
		resp.HighestBidder = ""
	}
	if data.HideAmounts {
		resp.HighestBid = nil
	}
	return resp
}

func NewHealthResponse(now time.Time) HealthResponse {
	return HealthResponse{
		Status:    "ok",
		Contract:  "nft-auction",
		Mode:      "local",
		Timestamp: now.UTC().Format(time.RFC3339),
	}
}
