package handler

//go:generate mockgen -source=contract_handler.go -destination=mock_contract_runtime.go -package=handler

import (
	"context"
	"net/http"
	"time"

	contract "nft-auction/internal/contractRuntime"
	"nft-auction/internal/models"
	"nft-auction/services/contract/helpers"
	"nft-auction/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type ContractRuntimeInterface interface {
	StartAuction(ctx context.Context, params contract.AuctionParams) (contract.Result, error)
	RecordBid(ctx context.Context, bidder string, amount decimal.Decimal) (contract.Result, error)
	EndAuction(ctx context.Context, caller string) (contract.Result, error)
	Settle(ctx context.Context, caller string) (contract.Result, error)
	Status() models.ContractStatus
	State() contract.State
	Wallet(address string) models.WalletInfo
	Transactions(address string) []models.TransactionRecord
	Reset(ctx context.Context) error
}

type ContractHandler struct {
	runtime ContractRuntimeInterface
	now     func() time.Time
}

func NewContractHandler(runtime ContractRuntimeInterface) *ContractHandler {
	return &ContractHandler{runtime: runtime, now: time.Now}
}

// HealthHandler handles GET /health
func (h *ContractHandler) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, helpers.NewHealthResponse(h.now()))
}

// StateHandler handles GET /state
func (h *ContractHandler) StateHandler(c *gin.Context) {
	state := h.runtime.State()
	utils.JSONResponse(c, http.StatusOK, gin.H{
		"state":           helpers.NewPublicLedgerResponse(state.Ledger, state.AuctionData),
		"auctionData":     state.AuctionData,
		"wallet":          state.Wallet,
		"contractAddress": state.ContractAddress,
	}, "")
}

// StartAuctionHandler handles POST /auction/start
func (h *ContractHandler) StartAuctionHandler(c *gin.Context) {
	var req helpers.StartAuctionRequest
	if err := helpers.BindOptionalJSON(c, &req); err != nil {
		helpers.HandleBindError(c, "StartAuctionHandler", err)
		return
	}

	res, err := h.runtime.StartAuction(c.Request.Context(), contract.AuctionParams{
		SellerAddress: req.SellerAddress,
		NFTID:         req.NFTID,
		NFTName:       req.NFTName,
		Description:   req.Description,
		EndTime:       req.EndTime,
		ReservePrice:  req.ReservePrice,
		MinIncrement:  req.MinIncrement,
		HideBidders:   req.HideBidders,
		HideAmounts:   req.HideAmounts,
	})
	if err != nil {
		helpers.HandleCallError(c, "StartAuctionHandler", "Failed to start auction", err)
		return
	}

	respondResult(c, res, "Auction started", gin.H{"auctionData": res.AuctionData})
	helpers.LogSuccess("StartAuctionHandler", "auction started", map[string]any{
		"seller":        res.Ledger.Seller,
		"reserve_price": res.Ledger.HighestBid.String(),
	})
}

// RecordBidHandler handles POST /auction/bid
func (h *ContractHandler) RecordBidHandler(c *gin.Context) {
	var req helpers.BidRequest
	if err := helpers.BindOptionalJSON(c, &req); err != nil {
		helpers.HandleBindError(c, "RecordBidHandler", err)
		return
	}

	res, err := h.runtime.RecordBid(c.Request.Context(), req.Bidder, req.Amount)
	if err != nil {
		helpers.HandleCallError(c, "RecordBidHandler", "Failed to record bid", err)
		return
	}

	respondResult(c, res, "Bid recorded", nil)
	helpers.LogSuccess("RecordBidHandler", "bid recorded", map[string]any{
		"bidder": res.Ledger.HighestBidder,
		"amount": res.Ledger.HighestBid.String(),
	})
}

// EndAuctionHandler handles POST /auction/end
func (h *ContractHandler) EndAuctionHandler(c *gin.Context) {
	var req helpers.CallerRequest
	if err := helpers.BindOptionalJSON(c, &req); err != nil {
		helpers.HandleBindError(c, "EndAuctionHandler", err)
		return
	}

	res, err := h.runtime.EndAuction(c.Request.Context(), req.Caller)
	if err != nil {
		helpers.HandleCallError(c, "EndAuctionHandler", "Failed to end auction", err)
		return
	}

	respondResult(c, res, "Auction ended", nil)
	helpers.LogSuccess("EndAuctionHandler", "auction ended", map[string]any{"seller": res.Ledger.Seller})
}

// SettleHandler handles POST /auction/settle
func (h *ContractHandler) SettleHandler(c *gin.Context) {
	var req helpers.CallerRequest
	if err := helpers.BindOptionalJSON(c, &req); err != nil {
		helpers.HandleBindError(c, "SettleHandler", err)
		return
	}

	res, err := h.runtime.Settle(c.Request.Context(), req.Caller)
	if err != nil {
		helpers.HandleCallError(c, "SettleHandler", "Failed to settle auction", err)
		return
	}

	respondResult(c, res, "Auction settled", nil)
	helpers.LogSuccess("SettleHandler", "auction settled", map[string]any{
		"seller": res.Ledger.Seller,
		"payout": res.Ledger.HighestBid.String(),
	})
}

// StatusHandler handles GET /auction/status
func (h *ContractHandler) StatusHandler(c *gin.Context) {
	status := h.runtime.Status()
	utils.JSONResponse(c, http.StatusOK, gin.H{
		"state": helpers.StatusResponse{AuctionStatus: status, StatusName: status.Name()},
	}, "")
}

// TopBidHandler handles GET /auction/topbid. topBid is null while the listing hides amounts.
func (h *ContractHandler) TopBidHandler(c *gin.Context) {
	state := h.runtime.State()
	ledger := helpers.NewPublicLedgerResponse(state.Ledger, state.AuctionData)
	utils.JSONResponse(c, http.StatusOK, gin.H{"topBid": ledger.HighestBid}, "")
}

// WalletHandler handles GET /wallet?address=
func (h *ContractHandler) WalletHandler(c *gin.Context) {
	utils.JSONResponse(c, http.StatusOK, gin.H{"wallet": h.runtime.Wallet(c.Query("address"))}, "")
}

// TransactionsHandler handles GET /wallet/transactions?address=
func (h *ContractHandler) TransactionsHandler(c *gin.Context) {
	txs := h.runtime.Transactions(c.Query("address"))
	if txs == nil {
		txs = []models.TransactionRecord{}
	}
	utils.JSONResponse(c, http.StatusOK, gin.H{"transactions": txs, "count": len(txs)}, "")
}

// ResetHandler handles POST /reset
func (h *ContractHandler) ResetHandler(c *gin.Context) {
	if err := h.runtime.Reset(c.Request.Context()); err != nil {
		helpers.HandleCallError(c, "ResetHandler", "Failed to reset contract", err)
		return
	}
	utils.JSONResponse(c, http.StatusOK, nil, "Contract reset to initial state")
	helpers.LogSuccess("ResetHandler", "contract reset", nil)
}

func respondResult(c *gin.Context, res contract.Result, message string, extra gin.H) {
	payload := gin.H{
		"state":         helpers.NewPublicLedgerResponse(res.Ledger, res.AuctionData),
		"transaction":   res.Transaction,
		"walletBalance": res.WalletBalance,
	}
	for k, v := range extra {
		payload[k] = v
	}
	utils.JSONResponse(c, http.StatusOK, payload, message)
}
