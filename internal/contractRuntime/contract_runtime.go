package contract

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"nft-auction/internal/auctionerrors"
	"nft-auction/internal/events"
	"nft-auction/internal/models"
	"nft-auction/internal/repository"
	"nft-auction/internal/rules"
	"nft-auction/utils"

	"github.com/shopspring/decimal"
)

// Options configures a ContractRuntime
type Options struct {
	Fee               decimal.Decimal
	Grant             decimal.Decimal
	OperatorAddress   string
	UnshieldedAddress string
	ContractAddress   string
}

// AuctionParams describes the NFT put up by StartAuction
type AuctionParams struct {
	SellerAddress string
	NFTID         string
	NFTName       string
	Description   string
	EndTime       int
	ReservePrice  decimal.Decimal
	MinIncrement  decimal.Decimal
	HideBidders   bool
	HideAmounts   bool
}

// Result is returned by every state-changing call
type Result struct {
	Ledger        models.ContractLedger
	AuctionData   *models.AuctionData
	Transaction   models.TransactionRecord
	WalletBalance decimal.Decimal
}

// State is the read-only view of the whole contract
type State struct {
	Ledger          models.ContractLedger
	AuctionData     *models.AuctionData
	Wallet          models.WalletInfo
	ContractAddress string
}

// ContractRuntime is the mock contract behind the HTTP server: one shared
// auction ledger and a balance per address. Every state change costs its
// operation amount plus a flat fee, charged before anything is mutated.
type ContractRuntime struct {
	mu        sync.Mutex
	store     repository.Store
	publisher events.Publisher
	opts      Options
	now       func() time.Time
	snap      models.ContractSnapshot
}

// NewContractRuntime loads the persisted snapshot, or starts from Init
func NewContractRuntime(ctx context.Context, store repository.Store, publisher events.Publisher, opts Options) (*ContractRuntime, error) {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if opts.Fee.IsNegative() {
		return nil, fmt.Errorf("runtime: transaction fee must not be negative: %w", auctionerrors.ErrValidation)
	}
	if !opts.Grant.IsPositive() {
		opts.Grant = rules.MultiUserGrant
	}
	if strings.TrimSpace(opts.OperatorAddress) == "" {
		return nil, fmt.Errorf("runtime: operator address is required: %w", auctionerrors.ErrValidation)
	}

	r := &ContractRuntime{
		store:     store,
		publisher: publisher,
		opts:      opts,
		now:       func() time.Time { return time.Now().UTC() },
		snap:      emptySnapshot(),
	}

	found, err := repository.LoadJSON(ctx, store, repository.KeyContract, &r.snap)
	if err != nil {
		return nil, fmt.Errorf("runtime: failed to load contract state: %w", err)
	}
	if found && r.snap.Balances == nil {
		r.snap.Balances = map[string]decimal.Decimal{}
	}
	if found && r.snap.Transactions == nil {
		r.snap.Transactions = map[string][]models.TransactionRecord{}
	}
	return r, nil
}

// StartAuction opens a new auction. Allowed from Init or after a settled one.
func (r *ContractRuntime) StartAuction(ctx context.Context, params AuctionParams) (Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	seller, err := r.actor(params.SellerAddress)
	if err != nil {
		return Result{}, fmt.Errorf("runtime: start auction: %w", err)
	}
	if err := rules.CheckStart(r.snap.Ledger.AuctionStatus); err != nil {
		return Result{}, fmt.Errorf("runtime: start auction: %w", err)
	}
	if params.ReservePrice.IsNegative() {
		return Result{}, fmt.Errorf("runtime: reserve price must not be negative: %w", auctionerrors.ErrValidation)
	}
	minIncrement := params.MinIncrement
	if !minIncrement.IsPositive() {
		minIncrement = rules.DefaultMinIncrement
	}

	next := cloneSnapshot(r.snap)
	tx, err := r.charge(&next, seller, rules.CreationFee, models.TxStartAuction, "startAuction")
	if err != nil {
		return Result{}, fmt.Errorf("runtime: start auction: %w", err)
	}

	next.AuctionData = &models.AuctionData{
		SellerAddress: seller,
		NFTID:         params.NFTID,
		NFTName:       strings.TrimSpace(params.NFTName),
		Description:   params.Description,
		EndTime:       params.EndTime,
		ReservePrice:  params.ReservePrice,
		MinIncrement:  minIncrement,
		HideBidders:   params.HideBidders,
		HideAmounts:   params.HideAmounts,
		CreatedAt:     r.now(),
	}
	next.Ledger = models.ContractLedger{
		AuctionStatus: models.ContractOpen,
		HighestBid:    params.ReservePrice,
		Seller:        seller,
	}

	if err := r.commit(ctx, next); err != nil {
		return Result{}, err
	}

	events.Emit(ctx, r.publisher, events.NewEvent(events.AuctionCreated, r.opts.ContractAddress, seller, params.ReservePrice))
	utils.Info("contract auction started", map[string]any{"seller": seller, "nft_name": next.AuctionData.NFTName, "reserve_price": params.ReservePrice.String()})
	return r.result(tx, seller), nil
}

// RecordBid places a bid for bidder. A zero amount bids highestBid + minIncrement.
// The previous highest bidder is not refunded.
func (r *ContractRuntime) RecordBid(ctx context.Context, bidder string, amount decimal.Decimal) (Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bidder, err := r.actor(bidder)
	if err != nil {
		return Result{}, fmt.Errorf("runtime: record bid: %w", err)
	}

	ledger := r.snap.Ledger
	if amount.IsZero() {
		amount = ledger.HighestBid.Add(r.minIncrement())
	}
	if err := rules.CheckBid(ledger.AuctionStatus.AuctionStatus(), ledger.HighestBid, amount, ledger.Seller, bidder); err != nil {
		return Result{}, fmt.Errorf("runtime: record bid: %w", err)
	}

	next := cloneSnapshot(r.snap)
	tx, err := r.charge(&next, bidder, amount, models.TxRecordBid, "Bid Submission")
	if err != nil {
		return Result{}, fmt.Errorf("runtime: record bid: %w", err)
	}
	next.Ledger.HighestBid = amount
	next.Ledger.HighestBidder = bidder
	next.Ledger.TotalBids++

	if err := r.commit(ctx, next); err != nil {
		return Result{}, err
	}

	events.Emit(ctx, r.publisher, events.NewEvent(events.BidPlaced, r.opts.ContractAddress, bidder, amount))
	utils.Info("contract bid recorded", map[string]any{"bidder": bidder, "amount": amount.String(), "total_bids": next.Ledger.TotalBids})
	return r.result(tx, bidder), nil
}

// EndAuction closes bidding; only the seller may call it
func (r *ContractRuntime) EndAuction(ctx context.Context, caller string) (Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	caller, err := r.actor(caller)
	if err != nil {
		return Result{}, fmt.Errorf("runtime: end auction: %w", err)
	}
	if err := r.requireAuction(); err != nil {
		return Result{}, fmt.Errorf("runtime: end auction: %w", err)
	}
	ledger := r.snap.Ledger
	if err := rules.CheckEnd(ledger.AuctionStatus.AuctionStatus(), ledger.Seller, caller); err != nil {
		return Result{}, fmt.Errorf("runtime: end auction: %w", err)
	}

	next := cloneSnapshot(r.snap)
	tx, err := r.charge(&next, caller, decimal.Zero, models.TxEndAuction, "endAuction")
	if err != nil {
		return Result{}, fmt.Errorf("runtime: end auction: %w", err)
	}
	next.Ledger.AuctionStatus = models.ContractClosed

	if err := r.commit(ctx, next); err != nil {
		return Result{}, err
	}

	events.Emit(ctx, r.publisher, events.NewEvent(events.AuctionEnded, r.opts.ContractAddress, caller, ledger.HighestBid))
	utils.Info("contract auction ended", map[string]any{"seller": caller, "highest_bid": ledger.HighestBid.String()})
	return r.result(tx, caller), nil
}

// Settle closes out an ended auction and pays the highest bid to the seller
func (r *ContractRuntime) Settle(ctx context.Context, caller string) (Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	caller, err := r.actor(caller)
	if err != nil {
		return Result{}, fmt.Errorf("runtime: settle: %w", err)
	}
	if err := r.requireAuction(); err != nil {
		return Result{}, fmt.Errorf("runtime: settle: %w", err)
	}
	ledger := r.snap.Ledger
	if err := rules.CheckSettle(ledger.AuctionStatus.AuctionStatus(), ledger.Seller, caller); err != nil {
		return Result{}, fmt.Errorf("runtime: settle: %w", err)
	}

	next := cloneSnapshot(r.snap)
	tx, err := r.charge(&next, caller, decimal.Zero, models.TxSettle, "settle")
	if err != nil {
		return Result{}, fmt.Errorf("runtime: settle: %w", err)
	}

	payout := decimal.Zero
	if ledger.HighestBidder != "" {
		payout = ledger.HighestBid
		r.credit(&next, caller, payout, "Settlement payout")
	}
	next.Ledger.AuctionStatus = models.ContractDone

	if err := r.commit(ctx, next); err != nil {
		return Result{}, err
	}

	events.Emit(ctx, r.publisher, events.NewEvent(events.AuctionSettled, r.opts.ContractAddress, caller, payout))
	utils.Info("contract auction settled", map[string]any{"seller": caller, "payout": payout.String()})
	return r.result(tx, caller), nil
}

// Status returns the ledger status code
func (r *ContractRuntime) Status() models.ContractStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snap.Ledger.AuctionStatus
}

// TopBid returns the current highest bid
func (r *ContractRuntime) TopBid() decimal.Decimal {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snap.Ledger.HighestBid
}

// State returns the ledger, the listed NFT and the operator wallet
func (r *ContractRuntime) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return State{
		Ledger:          r.snap.Ledger,
		AuctionData:     cloneAuctionData(r.snap.AuctionData),
		Wallet:          r.walletInfo(r.opts.OperatorAddress),
		ContractAddress: r.opts.ContractAddress,
	}
}

// Wallet returns the wallet view for address; blank means the operator.
// Unknown addresses report the default grant without being stored.
func (r *ContractRuntime) Wallet(address string) models.WalletInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.walletInfo(r.resolve(address))
}

// Transactions returns the log entries of address, most recent first
func (r *ContractRuntime) Transactions(address string) []models.TransactionRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]models.TransactionRecord{}, r.snap.Transactions[r.resolve(address)]...)
}

// Reset puts the contract back to Init and forgets every balance
func (r *ContractRuntime) Reset(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.store.Delete(ctx, repository.KeyContract); err != nil {
		return fmt.Errorf("runtime: failed to reset contract state: %w", err)
	}
	r.snap = emptySnapshot()
	events.Emit(ctx, r.publisher, events.NewEvent(events.ContractReset, r.opts.ContractAddress, r.opts.OperatorAddress, decimal.Zero))
	utils.Info("contract reset", map[string]any{"contract_address": r.opts.ContractAddress})
	return nil
}

// ContractAddress returns the address the runtime reports for itself
func (r *ContractRuntime) ContractAddress() string {
	return r.opts.ContractAddress
}

func (r *ContractRuntime) resolve(address string) string {
	if trimmed := strings.TrimSpace(address); trimmed != "" {
		return trimmed
	}
	return r.opts.OperatorAddress
}

// actor resolves the caller of a state change; blank means the operator
func (r *ContractRuntime) actor(address string) (string, error) {
	return rules.NormalizeAddress(r.resolve(address))
}

func (r *ContractRuntime) requireAuction() error {
	if r.snap.Ledger.AuctionStatus == models.ContractInit {
		return fmt.Errorf("no auction has been started: %w", auctionerrors.ErrInvalidState)
	}
	return nil
}

func (r *ContractRuntime) minIncrement() decimal.Decimal {
	if r.snap.AuctionData != nil && r.snap.AuctionData.MinIncrement.IsPositive() {
		return r.snap.AuctionData.MinIncrement
	}
	return rules.DefaultMinIncrement
}

func (r *ContractRuntime) balanceOf(snap *models.ContractSnapshot, address string) decimal.Decimal {
	if b, ok := snap.Balances[address]; ok {
		return b
	}
	return r.opts.Grant
}

// charge debits amount + fee from address inside snap and logs the transaction
func (r *ContractRuntime) charge(snap *models.ContractSnapshot, address string, amount decimal.Decimal, txType models.TransactionType, reason string) (models.TransactionRecord, error) {
	fee := r.opts.Fee
	total := amount.Add(fee)
	balance := r.balanceOf(snap, address)
	if err := rules.CheckDebit(balance, total); err != nil {
		return models.TransactionRecord{}, err
	}

	after := balance.Sub(total)
	snap.Balances[address] = after

	tx := models.TransactionRecord{
		ID:        utils.GenerateTxHash(),
		Type:      txType,
		Amount:    amount,
		Fee:       &fee,
		Total:     &total,
		Reason:    reason,
		Balance:   after,
		Timestamp: r.now(),
		Address:   address,
	}
	r.appendLog(snap, tx)
	return tx, nil
}

func (r *ContractRuntime) credit(snap *models.ContractSnapshot, address string, amount decimal.Decimal, reason string) {
	after := r.balanceOf(snap, address).Add(amount)
	snap.Balances[address] = after
	r.appendLog(snap, models.TransactionRecord{
		ID:        utils.GenerateTxHash(),
		Type:      models.TxSettlementPayout,
		Amount:    amount,
		Reason:    reason,
		Balance:   after,
		Timestamp: r.now(),
		Address:   address,
	})
}

// appendLog prepends tx to the log of tx.Address, keeping the newest HistoryLimit entries
func (r *ContractRuntime) appendLog(snap *models.ContractSnapshot, tx models.TransactionRecord) {
	snap.Transactions[tx.Address] = models.PrependCapped(snap.Transactions[tx.Address], tx, rules.HistoryLimit)
}

// commit persists next and adopts it on success
func (r *ContractRuntime) commit(ctx context.Context, next models.ContractSnapshot) error {
	if err := repository.SaveJSON(ctx, r.store, repository.KeyContract, next); err != nil {
		return fmt.Errorf("runtime: failed to persist contract state: %w", err)
	}
	r.snap = next
	return nil
}

func (r *ContractRuntime) result(tx models.TransactionRecord, address string) Result {
	return Result{
		Ledger:        r.snap.Ledger,
		AuctionData:   cloneAuctionData(r.snap.AuctionData),
		Transaction:   tx,
		WalletBalance: r.balanceOf(&r.snap, address),
	}
}

func (r *ContractRuntime) walletInfo(address string) models.WalletInfo {
	info := models.WalletInfo{
		Address:          address,
		Balance:          r.balanceOf(&r.snap, address),
		TransactionCount: len(r.snap.Transactions[address]),
		ContractAddress:  r.opts.ContractAddress,
	}
	if address == r.opts.OperatorAddress {
		info.ShieldedAddress = r.opts.OperatorAddress
		info.UnshieldedAddress = r.opts.UnshieldedAddress
	}
	return info
}

func emptySnapshot() models.ContractSnapshot {
	return models.ContractSnapshot{
		Ledger:       models.ContractLedger{AuctionStatus: models.ContractInit},
		Balances:     map[string]decimal.Decimal{},
		Transactions: map[string][]models.TransactionRecord{},
	}
}
