package auction

//go:generate mockgen -source=auction_service.go -destination=mock_wallet.go -package=auction

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

// Wallet is the part of the wallet service the auction ledger acts through
type Wallet interface {
	Address() string
	IsConnected() bool
	Deduct(ctx context.Context, amount decimal.Decimal, reason string) error
	Credit(ctx context.Context, amount decimal.Decimal, reason string) error
}

// AuctionService owns the auction collection (newest first) and applies the
// lifecycle open -> ended -> settled on behalf of the connected wallet.
//
// Outbid bidders are not refunded: the amount of every accepted bid stays
// debited from its bidder, and settlement pays only the final highest bid to
// the creator.
type AuctionService struct {
	mu        sync.Mutex
	wallet    Wallet
	store     repository.Store
	publisher events.Publisher
	now       func() time.Time
	auctions  []models.Auction
}

// NewAuctionService loads the persisted auction collection
func NewAuctionService(ctx context.Context, wallet Wallet, store repository.Store, publisher events.Publisher) (*AuctionService, error) {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}

	s := &AuctionService{
		wallet:    wallet,
		store:     store,
		publisher: publisher,
		now:       func() time.Time { return time.Now().UTC() },
	}

	if _, err := repository.LoadJSON(ctx, store, repository.KeyAuctions, &s.auctions); err != nil {
		return nil, fmt.Errorf("service: failed to load auctions: %w", err)
	}
	return s, nil
}

// CreateAuction charges the creation fee and lists a new open auction
func (s *AuctionService) CreateAuction(ctx context.Context, title string, startingPrice decimal.Decimal) (models.Auction, error) {
	if !s.wallet.IsConnected() {
		return models.Auction{}, fmt.Errorf("service: create auction: %w", auctionerrors.ErrWalletNotConnected)
	}
	if err := rules.ValidateListing(title, startingPrice); err != nil {
		return models.Auction{}, fmt.Errorf("service: create auction: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	title = strings.TrimSpace(title)
	reason := "Create auction: " + title
	if err := s.wallet.Deduct(ctx, rules.CreationFee, reason); err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to charge creation fee: %w", err)
	}

	now := s.now()
	a := models.Auction{
		ID:            utils.GenerateAuctionID(now),
		Title:         title,
		StartingPrice: startingPrice,
		HighestBid:    startingPrice,
		Creator:       s.wallet.Address(),
		Status:        models.StatusOpen,
		Bids:          []models.BidRecord{},
		CreatedAt:     now,
	}

	next := append([]models.Auction{a}, s.auctions...)
	if err := s.persist(ctx, next); err != nil {
		s.refund(ctx, rules.CreationFee, reason)
		return models.Auction{}, err
	}

	events.Emit(ctx, s.publisher, events.NewEvent(events.AuctionCreated, a.ID, a.Creator, startingPrice))
	utils.Info("auction created", map[string]any{"auction_id": a.ID, "creator": a.Creator, "starting_price": startingPrice.String()})
	return a.Clone(), nil
}

// PlaceBid debits amount from the connected wallet and makes it the highest bid
func (s *AuctionService) PlaceBid(ctx context.Context, auctionID string, amount decimal.Decimal) (models.Auction, error) {
	if !s.wallet.IsConnected() {
		return models.Auction{}, fmt.Errorf("service: place bid: %w", auctionerrors.ErrWalletNotConnected)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx, err := s.indexOf(auctionID)
	if err != nil {
		return models.Auction{}, err
	}

	current := s.auctions[idx]
	bidder := s.wallet.Address()
	if err := rules.CheckBid(current.Status, current.HighestBid, amount, current.Creator, bidder); err != nil {
		return models.Auction{}, fmt.Errorf("service: place bid on %s: %w", auctionID, err)
	}

	reason := "Bid on auction: " + current.Title
	if err := s.wallet.Deduct(ctx, amount, reason); err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to charge bid: %w", err)
	}

	updated := current.Clone()
	updated.HighestBid = amount
	updated.HighestBidder = bidder
	updated.Bids = append(updated.Bids, models.BidRecord{
		Bidder:    bidder,
		Amount:    amount,
		Timestamp: s.now(),
	})

	if err := s.replace(ctx, idx, updated); err != nil {
		s.refund(ctx, amount, reason)
		return models.Auction{}, err
	}

	events.Emit(ctx, s.publisher, events.NewEvent(events.BidPlaced, auctionID, bidder, amount))
	utils.Info("bid placed", map[string]any{"auction_id": auctionID, "bidder": bidder, "amount": amount.String()})
	return updated.Clone(), nil
}

// EndAuction closes bidding; only the creator may end an open auction
func (s *AuctionService) EndAuction(ctx context.Context, auctionID string) (models.Auction, error) {
	if !s.wallet.IsConnected() {
		return models.Auction{}, fmt.Errorf("service: end auction: %w", auctionerrors.ErrWalletNotConnected)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx, err := s.indexOf(auctionID)
	if err != nil {
		return models.Auction{}, err
	}

	current := s.auctions[idx]
	caller := s.wallet.Address()
	if err := rules.CheckEnd(current.Status, current.Creator, caller); err != nil {
		return models.Auction{}, fmt.Errorf("service: end auction %s: %w", auctionID, err)
	}

	updated := current.Clone()
	endedAt := s.now()
	updated.Status = models.StatusEnded
	updated.EndedAt = &endedAt

	if err := s.replace(ctx, idx, updated); err != nil {
		return models.Auction{}, err
	}

	events.Emit(ctx, s.publisher, events.NewEvent(events.AuctionEnded, auctionID, caller, updated.HighestBid))
	utils.Info("auction ended", map[string]any{"auction_id": auctionID, "highest_bid": updated.HighestBid.String()})
	return updated.Clone(), nil
}

// SettleAuction pays the highest bid to the creator, if anyone bid, and marks the auction settled
func (s *AuctionService) SettleAuction(ctx context.Context, auctionID string) (models.Auction, error) {
	if !s.wallet.IsConnected() {
		return models.Auction{}, fmt.Errorf("service: settle auction: %w", auctionerrors.ErrWalletNotConnected)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx, err := s.indexOf(auctionID)
	if err != nil {
		return models.Auction{}, err
	}

	current := s.auctions[idx]
	caller := s.wallet.Address()
	if err := rules.CheckSettle(current.Status, current.Creator, caller); err != nil {
		return models.Auction{}, fmt.Errorf("service: settle auction %s: %w", auctionID, err)
	}

	payout := decimal.Zero
	reason := "Settlement from auction: " + current.Title
	if current.HighestBidder != "" {
		payout = current.HighestBid
		if err := s.wallet.Credit(ctx, payout, reason); err != nil {
			return models.Auction{}, fmt.Errorf("service: failed to pay out settlement: %w", err)
		}
	}

	updated := current.Clone()
	settledAt := s.now()
	updated.Status = models.StatusSettled
	updated.SettledAt = &settledAt

	if err := s.replace(ctx, idx, updated); err != nil {
		if payout.IsPositive() {
			if derr := s.wallet.Deduct(ctx, payout, "Reverse: "+reason); derr != nil {
				utils.Error("settlement reversal failed", map[string]any{"auction_id": auctionID, "error": derr.Error()})
			}
		}
		return models.Auction{}, err
	}

	events.Emit(ctx, s.publisher, events.NewEvent(events.AuctionSettled, auctionID, caller, payout))
	utils.Info("auction settled", map[string]any{"auction_id": auctionID, "payout": payout.String()})
	return updated.Clone(), nil
}

// Auctions returns every auction, newest first
func (s *AuctionService) Auctions() []models.Auction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(s.auctions, func(models.Auction) bool { return true })
}

// Auction returns one auction by id
func (s *AuctionService) Auction(auctionID string) (models.Auction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, err := s.indexOf(auctionID)
	if err != nil {
		return models.Auction{}, err
	}
	return s.auctions[idx].Clone(), nil
}

// MyAuctions returns the auctions created by the connected wallet; empty when disconnected
func (s *AuctionService) MyAuctions() []models.Auction {
	if !s.wallet.IsConnected() {
		return []models.Auction{}
	}
	me := s.wallet.Address()

	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(s.auctions, func(a models.Auction) bool { return a.Creator == me })
}

// MyBids returns the auctions the connected wallet has bid on; empty when disconnected
func (s *AuctionService) MyBids() []models.Auction {
	if !s.wallet.IsConnected() {
		return []models.Auction{}
	}
	me := s.wallet.Address()

	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(s.auctions, func(a models.Auction) bool {
		for _, b := range a.Bids {
			if b.Bidder == me {
				return true
			}
		}
		return false
	})
}

// ClearAll drops every auction and removes the stored collection
func (s *AuctionService) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Delete(ctx, repository.KeyAuctions); err != nil {
		return fmt.Errorf("service: failed to clear auctions: %w", err)
	}
	s.auctions = []models.Auction{}
	utils.Info("auctions cleared", nil)
	return nil
}

func (s *AuctionService) indexOf(auctionID string) (int, error) {
	for i := range s.auctions {
		if s.auctions[i].ID == auctionID {
			return i, nil
		}
	}
	return -1, fmt.Errorf("service: auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
}

// replace persists the collection with the auction at idx swapped for updated
func (s *AuctionService) replace(ctx context.Context, idx int, updated models.Auction) error {
	next := make([]models.Auction, len(s.auctions))
	copy(next, s.auctions)
	next[idx] = updated
	return s.persist(ctx, next)
}

// persist saves the whole collection and adopts it on success
func (s *AuctionService) persist(ctx context.Context, next []models.Auction) error {
	if err := repository.SaveJSON(ctx, s.store, repository.KeyAuctions, next); err != nil {
		return fmt.Errorf("service: failed to persist auctions: %w", err)
	}
	s.auctions = next
	return nil
}

// refund returns a charge whose auction update could not be persisted
func (s *AuctionService) refund(ctx context.Context, amount decimal.Decimal, reason string) {
	if err := s.wallet.Credit(ctx, amount, "Refund: "+reason); err != nil {
		utils.Error("refund failed", map[string]any{"amount": amount.String(), "reason": reason, "error": err.Error()})
	}
}

func cloneAll(src []models.Auction, keep func(models.Auction) bool) []models.Auction {
	out := make([]models.Auction, 0, len(src))
	for _, a := range src {
		if keep(a) {
			out = append(out, a.Clone())
		}
	}
	return out
}
