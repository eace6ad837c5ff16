package wallet

import (
	"context"
	"fmt"
	"sync"
	"time"

	"nft-auction/internal/models"
	"nft-auction/internal/repository"
	"nft-auction/internal/rules"
	"nft-auction/utils"

	"github.com/shopspring/decimal"
)

// WalletService is the single-user wallet: one address, one balance and a
// capped transaction log, all persisted through a repository.Store.
//
// Disconnect keeps the address and balance; a later Connect with any address
// inherits the remaining balance.
type WalletService struct {
	mu    sync.Mutex
	store repository.Store
	grant decimal.Decimal
	now   func() time.Time
	state models.Wallet
}

// NewWalletService loads the persisted wallet, or starts disconnected with a zero balance
func NewWalletService(ctx context.Context, store repository.Store, initialGrant decimal.Decimal) (*WalletService, error) {
	s := &WalletService{
		store: store,
		grant: initialGrant,
		now:   func() time.Time { return time.Now().UTC() },
	}

	if _, err := repository.LoadJSON(ctx, store, repository.KeyWallet, &s.state); err != nil {
		return nil, fmt.Errorf("service: failed to load wallet: %w", err)
	}
	return s, nil
}

// Connect marks the wallet connected under address and returns the trimmed address.
// A wallet with an exactly zero balance receives the initial grant.
func (s *WalletService) Connect(ctx context.Context, address string) (string, error) {
	addr, err := rules.NormalizeAddress(address)
	if err != nil {
		return "", fmt.Errorf("service: connect: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state
	next.Address = addr
	next.Connected = true
	if next.Balance.IsZero() {
		next.Balance = s.grant
	}

	if err := s.commit(ctx, next, models.TxConnect, decimal.Zero, "Wallet connected with initial balance"); err != nil {
		return "", err
	}

	utils.Info("wallet connected", map[string]any{"address": addr, "balance": next.Balance.String()})
	return addr, nil
}

// Disconnect clears the connected flag only
func (s *WalletService) Disconnect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state
	next.Connected = false
	return s.commit(ctx, next, models.TxDisconnect, decimal.Zero, "Wallet disconnected")
}

// Deduct debits amount; a balance below amount fails with ErrInsufficientBalance and changes nothing
func (s *WalletService) Deduct(ctx context.Context, amount decimal.Decimal, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := rules.CheckDebit(s.state.Balance, amount); err != nil {
		return fmt.Errorf("service: deduct: %w", err)
	}

	next := s.state
	next.Balance = next.Balance.Sub(amount)
	return s.commit(ctx, next, models.TxDebit, amount, reason)
}

// Credit adds amount to the balance
func (s *WalletService) Credit(ctx context.Context, amount decimal.Decimal, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := rules.CheckCredit(amount); err != nil {
		return fmt.Errorf("service: credit: %w", err)
	}

	next := s.state
	next.Balance = next.Balance.Add(amount)
	return s.commit(ctx, next, models.TxCredit, amount, reason)
}

// TransactionHistory returns the persisted log, most recent first
func (s *WalletService) TransactionHistory(ctx context.Context) ([]models.TransactionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadHistory(ctx)
}

// Balance returns the current balance
func (s *WalletService) Balance() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Balance
}

// Address returns the last connected address, which survives Disconnect
func (s *WalletService) Address() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Address
}

// IsConnected reports whether the wallet is connected
func (s *WalletService) IsConnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Connected
}

// State returns a copy of the wallet record
func (s *WalletService) State() models.Wallet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// commit persists next with its log entry and adopts it only when both writes
// succeed. A failed log write restores the stored wallet. Callers hold mu.
func (s *WalletService) commit(ctx context.Context, next models.Wallet, txType models.TransactionType, amount decimal.Decimal, reason string) error {
	history, err := s.loadHistory(ctx)
	if err != nil {
		return err
	}
	tx := models.TransactionRecord{
		ID:        utils.GenerateTxHash(),
		Type:      txType,
		Amount:    amount,
		Reason:    reason,
		Balance:   next.Balance,
		Timestamp: s.now(),
		Address:   next.Address,
	}

	if err := repository.SaveJSON(ctx, s.store, repository.KeyWallet, next); err != nil {
		return fmt.Errorf("service: failed to persist wallet: %w", err)
	}
	history = models.PrependCapped(history, tx, rules.HistoryLimit)
	if err := repository.SaveJSON(ctx, s.store, repository.KeyTransactions, history); err != nil {
		if rerr := repository.SaveJSON(ctx, s.store, repository.KeyWallet, s.state); rerr != nil {
			utils.Error("wallet rollback failed", map[string]any{"address": s.state.Address, "error": rerr.Error()})
		}
		return fmt.Errorf("service: failed to log %s transaction: %w", txType, err)
	}

	s.state = next
	return nil
}

func (s *WalletService) loadHistory(ctx context.Context) ([]models.TransactionRecord, error) {
	var history []models.TransactionRecord
	if _, err := repository.LoadJSON(ctx, s.store, repository.KeyTransactions, &history); err != nil {
		return nil, fmt.Errorf("service: failed to load transactions: %w", err)
	}
	if history == nil {
		history = []models.TransactionRecord{}
	}
	return history, nil
}
