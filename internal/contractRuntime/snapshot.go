package contract

import (
	"nft-auction/internal/models"

	"github.com/shopspring/decimal"
)

// cloneSnapshot copies s so a failed change never touches live state
func cloneSnapshot(s models.ContractSnapshot) models.ContractSnapshot {
	c := s
	c.AuctionData = cloneAuctionData(s.AuctionData)
	c.Balances = make(map[string]decimal.Decimal, len(s.Balances))
	for k, v := range s.Balances {
		c.Balances[k] = v
	}
	c.Transactions = make(map[string][]models.TransactionRecord, len(s.Transactions))
	for addr, log := range s.Transactions {
		c.Transactions[addr] = append([]models.TransactionRecord(nil), log...)
	}
	return c
}

func cloneAuctionData(d *models.AuctionData) *models.AuctionData {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}
