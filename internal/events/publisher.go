package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"nft-auction/utils"

	"github.com/nats-io/nats.go"
	"github.com/shopspring/decimal"
)

// Event types
const (
	AuctionCreated = "auction.created"
	BidPlaced      = "bid.placed"
	AuctionEnded   = "auction.ended"
	AuctionSettled = "auction.settled"
	ContractReset  = "contract.reset"
)

// Event is a lifecycle notification emitted after a successful state change
type Event struct {
	EventID   string          `json:"event_id"`
	Type      string          `json:"type"`
	AuctionID string          `json:"auction_id,omitempty"`
	Actor     string          `json:"actor,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewEvent stamps an event with a fresh id and the current time
func NewEvent(eventType, auctionID, actor string, amount decimal.Decimal) Event {
	return Event{
		EventID:   utils.GenerateID(),
		Type:      eventType,
		AuctionID: auctionID,
		Actor:     actor,
		Amount:    amount,
		Timestamp: time.Now().UTC(),
	}
}

// Publisher delivers lifecycle events to interested consumers
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NopPublisher drops every event
type NopPublisher struct{}

// Publish implements Publisher
func (NopPublisher) Publish(context.Context, Event) error { return nil }

// NATSPublisher publishes events as JSON on auction.events.<type>
type NATSPublisher struct {
	conn *nats.Conn
}

// NewNATSPublisher connects to the NATS server at url
func NewNATSPublisher(url string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url, nats.Name("nft-auction"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NATSPublisher{conn: conn}, nil
}

// Subject returns the NATS subject an event type is published on
func Subject(eventType string) string {
	return "auction.events." + eventType
}

// Publish implements Publisher
func (p *NATSPublisher) Publish(_ context.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := p.conn.Publish(Subject(event.Type), data); err != nil {
		return fmt.Errorf("failed to publish event %s: %w", event.Type, err)
	}
	return nil
}

// Close drains and closes the connection
func (p *NATSPublisher) Close() error {
	return p.conn.Drain()
}

// Emit publishes event and logs, rather than returns, any failure
func Emit(ctx context.Context, p Publisher, event Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, event); err != nil {
		utils.Warn("event publish failed", map[string]any{
			"type":  event.Type,
			"error": err.Error(),
		})
	}
}
