package events

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	events []Event
	err    error
}

func (r *recordingPublisher) Publish(_ context.Context, e Event) error {
	r.events = append(r.events, e)
	return r.err
}

func TestNewEvent(t *testing.T) {
	e := NewEvent(BidPlaced, "auction_1", "bob", decimal.NewFromInt(150))

	_, err := uuid.Parse(e.EventID)
	require.NoError(t, err, "EventID should be a valid UUID")
	require.Equal(t, BidPlaced, e.Type)
	require.Equal(t, "auction_1", e.AuctionID)
	require.Equal(t, "bob", e.Actor)
	require.Equal(t, "150", e.Amount.String())
	require.False(t, e.Timestamp.IsZero())
}

func TestSubject(t *testing.T) {
	require.Equal(t, "auction.events.bid.placed", Subject(BidPlaced))
}

func TestEmit_SwallowsErrors(t *testing.T) {
	p := &recordingPublisher{err: errors.New("broker down")}
	require.NotPanics(t, func() {
		Emit(context.Background(), p, NewEvent(AuctionEnded, "a", "alice", decimal.Zero))
	})
	require.Len(t, p.events, 1)

	require.NotPanics(t, func() {
		Emit(context.Background(), nil, NewEvent(AuctionEnded, "a", "alice", decimal.Zero))
	})
	require.NoError(t, NopPublisher{}.Publish(context.Background(), Event{}))
}
