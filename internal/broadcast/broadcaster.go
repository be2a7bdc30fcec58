package broadcast

import (
	"context"
	"log/slog"
	"sync"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
)

// subscriberBuffer is the per-subscriber channel capacity. A subscriber that
// falls this far behind is pruned instead of blocking the publisher.
const subscriberBuffer = 8

// SnapshotSource loads the current tracking snapshot of an order.
type SnapshotSource interface {
	Snapshot(ctx context.Context, orderID kernel.UUID) (queries.OrderTrackingSnapshot, error)
}

// Sink receives every published snapshot in addition to the in-process
// subscribers. Delivery is best-effort; a failing sink is logged and skipped.
type Sink interface {
	Deliver(ctx context.Context, snapshot queries.OrderTrackingSnapshot) error
}

// QuerySnapshotSource adapts the tracking query handler to SnapshotSource.
type QuerySnapshotSource struct {
	handler queries.GetOrderTrackingQueryHandler
}

// NewQuerySnapshotSource creates a SnapshotSource backed by the tracking
// query handler.
func NewQuerySnapshotSource(handler queries.GetOrderTrackingQueryHandler) QuerySnapshotSource {
	return QuerySnapshotSource{handler: handler}
}

// Snapshot loads the order's tracking snapshot.
func (s QuerySnapshotSource) Snapshot(ctx context.Context, orderID kernel.UUID) (queries.OrderTrackingSnapshot, error) {
	query, err := queries.NewGetOrderTrackingQuery(orderID)
	if err != nil {
		return queries.OrderTrackingSnapshot{}, err
	}
	return s.handler.Handle(ctx, query)
}

type subscriber struct {
	mu     sync.Mutex
	ch     chan queries.OrderTrackingSnapshot
	closed bool
}

// push delivers without blocking. It reports false when the subscriber's
// buffer is full; pushing to a closed subscriber is a no-op.
func (s *subscriber) push(snapshot queries.OrderTrackingSnapshot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return true
	}
	select {
	case s.ch <- snapshot:
		return true
	default:
		return false
	}
}

func (s *subscriber) close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		s.closed = true
		close(s.ch)
	}
}

// Broadcaster maintains the mapping from order id to its live subscribers
// and fans tracking snapshots out to them. It implements the notifier the
// command handlers publish to after commit.
//
// An order's entry exists only while it has subscribers; the last
// unsubscribe frees it.
type Broadcaster struct {
	source SnapshotSource
	sinks  []Sink
	logger *slog.Logger

	mu   sync.RWMutex
	subs map[kernel.UUID][]*subscriber
}

// NewBroadcaster creates a Broadcaster reading snapshots from source and
// mirroring every publication to the given sinks.
func NewBroadcaster(source SnapshotSource, logger *slog.Logger, sinks ...Sink) *Broadcaster {
	return &Broadcaster{
		source: source,
		sinks:  sinks,
		logger: logger.With("component", "broadcaster"),
		subs:   make(map[kernel.UUID][]*subscriber),
	}
}

// Subscribe registers interest in an order and returns a channel carrying
// every future snapshot plus an unsubscribe function. The current snapshot
// is pushed immediately so a late subscriber is not left stale. Fails with a
// not-found error when the order does not exist.
//
// The returned channel is closed on unsubscribe and when the subscriber is
// pruned for falling behind.
func (b *Broadcaster) Subscribe(ctx context.Context, orderID kernel.UUID) (<-chan queries.OrderTrackingSnapshot, func(), error) {
	snapshot, err := b.source.Snapshot(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}

	sub := &subscriber{ch: make(chan queries.OrderTrackingSnapshot, subscriberBuffer)}
	sub.ch <- snapshot

	b.mu.Lock()
	b.subs[orderID] = append(b.subs[orderID], sub)
	b.mu.Unlock()

	unsubscribe := func() {
		b.remove(orderID, sub)
	}
	return sub.ch, unsubscribe, nil
}

// Publish loads the order's current snapshot and pushes it to every live
// subscriber and sink. It never fails: a load error is logged and dropped,
// a full subscriber is pruned, a failing sink is skipped.
func (b *Broadcaster) Publish(ctx context.Context, orderID kernel.UUID) {
	snapshot, err := b.source.Snapshot(ctx, orderID)
	if err != nil {
		b.logger.ErrorContext(ctx, "Failed to load snapshot for broadcast",
			"order_id", orderID.String(), "error", err)
		return
	}

	b.mu.RLock()
	targets := make([]*subscriber, len(b.subs[orderID]))
	copy(targets, b.subs[orderID])
	b.mu.RUnlock()

	for _, sub := range targets {
		if !sub.push(snapshot) {
			b.logger.WarnContext(ctx, "Pruning slow subscriber",
				"order_id", orderID.String())
			b.remove(orderID, sub)
		}
	}

	for _, sink := range b.sinks {
		if err := sink.Deliver(ctx, snapshot); err != nil {
			b.logger.ErrorContext(ctx, "Sink delivery failed",
				"order_id", orderID.String(), "error", err)
		}
	}
}

// PollOnce returns the snapshot Publish would have sent, for callers that
// cannot hold an open channel.
func (b *Broadcaster) PollOnce(ctx context.Context, orderID kernel.UUID) (queries.OrderTrackingSnapshot, error) {
	return b.source.Snapshot(ctx, orderID)
}

// SubscribedOrders returns the ids of all orders that currently have at
// least one subscriber.
func (b *Broadcaster) SubscribedOrders() []kernel.UUID {
	b.mu.RLock()
	defer b.mu.RUnlock()

	ids := make([]kernel.UUID, 0, len(b.subs))
	for id := range b.subs {
		ids = append(ids, id)
	}
	return ids
}

// remove detaches one subscriber, closing its channel. The order's entry is
// freed when its last subscriber leaves.
func (b *Broadcaster) remove(orderID kernel.UUID, sub *subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()

	current := b.subs[orderID]
	for i, candidate := range current {
		if candidate == sub {
			b.subs[orderID] = append(current[:i], current[i+1:]...)
			sub.close()
			break
		}
	}
	if len(b.subs[orderID]) == 0 {
		delete(b.subs, orderID)
	}
}
