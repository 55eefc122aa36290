// internal/event/bus.go
//
// In-process game lifecycle pub/sub, backed by a watermill gochannel.
// Responsibilities:
//   - Carry created/won/lost/expired events from handlers and the registry
//     reaper to any number of subscribers (SSE stream, startup log tail).
//   - Never let a slow subscriber stall a publisher: delivery is async and
//     a subscriber that falls behind loses the overflow.

package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/rs/zerolog/log"
)

// Type labels a lifecycle event.
type Type string

const (
	GameCreated Type = "game.created"
	GameWon     Type = "game.won"
	GameLost    Type = "game.lost"
	GameExpired Type = "game.expired"
)

// GameInfo is the payload: enough to follow a game from the outside without
// another lookup.
type GameInfo struct {
	ID     string `json:"id"`
	Status string `json:"status,omitempty"`
	Score  int    `json:"score"`
	Mines  int    `json:"mines"`
}

// Event is one entry on the lifecycle stream.
type Event struct {
	Type Type      `json:"type"`
	Game GameInfo  `json:"game"`
	At   time.Time `json:"at"`
}

// All events travel one topic; subscribers filter by Type if they care.
const topic = "games"

// subscriberBuffer bounds each typed subscriber channel. Overflow is
// dropped with a warning rather than backing up into the pubsub.
const subscriberBuffer = 16

// Bus is the lifecycle pub/sub. One instance is constructed in main and
// shared by the HTTP layer and the registry.
type Bus struct {
	pubsub *gochannel.GoChannel
}

// NewBus constructs a bus backed by an in-memory gochannel pub/sub.
func NewBus() *Bus {
	return &Bus{
		pubsub: gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer: 100,
			Persistent:          false,
		}, watermill.NopLogger{}),
	}
}

// Publish emits one event to every current subscriber. The publish itself
// never waits for consumers. Events published with a zero At are stamped
// here.
func (b *Bus) Publish(e Event) error {
	if e.At.IsZero() {
		e.At = time.Now()
	}
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := b.pubsub.Publish(topic, message.NewMessage(watermill.NewUUID(), payload)); err != nil {
		return fmt.Errorf("publish event: %w", err)
	}
	return nil
}

// Subscribe returns a channel of events that closes when ctx is cancelled
// or the bus shuts down.
func (b *Bus) Subscribe(ctx context.Context) (<-chan Event, error) {
	msgs, err := b.pubsub.Subscribe(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("subscribe: %w", err)
	}
	out := make(chan Event, subscriberBuffer)
	go func() {
		defer close(out)
		for msg := range msgs {
			var e Event
			if err := json.Unmarshal(msg.Payload, &e); err != nil {
				log.Warn().Err(err).Str("message_id", msg.UUID).Msg("dropping undecodable event")
				msg.Ack()
				continue
			}
			select {
			case out <- e:
			default:
				log.Warn().Str("type", string(e.Type)).Msg("subscriber behind, dropping event")
			}
			msg.Ack()
		}
	}()
	return out, nil
}

// Close tears the bus down; subscriber channels drain and close.
func (b *Bus) Close() error {
	return b.pubsub.Close()
}
