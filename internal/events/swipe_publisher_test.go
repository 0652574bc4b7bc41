// MovieMatch - Swipe-based movie discovery proxy and client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package events

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"
	natsgo "github.com/nats-io/nats.go"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/moviematch/internal/config"
	"github.com/tomtom215/moviematch/internal/logging"
	"github.com/tomtom215/moviematch/internal/models"
)

// failingPublisher fails every publish and counts attempts.
type failingPublisher struct {
	calls  int32
	closed int32
}

func (f *failingPublisher) Publish(string, ...*message.Message) error {
	atomic.AddInt32(&f.calls, 1)
	return errors.New("nats: no responders available for request")
}

func (f *failingPublisher) Close() error {
	atomic.AddInt32(&f.closed, 1)
	return nil
}

func TestSwipePublisher_PublishesToGoChannel(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 1}, watermill.NopLogger{})
	defer pubSub.Close()

	msgs, err := pubSub.Subscribe(context.Background(), DefaultTopic)
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	p := NewSwipePublisher(pubSub, "")
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return fixed }

	ctx := logging.ContextWithCorrelationID(context.Background(), "abcd1234")
	if err := p.PublishSwipe(ctx, models.SwipeRecordedEvent{UserID: 7, MovieID: 603, Direction: models.DirectionLike}); err != nil {
		t.Fatalf("PublishSwipe() error = %v", err)
	}

	select {
	case msg := <-msgs:
		msg.Ack()

		var ev models.SwipeRecordedEvent
		if err := json.Unmarshal(msg.Payload, &ev); err != nil {
			t.Fatalf("payload decode: %v", err)
		}
		if ev.EventID == "" || ev.EventID != msg.UUID {
			t.Errorf("event id %q must match message uuid %q", ev.EventID, msg.UUID)
		}
		if ev.UserID != 7 || ev.MovieID != 603 || ev.Direction != "like" {
			t.Errorf("unexpected event %+v", ev)
		}
		if !ev.RecordedAt.Equal(fixed) {
			t.Errorf("RecordedAt = %v, want %v", ev.RecordedAt, fixed)
		}
		if msg.Metadata.Get(natsgo.MsgIdHdr) != ev.EventID {
			t.Error("expected Nats-Msg-Id header for deduplication")
		}
		if msg.Metadata.Get("user_id") != "7" || msg.Metadata.Get("direction") != "like" {
			t.Errorf("unexpected metadata %v", msg.Metadata)
		}
		if msg.Metadata.Get("correlation_id") != "abcd1234" {
			t.Errorf("correlation id not propagated: %v", msg.Metadata)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("message not delivered")
	}
}

func TestSwipePublisher_KeepsGivenEventID(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 1}, watermill.NopLogger{})
	defer pubSub.Close()

	msgs, err := pubSub.Subscribe(context.Background(), "custom.topic")
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	p := NewSwipePublisher(pubSub, "custom.topic")
	if p.Topic() != "custom.topic" {
		t.Errorf("Topic() = %s", p.Topic())
	}
	if err := p.PublishSwipe(context.Background(), models.SwipeRecordedEvent{EventID: "evt-1", UserID: 1, MovieID: 2, Direction: "dislike"}); err != nil {
		t.Fatalf("PublishSwipe() error = %v", err)
	}

	select {
	case msg := <-msgs:
		msg.Ack()
		if msg.UUID != "evt-1" {
			t.Errorf("UUID = %s, want evt-1", msg.UUID)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("message not delivered")
	}
}

func TestSwipePublisher_BreakerOpensOnFailures(t *testing.T) {
	failing := &failingPublisher{}
	p := NewSwipePublisher(failing, "")

	ev := models.SwipeRecordedEvent{UserID: 1, MovieID: 1, Direction: "like"}
	for i := 0; i < failureThreshold; i++ {
		if err := p.PublishSwipe(context.Background(), ev); err == nil {
			t.Fatal("expected publish error")
		}
	}
	if p.BreakerState() != "open" {
		t.Fatalf("BreakerState() = %s, want open", p.BreakerState())
	}

	err := p.PublishSwipe(context.Background(), ev)
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("expected ErrOpenState, got %v", err)
	}
	if got := atomic.LoadInt32(&failing.calls); got != failureThreshold {
		t.Errorf("publisher called %d times, want %d", got, failureThreshold)
	}
}

func TestSwipePublisher_Close(t *testing.T) {
	failing := &failingPublisher{}
	p := NewSwipePublisher(failing, "")

	if err := p.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
	if got := atomic.LoadInt32(&failing.closed); got != 1 {
		t.Errorf("underlying Close called %d times, want 1", got)
	}

	err := p.PublishSwipe(context.Background(), models.SwipeRecordedEvent{UserID: 1, MovieID: 1, Direction: "like"})
	if !errors.Is(err, ErrPublisherClosed) {
		t.Errorf("expected ErrPublisherClosed, got %v", err)
	}
}

func TestNewFromConfig_Disabled(t *testing.T) {
	p, err := NewFromConfig(context.Background(), &config.NATSConfig{Enabled: false, Topic: "swipe.recorded"}, nil)
	if err != nil {
		t.Fatalf("NewFromConfig() error = %v", err)
	}
	if _, ok := p.publisher.(NoopPublisher); !ok {
		t.Errorf("expected NoopPublisher, got %T", p.publisher)
	}
	if err := p.PublishSwipe(context.Background(), models.SwipeRecordedEvent{UserID: 1, MovieID: 1, Direction: "like"}); err != nil {
		t.Errorf("noop publish error = %v", err)
	}
}
