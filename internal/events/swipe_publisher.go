// MovieMatch - Swipe-based movie discovery proxy and client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package events

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	natsgo "github.com/nats-io/nats.go"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/moviematch/internal/config"
	"github.com/tomtom215/moviematch/internal/logging"
	"github.com/tomtom215/moviematch/internal/metrics"
	"github.com/tomtom215/moviematch/internal/models"
)

// DefaultTopic is used when nats.topic is empty.
const DefaultTopic = "swipe.recorded"

// ErrPublisherClosed is returned after Close.
var ErrPublisherClosed = errors.New("events: publisher is closed")

// SwipePublisher encodes swipe events and hands them to a Watermill publisher.
type SwipePublisher struct {
	publisher message.Publisher
	topic     string
	cb        *gobreaker.CircuitBreaker[interface{}]
	now       func() time.Time

	mu     sync.RWMutex
	closed bool
}

// NewSwipePublisher wraps pub. An empty topic uses DefaultTopic.
func NewSwipePublisher(pub message.Publisher, topic string) *SwipePublisher {
	if topic == "" {
		topic = DefaultTopic
	}
	return &SwipePublisher{
		publisher: pub,
		topic:     topic,
		cb:        NewCircuitBreaker(PublisherBreakerName),
		now:       time.Now,
	}
}

// NewFromConfig builds the publisher selected by cfg: NATS when enabled,
// otherwise a NoopPublisher. With JetStream on, the stream is provisioned first.
func NewFromConfig(ctx context.Context, cfg *config.NATSConfig, logger watermill.LoggerAdapter) (*SwipePublisher, error) {
	if !cfg.Enabled {
		logging.Info().Msg("Swipe event publishing disabled")
		return NewSwipePublisher(NoopPublisher{}, cfg.Topic), nil
	}

	if cfg.JetStream {
		if err := ProvisionStream(ctx, cfg); err != nil {
			return nil, fmt.Errorf("provision swipe stream: %w", err)
		}
		logging.Info().Str("stream", cfg.StreamName).Str("subject", cfg.Topic).Msg("JetStream stream ready")
	}

	pub, err := NewNATSPublisher(cfg, logger)
	if err != nil {
		return nil, err
	}
	logging.Info().Str("url", cfg.URL).Str("topic", cfg.Topic).Bool("jetstream", cfg.JetStream).Msg("Swipe event publishing enabled")
	return NewSwipePublisher(pub, cfg.Topic), nil
}

// Topic returns the destination topic.
func (p *SwipePublisher) Topic() string { return p.topic }

// PublishSwipe publishes one swipe.recorded message. A missing EventID or
// RecordedAt is filled in.
func (p *SwipePublisher) PublishSwipe(ctx context.Context, ev models.SwipeRecordedEvent) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPublisherClosed
	}

	if ev.EventID == "" {
		ev.EventID = uuid.NewString()
	}
	if ev.RecordedAt.IsZero() {
		ev.RecordedAt = p.now().UTC()
	}

	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("serialize swipe event: %w", err)
	}

	msg := message.NewMessage(ev.EventID, data)
	msg.SetContext(ctx)
	msg.Metadata.Set(natsgo.MsgIdHdr, ev.EventID)
	msg.Metadata.Set("user_id", strconv.Itoa(ev.UserID))
	msg.Metadata.Set("direction", ev.Direction)
	if cid := logging.CorrelationIDFromContext(ctx); cid != "" {
		msg.Metadata.Set("correlation_id", cid)
	}

	_, err = p.cb.Execute(func() (interface{}, error) {
		return nil, p.publisher.Publish(p.topic, msg)
	})
	metrics.RecordPublish(p.topic, err)
	if err != nil {
		return fmt.Errorf("publish swipe event %s: %w", ev.EventID, err)
	}
	return nil
}

// BreakerName returns the publisher circuit breaker label.
func (p *SwipePublisher) BreakerName() string { return PublisherBreakerName }

// BreakerState returns the publisher circuit breaker state.
func (p *SwipePublisher) BreakerState() string {
	return stateToString(p.cb.State())
}

// Close closes the underlying publisher. It is safe to call more than once.
func (p *SwipePublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	return p.publisher.Close()
}
