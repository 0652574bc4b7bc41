// MovieMatch - Swipe-based movie discovery proxy and client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	natsgo "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/tomtom215/moviematch/internal/config"
)

// JetStreamContext is the subset of jetstream.JetStream used by StreamInitializer.
type JetStreamContext interface {
	Stream(ctx context.Context, name string) (jetstream.Stream, error)
	CreateStream(ctx context.Context, cfg jetstream.StreamConfig) (jetstream.Stream, error)
	UpdateStream(ctx context.Context, cfg jetstream.StreamConfig) (jetstream.Stream, error)
}

// StreamInitializer creates or updates the swipe stream before the
// publisher starts. Stream names may not contain dots, so the stream is
// provisioned here instead of letting Watermill derive one from the topic.
type StreamInitializer struct {
	js  JetStreamContext
	cfg jetstream.StreamConfig
}

// NewStreamInitializer builds the stream definition from cfg. The stream
// captures exactly cfg.Topic.
func NewStreamInitializer(js JetStreamContext, cfg *config.NATSConfig) (*StreamInitializer, error) {
	if js == nil {
		return nil, fmt.Errorf("JetStream context required")
	}
	if cfg == nil {
		return nil, fmt.Errorf("stream config required")
	}

	return &StreamInitializer{
		js: js,
		cfg: jetstream.StreamConfig{
			Name:       cfg.StreamName,
			Subjects:   []string{cfg.Topic},
			Retention:  jetstream.LimitsPolicy,
			MaxAge:     cfg.StreamMaxAge,
			Duplicates: cfg.DuplicateWindow,
			Storage:    jetstream.FileStorage,
			Discard:    jetstream.DiscardOld,
		},
	}, nil
}

// EnsureStream creates the stream, or updates it when it already exists.
// It is idempotent.
func (s *StreamInitializer) EnsureStream(ctx context.Context) (jetstream.Stream, error) {
	_, err := s.js.Stream(ctx, s.cfg.Name)
	if err == nil {
		stream, err := s.js.UpdateStream(ctx, s.cfg)
		if err != nil {
			return nil, fmt.Errorf("update stream %s: %w", s.cfg.Name, err)
		}
		return stream, nil
	}

	if errors.Is(err, jetstream.ErrStreamNotFound) {
		stream, err := s.js.CreateStream(ctx, s.cfg)
		if err != nil {
			return nil, fmt.Errorf("create stream %s: %w", s.cfg.Name, err)
		}
		return stream, nil
	}

	return nil, fmt.Errorf("check stream %s: %w", s.cfg.Name, err)
}

// Config returns the stream definition.
func (s *StreamInitializer) Config() jetstream.StreamConfig {
	return s.cfg
}

// ProvisionStream connects to cfg.URL, ensures the swipe stream and
// disconnects again.
func ProvisionStream(ctx context.Context, cfg *config.NATSConfig) error {
	nc, err := natsgo.Connect(cfg.URL, natsgo.Name("moviematch-provisioner"), natsgo.Timeout(5*time.Second))
	if err != nil {
		return fmt.Errorf("connect to NATS: %w", err)
	}
	defer nc.Close()

	js, err := jetstream.New(nc)
	if err != nil {
		return fmt.Errorf("create JetStream context: %w", err)
	}

	si, err := NewStreamInitializer(js, cfg)
	if err != nil {
		return err
	}
	if _, err := si.EnsureStream(ctx); err != nil {
		return err
	}
	return nil
}
