// MovieMatch - Swipe-based movie discovery proxy and client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package services

import (
	"context"
	"fmt"

	"github.com/tomtom215/moviematch/internal/logging"
)

// Closer is satisfied by *events.SwipePublisher.
type Closer interface {
	Close() error
}

// PublisherService owns the swipe event publisher's lifetime. Handlers use
// the publisher directly; the service closes it when the tree stops.
type PublisherService struct {
	publisher Closer
	name      string
}

// NewPublisherService wraps publisher.
func NewPublisherService(publisher Closer) *PublisherService {
	return &PublisherService{publisher: publisher, name: "swipe-publisher"}
}

// Serve blocks until ctx is canceled and then closes the publisher.
func (s *PublisherService) Serve(ctx context.Context) error {
	<-ctx.Done()

	if err := s.publisher.Close(); err != nil {
		logging.Warn().Err(err).Msg("Failed to close swipe publisher")
		return fmt.Errorf("close publisher: %w", err)
	}
	return ctx.Err()
}

func (s *PublisherService) String() string {
	return s.name
}
