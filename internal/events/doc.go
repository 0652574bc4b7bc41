// MovieMatch - Swipe-based movie discovery proxy and client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

/*
Package events publishes swipe.recorded messages for the recommender service.

Every stored swipe becomes one Watermill message whose payload is a
models.SwipeRecordedEvent encoded as JSON. The Watermill message UUID doubles
as the NATS Nats-Msg-Id header so JetStream can deduplicate redeliveries.

Publishers:
  - NATS (JetStream by default, core NATS when nats.jetstream is false)
  - Noop, used when nats.enabled is false

With JetStream on, NewFromConfig first creates or updates the stream
(nats.stream_name, default SWIPES) capturing the topic subject. Watermill
auto-provisioning stays off because it would name the stream after the
dotted topic.

Publishing sits behind a circuit breaker (nats-publisher) so a dead broker is
skipped quickly. Callers treat publish errors as non-fatal: the swipe is
already stored.
*/
package events
