// MovieMatch - Swipe-based movie discovery proxy and client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package models

import "time"

// Swipe directions accepted by POST /swipes.
const (
	DirectionLike    = "like"
	DirectionDislike = "dislike"
)

// Swipe is one stored swipe event.
type Swipe struct {
	UserID    int       `json:"userId"`
	MovieID   int       `json:"movieId"`
	Direction string    `json:"direction"`
	CreatedAt time.Time `json:"createdAt"`
}

// SwipeRequest is the body of POST /swipes.
type SwipeRequest struct {
	UserID    int    `json:"userId" validate:"min=1"`
	MovieID   int    `json:"movieId" validate:"min=1"`
	Direction string `json:"direction" validate:"oneof=like dislike"`
}

// SwipeResponse is the body returned by POST /swipes.
type SwipeResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// ImportUserRequest is the body of POST /users/importOrGetId.
type ImportUserRequest struct {
	FirebaseUID string `json:"firebaseUid" validate:"required,max=128"`
	DisplayName string `json:"displayName,omitempty" validate:"max=256"`
}

// ImportUserResponse is the success body of POST /users/importOrGetId.
type ImportUserResponse struct {
	UserID int `json:"userId"`
}

// ErrorResponse is the {error} body used by the user import route.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SwipeRecordedEvent is published after a swipe has been stored.
type SwipeRecordedEvent struct {
	EventID    string    `json:"event_id"`
	UserID     int       `json:"user_id"`
	MovieID    int       `json:"movie_id"`
	Direction  string    `json:"direction"`
	RecordedAt time.Time `json:"recorded_at"`
}
