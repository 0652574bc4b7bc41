// MovieMatch - Swipe-based movie discovery proxy and client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

// Package models defines the wire and domain types shared by the MovieMatch
// proxy, the recommendation aggregator and the terminal client.
//
// JSON field names follow the existing wire contracts exactly: movie
// metadata uses TMDB's snake_case, the swipe deck item uses camelCase
// posterURL, and request bodies use camelCase (userId, movieId, firebaseUid).
package models
