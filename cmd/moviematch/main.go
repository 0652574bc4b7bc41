// MovieMatch - Swipe-based movie discovery proxy and client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

// Command moviematch is the terminal client of the MovieMatch proxy.
//
//	moviematch login --uid UID [--name NAME]
//	moviematch deck
//	moviematch swipe MOVIE_ID like|dislike --user N
//	moviematch movie ID
//	moviematch recs --user N [--all] [--feed]
//
// Settings come from MOVIEMATCH_* environment variables, for example
// MOVIEMATCH_BASE_URL and MOVIEMATCH_USER_ID.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
