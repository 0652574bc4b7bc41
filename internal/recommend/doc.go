// MovieMatch - Swipe-based movie discovery proxy and client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

/*
Package recommend aggregates ranked recommendation lists into a single
deduplicated, paginated feed.

Scoring happens elsewhere (the external recommender service). This package
only decides which of the returned movies are shown and in what order.

# Load cycle

A call to Aggregator.LoadAll runs one cycle:

 1. The content, collaborative and hybrid sources are fetched concurrently.
    A source that fails for any reason contributes nothing.
 2. Once all three have returned, the lists are merged in that priority
    order. The first occurrence of a movie ID wins.
 3. If fewer than Options.TargetCount movies remain, the fallback pool (the
    popular swipe deck) is fetched once and unseen movies are appended until
    the target is reached or the pool is exhausted.
 4. The full list and the first page are published in one step.

Aggregator.LoadMore reveals the next page of the already published list.
It never performs I/O.

# Supersession

Every cycle carries a generation number. Starting a new cycle cancels the
context of the previous one, and a cycle that finishes after it was
superseded discards its result and returns ErrSuperseded. A slow response
from an older cycle can therefore never overwrite a newer list.

# Usage

	agg, err := recommend.NewAggregator(fetcher, nil, logger)
	if err != nil {
	    return err
	}
	agg.OnChange(func(s recommend.State) { render(s) })

	state, err := agg.LoadAll(ctx, userID)
	for agg.LoadMore() {
	    // render next page
	}
*/
package recommend
