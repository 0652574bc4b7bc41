// MovieMatch - Swipe-based movie discovery proxy and client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package main

import (
	"bufio"
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/moviematch/internal/logging"
	"github.com/tomtom215/moviematch/internal/models"
	"github.com/tomtom215/moviematch/internal/recommend"
	"github.com/tomtom215/moviematch/internal/tui"
)

type recsOptions struct {
	user  int
	all   bool
	feed  bool
	pages int
}

func newRecsCmd(c *cli) *cobra.Command {
	opts := &recsOptions{}
	cmd := &cobra.Command{
		Use:   "recs",
		Short: "Show recommendations",
		Long: `Merges the content, collaborative and hybrid recommendations, tops the
list up with popular movies and pages through it with Load More.

--feed asks the proxy to run the aggregation instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			userID, err := c.userID(opts.user)
			if err != nil {
				return err
			}
			if opts.feed {
				return runFeed(cmd.Context(), c, userID, opts.pages)
			}
			return runRecs(cmd, c, userID, opts.all)
		},
	}
	cmd.Flags().IntVar(&opts.user, "user", 0, "user id (default MOVIEMATCH_USER_ID)")
	cmd.Flags().BoolVar(&opts.all, "all", false, "show every recommendation without prompting")
	cmd.Flags().BoolVar(&opts.feed, "feed", false, "use the proxy's feed endpoint")
	cmd.Flags().IntVar(&opts.pages, "pages", 1, "pages to request with --feed")
	return cmd
}

func runRecs(cmd *cobra.Command, c *cli, userID int, all bool) error {
	agg, err := recommend.NewAggregator(c.client, recommend.DefaultOptions(), logging.Logger())
	if err != nil {
		return err
	}

	ctx, cancel := c.context(cmd.Context())
	defer cancel()

	if err := c.printer.RenderRecommendations(recommend.State{LoadingFull: true}); err != nil {
		return err
	}
	state, err := agg.LoadAll(ctx, userID)
	if err != nil {
		return fmt.Errorf("recommendations: %w", err)
	}

	if all {
		for agg.LoadMore() {
		}
		return c.printer.RenderRecommendations(agg.Snapshot())
	}

	in := bufio.NewReader(cmd.InOrStdin())
	for {
		if err := c.printer.RenderRecommendations(state); err != nil {
			return err
		}
		if !state.HasMore() || !tui.Confirm(c.printer, in, tui.LoadMoreText+"?") {
			return nil
		}
		agg.LoadMore()
		state = agg.Snapshot()
	}
}

func runFeed(parent context.Context, c *cli, userID, pages int) error {
	ctx, cancel := c.context(parent)
	defer cancel()

	feed, err := c.client.Feed(ctx, userID, pages)
	if err != nil {
		return fmt.Errorf("feed: %w", err)
	}
	// The feed carries only the shown prefix. Full is padded to Total so the
	// Load More counter matches the proxy.
	state := recommend.State{Shown: feed.Items, Full: feed.Items}
	if feed.Total > len(feed.Items) {
		full := make([]models.Movie, feed.Total)
		copy(full, feed.Items)
		state.Full = full
	}
	return c.printer.RenderRecommendations(state)
}
