// MovieMatch - Swipe-based movie discovery proxy and client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/moviematch/internal/client"
	"github.com/tomtom215/moviematch/internal/config"
	"github.com/tomtom215/moviematch/internal/logging"
	"github.com/tomtom215/moviematch/internal/tui"
)

// cli carries what every subcommand needs once flags are parsed.
type cli struct {
	baseURL string
	noColor bool
	verbose bool

	cfg     *config.ClientConfig
	client  *client.Client
	printer *tui.Printer
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "moviematch",
		Short: "Swipe-based movie discovery from the terminal",
		Long: `moviematch talks to a MovieMatch proxy server.

Example usage:
  moviematch login --uid abc123      # map a Firebase UID to a user id
  moviematch deck                    # list the popular swipe deck
  moviematch swipe 603 like --user 1 # record a swipe
  moviematch recs --user 1           # recommendations with Load More`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.init(cmd)
		},
	}

	root.PersistentFlags().StringVar(&c.baseURL, "url", "", "proxy base URL (default from MOVIEMATCH_BASE_URL)")
	root.PersistentFlags().BoolVar(&c.noColor, "no-color", false, "disable colored output")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newLoginCmd(c),
		newDeckCmd(c),
		newSwipeCmd(c),
		newMovieCmd(c),
		newRecsCmd(c),
	)
	return root
}

func (c *cli) init(cmd *cobra.Command) error {
	cfg, err := config.LoadClient()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if c.baseURL != "" {
		cfg.BaseURL = c.baseURL
	}

	level := cfg.Logging.Level
	if c.verbose {
		level = "debug"
	}
	logging.Init(logging.Config{Level: level, Format: cfg.Logging.Format, Output: os.Stderr})

	cl, err := client.New(cfg)
	if err != nil {
		return err
	}

	c.cfg = cfg
	c.client = cl
	c.printer = tui.NewPrinter(cmd.OutOrStdout(), tui.ResolveColors(!c.noColor))
	return nil
}

// userID resolves --user, falling back to MOVIEMATCH_USER_ID.
func (c *cli) userID(flag int) (int, error) {
	if flag > 0 {
		return flag, nil
	}
	if c.cfg.UserID > 0 {
		return c.cfg.UserID, nil
	}
	return 0, client.ErrMissingUser
}

// context returns a request context bounded by the client timeout and
// tagged with a fresh request id.
func (c *cli) context(parent context.Context) (context.Context, context.CancelFunc) {
	ctx := logging.ContextWithRequestID(parent, logging.NewRequestID())
	timeout := c.cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return context.WithTimeout(ctx, timeout)
}
