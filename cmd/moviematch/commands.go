// MovieMatch - Swipe-based movie discovery proxy and client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tomtom215/moviematch/internal/models"
)

func newLoginCmd(c *cli) *cobra.Command {
	var uid, name string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Map a Firebase UID to a MovieMatch user id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(uid) == "" {
				return errors.New("--uid is required")
			}
			ctx, cancel := c.context(cmd.Context())
			defer cancel()

			id, err := c.client.ImportOrGetID(ctx, uid, name)
			if err != nil {
				return fmt.Errorf("login: %w", err)
			}
			c.printer.Success("Logged in as user %d", id)
			c.printer.Plain("export MOVIEMATCH_USER_ID=%d", id)
			return nil
		},
	}
	cmd.Flags().StringVar(&uid, "uid", "", "Firebase UID")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	return cmd
}

func newDeckCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "deck",
		Short: "List the popular swipe deck",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := c.context(cmd.Context())
			defer cancel()

			deck, err := c.client.Movies(ctx)
			if err != nil {
				return fmt.Errorf("deck: %w", err)
			}
			return c.printer.RenderDeck(deck)
		},
	}
}

func newSwipeCmd(c *cli) *cobra.Command {
	var user int
	cmd := &cobra.Command{
		Use:   "swipe MOVIE_ID like|dislike",
		Short: "Record a like or dislike",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			movieID, err := strconv.Atoi(args[0])
			if err != nil || movieID <= 0 {
				return fmt.Errorf("invalid movie id %q", args[0])
			}
			direction := strings.ToLower(args[1])
			if direction != models.DirectionLike && direction != models.DirectionDislike {
				return fmt.Errorf("direction must be like or dislike, got %q", args[1])
			}
			userID, err := c.userID(user)
			if err != nil {
				return err
			}

			ctx, cancel := c.context(cmd.Context())
			defer cancel()
			if err := c.client.SendSwipe(ctx, userID, movieID, direction); err != nil {
				return fmt.Errorf("swipe: %w", err)
			}
			c.printer.Success("Recorded %s for movie %d", direction, movieID)
			return nil
		},
	}
	cmd.Flags().IntVar(&user, "user", 0, "user id (default MOVIEMATCH_USER_ID)")
	return cmd
}

func newMovieCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "movie ID",
		Short: "Show movie details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			movieID, err := strconv.Atoi(args[0])
			if err != nil || movieID <= 0 {
				return fmt.Errorf("invalid movie id %q", args[0])
			}
			ctx, cancel := c.context(cmd.Context())
			defer cancel()

			m, err := c.client.MovieDetail(ctx, movieID)
			if err != nil {
				return fmt.Errorf("movie: %w", err)
			}
			return c.printer.RenderMovie(m)
		},
	}
}
