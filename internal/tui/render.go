// MovieMatch - Swipe-based movie discovery proxy and client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/tomtom215/moviematch/internal/models"
	"github.com/tomtom215/moviematch/internal/recommend"
)

// Texts of the recommendations view.
const (
	BadgeText        = "Smart Recommendations"
	HeaderTitle      = "Recommended for You"
	HeaderSubtitle   = "Based on your likes"
	LoadingText      = "Loading recommendations…"
	LoadMoreText     = "Load More"
	EmptyText        = "No recommendations yet"
	loadingMoreText  = "Loading more…"
	missingValueText = "-"
)

func (p *Printer) newTable(headers ...string) *tablewriter.Table {
	table := tablewriter.NewTable(p.out,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoFormat: tw.On},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{ShowHeader: tw.Off},
			},
		}),
	)
	table.Header(headers)
	return table
}

// Genre returns the first genre name uppercased, or "".
func Genre(m *models.Movie) string {
	if len(m.Genres) == 0 {
		return ""
	}
	return strings.ToUpper(m.Genres[0].Name)
}

// Rating formats the vote average with one decimal; missing ratings show 0.0.
func Rating(m *models.Movie) string {
	v := 0.0
	if m.VoteAverage != nil {
		v = *m.VoteAverage
	}
	return fmt.Sprintf("%.1f", v)
}

// Year returns the release year or "-".
func Year(m *models.Movie) string {
	if m.ReleaseDate == nil || len(*m.ReleaseDate) < 4 {
		return missingValueText
	}
	return (*m.ReleaseDate)[:4]
}

// RenderRecommendations draws the recommendations view for state: a loading
// line during a full load, otherwise the header, the hero card of the first
// movie, a table of the rest and the Load More affordance.
func (p *Printer) RenderRecommendations(state recommend.State) error {
	if state.LoadingFull {
		p.paint(color.FgWhite, color.Bold).Fprintln(p.out, LoadingText)
		return nil
	}

	p.paint(color.FgWhite).Fprintf(p.out, "✨ %s\n\n", BadgeText)
	p.paint(color.FgWhite, color.Bold).Fprintln(p.out, HeaderTitle)
	p.paint(color.Faint).Fprintln(p.out, HeaderSubtitle)
	fmt.Fprintln(p.out)

	if len(state.Shown) == 0 {
		p.paint(color.FgYellow).Fprintln(p.out, EmptyText)
		return nil
	}

	p.renderHero(&state.Shown[0])

	if rest := state.Shown[1:]; len(rest) > 0 {
		table := p.newTable("#", "Title", "Genre", "Rating", "Year")
		rows := make([][]string, 0, len(rest))
		for i := range rest {
			m := &rest[i]
			genre := Genre(m)
			if genre == "" {
				genre = missingValueText
			}
			rows = append(rows, []string{strconv.Itoa(i + 2), m.Title, genre, "★ " + Rating(m), Year(m)})
		}
		if err := table.Bulk(rows); err != nil {
			return fmt.Errorf("render recommendations: %w", err)
		}
		if err := table.Render(); err != nil {
			return fmt.Errorf("render recommendations: %w", err)
		}
	}

	fmt.Fprintln(p.out)
	switch {
	case state.LoadingMore:
		p.paint(color.Faint).Fprintln(p.out, loadingMoreText)
	case state.HasMore():
		p.paint(color.FgBlue, color.Bold).Fprintf(p.out, "%s (%d of %d shown)\n", LoadMoreText, len(state.Shown), len(state.Full))
	}
	return nil
}

func (p *Printer) renderHero(m *models.Movie) {
	if genre := Genre(m); genre != "" {
		p.paint(color.BgBlue, color.FgWhite).Fprintf(p.out, " %s ", genre)
		fmt.Fprintln(p.out)
	}
	p.paint(color.FgWhite, color.Bold).Fprintln(p.out, m.Title)
	p.paint(color.FgYellow).Fprint(p.out, "★ ")
	fmt.Fprintln(p.out, Rating(m))
	if m.PosterPath != nil {
		p.paint(color.Faint).Fprintln(p.out, m.PosterURL())
	}
	fmt.Fprintln(p.out)
}

// RenderDeck lists the swipe deck.
func (p *Printer) RenderDeck(deck []models.SwipeMovie) error {
	if len(deck) == 0 {
		p.Warning("The swipe deck is empty")
		return nil
	}
	table := p.newTable("ID", "Title", "Poster")
	rows := make([][]string, 0, len(deck))
	for _, m := range deck {
		rows = append(rows, []string{strconv.Itoa(m.ID), m.Title, m.PosterURL})
	}
	if err := table.Bulk(rows); err != nil {
		return fmt.Errorf("render deck: %w", err)
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("render deck: %w", err)
	}
	return nil
}

// RenderMovie prints the detail view of one movie.
func (p *Printer) RenderMovie(m *models.Movie) error {
	p.paint(color.FgWhite, color.Bold).Fprintln(p.out, m.Title)
	if m.Tagline != nil && *m.Tagline != "" {
		p.paint(color.Italic).Fprintln(p.out, *m.Tagline)
	}
	fmt.Fprintln(p.out)

	genres := make([]string, len(m.Genres))
	for i, g := range m.Genres {
		genres[i] = g.Name
	}
	rows := [][]string{
		{"Rating", "★ " + Rating(m)},
		{"Released", valueOr(m.ReleaseDate)},
		{"Runtime", minutes(m.Runtime)},
		{"Genres", strings.Join(genres, ", ")},
		{"Budget", dollars(m.Budget)},
		{"Revenue", dollars(m.Revenue)},
	}
	if m.PosterPath != nil {
		rows = append(rows, []string{"Poster", m.PosterURL()})
	}

	table := p.newTable("Field", "Value")
	if err := table.Bulk(rows); err != nil {
		return fmt.Errorf("render movie: %w", err)
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("render movie: %w", err)
	}

	if m.Overview != nil && *m.Overview != "" {
		fmt.Fprintln(p.out)
		fmt.Fprintln(p.out, *m.Overview)
	}
	return nil
}

func valueOr(s *string) string {
	if s == nil || *s == "" {
		return missingValueText
	}
	return *s
}

func minutes(v *int) string {
	if v == nil || *v == 0 {
		return missingValueText
	}
	return fmt.Sprintf("%d min", *v)
}

func dollars(v *int64) string {
	if v == nil || *v == 0 {
		return missingValueText
	}
	s := strconv.FormatInt(*v, 10)
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return "$" + b.String()
}
