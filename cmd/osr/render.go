package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/review"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/stats"
)

var (
	colorAccent = lipgloss.Color("#8B5CF6")
	colorDim    = lipgloss.Color("#94A3B8")
	colorDue    = lipgloss.Color("#F97316")

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
	dueStyle    = numberStyle.Foreground(colorDue)
	borderStyle = lipgloss.NewStyle().Foreground(colorDim)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...)
}

// renderDeckTree prints one row per deck, indented by depth.
func renderDeckTree(w io.Writer, root *review.DeckSummary) {
	t := newTable("Deck", "New", "Due", "Total").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return cellStyle
			case col == 2:
				return dueStyle
			default:
				return numberStyle
			}
		})

	var add func(d *review.DeckSummary, depth int)
	add = func(d *review.DeckSummary, depth int) {
		name := d.Name
		if depth == 0 {
			name = "All decks"
		}
		t.Row(strings.Repeat("  ", depth)+name, strconv.Itoa(d.New), strconv.Itoa(d.Due), strconv.Itoa(d.Total))
		for _, sub := range d.Subdecks {
			add(sub, depth+1)
		}
	}
	add(root, 0)

	fmt.Fprintln(w, titleStyle.Render("Decks"))
	fmt.Fprintln(w, t.Render())
}

// renderSummary prints the headline numbers for cards and notes side by side.
func renderSummary(w io.Writer, view *review.StatsView) {
	t := newTable("", "Cards", "Notes").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return cellStyle
			default:
				return numberStyle
			}
		})

	c, n := view.Cards, view.Notes
	t.Row("New", strconv.Itoa(c.New), strconv.Itoa(n.New))
	t.Row("Young", strconv.Itoa(c.Young), strconv.Itoa(n.Young))
	t.Row("Mature", strconv.Itoa(c.Mature), strconv.Itoa(n.Mature))
	t.Row("Overdue", strconv.Itoa(c.Overdue), strconv.Itoa(n.Overdue))
	t.Row("Total", strconv.Itoa(c.Total), strconv.Itoa(n.Total))
	t.Row("Average ease", formatFloat(c.AverageEase), formatFloat(n.AverageEase))
	t.Row("Average interval", formatFloat(c.AverageInterval), formatFloat(n.AverageInterval))

	fmt.Fprintln(w, titleStyle.Render("Summary"))
	fmt.Fprintln(w, t.Render())
}

// renderForecast prints how many cards fall due in each bucket, labelled by
// the first day of the bucket counted from today.
func renderForecast(w io.Writer, view *review.ForecastView, today time.Time) {
	fmt.Fprintln(w, titleStyle.Render("Forecast by "+string(view.Bucket)))
	if len(view.Entries) == 0 {
		fmt.Fprintln(w, lipgloss.NewStyle().Foreground(colorDim).Italic(true).Render("Nothing scheduled."))
		return
	}

	t := newTable("From", "Due").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return cellStyle
			default:
				return dueStyle
			}
		})
	for _, e := range view.Entries {
		t.Row(bucketStart(view.Bucket, e.Bucket, today), strconv.Itoa(e.Count))
	}
	fmt.Fprintln(w, t.Render())
}

func bucketStart(g stats.Granularity, bucket int, today time.Time) string {
	if bucket == 0 {
		return "today"
	}
	return today.AddDate(0, 0, bucket*g.Days()).Format("2006-01-02")
}

func formatFloat(f float64) string {
	if f == 0 {
		return "-"
	}
	return strconv.FormatFloat(f, 'f', 1, 64)
}
