// Package display provides terminal output formatting for the dashboard.
package display

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rastogi30/Personalized-Dashboard/internal/aggregator"
	"github.com/rastogi30/Personalized-Dashboard/internal/view"
)

const (
	separator      = " • "
	descriptionMax = 160
)

// Option configures a TerminalFormatter.
type Option func(*TerminalFormatter)

// WithClock sets the time source for relative timestamps.
func WithClock(now func() time.Time) Option {
	return func(f *TerminalFormatter) { f.now = now }
}

// WithSaved marks items for which saved returns true.
func WithSaved(saved func(id string) bool) Option {
	return func(f *TerminalFormatter) { f.saved = saved }
}

// TerminalFormatter formats feed items for terminal display.
type TerminalFormatter struct {
	styles styles
	now    func() time.Time
	saved  func(id string) bool
}

// NewTerminalFormatter creates a formatter whose output is written to w.
func NewTerminalFormatter(w io.Writer, theme Theme, opts ...Option) *TerminalFormatter {
	f := &TerminalFormatter{
		styles: newStyles(w, theme),
		now:    time.Now,
		saved:  func(string) bool { return false },
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FormatItem formats a single feed item for display.
func (f *TerminalFormatter) FormatItem(item aggregator.Item) string {
	var lines []string

	// Header: [KIND] Title (id)
	badgeStyle, ok := f.styles.badges[string(item.Kind)]
	if !ok {
		badgeStyle = f.styles.title
	}
	badge := badgeStyle.Render("[" + strings.ToUpper(string(item.Kind)) + "]")
	header := fmt.Sprintf("%s %s %s", badge, f.styles.title.Render(item.Title), f.styles.meta.Render("("+item.ID+")"))
	if f.saved(item.ID) {
		header += " " + f.styles.saved.Render("♥")
	}
	lines = append(lines, header)

	if meta := f.formatMeta(item.Meta); meta != "" {
		lines = append(lines, "  "+f.styles.meta.Render(meta))
	}

	if item.Description != "" {
		lines = append(lines, "  "+f.styles.body.Render(f.TruncateText(item.Description, descriptionMax)))
	}

	if item.Link != "" {
		lines = append(lines, "  "+f.styles.link.Render(item.Link))
	}

	return strings.Join(lines, "\n") + "\n"
}

// formatMeta renders the kind-specific line.
func (f *TerminalFormatter) formatMeta(meta aggregator.Meta) string {
	switch m := meta.(type) {
	case aggregator.NewsMeta:
		var parts []string
		if m.SourceName != "" {
			parts = append(parts, m.SourceName)
		}
		if m.PublishedAt != "" {
			if t, err := time.Parse(time.RFC3339, m.PublishedAt); err == nil {
				parts = append(parts, f.FormatTimestamp(t))
			} else {
				parts = append(parts, m.PublishedAt)
			}
		}
		return strings.Join(parts, separator)
	case aggregator.MovieMeta:
		var parts []string
		if m.ReleaseDate != "" {
			parts = append(parts, "Released "+m.ReleaseDate)
		}
		parts = append(parts, fmt.Sprintf("★ %.1f/10", m.VoteAverage))
		return strings.Join(parts, separator)
	case aggregator.SocialMeta:
		return fmt.Sprintf("User %d", m.UserID)
	}
	return ""
}

// FormatFeed formats multiple feed items for display.
func (f *TerminalFormatter) FormatFeed(items []aggregator.Item) string {
	if len(items) == 0 {
		return f.styles.message.Render(view.MessageNoContent) + "\n"
	}

	var formatted []string
	for _, item := range items {
		formatted = append(formatted, f.FormatItem(item))
	}

	return strings.Join(formatted, "\n---\n\n")
}

// FormatView formats a section according to its resolved state.
func (f *TerminalFormatter) FormatView(state view.State, items []aggregator.Item) string {
	switch state.Status {
	case view.StatusReady:
		return f.FormatFeed(items)
	case view.StatusLoading:
		return f.styles.message.Render("Loading...") + "\n"
	default:
		return f.styles.message.Render(state.Message) + "\n"
	}
}

// FormatTimestamp formats a timestamp as relative time.
func (f *TerminalFormatter) FormatTimestamp(t time.Time) string {
	diff := f.now().Sub(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return pluralize(int(diff.Minutes()), "minute")
	case diff < 24*time.Hour:
		return pluralize(int(diff.Hours()), "hour")
	case diff < 7*24*time.Hour:
		return pluralize(int(diff.Hours()/24), "day")
	default:
		return t.Format("Jan 2, 2006")
	}
}

// pluralize returns "N unit ago" or "N units ago" based on count.
func pluralize(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

// TruncateText truncates text to maxLen runes, adding "..." if truncated.
func (f *TerminalFormatter) TruncateText(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	if maxLen <= 3 {
		return "..."
	}
	return string(runes[:maxLen-3]) + "..."
}
