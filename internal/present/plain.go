package present

import (
	"fmt"
	"strings"
	"time"

	"github.com/vab-labo/reminders-cli/internal/domain"
)

// Untitled is rendered in place of a missing title.
const Untitled = "<untitled>"

// PlainOptions configures the line-oriented human renderer.
type PlainOptions struct {
	// ShowList prefixes each line with its list name; set for cross-list
	// views only.
	ShowList bool

	// Now anchors relative-time strings.
	Now time.Time

	// TimeFormat renders the time-of-day of non-all-day due dates.
	// Defaults to 24-hour "15:04".
	TimeFormat string

	// Styles is optional; nil renders unstyled text.
	Styles *Styles
}

// Plain renders one line per item in a fixed segment order: list prefix,
// positional index, title, notes, due date, priority, flag, tags,
// section, repeat rule, remind alarm.
func Plain(items []domain.Enriched, opt PlainOptions) string {
	var b strings.Builder
	for i := range items {
		b.WriteString(Line(&items[i], opt))
		b.WriteByte('\n')
	}
	return b.String()
}

// Line renders a single item.
func Line(r *domain.Enriched, opt PlainOptions) string {
	if opt.TimeFormat == "" {
		opt.TimeFormat = "15:04"
	}
	var segs []string

	if opt.ShowList {
		segs = append(segs, style(opt.Styles, segMeta, r.List+":"))
	}
	if r.HasIndex {
		segs = append(segs, style(opt.Styles, segIndex, fmt.Sprintf("%d:", r.Index)))
	}

	title := r.Title
	if title == "" {
		title = Untitled
	}
	segs = append(segs, style(opt.Styles, segTitle, title))

	if content, url := domain.DecodeNotes(r.Notes); content != "" {
		segs = append(segs, style(opt.Styles, segMeta, "("+content+")"))
	} else if url != "" {
		segs = append(segs, style(opt.Styles, segMeta, "("+url+")"))
	}

	if r.DueDate != nil {
		due := dayLabel(*r.DueDate, opt.Now)
		if !r.AllDay {
			due += " " + r.DueDate.Format(opt.TimeFormat)
		}
		kind := segDue
		if daysBetween(opt.Now, *r.DueDate) < 0 {
			kind = segOverdue
		}
		segs = append(segs, style(opt.Styles, kind, "("+due+")"))
	}

	if p := r.Priority.String(); p != "" {
		segs = append(segs, style(opt.Styles, segMeta, "(priority: "+p+")"))
	}
	if r.Flagged {
		segs = append(segs, style(opt.Styles, segFlag, "(flagged)"))
	}
	if len(r.Tags) > 0 {
		tags := make([]string, len(r.Tags))
		for i, t := range r.Tags {
			tags[i] = "#" + t
		}
		segs = append(segs, style(opt.Styles, segMeta, "(tags: "+strings.Join(tags, ", ")+")"))
	}
	if r.Section != "" {
		segs = append(segs, style(opt.Styles, segMeta, "(section: "+r.Section+")"))
	}
	if label := RecurrenceLabel(r.Recurrence); label != "" {
		segs = append(segs, style(opt.Styles, segMeta, "(repeats: "+label+")"))
	}
	if alarm := r.RemindAlarm(); alarm != nil {
		segs = append(segs, style(opt.Styles, segMeta, "(reminder: "+relTime(alarm.FireDate, opt.Now)+")"))
	}

	return strings.Join(segs, " ")
}

type segment int

const (
	segIndex segment = iota
	segTitle
	segDue
	segOverdue
	segFlag
	segMeta
)

func style(s *Styles, kind segment, text string) string {
	if s == nil {
		return text
	}
	switch kind {
	case segIndex:
		return s.Index.Render(text)
	case segTitle:
		return s.Title.Render(text)
	case segDue:
		return s.Due.Render(text)
	case segOverdue:
		return s.Overdue.Render(text)
	case segFlag:
		return s.Flag.Render(text)
	default:
		return s.Meta.Render(text)
	}
}
