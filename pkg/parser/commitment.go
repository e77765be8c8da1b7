package parser

import (
	"fmt"
	"regexp"
	"strings"

	"tableflip.dev/unsched/pkg/colors"
	"tableflip.dev/unsched/pkg/schedule"
	"tableflip.dev/unsched/pkg/timeutil"
)

var inlineCategoryPattern = regexp.MustCompile(`\s@(\S+)$`)

// Line is a commitment line split into its parts, before it is expanded into
// one commitment per day letter.
type Line struct {
	Recurrence schedule.Recurrence
	DayToken   string
	Kind       schedule.Kind
	Start      timeutil.TimeOfDay
	End        timeutil.TimeOfDay
	At         timeutil.TimeOfDay
	Label      string
	// Inline is the trailing "@Category" of the line, without the "@".
	Inline string
}

// SplitInline strips a trailing " @Category" token from text.
func SplitInline(text string) (rest, category string) {
	loc := inlineCategoryPattern.FindStringSubmatchIndex(text)
	if loc == nil {
		return text, ""
	}
	return strings.TrimSpace(text[:loc[0]]), text[loc[2]:loc[3]]
}

// ParseLine reads one commitment line. ok is false for lines with fewer than
// three words, which are skipped without error.
//
// The line is a block when its fourth word reads as a time; otherwise it is a
// trigger whose label starts at the fourth word.
func ParseLine(text string) (l Line, ok bool, err error) {
	rest, inline := SplitInline(strings.TrimSpace(text))
	l.Inline = inline

	words := strings.Fields(rest)
	if len(words) < 3 {
		return l, false, nil
	}

	l.Recurrence = schedule.Recurrence(words[0])
	l.DayToken = strings.ToUpper(words[1])

	var end timeutil.TimeOfDay
	isBlock := false
	if len(words) > 3 {
		if t, perr := timeutil.ParseTimeOfDay(words[3]); perr == nil {
			end, isBlock = t, true
		}
	}

	first, err := timeutil.ParseTimeOfDay(words[2])
	if err != nil {
		return l, true, err
	}

	if isBlock {
		l.Kind = schedule.KindBlock
		l.Start, l.End = first, end
		l.Label = strings.Join(words[4:], " ")
	} else {
		l.Kind = schedule.KindTrigger
		l.At = first
		l.Label = strings.Join(words[3:], " ")
	}
	return l, true, nil
}

// Days returns the valid day letters of the line's day token, in token order.
// Letters that are not day codes are dropped.
func (l Line) Days() []schedule.Day {
	days := make([]schedule.Day, 0, len(l.DayToken))
	for _, r := range l.DayToken {
		if d, ok := schedule.DayFromRune(r); ok {
			days = append(days, d)
		}
	}
	return days
}

// expand turns a parsed line into one commitment per valid day letter.
// Color resolves on the first valid day, so a line without any valid day
// does not consume a palette color.
func (l Line) expand(lineNo int, st State, assigner *colors.Assigner, known *schedule.CategorySet) []schedule.Commitment {
	days := l.Days()
	if len(days) == 0 {
		return nil
	}

	var category, color string
	switch l.Kind {
	case schedule.KindBlock:
		category = l.Inline
		if category == "" {
			category = st.Category
		}
		color = colors.Uncategorized
		if category != "" {
			known.Add(category)
			color = assigner.For(category)
		}
	default:
		// The current category does not apply to triggers.
		category = l.Inline
		color = colors.Trigger
		if category != "" {
			color = assigner.For(category)
		}
	}

	out := make([]schedule.Commitment, 0, len(days))
	for _, d := range days {
		var c schedule.Commitment
		if l.Kind == schedule.KindBlock {
			c = schedule.NewBlock(l.Recurrence, d, l.Start, l.End, l.Label, category, color)
		} else {
			c = schedule.NewTrigger(l.Recurrence, d, l.At, l.Label, category, color)
		}
		c.Line = lineNo
		out = append(out, c)
	}
	return out
}

func unknownRecurrence(r schedule.Recurrence) error {
	return fmt.Errorf("%w %q (expected Weekly, WeekA or WeekB)", ErrUnknownRecurrence, string(r))
}
