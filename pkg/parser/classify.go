package parser

import (
	"errors"
	"fmt"
	"strings"
)

// NonWorkSection is the marker line that starts the non-work definition
// section. It is matched case-insensitively.
const NonWorkSection = "[NON-WORK-DEFINITION]"

// NonWorkKey is the only key recognized inside the non-work section.
const NonWorkKey = "non_work_categories"

// ActionKind tags what a line means.
type ActionKind int

const (
	// ActionIgnore is a blank or comment line.
	ActionIgnore ActionKind = iota
	// ActionEnterNonWork is the section marker.
	ActionEnterNonWork
	// ActionDeclareCategory is "@Name" or "@Name:color".
	ActionDeclareCategory
	// ActionNonWorkEntry is a "key = value" line inside the non-work section.
	ActionNonWorkEntry
	// ActionCommitment is any other line.
	ActionCommitment
)

func (k ActionKind) String() string {
	switch k {
	case ActionIgnore:
		return "ignore"
	case ActionEnterNonWork:
		return "enter-non-work"
	case ActionDeclareCategory:
		return "declare-category"
	case ActionNonWorkEntry:
		return "non-work-entry"
	case ActionCommitment:
		return "commitment"
	}
	return fmt.Sprintf("ActionKind(%d)", int(k))
}

// Action is the classification of one line.
type Action struct {
	Kind ActionKind
	Line int
	// Text is the trimmed line.
	Text string

	// Category declarations.
	Category string
	Color    string
	HasColor bool

	// Non-work entries.
	Key   string
	Value string
}

var (
	errEmptyCategory = errors.New("category declaration needs a name")
	errNotKeyValue   = errors.New("expected key = value inside " + NonWorkSection)
)

// Classify decides what a line means given the current state. Rules apply in
// order: comments and blanks, the section marker, category declarations,
// non-work entries while inside the section, and commitments otherwise.
// A returned error is a line-level failure; the Action is still usable for
// its state effect.
func Classify(raw string, lineNo int, st State) (Action, error) {
	text := strings.TrimSpace(raw)
	a := Action{Line: lineNo, Text: text}

	switch {
	case text == "" || strings.HasPrefix(text, "#"):
		a.Kind = ActionIgnore
		return a, nil

	case strings.EqualFold(text, NonWorkSection):
		a.Kind = ActionEnterNonWork
		return a, nil

	case strings.HasPrefix(text, "@"):
		a.Kind = ActionDeclareCategory
		name, color, hasColor := strings.Cut(text[1:], ":")
		a.Category = strings.TrimSpace(name)
		if hasColor {
			a.Color = strings.TrimSpace(color)
			a.HasColor = true
		}
		if a.Category == "" {
			return a, errEmptyCategory
		}
		return a, nil

	case st.InNonWork:
		a.Kind = ActionNonWorkEntry
		key, value, ok := strings.Cut(text, "=")
		if !ok {
			return a, errNotKeyValue
		}
		a.Key = strings.TrimSpace(key)
		a.Value = strings.TrimSpace(value)
		return a, nil
	}

	a.Kind = ActionCommitment
	return a, nil
}

// splitList splits a comma-separated value, trimming entries and dropping
// empty ones.
func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
