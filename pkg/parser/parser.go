// Package parser reads schedule files into commitments.
//
// A schedule file is line oriented. Each line is classified against the
// current State, the state is folded forward, and commitment lines expand
// into one schedule.Commitment per day letter. A bad line is recorded as a
// LineError and parsing moves on to the next line.
package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"tableflip.dev/unsched/pkg/colors"
	"tableflip.dev/unsched/pkg/schedule"
)

// maxLineSize bounds a single schedule line.
const maxLineSize = 1024 * 1024

// Result is everything one parse pass produced.
type Result struct {
	Commitments []schedule.Commitment `json:"commitments" yaml:"commitments"`
	// Categories is every category seen, in first-seen order.
	Categories *schedule.CategorySet `json:"-" yaml:"-"`
	NonWork    []string              `json:"non_work" yaml:"non_work"`
	Errors     []*LineError          `json:"errors,omitempty" yaml:"errors,omitempty"`
	Warnings   []string              `json:"warnings,omitempty" yaml:"warnings,omitempty"`

	assigner *colors.Assigner
}

// Failed reports whether any line failed to parse. Callers should not act on
// the commitments of a failed pass.
func (r *Result) Failed() bool {
	return len(r.Errors) > 0
}

// Err joins every line error, or returns nil.
func (r *Result) Err() error {
	if !r.Failed() {
		return nil
	}
	errs := make([]error, 0, len(r.Errors))
	for _, e := range r.Errors {
		errs = append(errs, e)
	}
	return errors.Join(errs...)
}

// CategoryColors lists every known category with its color and whether it
// is non-work. Categories that never received a color get the one they would
// be assigned next; the result itself is not changed.
func (r *Result) CategoryColors() []schedule.Category {
	nonWork := schedule.NewCategorySet(r.NonWork...)
	names := r.Categories.Names()
	var a *colors.Assigner
	if r.assigner != nil {
		a = r.assigner.Clone()
	} else {
		a = colors.NewAssigner(nil)
	}
	out := make([]schedule.Category, 0, len(names))
	for _, name := range names {
		c := a.For(name)
		out = append(out, schedule.Category{Name: name, Color: c, NonWork: nonWork.Contains(name)})
	}
	return out
}

// Parser holds the options for parse passes. Each pass gets its own State
// and color assigner, so a Parser may be shared across goroutines.
type Parser struct {
	palette []string
	warn    func(string)
	strict  bool
}

// Option configures a Parser.
type Option func(*Parser)

// WithPalette sets the palette categories draw colors from.
func WithPalette(palette []string) Option {
	return func(p *Parser) {
		p.palette = palette
	}
}

// WithWarn receives warnings as they happen. Warnings are also collected on
// the Result.
func WithWarn(fn func(msg string)) Option {
	return func(p *Parser) {
		p.warn = fn
	}
}

// WithStrictRecurrence turns unknown recurrences into line errors instead of
// warnings.
func WithStrictRecurrence(strict bool) Option {
	return func(p *Parser) {
		p.strict = strict
	}
}

// New returns a Parser.
func New(opts ...Option) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse runs one pass over r. The returned error is only for read failures;
// line failures are on Result.Errors. On a read failure the partial result is
// returned alongside the error.
func (p *Parser) Parse(r io.Reader) (*Result, error) {
	pass := p.newPass()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		pass.line(scanner.Text(), lineNo)
	}
	if err := scanner.Err(); err != nil {
		return pass.result, fmt.Errorf("reading schedule after line %d: %w", lineNo, err)
	}
	return pass.result, nil
}

// ParseString runs one pass over text.
func (p *Parser) ParseString(text string) *Result {
	// strings.Reader never fails.
	res, _ := p.Parse(strings.NewReader(text))
	return res
}

// Parse runs one pass over r with default options.
func Parse(r io.Reader) (*Result, error) {
	return New().Parse(r)
}

type pass struct {
	parser   *Parser
	state    State
	assigner *colors.Assigner
	result   *Result
}

func (p *Parser) newPass() *pass {
	ps := &pass{parser: p}
	ps.result = &Result{
		Commitments: []schedule.Commitment{},
		Categories:  schedule.NewCategorySet(),
		NonWork:     []string{},
	}
	ps.assigner = colors.NewAssigner(p.palette, colors.WithWarn(ps.warnf))
	ps.result.assigner = ps.assigner
	return ps
}

func (ps *pass) warnf(msg string) {
	ps.result.Warnings = append(ps.result.Warnings, msg)
	if ps.parser.warn != nil {
		ps.parser.warn(msg)
	}
}

func (ps *pass) fail(lineNo int, text string, err error) {
	ps.result.Errors = append(ps.result.Errors, newLineError(lineNo, text, err))
}

func (ps *pass) line(raw string, lineNo int) {
	a, err := Classify(raw, lineNo, ps.state)
	ps.state = ps.state.Apply(a)
	if err != nil {
		ps.fail(lineNo, a.Text, err)
		return
	}

	switch a.Kind {
	case ActionDeclareCategory:
		ps.result.Categories.Add(a.Category)
		if a.HasColor {
			ps.assigner.Define(a.Category, a.Color)
		}
	case ActionNonWorkEntry:
		if a.Key == NonWorkKey {
			ps.result.NonWork = splitList(a.Value)
		}
	case ActionCommitment:
		ps.commitment(a)
	}
}

func (ps *pass) commitment(a Action) {
	l, ok, err := ParseLine(a.Text)
	if l.Inline != "" {
		ps.result.Categories.Add(l.Inline)
	}
	// Times are only checked for lines that land on a day.
	if !ok || len(l.Days()) == 0 {
		return
	}
	if err != nil {
		ps.fail(a.Line, a.Text, err)
		return
	}
	if !l.Recurrence.Known() {
		rerr := unknownRecurrence(l.Recurrence)
		if ps.parser.strict {
			ps.fail(a.Line, a.Text, rerr)
			return
		}
		ps.warnf(fmt.Sprintf("line %d: %v", a.Line, rerr))
	}
	ps.result.Commitments = append(ps.result.Commitments,
		l.expand(a.Line, ps.state, ps.assigner, ps.result.Categories)...)
}
