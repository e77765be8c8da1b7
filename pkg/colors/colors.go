// Package colors assigns display colors to schedule categories.
package colors

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	// Uncategorized is used for blocks without a category.
	Uncategorized = "gray"
	// Trigger is used for triggers without an inline category.
	Trigger = "black"
)

// DefaultPalette is the ten-color palette categories are drawn from in
// first-use order.
func DefaultPalette() []string {
	return []string{
		"#AEC7E8", "#FFBB78", "#98DF8A", "#FF9896", "#C5B0D5",
		"#C49C94", "#F7B6D2", "#DBDB8D", "#9EDAE5", "#AD494A",
	}
}

// Assigner maps category names to colors. Manual colors always win; other
// categories take the next palette color the first time they are asked for,
// wrapping when the palette runs out. An Assigner belongs to one parse pass
// and is not safe for concurrent use.
type Assigner struct {
	palette []string
	manual  map[string]string
	auto    map[string]string
	next    int
	cycled  bool
	warn    func(string)
}

// Option configures an Assigner.
type Option func(*Assigner)

// WithWarn installs a hook that receives the one-time palette exhaustion
// warning.
func WithWarn(fn func(msg string)) Option {
	return func(a *Assigner) {
		a.warn = fn
	}
}

// NewAssigner builds an Assigner over palette. An empty palette falls back to
// DefaultPalette.
func NewAssigner(palette []string, opts ...Option) *Assigner {
	if len(palette) == 0 {
		palette = DefaultPalette()
	}
	a := &Assigner{
		palette: append([]string(nil), palette...),
		manual:  make(map[string]string),
		auto:    make(map[string]string),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Define records a manual color for category. The last definition wins.
func (a *Assigner) Define(category, color string) {
	a.manual[category] = color
}

// For returns the color of category.
func (a *Assigner) For(category string) string {
	if c, ok := a.manual[category]; ok {
		return c
	}
	if c, ok := a.auto[category]; ok {
		return c
	}
	if !a.cycled && a.next >= len(a.palette) {
		a.cycled = true
		if a.warn != nil {
			a.warn(fmt.Sprintf("Reached end of %d-color palette. Colors will be reused.", len(a.palette)))
		}
	}
	c := a.palette[a.next%len(a.palette)]
	a.auto[category] = c
	a.next++
	return c
}

// Lookup returns the color category already has, without assigning one.
func (a *Assigner) Lookup(category string) (string, bool) {
	if c, ok := a.manual[category]; ok {
		return c, true
	}
	c, ok := a.auto[category]
	return c, ok
}

// Clone copies the assignments made so far. The copy has no warn hook.
func (a *Assigner) Clone() *Assigner {
	c := &Assigner{
		palette: a.palette,
		manual:  make(map[string]string, len(a.manual)),
		auto:    make(map[string]string, len(a.auto)),
		next:    a.next,
		cycled:  a.cycled,
	}
	for k, v := range a.manual {
		c.manual[k] = v
	}
	for k, v := range a.auto {
		c.auto[k] = v
	}
	return c
}

// Cycled reports whether the palette has wrapped at least once.
func (a *Assigner) Cycled() bool {
	return a.cycled
}

// PaletteSize is the number of palette colors.
func (a *Assigner) PaletteSize() int {
	return len(a.palette)
}

var named = map[string]string{
	"black":  "#000000",
	"white":  "#FFFFFF",
	"gray":   "#808080",
	"grey":   "#808080",
	"red":    "#FF0000",
	"green":  "#008000",
	"blue":   "#0000FF",
	"yellow": "#FFFF00",
	"orange": "#FFA500",
	"purple": "#800080",
	"pink":   "#FFC0CB",
	"brown":  "#A52A2A",
	"cyan":   "#00FFFF",
	"navy":   "#000080",
	"teal":   "#008080",
}

// Resolve turns a hex string or one of a few common color names into a
// color. Colors are not validated at parse time; rendering calls this.
func Resolve(value string) (colorful.Color, error) {
	v := strings.TrimSpace(value)
	if hex, ok := named[strings.ToLower(v)]; ok {
		v = hex
	}
	if !strings.HasPrefix(v, "#") {
		v = "#" + v
	}
	c, err := colorful.Hex(v)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("colors: unsupported color %q: %w", value, err)
	}
	return c, nil
}

// Hex normalizes value to "#rrggbb", or returns value unchanged if it cannot
// be resolved.
func Hex(value string) string {
	c, err := Resolve(value)
	if err != nil {
		return value
	}
	return c.Hex()
}

// TextColorFor picks black or white text for readability on background bg,
// using perceived luminance. Unknown colors get black.
func TextColorFor(bg string) string {
	c, err := Resolve(bg)
	if err != nil {
		return "black"
	}
	r, g, b := c.RGB255()
	luminance := (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 255
	if luminance > 0.5 {
		return "black"
	}
	return "white"
}
