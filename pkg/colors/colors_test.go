package colors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignerStableOrder(t *testing.T) {
	a := NewAssigner(nil)
	first := a.For("Work")
	second := a.For("Sleep")

	assert.Equal(t, DefaultPalette()[0], first)
	assert.Equal(t, DefaultPalette()[1], second)
	assert.Equal(t, first, a.For("Work"), "cached assignment")
}

func TestAssignerManualWins(t *testing.T) {
	a := NewAssigner(nil)
	auto := a.For("Gym")
	a.Define("Gym", "#123456")
	assert.Equal(t, "#123456", a.For("Gym"))
	assert.NotEqual(t, auto, a.For("Gym"))

	a.Define("Gym", "red")
	assert.Equal(t, "red", a.For("Gym"), "last definition wins")

	a.Define("Read", "not-a-color")
	assert.Equal(t, "not-a-color", a.For("Read"), "colors are not validated")
}

func TestAssignerWrapsAndWarnsOnce(t *testing.T) {
	var warnings []string
	a := NewAssigner(nil, WithWarn(func(msg string) {
		warnings = append(warnings, msg)
	}))
	size := a.PaletteSize()

	colors := make([]string, 0, 2*size+1)
	for i := 0; i < 2*size+1; i++ {
		colors = append(colors, a.For(fmt.Sprintf("cat-%d", i)))
	}

	assert.Equal(t, colors[0], colors[size], "wrap-around reuses the first color")
	assert.Equal(t, colors[1], colors[size+1])
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "10-color palette")
	assert.True(t, a.Cycled())
}

func TestAssignerNoWarningWithinPalette(t *testing.T) {
	warned := false
	a := NewAssigner([]string{"#000000", "#FFFFFF"}, WithWarn(func(string) { warned = true }))
	a.For("a")
	a.For("b")
	a.For("a")
	assert.False(t, warned)
	a.For("c")
	assert.True(t, warned)
}

func TestIndependentAssigners(t *testing.T) {
	a := NewAssigner(nil)
	b := NewAssigner(nil)
	a.For("x")
	a.For("y")
	assert.Equal(t, DefaultPalette()[0], b.For("y"))
}

func TestAssignerClone(t *testing.T) {
	a := NewAssigner([]string{"red", "green"})
	a.Define("Sleep", "navy")
	assert.Equal(t, "red", a.For("Work"))

	c := a.Clone()
	assert.Equal(t, "green", c.For("Gym"))
	assert.Equal(t, "navy", c.For("Sleep"))

	_, ok := a.Lookup("Gym")
	assert.False(t, ok)
	assert.Equal(t, "green", a.For("Run"))
}

func TestTextColorFor(t *testing.T) {
	assert.Equal(t, "black", TextColorFor("#AEC7E8"))
	assert.Equal(t, "white", TextColorFor("#AD494A"))
	assert.Equal(t, "white", TextColorFor("black"))
	assert.Equal(t, "black", TextColorFor("nonsense"))
}

func TestResolve(t *testing.T) {
	c, err := Resolve("gray")
	require.NoError(t, err)
	assert.Equal(t, "#808080", c.Hex())

	assert.Equal(t, "#aec7e8", Hex("AEC7E8"))
	assert.Equal(t, "chartreuse-ish", Hex("chartreuse-ish"))
	_, err = Resolve("#zzz")
	assert.Error(t, err)
}
