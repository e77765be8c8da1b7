package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/unsched/pkg/colors"
	"tableflip.dev/unsched/pkg/schedule"
	"tableflip.dev/unsched/pkg/timeutil"
)

func parse(t *testing.T, lines ...string) *Result {
	t.Helper()
	return New().ParseString(strings.Join(lines, "\n"))
}

func TestParseSingleBlock(t *testing.T) {
	res := parse(t, "Weekly M 9a 10a Test Event @TestCategory")
	require.False(t, res.Failed())
	require.Len(t, res.Commitments, 1)

	c := res.Commitments[0]
	assert.Equal(t, schedule.Weekly, c.Recurrence)
	assert.Equal(t, schedule.Monday, c.Day)
	assert.Equal(t, schedule.KindBlock, c.Kind)
	assert.Equal(t, "09:00", c.Start.String())
	assert.Equal(t, "10:00", c.End.String())
	assert.Equal(t, "Test Event", c.Label)
	assert.Equal(t, "TestCategory", c.Category)
	assert.False(t, c.SpansMidnight)
	assert.Equal(t, 1, c.Line)
	assert.Equal(t, []string{"TestCategory"}, res.Categories.Names())
}

func TestParseNonWorkSection(t *testing.T) {
	res := parse(t,
		"[NON-WORK-DEFINITION]",
		"non_work_categories = Sleep, Family",
		"@Work",
		"Weekly M 9a 5p Office",
	)
	require.False(t, res.Failed())
	assert.Equal(t, []string{"Sleep", "Family"}, res.NonWork)
	require.Len(t, res.Commitments, 1)
	assert.Equal(t, "Work", res.Commitments[0].Category)
}

func TestParseNonWorkLastLineWins(t *testing.T) {
	res := parse(t,
		"[non-work-definition]",
		"non_work_categories = Sleep",
		"other_key = ignored",
		"non_work_categories = Family, , Rest ",
	)
	require.False(t, res.Failed())
	assert.Equal(t, []string{"Family", "Rest"}, res.NonWork)
}

func TestParseNonWorkNeedsKeyValue(t *testing.T) {
	res := parse(t,
		"[NON-WORK-DEFINITION]",
		"Weekly M 9a 10a Looks like a commitment",
		"@Work",
		"Weekly M 9a 10a Real",
	)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, 2, res.Errors[0].Line)
	require.Len(t, res.Commitments, 1)
	assert.Equal(t, "Real", res.Commitments[0].Label)
}

func TestParseMultiDay(t *testing.T) {
	res := parse(t, "@Gym", "Weekly mwf 6a 7a Lift")
	require.Len(t, res.Commitments, 3)

	days := []schedule.Day{schedule.Monday, schedule.Wednesday, schedule.Friday}
	for i, c := range res.Commitments {
		assert.Equal(t, days[i], c.Day)
		assert.Equal(t, "Lift", c.Label)
		assert.Equal(t, "Gym", c.Category)
		assert.Equal(t, res.Commitments[0].Color, c.Color)
	}
}

func TestParseInvalidDayLetters(t *testing.T) {
	res := parse(t, "Weekly MXZU 6a 7a Walk")
	require.False(t, res.Failed())
	require.Len(t, res.Commitments, 2)
	assert.Equal(t, schedule.Monday, res.Commitments[0].Day)
	assert.Equal(t, schedule.Sunday, res.Commitments[1].Day)
}

func TestParseNoValidDaySkipped(t *testing.T) {
	for _, line := range []string{
		"The big dog",
		"Weekly X notatime label",
		"Weekly Q 25:00 10a x @Stray",
	} {
		res := parse(t, line)
		assert.False(t, res.Failed(), line)
		assert.Empty(t, res.Errors, line)
		assert.Empty(t, res.Commitments, line)
	}

	res := parse(t,
		"Weekly M 9a 10a Ok",
		"Weekly Q 25:00 10a x @Stray",
	)
	require.False(t, res.Failed())
	require.Len(t, res.Commitments, 1)
	assert.True(t, res.Categories.Contains("Stray"))
}

func TestParseBadTimeContinues(t *testing.T) {
	res := parse(t,
		"Weekly M 9a 10a First",
		"Weekly T 25:00 10a Broken",
		"Weekly W 9a 10a Third",
	)
	require.True(t, res.Failed())
	require.Len(t, res.Errors, 1)
	assert.Equal(t, 2, res.Errors[0].Line)
	assert.Equal(t, "Weekly T 25:00 10a Broken", res.Errors[0].Text)
	assert.Contains(t, res.Errors[0].Error(), "Error on line 2")
	assert.ErrorIs(t, res.Err(), timeutil.ErrInvalidTime)
	require.Len(t, res.Commitments, 2)
}

func TestParseShortLineSkipped(t *testing.T) {
	res := parse(t, "Weekly M", "stray", "Weekly M 9a")
	require.False(t, res.Failed())
	require.Len(t, res.Commitments, 1)
	assert.Equal(t, schedule.KindTrigger, res.Commitments[0].Kind)
	assert.Equal(t, "", res.Commitments[0].Label)
}

func TestParseTriggerIgnoresCurrentCategory(t *testing.T) {
	res := parse(t,
		"@Work",
		"Weekly M 9a Standup call",
		"Weekly T 9a Retro @Meetings",
	)
	require.Len(t, res.Commitments, 2)

	plain := res.Commitments[0]
	assert.Equal(t, schedule.KindTrigger, plain.Kind)
	assert.Equal(t, "09:00", plain.At.String())
	assert.Equal(t, "Standup call", plain.Label)
	assert.Empty(t, plain.Category)
	assert.Equal(t, colors.Trigger, plain.Color)

	tagged := res.Commitments[1]
	assert.Equal(t, "Meetings", tagged.Category)
	assert.NotEqual(t, colors.Trigger, tagged.Color)
}

func TestParseUncategorizedBlock(t *testing.T) {
	res := parse(t, "Weekly S 10p 2a Late show")
	require.Len(t, res.Commitments, 1)
	c := res.Commitments[0]
	assert.Empty(t, c.Category)
	assert.Equal(t, colors.Uncategorized, c.Color)
	assert.True(t, c.SpansMidnight)
	assert.Equal(t, 4.0, c.Duration().Hours())
}

func TestParseInlineDoesNotChangeCurrent(t *testing.T) {
	res := parse(t,
		"@Work",
		"Weekly M 9a 10a Dentist @Health",
		"Weekly M 10a 11a Email",
	)
	require.Len(t, res.Commitments, 2)
	assert.Equal(t, "Health", res.Commitments[0].Category)
	assert.Equal(t, "Work", res.Commitments[1].Category)
	assert.Equal(t, []string{"Work", "Health"}, res.Categories.Names())
}

func TestParseInlineRecordedOnShortLine(t *testing.T) {
	res := parse(t, "Weekly M @Orphan")
	require.False(t, res.Failed())
	assert.Empty(t, res.Commitments)
	assert.True(t, res.Categories.Contains("Orphan"))
}

func TestParseManualColor(t *testing.T) {
	res := parse(t,
		"@Sleep:#123456",
		"Weekly MTWRFSU 11p 7a Sleep",
	)
	require.Len(t, res.Commitments, 7)
	for _, c := range res.Commitments {
		assert.Equal(t, "#123456", c.Color)
	}
}

func TestParseSectionExitedByCategory(t *testing.T) {
	res := parse(t,
		"@Work",
		"[NON-WORK-DEFINITION]",
		"non_work_categories = Sleep",
		"@Sleep",
		"Weekly M 11p 7a Sleep",
	)
	require.False(t, res.Failed())
	require.Len(t, res.Commitments, 1)
	assert.Equal(t, "Sleep", res.Commitments[0].Category)
}

func TestParseEmptyCategoryName(t *testing.T) {
	res := parse(t, "@:red", "Weekly M 9a 10a Still parsed")
	require.Len(t, res.Errors, 1)
	assert.Len(t, res.Commitments, 1)
}

func TestParseCommentsAndBlanks(t *testing.T) {
	res := parse(t, "", "   # a comment", "\t", "Weekly M 9a 10a Thing")
	require.False(t, res.Failed())
	require.Len(t, res.Commitments, 1)
	assert.Equal(t, 4, res.Commitments[0].Line)
}

func TestParseUnknownRecurrence(t *testing.T) {
	var warned []string
	p := New(WithWarn(func(msg string) { warned = append(warned, msg) }))
	res := p.ParseString("Monthly M 9a 10a Review")
	require.False(t, res.Failed())
	require.Len(t, res.Commitments, 1)
	require.Len(t, warned, 1)
	assert.Equal(t, warned, res.Warnings)

	strict := New(WithStrictRecurrence(true)).ParseString("Monthly M 9a 10a Review")
	require.True(t, strict.Failed())
	assert.ErrorIs(t, strict.Err(), ErrUnknownRecurrence)
	assert.Empty(t, strict.Commitments)
}

func TestParsePaletteWarningOnce(t *testing.T) {
	lines := []string{}
	for _, name := range []string{"a", "b", "c", "d"} {
		lines = append(lines, "Weekly M 9a 10a x @"+name)
	}
	res := New(WithPalette([]string{"#000000", "#FFFFFF"})).ParseString(strings.Join(lines, "\n"))
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, res.Commitments[0].Color, res.Commitments[2].Color)
}

func TestParseColorOnlyOnValidDay(t *testing.T) {
	res := parse(t,
		"Weekly XYZ 9a 10a Nothing @First",
		"Weekly M 9a 10a Something @Second",
	)
	require.Len(t, res.Commitments, 1)
	assert.Equal(t, colors.DefaultPalette()[0], res.Commitments[0].Color)
}

func TestCategoryColors(t *testing.T) {
	res := parse(t,
		"[NON-WORK-DEFINITION]",
		"non_work_categories = Sleep",
		"@Sleep:navy",
		"@Work",
		"Weekly M 9a 10a x",
	)
	cats := res.CategoryColors()
	require.Len(t, cats, 2)
	assert.Equal(t, schedule.Category{Name: "Sleep", Color: "navy", NonWork: true}, cats[0])
	assert.Equal(t, "Work", cats[1].Name)
	assert.False(t, cats[1].NonWork)
}

func TestCategoryColorsLeavesResult(t *testing.T) {
	res := parse(t,
		"@Idle",
		"@Work",
		"Weekly M 9a 10a x",
	)
	first := res.CategoryColors()
	second := res.CategoryColors()
	assert.Equal(t, first, second)
	assert.Empty(t, res.Warnings)

	_, ok := res.assigner.Lookup("Idle")
	assert.False(t, ok, "asking for colors must not assign them")
}

func TestParseSeparatePassesIndependent(t *testing.T) {
	p := New()
	first := p.ParseString("@A\nWeekly M 9a 10a x")
	second := p.ParseString("@B\nWeekly M 9a 10a x")
	assert.Equal(t, first.Commitments[0].Color, second.Commitments[0].Color)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("boom")
}

func TestParseReadError(t *testing.T) {
	res, err := Parse(failingReader{})
	require.Error(t, err)
	require.NotNil(t, res)
	assert.Empty(t, res.Commitments)
}
