package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/unsched/pkg/analytics"
	"tableflip.dev/unsched/pkg/schedule"
	"tableflip.dev/unsched/pkg/store/storetest"
)

const sample = `# sample schedule
[NON-WORK-DEFINITION]
non_work_categories = Sleep

@Sleep:navy
Weekly MTWRFSU 11p 7a Sleep

@Work
Weekly MTWRF 9a 5p Office
WeekA T 5p 6p Review
Weekly M 8a Standup
`

func writeSchedule(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schedule.txt")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestAnalyze(t *testing.T) {
	svc := New(nil)
	snap, err := svc.Analyze(context.Background(), writeSchedule(t, sample))
	require.NoError(t, err)
	require.NotNil(t, snap.Analysis)

	a := snap.Analysis
	assert.Equal(t, 7+5+1+1, a.Entries)
	assert.Equal(t, []string{"Sleep", "Work"}, a.Categories)
	assert.Empty(t, a.Overlaps)

	r := a.Report
	assert.Equal(t, 7*8*2.0, r.Hours["Sleep"])
	assert.Equal(t, 5*8*2.0+1, r.Hours["Work"])
	assert.Equal(t, []string{"Work"}, r.Work)
	assert.Equal(t, analytics.CycleHours-r.Scheduled, r.Unscheduled)
}

func TestAnalyzeRefusesFailedPass(t *testing.T) {
	svc := New(nil)
	snap, err := svc.Analyze(context.Background(), writeSchedule(t, "Weekly M 9a 10a ok\nWeekly M 99 10a bad\n"))
	require.ErrorIs(t, err, ErrParseFailed)
	require.NotNil(t, snap)
	assert.Nil(t, snap.Analysis)
	assert.True(t, snap.Failed())
	assert.Len(t, snap.Result.Commitments, 1, "partial result is kept")
	assert.Contains(t, err.Error(), "Error on line 2")
}

func TestAnalyzeMissingFile(t *testing.T) {
	_, err := New(nil).Analyze(context.Background(), filepath.Join(t.TempDir(), "nope.txt"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWeek(t *testing.T) {
	svc := New(nil)
	path := writeSchedule(t, sample)

	a, _, err := svc.Week(context.Background(), path, schedule.A)
	require.NoError(t, err)
	b, _, err := svc.Week(context.Background(), path, schedule.B)
	require.NoError(t, err)
	assert.Len(t, a, len(b)+1)
	for _, c := range b {
		assert.NotEqual(t, schedule.WeekA, c.Recurrence)
	}
}

func TestResolveRemembered(t *testing.T) {
	ctx := context.Background()
	mem := storetest.NewMemory()
	svc := New(mem)

	_, _, err := svc.Resolve(ctx, "")
	require.ErrorIs(t, err, ErrNoSchedule)

	path := writeSchedule(t, sample)
	require.NoError(t, svc.Remember(ctx, path))

	got, remembered, err := svc.Resolve(ctx, "")
	require.NoError(t, err)
	assert.True(t, remembered)
	assert.Equal(t, path, got)

	got, remembered, err = svc.Resolve(ctx, path)
	require.NoError(t, err)
	assert.False(t, remembered)
	assert.Equal(t, path, got)

	require.NoError(t, os.Remove(path))
	_, _, err = svc.Resolve(ctx, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSummary(t *testing.T) {
	snap, err := New(nil).AnalyzeText(sample)
	require.NoError(t, err)

	sum := snap.Summary(false)
	assert.False(t, sum.Failed)
	assert.Empty(t, sum.Commitments)
	require.Len(t, sum.Categories, 2)
	assert.Equal(t, schedule.Category{Name: "Sleep", Color: "navy", NonWork: true}, sum.Categories[0])

	assert.Len(t, snap.Summary(true).Commitments, 14)
}

func TestFreshPassPerCall(t *testing.T) {
	svc := New(nil)
	first, err := svc.AnalyzeText("Weekly M 9a 10a a @One")
	require.NoError(t, err)
	second, err := svc.AnalyzeText("Weekly M 9a 10a a @Two")
	require.NoError(t, err)
	assert.Equal(t, first.Result.Commitments[0].Color, second.Result.Commitments[0].Color)
}
