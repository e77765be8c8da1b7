package export

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/unsched/pkg/app"
)

const sample = `@Work
Weekly M 9a 10a Office
WeekB W 1p 2p Review
Monthly F 9a 10a Nope
`

var anchor = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

func setup(t *testing.T) (string, *bytes.Buffer) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	path := filepath.Join(t.TempDir(), "weeks.txt")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))
	return path, &bytes.Buffer{}
}

func TestExportToFile(t *testing.T) {
	path, buf := setup(t)
	out := filepath.Join(t.TempDir(), "weeks.ics")

	e := &Export{App: app.New(nil), Path: path, OutFile: out, Anchor: anchor, Out: buf}
	require.NoError(t, e.Do(context.Background()))
	assert.Equal(t, "Wrote 2 events to "+out+"\n", buf.String())

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	ics := string(b)
	assert.Equal(t, 2, strings.Count(ics, "BEGIN:VEVENT"))
	assert.Contains(t, ics, "DTSTART;TZID=UTC:20240110T130000")
}

func TestExportStdout(t *testing.T) {
	path, buf := setup(t)
	e := &Export{App: app.New(nil), Path: path, Anchor: anchor, Out: buf}
	require.NoError(t, e.Do(context.Background()))
	assert.True(t, strings.HasPrefix(buf.String(), "BEGIN:VCALENDAR"))
}

func TestExportRefusesOverwrite(t *testing.T) {
	path, buf := setup(t)
	out := filepath.Join(t.TempDir(), "weeks.ics")
	require.NoError(t, os.WriteFile(out, []byte("keep"), 0o644))

	e := &Export{App: app.New(nil), Path: path, OutFile: out, Anchor: anchor, Out: buf}
	require.Error(t, e.Do(context.Background()))

	asked := ""
	e.Confirm = func(q string) (bool, error) {
		asked = q
		return false, nil
	}
	require.Error(t, e.Do(context.Background()))
	assert.Equal(t, "Replace "+out+"?", asked)
	b, _ := os.ReadFile(out)
	assert.Equal(t, "keep", string(b))

	e.Confirm = nil
	e.Overwrite = true
	require.NoError(t, e.Do(context.Background()))
	b, _ = os.ReadFile(out)
	assert.Contains(t, string(b), "BEGIN:VCALENDAR")
}

func TestExportPreview(t *testing.T) {
	path, buf := setup(t)
	e := &Export{App: app.New(nil), Path: path, Anchor: anchor, Preview: 2, Out: buf}
	require.NoError(t, e.Do(context.Background()))

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "Office"))
	assert.Equal(t, 1, strings.Count(out, "Review"))
	assert.Contains(t, out, "Wed 2024-01-10")
	assert.NotContains(t, out, "Nope")
}

func TestExportParseFailure(t *testing.T) {
	_, buf := setup(t)
	path := filepath.Join(t.TempDir(), "bad.txt")
	require.NoError(t, os.WriteFile(path, []byte("Weekly M 9z 10a x\n"), 0o644))

	e := &Export{App: app.New(nil), Path: path, Anchor: anchor, Out: buf}
	assert.ErrorIs(t, e.Do(context.Background()), app.ErrParseFailed)
}
