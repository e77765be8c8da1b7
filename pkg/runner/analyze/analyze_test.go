package analyze

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/unsched/pkg/app"
	"tableflip.dev/unsched/pkg/printers"
	"tableflip.dev/unsched/pkg/store/storetest"
)

const sample = `[NON-WORK-DEFINITION]
non_work_categories = Sleep
@Sleep
Weekly MTWRFSU 11p 7a Sleep
@Work
Weekly MTWRF 9a 5p Office
`

func setup(t *testing.T, body string) (string, *bytes.Buffer) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	path := filepath.Join(t.TempDir(), "weeks.txt")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path, &bytes.Buffer{}
}

func TestAnalyzeText(t *testing.T) {
	path, buf := setup(t, sample)
	mem := storetest.NewMemory()
	a := &Analyze{App: app.New(mem), Path: path, Out: buf}
	require.NoError(t, a.Do(context.Background()))

	out := buf.String()
	assert.Contains(t, out, "Parsed 12 event entries across 2 categories")
	assert.Contains(t, out, "  No overlaps found.")
	assert.Contains(t, out, "Sleep           | 56.0            | 8.0            ")
	assert.Contains(t, out, "Work            | 40.0            | 5.7            ")

	st, err := mem.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, path, st.LastScheduleFile, "a successful run is remembered")
}

func TestAnalyzeRemembered(t *testing.T) {
	path, buf := setup(t, sample)
	mem := storetest.NewMemory()
	require.NoError(t, mem.Touch(context.Background(), path))

	a := &Analyze{App: app.New(mem), Out: buf}
	require.NoError(t, a.Do(context.Background()))
	assert.Contains(t, buf.String(), "Using last schedule file: "+path)
}

func TestAnalyzeParseFailure(t *testing.T) {
	path, buf := setup(t, "Weekly M 9a 10a fine\nWeekly M 25 26 broken\n")
	mem := storetest.NewMemory()
	a := &Analyze{App: app.New(mem), Path: path, Out: buf}

	err := a.Do(context.Background())
	require.ErrorIs(t, err, app.ErrParseFailed)
	out := buf.String()
	assert.Contains(t, out, "Error on line 2: 'Weekly M 25 26 broken' -> ")
	assert.Contains(t, out, "Parsing errors detected. Please fix your schedule file.")
	assert.NotContains(t, out, "Weekly Time Allocation Analysis")

	st, _ := mem.Load(context.Background())
	assert.Empty(t, st.LastScheduleFile, "a failed run is not remembered")
}

func TestAnalyzeJSON(t *testing.T) {
	path, buf := setup(t, sample)
	a := &Analyze{App: app.New(nil), Path: path, Encoding: printers.EncodingJSON, Out: buf}
	require.NoError(t, a.Do(context.Background()))

	var got struct {
		Failed   bool `json:"failed"`
		Analysis struct {
			Entries int `json:"entries"`
		} `json:"analysis"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.False(t, got.Failed)
	assert.Equal(t, 12, got.Analysis.Entries)
}

func TestAnalyzeJSONFailure(t *testing.T) {
	path, buf := setup(t, "Weekly M 25 26 broken\n")
	a := &Analyze{App: app.New(nil), Path: path, Encoding: printers.EncodingJSON, Out: buf}
	require.NoError(t, a.Do(context.Background()))
	assert.Contains(t, buf.String(), `"failed": true`)
}

func TestAnalyzeMissing(t *testing.T) {
	_, buf := setup(t, sample)
	a := &Analyze{App: app.New(nil), Path: filepath.Join(t.TempDir(), "nope.txt"), Out: buf}
	assert.ErrorIs(t, a.Do(context.Background()), app.ErrNotFound)
}
