package settings

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/unsched/pkg/printers"
	"tableflip.dev/unsched/pkg/store"
	"tableflip.dev/unsched/pkg/store/storetest"
	"tableflip.dev/unsched/pkg/timeutil"
)

func TestSettingsToggleAndFormat(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	ctx := context.Background()
	mem := storetest.NewMemory()
	var buf bytes.Buffer

	s := &Settings{Persistence: mem, ToggleOrientation: true, TimeFormat: "12h", Out: &buf}
	if err := s.Do(ctx); err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	st, _ := mem.Load(ctx)
	if st.Orientation != store.Portrait {
		t.Fatalf("expected portrait, got %s", st.Orientation)
	}
	if st.TimeFormat != timeutil.Format12h {
		t.Fatalf("expected 12h, got %s", st.TimeFormat)
	}
	if !bytes.Contains(buf.Bytes(), []byte("portrait")) {
		t.Fatalf("expected the settings table, got %q", buf.String())
	}

	s = &Settings{Persistence: mem, ToggleOrientation: true, Out: &buf}
	if err := s.Do(ctx); err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	st, _ = mem.Load(ctx)
	if st.Orientation != store.Landscape {
		t.Fatalf("expected landscape after a second toggle, got %s", st.Orientation)
	}
}

func TestSettingsRejects(t *testing.T) {
	mem := storetest.NewMemory()
	if err := (&Settings{Persistence: mem, Orientation: "diagonal"}).Do(context.Background()); err == nil {
		t.Fatalf("expected an error for an unknown orientation")
	}
	if err := (&Settings{Persistence: mem, TimeFormat: "13h"}).Do(context.Background()); err == nil {
		t.Fatalf("expected an error for an unknown time format")
	}
}

func TestSettingsJSON(t *testing.T) {
	var buf bytes.Buffer
	s := &Settings{Persistence: storetest.NewMemory(), Orientation: "portrait", Encoding: printers.EncodingJSON, Out: &buf}
	if err := s.Do(context.Background()); err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	var got store.Settings
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("bad json %q: %v", buf.String(), err)
	}
	if got.Orientation != store.Portrait || got.StartHour != timeutil.DefaultStartHour {
		t.Fatalf("unexpected settings %+v", got)
	}
}
