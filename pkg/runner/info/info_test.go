package info

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"tableflip.dev/unsched/pkg/store"
	"tableflip.dev/unsched/pkg/store/storetest"
)

func TestInfo(t *testing.T) {
	t.Setenv(store.ConfigPathEnv, "")
	ctx := context.Background()
	mem := storetest.NewMemory()
	if err := mem.Touch(ctx, "/tmp/weeks.txt"); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	n := &Info{Config: store.StaticConfig{Base: "/tmp/unsched-settings"}, Persistence: mem, Out: &buf}
	if err := n.Do(ctx); err != nil {
		t.Fatalf("Do failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"UNSCHED_CONFIG_PATH env var not set",
		"Config.file: none, using defaults",
		"Config.path: /tmp/unsched-settings",
		"Config.anchor: 2024-01-01",
		"/tmp/weeks.txt",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in:\n%s", want, out)
		}
	}
}

func TestInfoNoPersistence(t *testing.T) {
	n := &Info{Config: store.StaticConfig{}, Out: &bytes.Buffer{}}
	if err := n.Do(context.Background()); err == nil {
		t.Fatalf("expected an error without persistence")
	}
}
