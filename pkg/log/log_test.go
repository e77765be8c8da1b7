package log

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel(" warn "))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("chatty"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel(""))
}

func TestSetAndL(t *testing.T) {
	defer Set(nil)

	l := New("error")
	Set(l)
	assert.Same(t, l, L())

	Set(nil)
	assert.NotNil(t, L())
	L().With("line", 3).Infof(context.Background(), "discarded")
}
