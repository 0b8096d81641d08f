package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigure(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	require.NoError(t, configure(&buf, "warn", "json"))

	slog.Info("hidden")
	slog.Warn("shown", "band", "High")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"band":"High"`)
}

func TestConfigure_Invalid(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, configure(&buf, "loud", "text"))
	assert.Error(t, configure(&buf, "info", "xml"))
}

func TestErrAttrs(t *testing.T) {
	plain := ErrAttrs(errors.New("boom"))
	assert.Equal(t, []any{"error", "boom"}, plain)

	wrapped := ErrAttrs(goerr.New("failed to save", goerr.V("risk_id", 7)))
	require.Len(t, wrapped, 4)
	assert.Equal(t, "values", wrapped[2])
}
