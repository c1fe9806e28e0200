package telemetry

import (
	"io"
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/wildlog/internal/buildinfo"
	"github.com/tphakala/wildlog/internal/conf"
	"github.com/tphakala/wildlog/internal/errors"
	"github.com/tphakala/wildlog/internal/logger"
)

func TestApplyPrivacyFilters(t *testing.T) {
	t.Parallel()

	event := sentry.NewEvent()
	event.User = sentry.User{ID: "alice", IPAddress: "10.0.0.1"}
	event.ServerName = "alice-laptop"
	event.Contexts = map[string]sentry.Context{
		"os":     {"name": "linux"},
		"device": {"arch": "amd64"},
		"path":   {"value": "/data/1998-Birds.dat"},
	}
	event.Extra = map[string]any{"component": "legacy", "cwd": "/home/alice"}
	event.Tags = map[string]string{"hostname": "alice-laptop", "category": "file-io"}

	filtered := applyPrivacyFilters(event, nil)
	require.NotNil(t, filtered)

	assert.Equal(t, sentry.User{}, filtered.User)
	assert.Empty(t, filtered.ServerName)
	assert.NotContains(t, filtered.Contexts, "os")
	assert.NotContains(t, filtered.Contexts, "device")
	assert.Contains(t, filtered.Contexts, "path")
	assert.Equal(t, map[string]any{"component": "legacy"}, filtered.Extra)
	assert.Equal(t, map[string]string{"category": "file-io"}, filtered.Tags)
}

//nolint:paralleltest // inspects the global reporter
func TestInitSentry_Disabled(t *testing.T) {
	settings := conf.DefaultSettings()
	require.NoError(t, InitSentry(settings, buildinfo.NewContext("1.0.0", ""), logger.NewSlogLogger(io.Discard, logger.LogLevelError, nil)))
	assert.Nil(t, errors.GetTelemetryReporter())
	Flush()
}
