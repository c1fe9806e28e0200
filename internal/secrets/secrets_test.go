package secrets

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/wildlog/internal/errors"
	"github.com/tphakala/wildlog/internal/logger"
)

func TestExpandString(t *testing.T) {
	t.Setenv("WILDLOG_TEST_TOKEN", "s3cret")
	t.Setenv("WILDLOG_TEST_EMPTY", "")

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr string
	}{
		{"empty", "", "", ""},
		{"literal", "literal-value", "literal-value", ""},
		{"variable", "${WILDLOG_TEST_TOKEN}", "s3cret", ""},
		{"embedded", "pre-${WILDLOG_TEST_TOKEN}-post", "pre-s3cret-post", ""},
		{"fallback used", "${WILDLOG_TEST_UNSET:-fallback}", "fallback", ""},
		{"empty fallback", "${WILDLOG_TEST_UNSET:-}", "", ""},
		{"empty var uses fallback", "${WILDLOG_TEST_EMPTY:-x}", "x", ""},
		{"missing", "${WILDLOG_TEST_UNSET}", "", "WILDLOG_TEST_UNSET"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandString(tt.input)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.True(t, errors.IsCategory(err, errors.CategoryConfiguration))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolver_ReadFile(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/run/secrets/mysql", []byte(" pass word \r\n"), 0o400))
	require.NoError(t, afero.WriteFile(fs, "/run/secrets/empty", []byte("\n"), 0o400))
	require.NoError(t, afero.WriteFile(fs, "/run/secrets/huge", bytes.Repeat([]byte("x"), maxSecretFileSize+1), 0o400))
	require.NoError(t, fs.MkdirAll("/run/secrets/dir", 0o700))

	r := NewResolver(fs, logger.NewSlogLogger(io.Discard, logger.LogLevelError, nil))

	got, err := r.ReadFile("/run/secrets/mysql")
	require.NoError(t, err)
	assert.Equal(t, " pass word ", got, "only trailing newlines are trimmed")

	tests := []struct {
		path     string
		category errors.ErrorCategory
		contains string
	}{
		{"", errors.CategoryConfiguration, "path is empty"},
		{"/run/secrets/missing", errors.CategoryFileIO, "stat"},
		{"/run/secrets/empty", errors.CategoryConfiguration, "empty"},
		{"/run/secrets/huge", errors.CategoryConfiguration, "too large"},
		{"/run/secrets/dir", errors.CategoryConfiguration, "not a regular file"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			_, err := r.ReadFile(tt.path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
			assert.True(t, errors.IsCategory(err, tt.category))
		})
	}
}

func TestResolver_WarnsOnPermissiveFile(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/wildlog/password", []byte("hunter2\n"), 0o644))

	var logs strings.Builder
	r := NewResolver(fs, logger.NewSlogLogger(&logs, logger.LogLevelWarn, nil))

	got, err := r.ReadFile("/etc/wildlog/password")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", got)
	assert.Contains(t, logs.String(), "secret file is readable by group or others")
	assert.NotContains(t, logs.String(), "hunter2")
}

func TestResolver_Resolve(t *testing.T) {
	t.Setenv("WILDLOG_TEST_PASSWORD", "from-env")

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/run/secrets/pw", []byte("from-file\n"), 0o400))
	r := NewResolver(fs, logger.NewSlogLogger(io.Discard, logger.LogLevelError, nil))

	got, err := r.Resolve("/run/secrets/pw", "${WILDLOG_TEST_PASSWORD}")
	require.NoError(t, err)
	assert.Equal(t, "from-file", got, "file takes precedence")

	got, err = r.Resolve("", "${WILDLOG_TEST_PASSWORD}")
	require.NoError(t, err)
	assert.Equal(t, "from-env", got)

	got, err = r.Resolve("", "plain")
	require.NoError(t, err)
	assert.Equal(t, "plain", got)

	got, err = r.Resolve("", "")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = r.MustResolve("telemetry.dsn", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "telemetry.dsn is required")
}
