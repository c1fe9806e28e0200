// Package secrets resolves credentials from environment variable references
// and file-based secrets (Docker/Kubernetes secrets). Secret values are never
// logged.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/tphakala/wildlog/internal/errors"
	"github.com/tphakala/wildlog/internal/logger"
)

const (
	// maxSecretFileSize limits secret file reads; secrets are tokens and passwords
	maxSecretFileSize = 64 * 1024

	// permissive group/other bits that trigger a warning
	insecurePermMask = 0o077
)

// Resolver reads file-based secrets from a filesystem.
type Resolver struct {
	fs  afero.Fs
	log logger.Logger
}

// NewResolver creates a resolver. A nil fs means the OS filesystem and a nil
// log means the global "secrets" module logger.
func NewResolver(fs afero.Fs, log logger.Logger) *Resolver {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if log == nil {
		log = logger.Global().Module("secrets")
	}
	return &Resolver{fs: fs, log: log}
}

// ExpandString resolves ${VAR} and ${VAR:-default} references in s.
//
//   - "literal" -> "literal"
//   - "${TOKEN}" -> value of TOKEN
//   - "${TOKEN:-fallback}" -> value of TOKEN or "fallback" if unset
func ExpandString(s string) (string, error) {
	if s == "" {
		return "", nil
	}

	var missingVars []string

	expanded := os.Expand(s, func(key string) string {
		varName := key
		defaultValue := ""
		fallbackProvided := false

		if idx := strings.Index(key, ":-"); idx != -1 {
			varName = key[:idx]
			defaultValue = key[idx+2:]
			fallbackProvided = true
		}

		value := os.Getenv(varName)
		if value == "" {
			if fallbackProvided {
				return defaultValue
			}
			missingVars = append(missingVars, varName)
			return ""
		}
		return value
	})

	if len(missingVars) > 0 {
		return "", secretError(fmt.Errorf("missing required environment variable(s): %s",
			strings.Join(missingVars, ", ")), "expand")
	}

	return expanded, nil
}

// ReadFile reads a secret file. Trailing newlines are trimmed and an empty
// secret is an error.
func (r *Resolver) ReadFile(path string) (string, error) {
	if path == "" {
		return "", secretError(fmt.Errorf("secret file path is empty"), "read-file")
	}

	cleanPath := filepath.Clean(path)

	info, err := r.fs.Stat(cleanPath)
	if err != nil {
		return "", errors.New(fmt.Errorf("failed to stat secret file: %w", err)).
			Component("secrets").
			Category(errors.CategoryFileIO).
			Context("path", cleanPath).
			Context("operation", "read-file").
			Build()
	}

	if !info.Mode().IsRegular() {
		return "", secretError(fmt.Errorf("secret path is not a regular file: %s", cleanPath), "read-file")
	}
	if info.Size() > maxSecretFileSize {
		return "", secretError(fmt.Errorf("secret file too large (max %d bytes): %s", maxSecretFileSize, cleanPath), "read-file")
	}

	if perm := info.Mode().Perm(); perm&insecurePermMask != 0 {
		r.log.Warn("secret file is readable by group or others",
			logger.String("path", cleanPath),
			logger.String("perm", fmt.Sprintf("%04o", perm)))
	}

	data, err := afero.ReadFile(r.fs, cleanPath)
	if err != nil {
		return "", errors.New(fmt.Errorf("failed to read secret file: %w", err)).
			Component("secrets").
			Category(errors.CategoryFileIO).
			Context("path", cleanPath).
			Context("operation", "read-file").
			Build()
	}

	secret := strings.TrimRight(string(data), "\r\n")
	if secret == "" {
		return "", secretError(fmt.Errorf("secret file is empty: %s", cleanPath), "read-file")
	}

	return secret, nil
}

// Resolve returns the secret from filePath when set, otherwise value with
// environment references expanded. Both empty resolves to "".
func (r *Resolver) Resolve(filePath, value string) (string, error) {
	if filePath != "" {
		return r.ReadFile(filePath)
	}
	return ExpandString(value)
}

// MustResolve is like Resolve but fails when no secret is provided.
func (r *Resolver) MustResolve(fieldName, filePath, value string) (string, error) {
	secret, err := r.Resolve(filePath, value)
	if err != nil {
		return "", err
	}
	if secret == "" {
		return "", secretError(fmt.Errorf("%s is required but not provided", fieldName), "resolve")
	}
	return secret, nil
}

func secretError(err error, op string) error {
	return errors.New(err).
		Component("secrets").
		Category(errors.CategoryConfiguration).
		Context("operation", op).
		Build()
}
