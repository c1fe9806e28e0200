// Package telemetry provides privacy-compliant error tracking
package telemetry

import (
	"fmt"
	"runtime"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/tphakala/wildlog/internal/buildinfo"
	"github.com/tphakala/wildlog/internal/conf"
	"github.com/tphakala/wildlog/internal/errors"
	"github.com/tphakala/wildlog/internal/logger"
	"github.com/tphakala/wildlog/internal/secrets"
)

// flushTimeout bounds how long shutdown waits for queued events.
const flushTimeout = 2 * time.Second

// InitSentry initializes the Sentry SDK and installs the error reporter.
// Telemetry is opt-in; nothing happens unless telemetry.enabled is set.
func InitSentry(settings *conf.Settings, info buildinfo.BuildInfo, log logger.Logger) error {
	if !settings.Telemetry.Enabled {
		log.Debug("telemetry is disabled (opt-in required)")
		return nil
	}

	dsn, err := secrets.NewResolver(nil, log).MustResolve("telemetry.dsn", "", settings.Telemetry.DSN)
	if err != nil {
		return err
	}

	err = sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		SampleRate:       1.0,
		Debug:            false,
		AttachStacktrace: false,
		Environment:      "production",
		Release:          "wildlog@" + info.Version(),
		ServerName:       "", // no hostname leakage
		BeforeSend:       applyPrivacyFilters,
	})
	if err != nil {
		return errors.New(fmt.Errorf("sentry initialization failed: %w", err)).
			Component("telemetry").
			Category(errors.CategoryConfiguration).
			Build()
	}

	sentry.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("os", runtime.GOOS)
		scope.SetTag("arch", runtime.GOARCH)
		scope.SetTag("build_date", info.BuildDate())
	})

	errors.SetTelemetryReporter(errors.NewSentryReporter(true))
	log.Info("telemetry enabled")
	return nil
}

// Flush waits for queued events to be sent.
func Flush() {
	if errors.GetTelemetryReporter() == nil {
		return
	}
	sentry.Flush(flushTimeout)
}

// applyPrivacyFilters removes user and host identifying data from an event.
func applyPrivacyFilters(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
	event.User = sentry.User{}
	event.ServerName = ""
	event.Request = nil
	event.Modules = nil

	if event.Contexts != nil {
		delete(event.Contexts, "device")
		delete(event.Contexts, "os")
		delete(event.Contexts, "runtime")
	}

	for k := range event.Extra {
		if k != "error_type" && k != "component" {
			delete(event.Extra, k)
		}
	}

	if event.Tags != nil {
		delete(event.Tags, "server_name")
		delete(event.Tags, "hostname")
	}

	return event
}
