// Package config holds the state shared by all commands of one process.
package config

import (
	"github.com/tphakala/wildlog/internal/buildinfo"
	"github.com/tphakala/wildlog/internal/conf"
	"github.com/tphakala/wildlog/internal/converter"
	"github.com/tphakala/wildlog/internal/datastore"
	"github.com/tphakala/wildlog/internal/errors"
	"github.com/tphakala/wildlog/internal/logger"
	"github.com/tphakala/wildlog/internal/observability"
)

// Context holds the overall application state: settings, logging and metrics.
type Context struct {
	Settings  *conf.Settings
	Logger    *logger.CentralLogger
	Metrics   *observability.Metrics
	BuildInfo *buildinfo.Context
}

// NewContext creates the application context. Metrics are always collected;
// they are only written out when a textfile path is configured.
func NewContext(settings *conf.Settings, centralLogger *logger.CentralLogger) (*Context, error) {
	m, err := observability.NewMetrics()
	if err != nil {
		return nil, errors.New(err).
			Component("config").
			Category(errors.CategoryConfiguration).
			Build()
	}
	return &Context{
		Settings: settings,
		Logger:   centralLogger,
		Metrics:  m,
	}, nil
}

// Module returns a module logger, falling back to the global logger.
func (ctx *Context) Module(name string) logger.Logger {
	if ctx.Logger != nil {
		return ctx.Logger.Module(name)
	}
	return logger.Global().Module(name)
}

// OpenStore opens the configured sighting store. The caller must Close it.
func (ctx *Context) OpenStore() (datastore.Interface, error) {
	store := datastore.New(ctx.Settings, ctx.Module("datastore"))
	if store == nil {
		return nil, errors.Newf("no sighting store is enabled, set output.sqlite.enabled or output.mysql.enabled").
			Component("config").
			Category(errors.CategoryConfiguration).
			Build()
	}
	if err := store.Open(); err != nil {
		return nil, err
	}
	return store, nil
}

// NewConverter builds a converter for the configured lists directory. When
// withStore is set the sighting store is opened and closed by the returned
// function.
func (ctx *Context) NewConverter(withStore bool) (*converter.Converter, func() error, error) {
	if err := conf.ValidateListsDir(ctx.Settings.Converter.ListsDir); err != nil {
		return nil, nil, err
	}

	opts := []converter.Option{
		converter.WithLogger(ctx.Module("converter")),
		converter.WithMetrics(ctx.Metrics.Converter),
	}
	closeFn := func() error { return nil }

	if withStore {
		store, err := ctx.OpenStore()
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, converter.WithStore(store))
		closeFn = store.Close
	}

	return converter.New(opts...), closeFn, nil
}

// WriteMetrics writes the metrics textfile when one is configured.
func (ctx *Context) WriteMetrics() error {
	path := ctx.Settings.Metrics.Textfile
	if path == "" {
		return nil
	}
	return ctx.Metrics.WriteTextfile(path)
}
