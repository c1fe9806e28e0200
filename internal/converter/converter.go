// Package converter runs one legacy database conversion: decode, CSV export
// and optional import into the sighting store.
package converter

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/tphakala/wildlog/internal/datastore"
	"github.com/tphakala/wildlog/internal/errors"
	"github.com/tphakala/wildlog/internal/export"
	"github.com/tphakala/wildlog/internal/legacy"
	"github.com/tphakala/wildlog/internal/logger"
	"github.com/tphakala/wildlog/internal/observability/metrics"
)

const (
	componentConverter = "converter"

	operationConvert = "convert"
	operationImport  = "import"

	statusSuccess = "success"
	statusError   = "error"
)

// Options controls one run.
type Options struct {
	ListsDir   string // directory holding the list files named in the database header
	OutputPath string // CSV path, empty writes next to the source
	SkipCSV    bool   // decode without writing a CSV
	Import     bool   // add the decoded sightings to the store
}

// Result describes a successful run.
type Result struct {
	RunID      string
	Database   *legacy.LegacyDatabase
	OutputPath string // empty when no CSV was written
	Imported   int
	Duration   time.Duration
}

// Converter wires the legacy decoders to the exporter and sighting store.
// A Converter keeps its list cache across runs and is not safe for
// concurrent use.
type Converter struct {
	fs       afero.Fs
	decoder  *legacy.RecordDecoder
	exporter *export.CsvExporter
	store    datastore.Interface
	metrics  *metrics.ConverterMetrics
	log      logger.Logger
}

// Option configures a Converter.
type Option func(*Converter)

// WithFs sets the filesystem used for all reads and writes.
func WithFs(fs afero.Fs) Option {
	return func(c *Converter) { c.fs = fs }
}

// WithStore sets the sighting store used when Options.Import is set.
func WithStore(store datastore.Interface) Option {
	return func(c *Converter) { c.store = store }
}

// WithMetrics sets the metrics updated by each run.
func WithMetrics(m *metrics.ConverterMetrics) Option {
	return func(c *Converter) { c.metrics = m }
}

// WithLogger sets the parent logger. Decoder and exporter log through
// sub-modules of it.
func WithLogger(log logger.Logger) Option {
	return func(c *Converter) { c.log = log }
}

// New creates a Converter. Without options it reads and writes the host
// filesystem, logs through the global logger and has no store.
func New(opts ...Option) *Converter {
	c := &Converter{}
	for _, opt := range opts {
		opt(c)
	}
	if c.fs == nil {
		c.fs = afero.NewOsFs()
	}
	if c.log == nil {
		c.log = logger.Global().Module(componentConverter)
	}

	legacyLog := c.log.Module("legacy")
	c.decoder = legacy.NewRecordDecoder(c.fs, legacy.NewListDecoder(c.fs, legacyLog), legacyLog)
	c.exporter = export.NewCsvExporter(c.fs, c.log.Module("export"))
	return c
}

// Lists returns the list decoder shared by all runs of this Converter.
func (c *Converter) Lists() *legacy.ListDecoder {
	return c.decoder.Lists()
}

// Run converts the database at dbPath. Any failure aborts the run and no
// output file is produced; the CSV is renamed into place last.
func (c *Converter) Run(ctx context.Context, dbPath string, opts Options) (*Result, error) {
	operation := operationConvert
	if opts.Import && opts.SkipCSV {
		operation = operationImport
	}

	runID := uuid.NewString()
	log := c.log.WithContext(ctx).With(logger.String("run_id", runID))
	start := time.Now()
	statsBefore := c.decoder.Lists().Stats()

	result, err := c.run(ctx, log, dbPath, opts)

	statsAfter := c.decoder.Lists().Stats()
	elapsed := time.Since(start)
	c.recordRun(operation, err, elapsed, statsBefore, statsAfter, result)

	if err != nil {
		log.Debug("run failed",
			logger.String("path", dbPath),
			logger.String("category", string(errors.CategoryOf(err))),
			logger.Duration("elapsed", elapsed))
		return nil, err
	}

	result.RunID = runID
	result.Duration = elapsed
	log.Info("run completed",
		logger.String("path", dbPath),
		logger.Int("records", len(result.Database.Records)),
		logger.String("output", result.OutputPath),
		logger.Int("imported", result.Imported),
		logger.Duration("elapsed", elapsed))
	return result, nil
}

func (c *Converter) run(ctx context.Context, log logger.Logger, dbPath string, opts Options) (*Result, error) {
	if opts.Import && c.store == nil {
		return nil, errors.Newf("import requested but no sighting store is enabled").
			Component(componentConverter).
			Category(errors.CategoryConfiguration).
			Build()
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	db, err := c.decoder.Decode(dbPath, opts.ListsDir)
	if err != nil {
		return nil, err
	}
	result := &Result{Database: db}

	// The CSV is staged first and only renamed into place once the import,
	// if any, has succeeded.
	var staged *export.StagedCSV
	if !opts.SkipCSV {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out := opts.OutputPath
		if out == "" {
			out = export.DefaultOutputPath(dbPath)
		}
		staged, err = c.exporter.Stage(db, out)
		if err != nil {
			return nil, err
		}
	}

	if opts.Import {
		n, err := c.importSightings(ctx, db)
		if err != nil {
			if staged != nil {
				staged.Discard()
			}
			return nil, err
		}
		result.Imported = n
		log.Debug("sightings imported", logger.Int("count", n))
	}

	if staged != nil {
		if err := staged.Commit(); err != nil {
			return nil, err
		}
		result.OutputPath = staged.Path()
	}

	return result, nil
}

func (c *Converter) importSightings(ctx context.Context, db *legacy.LegacyDatabase) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return c.store.ImportSightings(Sightings(db))
}

// recordRun updates metrics for one finished run.
func (c *Converter) recordRun(operation string, err error, elapsed time.Duration, before, after legacy.CacheStats, result *Result) {
	if c.metrics == nil {
		return
	}

	c.metrics.RecordDuration(operation, elapsed.Seconds())
	c.metrics.AddListCacheStats(after.Hits-before.Hits, after.Misses-before.Misses)

	if err != nil {
		c.metrics.RecordOperation(operation, statusError)
		c.metrics.RecordError(operation, string(errors.CategoryOf(err)))
		return
	}

	c.metrics.RecordOperation(operation, statusSuccess)
	c.metrics.AddRecordsDecoded(len(result.Database.Records))
	c.metrics.AddSightingsImported(result.Imported)
	c.metrics.SetLastSuccess(float64(time.Now().Unix()))
}

// Sightings maps decoded records to store sightings, keeping file order.
func Sightings(db *legacy.LegacyDatabase) []datastore.NewSighting {
	source := filepath.Base(db.SourcePath)
	sightings := make([]datastore.NewSighting, 0, len(db.Records))
	for i := range db.Records {
		r := &db.Records[i]
		sightings = append(sightings, datastore.NewSighting{
			Category: r.Category,
			Species:  r.SpeciesName,
			Location: r.LocationName,
			Date:     r.Date,
			Number:   int(r.Number),
			Flags:    r.Flags,
			Source:   source,
		})
	}
	return sightings
}

// String renders a one-line summary of the result.
func (r *Result) String() string {
	if r.OutputPath == "" {
		return fmt.Sprintf("%d records", len(r.Database.Records))
	}
	return fmt.Sprintf("%d records written to %s", len(r.Database.Records), r.OutputPath)
}
