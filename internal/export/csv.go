// Package export renders decoded legacy databases for people and other tools.
package export

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"github.com/tphakala/wildlog/internal/errors"
	"github.com/tphakala/wildlog/internal/legacy"
	"github.com/tphakala/wildlog/internal/logger"
)

const componentExport = "export"

// CSVHeader is the first line of every exported file.
const CSVHeader = "Species,Category,Number,Date,Location"

// CsvExporter writes decoded records as quoted CSV.
type CsvExporter struct {
	fs  afero.Fs
	log logger.Logger
}

// NewCsvExporter creates an exporter writing to fs. A nil fs writes to the
// host filesystem and a nil log uses the global logger.
func NewCsvExporter(fs afero.Fs, log logger.Logger) *CsvExporter {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if log == nil {
		log = logger.Global().Module(componentExport)
	}
	return &CsvExporter{fs: fs, log: log}
}

// DefaultOutputPath returns the CSV path next to the source database, with
// the source extension replaced by .csv.
func DefaultOutputPath(sourcePath string) string {
	base := filepath.Base(sourcePath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(filepath.Dir(sourcePath), base+".csv")
}

// Write renders db to outputPath, replacing any existing file. The CSV is
// written to a temporary file in the same directory and renamed into place,
// so a failed write leaves no output behind.
func (e *CsvExporter) Write(db *legacy.LegacyDatabase, outputPath string) error {
	staged, err := e.Stage(db, outputPath)
	if err != nil {
		return err
	}
	return staged.Commit()
}

// StagedCSV is a fully written CSV that is not yet visible at its output
// path. Exactly one of Commit or Discard must be called.
type StagedCSV struct {
	fs         afero.Fs
	log        logger.Logger
	tmpName    string
	outputPath string
	records    int
}

// Stage writes db to a temporary file next to outputPath. Nothing appears
// at outputPath until Commit.
func (e *CsvExporter) Stage(db *legacy.LegacyDatabase, outputPath string) (*StagedCSV, error) {
	dir := filepath.Dir(outputPath)
	tmp, err := afero.TempFile(e.fs, dir, "."+filepath.Base(outputPath)+".*.tmp")
	if err != nil {
		return nil, writeError(err, outputPath)
	}
	tmpName := tmp.Name()

	if err := WriteCSV(tmp, db); err != nil {
		_ = tmp.Close()
		_ = e.fs.Remove(tmpName)
		return nil, writeError(err, outputPath)
	}
	if err := tmp.Close(); err != nil {
		_ = e.fs.Remove(tmpName)
		return nil, writeError(err, outputPath)
	}

	return &StagedCSV{
		fs:         e.fs,
		log:        e.log,
		tmpName:    tmpName,
		outputPath: outputPath,
		records:    len(db.Records),
	}, nil
}

// Path returns the final output path.
func (s *StagedCSV) Path() string {
	return s.outputPath
}

// Commit renames the staged file into place.
func (s *StagedCSV) Commit() error {
	if err := s.fs.Rename(s.tmpName, s.outputPath); err != nil {
		_ = s.fs.Remove(s.tmpName)
		return writeError(err, s.outputPath)
	}
	s.log.Info("csv written",
		logger.String("path", s.outputPath),
		logger.Int("records", s.records))
	return nil
}

// Discard removes the staged file. An existing file at the output path is
// left untouched.
func (s *StagedCSV) Discard() {
	if err := s.fs.Remove(s.tmpName); err != nil {
		s.log.Warn("failed to remove staged csv",
			logger.String("path", s.tmpName),
			logger.Error(err))
	}
}

// WriteCSV renders db to w. Fields are double-quoted without escaping.
func WriteCSV(w io.Writer, db *legacy.LegacyDatabase) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString(CSVHeader + "\n"); err != nil {
		return fmt.Errorf("failed to write header to CSV: %w", err)
	}

	for i := range db.Records {
		if _, err := bw.WriteString(formatRecord(&db.Records[i])); err != nil {
			return fmt.Errorf("failed to write record %d to CSV: %w", i, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// formatRecord renders one CSV line including the newline.
func formatRecord(r *legacy.DecodedRecord) string {
	var sb strings.Builder
	fields := [...]string{
		r.SpeciesName,
		r.Category,
		strconv.Itoa(int(r.Number)),
		r.Date.Format(legacy.DateLayout),
		r.LocationName,
	}
	for i, f := range fields {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteByte('"')
		sb.WriteString(f)
		sb.WriteByte('"')
	}
	sb.WriteByte('\n')
	return sb.String()
}

func writeError(err error, path string) error {
	return errors.New(fmt.Errorf("write %s: %w", path, err)).
		Component(componentExport).
		Category(errors.CategoryFileIO).
		FileContext(path).
		Context("operation", "write_csv").
		Build()
}
