package legacy

import (
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/tphakala/wildlog/internal/logger"
)

// Database file layout.
const (
	titleSize    = len("Species Database") + 1
	listPathSize = 1024
	dbHeaderSize = 4 + titleSize + 2*listPathSize
	dbRecordSize = 4 + 4 + 4 + 2 + 4
	speciesKind  = "species"
	locationKind = "location"
)

// DecodedRecord is one sighting with its indices resolved to names.
type DecodedRecord struct {
	SpeciesID    int32
	SpeciesName  string
	Category     string
	LocationID   int32
	LocationName string
	PackedDate   int32
	Date         time.Time
	Number       int16
	Flags        int32
}

// LegacyDatabase is a decoded database file. Records keep file order.
type LegacyDatabase struct {
	SourcePath       string
	FormatVersion    int32
	SpeciesListPath  string
	LocationListPath string
	Category         string
	Records          []DecodedRecord
}

// RecordDecoder decodes legacy database files, resolving species and
// location indices through a ListDecoder.
type RecordDecoder struct {
	fs    afero.Fs
	lists *ListDecoder
	log   logger.Logger
}

// NewRecordDecoder creates a decoder reading databases from fs. A nil lists
// decoder gets a fresh one on the same filesystem.
func NewRecordDecoder(fs afero.Fs, lists *ListDecoder, log logger.Logger) *RecordDecoder {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if log == nil {
		log = logger.Global().Module(componentLegacy)
	}
	if lists == nil {
		lists = NewListDecoder(fs, log)
	}
	return &RecordDecoder{fs: fs, lists: lists, log: log}
}

// Lists returns the list decoder used for index resolution.
func (d *RecordDecoder) Lists() *ListDecoder {
	return d.lists
}

// Decode reads the database at filePath. List files named in its header
// are looked up in listsDir. Any I/O, format, index or date error aborts
// the decode and no partial database is returned.
func (d *RecordDecoder) Decode(filePath, listsDir string) (*LegacyDatabase, error) {
	data, err := afero.ReadFile(d.fs, filePath)
	if err != nil {
		return nil, newIOError(err, filePath)
	}
	r := newByteReader(filePath, data)

	db := &LegacyDatabase{
		SourcePath: filePath,
		Category:   CategoryName(filePath),
	}
	if err := d.decodeHeader(r, db, listsDir); err != nil {
		return nil, err
	}

	if n := r.remaining() / dbRecordSize; n > 0 {
		db.Records = make([]DecodedRecord, 0, n)
	}
	for recordIndex := 0; r.remaining() > 0; recordIndex++ {
		offset := r.offset()
		record, err := d.decodeRecord(r, db)
		if err != nil {
			return nil, recordError(err, filePath, recordIndex, offset)
		}
		db.Records = append(db.Records, record)
	}

	d.log.Info("database decoded",
		logger.String("path", filePath),
		logger.Int("version", int(db.FormatVersion)),
		logger.String("category", db.Category),
		logger.Int("records", len(db.Records)))
	return db, nil
}

// decodeHeader reads the version, skips the title and resolves both
// embedded list paths against listsDir.
func (d *RecordDecoder) decodeHeader(r *byteReader, db *LegacyDatabase, listsDir string) error {
	version, err := r.int32("database version")
	if err != nil {
		return err
	}
	db.FormatVersion = version

	// The title is unreliable in some real files and carries nothing we use.
	if _, err := r.block(titleSize, "database title"); err != nil {
		return err
	}

	speciesBlock, err := r.block(listPathSize, "species list path")
	if err != nil {
		return err
	}
	locationBlock, err := r.block(listPathSize, "location list path")
	if err != nil {
		return err
	}

	db.SpeciesListPath = filepath.Join(listsDir, listFileName(speciesBlock))
	db.LocationListPath = filepath.Join(listsDir, listFileName(locationBlock))

	d.log.Debug("database header decoded",
		logger.String("path", db.SourcePath),
		logger.Int("version", int(version)),
		logger.String("species_list", db.SpeciesListPath),
		logger.String("location_list", db.LocationListPath))
	return nil
}

// decodeRecord reads one fixed-width record and resolves its indices.
func (d *RecordDecoder) decodeRecord(r *byteReader, db *LegacyDatabase) (DecodedRecord, error) {
	if err := r.need(dbRecordSize, "sighting record"); err != nil {
		return DecodedRecord{}, err
	}

	// need guarantees the full record width, so the reads below cannot fail.
	speciesID, _ := r.int32("species id")
	locationID, _ := r.int32("location id")
	packedDate, _ := r.int32("packed date")
	number, _ := r.int16("number")
	flags, _ := r.int32("flags")

	date, err := UnpackDate(packedDate)
	if err != nil {
		return DecodedRecord{}, err
	}

	species, err := d.resolve(db.SpeciesListPath, speciesKind, speciesID)
	if err != nil {
		return DecodedRecord{}, err
	}
	location, err := d.resolve(db.LocationListPath, locationKind, locationID)
	if err != nil {
		return DecodedRecord{}, err
	}

	return DecodedRecord{
		SpeciesID:    speciesID,
		SpeciesName:  species.Tag,
		Category:     db.Category,
		LocationID:   locationID,
		LocationName: location.Tag,
		PackedDate:   packedDate,
		Date:         date,
		Number:       number,
		Flags:        flags,
	}, nil
}

func (d *RecordDecoder) resolve(listPath, kind string, id int32) (ListEntry, error) {
	list, err := d.lists.Get(listPath)
	if err != nil {
		return ListEntry{}, err
	}
	entry, ok := list.Lookup(id)
	if !ok {
		return ListEntry{}, newUnresolvedIndexError(listPath, list.Name, kind, id)
	}
	return entry, nil
}
