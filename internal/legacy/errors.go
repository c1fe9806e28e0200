package legacy

import (
	"fmt"

	"github.com/tphakala/wildlog/internal/errors"
)

const componentLegacy = "legacy"

// newIOError reports a list or database file that cannot be read.
func newIOError(err error, path string) error {
	return errors.New(fmt.Errorf("read %s: %w", path, err)).
		Component(componentLegacy).
		Category(errors.CategoryFileIO).
		FileContext(path).
		Context("operation", "read_legacy_file").
		Build()
}

// newTruncatedError reports a byte stream that ends inside a field or record.
func newTruncatedError(path string, offset int64, what string, want, have int) error {
	return errors.New(fmt.Errorf("%s: truncated %s at offset %d: need %d bytes, %d remain", path, what, offset, want, have)).
		Component(componentLegacy).
		Category(errors.CategoryTruncatedFormat).
		FileContext(path).
		Context("offset", offset).
		Context("field", what).
		Build()
}

// newUnresolvedIndexError reports a record index missing from its list.
func newUnresolvedIndexError(listPath, list, kind string, id int32) error {
	return errors.New(fmt.Errorf("%s index %d not found in %s", kind, id, listPath)).
		Component(componentLegacy).
		Category(errors.CategoryUnresolvedIndex).
		Context("operation", "resolve_"+kind).
		Context("index", id).
		Context("list", list).
		Build()
}

// newInvalidDateError reports a packed date that is not a calendar date.
func newInvalidDateError(packed int32, year, month, day int) error {
	return errors.New(fmt.Errorf("packed date %d decodes to invalid date %04d-%02d-%02d", packed, year, month, day)).
		Component(componentLegacy).
		Category(errors.CategoryInvalidDate).
		Context("packed_date", packed).
		Build()
}

// recordError adds the record position to an error raised while decoding it.
// The category of err is kept.
func recordError(err error, path string, recordIndex int, offset int64) error {
	return errors.New(fmt.Errorf("%s: record %d at offset %d: %w", path, recordIndex, offset, err)).
		Component(componentLegacy).
		FileContext(path).
		Context("record_index", recordIndex).
		Context("offset", offset).
		Build()
}
