package legacy

import (
	"path/filepath"

	"github.com/patrickmn/go-cache"
	"github.com/spf13/afero"

	"github.com/tphakala/wildlog/internal/logger"
)

// List file layout.
const (
	tagSize            = 80
	infoPathSize       = 1024
	infoPathMinVersion = 100 // versions above this carry an info path per entry
	listEntrySize      = 4 + tagSize
	listEntryInfoSize  = listEntrySize + infoPathSize
	listHeaderSize     = 4
)

// ListEntry is one index-to-tag mapping from a species or location list.
type ListEntry struct {
	Index    int32
	Tag      string
	InfoPath string // empty unless the list version is above 100
}

// List is a decoded lookup file. Entries keep file order.
type List struct {
	Name    string
	Version int32
	Entries []ListEntry

	first map[int32]int
}

// Lookup returns the first entry with the given index.
func (l *List) Lookup(index int32) (ListEntry, bool) {
	i, ok := l.first[index]
	if !ok {
		return ListEntry{}, false
	}
	return l.Entries[i], true
}

// entrySize returns the width of one entry for the list's version.
func (l *List) entrySize() int {
	if l.Version > infoPathMinVersion {
		return listEntryInfoSize
	}
	return listEntrySize
}

// DecodeList decodes the bytes of a list file. source names the file in errors.
func DecodeList(source string, data []byte) (*List, error) {
	r := newByteReader(source, data)

	version, err := r.int32("list version")
	if err != nil {
		return nil, err
	}

	list := &List{
		Name:    filepath.Base(source),
		Version: version,
		first:   make(map[int32]int),
	}
	size := list.entrySize()

	for r.remaining() > 0 {
		if err := r.need(size, "list entry"); err != nil {
			return nil, err
		}

		// need guarantees the full entry width, so the reads below cannot fail.
		index, _ := r.int32("list index")
		tag, _ := r.block(tagSize, "list tag")
		entry := ListEntry{Index: index, Tag: decodeText(tag)}
		if size == listEntryInfoSize {
			info, _ := r.block(infoPathSize, "list info path")
			entry.InfoPath = decodeText(info)
		}

		if _, seen := list.first[index]; !seen {
			list.first[index] = len(list.Entries)
		}
		list.Entries = append(list.Entries, entry)
	}

	return list, nil
}

// CacheStats counts list cache activity over the decoder's lifetime.
type CacheStats struct {
	Hits   int
	Misses int
}

// ListDecoder reads list files and caches them by base file name, so lists
// with the same name in different directories are treated as one list.
type ListDecoder struct {
	fs    afero.Fs
	cache *cache.Cache
	log   logger.Logger
	stats CacheStats
}

// NewListDecoder creates a decoder reading from fs. A nil fs reads the host
// filesystem and a nil log uses the global logger.
func NewListDecoder(fs afero.Fs, log logger.Logger) *ListDecoder {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if log == nil {
		log = logger.Global().Module(componentLegacy)
	}
	return &ListDecoder{
		fs:    fs,
		cache: cache.New(cache.NoExpiration, 0),
		log:   log,
	}
}

// Get returns the decoded list for filePath, reading the file only on the
// first request for its base name.
func (d *ListDecoder) Get(filePath string) (*List, error) {
	key := filepath.Base(filePath)
	if cached, found := d.cache.Get(key); found {
		d.stats.Hits++
		d.log.Trace("list cache hit", logger.String("list", key))
		return cached.(*List), nil
	}
	d.stats.Misses++

	data, err := afero.ReadFile(d.fs, filePath)
	if err != nil {
		return nil, newIOError(err, filePath)
	}

	list, err := DecodeList(filePath, data)
	if err != nil {
		return nil, err
	}

	d.cache.Set(key, list, cache.NoExpiration)
	d.log.Debug("list decoded",
		logger.String("list", key),
		logger.String("path", filePath),
		logger.Int("version", int(list.Version)),
		logger.Int("entries", len(list.Entries)))
	return list, nil
}

// Stats returns cache hit and miss counts.
func (d *ListDecoder) Stats() CacheStats {
	return d.stats
}
