package phonedata

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/bft-labs/phonedata/pkg/log"
)

const (
	// headerSize is the size of the version tag plus the index offset.
	headerSize = 8

	// versionSize is the size of the version tag at the start of the file.
	versionSize = 4

	// indexEntrySize is the size of one index entry: prefix, record offset, card type.
	indexEntrySize = 9

	readBufferSize = 64 * 1024
)

// IndexEntry maps a 7-digit number prefix to its record and operator.
type IndexEntry struct {
	// Prefix is the first 7 digits of a phone number.
	Prefix uint32

	// RecordsOffset is the absolute file offset of the record, header included.
	RecordsOffset uint32

	// CardType is the raw operator code, 1-8 in a well-formed file.
	CardType uint8
}

// Database is an in-memory phone.dat. It is immutable once loaded.
type Database struct {
	version string
	records []byte
	index   []IndexEntry
}

// Load reads the database file at path.
//
// Every failure, including a missing file, is reported as ErrInvalidDatabase.
func Load(path string, opts ...Option) (*Database, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDatabase, err)
	}
	defer f.Close()

	return LoadReader(f, opts...)
}

// LoadReader reads a database from r. r is consumed to EOF.
func LoadReader(r io.Reader, opts ...Option) (*Database, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	src, release, err := maybeDecompress(bufio.NewReaderSize(r, readBufferSize))
	defer release()
	if err != nil {
		return nil, fmt.Errorf("%w: decompress: %w", ErrInvalidDatabase, err)
	}

	var header [headerSize]byte
	if _, err := io.ReadFull(src, header[:]); err != nil {
		return nil, fmt.Errorf("%w: read header: %w", ErrInvalidDatabase, err)
	}

	version := header[:versionSize]
	if !utf8.Valid(version) {
		return nil, fmt.Errorf("%w: version tag %x is not text", ErrInvalidDatabase, version)
	}

	indexOffset := decodeUint32(header[versionSize:])
	if indexOffset < headerSize {
		return nil, fmt.Errorf("%w: index offset %d overlaps header", ErrInvalidDatabase, indexOffset)
	}

	// The buffer grows as bytes arrive so that a corrupt offset on a short
	// file fails on EOF instead of allocating up front.
	var records bytes.Buffer
	if _, err := io.CopyN(&records, src, int64(indexOffset-headerSize)); err != nil {
		return nil, fmt.Errorf("%w: read records (want %d bytes, got %d): %w",
			ErrInvalidDatabase, indexOffset-headerSize, records.Len(), err)
	}

	index, err := readIndex(src, indexOffset, o)
	if err != nil {
		return nil, err
	}

	db := &Database{
		version: string(version),
		records: records.Bytes(),
		index:   index,
	}

	o.logger.Debug("phone database loaded",
		log.String("version", db.version),
		log.Int("records_bytes", len(db.records)),
		log.Int("entries", len(db.index)),
	)

	return db, nil
}

// readIndex reads 9-byte entries until EOF. base is the file offset of the
// index section and is only used for diagnostics.
func readIndex(r io.Reader, base uint32, o options) ([]IndexEntry, error) {
	var (
		index []IndexEntry
		buf   [indexEntrySize]byte
	)

	for {
		n, err := io.ReadFull(r, buf[:])
		if errors.Is(err, io.EOF) {
			break
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			pos := int64(base) + int64(len(index))*indexEntrySize
			if o.strictIndex {
				return nil, fmt.Errorf("%w: truncated index entry at offset %d (%d of %d bytes)",
					ErrInvalidDatabase, pos, n, indexEntrySize)
			}
			o.logger.Warn("ignoring truncated trailing index entry",
				log.Int64("offset", pos),
				log.Int("bytes", n),
			)
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: read index: %w", ErrInvalidDatabase, err)
		}

		entry := IndexEntry{
			Prefix:        decodeUint32(buf[0:4]),
			RecordsOffset: decodeUint32(buf[4:8]),
			CardType:      buf[8],
		}

		if o.sortCheck && len(index) > 0 {
			if prev := index[len(index)-1]; entry.Prefix <= prev.Prefix {
				return nil, fmt.Errorf("%w: index entry %d prefix %d not above %d",
					ErrInvalidDatabase, len(index), entry.Prefix, prev.Prefix)
			}
		}

		index = append(index, entry)
	}

	return index, nil
}

// decodeUint32 accumulates b little-endian: byte i contributes b[i] << (8*i).
func decodeUint32(b []byte) uint32 {
	var v uint32
	for i, c := range b {
		v += uint32(c) << (8 * i)
	}
	return v
}

// Version returns the 4-character version tag from the file header.
func (db *Database) Version() string {
	return db.version
}

// Len returns the number of index entries.
func (db *Database) Len() int {
	return len(db.index)
}

// RecordsSize returns the size of the record region in bytes.
func (db *Database) RecordsSize() int {
	return len(db.records)
}

// Entry returns the i-th index entry in prefix order.
// It panics if i is out of range.
func (db *Database) Entry(i int) IndexEntry {
	return db.index[i]
}

// PrefixRange returns the lowest and highest prefix in the index.
// ok is false when the index is empty.
func (db *Database) PrefixRange() (lo, hi uint32, ok bool) {
	if len(db.index) == 0 {
		return 0, 0, false
	}
	return db.index[0].Prefix, db.index[len(db.index)-1].Prefix, true
}
