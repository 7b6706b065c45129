package phonedata

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	minNumberLen = 7
	maxNumberLen = 11
	prefixLen    = 7

	recordFields    = 4
	recordSeparator = "|"
)

// PhoneInfo is the metadata resolved for a phone number.
type PhoneInfo struct {
	Province string `json:"province"`
	City     string `json:"city"`
	ZipCode  string `json:"zip_code"`
	AreaCode string `json:"area_code"`
	// CardType is the operator description, e.g. "中国移动".
	CardType string `json:"card_type"`
}

// record is one decoded entry of the record region.
type record struct {
	province string
	city     string
	zipCode  string
	areaCode string
}

// Find resolves number, which must be 7 to 11 characters long and start with
// 7 decimal digits. Only the first 7 digits take part in the lookup.
func (db *Database) Find(number string) (PhoneInfo, error) {
	prefix, err := parsePrefix(number)
	if err != nil {
		return PhoneInfo{}, err
	}

	entry, ok := db.search(prefix)
	if !ok {
		return PhoneInfo{}, fmt.Errorf("%w: %s", ErrNotFound, number)
	}

	rec, err := db.record(entry.RecordsOffset)
	if err != nil {
		return PhoneInfo{}, err
	}

	cardType, err := ParseCardType(entry.CardType)
	if err != nil {
		return PhoneInfo{}, fmt.Errorf("prefix %d: %w", entry.Prefix, err)
	}

	return PhoneInfo{
		Province: rec.province,
		City:     rec.city,
		ZipCode:  rec.zipCode,
		AreaCode: rec.areaCode,
		CardType: cardType.Description(),
	}, nil
}

// parsePrefix validates the length of number and returns its first 7 digits
// as an integer.
func parsePrefix(number string) (uint32, error) {
	if n := len(number); n < minNumberLen || n > maxNumberLen {
		return 0, fmt.Errorf("%w: %d characters", ErrInvalidLength, n)
	}

	var prefix uint32
	for i := 0; i < prefixLen; i++ {
		c := number[i]
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("%w: %q", ErrInvalidQuery, number[:prefixLen])
		}
		prefix = prefix*10 + uint32(c-'0')
	}
	return prefix, nil
}

// search looks prefix up in the index.
//
// The bounds are never moved past mid; the loop ends when the midpoint stops
// changing. mid starts at -1 so that the first midpoint of a one-entry index
// is still compared.
func (db *Database) search(prefix uint32) (IndexEntry, bool) {
	if len(db.index) == 0 {
		return IndexEntry{}, false
	}

	left, right, mid := 0, len(db.index), -1
	for {
		next := (left + right) / 2
		if next == mid {
			return IndexEntry{}, false
		}
		mid = next

		switch p := db.index[mid].Prefix; {
		case p > prefix:
			right = mid
		case p < prefix:
			left = mid
		default:
			return db.index[mid], true
		}
	}
}

// record decodes the record at the absolute file offset off.
func (db *Database) record(off uint32) (record, error) {
	if off < headerSize || int64(off-headerSize) > int64(len(db.records)) {
		return record{}, fmt.Errorf("%w: record offset %d outside record region [%d, %d)",
			ErrInvalidDatabase, off, headerSize, headerSize+len(db.records))
	}

	raw := db.records[off-headerSize:]
	if end := bytes.IndexByte(raw, 0); end >= 0 {
		raw = raw[:end]
	}
	if !utf8.Valid(raw) {
		return record{}, fmt.Errorf("%w: record at offset %d is not valid UTF-8", ErrInvalidDatabase, off)
	}

	fields := strings.Split(string(raw), recordSeparator)
	if len(fields) != recordFields {
		return record{}, fmt.Errorf("%w: record at offset %d has %d fields, want %d",
			ErrInvalidDatabase, off, len(fields), recordFields)
	}

	return record{
		province: fields[0],
		city:     fields[1],
		zipCode:  fields[2],
		areaCode: fields[3],
	}, nil
}
