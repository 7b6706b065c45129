// Package phonedata loads the phone.dat carrier database and resolves phone
// number prefixes to their province, city, zip code, area code and carrier.
//
// # File Layout
//
// A database file is a fixed 8-byte header followed by a record region and a
// sorted index:
//
//	offset 0..4              version tag (4 bytes of UTF-8 text)
//	offset 4..8              index offset (little-endian)
//	offset 8..index offset   records, "province|city|zip|area_code\x00" ...
//	offset index offset..EOF 9-byte entries: prefix u32, record offset u32, card type u8
//
// Record offsets stored in the index are absolute file offsets, so they
// include the 8-byte header.
//
// Files compressed with gzip or zstd are detected by their magic bytes and
// decompressed while loading.
//
// # Usage
//
//	db, err := phonedata.Load("phone.dat")
//	if err != nil {
//	    return err
//	}
//	info, err := db.Find("13800138000")
//	if errors.Is(err, phonedata.ErrNotFound) {
//	    // unknown prefix
//	}
//
// A loaded Database is immutable and safe for concurrent use.
//
// # Version
//
// See version.go for version constants that can be used programmatically.
package phonedata
