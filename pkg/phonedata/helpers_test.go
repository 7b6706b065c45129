package phonedata

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/bft-labs/phonedata/pkg/log"
)

// fixtureEntry is one prefix of a generated database.
type fixtureEntry struct {
	prefix   uint32
	cardType uint8
	record   string // without the trailing NUL
}

// buildDatabase lays out entries the way phone.dat does: header, NUL
// terminated records, then the index in the given order.
func buildDatabase(t testing.TB, version string, entries []fixtureEntry) []byte {
	t.Helper()
	if len(version) != versionSize {
		t.Fatalf("version %q must be %d bytes", version, versionSize)
	}

	var records bytes.Buffer
	offsets := make([]uint32, len(entries))
	for i, e := range entries {
		offsets[i] = uint32(headerSize + records.Len())
		records.WriteString(e.record)
		records.WriteByte(0)
	}

	var out bytes.Buffer
	out.WriteString(version)
	writeUint32(&out, uint32(headerSize+records.Len()))
	out.Write(records.Bytes())
	for i, e := range entries {
		writeUint32(&out, e.prefix)
		writeUint32(&out, offsets[i])
		out.WriteByte(e.cardType)
	}
	return out.Bytes()
}

func writeUint32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

// writeFile stores data under a temp dir and returns its path.
func writeFile(t testing.TB, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "phone.dat")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

// sampleEntries is a small, sorted database.
func sampleEntries() []fixtureEntry {
	return []fixtureEntry{
		{prefix: 1300000, cardType: 2, record: "山东|济南|250000|0531"},
		{prefix: 1340000, cardType: 1, record: "广东|广州|510000|020"},
		{prefix: 1380013, cardType: 1, record: "北京|北京|100000|010"},
		{prefix: 1530000, cardType: 3, record: "Guangdong|Shenzhen|518000|0755"},
		{prefix: 1700000, cardType: 4, record: "上海|上海|200000|021"},
		{prefix: 1709000, cardType: 5, record: "江苏|南京|210000|025"},
		{prefix: 1920000, cardType: 7, record: "浙江|杭州|310000|0571"},
	}
}

// recordingLogger keeps warnings for assertions.
type recordingLogger struct {
	log.NoopLogger

	mu    sync.Mutex
	warns []string
}

func (l *recordingLogger) Warn(msg string, fields ...log.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, msg)
}

func (l *recordingLogger) warnings() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.warns...)
}
