package reload

import (
	"bytes"
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/phonedata/pkg/phonedata"
)

// database returns a one-entry phone.dat for prefix.
func database(version string, prefix uint32, record string) []byte {
	blob := record + "\x00"
	var b bytes.Buffer
	b.WriteString(version)
	binary.Write(&b, binary.LittleEndian, uint32(8+len(blob)))
	b.WriteString(blob)
	binary.Write(&b, binary.LittleEndian, prefix)
	binary.Write(&b, binary.LittleEndian, uint32(8))
	b.WriteByte(1)
	return b.Bytes()
}

func writeDatabase(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, data, 0644))
}

func loadPath(t *testing.T, path string) *phonedata.Database {
	t.Helper()
	db, err := phonedata.Load(path)
	require.NoError(t, err)
	return db
}

func TestHolder_Find(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phone.dat")
	writeDatabase(t, path, database("0001", 1380013, "北京|北京|100000|010"))

	h := NewHolder(loadPath(t, path))
	info, err := h.Find("13800138000")
	require.NoError(t, err)
	assert.Equal(t, "北京", info.City)
	assert.Equal(t, "0001", h.Database().Version())
}

// startWatcher runs a watcher for path and stops it at test cleanup.
func startWatcher(t *testing.T, path string, h *Holder, load LoadFunc) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	w := NewWatcher(path, h, load, 10*time.Millisecond, nil)
	go func() { done <- w.Run(ctx) }()

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("watcher did not stop")
		}
	})
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phone.dat")
	writeDatabase(t, path, database("0001", 1380013, "北京|北京|100000|010"))

	h := NewHolder(loadPath(t, path))
	startWatcher(t, path, h, phonedataLoad)

	next := database("0002", 1390000, "上海|上海|200000|021")
	require.Eventually(t, func() bool {
		// Rewrite until the watch is established and the reload lands.
		_ = os.WriteFile(path, next, 0644)
		return h.Database().Version() == "0002"
	}, 5*time.Second, 50*time.Millisecond)

	info, err := h.Find("1390000")
	require.NoError(t, err)
	assert.Equal(t, "上海", info.Province)

	_, err = h.Find("1380013")
	require.ErrorIs(t, err, phonedata.ErrNotFound)
}

func TestWatcher_KeepsPreviousOnBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phone.dat")
	writeDatabase(t, path, database("0001", 1380013, "北京|北京|100000|010"))

	original := loadPath(t, path)
	h := NewHolder(original)

	var attempts atomic.Int32
	startWatcher(t, path, h, func(p string) (*phonedata.Database, error) {
		db, err := phonedata.Load(p)
		attempts.Add(1)
		return db, err
	})

	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte("junk"), 0644)
		return attempts.Load() > 0
	}, 5*time.Second, 50*time.Millisecond)

	assert.Same(t, original, h.Database())
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "phone.dat")
	writeDatabase(t, path, database("0001", 1380013, "北京|北京|100000|010"))

	h := NewHolder(loadPath(t, path))

	var attempts atomic.Int32
	startWatcher(t, path, h, func(p string) (*phonedata.Database, error) {
		attempts.Add(1)
		return phonedata.Load(p)
	})

	other := filepath.Join(dir, "phone.dat.tmp")
	for i := 0; i < 5; i++ {
		writeDatabase(t, other, database("0002", 1390000, "上海|上海|200000|021"))
		time.Sleep(20 * time.Millisecond)
	}
	time.Sleep(100 * time.Millisecond)

	assert.Zero(t, attempts.Load())
	assert.Equal(t, "0001", h.Database().Version())
}

func TestWatcher_MissingDirectory(t *testing.T) {
	h := NewHolder(nil)
	w := NewWatcher(filepath.Join(t.TempDir(), "missing", "phone.dat"), h, phonedataLoad, time.Millisecond, nil)

	err := w.Run(context.Background())
	require.Error(t, err)
}

func phonedataLoad(path string) (*phonedata.Database, error) {
	return phonedata.Load(path)
}
