package stats

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollectorCounters(t *testing.T) {
	c := NewCollector()

	c.AddFilesCopied(3)
	c.AddFilesFailed(1)
	c.AddEntriesSkipped(2)
	c.AddBytesCopied(4096)
	c.AddDirsCreated(5)
	c.AddFilesDeleted(7)
	c.AddDirsPruned(2)
	c.AddFilesPreserved(9)

	snap := c.Snapshot()
	assert.Equal(t, int64(3), snap.FilesCopied)
	assert.Equal(t, int64(1), snap.FilesFailed)
	assert.Equal(t, int64(2), snap.EntriesSkipped)
	assert.Equal(t, int64(4096), snap.BytesCopied)
	assert.Equal(t, int64(5), snap.DirsCreated)
	assert.Equal(t, int64(7), snap.FilesDeleted)
	assert.Equal(t, int64(2), snap.DirsPruned)
	assert.Equal(t, int64(9), snap.FilesPreserved)
}

func TestCollectorConcurrent(t *testing.T) {
	c := NewCollector()

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 1000 {
				c.AddFilesCopied(1)
				c.AddBytesCopied(10)
			}
		}()
	}
	wg.Wait()

	snap := c.Snapshot()
	assert.Equal(t, int64(16000), snap.FilesCopied)
	assert.Equal(t, int64(160000), snap.BytesCopied)
}

func TestSnapshotString(t *testing.T) {
	c := NewCollector()
	c.AddFilesCopied(2)
	c.AddFilesDeleted(1)

	s := c.Snapshot().String()
	assert.Contains(t, s, "copied=2")
	assert.Contains(t, s, "deleted=1")
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", FormatBytes(512))
	assert.Equal(t, "1.0 KiB", FormatBytes(1024))
	assert.Equal(t, "1.5 MiB", FormatBytes(3*1024*1024/2))
	assert.Equal(t, "2.0 GiB", FormatBytes(2*1024*1024*1024))
}
