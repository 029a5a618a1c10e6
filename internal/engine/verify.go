package engine

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/zeebo/blake3"
)

// verifyCopy re-hashes the source and the freshly renamed destination and
// reports a mismatch. This checks the integrity of the copy just made; it
// is not change detection and never influences what gets copied.
func verifyCopy(src, dst string) error {
	srcSum, err := HashFile(src)
	if err != nil {
		return err
	}
	dstSum, err := HashFile(dst)
	if err != nil {
		return err
	}
	if srcSum != dstSum {
		return fmt.Errorf("checksum mismatch: src %s dst %s", srcSum, dstSum)
	}
	return nil
}

// HashFile computes the BLAKE3 hash of the file at path, returning the
// hex-encoded digest.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	h := blake3.New()
	buf := make([]byte, 32*1024)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
