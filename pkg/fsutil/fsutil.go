package fsutil

import (
	"os"
	"time"

	"github.com/cenkalti/backoff"
)

// IsFile reports whether path exists and is a regular file.
func IsFile(path string) bool {
	s, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !s.IsDir()
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	s, err := os.Stat(path)
	if err != nil {
		return false
	}
	return s.IsDir()
}

// RemoveAllRetry removes path and everything under it. Removal can fail
// transiently on Windows while another process still holds a handle inside
// the tree, so a few backoff attempts are made before giving up.
func RemoveAllRetry(path string) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 50 * time.Millisecond
	bo.MaxElapsedTime = 5 * time.Second

	return backoff.Retry(func() error {
		return os.RemoveAll(path)
	}, backoff.WithMaxRetries(bo, 5))
}
