// Package model manages recognition and detection model files on disk.
//
// Model weights are distributed out of band and verified by MD5 before use.
// When a file is missing or corrupt the store downloads it again, with
// exponential backoff on transient network failures. Callers that disable
// downloads get a hard error instead, so a misconfigured deployment fails at
// startup rather than mid-batch.
package model

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Asset identifies one downloadable model file.
type Asset struct {
	// Name is the file name under the storage directory.
	Name string

	// URL is the download location.
	URL string

	// MD5 is the expected checksum of the file on disk, hex-encoded.
	MD5 string
}

// ErrDownloadsDisabled is returned when a required file is missing or
// corrupt and the store is not allowed to fetch it.
var ErrDownloadsDisabled = errors.New("model file unavailable and downloads are disabled")

// ChecksumError reports a model file whose content does not match the
// registry checksum, which usually means a truncated or corrupted download.
type ChecksumError struct {
	Path string
	Want string
	Got  string
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("checksum mismatch for %s: want %s, got %s", e.Path, e.Want, e.Got)
}

// Store resolves, verifies and fetches model files.
type Store struct {
	// Dir is the model storage directory.
	Dir string

	// DownloadEnabled permits fetching missing or corrupt files.
	DownloadEnabled bool

	// Client is the HTTP client used for downloads; http.DefaultClient
	// when nil.
	Client *http.Client

	// Log receives download progress; slog.Default when nil.
	Log *slog.Logger
}

// DefaultDir returns the model storage directory: $PAGELENS_MODULE_PATH if
// set, otherwise ~/.pagelens/model.
func DefaultDir() string {
	if p := os.Getenv("PAGELENS_MODULE_PATH"); p != "" {
		return filepath.Join(p, "model")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".pagelens", "model")
	}
	return filepath.Join(home, ".pagelens", "model")
}

// Ensure returns the on-disk path of a verified model file, downloading or
// re-downloading it when needed and allowed.
func (s *Store) Ensure(a Asset) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create model directory: %w", err)
	}
	path := filepath.Join(s.Dir, a.Name)

	switch err := s.verify(path, a.MD5); {
	case err == nil:
		return path, nil
	case os.IsNotExist(err):
		if !s.DownloadEnabled {
			return "", fmt.Errorf("missing %s: %w", path, ErrDownloadsDisabled)
		}
	default:
		var ce *ChecksumError
		if !errors.As(err, &ce) {
			return "", err
		}
		if !s.DownloadEnabled {
			return "", fmt.Errorf("%v: %w", ce, ErrDownloadsDisabled)
		}
		s.logger().Warn("model file corrupt, re-downloading", "path", path)
		if err := os.Remove(path); err != nil {
			return "", fmt.Errorf("failed to remove corrupt model: %w", err)
		}
	}

	s.logger().Info("downloading model, this may take several minutes", "name", a.Name, "url", a.URL)
	if err := s.download(a.URL, path); err != nil {
		return "", fmt.Errorf("failed to download %s: %w", a.Name, err)
	}
	if err := s.verify(path, a.MD5); err != nil {
		return "", err
	}
	s.logger().Info("download complete", "name", a.Name)
	return path, nil
}

// verify checks that the file exists and matches the expected checksum. An
// empty checksum only requires existence.
func (s *Store) verify(path, wantMD5 string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	if wantMD5 == "" {
		return nil
	}
	got, err := fileMD5(path)
	if err != nil {
		return err
	}
	if got != wantMD5 {
		return &ChecksumError{Path: path, Want: wantMD5, Got: got}
	}
	return nil
}

// download fetches a URL to a file, retrying transient failures with
// exponential backoff.
func (s *Store) download(url, path string) error {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	op := func() error {
		resp, err := client.Get(url)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 500 {
			return fmt.Errorf("server returned %s", resp.Status)
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("server returned %s", resp.Status))
		}

		tmp, err := os.CreateTemp(filepath.Dir(path), ".download-*")
		if err != nil {
			return backoff.Permanent(err)
		}
		defer os.Remove(tmp.Name())

		if _, err := io.Copy(tmp, resp.Body); err != nil {
			tmp.Close()
			return err
		}
		if err := tmp.Close(); err != nil {
			return err
		}
		return os.Rename(tmp.Name(), path)
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 500 * time.Millisecond
	policy.MaxElapsedTime = 5 * time.Minute
	return backoff.Retry(op, backoff.WithMaxRetries(policy, 4))
}

func (s *Store) logger() *slog.Logger {
	if s.Log != nil {
		return s.Log
	}
	return slog.Default()
}

// fileMD5 computes the hex MD5 digest of a file.
func fileMD5(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
