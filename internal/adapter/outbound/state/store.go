// Package state persists session credentials to a local file shared
// by every process of the client.
package state

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/doistemposcafe/totem/internal/domain/session"
)

// FileCredentialStore reads and writes the session.json file.
// It provides atomic writes (write-tmp-then-rename), file locking
// (flock for cross-process, mutex for in-process), and 0600
// permissions, since the token is a credential.
//
// Two processes saving at once last-write-wins; the flock only keeps
// the writes from interleaving, it does not arbitrate between them.
type FileCredentialStore struct {
	path   string
	mu     sync.Mutex
	logger *slog.Logger
}

// NewFileCredentialStore creates a store for the given file path.
func NewFileCredentialStore(path string, logger *slog.Logger) *FileCredentialStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileCredentialStore{path: path, logger: logger}
}

// Load reads and parses the credentials file.
// A missing file means session.ErrNoSession; a file that no longer
// parses means session.ErrCorrupt so the caller can purge it.
func (s *FileCredentialStore) Load() (*session.Credentials, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, session.ErrNoSession
		}
		return nil, fmt.Errorf("read credentials file: %w", err)
	}

	// Warn if the file is readable by group/other. Skip on Windows
	// where Unix permission bits are not supported.
	if runtime.GOOS != "windows" {
		if info, statErr := os.Stat(s.path); statErr == nil {
			mode := info.Mode().Perm()
			if mode&0077 != 0 {
				s.logger.Warn("credentials file has too-open permissions, should be 0600",
					"path", s.path, "current_mode", fmt.Sprintf("%04o", mode))
			}
		}
	}

	var creds session.Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("parse credentials file: %w", session.ErrCorrupt)
	}
	if creds.Token == "" {
		return nil, session.ErrNoSession
	}

	return &creds, nil
}

// Save writes the credentials to disk atomically.
//
// The write sequence is:
//  1. Acquire in-process mutex
//  2. Acquire flock on path+".lock"
//  3. Marshal credentials as indented JSON
//  4. Write to path+".tmp" with 0600 permissions
//  5. Fsync the temp file
//  6. Rename path+".tmp" -> path
//  7. Release flock
//  8. Release mutex
func (s *FileCredentialStore) Save(creds *session.Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create credentials dir: %w", err)
	}

	unlock, err := s.lock()
	if err != nil {
		return err
	}
	defer unlock()

	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal credentials: %w", err)
	}
	data = append(data, '\n')

	if err := s.writeAtomic(data); err != nil {
		return err
	}

	// Ensure 0600 after rename as a safety net.
	if err := os.Chmod(s.path, 0600); err != nil {
		s.logger.Warn("failed to set permissions on credentials file", "error", err)
	}

	s.logger.Debug("credentials saved", "path", s.path)
	return nil
}

// Clear removes the credentials file. A missing file is a no-op, so
// clearing twice produces the same state as clearing once.
func (s *FileCredentialStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove credentials file: %w", err)
	}
	return nil
}

// Exists returns true if the credentials file exists on disk.
func (s *FileCredentialStore) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Path returns the configured file path.
func (s *FileCredentialStore) Path() string {
	return s.path
}

// lock acquires the cross-process file lock. The returned function
// releases the lock and closes the lock file.
func (s *FileCredentialStore) lock() (func(), error) {
	lockPath := s.path + ".lock"
	lockFile, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}
	if err := flockLock(lockFile.Fd()); err != nil {
		_ = lockFile.Close()
		return nil, fmt.Errorf("acquire file lock: %w", err)
	}
	return func() {
		_ = flockUnlock(lockFile.Fd())
		_ = lockFile.Close()
	}, nil
}

// writeAtomic writes data to a temp file, fsyncs it, and renames it
// over the target path. On any error the temp file is cleaned up.
func (s *FileCredentialStore) writeAtomic(data []byte) error {
	tmpPath := s.path + ".tmp"

	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	cleanup := func() {
		_ = f.Close()
		_ = os.Remove(tmpPath)
	}

	if _, err := f.Write(data); err != nil {
		cleanup()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("fsync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp to credentials: %w", err)
	}
	return nil
}
