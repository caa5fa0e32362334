package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

func (c *Cache) backupPath() string {
	return c.path + ".bak"
}

// load populates the in-memory map from the snapshot, preferring the
// primary path and falling back to the ".bak" recovery copy. Both failing
// is a logged degradation, never an error.
func (c *Cache) load() {
	entries, err := readSnapshot(c.path)
	if err == nil {
		c.entries = entries
		return
	}
	if !errors.Is(err, os.ErrNotExist) {
		c.logger.Warn("cache snapshot unreadable, trying recovery copy",
			"path", c.path, "error", err)
	}

	entries, bakErr := readSnapshot(c.backupPath())
	if bakErr == nil {
		c.entries = entries
		c.logger.Info("cache recovered from backup snapshot",
			"path", c.backupPath(), "entries", len(entries))
		return
	}
	if !errors.Is(bakErr, os.ErrNotExist) {
		c.logger.Warn("cache recovery copy unreadable, starting empty",
			"path", c.backupPath(), "error", bakErr)
	}
}

func readSnapshot(path string) (map[string]*Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	entries := make(map[string]*Entry)
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("cache: decode snapshot %q: %w", path, err)
	}
	return entries, nil
}

// persistLocked writes the snapshot durably. Callers hold c.mu.
//
// Write order: temp file in the cache directory, fsync, link the current
// snapshot to ".bak", atomic rename over the durable path, fsync the
// directory, drop the ".bak". A crash at any point leaves a readable
// snapshot at either the durable path or the recovery path.
func (c *Cache) persistLocked() error {
	data, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("cache: encode snapshot: %w", err)
	}

	dir := filepath.Dir(c.path)

	tmp, err := os.CreateTemp(dir, filepath.Base(c.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("cache: create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if tmpName != "" {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("cache: write temp snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("cache: sync temp snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("cache: close temp snapshot: %w", err)
	}

	if err := c.retainBackup(); err != nil {
		c.logger.Warn("cache backup retention failed", "path", c.backupPath(), "error", err)
	}

	if err := os.Rename(tmpName, c.path); err != nil {
		return fmt.Errorf("cache: replace snapshot: %w", err)
	}
	tmpName = ""

	if err := syncDir(dir); err != nil {
		c.logger.Warn("cache directory sync failed", "dir", dir, "error", err)
	}

	// The rename landed, so the backup is redundant.
	_ = os.Remove(c.backupPath())

	return nil
}

// retainBackup links the current snapshot to the recovery path so the
// prior contents survive a crash between the rename and the next persist.
func (c *Cache) retainBackup() error {
	if _, err := os.Stat(c.path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	bak := c.backupPath()
	_ = os.Remove(bak)
	if err := os.Link(c.path, bak); err == nil {
		return nil
	}

	// Hard links are unavailable on some filesystems; copy instead.
	return copyFile(c.path, bak)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Sync(); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()
	return d.Sync()
}
