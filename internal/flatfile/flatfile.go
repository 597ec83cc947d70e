// Package flatfile implements the comma-delimited, rewrite-all persistence
// shared by the credential and session stores. Every operation opens the file,
// reads or rewrites it in full, and closes it again; no state is cached
// between calls. Writes are atomic (temp file plus rename) and guarded by a
// scoped lock file so a crashed run never leaves a half-written store behind.
package flatfile

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Iron-Ham/fitsched/internal/errors"
)

// ReadAll parses every record from the file at path. A missing file is an
// empty store, not an error. Blank lines are skipped. Records are returned
// with whatever field count they have on disk; field-count validation belongs
// to the caller, which knows the expected schema.
func ReadAll(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.NewStoreError(path, "failed to open store", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var records [][]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewStoreError(path, "failed to parse store", err)
		}
		records = append(records, record)
	}
	return records, nil
}

// WriteAll reserializes the entire store to the file at path, creating the
// parent directory if needed. The write is atomic: a temp file in the same
// directory is written, synced, and renamed over the store.
func WriteAll(path string, records [][]string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.NewStoreError(path, "failed to create store directory", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for _, record := range records {
		if err := w.Write(record); err != nil {
			return errors.NewStoreError(path, "failed to serialize record", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.NewStoreError(path, "failed to serialize store", err)
	}

	if err := atomicWriteFile(path, buf.Bytes(), 0644); err != nil {
		return errors.NewStoreError(path, "failed to write store", err)
	}
	return nil
}

// atomicWriteFile writes data to path via a temp file and rename.
func atomicWriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	// Create temp file in same directory to ensure atomic rename
	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	// Clean up temp file on any error
	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return nil
}
