package dumper

import (
	"archive/tar"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/klauspost/compress/gzip"
)

// archiveEpoch is the modification time stamped on every archive entry.
var archiveEpoch = time.Unix(0, 0).UTC()

// archiveWriters holds the writer chain file -> gzip -> tar.
type archiveWriters struct {
	tarWriter *tar.Writer
	closers   []io.Closer
}

// Close closes all writers in reverse order, returning the first error encountered.
func (aw *archiveWriters) Close() error {
	var firstErr error
	for i := len(aw.closers) - 1; i >= 0; i-- {
		if err := aw.closers[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func setupArchiveWriters(path string) (*archiveWriters, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to create archive: %w", err)
	}

	gz, err := gzip.NewWriterLevel(file, gzip.DefaultCompression)
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to create gzip writer: %w", err)
	}
	// gzip header without name or mtime
	gz.Header = gzip.Header{OS: 255}

	tw := tar.NewWriter(gz)
	return &archiveWriters{tarWriter: tw, closers: []io.Closer{file, gz, tw}}, nil
}

// WriteArchive packs srcDir into a gzip-compressed tar at dst.
// Identical directory contents always produce byte-identical archives: entries are
// sorted, ownership and timestamps are fixed.
func WriteArchive(srcDir, dst string) (err error) {
	paths, err := collectPaths(srcDir)
	if err != nil {
		return err
	}

	aw, err := setupArchiveWriters(dst)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := aw.Close(); err == nil {
			err = closeErr
		}
	}()

	for _, rel := range paths {
		if err := addEntry(aw.tarWriter, srcDir, rel); err != nil {
			return err
		}
	}
	return nil
}

func collectPaths(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, _ fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}
	sort.Strings(paths)
	return paths, nil
}

func addEntry(tw *tar.Writer, root, rel string) error {
	full := filepath.Join(root, filepath.FromSlash(rel))
	info, err := os.Lstat(full)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", full, err)
	}

	header := &tar.Header{
		Name:    rel,
		ModTime: archiveEpoch,
	}
	switch {
	case info.IsDir():
		header.Typeflag = tar.TypeDir
		header.Name += "/"
		header.Mode = 0o755
	case info.Mode().IsRegular():
		header.Typeflag = tar.TypeReg
		header.Mode = 0o644
		header.Size = info.Size()
	default:
		// mongodump only writes directories and regular files
		return nil
	}

	if err := tw.WriteHeader(header); err != nil {
		return fmt.Errorf("failed to write header for %s: %w", rel, err)
	}
	if header.Typeflag != tar.TypeReg {
		return nil
	}

	file, err := os.Open(full)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", full, err)
	}
	defer file.Close()

	if _, err := io.Copy(tw, file); err != nil {
		return fmt.Errorf("failed to archive %s: %w", rel, err)
	}
	return nil
}
