package fsscan

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5/util"

	"github.com/custodia-labs/transync-cli/internal/core/domain"
	"github.com/custodia-labs/transync-cli/internal/core/ports/driven"
	"github.com/custodia-labs/transync-cli/internal/logger"
)

// Ensure Scanner implements the interface.
var _ driven.DocumentScanner = (*Scanner)(nil)

// Scanner walks a source directory for documents.
type Scanner struct {
	open Opener
}

// NewScanner creates a scanner over the given filesystem opener.
func NewScanner(open Opener) *Scanner {
	return &Scanner{open: open}
}

// Scan returns the sorted document names under baseDir. Names are
// slash-separated relative paths without ext. Files that match the
// patterns but do not end in ext are skipped.
func (s *Scanner) Scan(baseDir, ext string, spec domain.ScanSpec) ([]string, error) {
	m, err := newMatcher(ext, spec)
	if err != nil {
		return nil, err
	}

	fs, err := s.open(baseDir)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", baseDir, err)
	}
	info, err := fs.Stat(".")
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrSourceDirMissing, baseDir)
		}
		return nil, fmt.Errorf("stat %s: %w", baseDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrSourceDirMissing, baseDir)
	}

	seen := make(map[string]struct{})
	err = util.Walk(fs, ".", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel := filepath.ToSlash(path)
		if rel == "." {
			return nil
		}
		rel = strings.TrimPrefix(rel, "./")
		if info.IsDir() {
			if m.excludedDir(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if !m.included(rel) {
			return nil
		}
		name, ok := stripExt(rel, ext, spec.CaseSensitive)
		if !ok {
			logger.Debug("skipping %s: not a %s file", rel, ext)
			return nil
		}
		seen[name] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", baseDir, err)
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func stripExt(path, ext string, caseSensitive bool) (string, bool) {
	if ext == "" {
		return path, true
	}
	if len(path) <= len(ext) {
		return "", false
	}
	suffix := path[len(path)-len(ext):]
	if suffix == ext || (!caseSensitive && strings.EqualFold(suffix, ext)) {
		return path[:len(path)-len(ext)], true
	}
	return "", false
}
