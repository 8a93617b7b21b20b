package project

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DefaultExtensions are the program file types picked up from directories.
var DefaultExtensions = []string{".py", ".r", ".html"}

// MatchesExtension reports whether path ends in one of exts, ignoring case.
// Extensions may be given with or without the leading dot.
func MatchesExtension(path string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return false
	}
	for _, e := range exts {
		e = strings.ToLower(e)
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		if ext == e {
			return true
		}
	}
	return false
}

// ScanDir walks root and returns program files with a matching extension in
// lexical order. Hidden directories below root are skipped.
func ScanDir(root string, exts []string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if MatchesExtension(path, exts) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: scan %s: %w", ErrRead, root, err)
	}
	return files, nil
}

// ExpandPaths replaces directory arguments with their scanned program files.
// Files pass through unchanged, even with an unrecognised extension, and the
// argument order is kept. Missing paths pass through so that reading them
// reports the failure.
func ExpandPaths(args []string, exts []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			out = append(out, arg)
			continue
		}
		files, err := ScanDir(arg, exts)
		if err != nil {
			return nil, err
		}
		out = append(out, files...)
	}
	return out, nil
}
