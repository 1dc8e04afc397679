package utils

import (
	"path/filepath"
	"strings"
)

// SourceFile locates a source file given on the command line.
type SourceFile struct {
	Path string // absolute, cleaned
	Dir  string // directory holding the file, where includes are resolved
	Name string // file name without directory and extension
}

// GetPathInfo resolves relPath against the working directory.
func GetPathInfo(relPath string) (SourceFile, error) {
	// Convert to absolute path (resolves ../../ and cleans the path)
	fullPath, err := filepath.Abs(relPath)
	if err != nil {
		return SourceFile{}, err
	}

	base := filepath.Base(fullPath)
	return SourceFile{
		Path: fullPath,
		Dir:  filepath.Dir(fullPath),
		Name: strings.TrimSuffix(base, filepath.Ext(base)),
	}, nil
}
