package scaffold

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// WriteFileNew writes content to relativePath under dir, creating parent
// directories as needed. The path must stay inside dir, and an existing
// file is an error so scaffolding never clobbers user files.
func WriteFileNew(dir, relativePath, content string) (string, error) {
	if dir == "" {
		return "", errors.New("target directory is required")
	}
	if relativePath == "" {
		return "", errors.New("output path is required")
	}

	cleanRel := filepath.Clean(relativePath)
	if filepath.IsAbs(cleanRel) || strings.HasPrefix(cleanRel, "..") {
		return "", errors.New("output path must be relative to the crate root")
	}

	fullPath := filepath.Join(dir, cleanRel)
	rel, err := filepath.Rel(dir, fullPath)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", errors.New("output path escapes the crate root")
	}

	if err = os.MkdirAll(filepath.Dir(fullPath), 0o750); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	// #nosec G304 -- fullPath is validated to stay under dir.
	file, err := os.OpenFile(fullPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		if errors.Is(err, os.ErrExist) || errors.Is(err, syscall.EEXIST) {
			return "", fmt.Errorf("file already exists: %s", fullPath)
		}
		return "", fmt.Errorf("write output file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	if _, err := file.WriteString(content); err != nil {
		return "", fmt.Errorf("write output file: %w", err)
	}

	return fullPath, nil
}
