// Copyright (C) 2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

// Package export saves a rendered report to a file chosen by the user.
package export

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
)

// ErrNothingToExport is returned for an empty report.
var ErrNothingToExport = errors.New("no results to export")

// Extensions lists the accepted file extensions. A file without extension
// is accepted as well.
var Extensions = []string{".txt", ".csv"}

func checkExtension(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return nil
	}
	for _, allowed := range Extensions {
		if ext == allowed {
			return nil
		}
	}
	return errors.Errorf("unsupported export file type '%s', use one of %s", ext, strings.Join(Extensions, ", "))
}

// Write stores text verbatim in path and returns a short summary for logging.
func Write(path string, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrNothingToExport
	}
	if err := checkExtension(path); err != nil {
		return "", err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", errors.Wrap(err, "failed to create export directory")
		}
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", errors.Wrapf(err, "failed to export results to %s", path)
	}
	return "Results exported to " + path + " (" + humanize.Bytes(uint64(len(text))) + ")", nil
}
