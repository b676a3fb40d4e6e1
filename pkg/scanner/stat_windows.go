//go:build windows

package scanner

import (
	"io/fs"

	"github.com/sdejongh/dedupnorris/pkg/models"
)

// identity on Windows reports no filesystem identity. Hard-link
// detection and device-boundary checks are skipped; every path is
// treated as a distinct file.
func identity(info fs.FileInfo) (models.FileID, bool) {
	return models.FileID{}, false
}
