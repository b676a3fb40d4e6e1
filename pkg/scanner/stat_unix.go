//go:build !windows

package scanner

import (
	"io/fs"
	"syscall"

	"github.com/sdejongh/dedupnorris/pkg/models"
)

// identity extracts the filesystem identity token from file metadata.
// ok is false when the platform does not expose device and inode
// numbers for this entry.
func identity(info fs.FileInfo) (models.FileID, bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return models.FileID{}, false
	}
	return models.FileID{Dev: uint64(stat.Dev), Ino: uint64(stat.Ino)}, true
}
