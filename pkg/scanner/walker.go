package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sdejongh/dedupnorris/pkg/models"
)

// candidate is a regular file that passed the traversal filters
type candidate struct {
	path  string
	size  int64
	id    models.FileID
	hasID bool
	depth int
}

// Walk traverses every root of the operation exactly once and groups
// qualifying regular files by exact byte length.
//
// Symbolic links are never followed and never counted, directories are
// never counted, and traversal does not leave the device a root lives
// on. Zero-length files are excluded, as are files below the minimum
// size or above a finite maximum. Each physical file is counted at
// most once even when reachable through several hard links. Buckets
// with fewer members than the duplicate count are pruned before
// returning.
//
// Any error while walking or reading metadata aborts the traversal.
func Walk(op *models.ScanOperation) (models.SizeBuckets, error) {
	seen := make(map[models.FileID]bool)
	var found []candidate

	for _, root := range op.Roots {
		rootInfo, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("failed to stat root %s: %w", root, err)
		}
		rootID, rootOK := identity(rootInfo)

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return fmt.Errorf("failed to traverse %s: %w", path, err)
			}

			info, err := d.Info()
			if err != nil {
				return fmt.Errorf("failed to read metadata for %s: %w", path, err)
			}
			id, hasID := identity(info)

			if d.IsDir() {
				// Stay on the root's device
				if path != root && rootOK && hasID && id.Dev != rootID.Dev {
					return fs.SkipDir
				}
				return nil
			}

			// Regular files only; symlinks and special files are skipped
			if !d.Type().IsRegular() {
				return nil
			}

			size := info.Size()
			if size == 0 {
				return nil
			}
			if size < op.MinSize {
				return nil
			}
			if op.MaxSize != 0 && size > op.MaxSize {
				return nil
			}

			// One candidate per physical file, however many links
			// point at it
			if hasID {
				if seen[id] {
					return nil
				}
				seen[id] = true
			}

			found = append(found, candidate{
				path:  path,
				size:  size,
				id:    id,
				hasID: hasID,
				depth: pathDepth(path),
			})
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sortCandidates(found, op.Order)

	buckets := make(models.SizeBuckets)
	for _, c := range found {
		buckets[c.size] = append(buckets[c.size], c.path)
	}

	// A file alone at its size can never be a duplicate
	for size, files := range buckets {
		if len(files) < op.MinCount {
			delete(buckets, size)
		}
	}

	return buckets, nil
}
