package dedupe

import (
	"github.com/sdejongh/dedupnorris/pkg/models"
)

// Stats returns the candidate count and total byte count of a
// size-bucket mapping. It is pure and is applied after every pipeline
// stage for progress reporting.
func Stats(buckets models.SizeBuckets) (files uint64, bytes uint64) {
	for size, paths := range buckets {
		files += uint64(len(paths))
		bytes += uint64(size) * uint64(len(paths))
	}
	return files, bytes
}
