package dedupe

import (
	"context"

	"github.com/sdejongh/dedupnorris/pkg/models"
)

// PartialFilter narrows size buckets by hashing a fixed window at one
// end of each file and regrouping by digest within the bucket.
//
// A bucket whose size is at most the window passes through unchanged:
// the whole file fits in the window, so a partial digest would only
// duplicate the later full-content pass. Sub-groups smaller than
// minCount are dropped; survivors are flattened back into the bucket
// preserving the candidate order, which keeps survivor selection
// stable across passes.
//
// Any open, seek or read failure aborts the filter; a file whose
// digest is unknown cannot be silently treated as unique.
func PartialFilter(ctx context.Context, buckets models.SizeBuckets, direction models.ScanDirection, window int64, minCount int, hasher *Hasher) (models.SizeBuckets, error) {
	if window < 1 {
		return nil, &models.ValidationError{Field: "ScanSize", Message: "scan size must be at least 1 byte"}
	}
	if minCount < 2 {
		return nil, &models.ValidationError{Field: "MinCount", Message: "duplicate count must be at least 2"}
	}

	refined := make(models.SizeBuckets)

	for size, files := range buckets {
		if size <= window {
			refined[size] = files
			continue
		}

		groups := make(models.HashGroups)
		var order []string // digests in first-seen order

		for _, path := range files {
			digest, err := hasher.HashWindow(ctx, path, direction, window)
			if err != nil {
				return nil, err
			}
			if _, ok := groups[digest]; !ok {
				order = append(order, digest)
			}
			groups[digest] = append(groups[digest], path)
		}

		for _, digest := range order {
			group := groups[digest]
			if len(group) < minCount {
				continue
			}
			refined[size] = append(refined[size], group...)
		}
	}

	return refined, nil
}
