package dedupe

import (
	"context"

	"github.com/sdejongh/dedupnorris/pkg/models"
)

// FullFilter hashes every byte of every file of one size bucket and
// groups the files by digest. Groups with fewer than two members are
// dropped unconditionally: two is the smallest possible duplicate
// pair, independent of the configured duplicate count, which was
// already enforced upstream.
//
// Files of different sizes never meet here; the caller invokes the
// filter once per size bucket.
func FullFilter(ctx context.Context, files []string, hasher *Hasher) (models.HashGroups, error) {
	groups := make(models.HashGroups)

	for _, path := range files {
		digest, err := hasher.HashFull(ctx, path)
		if err != nil {
			return nil, err
		}
		groups[digest] = append(groups[digest], path)
	}

	for digest, group := range groups {
		if len(group) < 2 {
			delete(groups, digest)
		}
	}

	return groups, nil
}
