package scanner

import (
	"os"
	"sort"
	"strings"

	"github.com/sdejongh/dedupnorris/pkg/models"
)

// sortCandidates fixes the candidate order for the whole pipeline.
// The sort is stable on the path as final tiebreaker so that repeated
// runs on an unchanged tree pick the same survivors.
func sortCandidates(cands []candidate, order models.ScanOrder) {
	switch order {
	case models.OrderName:
		sort.Slice(cands, func(i, j int) bool {
			return cands[i].path < cands[j].path
		})

	case models.OrderDepth:
		sort.Slice(cands, func(i, j int) bool {
			if cands[i].depth != cands[j].depth {
				return cands[i].depth < cands[j].depth
			}
			return cands[i].path < cands[j].path
		})

	default: // models.OrderIdentity
		sort.Slice(cands, func(i, j int) bool {
			a, b := cands[i], cands[j]
			if a.hasID && b.hasID {
				if a.id.Dev != b.id.Dev {
					return a.id.Dev < b.id.Dev
				}
				if a.id.Ino != b.id.Ino {
					return a.id.Ino < b.id.Ino
				}
			}
			return a.path < b.path
		})
	}
}

// pathDepth counts the separators in a path
func pathDepth(path string) int {
	return strings.Count(path, string(os.PathSeparator))
}
