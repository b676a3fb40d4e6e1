package models

// SizeBuckets maps an exact byte length to the ordered candidate file
// paths sharing that length. Every pipeline stage consumes one mapping
// and produces a fresh one; buckets below the configured duplicate
// count never survive a stage.
type SizeBuckets map[int64][]string

// HashGroups maps a hex-encoded content digest (partial or full) to
// the files sharing it. Groups are always produced within a single
// size bucket, never across buckets.
type HashGroups map[string][]string

// DuplicateGroup is a confirmed set of byte-identical files
type DuplicateGroup struct {
	// Digest is the hex-encoded full-content digest shared by all members
	Digest string

	// Size is the common byte length of the members
	Size int64

	// Survivor is the member that is kept, the first in traversal order
	Survivor string

	// Removed lists every member except the survivor
	Removed []string

	// Deleted is true when the removed members were actually unlinked
	Deleted bool
}
