package scanner

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/sdejongh/dedupnorris/pkg/models"
)

// TestHelper provides utilities for scanner tests
type TestHelper struct {
	t       *testing.T
	tempDir string
}

// NewTestHelper creates a new test helper with a temporary tree
func NewTestHelper(t *testing.T) *TestHelper {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "dedupnorris-scanner-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	return &TestHelper{t: t, tempDir: tempDir}
}

// Cleanup removes all temporary files
func (h *TestHelper) Cleanup() {
	os.RemoveAll(h.tempDir)
}

// CreateFile creates a file under the temp tree
func (h *TestHelper) CreateFile(name string, content []byte) string {
	h.t.Helper()
	path := filepath.Join(h.tempDir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		h.t.Fatalf("failed to create parent dir: %v", err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		h.t.Fatalf("failed to create file: %v", err)
	}
	return path
}

// Operation returns a scan operation rooted at the temp tree
func (h *TestHelper) Operation() *models.ScanOperation {
	return &models.ScanOperation{
		ID:         "test-op",
		Roots:      []string{h.tempDir},
		MinSize:    1,
		MaxSize:    0,
		MinCount:   2,
		ScanSize:   1024 * 1024,
		Order:      models.OrderName,
		BufferSize: 65536,
		CreatedAt:  time.Now(),
	}
}

func TestWalk_SizeGrouping(t *testing.T) {
	h := NewTestHelper(t)
	defer h.Cleanup()

	h.CreateFile("a.txt", []byte("hello"))
	h.CreateFile("b.txt", []byte("world"))
	h.CreateFile("c.txt", []byte("hi"))

	buckets, err := Walk(h.Operation())
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	// a.txt and b.txt share size 5; c.txt is alone at size 2 and is
	// pruned below the duplicate count
	if len(buckets) != 1 {
		t.Fatalf("Walk() returned %d buckets, want 1", len(buckets))
	}
	if len(buckets[5]) != 2 {
		t.Errorf("bucket[5] has %d files, want 2", len(buckets[5]))
	}
}

func TestWalk_ThresholdPruning(t *testing.T) {
	h := NewTestHelper(t)
	defer h.Cleanup()

	h.CreateFile("a.txt", []byte("hello"))
	h.CreateFile("b.txt", []byte("world"))

	op := h.Operation()
	op.MinCount = 3

	buckets, err := Walk(op)
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	if len(buckets) != 0 {
		t.Errorf("Walk() returned %d buckets, want 0 (below count)", len(buckets))
	}
}

func TestWalk_ZeroLengthExcluded(t *testing.T) {
	h := NewTestHelper(t)
	defer h.Cleanup()

	h.CreateFile("empty1", nil)
	h.CreateFile("empty2", nil)

	buckets, err := Walk(h.Operation())
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	if len(buckets) != 0 {
		t.Errorf("zero-length files must never be candidates, got %d buckets", len(buckets))
	}
}

func TestWalk_SizeLimits(t *testing.T) {
	h := NewTestHelper(t)
	defer h.Cleanup()

	h.CreateFile("small1", []byte("ab"))
	h.CreateFile("small2", []byte("cd"))
	h.CreateFile("big1", []byte("0123456789"))
	h.CreateFile("big2", []byte("abcdefghij"))

	t.Run("MinSize", func(t *testing.T) {
		op := h.Operation()
		op.MinSize = 5

		buckets, err := Walk(op)
		if err != nil {
			t.Fatalf("Walk() error = %v", err)
		}
		if _, ok := buckets[2]; ok {
			t.Error("files below the minimum size must be excluded")
		}
		if len(buckets[10]) != 2 {
			t.Errorf("bucket[10] has %d files, want 2", len(buckets[10]))
		}
	})

	t.Run("MaxSize", func(t *testing.T) {
		op := h.Operation()
		op.MaxSize = 5

		buckets, err := Walk(op)
		if err != nil {
			t.Fatalf("Walk() error = %v", err)
		}
		if _, ok := buckets[10]; ok {
			t.Error("files above a finite maximum size must be excluded")
		}
		if len(buckets[2]) != 2 {
			t.Errorf("bucket[2] has %d files, want 2", len(buckets[2]))
		}
	})
}

func TestWalk_SymlinksIgnored(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation requires privileges on windows")
	}

	h := NewTestHelper(t)
	defer h.Cleanup()

	target := h.CreateFile("a.txt", []byte("hello"))
	h.CreateFile("b.txt", []byte("world"))
	if err := os.Symlink(target, filepath.Join(h.tempDir, "link.txt")); err != nil {
		t.Fatalf("failed to create symlink: %v", err)
	}

	buckets, err := Walk(h.Operation())
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	if len(buckets[5]) != 2 {
		t.Errorf("bucket[5] has %d files, want 2 (symlink must not be counted)", len(buckets[5]))
	}
}

func TestWalk_HardLinksCountedOnce(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("filesystem identity is not available on windows")
	}

	h := NewTestHelper(t)
	defer h.Cleanup()

	target := h.CreateFile("a.txt", []byte("hello"))
	if err := os.Link(target, filepath.Join(h.tempDir, "hardlink.txt")); err != nil {
		t.Fatalf("failed to create hard link: %v", err)
	}

	buckets, err := Walk(h.Operation())
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	// Two names, one inode: a single candidate that is then pruned
	// for being alone at its size
	if len(buckets) != 0 {
		t.Errorf("two links to one inode must yield a single candidate, got buckets %v", buckets)
	}
}

func TestWalk_Subdirectories(t *testing.T) {
	h := NewTestHelper(t)
	defer h.Cleanup()

	h.CreateFile("top.txt", []byte("hello"))
	h.CreateFile(filepath.Join("sub", "nested.txt"), []byte("world"))

	buckets, err := Walk(h.Operation())
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	if len(buckets[5]) != 2 {
		t.Errorf("bucket[5] has %d files, want 2 (recursion into subdirs)", len(buckets[5]))
	}
}

func TestWalk_MissingRoot(t *testing.T) {
	op := &models.ScanOperation{
		Roots:      []string{"/nonexistent/path/that/does/not/exist"},
		MinSize:    1,
		MinCount:   2,
		ScanSize:   1024,
		Order:      models.OrderName,
		BufferSize: 65536,
	}

	if _, err := Walk(op); err == nil {
		t.Error("Walk() should fail for a missing root")
	}
}

func TestWalk_NameOrderDeterministic(t *testing.T) {
	h := NewTestHelper(t)
	defer h.Cleanup()

	h.CreateFile("zzz.txt", []byte("hello"))
	h.CreateFile("aaa.txt", []byte("hello"))
	h.CreateFile("mmm.txt", []byte("hello"))

	op := h.Operation()
	op.Order = models.OrderName

	buckets, err := Walk(op)
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	files := buckets[5]
	if len(files) != 3 {
		t.Fatalf("bucket[5] has %d files, want 3", len(files))
	}
	for i := 1; i < len(files); i++ {
		if files[i-1] >= files[i] {
			t.Errorf("name order violated: %q before %q", files[i-1], files[i])
		}
	}
}

func TestWalk_DepthOrder(t *testing.T) {
	h := NewTestHelper(t)
	defer h.Cleanup()

	deep := h.CreateFile(filepath.Join("sub", "deep.txt"), []byte("hello"))
	shallow := h.CreateFile("shallow.txt", []byte("hello"))

	op := h.Operation()
	op.Order = models.OrderDepth

	buckets, err := Walk(op)
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	files := buckets[5]
	if len(files) != 2 {
		t.Fatalf("bucket[5] has %d files, want 2", len(files))
	}
	if files[0] != shallow || files[1] != deep {
		t.Errorf("depth order = %v, want shallow before deep", files)
	}
}
