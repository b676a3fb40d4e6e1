package dedupe

import (
	"context"
	"crypto/sha512"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/sdejongh/dedupnorris/pkg/models"
)

// ReaderWrapper wraps the raw file reader, e.g. for rate limiting
type ReaderWrapper func(io.Reader) io.Reader

// Hasher computes SHA-512 digests over full or partial file content
type Hasher struct {
	bufferSize int
	bufferPool *sync.Pool

	// Optional reader wrapper (e.g., for rate limiting)
	readerWrapper ReaderWrapper

	// Optional bytes-hashed callback
	progressHook func(path string, n int64)
}

// NewHasher creates a hasher with pooled read buffers
func NewHasher(bufferSize int) *Hasher {
	if bufferSize < 4096 {
		bufferSize = 4096
	}
	return &Hasher{
		bufferSize: bufferSize,
		bufferPool: &sync.Pool{
			New: func() interface{} {
				buf := make([]byte, bufferSize)
				return &buf
			},
		},
	}
}

// SetReaderWrapper sets a function to wrap readers (e.g., for rate limiting)
func (h *Hasher) SetReaderWrapper(wrapper ReaderWrapper) {
	h.readerWrapper = wrapper
}

// SetProgressHook sets a callback invoked with the number of bytes
// hashed after each read
func (h *Hasher) SetProgressHook(hook func(path string, n int64)) {
	h.progressHook = hook
}

// HashFull computes the digest over every byte of the file
func (h *Hasher) HashFull(ctx context.Context, path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return h.digest(ctx, path, file)
}

// HashWindow computes the digest over exactly window bytes read from
// the start or the end of the file. The file must be larger than the
// window; smaller files are handled by the full-content pass.
func (h *Hasher) HashWindow(ctx context.Context, path string, direction models.ScanDirection, window int64) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	if direction == models.ScanLast {
		if _, err := file.Seek(-window, io.SeekEnd); err != nil {
			return "", fmt.Errorf("failed to seek in file %s: %w", path, err)
		}
	}

	return h.digest(ctx, path, io.LimitReader(file, window))
}

// digest streams the reader through SHA-512
func (h *Hasher) digest(ctx context.Context, path string, reader io.Reader) (string, error) {
	if h.readerWrapper != nil {
		reader = h.readerWrapper(reader)
	}

	hasher := sha512.New()

	bufPtr := h.bufferPool.Get().(*[]byte)
	buffer := *bufPtr
	defer h.bufferPool.Put(bufPtr)

	for {
		// Check context cancellation
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		n, err := reader.Read(buffer)
		if n > 0 {
			hasher.Write(buffer[:n])
			if h.progressHook != nil {
				h.progressHook(path, int64(n))
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to read file %s: %w", path, err)
		}
	}

	return fmt.Sprintf("%x", hasher.Sum(nil)), nil
}
