package ratelimit

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"
)

// TestNewLimiter tests the Limiter constructor
func TestNewLimiter(t *testing.T) {
	t.Run("ValidBytesPerSecond", func(t *testing.T) {
		limiter := NewLimiter(1024 * 1024) // 1 MB/s
		if limiter == nil {
			t.Fatal("NewLimiter() returned nil for valid input")
		}
		if limiter.bytesPerSecond != 1024*1024 {
			t.Errorf("bytesPerSecond = %d, want %d", limiter.bytesPerSecond, 1024*1024)
		}
	})

	t.Run("ZeroBytesPerSecond", func(t *testing.T) {
		if NewLimiter(0) != nil {
			t.Error("NewLimiter(0) should return nil (no limiting)")
		}
	})

	t.Run("NegativeBytesPerSecond", func(t *testing.T) {
		if NewLimiter(-100) != nil {
			t.Error("NewLimiter(-100) should return nil (no limiting)")
		}
	})

	t.Run("MinimumBucketSize", func(t *testing.T) {
		limiter := NewLimiter(1000) // 1KB/s
		if limiter == nil {
			t.Fatal("NewLimiter() returned nil")
		}
		if limiter.bucketSize < 65536 {
			t.Errorf("bucketSize = %d, want at least 65536", limiter.bucketSize)
		}
	})
}

// TestNewReader tests the reader wrapper
func TestNewReader(t *testing.T) {
	t.Run("NilLimiterPassthrough", func(t *testing.T) {
		source := strings.NewReader("test data")
		reader := NewReader(context.Background(), source, nil)
		if reader != io.Reader(source) {
			t.Error("NewReader() with nil limiter should return the source reader")
		}
	})

	t.Run("ReadsAllData", func(t *testing.T) {
		data := strings.Repeat("x", 1000)
		limiter := NewLimiter(1024 * 1024)
		reader := NewReader(context.Background(), strings.NewReader(data), limiter)

		got, err := io.ReadAll(reader)
		if err != nil {
			t.Fatalf("ReadAll() error = %v", err)
		}
		if string(got) != data {
			t.Errorf("ReadAll() returned %d bytes, want %d", len(got), len(data))
		}
	})

	t.Run("ContextCancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		limiter := NewLimiter(1024)
		reader := NewReader(ctx, strings.NewReader("data"), limiter)

		buf := make([]byte, 4)
		if _, err := reader.Read(buf); err == nil {
			t.Error("Read() should fail after context cancellation")
		}
	})
}

// TestLimiterThrottles verifies that reads are actually slowed down
func TestLimiterThrottles(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping timing-sensitive test in short mode")
	}

	// 64KB bucket starts full; reading 96KB at 64KB/s needs at least
	// ~500ms for the second chunk
	data := strings.Repeat("x", 96*1024)
	limiter := NewLimiter(64 * 1024)
	reader := NewReader(context.Background(), strings.NewReader(data), limiter)

	start := time.Now()
	if _, err := io.ReadAll(reader); err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if elapsed := time.Since(start); elapsed < 200*time.Millisecond {
		t.Errorf("read of %d bytes finished in %v, expected throttling", len(data), elapsed)
	}
}
