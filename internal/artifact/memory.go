package artifact

import (
	"context"
	"sync"
)

// Write is one recorded artifact write.
type Write struct {
	Key     string
	Content string
}

// MemoryWriter records writes for tests. Set Err to force every Write to
// fail with it.
type MemoryWriter struct {
	mu     sync.Mutex
	writes []Write

	Err error
}

func NewMemoryWriter() *MemoryWriter { return &MemoryWriter{} }

func (w *MemoryWriter) Write(ctx context.Context, key, content string) error {
	if w.Err != nil {
		return w.Err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.writes = append(w.writes, Write{Key: key, Content: content})
	return nil
}

func (w *MemoryWriter) Writes() []Write {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]Write, len(w.writes))
	copy(out, w.writes)
	return out
}
