package transport

import (
	"context"
	"sync"

	"github.com/LashSesh/omega-protocol/omega"
)

// MemoryBuffer is an in-process transport backed by a stack: Poll returns the
// most recently sent vector first. It simulates a broadcast medium for tests
// and single-process topologies.
type MemoryBuffer struct {
	mu      sync.Mutex
	vectors []omega.Vector
}

// NewMemoryBuffer creates an empty in-process transport.
func NewMemoryBuffer() *MemoryBuffer {
	return &MemoryBuffer{}
}

// Send implements omega.Transport.
func (b *MemoryBuffer) Send(ctx context.Context, v omega.Vector) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.vectors = append(b.vectors, v.Clone())
	return nil
}

// Poll implements omega.Transport. The second return value reports whether a
// vector was available.
func (b *MemoryBuffer) Poll(ctx context.Context) (omega.Vector, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.vectors) == 0 {
		return nil, false, nil
	}
	v := b.vectors[len(b.vectors)-1]
	b.vectors = b.vectors[:len(b.vectors)-1]
	return v, true, nil
}

// Len reports the number of buffered vectors.
func (b *MemoryBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.vectors)
}

// TransferTo moves the most recent vector into another buffer, simulating
// delivery across a network hop. It is a no-op when the buffer is empty.
func (b *MemoryBuffer) TransferTo(other *MemoryBuffer) {
	b.mu.Lock()
	var v omega.Vector
	if n := len(b.vectors); n > 0 {
		v = b.vectors[n-1]
		b.vectors = b.vectors[:n-1]
	}
	b.mu.Unlock()

	if v == nil {
		return
	}
	other.mu.Lock()
	other.vectors = append(other.vectors, v)
	other.mu.Unlock()
}
