package replay

import (
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/cardgym/internal/common"
)

var (
	// ErrBufferClosed is returned when operations are attempted on a closed buffer
	ErrBufferClosed = errors.New("replay buffer is closed")
)

// Buffer is a thread-safe circular buffer of trajectory records. When full
// it drops the oldest record.
type Buffer struct {
	mu       sync.RWMutex
	buffer   []*Record
	capacity int
	size     int
	head     int // Write position
	tail     int // Read position
	closed   bool

	// Statistics
	totalAdded   int64
	totalDropped int64

	logger zerolog.Logger
}

// NewBuffer creates a buffer with the specified capacity.
func NewBuffer(capacity int, logger zerolog.Logger) *Buffer {
	if capacity <= 0 {
		capacity = 10000 // Default capacity
	}
	return &Buffer{
		buffer:   make([]*Record, capacity),
		capacity: capacity,
		logger:   logger.With().Str("component", "replay_buffer").Logger(),
	}
}

// Add appends a record, evicting the oldest one when at capacity.
func (b *Buffer) Add(rec *Record) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrBufferClosed
	}

	if b.size >= b.capacity {
		b.tail = (b.tail + 1) % b.capacity
		b.totalDropped++
		b.logger.Debug().
			Int64("dropped_total", b.totalDropped).
			Msg("Buffer full, dropping oldest record")
	} else {
		b.size++
	}

	b.buffer[b.head] = rec
	b.head = (b.head + 1) % b.capacity
	b.totalAdded++
	return nil
}

// AddAll appends a batch of records.
func (b *Buffer) AddAll(recs []*Record) error {
	for _, rec := range recs {
		if err := b.Add(rec); err != nil {
			return err
		}
	}
	return nil
}

// Len reports the number of buffered records.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.size
}

// Drain removes and returns up to max records, oldest first. max <= 0
// drains everything.
func (b *Buffer) Drain(max int) []*Record {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := b.size
	if max > 0 {
		n = common.Min(n, max)
	}
	out := make([]*Record, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, b.buffer[b.tail])
		b.buffer[b.tail] = nil
		b.tail = (b.tail + 1) % b.capacity
		b.size--
	}
	return out
}

// Stats returns the total records added and dropped over the buffer's life.
func (b *Buffer) Stats() (added, dropped int64) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.totalAdded, b.totalDropped
}

// Close rejects further writes. Buffered records can still be drained.
func (b *Buffer) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
}
