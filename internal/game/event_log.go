package game

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

const (
	EventBufferSize     = 1024                   // Circular buffer size
	MaxEventsPerSec     = 2000                   // Global rate limit
	MaxEventsPerFighter = 240                    // Per-fighter rate limit per second
	BatchFlushSize      = 64                     // Events per batch write
	BatchFlushInterval  = 100 * time.Millisecond // How often to flush
)

// EventLog is a bounded, rate-limited combat event log.
// Emit is called from the tick goroutine; a writer goroutine flushes
// batches to an NDJSON file.
type EventLog struct {
	mu     sync.Mutex
	buffer [EventBufferSize]Event
	head   uint64 // next sequence to write
	tail   uint64 // next sequence to flush

	globalLimiter   *rate.Limiter
	fighterLimiters map[FighterID]*rate.Limiter

	writerWg sync.WaitGroup
	stopChan chan struct{}
	stopOnce sync.Once
	running  atomic.Bool

	file *os.File
	out  *bufio.Writer

	droppedCount atomic.Uint64
	totalCount   atomic.Uint64
}

// NewEventLog creates a new bounded event log
func NewEventLog() *EventLog {
	return &EventLog{
		globalLimiter:   rate.NewLimiter(MaxEventsPerSec, MaxEventsPerSec/10),
		fighterLimiters: make(map[FighterID]*rate.Limiter),
		stopChan:        make(chan struct{}),
	}
}

// Start begins the async writer. An empty path keeps events in memory only.
func (el *EventLog) Start(filePath string) error {
	if el.running.Load() {
		return nil
	}

	if filePath != "" {
		file, err := os.OpenFile(filePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("open event log: %w", err)
		}
		el.file = file
		el.out = bufio.NewWriter(file)
	}

	el.running.Store(true)
	el.writerWg.Add(1)
	go el.writerLoop()
	return nil
}

// Stop flushes pending events and closes the file
func (el *EventLog) Stop() {
	el.stopOnce.Do(func() {
		if !el.running.Load() {
			return
		}
		el.running.Store(false)
		close(el.stopChan)
		el.writerWg.Wait()

		if el.file != nil {
			el.file.Close()
		}
	})
}

// Emit adds an event. Returns false when rate limited or not running.
func (el *EventLog) Emit(event Event) bool {
	if !el.running.Load() {
		return false
	}

	if !el.globalLimiter.Allow() {
		el.droppedCount.Add(1)
		return false
	}

	el.mu.Lock()
	defer el.mu.Unlock()

	if event.Fighter != MatchEvent {
		lim, ok := el.fighterLimiters[event.Fighter]
		if !ok {
			lim = rate.NewLimiter(MaxEventsPerFighter, MaxEventsPerFighter/4)
			el.fighterLimiters[event.Fighter] = lim
		}
		if !lim.Allow() {
			el.droppedCount.Add(1)
			return false
		}
	}

	// Full buffer drops the oldest event
	if el.head-el.tail >= EventBufferSize {
		el.tail++
		el.droppedCount.Add(1)
	}

	el.head++
	event.Sequence = el.head
	el.buffer[el.head%EventBufferSize] = event
	el.totalCount.Add(1)
	return true
}

// EmitSimple builds and emits an event
func (el *EventLog) EmitSimple(eventType EventType, tickNum uint64, fighter FighterID, payload interface{}) bool {
	return el.Emit(NewEvent(eventType, tickNum, fighter, payload))
}

func (el *EventLog) writerLoop() {
	defer el.writerWg.Done()

	ticker := time.NewTicker(BatchFlushInterval)
	defer ticker.Stop()

	batch := make([]Event, 0, BatchFlushSize)
	for {
		select {
		case <-el.stopChan:
			for {
				batch = el.collectBatch(batch[:0])
				if len(batch) == 0 {
					return
				}
				el.flushBatch(batch)
			}
		case <-ticker.C:
			batch = el.collectBatch(batch[:0])
			if len(batch) > 0 {
				el.flushBatch(batch)
			}
		}
	}
}

func (el *EventLog) collectBatch(batch []Event) []Event {
	el.mu.Lock()
	defer el.mu.Unlock()

	for el.tail < el.head && len(batch) < BatchFlushSize {
		el.tail++
		batch = append(batch, el.buffer[el.tail%EventBufferSize])
	}
	return batch
}

// flushBatch appends events as newline-delimited JSON
func (el *EventLog) flushBatch(batch []Event) {
	if el.out == nil {
		return
	}
	for _, event := range batch {
		data, err := json.Marshal(event)
		if err != nil {
			continue
		}
		el.out.Write(data)
		el.out.WriteByte('\n')
	}
	el.out.Flush()
}

// Recent returns up to n of the most recent events still in the buffer,
// oldest first.
func (el *EventLog) Recent(n int) []Event {
	el.mu.Lock()
	defer el.mu.Unlock()

	avail := el.head
	if avail > EventBufferSize {
		avail = EventBufferSize
	}
	if uint64(n) > avail {
		n = int(avail)
	}
	out := make([]Event, 0, n)
	for seq := el.head - uint64(n) + 1; seq <= el.head && n > 0; seq++ {
		out = append(out, el.buffer[seq%EventBufferSize])
	}
	return out
}

// GetStats returns counters for monitoring
func (el *EventLog) GetStats() map[string]interface{} {
	el.mu.Lock()
	pending := el.head - el.tail
	el.mu.Unlock()

	return map[string]interface{}{
		"total":   el.totalCount.Load(),
		"dropped": el.droppedCount.Load(),
		"pending": pending,
		"running": el.running.Load(),
	}
}

// GetDroppedCount returns the number of dropped events
func (el *EventLog) GetDroppedCount() uint64 {
	return el.droppedCount.Load()
}

// GetTotalCount returns the total number of events accepted
func (el *EventLog) GetTotalCount() uint64 {
	return el.totalCount.Load()
}
