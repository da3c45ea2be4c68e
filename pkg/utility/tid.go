package utility

import (
	"sync/atomic"
	"time"
)

// TraceID tags every event published during a run. Ids are unique
// within the process and sort by creation order, which is all a
// single-process backtest needs, so there is no machine segment.
type TraceID = uint64

const (
	traceSequenceBits = 20
	traceMaxSequence  = 1<<traceSequenceBits - 1
)

var (
	traceSequence atomic.Uint64

	// Milliseconds since the project epoch keep the timestamp segment
	// well inside the 44 bits above the sequence.
	traceEpoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
)

func CreateTraceID() TraceID {
	millis := uint64(time.Now().UnixMilli() - traceEpoch)
	seq := traceSequence.Add(1) & traceMaxSequence
	return millis<<traceSequenceBits | seq
}

// TraceIDTime recovers the creation time carried in the id.
func TraceIDTime(id TraceID) time.Time {
	return time.UnixMilli(traceEpoch + int64(id>>traceSequenceBits))
}
