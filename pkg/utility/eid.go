package utility

import (
	"sync"

	"github.com/google/uuid"
)

// ExecutionID identifies one backtest run. Every event published
// during the run carries it, and the trade journal keys rows by it.
type ExecutionID = uuid.UUID

var (
	executionMu sync.Mutex
	executionID ExecutionID
)

// GetExecutionID returns the run id, created on first use.
func GetExecutionID() ExecutionID {
	executionMu.Lock()
	defer executionMu.Unlock()

	if executionID == uuid.Nil {
		executionID = uuid.Must(uuid.NewV7())
	}
	return executionID
}

// ResetExecutionID starts a fresh run id, for back-to-back runs within
// one process.
func ResetExecutionID() ExecutionID {
	executionMu.Lock()
	defer executionMu.Unlock()

	executionID = uuid.Must(uuid.NewV7())
	return executionID
}
