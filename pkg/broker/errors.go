package broker

import "errors"

var (
	// Precondition violations. These signal a programming defect in the
	// driving code and abort the run.
	ErrResolveNotPending   = errors.New("resolve called on a non-pending order")
	ErrBarBeforeSubmission = errors.New("bar date does not postdate order submission date")

	// Caller-misuse errors. The engine state is left unchanged.
	ErrSymbolNotRegistered = errors.New("symbol is not registered with the ledger")
	ErrNoMatchingPosition  = errors.New("no open position in the required direction")
	ErrUnitNotFound        = errors.New("unit number does not address an open unit")
	ErrSideMismatch        = errors.New("instrument already holds units of the opposite side")

	// Internal-consistency errors. Broker and ledger state diverged,
	// subsequent statistics would be unreliable.
	ErrTransactionMissing = errors.New("no strategy transaction for closing position")
)
