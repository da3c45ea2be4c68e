package broker

import (
	"kairos/pkg/common"
)

// Transaction links one entry order to the position unit it created
// and, once the matching exit order executes, records that exit. A
// transaction with a recorded exit is complete.
type Transaction struct {
	Entry      *common.Order
	Exit       *common.Order
	PositionId common.PositionId
}

func (t *Transaction) IsComplete() bool {
	return t.Exit != nil
}
