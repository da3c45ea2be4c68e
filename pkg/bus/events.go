package bus

type EventId uint8

const (
	BarEvent EventId = iota
	OrderEvent
	OrderExecutedEvent
	OrderCanceledEvent
	PositionOpenedEvent
	PositionClosedEvent
)
