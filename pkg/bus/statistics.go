package bus

import (
	"log/slog"
)

type Statistics struct {
	PostCount     uint64
	DispatchFails uint64
}

func (s Statistics) Print() {
	slog.Info("router statistics",
		"post_count", s.PostCount,
		"dispatch_fails", s.DispatchFails)
}
