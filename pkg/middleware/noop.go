package middleware

import (
	"context"

	"kairos/pkg/common"
)

//goland:noinspection ALL
var (
	NoopBarHdl       = func(context.Context, common.Bar) {}
	NoopOrderHdl     = func(context.Context, common.Order) {}
	NoopOrderExecHdl = func(context.Context, common.Order) {}
	NoopOrderCancHdl = func(context.Context, common.Order) {}
	NoopPosOpnHdl    = func(context.Context, common.Position) {}
	NoopPosClsHdl    = func(context.Context, common.Position) {}
)
