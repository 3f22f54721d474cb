package ui

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"tableflip.dev/timelined/pkg/app"
	"tableflip.dev/timelined/pkg/tui"
)

// UI runs the interactive timeline.
type UI struct {
	UnitWidth int
	Service   *app.Service
	Log       *zap.SugaredLogger
}

func (n *UI) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not start ui, no service")
	}
	return tui.Run(ctx, n.Service, tui.Options{UnitWidth: n.UnitWidth, Log: n.Log})
}
