package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/timelined/pkg/app"
	"tableflip.dev/timelined/pkg/store"
)

// Info describes where periods are stored.
type Info struct {
	Config  *store.FileConfig
	Service *app.Service

	Out io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if override := os.Getenv("TIMELINED_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(out, "TIMELINED_CONFIG_PATH found on env, using", override)
	} else {
		_, _ = fmt.Fprintln(out, "TIMELINED_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	_, _ = fmt.Fprintln(out, "Config.path:", n.Config.BasePath())
	_, _ = fmt.Fprintln(out, "Config.backend:", n.Config.Backend())
	_, _ = fmt.Fprintln(out, "Config.log.level:", n.Config.LogLevel)

	if n.Service == nil {
		return fmt.Errorf("failed to create service")
	}

	all := n.Service.Periods()
	tasks := 0
	for _, p := range all {
		tasks += len(p.Schedule)
	}
	_, _ = fmt.Fprintf(out, "Periods: %d\n", len(all))
	_, _ = fmt.Fprintf(out, "Tasks: %d\n", tasks)
	if p, ok := n.Service.Current(); ok {
		_, _ = fmt.Fprintf(out, "Current: %s (%s)\n", p.Name, p.MonthLabel())
	} else {
		_, _ = fmt.Fprintln(out, "Current: no period for this month")
	}
	return nil
}
