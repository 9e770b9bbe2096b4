// Command portout drives or samples a group of GPIO pins as one value.
//
// Usage:
//
//	portout [flags] (-write V | -read | -toggle D [-count N])
//
// Examples:
//
//	portout -mask 0x00B40000 -write 0x00B40000
//	portout -port GPIO -mask 0xF0 -read
//	portout -mask 0x00B40000 -toggle 1s
//
// Flag defaults can come from SOFTPORT_PORT, SOFTPORT_MASK,
// SOFTPORT_PIN_PREFIX and SOFTPORT_PIN_FIRST, in the environment or in the
// dotenv file named by -env.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"periph.io/x/host/v3"

	"github.com/ardnew/softport/pkg"
	"github.com/ardnew/softport/port"
	"github.com/ardnew/softport/port/hal"
	"github.com/ardnew/softport/port/hal/fake"
	"github.com/ardnew/softport/port/hal/periph"
)

func main() {
	cfg, err := parseConfig(os.Args[1:], os.LookupEnv, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "portout:", err)
		os.Exit(2)
	}

	if cfg.verbose {
		pkg.SetLogLevel(slog.LevelDebug)
	}
	if cfg.json {
		pkg.SetLogFormat(pkg.LogFormatJSON)
	}

	h, err := newHAL(cfg)
	if err != nil {
		pkg.LogError(pkg.ComponentCLI, "HAL unavailable", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, h, os.Stdout); err != nil {
		pkg.LogError(pkg.ComponentCLI, "failed", "error", err)
		stop()
		os.Exit(1)
	}
}

func newHAL(cfg config) (hal.PortHAL, error) {
	name := hal.PortName(cfg.port)
	if cfg.fake {
		return fake.New(name), nil
	}
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("host init: %w", err)
	}
	return periph.New(map[hal.PortName]periph.Layout{
		name: periph.Sequential(cfg.pinPrefix, cfg.pinFirst, 32),
	}), nil
}

func run(ctx context.Context, cfg config, h hal.PortHAL, w io.Writer) error {
	name := hal.PortName(cfg.port)

	switch cfg.mode {
	case modeRead:
		in, err := port.NewIn(h, name, cfg.mask)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%#08x\n", in.Read())
		return nil

	case modeWrite:
		out, err := port.NewOut(h, name, cfg.mask)
		if err != nil {
			return err
		}
		out.Write(cfg.value)
		got := out.Read()
		pkg.LogInfo(pkg.ComponentCLI, "port written",
			"port", cfg.port,
			"value", fmt.Sprintf("%#08x", cfg.value),
			"read", fmt.Sprintf("%#08x", got))
		fmt.Fprintf(w, "%#08x\n", got)
		return nil

	case modeToggle:
		out, err := port.NewOut(h, name, cfg.mask)
		if err != nil {
			return err
		}
		return toggle(ctx, out, cfg.period, cfg.count)

	default:
		return errUsage
	}
}

// toggle alternates out between its mask and zero, starting with the mask.
// It stops after count writes, or when ctx is done if count is zero.
// An interrupted toggle leaves the port at zero.
func toggle(ctx context.Context, out *port.Out, period time.Duration, count int) error {
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	on := true
	for n := 1; ; n++ {
		if on {
			out.Write(out.Mask())
		} else {
			out.Write(0)
		}
		pkg.LogDebug(pkg.ComponentCLI, "toggled", "port", string(out.Name()), "on", on)
		on = !on

		if count > 0 && n >= count {
			return nil
		}
		select {
		case <-ctx.Done():
			out.Write(0)
			return nil
		case <-ticker.C:
		}
	}
}
