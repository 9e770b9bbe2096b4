package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/ardnew/softport/port"
)

// Environment variables that supply flag defaults.
const (
	envPort      = "SOFTPORT_PORT"
	envMask      = "SOFTPORT_MASK"
	envPinPrefix = "SOFTPORT_PIN_PREFIX"
	envPinFirst  = "SOFTPORT_PIN_FIRST"
)

const defaultEnvFile = ".env"

type mode int

const (
	modeWrite mode = iota + 1
	modeRead
	modeToggle
)

type config struct {
	port      string
	mask      uint32
	pinPrefix string
	pinFirst  int

	mode   mode
	value  uint32
	period time.Duration
	count  int

	fake    bool
	verbose bool
	json    bool
}

var errUsage = errors.New("exactly one of -write, -read or -toggle is required")

// parseConfig parses args. Flags left unset fall back to the process
// environment (getenv), then to the dotenv file named by -env.
func parseConfig(args []string, getenv func(string) (string, bool), output io.Writer) (config, error) {
	cfg := config{}

	fset := flag.NewFlagSet("portout", flag.ContinueOnError)
	fset.SetOutput(output)
	envFile := fset.String("env", defaultEnvFile, "dotenv file with "+envPort+"-style defaults")
	fset.StringVar(&cfg.port, "port", "GPIO", "Port name")
	mask := fset.String("mask", fmt.Sprintf("%#x", port.DefaultMask), "Pin mask")
	fset.StringVar(&cfg.pinPrefix, "pin-prefix", "GPIO", "Pin name prefix for the port layout")
	fset.IntVar(&cfg.pinFirst, "pin-first", 0, "Pin number behind bit 0")
	write := fset.String("write", "", "Write `value` to the port")
	read := fset.Bool("read", false, "Read the port as inputs")
	fset.DurationVar(&cfg.period, "toggle", 0, "Toggle between mask and 0 every `period`")
	fset.IntVar(&cfg.count, "count", 0, "Number of toggles (0 = until interrupted)")
	fset.BoolVar(&cfg.fake, "fake", false, "Use the in-memory HAL")
	fset.BoolVar(&cfg.verbose, "v", false, "Enable verbose logging")
	fset.BoolVar(&cfg.json, "json", false, "Output logs as JSON")

	if err := fset.Parse(args); err != nil {
		return cfg, err
	}

	set := make(map[string]bool)
	fset.Visit(func(f *flag.Flag) { set[f.Name] = true })

	dotenv, err := readEnvFile(*envFile, set["env"])
	if err != nil {
		return cfg, err
	}
	lookup := func(key string) (string, bool) {
		if v, ok := getenv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}

	if v, ok := lookup(envPort); ok && !set["port"] {
		cfg.port = v
	}
	if v, ok := lookup(envMask); ok && !set["mask"] {
		*mask = v
	}
	if v, ok := lookup(envPinPrefix); ok && !set["pin-prefix"] {
		cfg.pinPrefix = v
	}
	if v, ok := lookup(envPinFirst); ok && !set["pin-first"] {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", envPinFirst, err)
		}
		cfg.pinFirst = n
	}

	if cfg.mask, err = parseValue(*mask); err != nil {
		return cfg, fmt.Errorf("mask: %w", err)
	}

	modes := 0
	if set["write"] {
		modes++
		cfg.mode = modeWrite
		if cfg.value, err = parseValue(*write); err != nil {
			return cfg, fmt.Errorf("write: %w", err)
		}
	}
	if *read {
		modes++
		cfg.mode = modeRead
	}
	if cfg.period != 0 {
		modes++
		cfg.mode = modeToggle
		if cfg.period < 0 {
			return cfg, fmt.Errorf("toggle: negative period %s", cfg.period)
		}
	}
	if modes != 1 {
		return cfg, errUsage
	}
	if cfg.count < 0 {
		return cfg, fmt.Errorf("count: negative value %d", cfg.count)
	}
	return cfg, nil
}

// readEnvFile loads a dotenv file. A missing default file is not an error.
func readEnvFile(path string, explicit bool) (map[string]string, error) {
	env, err := godotenv.Read(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("env file: %w", err)
	}
	return env, nil
}

// parseValue accepts decimal, 0x hex, 0o octal or 0b binary 32-bit values.
func parseValue(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}
