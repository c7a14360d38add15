// Command qmlnet-probe bootstraps the native QmlNet library and prints how
// it was found and bound.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/crgimenes/qmlnet"
)

func main() {
	var (
		configPath  = flag.String("config", "", "Path to a TOML config file")
		library     = flag.String("lib", "", "Logical library name or library file path")
		dirs        = flag.String("dirs", "", "Extra search directories (comma-separated)")
		processExp  = flag.Bool("process-exports", false, "Use the executable's own exports when present")
		fingerprint = flag.Bool("fingerprint", false, "Print a digest of the loaded library")
		verbose     = flag.Bool("v", false, "Debug logging")
	)
	flag.Parse()

	cfg := qmlnet.Config{}
	if *configPath != "" {
		c, err := qmlnet.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cfg = c
	}
	if *library != "" {
		cfg.Library = *library
	}
	if *dirs != "" {
		cfg.SearchDirs = append(cfg.SearchDirs, strings.Split(*dirs, ",")...)
	}
	cfg.ProcessExports = cfg.ProcessExports || *processExp
	cfg.Fingerprint = cfg.Fingerprint || *fingerprint
	if *verbose {
		cfg.LogLevel = "debug"
	}

	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()
	qmlnet.SetLogger(log)

	reg, err := qmlnet.Init(cfg.Options()...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	styled := term.IsTerminal(int(os.Stdout.Fd()))
	fmt.Print(renderReport(reg.Report(), styled))
}

func newLogger(level string) (*zap.Logger, error) {
	lvl := zapcore.WarnLevel
	if level != "" {
		parsed, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		lvl = parsed
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}
