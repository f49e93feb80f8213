// Package main provides the CLI entrypoint for ldtkgen.
//
// ldtkgen compiles an LDtk project file into a Go source file exposing the
// project as a lazily built, read-only *ldtk.Project:
//
//	ldtkgen [gen|check|dump] [flags]
//
//   - gen (default) loads, validates and writes the generated file
//   - check loads and validates only
//   - dump prints the mapped project
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"

	"ldtkgen/internal/compiler"
	"ldtkgen/internal/config"
	"ldtkgen/internal/watch"
)

const (
	exitOK    = 0
	exitFail  = 1
	exitUsage = 2
)

func main() {
	os.Exit(runWithArgs(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	command    string
	configPath string
	watch      bool
	verbose    bool
	overrides  *config.Config
	set        map[string]bool
}

func runWithArgs(args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}

		fmt.Fprintf(stderr, "ldtkgen: %v\n", err)

		return exitUsage
	}

	logger := newLogger(stderr, opts.verbose)

	cfg, err := opts.load()
	if err != nil {
		logger.Error(err)
		return exitFail
	}

	logEffective(logger, cfg)

	switch opts.command {
	case "check":
		res, err := compiler.New(cfg, logger).Check()
		if err != nil {
			logger.Error(err)
			return exitFail
		}

		logger.Infof("%s: ok (%d warnings)", cfg.Input, len(res.Diagnostics.Warnings))
	case "dump":
		p, err := compiler.New(cfg, logger).Load()
		if err != nil {
			logger.Error(err)
			return exitFail
		}

		dumper := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}
		dumper.Fdump(stdout, p)
	default:
		if opts.watch {
			return watchLoop(opts, cfg, logger)
		}

		if _, err := compiler.New(cfg, logger).Build(); err != nil {
			logger.Error(err)
			return exitFail
		}
	}

	return exitOK
}

// newLogger logs to stderr as text; verbose enables debug output and
// timestamps.
func newLogger(stderr io.Writer, verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(stderr)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableQuote:     true,
		DisableTimestamp: !verbose,
		FullTimestamp:    true,
	})

	logger.SetLevel(logrus.InfoLevel)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	return logger
}

// logEffective logs cfg as YAML, after flag overrides, at debug level.
func logEffective(logger *logrus.Logger, cfg *config.Config) {
	if !logger.IsLevelEnabled(logrus.DebugLevel) {
		return
	}

	out, err := config.Marshal(cfg)
	if err != nil {
		logger.Debugf("effective config: %v", err)
		return
	}

	logger.Debugf("effective config:\n%s", out)
}

func parseArgs(args []string, stderr io.Writer) (*options, error) {
	opts := &options{command: "gen", overrides: &config.Config{}, set: make(map[string]bool)}

	if len(args) > 0 && len(args[0]) > 0 && args[0][0] != '-' {
		opts.command = args[0]
		args = args[1:]
	}

	switch opts.command {
	case "gen", "check", "dump":
	default:
		return nil, fmt.Errorf("unknown command %q (want gen, check or dump)", opts.command)
	}

	o := opts.overrides
	fs := flag.NewFlagSet("ldtkgen "+opts.command, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "path to an ldtkgen.yaml config file")
	fs.StringVar(&o.Input, "in", "", "LDtk project file")
	fs.StringVar(&o.Output, "out", "", "generated Go file")
	fs.StringVar(&o.Package, "pkg", "", "package name of the generated file")
	fs.StringVar(&o.Func, "func", "", "name of the exported accessor")
	fs.StringVar(&o.Var, "var", "", "name of the package-level singleton")
	fs.StringVar(&o.Model, "model", "", "import path of the ldtk model package")
	fs.StringVar((*string)(&o.Mode), "validate", "", "validation mode: strict, warn or off")
	fs.BoolVar(&o.CheckFieldTypes, "check-field-types", false, "warn when field values disagree with their declared type")
	fs.BoolVar(&opts.watch, "watch", false, "regenerate whenever the input changes")
	fs.BoolVar(&opts.verbose, "v", false, "verbose logging")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: ldtkgen [gen|check|dump] [flags]\n\nFlags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })

	if opts.watch && opts.command != "gen" {
		return nil, errors.New("-watch only applies to gen")
	}

	return opts, nil
}

// load reads the config file, if any, and applies flags on top of it.
func (opts *options) load() (*config.Config, error) {
	cfg := config.Default()

	if opts.configPath != "" {
		var err error
		if cfg, err = config.LoadFile(opts.configPath); err != nil {
			return nil, err
		}
	}

	o := opts.overrides
	for name, apply := range map[string]func(){
		"in":                func() { cfg.Input = o.Input },
		"out":               func() { cfg.Output = o.Output },
		"pkg":               func() { cfg.Package = o.Package },
		"func":              func() { cfg.Func = o.Func },
		"var":               func() { cfg.Var = o.Var },
		"model":             func() { cfg.Model = o.Model },
		"validate":          func() { cfg.Mode = o.Mode },
		"check-field-types": func() { cfg.CheckFieldTypes = o.CheckFieldTypes },
	} {
		if opts.set[name] {
			apply()
		}
	}

	check := cfg.ValidateSource
	if opts.command == "gen" {
		check = cfg.Validate
	}

	if err := check(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// watchLoop builds once, then rebuilds after every change to the input or
// the config file until interrupted. Failed builds are logged, not fatal.
func watchLoop(opts *options, cfg *config.Config, logger *logrus.Logger) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	files := []string{cfg.Input}
	if opts.configPath != "" {
		files = append(files, opts.configPath)
	}

	w, err := watch.NewWatcher(watch.DefaultDebounce, files...)
	if err != nil {
		logger.Errorf("watch: %v", err)
		return exitFail
	}
	defer w.Close()

	s := newWatchSession(opts, cfg, logger)
	s.build()
	logger.Infof("watching %s", filepath.Base(cfg.Input))

	return s.run(ctx, w.Events, w.Errors)
}

// watchSession holds the state a watch loop carries between rebuilds.
type watchSession struct {
	opts      *options
	cfg       *config.Config
	logger    *logrus.Logger
	configAbs string
}

func newWatchSession(opts *options, cfg *config.Config, logger *logrus.Logger) *watchSession {
	s := &watchSession{opts: opts, cfg: cfg, logger: logger}
	if opts.configPath != "" {
		s.configAbs, _ = filepath.Abs(opts.configPath)
	}

	return s
}

func (s *watchSession) run(ctx context.Context, events <-chan string, errs <-chan error) int {
	for {
		select {
		case <-ctx.Done():
			return exitOK
		case name, ok := <-events:
			if !ok {
				return exitOK
			}

			s.changed(name)
		case err, ok := <-errs:
			if !ok {
				return exitOK
			}

			s.logger.Errorf("watch: %v", err)
		}
	}
}

// changed reloads the config when name is the config file, then rebuilds.
// A config that fails to load keeps the previous one and skips the build.
func (s *watchSession) changed(name string) {
	if s.configAbs != "" && name == s.configAbs {
		next, err := s.opts.load()
		if err != nil {
			s.logger.Error(err)
			return
		}

		// The watched set is fixed; a moved input needs a restart.
		if next.Input != s.cfg.Input {
			s.logger.Warnf("input changed to %s; restart to watch it", next.Input)
		}

		s.cfg = next
		logEffective(s.logger, s.cfg)
	}

	s.build()
}

func (s *watchSession) build() {
	if _, err := compiler.New(s.cfg, s.logger).Build(); err != nil {
		s.logger.Error(err)
	}
}
