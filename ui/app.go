package ui

import (
	"os"
	"runtime"

	"github.com/pkg/errors"

	"github.com/0ameyasr/mtfks/common"
	"github.com/0ameyasr/mtfks/scan"
	"github.com/0ameyasr/mtfks/search"
)

// Run performs one scan pass described by cfg and prints the summary.
// Partial failure (unreadable files, skipped subtrees) does not fail the
// run: the pass completes and reports what it could.
func Run(cfg Config) error {
	logger, err := common.NewLogger(cfg.Verbose)
	if err != nil {
		return errors.Wrap(err, "build logger")
	}
	defer func() { _ = logger.Sync() }()

	mode := search.ModeLiteral
	if cfg.Regexp {
		mode = search.ModeRegexp
	}
	matcher, err := search.Compile(cfg.Pattern, mode)
	if err != nil {
		return errors.Wrap(err, "configuration")
	}

	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}

	sink := scan.NewSink(os.Stdout, os.Stderr, cfg.NoColor)
	scanner := scan.NewScanner(matcher, sink, workers, logger)

	stats := scanner.Run(cfg.Root)
	sink.Summary(stats)

	return nil
}
