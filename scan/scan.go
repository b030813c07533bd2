package scan

import (
	"os"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/0ameyasr/mtfks/search"
)

// Scanner owns one scan pass over a directory tree: a single walker feeds
// the queue while a fixed pool of workers drains it and applies the matcher.
// All shared state (queue, counter, sink) lives on the Scanner, so multiple
// scans can run in one process without stepping on each other.
type Scanner struct {
	queue   *TaskQueue
	sink    *Sink
	match   search.Matcher
	workers int

	// scanned counts regular files the pool attempted to read.
	scanned atomic.Uint64

	logger *zap.Logger
}

// Stats summarizes a finished pass.
type Stats struct {
	Scanned uint64
	Elapsed time.Duration
}

func NewScanner(match search.Matcher, sink *Sink, workers int, logger *zap.Logger) *Scanner {
	if workers <= 0 {
		workers = 1
	}
	return &Scanner{
		queue:   NewTaskQueue(),
		sink:    sink,
		match:   match,
		workers: workers,
		logger:  logger,
	}
}

// Run walks the tree under root and returns once every discovered entry has
// been examined. Per-file failures go to the sink and never stop the pass;
// a failed traversal is reported the same way and the workers still drain
// whatever was enqueued before the failure.
func (s *Scanner) Run(root string) Stats {
	start := time.Now()

	s.logger.Info("starting scan", zap.String("root", root), zap.Int("workers", s.workers))

	wg := errgroup.Group{}
	for i := 0; i < s.workers; i++ {
		wg.Go(func() error {
			s.drain()
			return nil
		})
	}

	// The walker runs on the calling goroutine. One producer is enough to
	// keep the pool busy: file I/O in the workers dominates.
	err := Walk(root, s.queue)
	if err != nil {
		s.sink.WalkError(err)
	}
	s.queue.Close()

	_ = wg.Wait()

	st := Stats{Scanned: s.scanned.Load(), Elapsed: time.Since(start)}
	s.logger.Info("scan finished",
		zap.Uint64("scanned", st.Scanned),
		zap.Duration("elapsed", st.Elapsed),
	)
	return st
}

// drain is one worker's loop: pop until the queue reports end of input.
func (s *Scanner) drain() {
	for {
		path, ok := s.queue.Pop()
		if !ok {
			return
		}
		s.examine(path)
	}
}

// examine processes a single task. Only regular files are read; directories,
// symlinks and special files are discovered by the walker but skipped here.
func (s *Scanner) examine(path string) {
	fi, err := os.Lstat(path)
	if err != nil {
		// the entry vanished between discovery and processing
		s.sink.FileError(path, err)
		return
	}
	if !fi.Mode().IsRegular() {
		return
	}

	s.scanned.Add(1)

	// Whole-file read: matching is done in one pass over memory.
	// Simple and fast for source trees and logs, a scaling limit for
	// files that do not fit in RAM.
	contents, err := os.ReadFile(path)
	if err != nil {
		s.sink.FileError(path, err)
		return
	}

	if s.match(contents) {
		s.sink.Match(path)
	}
}
