// Package prof captures CPU, heap and runtime-trace profiles of a run.
package prof

import (
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"

	"github.com/cockroachdb/errors"
)

// Paths names the profile files to write; empty entries are skipped.
type Paths struct {
	CPU   string
	Mem   string
	Trace string
}

// Session is a set of running profilers.
type Session struct {
	paths     Paths
	cpuFile   *os.File
	traceFile *os.File
	stopped   bool
}

// Start begins the profilers named by paths. On error nothing is left
// running.
func Start(paths Paths) (*Session, error) {
	s := &Session{paths: paths}
	if paths.CPU != "" {
		f, err := os.Create(paths.CPU)
		if err != nil {
			return nil, errors.Wrap(err, "create cpu profile")
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return nil, errors.Wrap(err, "start cpu profile")
		}
		s.cpuFile = f
	}
	if paths.Trace != "" {
		f, err := os.Create(paths.Trace)
		if err == nil {
			if err = trace.Start(f); err != nil {
				_ = f.Close()
			}
		}
		if err != nil {
			s.stopCPU()
			return nil, errors.Wrap(err, "start runtime trace")
		}
		s.traceFile = f
	}
	return s, nil
}

// Stop ends the profilers and writes the heap profile. Calling it again
// does nothing.
func (s *Session) Stop() error {
	if s == nil || s.stopped {
		return nil
	}
	s.stopped = true
	var errs error
	if s.traceFile != nil {
		trace.Stop()
		errs = errors.CombineErrors(errs, s.traceFile.Close())
		s.traceFile = nil
	}
	errs = errors.CombineErrors(errs, s.stopCPU())
	if s.paths.Mem != "" {
		errs = errors.CombineErrors(errs, writeHeap(s.paths.Mem))
	}
	return errs
}

func (s *Session) stopCPU() error {
	if s.cpuFile == nil {
		return nil
	}
	pprof.StopCPUProfile()
	err := s.cpuFile.Close()
	s.cpuFile = nil
	return err
}

func writeHeap(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create heap profile")
	}
	defer func() {
		err = errors.CombineErrors(err, f.Close())
	}()
	runtime.GC()
	return errors.Wrap(pprof.WriteHeapProfile(f), "write heap profile")
}
