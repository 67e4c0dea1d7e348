package melt

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Stage names the pipeline step a failure belongs to
type Stage string

const (
	StageScan     Stage = "scan"
	StageRegister Stage = "register"
	StageInject   Stage = "inject"
	StageRoute    Stage = "route"
)

// Failure is a reported, non-fatal pipeline failure. The affected unit
// (type, field or route) is skipped and the pipeline continues.
type Failure struct {
	Stage   Stage
	Subject string // namespace, qualified type name, bean name or route key
	Detail  string // field name, dependency type or handler name
	Err     error
}

// Error implements the error interface
func (f *Failure) Error() string {
	if f.Detail == "" {
		return fmt.Sprintf("%s %s: %v", f.Stage, f.Subject, f.Err)
	}
	return fmt.Sprintf("%s %s (%s): %v", f.Stage, f.Subject, f.Detail, f.Err)
}

// Unwrap returns the underlying cause
func (f *Failure) Unwrap() error {
	return f.Err
}

// Reporter receives every pipeline failure exactly once
type Reporter interface {
	Report(f *Failure)
}

// ReporterFunc adapts a function to the Reporter interface
type ReporterFunc func(f *Failure)

// Report calls fn(f)
func (fn ReporterFunc) Report(f *Failure) {
	fn(f)
}

// Collector keeps every reported failure in order
type Collector struct {
	mu       sync.Mutex
	failures []*Failure
}

// Report records f
func (c *Collector) Report(f *Failure) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failures = append(c.failures, f)
}

// Failures returns a copy of all recorded failures
func (c *Collector) Failures() []*Failure {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*Failure(nil), c.failures...)
}

// ByStage returns the recorded failures of one stage
func (c *Collector) ByStage(stage Stage) []*Failure {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []*Failure
	for _, f := range c.failures {
		if f.Stage == stage {
			out = append(out, f)
		}
	}
	return out
}

// logReporter writes failures to a zap logger at warn level
type logReporter struct {
	logger *zap.Logger
}

// NewLogReporter returns a Reporter that logs through logger
func NewLogReporter(logger *zap.Logger) Reporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &logReporter{logger: logger}
}

func (r *logReporter) Report(f *Failure) {
	fields := []zap.Field{
		zap.String("stage", string(f.Stage)),
		zap.String("subject", f.Subject),
		zap.Error(f.Err),
	}
	if f.Detail != "" {
		fields = append(fields, zap.String("detail", f.Detail))
	}
	r.logger.Warn("melt: "+string(f.Stage)+" failure", fields...)
}

type multiReporter []Reporter

func (m multiReporter) Report(f *Failure) {
	for _, r := range m {
		r.Report(f)
	}
}

// MultiReporter fans a failure out to every reporter in order
func MultiReporter(reporters ...Reporter) Reporter {
	var out multiReporter
	for _, r := range reporters {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}

// nopReporter drops failures
type nopReporter struct{}

func (nopReporter) Report(*Failure) {}

func orNop(r Reporter) Reporter {
	if r == nil {
		return nopReporter{}
	}
	return r
}
