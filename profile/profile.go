// Package profile selects between the Gio frame timer and pkg/profile
// runtime profiles behind one api.
package profile

import (
	"fmt"
	"strings"

	"gioui.org/layout"
	"gioui.org/x/profiling"
	"github.com/pkg/profile"
	"go.uber.org/zap"
)

// Opt names a kind of profile. It implements the flag.Value and
// pflag.Value interfaces.
type Opt string

const (
	None      Opt = "none"
	CPU       Opt = "cpu"
	Memory    Opt = "mem"
	Block     Opt = "block"
	Goroutine Opt = "goroutine"
	Mutex     Opt = "mutex"
	Trace     Opt = "trace"
	Gio       Opt = "gio"
)

// Opts lists every profile kind.
var Opts = []Opt{None, CPU, Memory, Block, Goroutine, Mutex, Trace, Gio}

func (p *Opt) String() string { return string(*p) }

// Set validates and sets the profile kind.
func (p *Opt) Set(s string) error {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, o := range Opts {
		if string(o) == s {
			*p = o
			return nil
		}
	}
	if s == "" {
		*p = None
		return nil
	}
	return fmt.Errorf("profile: unknown kind %q, want one of %v", s, Opts)
}

func (p *Opt) Type() string { return "profile" }

// Profiler runs one kind of profile.
type Profiler struct {
	Type     Opt
	starter  func(p *profile.Profile)
	stopper  func()
	recorder func(gtx layout.Context)
	logger   *zap.Logger
}

// NewProfiler returns a profiler of kind p. A nil logger is silent.
func (p Opt) NewProfiler(logger *zap.Logger) *Profiler {
	if logger == nil {
		logger = zap.NewNop()
	}
	pf := &Profiler{Type: p, logger: logger}
	switch p {
	case CPU:
		pf.starter = profile.CPUProfile
	case Memory:
		pf.starter = profile.MemProfile
	case Block:
		pf.starter = profile.BlockProfile
	case Goroutine:
		pf.starter = profile.GoroutineProfile
	case Mutex:
		pf.starter = profile.MutexProfile
	case Trace:
		pf.starter = profile.TraceProfile
	case Gio:
		var recorder *profiling.CSVTimingRecorder
		pf.starter = func(*profile.Profile) {
			var err error
			recorder, err = profiling.NewRecorder(nil)
			if err != nil {
				logger.Warn("starting gio profiler", zap.Error(err))
			}
		}
		pf.stopper = func() {
			if recorder == nil {
				return
			}
			if err := recorder.Stop(); err != nil {
				logger.Warn("stopping gio profiler", zap.Error(err))
			}
		}
		pf.recorder = func(gtx layout.Context) {
			if recorder != nil {
				recorder.Profile(gtx)
			}
		}
	}
	return pf
}

// Start profiling. Runtime profiles are written to the working directory.
func (pf *Profiler) Start() {
	switch {
	case pf.starter == nil:
	case pf.Type == Gio:
		pf.starter(nil)
	default:
		pf.stopper = profile.Start(pf.starter, profile.ProfilePath("."), profile.Quiet).Stop
	}
	pf.logger.Debug("profiling", zap.String("type", string(pf.Type)))
}

// Stop profiling.
func (pf *Profiler) Stop() {
	if pf.stopper != nil {
		pf.stopper()
	}
}

// Record the timings of a frame.
func (pf *Profiler) Record(gtx layout.Context) {
	if pf.recorder != nil {
		pf.recorder(gtx)
	}
}
