// Package profilers implement helper functions to set up profiling for the programs.
//
// It only supports debugging, and otherwise has no functionality for the Pacman matches.
package profilers

import (
	"context"
	"flag"
	"fmt"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
	"net"
	"net/http"
	_ "net/http/pprof"
	"os"
	"runtime"
	"runtime/pprof"
)

// Profilers configures the HTTP profiler server and the CPU profile.
type Profilers struct {
	// HTTPPort where to serve /debug/pprof. If < 0 the server is not started, and 0 picks
	// any free port.
	HTTPPort int

	// CPUProfile is the file where to write the CPU profile. If empty there is no CPU profiling.
	CPUProfile string

	// KeepAlive makes Stop wait for the context to be cancelled (e.g. Ctrl+C) if the HTTP
	// profiler is running, so one can still read the profile after the program finished.
	KeepAlive bool

	ctx      context.Context
	listener net.Listener
	server   *http.Server
	cpuFile  *os.File
}

// AddFlags creates the flags -prof and -cpu_profile in fs (flag.CommandLine if nil), and
// returns the Profilers they configure.
func AddFlags(fs *flag.FlagSet) *Profilers {
	if fs == nil {
		fs = flag.CommandLine
	}
	p := &Profilers{KeepAlive: true}
	fs.IntVar(&p.HTTPPort, "prof", -1, "If set, runs the profile at the given port.")
	fs.StringVar(&p.CPUProfile, "cpu_profile", "", "write cpu profile to `file`")
	return p
}

// Start the configured profilers. It should be followed by a deferred call to Stop.
func (p *Profilers) Start(ctx context.Context) error {
	p.ctx = ctx
	if p.CPUProfile != "" {
		f, err := os.Create(p.CPUProfile)
		if err != nil {
			return errors.Wrap(err, "could not create CPU profile")
		}
		if err = pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return errors.Wrap(err, "could not start CPU profile")
		}
		p.cpuFile = f
	}
	if p.HTTPPort >= 0 {
		listener, err := net.Listen("tcp", fmt.Sprintf("localhost:%d", p.HTTPPort))
		if err != nil {
			return errors.Wrap(err, "could not start HTTP profiler")
		}
		p.listener = listener
		p.server = &http.Server{Handler: http.DefaultServeMux}
		fmt.Printf("Starting profiler on %s/debug/pprof\n", p.Addr())
		fmt.Printf("- You can access it with: $ go tool pprof %s/debug/pprof/heap\n", p.Addr())
		go func() {
			if err := p.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
				klog.Errorf("HTTP profiler failed: %+v", err)
			}
		}()
	}
	return nil
}

// Addr of the HTTP profiler, or "" if it is not running.
func (p *Profilers) Addr() string {
	if p.listener == nil {
		return ""
	}
	return p.listener.Addr().String()
}

// Stop the profilers: it flushes the CPU profile and closes the HTTP profiler, after waiting
// for the context to be done if KeepAlive is set.
func (p *Profilers) Stop() {
	if p.cpuFile != nil {
		pprof.StopCPUProfile()
		if err := p.cpuFile.Close(); err != nil {
			klog.Errorf("Failed to close CPU profile %q: %v", p.CPUProfile, err)
		}
		p.cpuFile = nil
	}
	if p.server == nil {
		return
	}
	if p.KeepAlive && p.ctx.Err() == nil {
		// Garbage collect, to see if there is anything leaking.
		for range 10 {
			runtime.GC()
		}
		fmt.Printf("- Program finished: kept alive with profiler opened at %s/debug/pprof\n", p.Addr())
		fmt.Printf("- Interrupt (Ctrl+C) to exit\n")
		<-p.ctx.Done()
		fmt.Printf("... exiting ...\n")
	}
	_ = p.server.Close()
	p.server, p.listener = nil, nil
}
