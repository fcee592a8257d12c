package internal

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/pprof"
	"os"
	"sync"
	"syscall"
	"time"

	"github.com/oklog/run"
	"pratdiff/internal/configuration"
	"pratdiff/internal/diff"
	"pratdiff/internal/files"
	"pratdiff/internal/logging"
	"pratdiff/internal/printer"
	"pratdiff/internal/ui"
	"pratdiff/internal/util"
	"pratdiff/internal/zfs"
)

// Options of a single invocation, resolved from flags and configuration
type Options struct {
	Lhs string
	Rhs string
	// Snapshot compares Rhs as captured in the named ZFS snapshot with the live Rhs, Lhs is
	// ignored
	Snapshot     string
	Context      int
	Algorithm    diff.Algorithm
	Color        bool
	VerbosePaths bool
	MaxLines     int
	Interactive  bool
	Watch        bool

	Output io.Writer
	Stdin  io.Reader
}

// RunApplication compares the inputs and reports whether they differ
func RunApplication(ctx context.Context, opts Options) (bool, error) {
	if opts.Snapshot != "" {
		snapshotPath, err := zfs.SnapshotPath(opts.Rhs, opts.Snapshot)
		if err != nil {
			return false, err
		}
		logging.Debug("Comparing %s with %s", snapshotPath, opts.Rhs)
		opts.Lhs = snapshotPath
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Watch && (opts.Lhs == files.StdinPath || opts.Rhs == files.StdinPath) {
		return false, errors.New("cannot watch standard input")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	r := newRenderer(opts)

	var g run.Group
	{
		if configuration.CurrentConfig.Profiling.Enabled {
			addProfilingServer(ctx, &g)
		}
	}
	if opts.Watch || opts.Interactive {
		g.Add(run.SignalHandler(ctx, os.Interrupt, syscall.SIGTERM))
	}
	switch {
	case opts.Interactive:
		addViewer(ctx, &g, r, opts)
	case opts.Watch:
		addWatcher(ctx, &g, r, opts)
	default:
		g.Add(func() error {
			_, err := r.render(opts.Output)
			return err
		}, func(err error) {
			cancel()
		})
	}

	err := g.Run()
	var signalErr run.SignalError
	if errors.As(err, &signalErr) {
		logging.Debug("Received %s, exiting", signalErr.Signal)
		err = nil
	}
	return r.differs(), err
}

// renderer runs the comparison and renders it, possibly repeatedly
type renderer struct {
	opts   Options
	styles printer.Styles
	prefix string

	lock    sync.Mutex
	reader  *files.Reader
	changed bool
}

func newRenderer(opts Options) *renderer {
	styles := printer.PlainStyles()
	if opts.Color {
		styles = printer.SimpleStyles()
	}
	prefix := ""
	if !opts.VerbosePaths && opts.Lhs != files.StdinPath && opts.Rhs != files.StdinPath {
		prefix = util.CommonPathPrefix(opts.Lhs, opts.Rhs)
	}
	return &renderer{
		opts:   opts,
		styles: styles,
		prefix: prefix,
		reader: &files.Reader{Stdin: opts.Stdin},
	}
}

// render writes the comparison to w and returns the rows of the hunk headers
func (r *renderer) render(w io.Writer) ([]int, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	p := printer.New(w, r.opts.Context,
		printer.WithStyles(r.styles),
		printer.WithAlgorithm(r.opts.Algorithm),
		printer.WithCommonPrefix(r.prefix),
	)
	differ := files.NewDiffer(p, r.reader, r.opts.MaxLines)
	changed, err := differ.DiffPaths(r.opts.Lhs, r.opts.Rhs)
	r.changed = changed
	return p.HunkRows(), err
}

func (r *renderer) differs() bool {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.changed
}

// addWatcher renders once and again whenever one of the inputs changes, until interrupted
func addWatcher(ctx context.Context, g *run.Group, r *renderer, opts Options) {
	ctx, cancel := context.WithCancel(ctx)
	watcher := util.NewFileWatcher(opts.Lhs, opts.Rhs)
	g.Add(func() error {
		if _, err := r.render(opts.Output); err != nil {
			return err
		}
		if ctx.Err() != nil {
			// interrupted while rendering
			return nil
		}
		err := watcher.Watch(func(name string) {
			_, _ = fmt.Fprintf(opts.Output, "\n==> %s changed at %s\n\n", name, time.Now().Format(time.TimeOnly))
			if _, err := r.render(opts.Output); err != nil {
				logging.Error("Unable to compare %s and %s: %v", opts.Lhs, opts.Rhs, err)
			}
		})
		if err != nil {
			return fmt.Errorf("unable to watch inputs: %w", err)
		}
		logging.Debug("Watching %s and %s for changes...", opts.Lhs, opts.Rhs)
		<-ctx.Done()
		return nil
	}, func(err error) {
		cancel()
		watcher.Stop()
	})
}

// addViewer shows the rendered diff in a pager, refreshed on changes in watch mode
func addViewer(ctx context.Context, g *run.Group, r *renderer, opts Options) {
	title := fmt.Sprintf("%s vs %s", opts.Lhs, opts.Rhs)
	viewer := ui.NewDiffViewer(title)
	watcher := util.NewFileWatcher(opts.Lhs, opts.Rhs)

	g.Add(func() error {
		var buf bytes.Buffer
		hunkRows, err := r.render(&buf)
		if err != nil {
			return err
		}
		viewer.SetContent(buf.String(), hunkRows)

		if opts.Watch {
			err := watcher.Watch(func(name string) {
				logging.Debug("%s changed, refreshing", name)
				var buf bytes.Buffer
				hunkRows, err := r.render(&buf)
				if err != nil {
					logging.Error("Unable to compare %s and %s: %v", opts.Lhs, opts.Rhs, err)
					return
				}
				viewer.UpdateContent(buf.String(), hunkRows)
			})
			if err != nil {
				return fmt.Errorf("unable to watch inputs: %w", err)
			}
		}

		// the pager owns the terminal
		logging.SetOutput(io.Discard)
		defer logging.SetOutput(os.Stderr)
		return viewer.Run()
	}, func(err error) {
		watcher.Stop()
		viewer.Stop()
	})
}

func addProfilingServer(ctx context.Context, g *run.Group) {
	ctx, cancel := context.WithCancel(ctx)
	g.Add(func() error {
		mux := http.NewServeMux()
		mux.HandleFunc("/debug/pprof/", pprof.Index)
		mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

		profilingConfig := configuration.CurrentConfig.Profiling
		address := fmt.Sprintf("%s:%d", profilingConfig.Host, profilingConfig.Port)
		server := &http.Server{Addr: address, Handler: mux}
		go func() {
			logging.Info("Starting profiling webserver on %s...", address)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logging.Error("Error running profiling webserver: %v", err)
			}
		}()

		<-ctx.Done()
		logging.Info("Stopping profiling webserver...")
		return server.Close()
	}, func(err error) {
		cancel()
	})
}
