package cli

import (
	"context"
	stderrors "errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	idperrors "github.com/matzehuels/idphoto/pkg/errors"
	"github.com/matzehuels/idphoto/pkg/export"
	"github.com/matzehuels/idphoto/pkg/pipeline"
	"github.com/matzehuels/idphoto/pkg/render"
)

// watchDebounce coalesces the bursts of events editors emit for one save.
const watchDebounce = 150 * time.Millisecond

// watchCommand creates the watch command, which re-renders on every change.
func (c *CLI) watchCommand() *cobra.Command {
	var (
		flags  optionFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "watch <photo>",
		Short: "Re-render the sheet whenever the photo changes",
		Long: `Render the sheet, then watch the photo and render again every time it is
saved. Each save starts a new render; a render that is overtaken by a newer
one is discarded, so the output always reflects the latest photo.

Stop with Ctrl+C.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				output = filepath.Join(c.outDir(""), "sheet.png")
			}
			return c.runWatch(cmd.Context(), args[0], flags, output)
		},
	}

	flags.register(cmd, true)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, overwritten on every render (default: sheet.png in the out dir)")

	return cmd
}

func (c *CLI) runWatch(ctx context.Context, input string, flags optionFlags, output string) error {
	runner := c.newRunner(flags.noCache)
	defer runner.Close()

	opts := c.options(flags.opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	target, err := filepath.Abs(input)
	if err != nil {
		return idperrors.Wrap(idperrors.ErrCodeInvalidPath, err, "resolve %s", input)
	}
	logger := loggerFromContext(ctx)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return idperrors.Wrap(idperrors.ErrCodeResourceUnavailable, err, "start file watcher")
	}
	defer w.Close()

	// Watch the directory: many editors replace the file instead of writing it.
	if err := w.Add(filepath.Dir(target)); err != nil {
		return idperrors.Wrap(idperrors.ErrCodeInvalidPath, err, "watch %s", filepath.Dir(target))
	}

	sw := &sheetWriter{path: output}
	var (
		wg  sync.WaitGroup
		seq atomic.Uint64
	)
	trigger := func() {
		n := seq.Add(1)
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := runner.Execute(ctx, render.FileSource{Path: target}, opts)
			switch {
			case ctx.Err() != nil:
			case stderrors.Is(err, render.ErrStale):
				logger.Debug("discarding superseded render", "request", n)
			case err != nil:
				printError("%s", idperrors.UserMessage(err))
			default:
				written, err := sw.write(n, res)
				if err != nil {
					printError("%s", idperrors.UserMessage(err))
				} else if written {
					printSuccess("Updated %s %s", output, StyleDim.Render(res.Plan.Summary()))
				}
			}
		}()
	}

	printInfo("Watching %s %s", input, StyleDim.Render("(Ctrl+C to stop)"))
	trigger()
	err = watchLoop(ctx, w.Events, w.Errors, target, watchDebounce, trigger, logger)
	wg.Wait()
	if err != nil {
		return err
	}
	printNewline()
	printInfo("Stopped watching")
	return nil
}

// watchLoop calls trigger once per burst of write or create events on
// target until ctx is done or the watcher closes.
func watchLoop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error, target string, debounce time.Duration, trigger func(), logger *log.Logger) error {
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			logger.Debug("photo changed", "op", ev.Op.String())
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			trigger()
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			logger.Warn("file watcher error", "err", err)
		}
	}
}

// sheetWriter writes watch results to one path, never letting an older
// request overwrite a newer one.
type sheetWriter struct {
	mu   sync.Mutex
	path string
	last uint64
}

func (w *sheetWriter) write(seq uint64, res *pipeline.Result) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if seq <= w.last {
		return false, nil
	}
	if _, err := export.Write(filepath.Dir(w.path), filepath.Base(w.path), res.PNG); err != nil {
		return false, err
	}
	w.last = seq
	return true, nil
}
