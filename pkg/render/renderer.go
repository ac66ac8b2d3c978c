package render

import (
	"context"
	"image/color"
	"slices"
	"sync"
	"time"

	"github.com/matzehuels/idphoto/pkg/errors"
	"github.com/matzehuels/idphoto/pkg/layout"
	"github.com/matzehuels/idphoto/pkg/observability"
)

// ErrStale is returned by [Renderer.Render] when a newer request was
// submitted before the render finished.
var ErrStale = errors.New(errors.ErrCodeResourceUnavailable, "render superseded by a newer request")

// Completion reports the outcome of one submitted render.
type Completion struct {
	Seq      uint64
	Sheet    *Sheet // nil when Err is set or the completion is stale
	Stale    bool
	Err      error
	Duration time.Duration
}

// Renderer runs renders asynchronously and keeps the newest result.
//
// Requests are numbered in submission order. Only the completion of the
// newest submitted request may replace [Renderer.Latest]; older completions
// are reported with Stale set and their sheet is dropped.
type Renderer struct {
	opts []Option

	mu        sync.Mutex
	submitted uint64
	latest    *Sheet
}

// NewRenderer creates a renderer whose drawing passes use opts.
func NewRenderer(opts ...Option) *Renderer {
	return &Renderer{opts: opts}
}

// Submit starts rendering src according to plan and returns a channel that
// receives exactly one Completion. Per-call opts are applied after the
// renderer's own.
func (r *Renderer) Submit(ctx context.Context, src Source, plan layout.Plan, bg color.Color, opts ...Option) <-chan Completion {
	r.mu.Lock()
	r.submitted++
	seq := r.submitted
	r.mu.Unlock()

	done := make(chan Completion, 1)
	go func() {
		defer close(done)
		done <- r.run(ctx, seq, src, plan, bg, opts)
	}()
	return done
}

// Render submits a request and waits for it. It returns [ErrStale] if a
// newer request overtook this one.
func (r *Renderer) Render(ctx context.Context, src Source, plan layout.Plan, bg color.Color, opts ...Option) (*Sheet, error) {
	c := <-r.Submit(ctx, src, plan, bg, opts...)
	switch {
	case c.Err != nil:
		return nil, c.Err
	case c.Stale:
		return nil, ErrStale
	}
	return c.Sheet, nil
}

// Latest returns the newest published sheet, or nil.
func (r *Renderer) Latest() *Sheet {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.latest
}

// Submitted returns the sequence number of the newest submitted request.
func (r *Renderer) Submitted() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.submitted
}

func (r *Renderer) newest(seq uint64) (uint64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.submitted, seq == r.submitted
}

func (r *Renderer) run(ctx context.Context, seq uint64, src Source, plan layout.Plan, bg color.Color, opts []Option) Completion {
	hooks := observability.Render()
	start := time.Now()
	hooks.OnRenderStart(ctx, seq)

	c := Completion{Seq: seq}
	finish := func() Completion {
		c.Duration = time.Since(start)
		hooks.OnRenderComplete(ctx, seq, c.Duration, c.Err)
		return c
	}
	stale := func(latest uint64) Completion {
		c.Stale = true
		c.Duration = time.Since(start)
		hooks.OnRenderStale(ctx, seq, latest)
		return c
	}

	if src == nil {
		c.Err = ErrNoImage
		return finish()
	}
	img, err := src.Decode(ctx)
	if err != nil {
		c.Err = err
		return finish()
	}
	if err := ctx.Err(); err != nil {
		c.Err = err
		return finish()
	}
	// Skip the drawing pass entirely when the result could never be shown.
	if latest, ok := r.newest(seq); !ok {
		return stale(latest)
	}

	all := append(slices.Clone(r.opts), opts...)
	rgba, err := Draw(img, plan, bg, all...)
	if err != nil {
		c.Err = err
		return finish()
	}
	sheet, err := NewSheet(rgba, plan, bg, newDrawConfig(all).scale)
	if err != nil {
		c.Err = err
		return finish()
	}
	sheet.Seq = seq

	r.mu.Lock()
	latest := r.submitted
	if seq == latest {
		r.latest = sheet
	}
	r.mu.Unlock()
	if seq != latest {
		return stale(latest)
	}

	c.Sheet = sheet
	return finish()
}
