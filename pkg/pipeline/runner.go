package pipeline

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/idphoto/pkg/cache"
	"github.com/matzehuels/idphoto/pkg/catalog"
	"github.com/matzehuels/idphoto/pkg/layout"
	"github.com/matzehuels/idphoto/pkg/observability"
	"github.com/matzehuels/idphoto/pkg/render"
)

// Runner encapsulates pipeline execution with caching.
//
// Renderer carries the "newest request wins" state used by interactive and
// watch sessions. Multiple goroutines may share a Runner, but only requests
// whose results should supersede each other should share its Renderer;
// [Runner.ExecuteAll] therefore renders each paper on a private renderer.
type Runner struct {
	Catalog  *catalog.Catalog
	Renderer *render.Renderer
	Cache    cache.Cache
	Keyer    cache.Keyer
	Logger   *log.Logger
}

// NewRunner creates a runner.
// If cat is nil, the builtin catalog is used.
// If c is nil, a NullCache is used (caching disabled).
// If keyer is nil, a DefaultKeyer is used.
func NewRunner(cat *catalog.Catalog, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if cat == nil {
		cat = catalog.Builtin()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Catalog:  cat,
		Renderer: render.NewRenderer(),
		Cache:    c,
		Keyer:    keyer,
		Logger:   logger,
	}
}

// Plan resolves the catalog entries for opts and computes the layout plan.
// Unknown ids fall back to the catalog defaults with a warning.
func (r *Runner) Plan(ctx context.Context, opts Options) (Selection, layout.Plan, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return Selection{}, layout.Plan{}, fmt.Errorf("invalid options: %w", err)
	}
	sel, plan := r.plan(ctx, &opts)
	return sel, plan, nil
}

func (r *Runner) plan(ctx context.Context, opts *Options) (Selection, layout.Plan) {
	var sel Selection
	sel.Photo, sel.PhotoFound = r.Catalog.LookupPhoto(opts.Photo)
	sel.Paper, sel.PaperFound = r.Catalog.LookupPaper(opts.Paper)
	if !sel.PhotoFound {
		r.Logger.Warn("unknown photo size, using default", "id", opts.Photo, "default", sel.Photo.ID)
	}
	if !sel.PaperFound {
		r.Logger.Warn("unknown paper size, using default", "id", opts.Paper, "default", sel.Paper.ID)
	}

	plan := layout.Compute(sel.Photo.Size, sel.Paper.Size, opts.OrientationPolicy())
	observability.Render().OnPlan(ctx, observability.PlanEvent{
		Photo:   sel.Photo.ID,
		Paper:   sel.Paper.ID,
		Rows:    plan.Rows,
		Cols:    plan.Cols,
		Rotated: plan.IsRotated,
	})
	r.Logger.Debug("computed plan",
		"photo", sel.Photo.ID,
		"paper", sel.Paper.ID,
		"grid", plan.Summary(),
		"sheet", fmt.Sprintf("%dx%d", plan.ContainerWidth, plan.ContainerHeight))

	if plan.Empty() {
		r.Logger.Warn("photo does not fit on paper, sheet will be blank",
			"photo", sel.Photo.Size, "paper", sel.Paper.Size)
	}
	return sel, plan
}

// Execute runs the complete plan → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, src render.Source, opts Options) (*Result, error) {
	return r.execute(ctx, src, opts, r.Renderer)
}

func (r *Runner) execute(ctx context.Context, src render.Source, opts Options, rnd *render.Renderer) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if opts.JobID == "" {
		opts.JobID = uuid.NewString()
	}
	logger := r.Logger.With("job", shortID(opts.JobID))

	result := &Result{JobID: opts.JobID}

	// Stage 1: Plan
	planStart := time.Now()
	result.Selection, result.Plan = r.plan(ctx, &opts)
	result.Stats.PlanTime = time.Since(planStart)
	result.Stats.Tiles = result.Plan.TotalPhotos

	// Stage 2: Render (cached)
	renderStart := time.Now()
	sheet, hit, keyed, err := r.renderWithCache(ctx, src, result.Selection, result.Plan, opts, rnd)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo = CacheInfo{SheetHit: hit, Keyed: keyed}
	result.Sheet = sheet
	result.PNG = sheet.PNG()
	result.Stats.Bytes = len(result.PNG)
	result.Stats.Width, result.Stats.Height = sheet.Bounds().Dx(), sheet.Bounds().Dy()

	logger.Info("rendered sheet",
		"photo", result.Selection.Photo.ID,
		"paper", result.Selection.Paper.ID,
		"tiles", result.Stats.Tiles,
		"size", fmt.Sprintf("%dx%d", result.Stats.Width, result.Stats.Height),
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

func (r *Runner) renderWithCache(ctx context.Context, src render.Source, sel Selection, plan layout.Plan, opts Options, rnd *render.Renderer) (sheet *render.Sheet, hit, keyed bool, err error) {
	if src == nil {
		return nil, false, false, render.ErrNoImage
	}
	sourceKey := render.SourceKey(src)
	keyed = sourceKey != ""

	var cacheKey string
	if keyed {
		cacheKey = r.Keyer.SheetKey(sourceKey, opts.SheetKeyOpts(sel))
		if !opts.Refresh {
			if data, ok, err := r.Cache.Get(ctx, cacheKey); err == nil && ok {
				cached, err := render.SheetFromPNG(data, plan, opts.BackgroundColor(), opts.Scale)
				if err == nil {
					observability.Cache().OnCacheHit(ctx, "sheet")
					return cached, true, true, nil
				}
				// Undecodable entry - drop it and render again
				_ = r.Cache.Delete(ctx, cacheKey)
			}
			observability.Cache().OnCacheMiss(ctx, "sheet")
		}
	}

	sheet, err = rnd.Render(ctx, src, plan, opts.BackgroundColor(), opts.RenderOptions()...)
	if err != nil {
		return nil, false, keyed, err
	}

	if keyed {
		if err := r.Cache.Set(ctx, cacheKey, sheet.PNG(), cache.TTLSheet); err == nil {
			observability.Cache().OnCacheSet(ctx, "sheet", sheet.Size())
		}
	}
	return sheet, false, keyed, nil
}

// ExecuteAll renders src onto each of papers concurrently. Results are
// returned in the order of papers. The source is decoded once.
func (r *Runner) ExecuteAll(ctx context.Context, src render.Source, opts Options, papers []string) ([]*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if len(papers) == 0 {
		papers = []string{opts.Paper}
	}
	if src == nil {
		return nil, render.ErrNoImage
	}

	img, err := src.Decode(ctx)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	decoded := decodedSource{ImageSource: render.ImageSource{Image: img}, key: render.SourceKey(src)}

	results := make([]*Result, len(papers))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, paper := range papers {
		o := opts
		o.Paper = paper
		o.JobID = ""
		g.Go(func() error {
			res, err := r.execute(gctx, decoded, o, render.NewRenderer())
			if err != nil {
				return fmt.Errorf("paper %s: %w", paper, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// decodedSource is an already decoded image that keeps the cache identity
// of the source it came from.
type decodedSource struct {
	render.ImageSource
	key string
}

func (s decodedSource) Key() string { return s.key }

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
