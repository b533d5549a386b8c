package roi

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"sort"
	"sync"

	"github.com/microvis/roi/internal/clip"
	"github.com/microvis/roi/internal/parallel"
)

var (
	// ErrNonFiniteTransform rejects pixel queries whose transform
	// contains NaN or infinite coefficients.
	ErrNonFiniteTransform = errors.New("roi: non-finite query transform")

	// ErrSingularTransform rejects pixel queries whose transform
	// collapses the grid to zero area.
	ErrSingularTransform = errors.New("roi: singular query transform")

	// ErrRectOutOfGrid rejects query rectangles that are inverted or
	// extend beyond the pixel grid.
	ErrRectOutOfGrid = errors.New("roi: rectangle outside pixel grid")
)

// Pixel is an integer pixel coordinate, origin top-left, y down.
type Pixel struct {
	X, Y int
}

// PixelRect is the half-open rectangle [From.X, To.X) x [From.Y, To.Y).
type PixelRect struct {
	From, To Pixel
}

// Rect builds the half-open rectangle [x0,x1) x [y0,y1).
func Rect(x0, y0, x1, y1 int) PixelRect {
	return PixelRect{From: Pixel{X: x0, Y: y0}, To: Pixel{X: x1, Y: y1}}
}

// Width returns the pixel count along x.
func (r PixelRect) Width() int { return r.To.X - r.From.X }

// Height returns the pixel count along y.
func (r PixelRect) Height() int { return r.To.Y - r.From.Y }

// Empty reports whether the rectangle contains no pixels.
func (r PixelRect) Empty() bool { return r.Width() <= 0 || r.Height() <= 0 }

// NumPixels returns the number of pixels covered.
func (r PixelRect) NumPixels() int {
	if r.Empty() {
		return 0
	}
	return r.Width() * r.Height()
}

// PixelQuery describes a target pixel grid and its placement in
// annotation world space. Transform maps pixel coordinates (origin
// top-left, y down; a pixel (x, y) owns the unit cell with corners
// (x, y) and (x+1, y+1)) into the coordinate space the annotation
// geometry lives in.
type PixelQuery struct {
	Width, Height int
	Transform     Matrix
}

// FullRect returns the rectangle covering the whole grid.
func (q PixelQuery) FullRect() PixelRect {
	return Rect(0, 0, q.Width, q.Height)
}

func (q PixelQuery) validate(rect PixelRect) error {
	if !q.Transform.IsFinite() {
		return ErrNonFiniteTransform
	}
	if q.Transform.IsSingular() {
		return ErrSingularTransform
	}
	if rect.From.X < 0 || rect.From.Y < 0 || rect.To.X > q.Width || rect.To.Y > q.Height ||
		rect.From.X > rect.To.X || rect.From.Y > rect.To.Y {
		return fmt.Errorf("%w: %+v in %dx%d", ErrRectOutOfGrid, rect, q.Width, q.Height)
	}
	return nil
}

// outsideEps is the relative area tolerance separating genuine
// coverage from the sliver noise of fixed-point snapping in the
// clipping layer. A difference within outsideEps of zero counts as
// full coverage; within outsideEps of the whole quad as no coverage.
const outsideEps = 1e-6

// Membership returns the pixels of rect whose unit cells lie inside
// geom once mapped through q.Transform, sorted row-major.
//
// The grid is resolved by adaptive subdivision: each rectangle's
// world-space quadrilateral is tested with one polygon difference
// against the geometry, resolving it wholesale as fully covered or
// fully clear; only boundary-straddling rectangles split further, down
// to single cells decided by majority coverage. Subdivision runs on an
// explicit work stack and, for large queries, fans out across a
// work-stealing worker pool; results are deterministic regardless of
// scheduling.
//
// geom must be a snapshot that no stroke mutates concurrently;
// Annotation.Snapshot provides exactly that.
func Membership(geom MultiPolygon, q PixelQuery, rect PixelRect, opts ...QueryOption) ([]Pixel, error) {
	if err := q.validate(rect); err != nil {
		return nil, err
	}
	if rect.Empty() || geom.IsEmpty() {
		return nil, nil
	}

	cfg := defaultQueryConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.workers <= 0 {
		cfg.workers = runtime.GOMAXPROCS(0)
	}

	exec := &queryExec{
		geom: toClip(geom),
		tf:   q.Transform,
		// An affine map scales every area by |det|, so each unit cell
		// covers cellArea in world space.
		cellArea: math.Abs(q.Transform.Determinant()),
		stats:    cfg.stats,
	}

	out, err := exec.run(rect, cfg.workers)
	if err != nil {
		Logger().Warn("membership query failed", "rect", rect, "error", err)
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	Logger().Debug("membership query resolved",
		"rect", rect, "pixels", len(out), "workers", cfg.workers)
	return out, nil
}

// queryExec is the read-only state shared by all workers of one query.
type queryExec struct {
	geom     []clip.Polygon
	tf       Matrix
	cellArea float64
	stats    *QueryStats
}

// run drives the work stack. The root rectangle is always resolved
// first, so queries that the top-level difference already answers
// never pay for fan-out. Once the pending set is wide enough each
// remaining rectangle becomes an independent task with its own output
// buffer; buffers are concatenated afterwards.
func (e *queryExec) run(root PixelRect, workers int) ([]Pixel, error) {
	var out []Pixel
	stack := []PixelRect{root}
	fanout := 4 * workers

	for len(stack) > 0 {
		if workers > 1 && len(stack) >= fanout {
			break
		}
		r := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		var err error
		stack, err = e.step(r, &out, stack)
		if err != nil {
			return nil, err
		}
	}
	if len(stack) == 0 {
		return out, nil
	}

	// Fan the pending rectangles out across the pool. Each task owns
	// a disjoint rectangle and a private buffer, so workers never
	// race on output.
	buffers := make([][]Pixel, len(stack))
	var (
		errOnce  sync.Once
		firstErr error
	)
	tasks := make([]func(), len(stack))
	for i, r := range stack {
		i, r := i, r
		tasks[i] = func() {
			buf, err := e.runSerial(r)
			if err != nil {
				errOnce.Do(func() { firstErr = err })
				return
			}
			buffers[i] = buf
		}
	}
	pool := parallel.NewWorkerPool(workers)
	defer pool.Close()
	pool.ExecuteAll(tasks)
	if firstErr != nil {
		return nil, firstErr
	}
	for _, buf := range buffers {
		out = append(out, buf...)
	}
	return out, nil
}

// runSerial resolves one rectangle to completion on the calling
// goroutine.
func (e *queryExec) runSerial(root PixelRect) ([]Pixel, error) {
	var out []Pixel
	stack := []PixelRect{root}
	for len(stack) > 0 {
		r := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		var err error
		stack, err = e.step(r, &out, stack)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// step resolves one rectangle: emit it, drop it, decide a single cell
// by majority, or split it onto the stack.
func (e *queryExec) step(r PixelRect, out *[]Pixel, stack []PixelRect) ([]PixelRect, error) {
	if e.stats != nil {
		e.stats.Rects.Add(1)
	}

	quadArea := e.cellArea * float64(r.NumPixels())

	diff, err := clip.DifferenceArea(e.quad(r), e.geom)
	if e.stats != nil {
		e.stats.DiffOps.Add(1)
	}
	if err != nil {
		return stack, fmt.Errorf("%w: difference for %+v: %v", ErrBooleanOp, r, err)
	}

	switch {
	case diff <= outsideEps*quadArea:
		// Nothing of the quad survived subtraction: every cell is
		// covered.
		if e.stats != nil {
			e.stats.InsideRects.Add(1)
		}
		emitRect(r, out)

	case diff >= quadArea*(1-outsideEps):
		// The quad came back whole: no coverage at all.
		if e.stats != nil {
			e.stats.OutsideRects.Add(1)
		}

	case r.Width() == 1 && r.Height() == 1:
		// A single straddling cell: member when at least half of it
		// is covered.
		if e.stats != nil {
			e.stats.BoundaryPixels.Add(1)
		}
		if diff <= quadArea/2 {
			*out = append(*out, r.From)
		}

	default:
		mid := Pixel{
			X: r.From.X + r.Width()/2,
			Y: r.From.Y + r.Height()/2,
		}
		// Guards skip the empty strips that appear when a dimension
		// is already a single pixel wide.
		if mid.X > r.From.X && mid.Y > r.From.Y {
			stack = append(stack, Rect(r.From.X, r.From.Y, mid.X, mid.Y))
		}
		if mid.Y > r.From.Y {
			stack = append(stack, Rect(mid.X, r.From.Y, r.To.X, mid.Y))
		}
		if mid.X > r.From.X {
			stack = append(stack, Rect(r.From.X, mid.Y, mid.X, r.To.Y))
		}
		stack = append(stack, Rect(mid.X, mid.Y, r.To.X, r.To.Y))
	}
	return stack, nil
}

// quad maps the rectangle's four pixel-space corners, in top-left,
// top-right, bottom-right, bottom-left order, to world space.
func (e *queryExec) quad(r PixelRect) clip.Ring {
	x0, y0 := float64(r.From.X), float64(r.From.Y)
	x1, y1 := float64(r.To.X), float64(r.To.Y)
	corners := [4]Point{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}

	ring := make(clip.Ring, 4)
	for i, c := range corners {
		w := e.tf.TransformPoint(c)
		ring[i] = clip.Point{X: w.X, Y: w.Y}
	}
	return ring
}

func emitRect(r PixelRect, out *[]Pixel) {
	for y := r.From.Y; y < r.To.Y; y++ {
		for x := r.From.X; x < r.To.X; x++ {
			*out = append(*out, Pixel{X: x, Y: y})
		}
	}
}
