package roi

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
)

var (
	// ErrNoActiveTool reports a pointer event delivered to an
	// annotation that is not in edit mode.
	ErrNoActiveTool = errors.New("roi: no active tool")

	// ErrNonFinitePoint reports a pointer sample with NaN or infinite
	// coordinates. Such samples are rejected before they can reach the
	// boolean geometry layer.
	ErrNonFinitePoint = errors.New("roi: non-finite pointer position")
)

// ViewportID identifies the viewport a pointer sample originated in.
// A stroke is confined to the viewport it started in; samples from
// other viewports are ignored until the stroke ends.
type ViewportID int

// PointerPhase distinguishes held-button samples from release.
type PointerPhase uint8

const (
	// PointerPressed covers both the initial press and every sample
	// while the button stays down.
	PointerPressed PointerPhase = iota
	// PointerReleased ends the stroke.
	PointerReleased
)

// PointerEvent is one pointer sample in annotation world space.
type PointerEvent struct {
	Point    Point
	Viewport ViewportID
	Phase    PointerPhase
}

// strokeState is the in-progress stroke of one annotation: idle, or
// active with the last stamped point and the owning viewport.
type strokeState struct {
	active    bool
	lastPoint Point
	viewport  ViewportID
}

// annotationID hands out process-unique annotation identities, used to
// keep cache entries of distinct annotations apart.
var annotationID atomic.Uint64

// Annotation is a painted region of interest: a simplified
// multi-polygon plus display attributes. The zero value is not usable;
// create annotations with NewAnnotation or by unmarshaling.
//
// Display fields are plain values the embedding UI may update freely.
// Geometry mutates only through strokes (ApplyPointer) or wholesale
// replacement (SetGeometry), each of which bumps the revision counter.
// Tool and stroke state are transient and never persisted: a reloaded
// annotation always starts idle with no active tool.
type Annotation struct {
	Description  string
	Colour       Colour
	OutlineWidth float64
	Visible      bool

	id       uint64
	geometry MultiPolygon
	revision uint64

	tool   Tool
	stroke strokeState
}

// NewAnnotation returns an empty, visible annotation with the default
// outline width.
func NewAnnotation(description string, colour Colour) *Annotation {
	return &Annotation{
		Description:  description,
		Colour:       colour,
		OutlineWidth: DefaultPencilRadius / 10,
		Visible:      true,
		id:           annotationID.Add(1),
	}
}

// Snapshot returns the current geometry. Every mutation replaces the
// multi-polygon wholesale rather than editing it in place, so the
// returned value is immutable: membership queries may read it
// concurrently with further strokes.
func (a *Annotation) Snapshot() MultiPolygon {
	return a.geometry
}

// Revision returns the geometry revision, incremented on every
// mutation. Revisions never repeat for a given annotation, which makes
// (annotation, revision) pairs safe cache keys.
func (a *Annotation) Revision() uint64 {
	return a.revision
}

// SetGeometry replaces the annotation geometry, for example when
// importing vectorized mask boundaries. The caller must supply
// simplified geometry (simple rings, holes clockwise); stroke unions
// and the vectorizer both produce this form.
func (a *Annotation) SetGeometry(mp MultiPolygon) {
	a.geometry = mp
	a.revision++
}

// ActiveTool returns the current tool, or nil when the annotation is
// not being edited.
func (a *Annotation) ActiveTool() Tool {
	return a.tool
}

// SetActiveTool enters edit mode with the given tool, discarding any
// in-progress stroke. Radius-bearing tools also set the display
// outline width to one tenth of their radius. A nil tool is equivalent
// to StopEdit.
func (a *Annotation) SetActiveTool(t Tool) {
	a.tool = t
	a.stroke = strokeState{}
	switch tool := t.(type) {
	case PencilTool:
		a.OutlineWidth = tool.Radius / 10
	case RubberTool:
		a.OutlineWidth = tool.Radius / 10
	}
}

// StopEdit leaves edit mode, discarding the active tool and any
// in-progress stroke. The geometry is untouched.
func (a *Annotation) StopEdit() {
	a.tool = nil
	a.stroke = strokeState{}
}

// CancelStroke discards the in-progress stroke while keeping the
// active tool, for when the editing viewport loses the pointer.
func (a *Annotation) CancelStroke() {
	a.stroke = strokeState{}
}

// ApplyPointer feeds one pointer sample to the stroke machine and
// reports whether the geometry changed.
//
// With an active PencilTool the machine behaves as follows. A pressed
// sample while idle stamps a circular dab and starts a stroke bound to
// the sample's viewport. A pressed sample during a stroke is ignored
// when it comes from another viewport; otherwise it stamps a capsule
// from the last stamped point if it moved further than the brush
// radius, updating the last point, and is dropped entirely if it moved
// less (the distance gate: sub-radius moves do not advance the stroke).
// A released sample ends the stroke.
//
// Samples are rejected with ErrNoActiveTool when not editing,
// ErrToolNotImplemented for reserved tool variants, and
// ErrNonFinitePoint for NaN or infinite coordinates.
func (a *Annotation) ApplyPointer(ev PointerEvent) (bool, error) {
	switch tool := a.tool.(type) {
	case PencilTool:
		return a.applyPencil(ev, tool.Radius)
	case nil:
		return false, ErrNoActiveTool
	default:
		return false, fmt.Errorf("%w: %T", ErrToolNotImplemented, tool)
	}
}

func (a *Annotation) applyPencil(ev PointerEvent, radius float64) (bool, error) {
	if ev.Phase == PointerReleased {
		a.stroke = strokeState{}
		return false, nil
	}
	if !ev.Point.IsFinite() {
		return false, ErrNonFinitePoint
	}

	if !a.stroke.active {
		if err := a.unionShape(CircleDab(ev.Point, radius)); err != nil {
			return false, err
		}
		a.stroke = strokeState{active: true, lastPoint: ev.Point, viewport: ev.Viewport}
		return true, nil
	}
	if ev.Viewport != a.stroke.viewport {
		return false, nil
	}
	if a.stroke.lastPoint.Distance(ev.Point) <= radius {
		return false, nil
	}
	if err := a.unionShape(Capsule(a.stroke.lastPoint, ev.Point, radius)); err != nil {
		return false, err
	}
	a.stroke.lastPoint = ev.Point
	return true, nil
}

// unionShape merges one stroke shape into the geometry and bumps the
// revision. The union renormalizes, so the stored multi-polygon stays
// simplified after every stamp.
func (a *Annotation) unionShape(shape Polygon) error {
	merged, err := Union(a.geometry, MultiPolygon{shape})
	if err != nil {
		return err
	}
	a.geometry = merged
	a.revision++
	return nil
}

// annotationJSON is the persisted subset of an annotation. Tool and
// stroke state are deliberately absent.
type annotationJSON struct {
	Description  string       `json:"description"`
	Colour       Colour       `json:"colour"`
	OutlineWidth float64      `json:"outline_width"`
	Visible      bool         `json:"visible"`
	Polygon      MultiPolygon `json:"polygon"`
}

// MarshalJSON encodes the persistent fields only: description, colour,
// outline width, visibility and geometry.
func (a *Annotation) MarshalJSON() ([]byte, error) {
	return json.Marshal(annotationJSON{
		Description:  a.Description,
		Colour:       a.Colour,
		OutlineWidth: a.OutlineWidth,
		Visible:      a.Visible,
		Polygon:      a.geometry,
	})
}

// UnmarshalJSON decodes a persisted annotation. The result starts idle
// with no active tool regardless of the state it was saved in.
func (a *Annotation) UnmarshalJSON(data []byte) error {
	var aux annotationJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*a = Annotation{
		Description:  aux.Description,
		Colour:       aux.Colour,
		OutlineWidth: aux.OutlineWidth,
		Visible:      aux.Visible,
		id:           annotationID.Add(1),
		geometry:     aux.Polygon,
	}
	return nil
}
