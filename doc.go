// Package roi provides region-of-interest annotation geometry for
// microscopy image analysis.
//
// # Overview
//
// roi implements the painting model used to label regions on slide
// acquisitions: annotations accumulate brush strokes as simplified
// multi-polygons in world coordinates, stay resolution independent
// across zoom levels, and rasterize to exact pixel memberships on any
// affine pixel grid.
//
// # Quick Start
//
//	import "github.com/microvis/roi"
//
//	// Paint a stroke into an annotation
//	a := roi.NewAnnotation("tumor", roi.RGB(255, 255, 0))
//	a.SetActiveTool(roi.PencilTool{Radius: 20})
//	a.ApplyPointer(roi.PointerEvent{Point: roi.Pt(100, 100)})
//	a.ApplyPointer(roi.PointerEvent{Point: roi.Pt(160, 120)})
//	a.ApplyPointer(roi.PointerEvent{Phase: roi.PointerReleased})
//
//	// Which pixels of a 512x512 grid does it cover?
//	q := roi.PixelQuery{Width: 512, Height: 512, Transform: roi.Identity()}
//	pixels, err := roi.Membership(a.Snapshot(), q, q.FullRect())
//
// # Architecture
//
// The library is organized into:
//   - Geometry: Point, Matrix, Ring, Polygon, MultiPolygon
//   - Painting: Annotation, Tool, PointerEvent, brush shapes
//   - Rasterizing: PixelQuery, Membership, MembershipCache
//   - Vectorizing: Mask, TraceContours, Vectorize, VectorizeMask
//   - Persistence: Session save/load, cell mask import, label mask export
//   - Internal: clip (polygon boolean ops), parallel (worker pool),
//     cache (sharded LRU)
//
// # Coordinate System
//
// Annotation world space is y-up with angles in radians measured
// counterclockwise from the positive X axis. Pixel grids address
// (0,0) as their first pixel; a PixelQuery's affine transform maps
// pixel corners into world space, so grids of any resolution,
// orientation or shear can query the same annotation.
//
// # Concurrency
//
// Membership queries fan out over an internal worker pool and may run
// concurrently with further strokes: strokes replace the geometry
// wholesale, so a Snapshot taken at query start stays coherent.
package roi

// Version information
const (
	// Version is the current version of the library
	Version = "0.3.2"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 3

	// VersionPatch is the patch version
	VersionPatch = 2
)
