package roi

import "errors"

// ErrToolNotImplemented reports a pointer event routed to a tool
// variant whose editing behavior is reserved but not defined.
var ErrToolNotImplemented = errors.New("roi: tool not implemented")

// DefaultPencilRadius is the brush radius annotations start with when
// editing begins without an explicit tool choice.
const DefaultPencilRadius = 20.0

// Tool selects how pointer input edits an annotation. The variant set
// is closed: PencilTool paints, RubberTool and PolygonTool are reserved
// and rejected with ErrToolNotImplemented by the stroke machine. Tools
// are transient configuration and are never persisted.
type Tool interface {
	isTool()
}

// PencilTool paints circular dabs and capsule sweeps of the given
// world-space radius.
type PencilTool struct {
	Radius float64
}

// RubberTool is reserved for boolean-subtraction erasing.
type RubberTool struct {
	Radius float64
}

// PolygonTool is reserved for explicit vertex placement.
type PolygonTool struct{}

func (PencilTool) isTool()  {}
func (RubberTool) isTool()  {}
func (PolygonTool) isTool() {}

// DefaultTool returns the pencil configuration new editing sessions
// start with.
func DefaultTool() Tool {
	return PencilTool{Radius: DefaultPencilRadius}
}
