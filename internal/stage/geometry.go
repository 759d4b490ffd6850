package stage

import (
	"encoding/json"
	"math"

	"gopkg.in/yaml.v3"
)

// Zone is the coarse left/center/right band of the stage.
type Zone string

const (
	ZoneLeft   Zone = "LEFT"
	ZoneCenter Zone = "CENTER"
	ZoneRight  Zone = "RIGHT"
)

// Zone thresholds on the normalized x axis.
const (
	leftEdge  = 0.3
	rightEdge = 0.7
)

// Classify returns the zone of a normalized x coordinate.
func Classify(x float64) Zone {
	switch {
	case x < leftEdge:
		return ZoneLeft
	case x > rightEdge:
		return ZoneRight
	default:
		return ZoneCenter
	}
}

// Position is a normalized stage coordinate. Zone always equals Classify(X):
// build positions with NewPosition, decoding re-derives the zone.
type Position struct {
	X    float64 `json:"x" yaml:"x"`
	Y    float64 `json:"y" yaml:"y"`
	Zone Zone    `json:"zone" yaml:"zone"`
}

func NewPosition(x, y float64) Position {
	return Position{X: x, Y: y, Zone: Classify(x)}
}

// Ptr returns a pointer to a copy of p.
func (p Position) Ptr() *Position {
	return &p
}

// Distance is the euclidean distance between two normalized positions.
func (p Position) Distance(o Position) float64 {
	return math.Hypot(p.X-o.X, p.Y-o.Y)
}

// ToCoordinate scales p into stage units.
func (p Position) ToCoordinate(stageWidth, stageHeight float64) (x, y float64) {
	return p.X * stageWidth, p.Y * stageHeight
}

type positionFields struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

func (p *Position) UnmarshalJSON(data []byte) error {
	var f positionFields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*p = NewPosition(f.X, f.Y)
	return nil
}

func (p *Position) UnmarshalYAML(node *yaml.Node) error {
	var f positionFields
	if err := node.Decode(&f); err != nil {
		return err
	}
	*p = NewPosition(f.X, f.Y)
	return nil
}

// Named stage positions.
var (
	OffStageLeft  = NewPosition(0.0, 0.6)
	Left          = NewPosition(0.2, 0.6)
	LeftFront     = NewPosition(0.2, 0.8)
	LeftBack      = NewPosition(0.2, 0.45)
	Center        = NewPosition(0.5, 0.6)
	CenterFront   = NewPosition(0.5, 0.8)
	CenterBack    = NewPosition(0.5, 0.45)
	Right         = NewPosition(0.8, 0.6)
	RightFront    = NewPosition(0.8, 0.8)
	RightBack     = NewPosition(0.8, 0.45)
	OffStageRight = NewPosition(1.0, 0.6)
)
