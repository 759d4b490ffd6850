package stage

// StagePosition is a symbolic placement used by authoring layers.
type StagePosition string

const (
	PosOffStageLeft  StagePosition = "OFF_STAGE_LEFT"
	PosLeft          StagePosition = "LEFT"
	PosLeftFront     StagePosition = "LEFT_FRONT"
	PosLeftBack      StagePosition = "LEFT_BACK"
	PosCenter        StagePosition = "CENTER"
	PosCenterFront   StagePosition = "CENTER_FRONT"
	PosCenterBack    StagePosition = "CENTER_BACK"
	PosRight         StagePosition = "RIGHT"
	PosRightFront    StagePosition = "RIGHT_FRONT"
	PosRightBack     StagePosition = "RIGHT_BACK"
	PosOffStageRight StagePosition = "OFF_STAGE_RIGHT"
)

// namedPositions is in declaration order; ClassOf breaks ties by it.
var namedPositions = []struct {
	name StagePosition
	pos  Position
}{
	{PosOffStageLeft, OffStageLeft},
	{PosLeft, Left},
	{PosLeftFront, LeftFront},
	{PosLeftBack, LeftBack},
	{PosCenter, Center},
	{PosCenterFront, CenterFront},
	{PosCenterBack, CenterBack},
	{PosRight, Right},
	{PosRightFront, RightFront},
	{PosRightBack, RightBack},
	{PosOffStageRight, OffStageRight},
}

// DefaultCycle is the placement rotation for characters without any
// authored movement.
var DefaultCycle = []StagePosition{PosLeft, PosCenter, PosRight}

func (s StagePosition) Valid() bool {
	for _, n := range namedPositions {
		if n.name == s {
			return true
		}
	}
	return false
}

// Position resolves the symbolic position. Unknown names resolve to Center.
func (s StagePosition) Position() Position {
	for _, n := range namedPositions {
		if n.name == s {
			return n.pos
		}
	}
	return Center
}

func (s StagePosition) Ptr() *StagePosition {
	return &s
}

// ToCoordinate resolves s into stage units.
func ToCoordinate(s StagePosition, stageWidth, stageHeight float64) (x, y float64) {
	return s.Position().ToCoordinate(stageWidth, stageHeight)
}

// ClassOf returns the named position closest to p.
func ClassOf(p Position) StagePosition {
	best := namedPositions[0].name
	bestDist := p.Distance(namedPositions[0].pos)
	for _, n := range namedPositions[1:] {
		if d := p.Distance(n.pos); d < bestDist {
			best, bestDist = n.name, d
		}
	}
	return best
}
