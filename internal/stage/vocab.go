package stage

// MovementType describes how a character travels during a beat.
type MovementType string

const (
	MoveEnter    MovementType = "ENTER"
	MoveExit     MovementType = "EXIT"
	MoveMove     MovementType = "MOVE"
	MoveStay     MovementType = "STAY"
	MoveApproach MovementType = "APPROACH"
	MoveRetreat  MovementType = "RETREAT"
)

func (t MovementType) Valid() bool {
	switch t {
	case MoveEnter, MoveExit, MoveMove, MoveStay, MoveApproach, MoveRetreat:
		return true
	}
	return false
}

// Speed is the pace of a movement.
type Speed string

const (
	SpeedSlow   Speed = "SLOW"
	SpeedNormal Speed = "NORMAL"
	SpeedFast   Speed = "FAST"
)

func (s Speed) Valid() bool {
	return s == SpeedSlow || s == SpeedNormal || s == SpeedFast
}

// Millis returns the animation duration for the speed. Unknown speeds are
// treated as NORMAL.
func (s Speed) Millis() int {
	switch s {
	case SpeedSlow:
		return 1500
	case SpeedFast:
		return 500
	default:
		return 1000
	}
}

// Movement is one character's travel within a beat.
type Movement struct {
	Type  MovementType `json:"type" yaml:"type"`
	From  *Position    `json:"from,omitempty" yaml:"from,omitempty"`
	To    *Position    `json:"to,omitempty" yaml:"to,omitempty"`
	Speed Speed        `json:"speed" yaml:"speed"`
}

// DisplayPosition is where the character is shown. STAY resolves from From,
// every other type from To, both falling back to Center.
func (m Movement) DisplayPosition() Position {
	p := m.To
	if m.Type == MoveStay {
		p = m.From
	}
	if p == nil {
		return Center
	}
	return *p
}

// StartPosition is where a tween towards DisplayPosition begins.
func (m Movement) StartPosition() Position {
	if m.Type != MoveStay && m.From != nil {
		return *m.From
	}
	return m.DisplayPosition()
}

// EmotionType is the mood a character plays.
type EmotionType string

const (
	EmotionNeutral   EmotionType = "NEUTRAL"
	EmotionHappy     EmotionType = "HAPPY"
	EmotionSad       EmotionType = "SAD"
	EmotionAngry     EmotionType = "ANGRY"
	EmotionSurprised EmotionType = "SURPRISED"
	EmotionFearful   EmotionType = "FEARFUL"
	EmotionLoving    EmotionType = "LOVING"
	EmotionNervous   EmotionType = "NERVOUS"
)

func (e EmotionType) Valid() bool {
	switch e {
	case EmotionNeutral, EmotionHappy, EmotionSad, EmotionAngry,
		EmotionSurprised, EmotionFearful, EmotionLoving, EmotionNervous:
		return true
	}
	return false
}

// DefaultIntensity is used when an emotion is derived rather than authored.
const DefaultIntensity = 0.5

type Emotion struct {
	Type      EmotionType `json:"type" yaml:"type"`
	Intensity float64     `json:"intensity" yaml:"intensity"` // 0.0-1.0
}

// GestureType is a standalone body action.
type GestureType string

const (
	GestureNone      GestureType = "NONE"
	GestureWave      GestureType = "WAVE"
	GestureNod       GestureType = "NOD"
	GestureBow       GestureType = "BOW"
	GesturePoint     GestureType = "POINT"
	GestureShrug     GestureType = "SHRUG"
	GestureCrossArms GestureType = "CROSS_ARMS"
	GestureHug       GestureType = "HUG"
	GestureClap      GestureType = "CLAP"
	GestureDance     GestureType = "DANCE"
	GestureSing      GestureType = "SING"
)

func (g GestureType) Valid() bool {
	switch g {
	case GestureNone, GestureWave, GestureNod, GestureBow, GesturePoint, GestureShrug,
		GestureCrossArms, GestureHug, GestureClap, GestureDance, GestureSing:
		return true
	}
	return false
}

type Gesture struct {
	Type GestureType `json:"type" yaml:"type"`
}

// Direction is where a character faces.
type Direction string

const (
	FacingLeft   Direction = "LEFT"
	FacingCenter Direction = "CENTER"
	FacingRight  Direction = "RIGHT"
)

func (d Direction) Valid() bool {
	return d == FacingLeft || d == FacingCenter || d == FacingRight
}

type Gender string

const (
	GenderMale    Gender = "MALE"
	GenderFemale  Gender = "FEMALE"
	GenderUnknown Gender = "UNKNOWN"
)

// BackgroundType selects the backdrop of a beat.
type BackgroundType string

const (
	BackgroundStageFloor BackgroundType = "STAGE_FLOOR"
	BackgroundPark       BackgroundType = "PARK"
	BackgroundCafe       BackgroundType = "CAFE"
	BackgroundClassroom  BackgroundType = "CLASSROOM"
	BackgroundStreet     BackgroundType = "STREET"
	BackgroundHome       BackgroundType = "HOME"
	BackgroundNightSky   BackgroundType = "NIGHT_SKY"
	BackgroundCustom     BackgroundType = "CUSTOM"
)

// LightingType selects the stage lighting.
type LightingType string

const (
	LightingDay       LightingType = "DAY"
	LightingNight     LightingType = "NIGHT"
	LightingSpotlight LightingType = "SPOTLIGHT"
	LightingDim       LightingType = "DIM"
)
