package director

import (
	"github.com/ivlev/beat2scene/internal/beat"
	"github.com/ivlev/beat2scene/internal/catalog"
	"github.com/ivlev/beat2scene/internal/stage"
)

// ScriptVersion is written into every TheaterScript.
const ScriptVersion = "1.0"

// TheaterScript is an ordered sequence of compiled scenes. Scene order is
// playback order.
type TheaterScript struct {
	Version string       `json:"version" yaml:"version"`
	Scenes  []SceneState `json:"scenes" yaml:"scenes"`
}

// SceneState is one beat, flattened for the renderer. All coordinates are
// in stage units, all times in milliseconds.
type SceneState struct {
	BeatID         string           `json:"beatId" yaml:"beatId"`
	Name           string           `json:"name" yaml:"name"`
	BackgroundRes  string           `json:"backgroundRes" yaml:"backgroundRes"`
	Lighting       *beat.Lighting   `json:"lighting,omitempty" yaml:"lighting,omitempty"`
	Sound          *beat.Sound      `json:"sound,omitempty" yaml:"sound,omitempty"`
	Characters     []CharacterState `json:"characters" yaml:"characters"`
	Dialogues      []DialogueState  `json:"dialogues" yaml:"dialogues"`
	DurationMillis int              `json:"durationMillis" yaml:"durationMillis"`
	IsEnding       bool             `json:"isEnding" yaml:"isEnding"`
}

// CharacterState is a character with its position resolved. The character
// tweens from (StartX, StartY) to (X, Y) over AnimationMillis.
type CharacterState struct {
	CharacterID     string            `json:"characterId" yaml:"characterId"`
	Name            string            `json:"name" yaml:"name"`
	Gender          stage.Gender      `json:"gender" yaml:"gender"`
	ImageRes        string            `json:"imageRes,omitempty" yaml:"imageRes,omitempty"`
	X               float64           `json:"x" yaml:"x"`
	Y               float64           `json:"y" yaml:"y"`
	StartX          float64           `json:"startX" yaml:"startX"`
	StartY          float64           `json:"startY" yaml:"startY"`
	Zone            stage.Zone        `json:"zone" yaml:"zone"`
	Animation       stage.Animation   `json:"animation" yaml:"animation"`
	AnimationMillis int               `json:"animationMillis" yaml:"animationMillis"`
	FlipX           bool              `json:"flipX" yaml:"flipX"`
	Alpha           float64           `json:"alpha" yaml:"alpha"`
	Emotion         stage.Emotion     `json:"emotion" yaml:"emotion"`
	Gesture         stage.GestureType `json:"gesture,omitempty" yaml:"gesture,omitempty"`
}

// DialogueState is a speech bubble. Speaker fields are empty when the line
// belongs to a character that is not on stage.
type DialogueState struct {
	CharacterID      string                `json:"characterId" yaml:"characterId"`
	SpeakerName      string                `json:"speakerName,omitempty" yaml:"speakerName,omitempty"`
	Text             string                `json:"text" yaml:"text"`
	Emotion          stage.EmotionType     `json:"emotion" yaml:"emotion"`
	X                float64               `json:"x" yaml:"x"`
	Y                float64               `json:"y" yaml:"y"`
	DelayMillis      int                   `json:"delayMillis" yaml:"delayMillis"`
	TypingSpeedMs    int                   `json:"typingSpeedMs" yaml:"typingSpeedMs"`
	Voice            *catalog.VoiceProfile `json:"voice,omitempty" yaml:"voice,omitempty"`
	SpeakerAnimation stage.Animation       `json:"speakerAnimation,omitempty" yaml:"speakerAnimation,omitempty"`
}
