package beat

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/beat2scene/internal/catalog"
	"github.com/ivlev/beat2scene/internal/stage"
)

// DefaultDuration is the duration of a beat in seconds when none is given.
const DefaultDuration = 3.0

// DefaultTypingSpeedMs is the per-rune typing delay of reconciled dialogue.
const DefaultTypingSpeedMs = 50

// Beat is one flattened dramatic unit: per-character actions and dialogue.
type Beat struct {
	ID          string     `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Duration    float64    `json:"duration" yaml:"duration"` // seconds
	Layers      BeatLayers `json:"layers" yaml:"layers"`
}

// beatFields has the fields of Beat without its decoding methods.
type beatFields Beat

// UnmarshalJSON fills in DefaultDuration when the document has no duration.
// An explicit zero is kept so that Validate can reject it.
func (b *Beat) UnmarshalJSON(data []byte) error {
	f := beatFields{Duration: DefaultDuration}
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*b = Beat(f)
	return nil
}

func (b *Beat) UnmarshalYAML(node *yaml.Node) error {
	f := beatFields{Duration: DefaultDuration}
	if err := node.Decode(&f); err != nil {
		return err
	}
	*b = Beat(f)
	return nil
}

type BeatLayers struct {
	Characters []CharacterAction `json:"characters" yaml:"characters"`
	Background *Background       `json:"background,omitempty" yaml:"background,omitempty"`
	Lighting   *Lighting         `json:"lighting,omitempty" yaml:"lighting,omitempty"`
	Sound      *Sound            `json:"sound,omitempty" yaml:"sound,omitempty"`
	Dialogues  []DialogueAction  `json:"dialogues" yaml:"dialogues"`
}

// CharacterAction is one character's contribution to a beat.
type CharacterAction struct {
	CharacterID     string                `json:"characterId" yaml:"characterId"`
	CharacterName   string                `json:"characterName" yaml:"characterName"`
	Gender          stage.Gender          `json:"gender" yaml:"gender"`
	Movement        stage.Movement        `json:"movement" yaml:"movement"`
	Emotion         stage.Emotion         `json:"emotion" yaml:"emotion"`
	Gesture         *stage.Gesture        `json:"gesture,omitempty" yaml:"gesture,omitempty"`
	FacingDirection stage.Direction       `json:"facingDirection" yaml:"facingDirection"`
	Voice           *catalog.VoiceProfile `json:"voice,omitempty" yaml:"voice,omitempty"`
}

// DialogueAction is a timed line. Delay is relative to the beat start.
type DialogueAction struct {
	CharacterID   string            `json:"characterId" yaml:"characterId"`
	Text          string            `json:"text" yaml:"text"`
	Emotion       stage.EmotionType `json:"emotion" yaml:"emotion"`
	Delay         float64           `json:"delay" yaml:"delay"` // seconds
	TypingSpeedMs int               `json:"typingSpeedMs" yaml:"typingSpeedMs"`
}

type Background struct {
	Type stage.BackgroundType `json:"type" yaml:"type"`
	// Resource names the backdrop for CUSTOM backgrounds.
	Resource string `json:"resource,omitempty" yaml:"resource,omitempty"`
}

type Lighting struct {
	Type      stage.LightingType `json:"type" yaml:"type"`
	Intensity float64            `json:"intensity" yaml:"intensity"`
}

type Sound struct {
	Music  string `json:"music,omitempty" yaml:"music,omitempty"`
	Effect string `json:"effect,omitempty" yaml:"effect,omitempty"`
}

// Character returns the action of the given character, if present.
func (b *Beat) Character(id string) (CharacterAction, bool) {
	for _, c := range b.Layers.Characters {
		if c.CharacterID == id {
			return c, true
		}
	}
	return CharacterAction{}, false
}
