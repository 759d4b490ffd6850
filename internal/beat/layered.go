package beat

import "github.com/ivlev/beat2scene/internal/stage"

// LayeredBeat is a beat authored as four independently timed layers. When
// Duration is nil it is estimated from the layers.
type LayeredBeat struct {
	ID            string        `json:"id" yaml:"id"`
	Name          string        `json:"name" yaml:"name"`
	Duration      *float64      `json:"duration,omitempty" yaml:"duration,omitempty"`
	LocationLayer LocationLayer `json:"locationLayer" yaml:"locationLayer"`
	DialogueLayer DialogueLayer `json:"dialogueLayer" yaml:"dialogueLayer"`
	ActionLayer   ActionLayer   `json:"actionLayer" yaml:"actionLayer"`
	MovementLayer MovementLayer `json:"movementLayer" yaml:"movementLayer"`
}

type LocationLayer struct {
	Background stage.BackgroundType `json:"background,omitempty" yaml:"background,omitempty"`
	Lighting   stage.LightingType   `json:"lighting,omitempty" yaml:"lighting,omitempty"`
	Props      []PropEntry          `json:"props,omitempty" yaml:"props,omitempty"`
}

type PropEntry struct {
	Name     string              `json:"name" yaml:"name"`
	Position stage.StagePosition `json:"position" yaml:"position"`
}

type DialogueLayer struct {
	Entries []DialogueEntry `json:"entries" yaml:"entries"`
}

// DialogueEntry is a line in the dialogue layer. Action, when set, is a
// gesture performed while speaking.
type DialogueEntry struct {
	CharacterID string            `json:"characterId" yaml:"characterId"`
	Text        string            `json:"text" yaml:"text"`
	Emotion     stage.EmotionType `json:"emotion" yaml:"emotion"`
	StartTime   float64           `json:"startTime" yaml:"startTime"`
	Action      *stage.Gesture    `json:"action,omitempty" yaml:"action,omitempty"`
}

type ActionLayer struct {
	Entries []ActionEntry `json:"entries" yaml:"entries"`
}

type ActionEntry struct {
	CharacterID string            `json:"characterId" yaml:"characterId"`
	Gesture     stage.GestureType `json:"gesture" yaml:"gesture"`
	StartTime   float64           `json:"startTime" yaml:"startTime"`
	EndTime     float64           `json:"endTime" yaml:"endTime"`
}

type MovementLayer struct {
	Entries []MovementEntry `json:"entries" yaml:"entries"`
}

// MovementEntry places or walks a character. Without From the character
// materializes at To instead of traversing.
type MovementEntry struct {
	CharacterID  string               `json:"characterId" yaml:"characterId"`
	FromPosition *stage.StagePosition `json:"fromPosition,omitempty" yaml:"fromPosition,omitempty"`
	ToPosition   stage.StagePosition  `json:"toPosition" yaml:"toPosition"`
	StartTime    float64              `json:"startTime" yaml:"startTime"`
	EndTime      float64              `json:"endTime" yaml:"endTime"`
	AutoWalk     bool                 `json:"autoWalk" yaml:"autoWalk"`
}

// ResolvedStart is where the entry begins: its explicit origin, or its
// target when it materializes.
func (e MovementEntry) ResolvedStart() stage.Position {
	if e.FromPosition != nil {
		return e.FromPosition.Position()
	}
	return e.ToPosition.Position()
}
