package templates

import (
	"github.com/ivlev/beat2scene/internal/beat"
	"github.com/ivlev/beat2scene/internal/catalog"
	"github.com/ivlev/beat2scene/internal/stage"
)

// Every constructor is a pure function of its arguments: the beat id is
// supplied by the caller.

// FirstMeeting: two characters walk in from opposite wings and greet.
func FirstMeeting(id string, a, b catalog.Character, greetingA, greetingB string) beat.Beat {
	return beat.Beat{
		ID:          id,
		Name:        "First meeting",
		Description: a.Name + " meets " + b.Name,
		Duration:    4.0,
		Layers: beat.BeatLayers{
			Characters: []beat.CharacterAction{
				actor(a, move(stage.MoveEnter, stage.OffStageLeft, stage.Left, stage.SpeedNormal),
					stage.EmotionHappy, 0.6, stage.GestureWave, stage.FacingRight),
				actor(b, move(stage.MoveEnter, stage.OffStageRight, stage.Right, stage.SpeedNormal),
					stage.EmotionSurprised, 0.5, stage.GestureNone, stage.FacingLeft),
			},
			Background: &beat.Background{Type: stage.BackgroundStageFloor},
			Dialogues: []beat.DialogueAction{
				line(a, greetingA, stage.EmotionHappy, 1.5),
				line(b, greetingB, stage.EmotionSurprised, 2.5),
			},
		},
	}
}

// AwkwardSilence: two characters stand apart, looking away.
func AwkwardSilence(id string, a, b catalog.Character) beat.Beat {
	return beat.Beat{
		ID:       id,
		Name:     "Awkward silence",
		Duration: 3.0,
		Layers: beat.BeatLayers{
			Characters: []beat.CharacterAction{
				actor(a, stay(stage.Left), stage.EmotionNervous, 0.4, stage.GestureNone, stage.FacingLeft),
				actor(b, stay(stage.Right), stage.EmotionNervous, 0.4, stage.GestureShrug, stage.FacingRight),
			},
			Dialogues: []beat.DialogueAction{
				line(a, "...", stage.EmotionNervous, 1.0),
			},
		},
	}
}

// Confrontation: a advances on b, who stands its ground.
func Confrontation(id string, a, b catalog.Character, accusation, retort string) beat.Beat {
	return beat.Beat{
		ID:       id,
		Name:     "Confrontation",
		Duration: 5.0,
		Layers: beat.BeatLayers{
			Characters: []beat.CharacterAction{
				actor(a, move(stage.MoveApproach, stage.Left, stage.Center, stage.SpeedFast),
					stage.EmotionAngry, 0.9, stage.GesturePoint, stage.FacingRight),
				actor(b, stay(stage.Right), stage.EmotionAngry, 0.6, stage.GestureCrossArms, stage.FacingLeft),
			},
			Lighting: &beat.Lighting{Type: stage.LightingDim, Intensity: 0.6},
			Dialogues: []beat.DialogueAction{
				line(a, accusation, stage.EmotionAngry, 0.5),
				line(b, retort, stage.EmotionAngry, 2.5),
			},
		},
	}
}

// StepBack: a retreats from b.
func StepBack(id string, a, b catalog.Character, text string) beat.Beat {
	return beat.Beat{
		ID:       id,
		Name:     "Step back",
		Duration: 3.0,
		Layers: beat.BeatLayers{
			Characters: []beat.CharacterAction{
				actor(a, move(stage.MoveRetreat, stage.Center, stage.Left, stage.SpeedSlow),
					stage.EmotionFearful, 0.7, stage.GestureNone, stage.FacingRight),
				actor(b, stay(stage.Right), stage.EmotionNeutral, 0.5, stage.GestureNone, stage.FacingLeft),
			},
			Dialogues: []beat.DialogueAction{
				line(a, text, stage.EmotionFearful, 0.5),
			},
		},
	}
}

// Confession: a steps closer to b and confesses; b answers.
func Confession(id string, a, b catalog.Character, confession, response string) beat.Beat {
	return beat.Beat{
		ID:       id,
		Name:     "Confession",
		Duration: 6.0,
		Layers: beat.BeatLayers{
			Characters: []beat.CharacterAction{
				actor(a, move(stage.MoveApproach, stage.Left, stage.Center, stage.SpeedSlow),
					stage.EmotionLoving, 0.8, stage.GestureNone, stage.FacingRight),
				actor(b, stay(stage.Right), stage.EmotionSurprised, 0.7, stage.GestureNone, stage.FacingLeft),
			},
			Lighting: &beat.Lighting{Type: stage.LightingSpotlight, Intensity: 0.8},
			Dialogues: []beat.DialogueAction{
				line(a, confession, stage.EmotionLoving, 1.0),
				line(b, response, stage.EmotionSurprised, 4.0),
			},
		},
	}
}

// Celebration: everyone on stage claps or dances; the first cast member
// cheers.
func Celebration(id string, cast []catalog.Character, cheer string) beat.Beat {
	b := beat.Beat{
		ID:       id,
		Name:     "Celebration",
		Duration: 4.0,
		Layers: beat.BeatLayers{
			Lighting: &beat.Lighting{Type: stage.LightingSpotlight, Intensity: 1.0},
			Sound:    &beat.Sound{Effect: "fanfare"},
		},
	}

	for i, c := range cast {
		pos := stage.DefaultCycle[i%len(stage.DefaultCycle)].Position()
		gesture := stage.GestureClap
		if i%2 == 1 {
			gesture = stage.GestureDance
		}
		b.Layers.Characters = append(b.Layers.Characters,
			actor(c, stay(pos), stage.EmotionHappy, 1.0, gesture, stage.FacingCenter))
	}
	if len(cast) > 0 {
		b.Layers.Dialogues = append(b.Layers.Dialogues, line(cast[0], cheer, stage.EmotionHappy, 0.5))
	}

	return b
}

// Farewell: a waves goodbye and leaves through the left wing.
func Farewell(id string, a, b catalog.Character, goodbye, reply string) beat.Beat {
	return beat.Beat{
		ID:       id,
		Name:     "Farewell",
		Duration: 5.0,
		Layers: beat.BeatLayers{
			Characters: []beat.CharacterAction{
				actor(a, move(stage.MoveExit, stage.Left, stage.OffStageLeft, stage.SpeedSlow),
					stage.EmotionSad, 0.7, stage.GestureWave, stage.FacingLeft),
				actor(b, stay(stage.Right), stage.EmotionSad, 0.6, stage.GestureWave, stage.FacingLeft),
			},
			Dialogues: []beat.DialogueAction{
				line(a, goodbye, stage.EmotionSad, 0.5),
				line(b, reply, stage.EmotionSad, 2.0),
			},
		},
	}
}

// Monologue: a alone at center front, lines played back to back. The beat
// lasts until the last line has been on screen long enough.
func Monologue(id string, a catalog.Character, lines []string) beat.Beat {
	b := beat.Beat{
		ID:       id,
		Name:     "Monologue",
		Duration: beat.DefaultDuration,
		Layers: beat.BeatLayers{
			Characters: []beat.CharacterAction{
				actor(a, stay(stage.CenterFront), stage.EmotionNeutral, 0.5, stage.GestureNone, stage.FacingCenter),
			},
			Lighting: &beat.Lighting{Type: stage.LightingSpotlight, Intensity: 1.0},
		},
	}

	at := 0.0
	for _, text := range lines {
		b.Layers.Dialogues = append(b.Layers.Dialogues, line(a, text, stage.EmotionNeutral, at))
		at += beat.DialogueSeconds(text)
	}
	if at > b.Duration {
		b.Duration = at
	}

	return b
}

// Entrance: a walks in from the right wing to center stage and speaks.
func Entrance(id string, a catalog.Character, text string) beat.Beat {
	return beat.Beat{
		ID:       id,
		Name:     "Entrance",
		Duration: 3.0,
		Layers: beat.BeatLayers{
			Characters: []beat.CharacterAction{
				actor(a, move(stage.MoveEnter, stage.OffStageRight, stage.Center, stage.SpeedNormal),
					stage.EmotionNeutral, 0.5, stage.GestureNone, stage.FacingLeft),
			},
			Dialogues: []beat.DialogueAction{
				line(a, text, stage.EmotionNeutral, 1.0),
			},
		},
	}
}

func actor(c catalog.Character, m stage.Movement, e stage.EmotionType, intensity float64, g stage.GestureType, facing stage.Direction) beat.CharacterAction {
	action := beat.CharacterAction{
		CharacterID:     c.ID,
		CharacterName:   c.Name,
		Gender:          c.Gender,
		Movement:        m,
		Emotion:         stage.Emotion{Type: e, Intensity: intensity},
		FacingDirection: facing,
		Voice:           c.Voice,
	}
	if g != stage.GestureNone {
		action.Gesture = &stage.Gesture{Type: g}
	}
	return action
}

func move(t stage.MovementType, from, to stage.Position, speed stage.Speed) stage.Movement {
	return stage.Movement{Type: t, From: from.Ptr(), To: to.Ptr(), Speed: speed}
}

func stay(at stage.Position) stage.Movement {
	return stage.Movement{Type: stage.MoveStay, From: at.Ptr(), To: at.Ptr(), Speed: stage.SpeedNormal}
}

func line(c catalog.Character, text string, e stage.EmotionType, delay float64) beat.DialogueAction {
	return beat.DialogueAction{
		CharacterID:   c.ID,
		Text:          text,
		Emotion:       e,
		Delay:         delay,
		TypingSpeedMs: beat.DefaultTypingSpeedMs,
	}
}
