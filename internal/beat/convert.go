package beat

import (
	"sort"

	"github.com/ivlev/beat2scene/internal/catalog"
	"github.com/ivlev/beat2scene/internal/stage"
)

// ToClassic reconciles the layers of lb into a flattened Beat. Characters the
// directory cannot resolve are dropped; their dialogue is kept and renders
// without a speaker. lb is not modified.
func ToClassic(lb *LayeredBeat, dir catalog.Directory) Beat {
	b := Beat{
		ID:       lb.ID,
		Name:     lb.Name,
		Duration: lb.ResolvedDuration(),
	}

	for i, c := range resolvedCharacters(lb, dir) {
		b.Layers.Characters = append(b.Layers.Characters, reconcileCharacter(lb, c, i))
	}

	for _, d := range lb.DialogueLayer.Entries {
		b.Layers.Dialogues = append(b.Layers.Dialogues, DialogueAction{
			CharacterID:   d.CharacterID,
			Text:          d.Text,
			Emotion:       d.Emotion,
			Delay:         d.StartTime,
			TypingSpeedMs: DefaultTypingSpeedMs,
		})
	}

	bg := lb.LocationLayer.Background
	if bg == "" {
		bg = stage.BackgroundStageFloor
	}
	b.Layers.Background = &Background{Type: bg}

	return b
}

// InvolvedIDs lists every character id referenced by the dialogue, action
// and movement layers, in order of first reference.
func InvolvedIDs(lb *LayeredBeat) []string {
	var ids []string
	seen := make(map[string]bool)
	add := func(id string) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for _, d := range lb.DialogueLayer.Entries {
		add(d.CharacterID)
	}
	for _, a := range lb.ActionLayer.Entries {
		add(a.CharacterID)
	}
	for _, m := range lb.MovementLayer.Entries {
		add(m.CharacterID)
	}
	return ids
}

// UnresolvedCharacters lists involved ids that ToClassic would drop.
func UnresolvedCharacters(lb *LayeredBeat, dir catalog.Directory) []string {
	var out []string
	for _, id := range InvolvedIDs(lb) {
		if _, ok := lookup(dir, id); !ok {
			out = append(out, id)
		}
	}
	return out
}

func resolvedCharacters(lb *LayeredBeat, dir catalog.Directory) []catalog.Character {
	var out []catalog.Character
	for _, id := range InvolvedIDs(lb) {
		if c, ok := lookup(dir, id); ok {
			c.ID = id
			out = append(out, c)
		}
	}
	return out
}

func lookup(dir catalog.Directory, id string) (catalog.Character, bool) {
	if dir == nil {
		return catalog.Character{}, false
	}
	return dir.Lookup(id)
}

func reconcileCharacter(lb *LayeredBeat, c catalog.Character, index int) CharacterAction {
	moves := movementsOf(lb, c.ID)

	action := CharacterAction{
		CharacterID:     c.ID,
		CharacterName:   c.Name,
		Gender:          c.Gender,
		Movement:        reconcileMovement(moves, index),
		Emotion:         stage.Emotion{Type: stage.EmotionNeutral, Intensity: stage.DefaultIntensity},
		FacingDirection: facing(moves),
		Voice:           c.Voice,
	}

	for _, d := range lb.DialogueLayer.Entries {
		if d.CharacterID == c.ID {
			if d.Emotion != "" {
				action.Emotion.Type = d.Emotion
			}
			break
		}
	}

	action.Gesture = reconcileGesture(lb, c.ID)
	return action
}

// movementsOf returns the character's movement entries sorted by start time.
func movementsOf(lb *LayeredBeat, id string) []MovementEntry {
	var moves []MovementEntry
	for _, m := range lb.MovementLayer.Entries {
		if m.CharacterID == id {
			moves = append(moves, m)
		}
	}
	sort.SliceStable(moves, func(i, j int) bool {
		return moves[i].StartTime < moves[j].StartTime
	})
	return moves
}

func reconcileMovement(moves []MovementEntry, index int) stage.Movement {
	switch len(moves) {
	case 0:
		p := stage.DefaultCycle[index%len(stage.DefaultCycle)].Position()
		return stage.Movement{Type: stage.MoveStay, From: p.Ptr(), To: p.Ptr(), Speed: stage.SpeedNormal}
	case 1:
		p := moves[0].ToPosition.Position()
		return stage.Movement{Type: stage.MoveStay, From: p.Ptr(), To: p.Ptr(), Speed: stage.SpeedNormal}
	}

	first, last := moves[0], moves[len(moves)-1]
	m := stage.Movement{
		Type:  stage.MoveMove,
		To:    last.ToPosition.Position().Ptr(),
		Speed: stage.SpeedNormal,
	}
	if first.FromPosition != nil {
		m.From = first.FromPosition.Position().Ptr()
	}
	return m
}

func facing(moves []MovementEntry) stage.Direction {
	if len(moves) < 2 {
		return stage.FacingCenter
	}
	start := moves[0].ResolvedStart().X
	target := moves[1].ToPosition.Position().X
	switch {
	case target > start:
		return stage.FacingRight
	case target < start:
		return stage.FacingLeft
	default:
		return stage.FacingCenter
	}
}

// reconcileGesture picks the character's gesture. A gesture carried by one
// of its dialogue lines wins over the action layer.
func reconcileGesture(lb *LayeredBeat, id string) *stage.Gesture {
	for _, d := range lb.DialogueLayer.Entries {
		if d.CharacterID == id && d.Action != nil && d.Action.Type != stage.GestureNone {
			return &stage.Gesture{Type: d.Action.Type}
		}
	}
	for _, a := range lb.ActionLayer.Entries {
		if a.CharacterID == id {
			return &stage.Gesture{Type: a.Gesture}
		}
	}
	return nil
}
