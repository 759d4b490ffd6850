package beat

import "github.com/ivlev/beat2scene/internal/stage"

const (
	exitStartFraction = 0.7
	exitSeconds       = 1.0
	enterSeconds      = 1.0
)

// FromClassic rebuilds a LayeredBeat from b so it can be edited again. The
// inverse is lossy: one movement, one gesture and the dialogue emotions
// survive per character. Every character in b is kept, resolved or not.
func FromClassic(b *Beat) LayeredBeat {
	duration := b.Duration
	lb := LayeredBeat{
		ID:       b.ID,
		Name:     b.Name,
		Duration: &duration,
	}

	if b.Layers.Background != nil {
		lb.LocationLayer.Background = b.Layers.Background.Type
	}
	if b.Layers.Lighting != nil {
		lb.LocationLayer.Lighting = b.Layers.Lighting.Type
	}

	for _, c := range b.Layers.Characters {
		lb.MovementLayer.Entries = append(lb.MovementLayer.Entries, movementEntry(c, duration))
		if c.Gesture != nil && c.Gesture.Type != stage.GestureNone {
			lb.ActionLayer.Entries = append(lb.ActionLayer.Entries, ActionEntry{
				CharacterID: c.CharacterID,
				Gesture:     c.Gesture.Type,
				StartTime:   0,
				EndTime:     duration,
			})
		}
	}

	for _, d := range b.Layers.Dialogues {
		lb.DialogueLayer.Entries = append(lb.DialogueLayer.Entries, DialogueEntry{
			CharacterID: d.CharacterID,
			Text:        d.Text,
			Emotion:     d.Emotion,
			StartTime:   d.Delay,
		})
	}

	return lb
}

func movementEntry(c CharacterAction, duration float64) MovementEntry {
	m := c.Movement
	e := MovementEntry{
		CharacterID: c.CharacterID,
		ToPosition:  stage.ClassOf(m.DisplayPosition()),
	}

	origin := func() *stage.StagePosition {
		if m.From == nil {
			return nil
		}
		return stage.ClassOf(*m.From).Ptr()
	}

	switch m.Type {
	case stage.MoveMove, stage.MoveApproach, stage.MoveRetreat:
		e.FromPosition = origin()
		e.EndTime = duration / 2
		e.AutoWalk = true
	case stage.MoveEnter:
		e.FromPosition = origin()
		e.EndTime = enterSeconds
		e.AutoWalk = true
	case stage.MoveExit:
		e.FromPosition = origin()
		e.StartTime = exitStartFraction * duration
		e.EndTime = e.StartTime + exitSeconds
		e.AutoWalk = true
	}
	// STAY materializes at its position for the whole beat: start=end=0.
	return e
}
