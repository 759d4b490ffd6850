package beat

import (
	"errors"
	"fmt"
)

// ErrInvalidTiming marks input that breaks the timing preconditions of the
// converters and the compiler.
var ErrInvalidTiming = errors.New("invalid timing")

// Validate checks the preconditions the compiler relies on. The compiler
// does not call it; callers validate before compiling.
func (b *Beat) Validate() error {
	if b.Duration <= 0 {
		return fmt.Errorf("beat %q: duration %.2f: %w", b.ID, b.Duration, ErrInvalidTiming)
	}

	for i, c := range b.Layers.Characters {
		if c.Emotion.Intensity < 0 || c.Emotion.Intensity > 1 {
			return fmt.Errorf("beat %q: character %d emotion intensity %.2f out of range", b.ID, i, c.Emotion.Intensity)
		}
	}

	for i, d := range b.Layers.Dialogues {
		if d.Delay < 0 {
			return fmt.Errorf("beat %q: dialogue %d delay %.2f: %w", b.ID, i, d.Delay, ErrInvalidTiming)
		}
		if d.TypingSpeedMs < 0 {
			return fmt.Errorf("beat %q: dialogue %d typing speed %d: %w", b.ID, i, d.TypingSpeedMs, ErrInvalidTiming)
		}
	}

	return nil
}

// Validate checks the timing of every layer entry.
func (lb *LayeredBeat) Validate() error {
	if lb.Duration != nil && *lb.Duration <= 0 {
		return fmt.Errorf("layered beat %q: duration %.2f: %w", lb.ID, *lb.Duration, ErrInvalidTiming)
	}

	for i, d := range lb.DialogueLayer.Entries {
		if d.StartTime < 0 {
			return fmt.Errorf("layered beat %q: dialogue %d starts at %.2f: %w", lb.ID, i, d.StartTime, ErrInvalidTiming)
		}
	}

	for i, a := range lb.ActionLayer.Entries {
		if a.StartTime < 0 || a.EndTime < a.StartTime {
			return fmt.Errorf("layered beat %q: action %d spans %.2f-%.2f: %w", lb.ID, i, a.StartTime, a.EndTime, ErrInvalidTiming)
		}
	}

	for i, m := range lb.MovementLayer.Entries {
		if m.StartTime < 0 || m.EndTime < m.StartTime {
			return fmt.Errorf("layered beat %q: movement %d spans %.2f-%.2f: %w", lb.ID, i, m.StartTime, m.EndTime, ErrInvalidTiming)
		}
	}

	return nil
}

// CheckVocabulary reports enum values outside the known vocabularies. Empty
// emotions and facing directions are allowed and read as neutral/center.
func (b *Beat) CheckVocabulary() error {
	for i, c := range b.Layers.Characters {
		switch {
		case !c.Movement.Type.Valid():
			return fmt.Errorf("character %d: unknown movement %q", i, c.Movement.Type)
		case c.Movement.Speed != "" && !c.Movement.Speed.Valid():
			return fmt.Errorf("character %d: unknown speed %q", i, c.Movement.Speed)
		case c.Emotion.Type != "" && !c.Emotion.Type.Valid():
			return fmt.Errorf("character %d: unknown emotion %q", i, c.Emotion.Type)
		case c.Gesture != nil && !c.Gesture.Type.Valid():
			return fmt.Errorf("character %d: unknown gesture %q", i, c.Gesture.Type)
		case c.FacingDirection != "" && !c.FacingDirection.Valid():
			return fmt.Errorf("character %d: unknown facing direction %q", i, c.FacingDirection)
		}
	}
	for i, d := range b.Layers.Dialogues {
		if d.Emotion != "" && !d.Emotion.Valid() {
			return fmt.Errorf("dialogue %d: unknown emotion %q", i, d.Emotion)
		}
	}
	return nil
}

// CheckVocabulary reports enum values outside the known vocabularies.
func (lb *LayeredBeat) CheckVocabulary() error {
	for i, d := range lb.DialogueLayer.Entries {
		if d.Emotion != "" && !d.Emotion.Valid() {
			return fmt.Errorf("dialogue %d: unknown emotion %q", i, d.Emotion)
		}
		if d.Action != nil && !d.Action.Type.Valid() {
			return fmt.Errorf("dialogue %d: unknown gesture %q", i, d.Action.Type)
		}
	}
	for i, a := range lb.ActionLayer.Entries {
		if !a.Gesture.Valid() {
			return fmt.Errorf("action %d: unknown gesture %q", i, a.Gesture)
		}
	}
	for i, m := range lb.MovementLayer.Entries {
		if !m.ToPosition.Valid() {
			return fmt.Errorf("movement %d: unknown position %q", i, m.ToPosition)
		}
		if m.FromPosition != nil && !m.FromPosition.Valid() {
			return fmt.Errorf("movement %d: unknown position %q", i, *m.FromPosition)
		}
	}
	return nil
}
