package beat

import (
	"math"
	"unicode/utf8"
)

const (
	secondsPerRune      = 0.15
	minDialogueSeconds  = 1.5
	movementSeconds     = 2.0
	minimumBeatDuration = 3.0
)

// EstimateDuration derives the duration of a layered beat from its latest
// finishing dialogue or movement entry, never less than three seconds.
func EstimateDuration(lb *LayeredBeat) float64 {
	result := minimumBeatDuration
	for _, d := range lb.DialogueLayer.Entries {
		result = math.Max(result, d.StartTime+DialogueSeconds(d.Text))
	}
	for _, m := range lb.MovementLayer.Entries {
		result = math.Max(result, m.StartTime+movementSeconds)
	}
	return result
}

// DialogueSeconds is the time a line needs on screen.
func DialogueSeconds(text string) float64 {
	return math.Max(float64(utf8.RuneCountInString(text))*secondsPerRune, minDialogueSeconds)
}

// ResolvedDuration returns the authored duration, or the estimate when none
// was authored.
func (lb *LayeredBeat) ResolvedDuration() float64 {
	if lb.Duration != nil {
		return *lb.Duration
	}
	return EstimateDuration(lb)
}
