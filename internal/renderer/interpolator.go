package renderer

import (
	"github.com/ivlev/beat2scene/internal/director"
)

// Frame is a character as drawn at a specific moment
type Frame struct {
	X     float64 // stage units
	Y     float64
	Alpha float64
	FlipX bool
}

// CharacterAt calculates where a compiled character is drawn tMillis after
// the scene starts, easing from its start to its resting position
func CharacterAt(cs director.CharacterState, tMillis int) Frame {
	f := Frame{X: cs.X, Y: cs.Y, Alpha: cs.Alpha, FlipX: cs.FlipX}

	if cs.AnimationMillis <= 0 || tMillis >= cs.AnimationMillis {
		return f
	}
	if tMillis <= 0 {
		f.X, f.Y = cs.StartX, cs.StartY
		return f
	}

	// Calculate interpolation factor (0.0 to 1.0)
	t := float64(tMillis) / float64(cs.AnimationMillis)

	// Apply easing (smooth in-out)
	t = easeInOutCubic(t)

	f.X = lerp(cs.StartX, cs.X, t)
	f.Y = lerp(cs.StartY, cs.Y, t)
	return f
}

// VisibleText returns the part of a line typed out tMillis after the scene
// starts. Nothing is shown before the line's delay.
func VisibleText(ds director.DialogueState, tMillis int) string {
	elapsed := tMillis - ds.DelayMillis
	if elapsed < 0 {
		return ""
	}
	runes := []rune(ds.Text)
	if ds.TypingSpeedMs <= 0 {
		return ds.Text
	}
	n := elapsed / ds.TypingSpeedMs
	if n >= len(runes) {
		return ds.Text
	}
	return string(runes[:n])
}

// lerp performs linear interpolation between a and b
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// easeInOutCubic applies smooth easing function
func easeInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - pow(-2*t+2, 3)/2
}

// pow calculates x^n
func pow(x float64, n int) float64 {
	result := 1.0
	for i := 0; i < n; i++ {
		result *= x
	}
	return result
}
