package stage

// Animation names a sprite animation understood by the renderer.
type Animation string

const (
	AnimIdle       Animation = "idle"
	AnimWalking    Animation = "walking"
	AnimClap       Animation = "clap"
	AnimDanceA     Animation = "dance-A"
	AnimSingNormal Animation = "sing-normal"
)

// GestureAnimation returns the animation a gesture forces, if any.
func GestureAnimation(g GestureType) (Animation, bool) {
	switch g {
	case GestureClap:
		return AnimClap, true
	case GestureDance:
		return AnimDanceA, true
	case GestureSing:
		return AnimSingNormal, true
	}
	return "", false
}

// MovementAnimation returns the animation a movement forces, if any.
func MovementAnimation(t MovementType) (Animation, bool) {
	if t == MoveEnter || t == MoveMove {
		return AnimWalking, true
	}
	return "", false
}

var emotionAnimations = map[EmotionType]string{
	EmotionHappy:     "happy",
	EmotionSad:       "sad",
	EmotionAngry:     "angry",
	EmotionSurprised: "surprised",
	EmotionFearful:   "scared",
	EmotionLoving:    "love",
	EmotionNervous:   "nervous",
}

// EmotionAnimation maps an emotion to an animation. A silent neutral
// character has no emotion animation; a speaking one uses talk-normal.
func EmotionAnimation(e EmotionType, speaking bool) (Animation, bool) {
	name, ok := emotionAnimations[e]
	if speaking {
		if !ok {
			name = "normal"
		}
		return Animation("talk-" + name), true
	}
	if !ok {
		return "", false
	}
	return Animation(name + "-idle"), true
}
