package director

import (
	"fmt"
	"testing"

	"github.com/ivlev/beat2scene/internal/beat"
	"github.com/ivlev/beat2scene/internal/catalog"
	"github.com/ivlev/beat2scene/internal/stage"
)

func TestCompileEmptyBeat(t *testing.T) {
	director := NewDirector(1280, 720)

	scene := director.Compile(&beat.Beat{ID: "empty", Duration: 3})
	if len(scene.Characters) != 0 || len(scene.Dialogues) != 0 {
		t.Errorf("expected empty scene, got %+v", scene)
	}
	if scene.DurationMillis != 3000 {
		t.Errorf("expected 3000ms, got %d", scene.DurationMillis)
	}
	if scene.BackgroundRes != FallbackBackground {
		t.Errorf("expected fallback background, got %s", scene.BackgroundRes)
	}
	if scene.IsEnding {
		t.Error("a single compiled beat is not an ending")
	}
}

func TestCompileDurationTruncates(t *testing.T) {
	director := NewDirector(1280, 720)
	scene := director.Compile(&beat.Beat{Duration: 2.0009})
	if scene.DurationMillis != 2000 {
		t.Errorf("expected 2000ms, got %d", scene.DurationMillis)
	}
}

func TestCompileCharacter(t *testing.T) {
	director := NewDirector(1000, 500)

	b := beat.Beat{
		ID:       "c",
		Duration: 3,
		Layers: beat.BeatLayers{Characters: []beat.CharacterAction{
			{
				CharacterID:     "a",
				CharacterName:   "Anna",
				Movement:        stage.Movement{Type: stage.MoveEnter, From: stage.OffStageLeft.Ptr(), To: stage.Left.Ptr(), Speed: stage.SpeedFast},
				Emotion:         stage.Emotion{Type: stage.EmotionHappy, Intensity: 0.7},
				Gesture:         &stage.Gesture{Type: stage.GestureClap},
				FacingDirection: stage.FacingLeft,
			},
			{
				CharacterID: "b",
				Movement:    stage.Movement{Type: stage.MoveExit, From: stage.Right.Ptr(), To: stage.OffStageRight.Ptr(), Speed: stage.SpeedSlow},
			},
		}},
	}

	scene := director.Compile(&b)
	a := scene.Characters[0]
	if a.Animation != stage.AnimClap {
		t.Errorf("gesture must override movement, got %s", a.Animation)
	}
	if a.X != 200 || a.Y != 300 {
		t.Errorf("expected (200,300), got (%.1f,%.1f)", a.X, a.Y)
	}
	if a.StartX != 0 || a.StartY != 300 {
		t.Errorf("expected start (0,300), got (%.1f,%.1f)", a.StartX, a.StartY)
	}
	if !a.FlipX {
		t.Error("facing left should flip")
	}
	if a.Alpha != 1.0 || a.AnimationMillis != 500 {
		t.Errorf("alpha %.1f, animation %dms", a.Alpha, a.AnimationMillis)
	}
	if a.Zone != stage.ZoneLeft {
		t.Errorf("expected LEFT zone, got %s", a.Zone)
	}

	b2 := scene.Characters[1]
	if b2.Alpha != 0.3 {
		t.Errorf("exit alpha should be 0.3, got %.2f", b2.Alpha)
	}
	if b2.AnimationMillis != 1500 {
		t.Errorf("slow should be 1500ms, got %d", b2.AnimationMillis)
	}
	if b2.FlipX {
		t.Error("unset facing should not flip")
	}
}

func TestSelectAnimation(t *testing.T) {
	tests := []struct {
		name   string
		action beat.CharacterAction
		want   stage.Animation
	}{
		{
			"clap over enter",
			beat.CharacterAction{Movement: stage.Movement{Type: stage.MoveEnter}, Gesture: &stage.Gesture{Type: stage.GestureClap}},
			stage.AnimClap,
		},
		{
			"sing over move",
			beat.CharacterAction{Movement: stage.Movement{Type: stage.MoveMove}, Gesture: &stage.Gesture{Type: stage.GestureSing}},
			stage.AnimSingNormal,
		},
		{
			"wave falls through to walking",
			beat.CharacterAction{Movement: stage.Movement{Type: stage.MoveEnter}, Gesture: &stage.Gesture{Type: stage.GestureWave}},
			stage.AnimWalking,
		},
		{
			"approach falls through to emotion",
			beat.CharacterAction{Movement: stage.Movement{Type: stage.MoveApproach}, Emotion: stage.Emotion{Type: stage.EmotionAngry}},
			"angry-idle",
		},
		{
			"neutral stay is idle",
			beat.CharacterAction{Movement: stage.Movement{Type: stage.MoveStay}, Emotion: stage.Emotion{Type: stage.EmotionNeutral}},
			stage.AnimIdle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := selectAnimation(tt.action); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCompileDialogue(t *testing.T) {
	director := NewDirector(1000, 500)
	voice := &catalog.VoiceProfile{Voice: "tenor"}

	b := beat.Beat{
		Duration: 3,
		Layers: beat.BeatLayers{
			Characters: []beat.CharacterAction{{
				CharacterID:   "a",
				CharacterName: "Anna",
				Movement:      stage.Movement{Type: stage.MoveStay, From: stage.Center.Ptr()},
				Voice:         voice,
			}},
			Dialogues: []beat.DialogueAction{
				{CharacterID: "a", Text: "Hello", Emotion: stage.EmotionHappy, Delay: 0.29, TypingSpeedMs: 40},
				{CharacterID: "x", Text: "Hi", TypingSpeedMs: 50},
			},
		},
	}

	scene := director.Compile(&b)
	spoken := scene.Dialogues[0]
	if spoken.X != 540 || spoken.Y != 240 {
		t.Errorf("expected bubble at (540,240), got (%.1f,%.1f)", spoken.X, spoken.Y)
	}
	if spoken.SpeakerName != "Anna" || spoken.Voice != voice {
		t.Errorf("speaker fields missing: %+v", spoken)
	}
	if spoken.DelayMillis != 290 {
		t.Errorf("expected 290ms delay, got %d", spoken.DelayMillis)
	}
	if spoken.SpeakerAnimation != "talk-happy" {
		t.Errorf("expected talk-happy, got %s", spoken.SpeakerAnimation)
	}

	dangling := scene.Dialogues[1]
	if dangling.SpeakerName != "" || dangling.Voice != nil || dangling.SpeakerAnimation != "" {
		t.Errorf("dangling dialogue should have no speaker fields: %+v", dangling)
	}
	if dangling.X != 500 || dangling.Y != 75 {
		t.Errorf("expected fallback (500,75), got (%.1f,%.1f)", dangling.X, dangling.Y)
	}
	if dangling.Text != "Hi" || dangling.TypingSpeedMs != 50 {
		t.Errorf("dialogue content lost: %+v", dangling)
	}
}

func TestCompileResources(t *testing.T) {
	director := NewDirector(1280, 720)
	director.Resources = catalog.MapResolver{
		"bg_park":          "res/park.png",
		"character_a":      "res/anna.png",
		"character_female": "res/female.png",
	}

	b := beat.Beat{
		Duration: 1,
		Layers: beat.BeatLayers{
			Background: &beat.Background{Type: stage.BackgroundPark},
			Characters: []beat.CharacterAction{
				{CharacterID: "a", Gender: stage.GenderFemale, Movement: stage.Movement{Type: stage.MoveStay}},
				{CharacterID: "c", Gender: stage.GenderFemale, Movement: stage.Movement{Type: stage.MoveStay}},
				{CharacterID: "d", Gender: stage.GenderMale, Movement: stage.Movement{Type: stage.MoveStay}},
			},
		},
	}

	scene := director.Compile(&b)
	if scene.BackgroundRes != "res/park.png" {
		t.Errorf("background: %s", scene.BackgroundRes)
	}
	want := []string{"res/anna.png", "res/female.png", ""}
	for i, c := range scene.Characters {
		if c.ImageRes != want[i] {
			t.Errorf("character %d: imageRes %q, want %q", i, c.ImageRes, want[i])
		}
	}

	custom := director.Compile(&beat.Beat{Layers: beat.BeatLayers{Background: &beat.Background{Type: stage.BackgroundCustom, Resource: "moon"}}})
	if custom.BackgroundRes != FallbackBackground {
		t.Errorf("custom background should fall back, got %s", custom.BackgroundRes)
	}
}

func TestCompileSequence(t *testing.T) {
	beats := make([]beat.Beat, 20)
	for i := range beats {
		beats[i] = beat.Beat{ID: fmt.Sprintf("beat-%02d", i), Duration: float64(i + 1)}
	}

	for _, workers := range []int{0, 1, 3} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			director := NewDirector(1280, 720)
			director.Workers = workers

			script := director.CompileSequence(beats)
			if script.Version != ScriptVersion {
				t.Errorf("version %s", script.Version)
			}
			if len(script.Scenes) != len(beats) {
				t.Fatalf("expected %d scenes, got %d", len(beats), len(script.Scenes))
			}
			for i, s := range script.Scenes {
				if s.BeatID != beats[i].ID {
					t.Errorf("scene %d out of order: %s", i, s.BeatID)
				}
				if s.IsEnding != (i == len(beats)-1) {
					t.Errorf("scene %d: isEnding=%v", i, s.IsEnding)
				}
			}

			if empty := director.CompileSequence(nil); len(empty.Scenes) != 0 {
				t.Errorf("expected no scenes, got %d", len(empty.Scenes))
			}
		})
	}
}
