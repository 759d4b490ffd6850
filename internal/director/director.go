package director

import (
	"math"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/beat2scene/internal/beat"
	"github.com/ivlev/beat2scene/internal/catalog"
	"github.com/ivlev/beat2scene/internal/stage"
)

const (
	bubbleOffsetX = 40.0
	bubbleOffsetY = -60.0

	exitAlpha = 0.3
)

// FallbackBackground is used for custom and unmapped background types.
const FallbackBackground = "bg_stage_floor"

var backgroundResources = map[stage.BackgroundType]string{
	stage.BackgroundStageFloor: "bg_stage_floor",
	stage.BackgroundPark:       "bg_park",
	stage.BackgroundCafe:       "bg_cafe",
	stage.BackgroundClassroom:  "bg_classroom",
	stage.BackgroundStreet:     "bg_street",
	stage.BackgroundHome:       "bg_home",
	stage.BackgroundNightSky:   "bg_night_sky",
}

// Director compiles beats into renderer-ready scenes
type Director struct {
	StageWidth  int
	StageHeight int
	Resources   catalog.Resolver // optional
	Workers     int              // CompileSequence parallelism, 0 = unlimited
}

// NewDirector creates a new Director for a stage of the given size
func NewDirector(stageWidth, stageHeight int) *Director {
	return &Director{
		StageWidth:  stageWidth,
		StageHeight: stageHeight,
	}
}

// Compile flattens a beat into a SceneState. It never fails: dialogue whose
// speaker is not on stage is placed at the fallback position.
// Timing is assumed non-negative; see beat.Validate.
func (d *Director) Compile(b *beat.Beat) SceneState {
	scene := SceneState{
		BeatID:         b.ID,
		Name:           b.Name,
		BackgroundRes:  d.backgroundRes(b.Layers.Background),
		Lighting:       b.Layers.Lighting,
		Sound:          b.Layers.Sound,
		Characters:     make([]CharacterState, 0, len(b.Layers.Characters)),
		Dialogues:      make([]DialogueState, 0, len(b.Layers.Dialogues)),
		DurationMillis: int(b.Duration * 1000),
	}

	for _, c := range b.Layers.Characters {
		scene.Characters = append(scene.Characters, d.compileCharacter(c))
	}

	for _, line := range b.Layers.Dialogues {
		scene.Dialogues = append(scene.Dialogues, d.compileDialogue(line, b, scene.Characters))
	}

	return scene
}

// CompileSequence compiles beats in parallel. Scenes keep the input order and
// the last one is marked as the ending.
func (d *Director) CompileSequence(beats []beat.Beat) TheaterScript {
	scenes := make([]SceneState, len(beats))

	var g errgroup.Group
	if d.Workers > 0 {
		g.SetLimit(d.Workers)
	}
	for i := range beats {
		g.Go(func() error {
			scenes[i] = d.Compile(&beats[i])
			return nil
		})
	}
	// Compile cannot fail, so Wait only joins the workers.
	_ = g.Wait()

	if len(scenes) > 0 {
		scenes[len(scenes)-1].IsEnding = true
	}

	return TheaterScript{Version: ScriptVersion, Scenes: scenes}
}

func (d *Director) compileCharacter(c beat.CharacterAction) CharacterState {
	w, h := float64(d.StageWidth), float64(d.StageHeight)
	pos := c.Movement.DisplayPosition()
	x, y := pos.ToCoordinate(w, h)
	sx, sy := c.Movement.StartPosition().ToCoordinate(w, h)

	cs := CharacterState{
		CharacterID:     c.CharacterID,
		Name:            c.CharacterName,
		Gender:          c.Gender,
		ImageRes:        d.characterRes(c),
		X:               x,
		Y:               y,
		StartX:          sx,
		StartY:          sy,
		Zone:            pos.Zone,
		Animation:       selectAnimation(c),
		AnimationMillis: c.Movement.Speed.Millis(),
		FlipX:           c.FacingDirection == stage.FacingLeft,
		Alpha:           1.0,
		Emotion:         c.Emotion,
	}
	if c.Movement.Type == stage.MoveExit {
		cs.Alpha = exitAlpha
	}
	if c.Gesture != nil {
		cs.Gesture = c.Gesture.Type
	}
	return cs
}

// selectAnimation applies gesture > movement > emotion > idle.
func selectAnimation(c beat.CharacterAction) stage.Animation {
	if c.Gesture != nil {
		if a, ok := stage.GestureAnimation(c.Gesture.Type); ok {
			return a
		}
	}
	if a, ok := stage.MovementAnimation(c.Movement.Type); ok {
		return a
	}
	if a, ok := stage.EmotionAnimation(c.Emotion.Type, false); ok {
		return a
	}
	return stage.AnimIdle
}

func (d *Director) compileDialogue(line beat.DialogueAction, b *beat.Beat, characters []CharacterState) DialogueState {
	ds := DialogueState{
		CharacterID:   line.CharacterID,
		Text:          line.Text,
		Emotion:       line.Emotion,
		DelayMillis:   int(math.Round(line.Delay * 1000)),
		TypingSpeedMs: line.TypingSpeedMs,
	}

	speaker := -1
	for i := range characters {
		if characters[i].CharacterID == line.CharacterID {
			speaker = i
			break
		}
	}

	if speaker < 0 {
		ds.X, ds.Y = 0.5*float64(d.StageWidth), 0.15*float64(d.StageHeight)
		return ds
	}

	cs := characters[speaker]
	ds.X, ds.Y = cs.X+bubbleOffsetX, cs.Y+bubbleOffsetY
	ds.SpeakerName = cs.Name
	ds.SpeakerAnimation, _ = stage.EmotionAnimation(line.Emotion, true)
	if action, ok := b.Character(line.CharacterID); ok {
		ds.Voice = action.Voice
	}
	return ds
}

func (d *Director) backgroundRes(bg *beat.Background) string {
	name := FallbackBackground
	if bg != nil {
		if res, ok := backgroundResources[bg.Type]; ok {
			name = res
		}
	}
	return d.resolve(name)
}

// characterRes looks up a sprite by character id, then by gender.
func (d *Director) characterRes(c beat.CharacterAction) string {
	if d.Resources == nil {
		return ""
	}
	if h, ok := d.Resources.Lookup("character_" + c.CharacterID); ok {
		return h
	}
	if c.Gender != "" {
		if h, ok := d.Resources.Lookup("character_" + strings.ToLower(string(c.Gender))); ok {
			return h
		}
	}
	return ""
}

// resolve maps a symbolic name to its handle; unresolved names are used as is.
func (d *Director) resolve(name string) string {
	if d.Resources != nil {
		if h, ok := d.Resources.Lookup(name); ok {
			return h
		}
	}
	return name
}
