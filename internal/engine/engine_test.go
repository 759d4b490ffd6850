package engine

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/ivlev/beat2scene/internal/beat"
	"github.com/ivlev/beat2scene/internal/catalog"
	"github.com/ivlev/beat2scene/internal/config"
	"github.com/ivlev/beat2scene/internal/director"
	"github.com/ivlev/beat2scene/internal/stage"
	"github.com/ivlev/beat2scene/internal/wire"
)

const layeredInput = `type: layered
beats:
  - id: meet
    name: first meeting
    locationLayer:
      background: PARK
    dialogueLayer:
      entries:
        - characterId: anna
          text: Hi!
          emotion: HAPPY
          startTime: 0.5
        - characterId: ghost
          text: Boo
          startTime: 1
    movementLayer:
      entries:
        - characterId: anna
          fromPosition: OFF_STAGE_LEFT
          toPosition: LEFT
          startTime: 0
          endTime: 1
  - id: leave
    duration: 2
    movementLayer:
      entries:
        - characterId: boris
          toPosition: RIGHT
`

func testDirectory() catalog.MapDirectory {
	return catalog.NewMapDirectory(
		catalog.Character{ID: "anna", Name: "Anna", Gender: stage.GenderFemale},
		catalog.Character{ID: "boris", Name: "Boris", Gender: stage.GenderMale},
	)
}

func newTestProject(t *testing.T, input string) (*Project, *test.Hook) {
	t.Helper()
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "beats.yaml")
	if err := os.WriteFile(inputPath, []byte(input), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.InputPath = inputPath
	cfg.OutputScript = filepath.Join(dir, "out", "script.yaml")
	cfg.Workers = 2

	logger, hook := test.NewNullLogger()
	p := NewProject(&cfg, testDirectory(), catalog.MapResolver{"bg_park": "parks/day.png"}, logrus.NewEntry(logger))
	return p, hook
}

func TestRunLayered(t *testing.T) {
	p, hook := newTestProject(t, layeredInput)
	p.Config.PreviewDir = filepath.Join(filepath.Dir(p.Config.OutputScript), "frames")

	if err := p.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	script, err := director.ReadScript(p.Config.OutputScript)
	if err != nil {
		t.Fatalf("script not readable: %v", err)
	}
	if len(script.Scenes) != 2 {
		t.Fatalf("expected 2 scenes, got %d", len(script.Scenes))
	}

	first := script.Scenes[0]
	if first.BeatID != "meet" || first.BackgroundRes != "parks/day.png" {
		t.Errorf("unexpected first scene: %s %s", first.BeatID, first.BackgroundRes)
	}
	if len(first.Characters) != 1 || first.Characters[0].CharacterID != "anna" {
		t.Errorf("ghost should be dropped, got %+v", first.Characters)
	}
	if len(first.Dialogues) != 2 {
		t.Errorf("both lines survive reconciliation, got %d", len(first.Dialogues))
	}
	if first.IsEnding || !script.Scenes[1].IsEnding {
		t.Errorf("only the last scene ends the script")
	}
	if script.Scenes[1].DurationMillis != 2000 {
		t.Errorf("authored duration lost: %d", script.Scenes[1].DurationMillis)
	}

	if len(p.Frames) != 2 {
		t.Errorf("expected 2 preview frames, got %d", len(p.Frames))
	}

	var warned bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel && e.Data["beat"] == "meet" {
			warned = true
		}
	}
	if !warned {
		t.Error("dropping ghost should be logged as a warning")
	}
}

func TestRunBeatCollection(t *testing.T) {
	input := `{"type": "beat", "beats": [{"id": "b", "duration": 1.5, "layers": {"characters": [{"characterId": "anna", "characterName": "Anna", "movement": {"type": "STAY", "to": {"x": 0.5, "y": 0.6}}, "emotion": {"type": "NEUTRAL", "intensity": 0.5}}]}}]}`
	p, _ := newTestProject(t, input)
	p.Config.OutputScript = filepath.Join(filepath.Dir(p.Config.OutputScript), "script.json")

	if err := p.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if p.Script == nil || len(p.Script.Scenes) != 1 {
		t.Fatalf("expected a one-scene script")
	}
	cs := p.Script.Scenes[0].Characters[0]
	if cs.X != 640 || cs.Y != 432 {
		t.Errorf("expected (640, 432), got (%v, %v)", cs.X, cs.Y)
	}
}

func TestRunFailures(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		target error
	}{
		{"malformed", "type: [", wire.ErrConversionFailed},
		{"unknown tag", "type: opera\nbeats: []\n", wire.ErrConversionFailed},
		{"zero duration", "type: beat\nbeats:\n  - id: b\n    duration: 0\n", beat.ErrInvalidTiming},
		{"backwards movement", "type: layered\nbeats:\n  - id: l\n    movementLayer:\n      entries:\n        - characterId: anna\n          toPosition: LEFT\n          startTime: 2\n          endTime: 1\n", beat.ErrInvalidTiming},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newTestProject(t, tt.input)
			err := p.Run()
			if !errors.Is(err, tt.target) {
				t.Errorf("expected %v, got %v", tt.target, err)
			}
			if _, statErr := os.Stat(p.Config.OutputScript); statErr == nil {
				t.Error("no script should be written on failure")
			}
		})
	}
}

func TestClassicWithoutDirectory(t *testing.T) {
	p, hook := newTestProject(t, layeredInput)
	p.Directory = nil

	c, err := wire.Decode([]byte(layeredInput), wire.FormatYAML)
	if err != nil {
		t.Fatal(err)
	}
	beats, err := p.Classic(c)
	if err != nil {
		t.Fatal(err)
	}
	for _, b := range beats {
		if len(b.Layers.Characters) != 0 {
			t.Errorf("beat %s: nobody resolves without a directory", b.ID)
		}
	}
	if len(hook.AllEntries()) != 2 {
		t.Errorf("expected one warning per beat, got %d", len(hook.AllEntries()))
	}
}
