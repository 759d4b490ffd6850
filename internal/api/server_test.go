package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/ivlev/beat2scene/internal/catalog"
	"github.com/ivlev/beat2scene/internal/config"
	"github.com/ivlev/beat2scene/internal/director"
	"github.com/ivlev/beat2scene/internal/engine"
	"github.com/ivlev/beat2scene/internal/stage"
	"github.com/ivlev/beat2scene/internal/wire"
)

type sequentialIDs struct{ n int }

func (s *sequentialIDs) NewID() string {
	s.n++
	return fmt.Sprintf("beat-%d", s.n)
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	cfg.Workers = 2
	dir := catalog.NewMapDirectory(
		catalog.Character{ID: "anna", Name: "Anna", Gender: stage.GenderFemale},
		catalog.Character{ID: "boris", Name: "Boris", Gender: stage.GenderMale},
	)
	logger, _ := test.NewNullLogger()
	p := engine.NewProject(&cfg, dir, nil, logrus.NewEntry(logger))
	return NewServer(p, &sequentialIDs{}).Router()
}

func do(router *gin.Engine, method, path, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

const classicDoc = `{"type": "beat", "beats": [{"id": "b1", "duration": 2, "layers": {
  "characters": [{"characterId": "anna", "characterName": "Anna", "movement": {"type": "STAY", "from": {"x": 0.2, "y": 0.6}}, "emotion": {"type": "HAPPY", "intensity": 0.7}}],
  "dialogues": [{"characterId": "anna", "text": "Hello", "emotion": "HAPPY", "delay": 0.5, "typingSpeedMs": 50}]
}}]}`

const layeredDoc = `type: layered
beats:
  - id: l1
    dialogueLayer:
      entries:
        - characterId: boris
          text: Morning
          emotion: NEUTRAL
          startTime: 0
`

func TestCompile(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name        string
		contentType string
		body        string
		wantID      string
	}{
		{"classic json", "application/json", classicDoc, "b1"},
		{"layered yaml", "application/x-yaml", layeredDoc, "l1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(router, http.MethodPost, "/v1/compile", tt.contentType, tt.body)
			if w.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
			}
			var script director.TheaterScript
			if err := json.Unmarshal(w.Body.Bytes(), &script); err != nil {
				t.Fatal(err)
			}
			if len(script.Scenes) != 1 || script.Scenes[0].BeatID != tt.wantID || !script.Scenes[0].IsEnding {
				t.Errorf("unexpected script: %+v", script)
			}
			if len(script.Scenes[0].Characters) != 1 {
				t.Errorf("expected one character on stage, got %d", len(script.Scenes[0].Characters))
			}
		})
	}
}

func TestCompileRejectsBadInput(t *testing.T) {
	router := newTestRouter(t)

	bodies := map[string]string{
		"malformed":    `{"type": "beat", "beats": [`,
		"missing tag":  `{"beats": []}`,
		"bad duration": `{"type": "beat", "beats": [{"id": "x", "duration": -1}]}`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			w := do(router, http.MethodPost, "/v1/compile", "application/json", body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
			var resp map[string]string
			json.Unmarshal(w.Body.Bytes(), &resp)
			if resp["error"] == "" {
				t.Errorf("expected an error message, got %s", w.Body.String())
			}
		})
	}
}

func TestLayeredToClassic(t *testing.T) {
	router := newTestRouter(t)

	w := do(router, http.MethodPost, "/v1/layered/classic", "application/yaml", layeredDoc)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	c, err := wire.Decode(w.Body.Bytes(), wire.FormatJSON)
	if err != nil {
		t.Fatalf("response is not a wire document: %v", err)
	}
	classic, ok := c.(*wire.BeatCollection)
	if !ok || classic.Len() != 1 {
		t.Fatalf("expected one classic beat, got %+v", c)
	}
	if classic.Beats[0].Layers.Characters[0].CharacterName != "Boris" {
		t.Errorf("character not resolved from the catalog")
	}

	w = do(router, http.MethodPost, "/v1/layered/classic", "application/json", classicDoc)
	if w.Code != http.StatusBadRequest {
		t.Errorf("a classic document should be rejected, got %d", w.Code)
	}
}

func TestClassicToLayered(t *testing.T) {
	router := newTestRouter(t)

	w := do(router, http.MethodPost, "/v1/classic/layered", "application/json", classicDoc)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	c, err := wire.Decode(w.Body.Bytes(), wire.FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	layered, ok := c.(*wire.LayeredCollection)
	if !ok || layered.Len() != 1 {
		t.Fatalf("expected one layered beat, got %+v", c)
	}
	lb := layered.Beats[0]
	if len(lb.DialogueLayer.Entries) != 1 || lb.DialogueLayer.Entries[0].StartTime != 0.5 {
		t.Errorf("dialogue not carried: %+v", lb.DialogueLayer)
	}
	if len(lb.MovementLayer.Entries) != 1 || lb.MovementLayer.Entries[0].ToPosition != stage.PosLeft {
		t.Errorf("placement not carried: %+v", lb.MovementLayer)
	}

	w = do(router, http.MethodPost, "/v1/classic/layered", "application/yaml", layeredDoc)
	if w.Code != http.StatusBadRequest {
		t.Errorf("a layered document should be rejected, got %d", w.Code)
	}
}

func TestClassicToLayeredKeepsUncataloguedCast(t *testing.T) {
	router := newTestRouter(t)

	body := `{"cast": [{"id": "cleo", "name": "Cleo", "gender": "FEMALE"}, {"id": "dan", "name": "Dan", "gender": "MALE"}], "lines": ["Hi!", "Oh, hello."]}`
	w := do(router, http.MethodPost, "/v1/templates/firstMeeting", "application/json", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = do(router, http.MethodPost, "/v1/classic/layered", "application/json", w.Body.String())
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	c, err := wire.Decode(w.Body.Bytes(), wire.FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	lb := c.(*wire.LayeredCollection).Beats[0]
	if len(lb.MovementLayer.Entries) != 2 {
		t.Fatalf("expected both cast members to keep a movement, got %+v", lb.MovementLayer.Entries)
	}
	for i, id := range []string{"cleo", "dan"} {
		if got := lb.MovementLayer.Entries[i].CharacterID; got != id {
			t.Errorf("movement %d: expected %s, got %s", i, id, got)
		}
	}
}

func TestTemplates(t *testing.T) {
	router := newTestRouter(t)

	w := do(router, http.MethodGet, "/v1/templates", "", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "firstMeeting") {
		t.Errorf("template list missing firstMeeting: %s", w.Body.String())
	}

	body := `{"cast": [{"id": "anna", "name": "Anna", "gender": "FEMALE"}, {"id": "boris", "name": "Boris", "gender": "MALE"}], "lines": ["Hi!", "Oh, hello."]}`
	w = do(router, http.MethodPost, "/v1/templates/firstMeeting", "application/json", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	c, err := wire.Decode(w.Body.Bytes(), wire.FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	b := c.(*wire.BeatCollection).Beats[0]
	if b.ID != "beat-1" {
		t.Errorf("expected an id from the id source, got %q", b.ID)
	}
	if len(b.Layers.Dialogues) != 2 || b.Layers.Dialogues[1].Text != "Oh, hello." {
		t.Errorf("lines not applied: %+v", b.Layers.Dialogues)
	}

	w = do(router, http.MethodPost, "/v1/templates/opera", "application/json", body)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown template: expected 404, got %d", w.Code)
	}

	w = do(router, http.MethodPost, "/v1/templates/confrontation", "application/json", `{"cast": []}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing cast: expected 400, got %d", w.Code)
	}
}

func TestSchema(t *testing.T) {
	router := newTestRouter(t)

	w := do(router, http.MethodGet, "/v1/schema", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"oneOf"`) {
		t.Errorf("schema should be a oneOf of both documents")
	}
}
