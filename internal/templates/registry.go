package templates

import (
	"fmt"
	"sort"

	"github.com/ivlev/beat2scene/internal/beat"
	"github.com/ivlev/beat2scene/internal/catalog"
)

// Params are the arguments of a template looked up by name.
type Params struct {
	ID    string              `json:"id"`
	Cast  []catalog.Character `json:"cast"`
	Lines []string            `json:"lines"`
}

func (p Params) line(i int) string {
	if i < len(p.Lines) {
		return p.Lines[i]
	}
	return ""
}

type entry struct {
	cast  int
	build func(p Params) beat.Beat
}

var registry = map[string]entry{
	"firstMeeting": {2, func(p Params) beat.Beat {
		return FirstMeeting(p.ID, p.Cast[0], p.Cast[1], p.line(0), p.line(1))
	}},
	"awkwardSilence": {2, func(p Params) beat.Beat {
		return AwkwardSilence(p.ID, p.Cast[0], p.Cast[1])
	}},
	"confrontation": {2, func(p Params) beat.Beat {
		return Confrontation(p.ID, p.Cast[0], p.Cast[1], p.line(0), p.line(1))
	}},
	"stepBack": {2, func(p Params) beat.Beat {
		return StepBack(p.ID, p.Cast[0], p.Cast[1], p.line(0))
	}},
	"confession": {2, func(p Params) beat.Beat {
		return Confession(p.ID, p.Cast[0], p.Cast[1], p.line(0), p.line(1))
	}},
	"celebration": {1, func(p Params) beat.Beat {
		return Celebration(p.ID, p.Cast, p.line(0))
	}},
	"farewell": {2, func(p Params) beat.Beat {
		return Farewell(p.ID, p.Cast[0], p.Cast[1], p.line(0), p.line(1))
	}},
	"monologue": {1, func(p Params) beat.Beat {
		return Monologue(p.ID, p.Cast[0], p.Lines)
	}},
	"entrance": {1, func(p Params) beat.Beat {
		return Entrance(p.ID, p.Cast[0], p.line(0))
	}},
}

// Names lists the registered templates in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build runs the named template.
func Build(name string, p Params) (beat.Beat, error) {
	e, ok := registry[name]
	if !ok {
		return beat.Beat{}, fmt.Errorf("unknown template %q", name)
	}
	if len(p.Cast) < e.cast {
		return beat.Beat{}, fmt.Errorf("template %q needs %d cast members, got %d", name, e.cast, len(p.Cast))
	}
	if p.ID == "" {
		return beat.Beat{}, fmt.Errorf("template %q: missing beat id", name)
	}
	return e.build(p), nil
}
