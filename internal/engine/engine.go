package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ivlev/beat2scene/internal/beat"
	"github.com/ivlev/beat2scene/internal/catalog"
	"github.com/ivlev/beat2scene/internal/config"
	"github.com/ivlev/beat2scene/internal/director"
	"github.com/ivlev/beat2scene/internal/preview"
	"github.com/ivlev/beat2scene/internal/wire"
)

// Project is one batch run: a collection file in, a theater script out.
type Project struct {
	Config    *config.Config
	Directory catalog.Directory // optional, needed for layered input
	Resources catalog.Resolver  // optional
	Log       *logrus.Entry

	Script  *director.TheaterScript
	Frames  []string
	Elapsed time.Duration
}

func NewProject(cfg *config.Config, dir catalog.Directory, res catalog.Resolver, log *logrus.Entry) *Project {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Project{
		Config:    cfg,
		Directory: dir,
		Resources: res,
		Log:       log,
	}
}

func (p *Project) Run() error {
	startTime := time.Now()
	log := p.Log.WithField("input", p.Config.InputPath)

	collection, err := wire.ReadFile(p.Config.InputPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", p.Config.InputPath, err)
	}

	fmt.Printf("[*] Источник: %s | Тип: %s | Битов: %d\n", p.Config.InputPath, collection.Kind(), collection.Len())
	fmt.Printf("[*] Сцена: %dx%d | Потоки: %d\n", p.Config.Width, p.Config.Height, p.Config.Workers)

	script, err := p.Compile(collection)
	if err != nil {
		return err
	}
	p.Script = script

	if err := os.MkdirAll(filepath.Dir(p.Config.OutputScript), 0755); err != nil {
		return err
	}
	if err := director.WriteScript(script, p.Config.OutputScript); err != nil {
		return fmt.Errorf("write script: %w", err)
	}
	log.WithFields(logrus.Fields{"scenes": len(script.Scenes), "output": p.Config.OutputScript}).Info("script written")

	if p.Config.PreviewDir != "" {
		r := preview.NewRenderer(p.Config.Width, p.Config.Height, preview.NewBackdrops(p.Config.BackdropDir))
		r.Workers = p.Config.Workers
		r.QRCodes = p.Config.PreviewQR
		frames, err := r.WriteScript(script, p.Config.PreviewDir, p.Config.PreviewAt)
		if err != nil {
			return fmt.Errorf("preview: %w", err)
		}
		p.Frames = frames
		fmt.Printf("[*] Раскадровка: %d кадров в %s\n", len(frames), p.Config.PreviewDir)
	}

	p.Elapsed = time.Since(startTime)

	if p.Config.ShowStats {
		fmt.Print(p.report())
	}

	return nil
}

// Compile turns a decoded collection into a theater script. Layered beats
// are reconciled against the directory first; characters it does not know
// are dropped with a warning. Every beat is validated before compiling.
func (p *Project) Compile(collection wire.Collection) (*director.TheaterScript, error) {
	beats, err := p.Classic(collection)
	if err != nil {
		return nil, err
	}

	for i := range beats {
		if err := beats[i].Validate(); err != nil {
			return nil, err
		}
	}

	dir := director.NewDirector(p.Config.Width, p.Config.Height)
	dir.Resources = p.Resources
	dir.Workers = p.Config.Workers

	script := dir.CompileSequence(beats)
	return &script, nil
}

// Classic returns the beats of a collection in flattened form.
func (p *Project) Classic(collection wire.Collection) ([]beat.Beat, error) {
	switch c := collection.(type) {
	case *wire.BeatCollection:
		return c.Beats, nil
	case *wire.LayeredCollection:
		beats := make([]beat.Beat, 0, len(c.Beats))
		for i := range c.Beats {
			lb := &c.Beats[i]
			if err := lb.Validate(); err != nil {
				return nil, err
			}
			if missing := beat.UnresolvedCharacters(lb, p.Directory); len(missing) > 0 {
				p.Log.WithFields(logrus.Fields{"beat": lb.ID, "characters": missing}).Warn("characters not in catalog dropped")
			}
			beats = append(beats, beat.ToClassic(lb, p.Directory))
		}
		return beats, nil
	default:
		return nil, fmt.Errorf("unsupported collection %T", collection)
	}
}

func (p *Project) report() string {
	scenes := 0
	if p.Script != nil {
		scenes = len(p.Script.Scenes)
	}
	return fmt.Sprintf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Total Time: %.3fs\n"+
			"Scenes: %d\n"+
			"Preview Frames: %d\n"+
			"----------------------------\n",
		p.Config.BuildVersion, p.Elapsed.Seconds(), scenes, len(p.Frames),
	)
}
