// Package preview draws storyboard frames of compiled scenes. It is a
// debugging aid: characters are drawn as blocks, dialogue as plain bubbles.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/sync/errgroup"

	"github.com/skip2/go-qrcode"

	"github.com/ivlev/beat2scene/internal/director"
	"github.com/ivlev/beat2scene/internal/renderer"
	"github.com/ivlev/beat2scene/internal/stage"
)

const bubblePadding = 4

var (
	lightingColors = map[stage.LightingType]color.RGBA{
		stage.LightingDay:       {196, 220, 240, 255},
		stage.LightingNight:     {28, 32, 64, 255},
		stage.LightingSpotlight: {48, 44, 40, 255},
		stage.LightingDim:       {92, 92, 104, 255},
	}
	genderColors = map[stage.Gender]color.RGBA{
		stage.GenderMale:   {64, 108, 196, 255},
		stage.GenderFemale: {212, 92, 140, 255},
	}
	defaultCharacterColor = color.RGBA{128, 128, 128, 255}
	textColor             = color.RGBA{16, 16, 16, 255}
	labelColor            = color.RGBA{250, 250, 250, 255}
)

// Renderer draws frames at stage resolution, so scene coordinates map to
// pixels one to one.
type Renderer struct {
	Width     int
	Height    int
	Backdrops *Backdrops // optional
	Workers   int        // WriteScript parallelism, 0 = unlimited
	QRCodes   bool       // stamp the beat id as a QR code

	pool *canvasPool
}

func NewRenderer(width, height int, backdrops *Backdrops) *Renderer {
	return &Renderer{
		Width:     width,
		Height:    height,
		Backdrops: backdrops,
		pool:      newCanvasPool(),
	}
}

// Frame draws scene as it looks tMillis after it starts. A negative time
// means the end of the scene. Hand the canvas back with Release.
func (r *Renderer) Frame(scene director.SceneState, tMillis int) (*image.RGBA, error) {
	if tMillis < 0 {
		tMillis = scene.DurationMillis
	}

	canvas := r.pool.Get(image.Rect(0, 0, r.Width, r.Height))
	if err := r.drawBackground(canvas, scene); err != nil {
		r.pool.Put(canvas)
		return nil, err
	}

	for _, cs := range scene.Characters {
		drawCharacter(canvas, cs, renderer.CharacterAt(cs, tMillis), r.Width, r.Height)
	}
	for _, ds := range scene.Dialogues {
		drawBubble(canvas, ds, renderer.VisibleText(ds, tMillis))
	}

	drawText(canvas, bubblePadding, 13+bubblePadding, fmt.Sprintf("%s  t=%dms", scene.BeatID, tMillis), textColor)

	if r.QRCodes {
		if err := stampQR(canvas, scene.BeatID); err != nil {
			r.pool.Put(canvas)
			return nil, fmt.Errorf("qr code: %w", err)
		}
	}
	return canvas, nil
}

// Release returns a canvas obtained from Frame.
func (r *Renderer) Release(canvas *image.RGBA) {
	r.pool.Put(canvas)
}

// WriteFrame renders a frame and saves it as PNG.
func (r *Renderer) WriteFrame(scene director.SceneState, tMillis int, path string) error {
	canvas, err := r.Frame(scene, tMillis)
	if err != nil {
		return err
	}
	defer r.Release(canvas)
	return WritePNG(path, canvas)
}

// WriteScript renders one frame per scene into dir and returns the paths in
// scene order.
func (r *Renderer) WriteScript(script *director.TheaterScript, dir string, tMillis int) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	paths := make([]string, len(script.Scenes))
	var g errgroup.Group
	if r.Workers > 0 {
		g.SetLimit(r.Workers)
	}
	for i := range script.Scenes {
		paths[i] = filepath.Join(dir, fmt.Sprintf("scene_%03d.png", i+1))
		g.Go(func() error {
			if err := r.WriteFrame(script.Scenes[i], tMillis, paths[i]); err != nil {
				return fmt.Errorf("scene %d (%s): %w", i+1, script.Scenes[i].BeatID, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

// WritePNG encodes img to path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (r *Renderer) drawBackground(canvas *image.RGBA, scene director.SceneState) error {
	backdrop, err := r.Backdrops.Load(scene.BackgroundRes)
	if err != nil {
		return fmt.Errorf("backdrop %s: %w", scene.BackgroundRes, err)
	}
	if backdrop != nil {
		draw.BiLinear.Scale(canvas, canvas.Bounds(), backdrop, backdrop.Bounds(), draw.Src, nil)
		return nil
	}

	bg := lightingColors[stage.LightingDay]
	if scene.Lighting != nil {
		if c, ok := lightingColors[scene.Lighting.Type]; ok {
			bg = c
		}
	}
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	return nil
}

// characterRect is the body block of a character standing at (x, y).
func characterRect(x, y float64, stageWidth, stageHeight int) image.Rectangle {
	w := stageWidth / 16
	h := stageHeight / 4
	left := int(x) - w/2
	bottom := int(y)
	return image.Rect(left, bottom-h, left+w, bottom)
}

func drawCharacter(canvas *image.RGBA, cs director.CharacterState, f renderer.Frame, stageWidth, stageHeight int) {
	col, ok := genderColors[cs.Gender]
	if !ok {
		col = defaultCharacterColor
	}
	alpha := f.Alpha
	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}
	mask := image.NewUniform(color.Alpha{A: uint8(alpha * 255)})

	body := characterRect(f.X, f.Y, stageWidth, stageHeight)
	draw.DrawMask(canvas, body, image.NewUniform(col), image.Point{}, mask, image.Point{}, draw.Over)

	// Facing marker on the top corner of the block.
	marker := body.Dx() / 4
	notch := image.Rect(body.Max.X-marker, body.Min.Y, body.Max.X, body.Min.Y+marker)
	if f.FlipX {
		notch = image.Rect(body.Min.X, body.Min.Y, body.Min.X+marker, body.Min.Y+marker)
	}
	draw.DrawMask(canvas, notch, image.NewUniform(labelColor), image.Point{}, mask, image.Point{}, draw.Over)

	drawText(canvas, body.Min.X, body.Max.Y+13, cs.Name, textColor)
}

func drawBubble(canvas *image.RGBA, ds director.DialogueState, visible string) {
	if visible == "" {
		return
	}
	label := visible
	if ds.SpeakerName != "" {
		label = ds.SpeakerName + ": " + visible
	}

	face := basicfont.Face7x13
	w := font.MeasureString(face, label).Ceil() + 2*bubblePadding
	h := face.Height + 2*bubblePadding

	x, y := int(ds.X), int(ds.Y)
	bounds := canvas.Bounds()
	if x+w > bounds.Max.X {
		x = bounds.Max.X - w
	}
	if x < 0 {
		x = 0
	}
	if y-h < 0 {
		y = h
	}

	rect := image.Rect(x, y-h, x+w, y)
	draw.Draw(canvas, rect, image.NewUniform(labelColor), image.Point{}, draw.Src)
	drawText(canvas, x+bubblePadding, y-bubblePadding-face.Descent, label, textColor)
}

// stampQR puts a QR code of content in the bottom right corner.
func stampQR(canvas *image.RGBA, content string) error {
	if content == "" {
		return nil
	}
	q, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return err
	}

	img := q.Image(canvas.Bounds().Dy() / 6)
	size := img.Bounds().Size()
	at := canvas.Bounds().Max.Sub(size).Sub(image.Pt(bubblePadding, bubblePadding))
	draw.Draw(canvas, image.Rectangle{Min: at, Max: at.Add(size)}, img, img.Bounds().Min, draw.Src)
	return nil
}

func drawText(canvas *image.RGBA, x, y int, s string, col color.Color) {
	d := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
