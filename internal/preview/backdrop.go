package preview

import (
	"errors"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sync"
)

var backdropExtensions = []string{".png", ".jpg", ".jpeg"}

// Backdrops loads background images named after their resource id, e.g.
// bg_park.png, from a directory. Decoded images are cached.
type Backdrops struct {
	dir string

	mu     sync.Mutex
	images map[string]image.Image
}

func NewBackdrops(dir string) *Backdrops {
	return &Backdrops{dir: dir, images: make(map[string]image.Image)}
}

// Load returns the image for res, or nil when the directory has none.
func (b *Backdrops) Load(res string) (image.Image, error) {
	if b == nil || b.dir == "" || res == "" {
		return nil, nil
	}

	b.mu.Lock()
	img, ok := b.images[res]
	b.mu.Unlock()
	if ok {
		return img, nil
	}

	img, err := b.find(res)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if cached, ok := b.images[res]; ok {
		return cached, nil
	}
	b.images[res] = img
	return img, nil
}

// find decodes the first file for res without holding the cache lock.
func (b *Backdrops) find(res string) (image.Image, error) {
	for _, ext := range backdropExtensions {
		img, err := decodeFile(filepath.Join(b.dir, res+ext))
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		return img, err
	}
	return nil, nil
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	return img, nil
}
