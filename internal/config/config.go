package config

import (
	"errors"
	"path/filepath"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
)

const (
	DefaultWidth  = 1280
	DefaultHeight = 720
)

type Config struct {
	InputPath    string
	OutputScript string
	CatalogPath  string
	Width        int
	Height       int
	Workers      int
	PreviewDir   string
	PreviewAt    int // ms into each scene, negative = scene end
	PreviewQR    bool
	BackdropDir  string
	ShowStats    bool
	BuildVersion string
}

// Default returns the settings used when no flag overrides them.
func Default() Config {
	return Config{
		CatalogPath: filepath.FromSlash("input/catalog.yaml"),
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		Workers:     DefaultWorkers(),
		PreviewAt:   -1,
	}
}

// DefaultWorkers is the number of physical cores, or logical CPUs when the
// core count is unavailable.
func DefaultWorkers() int {
	n, err := cpu.Counts(false)
	if err != nil || n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

func (c Config) Validate() error {
	if c.InputPath == "" {
		return errors.New("missing -input")
	}
	if c.OutputScript == "" {
		return errors.New("missing -output")
	}
	if c.Width <= 0 || c.Height <= 0 {
		return errors.New("width and height must be > 0")
	}
	if c.Workers < 0 {
		return errors.New("workers must be >= 0")
	}
	if (c.BackdropDir != "" || c.PreviewQR) && c.PreviewDir == "" {
		return errors.New("-backdrops and -preview-qr need -preview-dir")
	}
	return nil
}
