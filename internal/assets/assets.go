package assets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ErrNotFound is returned when a model file does not exist.
var ErrNotFound = errors.New("asset not found")

// ErrUnsupported is returned for files raylib cannot load as a model.
var ErrUnsupported = errors.New("unsupported model format")

var manager *Manager

// Manager caches GPU models by path. It must only be used on the goroutine that owns the
// raylib window.
type Manager struct {
	models map[string]rl.Model
}

// Color name mapping for config values
var colorByName = map[string]rl.Color{
	"Red":       rl.Red,
	"Blue":      rl.Blue,
	"Green":     rl.Green,
	"Orange":    rl.Orange,
	"Gold":      rl.Gold,
	"White":     rl.White,
	"Gray":      rl.Gray,
	"LightGray": rl.LightGray,
	"DarkGray":  rl.DarkGray,
	"SkyBlue":   rl.SkyBlue,
	"Maroon":    rl.Maroon,
}

// LookupColor returns a raylib color from a name string
func LookupColor(name string) rl.Color {
	if c, ok := colorByName[name]; ok {
		return c
	}
	return rl.White
}

func Init() {
	manager = &Manager{
		models: make(map[string]rl.Model),
	}
}

// LoadModel uploads the model at path on first use and returns the cached copy after.
func LoadModel(path string) rl.Model {
	if manager == nil {
		Init()
	}

	if model, exists := manager.models[path]; exists {
		return model
	}

	model := rl.LoadModel(path)
	manager.models[path] = model
	return model
}

func Unload() {
	if manager == nil {
		return
	}

	for _, model := range manager.models {
		rl.UnloadModel(model)
	}

	manager.models = make(map[string]rl.Model)
}

// ModelFile is a model that has been found on disk and checked, ready for LoadModel.
type ModelFile struct {
	Path string
	Size int64
}

var glbMagic = []byte("glTF")

// OpenModel checks that path exists and looks like a model raylib can read. It does file
// I/O only, so it can run off the render goroutine.
func OpenModel(ctx context.Context, path string) (ModelFile, error) {
	if err := ctx.Err(); err != nil {
		return ModelFile{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ModelFile{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return ModelFile{}, fmt.Errorf("open model %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return ModelFile{}, fmt.Errorf("stat model %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".glb":
		header := make([]byte, len(glbMagic))
		if _, err := io.ReadFull(f, header); err != nil || !bytes.Equal(header, glbMagic) {
			return ModelFile{}, fmt.Errorf("%w: %s is not a binary glTF file", ErrUnsupported, path)
		}
	case ".gltf", ".obj", ".iqm", ".vox", ".m3d":
	default:
		return ModelFile{}, fmt.Errorf("%w: %s", ErrUnsupported, path)
	}

	return ModelFile{Path: path, Size: info.Size()}, nil
}

// LoadModelAsync checks path on a background goroutine.
func LoadModelAsync(ctx context.Context, path string) *Handle[ModelFile] {
	return LoadAsync(ctx, func(ctx context.Context) (ModelFile, error) {
		return OpenModel(ctx, path)
	})
}
