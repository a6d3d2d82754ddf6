package assets

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestOpenModel(t *testing.T) {
	dir := t.TempDir()
	write := func(name string, data []byte) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		return path
	}

	good := write("ball.glb", append([]byte("glTF"), 2, 0, 0, 0))
	bad := write("broken.glb", []byte("nope"))
	short := write("short.glb", []byte("gl"))
	obj := write("ball.obj", []byte("v 0 0 0\n"))
	txt := write("notes.txt", []byte("hello"))

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{"binary gltf", good, nil},
		{"obj", obj, nil},
		{"missing", filepath.Join(dir, "missing.glb"), ErrNotFound},
		{"bad magic", bad, ErrUnsupported},
		{"truncated", short, ErrUnsupported},
		{"unknown extension", txt, ErrUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mf, err := OpenModel(context.Background(), tt.path)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Expected no error, got %v", err)
				}
				if mf.Path != tt.path || mf.Size == 0 {
					t.Errorf("Expected model file for %s, got %+v", tt.path, mf)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadModelAsyncMissingFile(t *testing.T) {
	h := LoadModelAsync(context.Background(), filepath.Join(t.TempDir(), "ball.glb"))
	select {
	case <-h.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for load")
	}
	if _, state, err := h.Poll(); state != Failed || !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected failed with ErrNotFound, got (%v, %v)", state, err)
	}
}

func TestLookupColor(t *testing.T) {
	if c := LookupColor("Gold"); c != rl.Gold {
		t.Errorf("Expected Gold, got %v", c)
	}
	if c := LookupColor("NoSuchColor"); c != rl.White {
		t.Errorf("Expected White fallback, got %v", c)
	}
}
