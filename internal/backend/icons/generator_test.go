package icons

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// newTestSource builds an opaque single-color square image
func newTestSource(size int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestTargets_FixedTable(t *testing.T) {
	expected := []struct {
		name     string
		size     int
		maskable bool
	}{
		{"favicon-16x16.png", 16, false},
		{"favicon-32x32.png", 32, false},
		{"favicon-48x48.png", 48, false},
		{"apple-touch-icon.png", 180, false},
		{"icon-72x72.png", 72, false},
		{"icon-96x96.png", 96, false},
		{"icon-128x128.png", 128, false},
		{"icon-144x144.png", 144, false},
		{"icon-152x152.png", 152, false},
		{"icon-192x192.png", 192, false},
		{"icon-384x384.png", 384, false},
		{"icon-512x512.png", 512, false},
		{"maskable-icon.png", 512, true},
	}

	if len(Targets) != len(expected) {
		t.Fatalf("expected %d targets, got %d", len(expected), len(Targets))
	}
	for i, want := range expected {
		got := Targets[i]
		if got.Name != want.name || got.Size != want.size || got.Maskable != want.maskable {
			t.Errorf("target[%d] = %+v, expected %+v", i, got, want)
		}
	}
}

func TestRender_Dimensions(t *testing.T) {
	src := newTestSource(512, color.RGBA{255, 0, 0, 255})

	for _, target := range Targets {
		t.Run(target.Name, func(t *testing.T) {
			img := Render(src, target)
			bounds := img.Bounds()
			if bounds.Dx() != target.Size || bounds.Dy() != target.Size {
				t.Errorf("expected %dx%d, got %dx%d",
					target.Size, target.Size, bounds.Dx(), bounds.Dy())
			}
		})
	}
}

func TestRender_MaskableSafeZone(t *testing.T) {
	red := color.RGBA{255, 0, 0, 255}
	src := newTestSource(512, red)

	img := Render(src, Target{Name: "maskable-icon.png", Size: 512, Maskable: true})

	size := 512
	visible := int(float64(size) * safeZoneRatio)
	padding := (512 - visible) / 2

	// Border pixels carry the padding background color
	for _, p := range []image.Point{{0, 0}, {511, 0}, {0, 511}, {511, 511}, {padding - 1, 256}} {
		if got := img.RGBAAt(p.X, p.Y); got != maskableBackground {
			t.Errorf("border pixel (%d,%d) = %v, expected background %v", p.X, p.Y, got, maskableBackground)
		}
	}

	// Center pixels reproduce the scaled source
	for _, p := range []image.Point{{256, 256}, {padding + 1, padding + 1}, {padding + visible - 2, padding + visible - 2}} {
		if got := img.RGBAAt(p.X, p.Y); got != red {
			t.Errorf("safe zone pixel (%d,%d) = %v, expected source color %v", p.X, p.Y, got, red)
		}
	}
}

func TestRender_MaskableTransparentSourceShowsBackground(t *testing.T) {
	// A fully transparent source must leave the background visible everywhere
	src := image.NewRGBA(image.Rect(0, 0, 512, 512))

	img := Render(src, Target{Name: "maskable-icon.png", Size: 512, Maskable: true})
	if got := img.RGBAAt(256, 256); got != maskableBackground {
		t.Errorf("center pixel = %v, expected background %v", got, maskableBackground)
	}
}

func TestGenerate_WritesAllFiles(t *testing.T) {
	src := newTestSource(512, color.RGBA{0, 128, 255, 255})
	dir := filepath.Join(t.TempDir(), "icons")

	var progressed []string
	err := Generate(src, dir, func(target Target, path string) {
		progressed = append(progressed, target.Name)
	})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	if len(progressed) != len(Targets) {
		t.Fatalf("expected %d progress callbacks, got %d", len(Targets), len(progressed))
	}

	for i, target := range Targets {
		if progressed[i] != target.Name {
			t.Errorf("progress[%d] = %s, expected %s", i, progressed[i], target.Name)
		}

		data, err := os.ReadFile(filepath.Join(dir, target.Name))
		if err != nil {
			t.Fatalf("missing output file %s: %v", target.Name, err)
		}
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("output %s is not a valid PNG: %v", target.Name, err)
		}
		if img.Bounds().Dx() != target.Size || img.Bounds().Dy() != target.Size {
			t.Errorf("%s is %dx%d, expected %dx%d", target.Name,
				img.Bounds().Dx(), img.Bounds().Dy(), target.Size, target.Size)
		}
	}
}

func TestWriteFile_ReturnsPath(t *testing.T) {
	src := newTestSource(64, color.RGBA{10, 20, 30, 255})
	dir := t.TempDir()

	path, err := WriteFile(src, dir, Targets[0])
	if err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	if path != filepath.Join(dir, Targets[0].Name) {
		t.Errorf("unexpected path %s", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("written file not found: %v", err)
	}
}
