package icons

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
)

// Target describes one output file of the generated icon set.
type Target struct {
	Name     string
	Size     int
	Maskable bool
}

// Targets is the fixed set of PWA icons derived from a single source image.
// Files are written in this order.
var Targets = []Target{
	{Name: "favicon-16x16.png", Size: 16},
	{Name: "favicon-32x32.png", Size: 32},
	{Name: "favicon-48x48.png", Size: 48},
	{Name: "apple-touch-icon.png", Size: 180},
	{Name: "icon-72x72.png", Size: 72},
	{Name: "icon-96x96.png", Size: 96},
	{Name: "icon-128x128.png", Size: 128},
	{Name: "icon-144x144.png", Size: 144},
	{Name: "icon-152x152.png", Size: 152},
	{Name: "icon-192x192.png", Size: 192},
	{Name: "icon-384x384.png", Size: 384},
	{Name: "icon-512x512.png", Size: 512},
	{Name: "maskable-icon.png", Size: 512, Maskable: true},
}

// safeZoneRatio is the fraction of a maskable icon guaranteed to stay visible
// after platform shape masking.
const safeZoneRatio = 0.8

// maskableBackground is the brand color #00DBDE used to pad maskable icons.
var maskableBackground = color.RGBA{R: 0, G: 219, B: 222, A: 255}

// Render produces the pixel data for a single target from the source image.
func Render(src image.Image, target Target) *image.RGBA {
	if target.Maskable {
		return renderMaskable(src, target.Size)
	}
	return scaleTo(src, target.Size, target.Size)
}

// renderMaskable scales the source into the safe zone of an opaque canvas,
// centered with equal padding on each side.
func renderMaskable(src image.Image, size int) *image.RGBA {
	visible := int(float64(size) * safeZoneRatio)
	padding := (size - visible) / 2

	canvas := createTargetCanvas(size, size, maskableBackground)
	scaled := scaleTo(src, visible, visible)

	rect := image.Rect(padding, padding, padding+visible, padding+visible)
	draw.Draw(canvas, rect, scaled, image.Point{}, draw.Over)
	return canvas
}

// scaleTo resamples the source to the exact target dimensions. No aspect
// ratio handling here; targets are square-to-square.
func scaleTo(src image.Image, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

func createTargetCanvas(w, h int, bg color.Color) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: bg}, image.Point{}, draw.Src)
	return dst
}

// WriteFile renders a single target and writes it as a PNG file into dir.
// Returns the path of the written file.
func WriteFile(src image.Image, dir string, target Target) (string, error) {
	img := Render(src, target)

	var buf bytes.Buffer
	// Pre-grow buffer to reduce re-allocations; rough heuristic: 1 byte per pixel
	buf.Grow(target.Size * target.Size)
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", target.Name, err)
	}

	path := filepath.Join(dir, target.Name)
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// Generate writes the full icon set derived from src into dir, creating the
// directory if needed. The optional progress callback runs after each file
// has been written.
func Generate(src image.Image, dir string, progress func(target Target, path string)) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create icon directory %s: %w", dir, err)
	}

	for _, target := range Targets {
		path, err := WriteFile(src, dir, target)
		if err != nil {
			return err
		}
		slog.Debug("icon written",
			"name", target.Name,
			"size", target.Size,
			"maskable", target.Maskable)
		if progress != nil {
			progress(target, path)
		}
	}
	return nil
}
