package icons

import (
	"bytes"
	"fmt"
	"image"
	"log/slog"
	"os"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// defaultSVGSize is the render size used when an SVG source declares no
// explicit pixel dimensions.
const defaultSVGSize = 512

// LoadSource reads and decodes the source icon image at path.
func LoadSource(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source image %s: %w", path, err)
	}
	return DecodeSource(data)
}

// DecodeSource decodes source data in any registered raster format, or
// rasterizes SVG input.
func DecodeSource(data []byte) (image.Image, error) {
	if isSVGData(data) {
		return renderSVG(data)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode source image: %w", err)
	}
	slog.Debug("decoded source image",
		"format", format,
		"width", img.Bounds().Dx(),
		"height", img.Bounds().Dy())
	return img, nil
}

// isSVGData performs a lightweight detection of SVG content from raw bytes.
func isSVGData(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	// Only inspect the first ~4KB for detection
	n := len(data)
	if n > 4096 {
		n = 4096
	}
	header := bytes.ToLower(bytes.TrimSpace(data[:n]))
	return bytes.HasPrefix(header, []byte("<svg")) ||
		bytes.Contains(header, []byte("<svg")) ||
		bytes.Contains(header, []byte(`xmlns="http://www.w3.org/2000/svg"`)) ||
		bytes.Contains(header, []byte(`xmlns='http://www.w3.org/2000/svg'`))
}

// renderSVG rasterizes SVG data onto a transparent canvas. The render size is
// taken from the SVG's explicit width/height attributes when present,
// otherwise defaultSVGSize is used.
func renderSVG(svgData []byte) (image.Image, error) {
	width, height, ok := parseSVGExplicitSize(svgData)
	if !ok {
		width, height = defaultSVGSize, defaultSVGSize
		slog.Debug("SVG lacks explicit size; using default", "size", defaultSVGSize)
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(svgData))
	if err != nil {
		return nil, fmt.Errorf("failed to parse SVG: %w", err)
	}
	icon.SetTarget(0, 0, float64(width), float64(height))

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, dst, dst.Bounds())
	dasher := rasterx.NewDasher(width, height, scanner)
	icon.Draw(dasher, 1.0)

	return dst, nil
}

// parseSVGExplicitSize extracts the width and height attributes from the SVG
// start tag. Returns ok=false when either is missing or not a positive number.
// A viewBox alone is not treated as a pixel size.
func parseSVGExplicitSize(data []byte) (int, int, bool) {
	n := len(data)
	if n > 8192 {
		n = 8192
	}
	s := strings.ToLower(string(data[:n]))

	i := strings.Index(s, "<svg")
	if i < 0 {
		return 0, 0, false
	}
	j := strings.Index(s[i:], ">")
	if j < 0 {
		j = len(s)
	} else {
		j = i + j
	}
	tag := s[i:j]

	w, wOk := parseNumericAttr(tag, "width")
	h, hOk := parseNumericAttr(tag, "height")
	if wOk && hOk && w > 0 && h > 0 {
		return w, h, true
	}
	return 0, 0, false
}

// parseNumericAttr extracts the leading numeric value of a quoted attribute
// (e.g. width="128px" yields 128).
func parseNumericAttr(tag, attr string) (int, bool) {
	pos := strings.Index(tag, attr+"=")
	if pos < 0 {
		return 0, false
	}
	rest := tag[pos+len(attr)+1:]
	if len(rest) == 0 {
		return 0, false
	}
	quote := rest[0]
	if quote != '"' && quote != '\'' {
		return 0, false
	}
	rest = rest[1:]
	if end := strings.IndexByte(rest, quote); end >= 0 {
		rest = rest[:end]
	}

	num := 0
	found := false
	for i := 0; i < len(rest); i++ {
		ch := rest[i]
		if ch >= '0' && ch <= '9' {
			found = true
			num = num*10 + int(ch-'0')
		} else if found {
			break
		}
	}
	if !found || num <= 0 {
		return 0, false
	}
	return num, true
}
