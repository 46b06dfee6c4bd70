package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

type medalCacheKey struct {
	rank int
	size int
}

var (
	medalCacheMu sync.RWMutex
	medalCache   = map[medalCacheKey]*image.RGBA{}
)

type medalPalette struct {
	fill   string
	ring   string
	stroke string
}

var medalPalettes = map[int]medalPalette{
	1: {fill: "#f5c445", ring: "#fde9a8", stroke: "#b8860b"},
	2: {fill: "#c4c9d4", ring: "#e8eaf0", stroke: "#8b909c"},
	3: {fill: "#cd8a4f", ring: "#e8b98c", stroke: "#8f5a2b"},
}

var defaultMedalPalette = medalPalette{fill: "#3a3f56", ring: "#565c78", stroke: "#23263a"}

// medalSVG builds the badge markup for one rank. Keeping the medal on the
// SVG path means the disc edges come out antialiased instead of the stepped
// circles a direct raster fill produces.
func medalSVG(rank, size int) []byte {
	p, ok := medalPalettes[rank]
	if !ok {
		p = defaultMedalPalette
	}
	half := float64(size) / 2
	outer := half - 1
	inner := half * 0.78
	svg := fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d">`+
			`<circle cx="%.1f" cy="%.1f" r="%.1f" style="fill: %s;stroke: %s;stroke-width:2"/>`+
			`<circle cx="%.1f" cy="%.1f" r="%.1f" style="fill: %s"/>`+
			`</svg>`,
		size, size,
		half, half, outer, p.ring, p.stroke,
		half, half, inner, p.fill,
	)
	return []byte(svg)
}

func renderMedalImage(rank, size int) (*image.RGBA, error) {
	key := medalCacheKey{rank: rank, size: size}
	medalCacheMu.RLock()
	if cached, ok := medalCache[key]; ok {
		medalCacheMu.RUnlock()
		return cached, nil
	}
	medalCacheMu.RUnlock()

	icon, err := oksvg.ReadIconStream(bytes.NewReader(sanitizeSVG(medalSVG(rank, size))))
	if err != nil {
		return nil, fmt.Errorf("parse medal svg: %w", err)
	}

	w := int(icon.ViewBox.W)
	h := int(icon.ViewBox.H)
	if w <= 0 {
		w = size
		icon.ViewBox.W = float64(w)
	}
	if h <= 0 {
		h = size
		icon.ViewBox.H = float64(h)
	}

	icon.SetTarget(0, 0, float64(size), float64(size))

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Transparent), image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)

	medalCacheMu.Lock()
	medalCache[key] = img
	medalCacheMu.Unlock()

	return img, nil
}
