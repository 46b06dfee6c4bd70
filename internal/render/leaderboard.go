package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	imagedraw "image/draw"
	"image/png"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ferrin/discord-puzzles-bot/internal/domain"
)

// CardRenderer draws a leaderboard as a PNG card.
type CardRenderer interface {
	RenderPNG(ctx context.Context, title, unit string, entries []*domain.LeaderboardEntry) ([]byte, error)
}

type cardRenderer struct {
	face font.Face
}

func NewCardRenderer() CardRenderer {
	return &cardRenderer{face: basicfont.Face7x13}
}

var (
	cardBackground  = color.NRGBA{R: 22, G: 24, B: 36, A: 255}
	titlePanelColor = color.NRGBA{R: 28, G: 31, B: 46, A: 250}
	rowPanelColor   = color.NRGBA{R: 32, G: 35, B: 52, A: 245}
	rowAltColor     = color.NRGBA{R: 37, G: 41, B: 60, A: 245}
	panelShadow     = color.NRGBA{0, 0, 0, 50}
	titleTextColor  = color.NRGBA{R: 236, G: 239, B: 255, A: 255}
	rowTextColor    = color.NRGBA{R: 204, G: 210, B: 236, A: 255}
	scoreTextColor  = color.NRGBA{R: 8, G: 214, B: 120, A: 255}
)

func (r *cardRenderer) RenderPNG(ctx context.Context, title, unit string, entries []*domain.LeaderboardEntry) ([]byte, error) {
	const (
		cardWidth     = 560
		sideMargin    = 28
		topMargin     = 26
		bottomMargin  = 26
		titleHeight   = 46
		rowHeight     = 38
		rowGap        = 10
		panelRadius   = 12
		medalSize     = 26
		medalMarginX  = 14
		namePaddingX  = 12
		scorePaddingX = 18
		shadowOffsetY = 5
	)

	rows := len(entries)
	totalHeight := topMargin + titleHeight + rowGap + rows*(rowHeight+rowGap) + bottomMargin
	if rows == 0 {
		totalHeight = topMargin + titleHeight + rowGap + rowHeight + bottomMargin
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	img := image.NewRGBA(image.Rect(0, 0, cardWidth, totalHeight))
	imagedraw.Draw(img, img.Bounds(), image.NewUniform(cardBackground), image.Point{}, imagedraw.Src)

	drawer := &font.Drawer{
		Dst:  img,
		Face: r.face,
	}

	titleRect := image.Rect(sideMargin, topMargin, cardWidth-sideMargin, topMargin+titleHeight)
	drawRoundedPanel(img, titleRect.Add(image.Pt(0, shadowOffsetY)), panelRadius, panelShadow)
	drawRoundedPanel(img, titleRect, panelRadius, titlePanelColor)
	header := truncateWithEllipsis(r.face, title, titleRect.Dx()-namePaddingX*2)
	drawCenteredString(drawer, titleRect, header, titleTextColor)

	y := titleRect.Max.Y + rowGap
	if rows == 0 {
		rowRect := image.Rect(sideMargin, y, cardWidth-sideMargin, y+rowHeight)
		drawRoundedPanel(img, rowRect, panelRadius, rowPanelColor)
		drawCenteredString(drawer, rowRect, "No scores yet", rowTextColor)
	}

	for i, e := range entries {
		rowRect := image.Rect(sideMargin, y, cardWidth-sideMargin, y+rowHeight)
		panel := rowPanelColor
		if i%2 == 1 {
			panel = rowAltColor
		}
		drawRoundedPanel(img, rowRect.Add(image.Pt(0, shadowOffsetY)), panelRadius, panelShadow)
		drawRoundedPanel(img, rowRect, panelRadius, panel)

		medal, err := renderMedalImage(i+1, medalSize)
		if err != nil {
			return nil, err
		}
		medalY := rowRect.Min.Y + (rowHeight-medalSize)/2
		medalRect := image.Rect(
			rowRect.Min.X+medalMarginX,
			medalY,
			rowRect.Min.X+medalMarginX+medalSize,
			medalY+medalSize,
		)
		imagedraw.Draw(img, medalRect, medal, image.Point{}, imagedraw.Over)
		drawCenteredString(drawer, medalRect, fmt.Sprintf("%d", i+1), titleTextColor)

		scoreText := fmt.Sprintf("%.0f %s", e.Score, unit)
		if e.Score != float64(int64(e.Score)) {
			scoreText = fmt.Sprintf("%.1f %s", e.Score, unit)
		}
		scoreWidth := drawer.MeasureString(scoreText).Round()

		nameLeft := medalRect.Max.X + namePaddingX
		nameMax := rowRect.Max.X - scorePaddingX - scoreWidth - namePaddingX
		name := truncateWithEllipsis(r.face, e.DisplayName, nameMax-nameLeft)
		drawLeftString(drawer, name, nameLeft, rowRect, rowTextColor)
		drawLeftString(drawer, scoreText, rowRect.Max.X-scorePaddingX-scoreWidth, rowRect, scoreTextColor)

		y = rowRect.Max.Y + rowGap
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}

	return pngBuf.Bytes(), nil
}

func truncateWithEllipsis(face font.Face, text string, maxWidth int) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || maxWidth <= 0 || face == nil {
		return trimmed
	}

	drawer := font.Drawer{Face: face}
	if drawer.MeasureString(trimmed).Round() <= maxWidth {
		return trimmed
	}

	ellipsis := "..."
	ellipsisWidth := drawer.MeasureString(ellipsis).Round()
	if ellipsisWidth > maxWidth {
		return ""
	}

	runes := []rune(trimmed)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + ellipsis
		if drawer.MeasureString(candidate).Round() <= maxWidth {
			return candidate
		}
	}

	return ellipsis
}

func drawRoundedPanel(img *image.RGBA, rect image.Rectangle, radius int, clr color.Color) {
	if img == nil || rect.Empty() {
		return
	}
	if radius < 0 {
		radius = 0
	}
	maxRadius := rect.Dx() / 2
	if r := rect.Dy() / 2; r < maxRadius {
		maxRadius = r
	}
	if radius > maxRadius {
		radius = maxRadius
	}
	fill := image.NewUniform(clr)
	if radius == 0 {
		imagedraw.Draw(img, rect, fill, image.Point{}, imagedraw.Over)
		return
	}

	core := image.Rect(rect.Min.X+radius, rect.Min.Y, rect.Max.X-radius, rect.Max.Y)
	if core.Dx() > 0 {
		imagedraw.Draw(img, core, fill, image.Point{}, imagedraw.Over)
	}

	leftRect := image.Rect(rect.Min.X, rect.Min.Y+radius, rect.Min.X+radius, rect.Max.Y-radius)
	if leftRect.Dx() > 0 {
		imagedraw.Draw(img, leftRect, fill, image.Point{}, imagedraw.Over)
	}

	rightRect := image.Rect(rect.Max.X-radius, rect.Min.Y+radius, rect.Max.X, rect.Max.Y-radius)
	if rightRect.Dx() > 0 {
		imagedraw.Draw(img, rightRect, fill, image.Point{}, imagedraw.Over)
	}

	corners := []image.Point{
		{rect.Min.X + radius, rect.Min.Y + radius},
		{rect.Max.X - radius - 1, rect.Min.Y + radius},
		{rect.Min.X + radius, rect.Max.Y - radius - 1},
		{rect.Max.X - radius - 1, rect.Max.Y - radius - 1},
	}
	for _, center := range corners {
		drawDisc(img, center, radius, clr)
	}
}

func drawCenteredString(drawer *font.Drawer, rect image.Rectangle, text string, clr color.Color) {
	if drawer == nil {
		return
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	metrics := drawer.Face.Metrics()
	width := drawer.MeasureString(text).Round()
	x := rect.Min.X + (rect.Dx()-width)/2
	if x < rect.Min.X {
		x = rect.Min.X
	}
	baseline := rect.Min.Y + (rect.Dy()+metrics.Ascent.Ceil()-metrics.Descent.Ceil())/2
	drawer.Src = image.NewUniform(clr)
	drawer.Dot = fixed.P(x, baseline)
	drawer.DrawString(text)
}

func drawLeftString(drawer *font.Drawer, text string, x int, rect image.Rectangle, clr color.Color) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	metrics := drawer.Face.Metrics()
	baseline := rect.Min.Y + (rect.Dy()+metrics.Ascent.Ceil()-metrics.Descent.Ceil())/2
	drawer.Src = image.NewUniform(clr)
	drawer.Dot = fixed.P(x, baseline)
	drawer.DrawString(text)
}

func drawDisc(img *image.RGBA, center image.Point, radius int, clr color.Color) {
	if radius <= 0 {
		blendPixel(img, center.X, center.Y, clr)
		return
	}
	rSquared := radius * radius
	for y := -radius; y <= radius; y++ {
		for x := -radius; x <= radius; x++ {
			if x*x+y*y > rSquared {
				continue
			}
			blendPixel(img, center.X+x, center.Y+y, clr)
		}
	}
}

func blendPixel(img *image.RGBA, x, y int, clr color.Color) {
	if img == nil {
		return
	}
	if !(image.Point{X: x, Y: y}).In(img.Bounds()) {
		return
	}

	sr, sg, sb, sa := clr.RGBA()
	srcA := float64(sa) / 65535.0
	if srcA <= 0 {
		return
	}
	srcR := float64(sr) / 65535.0
	srcG := float64(sg) / 65535.0
	srcB := float64(sb) / 65535.0

	dst := img.RGBAAt(x, y)
	dstA := float64(dst.A) / 255.0

	var dstR, dstG, dstB float64
	if dstA > 0 {
		inv := 1.0 / dstA
		dstR = float64(dst.R) / 255.0 * inv
		dstG = float64(dst.G) / 255.0 * inv
		dstB = float64(dst.B) / 255.0 * inv
	}

	outA := srcA + dstA*(1-srcA)
	if outA <= 0 {
		img.SetRGBA(x, y, color.RGBA{})
		return
	}

	outR := (srcR*srcA + dstR*dstA*(1-srcA)) / outA
	outG := (srcG*srcA + dstG*dstA*(1-srcA)) / outA
	outB := (srcB*srcA + dstB*dstA*(1-srcA)) / outA

	img.SetRGBA(x, y, color.RGBA{
		R: floatToUint8(outR * outA * 255.0),
		G: floatToUint8(outG * outA * 255.0),
		B: floatToUint8(outB * outA * 255.0),
		A: floatToUint8(outA * 255.0),
	})
}

func floatToUint8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
