package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// exportPNG renders the whole map to an image: every placed card,
// every edge, bounds-relative with a little padding. World units map
// 1:1 to pixels.
func exportPNG(store *EntityStore, graph *ConnectionGraph, filename string) error {
	entities := store.All()
	placed := 0
	for _, e := range entities {
		if e.Position != nil {
			placed++
		}
	}
	if placed == 0 {
		return fmt.Errorf("nothing to export")
	}
	b := computeBounds(entities)

	padding := 40.0
	imageWidth := int(b.Width() + 2*padding)
	imageHeight := int(b.Height() + 2*padding)
	if imageWidth < 1 || imageHeight < 1 {
		return fmt.Errorf("nothing to export")
	}

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetColor(color.White)
	dc.Clear()

	ttfFont, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return fmt.Errorf("failed to parse font: %v", err)
	}
	face := truetype.NewFace(ttfFont, &truetype.Options{
		Size:    18,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	dc.SetFontFace(face)

	px := func(p Point) (float64, float64) {
		return p.X - b.MinX + padding, p.Y - b.MinY + padding
	}

	// Edges behind cards.
	dc.SetLineWidth(1.5)
	for _, c := range graph.Connections() {
		from := store.Position(c.From)
		to := store.Position(c.To)
		x1, y1 := px(Point{X: from.X + entityWidth/2, Y: from.Y + entityHeight/2})
		x2, y2 := px(Point{X: to.X + entityWidth/2, Y: to.Y + entityHeight/2})
		dc.SetColor(color.Gray{Y: 120})
		dc.DrawLine(x1, y1, x2, y2)
		dc.Stroke()
		drawArrowheadPNG(dc, x1, y1, x2, y2)
	}

	for _, e := range entities {
		if e.Position == nil {
			continue
		}
		x, y := px(*e.Position)

		dc.SetColor(color.White)
		dc.DrawRoundedRectangle(x, y, entityWidth, entityHeight, 8)
		dc.Fill()
		dc.SetColor(color.Black)
		dc.SetLineWidth(2)
		if e.Kind == KindFolder {
			dc.SetLineWidth(3.5)
		}
		dc.DrawRoundedRectangle(x, y, entityWidth, entityHeight, 8)
		dc.Stroke()

		dc.SetColor(color.Black)
		dc.DrawStringAnchored(e.Title, x+entityWidth/2, y+entityHeight/2, 0.5, 0.5)
		if e.CrossedOut {
			w, _ := dc.MeasureString(e.Title)
			dc.SetLineWidth(1.5)
			dc.DrawLine(x+entityWidth/2-w/2, y+entityHeight/2, x+entityWidth/2+w/2, y+entityHeight/2)
			dc.Stroke()
		}
	}

	return dc.SavePNG(filename)
}

func drawArrowheadPNG(dc *gg.Context, fromX, fromY, toX, toY float64) {
	dx := toX - fromX
	dy := toY - fromY
	length := math.Sqrt(dx*dx + dy*dy)
	if length < 0.1 {
		return
	}
	dx /= length
	dy /= length

	// Pull the tip back to the target card's edge region.
	tipX := toX - dx*entityWidth/4
	tipY := toY - dy*entityHeight/4

	arrowSize := 10.0
	arrowAngle := 0.5

	baseX1 := tipX - arrowSize*dx + arrowSize*dy*arrowAngle
	baseY1 := tipY - arrowSize*dy - arrowSize*dx*arrowAngle
	baseX2 := tipX - arrowSize*dx - arrowSize*dy*arrowAngle
	baseY2 := tipY - arrowSize*dy + arrowSize*dx*arrowAngle

	dc.MoveTo(tipX, tipY)
	dc.LineTo(baseX1, baseY1)
	dc.LineTo(baseX2, baseY2)
	dc.ClosePath()
	dc.Fill()
}
