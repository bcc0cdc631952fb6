// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package badge

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Badge card dimensions.
const (
	Width  = 800
	Height = 400
)

// gradientTop is the y coordinate where the bottom gradient band starts
// (the band covers the lower 40% of the card).
const gradientTop = Height * 6 / 10

var (
	backgroundColor = color.RGBA{18, 18, 18, 255}
	usernameColor   = color.RGBA{255, 255, 255, 255}
	originColor     = color.RGBA{200, 200, 200, 255}
	hexLabelColor   = color.RGBA{220, 220, 220, 255}
)

// Render draws the badge card as a PNG: a dark canvas with the username
// and origin centered near the top, the two hex codes just above the
// gradient band, and a left-to-right gradient from color1 to color2
// across the bottom. Deterministic for the same inputs.
func Render(username, origin, color1Hex, color2Hex string) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, Width, Height))

	for y := 0; y < gradientTop; y++ {
		for x := 0; x < Width; x++ {
			img.SetRGBA(x, y, backgroundColor)
		}
	}

	// Gradient strip: interpolate linearly in RGB, column by column.
	r1, g1, b1 := hexToRGB(color1Hex)
	r2, g2, b2 := hexToRGB(color2Hex)
	for x := 0; x < Width; x++ {
		t := float64(x) / float64(Width-1)
		c := color.RGBA{
			R: uint8(float64(r1) + float64(r2-r1)*t),
			G: uint8(float64(g1) + float64(g2-g1)*t),
			B: uint8(float64(b1) + float64(b2-b1)*t),
			A: 255,
		}
		for y := gradientTop; y < Height; y++ {
			img.SetRGBA(x, y, c)
		}
	}

	face := basicfont.Face7x13
	lineHeight := face.Metrics().Height.Ceil()

	// Username and origin near the top, centered.
	drawCentered(img, face, username, 70+face.Metrics().Ascent.Ceil(), usernameColor)
	drawCentered(img, face, origin, 70+lineHeight+15+face.Metrics().Ascent.Ceil(), originColor)

	// Hex codes just above the gradient band, symmetric about the center.
	c1Label := fmt.Sprintf("C1: %s", color1Hex)
	c2Label := fmt.Sprintf("C2: %s", color2Hex)
	hexBaseline := gradientTop - 10 - face.Metrics().Descent.Ceil()
	c1Width := font.MeasureString(face, c1Label).Ceil()
	drawAt(img, face, c1Label, Width/2-c1Width-10, hexBaseline, hexLabelColor)
	drawAt(img, face, c2Label, Width/2+10, hexBaseline, hexLabelColor)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("badge: encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// drawCentered draws text horizontally centered at the given baseline.
func drawCentered(img *image.RGBA, face font.Face, text string, baseline int, c color.RGBA) {
	w := font.MeasureString(face, text).Ceil()
	drawAt(img, face, text, (Width-w)/2, baseline, c)
}

// drawAt draws text with its baseline origin at (x, y).
func drawAt(img *image.RGBA, face font.Face, text string, x, y int, c color.RGBA) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
