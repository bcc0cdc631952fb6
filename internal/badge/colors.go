// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package badge generates citizenship badge colors and renders the badge
// card image. Each origin faction maps to a pair of color ranges; the two
// badge colors are sampled channel-wise within those ranges, so every
// badge is unique but stays inside its faction's palette.
package badge

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
)

// ErrUnknownOrigin is returned when an origin is not in the fixed set.
var ErrUnknownOrigin = errors.New("badge: unknown origin")

// Origins lists the eight faction names in form-display order. The
// spellings match the historical data and must not be corrected — stored
// badges reference them verbatim.
var Origins = []string{
	"Eastern Air Tample",
	"Western Air Tample",
	"Nortern Air Tample",
	"Soutern Air Tample",
	"Northern Water Tribe",
	"Southern Water Tribe",
	"Earth Kingdom",
	"Fire Nation",
}

// colorRange bounds one badge color between two hex endpoints. Sampling
// treats the endpoints channel-wise and order-independently.
type colorRange struct {
	start, end string
}

// rangePair holds the ranges for the two badge colors.
type rangePair struct {
	c1, c2 colorRange
}

// originRanges keys each origin to its color ranges.
var originRanges = map[string]rangePair{
	"Eastern Air Tample":   {colorRange{"#4A4A4A", "#6D6D6D"}, colorRange{"#B0B0B0", "#D1D1D1"}},
	"Western Air Tample":   {colorRange{"#3F3F3F", "#616161"}, colorRange{"#A3A3A3", "#C4C4C4"}},
	"Nortern Air Tample":   {colorRange{"#4A4A4A", "#6D6D6D"}, colorRange{"#B0B0B0", "#D1D1D1"}},
	"Soutern Air Tample":   {colorRange{"#3F3F3F", "#616161"}, colorRange{"#A3A3A3", "#C4C4C4"}},
	"Northern Water Tribe": {colorRange{"#0B3D91", "#1A53B1"}, colorRange{"#5DA0FF", "#8AC3FF"}},
	"Southern Water Tribe": {colorRange{"#054080", "#1B5BBF"}, colorRange{"#4B9EFF", "#7EC2FF"}},
	"Earth Kingdom":        {colorRange{"#2F4F2F", "#4B6B4B"}, colorRange{"#91B491", "#BFD3BF"}},
	"Fire Nation":          {colorRange{"#D94E1C", "#FF6A3C"}, colorRange{"#FFD24B", "#FFE68A"}},
}

// specialUserRanges overrides the origin palette for a fixed set of
// usernames (matched case-insensitively).
var specialUserRanges = map[string]rangePair{
	"yipified":  {colorRange{"#054080", "#6D6D6D"}, colorRange{"#5DA0FF", "#FFE68A"}},
	"apparider": {colorRange{"#054080", "#6D6D6D"}, colorRange{"#5DA0FF", "#FFE68A"}},
}

// ValidOrigin reports whether origin is one of the eight faction names.
func ValidOrigin(origin string) bool {
	_, ok := originRanges[origin]
	return ok
}

// PickColors selects the two badge colors for a username and origin.
// Special usernames use their override ranges regardless of origin.
// The choice is intentionally randomized per call.
func PickColors(username, origin string) (color1, color2 string, err error) {
	pair, special := specialUserRanges[strings.ToLower(username)]
	if !special {
		var ok bool
		pair, ok = originRanges[origin]
		if !ok {
			return "", "", fmt.Errorf("%w: %q", ErrUnknownOrigin, origin)
		}
	}
	return randomColorBetween(pair.c1), randomColorBetween(pair.c2), nil
}

// randomColorBetween samples each RGB channel uniformly between the
// range endpoints (min/max order-independent) and formats as #RRGGBB.
func randomColorBetween(cr colorRange) string {
	r1, g1, b1 := hexToRGB(cr.start)
	r2, g2, b2 := hexToRGB(cr.end)
	r := randBetween(r1, r2)
	g := randBetween(g1, g2)
	b := randBetween(b1, b2)
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

func randBetween(a, b int) int {
	lo, hi := min(a, b), max(a, b)
	return lo + rand.IntN(hi-lo+1)
}

// hexToRGB parses a #RRGGBB string into its channels. Malformed input
// yields zeroed channels; all call sites pass table constants or stored
// colors that were produced by this package.
func hexToRGB(hex string) (r, g, b int) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 0, 0, 0
	}
	rv, _ := strconv.ParseUint(hex[0:2], 16, 8)
	gv, _ := strconv.ParseUint(hex[2:4], 16, 8)
	bv, _ := strconv.ParseUint(hex[4:6], 16, 8)
	return int(rv), int(gv), int(bv)
}
