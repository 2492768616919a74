package lottiecore

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// boolFromInt decodes a 0/1 JSON integer as a bool, per spec §4.1. Any
// other value is InvalidValue — mirrors the teacher's jsonRect-style
// struct probing (atlas.go) but for a single scalar field.
func boolFromInt(raw json.RawMessage) (bool, error) {
	var n int
	if err := json.Unmarshal(raw, &n); err != nil {
		return false, fmt.Errorf("lottiecore: decoding bool-as-int: %w", &InvalidValueError{Field: "b/d/hd", Reason: err.Error()})
	}
	switch n {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, &InvalidValueError{Field: "b/d/hd", Reason: fmt.Sprintf("expected 0 or 1, got %d", n)}
	}
}

// intFromBool encodes a bool back to the 0/1 wire form.
func intFromBool(b bool) int {
	if b {
		return 1
	}
	return 0
}

// ParseColorString decodes a color in one of the textual conventions a
// Lottie document may use for the "sc" field of a solid-color layer:
//
//   - "#rrggbb" hex, alpha implied opaque
//   - "rgba(r,g,b,a)" with r,g,b in [0,255] and a in [0,1]
//   - a bare comma-separated triplet or quad of [0,1] floats
//     ("0.5,0.5,0.5" or "0.5,0.5,0.5,1"), the convention real Lottie
//     documents actually use for "sc"
//
// On parse failure it returns InvalidColorError.
func ParseColorString(s string) (Rgba, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "#"):
		return parseHexColor(s)
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		return parseRgbaFunc(s)
	default:
		return parseFractionalTriplet(s)
	}
}

func parseHexColor(s string) (Rgba, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return Rgba{}, &InvalidColorError{Value: s, Reason: "hex color must be #rrggbb or #rrggbbaa"}
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Rgba{}, &InvalidColorError{Value: s, Reason: err.Error()}
	}
	if len(hex) == 6 {
		return Rgba{
			R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255,
		}, nil
	}
	return Rgba{
		R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v),
	}, nil
}

func parseRgbaFunc(s string) (Rgba, error) {
	inner := strings.TrimSuffix(strings.TrimPrefix(s, "rgba("), ")")
	parts := strings.Split(inner, ",")
	if len(parts) != 4 {
		return Rgba{}, &InvalidColorError{Value: s, Reason: "rgba() requires exactly 4 components"}
	}
	r, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	g, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	b, err3 := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
	a, err4 := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return Rgba{}, &InvalidColorError{Value: s, Reason: "rgba() component is not numeric"}
	}
	return Rgba{
		R: byteFromFraction(r / 255),
		G: byteFromFraction(g / 255),
		B: byteFromFraction(b / 255),
		A: byteFromFraction(a),
	}, nil
}

func parseFractionalTriplet(s string) (Rgba, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 && len(parts) != 4 {
		return Rgba{}, &InvalidColorError{Value: s, Reason: "expected a 3- or 4-component fractional color"}
	}
	vals := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Rgba{}, &InvalidColorError{Value: s, Reason: err.Error()}
		}
		vals[i] = v
	}
	out := Rgba{
		R: byteFromFraction(vals[0]),
		G: byteFromFraction(vals[1]),
		B: byteFromFraction(vals[2]),
		A: 255,
	}
	if len(vals) == 4 {
		out.A = byteFromFraction(vals[3])
	}
	return out, nil
}

// byteFromFraction scales a [0,1] fraction to a [0,255] byte, rounding
// to nearest (ties to even) and clamping out-of-range input.
func byteFromFraction(f float64) uint8 {
	b := roundTiesToEven(f * 255)
	if b < 0 {
		return 0
	}
	if b > 255 {
		return 255
	}
	return uint8(b)
}

// roundTiesToEven rounds f to the nearest integer, ties rounding to even,
// per spec §4.1's lenient-number contract.
func roundTiesToEven(f float64) float64 {
	r := math.RoundToEven(f)
	return r
}

// u32FromNumber decodes a JSON number that may be written as an integer
// or a float into a non-negative u32, rounding ties to even and clamping
// negatives to zero. Used for width/height and similar lenient fields.
func u32FromNumber(raw json.RawMessage) (uint32, error) {
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, &InvalidValueError{Field: "number", Reason: err.Error()}
	}
	r := roundTiesToEven(f)
	if r < 0 {
		return 0, nil
	}
	if r > math.MaxUint32 {
		return math.MaxUint32, nil
	}
	return uint32(r), nil
}

// optionalU32FromNumber is u32FromNumber but tolerant of a missing/null field.
func optionalU32FromNumber(raw json.RawMessage) (*uint32, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	v, err := u32FromNumber(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// pointsFromArray decodes a JSON array of [x,y] pairs into Vector2D values.
func pointsFromArray(raw json.RawMessage) ([]Vector2D, error) {
	var pairs [][2]float32
	if err := json.Unmarshal(raw, &pairs); err != nil {
		return nil, &InvalidValueError{Field: "point array", Reason: err.Error()}
	}
	out := make([]Vector2D, len(pairs))
	for i, p := range pairs {
		out[i] = Vector2D{X: p[0], Y: p[1]}
	}
	return out, nil
}

// arrayFromPoints encodes Vector2D values back to the [x,y]-pair wire form.
func arrayFromPoints(pts []Vector2D) [][2]float32 {
	out := make([][2]float32, len(pts))
	for i, p := range pts {
		out[i] = [2]float32{p.X, p.Y}
	}
	return out
}
