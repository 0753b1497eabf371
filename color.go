package vtcore

// ColorSlot names one of the 20 palette slots a ColorValue can point
// at: default fg/bg/underline/cursor, the 8 base ANSI colors, and their
// 8 bright variants. Custom RGB values bypass this enum entirely.
type ColorSlot uint8

const (
	ColorDefaultForeground ColorSlot = iota
	ColorDefaultBackground
	ColorDefaultUnderline
	ColorDefaultCursor
	ColorBlack
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightBlack
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
)

// RGB8 is an 8-bit-per-channel color triple.
type RGB8 struct {
	R, G, B uint8
}

// ColorValue is one of the 20 named palette slots, or a Custom 24-bit
// color. The zero value is ColorDefaultForeground.
type ColorValue struct {
	IsCustom bool
	Slot     ColorSlot
	Custom   RGB8
}

// NamedColor builds a ColorValue pointing at a palette slot.
func NamedColor(slot ColorSlot) ColorValue { return ColorValue{Slot: slot} }

// CustomColor builds a 24-bit ColorValue.
func CustomColor(r, g, b uint8) ColorValue {
	return ColorValue{IsCustom: true, Custom: RGB8{R: r, G: g, B: b}}
}

// basePalette holds the RGB values for the 16 standard ANSI slots, in
// ANSI order. Ported verbatim from purfecterm's color.go
// (ANSIColorsRGB) — this is a pure lookup table with no library
// equivalent worth pulling in.
var basePalette = [16]RGB8{
	{R: 0, G: 0, B: 0},
	{R: 170, G: 0, B: 0},
	{R: 0, G: 170, B: 0},
	{R: 170, G: 85, B: 0},
	{R: 0, G: 0, B: 170},
	{R: 170, G: 0, B: 170},
	{R: 0, G: 170, B: 170},
	{R: 170, G: 170, B: 170},
	{R: 85, G: 85, B: 85},
	{R: 255, G: 85, B: 85},
	{R: 85, G: 255, B: 85},
	{R: 255, G: 255, B: 85},
	{R: 85, G: 85, B: 255},
	{R: 255, G: 85, B: 255},
	{R: 85, G: 255, B: 255},
	{R: 255, G: 255, B: 255},
}

var defaultForegroundRGB = RGB8{R: 212, G: 212, B: 212}
var defaultBackgroundRGB = RGB8{R: 30, G: 30, B: 30}
var defaultCursorRGB = RGB8{R: 255, G: 255, B: 255}

// slotRGB resolves a named slot to its RGB triple, ignoring any
// host-level theme override. Use ResolveRGB for the theme-aware path.
func slotRGB(slot ColorSlot) RGB8 {
	switch slot {
	case ColorDefaultForeground:
		return defaultForegroundRGB
	case ColorDefaultBackground:
		return defaultBackgroundRGB
	case ColorDefaultUnderline:
		return defaultForegroundRGB
	case ColorDefaultCursor:
		return defaultCursorRGB
	default:
		idx := int(slot) - int(ColorBlack)
		if idx >= 0 && idx < len(basePalette) {
			return basePalette[idx]
		}
		return defaultForegroundRGB
	}
}

// ResolveRGB resolves a ColorValue to a concrete RGB8, consulting an
// optional 16-entry palette override (nil uses the built-in ANSI
// colors). This is the function OSC 4/10/11/12 responses and
// renderers both call.
func (c ColorValue) ResolveRGB(palette *[16]RGB8) RGB8 {
	if c.IsCustom {
		return c.Custom
	}
	if palette != nil && c.Slot >= ColorBlack {
		idx := int(c.Slot) - int(ColorBlack)
		if idx >= 0 && idx < 16 {
			return palette[idx]
		}
	}
	return slotRGB(c.Slot)
}

// Get256ColorRGB resolves an xterm 256-color palette index (0-255) to
// RGB, per the standard 16-color / 6x6x6 cube / 24-step grayscale
// layout. Ported unchanged from purfecterm's color.go — pure
// arithmetic, nothing an external library adds.
func Get256ColorRGB(idx int) RGB8 {
	switch {
	case idx < 0:
		idx = 0
	case idx > 255:
		idx = 255
	}
	switch {
	case idx < 16:
		return basePalette[idx]
	case idx < 232:
		idx -= 16
		b := idx % 6
		g := (idx / 6) % 6
		r := idx / 36
		return RGB8{R: uint8(r * 51), G: uint8(g * 51), B: uint8(b * 51)}
	default:
		gray := uint8((idx-232)*10 + 8)
		return RGB8{R: gray, G: gray, B: gray}
	}
}

// Palette256Color builds the ColorValue for a 256-color palette index.
// Indices 0-15 map to the named ANSI slots (so theme overrides still
// apply); 16-255 are baked-in Custom RGB.
func Palette256Color(idx int) ColorValue {
	if idx >= 0 && idx < 16 {
		return NamedColor(ColorSlot(int(ColorBlack) + idx))
	}
	rgb := Get256ColorRGB(idx)
	return CustomColor(rgb.R, rgb.G, rgb.B)
}

func hexByte(b uint8) string {
	const hex = "0123456789ABCDEF"
	return string([]byte{hex[b>>4], hex[b&0x0F]})
}

// ToHex renders an RGB8 as "#RRGGBB".
func (rgb RGB8) ToHex() string {
	return "#" + hexByte(rgb.R) + hexByte(rgb.G) + hexByte(rgb.B)
}
