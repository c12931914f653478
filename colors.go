package headlessterm

// ColorKind tags a Color's representation. Rather than steal a bit from a
// packed integer, colors are a small sum type: a color is either "whatever
// the terminal's current default is", a palette index (0-255, covering both
// the 16 ANSI colors and the 256-color cube/grayscale ramp), or a direct
// 24-bit RGB triple. Nothing about the wire protocol forces a particular
// representation, so the in-memory one is chosen for clarity.
type ColorKind uint8

const (
	ColorDefault ColorKind = iota
	ColorPalette
	ColorRGB
)

// Color is a cell's foreground or background color.
type Color struct {
	Kind  ColorKind
	Index uint8 // valid when Kind == ColorPalette
	R     uint8 // valid when Kind == ColorRGB
	G     uint8
	B     uint8
}

// DefaultColor returns the sentinel "use the terminal's configured default"
// color, the value SGR 39/49 restore.
func DefaultColor() Color { return Color{Kind: ColorDefault} }

// PaletteColor returns a color addressing slot idx of the 256-color palette.
func PaletteColor(idx uint8) Color { return Color{Kind: ColorPalette, Index: idx} }

// RGBColor returns a direct 24-bit color.
func RGBColor(r, g, b uint8) Color { return Color{Kind: ColorRGB, R: r, G: g, B: b} }

// RGBA8 is an 8-bit-per-channel opaque color, used for the palette tables
// and for resolving a Color to concrete pixels.
type RGBA8 struct{ R, G, B, A uint8 }

// DefaultPalette is the standard 256-color palette: 16 named ANSI colors
// (0-15), a 6x6x6 color cube (16-231), and a 24-step grayscale ramp
// (232-255).
var DefaultPalette = [256]RGBA8{
	{0, 0, 0, 255},
	{205, 49, 49, 255},
	{13, 188, 121, 255},
	{229, 229, 16, 255},
	{36, 114, 200, 255},
	{188, 63, 188, 255},
	{17, 168, 205, 255},
	{229, 229, 229, 255},

	{102, 102, 102, 255},
	{241, 76, 76, 255},
	{35, 209, 139, 255},
	{245, 245, 67, 255},
	{59, 142, 234, 255},
	{214, 112, 214, 255},
	{41, 184, 219, 255},
	{255, 255, 255, 255},
}

func init() {
	i := 16
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				DefaultPalette[i] = RGBA8{R: uint8(r * 51), G: uint8(g * 51), B: uint8(b * 51), A: 255}
				i++
			}
		}
	}
	for j := 0; j < 24; j++ {
		gray := uint8(8 + j*10)
		DefaultPalette[232+j] = RGBA8{gray, gray, gray, 255}
	}
}

// DefaultForeground and DefaultBackground are the built-in fallback colors
// used when a Term isn't configured with its own defaults.
var (
	DefaultForeground = RGBA8{229, 229, 229, 255}
	DefaultBackground = RGBA8{0, 0, 0, 255}
	DefaultCursorColor = RGBA8{229, 229, 229, 255}
)

// Resolve turns a Color into concrete pixels against the given palette and
// default fg/bg, the step a host performs when it reads a Cell to render.
func (c Color) Resolve(palette *[256]RGBA8, defaultFg, defaultBg RGBA8, fg bool) RGBA8 {
	switch c.Kind {
	case ColorPalette:
		return palette[c.Index]
	case ColorRGB:
		return RGBA8{c.R, c.G, c.B, 255}
	default:
		if fg {
			return defaultFg
		}
		return defaultBg
	}
}
