package headlessterm

import "testing"

func TestNewCell(t *testing.T) {
	cell := NewCell()

	if cell.Char != ' ' {
		t.Errorf("expected space, got %q", cell.Char)
	}
	if cell.Fg.Kind != ColorDefault {
		t.Error("expected default foreground")
	}
	if cell.Bg.Kind != ColorDefault {
		t.Error("expected default background")
	}
	if cell.Attrs != 0 {
		t.Error("expected no attributes")
	}
}

func TestCellReset(t *testing.T) {
	cell := NewCell()
	cell.Char = 'A'
	cell.SetFlag(CellFlagBold)

	cell.Reset()

	if cell.Char != ' ' {
		t.Errorf("expected space after reset, got %q", cell.Char)
	}
	if cell.HasFlag(CellFlagBold) {
		t.Error("expected no flags after reset")
	}
}

func TestCellFlags(t *testing.T) {
	cell := NewCell()

	cell.SetFlag(CellFlagBold)
	if !cell.HasFlag(CellFlagBold) {
		t.Error("expected bold flag")
	}

	cell.SetFlag(CellFlagItalic)
	if !cell.HasFlag(CellFlagBold) || !cell.HasFlag(CellFlagItalic) {
		t.Error("expected both flags")
	}

	cell.ClearFlag(CellFlagBold)
	if cell.HasFlag(CellFlagBold) {
		t.Error("expected bold flag to be cleared")
	}
	if !cell.HasFlag(CellFlagItalic) {
		t.Error("expected italic flag to remain")
	}
}

func TestCellWide(t *testing.T) {
	cell := NewCell()

	cell.SetFlag(CellFlagWide)
	if !cell.IsWide() {
		t.Error("expected cell to be wide")
	}

	dummy := NewCell()
	dummy.SetFlag(CellFlagWideDummy)
	if !dummy.IsWideDummy() {
		t.Error("expected cell to be a wide dummy")
	}
}

func TestCellCopy(t *testing.T) {
	cell := NewCell()
	cell.Char = 'X'
	cell.SetFlag(CellFlagBold | CellFlagItalic)

	copied := cell.Copy()

	if copied.Char != 'X' {
		t.Errorf("expected 'X', got %q", copied.Char)
	}
	if !copied.HasFlag(CellFlagBold) || !copied.HasFlag(CellFlagItalic) {
		t.Error("expected flags to be copied")
	}

	cell.Char = 'Y'
	if copied.Char != 'X' {
		t.Error("copy should be independent")
	}
}

func TestColorConstructors(t *testing.T) {
	if c := DefaultColor(); c.Kind != ColorDefault {
		t.Error("expected ColorDefault")
	}
	if c := PaletteColor(5); c.Kind != ColorPalette || c.Index != 5 {
		t.Error("expected palette color 5")
	}
	if c := RGBColor(1, 2, 3); c.Kind != ColorRGB || c.R != 1 || c.G != 2 || c.B != 3 {
		t.Error("expected rgb color (1,2,3)")
	}
}

func TestColorResolve(t *testing.T) {
	pal := DefaultPalette
	fg := RGBA8{1, 1, 1, 255}
	bg := RGBA8{2, 2, 2, 255}

	if got := DefaultColor().Resolve(&pal, fg, bg, true); got != fg {
		t.Errorf("default fg resolve = %+v, want %+v", got, fg)
	}
	if got := DefaultColor().Resolve(&pal, fg, bg, false); got != bg {
		t.Errorf("default bg resolve = %+v, want %+v", got, bg)
	}
	if got := RGBColor(9, 8, 7).Resolve(&pal, fg, bg, true); got != (RGBA8{9, 8, 7, 255}) {
		t.Errorf("rgb resolve = %+v", got)
	}
	if got := PaletteColor(1).Resolve(&pal, fg, bg, true); got != pal[1] {
		t.Errorf("palette resolve = %+v, want %+v", got, pal[1])
	}
}
