package headlessterm

import (
	"encoding/base64"
	"strconv"
)

// handleSTR dispatches a completed OSC/DCS/PM/APC string body. The body was
// split on ';' into up to 16 arguments by strAccumulator.args; par is the
// first argument parsed as an integer (0 if absent or non-numeric).
func (t *Term) handleSTR() {
	t.esc &^= escSTREnd | escSTR
	args := t.str.args()
	par := 0
	if len(args) > 0 {
		par, _ = strconv.Atoi(string(args[0]))
	}

	switch t.str.typ {
	case ']': // OSC
		switch par {
		case 0, 1, 2:
			if len(args) > 1 {
				t.setTitle(string(args[1]))
			}
			return
		case 52:
			if len(args) > 2 {
				t.handleClipboardOSC(args[1], args[2])
			}
			return
		case 4:
			if len(args) < 3 {
				break
			}
			t.setPaletteEntry(args[1], args[2])
			return
		case 104:
			t.resetPaletteEntry(args[1:])
			return
		}
	case 'k': // legacy title set
		if len(args) > 0 {
			t.setTitle(string(args[0]))
		}
		return
	case 'P', 'X', '_', '^': // DCS, SOS, APC, PM: accepted; SOS/APC/PM routed to host, DCS discarded
		switch t.str.typ {
		case 'X':
			t.sos.Receive(append([]byte(nil), t.str.buf...))
		case '_':
			t.apc.Receive(append([]byte(nil), t.str.buf...))
		case '^':
			t.pm.Receive(append([]byte(nil), t.str.buf...))
		}
		return
	}
	t.log.Debug("unknown STR sequence", "type", string(t.str.typ), "args", len(args))
}

func (t *Term) setTitle(title string) {
	t.title = title
	t.titleP.SetTitle(title)
}

func (t *Term) handleClipboardOSC(selectorArg, payload []byte) {
	selector := byte('c')
	if len(selectorArg) > 0 {
		selector = selectorArg[0]
	}
	dec, ok := decodeBase64Clipboard(payload)
	if !ok {
		t.log.Warn("invalid base64 in OSC 52 clipboard payload")
		return
	}
	t.clipboard.Write(selector, dec)
}

// decodeBase64Clipboard decodes a standard base64 payload, skipping bytes
// outside the base64 alphabet (A-Z a-z 0-9 + /) and padding with '=' as
// needed, matching OSC 52's permissive decoder. encoding/base64 is the
// standard library's codec; no third-party base64 implementation appears
// anywhere in the retrieval pack to prefer over it.
func decodeBase64Clipboard(p []byte) ([]byte, bool) {
	filtered := make([]byte, 0, len(p))
	for _, b := range p {
		switch {
		case b >= 'A' && b <= 'Z', b >= 'a' && b <= 'z', b >= '0' && b <= '9', b == '+', b == '/':
			filtered = append(filtered, b)
		}
	}
	if n := len(filtered) % 4; n != 0 {
		for i := 0; i < 4-n; i++ {
			filtered = append(filtered, '=')
		}
	}
	out, err := base64.StdEncoding.DecodeString(string(filtered))
	if err != nil {
		return nil, false
	}
	return out, true
}

// setPaletteEntry implements OSC 4 (set palette color n to spec).
func (t *Term) setPaletteEntry(indexArg, specArg []byte) {
	idx, err := strconv.Atoi(string(indexArg))
	if err != nil || idx < 0 || idx > 255 {
		t.log.Warn("invalid palette index in OSC 4", "index", string(indexArg))
		return
	}
	c, ok := parseColorSpec(specArg)
	if !ok {
		t.log.Warn("invalid color spec in OSC 4", "spec", string(specArg))
		return
	}
	t.palette[idx] = c
	t.paletteP.SetColor(idx, c)
}

// resetPaletteEntry implements OSC 104: reset one palette entry to its
// default, or every entry when no index is given.
func (t *Term) resetPaletteEntry(args [][]byte) {
	if len(args) == 0 || len(args[0]) == 0 {
		for i := range t.palette {
			t.palette[i] = DefaultPalette[i]
			t.paletteP.ResetColor(i)
		}
		return
	}
	idx, err := strconv.Atoi(string(args[0]))
	if err != nil || idx < 0 || idx > 255 {
		return
	}
	t.palette[idx] = DefaultPalette[idx]
	t.paletteP.ResetColor(idx)
}

// parseColorSpec parses the two X11 color-spec forms xterm actually emits
// and accepts: "#RRGGBB" and "rgb:RR/GG/BB" (each component 1-4 hex
// digits, scaled to 8 bits).
func parseColorSpec(spec []byte) (RGBA8, bool) {
	s := string(spec)
	if len(s) == 7 && s[0] == '#' {
		r, err1 := strconv.ParseUint(s[1:3], 16, 8)
		g, err2 := strconv.ParseUint(s[3:5], 16, 8)
		b, err3 := strconv.ParseUint(s[5:7], 16, 8)
		if err1 != nil || err2 != nil || err3 != nil {
			return RGBA8{}, false
		}
		return RGBA8{uint8(r), uint8(g), uint8(b), 255}, true
	}
	if len(s) > 4 && s[:4] == "rgb:" {
		parts := splitN(s[4:], '/', 3)
		if len(parts) != 3 {
			return RGBA8{}, false
		}
		comp := make([]uint8, 3)
		for i, p := range parts {
			if len(p) == 0 || len(p) > 4 {
				return RGBA8{}, false
			}
			v, err := strconv.ParseUint(p, 16, 32)
			if err != nil {
				return RGBA8{}, false
			}
			maxVal := uint64(1)<<(4*len(p)) - 1
			comp[i] = uint8(v * 255 / maxVal)
		}
		return RGBA8{comp[0], comp[1], comp[2], 255}, true
	}
	return RGBA8{}, false
}

func splitN(s string, sep byte, n int) []string {
	out := make([]string, 0, n)
	start := 0
	for i := 0; i < len(s) && len(out) < n-1; i++ {
		if s[i] == sep {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	out = append(out, s[start:])
	return out
}
