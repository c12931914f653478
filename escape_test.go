package headlessterm

import "testing"

func TestCSIAccumulatorParse(t *testing.T) {
	var c csiAccumulator
	c.buf = []byte("?1;2h")
	c.parse()
	if !c.private {
		t.Fatal("expected private flag set")
	}
	if c.narg != 2 || c.arg(0, 0) != 1 || c.arg(1, 0) != 2 {
		t.Fatalf("args = %v (n=%d), want [1 2]", c.args[:c.narg], c.narg)
	}
	if c.mode[0] != 'h' {
		t.Fatalf("mode = %q, want 'h'", c.mode[0])
	}
}

func TestCSIAccumulatorDefaultArg(t *testing.T) {
	var c csiAccumulator
	c.buf = []byte(";5H")
	c.parse()
	if got := c.arg(0, 1); got != 1 {
		t.Errorf("arg(0,1) with empty first param = %d, want 1", got)
	}
	if got := c.arg(1, 1); got != 5 {
		t.Errorf("arg(1,1) = %d, want 5", got)
	}
}

func TestCSIAccumulatorOverflow(t *testing.T) {
	var c csiAccumulator
	c.buf = []byte("99999999999m")
	c.parse()
	if c.argRaw(0) != -1 {
		t.Errorf("overflowed param = %d, want -1", c.argRaw(0))
	}
}

func TestStrAccumulatorGrowsAndCaps(t *testing.T) {
	var s strAccumulator
	s.reset(']')
	if !s.append([]byte("hello")) {
		t.Fatal("expected append to succeed under cap")
	}
	if string(s.buf) != "hello" {
		t.Errorf("buf = %q, want %q", s.buf, "hello")
	}

	// Force growth past the initial capacity.
	big := make([]byte, strInitialCap*3)
	for i := range big {
		big[i] = 'x'
	}
	if !s.append(big) {
		t.Fatal("expected append to succeed while growing")
	}

	// Once the buffer has reached the ceiling, further appends are refused.
	s.buf = make([]byte, strMaxCap)
	if s.append([]byte("y")) {
		t.Fatal("expected append to be refused at the size ceiling")
	}
}

func TestStrAccumulatorArgsSplit(t *testing.T) {
	var s strAccumulator
	s.reset(']')
	s.append([]byte("52;c;aGVsbG8="))
	args := s.args()
	if len(args) != 3 {
		t.Fatalf("args = %d, want 3", len(args))
	}
	if string(args[0]) != "52" || string(args[1]) != "c" {
		t.Errorf("args = %q", args)
	}
}

func TestUTF8DecoderStreaming(t *testing.T) {
	var d utf8Decoder
	// "中" is E4 B8 AD
	var got []rune
	for _, b := range []byte{0xE4, 0xB8, 0xAD} {
		got = append(got, d.push(b)...)
	}
	if len(got) != 1 || got[0] != '中' {
		t.Fatalf("decoded %v, want ['中']", got)
	}
}

func TestUTF8DecoderInvalidByteEmitsReplacement(t *testing.T) {
	var d utf8Decoder
	got := d.push(0xFF)
	if len(got) != 1 || got[0] != 0xFFFD {
		t.Fatalf("decoded %v for invalid byte, want replacement char", got)
	}
}

func TestCharsetTranslation(t *testing.T) {
	if got := translateGraphic(CharsetUSA, 'q'); got != 'q' {
		t.Errorf("USA charset should not translate, got %q", got)
	}
	if got := translateGraphic(CharsetGraphic0, 'q'); got == 'q' {
		t.Errorf("DEC graphics charset should translate 'q', got unchanged %q", got)
	}
}

func TestIsControl(t *testing.T) {
	if !isControl(0x07) {
		t.Error("BEL should be a control code")
	}
	if !isControl(0x7F) {
		t.Error("DEL should be a control code")
	}
	if isControl('A') {
		t.Error("'A' should not be a control code")
	}
}
