package headlessterm

// setChar writes u with attrs at (x, y) on the active screen: DEC Special
// Graphics substitution, wide/wide-dummy neighbor fixup, and the dirty-row
// mark all happen here.
func (t *Term) setChar(u rune, attrs Cell, x, y int) {
	s := t.screen()
	if y < 0 || y >= len(s.Rows) || x < 0 || x >= t.cols {
		return
	}
	u = translateGraphic(t.trantbl[t.charset], u)

	row := s.Rows[y]
	if row[x].HasFlag(CellFlagWide) {
		if x+1 < t.cols {
			row[x+1].Char = ' '
			row[x+1].ClearFlag(CellFlagWideDummy)
		}
	} else if row[x].HasFlag(CellFlagWideDummy) {
		if x-1 >= 0 {
			row[x-1].Char = ' '
			row[x-1].ClearFlag(CellFlagWide)
		}
	}

	s.markDirty(y)
	cell := attrs
	cell.Char = u
	row[x] = cell
}

// clearRegion blanks the rectangle [x1,y1]-[x2,y2] (inclusive, normalized)
// on the active screen using the cursor's current colors.
func (t *Term) clearRegion(x1, y1, x2, y2 int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	x1 = clamp(x1, 0, t.cols-1)
	x2 = clamp(x2, 0, t.cols-1)
	y1 = clamp(y1, 0, t.rows-1)
	y2 = clamp(y2, 0, t.rows-1)

	s := t.screen()
	for y := y1; y <= y2; y++ {
		s.markDirty(y)
		row := s.Rows[y]
		for x := x1; x <= x2; x++ {
			row[x] = Cell{Char: ' ', Fg: t.cur.Attrs.Fg, Bg: t.cur.Attrs.Bg}
		}
	}
}

// insertBlank right-shifts the cursor row from the cursor by n columns
// (clamped to the remaining width), blanking the vacated range.
func (t *Term) insertBlank(n int) {
	n = clamp(n, 0, t.cols-t.cur.X)
	if n == 0 {
		return
	}
	row := t.screen().Rows[t.cur.Y]
	dst := t.cur.X + n
	src := t.cur.X
	size := t.cols - dst
	copy(row[dst:dst+size], row[src:src+size])
	t.clearRegion(src, t.cur.Y, dst-1, t.cur.Y)
}

// deleteChar left-shifts the cursor row from cursor.x+n, blanking the tail.
func (t *Term) deleteChar(n int) {
	n = clamp(n, 0, t.cols-t.cur.X)
	if n == 0 {
		return
	}
	row := t.screen().Rows[t.cur.Y]
	dst := t.cur.X
	src := t.cur.X + n
	size := t.cols - src
	copy(row[dst:dst+size], row[src:src+size])
	t.clearRegion(t.cols-n, t.cur.Y, t.cols-1, t.cur.Y)
}

// scrollUp clears n rows starting at origin and rotates the rows below
// them up, within the scroll region's bottom bound.
func (t *Term) scrollUp(origin, n int) {
	n = clamp(n, 0, t.bot-origin+1)
	if n == 0 {
		return
	}
	if t.active == 0 && origin == 0 && t.top == 0 {
		s := t.screen()
		for i := 0; i < n; i++ {
			t.scrollback.Push(append([]Cell(nil), s.Rows[i]...))
		}
	}
	t.clearRegion(0, origin, t.cols-1, origin+n-1)
	s := t.screen()
	for y := range s.Dirty[origin : t.bot+1] {
		s.Dirty[origin+y] = true
	}
	for i := origin; i <= t.bot-n; i++ {
		s.Rows[i], s.Rows[i+n] = s.Rows[i+n], s.Rows[i]
	}
}

// scrollDown is scrollUp's mirror image.
func (t *Term) scrollDown(origin, n int) {
	n = clamp(n, 0, t.bot-origin+1)
	if n == 0 {
		return
	}
	s := t.screen()
	for y := range s.Dirty[origin : t.bot-n+1] {
		s.Dirty[origin+y] = true
	}
	t.clearRegion(0, t.bot-n+1, t.cols-1, t.bot)
	for i := t.bot; i >= origin+n; i-- {
		s.Rows[i], s.Rows[i-n] = s.Rows[i-n], s.Rows[i]
	}
}

// insertBlankLine and deleteLine only act when the cursor sits inside the
// scroll region, implemented via scrollDown/scrollUp at the cursor row.
func (t *Term) insertBlankLine(n int) {
	if t.cur.Y >= t.top && t.cur.Y <= t.bot {
		t.scrollDown(t.cur.Y, n)
	}
}

func (t *Term) deleteLine(n int) {
	if t.cur.Y >= t.top && t.cur.Y <= t.bot {
		t.scrollUp(t.cur.Y, n)
	}
}

// moveTo clears wrap-next and clamps (x, y) into the screen, or the scroll
// region when origin mode is set.
func (t *Term) moveTo(x, y int) {
	miny, maxy := 0, t.rows-1
	if t.cur.origin() {
		miny, maxy = t.top, t.bot
	}
	t.cur.setWrapNext(false)
	t.cur.X = clamp(x, 0, t.cols-1)
	t.cur.Y = clamp(y, miny, maxy)
}

// moveATo is moveTo but, for absolute user moves, adds top to y when origin
// mode is set.
func (t *Term) moveATo(x, y int) {
	off := 0
	if t.cur.origin() {
		off = t.top
	}
	t.moveTo(x, y+off)
}

// newline moves the cursor down one row, scrolling the region up if the
// cursor sits on the bottom margin, and to column 0 when firstCol is set.
func (t *Term) newline(firstCol bool) {
	y := t.cur.Y
	if y == t.bot {
		t.scrollUp(t.top, 1)
	} else {
		y++
	}
	x := t.cur.X
	if firstCol {
		x = 0
	}
	t.moveTo(x, y)
}

// putTab advances (n > 0) or retreats (n < 0) |n| tab stops.
func (t *Term) putTab(n int) {
	x := t.cur.X
	if n > 0 {
		for x < t.cols && n > 0 {
			n--
			for x++; x < t.cols && !t.tabs[x]; x++ {
			}
		}
	} else if n < 0 {
		for x > 0 && n < 0 {
			n++
			for x--; x > 0 && !t.tabs[x]; x-- {
			}
		}
	}
	t.cur.X = clamp(x, 0, t.cols-1)
}

func (t *Term) setTabStop(x int) {
	if x >= 0 && x < len(t.tabs) {
		t.tabs[x] = true
	}
}

func (t *Term) clearTabStop(x int) {
	if x >= 0 && x < len(t.tabs) {
		t.tabs[x] = false
	}
}

func (t *Term) clearAllTabStops() {
	for i := range t.tabs {
		t.tabs[i] = false
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
