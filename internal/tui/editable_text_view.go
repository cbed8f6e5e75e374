package tui

import (
	"strings"
	"unicode"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
	"github.com/mattn/go-runewidth"
)

// EditableTextView is a multiline plain text editor. Text is kept as lines
// of runes so cursor moves and deletes never split a UTF-8 sequence; long
// lines are soft wrapped at draw time.
type EditableTextView struct {
	*tview.Box

	lines  [][]rune
	row    int // cursor line
	col    int // cursor rune index within the line
	offset int // first visible wrapped row

	textColor        tcell.Color
	placeholder      string
	placeholderColor tcell.Color

	changeFunc func()
}

// NewEditableTextView creates an empty editor
func NewEditableTextView() *EditableTextView {
	e := &EditableTextView{
		Box:              tview.NewBox(),
		lines:            [][]rune{{}},
		textColor:        tview.Styles.PrimaryTextColor,
		placeholderColor: tview.Styles.TertiaryTextColor,
	}
	e.SetBackgroundColor(tview.Styles.PrimitiveBackgroundColor)
	return e
}

// SetChangedFunc sets the handler called after every edit
func (e *EditableTextView) SetChangedFunc(handler func()) *EditableTextView {
	e.changeFunc = handler
	return e
}

// SetTextColor sets the color of the edited text
func (e *EditableTextView) SetTextColor(color tcell.Color) *EditableTextView {
	e.textColor = color
	return e
}

// SetPlaceholder sets the hint shown while the editor is empty
func (e *EditableTextView) SetPlaceholder(text string) *EditableTextView {
	e.placeholder = text
	return e
}

// SetPlaceholderTextColor sets the hint color
func (e *EditableTextView) SetPlaceholderTextColor(color tcell.Color) *EditableTextView {
	e.placeholderColor = color
	return e
}

// SetText replaces the content and moves the cursor to the end. The change
// handler is not called.
func (e *EditableTextView) SetText(text string) *EditableTextView {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	parts := strings.Split(text, "\n")
	e.lines = make([][]rune, len(parts))
	for i, p := range parts {
		e.lines[i] = []rune(p)
	}
	e.row = len(e.lines) - 1
	e.col = len(e.lines[e.row])
	e.offset = 0
	return e
}

// GetText returns the content with lines joined by "\n"
func (e *EditableTextView) GetText() string {
	var b strings.Builder
	for i, line := range e.lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(line))
	}
	return b.String()
}

// Cursor returns the cursor line and rune column
func (e *EditableTextView) Cursor() (row, col int) {
	return e.row, e.col
}

func (e *EditableTextView) empty() bool {
	return len(e.lines) == 1 && len(e.lines[0]) == 0
}

func (e *EditableTextView) changed() {
	if e.changeFunc != nil {
		e.changeFunc()
	}
}

func (e *EditableTextView) insertRune(r rune) {
	line := e.lines[e.row]
	line = append(line, 0)
	copy(line[e.col+1:], line[e.col:])
	line[e.col] = r
	e.lines[e.row] = line
	e.col++
}

func (e *EditableTextView) insertNewline() {
	line := e.lines[e.row]
	tail := append([]rune(nil), line[e.col:]...)
	e.lines[e.row] = line[:e.col]

	e.lines = append(e.lines, nil)
	copy(e.lines[e.row+2:], e.lines[e.row+1:])
	e.lines[e.row+1] = tail
	e.row++
	e.col = 0
}

// backspace deletes before the cursor; it reports whether anything changed
func (e *EditableTextView) backspace() bool {
	if e.col > 0 {
		line := e.lines[e.row]
		e.lines[e.row] = append(line[:e.col-1], line[e.col:]...)
		e.col--
		return true
	}
	if e.row == 0 {
		return false
	}
	prev := e.lines[e.row-1]
	e.col = len(prev)
	e.lines[e.row-1] = append(prev, e.lines[e.row]...)
	e.lines = append(e.lines[:e.row], e.lines[e.row+1:]...)
	e.row--
	return true
}

// deleteForward deletes under the cursor; it reports whether anything changed
func (e *EditableTextView) deleteForward() bool {
	line := e.lines[e.row]
	if e.col < len(line) {
		e.lines[e.row] = append(line[:e.col], line[e.col+1:]...)
		return true
	}
	if e.row == len(e.lines)-1 {
		return false
	}
	e.lines[e.row] = append(line, e.lines[e.row+1]...)
	e.lines = append(e.lines[:e.row+1], e.lines[e.row+2:]...)
	return true
}

func (e *EditableTextView) moveVertical(delta int) {
	e.row += delta
	if e.row < 0 {
		e.row = 0
	}
	if e.row > len(e.lines)-1 {
		e.row = len(e.lines) - 1
	}
	if e.col > len(e.lines[e.row]) {
		e.col = len(e.lines[e.row])
	}
}

// InputHandler edits the text. Tab, Escape and bound control keys are left
// to the application's global handler.
func (e *EditableTextView) InputHandler() func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
	return e.WrapInputHandler(func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
		modified := false
		switch event.Key() {
		case tcell.KeyRune:
			if event.Modifiers()&tcell.ModAlt != 0 {
				return
			}
			r := event.Rune()
			if r == '\t' {
				r = ' '
			}
			if unicode.IsControl(r) {
				return
			}
			e.insertRune(r)
			modified = true
		case tcell.KeyEnter:
			e.insertNewline()
			modified = true
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			modified = e.backspace()
		case tcell.KeyDelete:
			modified = e.deleteForward()
		case tcell.KeyLeft:
			if e.col > 0 {
				e.col--
			} else if e.row > 0 {
				e.row--
				e.col = len(e.lines[e.row])
			}
		case tcell.KeyRight:
			if e.col < len(e.lines[e.row]) {
				e.col++
			} else if e.row < len(e.lines)-1 {
				e.row++
				e.col = 0
			}
		case tcell.KeyUp:
			e.moveVertical(-1)
		case tcell.KeyDown:
			e.moveVertical(1)
		case tcell.KeyPgUp:
			_, _, _, height := e.GetInnerRect()
			e.moveVertical(-max(height, 1))
		case tcell.KeyPgDn:
			_, _, _, height := e.GetInnerRect()
			e.moveVertical(max(height, 1))
		case tcell.KeyHome, tcell.KeyCtrlA:
			e.col = 0
		case tcell.KeyEnd, tcell.KeyCtrlE:
			e.col = len(e.lines[e.row])
		case tcell.KeyCtrlU:
			if !e.empty() {
				e.SetText("")
				modified = true
			}
		}
		if modified {
			e.changed()
		}
	})
}

// visualRow is one screen row of a wrapped line
type visualRow struct {
	line       int
	start, end int // rune range [start, end)
}

// wrap splits the text into screen rows no wider than width cells
func (e *EditableTextView) wrap(width int) []visualRow {
	var rows []visualRow
	for i, line := range e.lines {
		start, w := 0, 0
		for j, r := range line {
			rw := runewidth.RuneWidth(r)
			if w+rw > width && j > start {
				rows = append(rows, visualRow{line: i, start: start, end: j})
				start, w = j, 0
			}
			w += rw
		}
		rows = append(rows, visualRow{line: i, start: start, end: len(line)})
	}
	return rows
}

// cursorRow finds the screen row holding the cursor
func (e *EditableTextView) cursorRow(rows []visualRow) int {
	for i, vr := range rows {
		if vr.line != e.row {
			continue
		}
		last := i+1 == len(rows) || rows[i+1].line != e.row
		if e.col >= vr.start && (e.col < vr.end || last) {
			return i
		}
	}
	return 0
}

// Draw renders the visible rows and, when focused, the cursor
func (e *EditableTextView) Draw(screen tcell.Screen) {
	e.Box.DrawForSubclass(screen, e)
	x, y, width, height := e.GetInnerRect()
	if width <= 0 || height <= 0 {
		return
	}

	if e.empty() && e.placeholder != "" {
		tview.Print(screen, tview.Escape(e.placeholder), x, y, width, tview.AlignLeft, e.placeholderColor)
	}

	rows := e.wrap(width)
	cur := e.cursorRow(rows)
	if cur < e.offset {
		e.offset = cur
	}
	if cur >= e.offset+height {
		e.offset = cur - height + 1
	}

	style := tcell.StyleDefault.Foreground(e.textColor).Background(e.GetBackgroundColor())
	for i := 0; i < height && e.offset+i < len(rows); i++ {
		vr := rows[e.offset+i]
		cx := x
		for _, r := range e.lines[vr.line][vr.start:vr.end] {
			rw := runewidth.RuneWidth(r)
			if rw == 0 {
				continue
			}
			screen.SetContent(cx, y+i, r, nil, style)
			cx += rw
		}
	}

	if !e.HasFocus() {
		return
	}
	vr := rows[cur]
	cx := x + runewidth.StringWidth(string(e.lines[vr.line][vr.start:e.col]))
	cy := y + cur - e.offset
	if cx >= x+width {
		cx = x + width - 1
	}
	r := ' '
	if e.col < len(e.lines[e.row]) {
		r = e.lines[e.row][e.col]
	}
	screen.SetContent(cx, cy, r, nil, style.Reverse(true))
}
