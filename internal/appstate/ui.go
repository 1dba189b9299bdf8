package appstate

import (
	"fmt"
	"image"
	"image/draw"
	"log/slog"
	"path/filepath"
	"time"
	"unicode"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/quaintpaint/internal/clipboard"
	"github.com/example/quaintpaint/internal/command"
	"github.com/example/quaintpaint/internal/redraw"
	"github.com/example/quaintpaint/internal/render"
)

const (
	buttonHeight  = 24
	bottomHeight  = 24
	minToolbar    = 64
	messageFor    = 2 * time.Second
	programTitle  = "QuaintPaint"
	titleHeight   = 20
	sectionMargin = 8
)

// ui is the window's state apart from the shiny handles, so it can be driven
// directly in tests.
type ui struct {
	app   *AppState
	coord *redraw.Coordinator

	width, height int
	toolbarWidth  int

	toolButtons   []*CacheButton
	actionButtons []*CacheButton
	shortcuts     []*Shortcut

	hoverTool     int
	hoverAction   int
	hoverShortcut int
	inside        bool
	pressed       bool

	actions        map[string]func()
	keyboardAction map[KeyShortcut]string
	quit           bool

	message      string
	messageUntil time.Time
	messageFace  font.Face
	now          func() time.Time

	// requestPaint asks the window for a new frame.
	requestPaint func()
	// afterMessage runs once a message expires so it can be erased.
	afterMessage func(time.Duration)
	log          *slog.Logger
}

func newUI(a *AppState) *ui {
	u := &ui{
		app:           a,
		hoverTool:     -1,
		hoverAction:   -1,
		hoverShortcut: -1,
		now:           time.Now,
		requestPaint:  func() {},
		afterMessage:  func(time.Duration) {},
		log:           a.log,
	}
	if face, err := render.LoadFace("", 20); err == nil {
		u.messageFace = face
	} else {
		u.messageFace = basicfont.Face7x13
	}
	u.coord = redraw.Attach(a.Surface, a.Session, func() { u.requestPaint() })
	u.coord.Redraw()
	u.registerActions()
	u.buildToolbar()
	b := a.Surface.Bounds()
	u.width = u.toolbarWidth + b.Dx()
	u.height = b.Dy() + bottomHeight
	return u
}

func (u *ui) registerActions() {
	u.actions = map[string]func(){}
	u.keyboardAction = map[KeyShortcut]string{}
	register := func(name string, keys KeyboardShortcuts, fn func()) {
		u.actions[name] = fn
		for _, sc := range keys.KeyboardShortcuts() {
			u.keyboardAction[sc] = name
		}
	}
	sess := u.app.Session
	register("undo", shortcutList{{Rune: 'z', Modifiers: key.ModControl}}, sess.Undo)
	register("redo", shortcutList{
		{Rune: 'y', Modifiers: key.ModControl},
		{Rune: 'z', Modifiers: key.ModControl | key.ModShift},
	}, sess.Redo)
	register("clear", shortcutList{{Rune: 'l', Modifiers: key.ModControl}}, sess.Clear)
	register("save", shortcutList{{Rune: 's', Modifiers: key.ModControl}}, func() {
		path, err := u.save()
		if err != nil {
			u.log.Error("save", "err", err)
			u.flash(fmt.Sprintf("save failed: %v", err))
			return
		}
		u.app.Notifier.Save(path)
		u.flash("saved " + path)
	})
	register("copy", shortcutList{{Rune: 'c', Modifiers: key.ModControl}}, func() {
		img := u.exportImage()
		if err := clipboard.WriteImage(img); err != nil {
			u.log.Error("copy", "err", err)
			u.flash(fmt.Sprintf("copy failed: %v", err))
			return
		}
		u.app.Notifier.Copy("", img)
		u.flash("drawing copied to clipboard")
	})
	register("quit", shortcutList{{Rune: 'q'}, {Code: key.CodeEscape}}, func() { u.quit = true })
}

// buildToolbar lays out one button per palette tool followed by the edit
// actions. Called again whenever the palette changes.
func (u *ui) buildToolbar() {
	th := u.app.Theme
	tools := u.app.Session.Tools()
	labels := []string{programTitle, "Undo", "Redo", "Clear"}
	for i, t := range tools {
		labels = append(labels, toolLabel(i, t))
	}
	u.toolbarWidth = minToolbar
	for _, l := range labels {
		u.toolbarWidth = max(u.toolbarWidth, textWidth(l)+8)
	}

	y := titleHeight
	u.toolButtons = u.toolButtons[:0]
	for i, t := range tools {
		tb := &ToolButton{
			labelButton: labelButton{label: toolLabel(i, t), theme: th},
			index:       i,
			onSelect:    func(i int) { u.app.Session.SelectIndex(i) },
		}
		tb.SetRect(image.Rect(0, y, u.toolbarWidth, y+buttonHeight))
		u.toolButtons = append(u.toolButtons, &CacheButton{Button: tb})
		y += buttonHeight
	}

	y += sectionMargin
	sess := u.app.Session
	u.actionButtons = u.actionButtons[:0]
	for _, spec := range []struct {
		label   string
		enabled func() bool
		fn      func()
	}{
		{"Undo", sess.CanUndo, sess.Undo},
		{"Redo", sess.CanRedo, sess.Redo},
		{"Clear", nil, sess.Clear},
	} {
		ab := &ActionButton{labelButton: labelButton{label: spec.label, theme: th}, enabled: spec.enabled, onActivate: spec.fn}
		ab.SetRect(image.Rect(0, y, u.toolbarWidth, y+buttonHeight))
		u.actionButtons = append(u.actionButtons, &CacheButton{Button: ab})
		y += buttonHeight
	}
	u.hoverTool, u.hoverAction = -1, -1
}

func toolLabel(i int, t command.Tool) string {
	if t.Kind == command.KindLine {
		return fmt.Sprintf("%d %s %s", i+1, t.Name, t.Label())
	}
	return fmt.Sprintf("%d %s", i+1, t.Name)
}

// canvasRect is where the surface is shown, in window coordinates.
func (u *ui) canvasRect() image.Rectangle {
	b := u.app.Surface.Bounds()
	return image.Rect(u.toolbarWidth, 0, u.toolbarWidth+b.Dx(), b.Dy())
}

func (u *ui) statusRect() image.Rectangle {
	return image.Rect(0, u.height-bottomHeight, u.width, u.height)
}

func (u *ui) resize(w, h int) {
	u.width, u.height = w, h
}

func (u *ui) replaceTools(tools []command.Tool) {
	u.app.Session.ReplaceTools(tools)
	u.buildToolbar()
}

func (u *ui) flash(msg string) {
	u.message = msg
	u.messageUntil = u.now().Add(messageFor)
	u.log.Info(msg)
	u.afterMessage(messageFor)
}

func (u *ui) messageShown() bool {
	return u.message != "" && u.now().Before(u.messageUntil)
}

// handleMouse routes a mouse event. Drawing input reaches the session, which
// triggers its own repaint; the result reports whether UI chrome changed.
func (u *ui) handleMouse(e mouse.Event) bool {
	p := image.Pt(int(e.X), int(e.Y))
	left := e.Button == mouse.ButtonLeft

	if left && e.Direction == mouse.DirRelease {
		u.pressed = false
		u.app.Session.PointerUp()
		return false
	}
	if u.messageShown() && e.Direction == mouse.DirPress {
		u.messageUntil = time.Time{}
		return true
	}

	canvas := u.canvasRect()
	if p.In(canvas) && !p.In(u.statusRect()) {
		dirty := u.setHover(-1, -1, -1)
		u.inside = true
		x, y := float64(e.X)-float64(canvas.Min.X), float64(e.Y)-float64(canvas.Min.Y)
		switch e.Direction {
		case mouse.DirPress:
			if left {
				u.pressed = true
				u.app.Session.PointerDown(x, y)
			}
		case mouse.DirNone:
			u.app.Session.PointerMove(x, y)
		}
		return dirty
	}

	if u.inside {
		u.inside = false
		u.app.Session.PointerLeave()
	}
	press := left && e.Direction == mouse.DirPress

	ht, ha, hs := -1, -1, -1
	for i, b := range u.toolButtons {
		if p.In(b.Rect()) {
			ht = i
			if press {
				b.Activate()
			}
		}
	}
	for i, b := range u.actionButtons {
		if p.In(b.Rect()) {
			ha = i
			if press {
				b.Activate()
			}
		}
	}
	for i, sc := range u.shortcuts {
		if p.In(sc.Rect()) {
			hs = i
			if press {
				sc.Activate()
			}
		}
	}
	return u.setHover(ht, ha, hs) || press
}

func (u *ui) setHover(tool, action, shortcut int) bool {
	changed := tool != u.hoverTool || action != u.hoverAction || shortcut != u.hoverShortcut
	u.hoverTool, u.hoverAction, u.hoverShortcut = tool, action, shortcut
	return changed
}

// handleKey runs the action bound to a key press. Digits select palette
// entries.
func (u *ui) handleKey(e key.Event) bool {
	if e.Direction != key.DirPress {
		return false
	}
	ks := KeyShortcut{Rune: unicode.ToLower(e.Rune), Code: e.Code, Modifiers: e.Modifiers}
	if e.Rune <= 0 {
		ks.Rune = 0
	} else {
		ks.Code = 0
	}
	if name, ok := u.keyboardAction[ks]; ok {
		u.trigger(name)
		return true
	}
	if e.Rune >= '1' && e.Rune <= '9' && e.Modifiers == 0 {
		return u.app.Session.SelectIndex(int(e.Rune - '1'))
	}
	return false
}

func (u *ui) trigger(name string) {
	if fn, ok := u.actions[name]; ok {
		fn()
	}
}

func (u *ui) exportImage() *image.RGBA {
	return render.Flatten(u.coord.Snapshot().Image(), u.app.Theme.Paper)
}

// save writes the drawing to the configured output, or to a timestamped
// file in the save directory.
func (u *ui) save() (string, error) {
	path := u.app.Output
	if path == "" {
		dir := u.app.SaveDir
		if dir == "" {
			dir = "."
		}
		path = filepath.Join(dir, u.now().Format("quaintpaint-20060102-150405.png"))
	}
	if err := render.WritePNG(path, u.exportImage()); err != nil {
		return "", err
	}
	return path, nil
}

// draw composes a full window frame into dst.
func (u *ui) draw(dst *image.RGBA) {
	th := u.app.Theme
	draw.Draw(dst, dst.Bounds(), &image.Uniform{th.Background}, image.Point{}, draw.Src)

	canvas := u.canvasRect()
	draw.Draw(dst, canvas, &image.Uniform{th.Paper}, image.Point{}, draw.Src)
	draw.Draw(dst, canvas, u.app.Surface.Image(), image.Point{}, draw.Over)

	draw.Draw(dst, image.Rect(0, 0, u.toolbarWidth, u.height), &image.Uniform{th.ToolbarBackground}, image.Point{}, draw.Src)
	title := &font.Drawer{Dst: dst, Src: image.NewUniform(th.Foreground), Face: basicfont.Face7x13, Dot: fixed.P(4, 14)}
	title.DrawString(programTitle)

	current := u.app.Session.ToolIndex()
	for i, b := range u.toolButtons {
		state := StateDefault
		if i == current {
			state = StatePressed
		} else if i == u.hoverTool {
			state = StateHover
		}
		b.Draw(dst, state)
	}
	for i, b := range u.actionButtons {
		state := StateDefault
		if ab, ok := b.Button.(*ActionButton); ok && !ab.Enabled() {
			state = StateDisabled
		} else if i == u.hoverAction {
			state = StateHover
		}
		b.Draw(dst, state)
	}

	u.drawShortcuts(dst)
	if u.messageShown() {
		u.drawMessage(dst)
	}
}

func (u *ui) drawShortcuts(dst *image.RGBA) {
	th := u.app.Theme
	rect := u.statusRect()
	draw.Draw(dst, rect, &image.Uniform{th.StatusBackground}, image.Point{}, draw.Src)
	items := []struct{ label, action string }{
		{"^Z:undo", "undo"},
		{"^Y:redo", "redo"},
		{"^L:clear", "clear"},
		{"^S:save", "save"},
		{"^C:copy", "copy"},
		{"1-9:tool", ""},
		{"Q:quit", "quit"},
	}
	u.shortcuts = u.shortcuts[:0]
	x := 4
	for i, it := range items {
		name := it.action
		sc := &Shortcut{labelButton: labelButton{label: it.label, theme: th}}
		if name != "" {
			sc.action = func() { u.trigger(name) }
		}
		w := textWidth(it.label) + 8
		sc.SetRect(image.Rect(x, rect.Min.Y+2, x+w, rect.Max.Y-2))
		state := StateDefault
		if i == u.hoverShortcut {
			state = StateHover
		}
		sc.Draw(dst, state)
		u.shortcuts = append(u.shortcuts, sc)
		x += w + 6
	}
}

func (u *ui) drawMessage(dst *image.RGBA) {
	th := u.app.Theme
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.Foreground), Face: u.messageFace}
	w := d.MeasureString(u.message).Ceil()
	m := u.messageFace.Metrics()
	ascent, descent := m.Ascent.Ceil(), m.Descent.Ceil()
	px := (u.width - w) / 2
	py := (u.height-ascent-descent)/2 + ascent
	box := image.Rect(px-8, py-ascent-8, px+w+8, py+descent+8)
	draw.Draw(dst, box, &image.Uniform{th.StatusBackground}, image.Point{}, draw.Over)
	drawRect(dst, box, th.ButtonBorder)
	d.Dot = fixed.P(px, py)
	d.DrawString(u.message)
}
