// Package appstate runs the interactive drawing window.
package appstate

import (
	"context"
	"image"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/quaintpaint/internal/command"
	qlog "github.com/example/quaintpaint/internal/log"
	"github.com/example/quaintpaint/internal/notify"
	"github.com/example/quaintpaint/internal/render"
	"github.com/example/quaintpaint/internal/session"
	"github.com/example/quaintpaint/internal/theme"
	"github.com/example/quaintpaint/internal/toolset"
)

// AppState holds application configuration for the UI.
type AppState struct {
	Session  *session.Session
	Surface  *render.Surface
	Theme    *theme.Theme
	Output   string
	SaveDir  string
	Toolset  string
	Notifier *notify.Notifier

	onClose   func()
	closeOnce sync.Once
	log       *slog.Logger
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithSession sets the drawing session driven by the window.
func WithSession(s *session.Session) Option { return func(a *AppState) { a.Session = s } }

// WithSurface sets the surface the drawing is rendered onto. Its size is the
// canvas size.
func WithSurface(s *render.Surface) Option { return func(a *AppState) { a.Surface = s } }

// WithTheme sets the colours used for the window chrome and paper.
func WithTheme(t *theme.Theme) Option { return func(a *AppState) { a.Theme = t } }

// WithOutput sets the file written on save.
func WithOutput(out string) Option { return func(a *AppState) { a.Output = out } }

// WithSaveDir sets where timestamped saves go when no output is set.
func WithSaveDir(dir string) Option { return func(a *AppState) { a.SaveDir = dir } }

// WithToolset sets a preset file that is watched and reloaded while the
// window is open.
func WithToolset(path string) Option { return func(a *AppState) { a.Toolset = path } }

// WithNotifier sets the notifier told about saves and clipboard copies.
func WithNotifier(n *notify.Notifier) Option { return func(a *AppState) { a.Notifier = n } }

// WithOnClose registers a callback invoked once the window has closed.
func WithOnClose(fn func()) Option { return func(a *AppState) { a.onClose = fn } }

// New creates an AppState with the provided options.
func New(opts ...Option) *AppState {
	a := &AppState{}
	for _, o := range opts {
		o(a)
	}
	if a.Session == nil {
		a.Session = session.New(nil)
	}
	if a.Surface == nil {
		a.Surface = render.NewSurface(800, 600, nil)
	}
	if a.Theme == nil {
		a.Theme = theme.Default()
	}
	if a.log == nil {
		a.log = qlog.WithComponent("window")
	}
	return a
}

// controlEvent carries a reloaded palette into the event loop.
type controlEvent struct {
	Tools []command.Tool
	Err   error
}

func (a *AppState) notifyClose() {
	a.closeOnce.Do(func() {
		if a.onClose != nil {
			a.onClose()
		}
	})
}

// Run executes the UI loop using shiny's driver.
func (a *AppState) Run() { driver.Main(a.Main) }

func (a *AppState) Main(s screen.Screen) {
	u := newUI(a)
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: u.width, Height: u.height, Title: programTitle})
	if err != nil {
		a.log.Error("new window", "err", err)
		return
	}
	defer w.Release()
	defer a.notifyClose()

	var paintPending bool
	u.requestPaint = func() {
		if paintPending {
			return
		}
		paintPending = true
		w.Send(paint.Event{})
	}
	u.afterMessage = func(d time.Duration) {
		time.AfterFunc(d, func() { w.Send(paint.Event{}) })
	}

	if a.Toolset != "" {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		err := toolset.Watch(ctx, a.Toolset, func(p *toolset.Preset, err error) {
			if err != nil {
				w.Send(controlEvent{Err: err})
				return
			}
			w.Send(controlEvent{Tools: p.Tools()})
		})
		if err != nil {
			a.log.Warn("toolset watch disabled", "path", a.Toolset, "err", err)
		}
	}

	for {
		e := w.NextEvent()
		switch e := e.(type) {
		case controlEvent:
			if e.Err != nil {
				a.log.Warn("toolset reload", "path", a.Toolset, "err", e.Err)
				u.flash("toolset not reloaded: " + e.Err.Error())
			} else {
				u.replaceTools(e.Tools)
				a.log.Info("toolset reloaded", "path", a.Toolset, "tools", len(e.Tools))
			}
			u.requestPaint()
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
		case size.Event:
			u.resize(e.WidthPx, e.HeightPx)
			u.requestPaint()
		case paint.Event:
			paintPending = false
			if err := u.present(s, w); err != nil {
				a.log.Error("paint", "err", err)
			}
		case mouse.Event:
			if u.handleMouse(e) {
				u.requestPaint()
			}
		case key.Event:
			if u.handleKey(e) {
				u.requestPaint()
			}
			if u.quit {
				return
			}
		case error:
			a.log.Error("window", "err", e)
		}
	}
}

// present draws a frame into a fresh buffer and publishes it.
func (u *ui) present(s screen.Screen, w screen.Window) error {
	if u.width <= 0 || u.height <= 0 {
		return nil
	}
	b, err := s.NewBuffer(image.Pt(u.width, u.height))
	if err != nil {
		return err
	}
	defer b.Release()
	u.draw(b.RGBA())
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
	return nil
}
