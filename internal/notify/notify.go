// Package notify tells the user, through the desktop, that a drawing was
// saved or copied.
package notify

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	qlog "github.com/example/quaintpaint/internal/log"
	"github.com/example/quaintpaint/internal/platform"
	"github.com/example/quaintpaint/internal/render"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventSave fires after a drawing is written to disk.
	EventSave Event = "save"
	// EventCopy fires after a drawing is placed on the clipboard.
	EventCopy Event = "copy"
)

// Preferences holds the title and per-event message templates. Templates
// take one %s for the event detail.
type Preferences struct {
	Title     string
	Templates map[Event]string
}

// DefaultPreferences returns the built-in wording.
func DefaultPreferences() Preferences {
	return Preferences{
		Title: "QuaintPaint",
		Templates: map[Event]string{
			EventSave: "Saved %s",
			EventCopy: "Copied %s to clipboard",
		},
	}
}

// LoadPreferences applies QUAINTPAINT_NOTIFY_* environment overrides to the
// defaults.
func LoadPreferences() Preferences {
	prefs := DefaultPreferences()
	if v := strings.TrimSpace(os.Getenv("QUAINTPAINT_NOTIFY_TITLE")); v != "" {
		prefs.Title = v
	}
	for env, ev := range map[string]Event{
		"QUAINTPAINT_NOTIFY_SAVE_TEXT": EventSave,
		"QUAINTPAINT_NOTIFY_COPY_TEXT": EventCopy,
	} {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			prefs.Templates[ev] = v
		}
	}
	return prefs
}

// sender is replaced in tests.
var sender = platform.Notify

// Notifier sends notifications for the events enabled on it. A nil Notifier
// sends nothing.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
	log     *slog.Logger
}

// New returns a Notifier with every event disabled.
func New(prefs Preferences) *Notifier {
	tmpl := make(map[Event]string, len(prefs.Templates))
	for k, v := range prefs.Templates {
		tmpl[k] = v
	}
	return &Notifier{
		prefs:   Preferences{Title: prefs.Title, Templates: tmpl},
		enabled: map[Event]bool{},
		log:     qlog.WithComponent("notify"),
	}
}

// Enable switches notifications for event on or off.
func (n *Notifier) Enable(event Event, on bool) {
	if n == nil {
		return
	}
	n.enabled[event] = on
}

// Enabled reports whether event notifications are on.
func (n *Notifier) Enabled(event Event) bool {
	return n != nil && n.enabled[event]
}

// Save announces a written file, using the file itself as the icon.
func (n *Notifier) Save(path string) {
	if !n.Enabled(EventSave) {
		return
	}
	detail := strings.TrimSpace(path)
	opts := platform.Options{}
	if abs, err := filepath.Abs(path); err == nil {
		detail = abs
		if _, err := os.Stat(abs); err == nil {
			opts.IconPath = abs
		}
	}
	n.dispatch(EventSave, detail, opts)
}

// Copy announces a clipboard copy. img, when given, becomes the icon.
func (n *Notifier) Copy(detail string, img image.Image) {
	if !n.Enabled(EventCopy) {
		return
	}
	if strings.TrimSpace(detail) == "" {
		detail = "drawing"
	}
	opts := platform.Options{}
	if img != nil {
		path, cleanup, err := writeIcon(img)
		if err != nil {
			n.log.Warn("notification icon", "err", err)
		} else {
			defer cleanup()
			opts.IconPath = path
		}
	}
	n.dispatch(EventCopy, detail, opts)
}

func (n *Notifier) dispatch(event Event, detail string, opts platform.Options) {
	tmpl := strings.TrimSpace(n.prefs.Templates[event])
	if tmpl == "" {
		return
	}
	body := strings.TrimSpace(fmt.Sprintf(tmpl, strings.TrimSpace(detail)))
	if body == "" {
		return
	}
	if err := sender(n.prefs.Title, body, opts); err != nil {
		n.log.Warn("notification failed", "event", string(event), "err", err)
	}
}

func writeIcon(img image.Image) (string, func(), error) {
	f, err := os.CreateTemp("", "quaintpaint-icon-*.png")
	if err != nil {
		return "", nil, err
	}
	path := f.Name()
	if err := render.EncodePNG(f, img); err != nil {
		f.Close()
		os.Remove(path)
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", nil, err
	}
	return path, func() { os.Remove(path) }, nil
}
