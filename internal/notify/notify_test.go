package notify

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/example/quaintpaint/internal/platform"
)

type sent struct {
	title, body string
	opts        platform.Options
	iconExisted bool
}

func capture(t *testing.T, err error) *[]sent {
	t.Helper()
	var got []sent
	old := sender
	sender = func(title, body string, opts platform.Options) error {
		_, statErr := os.Stat(opts.IconPath)
		got = append(got, sent{title, body, opts, statErr == nil})
		return err
	}
	t.Cleanup(func() { sender = old })
	return &got
}

func TestDisabledEventsAreSilent(t *testing.T) {
	got := capture(t, nil)
	n := New(DefaultPreferences())
	n.Save("a.png")
	n.Copy("", nil)
	var nilNotifier *Notifier
	nilNotifier.Save("a.png")
	if len(*got) != 0 {
		t.Fatalf("sent %d notifications, want none", len(*got))
	}
}

func TestSaveUsesAbsolutePathAndIcon(t *testing.T) {
	got := capture(t, nil)
	path := filepath.Join(t.TempDir(), "pic.png")
	if err := os.WriteFile(path, []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}
	n := New(DefaultPreferences())
	n.Enable(EventSave, true)
	n.Save(path)
	if len(*got) != 1 {
		t.Fatalf("sent %d notifications, want 1", len(*got))
	}
	s := (*got)[0]
	if s.title != "QuaintPaint" || s.body != "Saved "+path || s.opts.IconPath != path {
		t.Fatalf("unexpected notification %+v", s)
	}
}

func TestCopyWritesTemporaryIcon(t *testing.T) {
	got := capture(t, errors.New("bus down"))
	n := New(DefaultPreferences())
	n.Enable(EventCopy, true)
	n.Copy("", image.NewRGBA(image.Rect(0, 0, 4, 4)))
	if len(*got) != 1 {
		t.Fatalf("sent %d notifications, want 1", len(*got))
	}
	s := (*got)[0]
	if s.body != "Copied drawing to clipboard" {
		t.Fatalf("body = %q", s.body)
	}
	if !s.iconExisted {
		t.Fatal("icon file missing while notifying")
	}
	if _, err := os.Stat(s.opts.IconPath); !os.IsNotExist(err) {
		t.Fatalf("icon not removed afterwards: %v", err)
	}
}

func TestLoadPreferencesFromEnv(t *testing.T) {
	t.Setenv("QUAINTPAINT_NOTIFY_TITLE", "Paint")
	t.Setenv("QUAINTPAINT_NOTIFY_SAVE_TEXT", "Wrote %s")
	prefs := LoadPreferences()
	if prefs.Title != "Paint" || prefs.Templates[EventSave] != "Wrote %s" {
		t.Fatalf("unexpected prefs %+v", prefs)
	}
	if prefs.Templates[EventCopy] != DefaultPreferences().Templates[EventCopy] {
		t.Fatalf("copy template changed: %q", prefs.Templates[EventCopy])
	}
}
