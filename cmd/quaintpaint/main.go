package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/image/font"

	"github.com/example/quaintpaint/internal/command"
	"github.com/example/quaintpaint/internal/config"
	qlog "github.com/example/quaintpaint/internal/log"
	"github.com/example/quaintpaint/internal/notify"
	"github.com/example/quaintpaint/internal/render"
	"github.com/example/quaintpaint/internal/theme"
	"github.com/example/quaintpaint/internal/toolset"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs          *flag.FlagSet
	program     string
	notifier    *notify.Notifier
	config      *config.Config
	saveAlerts  bool
	copyAlerts  bool
	themeName   string
	toolsetPath string
	logLevel    string
	logFile     string
	activeTheme *theme.Theme
	tools       []command.Tool
	face        font.Face
	stdout      io.Writer
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func newRoot(cfg *config.Config) *root {
	r := &root{
		fs:       flag.NewFlagSet("quaintpaint", flag.ContinueOnError),
		program:  "quaintpaint",
		notifier: notify.New(notify.LoadPreferences()),
		config:   cfg,
		stdout:   os.Stdout,
	}
	r.fs.BoolVar(&r.saveAlerts, "notify-save", cfg.Notify.Save, "show a desktop notification after saving a drawing")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", cfg.Notify.Copy, "show a desktop notification after copying to the clipboard")

	// Precedence: CLI > Env > Config > Default. Empty flag values fall
	// through in Run.
	r.fs.StringVar(&r.themeName, "theme", "", "color theme to use ("+strings.Join(theme.Embedded(), ", ")+" or a .theme file)")
	r.fs.StringVar(&r.toolsetPath, "toolset", "", "tool preset file (YAML)")
	r.fs.StringVar(&r.logLevel, "log-level", "", "log level: debug, info, warn or error")
	r.fs.StringVar(&r.logFile, "log-file", "", "also write JSON logs to this rotated file")
	r.fs.Usage = usageFunc(r)
	return r
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}

	qlog.Init(qlog.Options{Level: r.logLevel, File: r.logFile, Version: version}.
		Merge(qlog.FromEnv()).
		Merge(qlog.Options{Level: r.config.Log.Level, Format: r.config.Log.Format, File: r.config.Log.File}))
	defer qlog.Close()
	logger := qlog.WithComponent("cli")

	r.notifier.Enable(notify.EventSave, r.saveAlerts)
	r.notifier.Enable(notify.EventCopy, r.copyAlerts)

	themeName := r.themeName
	if themeName == "" {
		themeName = os.Getenv("QUAINTPAINT_THEME")
	}
	if themeName == "" {
		themeName = r.config.Theme
	}
	loader := theme.NewLoader()
	loader.Inline = r.config.Themes
	t, err := loader.Load(themeName)
	if err != nil {
		if themeName != "default" {
			logger.Warn("theme not loaded, using default", "theme", themeName, "err", err)
		}
		t = theme.Default()
	}
	r.activeTheme = t

	if r.toolsetPath == "" {
		r.toolsetPath = r.config.Toolset
	}
	preset, err := toolset.Load(r.toolsetPath)
	if err != nil {
		return fmt.Errorf("load toolset: %w", err)
	}
	r.tools = preset.Tools()

	if r.config.StickerFont != "" || r.config.StickerSize > 0 {
		face, err := render.LoadFace(r.config.StickerFont, r.config.StickerSize)
		if err != nil {
			logger.Warn("sticker font not loaded, using default", "font", r.config.StickerFont, "err", err)
		} else {
			r.face = face
		}
	}

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]
	logger.Debug("command", "name", cmdName, "args", subArgs)

	var cmd runnable
	switch cmdName {
	case "draw":
		cmd, err = parseDrawCmd(subArgs, r)
	case "replay":
		cmd, err = parseReplayCmd(subArgs, r)
	case "tools":
		cmd, err = parseToolsCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{r: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func main() {
	cfg, err := config.NewLoader(version, configPathOverride).Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}
	r := newRoot(cfg)
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		switch {
		case errors.Is(err, flag.ErrHelp):
		case errors.As(err, &uerr):
			fmt.Fprintln(os.Stderr, uerr.Error())
			os.Exit(2)
		default:
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}
