package main

import (
	"flag"

	"github.com/example/quaintpaint/internal/appstate"
	"github.com/example/quaintpaint/internal/render"
	"github.com/example/quaintpaint/internal/session"
)

// drawCmd opens the interactive drawing window.
type drawCmd struct {
	*root
	fs     *flag.FlagSet
	width  int
	height int
	output string
}

func (d *drawCmd) FlagSet() *flag.FlagSet { return d.fs }
func (d *drawCmd) Program() string        { return d.root.program + " draw" }

func parseDrawCmd(args []string, r *root) (*drawCmd, error) {
	fs := flag.NewFlagSet("draw", flag.ContinueOnError)
	d := &drawCmd{root: r, fs: fs}
	fs.Usage = usageFunc(d)
	fs.IntVar(&d.width, "width", r.config.Width, "canvas width in pixels")
	fs.IntVar(&d.height, "height", r.config.Height, "canvas height in pixels")
	fs.StringVar(&d.output, "output", "", "file written by Ctrl+S (defaults to a timestamped file in save_dir)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 || d.width <= 0 || d.height <= 0 {
		return nil, &UsageError{of: d}
	}
	return d, nil
}

func (d *drawCmd) Run() error {
	st := appstate.New(
		appstate.WithSession(session.New(d.tools)),
		appstate.WithSurface(render.NewSurface(d.width, d.height, d.face)),
		appstate.WithTheme(d.activeTheme),
		appstate.WithOutput(d.output),
		appstate.WithSaveDir(d.config.SaveDir),
		appstate.WithToolset(d.toolsetPath),
		appstate.WithNotifier(d.notifier),
	)
	st.Run()
	return nil
}
