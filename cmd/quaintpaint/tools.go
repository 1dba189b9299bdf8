package main

import (
	"flag"
	"fmt"
)

type toolsCmd struct {
	*root
	fs *flag.FlagSet
}

func (c *toolsCmd) FlagSet() *flag.FlagSet { return c.fs }
func (c *toolsCmd) Program() string        { return c.root.program + " tools" }

func parseToolsCmd(args []string, r *root) (*toolsCmd, error) {
	fs := flag.NewFlagSet("tools", flag.ContinueOnError)
	cmd := &toolsCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *toolsCmd) Run() error {
	if len(c.tools) == 0 {
		fmt.Fprintln(c.stdout, "no tools available")
		return nil
	}
	source := c.toolsetPath
	if source == "" {
		source = "built-in"
	}
	fmt.Fprintf(c.stdout, "tools (%s):\n", source)
	for i, t := range c.tools {
		fmt.Fprintf(c.stdout, "%d\t%-8s\t%-10s\t%s\n", i+1, t.Kind, t.Name, t.Label())
	}
	return nil
}
