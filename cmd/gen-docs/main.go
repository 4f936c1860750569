package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/stigoleg/mouse-jiggler/internal/cli"
)

// gen-docs writes shell completions and a roff man page for the jiggler
// command into docs/completions and man/.

const appVersion = "1.0.0"

func main() {
	root := cli.NewRootCommand(appVersion)

	if err := writeCompletions(root, filepath.Join("docs", "completions")); err != nil {
		fmt.Fprintln(os.Stderr, "completions:", err)
		os.Exit(1)
	}
	if err := writeMan(root, "man"); err != nil {
		fmt.Fprintln(os.Stderr, "man page:", err)
		os.Exit(1)
	}
}

func writeCompletions(root *cobra.Command, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	name := root.Name()

	gens := []struct {
		file string
		gen  func(*bytes.Buffer) error
	}{
		{name + ".bash", func(b *bytes.Buffer) error { return root.GenBashCompletionV2(b, true) }},
		{"_" + name, func(b *bytes.Buffer) error { return root.GenZshCompletion(b) }},
		{name + ".fish", func(b *bytes.Buffer) error { return root.GenFishCompletion(b, true) }},
		{name + ".ps1", func(b *bytes.Buffer) error { return root.GenPowerShellCompletionWithDesc(b) }},
	}
	for _, g := range gens {
		var b bytes.Buffer
		if err := g.gen(&b); err != nil {
			return fmt.Errorf("%s: %w", g.file, err)
		}
		if err := os.WriteFile(filepath.Join(dir, g.file), b.Bytes(), 0o644); err != nil {
			return err
		}
	}
	return nil
}

func writeMan(root *cobra.Command, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	page := renderMan(root)
	return os.WriteFile(filepath.Join(dir, root.Name()+".1"), []byte(page), 0o644)
}

func renderMan(root *cobra.Command) string {
	name := root.Name()
	var b strings.Builder
	b.WriteString(".TH \"" + strings.ToUpper(name) + "\" \"1\" \"\" \"" + roffEscape("mouse-jiggler "+root.Version) + "\" \"User Commands\"\n")
	b.WriteString(".SH NAME\n" + name + " \\- " + roffEscape(root.Short) + "\n")
	b.WriteString(".SH SYNOPSIS\n.B " + name + "\n[flags]\n")
	b.WriteString(".SH DESCRIPTION\n" + roffEscape(root.Long) + "\n")

	b.WriteString(".SH OPTIONS\n")
	root.InitDefaultHelpFlag()
	root.InitDefaultVersionFlag()
	root.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		b.WriteString(".TP\n\\fB" + flagNames(f) + "\\fR\n" + roffEscape(f.Usage))
		if f.DefValue != "" && f.DefValue != "false" && f.DefValue != "0" {
			b.WriteString(" (default " + roffEscape(f.DefValue) + ")")
		}
		b.WriteString("\n")
	})

	b.WriteString(".SH EXAMPLES\n.nf\n" + roffEscape(root.Example) + "\n.fi\n")
	b.WriteString(".SH SEE ALSO\nProject homepage: https://github.com/stigoleg/mouse-jiggler\n")
	return b.String()
}

func flagNames(f *pflag.Flag) string {
	names := "\\-\\-" + f.Name
	if f.Shorthand != "" {
		names = "\\-" + f.Shorthand + ", " + names
	}
	if t := f.Value.Type(); t != "bool" {
		names += " <" + t + ">"
	}
	return names
}

func roffEscape(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\\", "\\\\"), "-", "\\-")
}
