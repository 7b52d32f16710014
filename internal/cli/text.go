package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dotwalk/pkg/dot"
	errs "github.com/matzehuels/dotwalk/pkg/errors"
	dotio "github.com/matzehuels/dotwalk/pkg/io"
)

// idCommand checks names against the DOT identifier rules.
func (c *CLI) idCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "id NAME...",
		Short: "Check whether names are valid DOT identifiers",
		Long: `Check whether names are valid DOT identifiers.

An identifier starts with an ASCII letter or underscore, followed by ASCII
letters, digits or underscores. The command fails if any name is invalid.`,
		Example: `  dotwalk id node_1 _hidden 1st`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			bad := 0
			for _, name := range args {
				if _, err := dot.NewID(name); err != nil {
					printError(out, "%q: %s", name, strings.TrimPrefix(err.Error(), "dot: "))
					bad++
					continue
				}
				printSuccess(out, "%s", name)
			}
			if bad > 0 {
				return errs.New(errs.ErrCodeInvalidID, "%d of %d %s invalid", bad, len(args), plural(len(args), "name"))
			}
			return nil
		},
	}
}

// escapeHTMLCommand escapes text for use in an HTML label.
func (c *CLI) escapeHTMLCommand() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "escape-html [TEXT]",
		Short: "Escape text for an HTML label",
		Long: `Escape text for an HTML label: & " < > are replaced by entities and
newlines become <br align="left"/>. Without TEXT, standard input is read.

With --label, the text is printed as a DOT label literal of that kind
(plain, esc or html) instead, the way it appears in rendered output.`,
		Example: `  dotwalk escape-html 'a < b & c'
  printf 'x\ny' | dotwalk escape-html
  dotwalk escape-html --label plain 'say "hi"'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var text string
			if len(args) == 1 {
				text = args[0]
			} else {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return errs.Wrap(errs.ErrCodeIO, err, "read standard input")
				}
				text = strings.TrimSuffix(string(data), "\n")
			}

			if kind == "" {
				fmt.Fprintln(cmd.OutOrStdout(), dot.EscapeHTML(text))
				return nil
			}
			label, err := dotio.ParseLabel(kind, text)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), label.Escaped())
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "label", "", "print a label literal of this kind: plain, esc, html")
	_ = cmd.RegisterFlagCompletionFunc("label", cobra.FixedCompletions([]string{"plain", "esc", "html"}, cobra.ShellCompDirectiveNoFileComp))
	return cmd
}
