package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/motionkit/internal/application/aliases"
	"github.com/alexisbeaulieu97/motionkit/internal/domain/tokens"
)

type aliasOptions struct {
	values bool
	yes    bool
}

func newAliasCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alias",
		Short: "Manage display labels for token names and preset values",
	}

	cmd.AddCommand(newAliasListCmd(flags))
	cmd.AddCommand(newAliasSetCmd(flags))
	cmd.AddCommand(newAliasResetCmd(flags))

	return cmd
}

func newAliasListCmd(flags *rootFlags) *cobra.Command {
	opts := &aliasOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the registered aliases",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd, flags, appOptions{})
			if err != nil {
				return err
			}
			defer app.Close()

			labels := app.Names.All()
			header := "TOKEN\tLABEL"
			if opts.values {
				labels = app.Values.All(aliases.TypeSpring)
				header = "VALUE\tLABEL"
			}
			keys := make([]string, 0, len(labels))
			for k := range labels {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, header)
			for _, k := range keys {
				fmt.Fprintf(w, "%s\t%s\n", k, labels[k])
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&opts.values, "values", false, "List preset value aliases instead of token names")

	return cmd
}

func newAliasSetCmd(flags *rootFlags) *cobra.Command {
	opts := &aliasOptions{}

	cmd := &cobra.Command{
		Use:   "set <key> <label>",
		Short: "Set the label of a token name, or of a preset value with --values",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, label := strings.TrimSpace(args[0]), strings.TrimSpace(args[1])
			if key == "" {
				return newCommandError("set alias", "validating key", errors.New("key cannot be empty"), "Pass a token name such as ACCORDION_ARROW_MASS.")
			}

			app, err := loadApp(cmd, flags, appOptions{})
			if err != nil {
				return err
			}
			defer app.Close()

			ctx, logger := app.CommandContext(cmd, "command.alias.set")
			if opts.values {
				err = app.Values.Set(ctx, key, label, aliases.TypeSpring)
			} else {
				err = app.Names.Set(ctx, tokens.Name(key), label)
			}
			if err != nil {
				logger.Error(ctx, "alias update failed", "key", key, "error", err)
				return newCommandError("set alias", fmt.Sprintf("saving %q", key), err, "Check the store file permissions and retry.")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s → %s\n", key, label)
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.values, "values", false, "Label a preset value instead of a token name")

	return cmd
}

func newAliasResetCmd(flags *rootFlags) *cobra.Command {
	opts := &aliasOptions{}

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Restore the default aliases",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd, flags, appOptions{})
			if err != nil {
				return err
			}
			defer app.Close()

			ctx, logger := app.CommandContext(cmd, "command.alias.reset")
			prompt := &terminalPrompt{cmd: cmd, approve: opts.yes}

			// One answer covers both tables.
			resetErr := aliases.ErrResetDeclined
			if prompt.confirm(ctx, "Reset token name and preset value aliases to defaults?") {
				approved := func(context.Context, string) bool { return true }
				resetErr = app.Names.Reset(ctx, approved)
				if resetErr == nil {
					resetErr = app.Values.Reset(ctx, approved)
				}
			}
			switch {
			case errors.Is(resetErr, aliases.ErrResetDeclined) && prompt.unavailable:
				return newCommandError("reset aliases", "prompting for confirmation", errors.New("not a terminal"), "Use --yes when running in non-interactive environments.")
			case errors.Is(resetErr, aliases.ErrResetDeclined):
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			case resetErr != nil:
				logger.Error(ctx, "alias reset failed", "error", resetErr)
				return newCommandError("reset aliases", "saving defaults", resetErr, "Check the store file permissions and retry.")
			}

			fmt.Fprintln(cmd.OutOrStdout(), "✓ Aliases restored to defaults")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "Reset without confirmation")

	return cmd
}

// terminalPrompt implements aliases.Confirmation on the command's stdin.
type terminalPrompt struct {
	cmd         *cobra.Command
	approve     bool
	unavailable bool
	scanner     *bufio.Scanner
}

func (p *terminalPrompt) confirm(_ context.Context, question string) bool {
	if p.approve {
		return true
	}
	if !isTerminal(p.cmd.InOrStdin()) {
		p.unavailable = true
		return false
	}

	fmt.Fprintf(p.cmd.OutOrStdout(), "%s [y/N]: ", question)
	if p.scanner == nil {
		p.scanner = bufio.NewScanner(p.cmd.InOrStdin())
	}
	if !p.scanner.Scan() {
		return false
	}
	answer := strings.TrimSpace(strings.ToLower(p.scanner.Text()))
	return answer == "y" || answer == "yes"
}

func isTerminal(stream any) bool {
	if file, ok := stream.(*os.File); ok {
		return termIsTerminal(int(file.Fd()))
	}
	return false
}

var termIsTerminal = func(fd int) bool {
	return term.IsTerminal(fd)
}
