package pick

import (
	"errors"
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/zrt/internal/fzf"
	"github.com/Paintersrp/zrt/internal/state"
	"github.com/Paintersrp/zrt/pkg/flags"
)

type options struct {
	copy  bool
	query string
}

func NewCmdPick(s *state.State) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Fuzzy find a note from a listing",
		Long: heredoc.Doc(`
			The pick command runs the same listing as the root command and opens the
			surviving notes in a fuzzy finder with a rendered preview. The chosen path
			is printed, and copied to the clipboard with --copy.
		`),
		Example: heredoc.Doc(`
			zrt pick -f refactored -w
			zrt pick -p draft --copy
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, s, opts)
		},
	}

	flags.AddListing(cmd)
	cmd.Flags().BoolVar(&opts.copy, "copy", false, "Copy the chosen path to the clipboard")
	cmd.Flags().StringVarP(&opts.query, "query", "q", "", "Initial finder query")

	return cmd
}

func run(cmd *cobra.Command, s *state.State, opts options) error {
	list, err := flags.HandleListing(cmd)
	if err != nil {
		return err
	}

	root := s.Directory()
	h, err := s.NewHandler(cmd.Context(), root, flags.HandleExclude(cmd))
	if err != nil {
		return err
	}

	records, err := h.Records(cmd.Context())
	if err != nil {
		return err
	}

	load, err := h.Loader(cmd.Context())
	if err != nil {
		return err
	}

	picker := fzf.NewPicker(list.Apply(records), load)
	picker.Query = opts.query
	picker.Header = root

	chosen, err := picker.Pick()
	if errors.Is(err, fzf.ErrNoSelection) {
		fmt.Fprintln(cmd.ErrOrStderr(), "No note selected")
		return nil
	}
	if err != nil {
		return err
	}

	if opts.copy {
		if err := clipboard.WriteAll(chosen.Path); err != nil {
			s.Logger.Warn("failed to copy to clipboard", "err", err)
		}
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), chosen.Path)
	return err
}
