package watch

import (
	"context"
	"fmt"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Paintersrp/zrt/internal/state"
	"github.com/Paintersrp/zrt/internal/stats"
	noteWatch "github.com/Paintersrp/zrt/internal/watch"
	"github.com/Paintersrp/zrt/pkg/flags"
)

type options struct {
	tag      string
	debounce time.Duration
}

func NewCmdWatch(s *state.State) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Reprint the report whenever notes change",
		Long: heredoc.Doc(`
			The watch command prints the todo tag report, or the listing selected by
			the listing flags, then prints it again after every batch of note
			changes under the root. Only local directories can be watched.
		`),
		Example: heredoc.Doc(`
			zrt watch
			zrt watch -t draft
			zrt watch -f refactored -w -n 5
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, s, opts)
		},
	}

	flags.AddListing(cmd)
	cmd.Flags().StringVarP(&opts.tag, "tag", "t", "", "Tag to report on (default: config todo_tag)")
	cmd.Flags().DurationVar(&opts.debounce, "debounce", noteWatch.DefaultDebounce, "Quiet period before reprinting")

	return cmd
}

func run(cmd *cobra.Command, s *state.State, opts options) error {
	ctx := cmd.Context()
	root := s.Directory()
	exclude := flags.HandleExclude(cmd)

	list, err := flags.HandleListing(cmd)
	if err != nil {
		return err
	}

	tag := opts.tag
	if tag == "" {
		tag = viper.GetString("todo_tag")
	}

	printer := flags.NewPrinter(cmd)
	report := func(ctx context.Context) error {
		h, err := s.NewHandler(ctx, root, exclude)
		if err != nil {
			return err
		}
		records, err := h.Records(ctx)
		if err != nil {
			return err
		}
		if list.Active {
			return printer.Records(list.Apply(records), list.ShowWords)
		}
		return printer.Pattern(stats.Pattern(records, tag))
	}

	w, err := noteWatch.New(root, noteWatch.Options{
		Scan:     s.ScanOptions(exclude),
		Debounce: opts.debounce,
		Logger:   s.Logger,
	})
	if err != nil {
		return err
	}
	defer w.Close()

	if err := report(ctx); err != nil {
		return err
	}

	return w.Run(ctx, func(paths []string) error {
		s.Logger.Debug("rescanning", "changed", len(paths))
		if _, err := fmt.Fprintln(cmd.OutOrStdout()); err != nil {
			return err
		}
		return report(ctx)
	})
}
