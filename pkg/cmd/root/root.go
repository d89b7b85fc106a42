package root

import (
	"errors"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Paintersrp/zrt/internal/constants"
	"github.com/Paintersrp/zrt/internal/report"
	"github.com/Paintersrp/zrt/internal/state"
	"github.com/Paintersrp/zrt/internal/stats"
	"github.com/Paintersrp/zrt/pkg/cmd/initialize"
	"github.com/Paintersrp/zrt/pkg/cmd/pick"
	"github.com/Paintersrp/zrt/pkg/cmd/tags"
	"github.com/Paintersrp/zrt/pkg/cmd/version"
	"github.com/Paintersrp/zrt/pkg/cmd/watch"
	"github.com/Paintersrp/zrt/pkg/flags"
)

type options struct {
	count    bool
	statsTag string
	tag      string
	doneTag  string
	todoTag  string
}

func NewCmdRoot(s *state.State) (*cobra.Command, error) {
	var opts options

	cmd := &cobra.Command{
		Use:   constants.AppName,
		Short: "Track how much of a zettelkasten still needs refactoring.",
		Long: heredoc.Doc(`
			zrt scans a directory of markdown notes, reads the tags in each note's
			front matter and reports on them.

			Without flags it prints the share of notes tagged with the configured
			todo tag (to_refactor by default). The listing flags select notes by tag
			and order them by word count:

			  zrt -d ~/zettel -w -n 20          largest 20 notes
			  zrt -f refactored -w              largest notes still lacking "refactored"
			  zrt -o draft                      notes whose only tag is "draft"
			  zrt -r refactored -u to_refactor  done versus todo
		`),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return prepare(cmd, s)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, s, opts)
		},
	}

	flags.AddScan(cmd)
	flags.AddListing(cmd)

	cmd.Flags().BoolVarP(&opts.count, "count", "c", false, "Print the number of notes")
	cmd.Flags().StringVarP(&opts.statsTag, "stats", "s", "", "Word statistics for notes carrying this tag")
	cmd.Flags().StringVarP(&opts.tag, "tag", "t", "", "Percentage of notes carrying this tag")
	cmd.Flags().StringVarP(&opts.doneTag, "done", "r", "", "Done tag to compare against the todo tag")
	cmd.Flags().StringVarP(&opts.todoTag, "todo", "u", "", "Todo tag to compare against the done tag")

	cmd.AddCommand(
		tags.NewCmdTags(s),
		pick.NewCmdPick(s),
		initialize.NewCmdInit(s),
		version.NewCmdVersion(),
		watch.NewCmdWatch(s),
	)

	return cmd, nil
}

// prepare applies --config and --verbose before any command runs.
func prepare(cmd *cobra.Command, s *state.State) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	s.SetVerbose(verbose)

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		cfg, err := state.LoadConfig(s.Home, path)
		if err != nil {
			return err
		}
		s.Config = cfg
		s.Logger.Debug("loaded config", "path", path)
	}

	if _, err := report.ParseFormat(viper.GetString("format")); err != nil {
		return err
	}
	return nil
}

func run(cmd *cobra.Command, s *state.State, opts options) error {
	ctx := cmd.Context()
	printer := flags.NewPrinter(cmd)

	list, err := flags.HandleListing(cmd)
	if err != nil {
		return err
	}

	doneTag, todoTag, compare, err := comparisonTags(cmd, opts)
	if err != nil {
		return err
	}

	h, err := s.NewHandler(ctx, s.Directory(), flags.HandleExclude(cmd))
	if err != nil {
		return err
	}

	if opts.count {
		n, err := h.Count(ctx)
		if err != nil {
			return err
		}
		return printer.Count(n)
	}

	records, err := h.Records(ctx)
	if err != nil {
		return err
	}

	switch {
	case cmd.Flags().Changed("stats"):
		return printer.Words(stats.Words(records, opts.statsTag))
	case list.Active:
		return printer.Records(list.Apply(records), list.ShowWords)
	case cmd.Flags().Changed("tag"):
		return printer.Pattern(stats.Pattern(records, opts.tag))
	case compare:
		return printer.Comparison(stats.Compare(records, doneTag, todoTag))
	default:
		return printer.Pattern(stats.Pattern(records, viper.GetString("todo_tag")))
	}
}

// comparisonTags resolves -r and -u, filling a missing side from the config.
func comparisonTags(cmd *cobra.Command, opts options) (done, todo string, ok bool, err error) {
	doneSet := cmd.Flags().Changed("done")
	todoSet := cmd.Flags().Changed("todo")
	if !doneSet && !todoSet {
		return "", "", false, nil
	}

	done, todo = opts.doneTag, opts.todoTag
	if !doneSet {
		done = viper.GetString("done_tag")
	}
	if !todoSet {
		todo = viper.GetString("todo_tag")
	}
	if done == "" || todo == "" {
		return "", "", false, errors.New("comparison needs both --done and --todo (or done_tag in the config)")
	}
	return done, todo, true, nil
}
