/*
Copyright © 2024 Ryan Painter paintersrp@gmail.com

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package tags

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/zrt/internal/filter"
	"github.com/Paintersrp/zrt/internal/state"
	"github.com/Paintersrp/zrt/internal/stats"
	tagsTui "github.com/Paintersrp/zrt/internal/tui/tags"
	"github.com/Paintersrp/zrt/pkg/flags"
)

type options struct {
	tui       bool
	ascending bool
}

func NewCmdTags(s *state.State) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Show how often each tag is used",
		Long: heredoc.Doc(`
			The tags command counts the front matter tags of every scanned note and
			lists them by frequency. With --tui the counts open in an interactive
			table; pressing enter on a tag lists the notes carrying it.
		`),
		Example: heredoc.Doc(`
			zrt tags
			zrt tags --asc --format table
			zrt tags --tui -d ~/zettel
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, s, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.tui, "tui", false, "Browse the counts in an interactive table")
	cmd.Flags().BoolVar(&opts.ascending, "asc", false, "Least used tags first")

	return cmd
}

func run(cmd *cobra.Command, s *state.State, opts options) error {
	h, err := s.NewHandler(cmd.Context(), s.Directory(), flags.HandleExclude(cmd))
	if err != nil {
		return err
	}

	records, err := h.Records(cmd.Context())
	if err != nil {
		return err
	}

	printer := flags.NewPrinter(cmd)

	if !opts.tui {
		return printer.Tags(stats.TagFrequency(records, opts.ascending))
	}

	selected, err := tagsTui.Run(records)
	if err != nil || selected == "" {
		return err
	}

	return printer.Records(filter.Apply(records, filter.HasTag(selected)), false)
}
