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
package initialize

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/zrt/internal/config"
	"github.com/Paintersrp/zrt/internal/state"
	"github.com/Paintersrp/zrt/internal/tui/initialize"
)

func NewCmdInit(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "initialize",
		Aliases: []string{"i", "init"},
		Short:   "initialize zrt",
		Long:    "This command will walk you through setting up your zrt configuration.",
		Example: "zrt init",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ensureConfig(s); err != nil {
				return err
			}
			if err := initialize.Run(s.Config, initialize.Promptkit{}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialization complete! Config written to %s\n", s.Config.Path())
			return nil
		},
	}

	return cmd
}

// ensureConfig creates the default config file on first run. An unset
// directory is expected there since the prompts fill it in.
func ensureConfig(s *state.State) error {
	if s.Config.Path() != config.GetConfigPath(s.Home) {
		return nil
	}

	err := config.EnsureConfigExists(s.Home)
	var initErr *config.ConfigInitError
	switch {
	case errors.As(err, &initErr):
		s.Logger.Debug("creating config", "path", initErr.Path)
		return nil
	case err != nil:
		return err
	}
	s.Logger.Debug("updating existing config", "path", s.Config.Path())
	return nil
}
