package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/zrt/internal/constants"
)

func NewCmdVersion() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the zrt version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", constants.AppName, constants.Version)
			return err
		},
	}
}
