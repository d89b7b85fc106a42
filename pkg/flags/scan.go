package flags

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Paintersrp/zrt/internal/report"
)

// AddScan registers the persistent root, exclude and output flags.
func AddScan(cmd *cobra.Command) {
	fs := cmd.PersistentFlags()
	fs.StringP("dir", "d", "", "Root directory or s3://bucket/prefix to scan (default: config directory, else .)")
	fs.StringP("exclude", "e", "", "Comma separated directory names to skip (default: config exclude)")
	fs.String("format", "", "Output format: plain, table or json")
	fs.BoolP("verbose", "v", false, "Enable debug logging")
	fs.String("config", "", "Use an alternate config file")

	viper.BindPFlag("directory", fs.Lookup("dir"))
	viper.BindPFlag("format", fs.Lookup("format"))
}

// HandleExclude returns the excluded directory names from the flag, falling
// back to the configured list.
func HandleExclude(cmd *cobra.Command) []string {
	if !cmd.Flags().Changed("exclude") {
		return viper.GetStringSlice("exclude")
	}

	raw, _ := cmd.Flags().GetString("exclude")
	var out []string
	for _, name := range strings.Split(raw, ",") {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}

// NewPrinter builds the printer for the resolved --format, styling output
// only for terminals.
func NewPrinter(cmd *cobra.Command) *report.Printer {
	format, _ := report.ParseFormat(viper.GetString("format"))

	out := cmd.OutOrStdout()
	styled := false
	if f, ok := out.(*os.File); ok {
		styled = report.IsStyled(f)
	}
	return report.New(out, format, styled)
}
