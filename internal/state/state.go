package state

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"

	"github.com/Paintersrp/zrt/internal/config"
	"github.com/Paintersrp/zrt/internal/constants"
	"github.com/Paintersrp/zrt/internal/handler"
	"github.com/Paintersrp/zrt/internal/parser"
	"github.com/Paintersrp/zrt/internal/scanner"
)

type State struct {
	Config *config.Config
	Home   string
	Logger *log.Logger
}

// NewState loads the config from configPath, or from the home directory when
// configPath is empty.
func NewState(configPath string) (*State, error) {
	home, err := GetHomeDir()
	if err != nil {
		return nil, err
	}

	cfg, err := LoadConfig(home, configPath)
	if err != nil {
		return nil, err
	}

	return &State{
		Config: cfg,
		Home:   home,
		Logger: NewLogger(os.Stderr),
	}, nil
}

func GetHomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory. err: %s", err)
	}

	return home, nil
}

// LoadConfig reads the config file and binds ZRT_* environment variables
// over it.
func LoadConfig(home, override string) (*config.Config, error) {
	viper.SetEnvPrefix(constants.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if override != "" {
		return config.LoadFile(override)
	}
	return config.Load(home)
}

// NewLogger returns the warn level stderr logger shared by every command.
func NewLogger(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: false,
		Prefix:          constants.AppName,
		Level:           log.WarnLevel,
	})
}

func (s *State) SetVerbose(verbose bool) {
	if verbose {
		s.Logger.SetLevel(log.DebugLevel)
		return
	}
	s.Logger.SetLevel(log.WarnLevel)
}

// Directory resolves the scan root: flag, then ZRT_DIRECTORY, then config,
// then the working directory.
func (s *State) Directory() string {
	if dir := strings.TrimSpace(viper.GetString("directory")); dir != "" {
		return dir
	}
	return "."
}

// ScanOptions builds scanner options from the resolved settings.
func (s *State) ScanOptions(exclude []string) scanner.Options {
	return scanner.Options{
		Exclude:    exclude,
		Extensions: viper.GetStringSlice("extensions"),
		OnSkip:     handler.SkipLogger(s.Logger),
		S3: scanner.S3Options{
			Region:    viper.GetString("s3.region"),
			Profile:   viper.GetString("s3.profile"),
			Endpoint:  viper.GetString("s3.endpoint"),
			AccessKey: viper.GetString("s3.access_key"),
			SecretKey: viper.GetString("s3.secret_key"),
			PathStyle: viper.GetBool("s3.path_style"),
		},
	}
}

// NewHandler builds the scan pipeline for root.
func (s *State) NewHandler(ctx context.Context, root string, exclude []string) (*handler.Handler, error) {
	sc, err := scanner.New(ctx, root, s.ScanOptions(exclude))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", root, err)
	}

	counter := parser.CounterFor(viper.GetString("count_mode"))
	s.Logger.Debug("scanning", "root", root, "exclude", exclude, "count_mode", viper.GetString("count_mode"))
	return handler.New(sc, counter, s.Logger), nil
}
