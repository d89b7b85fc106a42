package config

import "fmt"

// ConfigInitError reports a config file that is missing a required key.
type ConfigInitError struct {
	Path string
	Key  string
}

func (e *ConfigInitError) Error() string {
	return fmt.Sprintf("%s: required config variable %q is not set, run `zrt init`", e.Path, e.Key)
}
