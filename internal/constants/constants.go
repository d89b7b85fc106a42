package constants

const (
	Version        = `0.3.0`
	AppName        = `zrt`
	ConfigFile     = `cfg`
	ConfigFileType = `yaml`
	ConfigDir      = `/.zrt/`
	EnvPrefix      = `ZRT`

	IgnoreFile = `.zrtignore`

	DefaultTodoTag   = `to_refactor`
	DefaultExclude   = `.git`
	DefaultExtension = `.md`
	DefaultTop       = 10

	// AnyExtension disables extension filtering when listed in the
	// configured extensions.
	AnyExtension = `*`
)
