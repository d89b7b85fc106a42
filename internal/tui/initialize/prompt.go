// Package initialize asks for the settings written to the config file.
package initialize

import (
	"errors"
	"fmt"
	"strings"

	"github.com/erikgeiser/promptkit/selection"
	"github.com/erikgeiser/promptkit/textinput"

	"github.com/Paintersrp/zrt/internal/config"
)

// Prompter asks the user a single question.
type Prompter interface {
	Text(prompt, initial string, required bool) (string, error)
	Choose(prompt string, choices []string, initial string) (string, error)
}

// Promptkit asks on the terminal.
type Promptkit struct{}

func (Promptkit) Text(prompt, initial string, required bool) (string, error) {
	input := textinput.New(prompt)
	input.InitialValue = initial
	if required {
		input.Validate = func(value string) error {
			if strings.TrimSpace(value) == "" {
				return errors.New("a value is required")
			}
			return nil
		}
	} else {
		input.Validate = nil
	}
	return input.RunPrompt()
}

func (Promptkit) Choose(prompt string, choices []string, initial string) (string, error) {
	sel := selection.New(prompt, ordered(choices, initial))
	sel.Filter = nil
	return sel.RunPrompt()
}

// ordered moves initial to the front so it is preselected.
func ordered(choices []string, initial string) []string {
	out := make([]string, 0, len(choices))
	for _, c := range choices {
		if c == initial {
			out = append(out, c)
		}
	}
	for _, c := range choices {
		if c != initial {
			out = append(out, c)
		}
	}
	return out
}

// Run asks for every setting, starting from the current values, and saves
// the result.
func Run(cfg *config.Config, p Prompter) error {
	dir, err := p.Text("Notes directory (or s3://bucket/prefix):", cfg.Directory, true)
	if err != nil {
		return err
	}

	todo, err := p.Text("Todo tag:", cfg.TodoTag, true)
	if err != nil {
		return err
	}

	done, err := p.Text("Done tag (optional):", cfg.DoneTag, false)
	if err != nil {
		return err
	}

	mode, err := p.Choose("How should words be counted?", []string{"whitespace", "prose"}, cfg.CountMode)
	if err != nil {
		return err
	}

	format, err := p.Choose("Default output format:", []string{"plain", "table", "json"}, cfg.Format)
	if err != nil {
		return err
	}

	cfg.Directory = strings.TrimSpace(dir)
	cfg.TodoTag = strings.TrimSpace(todo)
	cfg.DoneTag = strings.TrimSpace(done)
	cfg.CountMode = mode
	cfg.Format = format

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}
