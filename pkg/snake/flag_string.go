// Package snake asks for command input interactively with promptui.
package snake

import (
	"errors"
	"fmt"
	"io"

	"github.com/manifoldco/promptui"
)

// Prompter reads answers from In and echoes prompts to Out. Zero values use
// the terminal.
type Prompter struct {
	In  io.ReadCloser
	Out io.WriteCloser
}

var answerTemplates = &promptui.PromptTemplates{
	Prompt:  "{{ . }} : ",
	Valid:   "{{ . | green }} : ",
	Invalid: "{{ . | red }} : ",
	Success: "{{ . | bold }} : ",
}

// String asks for a value. An empty answer takes def; validate sees the
// answer before the default is applied.
func (p Prompter) String(label, def string, validate func(string) error) (string, error) {
	check := func(input string) error {
		if input == "" {
			if def == "" {
				return errors.New("empty")
			}
			input = def
		}
		if validate == nil {
			return nil
		}
		return validate(input)
	}

	if def != "" {
		label = fmt.Sprintf("%s [%s]", label, def)
	}
	prompt := promptui.Prompt{
		Label:     label,
		Templates: answerTemplates,
		Validate:  check,
		Stdin:     p.In,
		Stdout:    p.Out,
	}

	result, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("prompt %q: %w", label, err)
	}
	if result == "" {
		result = def
	}
	return result, nil
}
