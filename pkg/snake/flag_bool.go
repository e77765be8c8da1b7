package snake

import (
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"
)

// Bool asks a yes/no question. An empty answer takes def.
func (p Prompter) Bool(label string, def bool) (bool, error) {
	choices := "y/[n]"
	if def {
		choices = "[y]/n"
	}

	validate := func(input string) error {
		if input == "" {
			return nil
		}
		_, err := ParseBool(input)
		return err
	}

	prompt := promptui.Prompt{
		Label:     fmt.Sprintf("%s %s", label, choices),
		Templates: answerTemplates,
		Validate:  validate,
		Stdin:     p.In,
		Stdout:    p.Out,
	}

	result, err := prompt.Run()
	if err != nil {
		return false, fmt.Errorf("prompt %q: %w", label, err)
	}
	if result == "" {
		return def, nil
	}
	return ParseBool(result)
}

// ParseBool is strconv.ParseBool with the addition of Yes/No parsing.
func ParseBool(str string) (bool, error) {
	switch str {
	case "1", "t", "T", "true", "TRUE", "True", "y", "Y", "yes", "YES", "Yes":
		return true, nil
	case "0", "f", "F", "false", "FALSE", "False", "n", "N", "no", "NO", "No":
		return false, nil
	}
	return false, &strconv.NumError{Func: "ParseBool", Num: str, Err: strconv.ErrSyntax}
}
