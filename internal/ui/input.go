package ui

import (
	"github.com/charmbracelet/huh"
)

// ConfirmYesNo asks a yes/no question. Interrupts surface as
// huh.ErrUserAborted.
func ConfirmYesNo(question string) (bool, error) {
	var answer bool
	err := huh.NewConfirm().
		Title(question).
		Affirmative("Yes").
		Negative("No").
		Value(&answer).
		Run()
	if err != nil {
		return false, err
	}
	return answer, nil
}

// WaitForEnter blocks until the user presses Enter.
func WaitForEnter(prompt string) error {
	var ignored string
	return huh.NewInput().
		Title(prompt).
		Value(&ignored).
		Run()
}
