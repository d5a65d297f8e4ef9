package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/tatianab/steps-and-leaps/internal/board"
)

var validate = validator.New()

// ErrInvalidSetup is returned when the setup form cannot start a game.
var ErrInvalidSetup = errors.New("invalid setup")

// Setup is the start-game intent.
type Setup struct {
	P1Name     string           `validate:"required,max=24"`
	P1Avatar   string           `validate:"omitempty,oneof=axolotl cat dog bunny frog panda"`
	P2Name     string           `validate:"required,max=24"`
	P2Avatar   string           `validate:"omitempty,oneof=axolotl cat dog bunny frog panda"`
	Difficulty board.Difficulty `validate:"required,oneof=EASY HARD"`
}

// Normalize trims the names so a blank name counts as missing.
func (s Setup) Normalize() Setup {
	s.P1Name = strings.TrimSpace(s.P1Name)
	s.P2Name = strings.TrimSpace(s.P2Name)
	return s
}

// Validate reports every problem with the form in one error wrapping ErrInvalidSetup.
func (s Setup) Validate() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidSetup, err)
	}

	var details []string
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			details = append(details, fmt.Sprintf("%s is required", fe.Field()))
		case "oneof":
			details = append(details, fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param()))
		case "max":
			details = append(details, fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param()))
		default:
			details = append(details, fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidSetup, strings.Join(details, "; "))
}

// ErrGameInProgress is returned by StartGame outside the SETUP phase.
var ErrGameInProgress = errors.New("game already in progress")
