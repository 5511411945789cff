package character

import (
	"strings"

	ovaerr "github.com/KirkDiggler/ova-combat/internal/errors"
)

// maxNameLength bounds character names
const maxNameLength = 50

// Validator interface for input validation
type Validator interface {
	Validate() error
}

// ValidateInput validates any input that implements Validator
func ValidateInput(input Validator) error {
	if input == nil {
		return ovaerr.InvalidArgument("input cannot be nil")
	}
	return input.Validate()
}

// Validate checks CreateCharacterInput for validity
func (i *CreateCharacterInput) Validate() error {
	if i == nil {
		return ovaerr.InvalidArgument("CreateCharacterInput cannot be nil")
	}

	if strings.TrimSpace(i.Name) == "" {
		return ovaerr.InvalidArgument("character name is required")
	}

	if len(i.Name) > maxNameLength {
		return ovaerr.InvalidArgumentf("character name cannot exceed %d characters", maxNameLength)
	}

	if i.HP < 0 || i.Endurance < 0 {
		return ovaerr.InvalidArgument("pools cannot be negative")
	}

	return nil
}
