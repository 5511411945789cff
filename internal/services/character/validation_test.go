package character_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	ovaerr "github.com/KirkDiggler/ova-combat/internal/errors"
	"github.com/KirkDiggler/ova-combat/internal/services/character"
)

// ValidationTestSuite tests input validation
type ValidationTestSuite struct {
	suite.Suite
}

func TestValidationSuite(t *testing.T) {
	suite.Run(t, new(ValidationTestSuite))
}

func (s *ValidationTestSuite) TestNilInput() {
	var input *character.CreateCharacterInput
	err := character.ValidateInput(input)

	s.True(ovaerr.IsInvalidArgument(err))
	s.Contains(err.Error(), "CreateCharacterInput cannot be nil")

	s.True(ovaerr.IsInvalidArgument(character.ValidateInput(nil)))
}

func (s *ValidationTestSuite) TestBlankName() {
	err := (&character.CreateCharacterInput{Name: "   ", HP: 10}).Validate()
	s.True(ovaerr.IsInvalidArgument(err))
	s.Contains(err.Error(), "name is required")
}

func (s *ValidationTestSuite) TestLongName() {
	err := (&character.CreateCharacterInput{Name: strings.Repeat("a", 51)}).Validate()
	s.True(ovaerr.IsInvalidArgument(err))
	s.Contains(err.Error(), "cannot exceed 50")
}

func (s *ValidationTestSuite) TestNegativePools() {
	err := (&character.CreateCharacterInput{Name: "Aiko", HP: 10, Endurance: -1}).Validate()
	s.True(ovaerr.IsInvalidArgument(err))
}

func (s *ValidationTestSuite) TestValid() {
	s.NoError((&character.CreateCharacterInput{Name: "Aiko", HP: 40, Endurance: 40}).Validate())
}
