package services

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	apperrors "spectrumloader/internal/errors"
)

// nameRules restricts dump names to a single path element.
const nameRules = `required,max=255,excludesall=/\`

var validate = validator.New()

// validateDumpName rejects names that could escape the dump directory.
func validateDumpName(name string) error {
	if err := validate.Var(name, nameRules); err != nil {
		return apperrors.NewAppValidationError(fmt.Sprintf("invalid dump name %q", name)).
			WithContext("name", name)
	}
	if name == "." || name == ".." {
		return apperrors.NewAppValidationError(fmt.Sprintf("invalid dump name %q", name)).
			WithContext("name", name)
	}
	return nil
}

func dumpNotFound(name string) error {
	return apperrors.NewNotFoundError(fmt.Sprintf("dump %q", name)).
		WithContext("dump", name)
}
