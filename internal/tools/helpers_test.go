package tools_test

import (
	"fmt"

	"github.com/webtilians/backA/internal/domain"
)

// errValidation builds an error shaped like the services' validation errors.
func errValidation(detail string) error {
	return fmt.Errorf("service.ReservationService.Create: %w: %s", domain.ErrValidation, detail)
}
