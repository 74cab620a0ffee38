package service

import (
	"errors"
	"fmt"

	"storefront/internal/model"
)

// wrapUnexpected returns domain errors unchanged and annotates everything else.
func wrapUnexpected(action string, err error) error {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}
