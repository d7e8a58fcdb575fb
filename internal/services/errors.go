package services

import (
	"errors"
	"strings"

	"github.com/victortedesco/inventory-management/internal/repository"
)

var ErrNotFound = errors.New("not found")

// ValidationError lists every rule an input broke.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

type validator struct {
	messages []string
}

func (v *validator) check(ok bool, msg string) {
	if !ok {
		v.messages = append(v.messages, msg)
	}
}

func (v *validator) err() error {
	if len(v.messages) == 0 {
		return nil
	}
	return &ValidationError{Messages: v.messages}
}

func notFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
