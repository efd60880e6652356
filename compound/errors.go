package compound

import (
	"fmt"

	"github.com/relaywire/amqp10/amqperr"
	"github.com/relaywire/amqp10/primitive"
)

func errNotAList(got primitive.Kind) error {
	return fmt.Errorf("compound: expected a list, got %s: %w", got, amqperr.ErrDecodeError)
}

func errNotAMap(got primitive.Kind) error {
	return fmt.Errorf("compound: expected a map, got %s: %w", got, amqperr.ErrDecodeError)
}

func errNotAnArray(got primitive.Kind) error {
	return fmt.Errorf("compound: expected an array, got %s: %w", got, amqperr.ErrDecodeError)
}
