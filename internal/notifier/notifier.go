// Package notifier forwards finalized bookings to downstream systems.
// Every sink makes a single attempt; callers log and drop the error.
package notifier

import (
	"context"
	"errors"

	"github.com/jwalitptl/zyra-api/internal/model"
)

type Notifier interface {
	Forward(ctx context.Context, intent model.BookingIntent) error
}

// Multi forwards to every sink in order, even after a failure.
type Multi struct {
	sinks []Notifier
}

func NewMulti(sinks ...Notifier) *Multi {
	return &Multi{sinks: sinks}
}

func (m *Multi) Forward(ctx context.Context, intent model.BookingIntent) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Forward(ctx, intent); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
