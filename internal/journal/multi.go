package journal

import (
	"errors"

	"swampwatch/internal/model"
)

// Appender is the write side of an alert journal.
type Appender interface {
	Append(rec model.AlertRecord) error
}

// Multi fans an append out to several journals. Every journal sees the
// record even when an earlier one fails; the errors are joined.
type Multi struct {
	journals []Appender
}

func NewMulti(journals ...Appender) *Multi {
	return &Multi{journals: journals}
}

func (m *Multi) Append(rec model.AlertRecord) error {
	var errs []error
	for _, j := range m.journals {
		if err := j.Append(rec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
