package model

import (
	"strings"

	"github.com/google/uuid"
)

// BookingIntent is the booking summary the model emits once every detail is known.
// All values are kept verbatim, dates and times included.
type BookingIntent struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Service string `json:"service"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Notes   string `json:"notes"`
}

// Complete reports whether every required field is present. Notes are optional.
func (i BookingIntent) Complete() bool {
	for _, v := range []string{i.Name, i.Phone, i.Service, i.Date, i.Time} {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

type Booking struct {
	Base
	TenantID uuid.UUID `db:"tenant_id" json:"tenant_id"`
	ClientID uuid.UUID `db:"client_id" json:"client_id"`
	Service  string    `db:"service" json:"service"`
	Date     string    `db:"booking_date" json:"date"`
	Time     string    `db:"booking_time" json:"time"`
	Notes    string    `db:"notes" json:"notes"`
}
