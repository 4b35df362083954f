package commands

import (
	"time"

	"court-reservation/internal/domain/reservation"
)

// Policy carries the timing rules of the reservation lifecycle.
type Policy struct {
	HoldTTL         time.Duration
	PaymentCooldown time.Duration
	// Location is the deployment timezone every calendar day is taken in.
	Location *time.Location
}

func (p Policy) withDefaults() Policy {
	if p.HoldTTL <= 0 {
		p.HoldTTL = reservation.DefaultHoldTTL
	}
	if p.PaymentCooldown <= 0 {
		p.PaymentCooldown = reservation.DefaultPaymentCooldown
	}
	if p.Location == nil {
		p.Location = time.Local
	}
	return p
}
