// Package payment holds the payment capability adapters.
package payment

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"court-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	declineSuffix   = "0000"
	declineMessage  = "Card declined. Please use a different card."
	successMessage  = "Payment processed successfully."
	referencePrefix = "PAY-"
)

// DummyGateway simulates a card processor: it waits latency, declines card
// numbers ending in 0000 and approves everything else.
type DummyGateway struct {
	latency time.Duration
	logger  *slog.Logger
}

func NewDummyGateway(latency time.Duration, logger *slog.Logger) *DummyGateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &DummyGateway{latency: latency, logger: logger}
}

func (g *DummyGateway) Charge(ctx context.Context, req shared.ChargeRequest) (shared.ChargeResult, error) {
	if g.latency > 0 {
		timer := time.NewTimer(g.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return shared.ChargeResult{}, ctx.Err()
		case <-timer.C:
		}
	}

	number := strings.ReplaceAll(req.Details.CardNumber, " ", "")
	if strings.HasSuffix(number, declineSuffix) {
		g.logger.Info("payment declined",
			"reservation_id", req.ReservationID,
			"amount", req.Amount.String())
		return shared.ChargeResult{Success: false, Message: declineMessage}, nil
	}

	ref := newReference()
	g.logger.Info("payment approved",
		"reservation_id", req.ReservationID,
		"amount", req.Amount.String(),
		"reference", ref)
	return shared.ChargeResult{Success: true, Reference: ref, Message: successMessage}, nil
}

func newReference() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return referencePrefix + id[:12]
}
