//go:build e2e

package reservation_test

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	reqdto "court-reservation/internal/handler/dto/request"
	resdto "court-reservation/internal/handler/dto/response"
	"court-reservation/tests/common/authtest"
	"court-reservation/tests/common/dbtest"
	"court-reservation/tests/common/httptest"
	"court-reservation/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ReservationFlowSuite struct {
	e2e.SharedSuite
	jwt   *authtest.JWTHelper
	tokyo *time.Location
	day   time.Time
}

func TestReservationFlowSuite(t *testing.T) {
	suite.Run(t, new(ReservationFlowSuite))
}

func (s *ReservationFlowSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwt = authtest.NewJWTHelper(s.Config.JWT)

	loc, err := s.Config.Schedule.Location()
	s.Require().NoError(err)
	s.tokyo = loc

	now := time.Now().In(loc)
	s.day = time.Date(now.Year(), now.Month(), now.Day()+2, 0, 0, 0, 0, loc)
}

func (s *ReservationFlowSuite) at(hour int) time.Time {
	return s.day.Add(time.Duration(hour) * time.Hour)
}

func (s *ReservationFlowSuite) availability(resourceID uuid.UUID) resdto.AvailabilityResponse {
	path := "/api/resources/" + resourceID.String() + "/availability?date=" + s.day.Format("2006-01-02")
	rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, path, nil, "")
	var body resdto.AvailabilityResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
	return body
}

func (s *ReservationFlowSuite) durations(resourceID uuid.UUID, start time.Time) resdto.DurationsResponse {
	path := "/api/resources/" + resourceID.String() + "/durations?start=" + url.QueryEscape(start.Format(time.RFC3339))
	rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, path, nil, "")
	var body resdto.DurationsResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
	return body
}

func (s *ReservationFlowSuite) hold(token string, resourceID uuid.UUID, start time.Time, units int) resdto.ReservationResponse {
	req := reqdto.CreateReservationRequest{ResourceID: resourceID, StartAt: start, DurationUnits: units}
	rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/reservations", req, token)
	var body resdto.ReservationResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
	return body
}

func confirmBody(card string) reqdto.ConfirmReservationRequest {
	return reqdto.ConfirmReservationRequest{CardNumber: card, CardExpiry: "12/30", CardCVV: "123"}
}

func (s *ReservationFlowSuite) relayAll() {
	_, err := s.Relay.RelayEvents(context.Background(), 100)
	s.Require().NoError(err)
}

func (s *ReservationFlowSuite) publishedKinds(reservationID uuid.UUID) []string {
	var kinds []string
	for _, e := range s.Published.Events() {
		if e.ReservationID == reservationID {
			kinds = append(kinds, e.Kind.String())
		}
	}
	return kinds
}

func (s *ReservationFlowSuite) TestHoldAndConfirm() {
	_, token := s.jwt.Member(s.T())

	s.Run("empty day is fully available", func() {
		body := s.availability(dbtest.CourtA)
		s.Len(body.Available, 14)
		s.Equal("08:00", body.Available[0])
		s.Equal("21:00", body.Available[13])
		s.Empty(body.Held)
		s.Empty(body.Confirmed)
	})

	s.Run("hold, confirm and publish", func() {
		held := s.hold(token, dbtest.CourtA, s.at(10), 2)
		s.Equal("held", held.Status)
		s.Equal("4000.00", held.TotalPrice)
		s.Require().NotNil(held.HoldExpiresAt)

		avail := s.availability(dbtest.CourtA)
		s.Equal([]string{"10:00", "11:00"}, avail.Held)
		s.NotContains(avail.Available, "10:00")

		durs := s.durations(dbtest.CourtA, s.at(9))
		s.Equal([]int{1}, durs.Durations)
		s.Require().NotNil(durs.Reason)
		s.Equal("2+ hours conflicts with an existing reservation at 10:00", *durs.Reason)

		path := "/api/reservations/" + held.ID.String() + "/confirm"
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, path, confirmBody("4242424242424242"), token)
		var confirmed resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &confirmed)
		s.Equal("confirmed", confirmed.Status)
		s.Require().NotNil(confirmed.PaymentReference)
		s.Regexp(`^PAY-`, *confirmed.PaymentReference)
		s.Nil(confirmed.HoldExpiresAt)

		avail = s.availability(dbtest.CourtA)
		s.Empty(avail.Held)
		s.Equal([]string{"10:00", "11:00"}, avail.Confirmed)

		s.relayAll()
		s.Equal([]string{"reservation.held", "reservation.confirmed"}, s.publishedKinds(held.ID))
		s.relayAll()
		s.Len(s.publishedKinds(held.ID), 2, "published rows are not sent twice")
	})

	s.Run("fetch by holder only", func() {
		held := s.hold(token, dbtest.CourtA, s.at(14), 1)

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/reservations/"+held.ID.String(), nil, token)
		var body resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("Court A", body.ResourceName)

		_, other := s.jwt.Member(s.T())
		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/reservations/"+held.ID.String(), nil, other)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})
}

func (s *ReservationFlowSuite) TestConflicts() {
	_, first := s.jwt.Member(s.T())
	_, second := s.jwt.Member(s.T())

	s.Run("overlapping hold is refused", func() {
		s.hold(first, dbtest.CourtB, s.at(10), 3)

		req := reqdto.CreateReservationRequest{ResourceID: dbtest.CourtB, StartAt: s.at(11), DurationUnits: 1}
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/reservations", req, second)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "slot already booked or held")
	})

	s.Run("adjacent hold is accepted", func() {
		s.hold(first, dbtest.CourtB, s.at(10), 2)
		s.hold(second, dbtest.CourtB, s.at(12), 2)
	})

	s.Run("run past closing is refused", func() {
		req := reqdto.CreateReservationRequest{ResourceID: dbtest.CourtC, StartAt: s.at(20), DurationUnits: 2}
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/reservations", req, first)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("past start is refused", func() {
		past := time.Now().In(s.tokyo).Truncate(time.Hour).Add(-24 * time.Hour)
		req := reqdto.CreateReservationRequest{ResourceID: dbtest.CourtA, StartAt: past, DurationUnits: 1}
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/reservations", req, first)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

func (s *ReservationFlowSuite) TestPaymentDecline() {
	_, token := s.jwt.Member(s.T())
	held := s.hold(token, dbtest.CourtA, s.at(16), 1)
	path := "/api/reservations/" + held.ID.String() + "/confirm"

	rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, path, confirmBody("4000000000000000"), token)
	httptest.AssertErrorResponse(s.T(), rec, http.StatusPaymentRequired, "Card declined")

	s.Equal("held", dbtest.ReservationStatus(s.T(), s.DB, held.ID))
	s.Equal([]string{"reservation.held", "reservation.payment_failed"}, dbtest.EventKinds(s.T(), s.DB, held.ID))

	// the slot stays held for the retry
	s.Contains(s.availability(dbtest.CourtA).Held, "16:00")

	rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, path, confirmBody("4242424242424242"), token)
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	s.Equal("confirmed", dbtest.ReservationStatus(s.T(), s.DB, held.ID))
}

func (s *ReservationFlowSuite) TestCancel() {
	_, token := s.jwt.Member(s.T())
	held := s.hold(token, dbtest.CourtA, s.at(18), 2)

	rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/reservations/"+held.ID.String()+"/cancel", nil, token)
	var body resdto.ReservationResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
	s.Equal("cancelled", body.Status)

	avail := s.availability(dbtest.CourtA)
	s.Contains(avail.Available, "18:00")
	s.Contains(avail.Available, "19:00")

	// the freed slot can be booked again
	_, other := s.jwt.Member(s.T())
	s.hold(other, dbtest.CourtA, s.at(18), 2)
}

func (s *ReservationFlowSuite) TestLapsedHold() {
	expired := time.Now().Add(-time.Minute)

	s.Run("confirm after lapse is gone", func() {
		holderID, token := s.jwt.Member(s.T())
		id := dbtest.CreateTestReservation(s.T(), s.DB, dbtest.ReservationFixture{
			ResourceID:    dbtest.CourtA,
			HolderID:      holderID,
			StartAt:       s.at(12),
			DurationUnits: 1,
			TotalPrice:    "2000.00",
			HoldExpiresAt: &expired,
		})

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/reservations/"+id.String()+"/confirm", confirmBody("4242424242424242"), token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusGone, "")
	})

	s.Run("lapsed hold does not block a new one", func() {
		_, other := s.jwt.Member(s.T())
		lapsed := dbtest.CreateTestReservation(s.T(), s.DB, dbtest.ReservationFixture{
			ResourceID:    dbtest.CourtD,
			StartAt:       s.at(12),
			HoldExpiresAt: &expired,
		})

		s.hold(other, dbtest.CourtD, s.at(12), 1)
		s.Equal("cancelled", dbtest.ReservationStatus(s.T(), s.DB, lapsed))
	})
}

func (s *ReservationFlowSuite) TestAdmin() {
	_, admin := s.jwt.Admin(s.T())
	_, member := s.jwt.Member(s.T())

	s.Run("release expired holds", func() {
		expired := time.Now().Add(-time.Minute)
		lapsed := dbtest.CreateTestReservation(s.T(), s.DB, dbtest.ReservationFixture{
			ResourceID:    dbtest.CourtB,
			StartAt:       s.at(9),
			HoldExpiresAt: &expired,
		})
		live := s.hold(member, dbtest.CourtB, s.at(15), 1)

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/admin/reservations/release-expired", nil, admin)
		var body resdto.ReleaseExpiredResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(1, body.Released)
		s.Equal("cancelled", dbtest.ReservationStatus(s.T(), s.DB, lapsed))
		s.Equal("held", dbtest.ReservationStatus(s.T(), s.DB, live.ID))
	})

	s.Run("members are refused", func() {
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/admin/reservations/release-expired", nil, member)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Insufficient permissions")
	})

	s.Run("disabled resource refuses holds", func() {
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPatch, "/api/admin/resources/"+dbtest.CourtC.String()+"/disable", nil, admin)
		var body resdto.ResourceResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("disabled", body.Status)

		req := reqdto.CreateReservationRequest{ResourceID: dbtest.CourtC, StartAt: s.at(10), DurationUnits: 1}
		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/reservations", req, member)
		s.GreaterOrEqual(rec.Code, http.StatusBadRequest)
		s.Less(rec.Code, http.StatusInternalServerError)
	})

	s.Run("delete is refused with upcoming confirmed reservations", func() {
		resourceID := dbtest.CreateTestResource(s.T(), s.DB, dbtest.ResourceFixture{Name: "Court E"})
		dbtest.CreateTestReservation(s.T(), s.DB, dbtest.ReservationFixture{
			ResourceID: resourceID,
			StartAt:    s.at(10),
			Status:     "confirmed",
		})

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodDelete, "/api/admin/resources/"+resourceID.String(), nil, admin)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "upcoming confirmed reservations")
	})

	s.Run("delete an idle resource", func() {
		resourceID := dbtest.CreateTestResource(s.T(), s.DB, dbtest.ResourceFixture{Name: "Court F"})

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodDelete, "/api/admin/resources/"+resourceID.String(), nil, admin)
		require.Equal(s.T(), http.StatusNoContent, rec.Code)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/resources/"+resourceID.String()+"/availability?date="+s.day.Format("2006-01-02"), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})
}

func (s *ReservationFlowSuite) TestAuthentication() {
	req := reqdto.CreateReservationRequest{ResourceID: dbtest.CourtA, StartAt: s.at(10), DurationUnits: 1}

	s.Run("missing token", func() {
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/reservations", req, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Access token required")
	})

	s.Run("expired token", func() {
		token := s.jwt.CreateExpiredToken(s.T(), uuid.New(), "member")
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/reservations", req, token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid or expired token")
	})

	s.Run("availability is public", func() {
		s.availability(dbtest.CourtA)
	})
}
