//go:build unit

package api_test

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	"court-reservation/internal/handler/api"
	resdto "court-reservation/internal/handler/dto/response"
	"court-reservation/internal/handler/validation"
	"court-reservation/internal/usecase/queries"
	"court-reservation/tests/common/builder"
	"court-reservation/tests/common/httptest"
	queriesmock "court-reservation/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AvailabilityHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockAvailabilityQueries
	resourceID  uuid.UUID
}

func (s *AvailabilityHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.Require().NoError(validation.Register())
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockAvailabilityQueries(s.mockCtrl)
	handler := api.NewAvailabilityHandler(s.mockQueries)
	s.resourceID = uuid.New()

	s.router.GET("/resources/:id/availability", handler.GetAvailability)
	s.router.GET("/resources/:id/durations", handler.GetDurations)
}

func (s *AvailabilityHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAvailabilityHandlerSuite(t *testing.T) {
	suite.Run(t, new(AvailabilityHandlerTestSuite))
}

func (s *AvailabilityHandlerTestSuite) availabilityURL(date string) string {
	return "/resources/" + s.resourceID.String() + "/availability?date=" + date
}

func (s *AvailabilityHandlerTestSuite) durationsURL(start string) string {
	return "/resources/" + s.resourceID.String() + "/durations?start=" + url.QueryEscape(start)
}

// ================================================================================
// TestGetAvailability
// ================================================================================

func (s *AvailabilityHandlerTestSuite) TestGetAvailability() {
	s.Run("success: empty lists render as arrays", func() {
		s.mockQueries.EXPECT().ComputeAvailability(gomock.Any(), s.resourceID, "2030-01-15").
			Return(&queries.AvailabilityView{
				ResourceID: s.resourceID,
				Date:       "2030-01-15",
				Available:  []string{"08:00", "09:00"},
			}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, s.availabilityURL("2030-01-15"), nil, "")

		var body resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal([]string{"08:00", "09:00"}, body.Available)
		s.JSONEq(`{
			"resource_id": "`+s.resourceID.String()+`",
			"date": "2030-01-15",
			"available": ["08:00", "09:00"],
			"held": [],
			"confirmed": []
		}`, rec.Body.String())
	})

	cases := []struct {
		name string
		path string
		msg  string
	}{
		{name: "missing date", path: "/resources/" + uuid.NewString() + "/availability", msg: "Invalid request"},
		{name: "malformed date", path: "/resources/" + uuid.NewString() + "/availability?date=15-01-2030", msg: "Invalid request"},
		{name: "malformed id", path: "/resources/court-a/availability?date=2030-01-15", msg: "Invalid resource id"},
	}
	for _, tc := range cases {
		s.Run("error: "+tc.name, func() {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, tc.path, nil, "")
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, tc.msg)
		})
	}

	s.Run("error: 404 for unknown resource", func() {
		s.mockQueries.EXPECT().ComputeAvailability(gomock.Any(), s.resourceID, gomock.Any()).
			Return(nil, queries.ErrResourceNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, s.availabilityURL("2030-01-15"), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "resource not found")
	})
}

// ================================================================================
// TestGetDurations
// ================================================================================

func (s *AvailabilityHandlerTestSuite) TestGetDurations() {
	start := builder.At(0, 14)

	s.Run("success", func() {
		reason := "3+ hours conflicts with an existing reservation at 16:00"
		s.mockQueries.EXPECT().MaxAvailableDurations(gomock.Any(), s.resourceID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, got time.Time) (*queries.DurationsView, error) {
				s.True(got.Equal(start))
				return &queries.DurationsView{
					ResourceID:  s.resourceID,
					StartAt:     start,
					Durations:   []int{1, 2},
					MaxDuration: 2,
					Reason:      &reason,
				}, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, s.durationsURL(start.Format(time.RFC3339)), nil, "")

		var body resdto.DurationsResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal([]int{1, 2}, body.Durations)
		s.Equal(2, body.MaxDuration)
		s.Require().NotNil(body.Reason)
		s.Equal(reason, *body.Reason)
	})

	s.Run("success: null reason when all eight hours fit", func() {
		s.mockQueries.EXPECT().MaxAvailableDurations(gomock.Any(), s.resourceID, gomock.Any()).
			Return(&queries.DurationsView{
				ResourceID:  s.resourceID,
				StartAt:     start,
				Durations:   []int{1, 2, 3, 4, 5, 6, 7, 8},
				MaxDuration: 8,
			}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, s.durationsURL(start.Format(time.RFC3339)), nil, "")
		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), `"reason":null`)
	})

	s.Run("error: start not on the hour", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, s.durationsURL(start.Add(30*time.Minute).Format(time.RFC3339)), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
		s.Contains(rec.Body.String(), "must be on the hour")
	})

	s.Run("error: start in the past", func() {
		s.mockQueries.EXPECT().MaxAvailableDurations(gomock.Any(), s.resourceID, gomock.Any()).
			Return(nil, queries.ErrStartInPast).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, s.durationsURL(start.Format(time.RFC3339)), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "start time cannot be in the past")
	})

	s.Run("error: missing start", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/resources/"+s.resourceID.String()+"/durations", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})
}
