//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"court-reservation/internal/handler/api"
	resdto "court-reservation/internal/handler/dto/response"
	"court-reservation/internal/pkg/errs"
	"court-reservation/internal/usecase/commands"
	"court-reservation/tests/common/builder"
	"court-reservation/tests/common/httptest"
	commandsmock "court-reservation/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AdminHandlerTestSuite struct {
	suite.Suite
	router        *gin.Engine
	mockCtrl      *gomock.Controller
	mockLocks     *commandsmock.MockLockManager
	mockResources *commandsmock.MockResourceCommands
}

func (s *AdminHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockLocks = commandsmock.NewMockLockManager(s.mockCtrl)
	s.mockResources = commandsmock.NewMockResourceCommands(s.mockCtrl)
	handler := api.NewAdminHandler(s.mockLocks, s.mockResources)

	s.router.POST("/admin/reservations/release-expired", handler.ReleaseExpired)
	s.router.PATCH("/admin/resources/:id/disable", handler.DisableResource)
	s.router.PATCH("/admin/resources/:id/enable", handler.EnableResource)
	s.router.DELETE("/admin/resources/:id", handler.DeleteResource)
}

func (s *AdminHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAdminHandlerSuite(t *testing.T) {
	suite.Run(t, new(AdminHandlerTestSuite))
}

func (s *AdminHandlerTestSuite) TestReleaseExpired() {
	s.Run("success: reports the released count", func() {
		s.mockLocks.EXPECT().ReleaseExpired(gomock.Any()).Return(3, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/reservations/release-expired", nil, "")

		var body resdto.ReleaseExpiredResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(3, body.Released)
	})

	s.Run("error: database failure", func() {
		s.mockLocks.EXPECT().ReleaseExpired(gomock.Any()).
			Return(0, errs.Mark(errs.New("boom"), errs.ErrDatabaseOperationFailed)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/reservations/release-expired", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal error")
	})
}

func (s *AdminHandlerTestSuite) TestResourceStatus() {
	b := builder.NewResourceBuilder().WithHours(9, 21)

	s.Run("disable", func() {
		disabled, err := builder.NewResourceBuilder().WithID(b.ID).WithHours(9, 21).AsDisabled().BuildDomain()
		s.Require().NoError(err)
		s.mockResources.EXPECT().DisableResource(gomock.Any(), b.ID).Return(disabled, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/admin/resources/"+b.ID.String()+"/disable", nil, "")

		var body resdto.ResourceResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("disabled", body.Status)
		s.Equal("09:00", body.OpensAt)
		s.Equal("21:00", body.ClosesAt)
		s.Equal("2000.00", body.HourlyPrice)
	})

	s.Run("enable unknown resource", func() {
		s.mockResources.EXPECT().EnableResource(gomock.Any(), gomock.Any()).Return(nil, commands.ErrResourceNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/admin/resources/"+uuid.NewString()+"/enable", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "resource not found")
	})
}

func (s *AdminHandlerTestSuite) TestDeleteResource() {
	id := uuid.New()
	url := "/admin/resources/" + id.String()

	s.Run("success: 204", func() {
		s.mockResources.EXPECT().DeleteResource(gomock.Any(), id).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "")
		s.Equal(http.StatusNoContent, rec.Code)
		s.Empty(rec.Body.String())
	})

	s.Run("error: 409 with upcoming confirmed reservations", func() {
		s.mockResources.EXPECT().DeleteResource(gomock.Any(), id).
			Return(errs.Wrapf(commands.ErrResourceHasFutureReservations, "%d upcoming", 2)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "upcoming confirmed reservations")
	})

	s.Run("error: 400 for malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/admin/resources/42", nil, "")
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}
