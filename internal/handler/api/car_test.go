//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"wheelshare/internal/domain/user"
	"wheelshare/internal/handler/api"
	resdto "wheelshare/internal/handler/dto/response"
	"wheelshare/internal/pkg/opaqueid"
	"wheelshare/internal/usecase/commands"
	"wheelshare/internal/usecase/queries"
	"wheelshare/internal/usecase/shared"
	"wheelshare/tests/common/builder"
	"wheelshare/tests/common/httptest"
	"wheelshare/tests/common/testutil"
	commandsmock "wheelshare/tests/mock/commands"
	queriesmock "wheelshare/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CarHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockCarCommands
	mockQueries  *queriesmock.MockCarQueries
	codec        *opaqueid.Codec
	handler      *api.CarHandler
	actorID      uuid.UUID
}

func (s *CarHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockCarCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockCarQueries(s.mockCtrl)

	codec, err := opaqueid.NewCodec("handler-test-key")
	s.Require().NoError(err)
	s.codec = codec
	s.handler = api.NewCarHandler(s.mockCommands, s.mockQueries, s.codec)
	s.actorID = uuid.New()

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("principal", shared.Principal{ID: s.actorID, Role: user.RoleOwner})
		c.Next()
	}

	s.router.GET("/cars", s.handler.ListCars)
	s.router.GET("/cars/:id", s.handler.GetCar)
	s.router.POST("/cars", authMiddleware, s.handler.CreateCar)
	s.router.DELETE("/cars/:id", authMiddleware, s.handler.DelistCar)
}

func (s *CarHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCarHandlerSuite(t *testing.T) {
	suite.Run(t, new(CarHandlerTestSuite))
}

func (s *CarHandlerTestSuite) createRequestBody() map[string]any {
	return map[string]any{
		"brand":            "Mazda",
		"model":            "MX-5",
		"daily_rate_cents": 6_000_00,
	}
}

// ================================================================================
// ListCars / GetCar
// ================================================================================

func (s *CarHandlerTestSuite) TestListCars() {
	views := []*queries.CarView{
		builder.NewCarBuilder().BuildView(),
		builder.NewCarBuilder().BuildView(),
	}

	s.Run("success: lists listed cars without a period filter", func() {
		s.mockQueries.EXPECT().ListListed(gomock.Any(), 0).Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/cars", nil, "")

		var resp []resdto.CarResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Len(resp, 2)
	})

	s.Run("success: period filter searches availability", func() {
		start := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)
		end := start.Add(48 * time.Hour)
		url := "/cars?start=" + start.Format(time.RFC3339) + "&end=" + end.Format(time.RFC3339)

		s.mockQueries.EXPECT().SearchAvailable(gomock.Any(), gomock.Any(), gomock.Any(), 0).
			Return(views[:1], nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var resp []resdto.CarResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Len(resp, 1)
	})

	s.Run("error: 400 for a malformed start time", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/cars?start=tomorrow&end=later", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid start time")
	})

	s.Run("error: 400 for an inverted period", func() {
		start := time.Now().Add(48 * time.Hour).UTC().Truncate(time.Second)
		end := start.Add(-24 * time.Hour)
		url := "/cars?start=" + start.Format(time.RFC3339) + "&end=" + end.Format(time.RFC3339)

		s.mockQueries.EXPECT().SearchAvailable(gomock.Any(), gomock.Any(), gomock.Any(), 0).
			Return(nil, queries.ErrInvalidSearchPeriod).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid search period")
	})
}

func (s *CarHandlerTestSuite) TestGetCar() {
	view := builder.NewCarBuilder().BuildView()
	url := "/cars/" + s.codec.Encode(view.ID)

	s.Run("success: returns the car view", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var resp resdto.CarResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal(view.Brand, resp.Brand)
		s.Equal(view.DailyRateCents, resp.DailyRateCents)
	})

	s.Run("error: 404 for a garbage id token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/cars/zzz", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Car not found")
	})
}

// ================================================================================
// CreateCar
// ================================================================================

func (s *CarHandlerTestSuite) TestCreateCar() {
	url := "/cars"
	view := builder.NewCarBuilder().WithOwnerID(s.actorID).BuildView()

	s.Run("success: returns 201 Created for a new listing", func() {
		s.mockCommands.EXPECT().CreateCar(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, s.createRequestBody(), "bearer-token")

		var resp resdto.CarResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &resp)
		s.Equal(s.codec.Encode(view.ID), resp.ID)
		s.True(resp.Listed)
	})

	s.Run("error: 401 without authorization", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, s.createRequestBody(), "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: 400 for malformed body", func() {
		missing := []struct {
			name   string
			mutate func(map[string]any)
		}{
			{name: "missing brand", mutate: testutil.Field("brand", nil)},
			{name: "missing model", mutate: testutil.Field("model", nil)},
			{name: "missing daily_rate_cents", mutate: testutil.Field("daily_rate_cents", nil)},
			{name: "zero daily_rate_cents", mutate: testutil.Field("daily_rate_cents", 0)},
		}
		for _, tc := range missing {
			s.Run(tc.name, func() {
				body := s.createRequestBody()
				tc.mutate(body)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: 403 when the actor may not list cars", func() {
		s.mockCommands.EXPECT().CreateCar(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrForbiddenActor).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, s.createRequestBody(), "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})
}

// ================================================================================
// DelistCar
// ================================================================================

func (s *CarHandlerTestSuite) TestDelistCar() {
	carID := uuid.New()
	url := "/cars/" + s.codec.Encode(carID)

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().DelistCar(gomock.Any(), gomock.Any(), carID).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 404 for an unknown car", func() {
		s.mockCommands.EXPECT().DelistCar(gomock.Any(), gomock.Any(), carID).
			Return(commands.ErrCarNotFound).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Car not found")
	})

	s.Run("error: 404 for a garbage id token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/cars/zzz", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Car not found")
	})

	s.Run("error: 403 when the actor is not the owner", func() {
		s.mockCommands.EXPECT().DelistCar(gomock.Any(), gomock.Any(), carID).
			Return(commands.ErrForbiddenActor).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})

	s.Run("error: 409 when the car is already delisted", func() {
		s.mockCommands.EXPECT().DelistCar(gomock.Any(), gomock.Any(), carID).
			Return(commands.ErrTransitionRejected).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})
}
