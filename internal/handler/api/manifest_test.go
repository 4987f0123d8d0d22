//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"cargo-backoffice/internal/domain/manifest"
	"cargo-backoffice/internal/domain/staff"
	"cargo-backoffice/internal/handler/api"
	resdto "cargo-backoffice/internal/handler/dto/response"
	"cargo-backoffice/internal/pkg/errs"
	"cargo-backoffice/internal/usecase/queries"
	"cargo-backoffice/tests/common/builder"
	"cargo-backoffice/tests/common/httptest"
	"cargo-backoffice/tests/common/testutil"
	commandsmock "cargo-backoffice/tests/mock/commands"
	queriesmock "cargo-backoffice/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ManifestHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockManifestCommands
	mockAttacher *commandsmock.MockScanAttacher
	mockQueries  *queriesmock.MockManifestQueries
	handler      *api.ManifestHandler
}

func (s *ManifestHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockManifestCommands(s.mockCtrl)
	s.mockAttacher = commandsmock.NewMockScanAttacher(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockManifestQueries(s.mockCtrl)
	s.handler = api.NewManifestHandler(s.mockCommands, s.mockAttacher, s.mockQueries)

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("staff_id", uuid.New())
		c.Set("staff_role", staff.RoleDispatcher)
		c.Next()
	}

	s.router.POST("/manifests", authMiddleware, s.handler.Create)
	s.router.GET("/manifests/:id", authMiddleware, s.handler.Get)
	s.router.GET("/manifests/:id/items", authMiddleware, s.handler.ListItems)
	s.router.GET("/manifests/:id/scan-log", authMiddleware, s.handler.ListScanLog)
	s.router.PATCH("/manifests/:id/status", authMiddleware, s.handler.UpdateStatus)
	s.router.POST("/manifests/:id/close", authMiddleware, s.handler.Close)
	s.router.POST("/manifests/:id/depart", authMiddleware, s.handler.Depart)
	s.router.POST("/manifests/:id/arrive", authMiddleware, s.handler.Arrive)
	s.router.POST("/manifests/:id/recalculate", authMiddleware, s.handler.Recalculate)
	s.router.DELETE("/manifests/:id/items/:shipmentId", authMiddleware, s.handler.RemoveItem)
}

func (s *ManifestHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestManifestHandlerSuite(t *testing.T) {
	suite.Run(t, new(ManifestHandlerTestSuite))
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *ManifestHandlerTestSuite) TestCreate() {
	url := "/manifests"

	b := builder.NewManifestBuilder()
	reqBody := b.BuildCreateRequestDTO()
	snapshot := b.BuildSnapshot()

	s.Run("success: returns 201 Created for valid request", func() {
		s.mockCommands.EXPECT().CreateManifest(gomock.Any(), gomock.Any()).
			Return(snapshot, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var response resdto.ManifestResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(snapshot.ID, response.ID)
		s.Equal(snapshot.ManifestNo, response.ManifestNo)
		s.Equal(string(snapshot.Status), response.Status)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		testCases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing field: type (required)", mutate: testutil.Field("type", nil)},
			{name: "invalid transport type", mutate: testutil.Field("type", "RAIL")},
			{name: "missing field: from_hub_id (required)", mutate: testutil.Field("from_hub_id", nil)},
			{name: "missing field: to_hub_id (required)", mutate: testutil.Field("to_hub_id", nil)},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
		}{
			{
				name:           "illegal starting status",
				commandsError:  errs.ErrIllegalTransition,
				expectedStatus: http.StatusConflict,
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CreateManifest(gomock.Any(), gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, "")
			})
		}
	})
}

// ================================================================================
// TestGet
// ================================================================================

func (s *ManifestHandlerTestSuite) TestGet() {
	manifestID := uuid.New()
	url := "/manifests/" + manifestID.String()

	returnView := builder.NewManifestBuilder().WithID(manifestID).BuildView()

	s.Run("success: returns 200 OK with ManifestResponse", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), manifestID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response resdto.ManifestResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(manifestID, response.ID)
		s.Equal(returnView.ManifestNo, response.ManifestNo)
		s.Equal(returnView.TotalShipments, response.TotalShipments)
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/manifests/invalid-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})

	s.Run("error: 404 Not Found for missing manifest", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), manifestID).
			Return(nil, errs.ErrManifestNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Not found")
	})
}

// ================================================================================
// TestListItems
// ================================================================================

func (s *ManifestHandlerTestSuite) TestListItems() {
	manifestID := uuid.New()
	url := "/manifests/" + manifestID.String() + "/items"

	b := builder.NewManifestBuilder().WithID(manifestID)
	items := []queries.ManifestItemView{
		b.BuildItemView("TAC11111111"),
		b.BuildItemView("TAC22222222"),
	}

	s.Run("success: returns attached items", func() {
		s.mockQueries.EXPECT().ListItems(gomock.Any(), manifestID).
			Return(items, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response map[string][]resdto.ManifestItemResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response["items"], 2)
		s.Equal("TAC11111111", response["items"][0].AWB)
	})

	s.Run("success: empty manifest returns empty list, not null", func() {
		s.mockQueries.EXPECT().ListItems(gomock.Any(), manifestID).
			Return(nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response map[string][]resdto.ManifestItemResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.NotNil(response["items"])
		s.Empty(response["items"])
	})

	s.Run("error: 500 on query failure", func() {
		s.mockQueries.EXPECT().ListItems(gomock.Any(), manifestID).
			Return(nil, errors.New("database error")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Failed to list items")
	})
}

// ================================================================================
// TestListScanLog
// ================================================================================

func (s *ManifestHandlerTestSuite) TestListScanLog() {
	manifestID := uuid.New()
	url := "/manifests/" + manifestID.String() + "/scan-log"

	b := builder.NewManifestBuilder().WithID(manifestID)
	entries := []queries.ScanLogView{
		b.BuildScanLogView("SUCCESS"),
		b.BuildScanLogView("SHIPMENT_NOT_FOUND"),
	}

	s.Run("success: returns audited scan attempts", func() {
		s.mockQueries.EXPECT().ListScanLog(gomock.Any(), manifestID).
			Return(entries, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response map[string][]resdto.ScanLogResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response["entries"], 2)
		s.Equal("SUCCESS", response["entries"][0].Result)
		s.Equal("TAC12345678", response["entries"][0].NormalizedToken)
	})
}

// ================================================================================
// TestUpdateStatus
// ================================================================================

func (s *ManifestHandlerTestSuite) TestUpdateStatus() {
	manifestID := uuid.New()
	url := "/manifests/" + manifestID.String() + "/status"

	snapshot := builder.NewManifestBuilder().WithID(manifestID).WithStatus(manifest.StatusBuilding).BuildSnapshot()
	reqBody := map[string]string{"status": "BUILDING"}

	s.Run("success: returns 200 OK with updated manifest", func() {
		s.mockCommands.EXPECT().UpdateStatus(gomock.Any(), manifestID, manifest.StatusBuilding, gomock.Any()).
			Return(snapshot, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, "bearer-token")

		var response resdto.ManifestResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("BUILDING", response.Status)
	})

	s.Run("error: 400 Bad Request when status missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]string{}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: 409 Conflict on illegal transition", func() {
		s.mockCommands.EXPECT().UpdateStatus(gomock.Any(), manifestID, manifest.StatusBuilding, gomock.Any()).
			Return(nil, errs.ErrIllegalTransition).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Status update failed")
	})

	s.Run("error: 404 Not Found for missing manifest", func() {
		s.mockCommands.EXPECT().UpdateStatus(gomock.Any(), manifestID, manifest.StatusBuilding, gomock.Any()).
			Return(nil, errs.ErrManifestNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Status update failed")
	})
}

// ================================================================================
// TestLifecycle (close / depart / arrive)
// ================================================================================

func (s *ManifestHandlerTestSuite) TestClose() {
	manifestID := uuid.New()
	url := "/manifests/" + manifestID.String() + "/close"

	s.Run("success: returns closed manifest", func() {
		closed := builder.NewManifestBuilder().WithID(manifestID).WithStatus(manifest.StatusClosed).BuildSnapshot()
		s.mockCommands.EXPECT().Close(gomock.Any(), manifestID, gomock.Any()).
			Return(closed, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")

		var response resdto.ManifestResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("CLOSED", response.Status)
	})

	s.Run("error: 409 Conflict for an empty manifest", func() {
		s.mockCommands.EXPECT().Close(gomock.Any(), manifestID, gomock.Any()).
			Return(nil, errs.ErrManifestEmpty).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Close failed")
	})
}

func (s *ManifestHandlerTestSuite) TestDepartAndArrive() {
	manifestID := uuid.New()

	s.Run("success: depart returns departed manifest", func() {
		departed := builder.NewManifestBuilder().WithID(manifestID).WithStatus(manifest.StatusDeparted).BuildSnapshot()
		s.mockCommands.EXPECT().Depart(gomock.Any(), manifestID, gomock.Any()).
			Return(departed, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/manifests/"+manifestID.String()+"/depart", nil, "bearer-token")

		var response resdto.ManifestResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("DEPARTED", response.Status)
	})

	s.Run("success: arrive returns arrived manifest", func() {
		arrived := builder.NewManifestBuilder().WithID(manifestID).WithStatus(manifest.StatusArrived).BuildSnapshot()
		s.mockCommands.EXPECT().Arrive(gomock.Any(), manifestID, gomock.Any()).
			Return(arrived, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/manifests/"+manifestID.String()+"/arrive", nil, "bearer-token")

		var response resdto.ManifestResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("ARRIVED", response.Status)
	})

	s.Run("error: 409 Conflict on depart before close", func() {
		s.mockCommands.EXPECT().Depart(gomock.Any(), manifestID, gomock.Any()).
			Return(nil, errs.ErrIllegalTransition).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/manifests/"+manifestID.String()+"/depart", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Depart failed")
	})
}

// ================================================================================
// TestRecalculate
// ================================================================================

func (s *ManifestHandlerTestSuite) TestRecalculate() {
	manifestID := uuid.New()
	url := "/manifests/" + manifestID.String() + "/recalculate"

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().RecalculateTotals(gomock.Any(), manifestID).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 404 Not Found for missing manifest", func() {
		s.mockCommands.EXPECT().RecalculateTotals(gomock.Any(), manifestID).
			Return(errs.ErrManifestNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Recalculate failed")
	})
}

// ================================================================================
// TestRemoveItem
// ================================================================================

func (s *ManifestHandlerTestSuite) TestRemoveItem() {
	manifestID := uuid.New()
	shipmentID := uuid.New()
	url := "/manifests/" + manifestID.String() + "/items/" + shipmentID.String()

	s.Run("success: returns 204 No Content", func() {
		s.mockAttacher.EXPECT().Detach(gomock.Any(), manifestID, shipmentID, gomock.Any()).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 400 Bad Request for invalid shipment UUID", func() {
		badURL := "/manifests/" + manifestID.String() + "/items/invalid-uuid"
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, badURL, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid shipment id")
	})

	s.Run("error: 409 Conflict when the manifest is closed", func() {
		s.mockAttacher.EXPECT().Detach(gomock.Any(), manifestID, shipmentID, gomock.Any()).
			Return(errs.ErrManifestClosed).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Remove failed")
	})
}
