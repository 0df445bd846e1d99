//go:build unit

package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"driveshare/internal/domain/availability"
	"driveshare/internal/handler/api"
	"driveshare/internal/pkg/errs"
	"driveshare/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// stubAvailabilityQueries scripts each operation's outcome per test.
type stubAvailabilityQueries struct {
	reservedViews []queries.ReservedIntervalView
	reservedErr   error
	day           *queries.DayAvailability
	dayErr        error
	applied       availability.Selection
	applyErr      error
	confirmed     availability.ConfirmedSelection
	confirmErr    error
}

func (s *stubAvailabilityQueries) ReservedIntervals(_ context.Context, _ uuid.UUID) ([]queries.ReservedIntervalView, error) {
	return s.reservedViews, s.reservedErr
}

func (s *stubAvailabilityQueries) DayHours(_ context.Context, _ uuid.UUID, _ time.Time, _ availability.Side, _ availability.Selection) (*queries.DayAvailability, error) {
	return s.day, s.dayErr
}

func (s *stubAvailabilityQueries) ApplyDate(_ context.Context, _ uuid.UUID, _ availability.Side, _ time.Time, _ availability.Selection) (availability.Selection, error) {
	return s.applied, s.applyErr
}

func (s *stubAvailabilityQueries) ApplyHour(_ context.Context, _ uuid.UUID, _ availability.Side, _ int, _ availability.Selection) (availability.Selection, error) {
	return s.applied, s.applyErr
}

func (s *stubAvailabilityQueries) Confirm(_ context.Context, _ uuid.UUID, _ availability.Selection) (availability.ConfirmedSelection, error) {
	return s.confirmed, s.confirmErr
}

type AvailabilityHandlerTestSuite struct {
	suite.Suite
	router *gin.Engine
	stub   *stubAvailabilityQueries
}

func (s *AvailabilityHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.stub = &stubAvailabilityQueries{}
	handler := api.NewAvailabilityHandler(s.stub)

	s.router.GET("/vehicles/:id/bookings", handler.ReservedIntervals)
	s.router.GET("/vehicles/:id/availability", handler.DayHours)
	s.router.POST("/vehicles/:id/availability/check", handler.CheckSelection)
}

func TestAvailabilityHandlerSuite(t *testing.T) {
	suite.Run(t, new(AvailabilityHandlerTestSuite))
}

func (s *AvailabilityHandlerTestSuite) get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *AvailabilityHandlerTestSuite) postJSON(path string, body any) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	s.Require().NoError(err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *AvailabilityHandlerTestSuite) decode(rec *httptest.ResponseRecorder) map[string]any {
	var out map[string]any
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func (s *AvailabilityHandlerTestSuite) TestReservedIntervals() {
	vehicleID := uuid.New()

	s.Run("returns the occupied windows", func() {
		s.stub.reservedViews = []queries.ReservedIntervalView{{
			StartDateTime: time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC),
			EndDateTime:   time.Date(2024, 6, 12, 18, 0, 0, 0, time.UTC),
			PickupTime:    "09:00",
			ReturnTime:    "18:00",
		}}
		s.stub.reservedErr = nil

		rec := s.get("/vehicles/" + vehicleID.String() + "/bookings")
		s.Equal(http.StatusOK, rec.Code)

		var views []map[string]any
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &views))
		s.Require().Len(views, 1)
		s.Equal("09:00", views[0]["pickupTime"])
	})

	s.Run("malformed vehicle id rejected", func() {
		rec := s.get("/vehicles/not-a-uuid/bookings")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("fetch failure is retryable", func() {
		// The query layer marks the sentinel onto the underlying store
		// error; the handler must see through the mark.
		s.stub.reservedErr = errs.Mark(errs.New("connection refused"), queries.ErrIntervalFetchFailed)

		rec := s.get("/vehicles/" + vehicleID.String() + "/bookings")
		s.Equal(http.StatusServiceUnavailable, rec.Code)
		s.Contains(rec.Body.String(), "retry")
	})
}

func (s *AvailabilityHandlerTestSuite) TestDayHours() {
	vehicleID := uuid.New()

	s.Run("grid for a valid date and side", func() {
		s.stub.day = &queries.DayAvailability{
			Date: "2024-06-10",
			Side: availability.SidePickup,
			Slots: []availability.HourSlot{
				{Hour: 0, Available: true, Reason: availability.ReasonNone},
			},
		}

		rec := s.get("/vehicles/" + vehicleID.String() + "/availability?date=2024-06-10&side=pickup")
		s.Equal(http.StatusOK, rec.Code)
		body := s.decode(rec)
		s.Equal("2024-06-10", body["date"])
	})

	s.Run("missing date rejected", func() {
		rec := s.get("/vehicles/" + vehicleID.String() + "/availability?side=pickup")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("unknown side rejected", func() {
		rec := s.get("/vehicles/" + vehicleID.String() + "/availability?date=2024-06-10&side=sideways")
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *AvailabilityHandlerTestSuite) TestCheckSelection() {
	vehicleID := uuid.New()
	url := "/vehicles/" + vehicleID.String() + "/availability/check"

	s.Run("date step accepted", func() {
		date := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
		s.stub.applied = availability.Selection{PickupDate: &date}
		s.stub.applyErr = nil

		rec := s.postJSON(url, map[string]any{
			"step": "date", "side": "pickup", "date": "2024-06-10",
			"selection": map[string]any{},
		})
		s.Equal(http.StatusOK, rec.Code)
		body := s.decode(rec)
		s.Equal(true, body["ok"])
	})

	s.Run("engine rejection is a tagged result, not an HTTP error", func() {
		s.stub.applyErr = availability.ErrSlotBooked

		rec := s.postJSON(url, map[string]any{
			"step": "hour", "side": "pickup", "hour": 13,
			"selection": map[string]any{"pickup_date": "2024-06-10"},
		})
		s.Equal(http.StatusOK, rec.Code)
		body := s.decode(rec)
		s.Equal(false, body["ok"])
		s.Equal("booked", body["reason"])
	})

	s.Run("confirm returns the normalized window", func() {
		s.stub.confirmErr = nil
		s.stub.confirmed = availability.ConfirmedSelection{
			StartDate:  "2024-06-09",
			EndDate:    "2024-06-10",
			PickupTime: "10:00",
			ReturnTime: "08:00",
		}

		rec := s.postJSON(url, map[string]any{
			"step": "confirm",
			"selection": map[string]any{
				"pickup_date": "2024-06-09", "return_date": "2024-06-10",
				"pickup_hour": 10, "return_hour": 8,
			},
		})
		s.Equal(http.StatusOK, rec.Code)
		body := s.decode(rec)
		s.Equal(true, body["ok"])
		confirmed, ok := body["confirmed"].(map[string]any)
		s.Require().True(ok)
		s.Equal("2024-06-09", confirmed["start_date"])
	})

	s.Run("unknown step rejected", func() {
		rec := s.postJSON(url, map[string]any{
			"step": "teleport", "selection": map[string]any{},
		})
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("fetch failure during a step is retryable", func() {
		s.stub.applyErr = errs.Mark(errs.New("connection refused"), queries.ErrIntervalFetchFailed)

		rec := s.postJSON(url, map[string]any{
			"step": "date", "side": "pickup", "date": "2024-06-10",
			"selection": map[string]any{},
		})
		s.Equal(http.StatusServiceUnavailable, rec.Code)
	})
}
