//go:build e2e

package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	e2e "driveshare/tests/e2e"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type BookingFlowTestSuite struct {
	e2e.SharedSuite
}

func TestBookingFlowSuite(t *testing.T) {
	suite.Run(t, new(BookingFlowTestSuite))
}

func (s *BookingFlowTestSuite) request(method, path, token string, body any) *httptest.ResponseRecorder {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		require.NoError(s.T(), err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, req)
	return rec
}

func (s *BookingFlowTestSuite) decode(rec *httptest.ResponseRecorder) map[string]any {
	var out map[string]any
	require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

// registerAndLogin creates an account through the API and returns its token.
func (s *BookingFlowTestSuite) registerAndLogin(email, role string) string {
	rec := s.request(http.MethodPost, "/api/auth/register", "", map[string]any{
		"email": email, "password": "password123", "role": role,
	})
	require.Equal(s.T(), http.StatusCreated, rec.Code, rec.Body.String())
	return s.login(email)
}

func (s *BookingFlowTestSuite) login(email string) string {
	rec := s.request(http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": email, "password": "password123",
	})
	require.Equal(s.T(), http.StatusOK, rec.Code, rec.Body.String())
	token, _ := s.decode(rec)["access_token"].(string)
	require.NotEmpty(s.T(), token)
	return token
}

// adminToken registers a throwaway account, promotes it in the database (the
// API refuses to mint admins), and logs in again so the token carries the
// admin role.
func (s *BookingFlowTestSuite) adminToken(email string) string {
	s.registerAndLogin(email, "renter")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := s.DB.Exec(ctx, "UPDATE users SET role = 'admin' WHERE email = $1", email)
	require.NoError(s.T(), err)

	return s.login(email)
}

func (s *BookingFlowTestSuite) createApprovedVehicle(ownerToken, adminToken, plate string) string {
	rec := s.request(http.MethodPost, "/api/vehicles", ownerToken, map[string]any{
		"name": "Honda Fit", "plate": plate, "daily_rate_cents": 4500,
	})
	require.Equal(s.T(), http.StatusCreated, rec.Code, rec.Body.String())
	vehicleID, _ := s.decode(rec)["id"].(string)
	require.NotEmpty(s.T(), vehicleID)

	rec = s.request(http.MethodPost, "/api/vehicles/"+vehicleID+"/approve", adminToken, nil)
	require.Equal(s.T(), http.StatusOK, rec.Code, rec.Body.String())

	return vehicleID
}

func futureDate(daysAhead int) string {
	return time.Now().UTC().AddDate(0, 0, daysAhead).Format("2006-01-02")
}

func (s *BookingFlowTestSuite) TestFullBookingFlow() {
	owner := s.registerAndLogin("owner-flow@example.com", "owner")
	renter := s.registerAndLogin("renter-flow@example.com", "renter")
	admin := s.adminToken("admin-flow@example.com")
	vehicleID := s.createApprovedVehicle(owner, admin, "FLOW-001")

	startDate := futureDate(7)
	endDate := futureDate(9)

	s.Run("availability check walks the selection to confirmation", func() {
		rec := s.request(http.MethodPost, "/api/vehicles/"+vehicleID+"/availability/check", "", map[string]any{
			"step": "date", "side": "pickup", "date": startDate,
			"selection": map[string]any{},
		})
		require.Equal(s.T(), http.StatusOK, rec.Code, rec.Body.String())
		require.Equal(s.T(), true, s.decode(rec)["ok"])

		rec = s.request(http.MethodPost, "/api/vehicles/"+vehicleID+"/availability/check", "", map[string]any{
			"step": "confirm",
			"selection": map[string]any{
				"pickup_date": startDate, "return_date": endDate,
				"pickup_hour": 9, "return_hour": 18,
			},
		})
		require.Equal(s.T(), http.StatusOK, rec.Code, rec.Body.String())
		body := s.decode(rec)
		require.Equal(s.T(), true, body["ok"])
		require.NotNil(s.T(), body["confirmed"])
	})

	var bookingID string

	s.Run("renter books the confirmed window", func() {
		rec := s.request(http.MethodPost, "/api/bookings", renter, map[string]any{
			"vehicle_id": vehicleID,
			"start_date": startDate, "end_date": endDate,
			"pickup_time": "09:00", "return_time": "18:00",
			"note": "weekend trip",
		})
		require.Equal(s.T(), http.StatusCreated, rec.Code, rec.Body.String())
		body := s.decode(rec)
		bookingID, _ = body["id"].(string)
		require.NotEmpty(s.T(), bookingID)
		require.Equal(s.T(), "pending", body["status"])
	})

	s.Run("renter confirms the hold", func() {
		rec := s.request(http.MethodPost, "/api/bookings/"+bookingID+"/confirm", renter, nil)
		require.Equal(s.T(), http.StatusOK, rec.Code, rec.Body.String())
		require.Equal(s.T(), "confirmed", s.decode(rec)["status"])

		rec = s.request(http.MethodPost, "/api/bookings/"+bookingID+"/confirm", renter, nil)
		require.Equal(s.T(), http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	})

	s.Run("the booked window shows up as a reserved interval", func() {
		rec := s.request(http.MethodGet, "/api/vehicles/"+vehicleID+"/bookings", "", nil)
		require.Equal(s.T(), http.StatusOK, rec.Code)

		var intervals []map[string]any
		require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &intervals))
		require.Len(s.T(), intervals, 1)
		require.Equal(s.T(), "09:00", intervals[0]["pickupTime"])
	})

	s.Run("an overlapping booking loses with a conflict", func() {
		rec := s.request(http.MethodPost, "/api/bookings", renter, map[string]any{
			"vehicle_id": vehicleID,
			"start_date": futureDate(8), "end_date": futureDate(10),
			"pickup_time": "10:00", "return_time": "10:00",
		})
		require.Equal(s.T(), http.StatusConflict, rec.Code, rec.Body.String())
		require.Contains(s.T(), rec.Body.String(), "conflict")
	})

	s.Run("owner cannot book their own vehicle through the renter route", func() {
		rec := s.request(http.MethodPost, "/api/bookings", owner, map[string]any{
			"vehicle_id": vehicleID,
			"start_date": futureDate(20), "end_date": futureDate(21),
			"pickup_time": "09:00", "return_time": "09:00",
		})
		require.Equal(s.T(), http.StatusForbidden, rec.Code)
	})

	s.Run("cancel frees the window", func() {
		rec := s.request(http.MethodPost, "/api/bookings/"+bookingID+"/cancel", renter, nil)
		require.Equal(s.T(), http.StatusNoContent, rec.Code, rec.Body.String())

		rec = s.request(http.MethodGet, "/api/vehicles/"+vehicleID+"/bookings", "", nil)
		require.Equal(s.T(), http.StatusOK, rec.Code)

		var intervals []map[string]any
		require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &intervals))
		require.Empty(s.T(), intervals)

		rec = s.request(http.MethodPost, "/api/bookings", renter, map[string]any{
			"vehicle_id": vehicleID,
			"start_date": startDate, "end_date": endDate,
			"pickup_time": "09:00", "return_time": "18:00",
		})
		require.Equal(s.T(), http.StatusCreated, rec.Code, rec.Body.String())
	})
}

func (s *BookingFlowTestSuite) TestModerationGate() {
	owner := s.registerAndLogin("owner-gate@example.com", "owner")
	renter := s.registerAndLogin("renter-gate@example.com", "renter")

	rec := s.request(http.MethodPost, "/api/vehicles", owner, map[string]any{
		"name": "Pending Car", "plate": "GATE-001", "daily_rate_cents": 3000,
	})
	require.Equal(s.T(), http.StatusCreated, rec.Code, rec.Body.String())
	vehicleID, _ := s.decode(rec)["id"].(string)

	s.Run("unapproved vehicle cannot be booked", func() {
		rec := s.request(http.MethodPost, "/api/bookings", renter, map[string]any{
			"vehicle_id": vehicleID,
			"start_date": futureDate(5), "end_date": futureDate(6),
			"pickup_time": "09:00", "return_time": "09:00",
		})
		require.Equal(s.T(), http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	})

	s.Run("renter cannot register vehicles", func() {
		rec := s.request(http.MethodPost, "/api/vehicles", renter, map[string]any{
			"name": "Sneaky Car", "plate": fmt.Sprintf("GATE-%d", time.Now().UnixNano()%10000), "daily_rate_cents": 1,
		})
		require.Equal(s.T(), http.StatusForbidden, rec.Code)
	})
}
