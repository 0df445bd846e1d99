package api

import (
	"net/http"
	"time"

	"driveshare/internal/domain/availability"
	reqdto "driveshare/internal/handler/dto/request"
	resdto "driveshare/internal/handler/dto/response"
	"driveshare/internal/pkg/errs"
	"driveshare/internal/pkg/metrics"
	"driveshare/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AvailabilityHandler struct {
	q queries.AvailabilityQueries
}

func NewAvailabilityHandler(q queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{q: q}
}

// @Summary Reserved intervals
// @Description The occupied windows of a vehicle, the raw input of the availability calendar
// @Tags availability
// @Produce json
// @Param id path string true "Vehicle ID"
// @Success 200 {array} resdto.ReservedIntervalResponse
// @Failure 503 {object} map[string]string
// @Router /vehicles/{id}/bookings [get]
func (h *AvailabilityHandler) ReservedIntervals(c *gin.Context) {
	vehicleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle ID"})
		return
	}

	views, err := h.q.ReservedIntervals(c.Request.Context(), vehicleID)
	if err != nil {
		abortLoadFailed(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.NewReservedIntervalListResponse(views))
}

// @Summary Hour availability
// @Description The 24 hour slots of one calendar date for one side of the selection
// @Tags availability
// @Produce json
// @Param id path string true "Vehicle ID"
// @Param date query string true "Calendar date (YYYY-MM-DD)"
// @Param side query string true "pickup or return"
// @Param pickup_date query string false "Chosen pickup date"
// @Param pickup_hour query int false "Chosen pickup hour"
// @Param return_date query string false "Chosen return date"
// @Param return_hour query int false "Chosen return hour"
// @Success 200 {object} resdto.DayAvailabilityResponse
// @Failure 400 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /vehicles/{id}/availability [get]
func (h *AvailabilityHandler) DayHours(c *gin.Context) {
	vehicleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle ID"})
		return
	}

	date, err := time.ParseInLocation("2006-01-02", c.Query("date"), time.UTC)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	side := availability.Side(c.Query("side"))
	if !side.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "side must be pickup or return"})
		return
	}

	var state reqdto.SelectionState
	if err := c.ShouldBindQuery(&state); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid selection state"})
		return
	}
	sel, err := state.ToDomain()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid selection state"})
		return
	}

	day, err := h.q.DayHours(c.Request.Context(), vehicleID, date, side, sel)
	if err != nil {
		abortLoadFailed(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.NewDayAvailabilityResponse(day))
}

// @Summary Check selection step
// @Description Advance the selection state machine one step (date, hour or confirm); rejections come back as a tagged result, not an HTTP error
// @Tags availability
// @Accept json
// @Produce json
// @Param id path string true "Vehicle ID"
// @Param request body reqdto.CheckSelectionRequest true "Selection step"
// @Success 200 {object} resdto.CheckSelectionResponse
// @Failure 400 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /vehicles/{id}/availability/check [post]
func (h *AvailabilityHandler) CheckSelection(c *gin.Context) {
	vehicleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle ID"})
		return
	}

	var req reqdto.CheckSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sel, err := req.Selection.ToDomain()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid selection state"})
		return
	}

	ctx := c.Request.Context()
	switch req.Step {
	case "date":
		date, parseErr := time.ParseInLocation("2006-01-02", *req.Date, time.UTC)
		if parseErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		updated, stepErr := h.q.ApplyDate(ctx, vehicleID, availability.Side(req.Side), date, sel)
		h.respondStep(c, updated, stepErr)

	case "hour":
		updated, stepErr := h.q.ApplyHour(ctx, vehicleID, availability.Side(req.Side), *req.Hour, sel)
		h.respondStep(c, updated, stepErr)

	case "confirm":
		confirmed, stepErr := h.q.Confirm(ctx, vehicleID, sel)
		if stepErr != nil {
			h.respondRejection(c, stepErr)
			return
		}
		c.JSON(http.StatusOK, resdto.CheckSelectionResponse{
			OK:        true,
			Confirmed: resdto.NewConfirmedSelectionResponse(confirmed),
		})
	}
}

func (h *AvailabilityHandler) respondStep(c *gin.Context, updated availability.Selection, err error) {
	if err != nil {
		h.respondRejection(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.CheckSelectionResponse{
		OK:        true,
		Selection: resdto.NewSelectionResponse(updated),
	})
}

// respondRejection maps engine validation failures to a tagged ok=false
// result; the user re-prompts, nothing retries. Infrastructure failures are
// the only HTTP-level errors.
func (h *AvailabilityHandler) respondRejection(c *gin.Context, err error) {
	if errs.Is(err, queries.ErrIntervalFetchFailed) {
		abortLoadFailed(c, err)
		return
	}

	tag := availability.Tag(err)
	metrics.IncAvailabilityRejected(tag)
	c.JSON(http.StatusOK, resdto.CheckSelectionResponse{OK: false, Reason: tag})
}

// abortLoadFailed surfaces a reserved-interval fetch failure as retryable.
func abortLoadFailed(c *gin.Context, _ error) {
	c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Could not load availability, please retry"})
}
