package api

import (
	"net/http"
	"strconv"

	"driveshare/internal/domain/availability"
	reqdto "driveshare/internal/handler/dto/request"
	resdto "driveshare/internal/handler/dto/response"
	"driveshare/internal/handler/middleware"
	"driveshare/internal/pkg/errs"
	"driveshare/internal/usecase/commands"
	"driveshare/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	cmds commands.BookingCommands
	q    queries.BookingQueries
}

func NewBookingHandler(cmds commands.BookingCommands, q queries.BookingQueries) *BookingHandler {
	return &BookingHandler{cmds: cmds, q: q}
}

// @Summary Create booking
// @Description Create a booking from a confirmed availability selection
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	renterID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	view, err := h.cmds.CreateBooking(c.Request.Context(), renterID, req)
	if err != nil {
		switch {
		case errs.Is(err, commands.ErrVehicleNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		case errs.Is(err, commands.ErrBookingConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "The selected window is no longer available", "reason": "conflict"})
		case errs.Is(err, commands.ErrSelectionRejected):
			c.JSON(http.StatusConflict, gin.H{"error": "The selected window is no longer available", "reason": availability.Tag(err)})
		case errs.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Booking request failed validation"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.NewBookingResponse(view))
}

// @Summary List bookings
// @Description List the authenticated user's bookings (renter) or the bookings against their vehicles (owner)
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max results"
// @Success 200 {array} resdto.BookingListItemResponse
// @Router /bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	role, roleOK := middleware.GetUserRole(c)
	if !ok || !roleOK {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	items, err := h.q.ListMine(c.Request.Context(), actorID, role, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, resdto.NewBookingListResponse(items))
}

// @Summary Get booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	role, roleOK := middleware.GetUserRole(c)
	if !ok || !roleOK {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), actorID, role, id)
	if err != nil {
		switch {
		case errs.Is(err, queries.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		case errs.Is(err, queries.ErrAccessDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.NewBookingResponse(view))
}

// @Summary Confirm booking
// @Description Turn a pending hold into a firm booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings/{id}/confirm [post]
func (h *BookingHandler) Confirm(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	role, roleOK := middleware.GetUserRole(c)
	if !ok || !roleOK {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	view, err := h.cmds.ConfirmBooking(c.Request.Context(), actorID, role, id)
	if err != nil {
		switch {
		case errs.Is(err, commands.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		case errs.Is(err, commands.ErrAccessDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		case errs.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Booking is not awaiting confirmation"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.NewBookingResponse(view))
}

// @Summary Cancel booking
// @Description Cancel an upcoming booking before its pickup instant
// @Tags bookings
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	role, roleOK := middleware.GetUserRole(c)
	if !ok || !roleOK {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	if err := h.cmds.CancelBooking(c.Request.Context(), actorID, role, id); err != nil {
		switch {
		case errs.Is(err, commands.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		case errs.Is(err, commands.ErrAccessDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		case errs.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Booking can no longer be canceled"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
