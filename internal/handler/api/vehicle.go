package api

import (
	"context"
	"net/http"
	"strconv"

	reqdto "driveshare/internal/handler/dto/request"
	resdto "driveshare/internal/handler/dto/response"
	"driveshare/internal/handler/middleware"
	"driveshare/internal/pkg/errs"
	"driveshare/internal/usecase/commands"
	"driveshare/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VehicleHandler struct {
	cmds commands.VehicleCommands
	q    queries.VehicleQueries
}

func NewVehicleHandler(cmds commands.VehicleCommands, q queries.VehicleQueries) *VehicleHandler {
	return &VehicleHandler{cmds: cmds, q: q}
}

// @Summary Register vehicle
// @Description Register a new vehicle listing; it enters the moderation queue as pending
// @Tags vehicles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.RegisterVehicleRequest true "Vehicle listing"
// @Success 201 {object} resdto.VehicleResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /vehicles [post]
func (h *VehicleHandler) Register(c *gin.Context) {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.RegisterVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	view, err := h.cmds.RegisterVehicle(c.Request.Context(), ownerID, req)
	if err != nil {
		switch {
		case errs.Is(err, commands.ErrDuplicatePlate):
			c.JSON(http.StatusConflict, gin.H{"error": "A vehicle with this plate is already registered"})
		case errs.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid vehicle data"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.NewVehicleResponse(view))
}

// @Summary List vehicles
// @Description List approved vehicle listings (the public catalog)
// @Tags vehicles
// @Produce json
// @Param limit query int false "Max results"
// @Success 200 {array} resdto.VehicleResponse
// @Router /vehicles [get]
func (h *VehicleHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	views, err := h.q.ListApproved(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, resdto.NewVehicleListResponse(views))
}

// @Summary List own vehicles
// @Description List the authenticated owner's listings in any moderation state
// @Tags vehicles
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.VehicleResponse
// @Router /vehicles/mine [get]
func (h *VehicleHandler) ListMine(c *gin.Context) {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	views, err := h.q.ListByOwner(c.Request.Context(), ownerID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, resdto.NewVehicleListResponse(views))
}

// @Summary List pending vehicles
// @Description The admin moderation queue
// @Tags vehicles
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.VehicleResponse
// @Router /vehicles/pending [get]
func (h *VehicleHandler) ListPending(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	views, err := h.q.ListPending(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, resdto.NewVehicleListResponse(views))
}

// @Summary Get vehicle
// @Tags vehicles
// @Produce json
// @Param id path string true "Vehicle ID"
// @Success 200 {object} resdto.VehicleResponse
// @Failure 404 {object} map[string]string
// @Router /vehicles/{id} [get]
func (h *VehicleHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle ID"})
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		if errs.Is(err, queries.ErrVehicleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, resdto.NewVehicleResponse(view))
}

// @Summary Approve vehicle
// @Description Admin approves a pending listing, making it bookable
// @Tags vehicles
// @Produce json
// @Security BearerAuth
// @Param id path string true "Vehicle ID"
// @Success 200 {object} resdto.VehicleResponse
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /vehicles/{id}/approve [post]
func (h *VehicleHandler) Approve(c *gin.Context) {
	h.moderate(c, h.cmds.Approve)
}

// @Summary Reject vehicle
// @Description Admin rejects a pending listing
// @Tags vehicles
// @Produce json
// @Security BearerAuth
// @Param id path string true "Vehicle ID"
// @Success 200 {object} resdto.VehicleResponse
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /vehicles/{id}/reject [post]
func (h *VehicleHandler) Reject(c *gin.Context) {
	h.moderate(c, h.cmds.Reject)
}

func (h *VehicleHandler) moderate(c *gin.Context, decide func(ctx context.Context, id uuid.UUID) (*queries.VehicleView, error)) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle ID"})
		return
	}

	view, err := decide(c.Request.Context(), id)
	if err != nil {
		switch {
		case errs.Is(err, commands.ErrVehicleNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		case errs.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Vehicle has already been moderated"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.NewVehicleResponse(view))
}
