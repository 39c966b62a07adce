// Package api serves the public read-only HTTP API used by the web front end.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/AngelinAnto/OneAdmit/internal/filter"
	"github.com/AngelinAnto/OneAdmit/internal/model"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CollegeDirectory interface {
	Discover(ctx context.Context, f filter.FilterSet) ([]model.College, error)
	Facets(ctx context.Context) (filter.Facets, error)
	GetByCode(ctx context.Context, code string) (*model.College, error)
}

type SlotDirectory interface {
	Upcoming(ctx context.Context, collegeID uuid.UUID, now time.Time) ([]*model.ExamSlot, error)
}

type Handler struct {
	colleges CollegeDirectory
	slots    SlotDirectory
	logger   *zap.Logger
	now      func() time.Time
}

func NewHandler(colleges CollegeDirectory, slots SlotDirectory, logger *zap.Logger) *Handler {
	return &Handler{
		colleges: colleges,
		slots:    slots,
		logger:   logger,
		now:      time.Now,
	}
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListColleges returns active colleges matching the query filters
func (h *Handler) ListColleges(c *gin.Context) {
	f := filter.ParseQuery(c.Request.URL.Query())

	colleges, err := h.colleges.Discover(c.Request.Context(), f)
	if err != nil {
		h.internalError(c, "Failed to list colleges", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"colleges": colleges,
		"count":    len(colleges),
		"filters":  f,
	})
}

func (h *Handler) GetFacets(c *gin.Context) {
	facets, err := h.colleges.Facets(c.Request.Context())
	if err != nil {
		h.internalError(c, "Failed to collect facets", err)
		return
	}

	c.JSON(http.StatusOK, facets)
}

// slotView adds the availability fields the front end shows on each slot
type slotView struct {
	*model.ExamSlot
	AvailableSeats int    `json:"available_seats"`
	IsFull         bool   `json:"is_full"`
	Badge          string `json:"badge"`
}

// ListCollegeSlots returns the upcoming active exam slots of a college
func (h *Handler) ListCollegeSlots(c *gin.Context) {
	ctx := c.Request.Context()

	college, err := h.colleges.GetByCode(ctx, c.Param("code"))
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "College not found"})
			return
		}
		h.internalError(c, "Failed to get college", err)
		return
	}

	slots, err := h.slots.Upcoming(ctx, college.ID, h.now())
	if err != nil {
		h.internalError(c, "Failed to list exam slots", err)
		return
	}

	views := make([]slotView, 0, len(slots))
	for _, slot := range slots {
		views = append(views, slotView{
			ExamSlot:       slot,
			AvailableSeats: slot.AvailableSeats(),
			IsFull:         slot.IsFull(),
			Badge:          slot.Badge(),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"college": college.Code,
		"slots":   views,
	})
}

func (h *Handler) internalError(c *gin.Context, msg string, err error) {
	h.logger.Error(msg, zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
