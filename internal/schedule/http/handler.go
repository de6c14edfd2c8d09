package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lumusproject/lumus-backend/internal/auth"
	"github.com/lumusproject/lumus-backend/internal/pkg/response"
	"github.com/lumusproject/lumus-backend/internal/schedule"
	"github.com/lumusproject/lumus-backend/internal/timegrid"
	"github.com/lumusproject/lumus-backend/internal/user"
)

type Handler struct {
	service     schedule.Service
	userService user.Service
}

func NewHandler(service schedule.Service, userService user.Service) *Handler {
	return &Handler{
		service:     service,
		userService: userService,
	}
}

// callerName resolves the display name for the authenticated caller, falling
// back to the account email.
func (h *Handler) callerName(c *gin.Context, userID string) string {
	u, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		return ""
	}
	if u.DisplayName != nil && *u.DisplayName != "" {
		return *u.DisplayName
	}
	return u.Email
}

func (h *Handler) isAdmin(c *gin.Context, userID string) bool {
	u, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		return false
	}
	return u.IsSystemAdmin
}

// List returns reservations matching the filters. Guests may list but get
// redacted records.
func (h *Handler) List(c *gin.Context) {
	var req ListSchedulesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	filter := schedule.Filter{
		LabNickname: req.LabNickname,
		CourseCode:  req.CourseCode,
		UserID:      req.UserID,
		Status:      req.Status,
		Page:        req.Page,
		PageSize:    req.PageSize,
		SortBy:      req.SortBy,
		SortOrder:   req.SortOrder,
	}
	if req.StartDate != "" {
		t, _ := time.Parse(dateLayout, req.StartDate)
		filter.DateFrom = &t
	}
	if req.EndDate != "" {
		t, _ := time.Parse(dateLayout, req.EndDate)
		filter.DateTo = &t
	}

	reservations, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list reservations"})
		return
	}

	redact := !auth.CallerFrom(c).CanWrite
	items := make([]ScheduleResponse, len(reservations))
	for i, r := range reservations {
		items[i] = NewScheduleResponse(r, redact)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

// ListByLab returns the reservations for one lab on one date, the raw data
// behind the availability grid.
func (h *Handler) ListByLab(c *gin.Context) {
	dateStr := c.Query("date")
	date, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}

	reservations, _, err := h.service.List(c.Request.Context(), schedule.Filter{
		LabNickname: c.Param("nickname"),
		DateFrom:    &date,
		DateTo:      &date,
		PageSize:    100,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list reservations"})
		return
	}

	redact := !auth.CallerFrom(c).CanWrite
	items := make([]ScheduleResponse, len(reservations))
	for i, r := range reservations {
		items[i] = NewScheduleResponse(r, redact)
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Get returns one reservation by ID.
func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	r, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, schedule.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "reservation not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get reservation"})
		return
	}

	redact := !auth.CallerFrom(c).CanWrite
	c.JSON(http.StatusOK, NewScheduleResponse(r, redact))
}

// Availability renders the occupancy grid for one lab and date: every slot of
// the day grid with its free/claimed state. Open to guests; claimant details
// are redacted for them.
func (h *Handler) Availability(c *gin.Context) {
	labNickname := c.Query("lab")
	dateStr := c.Query("date")
	if labNickname == "" || dateStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lab and date query parameters are required"})
		return
	}
	date, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}

	occ, err := h.service.Availability(c.Request.Context(), labNickname, date)
	if err != nil {
		response.Error(c, err)
		return
	}

	canSeeDetail := auth.CallerFrom(c).CanWrite

	slots := make([]SlotResponse, 0, timegrid.Size())
	for _, label := range timegrid.Labels() {
		slot := SlotResponse{Time: label, Available: !occ.IsClaimed(label)}
		if claimant := occ.Claimant(label); claimant != nil {
			slot.BookedBy = claimant.UserName
			if canSeeDetail {
				slot.Course = claimant.CourseCode
			}
		}
		slots = append(slots, slot)
	}

	c.JSON(http.StatusOK, AvailabilityResponse{
		LabNickname: occ.LabNickname,
		Date:        dateStr,
		Slots:       slots,
	})
}

// Create commits a new reservation (and recurrence series) for the
// authenticated caller.
func (h *Handler) Create(c *gin.Context) {
	var body CreateScheduleRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	caller := auth.CallerFrom(c)
	if !caller.CanWrite {
		response.Error(c, schedule.ErrForbiddenGuest)
		return
	}

	date, err := time.Parse(dateLayout, body.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}

	req := schedule.CommitRequest{
		LabNickname: body.LabNickname,
		Date:        date,
		Times:       body.Times,
		UserID:      caller.ID,
		UserName:    h.callerName(c, caller.ID),
		CanWrite:    caller.CanWrite,
		CourseCode:  body.CourseCode,
		Annotation:  body.Annotation,
		RepeatType:  schedule.RepeatType(body.RepeatType),
	}

	result, err := h.service.Commit(c.Request.Context(), req)
	if err != nil {
		var conflict *schedule.ConflictError
		if errors.As(err, &conflict) {
			c.JSON(http.StatusConflict, ConflictResponse{
				Error:     conflict.Error(),
				Conflicts: conflict.Conflicts,
			})
			return
		}
		response.Error(c, err)
		return
	}

	resp := CommitResponse{
		Confirmed: make([]ScheduleResponse, len(result.Confirmed)),
		Skipped:   make([]SkippedResponse, len(result.Skipped)),
	}
	for i, r := range result.Confirmed {
		resp.Confirmed[i] = NewScheduleResponse(r, false)
	}
	for i, s := range result.Skipped {
		resp.Skipped[i] = SkippedResponse{
			Date:      s.Date.Format(dateLayout),
			Conflicts: s.Conflicts,
		}
	}

	c.JSON(http.StatusCreated, resp)
}

// Update handles the single allowed transition: cancelling a reservation.
func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateScheduleRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	caller := auth.CallerFrom(c)
	err := h.service.Cancel(c.Request.Context(), id, caller.ID, h.isAdmin(c, caller.ID))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
