package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lumusproject/lumus-backend/internal/calendar"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// Month returns the day grid for a month, with past days marked unselectable.
func (h *Handler) Month(c *gin.Context) {
	var req MonthRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year or month", "details": err.Error()})
		return
	}

	m := calendar.Month{Year: req.Year, Month: time.Month(req.Month)}
	now := time.Now().UTC()

	cells := calendar.DayCells(m)
	days := make([]DayCellResponse, len(cells))
	for i, day := range cells {
		cell := DayCellResponse{Day: day}
		if day > 0 {
			date := calendar.Date(m, day)
			cell.Date = date.Format("2006-01-02")
			cell.Selectable = calendar.IsSelectable(date, now)
		}
		days[i] = cell
	}

	c.JSON(http.StatusOK, MonthResponse{
		Year:  req.Year,
		Month: req.Month,
		Days:  days,
	})
}
