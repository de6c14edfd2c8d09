package http

import (
	"time"

	"github.com/lumusproject/lumus-backend/internal/schedule"
)

const dateLayout = "2006-01-02"

// ListSchedulesRequest defines query parameters for listing reservations.
type ListSchedulesRequest struct {
	Page        int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize    int    `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
	LabNickname string `form:"lab_nickname"`
	CourseCode  string `form:"course_code"`
	UserID      string `form:"user_id" binding:"omitempty,uuid"`
	Status      string `form:"status" binding:"omitempty,oneof=pending confirmed cancelled"`
	StartDate   string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate     string `form:"end_date" binding:"omitempty,datetime=2006-01-02"`
	SortBy      string `form:"sort_by" binding:"omitempty,oneof=date created_at status"`
	SortOrder   string `form:"sort_order" binding:"omitempty,oneof=asc desc ASC DESC"`
}

// CreateScheduleRequest is the commit payload: one lab, one date, a set of
// grid time labels, and an optional recurrence.
type CreateScheduleRequest struct {
	LabNickname string   `json:"lab_nickname" binding:"required"`
	Date        string   `json:"date" binding:"required,datetime=2006-01-02"`
	Times       []string `json:"times" binding:"required,min=1"`
	CourseCode  string   `json:"course_code"`
	Annotation  string   `json:"annotation"`
	RepeatType  string   `json:"repeat_type" binding:"omitempty,oneof=none daily weekly monthly"`
}

// UpdateScheduleRequest supports the only in-place mutation this core allows:
// cancelling a reservation.
type UpdateScheduleRequest struct {
	Status string `json:"status" binding:"required,oneof=cancelled"`
}

type UserTag struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

type ScheduleResponse struct {
	ID          string    `json:"id"`
	LabNickname string    `json:"lab_nickname"`
	Date        string    `json:"date"`
	Times       []string  `json:"times"`
	User        UserTag   `json:"user"`
	CourseCode  string    `json:"course_code"`
	Annotation  string    `json:"annotation,omitempty"`
	RepeatType  string    `json:"repeat_type"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewScheduleResponse renders a reservation. Guests see who a slot is booked
// for only in outline: requester id and annotation are redacted.
func NewScheduleResponse(r *schedule.Reservation, redact bool) ScheduleResponse {
	resp := ScheduleResponse{
		ID:          r.ID,
		LabNickname: r.LabNickname,
		Date:        r.Date.Format(dateLayout),
		Times:       r.Times,
		User:        UserTag{ID: r.UserID, Name: r.UserName},
		CourseCode:  r.CourseCode,
		Annotation:  r.Annotation,
		RepeatType:  string(r.RepeatType),
		Status:      string(r.Status),
		CreatedAt:   r.CreatedAt,
	}
	if redact {
		resp.User.ID = ""
		resp.Annotation = ""
	}
	return resp
}

type SkippedResponse struct {
	Date      string   `json:"date"`
	Conflicts []string `json:"conflicts"`
}

type CommitResponse struct {
	Confirmed []ScheduleResponse `json:"confirmed"`
	Skipped   []SkippedResponse  `json:"skipped"`
}

type SlotResponse struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
	BookedBy  string `json:"booked_by,omitempty"`
	Course    string `json:"course,omitempty"`
}

type AvailabilityResponse struct {
	LabNickname string         `json:"lab_nickname"`
	Date        string         `json:"date"`
	Slots       []SlotResponse `json:"slots"`
}

type ConflictResponse struct {
	Error     string   `json:"error"`
	Conflicts []string `json:"conflicts"`
}
