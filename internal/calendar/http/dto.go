package http

// MonthRequest binds the calendar path parameters.
type MonthRequest struct {
	Year  int `uri:"year" binding:"required,min=1970,max=9999"`
	Month int `uri:"month" binding:"required,min=1,max=12"`
}

// DayCellResponse is a single cell of the month view.
// Day is 0 for leading placeholder cells before the first of the month.
type DayCellResponse struct {
	Day        int    `json:"day"`
	Date       string `json:"date,omitempty"`
	Selectable bool   `json:"selectable"`
}

// MonthResponse is the full month view used to render a booking calendar.
type MonthResponse struct {
	Year  int               `json:"year"`
	Month int               `json:"month"`
	Days  []DayCellResponse `json:"days"`
}
