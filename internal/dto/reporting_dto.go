package dto

// ValuationParams selects the valuation day.
type ValuationParams struct {
	Date string `form:"date" binding:"omitempty,datetime=2006-01-02"`
}
