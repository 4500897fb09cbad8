package dto

// ── limits ──

// LimitRequest bounds list endpoints that return the most recent rows.
type LimitRequest struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// GetLimit returns the limit or the default of 20.
func (l *LimitRequest) GetLimit() int {
	if l.Limit <= 0 {
		return 20
	}
	return l.Limit
}
