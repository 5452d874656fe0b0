package domain

import "time"

// Redirect maps an old site path to a new location
type Redirect struct {
	ID         int64
	FromPath   string
	ToPath     string
	StatusCode int // 301 or 302
	IsActive   bool
	Hits       int64
	LastHitAt  *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsPermanent returns true for 301 redirects
func (r *Redirect) IsPermanent() bool {
	return r.StatusCode == 301
}
