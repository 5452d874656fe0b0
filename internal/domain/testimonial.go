package domain

import (
	"fmt"
	"time"
)

// TestimonialStatus moderation status
type TestimonialStatus string

const (
	TestimonialStatusPending  TestimonialStatus = "PENDING"
	TestimonialStatusApproved TestimonialStatus = "APPROVED"
	TestimonialStatusRejected TestimonialStatus = "REJECTED"
)

// ParseTestimonialStatus validates a raw status value
func ParseTestimonialStatus(s string) (TestimonialStatus, error) {
	switch TestimonialStatus(s) {
	case TestimonialStatusPending, TestimonialStatusApproved, TestimonialStatusRejected:
		return TestimonialStatus(s), nil
	}
	return "", fmt.Errorf("%w: testimonial status %q", ErrInvalidStatus, s)
}

// Testimonial client review shown on the site after approval
type Testimonial struct {
	ID           int64
	ClientName   string
	ClientEmail  *string
	Text         string
	Rating       int
	ServiceLabel *string
	Status       TestimonialStatus
	DisplayOrder int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
