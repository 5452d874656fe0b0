package domain

import (
	"fmt"
	"time"
)

// SubscriberSource where the subscription came from
type SubscriberSource string

const (
	SubscriberSourceFooter      SubscriberSource = "footer"
	SubscriberSourceSale        SubscriberSource = "sale"
	SubscriberSourceContactForm SubscriberSource = "contact_form"
	SubscriberSourceManual      SubscriberSource = "manual"
)

var subscriberSourceLabels = map[SubscriberSource]string{
	SubscriberSourceFooter:      "Pie de página",
	SubscriberSourceSale:        "Compra",
	SubscriberSourceContactForm: "Formulario de contacto",
	SubscriberSourceManual:      "Manual",
}

// ParseSubscriberSource validates a raw source value; empty means footer
func ParseSubscriberSource(s string) (SubscriberSource, error) {
	if s == "" {
		return SubscriberSourceFooter, nil
	}
	if _, ok := subscriberSourceLabels[SubscriberSource(s)]; ok {
		return SubscriberSource(s), nil
	}
	return "", fmt.Errorf("%w: subscriber source %q", ErrInvalidStatus, s)
}

// Label human readable source name used in exports
func (s SubscriberSource) Label() string {
	if label, ok := subscriberSourceLabels[s]; ok {
		return label
	}
	return string(s)
}

// Subscriber newsletter subscription. Unsubscribing is soft: IsActive=false
type Subscriber struct {
	ID             int64
	Email          string
	Name           *string
	Source         SubscriberSource
	IsActive       bool
	SubscribedAt   time.Time
	UnsubscribedAt *time.Time
}
