package models

// ContactRequest сообщение из формы обратной связи
type ContactRequest struct {
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Phone           *string `json:"phone,omitempty"`
	Subject         *string `json:"subject,omitempty"`
	Message         string  `json:"message"`
	NewsletterOptIn bool    `json:"newsletterOptIn"`
}

// ContactResponse ответ на отправку формы
type ContactResponse struct {
	Sent       bool `json:"sent"`
	Subscribed bool `json:"subscribed"`
}
