package notifier

// ContactMessage сообщение из формы обратной связи
type ContactMessage struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

// Config адресаты и параметры уведомлений
type Config struct {
	SiteName   string
	AdminEmail string
	AdminPhone string
}
