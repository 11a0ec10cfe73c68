package models

// TableContact stores messages sent through the public contact form.
const TableContact = "contact_data"

// Contact form columns.
const (
	ContactName    = "name"
	ContactEmail   = "email"
	ContactMessage = "message"
)
