package models

// ContactForm is the payload of the contact page.
type ContactForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}

// ContactResult is the backend acknowledgement of a submission.
type ContactResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
