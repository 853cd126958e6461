package domain

import "time"

// DirectoryUser is a platform account as seen by support staff.
type DirectoryUser struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	FullName  string     `json:"full_name"`
	Email     *string    `json:"email"`
	CURP      *string    `json:"curp"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"is_active"`
	CreatedAt *time.Time `json:"created_at"`
	LastLogin *time.Time `json:"last_login"`
}

// UserSearch is the directory search query.
type UserSearch struct {
	Search  string
	Role    string
	Page    int
	PerPage int
}

// Default page values applied when the caller leaves them unset.
const (
	DefaultUserPage    = 1
	DefaultUserPerPage = 20
)

// WithDefaults fills the paging fields.
func (s UserSearch) WithDefaults() UserSearch {
	if s.Page <= 0 {
		s.Page = DefaultUserPage
	}
	if s.PerPage <= 0 {
		s.PerPage = DefaultUserPerPage
	}
	return s
}

// UserPage is one page of directory results.
type UserPage struct {
	Users   []DirectoryUser `json:"users"`
	Total   int             `json:"total"`
	Page    int             `json:"page"`
	PerPage int             `json:"per_page"`
	Pages   int             `json:"pages"`
}

// EmailTemplate names a transactional e-mail the backend can send.
type EmailTemplate string

const (
	EmailTemplateNew          EmailTemplate = "nuevo"
	EmailTemplateRegistration EmailTemplate = "registro"
	EmailTemplateResend       EmailTemplate = "reenvio"
	EmailTemplateConfirmation EmailTemplate = "confirmacion"
)

// Valid reports whether the template is one the backend accepts.
func (t EmailTemplate) Valid() bool {
	switch t {
	case EmailTemplateNew, EmailTemplateRegistration, EmailTemplateResend, EmailTemplateConfirmation:
		return true
	}
	return false
}

// SendEmailRequest asks the backend to send a template to a target user.
type SendEmailRequest struct {
	Target   string        `json:"target"`
	Template EmailTemplate `json:"template"`
}

// SendEmailResult is the backend acknowledgement.
type SendEmailResult struct {
	Message string `json:"message"`
	Sent    bool   `json:"sent"`
}
