package dto

import "github.com/evaluaasi/support-gateway/internal/domain"

// CreateCampusRequest payload.
type CreateCampusRequest struct {
	PartnerID  int64                 `json:"partner_id"`
	Name       string                `json:"name"`
	Code       string                `json:"code"`
	StateName  string                `json:"state_name"`
	City       string                `json:"city"`
	Country    string                `json:"country"`
	Address    string                `json:"address"`
	PostalCode string                `json:"postal_code"`
	Email      string                `json:"email"`
	Phone      string                `json:"phone"`
	IsActive   *bool                 `json:"is_active"`
	Director   *domain.DirectorInput `json:"director"`
}

// ToInput converts the payload to the service input.
func (r CreateCampusRequest) ToInput() domain.CampusCreateInput {
	return domain.CampusCreateInput{
		PartnerID:  r.PartnerID,
		Name:       r.Name,
		Code:       r.Code,
		StateName:  r.StateName,
		City:       r.City,
		Country:    r.Country,
		Address:    r.Address,
		PostalCode: r.PostalCode,
		Email:      r.Email,
		Phone:      r.Phone,
		IsActive:   r.IsActive,
		Director:   r.Director,
	}
}

// UpdateTicketStatusRequest payload.
type UpdateTicketStatusRequest struct {
	Status string `json:"status"`
}

// CreateNoteRequest payload.
type CreateNoteRequest struct {
	Body string `json:"body"`
}

// SendEmailRequest payload.
type SendEmailRequest struct {
	Target   string `json:"target"`
	Template string `json:"template"`
}

// PartnerListResponse wraps partner options.
type PartnerListResponse struct {
	Partners []domain.PartnerOption `json:"partners"`
	Total    int                    `json:"total"`
}

// NewPartnerListResponse builds the response, never with a null list.
func NewPartnerListResponse(partners []domain.PartnerOption) PartnerListResponse {
	if partners == nil {
		partners = []domain.PartnerOption{}
	}
	return PartnerListResponse{Partners: partners, Total: len(partners)}
}
