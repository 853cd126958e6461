package service

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/evaluaasi/support-gateway/internal/domain"
	"github.com/evaluaasi/support-gateway/internal/events"
	apperrors "github.com/evaluaasi/support-gateway/pkg/util/errorutil"
)

type userPageResponse struct {
	Users   []domain.DirectoryUser `json:"users"`
	Total   int                    `json:"total"`
	Page    int                    `json:"page"`
	PerPage int                    `json:"per_page"`
	Pages   int                    `json:"pages"`
}

// SearchUsers passes a directory search through to the backend.
func (s *SupportService) SearchUsers(ctx context.Context, search domain.UserSearch) (*domain.UserPage, error) {
	search = search.WithDefaults()
	if s.opts.Preview {
		s.recordSource("users", sourcePreview)
		return s.previewUsers(search), nil
	}

	q := url.Values{}
	if v := strings.TrimSpace(search.Search); v != "" {
		q.Set("search", v)
	}
	if v := strings.TrimSpace(search.Role); v != "" {
		q.Set("role", v)
	}
	q.Set("page", strconv.Itoa(search.Page))
	q.Set("per_page", strconv.Itoa(search.PerPage))

	var resp userPageResponse
	if err := s.api.Get(ctx, "/support/users", q, &resp); err != nil {
		return nil, err
	}
	page := &domain.UserPage{
		Users:   resp.Users,
		Total:   resp.Total,
		Page:    resp.Page,
		PerPage: resp.PerPage,
		Pages:   resp.Pages,
	}
	if page.Users == nil {
		page.Users = []domain.DirectoryUser{}
	}
	if page.Page == 0 {
		page.Page = search.Page
	}
	if page.PerPage == 0 {
		page.PerPage = search.PerPage
	}
	if page.Pages == 0 {
		page.Pages = pageCount(page.Total, page.PerPage)
	}
	s.recordSource("users", sourceSupport)
	return page, nil
}

func (s *SupportService) previewUsers(search domain.UserSearch) *domain.UserPage {
	needle := strings.ToLower(strings.TrimSpace(search.Search))
	role := strings.TrimSpace(search.Role)
	matched := make([]domain.DirectoryUser, 0)
	for _, u := range s.fixtures.Users {
		if role != "" && !strings.EqualFold(u.Role, role) {
			continue
		}
		if needle != "" && !userMatches(u, needle) {
			continue
		}
		matched = append(matched, u)
	}

	start := (search.Page - 1) * search.PerPage
	end := start + search.PerPage
	if start > len(matched) {
		start = len(matched)
	}
	if end > len(matched) {
		end = len(matched)
	}
	return &domain.UserPage{
		Users:   matched[start:end],
		Total:   len(matched),
		Page:    search.Page,
		PerPage: search.PerPage,
		Pages:   pageCount(len(matched), search.PerPage),
	}
}

func userMatches(u domain.DirectoryUser, needle string) bool {
	fields := []string{u.Username, u.FullName}
	if u.Email != nil {
		fields = append(fields, *u.Email)
	}
	if u.CURP != nil {
		fields = append(fields, *u.CURP)
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

func pageCount(total, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}

// SendEmail asks the backend to send one of the account e-mail templates.
func (s *SupportService) SendEmail(ctx context.Context, actor *domain.Principal, req domain.SendEmailRequest) (*domain.SendEmailResult, error) {
	req.Target = strings.TrimSpace(req.Target)
	req.Template = domain.EmailTemplate(strings.ToLower(strings.TrimSpace(string(req.Template))))
	if req.Target == "" {
		return nil, apperrors.NewValidationError("target required", nil)
	}
	if !req.Template.Valid() {
		return nil, apperrors.NewValidationError("unknown template", map[string]any{
			"template": req.Template,
			"allowed":  []domain.EmailTemplate{domain.EmailTemplateNew, domain.EmailTemplateRegistration, domain.EmailTemplateResend, domain.EmailTemplateConfirmation},
		})
	}
	if s.opts.Preview {
		return nil, apperrors.NewPreviewReadOnly("send_email")
	}

	var resp domain.SendEmailResult
	if err := s.api.Post(ctx, "/support/users/send-email", req, &resp); err != nil {
		return nil, err
	}
	resp.Sent = true
	s.publish(ctx, actor, events.EventSupportEmailSent, req.Target, events.SupportEmailSentPayload{
		Target:   req.Target,
		Template: req.Template,
	})
	return &resp, nil
}
