package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"

	"github.com/evaluaasi/support-gateway/internal/backend"
	"github.com/evaluaasi/support-gateway/internal/domain"
	"github.com/evaluaasi/support-gateway/internal/events"
	"github.com/evaluaasi/support-gateway/internal/fetch"
	apperrors "github.com/evaluaasi/support-gateway/pkg/util/errorutil"
)

type campusListResponse struct {
	Message  string              `json:"message"`
	Campuses []map[string]any    `json:"campuses"`
	States   []stateGroupPayload `json:"states"`
}

type stateGroupPayload struct {
	StateName *string          `json:"state_name"`
	Total     int              `json:"total"`
	Campuses  []map[string]any `json:"campuses"`
}

type partnerCampusesResponse struct {
	Campuses []map[string]any `json:"campuses"`
}

type campusCreateResponse struct {
	Message string         `json:"message"`
	Campus  map[string]any `json:"campus"`
}

// ListCampuses returns every campus matching the filter. Live calls try the
// support endpoint first; if the backend does not have it (404) campuses are
// collected partner by partner, tolerating individual partner failures.
func (s *SupportService) ListCampuses(ctx context.Context, filter domain.CampusFilter) (*domain.CampusListing, error) {
	if s.opts.Preview {
		listing := s.previewCampuses(filter)
		s.recordSource("campuses", string(listing.Source))
		return listing, nil
	}

	listing, attempt, err := fetch.WithFallback(ctx,
		func(ctx context.Context) (*domain.CampusListing, error) { return s.campusesFromSupport(ctx, filter) },
		func(ctx context.Context) (*domain.CampusListing, error) { return s.campusesFromPartners(ctx, filter) },
		backend.IsNotFound,
	)
	if err != nil {
		return nil, err
	}
	if attempt == fetch.Fallback {
		s.logger.Warn("campus listing served from partner fallback",
			zap.Int("campuses", listing.Total), zap.String("state", filter.State))
	}
	s.recordSource("campuses", string(listing.Source))
	return listing, nil
}

func campusQuery(filter domain.CampusFilter) url.Values {
	q := url.Values{}
	if state := strings.TrimSpace(filter.State); state != "" {
		q.Set("state", state)
	}
	if v := filter.Active.QueryValue(); v != "" {
		q.Set("active_only", v)
	}
	return q
}

func (s *SupportService) campusesFromSupport(ctx context.Context, filter domain.CampusFilter) (*domain.CampusListing, error) {
	var resp campusListResponse
	if err := s.api.Get(ctx, "/support/campuses", campusQuery(filter), &resp); err != nil {
		return nil, err
	}
	campuses := NormalizeCampuses(resp.Campuses)
	states := normalizeStateGroups(resp.States)
	if len(states) == 0 {
		states = GroupCampusesByState(campuses)
	}
	return &domain.CampusListing{
		Message:  messageOr(resp.Message, "campuses loaded"),
		Source:   domain.SourceCampuses,
		Total:    len(campuses),
		Campuses: campuses,
		States:   states,
	}, nil
}

func (s *SupportService) campusesFromPartners(ctx context.Context, filter domain.CampusFilter) (*domain.CampusListing, error) {
	partners, err := s.ListPartners(ctx)
	if err != nil {
		return nil, err
	}

	query := campusQuery(filter)
	outcomes := fetch.SettleAll(ctx, partners, s.opts.FanOutLimit,
		func(ctx context.Context, p domain.PartnerOption) ([]domain.Campus, error) {
			var resp partnerCampusesResponse
			path := "/partners/" + strconv.FormatInt(p.ID, 10) + "/campuses"
			if err := s.api.Get(ctx, path, query, &resp); err != nil {
				return nil, err
			}
			campuses := NormalizeCampuses(resp.Campuses)
			for i := range campuses {
				attachPartner(&campuses[i], p)
			}
			return campuses, nil
		})

	// A cancelled request fails every partner at once; that is not a partial result.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ok, failed := fetch.Partition(outcomes)
	if len(failed) > 0 {
		var merr *multierror.Error
		for _, f := range failed {
			merr = multierror.Append(merr, fmt.Errorf("partner %d: %w", f.Input.ID, f.Err))
		}
		s.logger.Warn("some partner campus fetches failed",
			zap.Int("failed", len(failed)), zap.Int("partners", len(partners)), zap.Error(merr))
		if s.metrics != nil {
			s.metrics.RecordFanOutFailures(len(failed))
		}
		if len(ok) == 0 {
			return nil, fmt.Errorf("no partner campuses could be loaded: %w", merr.ErrorOrNil())
		}
	}

	campuses := make([]domain.Campus, 0)
	for _, o := range ok {
		for _, c := range o.Value {
			if filter.Active.Matches(c.IsActive) {
				campuses = append(campuses, c)
			}
		}
	}

	return &domain.CampusListing{
		Message:  fmt.Sprintf("campuses loaded from %d of %d partners", len(ok), len(partners)),
		Source:   domain.SourcePartners,
		Total:    len(campuses),
		Campuses: campuses,
		States:   GroupCampusesByState(campuses),
	}, nil
}

// attachPartner fills the denormalized partner reference the per-partner
// endpoint usually omits.
func attachPartner(c *domain.Campus, p domain.PartnerOption) {
	if c.PartnerID == nil {
		id := p.ID
		c.PartnerID = &id
	}
	if c.PartnerName == nil && p.Name != "" {
		name := p.Name
		c.PartnerName = &name
	}
}

func normalizeStateGroups(payload []stateGroupPayload) []domain.CampusStateGroup {
	if len(payload) == 0 {
		return nil
	}
	groups := make([]domain.CampusStateGroup, 0, len(payload))
	for _, g := range payload {
		name := domain.NoStateLabel
		if g.StateName != nil && strings.TrimSpace(*g.StateName) != "" {
			name = strings.TrimSpace(*g.StateName)
		}
		campuses := NormalizeCampuses(g.Campuses)
		total := g.Total
		if total == 0 {
			total = len(campuses)
		}
		groups = append(groups, domain.CampusStateGroup{StateName: name, Total: total, Campuses: campuses})
	}
	sortStateGroups(groups)
	return groups
}

func (s *SupportService) previewCampuses(filter domain.CampusFilter) *domain.CampusListing {
	state := strings.TrimSpace(filter.State)
	campuses := make([]domain.Campus, 0)
	for _, c := range NormalizeCampuses(s.fixtures.Campuses) {
		if state != "" && (c.StateName == nil || !strings.EqualFold(*c.StateName, state)) {
			continue
		}
		if !filter.Active.Matches(c.IsActive) {
			continue
		}
		campuses = append(campuses, c)
	}
	return &domain.CampusListing{
		Message:  "preview data",
		Source:   domain.SourcePreview,
		Total:    len(campuses),
		Campuses: campuses,
		States:   GroupCampusesByState(campuses),
	}
}

// CreateCampus registers a campus. When the support endpoint is absent the
// partner endpoint is used, which requires a director record; a default one
// is synthesized from the campus contact data if the caller gave none.
func (s *SupportService) CreateCampus(ctx context.Context, actor *domain.Principal, input domain.CampusCreateInput) (*domain.Campus, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" || input.PartnerID <= 0 {
		return nil, apperrors.NewValidationError("name and partner_id required", nil)
	}
	if s.opts.Preview {
		return nil, apperrors.NewPreviewReadOnly("create_campus")
	}

	resp, attempt, err := fetch.WithFallback(ctx,
		func(ctx context.Context) (campusCreateResponse, error) {
			var out campusCreateResponse
			err := s.api.Post(ctx, "/support/campuses", input, &out)
			return out, err
		},
		func(ctx context.Context) (campusCreateResponse, error) {
			var out campusCreateResponse
			path := "/partners/" + strconv.FormatInt(input.PartnerID, 10) + "/campuses"
			err := s.api.Post(ctx, path, partnerCampusPayload(input), &out)
			return out, err
		},
		backend.IsNotFound,
	)
	if err != nil {
		return nil, err
	}

	campus := NormalizeCampus(resp.Campus)
	s.publish(ctx, actor, events.EventCampusCreated, idString(campus.ID), events.CampusCreatedPayload{
		PartnerID: input.PartnerID,
		Name:      input.Name,
		Endpoint:  attempt.String(),
	})
	return &campus, nil
}

// partnerCampusPayload is the body the per-partner endpoint expects.
func partnerCampusPayload(input domain.CampusCreateInput) map[string]any {
	director := input.Director
	if director == nil {
		director = &domain.DirectorInput{
			Name:         "Director",
			FirstSurname: input.Name,
			Email:        input.Email,
			Phone:        input.Phone,
		}
	}
	payload := map[string]any{
		"name":       input.Name,
		"state_name": input.StateName,
		"director":   director,
	}
	optional := map[string]string{
		"code":        input.Code,
		"city":        input.City,
		"country":     input.Country,
		"address":     input.Address,
		"postal_code": input.PostalCode,
		"email":       input.Email,
		"phone":       input.Phone,
	}
	for k, v := range optional {
		if v != "" {
			payload[k] = v
		}
	}
	if input.IsActive != nil {
		payload["is_active"] = *input.IsActive
	}
	return payload
}

func idString(id *int64) string {
	if id == nil {
		return ""
	}
	return strconv.FormatInt(*id, 10)
}

func messageOr(msg, fallback string) string {
	if strings.TrimSpace(msg) == "" {
		return fallback
	}
	return msg
}
