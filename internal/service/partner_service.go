package service

import (
	"context"
	"net/url"

	"go.uber.org/zap"

	"github.com/evaluaasi/support-gateway/internal/backend"
	"github.com/evaluaasi/support-gateway/internal/domain"
	"github.com/evaluaasi/support-gateway/internal/fetch"
)

type partnerListResponse struct {
	Partners []map[string]any `json:"partners"`
}

// ListPartners returns partner reference data. The support endpoint is
// preferred; without it the generic partner listing (inactive included, one
// large page) is projected to id and name.
func (s *SupportService) ListPartners(ctx context.Context) ([]domain.PartnerOption, error) {
	if s.opts.Preview {
		s.recordSource("partners", sourcePreview)
		out := make([]domain.PartnerOption, len(s.fixtures.Partners))
		copy(out, s.fixtures.Partners)
		return out, nil
	}

	partners, attempt, err := fetch.WithFallback(ctx,
		func(ctx context.Context) ([]domain.PartnerOption, error) {
			return s.partnersFrom(ctx, "/support/partners", nil)
		},
		func(ctx context.Context) ([]domain.PartnerOption, error) {
			q := url.Values{}
			q.Set("active_only", "false")
			q.Set("per_page", "300")
			return s.partnersFrom(ctx, "/partners", q)
		},
		backend.IsNotFound,
	)
	if err != nil {
		return nil, err
	}
	if attempt == fetch.Fallback {
		s.logger.Warn("partner listing served from generic partner endpoint", zap.Int("partners", len(partners)))
	}
	s.recordSource("partners", liveSource(attempt))
	return partners, nil
}

func (s *SupportService) partnersFrom(ctx context.Context, path string, query url.Values) ([]domain.PartnerOption, error) {
	var resp partnerListResponse
	if err := s.api.Get(ctx, path, query, &resp); err != nil {
		return nil, err
	}
	return projectPartners(resp.Partners), nil
}

// projectPartners keeps id and name; records without a usable id are dropped.
func projectPartners(records []map[string]any) []domain.PartnerOption {
	out := make([]domain.PartnerOption, 0, len(records))
	for _, r := range records {
		id, ok := asInt64(r["id"])
		if !ok {
			continue
		}
		opt := domain.PartnerOption{ID: id}
		if name := stringField(r, "name"); name != nil {
			opt.Name = *name
		}
		out = append(out, opt)
	}
	return out
}
