package service

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/evaluaasi/support-gateway/internal/domain"
)

// NormalizeCampus maps a loosely shaped backend campus record to domain.Campus.
// Missing or malformed fields become nil; it never panics. Normalizing the JSON
// form of its own output yields the same campus.
func NormalizeCampus(record map[string]any) domain.Campus {
	if record == nil {
		return domain.Campus{}
	}

	nested, _ := record["partner"].(map[string]any)

	c := domain.Campus{
		ID:               int64Field(record, "id"),
		Name:             stringField(record, "name"),
		PartnerID:        int64Field(record, "partner_id"),
		PartnerName:      stringField(record, "partner_name"),
		StateName:        firstString(record, "state_name", "state"),
		City:             stringField(record, "city"),
		Country:          stringField(record, "country"),
		Address:          stringField(record, "address"),
		ActivationStatus: stringField(record, "activation_status"),
	}

	if c.PartnerID == nil && nested != nil {
		c.PartnerID = int64Field(nested, "id")
	}
	if c.PartnerName == nil && nested != nil {
		c.PartnerName = stringField(nested, "name")
	}

	if active, ok := asBool(record["is_active"]); ok {
		c.IsActive = active
	} else if c.ActivationStatus != nil {
		c.IsActive = strings.EqualFold(*c.ActivationStatus, "active")
	}

	c.Location = stringField(record, "location")
	if c.Location == nil {
		c.Location = deriveLocation(c.City, c.StateName, c.Country)
	}
	return c
}

// NormalizeCampuses normalizes a batch, skipping nothing.
func NormalizeCampuses(records []map[string]any) []domain.Campus {
	out := make([]domain.Campus, 0, len(records))
	for _, r := range records {
		out = append(out, NormalizeCampus(r))
	}
	return out
}

func deriveLocation(parts ...*string) *string {
	var kept []string
	for _, p := range parts {
		if p != nil && *p != "" {
			kept = append(kept, *p)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	loc := strings.Join(kept, ", ")
	return &loc
}

func stringField(record map[string]any, key string) *string {
	s, ok := record[key].(string)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func firstString(record map[string]any, keys ...string) *string {
	for _, k := range keys {
		if s := stringField(record, k); s != nil {
			return s
		}
	}
	return nil
}

func int64Field(record map[string]any, key string) *int64 {
	n, ok := asInt64(record[key])
	if !ok {
		return nil
	}
	return &n
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) || n != math.Trunc(n) {
			return 0, false
		}
		return int64(n), true
	case float32:
		return asInt64(float64(n))
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		return i, err == nil
	default:
		return 0, false
	}
}

func asBool(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		return parsed, err == nil
	case nil:
		return false, false
	default:
		if n, ok := asInt64(v); ok {
			return n != 0, true
		}
		return false, false
	}
}
