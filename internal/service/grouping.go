package service

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/evaluaasi/support-gateway/internal/domain"
)

// stateKey is the trimmed state name, or the no-state sentinel.
func stateKey(c domain.Campus) string {
	if c.StateName == nil {
		return domain.NoStateLabel
	}
	if s := strings.TrimSpace(*c.StateName); s != "" {
		return s
	}
	return domain.NoStateLabel
}

// GroupCampusesByState partitions campuses by state. Groups are ordered with
// Spanish collation; campuses keep their input order within a group.
func GroupCampusesByState(campuses []domain.Campus) []domain.CampusStateGroup {
	index := make(map[string]int)
	groups := make([]domain.CampusStateGroup, 0)
	for _, c := range campuses {
		key := stateKey(c)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, domain.CampusStateGroup{StateName: key, Campuses: []domain.Campus{}})
		}
		groups[i].Campuses = append(groups[i].Campuses, c)
		groups[i].Total++
	}
	sortStateGroups(groups)
	return groups
}

func sortStateGroups(groups []domain.CampusStateGroup) {
	col := collate.New(language.Spanish)
	sort.SliceStable(groups, func(i, j int) bool {
		a, b := groups[i].StateName, groups[j].StateName
		if cmp := col.CompareString(a, b); cmp != 0 {
			return cmp < 0
		}
		return a < b
	})
}
