package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evaluaasi/support-gateway/internal/domain"
)

func campusIn(id int64, state *string) domain.Campus {
	return domain.Campus{ID: ptr(id), StateName: state}
}

func TestGroupCampusesByState(t *testing.T) {
	input := []domain.Campus{
		campusIn(1, ptr("Zacatecas")),
		campusIn(2, ptr("Jalisco")),
		campusIn(3, nil),
		campusIn(4, ptr(" Jalisco ")),
		campusIn(5, ptr("   ")),
		campusIn(6, ptr("Ávila")),
		campusIn(7, ptr("Baja California")),
	}

	groups := GroupCampusesByState(input)

	names := make([]string, 0, len(groups))
	sum := 0
	for _, g := range groups {
		names = append(names, g.StateName)
		assert.Equal(t, len(g.Campuses), g.Total)
		sum += g.Total
	}
	assert.Equal(t, len(input), sum)
	assert.Equal(t, []string{"Ávila", "Baja California", "Jalisco", domain.NoStateLabel, "Zacatecas"}, names)

	jalisco := groups[2]
	require.Len(t, jalisco.Campuses, 2)
	assert.Equal(t, int64(2), *jalisco.Campuses[0].ID)
	assert.Equal(t, int64(4), *jalisco.Campuses[1].ID)

	noState := groups[3]
	require.Len(t, noState.Campuses, 2)
	assert.Equal(t, int64(3), *noState.Campuses[0].ID)
	assert.Equal(t, int64(5), *noState.Campuses[1].ID)
}

func TestGroupCampusesByStateEmpty(t *testing.T) {
	groups := GroupCampusesByState(nil)
	assert.NotNil(t, groups)
	assert.Empty(t, groups)
}
