package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchPath(t *testing.T) {
	tests := []struct {
		path     string
		ok       bool
		route    string
		facility string
	}{
		{"/", true, "main", ""},
		{"", true, "main", ""},
		{"/about", true, "about", ""},
		{"/R3", true, "fab-main", "R3"},
		{"/r3/", true, "fab-main", "r3"},
		{"/r3/equipment-status", true, "equipment-status", "r3"},
		{"/M16/equipment-status/current-status", true, "equipment-current-status", "M16"},
		{"/M16/equipment-status/not_available", true, "equipment-not-available", "M16"},
		{"/M16/equipment-status/storage?sort=asc", true, "equipment-storage", "M16"},
		{"/M10/recipe-search/measurement-history", true, "recipe-measurement-history", "M10"},
		{"/M10/hardware-management", true, "hardware-management", "M10"},
		{"/equipment-status", true, "equipment-status", ""},
		{"/recipe-search/open", true, "recipe-open", ""},
		{"/R3/nope", false, "", ""},
		{"/R3/recipe-search/open/extra", false, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			m, ok := MatchPath(tt.path)
			assert.Equal(t, tt.ok, ok)
			if !tt.ok {
				return
			}
			assert.Equal(t, tt.route, m.Route.Name)
			assert.Equal(t, tt.facility, m.Facility)
		})
	}
}

func TestRedirectLocation(t *testing.T) {
	assert.Equal(t, "/?needsFab=true", RedirectLocation(ReasonNeedsFacility, ""))
	assert.Equal(t, "/?invalidFab=Z+9%2F", RedirectLocation(ReasonInvalidFacility, "Z 9/"))
	assert.Equal(t, "/?accessDenied=true&reason=insufficient_permissions", RedirectLocation(ReasonAccessDenied, ""))
	assert.Equal(t, "/", RedirectLocation("other", ""))
}

func TestRoutes(t *testing.T) {
	routes := Routes()
	assert.Len(t, routes, 15)
	assert.Equal(t, "main", routes[0].Name)
	assert.False(t, routes[0].RequiresFacility)
}
