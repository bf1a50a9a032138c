package guard

import "strings"

// Route is one entry of the dashboard route table.
type Route struct {
	Name             string `json:"name"`
	View             string `json:"view"`
	RequiresFacility bool   `json:"requires_facility"`
}

// Match is a path resolved against the route table. Facility is the raw
// first path segment, empty when the path carries none.
type Match struct {
	Route    Route
	Facility string
}

var siteRoutes = []Route{
	{Name: "main", View: ""},
	{Name: "about", View: "about"},
}

// facilityRoutes live under /:fac_id/.
var facilityRoutes = []Route{
	{Name: "fab-main", View: "", RequiresFacility: true},
	{Name: "skewvoir", View: "skewvoir", RequiresFacility: true},
	{Name: "equipment-status", View: "equipment-status", RequiresFacility: true},
	{Name: "equipment-current-status", View: "equipment-status/current-status", RequiresFacility: true},
	{Name: "equipment-storage", View: "equipment-status/storage", RequiresFacility: true},
	{Name: "equipment-not-available", View: "equipment-status/not_available", RequiresFacility: true},
	{Name: "recipe-search", View: "recipe-search", RequiresFacility: true},
	{Name: "recipe-open", View: "recipe-search/open", RequiresFacility: true},
	{Name: "recipe-horizontal-check", View: "recipe-search/horizontal-check", RequiresFacility: true},
	{Name: "recipe-measurement-history", View: "recipe-search/measurement-history", RequiresFacility: true},
	{Name: "device-statistics", View: "device-statistics", RequiresFacility: true},
	{Name: "fail-issue", View: "fail-issue", RequiresFacility: true},
	{Name: "hardware-management", View: "hardware-management", RequiresFacility: true},
}

// Routes returns the full route table.
func Routes() []Route {
	out := make([]Route, 0, len(siteRoutes)+len(facilityRoutes))
	out = append(out, siteRoutes...)
	return append(out, facilityRoutes...)
}

// MatchPath resolves path against the route table. A path naming a facility
// view without a facility segment, such as /equipment-status, matches that
// view with an empty facility.
func MatchPath(path string) (Match, bool) {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	trimmed := strings.Trim(path, "/")

	for _, r := range siteRoutes {
		if strings.EqualFold(trimmed, r.View) {
			return Match{Route: r}, true
		}
	}
	for _, r := range facilityRoutes {
		if r.View != "" && strings.EqualFold(trimmed, r.View) {
			return Match{Route: r}, true
		}
	}

	facility, view, _ := strings.Cut(trimmed, "/")
	view = strings.Trim(view, "/")
	for _, r := range facilityRoutes {
		if strings.EqualFold(view, r.View) {
			return Match{Route: r, Facility: facility}, true
		}
	}
	return Match{}, false
}
