// model/facility.go
package model

import (
	"sort"
	"strings"
	"time"
)

// FacilityDirectory maps a facility id, in the casing the server returns, to
// its ordered list of tool ids.
type FacilityDirectory map[string][]string

// Canonical returns the directory's casing for id. Exact matches win over
// case-insensitive ones.
func (d FacilityDirectory) Canonical(id string) (string, bool) {
	if id == "" {
		return "", false
	}
	if _, ok := d[id]; ok {
		return id, true
	}
	for _, facility := range d.Facilities() {
		if strings.EqualFold(facility, id) {
			return facility, true
		}
	}
	return "", false
}

// Tools returns the tools mapped to facility. The facility must be in canonical form.
func (d FacilityDirectory) Tools(facility string) ([]string, bool) {
	tools, ok := d[facility]
	return tools, ok
}

// Facilities returns the facility ids sorted.
func (d FacilityDirectory) Facilities() []string {
	facilities := make([]string, 0, len(d))
	for facility := range d {
		facilities = append(facilities, facility)
	}
	sort.Strings(facilities)
	return facilities
}

// Clone returns a deep copy of the directory.
func (d FacilityDirectory) Clone() FacilityDirectory {
	if d == nil {
		return nil
	}
	out := make(FacilityDirectory, len(d))
	for facility, tools := range d {
		out[facility] = append([]string(nil), tools...)
	}
	return out
}

// DirectorySnapshot is a point-in-time view of the facility directory loader.
type DirectorySnapshot struct {
	Directory FacilityDirectory `json:"directory"`
	Loading   bool              `json:"loading"`
	Loaded    bool              `json:"loaded"`
	LoadedAt  time.Time         `json:"loaded_at,omitempty"`
}

// Fallback is used when the directory is empty or has not arrived yet.
type Fallback struct {
	Facilities []string `json:"facilities"`
	Tools      []string `json:"tools"`
}

// Directory maps every fallback facility to the default tool set.
func (f Fallback) Directory() FacilityDirectory {
	dir := make(FacilityDirectory, len(f.Facilities))
	for _, facility := range f.Facilities {
		dir[facility] = append([]string(nil), f.Tools...)
	}
	return dir
}

// Effective returns the directory selection is validated against and whether
// the fallback list had to be used.
func Effective(snapshot DirectorySnapshot, fallback Fallback) (FacilityDirectory, bool) {
	if len(snapshot.Directory) > 0 {
		return snapshot.Directory, false
	}
	return fallback.Directory(), true
}

// ToolsFor returns the tools of facility, or defaults when the facility is
// unmapped or maps to nothing.
func ToolsFor(dir FacilityDirectory, facility string, defaults []string) []string {
	if tools, ok := dir[facility]; ok && len(tools) > 0 {
		return tools
	}
	return defaults
}

// MatchTool finds id in tools ignoring case and returns the stored casing.
func MatchTool(tools []string, id string) (string, bool) {
	if id == "" {
		return "", false
	}
	for _, tool := range tools {
		if tool == id {
			return tool, true
		}
	}
	for _, tool := range tools {
		if strings.EqualFold(tool, id) {
			return tool, true
		}
	}
	return "", false
}
