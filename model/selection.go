package model

// Selection is the facility and tool a session is working in.
type Selection struct {
	Facility string `json:"facility"`
	Tool     string `json:"tool"`
}

func (s Selection) HasFacility() bool {
	return s.Facility != ""
}

func (s Selection) HasTool() bool {
	return s.Tool != ""
}

func (s Selection) IsEmpty() bool {
	return s.Facility == "" && s.Tool == ""
}

// SelectionChange is published when a session commits a different selection.
type SelectionChange struct {
	SessionID string    `json:"session_id"`
	Previous  Selection `json:"previous"`
	Current   Selection `json:"current"`
}
