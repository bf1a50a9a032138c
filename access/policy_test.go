package access_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dev-mohitbeniwal/fabdash/access"
)

var (
	prefixes  = []string{"x"}
	protected = []string{"/equipment-status", "/device-statistics"}
	devHosts  = []string{"localhost", "127.0.0.1"}
)

func TestCookiePolicy_HasAccess(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		mode       string
		listenHost string
		creds      access.Credentials
		granted    bool
		subject    string
	}{
		{"EnforceRegularUser", access.ModeEnforce, "", access.Credentials{LastUser: "a12345"}, true, "a12345"},
		{"EnforceRestrictedLower", access.ModeEnforce, "", access.Credentials{LastUser: "x12345"}, false, "x12345"},
		{"EnforceRestrictedUpper", access.ModeEnforce, "", access.Credentials{LastUser: "X12345"}, false, "X12345"},
		{"EnforceNoCookie", access.ModeEnforce, "", access.Credentials{}, true, ""},
		{"EnforceOnDevListenHost", access.ModeEnforce, "127.0.0.1", access.Credentials{LastUser: "x1"}, false, "x1"},
		{"Bypass", access.ModeBypass, "dash.fab.local", access.Credentials{LastUser: "x1"}, true, access.DevSubject},
		{"AutoDevListenHost", access.ModeAuto, "127.0.0.1:8080", access.Credentials{LastUser: "x1"}, true, access.DevSubject},
		{"AutoDevListenHostNoPort", access.ModeAuto, "LOCALHOST", access.Credentials{LastUser: "x1"}, true, access.DevSubject},
		{"AutoAllInterfaces", access.ModeAuto, "", access.Credentials{LastUser: "x1"}, false, "x1"},
		{"AutoProductionHost", access.ModeAuto, "dash.fab.local", access.Credentials{LastUser: "x1"}, false, "x1"},
		{"UnknownModeEnforces", "sometimes", "localhost", access.Credentials{LastUser: "x1"}, false, "x1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy := access.NewCookiePolicy(tt.mode, prefixes, protected, devHosts, tt.listenHost)
			decision := policy.HasAccess(ctx, tt.creds)
			assert.Equal(t, tt.granted, decision.Granted)
			assert.Equal(t, tt.subject, decision.Subject)
			assert.Equal(t, tt.subject == access.DevSubject, policy.Bypassed())
		})
	}
}

func TestCookiePolicy_IsProtected(t *testing.T) {
	policy := access.NewCookiePolicy(access.ModeEnforce, prefixes, protected, devHosts, "")

	assert.True(t, policy.IsProtected("/R3/equipment-status"))
	assert.True(t, policy.IsProtected("/equipment-status"))
	assert.True(t, policy.IsProtected("/M16/equipment-status/storage"))
	assert.True(t, policy.IsProtected("/M16/device-statistics"))
	assert.False(t, policy.IsProtected("/R3/recipe-search"))
	assert.False(t, policy.IsProtected("/"))
	assert.False(t, policy.IsProtected("/about"))
}
