package util_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	fab_errors "github.com/dev-mohitbeniwal/fabdash/errors"
	"github.com/dev-mohitbeniwal/fabdash/model"
	"github.com/dev-mohitbeniwal/fabdash/util"
)

func TestValidationUtil_ValidateIdentifier(t *testing.T) {
	v := util.NewValidationUtil()

	assert.NoError(t, v.ValidateIdentifier("facility", "R3"))
	assert.NoError(t, v.ValidateIdentifier("tool", "CD-SEM"))
	assert.ErrorIs(t, v.ValidateIdentifier("facility", " "), fab_errors.ErrInvalidSelection)
	assert.ErrorIs(t, v.ValidateIdentifier("facility", "r3/equipment"), fab_errors.ErrInvalidSelection)
	assert.ErrorIs(t, v.ValidateIdentifier("tool", strings.Repeat("a", 65)), fab_errors.ErrInvalidSelection)
}

func TestValidationUtil_ValidateDirectory(t *testing.T) {
	v := util.NewValidationUtil()

	assert.NoError(t, v.ValidateDirectory(model.FacilityDirectory{"R3": {"CD-SEM"}, "M16": {"HV-SEM"}}))
	assert.NoError(t, v.ValidateDirectory(model.FacilityDirectory{}))
	assert.ErrorIs(t, v.ValidateDirectory(model.FacilityDirectory{"R3": {}, "r3": {}}), fab_errors.ErrInvalidDirectory)
	assert.ErrorIs(t, v.ValidateDirectory(model.FacilityDirectory{"": {"CD-SEM"}}), fab_errors.ErrInvalidDirectory)
	assert.ErrorIs(t, v.ValidateDirectory(model.FacilityDirectory{"R3": {""}}), fab_errors.ErrInvalidDirectory)
}
