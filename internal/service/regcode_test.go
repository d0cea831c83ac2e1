package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatRegistrationCode(t *testing.T) {
	ts := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	code := formatRegistrationCode("EVT-MAIN", ts, 7)
	assert.Equal(t, "EVT-MAIN-260314-0007", code)

	code = formatRegistrationCode("EVT-PRE1", ts, 9999)
	assert.Equal(t, "EVT-PRE1-260314-9999", code)
}

func TestNewRegistrationCode_Shape(t *testing.T) {
	code := newRegistrationCode("EVT-PRE2")

	parts := strings.Split(code, "-")
	assert.Len(t, parts, 4)
	assert.Equal(t, "EVT", parts[0])
	assert.Equal(t, "PRE2", parts[1])
	assert.Len(t, parts[2], 6, "date segment should be YYMMDD")
	assert.Len(t, parts[3], 4, "random segment should be zero-padded to 4 digits")
}
