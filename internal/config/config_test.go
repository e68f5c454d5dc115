package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSMSEnabled(t *testing.T) {
	full := Config{
		TwilioAccountSID: "AC123",
		TwilioAuthToken:  "tok",
		TwilioFromNumber: "+15550001111",
	}
	assert.True(t, full.SMSEnabled())

	var empty Config
	assert.False(t, empty.SMSEnabled())

	partial := full
	partial.TwilioFromNumber = ""
	assert.False(t, partial.SMSEnabled())
}
