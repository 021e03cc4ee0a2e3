package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAbsoluteUrl(t *testing.T) {
	assert.NoError(t, IsAbsoluteUrl("https://teamcity.example.com"))
	assert.NoError(t, IsAbsoluteUrl(" http://localhost:8111/ "))
	assert.Error(t, IsAbsoluteUrl("teamcity.example.com"))
	assert.Error(t, IsAbsoluteUrl("ftp://teamcity.example.com"))
	assert.Error(t, IsAbsoluteUrl(42))
}

func TestIsPropertyAssignment(t *testing.T) {
	assert.NoError(t, IsPropertyAssignment("env.TARGET=prod"))
	assert.NoError(t, IsPropertyAssignment("env.EMPTY="))
	assert.EqualError(t, IsPropertyAssignment("env.TARGET"), "'env.TARGET' must be in the form name=value")
	assert.Error(t, IsPropertyAssignment("=prod"))
}

func TestIsPositiveDuration(t *testing.T) {
	assert.NoError(t, IsPositiveDuration("3s"))
	assert.NoError(t, IsPositiveDuration("1m30s"))
	assert.Error(t, IsPositiveDuration("0s"))
	assert.Error(t, IsPositiveDuration("soon"))
}

func TestForConfigKey(t *testing.T) {
	assert.Nil(t, ForConfigKey("DefaultBranch"))
	assert.Error(t, ForConfigKey("server")("not a url"))
	assert.Error(t, ForConfigKey("NoPrompt")("maybe"))
	assert.NoError(t, ForConfigKey("noprompt")("true"))
	assert.NoError(t, ForConfigKey("OutputFormat")("JSON"))
	assert.EqualError(t, ForConfigKey("OutputFormat")("xml"), "'xml' must be one of table, json, basic")
}
