package api

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsJSONRequest(t *testing.T) {
	r := httptest.NewRequest("POST", "/paket/by-tahun", nil)

	r.Header.Set("Content-Type", "application/json")
	assert.True(t, IsJSONRequest(r))

	r.Header.Set("Content-Type", "application/json; charset=utf-8")
	assert.True(t, IsJSONRequest(r))

	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	assert.False(t, IsJSONRequest(r))

	r.Header.Del("Content-Type")
	assert.False(t, IsJSONRequest(r))
}
