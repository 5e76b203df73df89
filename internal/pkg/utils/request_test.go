package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppendQueryParam(t *testing.T) {
	assert.Equal(t, "https://clinic.example/cb?token=abc", AppendQueryParam("https://clinic.example/cb", "token", "abc"))
	assert.Equal(t, "https://clinic.example/cb?a=1&token=abc", AppendQueryParam("https://clinic.example/cb?a=1", "token", "abc"))
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc.def", BearerToken("Bearer abc.def"))
	assert.Equal(t, "abc.def", BearerToken("bearer abc.def"))
	assert.Equal(t, "", BearerToken("Basic abc"))
	assert.Equal(t, "", BearerToken(""))
}
