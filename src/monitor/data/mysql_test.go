package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnsureParam(t *testing.T) {
	assert.Equal(t, "user:pw@tcp(db)/app?parseTime=true",
		ensureParam("user:pw@tcp(db)/app", "parseTime", "true"))
	assert.Equal(t, "user:pw@tcp(db)/app?charset=utf8mb4&parseTime=true",
		ensureParam("user:pw@tcp(db)/app?charset=utf8mb4", "parseTime", "true"))
	// Already present: untouched.
	assert.Equal(t, "user:pw@tcp(db)/app?parseTime=false",
		ensureParam("user:pw@tcp(db)/app?parseTime=false", "parseTime", "true"))
}

func TestEvidenceKey(t *testing.T) {
	assert.Equal(t, "evidence:7:m1", evidenceKey(7, "m1"))
}
