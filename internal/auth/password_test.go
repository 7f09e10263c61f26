package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCompareSecret(t *testing.T) {
	hash, err := HashSecret("JD123", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "JD123", hash)

	assert.NoError(t, CompareSecret(hash, "JD123"))
	assert.Error(t, CompareSecret(hash, "jd123"))
	assert.Error(t, CompareSecret(hash, "JD123 "))
	assert.Error(t, CompareSecret(hash, ""))
}

func TestHashSecret_DistinctSalts(t *testing.T) {
	first, err := HashSecret("same", bcrypt.MinCost)
	require.NoError(t, err)
	second, err := HashSecret("same", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
