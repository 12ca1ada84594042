package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	tok, err := Generate("secret", "admin", "stock-ledger", 5)
	require.NoError(t, err)

	username, err := Parse("secret", tok)
	require.NoError(t, err)
	assert.Equal(t, "admin", username)
}

func TestParse_Rejects(t *testing.T) {
	expired, err := Generate("secret", "admin", "stock-ledger", -1)
	require.NoError(t, err)
	_, err = Parse("secret", expired)
	assert.Error(t, err, "token expirado")

	valid, err := Generate("secret", "admin", "stock-ledger", 5)
	require.NoError(t, err)
	_, err = Parse("otro", valid)
	assert.Error(t, err, "firma con otro secret")

	_, err = Generate("secret", "", "stock-ledger", 5)
	assert.Error(t, err, "subject vacío")
}
