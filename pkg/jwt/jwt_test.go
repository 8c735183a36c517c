package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	token, err := Generate("secret", "user-1", "Ana Bodega", "stock-engine", 5)
	require.NoError(t, err)

	claims, err := Parse("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "Ana Bodega", claims.Name)
	assert.Equal(t, "stock-engine", claims.Issuer)
}

func TestParse_Rejects(t *testing.T) {
	token, err := Generate("secret", "user-1", "Ana", "stock-engine", 5)
	require.NoError(t, err)

	_, err = Parse("otro-secret", token)
	assert.Error(t, err, "firma incorrecta")

	expired, err := Generate("secret", "user-1", "Ana", "stock-engine", -1)
	require.NoError(t, err)
	_, err = Parse("secret", expired)
	assert.Error(t, err, "token expirado")

	_, err = Parse("secret", "no-es-un-token")
	assert.Error(t, err)

	_, err = Parse("", token)
	assert.Error(t, err)
}

func TestGenerate_EmptySecret(t *testing.T) {
	_, err := Generate("", "user-1", "Ana", "stock-engine", 5)
	assert.Error(t, err)
}
