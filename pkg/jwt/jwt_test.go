package jwt_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/CellStock-api/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

var testIdentity = pkgjwt.Identity{
	UserID:  "00000000-0000-0000-0000-000000000001",
	StoreID: "00000000-0000-0000-0000-000000000002",
	Role:    "store_admin",
	Email:   "admin@loja.com",
}

func TestGenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testIdentity, "cellstock-test", 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	got, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, testIdentity, got)
}

func TestParse_Expirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testIdentity, "cellstock-test", -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	require.Error(t, err)
	assert.True(t, errors.Is(err, pkgjwt.ErrExpired))
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testIdentity, "cellstock-test", 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	require.Error(t, err)
	assert.False(t, errors.Is(err, pkgjwt.ErrExpired))
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", testIdentity, "cellstock-test", 60)
	assert.Error(t, err)
}
