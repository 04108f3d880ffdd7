package rules_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/CellStock-api/internal/domain"
	"github.com/jhoicas/CellStock-api/internal/domain/rules"
)

func TestNormalizeDocument(t *testing.T) {
	doc, err := rules.NormalizeDocument("123.456.789-01")
	require.NoError(t, err)
	assert.Equal(t, "12345678901", doc)

	_, err = rules.NormalizeDocument("123")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Contains(t, err.Error(), "cpf")
}

func TestNormalizeContact(t *testing.T) {
	for _, in := range []string{"11987654321", "1198765432", "(11) 98765-4321"} {
		_, err := rules.NormalizeContact(in)
		assert.NoError(t, err, in)
	}

	_, err := rules.NormalizeContact("123")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Contains(t, err.Error(), "whatsapp")

	_, err = rules.NormalizeContact("119876543210")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "12 dígitos no es válido")
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Isaac Imports":       "isaacimports",
		"  Celulares São João": "celularessaojoao",
		"Loja_do-Zé 2":        "lojado-ze2",
	}
	for in, want := range cases {
		got, err := rules.Slugify(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := rules.Slugify("!!!")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestFoldKey(t *testing.T) {
	assert.Equal(t, rules.FoldKey("iPhone 13"), rules.FoldKey("  IPHONE 13 "))
	assert.NotEqual(t, rules.FoldKey("iPhone 13"), rules.FoldKey("iPhone 14"))
}

func TestNormalizePayment(t *testing.T) {
	assert.Equal(t, "pix", rules.NormalizePayment("PIX"))
	assert.Equal(t, "cartao_credito", rules.NormalizePayment(" Cartao_Credito "))
	assert.Equal(t, "dinheiro", rules.NormalizePayment("cheque"))
	assert.Equal(t, "dinheiro", rules.NormalizePayment(""))
}

func TestValidateAsset(t *testing.T) {
	ext, err := rules.ValidateAsset("Logo.PNG", 1024, 0)
	require.NoError(t, err)
	assert.Equal(t, ".png", ext)

	_, err = rules.ValidateAsset("logo.svg", 1024, 0)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = rules.ValidateAsset("logo.webp", rules.MaxAssetBytes+1, 0)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = rules.ValidateAsset("logo.gif", rules.MaxAssetBytes, 0)
	assert.NoError(t, err, "el límite es inclusivo")

	_, err = rules.ValidateAsset("logo.jpg", 0, 0)
	assert.Error(t, err)
}
