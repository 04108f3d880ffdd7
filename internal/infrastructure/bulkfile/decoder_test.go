package bulkfile

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/CellStock-api/internal/domain"
)

func TestDecode_CSV(t *testing.T) {
	data := []byte("\xEF\xBB\xBFNome, Marca \niPhone 15,Apple\n,\nGalaxy S24,Samsung\n")
	rows, err := Decode("modelos.csv", data)
	require.NoError(t, err)
	require.Len(t, rows, 2, "las filas vacías se omiten")
	assert.Equal(t, "iPhone 15", rows[0]["nome"])
	assert.Equal(t, "Apple", rows[0]["marca"])
	assert.Equal(t, "Samsung", rows[1]["marca"])
}

func TestDecode_CSVPuntoYComa(t *testing.T) {
	data := []byte("modelo;cor;preco\niPhone 13;Preto;4.500,00\n")
	rows, err := Decode("produtos.CSV", data)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "4.500,00", rows[0]["preco"])
}

func TestDecode_JSON(t *testing.T) {
	rows, err := Decode("x.json", []byte(`[{"Nome":"Maria","CPF":"123.456.789-01","preco":4500}]`))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Maria", rows[0]["nome"])
	assert.Equal(t, 4500.0, rows[0]["preco"])

	rows, err = Decode("x.json", []byte(`{"data":[{"nome":"A"},{"nome":"B"}]}`))
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	_, err = Decode("x.json", []byte(`{"nome":`))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDecode_Errores(t *testing.T) {
	_, err := Decode("x.pdf", []byte("abc"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = Decode("x.csv", []byte("  \n"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = Decode("x.xlsx", []byte("no es un zip"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDecode_XLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"Modelo", "IMEI", "Preco", "Data"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"iPhone 13", "356789012345678", 4500.5, nil}))
	require.NoError(t, f.SetCellValue(sheet, "D2", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)))
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	rows, err := Decode("planilha.xlsx", buf.Bytes())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "iPhone 13", rows[0]["modelo"])
	assert.Equal(t, "356789012345678", rows[0]["imei"], "texto se mantiene como texto")
	assert.Equal(t, 4500.5, rows[0]["preco"])
	d, ok := rows[0]["data"].(time.Time)
	require.True(t, ok)
	assert.Equal(t, "2024-03-15", d.Format("2006-01-02"))
}

func TestTemplateXLSX_IdaYVuelta(t *testing.T) {
	out, err := TemplateXLSX("nome,marca\niPhone 15,Apple\n")
	require.NoError(t, err)

	rows, err := Decode("modelos.xlsx", out)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "iPhone 15", rows[0]["nome"])
	assert.Equal(t, "Apple", rows[0]["marca"])
}
