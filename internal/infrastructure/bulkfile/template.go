package bulkfile

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

const templateSheet = "Importar"

// TemplateXLSX convierte una plantilla CSV (encabezado + ejemplos) en una planilla
// con el encabezado en negrita. Los valores se escriben como texto.
func TemplateXLSX(csvTemplate string) ([]byte, error) {
	records, err := csv.NewReader(strings.NewReader(csvTemplate)).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("plantilla csv: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", templateSheet); err != nil {
		return nil, fmt.Errorf("renombrar hoja: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("estilo encabezado: %w", err)
	}

	for r, rec := range records {
		for c, v := range rec {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellStr(templateSheet, cell, v); err != nil {
				return nil, fmt.Errorf("celda %s: %w", cell, err)
			}
			if r == 0 {
				if err := f.SetCellStyle(templateSheet, cell, cell, bold); err != nil {
					return nil, err
				}
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("escribir xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
