// Package bulkfile convierte archivos subidos (.csv, .json, .xlsx) en registros
// clave/valor para el importador. Las claves salen en minúsculas y sin espacios.
package bulkfile

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/CellStock-api/internal/domain"
)

// Formatos soportados.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatXLSX = "xlsx"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// FormatOf deduce el formato por la extensión del nombre de archivo.
func FormatOf(filename string) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".txt":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	case ".xlsx":
		return FormatXLSX, nil
	}
	return "", domain.InvalidInput("formato de archivo no soportado: use .csv, .json o .xlsx")
}

// Decode lee el contenido según la extensión de filename.
func Decode(filename string, data []byte) ([]map[string]any, error) {
	format, err := FormatOf(filename)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, domain.InvalidInput("el archivo está vacío")
	}
	switch format {
	case FormatJSON:
		return decodeJSON(data)
	case FormatXLSX:
		return decodeXLSX(data)
	default:
		return decodeCSV(data)
	}
}

func header(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}

// delimiter: las planillas exportadas en pt-BR suelen usar ';'.
func delimiter(data []byte) rune {
	first, _, _ := bytes.Cut(data, []byte("\n"))
	if bytes.Count(first, []byte(";")) > bytes.Count(first, []byte(",")) {
		return ';'
	}
	return ','
}

func decodeCSV(data []byte) ([]map[string]any, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = delimiter(data)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	head, err := r.Read()
	if err != nil {
		return nil, domain.InvalidInput(fmt.Sprintf("CSV inválido: %v", err))
	}
	for i := range head {
		head[i] = header(head[i])
	}

	var out []map[string]any
	for line := 2; ; line++ {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, domain.InvalidInput(fmt.Sprintf("CSV inválido en la línea %d: %v", line, err))
		}
		if row := zip(head, rec); row != nil {
			out = append(out, row)
		}
	}
	return out, nil
}

// zip arma el registro; nil si todas las celdas están vacías.
func zip(head []string, cells []string) map[string]any {
	row := make(map[string]any, len(head))
	empty := true
	for i, h := range head {
		if h == "" || i >= len(cells) {
			continue
		}
		v := strings.TrimSpace(cells[i])
		if v != "" {
			empty = false
		}
		row[h] = v
	}
	if empty {
		return nil
	}
	return row
}

// decodeJSON acepta un arreglo de objetos o un objeto con el arreglo en "data" o "records".
func decodeJSON(data []byte) ([]map[string]any, error) {
	var list []map[string]any
	if err := json.Unmarshal(data, &list); err != nil {
		var wrapped struct {
			Data    []map[string]any `json:"data"`
			Records []map[string]any `json:"records"`
		}
		if err2 := json.Unmarshal(data, &wrapped); err2 != nil {
			return nil, domain.InvalidInput(fmt.Sprintf("JSON inválido: %v", err))
		}
		list = wrapped.Data
		if list == nil {
			list = wrapped.Records
		}
	}
	out := make([]map[string]any, 0, len(list))
	for _, item := range list {
		row := make(map[string]any, len(item))
		for k, v := range item {
			row[header(k)] = v
		}
		out = append(out, row)
	}
	return out, nil
}

// decodeXLSX lee la primera hoja. Las celdas numéricas llegan como float64
// y las fechas de Excel como time.Time.
func decodeXLSX(data []byte) ([]map[string]any, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, domain.InvalidInput(fmt.Sprintf("XLSX inválido: %v", err))
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, domain.InvalidInput("el archivo XLSX no tiene hojas")
	}
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("xlsx: leer filas: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	head := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		head[i] = header(h)
	}

	var out []map[string]any
	for r := 1; r < len(rows); r++ {
		row := make(map[string]any, len(head))
		empty := true
		for c, raw := range rows[r] {
			if c >= len(head) || head[c] == "" {
				continue
			}
			raw = strings.TrimSpace(raw)
			if raw == "" {
				continue
			}
			empty = false
			row[head[c]] = cellValue(f, sheet, c+1, r+1, raw)
		}
		if !empty {
			out = append(out, row)
		}
	}
	return out, nil
}

func cellValue(f *excelize.File, sheet string, col, row int, raw string) any {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return raw
	}
	typ, err := f.GetCellType(sheet, cell)
	if err != nil || (typ != excelize.CellTypeNumber && typ != excelize.CellTypeUnset) {
		return raw
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return raw
	}
	if isDateCell(f, sheet, cell) {
		if t, err := excelize.ExcelDateToTime(n, false); err == nil {
			return t
		}
	}
	return n
}

// isDateCell: formatos de fecha integrados (14 a 22) o personalizados con año.
func isDateCell(f *excelize.File, sheet, cell string) bool {
	idx, err := f.GetCellStyle(sheet, cell)
	if err != nil || idx == 0 {
		return false
	}
	style, err := f.GetStyle(idx)
	if err != nil || style == nil {
		return false
	}
	if style.NumFmt >= 14 && style.NumFmt <= 22 {
		return true
	}
	return style.CustomNumFmt != nil && strings.Contains(strings.ToLower(*style.CustomNumFmt), "yy")
}
