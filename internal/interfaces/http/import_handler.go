package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/CellStock-api/internal/application/dto"
	"github.com/jhoicas/CellStock-api/internal/application/importer"
	"github.com/jhoicas/CellStock-api/internal/infrastructure/bulkfile"
	"github.com/jhoicas/CellStock-api/pkg/logger"
)

// ImportHandler importación masiva de archivos hacia una tienda.
type ImportHandler struct {
	im  *importer.Importer
	log *logger.Logger
}

// NewImportHandler construye el handler.
func NewImportHandler(im *importer.Importer, log *logger.Logger) *ImportHandler {
	return &ImportHandler{im: im, log: log}
}

// Import godoc
// @Summary      Importar modelos, produtos, clientes o vendas
// @Description  Acepta .csv, .json o .xlsx. data_type=auto detecta el tipo por el primer registro.
// @Tags         admin
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        storeId    path      string  true   "ID de la tienda"
// @Param        data_type  query     string  false  "auto|models|products|customers|sales"
// @Param        file       formData  file    true   "archivo a importar"
// @Success      200   {object}  dto.ImportSummary
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/import/{storeId} [post]
func (h *ImportHandler) Import(c *fiber.Ctx) error {
	scope, ok := GetScope(c)
	if !ok {
		return noScope(c)
	}
	kind, err := importer.ParseKind(c.Query("data_type", "auto"))
	if err != nil {
		return respondError(c, err)
	}
	name, data, err := formFile(c, "file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "campo file requerido"})
	}
	rows, err := bulkfile.Decode(name, data)
	if err != nil {
		return respondError(c, err)
	}

	summary, err := h.im.Import(c.UserContext(), scope, kind, rows)
	if err != nil {
		return respondError(c, err)
	}
	h.log.Info().
		Str("store", scope.Store().Slug).
		Str("file", name).
		Str("kind", summary.Kind).
		Int("total", summary.TotalRecords).
		Int("imported", summary.Imported).
		Int("errors", len(summary.Errors)).
		Msg("importación finalizada")
	return c.JSON(summary)
}

// Template godoc
// @Summary      Plantilla de importación
// @Tags         admin
// @Produce      text/csv
// @Security     BearerAuth
// @Param        kind    path   string  true   "models|products|customers|sales"
// @Param        format  query  string  false  "csv (por defecto) o xlsx"
// @Success      200
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/import/templates/{kind} [get]
func (h *ImportHandler) Template(c *fiber.Ctx) error {
	kind, err := importer.ParseKind(c.Params("kind"))
	if err != nil {
		return respondError(c, err)
	}
	tpl, ok := importer.Templates[kind]
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "no hay plantilla para ese tipo"})
	}

	if c.Query("format") == bulkfile.FormatXLSX {
		out, err := bulkfile.TemplateXLSX(tpl)
		if err != nil {
			return respondError(c, err)
		}
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+string(kind)+`.xlsx"`)
		return c.Send(out)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+string(kind)+`.csv"`)
	return c.SendString(tpl)
}
