// Package pdf genera el comprobante de venta en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tienda                     │  N° Venta + Fecha     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + CPF + WhatsApp                           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Modelo | Color | Memoria | Precio                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL + forma de pago + observación                        │
//	│  QR con el ID de la venta                                   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/CellStock-api/internal/application/sales"
	"github.com/jhoicas/CellStock-api/internal/domain/entity"
)

var _ sales.ReceiptGenerator = (*ReceiptGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 22, Green: 78, Blue: 99}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var paymentLabels = map[string]string{
	entity.PaymentCash:         "Dinheiro",
	entity.PaymentPix:          "PIX",
	entity.PaymentCreditCard:   "Cartão de crédito",
	entity.PaymentDebitCard:    "Cartão de débito",
	entity.PaymentBankTransfer: "Transferência",
}

// ReceiptGenerator implementa sales.ReceiptGenerator usando Maroto v2.
type ReceiptGenerator struct{}

// NewReceiptGenerator construye el generador.
func NewReceiptGenerator() *ReceiptGenerator { return &ReceiptGenerator{} }

// GenerateReceipt genera el comprobante y devuelve sus bytes. customer nil = cliente removido.
func (g *ReceiptGenerator) GenerateReceipt(
	_ context.Context,
	store *entity.Store,
	sale *entity.Sale,
	customer *entity.Customer,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprovante de venda", true).
		WithAuthor(store.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(store, sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(itemRows(sale.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(sale))
	m.AddRows(footerRow(sale))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar comprobante: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(store *entity.Store, sale *entity.Sale) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(store.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Loja: "+store.Slug, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("COMPROVANTE DE VENDA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("#"+shortID(sale.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Data: "+sale.Date.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func customerRow(c *entity.Customer) core.Row {
	name, detail := entity.RemovedCustomerName, ""
	if c != nil {
		name = c.Name
		detail = fmt.Sprintf("CPF: %s   |   WhatsApp: %s",
			formatCPF(c.Document), nonEmpty(c.Contact, "-"))
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(detail, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Modelo", 4, align.Left),
		h("Cor", 2, align.Left),
		h("Memória", 2, align.Center),
		h("Preço", 4, align.Right),
	)
}

func itemRows(items []entity.SaleItem) []core.Row {
	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, row.New(7).Add(
			col.New(4).Add(text.New(it.ModelName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(nonEmpty(it.Color, "-"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(nonEmpty(it.Storage, "-"), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(4).Add(text.New(formatBRL(it.Price), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

func totalRow(sale *entity.Sale) core.Row {
	payment, ok := paymentLabels[sale.PaymentMethod]
	if !ok {
		payment = sale.PaymentMethod
	}
	return row.New(16).Add(
		col.New(6).Add(
			text.New("Forma de pagamento: "+payment, props.Text{Size: 9, Top: 2}),
			text.New(nonEmpty(sale.Note, ""), props.Text{Size: 8, Top: 8, Color: colorGray}),
		),
		col.New(6).Add(
			text.New("TOTAL: "+formatBRL(sale.Total), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right,
				Color: colorPrimary, Top: 2, Right: 1,
			}),
		),
	)
}

func footerRow(sale *entity.Sale) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(sale.ID, props.Rect{Percent: 90, Center: true})),
		col.New(9).Add(
			text.New("Código da venda: "+sale.ID, props.Text{Size: 7, Top: 6, Left: 3, Color: colorGray}),
			text.New("Obrigado pela preferência!", props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 16, Left: 3, Color: colorPrimary,
			}),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func shortID(id string) string {
	if len(id) > 8 {
		return strings.ToUpper(id[:8])
	}
	return strings.ToUpper(id)
}

// formatCPF da formato 000.000.000-00 a un documento de 11 dígitos.
func formatCPF(d string) string {
	if len(d) != 11 {
		return nonEmpty(d, "-")
	}
	return d[:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:]
}

// formatBRL formatea en reales: 4500.5 → "R$ 4.500,50".
func formatBRL(v decimal.Decimal) string {
	s := v.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, _ := strings.Cut(s, ".")

	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	out := "R$ " + string(buf) + "," + frac
	if neg {
		out = "-" + out
	}
	return out
}
