package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/CellStock-api/internal/domain"
	"github.com/jhoicas/CellStock-api/internal/domain/rules"
)

// modelFieldLimit cantidad máxima de columnas para considerar que un registro
// con nombre describe un modelo.
const modelFieldLimit = 4

// foreignToModels columnas que delatan a otro tipo; un modelo no las lleva.
var foreignToModels = concat(
	fieldDocument, fieldContact, fieldEmail, fieldPhone, fieldAddress,
	fieldModelRef, fieldModelName, fieldColor, fieldStorage, fieldBattery, fieldIMEI, fieldPrice,
	fieldCustomerRef, fieldCustomerName, fieldCustomerDocument, fieldCustomerContact,
	fieldTotal, fieldPayment, fieldDate, fieldNote, fieldProducts,
)

// Classify detecta el tipo a partir de las columnas del primer registro.
// Se evalúan las señales de los cuatro tipos; si ninguna o más de una
// coincide el registro es ambiguo y hay que indicar data_type.
func Classify(first Row) (Kind, error) {
	r := normalizeKeys(first)
	signals := []struct {
		kind Kind
		ok   bool
	}{
		{KindProducts, has(r, fieldIMEI) || ((has(r, fieldModelRef) || has(r, fieldModelName)) && has(r, fieldColor))},
		{KindCustomers, has(r, fieldDocument) || has(r, fieldContact)},
		{KindModels, has(r, fieldName) && len(r) <= modelFieldLimit && !has(r, foreignToModels)},
		{KindSales, has(r, fieldTotal) || has(r, fieldPayment) || has(r, fieldCustomerRef) || has(r, fieldCustomerName)},
	}
	var matched []string
	var kind Kind
	for _, sg := range signals {
		if sg.ok {
			kind = sg.kind
			matched = append(matched, string(sg.kind))
		}
	}
	switch len(matched) {
	case 1:
		return kind, nil
	case 0:
		return "", domain.InvalidInput("no se pudo detectar el tipo de registro; indique data_type")
	}
	return "", domain.InvalidInput(fmt.Sprintf("registro ambiguo (%s); indique data_type", strings.Join(matched, ", ")))
}

func concat(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

// decode valida un registro crudo contra el esquema de su tipo.
func decode(kind Kind, raw Row, now time.Time) (Record, error) {
	r := normalizeKeys(raw)
	switch kind {
	case KindModels:
		rec := ModelRecord{ExternalID: text(r, fieldID), Name: text(r, fieldName), Brand: text(r, fieldBrand)}
		if rec.Name == "" {
			return nil, domain.InvalidInput("nombre del modelo vacío")
		}
		return rec, nil
	case KindCustomers:
		rec := CustomerRecord{
			ExternalID: text(r, fieldID),
			Name:       text(r, fieldName),
			Document:   text(r, fieldDocument),
			Contact:    text(r, fieldContact),
			Email:      text(r, fieldEmail),
			Phone:      text(r, fieldPhone),
			Address:    text(r, fieldAddress),
		}
		if rec.Name == "" {
			return nil, domain.InvalidInput("nombre del cliente vacío")
		}
		return rec, nil
	case KindProducts:
		price, _ := lookup(r, fieldPrice)
		rec := ProductRecord{
			ExternalID: text(r, fieldID),
			ModelRef:   text(r, fieldModelRef),
			ModelName:  text(r, fieldModelName),
			Color:      text(r, fieldColor),
			Storage:    text(r, fieldStorage),
			Battery:    parseBattery(r),
			IMEI:       text(r, fieldIMEI),
			Price:      ParseAmount(price),
		}
		if rec.ModelRef == "" && rec.ModelName == "" {
			return nil, domain.InvalidInput("el producto no referencia un modelo")
		}
		return rec, nil
	case KindSales:
		total, _ := lookup(r, fieldTotal)
		date, _ := lookup(r, fieldDate)
		rec := SaleRecord{
			CustomerRef:      text(r, fieldCustomerRef),
			CustomerName:     text(r, fieldCustomerName),
			CustomerDocument: text(r, fieldCustomerDocument),
			CustomerContact:  text(r, fieldCustomerContact),
			ProductRefs:      refs(r, fieldProducts),
			Total:            ParseAmount(total),
			PaymentMethod:    rules.NormalizePayment(text(r, fieldPayment)),
			Date:             ParseDate(date, now),
			Note:             text(r, fieldNote),
		}
		if rec.CustomerRef == "" && rec.CustomerName == "" && rec.CustomerDocument == "" {
			return nil, domain.InvalidInput("la venta no identifica al cliente")
		}
		return rec, nil
	}
	return nil, domain.InvalidInput("tipo de registro desconocido")
}
