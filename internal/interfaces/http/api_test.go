package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/CellStock-api/internal/application/analytics"
	"github.com/jhoicas/CellStock-api/internal/application/auth"
	"github.com/jhoicas/CellStock-api/internal/application/importer"
	"github.com/jhoicas/CellStock-api/internal/application/sales"
	"github.com/jhoicas/CellStock-api/internal/application/tenancy"
	"github.com/jhoicas/CellStock-api/internal/application/usecase"
	"github.com/jhoicas/CellStock-api/internal/infrastructure/assets"
	"github.com/jhoicas/CellStock-api/internal/infrastructure/cache"
	"github.com/jhoicas/CellStock-api/internal/infrastructure/memory"
	"github.com/jhoicas/CellStock-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/CellStock-api/internal/interfaces/http"
	"github.com/jhoicas/CellStock-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers: API completa sobre el backend en memoria
// ──────────────────────────────────────────────────────────────────────────────

const (
	superEmail = "superadmin@cellstock.com"
	storeEmail = "admin@isaacimports.com"
	password   = "123456"
	storeSlug  = "isaacimports"
)

func newTestAPI(t *testing.T) *fiber.App {
	t.Helper()
	ctx := context.Background()
	db := memory.NewDB()
	stores := memory.NewStoreRepository(db)
	users := memory.NewUserRepository(db)
	models := memory.NewModelRepository(db)
	units := memory.NewUnitRepository(db)
	customers := memory.NewCustomerRepository(db)
	salesRepo := memory.NewSaleRepository(db)

	_, err := auth.Bootstrap(ctx, users, stores, auth.BootstrapInput{
		AdminEmail: superEmail, AdminPassword: password,
		StoreName: "Isaac Imports", StoreAdminEmail: storeEmail, StoreAdminPassword: password,
	})
	require.NoError(t, err)

	dashCache := cache.Noop{}
	dashboard := analytics.NewDashboardUseCase(analytics.Repos{
		Stores: stores, Users: users, Models: models, Units: units, Customers: customers, Sales: salesRepo,
	}, dashCache)
	modelUC := usecase.NewModelUseCase(models, units, dashCache)
	unitUC := usecase.NewUnitUseCase(models, units, dashCache)
	customerUC := usecase.NewCustomerUseCase(customers, dashCache)
	engine := sales.NewEngine(memory.NewTxRunner(db), customers, salesRepo, pdf.NewReceiptGenerator(), dashCache)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Directory:   tenancy.NewDirectory(stores),
		AuthUC:      auth.NewAuthUseCase(users, stores, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer}),
		StoreUC:     usecase.NewStoreUseCase(stores, dashboard, assets.NewStorage(afero.NewMemMapFs(), "/uploads"), 1<<20),
		UserUC:      usecase.NewUserUseCase(users, stores),
		ModelUC:     modelUC,
		UnitUC:      unitUC,
		CustomerUC:  customerUC,
		SaleEngine:  engine,
		DashboardUC: dashboard,
		Importer: importer.New(importer.Deps{
			Models: modelUC, Units: unitUC, Customers: customerUC, Sales: engine,
			ModelRepo: models, UnitRepo: units, CustomerRepo: customers,
			Mappings: memory.NewIDMappingRepository(db), Cache: dashCache,
		}),
		Logger:    logger.Nop(),
		JWTSecret: testJWTSecret,
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func upload(t *testing.T, app *fiber.App, path, token, filename string, content []byte) (*http.Response, []byte) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func decode(t *testing.T, b []byte) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m), string(b))
	return m
}

func login(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	resp, body := call(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	tok, _ := decode(t, body)["token"].(string)
	require.NotEmpty(t, tok)
	return tok
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_LoginYMe(t *testing.T) {
	app := newTestAPI(t)

	resp, body := call(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{"email": storeEmail, "password": password})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode(t, body)
	assert.Equal(t, storeSlug, out["store_slug"])

	resp, _ = call(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{"email": storeEmail, "password": "errada"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = call(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{"email": storeEmail})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = call(t, app, http.MethodGet, "/api/auth/me", out["token"].(string), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, storeSlug, decode(t, body)["store_slug"])
}

func TestAPI_VerifyPublico(t *testing.T) {
	app := newTestAPI(t)

	resp, body := call(t, app, http.MethodGet, "/api/stores/"+storeSlug+"/verify", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode(t, body)
	assert.Equal(t, true, out["exists"])
	assert.Equal(t, "Isaac Imports", out["name"])

	resp, _ = call(t, app, http.MethodGet, "/api/stores/no-existe/verify", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_FlujoDeVenta(t *testing.T) {
	app := newTestAPI(t)
	tok := login(t, app, storeEmail)
	base := "/api/stores/" + storeSlug

	resp, body := call(t, app, http.MethodPost, base+"/models", tok, map[string]string{"name": "iPhone 13", "brand": "Apple"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	modelID := decode(t, body)["id"].(string)

	resp, body = call(t, app, http.MethodPost, base+"/units", tok, map[string]any{
		"model_id": modelID, "color": "Preto", "storage": "128GB", "battery": 90, "price": "3500.00",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	unitID := decode(t, body)["id"].(string)

	resp, body = call(t, app, http.MethodPost, base+"/customers", tok, map[string]string{
		"name": "Maria", "document": "123.456.789-01", "contact": "(11) 98765-4321",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	customerID := decode(t, body)["id"].(string)

	sale := map[string]any{"customer_id": customerID, "unit_ids": []string{unitID}, "payment_method": "pix"}
	resp, body = call(t, app, http.MethodPost, base+"/sales", tok, sale)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	out := decode(t, body)
	saleID := out["id"].(string)
	assert.Equal(t, "3500", out["total"])
	assert.Equal(t, "Maria", out["customer_name"])

	resp, body = call(t, app, http.MethodPost, base+"/sales", tok, sale)
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "la unidad ya fue vendida")
	assert.Equal(t, "CONFLICT", decode(t, body)["code"])

	resp, body = call(t, app, http.MethodGet, base+"/units?sold=true", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var sold []map[string]any
	require.NoError(t, json.Unmarshal(body, &sold))
	require.Len(t, sold, 1)
	assert.Equal(t, "iPhone 13", sold[0]["model_name"])

	resp, _ = call(t, app, http.MethodGet, base+"/units?sold=talvez", tok, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = call(t, app, http.MethodDelete, base+"/models/"+modelID, tok, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "el modelo tiene unidades")

	req := httptest.NewRequest(http.MethodGet, base+"/sales/"+saleID+"/receipt", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	pdfResp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, pdfResp.StatusCode)
	assert.Equal(t, "application/pdf", pdfResp.Header.Get("Content-Type"))
	pdfResp.Body.Close()

	resp, body = call(t, app, http.MethodGet, base+"/dashboard", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	dash := decode(t, body)
	assert.EqualValues(t, 1, dash["total_sales"])
	assert.EqualValues(t, 0, dash["available_units"])

	resp, _ = call(t, app, http.MethodGet, base+"/dashboard?month=2024-13", tok, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = call(t, app, http.MethodDelete, base+"/sales/"+saleID, tok, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, body = call(t, app, http.MethodGet, base+"/units/"+unitID, tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, decode(t, body)["sold"], "borrar la venta devuelve la unidad al stock")
}

func TestAPI_AislamientoEntreTiendas(t *testing.T) {
	app := newTestAPI(t)
	superTok := login(t, app, superEmail)
	storeTok := login(t, app, storeEmail)

	resp, body := call(t, app, http.MethodPost, "/api/admin/stores", superTok, map[string]string{"name": "Outra Loja"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	assert.Equal(t, "outraloja", decode(t, body)["slug"])

	resp, body = call(t, app, http.MethodGet, "/api/stores/outraloja/models", storeTok, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", decode(t, body)["code"])

	resp, _ = call(t, app, http.MethodGet, "/api/stores/outraloja/models", superTok, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "super_admin opera sobre cualquier tienda")

	resp, _ = call(t, app, http.MethodGet, "/api/stores/"+storeSlug+"/models", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = call(t, app, http.MethodGet, "/api/stores/nao-existe/models", superTok, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = call(t, app, http.MethodGet, "/api/admin/stores", storeTok, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "store_admin no accede a rutas de plataforma")

	resp, _ = call(t, app, http.MethodPost, "/api/admin/stores", superTok, map[string]string{"name": "OUTRA loja"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestAPI_ImportacionYPlantillas(t *testing.T) {
	app := newTestAPI(t)
	superTok := login(t, app, superEmail)

	resp, body := call(t, app, http.MethodGet, "/api/admin/stores", superTok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list, 1)
	storeID := list[0]["id"].(string)

	csv := []byte("id,nome,marca\n1,iPhone 15,Apple\n2,Galaxy S24,Samsung\n")
	resp, body = upload(t, app, "/api/admin/import/"+storeID+"?data_type=modelos", superTok, "modelos.csv", csv)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	out := decode(t, body)
	assert.Equal(t, true, out["success"])
	assert.EqualValues(t, 2, out["imported"])

	resp, body = upload(t, app, "/api/admin/import/"+storeID, superTok, "modelos.csv", csv)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 0, decode(t, body)["imported"], "reimportar no duplica")

	resp, _ = upload(t, app, "/api/admin/import/"+storeID, superTok, "modelos.pdf", csv)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = upload(t, app, "/api/admin/import/no-existe", superTok, "modelos.csv", csv)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = call(t, app, http.MethodGet, "/api/admin/import/templates/clientes", superTok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "nome,cpf,whatsapp")

	resp, _ = call(t, app, http.MethodGet, "/api/admin/import/templates/produtos?format=xlsx", superTok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "spreadsheetml")
}

func TestAPI_AdminUsuariosYLogo(t *testing.T) {
	app := newTestAPI(t)
	superTok := login(t, app, superEmail)

	_, body := call(t, app, http.MethodGet, "/api/admin/stores", superTok, nil)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(body, &list))
	storeID := list[0]["id"].(string)

	resp, body := call(t, app, http.MethodPost, "/api/admin/users", superTok, map[string]string{
		"email": "Vendedor@Loja.com", "password": "segredo1", "name": "Vendedor", "role": "store_admin", "store_id": storeID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	user := decode(t, body)
	assert.Equal(t, "vendedor@loja.com", user["email"])

	resp, _ = call(t, app, http.MethodPost, "/api/admin/users", superTok, map[string]string{
		"email": "vendedor@loja.com", "password": "segredo1", "name": "Outro", "role": "store_admin", "store_id": storeID,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, _ = call(t, app, http.MethodPut, "/api/admin/users/"+user["id"].(string), superTok, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "sin campos para actualizar")

	resp, _ = call(t, app, http.MethodDelete, "/api/admin/users/"+user["id"].(string), superTok, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	png := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 16)...)
	resp, body = upload(t, app, "/api/admin/stores/"+storeID+"/logo", superTok, "logo.png", png)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Contains(t, decode(t, body)["logo_url"], "/uploads/logos/")

	resp, _ = upload(t, app, "/api/admin/stores/"+storeID+"/logo", superTok, "logo.exe", png)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = call(t, app, http.MethodGet, "/api/admin/dashboard", superTok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, decode(t, body)["total_stores"])
}
