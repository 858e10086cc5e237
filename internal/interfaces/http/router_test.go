package http_test

import (
	"context"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/auth"
	"github.com/jhoicas/Almacen-api/internal/application/movement"
	"github.com/jhoicas/Almacen-api/internal/application/report"
	"github.com/jhoicas/Almacen-api/internal/application/scan"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/excel"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/memory"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/Almacen-api/internal/interfaces/http"
	"github.com/jhoicas/Almacen-api/internal/interfaces/realtime"
	pkgjwt "github.com/jhoicas/Almacen-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// App completa sobre el almacén en memoria
// ──────────────────────────────────────────────────────────────────────────────

var fixedNow = time.Date(2024, 5, 1, 15, 0, 0, 0, time.UTC)

type testEnv struct {
	app *fiber.App
	hub *realtime.Hub
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	now := func() time.Time { return fixedNow }
	store := memory.New().Repositories()
	hub := realtime.NewHub(8, nil)

	authUC := auth.NewAuthUseCase(store.Users, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer})
	created, err := authUC.EnsureAdmin(context.Background(), "admin@almacen.mx", "cambiar123", "Admin")
	require.NoError(t, err)
	require.True(t, created)

	reports := report.NewUseCase(store, excel.NewWriter(), pdf.NewMarotoLabelGenerator(), time.UTC).WithClock(now)

	app := apphttp.NewApp(apphttp.AppConfig{Name: "almacen-test"})
	apphttp.Router(app, apphttp.RouterDeps{
		Movements:  movement.NewEngine(store.Movements, time.UTC).WithClock(now),
		Scans:      scan.NewPipeline(store, time.UTC).WithClock(now),
		Pallets:    usecase.NewPalletUseCase(store.Pallets, hub, time.UTC, nil).WithClock(now),
		BoxBatches: usecase.NewBoxBatchUseCase(store.BoxBatches, time.UTC).WithClock(now),
		Workers:    usecase.NewWorkerUseCase(store.Workers),
		Users:      usecase.NewUserUseCase(store.Users),
		AuthUC:     authUC,
		Reports:    reports,
		Hub:        hub,
		JWTSecret:  testJWTSecret,
	})
	return &testEnv{app: app, hub: hub}
}

func bearer(t *testing.T, userID, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, "Usuario "+role, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func (e *testEnv) do(t *testing.T, method, path, auth, body string) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func decode(t *testing.T, raw []byte) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m), string(raw))
	return m
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_LoginAdminInicial(t *testing.T) {
	env := newTestEnv(t)

	resp, raw := env.do(t, "POST", "/api/auth/login", "", `{"email":"admin@almacen.mx","password":"cambiar123"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	body := decode(t, raw)
	require.NotEmpty(t, body["token"])

	resp, raw = env.do(t, "GET", "/api/auth/me", "Bearer "+body["token"].(string), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "admin", decode(t, raw)["role"])

	resp, raw = env.do(t, "POST", "/api/auth/login", "", `{"email":"admin@almacen.mx","password":"otra-clave"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", decode(t, raw)["code"])
}

func TestRouter_SinTokenRetorna401(t *testing.T) {
	env := newTestEnv(t)
	resp, _ := env.do(t, "GET", "/api/movements", "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_CuerpoMalformado(t *testing.T) {
	env := newTestEnv(t)
	resp, raw := env.do(t, "POST", "/api/movements", bearer(t, "u-sup", "supervisor"), `{"kind":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", decode(t, raw)["code"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Movimientos
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_MovimientoDescargaCompleto(t *testing.T) {
	env := newTestEnv(t)
	sup := bearer(t, "u-sup", "supervisor")

	resp, raw := env.do(t, "POST", "/api/movements", sup, `{
		"kind":"descarga","container_number":"MSCU1234567","origin":"Manzanillo",
		"seal_number":"S-99","personnel":"Luis","arrival_at":"2024-05-01T14:00:00Z"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	opened := decode(t, raw)
	assert.Equal(t, "OPEN", opened["state"])
	assert.Equal(t, "2024-05-01", opened["date_key"])
	id := opened["id"].(string)

	resp, raw = env.do(t, "GET", "/api/movements?date=2024-05-01", sup, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode(t, raw)["items"], 1)

	resp, raw = env.do(t, "PATCH", "/api/movements/"+id+"/complete", sup,
		`{"departure_at":"2024-05-01T16:00:00Z","pallets_inside":20,"boxes_inside":0}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	closed := decode(t, raw)
	assert.Equal(t, "CLOSED", closed["state"])
	assert.EqualValues(t, 20, closed["pallets_inside"])

	resp, raw = env.do(t, "GET", "/api/movements/"+id, bearer(t, "u-a", "trabajador-a"), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "CLOSED", decode(t, raw)["state"])
}

func TestRouter_MovimientoCamposFaltantes(t *testing.T) {
	env := newTestEnv(t)
	resp, raw := env.do(t, "POST", "/api/movements", bearer(t, "u-sup", "supervisor"),
		`{"kind":"descarga","origin":"Manzanillo","arrival_at":"2024-05-01T14:00:00Z"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode(t, raw)
	assert.Equal(t, "VALIDATION", body["code"])
	assert.Contains(t, body["fields"], "container_number")
	assert.Contains(t, body["fields"], "seal_number")
	assert.Contains(t, body["fields"], "personnel")
}

func TestRouter_MovimientoRolSinPermiso(t *testing.T) {
	env := newTestEnv(t)
	resp, raw := env.do(t, "POST", "/api/movements", bearer(t, "u-a", "trabajador-a"), `{"kind":"carga"}`)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", decode(t, raw)["code"])
}

func TestRouter_CerrarMovimientoInexistente(t *testing.T) {
	env := newTestEnv(t)
	resp, raw := env.do(t, "PATCH", "/api/movements/no-existe/complete", bearer(t, "u-sup", "supervisor"), `{}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode(t, raw)["code"])
}

func TestRouter_RangoInvertido(t *testing.T) {
	env := newTestEnv(t)
	resp, raw := env.do(t, "GET", "/api/movements?from=2024-05-03&to=2024-05-01", bearer(t, "u-sup", "supervisor"), "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, []any{"from", "to"}, decode(t, raw)["fields"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Tarimas, escaneo y copias de almacén
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_EscaneoConYSinTarima(t *testing.T) {
	env := newTestEnv(t)
	almacen := bearer(t, "u-alm", "almacen")

	resp, raw := env.do(t, "POST", "/api/scan", almacen, `{"code":"QR-7"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	miss := decode(t, raw)
	assert.Equal(t, false, miss["registered"])
	assert.NotEmpty(t, miss["incident_id"])

	resp, raw = env.do(t, "POST", "/api/pallets", bearer(t, "u-a", "trabajador-a"),
		`{"code":"QR-7","assigned_worker":"Ana","pallet_type":"chica"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	resp, raw = env.do(t, "POST", "/api/scan", almacen, `{"code":"QR-7"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	hit := decode(t, raw)
	assert.Equal(t, true, hit["registered"])
	assert.Equal(t, "QR-7", hit["pallet"].(map[string]any)["code"])

	resp, _ = env.do(t, "POST", "/api/scan", bearer(t, "u-sup", "supervisor"), `{"code":"QR-7"}`)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, raw = env.do(t, "GET", "/api/scan/log", bearer(t, "u-adm", "admin"), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	log := decode(t, raw)
	assert.Len(t, log["attempts"], 2)
	assert.Len(t, log["incidents"], 1)
}

func TestRouter_CrearTarimaNotificaAlHub(t *testing.T) {
	env := newTestEnv(t)
	sub := env.hub.Subscribe()
	defer env.hub.Unsubscribe(sub)

	resp, _ := env.do(t, "POST", "/api/pallets", bearer(t, "u-b", "trabajador-b"),
		`{"code":"QR-1","assigned_worker":"Rosa","pallet_type":"grande"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	select {
	case msg := <-sub.C():
		assert.Contains(t, string(msg), `"type":"pallet.created"`)
		assert.Contains(t, string(msg), `"code":"QR-1"`)
	default:
		t.Fatal("no llegó la notificación")
	}
}

func TestRouter_CopiaDeAlmacenUnicaPorDia(t *testing.T) {
	env := newTestEnv(t)
	almacen := bearer(t, "u-alm", "almacen")
	body := `{"code":"QR-1","shift":"matutino","responsible":"Ana","zona":"B","cajas":48,"revisada":true}`

	resp, raw := env.do(t, "POST", "/api/warehouse-scans", almacen, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	assert.Contains(t, string(raw), `"pallet":{"code":"QR-1","zona":"B","cajas":48,"revisada":true}`)

	resp, raw = env.do(t, "POST", "/api/warehouse-scans", almacen, body)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CONFLICT", decode(t, raw)["code"])

	resp, raw = env.do(t, "GET", "/api/warehouse-scans/check?code=QR-1", almacen, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, decode(t, raw)["exists"])

	resp, raw = env.do(t, "GET", "/api/warehouse-scans?date=2024-05-01&shift=matutino", almacen, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode(t, raw)["items"], 1)

	resp, _ = env.do(t, "POST", "/api/warehouse-scans", bearer(t, "u-a", "trabajador-a"), body)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRouter_CopiaConNumeroFueraDeRangoNoOcupaElDia(t *testing.T) {
	env := newTestEnv(t)
	almacen := bearer(t, "u-alm", "almacen")

	resp, raw := env.do(t, "POST", "/api/warehouse-scans", almacen,
		`{"code":"P-1","shift":"matutino","responsible":"Ana","peso":1e400}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode, string(raw))
	assert.Equal(t, []any{"peso"}, decode(t, raw)["fields"])

	resp, raw = env.do(t, "POST", "/api/warehouse-scans", almacen,
		`{"code":"P-1","shift":"matutino","responsible":"Ana","peso":12.5}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	resp, raw = env.do(t, "GET", "/api/warehouse-scans?date=2024-05-01", almacen, "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.Len(t, decode(t, raw)["items"], 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reportes, websocket y health
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_ExportarXLSX(t *testing.T) {
	env := newTestEnv(t)
	resp, raw := env.do(t, "GET", "/api/reports/pallets.xlsx?date=2024-05-01", bearer(t, "u-adm", "admin"), "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.Contains(t, resp.Header.Get("Content-Type"), "spreadsheetml")
	assert.NotEmpty(t, raw)

	resp, _ = env.do(t, "GET", "/api/reports/desconocido.xlsx", bearer(t, "u-adm", "admin"), "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = env.do(t, "GET", "/api/reports/pallets.xlsx", bearer(t, "u-sup", "supervisor"), "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRouter_EtiquetaConComillasEnElCodigo(t *testing.T) {
	env := newTestEnv(t)
	resp, raw := env.do(t, "POST", "/api/pallets", bearer(t, "u-a", "trabajador-a"),
		`{"code":"QR\"7; x=1","assigned_worker":"Ana","pallet_type":"chica"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	id := decode(t, raw)["id"].(string)

	resp, raw = env.do(t, "GET", "/api/pallets/"+id+"/label", bearer(t, "u-a", "trabajador-a"), "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	disposition, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition"))
	require.NoError(t, err)
	assert.Equal(t, "attachment", disposition)
	assert.Equal(t, `tarima_QR"7; x=1.pdf`, params["filename"])
	assert.Len(t, params, 1)
}

func TestRouter_WebsocketSinUpgrade(t *testing.T) {
	env := newTestEnv(t)
	resp, _ := env.do(t, "GET", "/ws/pallets?token=x", "", "")
	assert.Equal(t, http.StatusUpgradeRequired, resp.StatusCode)
}

func TestRouter_Health(t *testing.T) {
	env := newTestEnv(t)
	resp, raw := env.do(t, "GET", "/health", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", decode(t, raw)["status"])
}
