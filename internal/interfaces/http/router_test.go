package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/contracts-api/internal/application/analytics"
	"github.com/jhoicas/contracts-api/internal/application/auth"
	"github.com/jhoicas/contracts-api/internal/application/dto"
	"github.com/jhoicas/contracts-api/internal/application/policy"
	"github.com/jhoicas/contracts-api/internal/application/report"
	"github.com/jhoicas/contracts-api/internal/application/usecase"
	"github.com/jhoicas/contracts-api/internal/domain/entity"
	"github.com/jhoicas/contracts-api/internal/infrastructure/memory"
	"github.com/jhoicas/contracts-api/internal/infrastructure/pdf"
	"github.com/jhoicas/contracts-api/internal/infrastructure/xlsx"
	apphttp "github.com/jhoicas/contracts-api/internal/interfaces/http"
)

const testPassword = "s3cret-pass"

// testApp aplicación completa sobre el store en memoria.
type testApp struct {
	app   *fiber.App
	store *memory.Store
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repos()
	contracts := usecase.NewContractUseCase(repos.Contracts, store, nil)
	deps := apphttp.RouterDeps{
		AuthUC: auth.NewAuthUseCase(repos.Users, memory.NewSessionStore(), auth.JWTConfig{
			Secret: "test-secret-key-for-unit-tests", Issuer: "contracts-api-test", SessionTTL: time.Hour,
		}, nil),
		UserUC:         usecase.NewUserUseCase(repos.Users, store, nil),
		SupplierUC:     usecase.NewSupplierUseCase(repos.Suppliers, store, nil),
		EquipmentUC:    usecase.NewEquipmentUseCase(repos.Equipment, store, nil),
		ContractUC:     contracts,
		InterventionUC: usecase.NewInterventionUseCase(repos.Interventions, store, nil),
		PVUC:           usecase.NewPVUseCase(repos.PVs, store, nil),
		DashboardUC:    analytics.NewDashboardUseCase(store.Dashboard()),
		ReportUC:       report.NewReportUseCase(repos, contracts, pdf.NewMarotoPDFGenerator(), xlsx.NewExporter()),
		Policy:         policy.New(),
		Metrics:        apphttp.NewMetrics("contracts_api_test"),
	}
	return &testApp{app: apphttp.NewApp(apphttp.AppConfig{Name: "test"}, deps), store: store}
}

// addUser guarda un usuario con rol arbitrario (incluso inválido).
func (a *testApp) addUser(t *testing.T, username string, role entity.Role) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	u := &entity.User{Username: username, Email: username + "@example.com", Role: role, PasswordHash: string(hash)}
	require.NoError(t, a.store.Repos().Users.Create(context.Background(), u))
}

func (a *testApp) login(t *testing.T, username string) string {
	t.Helper()
	resp := a.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: username, Password: testPassword})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var out dto.LoginResponse
	decode(t, resp, &out)
	require.NotEmpty(t, out.Token)
	return out.Token
}

func (a *testApp) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	var e dto.ErrorResponse
	decode(t, resp, &e)
	return e.Code
}

func TestLogin_IdentidadYMe(t *testing.T) {
	a := newTestApp(t)
	a.addUser(t, "tech", entity.RoleTechnicalManager)

	token := a.login(t, "tech")
	resp := a.do(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var me dto.IdentityResponse
	decode(t, resp, &me)
	assert.Equal(t, "tech", me.Username)
	assert.Equal(t, "technical_manager", me.Role)
	assert.Equal(t, "/api/dashboard/technical_manager", me.Dashboard)
}

func TestLogin_MismoErrorParaUsuarioYPassword(t *testing.T) {
	a := newTestApp(t)
	a.addUser(t, "admin", entity.RoleAdmin)

	wrongPass := a.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "admin", Password: "nope-nope"})
	unknown := a.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "ghost", Password: testPassword})

	require.Equal(t, fiber.StatusUnauthorized, wrongPass.StatusCode)
	require.Equal(t, fiber.StatusUnauthorized, unknown.StatusCode)
	b1, _ := io.ReadAll(wrongPass.Body)
	b2, _ := io.ReadAll(unknown.Body)
	assert.JSONEq(t, string(b1), string(b2))
	assert.Contains(t, string(b1), "INVALID_CREDENTIALS")
}

func TestLogin_RolDesconocido(t *testing.T) {
	a := newTestApp(t)
	a.addUser(t, "intern", entity.Role("stagiaire"))

	resp := a.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "intern", Password: testPassword})
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNKNOWN_ROLE", errorCode(t, resp))
}

func TestAuth_SinTokenYLogout(t *testing.T) {
	a := newTestApp(t)
	a.addUser(t, "admin", entity.RoleAdmin)

	resp := a.do(t, http.MethodGet, "/api/suppliers", "", nil)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", errorCode(t, resp))

	resp = a.do(t, http.MethodGet, "/api/suppliers", "not-a-jwt", nil)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, resp))

	token := a.login(t, "admin")
	resp = a.do(t, http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = a.do(t, http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestPolicy_TechnicalManagerSinEscrituras(t *testing.T) {
	a := newTestApp(t)
	a.addUser(t, "tech", entity.RoleTechnicalManager)
	token := a.login(t, "tech")

	denied := []struct{ method, path string }{
		{http.MethodPost, "/api/suppliers"},
		{http.MethodPost, "/api/equipment"},
		{http.MethodPost, "/api/contracts"},
		{http.MethodGet, "/api/users"},
		{http.MethodPost, "/api/users"},
		{http.MethodGet, "/api/dashboard/admin"},
	}
	for _, d := range denied {
		resp := a.do(t, d.method, d.path, token, map[string]any{})
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode, d.method+" "+d.path)
		assert.Equal(t, "ACCESS_DENIED", errorCode(t, resp))
	}

	resp := a.do(t, http.MethodGet, "/api/suppliers", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestSuppliers_RoundTripYRestrict(t *testing.T) {
	a := newTestApp(t)
	a.addUser(t, "cm", entity.RoleContractManager)
	token := a.login(t, "cm")

	resp := a.do(t, http.MethodPost, "/api/suppliers", token, dto.CreateSupplierRequest{
		Name: "Acme Maintenance", Email: "contact@acme.fr", Phone: "0102030405",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var created dto.SupplierResponse
	decode(t, resp, &created)

	resp = a.do(t, http.MethodGet, "/api/suppliers/"+itoa(created.ID), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var got dto.SupplierResponse
	decode(t, resp, &got)
	assert.Equal(t, "Acme Maintenance", got.Name)
	assert.Equal(t, "contact@acme.fr", got.Email)
	assert.Equal(t, "0102030405", got.Phone)

	resp = a.do(t, http.MethodPost, "/api/contracts", token, dto.CreateContractRequest{
		SupplierID: created.ID, MarketReference: "MP-1",
		StartDate: "2024-01-01", WarrantyEnd: "2025-01-01", MaintenanceEnd: "2027-01-01",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = a.do(t, http.MethodDelete, "/api/suppliers/"+itoa(created.ID), token, nil)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "REFERENTIAL_CONFLICT", errorCode(t, resp))

	resp = a.do(t, http.MethodGet, "/api/suppliers/abc", token, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = a.do(t, http.MethodGet, "/api/suppliers/999", token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestContracts_EquiposYExport(t *testing.T) {
	a := newTestApp(t)
	a.addUser(t, "admin", entity.RoleAdmin)
	token := a.login(t, "admin")

	var supplier dto.SupplierResponse
	decode(t, a.do(t, http.MethodPost, "/api/suppliers", token, dto.CreateSupplierRequest{Name: "Acme", Email: "a@acme.fr"}), &supplier)
	var e1, e2 dto.EquipmentResponse
	decode(t, a.do(t, http.MethodPost, "/api/equipment", token, dto.CreateEquipmentRequest{Name: "srv-01", Type: "server"}), &e1)
	decode(t, a.do(t, http.MethodPost, "/api/equipment", token, dto.CreateEquipmentRequest{Name: "ups-01", Type: "ups"}), &e2)

	resp := a.do(t, http.MethodPost, "/api/contracts", token, dto.CreateContractRequest{
		SupplierID: supplier.ID, MarketReference: "MP-2024-07",
		StartDate: "2024-01-01", WarrantyEnd: "2025-01-01", MaintenanceEnd: "2027-01-01",
		EquipmentIDs: []int64{e1.ID, e2.ID},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var contract dto.ContractResponse
	decode(t, resp, &contract)
	assert.Len(t, contract.Equipment, 2)
	assert.Equal(t, 2, a.store.AssociationRows(contract.ID))

	resp = a.do(t, http.MethodGet, "/api/contracts/"+itoa(contract.ID)+"/equipment", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var equipment dto.ListResponse[dto.EquipmentResponse]
	decode(t, resp, &equipment)
	require.Equal(t, 2, equipment.Total)
	assert.Equal(t, e1.ID, equipment.Items[0].ID)

	resp = a.do(t, http.MethodGet, "/api/contracts/export.xlsx", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".xlsx")

	resp = a.do(t, http.MethodGet, "/api/contracts?status=bogus", token, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = a.do(t, http.MethodPost, "/api/contracts", token, dto.CreateContractRequest{
		SupplierID: supplier.ID, MarketReference: "MP-2024-07",
		StartDate: "2024-01-01", WarrantyEnd: "2025-01-01", MaintenanceEnd: "2027-01-01",
	})
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE", errorCode(t, resp))
}

func TestPV_HojaPDF(t *testing.T) {
	a := newTestApp(t)
	a.addUser(t, "admin", entity.RoleAdmin)
	token := a.login(t, "admin")

	var supplier dto.SupplierResponse
	decode(t, a.do(t, http.MethodPost, "/api/suppliers", token, dto.CreateSupplierRequest{Name: "Acme", Email: "a@acme.fr"}), &supplier)
	var contract dto.ContractResponse
	decode(t, a.do(t, http.MethodPost, "/api/contracts", token, dto.CreateContractRequest{
		SupplierID: supplier.ID, MarketReference: "MP-9",
		StartDate: "2024-01-01", WarrantyEnd: "2025-01-01", MaintenanceEnd: "2027-01-01",
	}), &contract)

	resp := a.do(t, http.MethodPost, "/api/pvs", token, dto.CreatePVRequest{
		ContractID: contract.ID, Type: "reception", SignedOn: "2024-02-01",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var pv dto.PVResponse
	decode(t, resp, &pv)

	resp = a.do(t, http.MethodGet, "/api/pvs/"+itoa(pv.ID)+"/sheet.pdf", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestDashboard_PorRol(t *testing.T) {
	a := newTestApp(t)
	a.addUser(t, "cm", entity.RoleContractManager)
	a.addUser(t, "admin", entity.RoleAdmin)

	cm := a.login(t, "cm")
	resp := a.do(t, http.MethodGet, "/api/dashboard", cm, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var summary dto.DashboardSummaryDTO
	decode(t, resp, &summary)
	assert.Equal(t, "contract_manager", summary.Role)

	resp = a.do(t, http.MethodGet, "/api/dashboard/technical_manager", cm, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	admin := a.login(t, "admin")
	for _, role := range []string{"admin", "contract_manager", "technical_manager"} {
		resp = a.do(t, http.MethodGet, "/api/dashboard/"+role, admin, nil)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode, role)
	}
	resp = a.do(t, http.MethodGet, "/api/dashboard/superuser", admin, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestUsers_AltaPorAdmin(t *testing.T) {
	a := newTestApp(t)
	a.addUser(t, "admin", entity.RoleAdmin)
	token := a.login(t, "admin")

	in := dto.CreateUserRequest{Username: "jdupont", Email: "j@example.com", Password: "longenough", Role: "Gestionnaire de Contrat"}
	resp := a.do(t, http.MethodPost, "/api/users", token, in)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var u dto.UserResponse
	decode(t, resp, &u)
	assert.Equal(t, "contract_manager", u.Role)

	in.Email = "other@example.com"
	resp = a.do(t, http.MethodPost, "/api/users", token, in)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	var e dto.ErrorResponse
	decode(t, resp, &e)
	assert.Equal(t, "username", e.Field)

	in = dto.CreateUserRequest{Username: "x", Email: "x@example.com", Password: "longenough", Role: "chef"}
	resp = a.do(t, http.MethodPost, "/api/users", token, in)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHealthYMetrics(t *testing.T) {
	a := newTestApp(t)

	resp := a.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	resp = a.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "contracts_api_test_http_requests_total")

	resp = a.do(t, http.MethodGet, "/api/nothing-here", "", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
