package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"autoshop/internal/config"
	"autoshop/internal/middleware"
	"autoshop/internal/models"
	"autoshop/internal/routes"
)

type testEnv struct {
	router        *gin.Engine
	admin         *models.User
	mechanic      *models.User
	otherMechanic *models.User
	adminToken    string
	mechToken     string
	otherToken    string
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Vehicle{},
		&models.WorkOrder{},
		&models.WorkOrderPart{},
		&models.InventoryItem{},
		&models.Appointment{},
	)
	if err != nil {
		t.Fatal(err)
	}
	config.DB = db

	env := &testEnv{router: routes.SetupRouter()}
	env.admin = seedUser(t, db, "admin@shop.test", models.RoleAdmin)
	env.mechanic = seedUser(t, db, "mech@shop.test", models.RoleMechanic)
	env.otherMechanic = seedUser(t, db, "other@shop.test", models.RoleMechanic)
	env.adminToken = tokenFor(t, env.admin)
	env.mechToken = tokenFor(t, env.mechanic)
	env.otherToken = tokenFor(t, env.otherMechanic)
	return env
}

func seedUser(t *testing.T, db *gorm.DB, email, role string) *models.User {
	t.Helper()
	user := models.User{Email: email, Password: "hash", FullName: "Test User", Role: role}
	if err := db.Create(&user).Error; err != nil {
		t.Fatal(err)
	}
	return &user
}

func tokenFor(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := middleware.GenerateToken(user.ID, user.Role)
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) seedVehicle(t *testing.T) *models.Vehicle {
	t.Helper()
	customer := models.Customer{Name: "Dana Ferreira"}
	if err := config.DB.Create(&customer).Error; err != nil {
		t.Fatal(err)
	}
	vehicle := models.Vehicle{CustomerID: customer.ID, Make: "Toyota", Model: "Corolla"}
	if err := config.DB.Create(&vehicle).Error; err != nil {
		t.Fatal(err)
	}
	return &vehicle
}

func (e *testEnv) createOrder(t *testing.T, body map[string]interface{}) map[string]interface{} {
	t.Helper()
	w := e.do(t, http.MethodPost, "/work-orders", e.adminToken, body)
	if w.Code != http.StatusCreated {
		t.Fatalf("create order: status %d body %s", w.Code, w.Body.String())
	}
	var resp struct {
		WorkOrder map[string]interface{} `json:"work_order"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	return resp.WorkOrder
}

func TestWorkOrdersRequireAuth(t *testing.T) {
	env := setupEnv(t)
	w := env.do(t, http.MethodGet, "/work-orders", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestMechanicCannotSeeUnassignedOrder(t *testing.T) {
	env := setupEnv(t)
	vehicle := env.seedVehicle(t)
	order := env.createOrder(t, map[string]interface{}{
		"vehicle_id":        vehicle.ID,
		"title":             "Brake replacement",
		"assigned_mechanic": env.mechanic.ID,
	})
	orderID := order["id"].(string)

	// The assigned mechanic sees it; another mechanic gets a plain 404, the
	// same answer a missing order would give.
	if w := env.do(t, http.MethodGet, "/work-orders/"+orderID, env.mechToken, nil); w.Code != http.StatusOK {
		t.Errorf("assigned mechanic: status = %d, want 200", w.Code)
	}
	if w := env.do(t, http.MethodGet, "/work-orders/"+orderID, env.otherToken, nil); w.Code != http.StatusNotFound {
		t.Errorf("other mechanic: status = %d, want 404", w.Code)
	}
	if w := env.do(t, http.MethodPut, "/work-orders/"+orderID, env.otherToken, map[string]interface{}{
		"status": "completed",
	}); w.Code != http.StatusNotFound {
		t.Errorf("other mechanic update: status = %d, want 404", w.Code)
	}
}

func TestMechanicUpdateIgnoresForbiddenFields(t *testing.T) {
	env := setupEnv(t)
	vehicle := env.seedVehicle(t)
	order := env.createOrder(t, map[string]interface{}{
		"vehicle_id":        vehicle.ID,
		"title":             "Brake replacement",
		"labor_hours":       2,
		"assigned_mechanic": env.mechanic.ID,
	})
	orderID := order["id"].(string)

	w := env.do(t, http.MethodPut, "/work-orders/"+orderID, env.mechToken, map[string]interface{}{
		"status":            "completed",
		"labor_rate":        999,
		"assigned_mechanic": env.otherMechanic.ID,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body %s", w.Code, w.Body.String())
	}

	var after models.WorkOrder
	if err := config.DB.First(&after, "id = ?", orderID).Error; err != nil {
		t.Fatal(err)
	}
	if after.Status != models.StatusCompleted {
		t.Errorf("status = %s, want completed", after.Status)
	}
	if after.LaborRate != 75.00 {
		t.Errorf("labor_rate = %v, want 75.00 (ignored)", after.LaborRate)
	}
	if after.AssignedMechanicID == nil || *after.AssignedMechanicID != env.mechanic.ID {
		t.Error("assigned_mechanic changed by mechanic update")
	}
}

func TestDeleteWorkOrderAdminOnly(t *testing.T) {
	env := setupEnv(t)
	vehicle := env.seedVehicle(t)
	order := env.createOrder(t, map[string]interface{}{
		"vehicle_id":        vehicle.ID,
		"title":             "Brake replacement",
		"assigned_mechanic": env.mechanic.ID,
	})
	orderID := order["id"].(string)

	if w := env.do(t, http.MethodDelete, "/work-orders/"+orderID, env.mechToken, nil); w.Code != http.StatusForbidden {
		t.Errorf("mechanic delete: status = %d, want 403", w.Code)
	}
	if w := env.do(t, http.MethodDelete, "/work-orders/"+orderID, env.adminToken, nil); w.Code != http.StatusOK {
		t.Errorf("admin delete: status = %d, want 200", w.Code)
	}
	if w := env.do(t, http.MethodGet, "/work-orders/"+orderID, env.adminToken, nil); w.Code != http.StatusNotFound {
		t.Errorf("after delete: status = %d, want 404", w.Code)
	}
}

func TestAddPartValidationAndCompletedLock(t *testing.T) {
	env := setupEnv(t)
	vehicle := env.seedVehicle(t)
	order := env.createOrder(t, map[string]interface{}{
		"vehicle_id": vehicle.ID,
		"title":      "Brake replacement",
	})
	orderID := order["id"].(string)

	// Neither inventory reference nor custom name.
	w := env.do(t, http.MethodPost, "/work-orders/"+orderID+"/parts", env.adminToken, map[string]interface{}{
		"quantity_used": 1,
		"unit_price":    10,
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid part: status = %d, want 400", w.Code)
	}

	// Valid custom part.
	w = env.do(t, http.MethodPost, "/work-orders/"+orderID+"/parts", env.adminToken, map[string]interface{}{
		"custom_name":   "Brake pads",
		"quantity_used": 2,
		"unit_price":    40,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("add part: status = %d body %s", w.Code, w.Body.String())
	}

	// Complete the order, then parts are locked.
	if w := env.do(t, http.MethodPut, "/work-orders/"+orderID, env.adminToken, map[string]interface{}{
		"status": "completed",
	}); w.Code != http.StatusOK {
		t.Fatalf("complete: status = %d", w.Code)
	}
	w = env.do(t, http.MethodPost, "/work-orders/"+orderID+"/parts", env.adminToken, map[string]interface{}{
		"custom_name":   "Rotor",
		"quantity_used": 1,
		"unit_price":    90,
	})
	if w.Code != http.StatusForbidden {
		t.Errorf("add part to completed: status = %d, want 403", w.Code)
	}
}

func TestInvoicePreviewAndDocumentAgree(t *testing.T) {
	env := setupEnv(t)
	vehicle := env.seedVehicle(t)
	order := env.createOrder(t, map[string]interface{}{
		"vehicle_id":  vehicle.ID,
		"title":       "Brake replacement",
		"labor_hours": 2,
	})
	orderID := order["id"].(string)

	w := env.do(t, http.MethodPost, "/work-orders/"+orderID+"/parts", env.adminToken, map[string]interface{}{
		"custom_name":   "Brake pads",
		"quantity_used": 2,
		"unit_price":    40,
	})
	if w.Code != http.StatusCreated {
		t.Fatal(w.Body.String())
	}

	w = env.do(t, http.MethodGet, "/work-orders/"+orderID+"/invoice", env.adminToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("invoice preview: status = %d", w.Code)
	}
	var preview struct {
		Invoice struct {
			Number string `json:"number"`
			Totals struct {
				Subtotal float64 `json:"subtotal"`
				Tax      float64 `json:"tax"`
				Total    float64 `json:"total"`
			} `json:"totals"`
		} `json:"invoice"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &preview); err != nil {
		t.Fatal(err)
	}
	if preview.Invoice.Totals.Subtotal != 230.00 {
		t.Errorf("subtotal = %v, want 230.00", preview.Invoice.Totals.Subtotal)
	}

	w = env.do(t, http.MethodGet, "/work-orders/"+orderID+"/invoice/document", env.adminToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("invoice document: status = %d", w.Code)
	}
	html := w.Body.String()
	for _, want := range []string{
		preview.Invoice.Number,
		fmt.Sprintf("%.2f", preview.Invoice.Totals.Subtotal),
		fmt.Sprintf("%.2f", preview.Invoice.Totals.Tax),
		fmt.Sprintf("%.2f", preview.Invoice.Totals.Total),
	} {
		if !bytes.Contains([]byte(html), []byte(want)) {
			t.Errorf("document missing %q", want)
		}
	}
}

func TestInventoryWritesAreAdminOnly(t *testing.T) {
	env := setupEnv(t)

	body := map[string]interface{}{"name": "Brake pads", "sku": "PAD-1", "stock_quantity": 10, "min_stock_level": 2, "price": 40}
	if w := env.do(t, http.MethodPost, "/inventory", env.mechToken, body); w.Code != http.StatusForbidden {
		t.Errorf("mechanic create item: status = %d, want 403", w.Code)
	}
	if w := env.do(t, http.MethodPost, "/inventory", env.adminToken, body); w.Code != http.StatusCreated {
		t.Errorf("admin create item: status = %d, want 201", w.Code)
	}
	// Reads stay open to mechanics.
	if w := env.do(t, http.MethodGet, "/inventory", env.mechToken, nil); w.Code != http.StatusOK {
		t.Errorf("mechanic list inventory: status = %d, want 200", w.Code)
	}
}
