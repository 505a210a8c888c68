package lifecycle_test

import (
	"testing"

	"autoshop/internal/lifecycle"
	"autoshop/internal/models"
)

func TestCanViewOrder(t *testing.T) {
	mechID := "11111111-1111-1111-1111-111111111111"
	otherID := "22222222-2222-2222-2222-222222222222"

	assigned := &models.WorkOrder{AssignedMechanicID: &mechID}
	unassigned := &models.WorkOrder{}

	tests := []struct {
		name   string
		caller lifecycle.Caller
		order  *models.WorkOrder
		want   bool
	}{
		{"admin sees assigned", lifecycle.Caller{ID: otherID, Role: models.RoleAdmin}, assigned, true},
		{"admin sees unassigned", lifecycle.Caller{ID: otherID, Role: models.RoleAdmin}, unassigned, true},
		{"assigned mechanic sees own", lifecycle.Caller{ID: mechID, Role: models.RoleMechanic}, assigned, true},
		{"other mechanic blind to it", lifecycle.Caller{ID: otherID, Role: models.RoleMechanic}, assigned, false},
		{"mechanic blind to unassigned", lifecycle.Caller{ID: mechID, Role: models.RoleMechanic}, unassigned, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := lifecycle.CanViewOrder(tt.caller, tt.order); got != tt.want {
				t.Errorf("CanViewOrder = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanViewAppointment(t *testing.T) {
	mechID := "11111111-1111-1111-1111-111111111111"

	assigned := &models.Appointment{AssignedMechanicID: &mechID}
	unassigned := &models.Appointment{}

	admin := lifecycle.Caller{ID: "x", Role: models.RoleAdmin}
	mech := lifecycle.Caller{ID: mechID, Role: models.RoleMechanic}

	if !lifecycle.CanViewAppointment(admin, unassigned) {
		t.Error("admin should see unassigned appointment")
	}
	if !lifecycle.CanViewAppointment(mech, assigned) {
		t.Error("assigned mechanic should see own appointment")
	}
	if lifecycle.CanViewAppointment(mech, unassigned) {
		t.Error("mechanic should not see unassigned appointment")
	}
}

func TestScopeOrdersFiltersMechanics(t *testing.T) {
	db := setupDB(t)
	vehicle := seedVehicle(t, db)
	mech := seedMechanic(t, db, "scope@shop.test")

	if _, err := lifecycle.CreateOrder(db, adminCaller(), lifecycle.CreateOrderInput{
		VehicleID: vehicle.ID, Title: "Unassigned job",
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := lifecycle.CreateOrder(db, adminCaller(), lifecycle.CreateOrderInput{
		VehicleID: vehicle.ID, Title: "Assigned job", AssignedMechanicID: &mech.ID,
	}); err != nil {
		t.Fatal(err)
	}

	var mine []models.WorkOrder
	if err := lifecycle.ScopeOrders(db, lifecycle.Caller{ID: mech.ID, Role: models.RoleMechanic}).Find(&mine).Error; err != nil {
		t.Fatal(err)
	}
	if len(mine) != 1 || mine[0].Title != "Assigned job" {
		t.Errorf("mechanic scope returned %d orders", len(mine))
	}

	var all []models.WorkOrder
	if err := lifecycle.ScopeOrders(db, adminCaller()).Find(&all).Error; err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Errorf("admin scope returned %d orders, want 2", len(all))
	}
}
