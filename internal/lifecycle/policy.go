package lifecycle

import (
	"gorm.io/gorm"

	"autoshop/internal/models"
)

// Caller identifies the authenticated user on whose behalf an operation runs.
// It is threaded explicitly through every engine call; the engine never reads
// ambient request state.
type Caller struct {
	ID   string
	Role string
}

func (c Caller) IsAdmin() bool {
	return c.Role == models.RoleAdmin
}

// CanViewOrder reports whether the caller may see this work order at all.
// Admins see everything; a mechanic sees only orders assigned to them.
func CanViewOrder(caller Caller, order *models.WorkOrder) bool {
	if caller.IsAdmin() {
		return true
	}
	return order.AssignedMechanicID != nil && *order.AssignedMechanicID == caller.ID
}

// CanEditParts reports whether the caller may add, change, or remove line
// items on this order. Same population as CanViewOrder; the completed-state
// lock is checked separately.
func CanEditParts(caller Caller, order *models.WorkOrder) bool {
	return CanViewOrder(caller, order)
}

// CanViewAppointment mirrors the work order visibility rule for appointments.
func CanViewAppointment(caller Caller, appt *models.Appointment) bool {
	if caller.IsAdmin() {
		return true
	}
	return appt.AssignedMechanicID != nil && *appt.AssignedMechanicID == caller.ID
}

// ScopeOrders narrows a work order query to the rows the caller may see.
func ScopeOrders(db *gorm.DB, caller Caller) *gorm.DB {
	if caller.IsAdmin() {
		return db
	}
	return db.Where("assigned_mechanic_id = ?", caller.ID)
}

// ScopeAppointments narrows an appointment query to the rows the caller may see.
func ScopeAppointments(db *gorm.DB, caller Caller) *gorm.DB {
	if caller.IsAdmin() {
		return db
	}
	return db.Where("assigned_mechanic_id = ?", caller.ID)
}
