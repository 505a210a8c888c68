package lifecycle

import (
	"errors"
	"strconv"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"autoshop/internal/config"
	"autoshop/internal/models"
)

// The lifecycle engine owns every work order mutation: who may perform it, in
// which state, and keeping total_amount consistent with labor and parts.
// Operations take the db handle and an explicit Caller so they are testable
// without the HTTP layer.

// TransitionStatus funnels every status change through one place. Today any
// known state may follow any other; tightening the graph later (for example
// disallowing completed to pending) only touches this function.
func TransitionStatus(from, to models.OrderStatus) (models.OrderStatus, error) {
	if !to.Valid() {
		return "", newValidationError("status", "must be one of pending, in_progress, completed")
	}
	return to, nil
}

// ResolveVehicle looks a vehicle up by its canonical uuid or, for callers
// still holding ids from the old system, by its legacy integer id.
func ResolveVehicle(db *gorm.DB, ref string) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	var err error
	if legacyID, convErr := strconv.ParseInt(ref, 10, 64); convErr == nil {
		err = db.Where("legacy_id = ?", legacyID).First(&vehicle).Error
	} else {
		if _, parseErr := uuid.Parse(ref); parseErr != nil {
			return nil, ErrNotFound
		}
		err = db.Where("id = ?", ref).First(&vehicle).Error
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &vehicle, nil
}

type CreateOrderInput struct {
	VehicleID          string
	Title              string
	Description        string
	AssignedMechanicID *string
	LaborHours         float64
	LaborRate          *float64
}

// CreateOrder opens a new work order in the pending state. Admin only; the
// owning customer is resolved from the vehicle at creation time.
func CreateOrder(db *gorm.DB, caller Caller, input CreateOrderInput) (*models.WorkOrder, error) {
	if !caller.IsAdmin() {
		return nil, ErrForbidden
	}
	if input.Title == "" {
		return nil, newValidationError("title", "is required")
	}
	if input.LaborHours < 0 {
		return nil, newValidationError("labor_hours", "must not be negative")
	}

	vehicle, err := ResolveVehicle(db, input.VehicleID)
	if err != nil {
		return nil, err
	}

	laborRate := config.DefaultLaborRate()
	if input.LaborRate != nil {
		if *input.LaborRate < 0 {
			return nil, newValidationError("labor_rate", "must not be negative")
		}
		laborRate = *input.LaborRate
	}

	if input.AssignedMechanicID != nil {
		var mechanic models.User
		err := db.Where("id = ? AND role = ?", *input.AssignedMechanicID, models.RoleMechanic).First(&mechanic).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newValidationError("assigned_mechanic", "unknown mechanic")
		} else if err != nil {
			return nil, err
		}
	}

	order := models.WorkOrder{
		VehicleID:          vehicle.ID,
		CustomerID:         vehicle.CustomerID,
		AssignedMechanicID: input.AssignedMechanicID,
		Title:              input.Title,
		Description:        input.Description,
		Status:             models.StatusPending,
		LaborHours:         input.LaborHours,
		LaborRate:          laborRate,
		TotalAmount:        input.LaborHours * laborRate,
	}
	if err := db.Create(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrder fetches one work order with its relations. An order that exists
// but is not visible to the caller reports ErrNotFound, same as an absent
// one, so responses never reveal which it was.
func GetOrder(db *gorm.DB, caller Caller, id string) (*models.WorkOrder, error) {
	order, err := fetchOrder(db, id)
	if err != nil {
		return nil, err
	}
	if !CanViewOrder(caller, order) {
		return nil, ErrNotFound
	}
	return order, nil
}

// ListOrders returns the caller's visible work orders, newest first.
func ListOrders(db *gorm.DB, caller Caller) ([]models.WorkOrder, error) {
	orders := []models.WorkOrder{}
	err := ScopeOrders(db, caller).
		Preload("Vehicle").
		Preload("Customer").
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// AdminOrderUpdate is the full partial-update payload. Only admins may apply
// it; nil fields are left untouched.
type AdminOrderUpdate struct {
	Title              *string
	Description        *string
	Status             *models.OrderStatus
	AssignedMechanicID *string
	LaborHours         *float64
	LaborRate          *float64
}

// MechanicOrderUpdate is the only shape a mechanic may apply to an assigned
// order. Anything else in the request body is dropped before it gets here.
type MechanicOrderUpdate struct {
	Status      *models.OrderStatus
	Description *string
}

// UpdateOrderAdmin applies an admin's partial update, recomputing the total
// when labor fields change.
func UpdateOrderAdmin(db *gorm.DB, caller Caller, id string, update AdminOrderUpdate) (*models.WorkOrder, error) {
	if !caller.IsAdmin() {
		return nil, ErrForbidden
	}
	order, err := fetchOrder(db, id)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		if *update.Title == "" {
			return nil, newValidationError("title", "must not be empty")
		}
		order.Title = *update.Title
	}
	if update.Description != nil {
		order.Description = *update.Description
	}
	if update.Status != nil {
		next, err := TransitionStatus(order.Status, *update.Status)
		if err != nil {
			return nil, err
		}
		order.Status = next
	}
	if update.AssignedMechanicID != nil {
		var mechanic models.User
		err := db.Where("id = ? AND role = ?", *update.AssignedMechanicID, models.RoleMechanic).First(&mechanic).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newValidationError("assigned_mechanic", "unknown mechanic")
		} else if err != nil {
			return nil, err
		}
		order.AssignedMechanicID = update.AssignedMechanicID
	}

	laborChanged := false
	if update.LaborHours != nil {
		if *update.LaborHours < 0 {
			return nil, newValidationError("labor_hours", "must not be negative")
		}
		order.LaborHours = *update.LaborHours
		laborChanged = true
	}
	if update.LaborRate != nil {
		if *update.LaborRate < 0 {
			return nil, newValidationError("labor_rate", "must not be negative")
		}
		order.LaborRate = *update.LaborRate
		laborChanged = true
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(order).Error; err != nil {
			return err
		}
		if laborChanged {
			return recomputeTotal(tx, order)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateOrderMechanic applies a mechanic's restricted update to an order
// assigned to them. A non-assigned order is indistinguishable from a missing
// one.
func UpdateOrderMechanic(db *gorm.DB, caller Caller, id string, update MechanicOrderUpdate) (*models.WorkOrder, error) {
	order, err := fetchOrder(db, id)
	if err != nil {
		return nil, err
	}
	if !CanViewOrder(caller, order) {
		return nil, ErrNotFound
	}

	if update.Status != nil {
		next, err := TransitionStatus(order.Status, *update.Status)
		if err != nil {
			return nil, err
		}
		order.Status = next
	}
	if update.Description != nil {
		order.Description = *update.Description
	}

	if err := db.Omit(clause.Associations).Save(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

// DeleteOrder removes an order and its line items. Admin only. Inventory
// consumed by the order's parts is not restored.
func DeleteOrder(db *gorm.DB, caller Caller, id string) error {
	if !caller.IsAdmin() {
		return ErrForbidden
	}
	order, err := fetchOrder(db, id)
	if err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("work_order_id = ?", order.ID).Delete(&models.WorkOrderPart{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.WorkOrder{}, "id = ?", order.ID).Error
	})
}

type AddPartInput struct {
	InventoryItemID *string
	CustomName      string
	CustomSKU       string
	QuantityUsed    int
	UnitPrice       float64
	CostPrice       *float64
}

// AddPart records a line item on an order and, when the part comes from
// inventory, decrements that item's stock by the quantity used. Stock has no
// floor and may go negative. The insert, the stock decrement, and the total
// recompute commit or fail as one transaction.
func AddPart(db *gorm.DB, caller Caller, orderID string, input AddPartInput) (*models.WorkOrderPart, error) {
	order, err := fetchOrder(db, orderID)
	if err != nil {
		return nil, err
	}
	if !CanEditParts(caller, order) {
		return nil, ErrNotFound
	}
	if order.Status == models.StatusCompleted {
		return nil, ErrForbidden
	}

	fromInventory := input.InventoryItemID != nil && *input.InventoryItemID != ""
	if fromInventory == (input.CustomName != "") {
		return nil, newValidationError("inventory_item_id", "exactly one of inventory_item_id or custom_name must be set")
	}
	if input.QuantityUsed <= 0 {
		return nil, newValidationError("quantity_used", "must be greater than zero")
	}
	if input.UnitPrice < 0 {
		return nil, newValidationError("unit_price", "must not be negative")
	}

	part := models.WorkOrderPart{
		WorkOrderID:  order.ID,
		QuantityUsed: input.QuantityUsed,
		UnitPrice:    input.UnitPrice,
		CostPrice:    input.CostPrice,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if fromInventory {
			var item models.InventoryItem
			err := tx.Where("id = ?", *input.InventoryItemID).First(&item).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return newValidationError("inventory_item_id", "unknown inventory item")
			} else if err != nil {
				return err
			}
			part.InventoryItemID = &item.ID
			if err := tx.Model(&models.InventoryItem{}).
				Where("id = ?", item.ID).
				Update("stock_quantity", gorm.Expr("stock_quantity - ?", input.QuantityUsed)).Error; err != nil {
				return err
			}
		} else {
			part.CustomName = input.CustomName
			part.CustomSKU = input.CustomSKU
		}

		if err := tx.Create(&part).Error; err != nil {
			return err
		}
		return recomputeTotal(tx, order)
	})
	if err != nil {
		return nil, err
	}
	return &part, nil
}

type UpdatePartInput struct {
	QuantityUsed *int
	UnitPrice    *float64
	CostPrice    *float64
}

// UpdatePart changes the billed quantity or pricing on a line item. Stock is
// not re-adjusted when the quantity changes; only AddPart touches inventory.
func UpdatePart(db *gorm.DB, caller Caller, orderID, partID string, input UpdatePartInput) (*models.WorkOrderPart, error) {
	order, part, err := fetchOrderPart(db, caller, orderID, partID)
	if err != nil {
		return nil, err
	}
	if order.Status == models.StatusCompleted {
		return nil, ErrForbidden
	}

	if input.QuantityUsed != nil {
		if *input.QuantityUsed <= 0 {
			return nil, newValidationError("quantity_used", "must be greater than zero")
		}
		part.QuantityUsed = *input.QuantityUsed
	}
	if input.UnitPrice != nil {
		if *input.UnitPrice < 0 {
			return nil, newValidationError("unit_price", "must not be negative")
		}
		part.UnitPrice = *input.UnitPrice
	}
	if input.CostPrice != nil {
		part.CostPrice = input.CostPrice
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(part).Error; err != nil {
			return err
		}
		return recomputeTotal(tx, order)
	})
	if err != nil {
		return nil, err
	}
	return part, nil
}

// DeletePart removes a line item and recomputes the order total. The stock
// the part consumed stays consumed.
func DeletePart(db *gorm.DB, caller Caller, orderID, partID string) error {
	order, part, err := fetchOrderPart(db, caller, orderID, partID)
	if err != nil {
		return err
	}
	if order.Status == models.StatusCompleted {
		return ErrForbidden
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.WorkOrderPart{}, "id = ?", part.ID).Error; err != nil {
			return err
		}
		return recomputeTotal(tx, order)
	})
}

// ListParts returns an order's line items in insertion order.
func ListParts(db *gorm.DB, caller Caller, orderID string) ([]models.WorkOrderPart, error) {
	order, err := fetchOrder(db, orderID)
	if err != nil {
		return nil, err
	}
	if !CanViewOrder(caller, order) {
		return nil, ErrNotFound
	}
	parts := []models.WorkOrderPart{}
	err = db.Where("work_order_id = ?", order.ID).
		Preload("InventoryItem").
		// id breaks ties between parts created in the same timestamp tick,
		// keeping invoice line items in a stable order.
		Order("created_at ASC, id ASC").
		Find(&parts).Error
	if err != nil {
		return nil, err
	}
	return parts, nil
}

func fetchOrder(db *gorm.DB, id string) (*models.WorkOrder, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	var order models.WorkOrder
	err := db.Where("id = ?", id).
		Preload("Vehicle").
		Preload("Customer").
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

func fetchOrderPart(db *gorm.DB, caller Caller, orderID, partID string) (*models.WorkOrder, *models.WorkOrderPart, error) {
	order, err := fetchOrder(db, orderID)
	if err != nil {
		return nil, nil, err
	}
	if !CanEditParts(caller, order) {
		return nil, nil, ErrNotFound
	}
	if _, err := uuid.Parse(partID); err != nil {
		return nil, nil, ErrNotFound
	}
	var part models.WorkOrderPart
	err = db.Where("id = ? AND work_order_id = ?", partID, order.ID).First(&part).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	return order, &part, nil
}

// recomputeTotal re-derives total_amount from the order's labor fields and
// the sum of its line items, inside the caller's transaction.
func recomputeTotal(tx *gorm.DB, order *models.WorkOrder) error {
	var partsTotal float64
	row := tx.Model(&models.WorkOrderPart{}).
		Where("work_order_id = ?", order.ID).
		Select("COALESCE(SUM(quantity_used * unit_price), 0)").
		Row()
	if err := row.Scan(&partsTotal); err != nil {
		return err
	}
	order.TotalAmount = order.LaborHours*order.LaborRate + partsTotal
	return tx.Model(&models.WorkOrder{}).
		Where("id = ?", order.ID).
		Update("total_amount", order.TotalAmount).Error
}
