// Package billing derives invoice documents from a work order and its line
// items. Everything here is a pure view over its inputs: computing an invoice
// never mutates the order or its parts, and the same snapshot always yields
// the same numbers.
package billing

import (
	"strings"
	"time"

	"autoshop/internal/config"
	"autoshop/internal/models"
)

// DueDays is how long after issue an invoice falls due.
const DueDays = 30

type Totals struct {
	PartsTotal float64 `json:"parts_total"`
	LaborTotal float64 `json:"labor_total"`
	Subtotal   float64 `json:"subtotal"`
	TaxRate    float64 `json:"tax_rate"`
	Tax        float64 `json:"tax"`
	Total      float64 `json:"total"`
}

// Compute derives the totals block for an order snapshot at the given tax
// rate. The rate is passed in rather than read here so the computation stays
// a pure function.
func Compute(order *models.WorkOrder, parts []models.WorkOrderPart, taxRate float64) Totals {
	var partsTotal float64
	for _, p := range parts {
		partsTotal += float64(p.QuantityUsed) * p.UnitPrice
	}
	laborTotal := order.LaborHours * order.LaborRate
	subtotal := partsTotal + laborTotal
	tax := subtotal * taxRate
	return Totals{
		PartsTotal: partsTotal,
		LaborTotal: laborTotal,
		Subtotal:   subtotal,
		TaxRate:    taxRate,
		Tax:        tax,
		Total:      subtotal + tax,
	}
}

// InvoiceNumber derives a stable invoice number from the order's uuid: the
// first 8 hex characters, uppercased, behind an INV- prefix.
func InvoiceNumber(orderID string) string {
	hex := strings.ReplaceAll(orderID, "-", "")
	if len(hex) > 8 {
		hex = hex[:8]
	}
	return "INV-" + strings.ToUpper(hex)
}

// LineItem is one row on the rendered invoice. Internal cost prices never
// appear here.
type LineItem struct {
	Description string  `json:"description"`
	SKU         string  `json:"sku,omitempty"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Amount      float64 `json:"amount"`
}

type Party struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
}

type VehicleSnapshot struct {
	Make         string `json:"make"`
	Model        string `json:"model"`
	Year         int    `json:"year,omitempty"`
	LicensePlate string `json:"license_plate,omitempty"`
	VIN          string `json:"vin,omitempty"`
}

// Invoice is the renderable document: one labor row, one row per part, and
// the totals block. The JSON preview and the printable rendition are both
// built from this same value, so their numbers cannot diverge.
type Invoice struct {
	Number     string          `json:"number"`
	IssueDate  time.Time       `json:"issue_date"`
	DueDate    time.Time       `json:"due_date"`
	Company    Party           `json:"company"`
	Customer   Party           `json:"customer"`
	Vehicle    VehicleSnapshot `json:"vehicle"`
	OrderTitle string          `json:"order_title"`
	Items      []LineItem      `json:"items"`
	Totals     Totals          `json:"totals"`
}

// Build assembles the invoice for an order snapshot. now is injected so the
// issue and due dates are deterministic under test.
func Build(order *models.WorkOrder, parts []models.WorkOrderPart, taxRate float64, now time.Time) Invoice {
	items := make([]LineItem, 0, len(parts)+1)
	items = append(items, LineItem{
		Description: "Labor (" + order.Title + ")",
		Quantity:    order.LaborHours,
		UnitPrice:   order.LaborRate,
		Amount:      order.LaborHours * order.LaborRate,
	})
	for _, p := range parts {
		sku := p.CustomSKU
		if p.InventoryItem != nil {
			sku = p.InventoryItem.SKU
		}
		items = append(items, LineItem{
			Description: p.Name(),
			SKU:         sku,
			Quantity:    float64(p.QuantityUsed),
			UnitPrice:   p.UnitPrice,
			Amount:      float64(p.QuantityUsed) * p.UnitPrice,
		})
	}

	inv := Invoice{
		Number:    InvoiceNumber(order.ID),
		IssueDate: now,
		DueDate:   now.AddDate(0, 0, DueDays),
		Company: Party{
			Name:    config.CompanyName,
			Address: config.CompanyAddress,
			Phone:   config.CompanyPhone,
			Email:   config.CompanyEmail,
		},
		OrderTitle: order.Title,
		Items:      items,
		Totals:     Compute(order, parts, taxRate),
	}
	if order.Customer != nil {
		inv.Customer = Party{
			Name:    order.Customer.Name,
			Address: order.Customer.Address,
			Phone:   order.Customer.Phone,
			Email:   order.Customer.Email,
		}
	}
	if order.Vehicle != nil {
		inv.Vehicle = VehicleSnapshot{
			Make:         order.Vehicle.Make,
			Model:        order.Vehicle.Model,
			Year:         order.Vehicle.Year,
			LicensePlate: order.Vehicle.LicensePlate,
			VIN:          order.Vehicle.VIN,
		}
	}
	return inv
}
