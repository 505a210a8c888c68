package billing_test

import (
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"autoshop/internal/billing"
	"autoshop/internal/models"
)

func sampleOrder() (*models.WorkOrder, []models.WorkOrderPart) {
	order := &models.WorkOrder{
		ID:         "b54f9a3c-1d2e-4f56-9a7b-8c9d0e1f2a3b",
		Title:      "Brake replacement",
		Status:     models.StatusCompleted,
		LaborHours: 2,
		LaborRate:  75.00,
		Customer:   &models.Customer{Name: "Dana Ferreira"},
		Vehicle:    &models.Vehicle{Make: "Toyota", Model: "Corolla", Year: 2014},
	}
	parts := []models.WorkOrderPart{
		{CustomName: "Brake pads", QuantityUsed: 2, UnitPrice: 40.00},
	}
	return order, parts
}

func TestComputeScenario(t *testing.T) {
	order, parts := sampleOrder()
	totals := billing.Compute(order, parts, 0.22)

	if !almost(totals.LaborTotal, 150.00) {
		t.Errorf("labor = %v, want 150.00", totals.LaborTotal)
	}
	if !almost(totals.PartsTotal, 80.00) {
		t.Errorf("parts = %v, want 80.00", totals.PartsTotal)
	}
	if !almost(totals.Subtotal, 230.00) {
		t.Errorf("subtotal = %v, want 230.00", totals.Subtotal)
	}
	if !almost(totals.Tax, 50.60) {
		t.Errorf("tax = %v, want 50.60", totals.Tax)
	}
	if !almost(totals.Total, 280.60) {
		t.Errorf("total = %v, want 280.60", totals.Total)
	}
}

func TestComputeIsIdempotent(t *testing.T) {
	order, parts := sampleOrder()
	first := billing.Compute(order, parts, 0.22)
	second := billing.Compute(order, parts, 0.22)
	if first != second {
		t.Errorf("repeated computation differs: %+v vs %+v", first, second)
	}

	// And it never mutates its inputs.
	if order.LaborHours != 2 || parts[0].QuantityUsed != 2 {
		t.Error("Compute mutated its inputs")
	}
}

func TestInvoiceNumber(t *testing.T) {
	got := billing.InvoiceNumber("b54f9a3c-1d2e-4f56-9a7b-8c9d0e1f2a3b")
	if got != "INV-B54F9A3C" {
		t.Errorf("InvoiceNumber = %q, want INV-B54F9A3C", got)
	}
	// Deterministic for the same id.
	if again := billing.InvoiceNumber("b54f9a3c-1d2e-4f56-9a7b-8c9d0e1f2a3b"); again != got {
		t.Errorf("InvoiceNumber not stable: %q vs %q", got, again)
	}
}

func TestBuildDates(t *testing.T) {
	order, parts := sampleOrder()
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	inv := billing.Build(order, parts, 0.22, now)

	if !inv.IssueDate.Equal(now) {
		t.Errorf("issue date = %v, want %v", inv.IssueDate, now)
	}
	want := now.AddDate(0, 0, 30)
	if !inv.DueDate.Equal(want) {
		t.Errorf("due date = %v, want %v", inv.DueDate, want)
	}
	// Labor row first, then one row per part.
	if len(inv.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(inv.Items))
	}
	if inv.Items[0].Description != "Labor (Brake replacement)" {
		t.Errorf("first item = %q, want labor row", inv.Items[0].Description)
	}
}

func TestRenderedDocumentMatchesPreviewTotals(t *testing.T) {
	order, parts := sampleOrder()
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	inv := billing.Build(order, parts, 0.22, now)

	doc, err := billing.RenderHTML(inv)
	if err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}
	html := string(doc)

	for _, want := range []string{
		inv.Number,
		fmt.Sprintf("%.2f", inv.Totals.Subtotal),
		fmt.Sprintf("%.2f", inv.Totals.Tax),
		fmt.Sprintf("%.2f", inv.Totals.Total),
		"Dana Ferreira",
		"Toyota Corolla",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered document missing %q", want)
		}
	}
}

func almost(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
