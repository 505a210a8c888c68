package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"autoshop/internal/billing"
	"autoshop/internal/config"
	"autoshop/internal/lifecycle"
)

// GetInvoice serves the invoice preview as JSON. Visibility follows the work
// order itself.
func GetInvoice(c *gin.Context) {
	inv, err := buildInvoice(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoice": inv})
}

// GetInvoiceDocument serves the same invoice as a standalone printable HTML
// document.
func GetInvoiceDocument(c *gin.Context) {
	inv, err := buildInvoice(c)
	if err != nil {
		respondError(c, err)
		return
	}
	doc, err := billing.RenderHTML(inv)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.html", inv.Number))
	c.Data(http.StatusOK, "text/html; charset=utf-8", doc)
}

func buildInvoice(c *gin.Context) (billing.Invoice, error) {
	caller := callerFrom(c)
	order, err := lifecycle.GetOrder(config.DB, caller, c.Param("id"))
	if err != nil {
		return billing.Invoice{}, err
	}
	parts, err := lifecycle.ListParts(config.DB, caller, order.ID)
	if err != nil {
		return billing.Invoice{}, err
	}
	return billing.Build(order, parts, config.TaxRate(), time.Now()), nil
}
