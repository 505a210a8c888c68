package config

import (
	"log"
	"strconv"
)

// Company letterhead shown on rendered invoices.
const (
	CompanyName    = "Redline Auto Repair"
	CompanyAddress = "1483 Industrial Ave, Springfield"
	CompanyPhone   = "(555) 014-2200"
	CompanyEmail   = "service@redlineauto.example"
)

// TaxRate returns the single configured tax rate applied to every invoice.
// Earlier deployments disagreed on the rate, so it is configuration, never
// derived from any record.
func TaxRate() float64 {
	return getEnvFloat("TAX_RATE", 0.22)
}

// DefaultLaborRate returns the hourly rate used when a work order is created
// without one.
func DefaultLaborRate() float64 {
	return getEnvFloat("DEFAULT_LABOR_RATE", 75.00)
}

func getEnvFloat(key string, defaultValue float64) float64 {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("invalid %s value %q, using default %v", key, raw, defaultValue)
		return defaultValue
	}
	return v
}
