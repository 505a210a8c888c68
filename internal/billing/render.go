package billing

import (
	"bytes"
	"fmt"
	"html/template"
)

var invoiceTmpl = template.Must(template.New("invoice").Funcs(template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"taxPercent": func(rate float64) float64 { return rate * 100 },
	"qty": func(v float64) string {
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%.2f", v)
	},
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Number}}</title>
<style>
body { font-family: Helvetica, Arial, sans-serif; margin: 40px; color: #222; }
h1 { font-size: 22px; margin-bottom: 0; }
.muted { color: #666; font-size: 13px; }
table { width: 100%; border-collapse: collapse; margin-top: 24px; }
th, td { text-align: left; padding: 8px 6px; border-bottom: 1px solid #ddd; font-size: 14px; }
th { background: #f4f4f4; }
td.num, th.num { text-align: right; }
.totals { margin-top: 16px; width: 280px; margin-left: auto; }
.totals td { border: none; padding: 4px 6px; }
.totals .grand td { font-weight: bold; border-top: 2px solid #222; }
</style>
</head>
<body>
<h1>{{.Company.Name}}</h1>
<div class="muted">{{.Company.Address}} · {{.Company.Phone}} · {{.Company.Email}}</div>

<h2>Invoice {{.Number}}</h2>
<div class="muted">Issued {{.IssueDate.Format "2006-01-02"}} · Due {{.DueDate.Format "2006-01-02"}}</div>

<p>
<strong>Billed to:</strong> {{.Customer.Name}}{{if .Customer.Address}}, {{.Customer.Address}}{{end}}<br>
<strong>Vehicle:</strong> {{.Vehicle.Make}} {{.Vehicle.Model}}{{if .Vehicle.Year}} ({{.Vehicle.Year}}){{end}}{{if .Vehicle.LicensePlate}} · {{.Vehicle.LicensePlate}}{{end}}{{if .Vehicle.VIN}} · VIN {{.Vehicle.VIN}}{{end}}
</p>

<table>
<tr><th>Description</th><th>SKU</th><th class="num">Qty</th><th class="num">Unit price</th><th class="num">Amount</th></tr>
{{range .Items}}
<tr><td>{{.Description}}</td><td>{{.SKU}}</td><td class="num">{{qty .Quantity}}</td><td class="num">{{money .UnitPrice}}</td><td class="num">{{money .Amount}}</td></tr>
{{end}}
</table>

<table class="totals">
<tr><td>Subtotal</td><td class="num">{{money .Totals.Subtotal}}</td></tr>
<tr><td>Tax ({{printf "%.0f" (taxPercent .Totals.TaxRate)}}%)</td><td class="num">{{money .Totals.Tax}}</td></tr>
<tr class="grand"><td>Total</td><td class="num">{{money .Totals.Total}}</td></tr>
</table>
</body>
</html>
`))

// RenderHTML produces the standalone printable invoice document. It formats
// the same Invoice value the JSON preview serves, so the two renditions show
// identical numbers.
func RenderHTML(inv Invoice) ([]byte, error) {
	var buf bytes.Buffer
	if err := invoiceTmpl.Execute(&buf, inv); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
