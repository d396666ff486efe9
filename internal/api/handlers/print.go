package handlers

import (
	"fmt"
	"html/template"
	"strings"

	"piscopy/internal/models"
	"piscopy/pkg/config"
)

// Printable document layout: shop letterhead, document title, customer and
// date, the items table with row subtotals and the grand total. Amounts are
// displayed rounded to two decimals; the stored total itself is not rounded.
var printTemplate = template.Must(template.New("printable").Funcs(template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
}).Parse(`<!DOCTYPE html>
<html lang="th">
<head>
<meta charset="utf-8">
<title>{{.Doc.Content.Title}}</title>
<style>
body { font-family: sans-serif; max-width: 48rem; margin: 2rem auto; }
header { text-align: center; border-bottom: 2px solid #333; padding-bottom: 1rem; }
h2 { text-align: center; }
table { width: 100%; border-collapse: collapse; margin-top: 1rem; }
th, td { border: 1px solid #999; padding: 0.4rem 0.8rem; }
td.amount, th.amount { text-align: right; }
tfoot td { font-weight: bold; background: #f5f5f5; }
footer { text-align: center; color: #666; margin-top: 2rem; border-top: 1px solid #ccc; padding-top: 1rem; }
@media print { body { margin: 0; } }
</style>
</head>
<body>
<header>
<h1>{{.Shop.Name}}</h1>
<p>{{.Shop.Location}}<br>
โทร: {{.Shop.Phone1}}, {{.Shop.Phone2}} | Line: {{.Shop.LineID}}<br>
เปิด: {{.Shop.Hours}}</p>
</header>
<h2>{{.Doc.Content.Title}}</h2>
<p>ชื่อลูกค้า/บริษัท: {{.Doc.Content.CompanyName}}<br>
วันที่: {{.Doc.Content.Date}}</p>
<table>
<thead>
<tr><th>รายการ</th><th class="amount">จำนวน</th><th class="amount">ราคา/หน่วย</th><th class="amount">รวม</th></tr>
</thead>
<tbody>
{{range .Doc.Content.Items}}<tr>
<td>{{.Description}}</td>
<td class="amount">{{.Quantity}}</td>
<td class="amount">฿{{money .Price}}</td>
<td class="amount">฿{{money .Subtotal}}</td>
</tr>
{{end}}</tbody>
<tfoot>
<tr><td colspan="3">รวมทั้งสิ้น:</td><td class="amount">฿{{money .Doc.Content.Total}}</td></tr>
</tfoot>
</table>
<footer>
<p>ขอบคุณที่ใช้บริการ {{.Shop.Name}}</p>
{{if .Doc.CompletedAt}}<p>พิมพ์เมื่อ: {{.Doc.CompletedAt}}</p>{{end}}
</footer>
</body>
</html>
`))

func renderPrintable(shop *config.ShopConfig, doc *models.Document) (string, error) {
	var buf strings.Builder
	err := printTemplate.Execute(&buf, struct {
		Shop *config.ShopConfig
		Doc  *models.Document
	}{Shop: shop, Doc: doc})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
