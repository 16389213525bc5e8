// Package invoice turns an order and its line items into a printable
// document. Rendering is pure string construction: delivery (print,
// download, share) is handled by the HTTP layer.
package invoice

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/shopspring/decimal"

	"shopstock/internal/model"
)

// Language selects the invoice layout and label set.
type Language string

const (
	LangEnglish Language = "en"
	LangArabic  Language = "ar"
)

// labels holds every localized string the document uses.
type labels struct {
	Title      string
	InvoiceNo  string
	Date       string
	Client     string
	Item       string
	Quantity   string
	Price      string
	Total      string
	GrandTotal string
	Dir        string
}

var labelSets = map[Language]labels{
	LangEnglish: {
		Title:      "Invoice",
		InvoiceNo:  "Invoice No",
		Date:       "Date",
		Client:     "Client",
		Item:       "Item",
		Quantity:   "Quantity",
		Price:      "Price",
		Total:      "Total",
		GrandTotal: "Grand Total",
		Dir:        "ltr",
	},
	LangArabic: {
		Title:      "فاتورة",
		InvoiceNo:  "رقم الفاتورة",
		Date:       "التاريخ",
		Client:     "العميل",
		Item:       "الصنف",
		Quantity:   "الكمية",
		Price:      "السعر",
		Total:      "المجموع",
		GrandTotal: "المجموع الكلي",
		Dir:        "rtl",
	},
}

// The style block is inlined so the document stays self-contained and can be
// handed straight to a print dialog or saved as a file.
var docTemplate = template.Must(template.New("invoice").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}" dir="{{.L.Dir}}">
<head>
<meta charset="utf-8">
<title>{{.L.Title}} {{.InvoiceNo}}</title>
<style>
body { font-family: Arial, sans-serif; margin: 40px; color: #222; }
h1 { font-size: 24px; margin-bottom: 4px; }
.meta { margin-bottom: 24px; }
.meta div { margin: 2px 0; }
table { width: 100%; border-collapse: collapse; }
th, td { border: 1px solid #999; padding: 8px; text-align: {{if eq .L.Dir "rtl"}}right{{else}}left{{end}}; }
th { background: #f0f0f0; }
.grand { font-weight: bold; font-size: 18px; margin-top: 16px; }
</style>
</head>
<body>
<h1>{{.L.Title}}</h1>
<div class="meta">
<div>{{.L.InvoiceNo}}: {{.InvoiceNo}}</div>
<div>{{.L.Date}}: {{.Date}}</div>
<div>{{.L.Client}}: {{.ClientName}}</div>
</div>
<table>
<thead>
<tr><th>{{.L.Item}}</th><th>{{.L.Quantity}}</th><th>{{.L.Price}}</th><th>{{.L.Total}}</th></tr>
</thead>
<tbody>
{{range .Lines}}<tr><td>{{.Name}}</td><td>{{.Quantity}}</td><td>{{.Price}}</td><td>{{.Total}}</td></tr>
{{end}}</tbody>
</table>
<div class="grand">{{.L.GrandTotal}}: {{.GrandTotal}}</div>
</body>
</html>
`))

type lineView struct {
	Name     string
	Quantity int
	Price    string
	Total    string
}

type docView struct {
	Lang       Language
	L          labels
	InvoiceNo  string
	Date       string
	ClientName string
	Lines      []lineView
	GrandTotal string
}

// Render produces a self-contained HTML invoice for the order. The grand
// total is recomputed from items so the document can never disagree with its
// own lines, whatever order.TotalAmount says. Rendering the same inputs
// twice yields byte-identical output.
func Render(order *model.Order, items []model.OrderItem, lang Language) (string, error) {
	l, ok := labelSets[lang]
	if !ok {
		return "", fmt.Errorf("unsupported invoice language: %q", lang)
	}

	view := docView{
		Lang:      lang,
		L:         l,
		InvoiceNo: order.ID.String(),
		Date:      order.CreatedAt.Format("02/01/2006"),
	}
	if order.Client != nil {
		view.ClientName = order.Client.Name
	}

	total := decimal.Zero
	for _, it := range items {
		lineTotal := it.LineTotal()
		total = total.Add(lineTotal)

		name := ""
		if it.Product != nil {
			name = it.Product.Name
		}
		view.Lines = append(view.Lines, lineView{
			Name:     name,
			Quantity: it.Quantity,
			Price:    decimal.NewFromFloat(it.UnitPrice).StringFixed(2),
			Total:    lineTotal.StringFixed(2),
		})
	}
	view.GrandTotal = total.StringFixed(2)

	var buf strings.Builder
	if err := docTemplate.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("failed to render invoice: %w", err)
	}
	return buf.String(), nil
}

// Filename returns the download filename for an order's invoice document.
func Filename(order *model.Order) string {
	return fmt.Sprintf("invoice_%s.html", order.ID)
}

// ShareMessage formats the plain-text summary handed to the messaging deep
// link. Independent of document rendering: either can fail or be skipped
// without affecting the other.
func ShareMessage(order *model.Order, items []model.OrderItem, lang Language) string {
	l := labelSets[LangEnglish]
	if alt, ok := labelSets[lang]; ok {
		l = alt
	}

	var b strings.Builder
	b.WriteString(l.Title)
	b.WriteString(" ")
	b.WriteString(order.ID.String())
	b.WriteString("\n")
	for _, it := range items {
		name := ""
		if it.Product != nil {
			name = it.Product.Name
		}
		fmt.Fprintf(&b, "%s x%d = %s\n", name, it.Quantity, it.LineTotal().StringFixed(2))
	}
	fmt.Fprintf(&b, "%s: %s", l.GrandTotal, model.ItemsTotal(items).StringFixed(2))
	return b.String()
}
