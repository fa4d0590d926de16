// Package pdf renders a document record into the printed artifact: a
// Letter-size paginated PDF with the company identity band, the line-item
// or scope-of-work body, and the two-column signature block. The figures it
// prints come from the same computation engine the screen preview uses, so
// the two renderings cannot diverge for the same record.
package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"

	"crportal/internal/compute"
	"crportal/internal/config"
	"crportal/internal/model"
)

// Page geometry and layout policy, in points on a Letter page.
const (
	pageW = 612.0
	pageH = 792.0

	marginX = 60.0
	headerH = 120.0
	accentH = 4.0
	footerH = 40.0

	// Content never runs into the last 120pt of a page (about six lines);
	// when less remains, the next field starts on a fresh page.
	contentFloor = pageH - 120.0

	// The signature block needs roughly 200pt; with less remaining it moves
	// to a new page whole.
	signatureFloor = pageH - 200.0

	// Character budget for wrapped scope-of-work lines.
	scopeWrap = 85
)

type rgb struct{ r, g, b int }

var (
	colBlue      = rgb{30, 58, 95}    // #1e3a5f
	colGold      = rgb{196, 164, 95}  // #c4a45f
	colDark      = rgb{15, 23, 42}    // #0f172a
	colGray      = rgb{100, 116, 139} // #64748b
	colMuted     = rgb{148, 163, 184} // #94a3b8
	colGrid      = rgb{226, 232, 240} // #e2e8f0
	colRowShade  = rgb{248, 250, 252} // #f8fafc
)

var typeBadges = map[model.Type]string{
	model.TypeInvoice:     "INVOICE",
	model.TypeChangeOrder: "CHANGE ORDER",
	model.TypeContract:    "CONTRACT",
}

// Generator renders documents against a fixed company identity.
type Generator struct {
	company config.CompanyConfig
}

// NewGenerator constructs a Generator for the given company identity.
func NewGenerator(company config.CompanyConfig) *Generator {
	return &Generator{company: company}
}

// Render produces the print artifact for doc. It is a pure function of the
// record: it never mutates doc and never touches doc.Status.
func (g *Generator) Render(doc *model.Document) ([]byte, error) {
	f := gofpdf.New("P", "pt", "Letter", "")
	f.SetAutoPageBreak(false, 0)

	p := &page{f: f, company: g.company}
	f.SetFooterFunc(p.footer)
	f.AddPage()

	p.identityBand(doc)
	p.y = 155

	p.dateLine(doc)
	p.clientBlock(doc)
	p.projectBlock(doc)

	t := compute.Compute(doc)
	if doc.Type == model.TypeContract {
		p.scopeList(doc.Items)
	} else {
		p.itemTable(doc.Items)
		p.totals(doc, t)
	}

	if ct := doc.Contract; ct != nil {
		p.textBlock("", ct.FreeformDescription, 9.5, 14, colDark)
		payment := ct.PaymentStructure
		if payment != "" {
			payment += "\n\nSum estimated to complete job: " +
				compute.FormatUSD(ct.TotalAmount) + " USD"
		}
		p.textBlock("PAYMENT STRUCTURE", payment, 9.5, 14, colDark)
		p.textBlock("TERMS & CONDITIONS", ct.ContractTerms, 8.5, 13, colDark)
	}
	if doc.Type == model.TypeChangeOrder {
		p.textBlock("PAYMENT STRUCTURE", compute.ChangeOrderSummary(doc), 9.5, 14, colDark)
	}

	p.textBlock("NOTES", doc.Notes, 9, 13, colGray)
	p.signatureBlock(doc)

	var buf bytes.Buffer
	if err := f.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// Filename is the suggested download name for the artifact.
func Filename(doc *model.Document) string {
	number := doc.DisplayNumber()
	if number == "" {
		number = "document"
	}
	return fmt.Sprintf("%s-%s.pdf", doc.Type, number)
}

// page tracks the vertical cursor top-down across page breaks.
type page struct {
	f       *gofpdf.Fpdf
	company config.CompanyConfig
	y       float64
}

func (p *page) fill(c rgb)   { p.f.SetFillColor(c.r, c.g, c.b) }
func (p *page) ink(c rgb)    { p.f.SetTextColor(c.r, c.g, c.b) }
func (p *page) stroke(c rgb) { p.f.SetDrawColor(c.r, c.g, c.b) }

func (p *page) text(x float64, s string) {
	p.f.Text(x, p.y, s)
}

func (p *page) textRight(xRight float64, s string) {
	p.f.Text(xRight-p.f.GetStringWidth(s), p.y, s)
}

func (p *page) textCentered(yBaseline float64, s string) {
	p.f.Text((pageW-p.f.GetStringWidth(s))/2, yBaseline, s)
}

// newPage starts a continuation page; only the first page carries the
// identity band.
func (p *page) newPage() {
	p.f.AddPage()
	p.y = 60
}

// breakIfNeeded forces a page break when the cursor has entered the
// reserved bottom zone. Fields call it before drawing a line so a break
// never lands mid-field.
func (p *page) breakIfNeeded() {
	if p.y > contentFloor {
		p.newPage()
	}
}

func (p *page) footer() {
	p.fill(colBlue)
	p.f.Rect(0, pageH-footerH, pageW, footerH, "F")

	p.ink(colGold)
	p.f.SetFont("Helvetica", "B", 8)
	banner := strings.ToUpper(p.company.Name+" "+p.company.LegalName) + "  |  " + p.company.Tagline
	p.textCentered(pageH-18, banner)

	p.ink(colMuted)
	p.f.SetFont("Helvetica", "", 7)
	p.textCentered(pageH-8, p.company.Phone+"  |  "+p.company.Email+"  |  "+p.company.License)
}

func (p *page) identityBand(doc *model.Document) {
	p.fill(colBlue)
	p.f.Rect(0, 0, pageW, headerH, "F")

	p.ink(rgb{255, 255, 255})
	p.f.SetFont("Helvetica", "B", 26)
	p.f.Text(marginX, 55, p.company.Name)
	p.f.SetFont("Helvetica", "", 11)
	p.f.Text(marginX, 72, p.company.LegalName)
	p.ink(colGold)
	p.f.SetFont("Helvetica", "", 8)
	p.f.Text(marginX, 86, p.company.Credential)
	p.ink(colMuted)
	p.f.SetFont("Helvetica", "", 7)
	p.f.Text(marginX, 100, p.company.Website+"  |  "+p.company.Phone+"  |  "+p.company.Email)

	badge, ok := typeBadges[doc.Type]
	if !ok {
		badge = "DOCUMENT"
	}
	p.ink(colGold)
	p.f.SetFont("Helvetica", "B", 18)
	p.f.Text(pageW-marginX-p.f.GetStringWidth(badge), 55, badge)

	p.ink(rgb{255, 255, 255})
	p.f.SetFont("Helvetica", "", 10)
	number := "#" + doc.DisplayNumber()
	p.f.Text(pageW-marginX-p.f.GetStringWidth(number), 75, number)

	p.fill(colGold)
	p.f.Rect(0, headerH, pageW, accentH, "F")
}

func (p *page) dateLine(doc *model.Document) {
	p.ink(colDark)
	p.f.SetFont("Helvetica", "", 10)
	p.text(marginX, "Date: "+doc.Date)
	if inv := doc.Invoice; inv != nil && inv.DueDate != "" {
		p.textRight(pageW-marginX, "Due: "+inv.DueDate)
	}
	p.y += 30
}

func (p *page) clientBlock(doc *model.Document) {
	p.ink(colBlue)
	p.f.SetFont("Helvetica", "B", 11)
	p.text(marginX, "CLIENT")
	p.y += 16

	p.ink(colDark)
	p.f.SetFont("Helvetica", "B", 12)
	p.text(marginX, doc.ClientName)
	p.y += 15

	p.f.SetFont("Helvetica", "", 10)
	p.ink(colGray)
	for _, line := range splitLines(doc.ClientAddress) {
		p.text(marginX, strings.TrimSpace(line))
		p.y += 14
	}
	if doc.ClientPhone != "" {
		p.text(marginX, "Phone: "+doc.ClientPhone)
		p.y += 14
	}
	if doc.ClientEmail != "" {
		p.text(marginX, "Email: "+doc.ClientEmail)
		p.y += 14
	}

	// Property column sits at a fixed position beside the client block.
	if doc.PropertyAddress != "" {
		p.y += 6
		p.ink(colBlue)
		p.f.SetFont("Helvetica", "B", 11)
		p.f.Text(300, 185, "PROPERTY")
		p.ink(colDark)
		p.f.SetFont("Helvetica", "", 10)
		py := 201.0
		for _, line := range splitLines(doc.PropertyAddress) {
			p.f.Text(300, py, strings.TrimSpace(line))
			py += 14
		}
	}

	p.y += 10
}

func (p *page) projectBlock(doc *model.Document) {
	if doc.ProjectName == "" {
		return
	}
	p.ink(colBlue)
	p.f.SetFont("Helvetica", "B", 11)
	p.text(marginX, "PROJECT")
	p.y += 16
	p.ink(colDark)
	p.f.SetFont("Helvetica", "", 10)
	p.text(marginX, doc.ProjectName)
	p.y += 25
}

// Fixed column widths of the priced item table.
var itemCols = []float64{30, 250, 40, 80, 90}

func (p *page) itemTable(items []model.LineItem) {
	if len(items) == 0 {
		return
	}

	const rowH = 28.0
	tableH := float64(len(items)+1) * rowH
	if p.y+tableH > contentFloor && p.y+2*rowH > contentFloor {
		// Not even the header and one row fit; start fresh.
		p.newPage()
	}

	p.stroke(colGrid)
	p.f.SetLineWidth(0.5)

	// Header row
	p.fill(colBlue)
	p.ink(rgb{255, 255, 255})
	p.f.SetFont("Helvetica", "B", 9)
	p.tableRow([]string{"#", "Description", "Qty", "Unit Price", "Amount"}, rowH, true)

	p.f.SetFont("Helvetica", "", 9)
	for i, it := range items {
		if p.y+rowH > contentFloor {
			p.newPage()
		}
		shade := i%2 == 1
		if shade {
			p.fill(colRowShade)
		} else {
			p.fill(rgb{255, 255, 255})
		}
		p.ink(colDark)
		p.tableRow([]string{
			fmt.Sprintf("%d", i+1),
			it.Description,
			fmt.Sprintf("%d", it.Quantity),
			"$ " + compute.GroupedFixed2(it.UnitPrice),
			"$ " + compute.GroupedFixed2(compute.LineTotal(it)),
		}, rowH, true)
	}
	p.y += 15
}

// tableRow draws one bordered row at the cursor using the fixed widths.
// The first column is centered, the last three right-aligned.
func (p *page) tableRow(cells []string, rowH float64, fill bool) {
	p.f.SetXY(marginX, p.y)
	aligns := []string{"CM", "LM", "RM", "RM", "RM"}
	for i, c := range cells {
		p.f.CellFormat(itemCols[i], rowH, c, "1", 0, aligns[i], fill, 0, "")
	}
	p.y += rowH
}

func (p *page) totals(doc *model.Document, t compute.Totals) {
	p.breakIfNeeded()
	right := pageW - marginX

	p.f.SetFont("Helvetica", "", 10)
	p.ink(colGray)

	if doc.Type == model.TypeChangeOrder {
		// Change orders show the change total and the after-change figure;
		// the breakdown prints in the payment block below.
		p.textRight(right, "Change Order Total:  $ "+compute.GroupedFixed2(t.Subtotal))
		p.y += 16
	} else {
		p.textRight(right, "Subtotal:  $ "+compute.GroupedFixed2(t.Subtotal))
		p.y += 16
		if doc.TaxRate.IsPositive() {
			p.textRight(right, fmt.Sprintf("Tax (%s%%):  $ %s", doc.TaxRate.String(), compute.GroupedFixed2(t.Tax)))
			p.y += 16
		}
	}

	p.fill(colBlue)
	p.f.Rect(right-200, p.y-18, 200, 26, "F")
	p.ink(rgb{255, 255, 255})
	p.f.SetFont("Helvetica", "B", 13)
	label := "TOTAL:"
	if doc.Type == model.TypeChangeOrder {
		label = "TOTAL AFTER CHANGE:"
	}
	p.textRight(right-8, label+"  $ "+compute.GroupedFixed2(t.Total))
	p.y += 35
}

// scopeList prints contract items as a wrapped, numbered plain-text list
// with no pricing column.
func (p *page) scopeList(items []model.LineItem) {
	if len(items) == 0 {
		return
	}
	p.y += 5
	p.breakIfNeeded()
	p.ink(colBlue)
	p.f.SetFont("Helvetica", "B", 11)
	p.text(marginX, "SCOPE OF WORK")
	p.y += 20

	p.ink(colDark)
	p.f.SetFont("Helvetica", "", 9.5)
	for i, it := range items {
		for _, line := range wrapNumbered(i+1, it.Description, scopeWrap) {
			p.breakIfNeeded()
			p.text(marginX+10, line)
			p.y += 14
		}
		p.y += 4
	}
}

// textBlock prints an optional section: a heading (when given) and the
// body split into lines, breaking pages between lines, never inside one.
func (p *page) textBlock(heading, body string, size, lineH float64, c rgb) {
	if strings.TrimSpace(body) == "" {
		return
	}
	p.y += 10
	if heading != "" {
		p.breakIfNeeded()
		p.ink(colBlue)
		p.f.SetFont("Helvetica", "B", 10)
		p.text(marginX, heading)
		p.y += 16
	}
	p.ink(c)
	p.f.SetFont("Helvetica", "", size)
	for _, raw := range splitLines(body) {
		for _, line := range wrapPlain(raw, 95) {
			p.breakIfNeeded()
			p.text(marginX, line)
			p.y += lineH
		}
	}
}

func (p *page) signatureBlock(doc *model.Document) {
	if p.y > signatureFloor {
		p.newPage()
	}
	p.y += 30

	p.stroke(colGrid)
	p.f.SetLineWidth(0.5)
	p.f.Line(marginX, p.y, pageW-marginX, p.y)
	p.y += 30

	// Provider column
	p.ink(colDark)
	p.f.SetFont("Helvetica", "B", 10)
	p.text(marginX, "Provided and Guaranteed by:")
	p.y += 25
	p.f.Line(marginX, p.y, 250, p.y)
	p.y += 14
	p.text(marginX, p.company.Owner)
	p.y += 13
	p.f.SetFont("Helvetica", "", 9)
	p.ink(colGray)
	p.text(marginX, p.company.OwnerTitle)
	p.y += 13
	p.text(marginX, "Date: _______________")

	// Client column, aligned beside the provider column
	cy := p.y - 52
	p.ink(colDark)
	p.f.SetFont("Helvetica", "B", 10)
	p.f.Text(320, cy, "Accepted and Agreed:")
	cy += 25
	p.f.Line(320, cy, pageW-marginX, cy)
	cy += 14
	p.f.Text(320, cy, doc.ClientName)
	cy += 13
	p.f.SetFont("Helvetica", "", 9)
	p.ink(colGray)
	p.f.Text(320, cy, "Date: _______________")
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
}

// wrapNumbered wraps text under a "N. " prefix, indenting continuation
// lines, with the given character budget per line.
func wrapNumbered(n int, text string, width int) []string {
	current := fmt.Sprintf("%d. ", n)
	var lines []string
	for _, w := range strings.Fields(text) {
		if len(current)+len(w) > width {
			lines = append(lines, strings.TrimRight(current, " "))
			current = "    " + w + " "
		} else {
			current += w + " "
		}
	}
	return append(lines, strings.TrimRight(current, " "))
}

// wrapPlain wraps a single line at the character budget; short lines pass
// through untouched.
func wrapPlain(line string, width int) []string {
	if len(line) <= width {
		return []string{line}
	}
	var lines []string
	current := ""
	for _, w := range strings.Fields(line) {
		if current != "" && len(current)+len(w)+1 > width {
			lines = append(lines, current)
			current = w
		} else if current == "" {
			current = w
		} else {
			current += " " + w
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}
