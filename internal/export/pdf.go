// Package export writes planned sheets to PDF, DXF, Excel and JSON files.
package export

import (
	"bytes"
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/sectionsheets/internal/model"
)

// viewColor represents an RGB fill color for a viewport frame.
type viewColor struct {
	R, G, B int
}

// Vertical sections are drawn in blue tones, horizontal ones in green.
var viewColors = map[model.Orientation]viewColor{
	model.Vertical:   {R: 187, G: 222, B: 251},
	model.Horizontal: {R: 200, G: 230, B: 201},
}

const titleFontSize = 10.0

// ExportPDF renders a layout preview with one page per sheet, sized to the
// title block. Each page shows the usable area, every viewport frame at its
// placed position with the section name, and a title strip carrying the
// sheet number, name and a QR code of the sheet manifest.
func ExportPDF(path string, plan model.PlanResult, tb model.TitleBlock) error {
	if len(plan.Sheets) == 0 {
		return fmt.Errorf("no sheets to export")
	}
	if tb.Width <= 0 || tb.Height <= 0 {
		return fmt.Errorf("title block %q has no paper size", tb.Name)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)

	for _, sheet := range plan.Sheets {
		pdf.AddPageFormat("P", fpdf.SizeType{Wd: tb.Width, Ht: tb.Height})
		if err := renderSheetPage(pdf, plan, sheet, tb); err != nil {
			return err
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderSheetPage draws a single sheet on the current PDF page. Placement
// coordinates are measured from the top-left paper corner.
func renderSheetPage(pdf *fpdf.Fpdf, plan model.PlanResult, sheet model.Sheet, tb model.TitleBlock) error {
	cfg := plan.Config

	// Sheet border
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Rect(cfg.Margin/2, cfg.Margin/2, tb.Width-cfg.Margin, tb.Height-cfg.Margin, "D")

	// Usable area
	pdf.SetDrawColor(180, 180, 180)
	pdf.SetLineWidth(0.2)
	pdf.SetDashPattern([]float64{2, 1}, 0)
	pdf.Rect(cfg.Margin, cfg.Margin, cfg.AvailableWidth, cfg.AvailableHeight, "D")
	pdf.SetDashPattern(nil, 0)

	for _, p := range sheet.Page.Placements {
		col := viewColors[model.Vertical]
		if s := plan.SectionByRect(p.RectID); s != nil {
			col = viewColors[s.Orientation]
		}
		x0, y0, _, _ := p.Bounds()

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(x0, y0, p.Width, p.Height, "FD")

		if p.Width > 15 && p.Height > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(p.Width, p.Height))
			pdf.SetTextColor(0, 0, 0)
			label := fitText(pdf, p.Label, p.Width-2)
			labelW := pdf.GetStringWidth(label)
			pdf.SetXY(p.CenterX-labelW/2, y0+p.Height-6)
			pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
		}
	}

	return drawTitleStrip(pdf, sheet, tb, cfg.Margin)
}

// drawTitleStrip fills the reserved strip along the bottom of the sheet.
func drawTitleStrip(pdf *fpdf.Fpdf, sheet model.Sheet, tb model.TitleBlock, margin float64) error {
	stripTop := tb.Height - margin - tb.TitleAllowance
	stripW := tb.Width - 2*margin

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.4)
	pdf.Line(margin, stripTop, margin+stripW, stripTop)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", titleFontSize+4)
	pdf.SetXY(margin+2, stripTop+4)
	pdf.CellFormat(stripW/2, 8, sheet.Number, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", titleFontSize)
	pdf.SetX(margin + 2)
	pdf.CellFormat(stripW/2, 6, sheet.Name, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", titleFontSize-2)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetX(margin + 2)
	info := fmt.Sprintf("%d viewport(s) | %s %.0f x %.0f mm", len(sheet.Page.Placements), tb.Name, tb.Width, tb.Height)
	pdf.CellFormat(stripW/2, 5, info, "", 0, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	size := math.Min(qrSize, tb.TitleAllowance-4)
	if size < 10 {
		return nil
	}
	png, err := manifestQR(sheet)
	if err != nil {
		return err
	}
	imgName := "qr_" + sheet.Number
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(imgName, opts, bytes.NewReader(png))
	pdf.ImageOptions(imgName, margin+stripW-size-2, stripTop+2, size, size, false, opts, 0, "")
	return pdf.Error()
}

// fitText truncates s with an ellipsis until it fits within w.
func fitText(pdf *fpdf.Fpdf, s string, w float64) string {
	if pdf.GetStringWidth(s) <= w {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && pdf.GetStringWidth(string(r)+"...") > w {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}
