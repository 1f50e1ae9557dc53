package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"

	"github.com/piwi3910/sectionsheets/internal/model"
)

// sheetSpacing separates consecutive sheets laid out along X in the DXF.
const sheetSpacing = 100.0

// ExportDXF writes every sheet side by side into one DXF drawing in paper
// millimetres. Each sheet gets its own layer named after the sheet number,
// holding the sheet border, the title strip line, one rectangle per
// viewport and the section names. DXF Y points up, so page rows are
// mirrored against the sheet height.
func ExportDXF(path string, plan model.PlanResult, tb model.TitleBlock) error {
	if len(plan.Sheets) == 0 {
		return fmt.Errorf("no sheets to export")
	}

	d := dxf.NewDrawing()
	for i, sheet := range plan.Sheets {
		if _, err := d.AddLayer(sheet.Number, color.ColorNumber(i%6+1), dxf.DefaultLineType, true); err != nil {
			return fmt.Errorf("failed to add layer %s: %w", sheet.Number, err)
		}

		ox := float64(i) * (tb.Width + sheetSpacing)
		flip := func(y float64) float64 { return tb.Height - y }

		if err := dxfRect(d, ox, 0, ox+tb.Width, tb.Height); err != nil {
			return err
		}
		stripTop := flip(tb.Height - plan.Config.Margin - tb.TitleAllowance)
		if _, err := d.Line(ox+plan.Config.Margin, stripTop, 0, ox+tb.Width-plan.Config.Margin, stripTop, 0); err != nil {
			return fmt.Errorf("failed to draw title strip: %w", err)
		}
		if _, err := d.Text(sheet.Number+" "+sheet.Name, ox+plan.Config.Margin+2, stripTop-12, 0, 6); err != nil {
			return fmt.Errorf("failed to write sheet title: %w", err)
		}

		for _, p := range sheet.Page.Placements {
			x0, y0, x1, y1 := p.Bounds()
			if err := dxfRect(d, ox+x0, flip(y1), ox+x1, flip(y0)); err != nil {
				return err
			}
			if _, err := d.Text(p.Label, ox+x0+2, flip(y1)+2, 0, 3); err != nil {
				return fmt.Errorf("failed to write label %s: %w", p.Label, err)
			}
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save DXF: %w", err)
	}
	return nil
}

// dxfRect draws an axis-aligned rectangle as four LINE entities.
func dxfRect(d *drawing.Drawing, x0, y0, x1, y1 float64) error {
	corners := [][2]float64{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
	for i, a := range corners {
		b := corners[(i+1)%len(corners)]
		if _, err := d.Line(a[0], a[1], 0, b[0], b[1], 0); err != nil {
			return fmt.Errorf("failed to draw line: %w", err)
		}
	}
	return nil
}
