package export

import (
	"encoding/json"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/sectionsheets/internal/model"
)

// SheetManifest is the machine-readable content of one sheet, encoded into
// the QR code printed in the sheet's title strip.
type SheetManifest struct {
	Number    string          `json:"sheet"`
	Name      string          `json:"name"`
	Count     int             `json:"count"`
	Viewports []ManifestEntry `json:"viewports,omitempty"`
}

// ManifestEntry locates one viewport on the sheet, in paper millimetres.
type ManifestEntry struct {
	Section string  `json:"section"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"w"`
	Height  float64 `json:"h"`
}

// qrSize is the printed QR code edge length in mm.
const qrSize = 24.0

// NewSheetManifest collects the viewports placed on sheet.
func NewSheetManifest(sheet model.Sheet) SheetManifest {
	m := SheetManifest{
		Number: sheet.Number,
		Name:   sheet.Name,
		Count:  len(sheet.Page.Placements),
	}
	for _, p := range sheet.Page.Placements {
		m.Viewports = append(m.Viewports, ManifestEntry{
			Section: p.Label,
			X:       p.CenterX,
			Y:       p.CenterY,
			Width:   p.Width,
			Height:  p.Height,
		})
	}
	return m
}

// ManifestFor returns the JSON-encoded manifest of sheet.
func ManifestFor(sheet model.Sheet) ([]byte, error) {
	data, err := json.Marshal(NewSheetManifest(sheet))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal manifest for %s: %w", sheet.Number, err)
	}
	return data, nil
}

// manifestQR renders the sheet manifest as a PNG QR code. Sheets with too
// many viewports for one code fall back to the number, name and count only.
func manifestQR(sheet model.Sheet) ([]byte, error) {
	data, err := ManifestFor(sheet)
	if err != nil {
		return nil, err
	}
	png, err := qrcode.Encode(string(data), qrcode.Medium, 256)
	if err == nil {
		return png, nil
	}

	short := NewSheetManifest(sheet)
	short.Viewports = nil
	data, err = json.Marshal(short)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal manifest for %s: %w", sheet.Number, err)
	}
	png, err = qrcode.Encode(string(data), qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code for %s: %w", sheet.Number, err)
	}
	return png, nil
}
