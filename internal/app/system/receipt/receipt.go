// internal/app/system/receipt/receipt.go

// Package receipt renders a donation into a printable HTML receipt
// document. The export surface is the rendered HTML itself; turning it
// into a PDF is the caller's (or the platform's) concern.
package receipt

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/google/uuid"
	"github.com/upcyclebuild/upcyclehub/internal/app/system/htmlsanitize"
	"github.com/upcyclebuild/upcyclehub/internal/domain/models"
)

// CategoryEmoji maps a material category to its display emoji. Unknown
// categories render without one.
func CategoryEmoji(category string) string {
	switch category {
	case "Wood":
		return "\U0001FAB5"
	case "Metals":
		return "\U0001F529"
	case "Textiles":
		return "\U0001F9F5"
	default:
		return ""
	}
}

type receiptData struct {
	ReceiptNo    string
	DonationID   string
	SubmittedAt  string
	Donor        string
	Email        string
	Comment      string
	Address      string
	City         string
	State        string
	Zipcode      string
	Method       string
	SelectedDate string
	SelectedTime string
	Items        []itemLine
}

type itemLine struct {
	Index       int
	Description string
	Quantity    string
	Weight      string
	Category    string
	Emoji       string
	Expires     string
	Status      string
}

// Render produces the HTML receipt for a donation. Item lines branch on
// the document shape: the items array when present, otherwise the legacy
// top-level single-item fields.
func Render(d *models.Donation) (string, error) {
	data := receiptData{
		ReceiptNo:   uuid.NewString(),
		DonationID:  d.ID.Hex(),
		SubmittedAt: orUnknown(d.DonationDate),
		Donor:       orUnknown(htmlsanitize.Strip(d.DonorName)),
		Email:       orUnknown(htmlsanitize.Strip(d.Email)),
		Comment:     htmlsanitize.Strip(d.Comment),
	}
	if data.Comment == "" {
		data.Comment = "No comments"
	}
	data.Address = deref(d.Address)
	data.City = deref(d.City)
	data.State = deref(d.State)
	data.Zipcode = deref(d.Zipcode)
	data.Method = deref(d.Method)
	data.SelectedDate = deref(d.SelectedDate)
	data.SelectedTime = deref(d.SelectedTime)

	if d.HasItems() {
		for i, it := range d.Items {
			w := ""
			if it.Weight != "" {
				unit := it.WeightUnit
				if unit == "" {
					unit = "lbs"
				}
				w = fmt.Sprintf("%s %s", it.Weight, unit)
			}
			data.Items = append(data.Items, itemLine{
				Index:       i + 1,
				Description: htmlsanitize.Strip(it.Description),
				Quantity:    it.Quantity,
				Weight:      w,
				Category:    it.MaterialCategory,
				Emoji:       CategoryEmoji(it.MaterialCategory),
				Expires:     it.ExpirationDate,
				Status:      it.Status,
			})
		}
	} else {
		w := ""
		if weight := deref(d.Weight); weight != "" {
			unit := deref(d.WeightUnit)
			if unit == "" {
				unit = "lbs"
			}
			w = fmt.Sprintf("%s %s", weight, unit)
		}
		data.Items = append(data.Items, itemLine{
			Index:       1,
			Description: htmlsanitize.Strip(deref(d.ItemDescription)),
			Quantity:    deref(d.Quantity),
			Weight:      w,
			Status:      deref(d.Status),
		})
	}

	var buf bytes.Buffer
	if err := receiptTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

var receiptTmpl = template.Must(template.New("receipt").Parse(receiptHTMLTemplate))

const receiptHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8" />
  <title>Donation Receipt</title>
  <style>
    body { font-family: 'Arial', sans-serif; margin: 20px; color: #333; line-height: 1.6; }
    .header { text-align: center; margin-bottom: 30px; }
    .header h1 { color: #2c3e50; margin-bottom: 5px; }
    .header p { font-size: 14px; }
    .info-section { margin-bottom: 20px; }
    .info-section p { margin: 4px 0; }
    .info-section .label { font-weight: bold; }
    .items-section { margin-top: 30px; }
    .items-section h2 { border-bottom: 2px solid #2c3e50; padding-bottom: 5px; color: #2c3e50; }
    .item { margin-left: 20px; margin-bottom: 10px; }
  </style>
</head>
<body>
  <div class="header">
    <h1>Donation Receipt</h1>
    <p><span class="label">Receipt No:</span> {{.ReceiptNo}}</p>
    <p><span class="label">Donation ID:</span> {{.DonationID}}</p>
  </div>
  <div class="info-section">
    <p><span class="label">Submitted At:</span> {{.SubmittedAt}}</p>
    <p><span class="label">Donor:</span> {{.Donor}}</p>
    <p><span class="label">Email:</span> {{.Email}}</p>
    <p><span class="label">Comment:</span> {{.Comment}}</p>
    {{if .Address}}<p><span class="label">Address:</span> {{.Address}}</p>{{end}}
    {{if .City}}<p><span class="label">City:</span> {{.City}}</p>{{end}}
    {{if .State}}<p><span class="label">State:</span> {{.State}}</p>{{end}}
    {{if .Zipcode}}<p><span class="label">Zipcode:</span> {{.Zipcode}}</p>{{end}}
    {{if .Method}}<p><span class="label">Method:</span> {{.Method}}</p>{{end}}
    {{if .SelectedDate}}<p><span class="label">Date:</span> {{.SelectedDate}}</p>{{end}}
    {{if .SelectedTime}}<p><span class="label">Time:</span> {{.SelectedTime}}</p>{{end}}
  </div>
  <div class="items-section">
    <h2>Items</h2>
    {{range .Items}}
    <div class="item">
      {{.Index}}. {{.Description}} - {{.Quantity}}
      {{if .Weight}}- Weight: {{.Weight}}{{end}}
      {{if .Category}}- {{.Emoji}} {{.Category}}{{end}}
      {{if .Expires}}- Expires: {{.Expires}}{{end}}
      ({{.Status}})
    </div>
    {{end}}
  </div>
</body>
</html>
`
