// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// DonationReceiptData holds data for the donation receipt email sent
// after intake. Item fields describe the first item only; the full
// itemization lives on the receipt document, not in the email.
type DonationReceiptData struct {
	SiteName    string
	DonorName   string
	Description string
	Quantity    string
	ExpDate     string
	Date        string // human-readable intake date
}

// BuildDonationReceiptEmail creates the thank-you receipt email with
// both HTML and text bodies.
func BuildDonationReceiptEmail(data DonationReceiptData) Email {
	return Email{
		To:       "", // Set by caller
		Subject:  fmt.Sprintf("Your %s donation receipt", data.SiteName),
		TextBody: buildReceiptText(data),
		HTMLBody: buildReceiptHTML(data),
	}
}

func buildReceiptText(data DonationReceiptData) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("Hi %s,\n\n", data.DonorName))
	buf.WriteString(fmt.Sprintf("Thank you for your donation on %s.\n\n", data.Date))
	buf.WriteString(fmt.Sprintf("Item: %s\n", data.Description))
	buf.WriteString(fmt.Sprintf("Quantity: %s\n", data.Quantity))
	if data.ExpDate != "" {
		buf.WriteString(fmt.Sprintf("Expiration: %s\n", data.ExpDate))
	}
	buf.WriteString("\nWe'll take it from here.\n")
	return buf.String()
}

func buildReceiptHTML(data DonationReceiptData) string {
	tmpl := template.Must(template.New("donation_receipt").Parse(receiptEmailTemplate))
	var buf bytes.Buffer
	_ = tmpl.Execute(&buf, data)
	return buf.String()
}

const receiptEmailTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Donation Receipt</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif; background-color: #f3f4f6;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f3f4f6;">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 480px; background-color: #ffffff; border-radius: 8px; box-shadow: 0 2px 4px rgba(0, 0, 0, 0.1);">
          <tr>
            <td style="padding: 32px 32px 24px; text-align: center; border-bottom: 1px solid #e5e7eb;">
              <h1 style="margin: 0; font-size: 24px; font-weight: 600; color: #4f46e5;">{{.SiteName}}</h1>
            </td>
          </tr>
          <tr>
            <td style="padding: 24px 32px;">
              <p style="margin: 0 0 16px; font-size: 15px; color: #111827;">Hi {{.DonorName}},</p>
              <p style="margin: 0 0 16px; font-size: 15px; color: #111827;">Thank you for your donation on {{.Date}}.</p>
              <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f9fafb; border-radius: 6px;">
                <tr><td style="padding: 16px;">
                  <p style="margin: 0 0 4px; font-size: 14px; color: #374151;"><strong>Item:</strong> {{.Description}}</p>
                  <p style="margin: 0 0 4px; font-size: 14px; color: #374151;"><strong>Quantity:</strong> {{.Quantity}}</p>
                  {{if .ExpDate}}<p style="margin: 0; font-size: 14px; color: #374151;"><strong>Expiration:</strong> {{.ExpDate}}</p>{{end}}
                </td></tr>
              </table>
              <p style="margin: 16px 0 0; font-size: 14px; color: #6b7280;">We'll take it from here.</p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>
`
