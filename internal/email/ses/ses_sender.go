package ses

import (
	"context"
	"fmt"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/bitukupraveen/multi-billing-sub000/internal/billing"
	"github.com/bitukupraveen/multi-billing-sub000/internal/domain"
	"github.com/bitukupraveen/multi-billing-sub000/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
	}, nil
}

func (s *sesSender) SendInvoiceIssued(ctx context.Context, toEmail, toName string, inv *domain.Invoice, lines []domain.InvoiceLine) error {
	subject := fmt.Sprintf("Invoice %s", inv.Number)
	textBody := buildInvoiceText(toName, inv, lines)
	htmlBody := buildInvoiceHTML(toName, inv, lines)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildInvoiceText(toName string, inv *domain.Invoice, lines []domain.InvoiceLine) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\nInvoice %s dated %s:\n\n", toName, inv.Number, inv.InvoiceDate.Format("02 Jan 2006"))
	for _, l := range lines {
		fmt.Fprintf(&b, "  %s x%d: %.2f\n", l.Description, l.Quantity, billing.Round2(l.LineTotal))
	}
	fmt.Fprintf(&b, "\nSubtotal: %.2f\nTax: %.2f\nGrand total: %.2f\n",
		billing.Round2(inv.SubTotal), billing.Round2(inv.TaxTotal), billing.Round2(inv.GrandTotal))
	return b.String()
}

func buildInvoiceHTML(toName string, inv *domain.Invoice, lines []domain.InvoiceLine) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<p>Hi %s,</p><p>Invoice <strong>%s</strong> dated %s:</p><table>", toName, inv.Number, inv.InvoiceDate.Format("02 Jan 2006"))
	for _, l := range lines {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>x%d</td><td>%.2f</td></tr>", l.Description, l.Quantity, billing.Round2(l.LineTotal))
	}
	fmt.Fprintf(&b, "</table><p>Subtotal: %.2f<br>Tax: %.2f<br><strong>Grand total: %.2f</strong></p>",
		billing.Round2(inv.SubTotal), billing.Round2(inv.TaxTotal), billing.Round2(inv.GrandTotal))
	return b.String()
}
