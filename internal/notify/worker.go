package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/resibilis/backend-resibilis/internal/common"
	"github.com/resibilis/backend-resibilis/internal/invoice"
	"github.com/resibilis/backend-resibilis/internal/obs"
	"github.com/resibilis/backend-resibilis/internal/receipt"
)

// InvoiceReader loads a stored receipt for rendering. The invoice service
// satisfies it.
type InvoiceReader interface {
	Get(ctx context.Context, userID, id string) (invoice.Invoice, error)
}

// BusinessNamer resolves the sender's business name for the email header.
// Optional; the worker falls back to a generic header without it.
type BusinessNamer interface {
	BusinessName(ctx context.Context, userID string) (string, error)
}

// ReceiptEmailWorker processes receipt email tasks: load the receipt, render
// the body, hand it to the mail sender.
type ReceiptEmailWorker struct {
	Invoices InvoiceReader
	Profiles BusinessNamer
	Sender   common.EmailSender
	Logger   zerolog.Logger
}

// Register attaches the worker's handlers to an asynq mux.
func (w *ReceiptEmailWorker) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeReceiptEmail, w.ProcessTask)
}

// ProcessTask implements asynq.Handler for TypeReceiptEmail.
func (w *ReceiptEmailWorker) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var p ReceiptEmailPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		// Malformed payloads never succeed on retry.
		return fmt.Errorf("decode receipt email payload: %w: %w", err, asynq.SkipRetry)
	}
	inv, err := w.Invoices.Get(ctx, p.UserID, p.InvoiceID)
	if err != nil {
		if common.IsNotFound(err) {
			w.Logger.Warn().Str("invoice_id", p.InvoiceID).Msg("receipt email dropped, invoice gone")
			return nil
		}
		return fmt.Errorf("load invoice %s: %w", p.InvoiceID, err)
	}
	business := w.businessName(ctx, p.UserID)
	subject := fmt.Sprintf("Receipt %s from %s", inv.ReceiptNumber, business)
	if err := w.Sender.Send(p.To, subject, renderReceiptHTML(inv, business)); err != nil {
		obs.ObserveReceiptEmail("send_error")
		return fmt.Errorf("send receipt email: %w", err)
	}
	obs.ObserveReceiptEmail("sent")
	w.Logger.Info().
		Str("invoice_id", p.InvoiceID).
		Str("receipt_number", inv.ReceiptNumber).
		Msg("receipt email sent")
	return nil
}

func (w *ReceiptEmailWorker) businessName(ctx context.Context, userID string) string {
	if w.Profiles == nil {
		return "Resibilis"
	}
	name, err := w.Profiles.BusinessName(ctx, userID)
	if err != nil || name == "" {
		return "Resibilis"
	}
	return name
}

func renderReceiptHTML(inv invoice.Invoice, business string) string {
	cur := receipt.Currency(inv.Currency)
	var b strings.Builder
	b.WriteString("<h2>" + html.EscapeString(business) + "</h2>")
	b.WriteString("<p>Receipt <strong>" + html.EscapeString(inv.ReceiptNumber) + "</strong>")
	b.WriteString(" &middot; " + inv.CreatedAt.Format("January 2, 2006") + "</p>")
	b.WriteString("<p>Billed to: " + html.EscapeString(inv.CustomerName) + "</p>")
	b.WriteString("<table><tr><th align=\"left\">Item</th><th align=\"right\">Qty</th><th align=\"right\">Price</th><th align=\"right\">Amount</th></tr>")
	for _, it := range inv.Items {
		b.WriteString("<tr><td>" + html.EscapeString(it.Name) + "</td>")
		b.WriteString(fmt.Sprintf("<td align=\"right\">%g</td>", it.Qty))
		b.WriteString("<td align=\"right\">" + receipt.FormatAmount(it.Price, cur) + "</td>")
		b.WriteString("<td align=\"right\">" + receipt.FormatAmount(receipt.Round2(it.Qty*it.Price), cur) + "</td></tr>")
	}
	b.WriteString("</table>")
	b.WriteString("<p>Subtotal: " + receipt.FormatAmount(inv.Subtotal, cur) + "<br>")
	if inv.DiscountAmount > 0 {
		b.WriteString("Discount: -" + receipt.FormatAmount(inv.DiscountAmount, cur) + "<br>")
	}
	if inv.TaxAmount > 0 {
		b.WriteString(fmt.Sprintf("Tax (%.2f%%): %s<br>", inv.TaxPercent, receipt.FormatAmount(inv.TaxAmount, cur)))
	}
	b.WriteString("<strong>Total: " + inv.FormattedTotal + "</strong></p>")
	if inv.Notes != "" {
		b.WriteString("<p>" + html.EscapeString(inv.Notes) + "</p>")
	}
	return b.String()
}
