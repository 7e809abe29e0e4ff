package notify

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/resibilis/backend-resibilis/internal/common"
	"github.com/resibilis/backend-resibilis/internal/invoice"
)

type fakeInvoices struct {
	inv invoice.Invoice
	err error
}

func (f *fakeInvoices) Get(_ context.Context, _, _ string) (invoice.Invoice, error) {
	return f.inv, f.err
}

type fakeProfiles struct{ name string }

func (f *fakeProfiles) BusinessName(context.Context, string) (string, error) {
	return f.name, nil
}

func sampleInvoice() invoice.Invoice {
	return invoice.Invoice{
		ID:             "inv-1",
		ReceiptNumber:  "RS-20260831-0001",
		CustomerName:   "Maria Santos",
		Items:          []invoice.Item{{Name: "Haircut", Qty: 1, Price: 350}},
		TaxPercent:     12,
		Subtotal:       350,
		TaxAmount:      42,
		Total:          392,
		FormattedTotal: "₱392.00",
		Currency:       "PHP",
		Status:         "completed",
		CreatedAt:      time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC),
	}
}

func TestReceiptEmailWorkerSends(t *testing.T) {
	sender := &common.InMemoryEmail{}
	w := &ReceiptEmailWorker{
		Invoices: &fakeInvoices{inv: sampleInvoice()},
		Profiles: &fakeProfiles{name: "Santos Salon"},
		Sender:   sender,
		Logger:   zerolog.Nop(),
	}
	task, err := NewReceiptEmailTask("inv-1", "user-1", "maria@business.ph")
	require.NoError(t, err)

	require.NoError(t, w.ProcessTask(context.Background(), task))
	require.Len(t, sender.Outbox, 1)
	got := sender.Outbox[0]
	require.Equal(t, "maria@business.ph", got.To)
	require.Equal(t, "Receipt RS-20260831-0001 from Santos Salon", got.Subject)
	require.Contains(t, got.HTML, "Haircut")
	require.Contains(t, got.HTML, "₱392.00")
	require.Contains(t, got.HTML, "Tax (12.00%)")
}

func TestReceiptEmailWorkerMalformedPayloadSkipsRetry(t *testing.T) {
	w := &ReceiptEmailWorker{Sender: &common.InMemoryEmail{}, Logger: zerolog.Nop()}
	task := asynq.NewTask(TypeReceiptEmail, []byte("{not json"))

	err := w.ProcessTask(context.Background(), task)
	require.Error(t, err)
	require.ErrorIs(t, err, asynq.SkipRetry)
}

func TestReceiptEmailWorkerMissingInvoiceDropsTask(t *testing.T) {
	sender := &common.InMemoryEmail{}
	w := &ReceiptEmailWorker{
		Invoices: &fakeInvoices{err: common.ErrNotFound("invoice not found")},
		Sender:   sender,
		Logger:   zerolog.Nop(),
	}
	task, err := NewReceiptEmailTask("gone", "user-1", "maria@business.ph")
	require.NoError(t, err)

	require.NoError(t, w.ProcessTask(context.Background(), task))
	require.Empty(t, sender.Outbox)
}

func TestReceiptEmailWorkerTransientFailureRetries(t *testing.T) {
	w := &ReceiptEmailWorker{
		Invoices: &fakeInvoices{err: errors.New("connection refused")},
		Sender:   &common.InMemoryEmail{},
		Logger:   zerolog.Nop(),
	}
	task, err := NewReceiptEmailTask("inv-1", "user-1", "maria@business.ph")
	require.NoError(t, err)

	err = w.ProcessTask(context.Background(), task)
	require.Error(t, err)
	require.NotErrorIs(t, err, asynq.SkipRetry)
}

func TestRenderReceiptHTMLEscapes(t *testing.T) {
	inv := sampleInvoice()
	inv.CustomerName = "<script>alert(1)</script>"
	body := renderReceiptHTML(inv, "Shop & Co")
	require.NotContains(t, body, "<script>")
	require.Contains(t, body, "Shop &amp; Co")
}

func TestRenderReceiptHTMLRoundsLineAmounts(t *testing.T) {
	inv := sampleInvoice()
	// 0.5 * 0.25 = 0.125, which %.2f alone would render as 0.12
	inv.Items = []invoice.Item{{Name: "Ribbon", Qty: 0.5, Price: 0.25}}

	body := renderReceiptHTML(inv, "Santos Salon")
	require.Contains(t, body, "₱0.13")
	require.NotContains(t, body, "₱0.12")
}

func TestReceiptEmailWorkerFallbackBusinessName(t *testing.T) {
	sender := &common.InMemoryEmail{}
	w := &ReceiptEmailWorker{
		Invoices: &fakeInvoices{inv: sampleInvoice()},
		Sender:   sender,
		Logger:   zerolog.Nop(),
	}
	task, err := NewReceiptEmailTask("inv-1", "user-1", "maria@business.ph")
	require.NoError(t, err)

	require.NoError(t, w.ProcessTask(context.Background(), task))
	require.Len(t, sender.Outbox, 1)
	require.True(t, strings.HasSuffix(sender.Outbox[0].Subject, "from Resibilis"))
}
