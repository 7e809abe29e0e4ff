package notify

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// TypeReceiptEmail is the asynq task type for receipt delivery.
const TypeReceiptEmail = "email:receipt"

// QueueEmails is the queue receipt email tasks are enqueued on.
const QueueEmails = "emails"

// ReceiptEmailPayload identifies the receipt to deliver and where to send it.
type ReceiptEmailPayload struct {
	InvoiceID string `json:"invoice_id"`
	UserID    string `json:"user_id"`
	To        string `json:"to"`
}

// NewReceiptEmailTask builds the asynq task for a single receipt email.
func NewReceiptEmailTask(invoiceID, userID, to string) (*asynq.Task, error) {
	payload, err := json.Marshal(ReceiptEmailPayload{InvoiceID: invoiceID, UserID: userID, To: to})
	if err != nil {
		return nil, fmt.Errorf("marshal receipt email payload: %w", err)
	}
	return asynq.NewTask(TypeReceiptEmail, payload), nil
}
