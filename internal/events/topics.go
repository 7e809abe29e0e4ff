package events

// Topic constants for domain events emitted by the receipt platform.
const (
	TopicInvoiceCreated    = "invoice.created"
	TopicInvoiceVoided     = "invoice.voided"
	TopicInvoiceDeleted    = "invoice.deleted"
	TopicInvoiceEmailed    = "invoice.emailed"
	TopicTemplatePurchased = "template.purchased"
)

// DefaultTopics returns the canonical list of topics carried to subscribers.
func DefaultTopics() []string {
	return []string{
		TopicInvoiceCreated,
		TopicInvoiceVoided,
		TopicInvoiceDeleted,
		TopicInvoiceEmailed,
		TopicTemplatePurchased,
	}
}
