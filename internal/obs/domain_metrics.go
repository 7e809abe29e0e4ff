package obs

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// InvoicesCreatedTotal counts invoice creation outcomes by status and currency.
	InvoicesCreatedTotal *prometheus.CounterVec
	// CalculatorChecksTotal counts receipt calculation outcomes (ok vs. each validation failure).
	CalculatorChecksTotal *prometheus.CounterVec
	// EmailChecksTotal counts disposable-email validation outcomes.
	EmailChecksTotal *prometheus.CounterVec
	// ReceiptEmailsTotal counts receipt email delivery outcomes.
	ReceiptEmailsTotal *prometheus.CounterVec
	// RealtimePublishTotal counts realtime fan-out publish outcomes.
	RealtimePublishTotal *prometheus.CounterVec
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		InvoicesCreatedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invoices_created_total",
			Help:      "Count of invoices created by status and currency.",
		}, []string{"status", "currency"})
		CalculatorChecksTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calculator_checks_total",
			Help:      "Count of receipt calculations by outcome.",
		}, []string{"result"})
		EmailChecksTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "email_checks_total",
			Help:      "Count of email validation outcomes.",
		}, []string{"result"})
		ReceiptEmailsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "receipt_emails_total",
			Help:      "Count of receipt email delivery outcomes.",
		}, []string{"result"})
		RealtimePublishTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "realtime_publish_total",
			Help:      "Count of realtime publish outcomes.",
		}, []string{"result"})

		mustRegisterCollector(reg, InvoicesCreatedTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				InvoicesCreatedTotal = v
			}
		})
		mustRegisterCollector(reg, CalculatorChecksTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				CalculatorChecksTotal = v
			}
		})
		mustRegisterCollector(reg, EmailChecksTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				EmailChecksTotal = v
			}
		})
		mustRegisterCollector(reg, ReceiptEmailsTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				ReceiptEmailsTotal = v
			}
		})
		mustRegisterCollector(reg, RealtimePublishTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				RealtimePublishTotal = v
			}
		})
	})
}

func mustRegisterCollector(reg prometheus.Registerer, collector prometheus.Collector, reuse func(prometheus.Collector)) {
	if err := reg.Register(collector); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if reuse != nil {
				reuse(are.ExistingCollector)
			}
			return
		}
		panic(fmt.Errorf("register domain metric: %w", err))
	}
}

// ObserveInvoiceCreated increments the invoice creation counter when metrics are enabled.
func ObserveInvoiceCreated(status, currency string) {
	if InvoicesCreatedTotal != nil {
		InvoicesCreatedTotal.WithLabelValues(status, currency).Inc()
	}
}

// ObserveCalculatorCheck increments the calculator outcome counter when metrics are enabled.
func ObserveCalculatorCheck(result string) {
	if CalculatorChecksTotal != nil {
		CalculatorChecksTotal.WithLabelValues(result).Inc()
	}
}

// ObserveEmailCheck increments the email validation counter when metrics are enabled.
func ObserveEmailCheck(result string) {
	if EmailChecksTotal != nil {
		EmailChecksTotal.WithLabelValues(result).Inc()
	}
}

// ObserveReceiptEmail increments the receipt email counter when metrics are enabled.
func ObserveReceiptEmail(result string) {
	if ReceiptEmailsTotal != nil {
		ReceiptEmailsTotal.WithLabelValues(result).Inc()
	}
}

// ObserveRealtimePublish increments the realtime publish counter when metrics are enabled.
func ObserveRealtimePublish(result string) {
	if RealtimePublishTotal != nil {
		RealtimePublishTotal.WithLabelValues(result).Inc()
	}
}
