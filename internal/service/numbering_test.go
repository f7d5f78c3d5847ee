package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitukupraveen/multi-billing-sub000/internal/domain"
)

func TestFormatInvoiceNumber(t *testing.T) {
	assert.Equal(t, "INV-0001", FormatInvoiceNumber(domain.ChannelOffline, 1))
	assert.Equal(t, "FK-0042", FormatInvoiceNumber(domain.ChannelFlipkart, 42))
	assert.Equal(t, "SH-9999", FormatInvoiceNumber(domain.ChannelShopify, 9999))
	// Width grows past four digits instead of truncating.
	assert.Equal(t, "INV-12345", FormatInvoiceNumber(domain.ChannelOffline, 12345))
}

func TestFormatPurchaseNumber(t *testing.T) {
	// Purchase numbers carry no zero padding.
	assert.Equal(t, "PUR-1", FormatPurchaseNumber(1))
	assert.Equal(t, "PUR-42", FormatPurchaseNumber(42))
	assert.Equal(t, "PUR-10000", FormatPurchaseNumber(10000))
}

func TestInvoiceCounterKeyPerChannel(t *testing.T) {
	keys := map[string]bool{}
	for ch := range domain.ValidChannels {
		keys[invoiceCounterKey(ch)] = true
	}
	// Each channel owns its own counter namespace, distinct from purchases.
	assert.Len(t, keys, 3)
	assert.NotContains(t, keys, purchaseCounterKey)
}
