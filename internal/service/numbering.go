package service

import (
	"fmt"
	"strconv"

	"github.com/bitukupraveen/multi-billing-sub000/internal/domain"
)

// Counter keys. One counter exists per (document type, channel) pair;
// purchases share a single counter across the business.
const purchaseCounterKey = "purchase"

func invoiceCounterKey(channel domain.Channel) string {
	return "invoice:" + string(channel)
}

// invoicePrefixes are the channel-specific display prefixes for invoice
// numbers.
var invoicePrefixes = map[domain.Channel]string{
	domain.ChannelOffline:  "INV-",
	domain.ChannelFlipkart: "FK-",
	domain.ChannelShopify:  "SH-",
}

const purchasePrefix = "PUR-"

// FormatInvoiceNumber renders an allocated counter value as a display
// invoice number: channel prefix plus the integer zero-padded to four
// digits.
func FormatInvoiceNumber(channel domain.Channel, n int64) string {
	return fmt.Sprintf("%s%04d", invoicePrefixes[channel], n)
}

// FormatPurchaseNumber renders an allocated counter value as a display
// purchase bill number. Purchase numbers are not zero-padded.
func FormatPurchaseNumber(n int64) string {
	return purchasePrefix + strconv.FormatInt(n, 10)
}
