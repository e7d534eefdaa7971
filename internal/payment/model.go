package payment

import (
	"regexp"
	"strings"
	"time"
)

// WebhookPayload is the JSON body SePay posts on every bank transaction.
type WebhookPayload struct {
	ID              int64  `json:"id"`
	Gateway         string `json:"gateway"`
	TransactionDate string `json:"transactionDate"`
	AccountNumber   string `json:"accountNumber"`
	Content         string `json:"content"`
	TransferType    string `json:"transferType"`
	TransferAmount  int64  `json:"transferAmount"`
	Accumulated     int64  `json:"accumulated"`
	ReferenceCode   string `json:"referenceCode"`
	Description     string `json:"description"`
}

// Event is one reconciled gateway notification. GatewayTxnID is unique:
// replays of the same notification become no-ops.
type Event struct {
	ID           int64     `json:"id"`
	GatewayTxnID int64     `json:"gatewayTxnId"`
	OrderID      string    `json:"orderId"`
	Amount       int64     `json:"amount"`
	Payload      []byte    `json:"-"`
	ReceivedAt   time.Time `json:"receivedAt"`
}

// Result describes the outcome of one webhook call. Ignored notifications
// are acknowledged with an explanatory message instead of an error, which
// is what the gateway expects.
type Result struct {
	Processed bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	OrderID   string `json:"orderId,omitempty"`
}

// Transfer memos are free text; customers are instructed to include
// "don <order id>" and banks routinely strip spacing, so the separator is
// optional.
var orderRefPattern = regexp.MustCompile(`(?i)don\s*([a-f0-9]{24})`)

// ExtractOrderID pulls the order reference out of a transfer memo.
func ExtractOrderID(content string) (string, bool) {
	m := orderRefPattern.FindStringSubmatch(content)
	if m == nil {
		return "", false
	}
	return strings.ToLower(m[1]), true
}
