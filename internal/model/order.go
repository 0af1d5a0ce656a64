package model

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPaid      PaymentStatus = "paid"
	PaymentCancelled PaymentStatus = "cancelled"
	PaymentRefunded  PaymentStatus = "refunded"
)

var PaymentStatuses = []PaymentStatus{PaymentPending, PaymentPaid, PaymentCancelled, PaymentRefunded}

// Payable reports whether the pay action should be offered for the order.
func (s PaymentStatus) Payable() bool {
	return s == PaymentPending
}

type Order struct {
	ID            int64         `json:"id"`
	ContentID     int64         `json:"content_id,omitempty"`
	Content       *ContentItem  `json:"content,omitempty"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	PaymentTime   *Timestamp    `json:"payment_time,omitempty"`
}

type OrderStats struct {
	TotalOrders int `json:"total_orders"`
	PaidOrders  int `json:"paid_orders"`
}
