package models

import "github.com/shopspring/decimal"

type TicketStatus string

const (
	StatusAvailable TicketStatus = "available"
	StatusSold      TicketStatus = "sold"
	StatusReserved  TicketStatus = "reserved"
)

// Valid 只接受三種狀態
func (s TicketStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusSold, StatusReserved:
		return true
	}
	return false
}

type Ticket struct {
	ID         string          `json:"id"`
	SeatNumber string          `json:"seatNumber"`
	Price      decimal.Decimal `json:"price"`
	Status     TicketStatus    `json:"status"`
	EventID    string          `json:"event"` // 所屬 Event 的 id
}

func init() {
	// price 以 JSON number 輸出（預設會是字串）
	decimal.MarshalJSONWithoutQuotes = true
}
