package model

import "time"

type Role string

const (
	RoleNone  Role = "" // no user record
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type Part struct {
	ID                string  `gorm:"primaryKey;size:64;not null" json:"_id"`
	Name              string  `gorm:"size:128" json:"name"`
	Description       string  `json:"description"`
	Image             string  `json:"image"`
	Price             float64 `json:"price"`
	MinimumQuantity   int     `json:"minimum_quantity"`
	AvailableQuantity int     `json:"available_quantity"`
}

type Review struct {
	ID        string    `gorm:"primaryKey;size:64;not null" json:"_id"`
	Name      string    `gorm:"size:128" json:"name"`
	Email     string    `gorm:"size:128" json:"email"`
	Image     string    `json:"image"`
	Rating    int       `json:"rating"`
	Text      string    `json:"review"`
	CreatedAt time.Time `json:"createdAt"`
}

type User struct {
	Email     string    `gorm:"primaryKey;size:128;not null" json:"email"`
	Role      Role      `gorm:"size:16" json:"role,omitempty"` // empty means "user"
	Name      string    `gorm:"size:128" json:"name"`
	Phone     string    `gorm:"size:32" json:"phone"`
	Address   string    `json:"address"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type OrderItem struct {
	PartID   string  `json:"partId"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type Order struct {
	ID            string      `gorm:"primaryKey;size:64;not null" json:"_id"`
	Email         string      `gorm:"size:128;index;not null" json:"email"` // owner
	Name          string      `gorm:"size:128" json:"name"`
	Phone         string      `gorm:"size:32" json:"phone"`
	Address       string      `json:"address"`
	PartID        string      `gorm:"size:64;index" json:"partId"`
	PartName      string      `gorm:"size:128" json:"partName"`
	Quantity      int         `json:"quantity"`
	TotalPrice    float64     `json:"totalPrice"`
	Items         []OrderItem `gorm:"serializer:json" json:"items"`
	Paid          bool        `gorm:"not null;default:false;index" json:"paid"`
	TransactionID *string     `gorm:"size:128" json:"transactionId"` // nil until paid
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

type OrderState string

const (
	OrderCreated         OrderState = "created"
	OrderPaymentRecorded OrderState = "payment_recorded" // transient, inside a confirmation
	OrderPaid            OrderState = "paid"
)

// State reports the persisted state. PaymentRecorded is never persisted on
// the order itself; it only exists between the two reconciliation writes.
func (o *Order) State() OrderState {
	if o.Paid {
		return OrderPaid
	}
	return OrderCreated
}

type Payment struct {
	ID            string    `gorm:"primaryKey;size:64;not null" json:"_id"`
	OrderID       string    `gorm:"size:64;index;not null" json:"orderId"`
	Email         string    `gorm:"size:128" json:"email"`
	TransactionID string    `gorm:"size:128;uniqueIndex;not null" json:"transactionId"`
	Amount        float64   `json:"amount"`
	CreatedAt     time.Time `json:"createdAt"`
}
