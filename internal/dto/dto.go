package dto

import "fix-manufacture-api/internal/model"

// UserProfile fields are pointers so an omitted field leaves the stored value alone.
type UserProfile struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	Image   *string `json:"image"`
}

type UpsertUserResponse struct {
	Result      *model.User `json:"result"`
	AccessToken string      `json:"accessToken"`
}

type AdminResponse struct {
	Admin bool `json:"admin"`
}

type CreatePartRequest struct {
	Name              string  `json:"name"`
	Description       string  `json:"description"`
	Image             string  `json:"image"`
	Price             float64 `json:"price"`
	MinimumQuantity   int     `json:"minimum_quantity"`
	AvailableQuantity int     `json:"available_quantity"`
}

type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

type CreateReviewRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Image  string `json:"image"`
	Rating int    `json:"rating"`
	Text   string `json:"review"`
}

// PlaceOrderRequest is the order draft. Paid state is never taken from the client.
type PlaceOrderRequest struct {
	Email      string            `json:"email"`
	Name       string            `json:"name"`
	Phone      string            `json:"phone"`
	Address    string            `json:"address"`
	PartID     string            `json:"partId"`
	PartName   string            `json:"partName"`
	Quantity   int               `json:"quantity"`
	TotalPrice float64           `json:"totalPrice"`
	Items      []model.OrderItem `json:"items"`
}

type ConfirmPaymentRequest struct {
	TransactionID string  `json:"transactionId"`
	Email         string  `json:"email"`
	Amount        float64 `json:"amount"`
}

type PaymentIntentRequest struct {
	Price float64 `json:"price"`
}

type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

type InsertResult struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

type UpdateResult struct {
	Acknowledged  bool   `json:"acknowledged"`
	MatchedCount  int64  `json:"matchedCount"`
	ModifiedCount int64  `json:"modifiedCount"`
	UpsertedCount int64  `json:"upsertedCount"`
	UpsertedID    string `json:"upsertedId,omitempty"`
}

type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}
