package customer

import "time"

const dateLayout = "2006-01-02"

type Customer struct {
	ID        int64     `json:"id"`
	UserID    uint      `json:"user_id"`
	Phone     string    `json:"phone"`
	BirthDate *string   `json:"birth_date"`
	Address   *Address  `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Address struct {
	CustomerID int64  `json:"-"`
	State      string `json:"state"`
	City       string `json:"city"`
	Street     string `json:"street"`
	Number     int    `json:"number"`
}

type AddressInput struct {
	State  string `json:"state" validate:"required,max=255"`
	City   string `json:"city" validate:"required,max=255"`
	Street string `json:"street" validate:"required,max=255"`
	Number int    `json:"number" validate:"gte=0"`
}

// UpdateProfileInput replaces the profile; a nil Address leaves the stored one as is.
type UpdateProfileInput struct {
	Phone     string        `json:"phone" validate:"max=100"`
	BirthDate *string       `json:"birth_date"`
	Address   *AddressInput `json:"address"`
}
