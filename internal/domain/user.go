package domain

import (
	"time"

	"github.com/google/uuid"
)

// Registration methods accepted by the stub identity flow.
const (
	RegistrationMethodEmail    = "email"
	RegistrationMethodPhone    = "phone"
	RegistrationMethodTelegram = "telegram"
)

// User is a storefront profile. It is fabricated by the stub identity service
// without any credential verification and carries no security meaning.
type User struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Phone              string    `json:"phone"`
	Telegram           string    `json:"telegram,omitempty"`
	RegistrationMethod string    `json:"registration_method"`
	CreatedAt          time.Time `json:"created_at"`
}
