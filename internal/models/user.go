package models

import "time"

// User is the persisted record for a registered account. The same shape is
// copied verbatim into the session slot on login.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
	Balance      float64   `json:"balance"`
	Verified     bool      `json:"verified"`
}

// Public returns the user with credentials stripped, for API responses.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		Balance:   u.Balance,
		Verified:  u.Verified,
	}
}

// PublicUser is the externally visible view of a User.
type PublicUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	Balance   float64   `json:"balance"`
	Verified  bool      `json:"verified"`
}
