package models

import "time"

// Client is a shop customer. Clients register themselves and log in with
// the "client" role.
type Client struct {
	ID           ClientID `json:"id"`
	Username     string   `json:"username"`
	Password     string   `json:"password,omitempty"`
	FirstName    string   `json:"firstName"`
	LastName     string   `json:"lastName"`
	PhoneNumbers []string `json:"phoneNumbers"`
	Email        string   `json:"email"`
	Active       bool     `json:"active"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Public strips the password hash.
func (c Client) Public() Client {
	c.Password = ""
	return c
}
