package model

import "github.com/google/uuid"

// Customer identity and name are fixed at creation; contact fields may change.
type Customer struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
}

func NewCustomer(firstName, lastName, email string) *Customer {
	return &Customer{
		ID:        uuid.NewString(),
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
	}
}

func (c *Customer) FullName() string {
	if c.FirstName == "" {
		return c.LastName
	}
	return c.FirstName + " " + c.LastName
}

func (c *Customer) SetPhone(phone string)     { c.Phone = phone }
func (c *Customer) SetAddress(address string) { c.Address = address }
