package dto

// Person is the wire shape of a registered person together with the addresses it owns.
type Person struct {
	ID        uint      `json:"id"`
	Name      *string   `json:"name" validate:"omitempty,max=200"`
	BirthDate *Date     `json:"birthDate"`
	Addresses []Address `json:"addresses" validate:"dive"`
}

// Address is the wire shape of an address. PersonID is filled on the way out
// and ignored on the way in; the owner always comes from the request path or
// the enclosing person.
type Address struct {
	ID         uint    `json:"id"`
	PostalCode string  `json:"postalCode" validate:"required,max=8"`
	Street     *string `json:"street" validate:"omitempty,max=200"`
	City       *string `json:"city" validate:"omitempty,max=200"`
	State      *string `json:"state" validate:"omitempty,max=200"`
	Number     *string `json:"number" validate:"omitempty,max=3"`
	IsPrimary  *bool   `json:"isPrimary"`
	PersonID   uint    `json:"personId"`
}

// Primary reports the primary flag, treating an absent flag as false.
func (a Address) Primary() bool {
	return a.IsPrimary != nil && *a.IsPrimary
}
