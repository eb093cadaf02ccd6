package models

// Address represents a postal address ("endereco") owned by exactly one person.
// It corresponds to the 'enderecos' table.
type Address struct {
	ID         uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	PostalCode string  `gorm:"column:cep;size:8;not null;index" json:"postal_code"`
	Street     *string `gorm:"column:logradouro;size:200" json:"street,omitempty"`
	City       *string `gorm:"column:cidade;size:200;index" json:"city,omitempty"`
	State      *string `gorm:"column:estado;size:200;index" json:"state,omitempty"`
	Number     *string `gorm:"column:numero;size:3" json:"number,omitempty"`
	IsPrimary  bool    `gorm:"column:principal;not null;default:false" json:"is_primary"`
	PersonID   uint    `gorm:"column:id_usuario;not null;index" json:"person_id"` // Foreign key to usuarios table
}

// TableName explicitly sets the table name for GORM.
func (Address) TableName() string {
	return "enderecos"
}
