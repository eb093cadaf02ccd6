package models

import "time"

// Person represents a registered person ("usuario") in the database using GORM.
// It corresponds to the 'usuarios' table.
type Person struct {
	ID        uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      *string    `gorm:"column:nome_completo;size:200" json:"name"`
	BirthDate *time.Time `gorm:"column:data_nascimento;type:date" json:"birth_date"`

	// Relationships
	// Only populated when the repository preloads them; saving a person never writes them.
	Addresses []Address `gorm:"foreignKey:PersonID;constraint:OnDelete:CASCADE" json:"addresses,omitempty"`
}

// TableName explicitly sets the table name for GORM.
func (Person) TableName() string {
	return "usuarios"
}
