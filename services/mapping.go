package services

import (
	"strings"
	"time"

	"github.com/gestao/cadastrobackend/dto"
	"github.com/gestao/cadastrobackend/models"
)

// SanitizePostalCode keeps ASCII letters, digits and spaces and drops everything else.
func SanitizePostalCode(cep string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == ' ':
			return r
		default:
			return -1
		}
	}, cep)
}

// NormalizeAddress applies the write/read defaults: an absent primary flag
// becomes false and the postal code is sanitized.
func NormalizeAddress(a dto.Address) dto.Address {
	primary := a.Primary()
	a.IsPrimary = &primary
	a.PostalCode = SanitizePostalCode(a.PostalCode)
	return a
}

func toAddressModel(a dto.Address) models.Address {
	return models.Address{
		ID:         a.ID,
		PostalCode: a.PostalCode,
		Street:     a.Street,
		City:       a.City,
		State:      a.State,
		Number:     a.Number,
		IsPrimary:  a.Primary(),
		PersonID:   a.PersonID,
	}
}

func toAddressDTO(a models.Address) dto.Address {
	primary := a.IsPrimary
	return dto.Address{
		ID:         a.ID,
		PostalCode: a.PostalCode,
		Street:     a.Street,
		City:       a.City,
		State:      a.State,
		Number:     a.Number,
		IsPrimary:  &primary,
		PersonID:   a.PersonID,
	}
}

func toAddressDTOs(addresses []models.Address) []dto.Address {
	out := make([]dto.Address, len(addresses))
	for i, a := range addresses {
		out[i] = toAddressDTO(a)
	}
	return out
}

func toPersonModel(p dto.Person) models.Person {
	var birthDate *time.Time
	if p.BirthDate != nil {
		t := p.BirthDate.Time
		birthDate = &t
	}
	addresses := make([]models.Address, len(p.Addresses))
	for i, a := range p.Addresses {
		addresses[i] = toAddressModel(a)
		addresses[i].PersonID = p.ID
	}
	return models.Person{
		ID:        p.ID,
		Name:      p.Name,
		BirthDate: birthDate,
		Addresses: addresses,
	}
}

func toPersonDTO(p models.Person) dto.Person {
	var birthDate *dto.Date
	if p.BirthDate != nil {
		d := dto.NewDate(p.BirthDate.Year(), p.BirthDate.Month(), p.BirthDate.Day())
		birthDate = &d
	}
	return dto.Person{
		ID:        p.ID,
		Name:      p.Name,
		BirthDate: birthDate,
		Addresses: toAddressDTOs(p.Addresses),
	}
}

func toPersonDTOs(people []models.Person) []dto.Person {
	out := make([]dto.Person, len(people))
	for i, p := range people {
		out[i] = toPersonDTO(p)
	}
	return out
}
