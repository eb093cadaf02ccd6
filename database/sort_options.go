package database

// SortField names a column a page can be ordered by.
type SortField string

const (
	SortByID         SortField = "id"
	SortByName       SortField = "nome_completo"
	SortByPostalCode SortField = "cep"
	SortByCity       SortField = "cidade"
	SortByState      SortField = "estado"
)

const DefaultSortField = SortByID

// IsValidSortField checks if a string is a valid sort field constant
func IsValidSortField(field string) bool {
	switch SortField(field) {
	case SortByID, SortByName, SortByPostalCode, SortByCity, SortByState:
		return true
	default:
		return false
	}
}
