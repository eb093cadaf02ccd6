package database

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

const (
	addressesTable     = "enderecos"
	addressOwnerColumn = "id_usuario"
	addressFlagColumn  = "principal"
	addressIDColumn    = "id"
)

// DemotePrimaryAddressesSQL builds the conditional update that clears the primary
// flag on every address of personID except keepID (0 keeps none).
func DemotePrimaryAddressesSQL(personID, keepID uint) (string, []interface{}, error) {
	where := sq.And{
		sq.Eq{addressOwnerColumn: personID},
		sq.Eq{addressFlagColumn: true},
	}
	if keepID != 0 {
		where = append(where, sq.NotEq{addressIDColumn: keepID})
	}

	queryBuilder := psql.Update(addressesTable).
		Set(addressFlagColumn, false).
		Where(where)

	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("failed to build SQL for DemotePrimaryAddresses: %w", err)
	}
	return sqlStr, args, nil
}

// DeleteOrphanAddressesSQL builds the delete that removes every address of personID
// whose id is not listed in keepIDs.
func DeleteOrphanAddressesSQL(personID uint, keepIDs []uint) (string, []interface{}, error) {
	where := sq.And{sq.Eq{addressOwnerColumn: personID}}
	if len(keepIDs) > 0 {
		where = append(where, sq.NotEq{addressIDColumn: keepIDs})
	}

	queryBuilder := psql.Delete(addressesTable).Where(where)

	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("failed to build SQL for DeleteOrphanAddresses: %w", err)
	}
	return sqlStr, args, nil
}
