package repository

import (
	"context"

	"github.com/gestao/cadastrobackend/database"
	"github.com/gestao/cadastrobackend/models"
)

// PersonRepositoryInterface defines the methods for person data operations.
// Lookups of absent rows return gorm.ErrRecordNotFound.
type PersonRepositoryInterface interface {
	GetByID(ctx context.Context, id uint) (*models.Person, error)
	ListAll(ctx context.Context) ([]models.Person, error)
	ListPage(ctx context.Context, req database.PageRequest) (database.Page[models.Person], error)
	FindByNameLike(ctx context.Context, name string, req database.PageRequest) (database.Page[models.Person], error)
	ExistsByID(ctx context.Context, id uint) (bool, error)
	Save(ctx context.Context, person *models.Person) error
	Delete(ctx context.Context, id uint) error
}

// AddressRepositoryInterface defines the methods for address data operations
type AddressRepositoryInterface interface {
	GetByID(ctx context.Context, id uint) (*models.Address, error)
	ListAll(ctx context.Context) ([]models.Address, error)
	ListPage(ctx context.Context, req database.PageRequest) (database.Page[models.Address], error)
	FindByPostalCode(ctx context.Context, postalCode string, req database.PageRequest) (database.Page[models.Address], error)
	FindByCity(ctx context.Context, city string, req database.PageRequest) (database.Page[models.Address], error)
	FindByState(ctx context.Context, state string, req database.PageRequest) (database.Page[models.Address], error)
	ListByPersonID(ctx context.Context, personID uint, req database.PageRequest) (database.Page[models.Address], error)
	ExistsByID(ctx context.Context, id uint) (bool, error)
	Save(ctx context.Context, address *models.Address) error
	Delete(ctx context.Context, id uint) error

	// DemotePrimary clears the primary flag on every address of personID except keepID.
	DemotePrimary(ctx context.Context, personID, keepID uint) (int64, error)
	// DeleteOrphans removes the addresses of personID whose ids are not in keepIDs.
	DeleteOrphans(ctx context.Context, personID uint, keepIDs []uint) (int64, error)
}

// Store groups the repositories that share one database handle, so a unit of
// work spanning both entities can run in a single transaction.
type Store interface {
	People() PersonRepositoryInterface
	Addresses() AddressRepositoryInterface
	// Transaction runs fn against a Store bound to one transaction, committing
	// when fn returns nil and rolling back otherwise.
	Transaction(ctx context.Context, fn func(tx Store) error) error
	Ping(ctx context.Context) error
}
