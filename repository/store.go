package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

var (
	_ PersonRepositoryInterface  = (*PersonRepository)(nil)
	_ AddressRepositoryInterface = (*AddressRepository)(nil)
	_ Store                      = (*GormStore)(nil)
)

// GormStore binds both repositories to one GORM handle, which may be a transaction.
type GormStore struct {
	db        *gorm.DB
	people    *PersonRepository
	addresses *AddressRepository
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{
		db:        db,
		people:    NewPersonRepository(db),
		addresses: NewAddressRepository(db),
	}
}

func (s *GormStore) People() PersonRepositoryInterface {
	return s.people
}

func (s *GormStore) Addresses() AddressRepositoryInterface {
	return s.addresses
}

func (s *GormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewGormStore(tx))
	})
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB from GORM: %w", err)
	}
	return sqlDB.PingContext(ctx)
}
