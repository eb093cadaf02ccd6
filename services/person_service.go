package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gestao/cadastrobackend/database"
	"github.com/gestao/cadastrobackend/dto"
	"github.com/gestao/cadastrobackend/models"
	"github.com/gestao/cadastrobackend/repository"
)

// PersonService orchestrates person CRUD and the person side of the
// person/address relationship.
type PersonService struct {
	store  repository.Store
	logger *zap.Logger
}

func NewPersonService(store repository.Store, logger *zap.Logger) *PersonService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PersonService{store: store, logger: logger}
}

// GetByID returns the person with its addresses, or ErrNotFound.
func (s *PersonService) GetByID(ctx context.Context, id uint) (dto.Person, error) {
	person, err := s.store.People().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.Person{}, notFound("person ID %d not found", id)
		}
		return dto.Person{}, err
	}
	return toPersonDTO(*person), nil
}

// ListAll returns every person, unpaged. An empty store is ErrNotFound.
func (s *PersonService) ListAll(ctx context.Context) ([]dto.Person, error) {
	people, err := s.store.People().ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(people) == 0 {
		return nil, notFound("no people registered")
	}
	return toPersonDTOs(people), nil
}

// ListPage returns one page of people ordered by id. An empty page is ErrNotFound.
func (s *PersonService) ListPage(ctx context.Context, page, size int) (database.Page[dto.Person], error) {
	req, err := pageRequest(page, size, database.SortByID)
	if err != nil {
		return database.Page[dto.Person]{}, err
	}
	result, err := s.store.People().ListPage(ctx, req)
	if err != nil {
		return database.Page[dto.Person]{}, err
	}
	if result.Empty() {
		return database.Page[dto.Person]{}, notFound("no people found on page %d", page)
	}
	return database.MapPage(result, toPersonDTO), nil
}

// FindByName returns one page of people whose name contains name, ordered by name.
func (s *PersonService) FindByName(ctx context.Context, page, size int, name string) (database.Page[dto.Person], error) {
	req, err := pageRequest(page, size, database.SortByName)
	if err != nil {
		return database.Page[dto.Person]{}, err
	}
	result, err := s.store.People().FindByNameLike(ctx, name, req)
	if err != nil {
		return database.Page[dto.Person]{}, err
	}
	if result.Empty() {
		return database.Page[dto.Person]{}, notFound("no people found with a name like '%s'", name)
	}
	return database.MapPage(result, toPersonDTO), nil
}

// ListAddresses returns one page of the addresses owned by personID, ordered by id.
func (s *PersonService) ListAddresses(ctx context.Context, personID uint, page, size int) (database.Page[dto.Address], error) {
	req, err := pageRequest(page, size, database.SortByID)
	if err != nil {
		return database.Page[dto.Address]{}, err
	}
	exists, err := s.store.People().ExistsByID(ctx, personID)
	if err != nil {
		return database.Page[dto.Address]{}, err
	}
	if !exists {
		return database.Page[dto.Address]{}, notFound("person ID %d not found", personID)
	}
	result, err := s.store.Addresses().ListByPersonID(ctx, personID, req)
	if err != nil {
		return database.Page[dto.Address]{}, err
	}
	if result.Empty() {
		return database.Page[dto.Address]{}, notFound("no addresses found for person ID %d", personID)
	}
	return database.MapPage(result, toAddressDTO), nil
}

// Save upserts a person together with its full address collection in one
// transaction. Owned addresses missing from the collection are deleted.
func (s *PersonService) Save(ctx context.Context, in dto.Person) (dto.Person, error) {
	for i := range in.Addresses {
		in.Addresses[i] = NormalizeAddress(in.Addresses[i])
	}
	if err := validateStruct(in); err != nil {
		return dto.Person{}, err
	}
	primaries := 0
	for _, a := range in.Addresses {
		if a.Primary() {
			primaries++
		}
	}
	if primaries > 1 {
		return dto.Person{}, invalid("a person can have only one primary address, got %d", primaries)
	}

	person := toPersonModel(in)
	addresses := person.Addresses
	person.Addresses = nil

	var saved *models.Person
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		if err := tx.People().Save(ctx, &person); err != nil {
			return err
		}
		if person.ID == 0 {
			return persistenceFailure("person was not saved")
		}

		keep := make([]uint, 0, len(addresses))
		for _, a := range addresses {
			if a.ID == 0 {
				continue
			}
			if err := s.checkAddressOwner(ctx, tx, a.ID, person.ID); err != nil {
				return err
			}
			keep = append(keep, a.ID)
		}

		removed, err := tx.Addresses().DeleteOrphans(ctx, person.ID, keep)
		if err != nil {
			return err
		}
		if removed > 0 {
			s.logger.Info("removed addresses detached from person",
				zap.Uint("person_id", person.ID), zap.Int64("removed", removed))
		}

		for i := range addresses {
			addresses[i].PersonID = person.ID
			if err := tx.Addresses().Save(ctx, &addresses[i]); err != nil {
				return err
			}
			if addresses[i].ID == 0 {
				return persistenceFailure("address %d of person ID %d was not saved", i, person.ID)
			}
		}

		saved, err = tx.People().GetByID(ctx, person.ID)
		if err != nil {
			return fmt.Errorf("failed to reload person ID %d: %w", person.ID, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("failed to save person", zap.Uint("person_id", in.ID), zap.Error(err))
		return dto.Person{}, err
	}

	s.logger.Info("person saved", zap.Uint("person_id", saved.ID), zap.Int("addresses", len(saved.Addresses)))
	return toPersonDTO(*saved), nil
}

// checkAddressOwner rejects an existing address id that belongs to another person.
// Unknown ids are accepted and inserted with that id.
func (s *PersonService) checkAddressOwner(ctx context.Context, tx repository.Store, addressID, personID uint) error {
	existing, err := tx.Addresses().GetByID(ctx, addressID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if existing.PersonID != personID {
		return invalid("address ID %d belongs to another person", addressID)
	}
	return nil
}

// Delete removes the person and every address it owns.
func (s *PersonService) Delete(ctx context.Context, id uint) error {
	exists, err := s.store.People().ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return notFound("person ID %d not found", id)
	}
	if err := s.store.People().Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("person ID %d not found", id)
		}
		return err
	}
	s.logger.Info("person deleted", zap.Uint("person_id", id))
	return nil
}

// DeleteAddress removes one address of a person. The person is checked first,
// then the address, which must be owned by that person.
func (s *PersonService) DeleteAddress(ctx context.Context, personID, addressID uint) error {
	exists, err := s.store.People().ExistsByID(ctx, personID)
	if err != nil {
		return err
	}
	if !exists {
		return notFound("person ID %d not found", personID)
	}

	address, err := s.store.Addresses().GetByID(ctx, addressID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("address ID %d not found", addressID)
		}
		return err
	}
	if address.PersonID != personID {
		return notFound("address ID %d not found for person ID %d", addressID, personID)
	}

	if err := s.store.Addresses().Delete(ctx, addressID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("address ID %d not found", addressID)
		}
		return err
	}
	s.logger.Info("address deleted", zap.Uint("person_id", personID), zap.Uint("address_id", addressID))
	return nil
}
