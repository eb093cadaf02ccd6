package services

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gestao/cadastrobackend/database"
	"github.com/gestao/cadastrobackend/dto"
	"github.com/gestao/cadastrobackend/models"
	"github.com/gestao/cadastrobackend/repository"
)

// AddressService orchestrates address CRUD, attribute searches and the
// one-primary-address-per-person rule.
type AddressService struct {
	store  repository.Store
	logger *zap.Logger
}

func NewAddressService(store repository.Store, logger *zap.Logger) *AddressService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AddressService{store: store, logger: logger}
}

func (s *AddressService) GetByID(ctx context.Context, id uint) (dto.Address, error) {
	address, err := s.store.Addresses().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.Address{}, notFound("address ID %d not found", id)
		}
		return dto.Address{}, err
	}
	return toAddressDTO(*address), nil
}

func (s *AddressService) ListAll(ctx context.Context) ([]dto.Address, error) {
	addresses, err := s.store.Addresses().ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(addresses) == 0 {
		return nil, notFound("no addresses registered")
	}
	return toAddressDTOs(addresses), nil
}

func (s *AddressService) ListPage(ctx context.Context, page, size int) (database.Page[dto.Address], error) {
	req, err := pageRequest(page, size, database.SortByID)
	if err != nil {
		return database.Page[dto.Address]{}, err
	}
	result, err := s.store.Addresses().ListPage(ctx, req)
	if err != nil {
		return database.Page[dto.Address]{}, err
	}
	return addressPage(result, "no addresses found on page %d", page)
}

// FindByPostalCode matches the sanitized postal code exactly.
func (s *AddressService) FindByPostalCode(ctx context.Context, page, size int, postalCode string) (database.Page[dto.Address], error) {
	req, err := pageRequest(page, size, database.SortByPostalCode)
	if err != nil {
		return database.Page[dto.Address]{}, err
	}
	cep := SanitizePostalCode(postalCode)
	result, err := s.store.Addresses().FindByPostalCode(ctx, cep, req)
	if err != nil {
		return database.Page[dto.Address]{}, err
	}
	return addressPage(result, "no addresses found for postal code '%s'", cep)
}

func (s *AddressService) FindByCity(ctx context.Context, page, size int, city string) (database.Page[dto.Address], error) {
	req, err := pageRequest(page, size, database.SortByCity)
	if err != nil {
		return database.Page[dto.Address]{}, err
	}
	result, err := s.store.Addresses().FindByCity(ctx, city, req)
	if err != nil {
		return database.Page[dto.Address]{}, err
	}
	return addressPage(result, "no addresses found for city '%s'", city)
}

func (s *AddressService) FindByState(ctx context.Context, page, size int, state string) (database.Page[dto.Address], error) {
	req, err := pageRequest(page, size, database.SortByState)
	if err != nil {
		return database.Page[dto.Address]{}, err
	}
	result, err := s.store.Addresses().FindByState(ctx, state, req)
	if err != nil {
		return database.Page[dto.Address]{}, err
	}
	return addressPage(result, "no addresses found for state '%s'", state)
}

func addressPage(result database.Page[models.Address], emptyFormat string, arg interface{}) (database.Page[dto.Address], error) {
	if result.Empty() {
		return database.Page[dto.Address]{}, notFound(emptyFormat, arg)
	}
	return database.MapPage(result, toAddressDTO), nil
}

// Save creates or updates an address of personID. When the address is primary,
// every other address of that person is demoted in the same transaction.
func (s *AddressService) Save(ctx context.Context, personID uint, in dto.Address) (dto.Address, error) {
	in = NormalizeAddress(in)
	if err := validateStruct(in); err != nil {
		return dto.Address{}, err
	}
	address := toAddressModel(in)

	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		exists, err := tx.People().ExistsByID(ctx, personID)
		if err != nil {
			return err
		}
		if !exists {
			return notFound("person ID %d not found", personID)
		}

		if address.ID != 0 {
			existing, err := tx.Addresses().GetByID(ctx, address.ID)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if existing != nil && existing.PersonID != personID {
				return invalid("address ID %d belongs to another person", address.ID)
			}
		}

		if address.IsPrimary {
			// one statement for all siblings; two concurrent saves for the same person
			// are only as isolated as the store's transactions
			demoted, err := tx.Addresses().DemotePrimary(ctx, personID, address.ID)
			if err != nil {
				return err
			}
			if demoted > 0 {
				s.logger.Debug("demoted primary addresses",
					zap.Uint("person_id", personID), zap.Int64("demoted", demoted))
			}
		}

		address.PersonID = personID
		if err := tx.Addresses().Save(ctx, &address); err != nil {
			return err
		}
		if address.ID == 0 {
			return persistenceFailure("address of person ID %d was not saved", personID)
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("failed to save address", zap.Uint("person_id", personID), zap.Error(err))
		return dto.Address{}, err
	}

	s.logger.Info("address saved", zap.Uint("person_id", personID), zap.Uint("address_id", address.ID),
		zap.Bool("primary", address.IsPrimary))
	return toAddressDTO(address), nil
}

func (s *AddressService) Delete(ctx context.Context, id uint) error {
	exists, err := s.store.Addresses().ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return notFound("address ID %d not found", id)
	}
	if err := s.store.Addresses().Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("address ID %d not found", id)
		}
		return err
	}
	s.logger.Info("address deleted", zap.Uint("address_id", id))
	return nil
}
