package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/gestao/cadastrobackend/database"
	"github.com/gestao/cadastrobackend/models"
)

// AddressRepository handles database operations for Address entities
type AddressRepository struct {
	DB *gorm.DB
}

// NewAddressRepository creates a new instance of AddressRepository
func NewAddressRepository(db *gorm.DB) *AddressRepository {
	return &AddressRepository{DB: db}
}

func (r *AddressRepository) GetByID(ctx context.Context, id uint) (*models.Address, error) {
	var address models.Address
	err := r.DB.WithContext(ctx).First(&address, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get address by ID %d: %w", id, err)
	}
	return &address, nil
}

func (r *AddressRepository) ListAll(ctx context.Context) ([]models.Address, error) {
	var addresses []models.Address
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&addresses).Error; err != nil {
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}
	return addresses, nil
}

func (r *AddressRepository) ListPage(ctx context.Context, req database.PageRequest) (database.Page[models.Address], error) {
	return paginate[models.Address](ctx, r.DB.Model(&models.Address{}), req)
}

func (r *AddressRepository) findByColumn(ctx context.Context, column, value string, req database.PageRequest) (database.Page[models.Address], error) {
	query := r.DB.Model(&models.Address{}).Where(column+" = ?", value)
	page, err := paginate[models.Address](ctx, query, req)
	if err != nil {
		return database.Page[models.Address]{}, fmt.Errorf("failed to find addresses by %s '%s': %w", column, value, err)
	}
	return page, nil
}

func (r *AddressRepository) FindByPostalCode(ctx context.Context, postalCode string, req database.PageRequest) (database.Page[models.Address], error) {
	return r.findByColumn(ctx, "cep", postalCode, req)
}

func (r *AddressRepository) FindByCity(ctx context.Context, city string, req database.PageRequest) (database.Page[models.Address], error) {
	return r.findByColumn(ctx, "cidade", city, req)
}

func (r *AddressRepository) FindByState(ctx context.Context, state string, req database.PageRequest) (database.Page[models.Address], error) {
	return r.findByColumn(ctx, "estado", state, req)
}

func (r *AddressRepository) ListByPersonID(ctx context.Context, personID uint, req database.PageRequest) (database.Page[models.Address], error) {
	query := r.DB.Model(&models.Address{}).Where("id_usuario = ?", personID)
	page, err := paginate[models.Address](ctx, query, req)
	if err != nil {
		return database.Page[models.Address]{}, fmt.Errorf("failed to list addresses for person ID %d: %w", personID, err)
	}
	return page, nil
}

func (r *AddressRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.Address{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check address ID %d: %w", id, err)
	}
	return count > 0, nil
}

func (r *AddressRepository) Save(ctx context.Context, address *models.Address) error {
	if err := r.DB.WithContext(ctx).Save(address).Error; err != nil {
		return fmt.Errorf("failed to save address ID %d for person ID %d: %w", address.ID, address.PersonID, err)
	}
	return nil
}

func (r *AddressRepository) Delete(ctx context.Context, id uint) error {
	result := r.DB.WithContext(ctx).Delete(&models.Address{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete address ID %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *AddressRepository) DemotePrimary(ctx context.Context, personID, keepID uint) (int64, error) {
	sqlStr, args, err := database.DemotePrimaryAddressesSQL(personID, keepID)
	if err != nil {
		return 0, err
	}
	result := r.DB.WithContext(ctx).Exec(sqlStr, args...)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to demote primary addresses of person ID %d: %w", personID, result.Error)
	}
	return result.RowsAffected, nil
}

func (r *AddressRepository) DeleteOrphans(ctx context.Context, personID uint, keepIDs []uint) (int64, error) {
	sqlStr, args, err := database.DeleteOrphanAddressesSQL(personID, keepIDs)
	if err != nil {
		return 0, err
	}
	result := r.DB.WithContext(ctx).Exec(sqlStr, args...)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete orphan addresses of person ID %d: %w", personID, result.Error)
	}
	return result.RowsAffected, nil
}
