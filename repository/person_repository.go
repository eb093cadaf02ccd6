package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gestao/cadastrobackend/database"
	"github.com/gestao/cadastrobackend/models"
)

// PersonRepository handles database operations for Person entities
type PersonRepository struct {
	DB *gorm.DB
}

// NewPersonRepository creates a new instance of PersonRepository
func NewPersonRepository(db *gorm.DB) *PersonRepository {
	return &PersonRepository{DB: db}
}

func preloadAddresses(db *gorm.DB) *gorm.DB {
	return db.Preload("Addresses", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	})
}

// GetByID retrieves a person by their ID, preloading Addresses
func (r *PersonRepository) GetByID(ctx context.Context, id uint) (*models.Person, error) {
	var person models.Person
	err := r.DB.WithContext(ctx).Scopes(preloadAddresses).First(&person, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get person by ID %d: %w", id, err)
	}
	return &person, nil
}

// ListAll retrieves all people ordered by id, preloading Addresses
func (r *PersonRepository) ListAll(ctx context.Context) ([]models.Person, error) {
	var people []models.Person
	err := r.DB.WithContext(ctx).Scopes(preloadAddresses).Order("id ASC").Find(&people).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list people: %w", err)
	}
	return people, nil
}

// ListPage retrieves one page of people
func (r *PersonRepository) ListPage(ctx context.Context, req database.PageRequest) (database.Page[models.Person], error) {
	page, err := paginate[models.Person](ctx, r.DB.Model(&models.Person{}), req, preloadAddresses)
	if err != nil {
		return database.Page[models.Person]{}, fmt.Errorf("failed to list people page: %w", err)
	}
	return page, nil
}

// FindByNameLike retrieves one page of people whose name contains name.
// An empty name matches every person, including those without a name.
func (r *PersonRepository) FindByNameLike(ctx context.Context, name string, req database.PageRequest) (database.Page[models.Person], error) {
	query := r.DB.Model(&models.Person{})
	if name != "" {
		query = query.Where("nome_completo LIKE ?", "%"+name+"%")
	}
	page, err := paginate[models.Person](ctx, query, req, preloadAddresses)
	if err != nil {
		return database.Page[models.Person]{}, fmt.Errorf("error searching people by name for '%s': %w", name, err)
	}
	return page, nil
}

// ExistsByID reports whether a person with the given ID exists
func (r *PersonRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.Person{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check person ID %d: %w", id, err)
	}
	return count > 0, nil
}

// Save inserts the person when it has no ID and upserts it otherwise.
// The Addresses association is never written from here.
func (r *PersonRepository) Save(ctx context.Context, person *models.Person) error {
	err := r.DB.WithContext(ctx).Omit(clause.Associations).Save(person).Error
	if err != nil {
		return fmt.Errorf("failed to save person ID %d: %w", person.ID, err)
	}
	return nil
}

// Delete removes a person and every address it owns
func (r *PersonRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// delete owned addresses (the schema cascades too, this keeps it independent of the pragma)
		if err := tx.Where("id_usuario = ?", id).Delete(&models.Address{}).Error; err != nil {
			return fmt.Errorf("failed to delete addresses of person ID %d: %w", id, err)
		}

		result := tx.Delete(&models.Person{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete person ID %d: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
