package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gestao/cadastrobackend/database"
	"github.com/gestao/cadastrobackend/models"
)

func newTestStore(t *testing.T) (*GormStore, *gorm.DB) {
	t.Helper()
	db, err := database.InitGormDB(database.InMemoryDSN(uuid.NewString()), logger.Silent)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrateModels(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return NewGormStore(db), db
}

func strPtr(s string) *string { return &s }

func pageOf(t *testing.T, page, size int, sort database.SortField) database.PageRequest {
	t.Helper()
	req, err := database.NewPageRequest(page, size, sort)
	require.NoError(t, err)
	return req
}

func createPerson(t *testing.T, store *GormStore, name string) *models.Person {
	t.Helper()
	p := &models.Person{Name: strPtr(name)}
	require.NoError(t, store.People().Save(context.Background(), p))
	require.NotZero(t, p.ID)
	return p
}

func createAddress(t *testing.T, store *GormStore, personID uint, cep, city, state string, primary bool) *models.Address {
	t.Helper()
	a := &models.Address{PostalCode: cep, City: strPtr(city), State: strPtr(state), IsPrimary: primary, PersonID: personID}
	require.NoError(t, store.Addresses().Save(context.Background(), a))
	require.NotZero(t, a.ID)
	return a
}

func TestPersonRepositoryGetByIDPreloadsAddresses(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	p := createPerson(t, store, "Ana")
	createAddress(t, store, p.ID, "22222222", "Natal", "RN", false)
	createAddress(t, store, p.ID, "11111111", "Recife", "PE", true)

	got, err := store.People().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", *got.Name)
	require.Len(t, got.Addresses, 2)
	assert.Less(t, got.Addresses[0].ID, got.Addresses[1].ID)
}

func TestPersonRepositoryGetByIDNotFound(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.People().GetByID(context.Background(), 404)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestPersonRepositorySaveUpdatesExisting(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	p := createPerson(t, store, "Ana")
	p.Name = strPtr("Ana Maria")
	require.NoError(t, store.People().Save(ctx, p))

	got, err := store.People().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", *got.Name)

	all, err := store.People().ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestPersonRepositoryListPageIsDisjointAndOrdered(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 60; i++ {
		createPerson(t, store, fmt.Sprintf("Pessoa %02d", i))
	}

	first, err := store.People().ListPage(ctx, pageOf(t, 1, 50, database.SortByID))
	require.NoError(t, err)
	second, err := store.People().ListPage(ctx, pageOf(t, 2, 50, database.SortByID))
	require.NoError(t, err)

	assert.Len(t, first.Content, 50)
	assert.Len(t, second.Content, 10)
	assert.Equal(t, int64(60), first.TotalElements)
	assert.Equal(t, 2, first.TotalPages)

	seen := map[uint]bool{}
	var last uint
	for _, p := range append(first.Content, second.Content...) {
		assert.False(t, seen[p.ID], "person %d appears twice", p.ID)
		assert.Greater(t, p.ID, last)
		seen[p.ID] = true
		last = p.ID
	}

	beyond, err := store.People().ListPage(ctx, pageOf(t, 3, 50, database.SortByID))
	require.NoError(t, err)
	assert.True(t, beyond.Empty())
}

func TestPersonRepositoryFindByNameLike(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	createPerson(t, store, "Mariana")
	createPerson(t, store, "Ana")
	createPerson(t, store, "Bruno")
	require.NoError(t, store.People().Save(ctx, &models.Person{}))

	page, err := store.People().FindByNameLike(ctx, "ana", pageOf(t, 1, 50, database.SortByName))
	require.NoError(t, err)
	require.Len(t, page.Content, 2)
	assert.Equal(t, "Ana", *page.Content[0].Name)
	assert.Equal(t, "Mariana", *page.Content[1].Name)

	all, err := store.People().FindByNameLike(ctx, "", pageOf(t, 1, 50, database.SortByName))
	require.NoError(t, err)
	assert.Equal(t, int64(4), all.TotalElements)
}

func TestPersonRepositoryDeleteRemovesAddresses(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	p := createPerson(t, store, "Ana")
	a := createAddress(t, store, p.ID, "12345678", "Natal", "RN", true)
	other := createPerson(t, store, "Bruno")
	kept := createAddress(t, store, other.ID, "87654321", "Natal", "RN", true)

	require.NoError(t, store.People().Delete(ctx, p.ID))

	exists, err := store.People().ExistsByID(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = store.Addresses().ExistsByID(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = store.Addresses().ExistsByID(ctx, kept.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	assert.ErrorIs(t, store.People().Delete(ctx, p.ID), gorm.ErrRecordNotFound)
}

func TestAddressRepositoryFindByColumnSortsByField(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	p := createPerson(t, store, "Ana")
	createAddress(t, store, p.ID, "33333333", "Natal", "RN", false)
	createAddress(t, store, p.ID, "11111111", "Natal", "RN", false)
	createAddress(t, store, p.ID, "22222222", "Recife", "PE", false)

	byCity, err := store.Addresses().FindByCity(ctx, "Natal", pageOf(t, 1, 50, database.SortByCity))
	require.NoError(t, err)
	assert.Len(t, byCity.Content, 2)

	byState, err := store.Addresses().FindByState(ctx, "PE", pageOf(t, 1, 50, database.SortByState))
	require.NoError(t, err)
	require.Len(t, byState.Content, 1)
	assert.Equal(t, "22222222", byState.Content[0].PostalCode)

	byCep, err := store.Addresses().FindByPostalCode(ctx, "11111111", pageOf(t, 1, 50, database.SortByPostalCode))
	require.NoError(t, err)
	require.Len(t, byCep.Content, 1)

	none, err := store.Addresses().FindByCity(ctx, "", pageOf(t, 1, 50, database.SortByCity))
	require.NoError(t, err)
	assert.True(t, none.Empty())

	all, err := store.Addresses().ListPage(ctx, pageOf(t, 1, 2, database.SortByPostalCode))
	require.NoError(t, err)
	require.Len(t, all.Content, 2)
	assert.Equal(t, "11111111", all.Content[0].PostalCode)
	assert.Equal(t, "22222222", all.Content[1].PostalCode)
}

func TestAddressRepositoryListByPersonID(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	ana := createPerson(t, store, "Ana")
	bruno := createPerson(t, store, "Bruno")
	createAddress(t, store, ana.ID, "11111111", "Natal", "RN", false)
	createAddress(t, store, ana.ID, "22222222", "Natal", "RN", false)
	createAddress(t, store, bruno.ID, "33333333", "Natal", "RN", false)

	page, err := store.Addresses().ListByPersonID(ctx, ana.ID, pageOf(t, 1, 50, database.SortByID))
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.TotalElements)
	for _, a := range page.Content {
		assert.Equal(t, ana.ID, a.PersonID)
	}
}

func TestAddressRepositoryDemotePrimary(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	p := createPerson(t, store, "Ana")
	first := createAddress(t, store, p.ID, "11111111", "Natal", "RN", true)
	second := createAddress(t, store, p.ID, "22222222", "Natal", "RN", true)
	other := createPerson(t, store, "Bruno")
	foreign := createAddress(t, store, other.ID, "33333333", "Natal", "RN", true)

	n, err := store.Addresses().DemotePrimary(ctx, p.ID, second.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := store.Addresses().GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, got.IsPrimary)

	got, err = store.Addresses().GetByID(ctx, second.ID)
	require.NoError(t, err)
	assert.True(t, got.IsPrimary)

	got, err = store.Addresses().GetByID(ctx, foreign.ID)
	require.NoError(t, err)
	assert.True(t, got.IsPrimary)
}

func TestAddressRepositoryDeleteOrphans(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	p := createPerson(t, store, "Ana")
	keep := createAddress(t, store, p.ID, "11111111", "Natal", "RN", false)
	drop := createAddress(t, store, p.ID, "22222222", "Natal", "RN", false)

	n, err := store.Addresses().DeleteOrphans(ctx, p.ID, []uint{keep.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = store.Addresses().GetByID(ctx, drop.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	n, err = store.Addresses().DeleteOrphans(ctx, p.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestAddressRepositoryDelete(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	p := createPerson(t, store, "Ana")
	a := createAddress(t, store, p.ID, "11111111", "Natal", "RN", false)

	require.NoError(t, store.Addresses().Delete(ctx, a.ID))
	assert.ErrorIs(t, store.Addresses().Delete(ctx, a.ID), gorm.ErrRecordNotFound)
}

func TestStoreTransactionRollsBack(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := store.Transaction(ctx, func(tx Store) error {
		if err := tx.People().Save(ctx, &models.Person{Name: strPtr("Ana")}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	all, err := store.People().ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.NoError(t, store.Ping(ctx))
}

func TestStoreOverMemoryDSNServesQueriesDuringTransaction(t *testing.T) {
	db, err := database.InitGormDB(":memory:", logger.Silent)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrateModels(db))
	t.Cleanup(func() { _ = database.Close(db) })

	store := NewGormStore(db)
	ctx := context.Background()
	createPerson(t, store, "Ana")

	err = store.Transaction(ctx, func(tx Store) error {
		inner, err := tx.People().ListAll(ctx)
		if err != nil {
			return err
		}
		outer, err := store.People().ListAll(ctx)
		if err != nil {
			return err
		}
		assert.Len(t, inner, 1)
		assert.Len(t, outer, 1)
		return nil
	})
	require.NoError(t, err)
}
