package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gestao/cadastrobackend/database"
)

// paginate counts the rows matched by query and loads the requested page,
// ordered by the request's sort field with id as tie-breaker. Scopes apply to
// the page load only, never to the count.
func paginate[T any](ctx context.Context, query *gorm.DB, req database.PageRequest, scopes ...func(*gorm.DB) *gorm.DB) (database.Page[T], error) {
	base := query.WithContext(ctx).Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return database.Page[T]{}, fmt.Errorf("failed to count rows: %w", err)
	}

	var items []T
	if total > int64(req.Offset()) {
		q := base.Order(clause.OrderByColumn{Column: clause.Column{Name: string(req.Sort)}})
		if req.Sort != database.SortByID {
			q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: string(database.SortByID)}})
		}
		if err := q.Scopes(scopes...).Offset(req.Offset()).Limit(req.Size).Find(&items).Error; err != nil {
			return database.Page[T]{}, fmt.Errorf("failed to load page %d: %w", req.Page, err)
		}
	}

	return database.NewPage(items, req, total), nil
}
