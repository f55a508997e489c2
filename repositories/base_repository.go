package repositories

import (
	"context"
	"errors"
	"strings"

	"dilek.link/configs/configslog"
	"dilek.link/pkg/queryparams"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNotFound repository katmanının ortak "kayıt yok" hatası.
// Servisler bunu kendi alan hatalarına çevirir.
var ErrNotFound = errors.New("kayıt bulunamadı")

// IBaseRepository liste uçlarının ortak sayfalama/sıralama mantığı için
// generik arayüz.
type IBaseRepository[T any] interface {
	SetAllowedSortColumns(columns []string)
	FindAllPaginated(ctx context.Context, params queryparams.ListParams, conds ...interface{}) ([]T, int64, error)
}

// BaseRepository IBaseRepository'nin gorm implementasyonu.
type BaseRepository[T any] struct {
	db          *gorm.DB
	sortColumns map[string]bool
}

// NewBaseRepository verilen db (veya tx) üzerinde çalışan base repo oluşturur.
func NewBaseRepository[T any](db *gorm.DB) *BaseRepository[T] {
	return &BaseRepository[T]{db: db, sortColumns: map[string]bool{"id": true, "created_at": true}}
}

// SetAllowedSortColumns sıralamaya izin verilen sütunları belirler.
// Beyaz liste dışı istekler varsayılana düşer (SQL injection koruması).
func (r *BaseRepository[T]) SetAllowedSortColumns(columns []string) {
	r.sortColumns = make(map[string]bool, len(columns))
	for _, c := range columns {
		r.sortColumns[c] = true
	}
}

// FindAllPaginated koşullara uyan kayıtları sayfalayarak getirir.
func (r *BaseRepository[T]) FindAllPaginated(ctx context.Context, params queryparams.ListParams, conds ...interface{}) ([]T, int64, error) {
	var (
		records    []T
		totalCount int64
		model      T
	)

	query := r.db.WithContext(ctx).Model(&model)
	if len(conds) > 0 {
		query = query.Where(conds[0], conds[1:]...)
	}

	if err := query.Count(&totalCount).Error; err != nil {
		configslog.Log.Error("BaseRepository.FindAllPaginated: count hatası", zap.Error(err))
		return nil, 0, err
	}
	if totalCount == 0 {
		return records, 0, nil
	}

	sortBy := params.SortBy
	if !r.sortColumns[sortBy] {
		sortBy = queryparams.DefaultSortBy
	}
	orderBy := strings.ToLower(params.OrderBy)
	if orderBy != "asc" && orderBy != "desc" {
		orderBy = queryparams.DefaultOrderBy
	}

	err := query.
		Order(sortBy + " " + orderBy).
		Limit(params.PerPage).
		Offset(params.CalculateOffset()).
		Find(&records).Error
	if err != nil {
		configslog.Log.Error("BaseRepository.FindAllPaginated: find hatası", zap.Error(err))
		return nil, totalCount, err
	}
	return records, totalCount, nil
}

var _ IBaseRepository[struct{}] = (*BaseRepository[struct{}])(nil)
