package providerstore

import (
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"building-registry-backend/lib/serviceerrors"
	providerapimodels "building-registry-backend/models/api/provider"
	dbmodels "building-registry-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Provider) (id uint, err error)
	GetByID(id uint) (rec *dbmodels.Provider, err error)
	GetByName(name string) (rec *dbmodels.Provider, err error)
	Update(id uint, updMap map[string]interface{}) error
	Delete(id uint) error
	List(filter providerapimodels.ProviderFilter) (list []dbmodels.Provider, err error)
	ListCount(filter providerapimodels.ProviderFilter) (count int64, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

const uniqueViolationCode = "23505"

// Create re-checks the name inside the insert transaction and is backed
// by the unique index on name, so a concurrent create of the same
// provider surfaces as an existing provider instead of a storage failure.
func (i impl) Create(rec dbmodels.Provider) (id uint, err error) {
	err = i.db.Transaction(func(tx *gorm.DB) error {
		var rowCount int64
		err := tx.
			Model(dbmodels.Provider{}).
			Where("LOWER(name) = ?", strings.ToLower(rec.Name)).
			Count(&rowCount).
			Error
		if err != nil {
			return errors.Wrap(err, "failed to check provider name uniqueness")
		}
		if rowCount != 0 {
			return serviceerrors.NewAlreadyExists("provider", rec.Name)
		}
		return tx.Create(&rec).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return 0, serviceerrors.NewAlreadyExists("provider", rec.Name)
		}
		var serviceErr *serviceerrors.Error
		if errors.As(err, &serviceErr) {
			return 0, err
		}
		return 0, errors.Wrap(err, "failed to create provider")
	}
	return rec.ID, nil
}

func (i impl) GetByID(id uint) (*dbmodels.Provider, error) {
	rec := dbmodels.Provider{}
	err := i.db.
		Where("id = ?", id).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to read provider")
	}
	return &rec, nil
}

func (i impl) GetByName(name string) (*dbmodels.Provider, error) {
	rec := dbmodels.Provider{}
	err := i.db.
		Where("LOWER(name) = ?", strings.ToLower(name)).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to read provider by name")
	}
	return &rec, nil
}

func (i impl) Update(id uint, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.Provider{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		if isUniqueViolation(err) {
			name, _ := updMap["name"].(string)
			return serviceerrors.NewAlreadyExists("provider", name)
		}
		return errors.Wrap(err, "failed to update provider")
	}
	return nil
}

func (i impl) Delete(id uint) error {
	err := i.db.
		Where("id = ?", id).
		Delete(&dbmodels.Provider{}).
		Error
	if err != nil {
		return errors.Wrap(err, "failed to delete provider")
	}
	return nil
}

func (i impl) List(filter providerapimodels.ProviderFilter) ([]dbmodels.Provider, error) {
	list := []dbmodels.Provider{}
	tx := i.db.Model(dbmodels.Provider{})
	addFilter(tx, filter)
	page, limit := filter.GetPage()
	offset := (page - 1) * limit
	err := tx.
		Order("name").
		Limit(limit).
		Offset(offset).
		Find(&list).
		Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list providers")
	}
	return list, nil
}

func (i impl) ListCount(filter providerapimodels.ProviderFilter) (int64, error) {
	var rowCount int64
	tx := i.db.Model(dbmodels.Provider{})
	addFilter(tx, filter)
	err := tx.Count(&rowCount).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count providers")
	}
	return rowCount, nil
}

func addFilter(tx *gorm.DB, filter providerapimodels.ProviderFilter) {
	if filter.Search != "" {
		tx.Where("LOWER(name) like ?", "%"+strings.ToLower(filter.Search)+"%")
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolationCode
	}
	return false
}
