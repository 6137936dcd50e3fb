package terytdictstore

import (
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"building-registry-backend/lib/serviceerrors"
	"building-registry-backend/models"
	dictapimodels "building-registry-backend/models/api/dict"
	dbmodels "building-registry-backend/models/db"
)

type Provider interface {
	GetByCode(level models.DictLevel, code string) (rec *dbmodels.TerytEntry, err error)
	Create(level models.DictLevel, rec dbmodels.TerytEntry) error
	Update(level models.DictLevel, code string, updMap map[string]interface{}) error
	Delete(level models.DictLevel, code string) error
	List(level models.DictLevel, filter dictapimodels.TerytEntryFilter) (list []dbmodels.TerytEntry, err error)
	ListCount(level models.DictLevel, filter dictapimodels.TerytEntryFilter) (count int64, err error)
	CountByParent(level models.DictLevel, parentCode string) (count int64, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) GetByCode(level models.DictLevel, code string) (*dbmodels.TerytEntry, error) {
	rec := dbmodels.TerytEntry{}
	err := i.db.
		Table(level.TableName()).
		Where("code = ?", code).
		Take(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "failed to read %s entry", level.ToHuman())
	}
	return &rec, nil
}

const uniqueViolationCode = "23505"

// Create re-checks the code inside the insert transaction and is backed
// by the primary key on code, so a concurrent create of the same entry
// surfaces as an existing entry instead of a storage failure.
func (i impl) Create(level models.DictLevel, rec dbmodels.TerytEntry) error {
	err := i.db.Transaction(func(tx *gorm.DB) error {
		var rowCount int64
		err := tx.
			Table(level.TableName()).
			Where("code = ?", rec.Code).
			Count(&rowCount).
			Error
		if err != nil {
			return errors.Wrapf(err, "failed to check %s code uniqueness", level.ToHuman())
		}
		if rowCount != 0 {
			return serviceerrors.NewAlreadyExists(level.ToHuman(), rec.Code)
		}
		return tx.
			Table(level.TableName()).
			Create(&rec).
			Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return serviceerrors.NewAlreadyExists(level.ToHuman(), rec.Code)
		}
		var serviceErr *serviceerrors.Error
		if errors.As(err, &serviceErr) {
			return err
		}
		return errors.Wrapf(err, "failed to create %s entry", level.ToHuman())
	}
	return nil
}

func (i impl) Update(level models.DictLevel, code string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Table(level.TableName()).
		Where("code = ?", code).
		Updates(updMap).
		Error
	if err != nil {
		return errors.Wrapf(err, "failed to update %s entry", level.ToHuman())
	}
	return nil
}

func (i impl) Delete(level models.DictLevel, code string) error {
	err := i.db.
		Table(level.TableName()).
		Where("code = ?", code).
		Delete(&dbmodels.TerytEntry{}).
		Error
	if err != nil {
		return errors.Wrapf(err, "failed to delete %s entry", level.ToHuman())
	}
	return nil
}

func (i impl) List(level models.DictLevel, filter dictapimodels.TerytEntryFilter) ([]dbmodels.TerytEntry, error) {
	list := []dbmodels.TerytEntry{}
	tx := i.db.Table(level.TableName())
	addFilter(tx, filter)
	page, limit := filter.GetPage()
	setPage(tx, page, limit)
	err := tx.
		Order("name").
		Find(&list).
		Error
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list %s entries", level.ToHuman())
	}
	return list, nil
}

func (i impl) ListCount(level models.DictLevel, filter dictapimodels.TerytEntryFilter) (int64, error) {
	var rowCount int64
	tx := i.db.Table(level.TableName())
	addFilter(tx, filter)
	err := tx.Count(&rowCount).Error
	if err != nil {
		return 0, errors.Wrapf(err, "failed to count %s entries", level.ToHuman())
	}
	return rowCount, nil
}

func (i impl) CountByParent(level models.DictLevel, parentCode string) (int64, error) {
	var rowCount int64
	err := i.db.
		Table(level.TableName()).
		Where("parent_code = ?", parentCode).
		Count(&rowCount).
		Error
	if err != nil {
		return 0, errors.Wrapf(err, "failed to count %s entries by parent", level.ToHuman())
	}
	return rowCount, nil
}

func addFilter(tx *gorm.DB, filter dictapimodels.TerytEntryFilter) {
	if filter.ParentCode != "" {
		tx.Where("parent_code = ?", filter.ParentCode)
	}
	if filter.Search != "" {
		tx.Where("LOWER(name) like ?", "%"+strings.ToLower(filter.Search)+"%")
	}
}

func setPage(tx *gorm.DB, page, limit int) {
	offset := (page - 1) * limit
	tx.Limit(limit).Offset(offset)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolationCode
	}
	return false
}
