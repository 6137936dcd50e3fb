package buildingstore

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"building-registry-backend/lib/serviceerrors"
	"building-registry-backend/models"
	buildingapimodels "building-registry-backend/models/api/building"
	dbmodels "building-registry-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Building) (id string, err error)
	GetByID(id string) (rec *dbmodels.Building, err error)
	Update(id string, updMap map[string]interface{}) error
	FindDuplicate(key dbmodels.BuildingAddressKey, excludeID string) (found bool, err error)
	List(filter buildingapimodels.BuildingFilter) (list []dbmodels.BuildingExt, err error)
	ListAll(filter buildingapimodels.BuildingFilter) (list []dbmodels.BuildingExt, err error)
	ListCount(filter buildingapimodels.BuildingFilter) (count int64, err error)
	CountByProvider(providerID uint) (count int64, err error)
	CountByDictCode(level models.DictLevel, code string) (count int64, err error)
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

// Create re-runs the duplicate check inside the insert transaction and is
// additionally backed by the partial unique index on the address tuple,
// so a concurrent create of the same address surfaces as a duplicate
// instead of a second active row.
func (i impl) Create(rec dbmodels.Building) (id string, err error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	err = i.db.Transaction(func(tx *gorm.DB) error {
		found, err := findDuplicate(tx, rec.AddressKey(), "")
		if err != nil {
			return err
		}
		if found {
			return serviceerrors.NewDuplicateBuilding()
		}
		return tx.Create(&rec).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return "", serviceerrors.NewDuplicateBuilding()
		}
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Building, error) {
	rec := dbmodels.Building{}
	err := i.db.
		Where("id = ?", id).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to read building")
	}
	return &rec, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.Building{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		if isUniqueViolation(err) {
			return serviceerrors.NewDuplicateBuilding()
		}
		return errors.Wrap(err, "failed to update building")
	}
	return nil
}

func (i impl) FindDuplicate(key dbmodels.BuildingAddressKey, excludeID string) (bool, error) {
	return findDuplicate(i.db, key, excludeID)
}

func (i impl) List(filter buildingapimodels.BuildingFilter) ([]dbmodels.BuildingExt, error) {
	list := []dbmodels.BuildingExt{}
	tx := listQuery(i.db, filter)
	page, limit := filter.GetPage()
	setPage(tx, page, limit)
	err := tx.Find(&list).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list buildings")
	}
	return list, nil
}

// ListAll skips pagination; used by the xlsx export.
func (i impl) ListAll(filter buildingapimodels.BuildingFilter) ([]dbmodels.BuildingExt, error) {
	list := []dbmodels.BuildingExt{}
	err := listQuery(i.db, filter).Find(&list).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list buildings")
	}
	return list, nil
}

func (i impl) ListCount(filter buildingapimodels.BuildingFilter) (int64, error) {
	var rowCount int64
	tx := i.db.Model(dbmodels.Building{})
	addFilter(tx, filter)
	err := tx.Count(&rowCount).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count buildings")
	}
	return rowCount, nil
}

func (i impl) CountByProvider(providerID uint) (int64, error) {
	var rowCount int64
	err := i.db.
		Model(dbmodels.Building{}).
		Where("provider_id = ?", providerID).
		Count(&rowCount).
		Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count buildings by provider")
	}
	return rowCount, nil
}

var dictCodeColumnMap = map[models.DictLevel]string{
	models.DictLevelRegion:          "region_code",
	models.DictLevelDistrict:        "district_code",
	models.DictLevelCommunity:       "community_code",
	models.DictLevelCity:            "city_code",
	models.DictLevelCitySubdivision: "city_subdivision_code",
	models.DictLevelStreet:          "street_code",
}

func (i impl) CountByDictCode(level models.DictLevel, code string) (int64, error) {
	column, exist := dictCodeColumnMap[level]
	if !exist {
		return 0, errors.Errorf("no building column for dictionary level %v", level)
	}
	var rowCount int64
	err := i.db.
		Model(dbmodels.Building{}).
		Where(column+" = ?", code).
		Count(&rowCount).
		Error
	if err != nil {
		return 0, errors.Wrapf(err, "failed to count buildings by %s", column)
	}
	return rowCount, nil
}

func findDuplicate(tx *gorm.DB, key dbmodels.BuildingAddressKey, excludeID string) (bool, error) {
	var rowCount int64
	query := tx.
		Model(dbmodels.Building{}).
		Where("status = ?", models.BuildingStatusActive).
		Where("region_code = ?", key.RegionCode).
		Where("district_code = ?", key.DistrictCode).
		Where("community_code = ?", key.CommunityCode).
		Where("city_code = ?", key.CityCode).
		Where("building_number = ?", key.BuildingNumber)
	addOptionalCode(query, "city_subdivision_code", key.CitySubdivisionCode)
	addOptionalCode(query, "street_code", key.StreetCode)
	if excludeID != "" {
		query.Where("id <> ?", excludeID)
	}
	err := query.Count(&rowCount).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to check building uniqueness")
	}
	return rowCount != 0, nil
}

// addOptionalCode applies null-aware equality: an absent code matches IS NULL.
func addOptionalCode(tx *gorm.DB, column string, code *string) {
	if code == nil {
		tx.Where(column + " IS NULL")
	} else {
		tx.Where(column+" = ?", *code)
	}
}

func listQuery(db *gorm.DB, filter buildingapimodels.BuildingFilter) *gorm.DB {
	tx := db.
		Model(dbmodels.Building{}).
		Select("buildings.*, p.name as provider_name").
		Joins("left join providers as p on p.id = buildings.provider_id").
		Order("buildings.created_at desc")
	addFilter(tx, filter)
	return tx
}

func addFilter(tx *gorm.DB, filter buildingapimodels.BuildingFilter) {
	if filter.RegionCode != "" {
		tx.Where("region_code = ?", filter.RegionCode)
	}
	if filter.DistrictCode != "" {
		tx.Where("district_code = ?", filter.DistrictCode)
	}
	if filter.CommunityCode != "" {
		tx.Where("community_code = ?", filter.CommunityCode)
	}
	if filter.CityCode != "" {
		tx.Where("city_code = ?", filter.CityCode)
	}
	if filter.CitySubdivisionCode != "" {
		tx.Where("city_subdivision_code = ?", filter.CitySubdivisionCode)
	}
	if filter.StreetCode != "" {
		tx.Where("street_code = ?", filter.StreetCode)
	}
	if filter.ProviderID != 0 {
		tx.Where("provider_id = ?", filter.ProviderID)
	}
	if filter.Status != "" {
		tx.Where("status = ?", filter.Status)
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
