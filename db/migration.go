package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	dbmodels "building-registry-backend/models/db"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("running migrations")
	if err := DB.AutoMigrate(&dbmodels.Region{}); err != nil {
		return errors.Wrap(err, "failed to migrate Region")
	}
	if err := DB.AutoMigrate(&dbmodels.District{}); err != nil {
		return errors.Wrap(err, "failed to migrate District")
	}
	if err := DB.AutoMigrate(&dbmodels.Community{}); err != nil {
		return errors.Wrap(err, "failed to migrate Community")
	}
	if err := DB.AutoMigrate(&dbmodels.City{}); err != nil {
		return errors.Wrap(err, "failed to migrate City")
	}
	if err := DB.AutoMigrate(&dbmodels.CitySubdivision{}); err != nil {
		return errors.Wrap(err, "failed to migrate CitySubdivision")
	}
	if err := DB.AutoMigrate(&dbmodels.Street{}); err != nil {
		return errors.Wrap(err, "failed to migrate Street")
	}
	if err := DB.AutoMigrate(&dbmodels.Provider{}); err != nil {
		return errors.Wrap(err, "failed to migrate Provider")
	}
	if err := DB.AutoMigrate(&dbmodels.Building{}); err != nil {
		return errors.Wrap(err, "failed to migrate Building")
	}
	// The null-aware address uniqueness among active buildings is enforced
	// by the database, not only by the pre-check. COALESCE folds absent
	// optional codes into a comparable value.
	err := DB.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS uidx_buildings_active_address
		ON buildings (region_code, district_code, community_code, city_code,
			COALESCE(city_subdivision_code, ''), COALESCE(street_code, ''), building_number)
		WHERE status = 'active';`).Error
	if err != nil {
		return errors.Wrap(err, "failed to create active address unique index")
	}
	log.Info("migrations finished")
	return nil
}
