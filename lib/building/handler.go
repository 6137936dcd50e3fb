package buildinghandler

import (
	"bytes"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"building-registry-backend/db"
	buildingstore "building-registry-backend/lib/building/store"
	xlsexport "building-registry-backend/lib/export/xls"
	providerstore "building-registry-backend/lib/provider/store"
	"building-registry-backend/lib/serviceerrors"
	terytvalidator "building-registry-backend/lib/teryt-validator"
	initchecker "building-registry-backend/lib/utils/init-checker"
	"building-registry-backend/models"
	buildingapimodels "building-registry-backend/models/api/building"
	dbmodels "building-registry-backend/models/db"
)

type Provider interface {
	Create(request buildingapimodels.BuildingData, actorID string) (item buildingapimodels.BuildingView, err error)
	Update(id string, request buildingapimodels.BuildingUpdateData, actorID string) (item buildingapimodels.BuildingView, err error)
	Get(id string) (item buildingapimodels.BuildingView, err error)
	List(filter buildingapimodels.BuildingFilter) (list []buildingapimodels.BuildingView, rowCount int64, err error)
	ExportXls(filter buildingapimodels.BuildingFilter) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(
		buildingstore.NewInstance(db.DB),
		providerstore.NewInstance(db.DB),
		terytvalidator.Instance,
		xlsexport.Instance,
	)
}

func NewInstance(store buildingstore.Provider, providerStore providerstore.Provider,
	validator terytvalidator.Provider, export xlsexport.Provider) Provider {
	instance := impl{
		store:         store,
		providerStore: providerStore,
		validator:     validator,
		export:        export,
	}
	initchecker.CheckInit(
		"store", instance.store,
		"providerStore", instance.providerStore,
		"validator", instance.validator,
		"export", instance.export,
	)
	return instance
}

type impl struct {
	store         buildingstore.Provider
	providerStore providerstore.Provider
	validator     terytvalidator.Provider
	export        xlsexport.Provider
}

func (i impl) Create(request buildingapimodels.BuildingData, actorID string) (buildingapimodels.BuildingView, error) {
	logger := log.WithField("actor_id", actorID)
	names, err := i.validator.ValidateChain(terytvalidator.ChainCodes{
		RegionCode:          request.RegionCode,
		DistrictCode:        request.DistrictCode,
		CommunityCode:       request.CommunityCode,
		CityCode:            request.CityCode,
		CitySubdivisionCode: request.CitySubdivisionCode,
		StreetCode:          request.StreetCode,
	})
	if err != nil {
		return buildingapimodels.BuildingView{}, err
	}
	provider, err := i.providerStore.GetByID(request.ProviderID)
	if err != nil {
		return buildingapimodels.BuildingView{}, i.storageError(err, "building create", logger)
	}
	if provider == nil {
		return buildingapimodels.BuildingView{}, serviceerrors.NewUnknownProviderReference(request.ProviderID)
	}
	rec := dbmodels.Building{
		RegionCode:          request.RegionCode,
		RegionName:          names.RegionName,
		DistrictCode:        request.DistrictCode,
		DistrictName:        names.DistrictName,
		CommunityCode:       request.CommunityCode,
		CommunityName:       names.CommunityName,
		CityCode:            request.CityCode,
		CityName:            names.CityName,
		CitySubdivisionCode: optional(request.CitySubdivisionCode),
		CitySubdivisionName: optional(names.CitySubdivisionName),
		StreetCode:          optional(request.StreetCode),
		StreetName:          optional(names.StreetName),
		BuildingNumber:      request.BuildingNumber,
		PostCode:            request.PostCode,
		Longitude:           request.Longitude,
		Latitude:            request.Latitude,
		ProviderID:          request.ProviderID,
		Status:              models.BuildingStatusActive,
		CreatedBy:           actorID,
		UpdatedBy:           actorID,
	}
	id, err := i.store.Create(rec)
	if err != nil {
		return buildingapimodels.BuildingView{}, i.storageError(err, "building create", logger)
	}
	created, err := i.store.GetByID(id)
	if err != nil || created == nil {
		return buildingapimodels.BuildingView{}, i.storageError(err, "building create", logger)
	}
	logger.
		WithField("rec_id", id).
		WithField("building_number", rec.BuildingNumber).
		Info("building created")
	return buildingapimodels.BuildingConvert(*created, provider.Name), nil
}

func (i impl) Update(id string, request buildingapimodels.BuildingUpdateData, actorID string) (buildingapimodels.BuildingView, error) {
	logger := log.WithField("actor_id", actorID).
		WithField("rec_id", id)
	rec, err := i.store.GetByID(id)
	if err != nil {
		return buildingapimodels.BuildingView{}, i.storageError(err, "building update", logger)
	}
	if rec == nil {
		return buildingapimodels.BuildingView{}, serviceerrors.NewNotFound("building", id)
	}

	merged := *rec
	updMap := map[string]interface{}{}
	if err = i.mergeRequiredCode(models.DictLevelRegion, request.RegionCode, &merged.RegionCode, &merged.RegionName,
		"region_code", "region_name", updMap); err != nil {
		return buildingapimodels.BuildingView{}, err
	}
	if err = i.mergeRequiredCode(models.DictLevelDistrict, request.DistrictCode, &merged.DistrictCode, &merged.DistrictName,
		"district_code", "district_name", updMap); err != nil {
		return buildingapimodels.BuildingView{}, err
	}
	if err = i.mergeRequiredCode(models.DictLevelCommunity, request.CommunityCode, &merged.CommunityCode, &merged.CommunityName,
		"community_code", "community_name", updMap); err != nil {
		return buildingapimodels.BuildingView{}, err
	}
	if err = i.mergeRequiredCode(models.DictLevelCity, request.CityCode, &merged.CityCode, &merged.CityName,
		"city_code", "city_name", updMap); err != nil {
		return buildingapimodels.BuildingView{}, err
	}
	if err = i.mergeOptionalCode(models.DictLevelCitySubdivision, request.CitySubdivisionCode,
		&merged.CitySubdivisionCode, &merged.CitySubdivisionName,
		"city_subdivision_code", "city_subdivision_name", updMap); err != nil {
		return buildingapimodels.BuildingView{}, err
	}
	if err = i.mergeOptionalCode(models.DictLevelStreet, request.StreetCode,
		&merged.StreetCode, &merged.StreetName,
		"street_code", "street_name", updMap); err != nil {
		return buildingapimodels.BuildingView{}, err
	}

	if request.ProviderID != nil && *request.ProviderID != merged.ProviderID {
		provider, err := i.providerStore.GetByID(*request.ProviderID)
		if err != nil {
			return buildingapimodels.BuildingView{}, i.storageError(err, "building update", logger)
		}
		if provider == nil {
			return buildingapimodels.BuildingView{}, serviceerrors.NewUnknownProviderReference(*request.ProviderID)
		}
		merged.ProviderID = *request.ProviderID
		updMap["provider_id"] = *request.ProviderID
	}
	if request.BuildingNumber != nil {
		merged.BuildingNumber = *request.BuildingNumber
		updMap["building_number"] = *request.BuildingNumber
	}
	if request.PostCode != nil {
		merged.PostCode = *request.PostCode
		updMap["post_code"] = *request.PostCode
	}
	if request.Longitude != nil {
		merged.Longitude = *request.Longitude
		updMap["longitude"] = *request.Longitude
	}
	if request.Latitude != nil {
		merged.Latitude = *request.Latitude
		updMap["latitude"] = *request.Latitude
	}
	if request.Status != nil {
		merged.Status = models.BuildingStatus(*request.Status)
		updMap["status"] = *request.Status
	}

	if request.HasAddressKeyField() {
		found, err := i.store.FindDuplicate(merged.AddressKey(), id)
		if err != nil {
			return buildingapimodels.BuildingView{}, i.storageError(err, "building update", logger)
		}
		if found {
			return buildingapimodels.BuildingView{}, serviceerrors.NewDuplicateBuilding()
		}
	}

	updMap["updated_by"] = actorID
	err = i.store.Update(id, updMap)
	if err != nil {
		return buildingapimodels.BuildingView{}, i.storageError(err, "building update", logger)
	}
	logger.Info("building updated")
	return i.Get(id)
}

func (i impl) Get(id string) (buildingapimodels.BuildingView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return buildingapimodels.BuildingView{}, i.storageError(err, "building read", log.WithField("rec_id", id))
	}
	if rec == nil {
		return buildingapimodels.BuildingView{}, serviceerrors.NewNotFound("building", id)
	}
	providerName := ""
	provider, err := i.providerStore.GetByID(rec.ProviderID)
	if err != nil {
		return buildingapimodels.BuildingView{}, i.storageError(err, "building read", log.WithField("rec_id", id))
	}
	if provider != nil {
		providerName = provider.Name
	}
	return buildingapimodels.BuildingConvert(*rec, providerName), nil
}

func (i impl) List(filter buildingapimodels.BuildingFilter) ([]buildingapimodels.BuildingView, int64, error) {
	err := i.validateFilter(filter)
	if err != nil {
		return nil, 0, err
	}
	rowCount, err := i.store.ListCount(filter)
	if err != nil {
		return nil, 0, i.storageError(err, "building list", log.NewEntry(log.StandardLogger()))
	}
	if filter.IsOutOfRange(rowCount) {
		return nil, 0, serviceerrors.NewPageOutOfRange()
	}
	recList, err := i.store.List(filter)
	if err != nil {
		return nil, 0, i.storageError(err, "building list", log.NewEntry(log.StandardLogger()))
	}
	result := make([]buildingapimodels.BuildingView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, buildingapimodels.BuildingExtConvert(rec))
	}
	return result, rowCount, nil
}

func (i impl) ExportXls(filter buildingapimodels.BuildingFilter) (*bytes.Buffer, error) {
	err := i.validateFilter(filter)
	if err != nil {
		return nil, err
	}
	recList, err := i.store.ListAll(filter)
	if err != nil {
		return nil, i.storageError(err, "building export", log.NewEntry(log.StandardLogger()))
	}
	return i.export.ExportBuildingList(recList)
}

// validateFilter applies the write-path validation discipline to read
// filters: an unknown code or provider fails instead of matching nothing.
func (i impl) validateFilter(filter buildingapimodels.BuildingFilter) error {
	if err := filter.Validate(); err != nil {
		return err
	}
	codeFilters := []struct {
		level models.DictLevel
		code  string
	}{
		{models.DictLevelRegion, filter.RegionCode},
		{models.DictLevelDistrict, filter.DistrictCode},
		{models.DictLevelCommunity, filter.CommunityCode},
		{models.DictLevelCity, filter.CityCode},
		{models.DictLevelCitySubdivision, filter.CitySubdivisionCode},
		{models.DictLevelStreet, filter.StreetCode},
	}
	for _, codeFilter := range codeFilters {
		if codeFilter.code == "" {
			continue
		}
		if _, err := i.validator.ValidateCode(codeFilter.level, codeFilter.code); err != nil {
			return err
		}
	}
	if filter.ProviderID != 0 {
		provider, err := i.providerStore.GetByID(filter.ProviderID)
		if err != nil {
			return i.storageError(err, "building list", log.NewEntry(log.StandardLogger()))
		}
		if provider == nil {
			return serviceerrors.NewUnknownProviderReference(filter.ProviderID)
		}
	}
	return nil
}

func (i impl) mergeRequiredCode(level models.DictLevel, requested *string, code, name *string,
	codeColumn, nameColumn string, updMap map[string]interface{}) error {
	if requested == nil || *requested == *code {
		return nil
	}
	resolvedName, err := i.validator.ValidateCode(level, *requested)
	if err != nil {
		return err
	}
	*code = *requested
	*name = resolvedName
	updMap[codeColumn] = *requested
	updMap[nameColumn] = resolvedName
	return nil
}

func (i impl) mergeOptionalCode(level models.DictLevel, requested *string, code, name **string,
	codeColumn, nameColumn string, updMap map[string]interface{}) error {
	if requested == nil {
		return nil
	}
	if *requested == "" {
		if *code == nil {
			return nil
		}
		*code = nil
		*name = nil
		updMap[codeColumn] = nil
		updMap[nameColumn] = nil
		return nil
	}
	if *code != nil && **code == *requested {
		return nil
	}
	resolvedName, err := i.validator.ValidateCode(level, *requested)
	if err != nil {
		return err
	}
	*code = requested
	*name = &resolvedName
	updMap[codeColumn] = *requested
	updMap[nameColumn] = resolvedName
	return nil
}

func (i impl) storageError(err error, operation string, logger *log.Entry) error {
	var serviceErr *serviceerrors.Error
	if errors.As(err, &serviceErr) {
		return err
	}
	logger.WithError(err).WithField("operation", operation).Error("storage failure")
	return serviceerrors.NewStorage(err, operation)
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
