package terytdictprovider

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"building-registry-backend/db"
	buildingstore "building-registry-backend/lib/building/store"
	terytdictstore "building-registry-backend/lib/dicts/teryt/store"
	"building-registry-backend/lib/serviceerrors"
	terytvalidator "building-registry-backend/lib/teryt-validator"
	initchecker "building-registry-backend/lib/utils/init-checker"
	"building-registry-backend/models"
	dictapimodels "building-registry-backend/models/api/dict"
	dbmodels "building-registry-backend/models/db"
)

type Provider interface {
	Create(level models.DictLevel, request dictapimodels.TerytEntryData) error
	Update(level models.DictLevel, code string, request dictapimodels.TerytEntryUpdateData) error
	Delete(level models.DictLevel, code string) error
	Get(level models.DictLevel, code string) (item dictapimodels.TerytEntryView, err error)
	List(level models.DictLevel, filter dictapimodels.TerytEntryFilter) (list []dictapimodels.TerytEntryView, rowCount int64, err error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(
		terytdictstore.NewInstance(db.DB),
		terytvalidator.Instance,
		buildingstore.NewInstance(db.DB),
	)
}

func NewInstance(store terytdictstore.Provider, validator terytvalidator.Provider,
	buildingStore buildingstore.Provider) Provider {
	instance := impl{
		store:         store,
		validator:     validator,
		buildingStore: buildingStore,
	}
	initchecker.CheckInit(
		"store", instance.store,
		"validator", instance.validator,
		"buildingStore", instance.buildingStore,
	)
	return instance
}

type impl struct {
	store         terytdictstore.Provider
	validator     terytvalidator.Provider
	buildingStore buildingstore.Provider
}

func (i impl) Create(level models.DictLevel, request dictapimodels.TerytEntryData) error {
	logger := log.WithField("dict_level", level).
		WithField("code", request.Code)
	if _, hasParent := level.ParentLevel(); hasParent {
		_, err := i.validator.ValidateParent(level, request.ParentCode)
		if err != nil {
			return err
		}
	}
	existing, err := i.store.GetByCode(level, request.Code)
	if err != nil {
		return i.storageError(err, "dictionary create", logger)
	}
	if existing != nil {
		return serviceerrors.NewAlreadyExists(level.ToHuman(), request.Code)
	}
	rec := dbmodels.TerytEntry{
		Code:       request.Code,
		Name:       request.Name,
		ParentCode: request.ParentCode,
	}
	err = i.store.Create(level, rec)
	if err != nil {
		return i.storageError(err, "dictionary create", logger)
	}
	logger.WithField("name", rec.Name).Info("dictionary entry created")
	return nil
}

func (i impl) Update(level models.DictLevel, code string, request dictapimodels.TerytEntryUpdateData) error {
	logger := log.WithField("dict_level", level).
		WithField("code", code)
	existing, err := i.store.GetByCode(level, code)
	if err != nil {
		return i.storageError(err, "dictionary update", logger)
	}
	if existing == nil {
		return serviceerrors.NewNotFound(level.ToHuman(), code)
	}
	updMap := map[string]interface{}{}
	if request.Name != nil && *request.Name != existing.Name {
		updMap["name"] = *request.Name
	}
	if request.ParentCode != nil && *request.ParentCode != existing.ParentCode {
		_, err = i.validator.ValidateParent(level, *request.ParentCode)
		if err != nil {
			return err
		}
		updMap["parent_code"] = *request.ParentCode
	}
	err = i.store.Update(level, code, updMap)
	if err != nil {
		return i.storageError(err, "dictionary update", logger)
	}
	logger.Info("dictionary entry updated")
	return nil
}

func (i impl) Delete(level models.DictLevel, code string) error {
	logger := log.WithField("dict_level", level).
		WithField("code", code)
	existing, err := i.store.GetByCode(level, code)
	if err != nil {
		return i.storageError(err, "dictionary delete", logger)
	}
	if existing == nil {
		return serviceerrors.NewNotFound(level.ToHuman(), code)
	}
	if childLevel, hasChild := level.ChildLevel(); hasChild {
		childCount, err := i.store.CountByParent(childLevel, code)
		if err != nil {
			return i.storageError(err, "dictionary delete", logger)
		}
		if childCount > 0 {
			return serviceerrors.NewReferenced(level.ToHuman()+" "+code, childLevel.ToHuman()+" entries")
		}
	}
	buildingCount, err := i.buildingStore.CountByDictCode(level, code)
	if err != nil {
		return i.storageError(err, "dictionary delete", logger)
	}
	if buildingCount > 0 {
		return serviceerrors.NewReferenced(level.ToHuman()+" "+code, "buildings")
	}
	err = i.store.Delete(level, code)
	if err != nil {
		return i.storageError(err, "dictionary delete", logger)
	}
	logger.Info("dictionary entry deleted")
	return nil
}

func (i impl) Get(level models.DictLevel, code string) (dictapimodels.TerytEntryView, error) {
	rec, err := i.store.GetByCode(level, code)
	if err != nil {
		return dictapimodels.TerytEntryView{}, i.storageError(err, "dictionary read",
			log.WithField("dict_level", level).WithField("code", code))
	}
	if rec == nil {
		return dictapimodels.TerytEntryView{}, serviceerrors.NewNotFound(level.ToHuman(), code)
	}
	return dictapimodels.TerytEntryConvert(*rec), nil
}

func (i impl) List(level models.DictLevel, filter dictapimodels.TerytEntryFilter) ([]dictapimodels.TerytEntryView, int64, error) {
	logger := log.WithField("dict_level", level)
	rowCount, err := i.store.ListCount(level, filter)
	if err != nil {
		return nil, 0, i.storageError(err, "dictionary list", logger)
	}
	if filter.IsOutOfRange(rowCount) {
		return nil, 0, serviceerrors.NewPageOutOfRange()
	}
	recList, err := i.store.List(level, filter)
	if err != nil {
		return nil, 0, i.storageError(err, "dictionary list", logger)
	}
	result := make([]dictapimodels.TerytEntryView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, dictapimodels.TerytEntryConvert(rec))
	}
	return result, rowCount, nil
}

func (i impl) storageError(err error, operation string, logger *log.Entry) error {
	var serviceErr *serviceerrors.Error
	if errors.As(err, &serviceErr) {
		return err
	}
	logger.WithError(err).WithField("operation", operation).Error("storage failure")
	return serviceerrors.NewStorage(err, operation)
}
