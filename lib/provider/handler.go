package providerhandler

import (
	"strconv"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"building-registry-backend/db"
	buildingstore "building-registry-backend/lib/building/store"
	providerstore "building-registry-backend/lib/provider/store"
	"building-registry-backend/lib/serviceerrors"
	initchecker "building-registry-backend/lib/utils/init-checker"
	providerapimodels "building-registry-backend/models/api/provider"
	dbmodels "building-registry-backend/models/db"
)

type Provider interface {
	Create(request providerapimodels.ProviderData) (id uint, err error)
	Update(id uint, request providerapimodels.ProviderData) error
	Delete(id uint) error
	Get(id uint) (item providerapimodels.ProviderView, err error)
	List(filter providerapimodels.ProviderFilter) (list []providerapimodels.ProviderView, rowCount int64, err error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(
		providerstore.NewInstance(db.DB),
		buildingstore.NewInstance(db.DB),
	)
}

func NewInstance(store providerstore.Provider, buildingStore buildingstore.Provider) Provider {
	instance := impl{
		store:         store,
		buildingStore: buildingStore,
	}
	initchecker.CheckInit(
		"store", instance.store,
		"buildingStore", instance.buildingStore,
	)
	return instance
}

type impl struct {
	store         providerstore.Provider
	buildingStore buildingstore.Provider
}

func (i impl) Create(request providerapimodels.ProviderData) (uint, error) {
	logger := log.WithField("provider_name", request.Name)
	existing, err := i.store.GetByName(request.Name)
	if err != nil {
		return 0, i.storageError(err, "provider create", logger)
	}
	if existing != nil {
		return 0, serviceerrors.NewAlreadyExists("provider", request.Name)
	}
	rec := dbmodels.Provider{
		Name:       request.Name,
		Technology: request.Technology,
		Bandwidth:  request.Bandwidth,
	}
	id, err := i.store.Create(rec)
	if err != nil {
		return 0, i.storageError(err, "provider create", logger)
	}
	logger.WithField("rec_id", id).Info("provider created")
	return id, nil
}

func (i impl) Update(id uint, request providerapimodels.ProviderData) error {
	logger := log.WithField("rec_id", id)
	existing, err := i.store.GetByID(id)
	if err != nil {
		return i.storageError(err, "provider update", logger)
	}
	if existing == nil {
		return serviceerrors.NewNotFound("provider", strconv.FormatUint(uint64(id), 10))
	}
	if request.Name != existing.Name {
		other, err := i.store.GetByName(request.Name)
		if err != nil {
			return i.storageError(err, "provider update", logger)
		}
		if other != nil && other.ID != id {
			return serviceerrors.NewAlreadyExists("provider", request.Name)
		}
	}
	updMap := map[string]interface{}{
		"name":       request.Name,
		"technology": request.Technology,
		"bandwidth":  request.Bandwidth,
	}
	err = i.store.Update(id, updMap)
	if err != nil {
		return i.storageError(err, "provider update", logger)
	}
	logger.Info("provider updated")
	return nil
}

// Delete pre-checks buildings explicitly instead of relying on the
// foreign-key constraint, so the caller learns what still references it.
func (i impl) Delete(id uint) error {
	logger := log.WithField("rec_id", id)
	existing, err := i.store.GetByID(id)
	if err != nil {
		return i.storageError(err, "provider delete", logger)
	}
	if existing == nil {
		return serviceerrors.NewNotFound("provider", strconv.FormatUint(uint64(id), 10))
	}
	usage, err := i.buildingStore.CountByProvider(id)
	if err != nil {
		return i.storageError(err, "provider delete", logger)
	}
	if usage > 0 {
		return serviceerrors.NewReferenced("provider "+existing.Name, "buildings")
	}
	err = i.store.Delete(id)
	if err != nil {
		return i.storageError(err, "provider delete", logger)
	}
	logger.Info("provider deleted")
	return nil
}

func (i impl) Get(id uint) (providerapimodels.ProviderView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return providerapimodels.ProviderView{}, i.storageError(err, "provider read", log.WithField("rec_id", id))
	}
	if rec == nil {
		return providerapimodels.ProviderView{}, serviceerrors.NewNotFound("provider", strconv.FormatUint(uint64(id), 10))
	}
	return providerapimodels.ProviderConvert(*rec), nil
}

func (i impl) List(filter providerapimodels.ProviderFilter) ([]providerapimodels.ProviderView, int64, error) {
	rowCount, err := i.store.ListCount(filter)
	if err != nil {
		return nil, 0, i.storageError(err, "provider list", log.NewEntry(log.StandardLogger()))
	}
	if filter.IsOutOfRange(rowCount) {
		return nil, 0, serviceerrors.NewPageOutOfRange()
	}
	recList, err := i.store.List(filter)
	if err != nil {
		return nil, 0, i.storageError(err, "provider list", log.NewEntry(log.StandardLogger()))
	}
	result := make([]providerapimodels.ProviderView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, providerapimodels.ProviderConvert(rec))
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
