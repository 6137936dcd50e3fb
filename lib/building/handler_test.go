package buildinghandler

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"building-registry-backend/lib/serviceerrors"
	terytvalidator "building-registry-backend/lib/teryt-validator"
	"building-registry-backend/models"
	apimodels "building-registry-backend/models/api"
	buildingapimodels "building-registry-backend/models/api/building"
	providerapimodels "building-registry-backend/models/api/provider"
	dbmodels "building-registry-backend/models/db"
)

type fakeBuildingStore struct {
	recs map[string]dbmodels.Building
	seq  int
}

func newFakeBuildingStore() *fakeBuildingStore {
	return &fakeBuildingStore{recs: map[string]dbmodels.Building{}}
}

func (f *fakeBuildingStore) Create(rec dbmodels.Building) (string, error) {
	if rec.ID == "" {
		f.seq++
		rec.ID = fmt.Sprintf("rec-%d", f.seq)
	}
	found, err := f.FindDuplicate(rec.AddressKey(), "")
	if err != nil {
		return "", err
	}
	if found {
		return "", serviceerrors.NewDuplicateBuilding()
	}
	f.recs[rec.ID] = rec
	return rec.ID, nil
}

func (f *fakeBuildingStore) GetByID(id string) (*dbmodels.Building, error) {
	rec, exist := f.recs[id]
	if !exist {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeBuildingStore) Update(id string, updMap map[string]interface{}) error {
	rec, exist := f.recs[id]
	if !exist {
		return nil
	}
	for column, value := range updMap {
		applyColumn(&rec, column, value)
	}
	f.recs[id] = rec
	return nil
}

func applyColumn(rec *dbmodels.Building, column string, value interface{}) {
	optional := func(value interface{}) *string {
		if value == nil {
			return nil
		}
		str := value.(string)
		return &str
	}
	switch column {
	case "region_code":
		rec.RegionCode = value.(string)
	case "region_name":
		rec.RegionName = value.(string)
	case "district_code":
		rec.DistrictCode = value.(string)
	case "district_name":
		rec.DistrictName = value.(string)
	case "community_code":
		rec.CommunityCode = value.(string)
	case "community_name":
		rec.CommunityName = value.(string)
	case "city_code":
		rec.CityCode = value.(string)
	case "city_name":
		rec.CityName = value.(string)
	case "city_subdivision_code":
		rec.CitySubdivisionCode = optional(value)
	case "city_subdivision_name":
		rec.CitySubdivisionName = optional(value)
	case "street_code":
		rec.StreetCode = optional(value)
	case "street_name":
		rec.StreetName = optional(value)
	case "building_number":
		rec.BuildingNumber = value.(string)
	case "post_code":
		rec.PostCode = value.(string)
	case "longitude":
		rec.Longitude = value.(float64)
	case "latitude":
		rec.Latitude = value.(float64)
	case "provider_id":
		rec.ProviderID = value.(uint)
	case "status":
		rec.Status = models.BuildingStatus(value.(string))
	case "updated_by":
		rec.UpdatedBy = value.(string)
	}
}

func (f *fakeBuildingStore) FindDuplicate(key dbmodels.BuildingAddressKey, excludeID string) (bool, error) {
	for id, rec := range f.recs {
		if id == excludeID || rec.Status != models.BuildingStatusActive {
			continue
		}
		if key.Matches(rec.AddressKey()) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBuildingStore) matching(filter buildingapimodels.BuildingFilter) []dbmodels.BuildingExt {
	list := []dbmodels.BuildingExt{}
	for _, rec := range f.recs {
		if filter.RegionCode != "" && rec.RegionCode != filter.RegionCode {
			continue
		}
		if filter.ProviderID != 0 && rec.ProviderID != filter.ProviderID {
			continue
		}
		if filter.Status != "" && rec.Status != models.BuildingStatus(filter.Status) {
			continue
		}
		list = append(list, dbmodels.BuildingExt{Building: rec})
	}
	return list
}

func (f *fakeBuildingStore) List(filter buildingapimodels.BuildingFilter) ([]dbmodels.BuildingExt, error) {
	return f.matching(filter), nil
}

func (f *fakeBuildingStore) ListAll(filter buildingapimodels.BuildingFilter) ([]dbmodels.BuildingExt, error) {
	return f.matching(filter), nil
}

func (f *fakeBuildingStore) ListCount(filter buildingapimodels.BuildingFilter) (int64, error) {
	return int64(len(f.matching(filter))), nil
}

func (f *fakeBuildingStore) CountByProvider(providerID uint) (int64, error) {
	var count int64
	for _, rec := range f.recs {
		if rec.ProviderID == providerID {
			count++
		}
	}
	return count, nil
}

func (f *fakeBuildingStore) CountByDictCode(level models.DictLevel, code string) (int64, error) {
	return 0, nil
}

type fakeProviderStore struct {
	recs map[uint]dbmodels.Provider
}

func newFakeProviderStore() *fakeProviderStore {
	return &fakeProviderStore{recs: map[uint]dbmodels.Provider{
		1: {ID: 1, Name: "Orange Polska", Technology: "FTTH", Bandwidth: 1000},
	}}
}

func (f *fakeProviderStore) Create(rec dbmodels.Provider) (uint, error) { return 0, nil }

func (f *fakeProviderStore) GetByID(id uint) (*dbmodels.Provider, error) {
	rec, exist := f.recs[id]
	if !exist {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeProviderStore) GetByName(name string) (*dbmodels.Provider, error) { return nil, nil }
func (f *fakeProviderStore) Update(id uint, updMap map[string]interface{}) error {
	return nil
}
func (f *fakeProviderStore) Delete(id uint) error { return nil }
func (f *fakeProviderStore) List(filter providerapimodels.ProviderFilter) ([]dbmodels.Provider, error) {
	return nil, nil
}
func (f *fakeProviderStore) ListCount(filter providerapimodels.ProviderFilter) (int64, error) {
	return 0, nil
}

type fakeValidator struct {
	names map[models.DictLevel]map[string]string
}

func newFakeValidator() *fakeValidator {
	return &fakeValidator{names: map[models.DictLevel]map[string]string{
		models.DictLevelRegion:          {"14": "MAZOWIECKIE"},
		models.DictLevelDistrict:        {"1465": "Warszawa"},
		models.DictLevelCommunity:       {"1465011": "Warszawa"},
		models.DictLevelCity:            {"0918123": "Warszawa"},
		models.DictLevelCitySubdivision: {"0918784": "Mokotów"},
		models.DictLevelStreet:          {"12518": "ul. Marszałkowska", "15093": "ul. Nowy Świat"},
	}}
}

func (f *fakeValidator) ValidateChain(codes terytvalidator.ChainCodes) (terytvalidator.ChainNames, error) {
	names := terytvalidator.ChainNames{}
	lookups := []struct {
		level models.DictLevel
		code  string
		out   *string
	}{
		{models.DictLevelRegion, codes.RegionCode, &names.RegionName},
		{models.DictLevelDistrict, codes.DistrictCode, &names.DistrictName},
		{models.DictLevelCommunity, codes.CommunityCode, &names.CommunityName},
		{models.DictLevelCity, codes.CityCode, &names.CityName},
		{models.DictLevelCitySubdivision, codes.CitySubdivisionCode, &names.CitySubdivisionName},
		{models.DictLevelStreet, codes.StreetCode, &names.StreetName},
	}
	for _, lookup := range lookups {
		if lookup.code == "" {
			continue
		}
		name, err := f.ValidateCode(lookup.level, lookup.code)
		if err != nil {
			return terytvalidator.ChainNames{}, err
		}
		*lookup.out = name
	}
	return names, nil
}

func (f *fakeValidator) ValidateCode(level models.DictLevel, code string) (string, error) {
	name, exist := f.names[level][code]
	if !exist {
		return "", serviceerrors.NewUnknownReference(level, code)
	}
	return name, nil
}

func (f *fakeValidator) ValidateParent(level models.DictLevel, parentCode string) (string, error) {
	parentLevel, hasParent := level.ParentLevel()
	if !hasParent {
		return "", nil
	}
	return f.ValidateCode(parentLevel, parentCode)
}

type fakeExport struct{}

func (f fakeExport) ExportBuildingList(list []dbmodels.BuildingExt) (*bytes.Buffer, error) {
	return bytes.NewBufferString(fmt.Sprintf("rows:%d", len(list))), nil
}

type handlerFixture struct {
	handler   Provider
	store     *fakeBuildingStore
	providers *fakeProviderStore
	validator *fakeValidator
}

func newHandlerFixture() handlerFixture {
	store := newFakeBuildingStore()
	providers := newFakeProviderStore()
	validator := newFakeValidator()
	return handlerFixture{
		handler:   NewInstance(store, providers, validator, fakeExport{}),
		store:     store,
		providers: providers,
		validator: validator,
	}
}

func validCreateRequest() buildingapimodels.BuildingData {
	return buildingapimodels.BuildingData{
		RegionCode:     "14",
		DistrictCode:   "1465",
		CommunityCode:  "1465011",
		CityCode:       "0918123",
		BuildingNumber: "42A",
		PostCode:       "00-001",
		Longitude:      21.01,
		Latitude:       52.23,
		ProviderID:     1,
	}
}

func TestCreate(t *testing.T) {
	t.Run(`names snapshotted from dictionaries`, func(t *testing.T) {
		f := newHandlerFixture()
		item, err := f.handler.Create(validCreateRequest(), "user-1")
		require.Nil(t, err)
		require.Equal(t, "MAZOWIECKIE", item.RegionName)
		require.Equal(t, "Warszawa", item.CityName)
		require.Equal(t, "Orange Polska", item.ProviderName)
		require.Equal(t, "active", item.Status)
		require.Equal(t, "user-1", item.CreatedBy)
		require.Equal(t, "user-1", item.UpdatedBy)
	})

	t.Run(`snapshot survives a dictionary rename`, func(t *testing.T) {
		f := newHandlerFixture()
		item, err := f.handler.Create(validCreateRequest(), "user-1")
		require.Nil(t, err)

		f.validator.names[models.DictLevelRegion]["14"] = "WOJ. MAZOWIECKIE"
		got, err := f.handler.Get(item.ID)
		require.Nil(t, err)
		require.Equal(t, "MAZOWIECKIE", got.RegionName)
	})

	t.Run(`unknown region code rejected`, func(t *testing.T) {
		f := newHandlerFixture()
		request := validCreateRequest()
		request.RegionCode = "99"
		_, err := f.handler.Create(request, "user-1")
		require.NotNil(t, err)
		require.Equal(t, serviceerrors.KindUnknownReference, serviceerrors.KindOf(err))
		require.Contains(t, err.Error(), "99")
	})

	t.Run(`unknown provider rejected`, func(t *testing.T) {
		f := newHandlerFixture()
		request := validCreateRequest()
		request.ProviderID = 7
		_, err := f.handler.Create(request, "user-1")
		require.NotNil(t, err)
		require.Equal(t, serviceerrors.KindUnknownReference, serviceerrors.KindOf(err))
	})

	t.Run(`same address twice is a duplicate`, func(t *testing.T) {
		f := newHandlerFixture()
		_, err := f.handler.Create(validCreateRequest(), "user-1")
		require.Nil(t, err)

		_, err = f.handler.Create(validCreateRequest(), "user-2")
		require.NotNil(t, err)
		require.Equal(t, serviceerrors.KindDuplicate, serviceerrors.KindOf(err))
	})

	t.Run(`street distinguishes addresses`, func(t *testing.T) {
		f := newHandlerFixture()
		_, err := f.handler.Create(validCreateRequest(), "user-1")
		require.Nil(t, err)

		request := validCreateRequest()
		request.StreetCode = "12518"
		_, err = f.handler.Create(request, "user-1")
		require.Nil(t, err)

		request.StreetCode = "15093"
		_, err = f.handler.Create(request, "user-1")
		require.Nil(t, err)

		request.StreetCode = "12518"
		_, err = f.handler.Create(request, "user-1")
		require.NotNil(t, err)
		require.Equal(t, serviceerrors.KindDuplicate, serviceerrors.KindOf(err))
	})

	t.Run(`deleted building frees the address`, func(t *testing.T) {
		f := newHandlerFixture()
		item, err := f.handler.Create(validCreateRequest(), "user-1")
		require.Nil(t, err)

		deleted := string(models.BuildingStatusDeleted)
		_, err = f.handler.Update(item.ID, buildingapimodels.BuildingUpdateData{Status: &deleted}, "user-1")
		require.Nil(t, err)

		_, err = f.handler.Create(validCreateRequest(), "user-1")
		require.Nil(t, err)
	})
}

func TestUpdate(t *testing.T) {
	strPtr := func(value string) *string { return &value }

	t.Run(`building number change checked against other rows`, func(t *testing.T) {
		f := newHandlerFixture()
		first, err := f.handler.Create(validCreateRequest(), "user-1")
		require.Nil(t, err)

		request := validCreateRequest()
		request.BuildingNumber = "42B"
		_, err = f.handler.Create(request, "user-1")
		require.Nil(t, err)

		item, err := f.handler.Update(first.ID, buildingapimodels.BuildingUpdateData{
			BuildingNumber: strPtr("42C"),
		}, "user-2")
		require.Nil(t, err)
		require.Equal(t, "42C", item.BuildingNumber)

		_, err = f.handler.Update(first.ID, buildingapimodels.BuildingUpdateData{
			BuildingNumber: strPtr("42B"),
		}, "user-2")
		require.NotNil(t, err)
		require.Equal(t, serviceerrors.KindDuplicate, serviceerrors.KindOf(err))
	})

	t.Run(`partial patch keeps untouched fields`, func(t *testing.T) {
		f := newHandlerFixture()
		created, err := f.handler.Create(validCreateRequest(), "user-1")
		require.Nil(t, err)

		item, err := f.handler.Update(created.ID, buildingapimodels.BuildingUpdateData{
			PostCode: strPtr("00-950"),
		}, "user-2")
		require.Nil(t, err)
		require.Equal(t, "00-950", item.PostCode)
		require.Equal(t, created.BuildingNumber, item.BuildingNumber)
		require.Equal(t, created.RegionCode, item.RegionCode)
		require.Equal(t, created.RegionName, item.RegionName)
		require.Equal(t, created.DistrictCode, item.DistrictCode)
		require.Equal(t, created.DistrictName, item.DistrictName)
		require.Equal(t, created.CommunityCode, item.CommunityCode)
		require.Equal(t, created.CommunityName, item.CommunityName)
		require.Equal(t, created.CityCode, item.CityCode)
		require.Equal(t, created.CityName, item.CityName)
		require.Equal(t, created.CitySubdivisionCode, item.CitySubdivisionCode)
		require.Equal(t, created.StreetCode, item.StreetCode)
		require.Equal(t, created.Longitude, item.Longitude)
		require.Equal(t, created.Latitude, item.Latitude)
		require.Equal(t, created.ProviderID, item.ProviderID)
		require.Equal(t, created.Status, item.Status)
		require.Equal(t, "user-1", item.CreatedBy)
		require.Equal(t, "user-2", item.UpdatedBy)
	})

	t.Run(`code change refreshes the name snapshot`, func(t *testing.T) {
		f := newHandlerFixture()
		f.validator.names[models.DictLevelCity]["0918999"] = "Piaseczno"
		created, err := f.handler.Create(validCreateRequest(), "user-1")
		require.Nil(t, err)

		item, err := f.handler.Update(created.ID, buildingapimodels.BuildingUpdateData{
			CityCode: strPtr("0918999"),
		}, "user-1")
		require.Nil(t, err)
		require.Equal(t, "0918999", item.CityCode)
		require.Equal(t, "Piaseczno", item.CityName)
	})

	t.Run(`empty optional code clears it`, func(t *testing.T) {
		f := newHandlerFixture()
		request := validCreateRequest()
		request.StreetCode = "12518"
		created, err := f.handler.Create(request, "user-1")
		require.Nil(t, err)
		require.Equal(t, "ul. Marszałkowska", created.StreetName)

		item, err := f.handler.Update(created.ID, buildingapimodels.BuildingUpdateData{
			StreetCode: strPtr(""),
		}, "user-1")
		require.Nil(t, err)
		require.Equal(t, "", item.StreetCode)
		require.Equal(t, "", item.StreetName)
	})

	t.Run(`unknown code in patch rejected`, func(t *testing.T) {
		f := newHandlerFixture()
		created, err := f.handler.Create(validCreateRequest(), "user-1")
		require.Nil(t, err)

		_, err = f.handler.Update(created.ID, buildingapimodels.BuildingUpdateData{
			StreetCode: strPtr("99999"),
		}, "user-1")
		require.NotNil(t, err)
		require.Equal(t, serviceerrors.KindUnknownReference, serviceerrors.KindOf(err))
	})

	t.Run(`missing building`, func(t *testing.T) {
		f := newHandlerFixture()
		_, err := f.handler.Update("missing", buildingapimodels.BuildingUpdateData{
			PostCode: strPtr("00-950"),
		}, "user-1")
		require.NotNil(t, err)
		require.Equal(t, serviceerrors.KindNotFound, serviceerrors.KindOf(err))
	})
}

func TestList(t *testing.T) {
	t.Run(`empty registry returns empty first page`, func(t *testing.T) {
		f := newHandlerFixture()
		list, rowCount, err := f.handler.List(buildingapimodels.BuildingFilter{})
		require.Nil(t, err)
		require.Equal(t, int64(0), rowCount)
		require.Empty(t, list)
	})

	t.Run(`page past the results is out of range`, func(t *testing.T) {
		f := newHandlerFixture()
		_, err := f.handler.Create(validCreateRequest(), "user-1")
		require.Nil(t, err)

		_, _, err = f.handler.List(buildingapimodels.BuildingFilter{
			Pagination: apimodels.Pagination{Page: 2, Limit: 10},
		})
		require.NotNil(t, err)
		require.Equal(t, serviceerrors.KindPageOutOfRange, serviceerrors.KindOf(err))
	})

	t.Run(`unknown provider filter rejected`, func(t *testing.T) {
		f := newHandlerFixture()
		_, _, err := f.handler.List(buildingapimodels.BuildingFilter{ProviderID: 7})
		require.NotNil(t, err)
		require.Equal(t, serviceerrors.KindUnknownReference, serviceerrors.KindOf(err))
	})

	t.Run(`unknown code filter rejected`, func(t *testing.T) {
		f := newHandlerFixture()
		_, _, err := f.handler.List(buildingapimodels.BuildingFilter{RegionCode: "99"})
		require.NotNil(t, err)
		require.Equal(t, serviceerrors.KindUnknownReference, serviceerrors.KindOf(err))
	})

	t.Run(`status filter applied`, func(t *testing.T) {
		f := newHandlerFixture()
		created, err := f.handler.Create(validCreateRequest(), "user-1")
		require.Nil(t, err)

		deleted := string(models.BuildingStatusDeleted)
		_, err = f.handler.Update(created.ID, buildingapimodels.BuildingUpdateData{Status: &deleted}, "user-1")
		require.Nil(t, err)

		list, rowCount, err := f.handler.List(buildingapimodels.BuildingFilter{Status: "active"})
		require.Nil(t, err)
		require.Equal(t, int64(0), rowCount)
		require.Empty(t, list)

		list, rowCount, err = f.handler.List(buildingapimodels.BuildingFilter{Status: "deleted"})
		require.Nil(t, err)
		require.Equal(t, int64(1), rowCount)
		require.Len(t, list, 1)
	})
}

func TestExportXls(t *testing.T) {
	f := newHandlerFixture()
	_, err := f.handler.Create(validCreateRequest(), "user-1")
	require.Nil(t, err)

	buf, err := f.handler.ExportXls(buildingapimodels.BuildingFilter{})
	require.Nil(t, err)
	require.Equal(t, "rows:1", buf.String())

	_, err = f.handler.ExportXls(buildingapimodels.BuildingFilter{ProviderID: 7})
	require.NotNil(t, err)
	require.Equal(t, serviceerrors.KindUnknownReference, serviceerrors.KindOf(err))
}
