package terytvalidator

import (
	"building-registry-backend/db"
	terytdictstore "building-registry-backend/lib/dicts/teryt/store"
	"building-registry-backend/lib/serviceerrors"
	initchecker "building-registry-backend/lib/utils/init-checker"
	"building-registry-backend/models"
)

// ChainCodes carries the hierarchy codes supplied with a building write.
// Empty optional codes are skipped.
type ChainCodes struct {
	RegionCode          string
	DistrictCode        string
	CommunityCode       string
	CityCode            string
	CitySubdivisionCode string
	StreetCode          string
}

// ChainNames is the name snapshot resolved for the supplied codes.
type ChainNames struct {
	RegionName          string
	DistrictName        string
	CommunityName       string
	CityName            string
	CitySubdivisionName string
	StreetName          string
}

type Provider interface {
	// ValidateChain checks each supplied code for existence at its level
	// and returns the resolved display names. Codes are validated
	// independently: the declared parent of an entry is not compared to
	// the sibling code in the same request.
	ValidateChain(codes ChainCodes) (names ChainNames, err error)
	// ValidateCode checks a single code at the given level.
	ValidateCode(level models.DictLevel, code string) (name string, err error)
	// ValidateParent checks the parent code of an entry one level up.
	ValidateParent(level models.DictLevel, parentCode string) (name string, err error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(terytdictstore.NewInstance(db.DB))
}

func NewInstance(store terytdictstore.Provider) Provider {
	instance := impl{
		store: store,
	}
	initchecker.CheckInit(
		"store", instance.store,
	)
	return instance
}

type impl struct {
	store terytdictstore.Provider
}

func (i impl) ValidateChain(codes ChainCodes) (ChainNames, error) {
	names := ChainNames{}
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
		name, err := i.ValidateCode(lookup.level, lookup.code)
		if err != nil {
			return ChainNames{}, err
		}
		*lookup.out = name
	}
	return names, nil
}

func (i impl) ValidateCode(level models.DictLevel, code string) (string, error) {
	rec, err := i.store.GetByCode(level, code)
	if err != nil {
		return "", serviceerrors.NewStorage(err, "dictionary lookup")
	}
	if rec == nil {
		return "", serviceerrors.NewUnknownReference(level, code)
	}
	return rec.Name, nil
}

func (i impl) ValidateParent(level models.DictLevel, parentCode string) (string, error) {
	parentLevel, hasParent := level.ParentLevel()
	if !hasParent {
		return "", nil
	}
	return i.ValidateCode(parentLevel, parentCode)
}
