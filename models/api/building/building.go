package buildingapimodels

import (
	"regexp"

	"building-registry-backend/lib/serviceerrors"
	"building-registry-backend/models"
	apimodels "building-registry-backend/models/api"
	dbmodels "building-registry-backend/models/db"
)

var postCodeFormat = regexp.MustCompile(`^\d{2}-\d{3}$`)

type BuildingData struct {
	RegionCode          string  `json:"region_code"`
	DistrictCode        string  `json:"district_code"`
	CommunityCode       string  `json:"community_code"`
	CityCode            string  `json:"city_code"`
	CitySubdivisionCode string  `json:"city_subdivision_code"` // optional
	StreetCode          string  `json:"street_code"`           // optional
	BuildingNumber      string  `json:"building_number"`
	PostCode            string  `json:"post_code"`
	Longitude           float64 `json:"longitude"`
	Latitude            float64 `json:"latitude"`
	ProviderID          uint    `json:"provider_id"`
}

func (d BuildingData) Validate() error {
	if err := checkCode(models.DictLevelRegion, "region_code", d.RegionCode, true); err != nil {
		return err
	}
	if err := checkCode(models.DictLevelDistrict, "district_code", d.DistrictCode, true); err != nil {
		return err
	}
	if err := checkCode(models.DictLevelCommunity, "community_code", d.CommunityCode, true); err != nil {
		return err
	}
	if err := checkCode(models.DictLevelCity, "city_code", d.CityCode, true); err != nil {
		return err
	}
	if err := checkCode(models.DictLevelCitySubdivision, "city_subdivision_code", d.CitySubdivisionCode, false); err != nil {
		return err
	}
	if err := checkCode(models.DictLevelStreet, "street_code", d.StreetCode, false); err != nil {
		return err
	}
	if d.BuildingNumber == "" {
		return serviceerrors.NewInvalidInput("building_number", "required")
	}
	if err := checkPostCode(d.PostCode); err != nil {
		return err
	}
	if err := checkCoordinates(d.Longitude, d.Latitude); err != nil {
		return err
	}
	if d.ProviderID == 0 {
		return serviceerrors.NewInvalidInput("provider_id", "required")
	}
	return nil
}

// BuildingUpdateData is a merge-patch: only non-nil fields are applied.
// An empty string on an optional code clears it.
type BuildingUpdateData struct {
	RegionCode          *string  `json:"region_code"`
	DistrictCode        *string  `json:"district_code"`
	CommunityCode       *string  `json:"community_code"`
	CityCode            *string  `json:"city_code"`
	CitySubdivisionCode *string  `json:"city_subdivision_code"`
	StreetCode          *string  `json:"street_code"`
	BuildingNumber      *string  `json:"building_number"`
	PostCode            *string  `json:"post_code"`
	Longitude           *float64 `json:"longitude"`
	Latitude            *float64 `json:"latitude"`
	ProviderID          *uint    `json:"provider_id"`
	Status              *string  `json:"status"`
}

func (d BuildingUpdateData) Validate() error {
	if d.RegionCode != nil {
		if err := checkCode(models.DictLevelRegion, "region_code", *d.RegionCode, true); err != nil {
			return err
		}
	}
	if d.DistrictCode != nil {
		if err := checkCode(models.DictLevelDistrict, "district_code", *d.DistrictCode, true); err != nil {
			return err
		}
	}
	if d.CommunityCode != nil {
		if err := checkCode(models.DictLevelCommunity, "community_code", *d.CommunityCode, true); err != nil {
			return err
		}
	}
	if d.CityCode != nil {
		if err := checkCode(models.DictLevelCity, "city_code", *d.CityCode, true); err != nil {
			return err
		}
	}
	if d.CitySubdivisionCode != nil {
		if err := checkCode(models.DictLevelCitySubdivision, "city_subdivision_code", *d.CitySubdivisionCode, false); err != nil {
			return err
		}
	}
	if d.StreetCode != nil {
		if err := checkCode(models.DictLevelStreet, "street_code", *d.StreetCode, false); err != nil {
			return err
		}
	}
	if d.BuildingNumber != nil && *d.BuildingNumber == "" {
		return serviceerrors.NewInvalidInput("building_number", "cannot be empty")
	}
	if d.PostCode != nil {
		if err := checkPostCode(*d.PostCode); err != nil {
			return err
		}
	}
	if d.Longitude != nil && (*d.Longitude < models.LongitudeMin || *d.Longitude > models.LongitudeMax) {
		return serviceerrors.NewInvalidInput("longitude", "out of supported range")
	}
	if d.Latitude != nil && (*d.Latitude < models.LatitudeMin || *d.Latitude > models.LatitudeMax) {
		return serviceerrors.NewInvalidInput("latitude", "out of supported range")
	}
	if d.ProviderID != nil && *d.ProviderID == 0 {
		return serviceerrors.NewInvalidInput("provider_id", "cannot be empty")
	}
	if d.Status != nil && !models.BuildingStatus(*d.Status).IsValid() {
		return serviceerrors.NewInvalidInput("status", "unknown status")
	}
	return nil
}

// HasAddressKeyField reports whether the patch touches the uniqueness key.
func (d BuildingUpdateData) HasAddressKeyField() bool {
	return d.RegionCode != nil ||
		d.DistrictCode != nil ||
		d.CommunityCode != nil ||
		d.CityCode != nil ||
		d.CitySubdivisionCode != nil ||
		d.StreetCode != nil ||
		d.BuildingNumber != nil
}

type BuildingView struct {
	ID                  string  `json:"id"`
	RegionCode          string  `json:"region_code"`
	RegionName          string  `json:"region_name"`
	DistrictCode        string  `json:"district_code"`
	DistrictName        string  `json:"district_name"`
	CommunityCode       string  `json:"community_code"`
	CommunityName       string  `json:"community_name"`
	CityCode            string  `json:"city_code"`
	CityName            string  `json:"city_name"`
	CitySubdivisionCode string  `json:"city_subdivision_code,omitempty"`
	CitySubdivisionName string  `json:"city_subdivision_name,omitempty"`
	StreetCode          string  `json:"street_code,omitempty"`
	StreetName          string  `json:"street_name,omitempty"`
	BuildingNumber      string  `json:"building_number"`
	PostCode            string  `json:"post_code"`
	Longitude           float64 `json:"longitude"`
	Latitude            float64 `json:"latitude"`
	ProviderID          uint    `json:"provider_id"`
	ProviderName        string  `json:"provider_name,omitempty"`
	Status              string  `json:"status"`
	CreatedAt           string  `json:"created_at"`
	CreatedBy           string  `json:"created_by"`
	UpdatedAt           string  `json:"updated_at"`
	UpdatedBy           string  `json:"updated_by"`
}

type BuildingFilter struct {
	apimodels.Pagination
	RegionCode          string `json:"region_code" query:"region_code"`
	DistrictCode        string `json:"district_code" query:"district_code"`
	CommunityCode       string `json:"community_code" query:"community_code"`
	CityCode            string `json:"city_code" query:"city_code"`
	CitySubdivisionCode string `json:"city_subdivision_code" query:"city_subdivision_code"`
	StreetCode          string `json:"street_code" query:"street_code"`
	ProviderID          uint   `json:"provider_id" query:"provider_id"`
	Status              string `json:"status" query:"status"`
}

func (f BuildingFilter) Validate() error {
	if f.Status != "" && !models.BuildingStatus(f.Status).IsValid() {
		return serviceerrors.NewInvalidInput("status", "unknown status")
	}
	return nil
}

func BuildingConvert(rec dbmodels.Building, providerName string) BuildingView {
	view := BuildingView{
		ID:             rec.ID,
		RegionCode:     rec.RegionCode,
		RegionName:     rec.RegionName,
		DistrictCode:   rec.DistrictCode,
		DistrictName:   rec.DistrictName,
		CommunityCode:  rec.CommunityCode,
		CommunityName:  rec.CommunityName,
		CityCode:       rec.CityCode,
		CityName:       rec.CityName,
		BuildingNumber: rec.BuildingNumber,
		PostCode:       rec.PostCode,
		Longitude:      rec.Longitude,
		Latitude:       rec.Latitude,
		ProviderID:     rec.ProviderID,
		ProviderName:   providerName,
		Status:         string(rec.Status),
		CreatedAt:      rec.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		CreatedBy:      rec.CreatedBy,
		UpdatedAt:      rec.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedBy:      rec.UpdatedBy,
	}
	if rec.CitySubdivisionCode != nil {
		view.CitySubdivisionCode = *rec.CitySubdivisionCode
	}
	if rec.CitySubdivisionName != nil {
		view.CitySubdivisionName = *rec.CitySubdivisionName
	}
	if rec.StreetCode != nil {
		view.StreetCode = *rec.StreetCode
	}
	if rec.StreetName != nil {
		view.StreetName = *rec.StreetName
	}
	return view
}

func BuildingExtConvert(rec dbmodels.BuildingExt) BuildingView {
	return BuildingConvert(rec.Building, rec.ProviderName)
}

func checkCode(level models.DictLevel, field, code string, required bool) error {
	if code == "" {
		if required {
			return serviceerrors.NewInvalidInput(field, "required")
		}
		return nil
	}
	if !level.CheckCodeFormat(code) {
		return serviceerrors.NewInvalidInput(field, "wrong format for "+level.ToHuman())
	}
	return nil
}

func checkPostCode(postCode string) error {
	if postCode == "" {
		return serviceerrors.NewInvalidInput("post_code", "required")
	}
	if !postCodeFormat.MatchString(postCode) {
		return serviceerrors.NewInvalidInput("post_code", "expected format NN-NNN")
	}
	return nil
}

func checkCoordinates(longitude, latitude float64) error {
	if longitude < models.LongitudeMin || longitude > models.LongitudeMax {
		return serviceerrors.NewInvalidInput("longitude", "out of supported range")
	}
	if latitude < models.LatitudeMin || latitude > models.LatitudeMax {
		return serviceerrors.NewInvalidInput("latitude", "out of supported range")
	}
	return nil
}
