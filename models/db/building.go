package dbmodels

import (
	"building-registry-backend/models"
)

// Building holds both the hierarchy codes and the dictionary names
// snapshotted at write time. Names are never re-synchronized when a
// dictionary entry is renamed.
type Building struct {
	BaseModel
	RegionCode          string                `gorm:"type:varchar(2);not null;index" json:"region_code"`
	RegionName          string                `gorm:"type:varchar(255)" json:"region_name"`
	DistrictCode        string                `gorm:"type:varchar(4);not null;index" json:"district_code"`
	DistrictName        string                `gorm:"type:varchar(255)" json:"district_name"`
	CommunityCode       string                `gorm:"type:varchar(7);not null;index" json:"community_code"`
	CommunityName       string                `gorm:"type:varchar(255)" json:"community_name"`
	CityCode            string                `gorm:"type:varchar(7);not null;index" json:"city_code"`
	CityName            string                `gorm:"type:varchar(255)" json:"city_name"`
	CitySubdivisionCode *string               `gorm:"type:varchar(7);index" json:"city_subdivision_code"`
	CitySubdivisionName *string               `gorm:"type:varchar(255)" json:"city_subdivision_name"`
	StreetCode          *string               `gorm:"type:varchar(20);index" json:"street_code"`
	StreetName          *string               `gorm:"type:varchar(255)" json:"street_name"`
	BuildingNumber      string                `gorm:"type:varchar(50);not null" json:"building_number"`
	PostCode            string                `gorm:"type:varchar(6);not null" json:"post_code"`
	Longitude           float64               `gorm:"not null" json:"longitude"`
	Latitude            float64               `gorm:"not null" json:"latitude"`
	ProviderID          uint                  `gorm:"not null;index" json:"provider_id"`
	Status              models.BuildingStatus `gorm:"type:varchar(20);default:'active';index" json:"status"`
	CreatedBy           string                `gorm:"type:varchar(36)" json:"created_by"`
	UpdatedBy           string                `gorm:"type:varchar(36)" json:"updated_by"`
}

// BuildingExt is the list row with the provider name joined in.
type BuildingExt struct {
	Building
	ProviderName string `json:"provider_name"`
}

// BuildingAddressKey is the logical-address tuple that must be unique
// among active buildings. Nil optional codes compare as "IS NULL".
type BuildingAddressKey struct {
	RegionCode          string
	DistrictCode        string
	CommunityCode       string
	CityCode            string
	CitySubdivisionCode *string
	StreetCode          *string
	BuildingNumber      string
}

func (b Building) AddressKey() BuildingAddressKey {
	return BuildingAddressKey{
		RegionCode:          b.RegionCode,
		DistrictCode:        b.DistrictCode,
		CommunityCode:       b.CommunityCode,
		CityCode:            b.CityCode,
		CitySubdivisionCode: b.CitySubdivisionCode,
		StreetCode:          b.StreetCode,
		BuildingNumber:      b.BuildingNumber,
	}
}

// Matches compares two keys with null-aware equality on the optional codes.
func (k BuildingAddressKey) Matches(other BuildingAddressKey) bool {
	return k.RegionCode == other.RegionCode &&
		k.DistrictCode == other.DistrictCode &&
		k.CommunityCode == other.CommunityCode &&
		k.CityCode == other.CityCode &&
		optionalEqual(k.CitySubdivisionCode, other.CitySubdivisionCode) &&
		optionalEqual(k.StreetCode, other.StreetCode) &&
		k.BuildingNumber == other.BuildingNumber
}

func optionalEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
