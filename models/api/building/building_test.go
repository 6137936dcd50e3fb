package buildingapimodels

import (
	"testing"

	"github.com/stretchr/testify/require"

	"building-registry-backend/lib/serviceerrors"
)

func validBuildingData() BuildingData {
	return BuildingData{
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

func TestBuildingDataValidate(t *testing.T) {
	t.Run(`valid payload passes`, func(t *testing.T) {
		require.Nil(t, validBuildingData().Validate())
	})

	t.Run(`optional codes may be empty`, func(t *testing.T) {
		data := validBuildingData()
		data.CitySubdivisionCode = ""
		data.StreetCode = ""
		require.Nil(t, data.Validate())
	})

	t.Run(`required codes checked`, func(t *testing.T) {
		data := validBuildingData()
		data.RegionCode = ""
		err := data.Validate()
		require.NotNil(t, err)
		require.Equal(t, serviceerrors.KindInvalidInput, serviceerrors.KindOf(err))

		data = validBuildingData()
		data.CityCode = "123"
		err = data.Validate()
		require.NotNil(t, err)
		require.Equal(t, serviceerrors.KindInvalidInput, serviceerrors.KindOf(err))
	})

	t.Run(`post code format`, func(t *testing.T) {
		data := validBuildingData()
		data.PostCode = "00001"
		require.NotNil(t, data.Validate())

		data.PostCode = "0-0001"
		require.NotNil(t, data.Validate())

		data.PostCode = "00-001"
		require.Nil(t, data.Validate())
	})

	t.Run(`coordinates bounded`, func(t *testing.T) {
		data := validBuildingData()
		data.Longitude = 13.9
		require.NotNil(t, data.Validate())

		data = validBuildingData()
		data.Longitude = 24.2
		require.NotNil(t, data.Validate())

		data = validBuildingData()
		data.Latitude = 48.9
		require.NotNil(t, data.Validate())

		data = validBuildingData()
		data.Latitude = 54.9
		require.NotNil(t, data.Validate())

		data = validBuildingData()
		data.Longitude = 14.1
		data.Latitude = 54.8
		require.Nil(t, data.Validate())
	})

	t.Run(`provider required`, func(t *testing.T) {
		data := validBuildingData()
		data.ProviderID = 0
		require.NotNil(t, data.Validate())
	})
}

func TestBuildingUpdateDataValidate(t *testing.T) {
	strPtr := func(value string) *string { return &value }
	floatPtr := func(value float64) *float64 { return &value }

	t.Run(`empty patch passes`, func(t *testing.T) {
		require.Nil(t, BuildingUpdateData{}.Validate())
		require.False(t, BuildingUpdateData{}.HasAddressKeyField())
	})

	t.Run(`empty optional code clears, empty required code fails`, func(t *testing.T) {
		patch := BuildingUpdateData{StreetCode: strPtr("")}
		require.Nil(t, patch.Validate())
		require.True(t, patch.HasAddressKeyField())

		patch = BuildingUpdateData{RegionCode: strPtr("")}
		require.NotNil(t, patch.Validate())
	})

	t.Run(`coordinate patch bounded`, func(t *testing.T) {
		require.NotNil(t, BuildingUpdateData{Latitude: floatPtr(60)}.Validate())
		require.Nil(t, BuildingUpdateData{Latitude: floatPtr(52.23)}.Validate())
	})

	t.Run(`status patch checked`, func(t *testing.T) {
		require.NotNil(t, BuildingUpdateData{Status: strPtr("archived")}.Validate())
		require.Nil(t, BuildingUpdateData{Status: strPtr("deleted")}.Validate())
	})

	t.Run(`address key detection`, func(t *testing.T) {
		require.True(t, BuildingUpdateData{BuildingNumber: strPtr("42B")}.HasAddressKeyField())
		require.False(t, BuildingUpdateData{PostCode: strPtr("00-002")}.HasAddressKeyField())
	})
}

func TestBuildingFilterValidate(t *testing.T) {
	require.Nil(t, BuildingFilter{}.Validate())
	require.Nil(t, BuildingFilter{Status: "active"}.Validate())
	require.NotNil(t, BuildingFilter{Status: "archived"}.Validate())
}
