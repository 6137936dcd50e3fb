package xlsexport

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"building-registry-backend/models"
	dbmodels "building-registry-backend/models/db"
)

func strPtr(value string) *string {
	return &value
}

func TestExportBuildingList(t *testing.T) {
	NewHandler()

	rec := dbmodels.BuildingExt{
		Building: dbmodels.Building{
			RegionCode:     "14",
			RegionName:     "MAZOWIECKIE",
			DistrictCode:   "1465",
			DistrictName:   "Warszawa",
			CommunityCode:  "1465011",
			CommunityName:  "Warszawa",
			CityCode:       "0918123",
			CityName:       "Warszawa",
			StreetCode:     strPtr("12518"),
			StreetName:     strPtr("ul. Marszałkowska"),
			BuildingNumber: "42A",
			PostCode:       "00-001",
			Longitude:      21.01,
			Latitude:       52.23,
			Status:         models.BuildingStatusActive,
		},
		ProviderName: "Orange Polska",
	}

	buf, err := Instance.ExportBuildingList([]dbmodels.BuildingExt{rec})
	require.Nil(t, err)

	f, err := excelize.OpenReader(buf)
	require.Nil(t, err)
	defer func() { require.Nil(t, f.Close()) }()

	header, err := f.GetCellValue("Buildings", "A1")
	require.Nil(t, err)
	require.Equal(t, "Region", header)

	region, err := f.GetCellValue("Buildings", "A2")
	require.Nil(t, err)
	require.Equal(t, "MAZOWIECKIE (14)", region)

	street, err := f.GetCellValue("Buildings", "F2")
	require.Nil(t, err)
	require.Equal(t, "ul. Marszałkowska (12518)", street)

	subdivision, err := f.GetCellValue("Buildings", "E2")
	require.Nil(t, err)
	require.Equal(t, "", subdivision)

	status, err := f.GetCellValue("Buildings", "L2")
	require.Nil(t, err)
	require.Equal(t, "Active", status)
}

func TestExportEmptyList(t *testing.T) {
	NewHandler()
	buf, err := Instance.ExportBuildingList(nil)
	require.Nil(t, err)

	f, err := excelize.OpenReader(buf)
	require.Nil(t, err)
	defer func() { require.Nil(t, f.Close()) }()

	rows, err := f.GetRows("Buildings")
	require.Nil(t, err)
	require.Len(t, rows, 1)
}
