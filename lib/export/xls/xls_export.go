package xlsexport

import (
	"bytes"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	dbmodels "building-registry-backend/models/db"
)

type Provider interface {
	ExportBuildingList(list []dbmodels.BuildingExt) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var buildingHeaders = []string{
	"Region", "District", "Community", "City", "City subdivision", "Street",
	"Building number", "Post code", "Longitude", "Latitude", "Provider", "Status",
}

func (i impl) ExportBuildingList(list []dbmodels.BuildingExt) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("failed to close xlsx file")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, buildingHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "failed to write xlsx header")
	}
	if len(list) != 0 {
		_, err = writeBuildingData(f, sheet, list, row)
		if err != nil {
			return nil, errors.Wrap(err, "failed to write xlsx data rows")
		}
	}
	f.SetSheetName(sheet, "Buildings")
	return f.WriteToBuffer()
}

func writeBuildingData(f *excelize.File, sheet string, list []dbmodels.BuildingExt, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(buildingHeaders), len(list)+1); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		values := []interface{}{
			labelled(item.RegionName, item.RegionCode),
			labelled(item.DistrictName, item.DistrictCode),
			labelled(item.CommunityName, item.CommunityCode),
			labelled(item.CityName, item.CityCode),
			optionalLabelled(item.CitySubdivisionName, item.CitySubdivisionCode),
			optionalLabelled(item.StreetName, item.StreetCode),
			item.BuildingNumber,
			item.PostCode,
			item.Longitude,
			item.Latitude,
			item.ProviderName,
			item.Status.ToHuman(),
		}
		for idx, value := range values {
			if err := writeColumn(f, sheet, idx+1, row, value); err != nil {
				return row, err
			}
		}
	}
	return row, nil
}

func labelled(name, code string) string {
	return name + " (" + code + ")"
}

func optionalLabelled(name, code *string) string {
	if code == nil {
		return ""
	}
	resolvedName := ""
	if name != nil {
		resolvedName = *name
	}
	return labelled(resolvedName, *code)
}
