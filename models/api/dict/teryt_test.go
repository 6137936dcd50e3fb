package dictapimodels

import (
	"testing"

	"github.com/stretchr/testify/require"

	"building-registry-backend/models"
)

func TestTerytEntryDataValidate(t *testing.T) {
	t.Run(`root level entry without parent`, func(t *testing.T) {
		data := TerytEntryData{Code: "14", Name: "MAZOWIECKIE"}
		require.Nil(t, data.Validate(models.DictLevelRegion))
	})

	t.Run(`root level refuses a parent code`, func(t *testing.T) {
		data := TerytEntryData{Code: "14", Name: "MAZOWIECKIE", ParentCode: "99"}
		require.NotNil(t, data.Validate(models.DictLevelRegion))
	})

	t.Run(`child level requires a parent code`, func(t *testing.T) {
		data := TerytEntryData{Code: "1465", Name: "Warszawa"}
		require.NotNil(t, data.Validate(models.DictLevelDistrict))

		data.ParentCode = "14"
		require.Nil(t, data.Validate(models.DictLevelDistrict))
	})

	t.Run(`code format checked per level`, func(t *testing.T) {
		data := TerytEntryData{Code: "1465", Name: "MAZOWIECKIE"}
		require.NotNil(t, data.Validate(models.DictLevelRegion))

		data = TerytEntryData{Code: "14", Name: "Warszawa", ParentCode: "14"}
		require.NotNil(t, data.Validate(models.DictLevelDistrict))
	})

	t.Run(`parent code format checked against the parent level`, func(t *testing.T) {
		data := TerytEntryData{Code: "1465", Name: "Warszawa", ParentCode: "1465"}
		require.NotNil(t, data.Validate(models.DictLevelDistrict))
	})

	t.Run(`name required`, func(t *testing.T) {
		data := TerytEntryData{Code: "14"}
		require.NotNil(t, data.Validate(models.DictLevelRegion))
	})
}

func TestTerytEntryUpdateDataValidate(t *testing.T) {
	strPtr := func(value string) *string { return &value }

	t.Run(`empty patch passes`, func(t *testing.T) {
		require.Nil(t, TerytEntryUpdateData{}.Validate(models.DictLevelRegion))
	})

	t.Run(`name cannot be cleared`, func(t *testing.T) {
		patch := TerytEntryUpdateData{Name: strPtr("")}
		require.NotNil(t, patch.Validate(models.DictLevelRegion))
	})

	t.Run(`reparent only below the root`, func(t *testing.T) {
		patch := TerytEntryUpdateData{ParentCode: strPtr("14")}
		require.NotNil(t, patch.Validate(models.DictLevelRegion))
		require.Nil(t, patch.Validate(models.DictLevelDistrict))
	})

	t.Run(`parent code format checked`, func(t *testing.T) {
		patch := TerytEntryUpdateData{ParentCode: strPtr("1465")}
		require.NotNil(t, patch.Validate(models.DictLevelDistrict))
	})
}
