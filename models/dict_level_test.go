package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDictLevel(t *testing.T) {
	t.Run(`parse known levels`, func(t *testing.T) {
		for _, level := range DictLevels() {
			parsed, exist := ParseDictLevel(string(level))
			require.True(t, exist)
			require.Equal(t, level, parsed)
		}
		_, exist := ParseDictLevel("VILLAGE")
		require.False(t, exist)
	})

	t.Run(`parent chain`, func(t *testing.T) {
		_, hasParent := DictLevelRegion.ParentLevel()
		require.False(t, hasParent)

		parent, hasParent := DictLevelDistrict.ParentLevel()
		require.True(t, hasParent)
		require.Equal(t, DictLevelRegion, parent)

		parent, hasParent = DictLevelCitySubdivision.ParentLevel()
		require.True(t, hasParent)
		require.Equal(t, DictLevelCity, parent)

		_, hasParent = DictLevelStreet.ParentLevel()
		require.False(t, hasParent)
	})

	t.Run(`child lookup`, func(t *testing.T) {
		child, hasChild := DictLevelRegion.ChildLevel()
		require.True(t, hasChild)
		require.Equal(t, DictLevelDistrict, child)

		child, hasChild = DictLevelCity.ChildLevel()
		require.True(t, hasChild)
		require.Equal(t, DictLevelCitySubdivision, child)

		_, hasChild = DictLevelStreet.ChildLevel()
		require.False(t, hasChild)
	})

	t.Run(`code formats`, func(t *testing.T) {
		require.True(t, DictLevelRegion.CheckCodeFormat("14"))
		require.False(t, DictLevelRegion.CheckCodeFormat("1465"))

		require.True(t, DictLevelDistrict.CheckCodeFormat("1465"))
		require.False(t, DictLevelDistrict.CheckCodeFormat("14"))

		require.True(t, DictLevelCommunity.CheckCodeFormat("1465011"))
		require.True(t, DictLevelCity.CheckCodeFormat("0918123"))
		require.False(t, DictLevelCity.CheckCodeFormat("918123"))

		require.True(t, DictLevelStreet.CheckCodeFormat("12518"))
		require.False(t, DictLevelStreet.CheckCodeFormat(""))
		require.False(t, DictLevelStreet.CheckCodeFormat("12 518"))
	})

	t.Run(`table per level`, func(t *testing.T) {
		require.Equal(t, "regions", DictLevelRegion.TableName())
		require.Equal(t, "city_subdivisions", DictLevelCitySubdivision.TableName())
	})
}
