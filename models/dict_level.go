package models

import "regexp"

// DictLevel identifies one level of the territorial hierarchy.
// The set is closed: every level maps to its own dictionary table.
type DictLevel string

const (
	DictLevelRegion          DictLevel = "REGION"
	DictLevelDistrict        DictLevel = "DISTRICT"
	DictLevelCommunity       DictLevel = "COMMUNITY"
	DictLevelCity            DictLevel = "CITY"
	DictLevelCitySubdivision DictLevel = "CITY_SUBDIVISION"
	DictLevelStreet          DictLevel = "STREET"
)

type dictLevelInfo struct {
	table      string
	parent     DictLevel // empty for root levels
	codeFormat *regexp.Regexp
	human      string
}

var dictLevelMap = map[DictLevel]dictLevelInfo{
	DictLevelRegion: {
		table:      "regions",
		codeFormat: regexp.MustCompile(`^\d{2}$`),
		human:      "region",
	},
	DictLevelDistrict: {
		table:      "districts",
		parent:     DictLevelRegion,
		codeFormat: regexp.MustCompile(`^\d{4}$`),
		human:      "district",
	},
	DictLevelCommunity: {
		table:      "communities",
		parent:     DictLevelDistrict,
		codeFormat: regexp.MustCompile(`^\d{7}$`),
		human:      "community",
	},
	DictLevelCity: {
		table:      "cities",
		parent:     DictLevelCommunity,
		codeFormat: regexp.MustCompile(`^\d{7}$`),
		human:      "city",
	},
	DictLevelCitySubdivision: {
		table:      "city_subdivisions",
		parent:     DictLevelCity,
		codeFormat: regexp.MustCompile(`^\d{7}$`),
		human:      "city subdivision",
	},
	DictLevelStreet: {
		table:      "streets",
		codeFormat: regexp.MustCompile(`^\S+$`),
		human:      "street",
	},
}

// DictLevels returns the levels in hierarchy order.
func DictLevels() []DictLevel {
	return []DictLevel{
		DictLevelRegion,
		DictLevelDistrict,
		DictLevelCommunity,
		DictLevelCity,
		DictLevelCitySubdivision,
		DictLevelStreet,
	}
}

func ParseDictLevel(value string) (DictLevel, bool) {
	level := DictLevel(value)
	_, exist := dictLevelMap[level]
	return level, exist
}

func (l DictLevel) TableName() string {
	return dictLevelMap[l].table
}

func (l DictLevel) ToHuman() string {
	if info, exist := dictLevelMap[l]; exist {
		return info.human
	}
	return string(l)
}

// ParentLevel returns the level one step up. Region and street have none.
func (l DictLevel) ParentLevel() (DictLevel, bool) {
	parent := dictLevelMap[l].parent
	return parent, parent != ""
}

// ChildLevel returns the level one step down, if any.
func (l DictLevel) ChildLevel() (DictLevel, bool) {
	for _, level := range DictLevels() {
		if dictLevelMap[level].parent == l {
			return level, true
		}
	}
	return "", false
}

func (l DictLevel) CheckCodeFormat(code string) bool {
	info, exist := dictLevelMap[l]
	if !exist {
		return false
	}
	return info.codeFormat.MatchString(code)
}
