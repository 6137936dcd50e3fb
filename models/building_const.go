package models

type BuildingStatus string

const (
	BuildingStatusActive  BuildingStatus = "active"
	BuildingStatusDeleted BuildingStatus = "deleted"
)

var buildingStatusHumanName = map[BuildingStatus]string{
	BuildingStatusActive:  "Active",
	BuildingStatusDeleted: "Deleted",
}

func (s BuildingStatus) ToHuman() string {
	if human, exist := buildingStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

func (s BuildingStatus) IsValid() bool {
	_, exist := buildingStatusHumanName[s]
	return exist
}

// Country bounding box, buildings outside are rejected on write.
const (
	LongitudeMin = 14.1
	LongitudeMax = 24.1
	LatitudeMin  = 49.0
	LatitudeMax  = 54.8
)
