package dbmodels

// TerytEntry is the shared row shape of the six dictionary tables.
// ParentCode stays empty for root levels (region, street).
type TerytEntry struct {
	Code       string `gorm:"primaryKey;type:varchar(20)" json:"code"`
	Name       string `gorm:"index;type:varchar(255)" json:"name"`
	ParentCode string `gorm:"index;type:varchar(20)" json:"parent_code"`
}

type Region struct {
	TerytEntry
}

func (Region) TableName() string { return "regions" }

type District struct {
	TerytEntry
}

func (District) TableName() string { return "districts" }

type Community struct {
	TerytEntry
}

func (Community) TableName() string { return "communities" }

type City struct {
	TerytEntry
}

func (City) TableName() string { return "cities" }

type CitySubdivision struct {
	TerytEntry
}

func (CitySubdivision) TableName() string { return "city_subdivisions" }

type Street struct {
	TerytEntry
}

func (Street) TableName() string { return "streets" }
