package dictapimodels

import (
	apimodels "building-registry-backend/models/api"

	"building-registry-backend/lib/serviceerrors"
	"building-registry-backend/models"
	dbmodels "building-registry-backend/models/db"
)

type TerytEntryData struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	ParentCode string `json:"parent_code"`
}

func (d TerytEntryData) Validate(level models.DictLevel) error {
	if d.Code == "" {
		return serviceerrors.NewInvalidInput("code", "required")
	}
	if !level.CheckCodeFormat(d.Code) {
		return serviceerrors.NewInvalidInput("code", "wrong format for "+level.ToHuman())
	}
	if d.Name == "" {
		return serviceerrors.NewInvalidInput("name", "required")
	}
	parentLevel, hasParent := level.ParentLevel()
	if hasParent {
		if d.ParentCode == "" {
			return serviceerrors.NewInvalidInput("parent_code", "required for "+level.ToHuman())
		}
		if !parentLevel.CheckCodeFormat(d.ParentCode) {
			return serviceerrors.NewInvalidInput("parent_code", "wrong format for "+parentLevel.ToHuman())
		}
	} else if d.ParentCode != "" {
		return serviceerrors.NewInvalidInput("parent_code", level.ToHuman()+" has no parent level")
	}
	return nil
}

type TerytEntryUpdateData struct {
	Name       *string `json:"name"`
	ParentCode *string `json:"parent_code"`
}

func (d TerytEntryUpdateData) Validate(level models.DictLevel) error {
	if d.Name != nil && *d.Name == "" {
		return serviceerrors.NewInvalidInput("name", "cannot be empty")
	}
	if d.ParentCode != nil {
		parentLevel, hasParent := level.ParentLevel()
		if !hasParent {
			return serviceerrors.NewInvalidInput("parent_code", level.ToHuman()+" has no parent level")
		}
		if !parentLevel.CheckCodeFormat(*d.ParentCode) {
			return serviceerrors.NewInvalidInput("parent_code", "wrong format for "+parentLevel.ToHuman())
		}
	}
	return nil
}

type TerytEntryView struct {
	TerytEntryData
}

type TerytEntryFilter struct {
	apimodels.Pagination
	ParentCode string `json:"parent_code" query:"parent_code"`
	Search     string `json:"search" query:"search"`
}

func TerytEntryConvert(rec dbmodels.TerytEntry) TerytEntryView {
	return TerytEntryView{
		TerytEntryData: TerytEntryData{
			Code:       rec.Code,
			Name:       rec.Name,
			ParentCode: rec.ParentCode,
		},
	}
}
