package providerapimodels

import (
	"building-registry-backend/lib/serviceerrors"
	apimodels "building-registry-backend/models/api"
	dbmodels "building-registry-backend/models/db"
)

type ProviderData struct {
	Name       string `json:"name"`
	Technology string `json:"technology"`
	Bandwidth  int    `json:"bandwidth"`
}

func (d ProviderData) Validate() error {
	if d.Name == "" {
		return serviceerrors.NewInvalidInput("name", "required")
	}
	if d.Bandwidth <= 0 {
		return serviceerrors.NewInvalidInput("bandwidth", "must be positive")
	}
	return nil
}

type ProviderView struct {
	ProviderData
	ID uint `json:"id"`
}

type ProviderFilter struct {
	apimodels.Pagination
	Search string `json:"search" query:"search"`
}

func ProviderConvert(rec dbmodels.Provider) ProviderView {
	return ProviderView{
		ProviderData: ProviderData{
			Name:       rec.Name,
			Technology: rec.Technology,
			Bandwidth:  rec.Bandwidth,
		},
		ID: rec.ID,
	}
}
