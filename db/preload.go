package db

import (
	log "github.com/sirupsen/logrus"

	terytdictstore "building-registry-backend/lib/dicts/teryt/store"
	providerstore "building-registry-backend/lib/provider/store"
	"building-registry-backend/models"
	dictapimodels "building-registry-backend/models/api/dict"
	providerapimodels "building-registry-backend/models/api/provider"
	dbmodels "building-registry-backend/models/db"
)

func InitPreload() {
	fillTerytDictionaries()
	addDefaultProvider()
}

type terytSeed struct {
	level models.DictLevel
	rec   dbmodels.TerytEntry
}

// Minimal starter data so a fresh installation can register a building
// right away; real deployments import the full TERYT dataset instead.
var terytSeeds = []terytSeed{
	{models.DictLevelRegion, dbmodels.TerytEntry{Code: "14", Name: "MAZOWIECKIE"}},
	{models.DictLevelDistrict, dbmodels.TerytEntry{Code: "1465", Name: "Warszawa", ParentCode: "14"}},
	{models.DictLevelCommunity, dbmodels.TerytEntry{Code: "1465011", Name: "Warszawa", ParentCode: "1465"}},
	{models.DictLevelCity, dbmodels.TerytEntry{Code: "0918123", Name: "Warszawa", ParentCode: "1465011"}},
	{models.DictLevelCitySubdivision, dbmodels.TerytEntry{Code: "0918784", Name: "Mokotów", ParentCode: "0918123"}},
	{models.DictLevelStreet, dbmodels.TerytEntry{Code: "12518", Name: "ul. Marszałkowska"}},
	{models.DictLevelStreet, dbmodels.TerytEntry{Code: "15093", Name: "ul. Nowy Świat"}},
}

func fillTerytDictionaries() {
	store := terytdictstore.NewInstance(DB)
	count, err := store.ListCount(models.DictLevelRegion, dictapimodels.TerytEntryFilter{})
	if err != nil {
		log.WithError(err).Error("failed to seed teryt dictionaries")
		return
	}
	if count > 0 {
		return
	}
	for _, seed := range terytSeeds {
		err = store.Create(seed.level, seed.rec)
		if err != nil {
			log.WithError(err).
				WithField("dict_level", seed.level).
				WithField("code", seed.rec.Code).
				Error("failed to seed teryt dictionaries")
			return
		}
	}
	log.Info("teryt dictionaries seeded")
}

func addDefaultProvider() {
	store := providerstore.NewInstance(DB)
	count, err := store.ListCount(providerapimodels.ProviderFilter{})
	if err != nil {
		log.WithError(err).Error("failed to seed default provider")
		return
	}
	if count > 0 {
		return
	}
	_, err = store.Create(dbmodels.Provider{
		Name:       "Orange Polska",
		Technology: "FTTH",
		Bandwidth:  1000,
	})
	if err != nil {
		log.WithError(err).Error("failed to seed default provider")
		return
	}
	log.Info("default provider seeded")
}
