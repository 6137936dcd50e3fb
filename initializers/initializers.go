package initializers

import (
	"context"

	"building-registry-backend/config"
	"building-registry-backend/fiberlog"
	buildinghandler "building-registry-backend/lib/building"
	terytdictprovider "building-registry-backend/lib/dicts/teryt"
	xlsexport "building-registry-backend/lib/export/xls"
	providerhandler "building-registry-backend/lib/provider"
	terytvalidator "building-registry-backend/lib/teryt-validator"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	xlsexport.NewHandler()
	terytvalidator.NewHandler()
	terytdictprovider.NewHandler()
	providerhandler.NewHandler()
	buildinghandler.NewHandler()
}
