package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"building-registry-backend/controllers"
	buildinghandler "building-registry-backend/lib/building"
	"building-registry-backend/lib/serviceerrors"
	"building-registry-backend/middleware"
	apimodels "building-registry-backend/models/api"
	buildingapimodels "building-registry-backend/models/api/building"
)

type buildingApiController struct {
	controllers.BaseAPIController
}

func InitBuildingApiRouters(app *fiber.App) {
	controller := buildingApiController{}
	app.Route("building", func(router fiber.Router) {
		router.Get("", controller.buildingList)
		router.Get("export", controller.buildingExport)
		router.Get(":id", controller.buildingGet)
		router.Use(middleware.WriteRoleRequired())
		router.Post("", controller.buildingCreate)
		router.Put(":id", controller.buildingUpdate)
	})
}

// @Summary Create building
// @Tags Buildings
// @Description Create building
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 buildingapimodels.BuildingData	true	"request body"
// @Success 200 {object} apimodels.Response{data=buildingapimodels.BuildingView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/building [post]
func (c *buildingApiController) buildingCreate(ctx *fiber.Ctx) error {
	var payload buildingapimodels.BuildingData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	actorID := middleware.GetUserID(ctx)
	item, err := buildinghandler.Instance.Create(payload, actorID)
	if err != nil {
		return ctx.Status(serviceerrors.HTTPStatus(err)).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(item))
}

// @Summary Update building
// @Tags Buildings
// @Description Partial update, only supplied fields are changed
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 buildingapimodels.BuildingUpdateData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=buildingapimodels.BuildingView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/building/{id} [put]
func (c *buildingApiController) buildingUpdate(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload buildingapimodels.BuildingUpdateData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	actorID := middleware.GetUserID(ctx)
	item, err := buildinghandler.Instance.Update(id, payload, actorID)
	if err != nil {
		return ctx.Status(serviceerrors.HTTPStatus(err)).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(item))
}

// @Summary Get building by ID
// @Tags Buildings
// @Description Get building by ID
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=buildingapimodels.BuildingView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/building/{id} [get]
func (c *buildingApiController) buildingGet(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	item, err := buildinghandler.Instance.Get(id)
	if err != nil {
		return ctx.Status(serviceerrors.HTTPStatus(err)).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(item))
}

// @Summary List buildings
// @Tags Buildings
// @Description Filtered paginated list; filter values are validated references
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   page				query		int		false	"page number"
// @Param   limit				query		int		false	"rows per page"
// @Param   region_code			query		string	false	"region filter"
// @Param   district_code		query		string	false	"district filter"
// @Param   community_code		query		string	false	"community filter"
// @Param   city_code			query		string	false	"city filter"
// @Param   city_subdivision_code	query	string	false	"city subdivision filter"
// @Param   street_code			query		string	false	"street filter"
// @Param   provider_id			query		int		false	"provider filter"
// @Param   status				query		string	false	"status filter"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]buildingapimodels.BuildingView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/building [get]
func (c *buildingApiController) buildingList(ctx *fiber.Ctx) error {
	var filter buildingapimodels.BuildingFilter
	if err := c.QueryParser(ctx, &filter); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	list, rowCount, err := buildinghandler.Instance.List(filter)
	if err != nil {
		return ctx.Status(serviceerrors.HTTPStatus(err)).JSON(apimodels.NewError(err.Error()))
	}
	page, limit := filter.GetPage()
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount, page, limit))
}

// @Summary Export buildings to xlsx
// @Tags Buildings
// @Description Export the filtered building list as an xlsx file
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/building/export [get]
func (c *buildingApiController) buildingExport(ctx *fiber.Ctx) error {
	var filter buildingapimodels.BuildingFilter
	if err := c.QueryParser(ctx, &filter); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	buffer, err := buildinghandler.Instance.ExportXls(filter)
	if err != nil {
		return ctx.Status(serviceerrors.HTTPStatus(err)).JSON(apimodels.NewError(err.Error()))
	}
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="buildings.xlsx"`)
	return ctx.Status(fiber.StatusOK).Send(buffer.Bytes())
}
