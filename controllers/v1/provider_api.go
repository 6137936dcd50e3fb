package apiv1

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"building-registry-backend/controllers"
	providerhandler "building-registry-backend/lib/provider"
	"building-registry-backend/lib/serviceerrors"
	"building-registry-backend/middleware"
	apimodels "building-registry-backend/models/api"
	providerapimodels "building-registry-backend/models/api/provider"
)

type providerApiController struct {
	controllers.BaseAPIController
}

func InitProviderApiRouters(app *fiber.App) {
	controller := providerApiController{}
	app.Route("provider", func(router fiber.Router) {
		router.Get("", controller.providerList)
		router.Get(":id", controller.providerGet)
		router.Use(middleware.WriteRoleRequired())
		router.Post("", controller.providerCreate)
		router.Put(":id", controller.providerUpdate)
		router.Delete(":id", controller.providerDelete)
	})
}

func (c *providerApiController) getProviderID(ctx *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(ctx.Params("id"), 10, 32)
	if err != nil {
		return 0, errors.New("record id is not a number")
	}
	return uint(id), nil
}

// @Summary Create provider
// @Tags Providers
// @Description Create provider
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 providerapimodels.ProviderData	true	"request body"
// @Success 200 {object} apimodels.Response{data=int}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/provider [post]
func (c *providerApiController) providerCreate(ctx *fiber.Ctx) error {
	var payload providerapimodels.ProviderData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	id, err := providerhandler.Instance.Create(payload)
	if err != nil {
		return ctx.Status(serviceerrors.HTTPStatus(err)).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Update provider
// @Tags Providers
// @Description Update provider
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 providerapimodels.ProviderData	true	"request body"
// @Param   id          		path    int  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/provider/{id} [put]
func (c *providerApiController) providerUpdate(ctx *fiber.Ctx) error {
	id, err := c.getProviderID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload providerapimodels.ProviderData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	err = providerhandler.Instance.Update(id, payload)
	if err != nil {
		return ctx.Status(serviceerrors.HTTPStatus(err)).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Delete provider
// @Tags Providers
// @Description Delete provider; refused while referenced by buildings
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    int  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/provider/{id} [delete]
func (c *providerApiController) providerDelete(ctx *fiber.Ctx) error {
	id, err := c.getProviderID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	err = providerhandler.Instance.Delete(id)
	if err != nil {
		return ctx.Status(serviceerrors.HTTPStatus(err)).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Get provider by ID
// @Tags Providers
// @Description Get provider by ID
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    int  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=providerapimodels.ProviderView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/provider/{id} [get]
func (c *providerApiController) providerGet(ctx *fiber.Ctx) error {
	id, err := c.getProviderID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	item, err := providerhandler.Instance.Get(id)
	if err != nil {
		return ctx.Status(serviceerrors.HTTPStatus(err)).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(item))
}

// @Summary List providers
// @Tags Providers
// @Description Paginated provider list with name search
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   page				query		int		false	"page number"
// @Param   limit				query		int		false	"rows per page"
// @Param   search				query		string	false	"name search"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]providerapimodels.ProviderView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/provider [get]
func (c *providerApiController) providerList(ctx *fiber.Ctx) error {
	var filter providerapimodels.ProviderFilter
	if err := c.QueryParser(ctx, &filter); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	list, rowCount, err := providerhandler.Instance.List(filter)
	if err != nil {
		return ctx.Status(serviceerrors.HTTPStatus(err)).JSON(apimodels.NewError(err.Error()))
	}
	page, limit := filter.GetPage()
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount, page, limit))
}
