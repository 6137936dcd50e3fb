package dict

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"building-registry-backend/controllers"
	terytdictprovider "building-registry-backend/lib/dicts/teryt"
	"building-registry-backend/lib/serviceerrors"
	"building-registry-backend/middleware"
	"building-registry-backend/models"
	apimodels "building-registry-backend/models/api"
	dictapimodels "building-registry-backend/models/api/dict"
)

type terytDictApiController struct {
	controllers.BaseAPIController
}

func InitTerytDictApiRouters(app *fiber.App) {
	controller := terytDictApiController{}
	app.Route(":level", func(router fiber.Router) {
		router.Get("", controller.terytList)
		router.Get(":code", controller.terytGet)
		router.Use(middleware.WriteRoleRequired())
		router.Post("", controller.terytCreate)
		router.Put(":code", controller.terytUpdate)
		router.Delete(":code", middleware.AdminRoleRequired(), controller.terytDelete)
	})
}

func (c *terytDictApiController) getLevel(ctx *fiber.Ctx) (models.DictLevel, error) {
	level, exist := models.ParseDictLevel(ctx.Params("level"))
	if !exist {
		return "", errors.Errorf("unknown dictionary level: %v", ctx.Params("level"))
	}
	return level, nil
}

func (c *terytDictApiController) getCode(ctx *fiber.Ctx) (string, error) {
	code := ctx.Params("code")
	if code == "" {
		return "", errors.New("entry code is not specified")
	}
	return code, nil
}

// @Summary Create dictionary entry
// @Tags Dictionaries
// @Description Create entry at the given hierarchy level
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   level          		path    string  				    	true         "hierarchy level"
// @Param	body body	 dictapimodels.TerytEntryData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/{level} [post]
func (c *terytDictApiController) terytCreate(ctx *fiber.Ctx) error {
	level, err := c.getLevel(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload dictapimodels.TerytEntryData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(level); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	err = terytdictprovider.Instance.Create(level, payload)
	if err != nil {
		return ctx.Status(serviceerrors.HTTPStatus(err)).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Update dictionary entry
// @Tags Dictionaries
// @Description Update entry name or parent code
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   level          		path    string  				    	true         "hierarchy level"
// @Param   code          		path    string  				    	true         "entry code"
// @Param	body body	 dictapimodels.TerytEntryUpdateData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/{level}/{code} [put]
func (c *terytDictApiController) terytUpdate(ctx *fiber.Ctx) error {
	level, err := c.getLevel(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	code, err := c.getCode(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload dictapimodels.TerytEntryUpdateData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(level); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	err = terytdictprovider.Instance.Update(level, code, payload)
	if err != nil {
		return ctx.Status(serviceerrors.HTTPStatus(err)).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Delete dictionary entry
// @Tags Dictionaries
// @Description Delete entry; refused while referenced by child entries or buildings
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   level          		path    string  				    	true         "hierarchy level"
// @Param   code          		path    string  				    	true         "entry code"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/{level}/{code} [delete]
func (c *terytDictApiController) terytDelete(ctx *fiber.Ctx) error {
	level, err := c.getLevel(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	code, err := c.getCode(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	err = terytdictprovider.Instance.Delete(level, code)
	if err != nil {
		return ctx.Status(serviceerrors.HTTPStatus(err)).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Get dictionary entry
// @Tags Dictionaries
// @Description Get entry by code
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   level          		path    string  				    	true         "hierarchy level"
// @Param   code          		path    string  				    	true         "entry code"
// @Success 200 {object} apimodels.Response{data=dictapimodels.TerytEntryView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/{level}/{code} [get]
func (c *terytDictApiController) terytGet(ctx *fiber.Ctx) error {
	level, err := c.getLevel(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	code, err := c.getCode(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	item, err := terytdictprovider.Instance.Get(level, code)
	if err != nil {
		return ctx.Status(serviceerrors.HTTPStatus(err)).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(item))
}

// @Summary List dictionary entries
// @Tags Dictionaries
// @Description Paginated list ordered by name, with parent and name filters
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   level          		path    string  				    	true         "hierarchy level"
// @Param   page				query		int		false	"page number"
// @Param   limit				query		int		false	"rows per page"
// @Param   parent_code			query		string	false	"parent code filter"
// @Param   search				query		string	false	"name search"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]dictapimodels.TerytEntryView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/{level} [get]
func (c *terytDictApiController) terytList(ctx *fiber.Ctx) error {
	level, err := c.getLevel(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var filter dictapimodels.TerytEntryFilter
	if err = c.QueryParser(ctx, &filter); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	list, rowCount, err := terytdictprovider.Instance.List(level, filter)
	if err != nil {
		return ctx.Status(serviceerrors.HTTPStatus(err)).JSON(apimodels.NewError(err.Error()))
	}
	page, limit := filter.GetPage()
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount, page, limit))
}
