package middleware

import (
	"github.com/gofiber/fiber/v2"

	"building-registry-backend/lib/serviceerrors"
	authutils "building-registry-backend/lib/utils/auth-utils"
	"building-registry-backend/models"
	apimodels "building-registry-backend/models/api"
)

func GetUserID(ctx *fiber.Ctx) string {
	claims := authutils.GetClaims(ctx)
	if sub, exist := claims["sub"]; exist {
		if userID, ok := sub.(string); ok {
			return userID
		}
	}
	return ""
}

func GetUserRole(ctx *fiber.Ctx) models.UserRole {
	claims := authutils.GetClaims(ctx)
	if role, exist := claims["role"]; exist {
		if stringRole, ok := role.(string); ok && stringRole != "" {
			return models.UserRole(stringRole)
		}
	}
	return ""
}

// WriteRoleRequired gates mutating operations: WRITE or ADMIN.
func WriteRoleRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		if !GetUserRole(ctx).CanWrite() {
			forbidden := serviceerrors.NewForbidden(models.UserRoleWrite)
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError(forbidden.Error()))
		}
		return ctx.Next()
	}
}

func AdminRoleRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		if !GetUserRole(ctx).IsAdmin() {
			forbidden := serviceerrors.NewForbidden(models.UserRoleAdmin)
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError(forbidden.Error()))
		}
		return ctx.Next()
	}
}
