package serviceerrors

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"building-registry-backend/models"
)

// Kind is the machine-readable classification carried by every error the
// service layer returns. Controllers map it to an HTTP status.
type Kind string

const (
	KindInvalidInput     Kind = "INVALID_INPUT"
	KindUnknownReference Kind = "UNKNOWN_REFERENCE"
	KindNotFound         Kind = "NOT_FOUND"
	KindDuplicate        Kind = "DUPLICATE"
	KindAlreadyExists    Kind = "ALREADY_EXISTS"
	KindPageOutOfRange   Kind = "PAGE_OUT_OF_RANGE"
	KindForbidden        Kind = "FORBIDDEN"
	KindStorageFailure   Kind = "STORAGE_FAILURE"
)

type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func NewInvalidInput(field, reason string) error {
	return &Error{
		Kind:    KindInvalidInput,
		Message: fmt.Sprintf("invalid value of %s: %s", field, reason),
	}
}

func NewUnknownReference(level models.DictLevel, code string) error {
	return &Error{
		Kind:    KindUnknownReference,
		Message: fmt.Sprintf("unknown %s code: %s", level.ToHuman(), code),
	}
}

func NewUnknownProviderReference(providerID uint) error {
	return &Error{
		Kind:    KindUnknownReference,
		Message: fmt.Sprintf("unknown provider id: %d", providerID),
	}
}

func NewNotFound(entity, id string) error {
	return &Error{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found: %s", entity, id),
	}
}

func NewDuplicateBuilding() error {
	return &Error{
		Kind:    KindDuplicate,
		Message: "an active building already occupies this address",
	}
}

func NewAlreadyExists(entity, key string) error {
	return &Error{
		Kind:    KindAlreadyExists,
		Message: fmt.Sprintf("%s already exists: %s", entity, key),
	}
}

func NewPageOutOfRange() error {
	return &Error{
		Kind:    KindPageOutOfRange,
		Message: "requested page is past the last result",
	}
}

func NewForbidden(required models.UserRole) error {
	return &Error{
		Kind:    KindForbidden,
		Message: fmt.Sprintf("operation requires the %s role", required.ToHuman()),
	}
}

func NewReferenced(entity, referencedBy string) error {
	return &Error{
		Kind:    KindAlreadyExists,
		Message: fmt.Sprintf("%s is still referenced by %s", entity, referencedBy),
	}
}

// NewStorage hides the storage detail behind a generic message; the
// original error stays attached for logging.
func NewStorage(cause error, operation string) error {
	return &Error{
		Kind:    KindStorageFailure,
		Message: fmt.Sprintf("storage failure during %s", operation),
		cause:   cause,
	}
}

func KindOf(err error) Kind {
	var serviceErr *Error
	if errors.As(err, &serviceErr) {
		return serviceErr.Kind
	}
	return KindStorageFailure
}

var kindStatusMap = map[Kind]int{
	KindInvalidInput:     fiber.StatusBadRequest,
	KindUnknownReference: fiber.StatusNotFound,
	KindNotFound:         fiber.StatusNotFound,
	KindDuplicate:        fiber.StatusConflict,
	KindAlreadyExists:    fiber.StatusConflict,
	KindPageOutOfRange:   fiber.StatusNotFound,
	KindForbidden:        fiber.StatusForbidden,
	KindStorageFailure:   fiber.StatusInternalServerError,
}

func HTTPStatus(err error) int {
	if status, exist := kindStatusMap[KindOf(err)]; exist {
		return status
	}
	return fiber.StatusInternalServerError
}
