package api

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/pregcare/internal/services"
)

var errInvalidPayload = errors.New("invalid payload")

func newValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = validate.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := services.ParseISODate(fl.Field().String())
		return err == nil
	})
	return validate
}

// bindJSON parses the request body into payload and validates it.
func (handler *Handler) bindJSON(c *fiber.Ctx, payload any) error {
	if err := c.BodyParser(payload); err != nil {
		return errInvalidPayload
	}
	if err := handler.validate.Struct(payload); err != nil {
		return validationError(err)
	}
	return nil
}

func validationError(err error) error {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return errInvalidPayload
	}
	messages := make([]string, 0, len(fieldErrors))
	for _, fieldError := range fieldErrors {
		messages = append(messages, fmt.Sprintf("%s failed %s", fieldError.Field(), fieldError.Tag()))
	}
	return errors.New(strings.Join(messages, "; "))
}
