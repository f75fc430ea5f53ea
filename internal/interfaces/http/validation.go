package http

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/moderna-shop-api/internal/domain"
)

var validate = validator.New()

// parseBody decodifica el JSON y valida los tags `validate`. Ambos fallos son ErrInvalidInput.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return badInput(c, err, msgInvalidBody)
	}
	return validateStruct(out)
}

const msgInvalidBody = "cuerpo JSON inválido"

// badInput registra el error del decodificador y devuelve al cliente solo msg.
func badInput(c *fiber.Ctx, err error, msg string) error {
	log := requestLogger(c)
	log.Debug().Err(err).Str("path", c.Path()).Msg("entrada no decodificable")
	return domain.Invalid("%s", msg)
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.Invalid("no se pudo validar la entrada")
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, describeField(fe))
	}
	return domain.Invalid("%s", strings.Join(parts, ", "))
}

func describeField(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " es requerido"
	case "email":
		return fe.Field() + " no es un correo válido"
	case "gt", "min":
		return fmt.Sprintf("%s debe ser mayor o igual a %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s excede el máximo %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s debe ser uno de [%s]", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s inválido (%s)", fe.Field(), fe.Tag())
	}
}

// paramID lee :id como entero positivo.
func paramID(c *fiber.Ctx) (int64, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, domain.Invalid("id inválido: %q", c.Params("id"))
	}
	return int64(id), nil
}
