package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/apex-sayim/internal/application/dto"
	"github.com/jhoicas/apex-sayim/internal/domain"
	"github.com/jhoicas/apex-sayim/internal/domain/stocktake"
)

// Códigos de error expuestos a los clientes móvil y escritorio.
const (
	CodeJSONError         = "JSON_ERROR"
	CodeNullRequest       = "NULL_REQUEST"
	CodeEmptyList         = "BOS_LISTE"
	CodeInvalidData       = "GECERSIZ_VERI"
	CodeSaveFailed        = "KAYIT_HATASI"
	CodeServerError       = "SUNUCU_HATASI"
	CodeInvalidParameter  = "GECERSIZ_PARAMETRE"
	CodeProductNotFound   = "URUN_BULUNAMADI"
	CodeInvalidLimit      = "GECERSIZ_LIMIT"
	CodeInvalidDate       = "GECERSIZ_TARIH"
	msgInternalServerFail = "İç sunucu hatası oluştu"
)

func validationBody(code string, ve *stocktake.ValidationError) dto.ErrorResponse {
	return dto.ErrorResponse{Code: code, Message: ve.Error(), Reason: string(ve.Reason), Line: ve.Line}
}

// writeRecordError traduce el error de Record a respuesta HTTP.
func writeRecordError(c *fiber.Ctx, err error) error {
	var ve *stocktake.ValidationError
	switch {
	case errors.As(err, &ve):
		code := CodeInvalidData
		if ve.Reason == stocktake.ReasonEmptyLineSet {
			code = CodeEmptyList
		}
		return c.Status(fiber.StatusBadRequest).JSON(validationBody(code, ve))
	case errors.Is(err, domain.ErrStorage):
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: CodeSaveFailed, Message: "Sayım kaydedilemedi"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: CodeServerError, Message: msgInternalServerFail})
	}
}

// writeQueryError errores de consultas: validación -> 400 con el código dado, resto -> 500.
func writeQueryError(c *fiber.Ctx, err error, validationCode string) error {
	var ve *stocktake.ValidationError
	if errors.As(err, &ve) {
		return c.Status(fiber.StatusBadRequest).JSON(validationBody(validationCode, ve))
	}
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: CodeProductNotFound, Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: CodeServerError, Message: msgInternalServerFail})
}
