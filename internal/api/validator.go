package api

import (
	"github.com/novastellaa/BE-Infokus-Studio/internal/api/validation"
)

// CustomValidator はEcho用のカスタムバリデーター
type CustomValidator = validation.CustomValidator

// NewValidator は新しいバリデーターを作成する
func NewValidator() *CustomValidator {
	return validation.NewValidator()
}
