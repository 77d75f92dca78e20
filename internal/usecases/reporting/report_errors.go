package reporting

import (
	"errors"
	"fmt"
)

// Erros específicos para a geração de relatórios
var (
	// Erros de acesso a dados
	ErrDataUnavailable = errors.New("sales data unavailable")

	// Erros de parâmetros
	ErrInvalidYear = errors.New("invalid year")
)

// Stage etapa do pipeline onde o erro ocorreu
type Stage string

const (
	StageFetch     Stage = "fetch"
	StageAggregate Stage = "aggregate"
	StageForecast  Stage = "forecast"
)

// Códigos usados pela API
const (
	CodeDataUnavailable = "DATA_UNAVAILABLE"
	CodeInvalidRequest  = "INVALID_REQUEST"
	CodeReportFailed    = "REPORT_FAILED"
)

// ReportError é um erro com a etapa e o código para a API
type ReportError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Stage   Stage  // Etapa do pipeline
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *ReportError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s [%s]: %s", e.Err.Error(), e.Stage, e.Details)
	}
	return fmt.Sprintf("%s [%s]", e.Err.Error(), e.Stage)
}

// Unwrap retorna o erro subjacente
func (e *ReportError) Unwrap() error {
	return e.Err
}

// NewReportError cria um novo ReportError
func NewReportError(err error, code string, stage Stage, details string) *ReportError {
	return &ReportError{
		Err:     err,
		Code:    code,
		Stage:   stage,
		Details: details,
	}
}

// dataUnavailable mantém ErrDataUnavailable e a causa acessíveis via errors.Is
func dataUnavailable(cause error) *ReportError {
	return NewReportError(fmt.Errorf("%w: %w", ErrDataUnavailable, cause), CodeDataUnavailable, StageFetch, "")
}
