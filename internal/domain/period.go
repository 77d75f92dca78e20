package domain

import (
	"fmt"
	"time"
)

const periodLayout = "2006-01"

// MonthNames abreviações usadas nos relatórios e gráficos
var MonthNames = [12]string{"Jan", "Fev", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez"}

// Period é a chave (ano, mês) de uma venda
type Period struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: int(t.Month())}
}

// ParsePeriod converte um token no formato yyyy-mm
func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse(periodLayout, s)
	if err != nil {
		return Period{}, fmt.Errorf("período inválido %q: %w", s, err)
	}
	return PeriodOf(t), nil
}

// String retorna o token yyyy-mm, cuja ordem lexical é cronológica
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

func (p Period) Before(other Period) bool {
	if p.Year != other.Year {
		return p.Year < other.Year
	}
	return p.Month < other.Month
}

// MonthName retorna a abreviação do mês (1-12)
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return MonthNames[month-1]
}
