package config

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"github.com/vfg2006/sales-analytics/internal/domain"
)

var ErrInvalidSeasonalFactors = errors.New("invalid seasonal factors file")

// seasonalFactorsFile formato do arquivo (yaml ou json). factors aceita uma lista
// com os 12 meses em ordem ou um mapa mês -> fator:
//
//	version: black-friday-2025
//	factors: [0.90, 1.20, 1.05, 1.10, 1.25, 0.95, 1.00, 1.15, 1.05, 1.20, 1.30, 1.40]
//
//	version: black-friday-2025
//	factors:
//	  1: 0.90
//	  2: 1.20
//	  ...
//	  12: 1.40
type seasonalFactorsFile struct {
	Version string `mapstructure:"version"`
	Factors any    `mapstructure:"factors"`
}

// LoadSeasonalFactors lê uma tabela de fatores sazonais versionada
func LoadSeasonalFactors(path string) (domain.SeasonalFactors, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return domain.SeasonalFactors{}, fmt.Errorf("%w: %v", ErrInvalidSeasonalFactors, err)
	}

	file := seasonalFactorsFile{}
	if err := v.Unmarshal(&file); err != nil {
		return domain.SeasonalFactors{}, fmt.Errorf("%w: %v", ErrInvalidSeasonalFactors, err)
	}

	if file.Version == "" {
		return domain.SeasonalFactors{}, fmt.Errorf("%w: versão obrigatória", ErrInvalidSeasonalFactors)
	}

	values, err := decodeFactors(file.Factors)
	if err != nil {
		return domain.SeasonalFactors{}, fmt.Errorf("%w: %v", ErrInvalidSeasonalFactors, err)
	}

	factors := domain.SeasonalFactors{Version: file.Version, Factors: values}
	if err := factors.Validate(); err != nil {
		return domain.SeasonalFactors{}, fmt.Errorf("%w: %v", ErrInvalidSeasonalFactors, err)
	}

	return factors, nil
}

func decodeFactors(raw any) ([12]float64, error) {
	var values [12]float64

	switch raw.(type) {
	case []any:
		list := make([]float64, 0)
		if err := mapstructure.Decode(raw, &list); err != nil {
			return values, err
		}
		if len(list) != 12 {
			return values, fmt.Errorf("esperado 12 fatores, recebido %d", len(list))
		}
		copy(values[:], list)

	case map[string]any:
		byMonth := make(map[string]float64)
		if err := mapstructure.Decode(raw, &byMonth); err != nil {
			return values, err
		}

		seen := make(map[int]bool, len(byMonth))
		for key, factor := range byMonth {
			month, err := strconv.Atoi(key)
			if err != nil || month < 1 || month > 12 {
				return values, fmt.Errorf("mês inválido %q", key)
			}
			values[month-1] = factor
			seen[month] = true
		}
		if len(seen) != 12 {
			return values, fmt.Errorf("esperado 12 meses, recebido %d", len(seen))
		}

	default:
		return values, errors.New("factors deve ser uma lista ou um mapa mês -> fator")
	}

	return values, nil
}
