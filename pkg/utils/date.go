package utils

import "time"

const DateLayout = "2006-01-02"

// ParseDate converte YYYY-MM-DD; string vazia retorna nil
func ParseDate(dateStr string) (*time.Time, error) {
	if dateStr == "" {
		return nil, nil
	}

	date, err := time.Parse(DateLayout, dateStr)
	if err != nil {
		return nil, err
	}

	return &date, nil
}

// ParseEndDate converte a data final inclusiva no limite exclusivo do dia seguinte
func ParseEndDate(dateStr string) (*time.Time, error) {
	date, err := ParseDate(dateStr)
	if err != nil || date == nil {
		return date, err
	}

	next := date.AddDate(0, 0, 1)
	return &next, nil
}

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(DateLayout)
}
