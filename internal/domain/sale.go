package domain

import (
	"math"
	"slices"
	"time"
)

// AllowedDiscounts são os percentuais de desconto aceitos no momento da venda
var AllowedDiscounts = []int{0, 5, 10, 15, 20}

// SaleRecord representa uma venda desnormalizada (venda + vendedor + cliente + produto + categoria + região)
type SaleRecord struct {
	Date         time.Time `json:"date"`
	Quantity     int       `json:"quantity"`
	UnitPrice    float64   `json:"unit_price"` // Preço final, já com o desconto aplicado
	DiscountPct  int       `json:"discount_pct"`
	UnitCost     float64   `json:"unit_cost"`
	ListPrice    float64   `json:"list_price"`
	SellerID     int64     `json:"seller_id"`
	SellerName   string    `json:"seller_name"`
	CustomerID   int64     `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
	ProductID    int64     `json:"product_id"`
	Product      string    `json:"product"`
	Category     string    `json:"category"`
	Region       string    `json:"region"`
}

// TotalRevenue retorna quantidade x preço final
func (s *SaleRecord) TotalRevenue() float64 {
	return float64(s.Quantity) * s.UnitPrice
}

// TotalCost retorna quantidade x custo unitário
func (s *SaleRecord) TotalCost() float64 {
	return float64(s.Quantity) * s.UnitCost
}

// Profit retorna receita - custo
func (s *SaleRecord) Profit() float64 {
	return s.TotalRevenue() - s.TotalCost()
}

// Period retorna a chave (ano, mês) da venda
func (s *SaleRecord) Period() Period {
	return PeriodOf(s.Date)
}

// IsValid verifica as invariantes básicas do registro
func (s *SaleRecord) IsValid() bool {
	return s.Quantity > 0 && slices.Contains(AllowedDiscounts, s.DiscountPct)
}

// PriceMatchesDiscount indica se o preço gravado bate com preço de lista x (1 - desconto).
// O preço gravado é sempre o valor usado nos cálculos; isso só sinaliza divergências.
func (s *SaleRecord) PriceMatchesDiscount() bool {
	if s.ListPrice == 0 {
		return true
	}

	expected := s.ListPrice * (1 - float64(s.DiscountPct)/100)
	return math.Abs(expected-s.UnitPrice) <= 0.01
}

// SalesFilters filtros opcionais para a consulta de vendas
type SalesFilters struct {
	StartDate *time.Time // inclusivo
	EndDate   *time.Time // exclusivo
	Year      *int
}
