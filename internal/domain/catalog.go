package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Region struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Product struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	CategoryID int64           `json:"category_id"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	ListPrice  decimal.Decimal `json:"list_price"`
}

type Customer struct {
	ID           int64     `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	RegionID     int64     `json:"region_id"`
	RegisteredAt time.Time `json:"registered_at"`
}

type Seller struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	RegionID  int64     `json:"region_id"`
	HiredAt   time.Time `json:"hired_at"`
}

// Sale linha gravada na tabela de vendas; UnitPrice já tem o desconto aplicado
type Sale struct {
	ID          int64           `json:"id"`
	Date        time.Time       `json:"date"`
	CustomerID  int64           `json:"customer_id"`
	SellerID    int64           `json:"seller_id"`
	ProductID   int64           `json:"product_id"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	DiscountPct int             `json:"discount_pct"`
}

// Dataset conjunto completo de dados sintéticos para carga
type Dataset struct {
	Regions    []Region
	Categories []Category
	Products   []Product
	Customers  []Customer
	Sellers    []Seller
	Sales      []Sale
}
