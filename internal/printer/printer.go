// Package printer formata os relatórios como tabelas de console
package printer

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/vfg2006/sales-analytics/internal/domain"
	"github.com/vfg2006/sales-analytics/pkg/utils"
)

type Printer struct {
	out io.Writer
}

func New(out io.Writer) *Printer {
	return &Printer{out: out}
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", utils.RoundWithTwoDecimalPlace(v))
}

func pct(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

func (p *Printer) title(text string) {
	fmt.Fprintf(p.out, "\n%s\n%s\n", text, strings.Repeat("=", len([]rune(text))))
}

// table escreve linhas separadas por tab com colunas alinhadas
func (p *Printer) table(headers []string, rows [][]string) {
	tw := tabwriter.NewWriter(p.out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, strings.Join(headers, "\t")+"\t")
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t")+"\t")
	}
	tw.Flush()
}

// Load resumo da carga: registros, período, receita e lucro
func (p *Printer) Load(totals domain.Totals) {
	p.title("Carga de vendas")
	p.table([]string{"Registros", "Primeira venda", "Última venda", "Receita", "Lucro"}, [][]string{{
		fmt.Sprint(totals.Count),
		utils.FormatDate(totals.FirstDate),
		utils.FormatDate(totals.LastDate),
		money(totals.Revenue),
		money(totals.Profit),
	}})
}

func (p *Printer) Summary(s *domain.SalesSummary) {
	p.title("Resumo geral")
	t := s.Totals
	p.table([]string{"Receita", "Custo", "Lucro", "Margem", "Transações", "Ticket médio"}, [][]string{{
		money(t.Revenue), money(t.Cost), money(t.Profit), pct(t.MarginPct), fmt.Sprint(t.Count), money(t.AverageTicket),
	}})

	if s.InvalidRecords > 0 {
		fmt.Fprintf(p.out, "Atenção: %d vendas com quantidade ou desconto inválidos\n", s.InvalidRecords)
	}
	if s.PriceMismatches > 0 {
		fmt.Fprintf(p.out, "Atenção: %d vendas com preço divergente do desconto registrado\n", s.PriceMismatches)
	}

	p.title("Vendas por categoria")
	p.buckets("Categoria", s.ByCategory)

	p.title("Vendas por região")
	p.buckets("Região", s.ByRegion)

	p.title("Vendas por ano")
	p.buckets("Ano", s.ByYear)
}

func (p *Printer) buckets(label string, result domain.AggregateResult) {
	rows := make([][]string, 0, result.Len())
	for _, b := range result.Buckets {
		margin := pct(b.MarginPct)
		if !b.HasRevenue() {
			margin = "-"
		}
		rows = append(rows, []string{
			utils.JoinKey(b.Key), money(b.Revenue), money(b.Profit), margin, fmt.Sprint(b.Count), money(b.AverageTicket),
		})
	}
	p.table([]string{label, "Receita", "Lucro", "Margem", "Transações", "Ticket médio"}, rows)
}

// Aggregate agrupamento livre pelas dimensões do resultado
func (p *Printer) Aggregate(result domain.AggregateResult) {
	labels := make([]string, len(result.Dimensions))
	for i, d := range result.Dimensions {
		labels[i] = string(d)
	}

	p.title("Agregação por " + strings.Join(labels, ", "))
	p.buckets(strings.Join(labels, " / "), result)
}

func (p *Printer) Deep(d *domain.DeepAnalysis) {
	p.title("Receita por região e categoria")
	headers := append([]string{"Região"}, d.RegionCategory.Columns...)
	rows := make([][]string, 0, len(d.RegionCategory.Rows))
	for i, region := range d.RegionCategory.Rows {
		row := []string{region}
		for _, v := range d.RegionCategory.Values[i] {
			row = append(row, money(v))
		}
		rows = append(rows, row)
	}
	p.table(headers, rows)

	p.title(fmt.Sprintf("Vendas mensais de %d", d.Monthly.Year))
	rows = make([][]string, 0, len(d.Monthly.Series))
	for _, point := range d.Monthly.Series {
		rows = append(rows, []string{point.Label, money(point.Value)})
	}
	p.table([]string{"Mês", "Receita"}, rows)
	if d.Monthly.NonDecreasing {
		fmt.Fprintln(p.out, "As vendas cresceram ou se mantiveram mês a mês")
	} else {
		fmt.Fprintln(p.out, "As vendas não cresceram de forma constante")
	}

	p.title("Tendência mensal")
	rows = make([][]string, 0, len(d.Trend))
	for i, point := range d.Trend {
		rows = append(rows, []string{point.Label, money(point.Value), money(d.TrendLine.At(i))})
	}
	p.table([]string{"Período", "Receita", "Tendência"}, rows)
	fmt.Fprintf(p.out, "Inclinação: %s por mês\n", money(d.TrendLine.Slope))

	p.title("Margem por categoria")
	p.buckets("Categoria", d.MarginByCategory)

	p.title("Ticket médio por região")
	p.buckets("Região", d.TicketByRegion)

	p.title("Clientes por região")
	rows = make([][]string, 0, len(d.CustomersByRegion))
	for _, c := range d.CustomersByRegion {
		rows = append(rows, []string{c.Region, fmt.Sprint(c.Total)})
	}
	p.table([]string{"Região", "Clientes"}, rows)

	p.Comparison(d.Comparison)
}

func (p *Printer) Comparison(c domain.YearComparison) {
	p.title(fmt.Sprintf("%d comparado à média histórica", c.Year))
	rows := make([][]string, 0, len(c.Rows))
	for _, r := range c.Rows {
		rows = append(rows, []string{r.MonthName, money(r.YearValue), money(r.HistoricalAverage), money(r.Difference)})
	}
	p.table([]string{"Mês", fmt.Sprint(c.Year), "Média", "Diferença"}, rows)
	fmt.Fprintf(p.out, "Média mensal histórica: %s\n", money(c.OverallAverage))
}

func (p *Printer) Forecast(f *domain.Forecast) {
	p.title(fmt.Sprintf("Previsão de vendas %d", f.TargetYear))
	rows := make([][]string, 0, len(f.Projections))
	for _, pr := range f.Projections {
		growth := pct(pr.GrowthPct)
		if !pr.HasHistory {
			growth = "sem histórico"
		}
		rows = append(rows, []string{
			pr.MonthName,
			money(pr.HistoricalAverage),
			fmt.Sprintf("%.2f", pr.SeasonalFactor),
			money(pr.ProjectedValue),
			growth,
			money(f.ReferenceActuals[pr.Month-1]),
		})
	}
	p.table([]string{"Mês", "Média histórica", "Fator", "Projeção", "Crescimento", fmt.Sprintf("Real %d", f.ReferenceYear)}, rows)

	fmt.Fprintf(p.out, "Total projetado: %s | Média histórica: %s | Crescimento: %s\n",
		money(f.TotalProjected), money(f.TotalHistorical), pct(f.OverallGrowthPct))
	fmt.Fprintf(p.out, "Multiplicador: %.2f | Fatores: %s | Anos usados: %v\n",
		f.GrowthMultiplier, f.FactorsVersion, f.YearsUsed)

	if len(f.MonthsWithoutData) > 0 {
		fmt.Fprintf(p.out, "Meses sem histórico: %v\n", f.MonthsWithoutData)
	}
}
