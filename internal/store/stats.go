package store

import (
	"context"
	"fmt"
)

// FinancialKPIs sums box-office revenue and production costs over confirmed
// concerts. NetProfit is revenue minus costs.
type FinancialKPIs struct {
	TotalRevenue int64 `json:"total_revenue"`
	TotalCosts   int64 `json:"total_costs"`
	NetProfit    int64 `json:"net_profit"`
}

// AttendanceKPIs sums projected and actual attendance over confirmed
// concerts. CompletionRate is actual/projected as a percentage, 0 when
// nothing was projected.
type AttendanceKPIs struct {
	TotalProjected int64   `json:"total_projected_attendance"`
	TotalActual    int64   `json:"total_actual_attendance"`
	CompletionRate float64 `json:"completion_rate"`
}

// ArtistPopularity is one entry of the top-artists ranking.
type ArtistPopularity struct {
	Name       string `json:"name"`
	Popularity int    `json:"popularity"`
}

// CityProfit is one entry of the per-city profitability ranking.
type CityProfit struct {
	City      string `json:"city"`
	NetProfit int64  `json:"net_profit"`
}

// Statistics is the consolidated dashboard payload.
type Statistics struct {
	Financial         FinancialKPIs      `json:"financial_kpis"`
	Attendance        AttendanceKPIs     `json:"attendance_kpis"`
	TopArtists        []ArtistPopularity `json:"top_artists"`
	CityProfitability []CityProfit       `json:"city_profitability"`
}

// Statistics computes the dashboard aggregates in four grouped queries.
// The queries run sequentially on the same handle; reads may observe
// different snapshots, which is an accepted relaxation for this dashboard.
func (s *Store) Statistics(ctx context.Context) (*Statistics, error) {
	stats := &Statistics{
		TopArtists:        []ArtistPopularity{},
		CityProfitability: []CityProfit{},
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT name, popularity
		FROM artists
		ORDER BY popularity DESC
		LIMIT 10
	`)
	if err != nil {
		return nil, fmt.Errorf("select top artists: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var a ArtistPopularity
		if err := rows.Scan(&a.Name, &a.Popularity); err != nil {
			return nil, fmt.Errorf("scan top artist: %w", err)
		}
		stats.TopArtists = append(stats.TopArtists, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate top artists: %w", err)
	}

	if err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(box_office_revenue), 0), COALESCE(SUM(production_costs), 0)
		FROM concerts
		WHERE status = $1
	`, StatusConfirmed).Scan(&stats.Financial.TotalRevenue, &stats.Financial.TotalCosts); err != nil {
		return nil, fmt.Errorf("sum financials: %w", err)
	}
	stats.Financial.NetProfit = stats.Financial.TotalRevenue - stats.Financial.TotalCosts

	if err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(projected_attendance), 0), COALESCE(SUM(actual_attendance), 0)
		FROM concerts
		WHERE status = $1
	`, StatusConfirmed).Scan(&stats.Attendance.TotalProjected, &stats.Attendance.TotalActual); err != nil {
		return nil, fmt.Errorf("sum attendance: %w", err)
	}
	if stats.Attendance.TotalProjected > 0 {
		stats.Attendance.CompletionRate = float64(stats.Attendance.TotalActual) / float64(stats.Attendance.TotalProjected) * 100
	}

	cityRows, err := s.db.QueryContext(ctx, `
		SELECT city, COALESCE(SUM(box_office_revenue), 0) - COALESCE(SUM(production_costs), 0) AS net_profit
		FROM concerts
		WHERE status = $1
		GROUP BY city
		ORDER BY net_profit DESC
		LIMIT 5
	`, StatusConfirmed)
	if err != nil {
		return nil, fmt.Errorf("select city profitability: %w", err)
	}
	defer cityRows.Close()
	for cityRows.Next() {
		var c CityProfit
		if err := cityRows.Scan(&c.City, &c.NetProfit); err != nil {
			return nil, fmt.Errorf("scan city profitability: %w", err)
		}
		stats.CityProfitability = append(stats.CityProfitability, c)
	}
	if err := cityRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate city profitability: %w", err)
	}

	return stats, nil
}
