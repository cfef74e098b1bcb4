// Package analytics provides read-only rollups over completed order
// history. Revenue and unit totals exclude cancelled orders; the status
// distribution counts every order.
package analytics

import "time"

// Window is a reporting period selector.
type Window string

const (
	WindowWeek  Window = "week"
	WindowMonth Window = "month"
	WindowYear  Window = "year"
	WindowAll   Window = "all"
)

// ParseWindow maps a query value to a Window, defaulting to month.
func ParseWindow(raw string) Window {
	switch Window(raw) {
	case WindowWeek, WindowMonth, WindowYear, WindowAll:
		return Window(raw)
	default:
		return WindowMonth
	}
}

// Start returns the inclusive lower bound of the window relative to now.
func (w Window) Start(now time.Time) time.Time {
	switch w {
	case WindowWeek:
		return now.AddDate(0, 0, -7)
	case WindowMonth:
		return now.AddDate(0, 0, -30)
	case WindowYear:
		return now.AddDate(0, 0, -365)
	default:
		return time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	}
}

// Label is the human-readable name of the window.
func (w Window) Label() string {
	switch w {
	case WindowWeek:
		return "Last 7 Days"
	case WindowMonth:
		return "Last 30 Days"
	case WindowYear:
		return "Last 365 Days"
	default:
		return "All Time"
	}
}

type StatusCount struct {
	Status  string  `json:"status"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

type ProductSales struct {
	ProductName string  `json:"productName"`
	UnitsSold   int     `json:"unitsSold"`
	Revenue     float64 `json:"revenue"`
}

type CategorySales struct {
	Category string  `json:"category"`
	Revenue  float64 `json:"revenue"`
}

type DailyPoint struct {
	Date    string  `json:"date"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

type RecentOrder struct {
	OrderID   int       `json:"orderId"`
	UserID    int       `json:"userId"`
	Amount    float64   `json:"amount"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// Report is the full analytics payload for one window.
type Report struct {
	Period          Window          `json:"period"`
	PeriodLabel     string          `json:"periodLabel"`
	TotalOrders     int             `json:"totalOrders"`
	TotalRevenue    float64         `json:"totalRevenue"`
	UnitsSold       int             `json:"unitsSold"`
	AvgOrderValue   float64         `json:"avgOrderValue"`
	StatusCounts    []StatusCount   `json:"statusCounts"`
	TopProducts     []ProductSales  `json:"topProducts"`
	CategoryRevenue []CategorySales `json:"categoryRevenue"`
	DailySales      []DailyPoint    `json:"dailySales"`
	RecentOrders    []RecentOrder   `json:"recentOrders"`
}
