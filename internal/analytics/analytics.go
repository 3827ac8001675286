// Package analytics computes aggregate statistics over the filtered
// transaction set. Summarize is a pure function: no side effects, and the
// same input always yields the same Summary. Every ordering is an explicit
// sort; nothing depends on map iteration order.
package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/saleslens-dev/saleslens/internal/model"
)

// DefaultTopN is the top-product/top-customer list length.
const DefaultTopN = 5

// Options configures the aggregation.
type Options struct {
	// TopN caps the top-product and top-customer lists. Zero means DefaultTopN.
	TopN int
	// LowRevenue is the absolute revenue threshold: products whose total
	// revenue over the filtered set is strictly below it are reported as
	// low performers.
	LowRevenue decimal.Decimal
}

// RegionStat aggregates one region's sales.
type RegionStat struct {
	Region  string
	Revenue decimal.Decimal
	Count   int
	Share   decimal.Decimal // percent of total revenue, 2dp
}

// ProductStat aggregates one product's sales.
type ProductStat struct {
	ProductID   string
	ProductName string
	Quantity    int
	Revenue     decimal.Decimal
}

// CustomerStat aggregates one customer's purchases.
type CustomerStat struct {
	CustomerID string
	Revenue    decimal.Decimal
	Purchases  int
	AvgOrder   decimal.Decimal // revenue / purchases, 2dp
	Products   int             // distinct products bought
}

// DayStat aggregates one calendar day's sales.
type DayStat struct {
	Date      time.Time
	Revenue   decimal.Decimal
	Count     int
	Customers int // unique customers that day
}

// Summary is the full analytics output for one run. An empty filtered set
// produces a Summary with zero revenue and empty slices, not an error.
type Summary struct {
	TotalRevenue  decimal.Decimal
	Regions       []RegionStat // descending revenue, ties ascending label
	TopProducts   []ProductStat
	TopCustomers  []CustomerStat
	Daily         []DayStat // chronological
	LowPerformers []ProductStat
}

// PeakDay returns the day with the highest revenue, or false when the
// summary is empty.
func (s Summary) PeakDay() (DayStat, bool) {
	if len(s.Daily) == 0 {
		return DayStat{}, false
	}
	peak := s.Daily[0]
	for _, d := range s.Daily[1:] {
		if d.Revenue.GreaterThan(peak.Revenue) {
			peak = d
		}
	}
	return peak, true
}

// Summarize computes the Summary for the filtered set.
func Summarize(filtered []model.Transaction, opts Options) Summary {
	if opts.TopN <= 0 {
		opts.TopN = DefaultTopN
	}

	s := Summary{TotalRevenue: totalRevenue(filtered)}
	s.Regions = regionBreakdown(filtered, s.TotalRevenue)
	products := productStats(filtered)
	s.TopProducts = topProducts(products, opts.TopN)
	s.TopCustomers = topCustomers(filtered, opts.TopN)
	s.Daily = dailyTrend(filtered)
	s.LowPerformers = lowPerformers(products, opts.LowRevenue)
	return s
}

func totalRevenue(txns []model.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txns {
		total = total.Add(t.Amount())
	}
	return total
}

func regionBreakdown(txns []model.Transaction, total decimal.Decimal) []RegionStat {
	byRegion := make(map[string]*RegionStat)
	var order []string
	for _, t := range txns {
		st, ok := byRegion[t.Region]
		if !ok {
			st = &RegionStat{Region: t.Region, Revenue: decimal.Zero}
			byRegion[t.Region] = st
			order = append(order, t.Region)
		}
		st.Revenue = st.Revenue.Add(t.Amount())
		st.Count++
	}

	hundred := decimal.NewFromInt(100)
	stats := make([]RegionStat, 0, len(order))
	for _, region := range order {
		st := *byRegion[region]
		if total.IsPositive() {
			st.Share = st.Revenue.Div(total).Mul(hundred).Round(2)
		}
		stats = append(stats, st)
	}

	sort.Slice(stats, func(i, j int) bool {
		if !stats[i].Revenue.Equal(stats[j].Revenue) {
			return stats[i].Revenue.GreaterThan(stats[j].Revenue)
		}
		return stats[i].Region < stats[j].Region
	})
	return stats
}

func productStats(txns []model.Transaction) []ProductStat {
	byID := make(map[string]*ProductStat)
	var order []string
	for _, t := range txns {
		st, ok := byID[t.ProductID]
		if !ok {
			st = &ProductStat{ProductID: t.ProductID, ProductName: t.ProductName, Revenue: decimal.Zero}
			byID[t.ProductID] = st
			order = append(order, t.ProductID)
		}
		st.Quantity += t.Quantity
		st.Revenue = st.Revenue.Add(t.Amount())
	}

	stats := make([]ProductStat, 0, len(order))
	for _, id := range order {
		stats = append(stats, *byID[id])
	}
	return stats
}

func topProducts(products []ProductStat, n int) []ProductStat {
	top := make([]ProductStat, len(products))
	copy(top, products)
	sort.Slice(top, func(i, j int) bool {
		if !top[i].Revenue.Equal(top[j].Revenue) {
			return top[i].Revenue.GreaterThan(top[j].Revenue)
		}
		return top[i].ProductID < top[j].ProductID
	})
	if len(top) > n {
		top = top[:n]
	}
	return top
}

func topCustomers(txns []model.Transaction, n int) []CustomerStat {
	type agg struct {
		stat     CustomerStat
		products map[string]bool
	}
	byID := make(map[string]*agg)
	var order []string
	for _, t := range txns {
		a, ok := byID[t.CustomerID]
		if !ok {
			a = &agg{
				stat:     CustomerStat{CustomerID: t.CustomerID, Revenue: decimal.Zero},
				products: make(map[string]bool),
			}
			byID[t.CustomerID] = a
			order = append(order, t.CustomerID)
		}
		a.stat.Revenue = a.stat.Revenue.Add(t.Amount())
		a.stat.Purchases++
		a.products[t.ProductID] = true
	}

	stats := make([]CustomerStat, 0, len(order))
	for _, id := range order {
		a := byID[id]
		a.stat.Products = len(a.products)
		a.stat.AvgOrder = a.stat.Revenue.Div(decimal.NewFromInt(int64(a.stat.Purchases))).Round(2)
		stats = append(stats, a.stat)
	}

	sort.Slice(stats, func(i, j int) bool {
		if !stats[i].Revenue.Equal(stats[j].Revenue) {
			return stats[i].Revenue.GreaterThan(stats[j].Revenue)
		}
		return stats[i].CustomerID < stats[j].CustomerID
	})
	if len(stats) > n {
		stats = stats[:n]
	}
	return stats
}

func dailyTrend(txns []model.Transaction) []DayStat {
	type agg struct {
		stat      DayStat
		customers map[string]bool
	}
	byDay := make(map[time.Time]*agg)
	var order []time.Time
	for _, t := range txns {
		day := t.Date
		a, ok := byDay[day]
		if !ok {
			a = &agg{
				stat:      DayStat{Date: day, Revenue: decimal.Zero},
				customers: make(map[string]bool),
			}
			byDay[day] = a
			order = append(order, day)
		}
		a.stat.Revenue = a.stat.Revenue.Add(t.Amount())
		a.stat.Count++
		a.customers[t.CustomerID] = true
	}

	days := make([]DayStat, 0, len(order))
	for _, day := range order {
		a := byDay[day]
		a.stat.Customers = len(a.customers)
		days = append(days, a.stat)
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.Before(days[j].Date)
	})
	return days
}

func lowPerformers(products []ProductStat, threshold decimal.Decimal) []ProductStat {
	if !threshold.IsPositive() {
		return nil
	}

	var low []ProductStat
	for _, p := range products {
		if p.Revenue.LessThan(threshold) {
			low = append(low, p)
		}
	}

	sort.Slice(low, func(i, j int) bool {
		if !low[i].Revenue.Equal(low[j].Revenue) {
			return low[i].Revenue.LessThan(low[j].Revenue)
		}
		return low[i].ProductID < low[j].ProductID
	})
	return low
}
