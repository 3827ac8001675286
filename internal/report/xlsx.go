package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/saleslens-dev/saleslens/internal/analytics"
	"github.com/saleslens-dev/saleslens/internal/model"
)

// ExportXLSX writes the summary as a workbook with one sheet per aggregate.
func ExportXLSX(path string, s analytics.Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeRegionSheet(f, s); err != nil {
		return err
	}
	if err := writeSheet(f, "Top Products", productRows(s.TopProducts)); err != nil {
		return err
	}
	if err := writeCustomerSheet(f, s); err != nil {
		return err
	}
	if err := writeDailySheet(f, s); err != nil {
		return err
	}
	if err := writeSheet(f, "Low Performers", productRows(s.LowPerformers)); err != nil {
		return err
	}

	// Replace the default sheet with the region breakdown.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, name string, rows [][]interface{}) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("creating sheet %s: %w", name, err)
	}
	for i, row := range rows {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return fmt.Errorf("sheet %s row %d: %w", name, i+1, err)
			}
			if err := f.SetCellValue(name, cell, v); err != nil {
				return fmt.Errorf("sheet %s cell %s: %w", name, cell, err)
			}
		}
	}
	return nil
}

func writeRegionSheet(f *excelize.File, s analytics.Summary) error {
	rows := [][]interface{}{{"Region", "Revenue", "Transactions", "Share %"}}
	for _, r := range s.Regions {
		rows = append(rows, []interface{}{r.Region, r.Revenue.InexactFloat64(), r.Count, r.Share.InexactFloat64()})
	}
	rows = append(rows, []interface{}{"TOTAL", s.TotalRevenue.InexactFloat64(), len(s.Regions), nil})
	return writeSheet(f, "Regions", rows)
}

func writeCustomerSheet(f *excelize.File, s analytics.Summary) error {
	rows := [][]interface{}{{"Customer", "Revenue", "Purchases", "Avg Order", "Products"}}
	for _, c := range s.TopCustomers {
		rows = append(rows, []interface{}{c.CustomerID, c.Revenue.InexactFloat64(), c.Purchases, c.AvgOrder.InexactFloat64(), c.Products})
	}
	return writeSheet(f, "Top Customers", rows)
}

func writeDailySheet(f *excelize.File, s analytics.Summary) error {
	rows := [][]interface{}{{"Date", "Revenue", "Transactions", "Customers"}}
	for _, d := range s.Daily {
		rows = append(rows, []interface{}{d.Date.Format(model.DateFormat), d.Revenue.InexactFloat64(), d.Count, d.Customers})
	}
	return writeSheet(f, "Daily", rows)
}

func productRows(products []analytics.ProductStat) [][]interface{} {
	rows := [][]interface{}{{"Product ID", "Product", "Quantity", "Revenue"}}
	for _, p := range products {
		rows = append(rows, []interface{}{p.ProductID, p.ProductName, p.Quantity, p.Revenue.InexactFloat64()})
	}
	return rows
}
