package orderControllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/cybereatdiri/middleware"
	"github.com/junaidrashid-git/cybereatdiri/models"
	"github.com/tealeg/xlsx"
)

var orderHeaders = []string{
	"Ref", "Time", "Items", "ItemCount", "Total", "PCNumber", "PaymentMethod",
}

// BuildOrdersWorkbook lays orders out one per row under a header row.
// Multi-line item summaries are joined with "; " so each order stays on
// one spreadsheet row.
func BuildOrdersWorkbook(orders []models.Order) (*xlsx.File, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		return nil, err
	}

	headerRow := sheet.AddRow()
	for _, h := range orderHeaders {
		headerRow.AddCell().SetValue(h)
	}

	for _, o := range orders {
		row := sheet.AddRow()
		row.AddCell().SetValue(o.Ref)
		row.AddCell().SetValue(o.Time)
		row.AddCell().SetValue(strings.ReplaceAll(o.ItemsSummary, "\n", "; "))
		row.AddCell().SetInt(o.ItemCount)
		row.AddCell().SetInt(o.Total)
		row.AddCell().SetValue(o.PCNumber)
		row.AddCell().SetValue(string(o.PaymentMethod))
	}
	return file, nil
}

// GET /user/orders/export
func ExportOrdersToExcel() gin.HandlerFunc {
	return func(c *gin.Context) {
		t, ok := middleware.RequireTerminal(c)
		if !ok {
			return
		}

		file, err := BuildOrdersWorkbook(t.Ledger().All())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		c.Header("Content-Disposition", "attachment; filename=orders.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}
