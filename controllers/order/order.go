package orderControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/cybereatdiri/kiosk"
	"github.com/junaidrashid-git/cybereatdiri/middleware"
	"github.com/junaidrashid-git/cybereatdiri/models"
)

// GET /user/orders
//
// Orders placed from this terminal, oldest first.
func GetUserOrdersHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		t, ok := middleware.RequireTerminal(c)
		if !ok {
			return
		}
		orders := t.Ledger().All()
		c.JSON(http.StatusOK, gin.H{"orders": orders, "count": len(orders)})
	}
}

type terminalOrders struct {
	Terminal string         `json:"terminal"`
	Orders   []models.Order `json:"orders"`
	Revenue  int            `json:"revenue"`
}

// GET /admin/orders
//
// Every live terminal's history, for the front desk.
func GetAllOrdersHandler(registry *kiosk.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		var (
			out     []terminalOrders
			revenue int
		)
		for _, t := range registry.Snapshot() {
			orders := t.Ledger().All()
			if len(orders) == 0 {
				continue
			}
			entry := terminalOrders{Terminal: t.Key(), Orders: orders}
			for _, o := range orders {
				entry.Revenue += o.Total
			}
			revenue += entry.Revenue
			out = append(out, entry)
		}
		if out == nil {
			out = []terminalOrders{}
		}
		c.JSON(http.StatusOK, gin.H{"terminals": out, "revenue": revenue})
	}
}
