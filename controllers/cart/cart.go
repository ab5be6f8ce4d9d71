package cartControllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/cybereatdiri/apperr"
	"github.com/junaidrashid-git/cybereatdiri/catalog"
	"github.com/junaidrashid-git/cybereatdiri/kiosk"
	"github.com/junaidrashid-git/cybereatdiri/middleware"
	"github.com/junaidrashid-git/cybereatdiri/models"
)

type CartItemInput struct {
	ItemID   string `json:"item_id" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,min=1,max=99"`
}

type cartView struct {
	Items     []models.CartLine `json:"items"`
	Total     int               `json:"total"`
	ItemCount int               `json:"item_count"`
}

func viewOf(cart *kiosk.Cart) cartView {
	return cartView{Items: cart.Lines(), Total: cart.Total(), ItemCount: cart.ItemCount()}
}

// GET /user/cart
func GetCart() gin.HandlerFunc {
	return func(c *gin.Context) {
		t, ok := middleware.RequireTerminal(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, viewOf(t.Cart()))
	}
}

// POST /user/cart
func AddCartItem(menu *catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		t, ok := middleware.RequireTerminal(c)
		if !ok {
			return
		}

		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		item, found := menu.MenuItem(input.ItemID)
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "Menu item does not exist"})
			return
		}

		line, err := t.AddToCart(item, input.Quantity)
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": item.Name + " added to cart.",
			"line":    line,
			"cart":    viewOf(t.Cart()),
		})
	}
}

// DELETE /user/cart/:position
//
// Positions are zero-based, in the order lines were added.
func RemoveCartItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		t, ok := middleware.RequireTerminal(c)
		if !ok {
			return
		}

		position, err := strconv.Atoi(c.Param("position"))
		if err != nil {
			apperr.Respond(c, apperr.ErrOutOfRange)
			return
		}
		if err := t.RemoveFromCart(position); err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, viewOf(t.Cart()))
	}
}

// DELETE /user/cart
func ClearCart() gin.HandlerFunc {
	return func(c *gin.Context) {
		t, ok := middleware.RequireTerminal(c)
		if !ok {
			return
		}
		if err := t.ClearCart(); err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, viewOf(t.Cart()))
	}
}
