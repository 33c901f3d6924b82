package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"

	"github.com/jayaganeshk/shoptrace/internal/telemetry"
)

type product struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
}

// Static demo catalog; product management is out of scope.
var products = []product{
	{1, "Wireless Headphones", "Premium noise-cancelling wireless headphones", decimal.RequireFromString("299.99"), "https://placehold.co/300x200/1976D2/white?text=Headphones", "Electronics"},
	{2, "Smart Watch", "Fitness tracking smartwatch with heart rate monitor", decimal.RequireFromString("199.99"), "https://placehold.co/300x200/1976D2/white?text=Smart+Watch", "Electronics"},
	{3, "Laptop Backpack", "Durable laptop backpack with multiple compartments", decimal.RequireFromString("79.99"), "https://placehold.co/300x200/1976D2/white?text=Backpack", "Accessories"},
	{4, "Bluetooth Speaker", "Portable waterproof Bluetooth speaker", decimal.RequireFromString("89.99"), "https://placehold.co/300x200/1976D2/white?text=Speaker", "Electronics"},
	{5, "USB-C Hub", "7-in-1 USB-C hub with HDMI and card reader", decimal.RequireFromString("49.99"), "https://placehold.co/300x200/1976D2/white?text=USB+Hub", "Accessories"},
	{6, "Wireless Mouse", "Ergonomic wireless mouse with precision tracking", decimal.RequireFromString("39.99"), "https://placehold.co/300x200/1976D2/white?text=Mouse", "Accessories"},
}

func (h *Handler) listProducts(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "list_products")
	defer span.End()

	span.SetAttributes(attribute.Int("product_count", len(products)))
	telemetry.MarkSuccess(span)

	c.JSON(http.StatusOK, gin.H{"items": products})
}
