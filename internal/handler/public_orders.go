package handler

import (
	"encoding/json"
	"math/rand/v2"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/healthycorner/site-api/internal/model"
	"github.com/healthycorner/site-api/internal/queue"
	"github.com/healthycorner/site-api/internal/repository"
	"github.com/healthycorner/site-api/internal/service"
)

type orderForm struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

type orderReq struct {
	FormData *orderForm            `json:"form_data"`
	Cart     []repository.CartLine `json:"cart"`
}

// CreateOrder handles POST /v1/orders.  Prices come from the products
// table; the header and its items are written atomically.
func (h *PublicHandler) CreateOrder(c echo.Context) error {
	var req orderReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.FormData == nil || len(req.Cart) == 0 {
		return badRequest(c, "form_data and a non-empty cart are required")
	}
	f := req.FormData
	if blank(f.Name) || blank(f.Email) {
		return badRequest(c, "name and email are required")
	}
	for _, l := range req.Cart {
		if l.ProductID == 0 || l.Quantity <= 0 {
			return badRequest(c, "every cart line needs a product_id and a positive quantity")
		}
	}

	meta, err := json.Marshal(model.ShippingAddress{
		Address:    strings.TrimSpace(f.Address),
		City:       strings.TrimSpace(f.City),
		PostalCode: strings.TrimSpace(f.PostalCode),
		Country:    strings.TrimSpace(f.Country),
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	o := &model.Order{
		OrderNumber:   model.NewOrderNumber(h.now(), rand.IntN(1000)),
		CustomerEmail: strings.TrimSpace(f.Email),
		CustomerName:  strings.TrimSpace(f.Name),
		CustomerPhone: strings.TrimSpace(f.Phone),
		Metadata:      meta,
	}

	ctx, cancel := requestCtx(c)
	defer cancel()
	items, err := h.Orders.CreateWithItems(ctx, o, req.Cart, h.TaxPercent)
	if err != nil {
		return dbError(c, err)
	}

	lines := make([]queue.OrderLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, queue.OrderLine{Name: it.ProductName, Quantity: it.Quantity, TotalCents: it.TotalPriceCents})
	}
	service.Emit(ctx, h.Events, queue.EventOrderPlaced, traceID(c), strconv.FormatUint(o.ID, 10), queue.OrderPlaced{
		OrderID: o.ID, OrderNumber: o.OrderNumber, Name: o.CustomerName, Email: o.CustomerEmail, TotalCents: o.TotalCents, Items: lines,
	})
	return c.JSON(http.StatusCreated, echo.Map{
		"success":        true,
		"order_number":   o.OrderNumber,
		"subtotal_cents": o.SubtotalCents,
		"tax_cents":      o.TaxCents,
		"total_cents":    o.TotalCents,
	})
}
