// ABOUTME: Order and product catalog MCP tool handlers
// ABOUTME: Implements add_order, list_orders, update_order_status, add_order_reminder and catalog tools
package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/callbook/models"
	"github.com/harperreed/callbook/store"
)

type OrderHandlers struct {
	store *store.Store
}

func NewOrderHandlers(s *store.Store) *OrderHandlers {
	return &OrderHandlers{store: s}
}

type OrderItemInput struct {
	Name        string  `json:"name" jsonschema:"Item name (required)"`
	Description string  `json:"description,omitempty" jsonschema:"Item description"`
	Price       float64 `json:"price" jsonschema:"Unit price"`
	Quantity    int     `json:"quantity" jsonschema:"Quantity (default 1)"`
}

type AddOrderInput struct {
	ContactID    string           `json:"contact_id" jsonschema:"Contact ID (required)"`
	Items        []OrderItemInput `json:"items" jsonschema:"Ordered items (required)"`
	Notes        string           `json:"notes,omitempty" jsonschema:"Order notes"`
	ReminderDate string           `json:"reminder_date,omitempty" jsonschema:"Follow-up date YYYY-MM-DD"`
	ReminderTime string           `json:"reminder_time,omitempty" jsonschema:"Follow-up time HH:MM"`
}

func (h *OrderHandlers) AddOrder(ctx context.Context, _ *mcp.CallToolRequest, input AddOrderInput) (*mcp.CallToolResult, OrderOutput, error) {
	if input.ContactID == "" {
		return nil, OrderOutput{}, fmt.Errorf("contact_id is required")
	}
	if len(input.Items) == 0 {
		return nil, OrderOutput{}, fmt.Errorf("at least one item is required")
	}
	contact, ok := h.store.Contact(ctx, input.ContactID)
	if !ok {
		return nil, OrderOutput{}, fmt.Errorf("contact not found: %s", input.ContactID)
	}

	order := models.Order{Items: make([]models.OrderItem, len(input.Items))}
	for i, it := range input.Items {
		if strings.TrimSpace(it.Name) == "" {
			return nil, OrderOutput{}, fmt.Errorf("item %d: name is required", i+1)
		}
		qty := it.Quantity
		if qty <= 0 {
			qty = 1
		}
		order.Items[i] = models.OrderItem{Name: it.Name, Description: it.Description, Price: it.Price, Quantity: qty}
	}

	created, err := h.store.AddOrder(ctx, store.NewOrder{
		ContactID:    contact.ID,
		ContactName:  contact.Name,
		Items:        order.Items,
		TotalAmount:  order.ItemsTotal(),
		Notes:        input.Notes,
		ReminderDate: input.ReminderDate,
		ReminderTime: input.ReminderTime,
	})
	if err != nil {
		return nil, OrderOutput{}, fmt.Errorf("failed to create order: %w", err)
	}
	return nil, orderToOutput(created), nil
}

type ListOrdersInput struct {
	ContactID string `json:"contact_id,omitempty" jsonschema:"Only orders for this contact"`
	Status    string `json:"status,omitempty" jsonschema:"Only orders with this status"`
}

type ListOrdersOutput struct {
	Orders []OrderOutput `json:"orders"`
}

func (h *OrderHandlers) ListOrders(ctx context.Context, _ *mcp.CallToolRequest, input ListOrdersInput) (*mcp.CallToolResult, ListOrdersOutput, error) {
	out := []OrderOutput{}
	for _, o := range h.store.Orders(ctx) {
		if input.ContactID != "" && o.ContactID != input.ContactID {
			continue
		}
		if input.Status != "" && string(o.Status) != input.Status {
			continue
		}
		out = append(out, orderToOutput(o))
	}
	return nil, ListOrdersOutput{Orders: out}, nil
}

type UpdateOrderStatusInput struct {
	ID     string `json:"id" jsonschema:"Order ID (required)"`
	Status string `json:"status" jsonschema:"pending, confirmed, shipped, delivered or cancelled (required)"`
}

func (h *OrderHandlers) UpdateOrderStatus(ctx context.Context, _ *mcp.CallToolRequest, input UpdateOrderStatusInput) (*mcp.CallToolResult, OrderOutput, error) {
	if input.ID == "" {
		return nil, OrderOutput{}, fmt.Errorf("id is required")
	}
	status := models.OrderStatus(input.Status)
	if !status.Valid() {
		return nil, OrderOutput{}, fmt.Errorf("invalid status: %s", input.Status)
	}

	order, err := h.store.UpdateOrder(ctx, input.ID, store.OrderUpdate{Status: &status})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, OrderOutput{}, fmt.Errorf("order not found: %s", input.ID)
		}
		return nil, OrderOutput{}, fmt.Errorf("failed to update order: %w", err)
	}
	return nil, orderToOutput(order), nil
}

type OrderReminderInput struct {
	OrderID string `json:"order_id" jsonschema:"Order ID (required)"`
}

func (h *OrderHandlers) AddOrderReminder(ctx context.Context, _ *mcp.CallToolRequest, input OrderReminderInput) (*mcp.CallToolResult, ReminderOutput, error) {
	if input.OrderID == "" {
		return nil, ReminderOutput{}, fmt.Errorf("order_id is required")
	}
	reminder, err := h.store.AddOrderReminder(ctx, input.OrderID)
	if err != nil {
		return nil, ReminderOutput{}, fmt.Errorf("failed to create order reminder: %w", err)
	}
	return nil, reminderToOutput(reminder), nil
}

type ProductInput struct {
	Name        string  `json:"name" jsonschema:"Product name (required)"`
	Price       float64 `json:"price" jsonschema:"Unit price"`
	Description string  `json:"description,omitempty" jsonschema:"Description"`
	SKU         string  `json:"sku,omitempty" jsonschema:"Stock keeping unit"`
	Category    string  `json:"category,omitempty" jsonschema:"Product category"`
	InStock     bool    `json:"in_stock,omitempty" jsonschema:"Whether the product is in stock"`
}

type AddProductsInput struct {
	CatalogID   string         `json:"catalog_id,omitempty" jsonschema:"Existing catalog to append to"`
	CatalogName string         `json:"catalog_name,omitempty" jsonschema:"Name for a new catalog when catalog_id is omitted"`
	Products    []ProductInput `json:"products" jsonschema:"Products to add (required)"`
}

type CatalogOutput struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Products int    `json:"product_count"`
}

func (h *OrderHandlers) AddProducts(ctx context.Context, _ *mcp.CallToolRequest, input AddProductsInput) (*mcp.CallToolResult, CatalogOutput, error) {
	if len(input.Products) == 0 {
		return nil, CatalogOutput{}, fmt.Errorf("products is required")
	}
	products := make([]models.Product, len(input.Products))
	for i, p := range input.Products {
		if strings.TrimSpace(p.Name) == "" {
			return nil, CatalogOutput{}, fmt.Errorf("product %d: name is required", i+1)
		}
		products[i] = models.Product{
			Name: p.Name, Price: p.Price, Description: p.Description,
			SKU: p.SKU, Category: p.Category, InStock: p.InStock,
		}
	}

	var (
		catalog models.ProductCatalog
		err     error
	)
	if input.CatalogID != "" {
		catalog, err = h.store.AddProducts(ctx, input.CatalogID, products)
	} else {
		if strings.TrimSpace(input.CatalogName) == "" {
			return nil, CatalogOutput{}, fmt.Errorf("catalog_id or catalog_name is required")
		}
		catalog, err = h.store.AddProductCatalog(ctx, input.CatalogName, products)
	}
	if err != nil {
		return nil, CatalogOutput{}, fmt.Errorf("failed to add products: %w", err)
	}
	return nil, CatalogOutput{ID: catalog.ID, Name: catalog.Name, Products: len(catalog.Products)}, nil
}
