// ABOUTME: Order and product catalog CLI commands
// ABOUTME: Record orders, change status, create order reminders and manage catalogs
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/harperreed/callbook/models"
	"github.com/harperreed/callbook/store"
)

// parseItem reads "name:price[:quantity]".
func parseItem(raw string) (models.OrderItem, error) {
	parts := strings.Split(raw, ":")
	if len(parts) < 2 || strings.TrimSpace(parts[0]) == "" {
		return models.OrderItem{}, fmt.Errorf("invalid item %q (want name:price[:quantity])", raw)
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return models.OrderItem{}, fmt.Errorf("invalid price in %q: %w", raw, err)
	}
	qty := 1
	if len(parts) > 2 {
		if qty, err = strconv.Atoi(strings.TrimSpace(parts[2])); err != nil || qty <= 0 {
			return models.OrderItem{}, fmt.Errorf("invalid quantity in %q", raw)
		}
	}
	return models.OrderItem{Name: strings.TrimSpace(parts[0]), Price: price, Quantity: qty}, nil
}

// AddOrderCommand records an order.
func AddOrderCommand(st *store.Store, args []string) error {
	fs := flag.NewFlagSet("orders add", flag.ExitOnError)
	contactID := fs.String("contact", "", "Contact ID (required)")
	notes := fs.String("notes", "", "Order notes")
	remindDate := fs.String("remind-date", "", "Follow-up date YYYY-MM-DD")
	remindTime := fs.String("remind-time", "", "Follow-up time HH:MM")
	var items []string
	fs.Func("item", "Item as name:price[:quantity] (repeatable, required)", func(v string) error {
		items = append(items, v)
		return nil
	})
	_ = fs.Parse(args)

	ctx := context.Background()
	if *contactID == "" {
		return fmt.Errorf("--contact is required")
	}
	if len(items) == 0 {
		return fmt.Errorf("at least one --item is required")
	}
	contact, ok := st.Contact(ctx, *contactID)
	if !ok {
		return fmt.Errorf("contact not found: %s", *contactID)
	}

	order := models.Order{}
	for _, raw := range items {
		item, err := parseItem(raw)
		if err != nil {
			return err
		}
		order.Items = append(order.Items, item)
	}

	created, err := st.AddOrder(ctx, store.NewOrder{
		ContactID:    contact.ID,
		ContactName:  contact.Name,
		Items:        order.Items,
		TotalAmount:  order.ItemsTotal(),
		Notes:        *notes,
		ReminderDate: *remindDate,
		ReminderTime: *remindTime,
	})
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	fmt.Fprintf(stdout, "✓ Order created for %s (ID: %s)\n", created.ContactName, created.ID)
	fmt.Fprintf(stdout, "  %d item(s), total %.2f\n", len(created.Items), created.TotalAmount)
	return nil
}

// ListOrdersCommand lists orders.
func ListOrdersCommand(st *store.Store, args []string) error {
	fs := flag.NewFlagSet("orders list", flag.ExitOnError)
	contactID := fs.String("contact", "", "Only orders for this contact")
	status := fs.String("status", "", "Only orders with this status")
	_ = fs.Parse(args)

	var shown []models.Order
	for _, o := range st.Orders(context.Background()) {
		if *contactID != "" && o.ContactID != *contactID {
			continue
		}
		if *status != "" && string(o.Status) != *status {
			continue
		}
		shown = append(shown, o)
	}
	if len(shown) == 0 {
		fmt.Fprintln(stdout, "No orders found")
		return nil
	}

	w := newTable()
	_, _ = fmt.Fprintln(w, "CONTACT\tITEMS\tTOTAL\tSTATUS\tFOLLOW-UP\tID")
	_, _ = fmt.Fprintln(w, "-------\t-----\t-----\t------\t---------\t--")
	for _, o := range shown {
		follow := strings.TrimSpace(o.ReminderDate + " " + o.ReminderTime)
		_, _ = fmt.Fprintf(w, "%s\t%d\t%.2f\t%s\t%s\t%s\n", o.ContactName, len(o.Items), o.TotalAmount, o.Status, orDash(follow), o.ID)
	}
	_ = w.Flush()
	fmt.Fprintf(stdout, "\nTotal: %d order(s)\n", len(shown))
	return nil
}

// OrderStatusCommand changes an order's status.
func OrderStatusCommand(st *store.Store, args []string) error {
	fs := flag.NewFlagSet("orders status", flag.ExitOnError)
	_ = fs.Parse(args)

	if fs.NArg() < 2 {
		return fmt.Errorf("usage: orders status <id> <pending|confirmed|shipped|delivered|cancelled>")
	}
	status := models.OrderStatus(fs.Arg(1))
	if !status.Valid() {
		return fmt.Errorf("invalid status: %s", fs.Arg(1))
	}

	order, err := st.UpdateOrder(context.Background(), fs.Arg(0), store.OrderUpdate{Status: &status})
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("order not found: %s", fs.Arg(0))
	}
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	fmt.Fprintf(stdout, "✓ Order %s is now %s\n", order.ID, order.Status)
	return nil
}

// OrderReminderCommand creates a follow-up reminder from an order.
func OrderReminderCommand(st *store.Store, args []string) error {
	fs := flag.NewFlagSet("orders remind", flag.ExitOnError)
	_ = fs.Parse(args)

	id, err := requireID(fs.Args(), "order")
	if err != nil {
		return err
	}
	reminder, err := st.AddOrderReminder(context.Background(), id)
	if errors.Is(err, store.ErrNoReminderDate) {
		return fmt.Errorf("order %s has no reminder date; set one with --remind-date", id)
	}
	if err != nil {
		return fmt.Errorf("failed to create reminder: %w", err)
	}
	fmt.Fprintf(stdout, "✓ Reminder created for %s, due %s\n", reminder.ContactName, formatTime(reminder.DueDate))
	return nil
}

// CatalogsCommand lists product catalogs, or adds products with --name/--product.
func CatalogsCommand(st *store.Store, args []string) error {
	fs := flag.NewFlagSet("catalogs", flag.ExitOnError)
	name := fs.String("name", "", "Create a catalog with this name")
	catalogID := fs.String("add-to", "", "Append products to this catalog")
	var products []string
	fs.Func("product", "Product as name:price (repeatable)", func(v string) error {
		products = append(products, v)
		return nil
	})
	_ = fs.Parse(args)

	ctx := context.Background()
	if len(products) > 0 {
		var list []models.Product
		for _, raw := range products {
			item, err := parseItem(raw)
			if err != nil {
				return err
			}
			list = append(list, models.Product{Name: item.Name, Price: item.Price, InStock: true})
		}

		var (
			catalog models.ProductCatalog
			err     error
		)
		switch {
		case *catalogID != "":
			catalog, err = st.AddProducts(ctx, *catalogID, list)
		case *name != "":
			catalog, err = st.AddProductCatalog(ctx, *name, list)
		default:
			return fmt.Errorf("--name or --add-to is required with --product")
		}
		if err != nil {
			return fmt.Errorf("failed to save catalog: %w", err)
		}
		fmt.Fprintf(stdout, "✓ Catalog %s has %d product(s) (ID: %s)\n", catalog.Name, len(catalog.Products), catalog.ID)
		return nil
	}

	catalogs := st.ProductCatalogs(ctx)
	if len(catalogs) == 0 {
		fmt.Fprintln(stdout, "No catalogs found")
		return nil
	}
	for _, c := range catalogs {
		fmt.Fprintf(stdout, "%s (%d products, ID: %s)\n", c.Name, len(c.Products), c.ID)
		w := newTable()
		for _, p := range c.Products {
			_, _ = fmt.Fprintf(w, "  %s\t%.2f\t%s\n", p.Name, p.Price, orDash(p.SKU))
		}
		_ = w.Flush()
	}
	return nil
}
