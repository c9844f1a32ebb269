package commands

import (
	"context"
	"fmt"

	"AtlasAdmin/internal/cli/bootstrap"
	"AtlasAdmin/internal/cli/model"
	"AtlasAdmin/internal/cli/store"
	"AtlasAdmin/internal/cli/view"
	"AtlasAdmin/internal/config"
)

type ordersListCmd struct{}

func (ordersListCmd) Name() string        { return "orders" }
func (ordersListCmd) Description() string { return "List customer callback orders" }
func (ordersListCmd) Usage() string       { return "orders [--page N] [--find substr]" }

func (ordersListCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	la, err := parseListArgs("orders", args)
	if err != nil {
		return err
	}
	client, _ := bootstrap.Session(cfg)
	orders := store.NewOrders(client)
	if err := orders.FetchPage(ctx, la.page); err != nil {
		return err
	}
	rows := make([][]string, 0, len(orders.Records))
	for _, o := range orders.Records {
		rows = append(rows, []string{
			o.ID,
			o.FirstName,
			o.PhoneNumber,
			shorten(o.ModelName, 30),
			string(o.Status),
			o.CreatedAt,
		})
	}
	rows = view.FilterRows(rows, la.find)
	view.Table(Out, []string{"ID", "NAME", "PHONE", "MODEL", "STATUS", "CREATED"}, rows)
	view.PageFooter(Out, orders.Meta)
	return nil
}

// orderStatusCmd marks an order as called or accepted; one instance per
// target status is registered.
type orderStatusCmd struct {
	name   string
	desc   string
	status model.OrderStatus
}

func (c orderStatusCmd) Name() string        { return c.name }
func (c orderStatusCmd) Description() string { return c.desc }
func (c orderStatusCmd) Usage() string       { return c.name + " <id>" }

func (c orderStatusCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	if !view.Confirm(In, Out, fmt.Sprintf("Mark order %s as %s?", args[0], c.status)) {
		fmt.Fprintln(Out, "Cancelled")
		return nil
	}
	client, _ := bootstrap.Session(cfg)
	orders := store.NewOrders(client)
	orders.Draft.Status = c.status
	if err := orders.Update(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(Out, "✓ Order marked %s\n", c.status)
	return nil
}

func init() {
	RegisterCmd(ordersListCmd{})
	RegisterCmd(orderStatusCmd{
		name:   "order-called",
		desc:   "Mark an order as called",
		status: model.OrderCalled,
	})
	RegisterCmd(orderStatusCmd{
		name:   "order-accepted",
		desc:   "Mark an order as accepted",
		status: model.OrderAccepted,
	})
}
