package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"cloud-kitchen-client/internal/client"
	"cloud-kitchen-client/internal/domain"
	"cloud-kitchen-client/internal/events"
	"cloud-kitchen-client/internal/session"
)

const usage = `usage: kitchenctl <command> [flags]

commands:
  login        sign in with -email and -password
  logout       drop the stored session
  whoami       show the signed-in user and token claims
  menu         list menu items (-category, -chef)
  order        place an order (-items 12:2,15:1 -address ...)
  orders       list orders (-chef, -all)
  cancel       cancel an order (-id)
  invoice      show an invoice (-id, -qr file)
  suggest      ask for AI suggestions (-combinations, -pairings id)
  testimonial  submit a testimonial (-content, -rating)
  chat         show order chat (-id, -follow, -send)
  events       print session events from Kafka until interrupted
`

var errUsage = errors.New("invalid usage")

type app struct {
	client  *client.Client
	session *session.Manager
	out     io.Writer
	// events is nil when no Kafka broker is configured.
	events events.MessageReader
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, usage)
		return errUsage
	}

	commands := map[string]func(context.Context, []string) error{
		"login":       a.login,
		"logout":      a.logout,
		"whoami":      a.whoami,
		"menu":        a.menu,
		"order":       a.order,
		"orders":      a.orders,
		"cancel":      a.cancel,
		"invoice":     a.invoice,
		"suggest":     a.suggest,
		"testimonial": a.testimonial,
		"chat":        a.chat,
		"events":      a.tailEvents,
	}

	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprint(a.out, usage)
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}
	return cmd(ctx, args[1:])
}

func (a *app) print(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	return fs
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := newFlagSet("login")
	email := fs.String("email", "", "account email")
	password := fs.String("password", os.Getenv("KITCHEN_PASSWORD"), "account password (or KITCHEN_PASSWORD)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		return fmt.Errorf("%w: -email and -password are required", errUsage)
	}

	data, err := a.client.Auth.Login(ctx, domain.LoginRequest{Email: *email, Password: *password})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Signed in as %s (%s)\n", data.User.Name, data.User.Role)
	return nil
}

func (a *app) logout(ctx context.Context, _ []string) error {
	if err := a.client.Auth.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Signed out")
	return nil
}

func (a *app) whoami(ctx context.Context, _ []string) error {
	user, err := a.client.Auth.CurrentUser(ctx)
	if err != nil {
		return err
	}
	if user == nil {
		fmt.Fprintln(a.out, "Not signed in")
		return nil
	}
	token, err := a.session.Token(ctx)
	if err != nil {
		return err
	}

	out := map[string]any{"user": user}
	if claims, err := session.ParseClaims(token); err == nil {
		out["claims"] = claims
		out["expired"] = claims.Expired(time.Now())
	}
	return a.print(out)
}

func (a *app) menu(ctx context.Context, args []string) error {
	fs := newFlagSet("menu")
	category := fs.String("category", "", "filter by category")
	chef := fs.Int64("chef", 0, "filter by chef id")
	mine := fs.Bool("mine", false, "list the signed-in chef's items")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		items []domain.MenuItem
		err   error
	)
	switch {
	case *mine:
		items, err = a.client.Menu.Mine(ctx)
	case *category != "":
		items, err = a.client.Menu.ByCategory(ctx, *category)
	case *chef != 0:
		items, err = a.client.Menu.ByChef(ctx, *chef)
	default:
		items, err = a.client.Menu.Available(ctx)
	}
	if err != nil {
		return err
	}
	return a.print(items)
}

func (a *app) order(ctx context.Context, args []string) error {
	fs := newFlagSet("order")
	rawItems := fs.String("items", "", "comma-separated menuItemId:quantity pairs")
	address := fs.String("address", "", "delivery address")
	notes := fs.String("notes", "", "special instructions")
	if err := fs.Parse(args); err != nil {
		return err
	}

	items, err := parseItems(*rawItems)
	if err != nil {
		return err
	}
	if *address == "" {
		return fmt.Errorf("%w: -address is required", errUsage)
	}

	order, err := a.client.Orders.Place(ctx, domain.PlaceOrderRequest{
		Items:               items,
		DeliveryAddress:     *address,
		SpecialInstructions: *notes,
	})
	if err != nil {
		return err
	}
	return a.print(order)
}

func (a *app) orders(ctx context.Context, args []string) error {
	fs := newFlagSet("orders")
	chef := fs.Bool("chef", false, "orders assigned to the signed-in chef")
	all := fs.Bool("all", false, "every order (admin)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		orders []domain.Order
		err    error
	)
	switch {
	case *all:
		orders, err = a.client.Orders.All(ctx)
	case *chef:
		orders, err = a.client.Orders.ForChef(ctx)
	default:
		orders, err = a.client.Orders.Mine(ctx)
	}
	if err != nil {
		return err
	}
	return a.print(orders)
}

func (a *app) cancel(ctx context.Context, args []string) error {
	fs := newFlagSet("cancel")
	id := fs.Int64("id", 0, "order id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == 0 {
		return fmt.Errorf("%w: -id is required", errUsage)
	}

	env, err := a.client.Orders.Cancel(ctx, *id)
	if err != nil {
		return err
	}
	return a.print(env)
}

func (a *app) invoice(ctx context.Context, args []string) error {
	fs := newFlagSet("invoice")
	id := fs.Int64("id", 0, "order id")
	qrPath := fs.String("qr", "", "write a PNG QR code of the invoice link to this file")
	size := fs.Int("size", 256, "QR code size in pixels")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == 0 {
		return fmt.Errorf("%w: -id is required", errUsage)
	}

	if *qrPath != "" {
		png, err := a.client.Invoices.QRCode(*id, *size)
		if err != nil {
			return err
		}
		if err := os.WriteFile(*qrPath, png, 0o644); err != nil {
			return fmt.Errorf("failed to write QR code: %w", err)
		}
		fmt.Fprintf(a.out, "QR code for %s written to %s\n", a.client.Invoices.Link(*id), *qrPath)
		return nil
	}

	inv, err := a.client.Invoices.Get(ctx, *id)
	if err != nil {
		return err
	}
	return a.print(inv)
}

func (a *app) suggest(ctx context.Context, args []string) error {
	fs := newFlagSet("suggest")
	combinations := fs.Bool("combinations", false, "popular combinations")
	pairings := fs.Int64("pairings", 0, "items that pair with this menu item id")
	vegetarian := fs.Bool("vegetarian", false, "vegetarian only")
	budget := fs.Float64("budget", 0, "maximum budget")
	notes := fs.String("notes", "", "free-form preferences")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		s   *domain.Suggestion
		err error
	)
	switch {
	case *combinations:
		s, err = a.client.Suggestions.Combinations(ctx)
	case *pairings != 0:
		s, err = a.client.Suggestions.Pairings(ctx, *pairings)
	default:
		s, err = a.client.Suggestions.Suggest(ctx, domain.Preferences{
			Vegetarian: *vegetarian,
			MaxBudget:  *budget,
			Notes:      *notes,
		})
	}
	if err != nil {
		return err
	}
	return a.print(s)
}

func (a *app) testimonial(ctx context.Context, args []string) error {
	fs := newFlagSet("testimonial")
	content := fs.String("content", "", "testimonial text")
	rating := fs.Int("rating", 5, "rating from 1 to 5")
	show := fs.Bool("show", false, "show your current testimonial instead")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *show {
		t, err := a.client.Testimonials.Mine(ctx)
		if err != nil {
			return err
		}
		if t == nil {
			fmt.Fprintln(a.out, "No testimonial yet")
			return nil
		}
		return a.print(t)
	}

	env, err := a.client.Testimonials.Submit(ctx, domain.TestimonialRequest{Content: *content, Rating: *rating})
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Testimonial submitted, it will appear once an admin approves it")
	return a.print(env.Data)
}

func (a *app) chat(ctx context.Context, args []string) error {
	fs := newFlagSet("chat")
	id := fs.Int64("id", 0, "order id")
	follow := fs.Bool("follow", false, "stream new messages until interrupted")
	send := fs.String("send", "", "send a message")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == 0 {
		return fmt.Errorf("%w: -id is required", errUsage)
	}

	if *send != "" {
		msg, err := a.client.Chat.Send(ctx, *id, *send)
		if err != nil {
			return err
		}
		return a.print(msg)
	}

	msgs, err := a.client.Chat.Messages(ctx, *id)
	if err != nil {
		return err
	}
	for _, m := range msgs {
		printMessage(a.out, m)
	}
	if !*follow {
		return nil
	}

	stream, err := a.client.Chat.Stream(ctx, *id)
	if err != nil {
		return err
	}
	for m := range stream {
		printMessage(a.out, m)
	}
	return nil
}

func (a *app) tailEvents(ctx context.Context, _ []string) error {
	if a.events == nil {
		return errors.New("KAFKA_BROKER is not set")
	}
	c := events.NewConsumer(a.events, func(_ context.Context, e events.SessionEvent) {
		a.print(e)
	}, nil)
	return c.Start(ctx)
}

func printMessage(w io.Writer, m domain.ChatMessage) {
	fmt.Fprintf(w, "[%s] %s (%s): %s\n", m.SentAt.Format("15:04"), m.SenderName, m.SenderRole, m.Content)
}

// parseItems reads "12:2,15:1" into order lines. A bare id means quantity 1.
func parseItems(raw string) ([]domain.OrderItem, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("%w: -items is required", errUsage)
	}

	var items []domain.OrderItem
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		idText, qtyText, hasQty := strings.Cut(part, ":")
		id, err := strconv.ParseInt(idText, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("%w: bad menu item id %q", errUsage, idText)
		}
		qty := 1
		if hasQty {
			qty, err = strconv.Atoi(qtyText)
			if err != nil || qty <= 0 {
				return nil, fmt.Errorf("%w: bad quantity %q", errUsage, qtyText)
			}
		}
		items = append(items, domain.OrderItem{MenuItemID: id, Quantity: qty})
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: -items is required", errUsage)
	}
	return items, nil
}
