package view

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"storefront-client/internal/model"
	"storefront-client/internal/notify"
	"storefront-client/internal/state"
	"strings"
	"sync"
	"text/tabwriter"
)

const (
	noDescription = "No description"
	unknownItem   = "Unknown item"
)

// Terminal renders to a line-oriented terminal and reads answers to
// confirmation prompts from the same input the command loop uses.
type Terminal struct {
	mu  sync.Mutex
	out io.Writer
	in  *bufio.Reader
}

func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{out: out, in: bufio.NewReader(in)}
}

// ReadLine returns the next input line without its newline. io.EOF is
// returned once input is exhausted.
func (t *Terminal) ReadLine() (string, error) {
	line, err := t.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (t *Terminal) printf(format string, args ...any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, format, args...)
}

// Confirm asks a yes/no question; anything but y/yes declines.
func (t *Terminal) Confirm(ctx context.Context, prompt string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	t.printf("%s [y/N] ", prompt)
	line, err := t.ReadLine()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

func (t *Terminal) Notify(message string, severity notify.Severity) {
	t.printf("[%s] %s\n", severity, message)
}

func (t *Terminal) PrintNotifications(items []notify.Notification) {
	if len(items) == 0 {
		t.printf("No recent messages\n")
		return
	}
	for _, n := range items {
		t.Notify(n.Message, n.Severity)
	}
}

func (t *Terminal) RenderCatalog(items []model.ContentItem) {
	if len(items) == 0 {
		t.RenderCatalogEmpty()
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	w := tabwriter.NewWriter(t.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tTITLE\tPRICE\tDESCRIPTION")
	for _, item := range items {
		desc := noDescription
		if item.Description != nil && *item.Description != "" {
			desc = *item.Description
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t¥%s\t%s\n", item.ID, item.Type.Label(), item.Title, item.Price.String(), desc)
	}
	w.Flush()
}

func (t *Terminal) RenderCatalogEmpty() {
	t.printf("No content yet\n")
}

func (t *Terminal) RenderCatalogError() {
	t.printf("Failed to load content, please retry\n")
}

func (t *Terminal) RenderOrders(orders []model.Order) {
	if len(orders) == 0 {
		t.RenderOrdersEmpty()
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	w := tabwriter.NewWriter(t.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ORDER\tSTATUS\tITEM\tPRICE\tTIME\t")
	for _, o := range orders {
		title, price := unknownItem, "0"
		if o.Content != nil {
			title = o.Content.Title
			price = o.Content.Price.String()
		}
		when := "-"
		if o.PaymentTime != nil {
			when = o.PaymentTime.Local().Format("2006-01-02 15:04:05")
		}
		action := ""
		if o.PaymentStatus.Payable() {
			action = fmt.Sprintf("(pay %d)", o.ID)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t¥%s\t%s\t%s\n", o.ID, o.PaymentStatus.Label(), title, price, when, action)
	}
	w.Flush()
}

func (t *Terminal) RenderOrdersEmpty() {
	t.printf("No orders yet\n")
}

func (t *Terminal) RenderOrdersError() {
	t.printf("Failed to load orders\n")
}

func (t *Terminal) RenderAuthStatus(session model.Session) {
	if !session.Authenticated() {
		t.printf("Not logged in (use: login <user> <password> | register <user> <password> <password>)\n")
		return
	}
	t.printf("Logged in as %s (%s)\n", session.User.Username, session.User.MembershipLevel.Label())
}

func (t *Terminal) RenderProfile(user model.UserProfile, stats *model.OrderStats) {
	t.printf("Member: %s\nLevel:  %s\n", user.Username, user.MembershipLevel.Label())
	if stats != nil {
		t.printf("Orders: %d total, %d paid\n", stats.TotalOrders, stats.PaidOrders)
	}
}

func (t *Terminal) PromptLogin() {
	t.printf("Please log in: login <user> <password>\n")
}

func (t *Terminal) ShowPanel(panel state.Panel) {
	switch panel {
	case state.PanelMember:
		t.printf("== Member center ==\n")
	default:
		t.printf("== Catalog ==\n")
	}
}
