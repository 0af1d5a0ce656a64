package main

import (
	"context"
	"fmt"
	"storefront-client/internal/handler"
	"storefront-client/internal/notify"
	"storefront-client/internal/view"
	"strconv"
	"strings"
)

const usage = `commands:
  login <user> <password>
  register <user> <password> <password>
  category <all|novel|music|anime|wallpaper>
  buy <content-id>
  pay <order-id>
  member          open the member center
  home            back to the catalog
  logout
  messages        show recent messages
  help
  quit`

type shell struct {
	handler *handler.Handler
	term    *view.Terminal
	notices *notify.Stack
}

// run reads commands until quit, EOF or ctx is done. Workflow errors have
// already been shown to the user, so they do not stop the loop.
func (s *shell) run(ctx context.Context) error {
	s.term.Notify("type help for commands", notify.Info)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Print("> ")
		line, err := s.term.ReadLine()
		if err != nil {
			return err
		}
		if quit := s.dispatch(ctx, strings.Fields(line)); quit {
			return nil
		}
	}
}

func (s *shell) dispatch(ctx context.Context, args []string) bool {
	if len(args) == 0 {
		return false
	}

	switch cmd, rest := args[0], args[1:]; cmd {
	case "quit", "exit":
		return true
	case "help":
		fmt.Println(usage)
	case "login":
		if len(rest) != 2 {
			fmt.Println("usage: login <user> <password>")
			break
		}
		_ = s.handler.OnSubmitLogin(ctx, rest[0], rest[1])
	case "register":
		if len(rest) != 3 {
			fmt.Println("usage: register <user> <password> <password>")
			break
		}
		_ = s.handler.OnSubmitRegister(ctx, rest[0], rest[1], rest[2])
	case "category":
		if len(rest) != 1 {
			fmt.Println("usage: category <name>")
			break
		}
		_ = s.handler.OnSelectCategory(ctx, rest[0])
	case "buy":
		if id, ok := parseID(rest); ok {
			_ = s.handler.OnBuy(ctx, id)
		}
	case "pay":
		if id, ok := parseID(rest); ok {
			_ = s.handler.OnPayOrder(ctx, id)
		}
	case "member":
		_ = s.handler.OnOpenUserPanel(ctx)
	case "home":
		_ = s.handler.OnReturnHome(ctx)
	case "logout":
		s.handler.OnLogout(ctx)
	case "messages":
		s.term.PrintNotifications(s.notices.Visible())
	default:
		fmt.Printf("unknown command %q, type help\n", cmd)
	}
	return false
}

func parseID(args []string) (int64, bool) {
	if len(args) != 1 {
		fmt.Println("expected one numeric id")
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		fmt.Printf("invalid id %q\n", args[0])
		return 0, false
	}
	return id, true
}
