package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/brocat-app/brocat/internal/client/nav"
)

func (a *App) prompt() string {
	st := a.session.Store().State()
	if st.IsAuth && st.User != nil {
		return fmt.Sprintf("brocat (%s)> ", st.User.Email)
	}
	return "brocat> "
}

// Root runs the command loop. Handlers report their own errors to the user;
// the loop only dispatches, so a failing command never ends the program.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "brocat catalog CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Fprint(a.out, a.prompt())
		if !scanner.Scan() {
			break
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			a.help()

		case "login":
			_ = a.Login(ctx)
		case "forgotpw":
			_ = a.ForgotPassword(ctx)
		case "resetpw":
			_ = a.ResetPassword(ctx)

		case "status":
			a.Status(ctx)
		case "validate":
			a.Validate(ctx)
		case "changepw":
			_ = a.ChangePassword(ctx)
		case "forcelogout":
			_ = a.ForceLogout(ctx)
		case "logout":
			a.Logout(ctx)

		case "topics":
			_ = a.Topics(ctx)
		case "topic":
			_ = a.Topic(ctx, args)
		case "pages":
			_ = a.Pages(ctx)
		case "refresh":
			_ = a.Refresh(ctx)
		case "log":
			a.CallLog()

		case "addtopic":
			_ = a.AddTopic(ctx, args)
		case "renametopic":
			_ = a.RenameTopic(ctx, args)
		case "deltopic":
			_ = a.DeleteTopic(ctx, args)
		case "addsub":
			_ = a.AddSubTopic(ctx, args)
		case "addsubtitle":
			_ = a.AddSubTitle(ctx, args)
		case "upload":
			_ = a.UploadImage(ctx, args)
		case "download":
			_ = a.DownloadImage(ctx, args)

		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return

		default:
			fmt.Fprintln(a.out, "Unknown command:", cmd)
		}
	}
}

func (a *App) help() {
	if a.isLoggedIn() {
		fmt.Fprintln(a.out, "Available commands: topics, topic <id>, pages, refresh, status, validate, changepw, forcelogout, log, logout, exit")
		fmt.Fprintln(a.out, "Admin commands: addtopic <name>, renametopic <id> <name>, deltopic <id>, addsub <topic-id> <name>, addsubtitle <sub-id> <title>, upload <file>, download <url> <path>")
	} else {
		fmt.Fprintln(a.out, "Available commands: login, forgotpw, resetpw, exit")
	}
}

// currentRoute is used by tests; the REPL itself keys off session state.
func (a *App) currentRoute() nav.Route {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.route
}
