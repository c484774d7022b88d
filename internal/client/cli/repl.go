package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error

	Tabs(ctx context.Context) error
	SwitchTab(ctx context.Context, name string) error
	List(ctx context.Context) error
	NextPage(ctx context.Context) error
	PrevPage(ctx context.Context) error
	Show(ctx context.Context, id string) error
	SetFilter(ctx context.Context, args []string) error

	Search(ctx context.Context, query string) error
	ReadBook(ctx context.Context, id string) error
	Upgrade(ctx context.Context, level string) error

	Profile(ctx context.Context) error
	EditProfile(ctx context.Context) error
	UploadAvatar(ctx context.Context, path string) error
	RemoveAvatar(ctx context.Context) error

	AddBook(ctx context.Context) error
	EditBook(ctx context.Context, id string) error
	DeleteBook(ctx context.Context, id string) error
	UploadBookFile(ctx context.Context, id, path string) error
	UploadBookCover(ctx context.Context, id, path string) error

	AddCategory(ctx context.Context) error
	EditCategory(ctx context.Context, id string) error
	DeleteCategory(ctx context.Context, id string) error

	EditUser(ctx context.Context, id string) error
	DeleteUser(ctx context.Context, id string) error
	SetSubscription(ctx context.Context, id, level string) error
	Traffic(ctx context.Context, id string) error

	Requests(ctx context.Context) error
	Approve(ctx context.Context, id string) error
	Reject(ctx context.Context, id, message string) error
	Analytics(ctx context.Context) error
}

// runREPL starts a read-eval-print loop for the BookGenie CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers print
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("bg %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			printHelp(a)

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "tabs":
			_ = a.Tabs(ctx)

		case "tab":
			if len(args) == 0 {
				printlnFn("Usage: tab <name>")
				continue
			}
			_ = a.SwitchTab(ctx, args[0])

		case "l", "list":
			_ = a.List(ctx)

		case "next":
			_ = a.NextPage(ctx)

		case "prev":
			_ = a.PrevPage(ctx)

		case "show":
			if len(args) == 0 {
				printlnFn("Usage: show <id>")
				continue
			}
			_ = a.Show(ctx, args[0])

		case "filter":
			_ = a.SetFilter(ctx, args)

		case "search":
			if len(args) == 0 {
				printlnFn("Usage: search <query>")
				continue
			}
			_ = a.Search(ctx, strings.Join(args, " "))

		case "read":
			if len(args) == 0 {
				printlnFn("Usage: read <id>")
				continue
			}
			_ = a.ReadBook(ctx, args[0])

		case "upgrade":
			if len(args) == 0 {
				printlnFn("Usage: upgrade <basic|premium>")
				continue
			}
			_ = a.Upgrade(ctx, args[0])

		case "profile":
			_ = a.Profile(ctx)

		case "editprofile":
			_ = a.EditProfile(ctx)

		case "avatar":
			if len(args) == 0 {
				printlnFn("Usage: avatar <path>")
				continue
			}
			_ = a.UploadAvatar(ctx, args[0])

		case "rmavatar":
			_ = a.RemoveAvatar(ctx)

		case "addbook":
			_ = a.AddBook(ctx)

		case "editbook":
			if len(args) == 0 {
				printlnFn("Usage: editbook <id>")
				continue
			}
			_ = a.EditBook(ctx, args[0])

		case "delbook":
			if len(args) == 0 {
				printlnFn("Usage: delbook <id>")
				continue
			}
			_ = a.DeleteBook(ctx, args[0])

		case "upload":
			if len(args) < 2 {
				printlnFn("Usage: upload <id> <path>")
				continue
			}
			_ = a.UploadBookFile(ctx, args[0], args[1])

		case "cover":
			if len(args) < 2 {
				printlnFn("Usage: cover <id> <path>")
				continue
			}
			_ = a.UploadBookCover(ctx, args[0], args[1])

		case "addcat":
			_ = a.AddCategory(ctx)

		case "editcat":
			if len(args) == 0 {
				printlnFn("Usage: editcat <id>")
				continue
			}
			_ = a.EditCategory(ctx, args[0])

		case "delcat":
			if len(args) == 0 {
				printlnFn("Usage: delcat <id>")
				continue
			}
			_ = a.DeleteCategory(ctx, args[0])

		case "edituser":
			if len(args) == 0 {
				printlnFn("Usage: edituser <id>")
				continue
			}
			_ = a.EditUser(ctx, args[0])

		case "deluser":
			if len(args) == 0 {
				printlnFn("Usage: deluser <id>")
				continue
			}
			_ = a.DeleteUser(ctx, args[0])

		case "setsub":
			if len(args) < 2 {
				printlnFn("Usage: setsub <id> <free|basic|premium>")
				continue
			}
			_ = a.SetSubscription(ctx, args[0], args[1])

		case "traffic":
			if len(args) == 0 {
				printlnFn("Usage: traffic <id>")
				continue
			}
			_ = a.Traffic(ctx, args[0])

		case "requests":
			_ = a.Requests(ctx)

		case "approve":
			if len(args) == 0 {
				printlnFn("Usage: approve <id>")
				continue
			}
			_ = a.Approve(ctx, args[0])

		case "reject":
			if len(args) < 2 {
				printlnFn("Usage: reject <id> <message>")
				continue
			}
			_ = a.Reject(ctx, args[0], strings.Join(args[1:], " "))

		case "analytics":
			_ = a.Analytics(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func printHelp(a execIface) {
	if !a.isLoggedIn() {
		printlnFn("Available commands: register, login, exit")
		return
	}
	printlnFn("Available commands: tabs, tab <name>, (l)ist, next, prev, show <id>, search <query>, read <id>, profile, editprofile, avatar <path>, rmavatar, whoami, logout, exit")
	if a.isAdmin() {
		printlnFn("Admin commands: addbook, editbook, delbook, upload, cover, filter, addcat, editcat, delcat, edituser, deluser, setsub, traffic, requests, approve, reject, analytics")
	} else {
		printlnFn("Subscription: upgrade <basic|premium>")
	}
}
