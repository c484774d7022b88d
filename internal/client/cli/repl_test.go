package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool
	admin    bool

	calls []string
	arg   string
	extra string
}

func (f *fakeExec) record(name string) error { f.calls = append(f.calls, name); return nil }
func (f *fakeExec) recordArg(name, arg string) error {
	f.calls = append(f.calls, name)
	f.arg = arg
	return nil
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) isAdmin() bool    { return f.admin }

func (f *fakeExec) Register(ctx context.Context) error { return f.record("register") }
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) WhoAmI(ctx context.Context) error { return f.record("whoami") }

func (f *fakeExec) Tabs(ctx context.Context) error { return f.record("tabs") }
func (f *fakeExec) SwitchTab(ctx context.Context, name string) error {
	return f.recordArg("tab", name)
}
func (f *fakeExec) List(ctx context.Context) error     { return f.record("list") }
func (f *fakeExec) NextPage(ctx context.Context) error { return f.record("next") }
func (f *fakeExec) PrevPage(ctx context.Context) error { return f.record("prev") }
func (f *fakeExec) Show(ctx context.Context, id string) error {
	return f.recordArg("show", id)
}
func (f *fakeExec) SetFilter(ctx context.Context, args []string) error { return f.record("filter") }

func (f *fakeExec) Search(ctx context.Context, query string) error {
	return f.recordArg("search", query)
}
func (f *fakeExec) ReadBook(ctx context.Context, id string) error { return f.recordArg("read", id) }
func (f *fakeExec) Upgrade(ctx context.Context, level string) error {
	return f.recordArg("upgrade", level)
}

func (f *fakeExec) Profile(ctx context.Context) error     { return f.record("profile") }
func (f *fakeExec) EditProfile(ctx context.Context) error { return f.record("editprofile") }
func (f *fakeExec) UploadAvatar(ctx context.Context, path string) error {
	return f.recordArg("avatar", path)
}
func (f *fakeExec) RemoveAvatar(ctx context.Context) error { return f.record("rmavatar") }

func (f *fakeExec) AddBook(ctx context.Context) error { return f.record("addbook") }
func (f *fakeExec) EditBook(ctx context.Context, id string) error {
	return f.recordArg("editbook", id)
}
func (f *fakeExec) DeleteBook(ctx context.Context, id string) error {
	return f.recordArg("delbook", id)
}
func (f *fakeExec) UploadBookFile(ctx context.Context, id, path string) error {
	f.extra = path
	return f.recordArg("upload", id)
}
func (f *fakeExec) UploadBookCover(ctx context.Context, id, path string) error {
	f.extra = path
	return f.recordArg("cover", id)
}

func (f *fakeExec) AddCategory(ctx context.Context) error { return f.record("addcat") }
func (f *fakeExec) EditCategory(ctx context.Context, id string) error {
	return f.recordArg("editcat", id)
}
func (f *fakeExec) DeleteCategory(ctx context.Context, id string) error {
	return f.recordArg("delcat", id)
}

func (f *fakeExec) EditUser(ctx context.Context, id string) error {
	return f.recordArg("edituser", id)
}
func (f *fakeExec) DeleteUser(ctx context.Context, id string) error {
	return f.recordArg("deluser", id)
}
func (f *fakeExec) SetSubscription(ctx context.Context, id, level string) error {
	f.extra = level
	return f.recordArg("setsub", id)
}
func (f *fakeExec) Traffic(ctx context.Context, id string) error {
	return f.recordArg("traffic", id)
}

func (f *fakeExec) Requests(ctx context.Context) error { return f.record("requests") }
func (f *fakeExec) Approve(ctx context.Context, id string) error {
	return f.recordArg("approve", id)
}
func (f *fakeExec) Reject(ctx context.Context, id, message string) error {
	f.extra = message
	return f.recordArg("reject", id)
}
func (f *fakeExec) Analytics(ctx context.Context) error { return f.record("analytics") }

func muteOutput(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	muteOutput(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"help",
		"tab books",
		"list",
		"show 12",
		"next",
		"prev",
		"foobar",
		"exit",
	}, "\n"))

	exec := &fakeExec{loggedIn: false}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "status" }, sc)

	wantOrder := []string{"login", "tab", "list", "show", "next", "prev"}
	if len(exec.calls) < len(wantOrder) {
		t.Fatalf("few calls: %+v", exec.calls)
	}
	idx := 0
	for _, c := range exec.calls {
		if idx < len(wantOrder) && c == wantOrder[idx] {
			idx++
		}
	}
	if idx != len(wantOrder) {
		t.Fatalf("commands order mismatch: got %v, want subseq %v", exec.calls, wantOrder)
	}
	if exec.arg != "12" {
		t.Fatalf("show arg = %q, want %q", exec.arg, "12")
	}
}

func TestRunREPL_UsageAndQuit(t *testing.T) {
	muteOutput(t)

	input := strings.NewReader("show\ntab\nreject 3\nquit\n")
	exec := &fakeExec{loggedIn: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}

func TestRunREPL_SearchJoinsQuery(t *testing.T) {
	muteOutput(t)

	input := strings.NewReader("search machine learning basics\nexit\n")
	exec := &fakeExec{loggedIn: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "" }, sc)

	if exec.arg != "machine learning basics" {
		t.Fatalf("search query = %q", exec.arg)
	}
}

func TestRunREPL_RejectJoinsMessage(t *testing.T) {
	muteOutput(t)

	input := strings.NewReader("reject 3 quota exceeded for this term\nexit\n")
	exec := &fakeExec{loggedIn: true, admin: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "" }, sc)

	if exec.arg != "3" || exec.extra != "quota exceeded for this term" {
		t.Fatalf("reject args = %q %q", exec.arg, exec.extra)
	}
}
