package commands_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"taskman/internal/commands"
	"taskman/internal/config"
	"taskman/internal/exitcode"
	"taskman/internal/service"
	"taskman/internal/session"
	"taskman/internal/testutil"
)

// runCommand is a helper to run a command against a session store and FakeService.
func runCommand(t *testing.T, cmd commands.Command, sess *session.Store, svc *testutil.FakeService, args []string, quiet bool) (stdout, stderr string, code int) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer

	cfg := &config.Config{
		Dir:    t.TempDir(),
		APIURL: config.DefaultAPIURL,
		Quiet:  quiet,
	}

	var s service.Service
	if svc != nil {
		s = svc
	}

	ctx := context.Background()
	code = cmd.Run(ctx, cfg, sess, s, args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

// openStore returns a store holding token, backed by auth.
func openStore(t *testing.T, token string, auth session.Authenticator) (*session.Store, *session.MemoryStore) {
	t.Helper()
	mem := session.NewMemoryStore(token)
	sess, err := session.Open(mem, auth)
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	return sess, mem
}

// fields splits output into lines of whitespace-separated fields.
func fields(out string) [][]string {
	var rows [][]string
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		rows = append(rows, strings.Fields(line))
	}
	return rows
}

// Tests for version command
func TestVersionCommand(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.VersionCmd{}, nil, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "taskman 0.1.0\n" {
		t.Errorf("expected version output, got %q", stdout)
	}
}

// Tests for help command
func TestHelpCommand(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.HelpCmd{}, nil, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	testutil.GoldenString(t, "help", stdout)
}

func TestHelpMentionsEveryCommand(t *testing.T) {
	stdout, _, _ := runCommand(t, &commands.HelpCmd{}, nil, nil, nil, false)
	for _, cmd := range commands.DefaultRegistry.All() {
		if !strings.Contains(stdout, "taskman "+cmd.Name()) {
			t.Errorf("help does not mention %s", cmd.Name())
		}
	}
}

func TestRegistry_Aliases(t *testing.T) {
	for alias, name := range map[string]string{"ls": "list", "create": "add", "delete": "rm"} {
		cmd, ok := commands.DefaultRegistry.Find(alias)
		if !ok {
			t.Errorf("alias %s not registered", alias)
			continue
		}
		if cmd.Name() != name {
			t.Errorf("alias %s resolves to %s, want %s", alias, cmd.Name(), name)
		}
	}
}

func TestRegistry_RejectsDuplicates(t *testing.T) {
	r := commands.NewRegistry()
	if err := r.Register(&commands.ListCmd{}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := r.Register(&commands.ListCmd{}); err == nil {
		t.Error("expected error registering list twice")
	}
	if len(r.All()) != 1 {
		t.Errorf("expected 1 command, got %d", len(r.All()))
	}
}

// Tests for list command
func TestListCommand_WithTasks(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("t1", "Buy milk", service.StatusPending)
	svc.AddTask("t2", "Buy eggs", service.StatusCompleted)
	sess, _ := openStore(t, "tok", nil)

	stdout, stderr, code := runCommand(t, &commands.ListCmd{}, sess, svc, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}

	rows := fields(stdout)
	expected := [][]string{
		{"ID", "STATUS", "CREATED", "TITLE"},
		{"t1", "pending", "2024-05-01", "Buy", "milk"},
		{"t2", "completed", "2024-05-01", "Buy", "eggs"},
	}
	if len(rows) != len(expected) {
		t.Fatalf("expected %d lines, got %q", len(expected), stdout)
	}
	for i := range expected {
		if strings.Join(rows[i], " ") != strings.Join(expected[i], " ") {
			t.Errorf("line %d: expected %v, got %v", i, expected[i], rows[i])
		}
	}
}

func TestListCommand_Empty(t *testing.T) {
	svc := testutil.NewFakeService()
	sess, _ := openStore(t, "tok", nil)

	stdout, _, code := runCommand(t, &commands.ListCmd{}, sess, svc, nil, false)
	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "no tasks found\n" {
		t.Errorf("expected 'no tasks found', got %q", stdout)
	}

	// Quiet mode should suppress "no tasks found"
	stdout, _, _ = runCommand(t, &commands.ListCmd{}, sess, svc, nil, true)
	if stdout != "" {
		t.Errorf("expected empty stdout in quiet mode, got %q", stdout)
	}
}

func TestListCommand_BackendError(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.ListTasksErr = errors.New("connection refused")
	sess, _ := openStore(t, "tok", nil)

	stdout, stderr, code := runCommand(t, &commands.ListCmd{}, sess, svc, nil, false)

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	expected := "error: failed to fetch tasks, please try again later\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestListCommand_UnexpectedArgument(t *testing.T) {
	sess, _ := openStore(t, "tok", nil)
	_, stderr, code := runCommand(t, &commands.ListCmd{}, sess, testutil.NewFakeService(), []string{"extra"}, false)
	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: unexpected argument: extra\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

// Tests for show command
func TestShowCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("t1", "Buy milk", service.StatusInProgress)
	sess, _ := openStore(t, "tok", nil)

	stdout, stderr, code := runCommand(t, &commands.ShowCmd{}, sess, svc, []string{"t1"}, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (%s)", exitcode.Success, code, stderr)
	}
	expected := "id:       t1\n" +
		"title:    Buy milk\n" +
		"status:   in_progress\n" +
		"created:  2024-05-01 10:00:00\n" +
		"updated:  2024-05-01 10:00:00\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestShowCommand_Errors(t *testing.T) {
	sess, _ := openStore(t, "tok", nil)

	_, stderr, code := runCommand(t, &commands.ShowCmd{}, sess, testutil.NewFakeService(), nil, false)
	if code != exitcode.UserError || stderr != "error: task id required\n" {
		t.Errorf("missing id: got %d %q", code, stderr)
	}

	_, stderr, code = runCommand(t, &commands.ShowCmd{}, sess, testutil.NewFakeService(), []string{"nope"}, false)
	if code != exitcode.BackendError || stderr != "error: error fetching task\n" {
		t.Errorf("unknown id: got %d %q", code, stderr)
	}
}

// Tests for add command
func TestAddCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	sess, _ := openStore(t, "tok", nil)

	cmd := &commands.AddCmd{}
	cmd.SetFields("two liters", "in-progress")
	stdout, stderr, code := runCommand(t, cmd, sess, svc, []string{"Buy", "milk"}, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (%s)", exitcode.Success, code, stderr)
	}
	tasks := svc.Tasks()
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	got := tasks[0]
	if got.Title != "Buy milk" || got.Description != "two liters" || got.Status != service.StatusInProgress {
		t.Errorf("unexpected task %+v", got)
	}
	if stdout != "ok "+got.ID+"\n" {
		t.Errorf("expected 'ok <id>', got %q", stdout)
	}
}

func TestAddCommand_Quiet(t *testing.T) {
	svc := testutil.NewFakeService()
	sess, _ := openStore(t, "tok", nil)

	stdout, _, code := runCommand(t, &commands.AddCmd{}, sess, svc, []string{"Quiet"}, true)
	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	if svc.Tasks()[0].Status != service.StatusPending {
		t.Errorf("expected default status pending, got %q", svc.Tasks()[0].Status)
	}
}

func TestAddCommand_TitleRequired(t *testing.T) {
	svc := testutil.NewFakeService()
	sess, _ := openStore(t, "tok", nil)

	for _, args := range [][]string{nil, {"  "}} {
		_, stderr, code := runCommand(t, &commands.AddCmd{}, sess, svc, args, false)
		if code != exitcode.UserError {
			t.Errorf("args %q: expected exit code %d, got %d", args, exitcode.UserError, code)
		}
		if stderr != "error: title required\n" {
			t.Errorf("args %q: unexpected stderr %q", args, stderr)
		}
	}
	if len(svc.Calls()) != 0 {
		t.Error("no request should be sent without a title")
	}
}

func TestAddCommand_InvalidStatus(t *testing.T) {
	svc := testutil.NewFakeService()
	sess, _ := openStore(t, "tok", nil)

	cmd := &commands.AddCmd{}
	cmd.SetFields("", "done")
	_, stderr, code := runCommand(t, cmd, sess, svc, []string{"x"}, false)
	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.HasPrefix(stderr, "error: invalid status: done") {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestAddCommand_BackendError(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.CreateTaskErr = errors.New("503")
	sess, _ := openStore(t, "tok", nil)

	_, stderr, code := runCommand(t, &commands.AddCmd{}, sess, svc, []string{"x"}, false)
	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if stderr != "error: error saving task\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

// Tests for edit command
func TestEditCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("t1", "Draft", service.StatusPending)
	sess, _ := openStore(t, "tok", nil)

	cmd := &commands.EditCmd{}
	cmd.SetStatus("completed")
	stdout, stderr, code := runCommand(t, cmd, sess, svc, []string{"t1"}, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (%s)", exitcode.Success, code, stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok', got %q", stdout)
	}

	calls := svc.Calls()
	last := calls[len(calls)-1]
	if last.Method != "UpdateTask" || last.ID != "t1" {
		t.Fatalf("expected UpdateTask(t1), got %+v", last)
	}
	if last.Input.Title != "Draft" || last.Input.Status != service.StatusCompleted {
		t.Errorf("expected title kept and status replaced, got %+v", last.Input)
	}
}

func TestEditCommand_ClearDescription(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("t1", "Draft", service.StatusPending)
	sess, _ := openStore(t, "tok", nil)
	if _, err := svc.UpdateTask(context.Background(), "t1", service.TaskInput{Title: "Draft", Description: "old"}); err != nil {
		t.Fatal(err)
	}

	cmd := &commands.EditCmd{}
	cmd.SetDescription("")
	if _, stderr, code := runCommand(t, cmd, sess, svc, []string{"t1"}, true); code != exitcode.Success {
		t.Fatalf("expected success, got %d (%s)", code, stderr)
	}
	if got := svc.Tasks()[0].Description; got != "" {
		t.Errorf("expected description cleared, got %q", got)
	}
}

func TestEditCommand_NothingToChange(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("t1", "Draft", service.StatusPending)
	sess, _ := openStore(t, "tok", nil)

	_, _, code := runCommand(t, &commands.EditCmd{}, sess, svc, []string{"t1"}, false)
	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if len(svc.Calls()) != 0 {
		t.Error("no request expected")
	}
}

func TestEditCommand_EmptyTitle(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("t1", "Draft", service.StatusPending)
	sess, _ := openStore(t, "tok", nil)

	cmd := &commands.EditCmd{}
	cmd.SetTitle(" ")
	_, stderr, code := runCommand(t, cmd, sess, svc, []string{"t1"}, false)
	if code != exitcode.UserError || stderr != "error: title required\n" {
		t.Errorf("got %d %q", code, stderr)
	}
}

func TestEditCommand_UnknownTask(t *testing.T) {
	sess, _ := openStore(t, "tok", nil)

	cmd := &commands.EditCmd{}
	cmd.SetTitle("x")
	_, stderr, code := runCommand(t, cmd, sess, testutil.NewFakeService(), []string{"missing"}, false)
	if code != exitcode.BackendError || stderr != "error: error fetching task\n" {
		t.Errorf("got %d %q", code, stderr)
	}
}

// Tests for rm command
func TestRmCommand_Confirmed(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("t1", "Buy milk", service.StatusPending)
	svc.AddTask("t2", "Buy eggs", service.StatusPending)
	sess, _ := openStore(t, "tok", nil)

	cmd := &commands.RmCmd{}
	cmd.SetInput(strings.NewReader("y\n"))
	stdout, stderr, code := runCommand(t, cmd, sess, svc, []string{"t1"}, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (%s)", exitcode.Success, code, stderr)
	}
	if stderr != `delete task "Buy milk"? [y/N] ` {
		t.Errorf("unexpected prompt %q", stderr)
	}
	rows := fields(stdout)
	if len(rows) != 3 || rows[0][0] != "ok" || rows[2][0] != "t2" {
		t.Errorf("expected ok followed by the remaining list, got %q", stdout)
	}
	if len(svc.Tasks()) != 1 {
		t.Errorf("expected 1 task left, got %d", len(svc.Tasks()))
	}
}

func TestRmCommand_Declined(t *testing.T) {
	for _, answer := range []string{"n\n", "\n", "maybe\n", ""} {
		svc := testutil.NewFakeService()
		svc.AddTask("t1", "Buy milk", service.StatusPending)
		sess, _ := openStore(t, "tok", nil)

		cmd := &commands.RmCmd{}
		cmd.SetInput(strings.NewReader(answer))
		stdout, _, code := runCommand(t, cmd, sess, svc, []string{"t1"}, false)

		if code != exitcode.Success {
			t.Errorf("answer %q: expected exit code %d, got %d", answer, exitcode.Success, code)
		}
		if stdout != "cancelled\n" {
			t.Errorf("answer %q: expected 'cancelled', got %q", answer, stdout)
		}
		if len(svc.Tasks()) != 1 {
			t.Errorf("answer %q: task deleted despite declining", answer)
		}
	}
}

func TestRmCommand_Yes(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("t1", "Buy milk", service.StatusPending)
	sess, _ := openStore(t, "tok", nil)

	cmd := &commands.RmCmd{}
	cmd.SetYes(true)
	stdout, stderr, code := runCommand(t, cmd, sess, svc, []string{"t1"}, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no prompt with --yes, got %q", stderr)
	}
	if stdout != "ok\nno tasks found\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
}

func TestRmCommand_NotFound(t *testing.T) {
	sess, _ := openStore(t, "tok", nil)
	cmd := &commands.RmCmd{}
	cmd.SetYes(true)

	_, stderr, code := runCommand(t, cmd, sess, testutil.NewFakeService(), []string{"nope"}, false)
	if code != exitcode.UserError || stderr != "error: task not found: nope\n" {
		t.Errorf("got %d %q", code, stderr)
	}
}

func TestRmCommand_DeleteFails(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("t1", "Buy milk", service.StatusPending)
	svc.DeleteTaskErr = errors.New("500")
	sess, _ := openStore(t, "tok", nil)

	cmd := &commands.RmCmd{}
	cmd.SetYes(true)
	stdout, stderr, code := runCommand(t, cmd, sess, svc, []string{"t1"}, false)

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	if stderr != "error: failed to delete task, please try again later\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

// Tests for login and register
func TestLoginCommand(t *testing.T) {
	auth := testutil.NewFakeAuth()
	auth.AddUser("alice", "secret")
	sess, mem := openStore(t, "", auth)

	cmd := &commands.LoginCmd{}
	cmd.SetCredentials("alice", "secret")
	stdout, stderr, code := runCommand(t, cmd, sess, nil, nil, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (%s)", exitcode.Success, code, stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok', got %q", stdout)
	}
	if tok, _ := mem.Load(); tok != testutil.TokenFor("alice") {
		t.Errorf("expected token persisted, got %q", tok)
	}
}

func TestLoginCommand_PasswordFromStdin(t *testing.T) {
	t.Setenv(commands.PasswordEnv, "")
	auth := testutil.NewFakeAuth()
	auth.AddUser("alice", "from stdin")
	sess, _ := openStore(t, "", auth)

	cmd := &commands.LoginCmd{}
	cmd.SetCredentials("", "")
	cmd.SetInput(strings.NewReader("from stdin\r\nignored\n"))
	_, stderr, code := runCommand(t, cmd, sess, nil, []string{"alice"}, true)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (%s)", exitcode.Success, code, stderr)
	}
	if !sess.Authenticated() {
		t.Error("expected a session")
	}
}

func TestLoginCommand_PasswordFromEnv(t *testing.T) {
	t.Setenv(commands.PasswordEnv, "env-secret")
	auth := testutil.NewFakeAuth()
	auth.AddUser("alice", "env-secret")
	sess, _ := openStore(t, "", auth)

	cmd := &commands.LoginCmd{}
	cmd.SetCredentials("alice", "")
	cmd.SetInput(strings.NewReader(""))
	if _, stderr, code := runCommand(t, cmd, sess, nil, nil, true); code != exitcode.Success {
		t.Fatalf("expected success, got %d (%s)", code, stderr)
	}
}

func TestLoginCommand_MissingCredentials(t *testing.T) {
	t.Setenv(commands.PasswordEnv, "")
	sess, _ := openStore(t, "", testutil.NewFakeAuth())

	cmd := &commands.LoginCmd{}
	cmd.SetCredentials("", "x")
	_, stderr, code := runCommand(t, cmd, sess, nil, nil, false)
	if code != exitcode.UserError || stderr != "error: username required\n" {
		t.Errorf("got %d %q", code, stderr)
	}

	cmd = &commands.LoginCmd{}
	cmd.SetCredentials("alice", "")
	cmd.SetInput(strings.NewReader(""))
	_, stderr, code = runCommand(t, cmd, sess, nil, nil, false)
	if code != exitcode.UserError || stderr != "error: password required\n" {
		t.Errorf("got %d %q", code, stderr)
	}
}

func TestLoginCommand_Failure(t *testing.T) {
	auth := testutil.NewFakeAuth()
	auth.AddUser("alice", "secret")
	sess, mem := openStore(t, "old-token", auth)

	cmd := &commands.LoginCmd{}
	cmd.SetCredentials("alice", "wrong")
	stdout, stderr, code := runCommand(t, cmd, sess, nil, nil, false)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	if stderr != "error: login failed: invalid credentials\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if tok, _ := mem.Load(); tok != "old-token" {
		t.Errorf("failed login must keep the prior token, got %q", tok)
	}
}

func TestRegisterCommand(t *testing.T) {
	auth := testutil.NewFakeAuth()
	sess, _ := openStore(t, "", auth)

	cmd := &commands.RegisterCmd{}
	cmd.SetCredentials("bob", "hunter22")
	stdout, _, code := runCommand(t, cmd, sess, nil, nil, false)
	if code != exitcode.Success || stdout != "ok\n" {
		t.Fatalf("got %d %q", code, stdout)
	}
	if sess.Current().Token != testutil.TokenFor("bob") {
		t.Errorf("unexpected token %q", sess.Current().Token)
	}

	cmd = &commands.RegisterCmd{}
	cmd.SetCredentials("bob", "hunter22")
	_, stderr, code := runCommand(t, cmd, sess, nil, nil, false)
	if code != exitcode.AuthError || stderr != "error: registration failed: user already exists\n" {
		t.Errorf("got %d %q", code, stderr)
	}
}

// Tests for logout
func TestLogoutCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, config.TokenFile)
	if err := os.WriteFile(path, []byte("tok\n"), 0600); err != nil {
		t.Fatal(err)
	}
	sess, err := session.Open(session.NewFileStore(path), nil)
	if err != nil {
		t.Fatal(err)
	}

	stdout, _, code := runCommand(t, &commands.LogoutCmd{}, sess, nil, nil, false)
	if code != exitcode.Success || stdout != "ok\n" {
		t.Errorf("got %d %q", code, stdout)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("token file should be removed")
	}

	stdout, _, code = runCommand(t, &commands.LogoutCmd{}, sess, nil, nil, false)
	if code != exitcode.Success || stdout != "not logged in\n" {
		t.Errorf("second logout: got %d %q", code, stdout)
	}
}

// Tests for status
func TestStatusCommand_NotLoggedIn(t *testing.T) {
	sess, _ := openStore(t, "", nil)
	stdout, _, code := runCommand(t, &commands.StatusCmd{}, sess, nil, nil, false)
	if code != exitcode.Success || stdout != "not logged in\n" {
		t.Errorf("got %d %q", code, stdout)
	}
}

func TestStatusCommand_OpaqueToken(t *testing.T) {
	sess, _ := openStore(t, "opaque", nil)
	stdout, _, code := runCommand(t, &commands.StatusCmd{}, sess, nil, nil, false)
	expected := "logged in\napi:      " + config.DefaultAPIURL + "\n"
	if code != exitcode.Success || stdout != expected {
		t.Errorf("got %d %q", code, stdout)
	}
}

func TestStatusCommand_JWT(t *testing.T) {
	issued := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "alice",
		IssuedAt:  jwt.NewNumericDate(issued),
		ExpiresAt: jwt.NewNumericDate(issued.Add(time.Hour)),
	}).SignedString([]byte("k"))
	if err != nil {
		t.Fatal(err)
	}
	sess, _ := openStore(t, tok, nil)

	cmd := &commands.StatusCmd{}
	cmd.SetNow(func() time.Time { return issued.Add(30 * time.Minute) })
	stdout, _, _ := runCommand(t, cmd, sess, nil, nil, false)
	if !strings.Contains(stdout, "user:     alice\n") {
		t.Errorf("expected user line, got %q", stdout)
	}
	if !strings.Contains(stdout, "expires:  2024-05-01T11:00:00Z\n") {
		t.Errorf("expected expiry line, got %q", stdout)
	}

	cmd.SetNow(func() time.Time { return issued.Add(2 * time.Hour) })
	stdout, _, _ = runCommand(t, cmd, sess, nil, nil, false)
	if !strings.Contains(stdout, "(expired)") {
		t.Errorf("expected expired marker, got %q", stdout)
	}
}
