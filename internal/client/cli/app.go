// Package cli is the terminal front end: a small read-eval-print loop over
// the client store, rendering the user list as a table and driving the
// add/edit/delete flows with inline prompts.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"userbase/internal/apperrors"
	"userbase/internal/client"
	"userbase/internal/models"
	"userbase/internal/services"
)

// App wires the store to an input reader and output writer. Tests drive it
// with scripted input and a buffer.
type App struct {
	store *client.Store
	in    *bufio.Reader
	out   io.Writer
}

// NewApp creates a new App.
func NewApp(store *client.Store, in io.Reader, out io.Writer) *App {
	return &App{
		store: store,
		in:    bufio.NewReader(in),
		out:   out,
	}
}

// Run fetches the initial list and enters the command loop. It returns
// when the user exits or input reaches EOF.
func (a *App) Run(ctx context.Context) {
	if err := a.store.FetchUsers(ctx); err != nil {
		fmt.Fprintln(a.out, "Failed to fetch users")
	} else {
		a.renderTable()
	}

	for {
		line, err := promptLine(a.in, "users> ", a.out)
		if err != nil {
			return
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "help":
			fmt.Fprintln(a.out, "Available commands: list, add, edit <id>, delete <id>, help, exit")
		case "list":
			a.list(ctx)
		case "add":
			a.add(ctx)
		case "edit":
			if len(fields) < 2 {
				fmt.Fprintln(a.out, "Usage: edit <id>")
				continue
			}
			a.edit(ctx, fields[1])
		case "delete":
			if len(fields) < 2 {
				fmt.Fprintln(a.out, "Usage: delete <id>")
				continue
			}
			a.delete(ctx, fields[1])
		case "exit", "quit":
			return
		default:
			fmt.Fprintf(a.out, "Unknown command: %s (try 'help')\n", fields[0])
		}
	}
}

// list re-fetches the collection and renders it.
func (a *App) list(ctx context.Context) {
	if err := a.store.FetchUsers(ctx); err != nil {
		fmt.Fprintln(a.out, "Failed to fetch users")
		return
	}
	a.renderTable()
}

// renderTable prints the current list. Passwords are shown as-is: the
// server returns them in plain text and the table mirrors the server.
func (a *App) renderTable() {
	state := a.store.State()

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tPASSWORD")
	for _, u := range state.List {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Password)
	}
	w.Flush()
	fmt.Fprintf(a.out, "%d user(s)\n", len(state.List))
}

// add prompts for the three fields, validates locally with the same rules
// the server applies, and dispatches the create operation.
func (a *App) add(ctx context.Context) {
	name, err := promptLine(a.in, "Name: ", a.out)
	if err != nil {
		return
	}
	email, err := promptLine(a.in, "Email: ", a.out)
	if err != nil {
		return
	}
	password, err := promptLine(a.in, "Password: ", a.out)
	if err != nil {
		return
	}

	user := models.User{Name: name, Email: email, Password: password}
	user.Normalize()
	if err := user.Validate(); err != nil {
		a.printViolations(err)
		return
	}

	if err := a.store.CreateUser(ctx, user); err != nil {
		a.notifyFailure("create", err)
		return
	}
	fmt.Fprintln(a.out, "User created successfully")
}

// edit prompts per field; empty input keeps the current value, so the
// dispatched update carries only the changed fields.
func (a *App) edit(ctx context.Context, id string) {
	current, ok := a.findUser(id)
	if !ok {
		fmt.Fprintln(a.out, "No such user in the list (try 'list' first)")
		return
	}

	name, err := promptLine(a.in, fmt.Sprintf("Name [%s]: ", current.Name), a.out)
	if err != nil {
		return
	}
	email, err := promptLine(a.in, fmt.Sprintf("Email [%s]: ", current.Email), a.out)
	if err != nil {
		return
	}
	password, err := promptLine(a.in, "Password [unchanged]: ", a.out)
	if err != nil {
		return
	}

	var input services.UpdateUserInput
	candidate := current
	if name != "" {
		input.Name = &name
		candidate.Name = name
	}
	if email != "" {
		input.Email = &email
		candidate.Email = email
	}
	if password != "" {
		input.Password = &password
		candidate.Password = password
	}
	if input.Name == nil && input.Email == nil && input.Password == nil {
		fmt.Fprintln(a.out, "Nothing to update")
		return
	}

	candidate.Normalize()
	if err := candidate.Validate(); err != nil {
		a.printViolations(err)
		return
	}

	if err := a.store.UpdateUser(ctx, id, input); err != nil {
		a.notifyFailure("update", err)
		return
	}
	fmt.Fprintln(a.out, "User updated successfully")
}

// delete asks for confirmation before dispatching the delete operation.
func (a *App) delete(ctx context.Context, id string) {
	yes, err := confirm(a.in, "Are you sure to delete this user?", a.out)
	if err != nil || !yes {
		return
	}

	if err := a.store.DeleteUser(ctx, id); err != nil {
		a.notifyFailure("delete", err)
		return
	}
	fmt.Fprintln(a.out, "User deleted successfully")
}

// notifyFailure prints the single transient failure line for an operation.
// Duplicate-email conflicts get their own wording; everything else
// collapses to the generic message.
func (a *App) notifyFailure(op string, err error) {
	if errors.Is(err, apperrors.ErrEmailExists) {
		fmt.Fprintln(a.out, "Email already exists")
		return
	}
	fmt.Fprintf(a.out, "Failed to %s user\n", op)
}

// printViolations lists the per-field messages of a local validation
// failure without issuing a request.
func (a *App) printViolations(err error) {
	var ve *apperrors.ValidationError
	if errors.As(err, &ve) {
		for _, msg := range ve.Fields {
			fmt.Fprintln(a.out, msg)
		}
		return
	}
	fmt.Fprintln(a.out, err.Error())
}

func (a *App) findUser(id string) (models.User, bool) {
	for _, u := range a.store.State().List {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}
