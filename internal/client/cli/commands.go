package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/arabica/internal/authrpc"
)

func (a *App) register(ctx context.Context) error {

	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	name, err := GetSimpleText(a.reader, "Enter name (optional)", a.out)
	if err != nil {
		return err
	}

	resp, err := a.client.Register(ctx, email, string(password), name)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Registered")
	a.printAuth(resp)
	return nil
}

func (a *App) login(ctx context.Context) error {

	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	resp, err := a.client.Login(ctx, email, string(password))
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Login successful")
	a.printAuth(resp)
	return nil
}

func (a *App) printAuth(resp *authrpc.AuthResponse) {
	a.printUser(resp.User)
	fmt.Fprintf(a.out, "Token expires in %s (%s)\n", resp.ExpiresIn, resp.ExpiresAt.Local().Format(time.RFC3339))
	fmt.Fprintf(a.out, "export ARABICA_TOKEN=%s\n", resp.Token)
}

func (a *App) printUser(u authrpc.User) {
	fmt.Fprintf(a.out, "User: %s <%s> id=%s\n", u.Name, u.Email, u.ID)
}

func (a *App) check(ctx context.Context) error {
	token, err := a.token()
	if err != nil {
		return err
	}

	user, err := a.client.Check(ctx, token)
	if err != nil {
		return err
	}
	a.printUser(*user)
	return nil
}

func (a *App) logout(ctx context.Context) error {
	token, err := a.token()
	if err != nil {
		return err
	}

	if err := a.client.Logout(ctx, token); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) sessions(ctx context.Context) error {
	token, err := a.token()
	if err != nil {
		return err
	}

	list, err := a.client.Sessions(ctx, token)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%d active session(s)\n", len(list))
	for _, s := range list {
		marker := " "
		if s.Current {
			marker = "*"
		}
		fmt.Fprintf(a.out, "%s %s  %s  %s  %s\n", marker, s.ID, s.CreatedAt.Local().Format(time.RFC3339), s.IP, s.UserAgent)
	}
	return nil
}

func (a *App) ping(ctx context.Context) error {
	if err := a.client.Ping(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Server is up")
	return nil
}
