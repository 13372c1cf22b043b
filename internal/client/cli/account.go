package cli

import (
	"context"
	"fmt"

	"impulselog/internal/client/client"
)

func (a *App) Account(ctx context.Context) error {
	user, err := a.api.CurrentUser(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "Error fetching account: %s\n", err)
		return err
	}

	fmt.Fprintf(a.out, "Username: %s\n", user.Username)
	fmt.Fprintf(a.out, "Email:    %s\n", user.Email)
	if user.FullName != "" {
		fmt.Fprintf(a.out, "Name:     %s\n", user.FullName)
	}
	fmt.Fprintf(a.out, "Joined:   %s\n", user.CreatedAt.Local().Format("2006-01-02"))
	return nil
}

// UpdateAccount prompts for profile changes. Empty answers leave the stored
// value untouched, matching the server's update semantics.
func (a *App) UpdateAccount(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "New email (Enter to keep)", a.out)
	if err != nil {
		return err
	}
	fullName, err := GetSimpleText(a.reader, "New full name (Enter to keep)", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword("New password (Enter to keep)", a.out)
	if err != nil {
		return err
	}

	if email == "" && fullName == "" && password == "" {
		fmt.Fprintln(a.out, "Nothing to update")
		return nil
	}

	user, err := a.api.UpdateCurrentUser(ctx, client.UserPatch{
		Email:    email,
		FullName: fullName,
		Password: password,
	})
	if err != nil {
		fmt.Fprintf(a.out, "Error updating account: %s\n", err)
		return err
	}

	fmt.Fprintf(a.out, "Account updated (%s)\n", user.Email)
	return nil
}
