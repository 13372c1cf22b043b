package cli

import (
	"context"
	"fmt"
)

func (a *App) Delete(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Enter entry id", a.out)
	if err != nil {
		return err
	}

	confirm, err := GetSimpleText(a.reader, fmt.Sprintf("Delete entry %s? (y/n)", id), a.out)
	if err != nil {
		return err
	}
	if confirm != "y" && confirm != "yes" {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}

	if err := a.api.DeleteEntry(ctx, id); err != nil {
		fmt.Fprintf(a.out, "Error deleting entry: %s\n", err)
		return err
	}

	fmt.Fprintln(a.out, "Deleted")
	return nil
}
