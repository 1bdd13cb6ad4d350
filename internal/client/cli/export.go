package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/otpkeeper/internal/totp"
)

// Export prints the otpauth:// URI of an account and writes it as a QR
// image for importing into another authenticator.
func (a *App) Export(ctx context.Context, ref string) error {
	acc, err := a.resolve(ref)
	if err != nil {
		return err
	}
	seed, err := a.session.Seed(acc.ID)
	if err != nil {
		return err
	}

	key := totp.Key{Type: "totp", Issuer: acc.Issuer, Name: acc.Name, Secret: seed, Params: acc.Params}

	path, err := a.export.QR(acc.ID, key)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, key.URI())
	fmt.Fprintf(a.out, "QR code saved to %s\n", path)
	a.logger.Info(ctx, "account exported", "id", acc.ID)
	return nil
}

// Icon downloads the icon of an account, or finds it in the local cache.
func (a *App) Icon(ctx context.Context, ref string) error {
	acc, err := a.resolve(ref)
	if err != nil {
		return err
	}
	path, err := a.icons.Fetch(ctx, acc.IconSlug)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Icon %s saved to %s\n", acc.IconSlug, path)
	return nil
}
