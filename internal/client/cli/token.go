package cli

import (
	"context"
	"fmt"
	"os"
)

// setToken stores the session token obtained from the web app and points the
// remote client at it.
func (a *App) setToken(ctx context.Context) {
	token, err := GetSecret("Enter session token: ", os.Stdout)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	if len(token) == 0 {
		fmt.Println("Empty token, nothing stored.")
		return
	}

	if err := a.store.SetMeta(ctx, metaRefreshToken, string(token)); err != nil {
		fmt.Println("Error storing token:", err)
		return
	}
	a.remote.SetRefreshToken(string(token))
	wipe(token)

	a.whoAmI(ctx)
}

// wipe zeroes sensitive bytes once they are no longer needed.
func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

func (a *App) whoAmI(ctx context.Context) {
	session, err := a.session(ctx)
	if err != nil {
		fmt.Println("Not signed in:", err)
		return
	}
	fmt.Printf("Signed in as %s (session valid until %s)\n",
		session.UserID, session.ExpiresAt.Format("2006-01-02 15:04"))
}
