package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/accion2025/buencuidar/internal/client/uploads"
)

func (a *App) updateAvatar(ctx context.Context, args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: avatar <file>")
		return
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Println("Error reading file:", err)
		return
	}

	session, err := a.session(ctx)
	if err != nil {
		fmt.Println("Not signed in:", err)
		return
	}

	res := a.profile.UpdateAvatar(ctx, session.UserID, args[0],
		http.DetectContentType(data), data, a.uploadCallbacks())
	a.printResult(res)

	if res.Outcome == uploads.OutcomeSuccess {
		if err := a.store.SetMeta(ctx, "avatar_url", res.URL); err != nil {
			a.log.Warn(ctx, "caching avatar url failed", "error", err)
		}
	}
}
