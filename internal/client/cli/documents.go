package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/accion2025/buencuidar/internal/client/models"
	"github.com/accion2025/buencuidar/internal/client/uploads"
	"github.com/accion2025/buencuidar/internal/remote"
)

const sessionTimeout = 5 * time.Second

// session resolves the current user, bounding the lookup so the prompt
// never hangs on a dead backend.
func (a *App) session(ctx context.Context) (*remote.Session, error) {
	sctx, cancel := context.WithTimeout(ctx, sessionTimeout)
	defer cancel()
	return a.remote.GetSession(sctx)
}

func (a *App) listDocuments(ctx context.Context) {
	session, err := a.session(ctx)
	if err != nil {
		fmt.Println("Not signed in:", err)
		return
	}

	docs, err := a.docs.Submitted(ctx, session.UserID)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	if len(docs) == 0 {
		fmt.Println("No documents submitted yet.")
		return
	}
	for _, d := range docs {
		fmt.Printf("%-20s  %-10s  %s\n", d.Type, d.Status, d.UploadedAt.Format("2006-01-02 15:04"))
	}
}

func (a *App) uploadDocument(ctx context.Context, args []string) {
	if len(args) < 2 {
		fmt.Println("Usage: upload <type> <file>")
		fmt.Print("Types:")
		for _, dt := range models.KnownDocumentTypes {
			fmt.Printf(" %s", dt)
		}
		fmt.Println()
		return
	}

	docType := models.DocumentType(args[0])
	if !models.ValidDocumentType(docType) {
		fmt.Println("Unknown document type:", args[0])
		return
	}

	data, err := os.ReadFile(args[1])
	if err != nil {
		fmt.Println("Error reading file:", err)
		return
	}

	session, err := a.session(ctx)
	if err != nil {
		fmt.Println("Not signed in:", err)
		return
	}

	res, err := a.docs.Submit(ctx, session.UserID, docType, args[1],
		http.DetectContentType(data), data, a.uploadCallbacks())
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	a.printResult(res)
}

// uploadCallbacks renders pipeline progress on one redrawn line.
func (a *App) uploadCallbacks() uploads.Callbacks {
	return uploads.Callbacks{
		Progress: func(st uploads.Status) {
			fmt.Printf("\r%-40s", st.Display())
		},
		Heartbeat: func(elapsed time.Duration) {
			fmt.Printf("\r%-40s", fmt.Sprintf("still working (%s elapsed)", elapsed.Round(time.Second)))
		},
	}
}

func (a *App) printResult(res uploads.Result) {
	fmt.Println()
	switch res.Outcome {
	case uploads.OutcomeSuccess:
		fmt.Printf("Done in %d attempt(s): %s\n", res.Attempts, res.URL)
	case uploads.OutcomeCancelled:
		fmt.Println("Cancelled.")
	default:
		fmt.Println(res.Err.UserMessage())
	}
}
