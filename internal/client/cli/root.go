package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) Root(ctx context.Context) {

	fmt.Println("Welcome to BuenCuidar (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("bcui> ")
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		if ctx.Err() != nil {
			return
		}

		switch cmd {
		case "help":
			fmt.Println("Available commands: jobs, watch, docs, upload, avatar, request, plan, token, whoami, exit")

		case "jobs":
			a.showJobs(ctx)
		case "watch":
			a.watchJobs(ctx)
		case "docs":
			a.listDocuments(ctx)
		case "upload":
			a.uploadDocument(ctx, args)
		case "avatar":
			a.updateAvatar(ctx, args)
		case "request":
			a.requestAppointment(ctx)
		case "plan":
			a.showPlan(ctx)
		case "token":
			a.setToken(ctx)
		case "whoami":
			a.whoAmI(ctx)
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}

}
