package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/accion2025/buencuidar/internal/client/careplan"
	"github.com/accion2025/buencuidar/internal/client/models"
)

func (a *App) requestAppointment(ctx context.Context) {
	session, err := a.session(ctx)
	if err != nil {
		fmt.Println("Not signed in:", err)
		return
	}

	date, err := GetSimpleText(a.reader, "Date (YYYY-MM-DD)", os.Stdout)
	if err != nil {
		return
	}
	start, err := GetSimpleText(a.reader, "Start time (HH:MM)", os.Stdout)
	if err != nil {
		return
	}
	end, err := GetSimpleText(a.reader, "End time (HH:MM, empty for open-ended)", os.Stdout)
	if err != nil {
		return
	}
	description, err := GetMultiline(a.reader, "Describe the care needed", os.Stdout)
	if err != nil {
		return
	}

	fmt.Println("Services:")
	for _, s := range careplan.DefaultCatalog {
		fmt.Printf("  %-20s %s\n", s.ID, s.Label)
	}
	picked, err := GetSimpleText(a.reader, "Service ids (comma separated, empty for none)", os.Stdout)
	if err != nil {
		return
	}

	var serviceIDs []string
	for _, id := range strings.Split(picked, ",") {
		if id = strings.TrimSpace(id); id != "" {
			serviceIDs = append(serviceIDs, id)
		}
	}

	appt, err := a.appts.Request(ctx, models.Appointment{
		ClientID: session.UserID,
		Date:     date,
		Start:    start,
		End:      end,
	}, description, serviceIDs)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Appointment requested:", appt.ID)
}

func (a *App) showPlan(ctx context.Context) {
	details, err := GetMultiline(a.reader, "Paste the details text", os.Stdout)
	if err != nil {
		return
	}

	plan := a.appts.Plan(details)
	fmt.Println("Description:", plan.Description)
	if len(plan.ServiceIDs) == 0 {
		fmt.Println("No structured plan.")
		return
	}
	fmt.Println("Services:")
	for _, id := range plan.ServiceIDs {
		label, ok := careplan.DefaultCatalog.Label(id)
		if !ok {
			label = id
		}
		fmt.Println("  -", label)
	}
}
