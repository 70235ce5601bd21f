package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/accion2025/buencuidar/internal/client/careplan"
	"github.com/accion2025/buencuidar/internal/client/models"
	"github.com/accion2025/buencuidar/internal/common"
	"github.com/accion2025/buencuidar/internal/logging"
)

// Rows writes rows through the remote data service.
type Rows interface {
	UpsertRow(ctx context.Context, table string, key map[string]any, fields map[string]any) error
}

// AppointmentService submits care requests with an embedded care plan.
type AppointmentService struct {
	rows    Rows
	catalog careplan.Catalog
	log     logging.Logger
}

func NewAppointmentService(rows Rows, catalog careplan.Catalog, log logging.Logger) *AppointmentService {
	return &AppointmentService{rows: rows, catalog: catalog, log: log}
}

// Request submits an appointment. The free-form description and the selected
// service ids are folded into the details column; a missing ID gets one
// assigned. The appointment with its final ID and details is returned.
func (s *AppointmentService) Request(ctx context.Context, appt models.Appointment, description string, serviceIDs []string) (models.Appointment, error) {
	if appt.ClientID == "" {
		return models.Appointment{}, fmt.Errorf("appointment has no client")
	}
	if appt.ID == "" {
		appt.ID = uuid.NewString()
	}
	if appt.Status == "" {
		appt.Status = "requested"
	}
	appt.Details = careplan.Encode(description, serviceIDs, s.catalog)

	err := s.rows.UpsertRow(ctx, common.TableAppointments,
		map[string]any{"id": appt.ID},
		map[string]any{
			"client_id":  appt.ClientID,
			"date":       appt.Date,
			"start_time": appt.Start,
			"end_time":   appt.End,
			"status":     appt.Status,
			"details":    appt.Details,
		},
	)
	if err != nil {
		return models.Appointment{}, fmt.Errorf("submitting appointment: %w", err)
	}

	s.log.Info(ctx, "appointment submitted", "appointment", appt.ID, "services", len(serviceIDs))
	return appt, nil
}

// Plan decodes the care plan embedded in a details column.
func (s *AppointmentService) Plan(details string) careplan.Plan {
	return careplan.Decode(details)
}
