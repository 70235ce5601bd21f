// Package careplan encodes and decodes the structured care plan embedded in
// the free-text details column of appointments and job postings.
//
// The backend stores details as plain text; a plan is carried inside it using
// two marker strings. Other readers of the same column (the mobile app, the
// back office) depend on the exact marker text, so the format here is a
// compatibility surface and must not be changed:
//
//	<free-form description>
//
//	[PLAN DE CUIDADO]
//	- <service label>
//	- <service label>
//
//	---SERVICES---["id1","id2"]---SERVICES---
//
// The machine block between the ---SERVICES--- pair is authoritative; the
// bullet list is regenerated from it on every save and never hand-edited.
package careplan

import (
	"encoding/json"
	"strings"
)

const (
	planMarker     = "[PLAN DE CUIDADO]"
	servicesMarker = "---SERVICES---"
)

// Service is one offering from the service catalog.
type Service struct {
	ID    string
	Label string
}

// Catalog is the ordered list of offerings the product knows about.
type Catalog []Service

// Label returns the display label for id, and whether id is known.
func (c Catalog) Label(id string) (string, bool) {
	for _, s := range c {
		if s.ID == id {
			return s.Label, true
		}
	}
	return "", false
}

// Plan is the decoded form of a details column: the free-form description
// plus the selected service ids, in selection order.
type Plan struct {
	Description string
	ServiceIDs  []string
}

// Encode renders description plus the selected services into the details
// text. Ids with no catalog match are silently dropped. An empty selection
// (after dropping unknowns) produces no plan block at all; the absence of
// the block is the signal "no structured plan".
func Encode(description string, serviceIDs []string, catalog Catalog) string {
	labels := make([]string, 0, len(serviceIDs))
	resolved := make([]string, 0, len(serviceIDs))
	for _, id := range serviceIDs {
		label, ok := catalog.Label(id)
		if !ok {
			continue
		}
		labels = append(labels, label)
		resolved = append(resolved, id)
	}

	if len(resolved) == 0 {
		return description
	}

	var b strings.Builder
	desc := strings.TrimRight(description, "\n")
	if desc != "" {
		b.WriteString(desc)
		b.WriteString("\n\n")
	}

	b.WriteString(planMarker)
	b.WriteString("\n")
	for _, label := range labels {
		b.WriteString("- ")
		b.WriteString(label)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// json.Marshal cannot fail on []string.
	ids, _ := json.Marshal(resolved)
	b.WriteString(servicesMarker)
	b.Write(ids)
	b.WriteString(servicesMarker)

	return b.String()
}

// Decode extracts the selected service ids and the free-form description
// from a details text. A malformed or missing machine block yields an empty
// id list; Decode never fails.
func Decode(details string) Plan {
	plan := Plan{ServiceIDs: []string{}}

	start := strings.Index(details, servicesMarker)
	if start >= 0 {
		rest := details[start+len(servicesMarker):]
		if end := strings.Index(rest, servicesMarker); end >= 0 {
			var ids []string
			if err := json.Unmarshal([]byte(rest[:end]), &ids); err == nil && ids != nil {
				plan.ServiceIDs = ids
			}
		}
	}

	switch {
	case strings.Contains(details, planMarker):
		plan.Description = strings.TrimSpace(details[:strings.Index(details, planMarker)])
	case start >= 0:
		plan.Description = strings.TrimSpace(details[:start])
	default:
		plan.Description = details
	}

	return plan
}

// Encode renders the plan back into details text using catalog for labels.
func (p Plan) Encode(catalog Catalog) string {
	return Encode(p.Description, p.ServiceIDs, catalog)
}

// DefaultCatalog matches the offering list of the hosted product.
var DefaultCatalog = Catalog{
	{ID: "personal_hygiene", Label: "Higiene personal"},
	{ID: "medication", Label: "Administración de medicamentos"},
	{ID: "mobility", Label: "Apoyo a la movilidad"},
	{ID: "meals", Label: "Preparación de comidas"},
	{ID: "companionship", Label: "Compañía y conversación"},
	{ID: "overnight", Label: "Cuidado nocturno"},
}
