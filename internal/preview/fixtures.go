// Package preview holds the demo data served when the gateway runs in preview mode.
package preview

import (
	"time"

	"github.com/evaluaasi/support-gateway/internal/domain"
)

// Fixtures is the complete preview data set. Campus records keep the loose
// backend shape so they go through the same normalization as live data.
type Fixtures struct {
	Partners []domain.PartnerOption
	Campuses []map[string]any
	Tickets  []domain.SupportTicket
	Events   []domain.CalendarEvent
	Users    []domain.DirectoryUser
}

// Default returns a fresh copy of the demo data set.
func Default() *Fixtures {
	return &Fixtures{
		Partners: []domain.PartnerOption{
			{ID: 1, Name: "Grupo Educativo Alfa"},
			{ID: 2, Name: "Colegio Técnico Beta"},
			{ID: 3, Name: "Universidad Gamma"},
		},
		Campuses: []map[string]any{
			{"id": 101, "name": "Alfa Centro", "partner_id": 1, "partner_name": "Grupo Educativo Alfa",
				"state_name": "Jalisco", "city": "Guadalajara", "country": "México", "is_active": true, "activation_status": "active"},
			{"id": 102, "name": "Alfa Zapopan", "partner": map[string]any{"id": 1, "name": "Grupo Educativo Alfa"},
				"state_name": "Jalisco", "city": "Zapopan", "country": "México", "is_active": false, "activation_status": "pending"},
			{"id": 201, "name": "Beta Norte", "partner_id": 2, "state_name": "Nuevo León", "city": "Monterrey",
				"country": "México", "address": "Av. Constitución 100", "is_active": true, "activation_status": "active"},
			{"id": 202, "name": "Beta Ágora", "partner": map[string]any{"id": 2, "name": "Colegio Técnico Beta"},
				"state_name": "Ciudad de México", "city": "Coyoacán", "is_active": true, "activation_status": "active"},
			{"id": 301, "name": "Gamma Virtual", "partner_id": 3, "partner_name": "Universidad Gamma",
				"state_name": "", "country": "México", "location": "Sede en línea", "is_active": true, "activation_status": "active"},
			{"id": 302, "name": "Gamma Oaxaca", "partner_id": 3, "partner_name": "Universidad Gamma",
				"state_name": "Oaxaca", "city": "Oaxaca de Juárez", "country": "México", "is_active": false, "activation_status": "inactive"},
		},
		Tickets: []domain.SupportTicket{
			ticket(1, "EVA-0001", "No puedo iniciar sesión", "El sistema rechaza mi contraseña.", "Ana López", "ana@alfa.mx",
				1, "Grupo Educativo Alfa", domain.TicketStatusOpen, domain.TicketPriorityHigh, domain.TicketChannelWeb, date(2024, 1, 5), "acceso"),
			ticket(2, "EVA-0002", "Certificado con error", "Mi nombre aparece incompleto en el certificado.", "Luis Pérez", "luis@beta.mx",
				2, "Colegio Técnico Beta", domain.TicketStatusPending, domain.TicketPriorityMedium, domain.TicketChannelEmail, date(2024, 1, 18), "certificados"),
			ticket(3, "EVA-0003", "Voucher no aplicado", "Compré un voucher y no aparece.", "María Ruiz", "maria@gamma.mx",
				3, "Universidad Gamma", domain.TicketStatusSolved, domain.TicketPriorityLow, domain.TicketChannelWhatsApp, date(2024, 1, 31), "vouchers"),
			ticket(4, "EVA-0004", "Examen se cerró solo", "Durante el examen la ventana se cerró.", "Jorge Díaz", "jorge@alfa.mx",
				1, "Grupo Educativo Alfa", domain.TicketStatusOpen, domain.TicketPriorityHigh, domain.TicketChannelInstagram, date(2024, 2, 2), "examen"),
			ticket(5, "EVA-0005", "Alta de plantel", "Necesitamos registrar un nuevo plantel.", "Sofía Torres", "sofia@beta.mx",
				2, "Colegio Técnico Beta", domain.TicketStatusOpen, domain.TicketPriorityLow, domain.TicketChannelEmail, date(2023, 12, 30), "planteles"),
			ticket(6, "EVA-0006", "Cambio de correo", "Quiero actualizar mi correo electrónico.", "Pedro Gómez", "pedro@gamma.mx",
				3, "Universidad Gamma", domain.TicketStatusPending, domain.TicketPriorityHigh, domain.TicketChannelWeb, date(2024, 1, 31), "cuenta"),
		},
		Events: []domain.CalendarEvent{
			event(1, "Examen Excel Básico", 10, 0, time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC), 1, 101),
			event(2, "Examen Excel Básico", 10, 0, time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC), 1, 101),
			event(3, "Examen Word Intermedio", 11, 0, time.Date(2024, 3, 12, 10, 0, 0, 0, time.UTC), 2, 201),
			event(4, "Examen Word Intermedio", 11, 1, time.Date(2024, 3, 12, 15, 0, 0, 0, time.UTC), 2, 201),
			event(5, "Examen PowerPoint", 12, 2, time.Date(2024, 3, 20, 17, 0, 0, 0, time.UTC), 3, 302),
			event(6, "Examen Excel Básico", 10, 0, time.Date(2024, 4, 2, 9, 0, 0, 0, time.UTC), 1, 102),
		},
		Users: []domain.DirectoryUser{
			user("u-1", "alopez", "Ana López", "ana@alfa.mx", "candidato", true, date(2023, 8, 1)),
			user("u-2", "lperez", "Luis Pérez", "luis@beta.mx", "candidato", true, date(2023, 9, 15)),
			user("u-3", "mruiz", "María Ruiz", "maria@gamma.mx", "coordinator", true, date(2023, 10, 2)),
			user("u-4", "soporte1", "Equipo Soporte", "soporte@evaluaasi.mx", "support", true, date(2023, 1, 10)),
			user("u-5", "jdiaz", "Jorge Díaz", "", "candidato", false, date(2024, 1, 3)),
		},
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 15, 30, 0, 0, time.UTC)
}

func ticket(id int64, folio, subject, message, name, email string, companyID int64, company string,
	status domain.TicketStatus, priority domain.TicketPriority, channel domain.TicketChannel, created time.Time, tag string) domain.SupportTicket {
	updated := created.Add(6 * time.Hour)
	return domain.SupportTicket{
		ID:             id,
		Folio:          folio,
		Subject:        subject,
		Message:        message,
		RequesterName:  name,
		RequesterEmail: email,
		CompanyID:      &companyID,
		CompanyName:    company,
		Status:         status,
		Priority:       priority,
		Channel:        channel,
		CreatedAt:      &created,
		UpdatedAt:      &updated,
		Tags:           []string{tag},
		Attachments:    []domain.TicketAttachment{},
	}
}

func event(id int64, title string, examID int64, status int, start time.Time, partnerID, campusID int64) domain.CalendarEvent {
	end := start.Add(90 * time.Minute)
	return domain.CalendarEvent{
		ID:          id,
		Title:       title,
		SessionType: "examen",
		Start:       &start,
		End:         &end,
		Status:      status,
		ExamID:      &examID,
		UserID:      "u-1",
		UserName:    "Ana López",
		PartnerID:   &partnerID,
		CampusID:    &campusID,
	}
}

func user(id, username, fullName, email, role string, active bool, created time.Time) domain.DirectoryUser {
	u := domain.DirectoryUser{
		ID:        id,
		Username:  username,
		FullName:  fullName,
		Role:      role,
		IsActive:  active,
		CreatedAt: &created,
	}
	if email != "" {
		u.Email = &email
	}
	return u
}
