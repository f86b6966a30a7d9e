package store

import (
	"context"

	"github.com/jackc/pgx/v5"

	"hospital-management-api/internal/model"
)

// CreateAppointment is a single insert; the doctor/service foreign keys
// reject dangling references, surfaced as ErrMissingReference.
func (s *Store) CreateAppointment(ctx context.Context, a *model.Appointment) error {
	err := s.db.QueryRow(ctx,
		`INSERT INTO appointments (id, doctor_id, service_id, user_id, patient_name, appointment_date)
		 VALUES ($1,$2,$3,$4,$5,$6)
		 RETURNING created_at`,
		a.ID, a.DoctorID, a.ServiceID, a.UserID, a.PatientName, a.AppointmentDate,
	).Scan(&a.CreatedAt)
	return classify(err, "create appointment")
}

func (s *Store) GetAppointment(ctx context.Context, id string) (*model.Appointment, error) {
	a := &model.Appointment{}
	err := s.db.QueryRow(ctx,
		`SELECT id, doctor_id, service_id, user_id, patient_name, appointment_date, created_at
		 FROM appointments WHERE id = $1`, id,
	).Scan(&a.ID, &a.DoctorID, &a.ServiceID, &a.UserID, &a.PatientName, &a.AppointmentDate, &a.CreatedAt)
	if err != nil {
		return nil, classify(err, "get appointment")
	}
	return a, nil
}

// ListAppointmentsJoined returns appointments with their doctor and
// service, most recent first.
func (s *Store) ListAppointmentsJoined(ctx context.Context) ([]model.AppointmentView, error) {
	rows, err := s.db.Query(ctx,
		`SELECT a.id, a.doctor_id, a.service_id, a.user_id, a.patient_name, a.appointment_date, a.created_at,
		        d.name, d.specialty, sv.name
		 FROM appointments a
		 JOIN doctors d ON a.doctor_id = d.id
		 JOIN services sv ON a.service_id = sv.id
		 ORDER BY a.created_at DESC`)
	if err != nil {
		return nil, classify(err, "list appointments")
	}
	defer rows.Close()

	var out []model.AppointmentView
	for rows.Next() {
		var v model.AppointmentView
		if err := rows.Scan(
			&v.ID, &v.DoctorID, &v.ServiceID, &v.UserID, &v.PatientName, &v.AppointmentDate, &v.CreatedAt,
			&v.DoctorName, &v.DoctorSpecialty, &v.ServiceName,
		); err != nil {
			return nil, classify(err, "scan appointment")
		}
		out = append(out, v)
	}
	return out, classify(rows.Err(), "list appointments")
}

func (s *Store) UpdateAppointment(ctx context.Context, a *model.Appointment) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE appointments SET doctor_id=$1, service_id=$2, patient_name=$3, appointment_date=$4
		 WHERE id=$5`,
		a.DoctorID, a.ServiceID, a.PatientName, a.AppointmentDate, a.ID,
	)
	if err != nil {
		return classify(err, "update appointment")
	}
	if tag.RowsAffected() == 0 {
		return classify(pgx.ErrNoRows, "update appointment")
	}
	return nil
}

func (s *Store) DeleteAppointment(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return classify(err, "delete appointment")
	}
	if tag.RowsAffected() == 0 {
		return classify(pgx.ErrNoRows, "delete appointment")
	}
	return nil
}
