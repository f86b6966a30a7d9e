package store

import (
	"context"

	"github.com/jackc/pgx/v5"

	"hospital-management-api/internal/model"
)

func (s *Store) ListDoctors(ctx context.Context) ([]model.Doctor, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, name, specialty, years_experience, created_at
		 FROM doctors ORDER BY name`)
	if err != nil {
		return nil, classify(err, "list doctors")
	}
	defer rows.Close()

	var out []model.Doctor
	for rows.Next() {
		var d model.Doctor
		if err := rows.Scan(&d.ID, &d.Name, &d.Specialty, &d.YearsExperience, &d.CreatedAt); err != nil {
			return nil, classify(err, "scan doctor")
		}
		out = append(out, d)
	}
	return out, classify(rows.Err(), "list doctors")
}

// CreateDoctorWithService inserts the doctor and its service link in one
// transaction; either both rows land or neither does.
func (s *Store) CreateDoctorWithService(ctx context.Context, d *model.Doctor, serviceID string) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return classify(err, "begin create doctor")
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO doctors (id, name, specialty, years_experience) VALUES ($1,$2,$3,$4)`,
		d.ID, d.Name, d.Specialty, d.YearsExperience,
	)
	if err != nil {
		return classify(err, "insert doctor")
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO doctor_services (doctor_id, service_id) VALUES ($1,$2)`,
		d.ID, serviceID,
	)
	if err != nil {
		return classify(err, "insert doctor service")
	}

	return classify(tx.Commit(ctx), "commit create doctor")
}

// UpdateDoctor locks the row before writing so a concurrent delete cannot
// slip between the existence check and the update.
func (s *Store) UpdateDoctor(ctx context.Context, d *model.Doctor) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return classify(err, "begin update doctor")
	}
	defer tx.Rollback(ctx)

	var id string
	if err := tx.QueryRow(ctx, `SELECT id FROM doctors WHERE id = $1 FOR UPDATE`, d.ID).Scan(&id); err != nil {
		return classify(err, "lock doctor")
	}

	_, err = tx.Exec(ctx,
		`UPDATE doctors SET name=$1, specialty=$2, years_experience=$3 WHERE id=$4`,
		d.Name, d.Specialty, d.YearsExperience, d.ID,
	)
	if err != nil {
		return classify(err, "update doctor")
	}

	return classify(tx.Commit(ctx), "commit update doctor")
}

// DeleteDoctor removes the doctor; doctor_services rows (and the
// doctor's appointments) go with it via ON DELETE CASCADE.
func (s *Store) DeleteDoctor(ctx context.Context, id string) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return classify(err, "begin delete doctor")
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `DELETE FROM doctors WHERE id = $1`, id)
	if err != nil {
		return classify(err, "delete doctor")
	}
	if tag.RowsAffected() == 0 {
		return classify(pgx.ErrNoRows, "delete doctor")
	}

	return classify(tx.Commit(ctx), "commit delete doctor")
}
