package store

import (
	"context"

	"hospital-management-api/internal/model"
)

// Services have no write endpoints in this API; the catalog is seeded by
// migration and read here.
func (s *Store) ListServices(ctx context.Context) ([]model.Service, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, name, description, price FROM services ORDER BY name`)
	if err != nil {
		return nil, classify(err, "list services")
	}
	defer rows.Close()

	var out []model.Service
	for rows.Next() {
		var sv model.Service
		if err := rows.Scan(&sv.ID, &sv.Name, &sv.Description, &sv.Price); err != nil {
			return nil, classify(err, "scan service")
		}
		out = append(out, sv)
	}
	return out, classify(rows.Err(), "list services")
}
