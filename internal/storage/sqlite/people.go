package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/agenda/internal/models"
	"github.com/mmynk/agenda/internal/storage"
)

// UpsertPerson inserts a person or replaces the row it collides with.
// With an ID the row with that ID is replaced; without one a row with the
// same name and phone is kept (ID and CreatedAt included) and only touched.
// People sharing a name but not a phone are separate rows.
func (s *Store) UpsertPerson(ctx context.Context, person *models.Person) error {
	if person.Name == "" {
		return storage.ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().Unix()

	var query string
	id := person.ID
	if id != "" {
		query = `
			INSERT INTO people (id, name, phone, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				name = excluded.name,
				phone = excluded.phone,
				updated_at = excluded.updated_at
			RETURNING id, name, phone, created_at, updated_at
		`
	} else {
		id = uuid.New().String()
		query = `
			INSERT INTO people (id, name, phone, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(name, phone) DO UPDATE SET
				updated_at = excluded.updated_at
			RETURNING id, name, phone, created_at, updated_at
		`
	}

	err := s.db.QueryRowContext(ctx, query, id, person.Name, person.Phone, now, now).Scan(
		&person.ID,
		&person.Name,
		&person.Phone,
		&person.CreatedAt,
		&person.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert person: %w", err)
	}

	s.publish(ctx)
	return nil
}

// DeletePerson removes a person by ID, or by exact name and phone when the ID
// is empty. A miss is not an error and does not notify watchers.
func (s *Store) DeletePerson(ctx context.Context, person models.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		query string
		args  []interface{}
	)
	if person.ID != "" {
		query = "DELETE FROM people WHERE id = ?"
		args = []interface{}{person.ID}
	} else {
		query = "DELETE FROM people WHERE name = ? AND phone = ?"
		args = []interface{}{person.Name, person.Phone}
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete person: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to count deleted rows: %w", err)
	}
	if n == 0 {
		return nil
	}

	s.publish(ctx)
	return nil
}

// ListPeople retrieves every person ordered by name.
func (s *Store) ListPeople(ctx context.Context) ([]models.Person, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, phone, created_at, updated_at
		FROM people
		ORDER BY name, created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list people: %w", err)
	}
	defer rows.Close()

	people := []models.Person{}
	for rows.Next() {
		var p models.Person
		if err := rows.Scan(&p.ID, &p.Name, &p.Phone, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		people = append(people, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate people: %w", err)
	}

	return people, nil
}
