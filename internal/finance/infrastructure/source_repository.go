package infrastructure

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/IT-BAER/finx-sub002/internal/finance/domain"
)

type SourceRepository struct {
	db *sql.DB
}

func NewSourceRepository(db *sql.DB) *SourceRepository {
	return &SourceRepository{db: db}
}

func (r *SourceRepository) Save(source *domain.Source) error {
	return r.db.QueryRow(
		`INSERT INTO sources (owner_id, name) VALUES ($1, $2) RETURNING id`,
		source.OwnerID, source.Name,
	).Scan(&source.ID)
}

func (r *SourceRepository) FindByOwner(ownerID string) ([]domain.Source, error) {
	rows, err := r.db.Query(`SELECT id, owner_id, name FROM sources WHERE owner_id = $1 ORDER BY name`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sources []domain.Source
	for rows.Next() {
		var source domain.Source
		if err := rows.Scan(&source.ID, &source.OwnerID, &source.Name); err != nil {
			return nil, err
		}
		sources = append(sources, source)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return sources, nil
}

func (r *SourceRepository) FindByID(sourceID int64) (*domain.Source, error) {
	var source domain.Source
	err := r.db.QueryRow(`SELECT id, owner_id, name FROM sources WHERE id = $1`, sourceID).
		Scan(&source.ID, &source.OwnerID, &source.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &source, nil
}

func (r *SourceRepository) NamesForIDs(ownerID string, sourceIDs []int64) ([]string, error) {
	if len(sourceIDs) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(sourceIDs))
	args := make([]interface{}, 0, len(sourceIDs)+1)
	args = append(args, ownerID)
	for i, id := range sourceIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+2)
		args = append(args, id)
	}

	rows, err := r.db.Query(
		`SELECT name FROM sources WHERE owner_id = $1 AND id IN (`+strings.Join(placeholders, ", ")+`)`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return names, nil
}

func (r *SourceRepository) ExistsForOwner(sourceID int64, ownerID string) (bool, error) {
	var exists bool
	query := "SELECT EXISTS(SELECT 1 FROM sources WHERE id = $1 AND owner_id = $2)"
	err := r.db.QueryRow(query, sourceID, ownerID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *SourceRepository) NameExistsForOwner(ownerID, normalizedName string) (bool, error) {
	var exists bool
	query := "SELECT EXISTS(SELECT 1 FROM sources WHERE owner_id = $1 AND lower(btrim(name)) = $2)"
	err := r.db.QueryRow(query, ownerID, normalizedName).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *SourceRepository) Update(source domain.Source) error {
	_, err := r.db.Exec(`UPDATE sources SET name = $1 WHERE id = $2 AND owner_id = $3`,
		source.Name, source.ID, source.OwnerID)
	return err
}

func (r *SourceRepository) Delete(sourceID int64, ownerID string) error {
	_, err := r.db.Exec(`DELETE FROM sources WHERE id = $1 AND owner_id = $2`, sourceID, ownerID)
	return err
}
