package infrastructure

import (
	"database/sql"
	"errors"

	"github.com/IT-BAER/finx-sub002/internal/finance/domain"
)

type TargetRepository struct {
	db *sql.DB
}

func NewTargetRepository(db *sql.DB) *TargetRepository {
	return &TargetRepository{db: db}
}

func (r *TargetRepository) Save(target *domain.Target) error {
	return r.db.QueryRow(
		`INSERT INTO targets (owner_id, name) VALUES ($1, $2) RETURNING id`,
		target.OwnerID, target.Name,
	).Scan(&target.ID)
}

func (r *TargetRepository) FindByOwner(ownerID string) ([]domain.Target, error) {
	rows, err := r.db.Query(`SELECT id, owner_id, name FROM targets WHERE owner_id = $1 ORDER BY name`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var targets []domain.Target
	for rows.Next() {
		var target domain.Target
		if err := rows.Scan(&target.ID, &target.OwnerID, &target.Name); err != nil {
			return nil, err
		}
		targets = append(targets, target)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return targets, nil
}

func (r *TargetRepository) FindByID(targetID int64) (*domain.Target, error) {
	var target domain.Target
	err := r.db.QueryRow(`SELECT id, owner_id, name FROM targets WHERE id = $1`, targetID).
		Scan(&target.ID, &target.OwnerID, &target.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &target, nil
}

func (r *TargetRepository) ExistsForOwner(targetID int64, ownerID string) (bool, error) {
	var exists bool
	query := "SELECT EXISTS(SELECT 1 FROM targets WHERE id = $1 AND owner_id = $2)"
	err := r.db.QueryRow(query, targetID, ownerID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *TargetRepository) NameExistsForOwner(ownerID, normalizedName string) (bool, error) {
	var exists bool
	query := "SELECT EXISTS(SELECT 1 FROM targets WHERE owner_id = $1 AND lower(btrim(name)) = $2)"
	err := r.db.QueryRow(query, ownerID, normalizedName).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *TargetRepository) Update(target domain.Target) error {
	_, err := r.db.Exec(`UPDATE targets SET name = $1 WHERE id = $2 AND owner_id = $3`,
		target.Name, target.ID, target.OwnerID)
	return err
}

func (r *TargetRepository) Delete(targetID int64, ownerID string) error {
	_, err := r.db.Exec(`DELETE FROM targets WHERE id = $1 AND owner_id = $2`, targetID, ownerID)
	return err
}
