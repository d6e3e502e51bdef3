package infrastructure

import (
	"database/sql"
	"errors"

	"github.com/IT-BAER/finx-sub002/internal/finance/domain"
)

type SharingRepository struct {
	db *sql.DB
}

func NewSharingRepository(db *sql.DB) *SharingRepository {
	return &SharingRepository{db: db}
}

// Save upserts on (owner_id, recipient_id) so one pair can never hold more
// than one grant.
func (r *SharingRepository) Save(grant domain.SharingGrant) error {
	_, err := r.db.Exec(
		`INSERT INTO sharing_grants (id, owner_id, recipient_id, permission_level, scope, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (owner_id, recipient_id)
		 DO UPDATE SET permission_level = EXCLUDED.permission_level, scope = EXCLUDED.scope, updated_at = EXCLUDED.updated_at`,
		grant.ID, grant.OwnerID, grant.RecipientID, grant.PermissionLevel, grant.Scope, grant.CreatedAt, grant.UpdatedAt,
	)
	return err
}

func (r *SharingRepository) FindGrant(ownerID, recipientID string) (*domain.SharingGrant, error) {
	var grant domain.SharingGrant
	err := r.db.QueryRow(
		`SELECT id, owner_id, recipient_id, permission_level, scope, created_at, updated_at
		 FROM sharing_grants WHERE owner_id = $1 AND recipient_id = $2`,
		ownerID, recipientID,
	).Scan(&grant.ID, &grant.OwnerID, &grant.RecipientID, &grant.PermissionLevel, &grant.Scope, &grant.CreatedAt, &grant.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &grant, nil
}

func (r *SharingRepository) FindGrantsByOwner(ownerID string) ([]domain.SharingGrant, error) {
	return r.findGrants(`SELECT id, owner_id, recipient_id, permission_level, scope, created_at, updated_at
		FROM sharing_grants WHERE owner_id = $1`, ownerID)
}

func (r *SharingRepository) FindGrantsByRecipient(recipientID string) ([]domain.SharingGrant, error) {
	return r.findGrants(`SELECT id, owner_id, recipient_id, permission_level, scope, created_at, updated_at
		FROM sharing_grants WHERE recipient_id = $1`, recipientID)
}

func (r *SharingRepository) findGrants(query, userID string) ([]domain.SharingGrant, error) {
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var grants []domain.SharingGrant
	for rows.Next() {
		var grant domain.SharingGrant
		if err := rows.Scan(&grant.ID, &grant.OwnerID, &grant.RecipientID, &grant.PermissionLevel,
			&grant.Scope, &grant.CreatedAt, &grant.UpdatedAt); err != nil {
			return nil, err
		}
		grants = append(grants, grant)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return grants, nil
}

func (r *SharingRepository) Delete(ownerID, recipientID string) error {
	_, err := r.db.Exec(`DELETE FROM sharing_grants WHERE owner_id = $1 AND recipient_id = $2`, ownerID, recipientID)
	return err
}
