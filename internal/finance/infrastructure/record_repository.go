package infrastructure

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/IT-BAER/finx-sub002/internal/finance/domain"
)

type RecordRepository struct {
	db *sql.DB
}

func NewRecordRepository(db *sql.DB) *RecordRepository {
	return &RecordRepository{db: db}
}

func (r *RecordRepository) Save(record *domain.FinancialRecord) error {
	return r.db.QueryRow(
		`INSERT INTO financial_records (owner_id, kind, amount, date, description, source_id, target_id, target_name)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at`,
		record.OwnerID, record.Kind, record.Amount, record.Date, record.Description,
		record.SourceID, record.TargetID, record.TargetName,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)
}

func (r *RecordRepository) FindByID(recordID int64) (*domain.FinancialRecord, error) {
	var record domain.FinancialRecord
	err := r.db.QueryRow(
		`SELECT id, owner_id, kind, amount, date, description, source_id, target_id, target_name, created_at, updated_at
		 FROM financial_records WHERE id = $1`, recordID,
	).Scan(&record.ID, &record.OwnerID, &record.Kind, &record.Amount, &record.Date, &record.Description,
		&record.SourceID, &record.TargetID, &record.TargetName, &record.CreatedAt, &record.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *RecordRepository) FindByOwners(ownerIDs []string, filter domain.RecordFilter) ([]domain.FinancialRecord, error) {
	if len(ownerIDs) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(ownerIDs))
	args := make([]interface{}, 0, len(ownerIDs)+5)
	for i, ownerID := range ownerIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args = append(args, ownerID)
	}
	query := `SELECT id, owner_id, kind, amount, date, description, source_id, target_id, target_name, created_at, updated_at
		FROM financial_records WHERE owner_id IN (` + strings.Join(placeholders, ", ") + `)`

	if filter.Kind != "" {
		args = append(args, filter.Kind)
		query += fmt.Sprintf(" AND kind = $%d", len(args))
	}
	if !filter.StartDate.IsZero() {
		args = append(args, filter.StartDate)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if !filter.EndDate.IsZero() {
		args = append(args, filter.EndDate)
		query += fmt.Sprintf(" AND date <= $%d", len(args))
	}
	query += " ORDER BY date DESC, id DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.FinancialRecord
	for rows.Next() {
		var record domain.FinancialRecord
		if err := rows.Scan(&record.ID, &record.OwnerID, &record.Kind, &record.Amount, &record.Date,
			&record.Description, &record.SourceID, &record.TargetID, &record.TargetName,
			&record.CreatedAt, &record.UpdatedAt); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *RecordRepository) Update(record domain.FinancialRecord) error {
	_, err := r.db.Exec(
		`UPDATE financial_records
		 SET kind = $1, amount = $2, date = $3, description = $4, source_id = $5, target_id = $6, target_name = $7, updated_at = now()
		 WHERE id = $8`,
		record.Kind, record.Amount, record.Date, record.Description,
		record.SourceID, record.TargetID, record.TargetName, record.ID,
	)
	return err
}

func (r *RecordRepository) Delete(recordID int64) error {
	_, err := r.db.Exec(`DELETE FROM financial_records WHERE id = $1`, recordID)
	return err
}
