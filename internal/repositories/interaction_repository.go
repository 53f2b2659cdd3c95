package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"sda-backend/internal/models"
)

const interactionColumns = `id, date, interaction_type, category, brand_name, product_name,
         attended_by, reason_for_purchase, customer_feedback, is_own_brand,
         quantity, price, walkins, leave_type`

type InteractionRepository struct {
	DB *pgxpool.Pool
}

func NewInteractionRepository(db *pgxpool.Pool) *InteractionRepository {
	return &InteractionRepository{DB: db}
}

func scanInteraction(row pgx.Row) (*models.InteractionRecord, error) {
	var rec models.InteractionRecord
	var quantity, walkins *int
	var price *float64
	var leaveType *string

	err := row.Scan(&rec.ID, &rec.Date, &rec.Type, &rec.Category, &rec.BrandName,
		&rec.ProductName, &rec.AttendedBy, &rec.ReasonForPurchase, &rec.CustomerFeedback,
		&rec.IsOwnBrand, &quantity, &price, &walkins, &leaveType)
	if err != nil {
		return nil, err
	}

	switch rec.Type {
	case models.TypeSale:
		detail := models.SaleDetail{}
		if quantity != nil {
			detail.Quantity = *quantity
		}
		if price != nil {
			detail.Price = *price
		}
		rec.Sale = &detail
	case models.TypeEnquiry:
		detail := models.EnquiryDetail{}
		if walkins != nil {
			detail.Walkins = *walkins
		}
		rec.Enquiry = &detail
	case models.TypeLeave:
		detail := models.LeaveDetail{LeaveType: models.LeaveNone}
		if leaveType != nil && *leaveType != "" {
			detail.LeaveType = *leaveType
		}
		rec.Leave = &detail
	}
	return &rec, nil
}

func interactionArgs(rec *models.InteractionRecord) []any {
	var quantity, walkins *int
	var price *float64
	var leaveType *string
	if rec.Sale != nil {
		quantity = &rec.Sale.Quantity
		price = &rec.Sale.Price
	}
	if rec.Enquiry != nil {
		walkins = &rec.Enquiry.Walkins
	}
	if rec.Leave != nil {
		leaveType = &rec.Leave.LeaveType
	}
	return []any{rec.ID, rec.Date, rec.Type, rec.Category, rec.BrandName, rec.ProductName,
		rec.AttendedBy, rec.ReasonForPurchase, rec.CustomerFeedback, rec.IsOwnBrand,
		quantity, price, walkins, leaveType}
}

// GetAll returns every record in stored order, newest first
func (r *InteractionRepository) GetAll(ctx context.Context) ([]models.InteractionRecord, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+interactionColumns+` FROM interactions ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.InteractionRecord
	for rows.Next() {
		rec, err := scanInteraction(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

func (r *InteractionRepository) Get(ctx context.Context, id string) (*models.InteractionRecord, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+interactionColumns+` FROM interactions WHERE id=$1`, id)
	return scanInteraction(row)
}

// Create inserts a record at the head of the stored order
func (r *InteractionRepository) Create(ctx context.Context, rec *models.InteractionRecord) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `UPDATE interactions SET position = position + 1`); err != nil {
		return err
	}
	args := append(interactionArgs(rec), 0)
	if _, err := tx.Exec(ctx,
		`INSERT INTO interactions(`+interactionColumns+`, position)
         VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`, args...); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *InteractionRepository) Update(ctx context.Context, rec *models.InteractionRecord) error {
	args := interactionArgs(rec)
	tag, err := r.DB.Exec(ctx,
		`UPDATE interactions SET date=$2, interaction_type=$3, category=$4, brand_name=$5,
         product_name=$6, attended_by=$7, reason_for_purchase=$8, customer_feedback=$9,
         is_own_brand=$10, quantity=$11, price=$12, walkins=$13, leave_type=$14,
         updated_at=CURRENT_TIMESTAMP
         WHERE id=$1`, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *InteractionRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM interactions WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ReplaceAll swaps the whole collection in one transaction: the previous
// contents are removed and the given records stored in slice order. On any
// failure the previous contents survive untouched.
func (r *InteractionRepository) ReplaceAll(ctx context.Context, records []models.InteractionRecord) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM interactions`); err != nil {
		return err
	}
	for i := range records {
		args := append(interactionArgs(&records[i]), i)
		if _, err := tx.Exec(ctx,
			`INSERT INTO interactions(`+interactionColumns+`, position)
             VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`, args...); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}
