package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"sda-backend/internal/models"
)

// ProfileRepository stores the singleton associate profile (row id is
// always 1).
type ProfileRepository struct {
	DB *pgxpool.Pool
}

func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{DB: db}
}

func (r *ProfileRepository) Get(ctx context.Context) (*models.UserProfile, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT name, store_name, emp_id, brand, brand_portfolio, department, photo,
         week_target, month_target, pin_hash, totp_secret, totp_enabled
         FROM user_profile WHERE id=1`)

	var p models.UserProfile
	err := row.Scan(&p.Name, &p.StoreName, &p.EmpID, &p.Brand, &p.BrandPortfolio,
		&p.Department, &p.Photo, &p.WeekTarget, &p.MonthTarget,
		&p.PINHash, &p.TOTPSecret, &p.TOTPEnabled)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Save upserts the singleton profile including auth fields
func (r *ProfileRepository) Save(ctx context.Context, p *models.UserProfile) error {
	_, err := r.DB.Exec(ctx,
		`INSERT INTO user_profile(id, name, store_name, emp_id, brand, brand_portfolio,
         department, photo, week_target, month_target, pin_hash, totp_secret, totp_enabled)
         VALUES(1, $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
         ON CONFLICT (id) DO UPDATE SET
             name=EXCLUDED.name, store_name=EXCLUDED.store_name, emp_id=EXCLUDED.emp_id,
             brand=EXCLUDED.brand, brand_portfolio=EXCLUDED.brand_portfolio,
             department=EXCLUDED.department, photo=EXCLUDED.photo,
             week_target=EXCLUDED.week_target, month_target=EXCLUDED.month_target,
             pin_hash=EXCLUDED.pin_hash, totp_secret=EXCLUDED.totp_secret,
             totp_enabled=EXCLUDED.totp_enabled,
             updated_at=CURRENT_TIMESTAMP`,
		p.Name, p.StoreName, p.EmpID, p.Brand, p.BrandPortfolio, p.Department,
		p.Photo, p.WeekTarget, p.MonthTarget, p.PINHash, p.TOTPSecret, p.TOTPEnabled)
	return err
}

// UpdateProfile updates display fields only, leaving auth fields alone
func (r *ProfileRepository) UpdateProfile(ctx context.Context, p *models.UserProfile) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE user_profile SET name=$1, store_name=$2, emp_id=$3, brand=$4,
         brand_portfolio=$5, department=$6, photo=$7, week_target=$8, month_target=$9,
         updated_at=CURRENT_TIMESTAMP
         WHERE id=1`,
		p.Name, p.StoreName, p.EmpID, p.Brand, p.BrandPortfolio, p.Department,
		p.Photo, p.WeekTarget, p.MonthTarget)
	return err
}

// SetTOTP stores the TOTP secret and enabled flag
func (r *ProfileRepository) SetTOTP(ctx context.Context, secret string, enabled bool) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE user_profile SET totp_secret=$1, totp_enabled=$2, updated_at=CURRENT_TIMESTAMP
         WHERE id=1`, secret, enabled)
	return err
}

func (r *ProfileRepository) Delete(ctx context.Context) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM user_profile WHERE id=1`)
	return err
}
