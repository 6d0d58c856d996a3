package company

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrCompanyNotFound = errors.New("company not found")

type Repository interface {
	StoreCompany(ctx context.Context, userId int, company Company) (int, error)
	GetCompany(ctx context.Context, userId int, id int) (Company, error)
	GetCompanies(ctx context.Context, userId int) ([]Company, error)
	UpdateCompany(ctx context.Context, userId int, company Company) error
	DeleteCompany(ctx context.Context, userId int, id int) error
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) StoreCompany(ctx context.Context, userId int, company Company) (int, error) {
	query := `INSERT INTO company (name, industry, website, location, status, created_at, user_id)
				VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	var id int
	err := r.db.QueryRow(ctx, query,
		company.Name,
		company.Industry,
		company.Website,
		company.Location,
		company.Status,
		company.CreatedAt.UnixMilli(),
		userId,
	).Scan(&id)
	if err != nil {
		log.Errorf("could not store company: %v", err)
		return 0, err
	}
	return id, nil
}

func (r *RepositoryImpl) GetCompany(ctx context.Context, userId int, id int) (Company, error) {
	query := `SELECT id, name, industry, website, location, status, created_at
				FROM company WHERE id = $1 AND user_id = $2`
	var company Company
	var createdAtMillis int64
	err := r.db.QueryRow(ctx, query, id, userId).Scan(
		&company.Id,
		&company.Name,
		&company.Industry,
		&company.Website,
		&company.Location,
		&company.Status,
		&createdAtMillis,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Company{}, ErrCompanyNotFound
	} else if err != nil {
		log.Errorf("could not get company %d: %v", id, err)
		return Company{}, err
	}
	company.CreatedAt = time.UnixMilli(createdAtMillis)
	return company, nil
}

func (r *RepositoryImpl) GetCompanies(ctx context.Context, userId int) ([]Company, error) {
	query := `SELECT id, name, industry, website, location, status, created_at
				FROM company WHERE user_id = $1 ORDER BY name`
	rows, err := r.db.Query(ctx, query, userId)
	if err != nil {
		log.Errorf("could not query companies: %v", err)
		return nil, err
	}
	defer rows.Close()

	companies := make([]Company, 0, 10)
	for rows.Next() {
		var company Company
		var createdAtMillis int64
		err := rows.Scan(
			&company.Id,
			&company.Name,
			&company.Industry,
			&company.Website,
			&company.Location,
			&company.Status,
			&createdAtMillis,
		)
		if err != nil {
			log.Errorf("could not scan company row: %v", err)
			return nil, err
		}
		company.CreatedAt = time.UnixMilli(createdAtMillis)
		companies = append(companies, company)
	}
	return companies, rows.Err()
}

func (r *RepositoryImpl) UpdateCompany(ctx context.Context, userId int, company Company) error {
	query := `UPDATE company SET name = $1, industry = $2, website = $3, location = $4, status = $5
				WHERE id = $6 AND user_id = $7`
	tag, err := r.db.Exec(ctx, query,
		company.Name,
		company.Industry,
		company.Website,
		company.Location,
		company.Status,
		company.Id,
		userId,
	)
	if err != nil {
		log.Errorf("could not update company %d: %v", company.Id, err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCompanyNotFound
	}
	return nil
}

func (r *RepositoryImpl) DeleteCompany(ctx context.Context, userId int, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM company WHERE id = $1 AND user_id = $2`, id, userId)
	if err != nil {
		log.Errorf("could not delete company %d: %v", id, err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCompanyNotFound
	}
	return nil
}
