package contact

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrContactNotFound = errors.New("contact not found")

type Repository interface {
	StoreContact(ctx context.Context, userId int, contact Contact) (int, error)
	GetContact(ctx context.Context, userId int, id int) (Contact, error)
	GetContactsByCompany(ctx context.Context, userId int, companyId int) ([]Contact, error)
	CountContacts(ctx context.Context, userId int) (int, error)
	UpdateContact(ctx context.Context, userId int, contact Contact) error
	DeleteContact(ctx context.Context, userId int, id int) error
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) StoreContact(ctx context.Context, userId int, contact Contact) (int, error) {
	query := `INSERT INTO contact (company_id, first_name, last_name, email, phone, role, user_id)
				VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	var id int
	err := r.db.QueryRow(ctx, query,
		contact.CompanyId,
		contact.FirstName,
		contact.LastName,
		contact.Email,
		contact.Phone,
		contact.Role,
		userId,
	).Scan(&id)
	if err != nil {
		log.Errorf("could not store contact: %v", err)
		return 0, err
	}
	return id, nil
}

func (r *RepositoryImpl) GetContact(ctx context.Context, userId int, id int) (Contact, error) {
	query := `SELECT id, company_id, first_name, last_name, email, phone, role
				FROM contact WHERE id = $1 AND user_id = $2`
	var contact Contact
	err := r.db.QueryRow(ctx, query, id, userId).Scan(
		&contact.Id,
		&contact.CompanyId,
		&contact.FirstName,
		&contact.LastName,
		&contact.Email,
		&contact.Phone,
		&contact.Role,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Contact{}, ErrContactNotFound
	} else if err != nil {
		log.Errorf("could not get contact %d: %v", id, err)
		return Contact{}, err
	}
	return contact, nil
}

func (r *RepositoryImpl) GetContactsByCompany(ctx context.Context, userId int, companyId int) ([]Contact, error) {
	query := `SELECT id, company_id, first_name, last_name, email, phone, role
				FROM contact WHERE company_id = $1 AND user_id = $2 ORDER BY last_name, first_name`
	rows, err := r.db.Query(ctx, query, companyId, userId)
	if err != nil {
		log.Errorf("could not query contacts: %v", err)
		return nil, err
	}
	defer rows.Close()

	contacts := make([]Contact, 0, 10)
	for rows.Next() {
		var contact Contact
		err := rows.Scan(
			&contact.Id,
			&contact.CompanyId,
			&contact.FirstName,
			&contact.LastName,
			&contact.Email,
			&contact.Phone,
			&contact.Role,
		)
		if err != nil {
			log.Errorf("could not scan contact row: %v", err)
			return nil, err
		}
		contacts = append(contacts, contact)
	}
	return contacts, rows.Err()
}

func (r *RepositoryImpl) CountContacts(ctx context.Context, userId int) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM contact WHERE user_id = $1`, userId).Scan(&count)
	if err != nil {
		log.Errorf("could not count contacts: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *RepositoryImpl) UpdateContact(ctx context.Context, userId int, contact Contact) error {
	query := `UPDATE contact SET first_name = $1, last_name = $2, email = $3, phone = $4, role = $5
				WHERE id = $6 AND user_id = $7`
	tag, err := r.db.Exec(ctx, query,
		contact.FirstName,
		contact.LastName,
		contact.Email,
		contact.Phone,
		contact.Role,
		contact.Id,
		userId,
	)
	if err != nil {
		log.Errorf("could not update contact %d: %v", contact.Id, err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrContactNotFound
	}
	return nil
}

func (r *RepositoryImpl) DeleteContact(ctx context.Context, userId int, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM contact WHERE id = $1 AND user_id = $2`, id, userId)
	if err != nil {
		log.Errorf("could not delete contact %d: %v", id, err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrContactNotFound
	}
	return nil
}
