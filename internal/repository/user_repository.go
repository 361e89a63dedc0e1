package repository

import (
	"database/sql"
	"fmt"
	"time"

	"satay/internal/domain"
	"satay/pkg/logger"
	"satay/pkg/metrics"
)

type UserRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewUserRepository(db *sql.DB, logger logger.Logger) domain.UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

// FindByID şifre sütununu hiç seçmez; çağırana şifresiz satır döner.
func (r *UserRepository) FindByID(id int64) (*domain.User, error) {
	query := `SELECT id, full_name, email, role, phone_number, address, created_at FROM users WHERE id = $1`

	var user domain.User
	err := r.db.QueryRow(query, id).Scan(
		&user.ID,
		&user.FullName,
		&user.Email,
		&user.Role,
		&user.PhoneNumber,
		&user.Address,
		&user.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.Error("Kullanıcı ID'ye göre bulunamadı", map[string]interface{}{"id": id, "error": err.Error()})
		return nil, fmt.Errorf("kullanıcı bulunamadı: %w", err)
	}

	metrics.RecordDatabaseOperation("select", "users")

	return &user, nil
}

func (r *UserRepository) FindByEmail(email string) (*domain.User, error) {
	query := `SELECT id, full_name, email, password, role, phone_number, address, created_at FROM users WHERE email = $1`

	var user domain.User
	err := r.db.QueryRow(query, email).Scan(
		&user.ID,
		&user.FullName,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.PhoneNumber,
		&user.Address,
		&user.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.Error("Kullanıcı e-posta adresine göre bulunamadı", map[string]interface{}{"email": email, "error": err.Error()})
		return nil, fmt.Errorf("kullanıcı bulunamadı: %w", err)
	}

	metrics.RecordDatabaseOperation("select", "users")

	return &user, nil
}

func (r *UserRepository) Create(user *domain.User) error {
	query := `
		INSERT INTO users (full_name, email, password, role, phone_number, address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	user.CreatedAt = time.Now()

	if user.Role == "" {
		user.Role = domain.UserRoleMember
	}

	err := r.db.QueryRow(
		query,
		user.FullName,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.PhoneNumber,
		user.Address,
		user.CreatedAt,
	).Scan(&user.ID)

	if err != nil {
		r.logger.Error("Kullanıcı oluşturulamadı", map[string]interface{}{"error": err.Error()})
		return fmt.Errorf("kullanıcı oluşturulamadı: %w", err)
	}

	metrics.RecordDatabaseOperation("insert", "users")

	return nil
}

func (r *UserRepository) UpdateProfile(id int64, fullName string, phone, address *string) error {
	query := `UPDATE users SET full_name = $1, phone_number = $2, address = $3 WHERE id = $4`

	_, err := r.db.Exec(query, fullName, phone, address, id)
	if err != nil {
		r.logger.Error("Kullanıcı profili güncellenemedi", map[string]interface{}{"id": id, "error": err.Error()})
		return fmt.Errorf("kullanıcı güncellenemedi: %w", err)
	}

	metrics.RecordDatabaseOperation("update", "users")

	return nil
}

func (r *UserRepository) UpdatePassword(id int64, passwordHash string) error {
	query := `UPDATE users SET password = $1 WHERE id = $2`

	_, err := r.db.Exec(query, passwordHash, id)
	if err != nil {
		r.logger.Error("Kullanıcı şifresi güncellenemedi", map[string]interface{}{"id": id, "error": err.Error()})
		return fmt.Errorf("şifre güncellenemedi: %w", err)
	}

	metrics.RecordDatabaseOperation("update", "users")

	return nil
}

func (r *UserRepository) FindAll(role string) ([]*domain.User, error) {
	query := `SELECT id, full_name, email, role, created_at FROM users ORDER BY created_at DESC`
	args := []interface{}{}

	if role != "" {
		query = `SELECT id, full_name, email, role, created_at FROM users WHERE role = $1 ORDER BY created_at DESC`
		args = append(args, role)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		r.logger.Error("Kullanıcılar listelenemedi", map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("kullanıcılar listelenemedi: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		var user domain.User
		err := rows.Scan(
			&user.ID,
			&user.FullName,
			&user.Email,
			&user.Role,
			&user.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("kullanıcı satırı okunamadı: %w", err)
		}
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("kullanıcılar listelenemedi: %w", err)
	}

	metrics.RecordDatabaseOperation("select", "users")

	return users, nil
}

func (r *UserRepository) Delete(id int64) error {
	query := `DELETE FROM users WHERE id = $1`

	_, err := r.db.Exec(query, id)
	if err != nil {
		r.logger.Error("Kullanıcı silinemedi", map[string]interface{}{"id": id, "error": err.Error()})
		return fmt.Errorf("kullanıcı silinemedi: %w", err)
	}

	metrics.RecordDatabaseOperation("delete", "users")

	return nil
}
