package repos

import (
	"database/sql"
	"errors"
	"fmt"

	"foodonline/internal/domain"

	"github.com/jmoiron/sqlx"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

const userCols = `u.id,u.email,u.first_name,u.last_name,u.phone_number,u.password_hash,u.role,u.is_active`

func (r *UserRepo) ByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT `+userCols+` FROM users u WHERE LOWER(u.email)=LOWER(?)`, email)
	if err != nil {
		return nil, notFound(err, "user by email")
	}
	return &u, nil
}

func (r *UserRepo) ByID(id string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT `+userCols+` FROM users u WHERE u.id=?`, id)
	if err != nil {
		return nil, notFound(err, "user by id")
	}
	return &u, nil
}

// Profile returns the contact/location profile for a user. A user without a profile
// row gets an empty profile.
func (r *UserRepo) Profile(userID string) (domain.UserProfile, error) {
	var p domain.UserProfile
	err := r.DB.Get(&p, `
	  SELECT user_id,address,country,state,city,pin_code,latitude,longitude
	  FROM user_profiles WHERE user_id=?`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.UserProfile{UserID: userID}, nil
	}
	if err != nil {
		return domain.UserProfile{}, fmt.Errorf("load profile: %w", err)
	}
	return p, nil
}

func (r *UserRepo) SetRole(userID, role string) error {
	_, err := r.DB.Exec(`UPDATE users SET role=?, updated_at=CURRENT_TIMESTAMP WHERE id=?`, role, userID)
	return err
}

func (r *UserRepo) BindSession(sid, userID string) error {
	_, err := r.DB.Exec(`INSERT INTO sessions(id,user_id,last_seen)
                          VALUES(?,?,CURRENT_TIMESTAMP)
                          ON CONFLICT(id) DO UPDATE SET user_id=excluded.user_id,last_seen=CURRENT_TIMESTAMP`, sid, userID)
	return err
}

// SessionUser resolves the active user bound to a session id.
func (r *UserRepo) SessionUser(sid string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `
      SELECT `+userCols+`
      FROM sessions s
      JOIN users u ON u.id=s.user_id
      WHERE s.id=? AND u.is_active=1`, sid)
	if err != nil {
		return nil, notFound(err, "session user")
	}
	return &u, nil
}

func (r *UserRepo) UnbindSession(sid string) error {
	_, err := r.DB.Exec(`UPDATE sessions SET user_id=NULL,last_seen=CURRENT_TIMESTAMP WHERE id=?`, sid)
	return err
}

// notFound maps sql.ErrNoRows onto domain.ErrNotFound and wraps anything else.
func notFound(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, domain.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", what, err)
}
