package users

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"career-backend/internal/careers"
)

// PGRepo is the primary backend, one row per email in career_users.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) FindByEmail(ctx context.Context, email string) (User, error) {
	const query = `
SELECT id, name, email, skills, hobbies, career_goal, recommendations, created_at, updated_at
FROM career_users
WHERE email = $1
LIMIT 1`
	var (
		user            User
		skills          []byte
		hobbies         []byte
		recommendations []byte
	)
	err := r.DB.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&skills,
		&hobbies,
		&user.CareerGoal,
		&recommendations,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	if err := decodeJSONColumn(skills, &user.Skills); err != nil {
		return User{}, fmt.Errorf("decode skills: %w", err)
	}
	if err := decodeJSONColumn(hobbies, &user.Hobbies); err != nil {
		return User{}, fmt.Errorf("decode hobbies: %w", err)
	}
	if err := decodeJSONColumn(recommendations, &user.Recommendations); err != nil {
		return User{}, fmt.Errorf("decode recommendations: %w", err)
	}
	user.Skills = nonNil(user.Skills)
	user.Hobbies = nonNil(user.Hobbies)
	if user.Recommendations == nil {
		user.Recommendations = []careers.Recommendation{}
	}
	return user, nil
}

func (r *PGRepo) Upsert(ctx context.Context, user User) (User, error) {
	const query = `
INSERT INTO career_users (id, name, email, skills, hobbies, career_goal, recommendations, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
ON CONFLICT (email) DO UPDATE SET
  name = EXCLUDED.name,
  skills = EXCLUDED.skills,
  hobbies = EXCLUDED.hobbies,
  career_goal = EXCLUDED.career_goal,
  recommendations = EXCLUDED.recommendations,
  updated_at = now()
RETURNING id, created_at, updated_at`
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	skills, err := encodeJSONColumn(nonNil(user.Skills))
	if err != nil {
		return User{}, err
	}
	hobbies, err := encodeJSONColumn(nonNil(user.Hobbies))
	if err != nil {
		return User{}, err
	}
	history := user.Recommendations
	if history == nil {
		history = []careers.Recommendation{}
	}
	recommendations, err := encodeJSONColumn(history)
	if err != nil {
		return User{}, err
	}
	err = r.DB.QueryRowContext(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		skills,
		hobbies,
		user.CareerGoal,
		recommendations,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return User{}, err
	}
	return user, nil
}

func encodeJSONColumn(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode json column: %w", err)
	}
	return string(raw), nil
}

func decodeJSONColumn(raw []byte, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}
