package services

import (
	"context"
	"errors"
	"fmt"

	"eduagri-backend/internal/database"
	"eduagri-backend/internal/models"
)

var ErrAlreadyEnrolled = errors.New("already enrolled in this course")

type EnrollmentService struct {
	db *database.DB
}

func NewEnrollmentService(db *database.DB) *EnrollmentService {
	return &EnrollmentService{db: db}
}

// Enroll records (userID, courseTitle). The composite unique constraint is
// the only duplicate check; userID must come from verified token claims.
func (s *EnrollmentService) Enroll(ctx context.Context, userID int64, courseTitle string, courseImg *string) (int64, error) {
	query := "INSERT INTO enrollments (user_id, course_title, course_img) VALUES (?, ?, ?)"
	id, err := s.db.InsertID(ctx, query, userID, courseTitle, courseImg)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return 0, ErrAlreadyEnrolled
		}
		return 0, fmt.Errorf("failed to enroll: %w", err)
	}

	return id, nil
}

func (s *EnrollmentService) ListForUser(ctx context.Context, userID int64) ([]models.Enrollment, error) {
	enrollments := []models.Enrollment{}
	query := s.db.Rebind(`
		SELECT id, user_id, course_title, course_img, enrolled_at
		FROM enrollments
		WHERE user_id = ?
		ORDER BY enrolled_at DESC, id DESC
	`)

	if err := s.db.SelectContext(ctx, &enrollments, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}

	return enrollments, nil
}

// Unenroll deletes the pair if present. A pair that was never enrolled
// deletes zero rows and is still success.
func (s *EnrollmentService) Unenroll(ctx context.Context, userID int64, courseTitle string) error {
	query := s.db.Rebind("DELETE FROM enrollments WHERE user_id = ? AND course_title = ?")
	if _, err := s.db.ExecContext(ctx, query, userID, courseTitle); err != nil {
		return fmt.Errorf("failed to unenroll: %w", err)
	}

	return nil
}
