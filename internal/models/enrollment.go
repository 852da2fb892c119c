package models

import "time"

type Enrollment struct {
	ID int64 `db:"id" json:"id"`

	UserID      int64   `db:"user_id" json:"-"`
	CourseTitle string  `db:"course_title" json:"course_title"`
	CourseImg   *string `db:"course_img" json:"course_img"`

	EnrolledAt time.Time `db:"enrolled_at" json:"enrolled_at"`
}
