package dto

type EnrollRequest struct {
	CourseTitle string  `json:"courseTitle" validate:"required"`
	CourseImg   *string `json:"courseImg"`
}

func (r *EnrollRequest) Validate() error {
	return validate.Struct(r)
}

type EnrollResponse struct {
	Success     bool    `json:"success"`
	ID          int64   `json:"id"`
	CourseTitle string  `json:"courseTitle"`
	CourseImg   *string `json:"courseImg"`
}

type UnenrollResponse struct {
	Success bool `json:"success"`
}
