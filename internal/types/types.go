// Package types holds the shared data structures (models and request
// payloads) used across the application. Keeping them in one place
// prevents import cycles: handlers, storage, and utils can all import
// types without depending on each other.
package types

// Book is a row of the books table.
//
// Detail and Description are nullable columns, so they are pointers and
// encode to JSON null when unset.
type Book struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Year        int     `json:"year"`
	IsPublished bool    `json:"is_published"`
	Detail      *string `json:"detail"`
	Description *string `json:"description"`
}

// Student is a row of the students table. StudentID is the natural key
// and is unique across all rows; ID is the generated primary key.
type Student struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	StudentID string `json:"student_id"`
	Birthdate string `json:"birthdate"`
	Gender    string `json:"gender"`
}

// CreateBookRequest is the body of POST /api/v1/books.
//
// Year and IsPublished are pointers so that "required" means "present in
// the body" rather than "non-zero": is_published=false is a valid value.
type CreateBookRequest struct {
	Title       string  `json:"title"        validate:"required,max=255"`
	Author      string  `json:"author"       validate:"required,max=255"`
	Year        *int    `json:"year"         validate:"required,gte=0,lte=9999"`
	IsPublished *bool   `json:"is_published" validate:"required"`
	Detail      *string `json:"detail"       validate:"omitnil,max=4096"`
	Description *string `json:"description"  validate:"omitnil,max=4096"`
}

// Book converts the request into a Book without an ID.
func (r CreateBookRequest) Book() Book {
	b := Book{
		Title:       r.Title,
		Author:      r.Author,
		Detail:      r.Detail,
		Description: r.Description,
	}
	if r.Year != nil {
		b.Year = *r.Year
	}
	if r.IsPublished != nil {
		b.IsPublished = *r.IsPublished
	}
	return b
}

// UpdateBookRequest is the body of PATCH /api/v1/books/{id}.
// A nil field was absent from the request and must be left untouched.
type UpdateBookRequest struct {
	Title       *string `json:"title"        validate:"omitnil,min=1,max=255"`
	Author      *string `json:"author"       validate:"omitnil,min=1,max=255"`
	Year        *int    `json:"year"         validate:"omitnil,gte=0,lte=9999"`
	IsPublished *bool   `json:"is_published"`
	Detail      *string `json:"detail"       validate:"omitnil,max=4096"`
	Description *string `json:"description"  validate:"omitnil,max=4096"`
}

// IsEmpty reports whether the patch carries no field at all.
func (r UpdateBookRequest) IsEmpty() bool {
	return r.Title == nil && r.Author == nil && r.Year == nil &&
		r.IsPublished == nil && r.Detail == nil && r.Description == nil
}

// Apply overwrites the fields of b that are present in the patch.
func (r UpdateBookRequest) Apply(b *Book) {
	if r.Title != nil {
		b.Title = *r.Title
	}
	if r.Author != nil {
		b.Author = *r.Author
	}
	if r.Year != nil {
		b.Year = *r.Year
	}
	if r.IsPublished != nil {
		b.IsPublished = *r.IsPublished
	}
	if r.Detail != nil {
		b.Detail = r.Detail
	}
	if r.Description != nil {
		b.Description = r.Description
	}
}

// CreateStudentRequest is the body of POST /api/v1/students.
type CreateStudentRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name"  validate:"required,max=100"`
	StudentID string `json:"student_id" validate:"required,max=64"`
	Birthdate string `json:"birthdate"  validate:"required,datetime=2006-01-02"`
	Gender    string `json:"gender"     validate:"required,max=32"`
}

// Student converts the request into a Student without an ID.
func (r CreateStudentRequest) Student() Student {
	return Student{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		StudentID: r.StudentID,
		Birthdate: r.Birthdate,
		Gender:    r.Gender,
	}
}

// UpdateStudentRequest is the body of PATCH /api/v1/students/{id}.
type UpdateStudentRequest struct {
	FirstName *string `json:"first_name" validate:"omitnil,min=1,max=100"`
	LastName  *string `json:"last_name"  validate:"omitnil,min=1,max=100"`
	StudentID *string `json:"student_id" validate:"omitnil,min=1,max=64"`
	Birthdate *string `json:"birthdate"  validate:"omitnil,datetime=2006-01-02"`
	Gender    *string `json:"gender"     validate:"omitnil,min=1,max=32"`
}

// IsEmpty reports whether the patch carries no field at all.
func (r UpdateStudentRequest) IsEmpty() bool {
	return r.FirstName == nil && r.LastName == nil && r.StudentID == nil &&
		r.Birthdate == nil && r.Gender == nil
}

// Apply overwrites the fields of s that are present in the patch.
func (r UpdateStudentRequest) Apply(s *Student) {
	if r.FirstName != nil {
		s.FirstName = *r.FirstName
	}
	if r.LastName != nil {
		s.LastName = *r.LastName
	}
	if r.StudentID != nil {
		s.StudentID = *r.StudentID
	}
	if r.Birthdate != nil {
		s.Birthdate = *r.Birthdate
	}
	if r.Gender != nil {
		s.Gender = *r.Gender
	}
}
