package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func TestCreateBookRequestBook(t *testing.T) {
	req := CreateBookRequest{
		Title:       "Dune",
		Author:      "Herbert",
		Year:        ptr(1965),
		IsPublished: ptr(false),
		Description: ptr("desert planet"),
	}
	b := req.Book()
	assert.Equal(t, int64(0), b.ID)
	assert.Equal(t, "Dune", b.Title)
	assert.Equal(t, "Herbert", b.Author)
	assert.Equal(t, 1965, b.Year)
	assert.False(t, b.IsPublished)
	assert.Nil(t, b.Detail)
	assert.Equal(t, "desert planet", *b.Description)
}

func TestUpdateBookRequestApply(t *testing.T) {
	base := Book{ID: 1, Title: "Dune", Author: "Herbert", Year: 1965, IsPublished: true, Detail: ptr("hardcover")}

	testCases := []struct {
		name  string
		patch UpdateBookRequest
		want  Book
	}{
		{
			name:  "empty",
			patch: UpdateBookRequest{},
			want:  base,
		},
		{
			name:  "year only",
			patch: UpdateBookRequest{Year: ptr(1966)},
			want:  Book{ID: 1, Title: "Dune", Author: "Herbert", Year: 1966, IsPublished: true, Detail: ptr("hardcover")},
		},
		{
			name:  "unpublish and describe",
			patch: UpdateBookRequest{IsPublished: ptr(false), Description: ptr("sci-fi")},
			want:  Book{ID: 1, Title: "Dune", Author: "Herbert", Year: 1965, IsPublished: false, Detail: ptr("hardcover"), Description: ptr("sci-fi")},
		},
		{
			name:  "every field",
			patch: UpdateBookRequest{Title: ptr("Emma"), Author: ptr("Austen"), Year: ptr(1815), IsPublished: ptr(true), Detail: ptr("d"), Description: ptr("e")},
			want:  Book{ID: 1, Title: "Emma", Author: "Austen", Year: 1815, IsPublished: true, Detail: ptr("d"), Description: ptr("e")},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := base
			tc.patch.Apply(&got)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestUpdateBookRequestIsEmpty(t *testing.T) {
	assert.True(t, UpdateBookRequest{}.IsEmpty())
	assert.False(t, UpdateBookRequest{IsPublished: ptr(false)}.IsEmpty())
	assert.False(t, UpdateBookRequest{Description: ptr("")}.IsEmpty())
}

func TestStudentRequests(t *testing.T) {
	req := CreateStudentRequest{FirstName: "Ada", LastName: "Lovelace", StudentID: "S-001", Birthdate: "1815-12-10", Gender: "female"}
	s := req.Student()
	assert.Equal(t, Student{FirstName: "Ada", LastName: "Lovelace", StudentID: "S-001", Birthdate: "1815-12-10", Gender: "female"}, s)

	patch := UpdateStudentRequest{LastName: ptr("King"), Gender: ptr("f")}
	assert.False(t, patch.IsEmpty())
	assert.True(t, UpdateStudentRequest{}.IsEmpty())

	patch.Apply(&s)
	assert.Equal(t, Student{FirstName: "Ada", LastName: "King", StudentID: "S-001", Birthdate: "1815-12-10", Gender: "f"}, s)
}
