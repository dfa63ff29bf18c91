package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()
	require.NoError(t, WriteJSON(w, http.StatusCreated, map[string]int{"id": 7}))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json; charset=UTF-8", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":7}`, w.Body.String())
}

func TestNoContent(t *testing.T) {
	w := httptest.NewRecorder()
	NoContent(w)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Zero(t, w.Body.Len())
}

func TestGeneralError(t *testing.T) {
	resp := GeneralError(errors.New("book not found")).WithRequestID("abc")
	assert.Equal(t, Response{Status: StatusError, Error: "book not found", RequestID: "abc"}, resp)

	w := httptest.NewRecorder()
	require.NoError(t, WriteJSON(w, http.StatusNotFound, GeneralError(errors.New("gone"))))
	assert.JSONEq(t, `{"status":"error","error":"gone"}`, w.Body.String())
}

type sample struct {
	Title     string  `json:"title"     validate:"required"`
	Author    *string `json:"author"    validate:"omitnil,min=2"`
	Year      int     `json:"year"      validate:"lte=9999"`
	Birthdate string  `json:"birthdate" validate:"omitempty,datetime=2006-01-02"`
	Gender    string  `json:"gender"    validate:"omitempty,oneof=f m"`
}

func TestValidationError(t *testing.T) {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	})

	short := "x"
	err := v.Struct(sample{Author: &short, Year: 12000, Birthdate: "12/10/1815", Gender: "x"})
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))

	resp := ValidationError(verrs)
	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t,
		"field title is required, "+
			"field author must be at least 2 characters long, "+
			"field year must be at most 9999, "+
			"field birthdate must be a date (YYYY-MM-DD), "+
			"field gender is invalid",
		resp.Error)
}
