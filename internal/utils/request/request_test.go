package request

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/library-api/internal/types"
)

func decode(body string, dst any) error {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	return DecodeJSON(httptest.NewRecorder(), r, dst)
}

func TestDecodeJSON(t *testing.T) {
	t.Run("should pass: valid object", func(t *testing.T) {
		var req types.UpdateBookRequest
		require.NoError(t, decode(`{"year": 1966}`, &req))
		require.NotNil(t, req.Year)
		assert.Equal(t, 1966, *req.Year)
		assert.Nil(t, req.Title)
	})

	t.Run("should pass: trailing whitespace", func(t *testing.T) {
		var req types.UpdateBookRequest
		assert.NoError(t, decode("{\"title\": \"x\"}\n\t ", &req))
	})

	testCases := []struct {
		name string
		body string
		want string
	}{
		{name: "empty", body: "", want: "request body is empty"},
		{name: "malformed", body: `{"title":`, want: "malformed request body"},
		{name: "wrong type", body: `{"title": 1}`, want: "malformed request body"},
		{name: "unknown field", body: `{"name": "legacy"}`, want: `unknown field "name"`},
		{name: "second object", body: `{"title":"a"}{"title":"b"}`, want: "unexpected data"},
		{name: "trailing garbage", body: `{"title":"a"} x`, want: "unexpected data"},
	}
	for _, tc := range testCases {
		t.Run("should fail: "+tc.name, func(t *testing.T) {
			var req types.UpdateBookRequest
			err := decode(tc.body, &req)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}

	t.Run("should fail: body over the limit", func(t *testing.T) {
		var req types.UpdateBookRequest
		body := `{"title":"` + strings.Repeat("a", MaxBodyBytes) + `"}`
		assert.ErrorIs(t, decode(body, &req), ErrBodyTooLarge)
	})

	t.Run("should fail: empty is a sentinel", func(t *testing.T) {
		var req types.UpdateBookRequest
		assert.ErrorIs(t, decode("", &req), ErrEmptyBody)
	})
}

func TestValidate(t *testing.T) {
	t.Run("should pass: complete book", func(t *testing.T) {
		year, published := 1965, false
		req := types.CreateBookRequest{Title: "Dune", Author: "Herbert", Year: &year, IsPublished: &published}
		assert.NoError(t, Validate(req))
	})

	t.Run("should fail: missing book fields use json names", func(t *testing.T) {
		err := Validate(types.CreateBookRequest{Title: "Dune"})
		var verrs validator.ValidationErrors
		require.True(t, errors.As(err, &verrs))

		fields := map[string]string{}
		for _, e := range verrs {
			fields[e.Field()] = e.ActualTag()
		}
		assert.Equal(t, map[string]string{
			"author":       "required",
			"year":         "required",
			"is_published": "required",
		}, fields)
	})

	t.Run("should fail: empty title in patch", func(t *testing.T) {
		empty := ""
		err := Validate(types.UpdateBookRequest{Title: &empty})
		var verrs validator.ValidationErrors
		require.True(t, errors.As(err, &verrs))
		require.Len(t, verrs, 1)
		assert.Equal(t, "title", verrs[0].Field())
		assert.Equal(t, "min", verrs[0].ActualTag())
	})

	t.Run("should pass: empty patch", func(t *testing.T) {
		assert.NoError(t, Validate(types.UpdateStudentRequest{}))
	})

	t.Run("should fail: bad birthdate", func(t *testing.T) {
		bad := "10/12/1815"
		err := Validate(types.UpdateStudentRequest{Birthdate: &bad})
		var verrs validator.ValidationErrors
		require.True(t, errors.As(err, &verrs))
		assert.Equal(t, "birthdate", verrs[0].Field())
		assert.Equal(t, "datetime", verrs[0].ActualTag())
	})
}

func TestParseID(t *testing.T) {
	testCases := []struct {
		raw   string
		want  int64
		valid bool
	}{
		{raw: "1", want: 1, valid: true},
		{raw: "9007199254740993", want: 9007199254740993, valid: true},
		{raw: "0"},
		{raw: "-3"},
		{raw: "abc"},
		{raw: ""},
		{raw: "1.5"},
	}
	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			id, err := ParseID(httprouter.Params{{Key: "id", Value: tc.raw}})
			if !tc.valid {
				assert.ErrorIs(t, err, ErrInvalidID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, id)
		})
	}
}
