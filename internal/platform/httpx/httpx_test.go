package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pet-clinic/internal/domain/clinic"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError_Mapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		msg    string
	}{
		{clinic.NewValidationError("name", "is required"), 400, "validation failed: name is required"},
		{clinic.NotFound(clinic.EntityPetOwner, 3), 404, "Pet Owner with ID 3 not found"},
		{clinic.Conflict("Email already in use"), 409, "Email already in use"},
		{clinic.ErrInvalidCredentials, 401, "Invalid credentials"},
		{errors.New("pq: connection refused"), 500, "internal error"},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		WriteError(rec, httptest.NewRequest(http.MethodGet, "/", nil), tc.err)

		assert.Equal(t, tc.status, rec.Code)
		var body ErrorBody
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, tc.status, body.StatusCode)
		assert.Equal(t, http.StatusText(tc.status), body.Error)
		assert.Equal(t, tc.msg, body.Message)
	}
}

func TestDecodeJSON(t *testing.T) {
	type in struct {
		Name  string  `json:"name"`
		Price float64 `json:"price"`
	}

	decode := func(body string) (in, error) {
		var v in
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		return v, DecodeJSON(r, &v)
	}

	v, err := decode(`{"name":"Rex","extra":true}`)
	require.NoError(t, err)
	assert.Equal(t, "Rex", v.Name)

	fieldOf := func(err error) map[string]string {
		var verr *clinic.ValidationError
		require.ErrorAs(t, err, &verr)
		return verr.Fields
	}

	_, err = decode(`{"price":"cheap"}`)
	assert.Equal(t, map[string]string{"price": "has an invalid type or format"}, fieldOf(err))

	_, err = decode(`{"name":`)
	assert.Equal(t, map[string]string{"body": "is not valid JSON"}, fieldOf(err))

	_, err = decode(``)
	assert.Equal(t, map[string]string{"body": "is required"}, fieldOf(err))

	_, err = decode(`[1,2]`)
	assert.Equal(t, map[string]string{"body": "has an invalid type or format"}, fieldOf(err))
}

func TestIDParam(t *testing.T) {
	req := func(v string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("petID", v)
		return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	}

	id, err := IDParam(req("12"), "petID")
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)

	for _, bad := range []string{"0", "-1", "abc", ""} {
		_, err := IDParam(req(bad), "petID")
		var verr *clinic.ValidationError
		assert.ErrorAs(t, err, &verr, bad)
	}
}
