package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventboard/internal/domain"
)

func TestUserController_CreateUser(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		svcErr   error
		wantCode int
	}{
		{name: "created", body: `{"name":"Alice","email":"alice@example.com"}`, wantCode: http.StatusCreated},
		{name: "short name", body: `{"name":"A","email":"alice@example.com"}`, wantCode: http.StatusBadRequest},
		{name: "bad email", body: `{"name":"Alice","email":"alice.example.com"}`, wantCode: http.StatusBadRequest},
		{name: "duplicate email", body: `{"name":"Alice","email":"alice@example.com"}`, svcErr: domain.ErrDuplicateEmail, wantCode: http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewUserController(testLogger, &fakeUserService{err: tt.svcErr})
			rr := serve(t, "POST /admin/users", c.CreateUser, http.MethodPost, "/admin/users", tt.body)
			require.Equal(t, tt.wantCode, rr.Code)
			if tt.wantCode == http.StatusCreated {
				var u domain.User
				decodeData(t, rr, &u)
				assert.Equal(t, "alice@example.com", u.Email)
			}
		})
	}
}

func TestUserController_ListAndDelete(t *testing.T) {
	svc := &fakeUserService{users: []*domain.User{{ID: 2, Name: "Bob", Email: "bob@example.com"}}}
	c := NewUserController(testLogger, svc)

	rr := serve(t, "GET /admin/users", c.ListUsers, http.MethodGet, "/admin/users?ids=2,3&from=0&size=5", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []int64{2, 3}, svc.lastIDs)
	assert.Equal(t, domain.PaginationParams{From: 0, Size: 5}, svc.lastPage)

	rr = serve(t, "DELETE /admin/users/{userId}", c.DeleteUser, http.MethodDelete, "/admin/users/2", "")
	require.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, int64(2), svc.deleted)

	c = NewUserController(testLogger, &fakeUserService{err: domain.NotFoundf("user with id=2 was not found")})
	rr = serve(t, "DELETE /admin/users/{userId}", c.DeleteUser, http.MethodDelete, "/admin/users/2", "")
	require.Equal(t, http.StatusNotFound, rr.Code)
}
