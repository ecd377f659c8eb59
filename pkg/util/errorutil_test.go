package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"

	"github.com/alirazi1992/Update3-Ticketing/internal/domain"
)

func TestToDomainErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"ticket not found", domain.ErrTicketNotFound, http.StatusNotFound},
		{"email taken", domain.ErrEmailTaken, http.StatusConflict},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"password mismatch", domain.ErrPasswordMismatch, http.StatusBadRequest},
		{"bare no rows", pgx.ErrNoRows, http.StatusNotFound},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ToDomainError(tc.err)
			if got.HTTPStatus != tc.want {
				t.Fatalf("status = %d, want %d", got.HTTPStatus, tc.want)
			}
		})
	}
}

func TestToDomainErrorPassthrough(t *testing.T) {
	original := NewForbidden("insufficient role")
	got := ToDomainError(original)
	if got.HTTPStatus != http.StatusForbidden || got.Code != "FORBIDDEN" {
		t.Fatalf("passthrough mangled: %+v", got)
	}
}
