package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alirazi1992/Update3-Ticketing/internal/config"
	"github.com/alirazi1992/Update3-Ticketing/internal/domain"
)

func newTestUserService(users *stubUserRepo) *UserService {
	return NewUserService(config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 60,
		BcryptCost:            4,
	}, users)
}

func TestRegisterFirstUserBecomesAdmin(t *testing.T) {
	users := newStubUserRepo()
	svc := newTestUserService(users)

	user, token, _, err := svc.Register(context.Background(), RegisterInput{
		FullName: "First",
		Email:    "a@x.com",
		Password: "secret",
		Role:     domain.RoleClient,
	}, "")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Role != domain.RoleAdmin {
		t.Fatalf("first user role = %s, want %s", user.Role, domain.RoleAdmin)
	}
	if token == "" {
		t.Fatal("expected a session token")
	}
}

func TestRegisterAnonymousCannotEscalate(t *testing.T) {
	users := newStubUserRepo()
	svc := newTestUserService(users)
	ctx := context.Background()

	if _, _, _, err := svc.Register(ctx, RegisterInput{
		FullName: "First", Email: "a@x.com", Password: "secret",
	}, ""); err != nil {
		t.Fatalf("bootstrap register: %v", err)
	}

	user, _, _, err := svc.Register(ctx, RegisterInput{
		FullName: "Wannabe",
		Email:    "b@x.com",
		Password: "secret",
		Role:     domain.RoleAdmin,
	}, "")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Role != domain.RoleClient {
		t.Fatalf("anonymous registrant role = %s, want %s", user.Role, domain.RoleClient)
	}
}

func TestRegisterAdminCallerSetsRole(t *testing.T) {
	users := newStubUserRepo()
	svc := newTestUserService(users)
	ctx := context.Background()

	if _, _, _, err := svc.Register(ctx, RegisterInput{
		FullName: "Admin", Email: "a@x.com", Password: "secret",
	}, ""); err != nil {
		t.Fatalf("bootstrap register: %v", err)
	}

	user, _, _, err := svc.Register(ctx, RegisterInput{
		FullName: "New Tech",
		Email:    "c@x.com",
		Password: "secret",
		Role:     domain.RoleTechnician,
	}, domain.RoleAdmin)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Role != domain.RoleTechnician {
		t.Fatalf("role = %s, want %s", user.Role, domain.RoleTechnician)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := newStubUserRepo()
	svc := newTestUserService(users)
	ctx := context.Background()

	if _, _, _, err := svc.Register(ctx, RegisterInput{
		FullName: "First", Email: "a@x.com", Password: "secret",
	}, ""); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, _, err := svc.Register(ctx, RegisterInput{
		FullName: "Second", Email: "A@X.com", Password: "secret",
	}, "")
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("err = %v, want ErrEmailTaken", err)
	}
}

func TestLogin(t *testing.T) {
	users := newStubUserRepo()
	svc := newTestUserService(users)
	ctx := context.Background()

	if _, _, _, err := svc.Register(ctx, RegisterInput{
		FullName: "First", Email: "a@x.com", Password: "secret",
	}, ""); err != nil {
		t.Fatalf("register: %v", err)
	}

	user, token, _, err := svc.Login(ctx, "a@x.com", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.Email != "a@x.com" || token == "" {
		t.Fatalf("unexpected login result: %v / %q", user.Email, token)
	}

	if _, _, _, err := svc.Login(ctx, "a@x.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password err = %v, want ErrInvalidCredentials", err)
	}
	if _, _, _, err := svc.Login(ctx, "nobody@x.com", "secret"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown user err = %v, want ErrInvalidCredentials", err)
	}
}

func TestUpdateProfileEmailCollision(t *testing.T) {
	users := newStubUserRepo()
	svc := newTestUserService(users)
	ctx := context.Background()

	first, _, _, err := svc.Register(ctx, RegisterInput{
		FullName: "First", Email: "a@x.com", Password: "secret",
	}, "")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, _, _, err := svc.Register(ctx, RegisterInput{
		FullName: "Second", Email: "b@x.com", Password: "secret",
	}, ""); err != nil {
		t.Fatalf("register: %v", err)
	}

	taken := "b@x.com"
	if _, err := svc.UpdateProfile(ctx, first.ID, UpdateProfileInput{Email: &taken}); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("err = %v, want ErrEmailTaken", err)
	}

	// Re-submitting your own email is not a collision.
	own := "a@x.com"
	name := "Renamed"
	updated, err := svc.UpdateProfile(ctx, first.ID, UpdateProfileInput{Email: &own, FullName: &name})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.FullName != "Renamed" {
		t.Fatalf("full name = %q, want Renamed", updated.FullName)
	}
}

func TestChangePassword(t *testing.T) {
	users := newStubUserRepo()
	svc := newTestUserService(users)
	ctx := context.Background()

	user, _, _, err := svc.Register(ctx, RegisterInput{
		FullName: "First", Email: "a@x.com", Password: "secret",
	}, "")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	// A wrong current password is a bad request, not a failed login.
	if err := svc.ChangePassword(ctx, user.ID, "wrong", "newpass"); !errors.Is(err, domain.ErrPasswordMismatch) {
		t.Fatalf("err = %v, want ErrPasswordMismatch", err)
	}
	if err := svc.ChangePassword(ctx, user.ID, "secret", "newpass"); err != nil {
		t.Fatalf("change password: %v", err)
	}
	if _, _, _, err := svc.Login(ctx, "a@x.com", "newpass"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
	if _, _, _, err := svc.Login(ctx, "a@x.com", "secret"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("old password err = %v, want ErrInvalidCredentials", err)
	}
}

func TestListTechnicians(t *testing.T) {
	users := newStubUserRepo()
	svc := newTestUserService(users)
	ctx := context.Background()

	if _, _, _, err := svc.Register(ctx, RegisterInput{
		FullName: "Admin", Email: "a@x.com", Password: "secret",
	}, ""); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, _, _, err := svc.Register(ctx, RegisterInput{
		FullName: "Tech", Email: "t@x.com", Password: "secret", Role: domain.RoleTechnician,
	}, domain.RoleAdmin); err != nil {
		t.Fatalf("register: %v", err)
	}

	technicians, err := svc.ListTechnicians(ctx)
	if err != nil {
		t.Fatalf("list technicians: %v", err)
	}
	if len(technicians) != 1 || technicians[0].Role != domain.RoleTechnician {
		t.Fatalf("unexpected technicians: %+v", technicians)
	}
}
