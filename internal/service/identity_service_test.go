package service

import (
	"context"
	"errors"
	"testing"

	"vintage-atelier/internal/cart"
	"vintage-atelier/internal/catalog"
	"vintage-atelier/internal/domain"

	"go.uber.org/zap"
)

const testSessionSecret = "test-session-secret"

func newTestIdentityService(states *mockStateRepository, carts *cart.Store) IdentityService {
	return NewIdentityService(states, carts, testSessionSecret, zap.NewNop())
}

func TestRegisterFabricatesUserAndIssuesToken(t *testing.T) {
	states := newMockStateRepository()
	identity := newTestIdentityService(states, cart.NewStore())
	ctx := context.Background()

	form := RegisterForm{
		Name:               "Мария",
		Email:              "maria@example.com",
		Phone:              "+7 911 222-33-44",
		RegistrationMethod: domain.RegistrationMethodEmail,
	}

	token, user, err := identity.Register(ctx, "s1", form)
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected a session token")
	}
	if user.Name != form.Name || user.Email != form.Email {
		t.Errorf("unexpected user: %+v", user)
	}
	if user.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Error("user id not assigned")
	}

	saved, err := identity.Profile(ctx, "s1")
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}
	if saved.ID != user.ID {
		t.Errorf("profile id = %v, want %v", saved.ID, user.ID)
	}
}

func TestRegisterNormalizesUnknownMethod(t *testing.T) {
	identity := newTestIdentityService(newMockStateRepository(), cart.NewStore())

	_, user, err := identity.Register(context.Background(), "s1", RegisterForm{
		Name:               "x",
		RegistrationMethod: "carrier-pigeon",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.RegistrationMethod != domain.RegistrationMethodEmail {
		t.Errorf("method = %q, want email fallback", user.RegistrationMethod)
	}
}

func TestLoginFabricatesFromIdentifier(t *testing.T) {
	identity := newTestIdentityService(newMockStateRepository(), cart.NewStore())
	ctx := context.Background()

	tests := []struct {
		name       string
		identifier string
		wantEmail  string
		wantPhone  string
		wantMethod string
	}{
		{
			name:       "email identifier",
			identifier: "ivan@mail.ru",
			wantEmail:  "ivan@mail.ru",
			wantPhone:  placeholderPhone,
			wantMethod: domain.RegistrationMethodEmail,
		},
		{
			name:       "phone identifier",
			identifier: "+7 999 888-77-66",
			wantEmail:  placeholderEmail,
			wantPhone:  "+7 999 888-77-66",
			wantMethod: domain.RegistrationMethodPhone,
		},
		{
			name:       "opaque identifier",
			identifier: "someuser",
			wantEmail:  placeholderEmail,
			wantPhone:  placeholderPhone,
			wantMethod: domain.RegistrationMethodEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, user, err := identity.Login(ctx, "s-"+tt.name, tt.identifier)
			if err != nil {
				t.Fatalf("Login failed: %v", err)
			}
			if user.Name != placeholderName {
				t.Errorf("name = %q, want placeholder", user.Name)
			}
			if user.Email != tt.wantEmail {
				t.Errorf("email = %q, want %q", user.Email, tt.wantEmail)
			}
			if user.Phone != tt.wantPhone {
				t.Errorf("phone = %q, want %q", user.Phone, tt.wantPhone)
			}
			if user.RegistrationMethod != tt.wantMethod {
				t.Errorf("method = %q, want %q", user.RegistrationMethod, tt.wantMethod)
			}
		})
	}
}

func TestSessionTokenRoundTrip(t *testing.T) {
	identity := newTestIdentityService(newMockStateRepository(), cart.NewStore())

	token, _, err := identity.Login(context.Background(), "s1", "ivan@mail.ru")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	sessionID, err := identity.ParseSessionToken(token)
	if err != nil {
		t.Fatalf("ParseSessionToken failed: %v", err)
	}
	if sessionID != "s1" {
		t.Errorf("session id = %q, want s1", sessionID)
	}
}

func TestParseSessionTokenRejectsGarbage(t *testing.T) {
	identity := newTestIdentityService(newMockStateRepository(), cart.NewStore())

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := identity.ParseSessionToken(token); !errors.Is(err, ErrInvalidSession) {
			t.Errorf("ParseSessionToken(%q) = %v, want ErrInvalidSession", token, err)
		}
	}
}

func TestParseSessionTokenRejectsWrongSecret(t *testing.T) {
	issuer := newTestIdentityService(newMockStateRepository(), cart.NewStore())
	verifier := NewIdentityService(newMockStateRepository(), cart.NewStore(), "other-secret", zap.NewNop())

	token, _, err := issuer.Login(context.Background(), "s1", "x@y.z")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if _, err := verifier.ParseSessionToken(token); !errors.Is(err, ErrInvalidSession) {
		t.Errorf("expected ErrInvalidSession for foreign token, got %v", err)
	}
}

func TestLoginKeepsGuestCart(t *testing.T) {
	states := newMockStateRepository()
	carts := cart.NewStore()
	identity := newTestIdentityService(states, carts)
	shop := NewShopService(catalog.Default(), carts, states, zap.NewNop())

	shop.AddToCart("s1", 1)
	shop.AddToCart("s1", 1)

	if _, _, err := identity.Login(context.Background(), "s1", "ivan@mail.ru"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if view := shop.GetCart("s1"); view.TotalItems != 2 {
		t.Errorf("guest cart lost on login: %+v", view)
	}
}

func TestLogoutClearsStateAndCart(t *testing.T) {
	states := newMockStateRepository()
	carts := cart.NewStore()
	identity := newTestIdentityService(states, carts)
	shop := NewShopService(catalog.Default(), carts, states, zap.NewNop())
	ctx := context.Background()

	if _, _, err := identity.Register(ctx, "s1", RegisterForm{Name: "x"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	shop.AddToCart("s1", 1)

	if err := identity.Logout(ctx, "s1"); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	if _, err := identity.Profile(ctx, "s1"); !errors.Is(err, ErrNotLoggedIn) {
		t.Errorf("expected ErrNotLoggedIn after logout, got %v", err)
	}
	if view := shop.GetCart("s1"); len(view.Items) != 0 {
		t.Errorf("cart not cleared on logout: %+v", view)
	}
	if len(states.deleted) != 1 || states.deleted[0] != "s1" {
		t.Errorf("state not deleted: %+v", states.deleted)
	}
}

func TestProfileWithoutLogin(t *testing.T) {
	identity := newTestIdentityService(newMockStateRepository(), cart.NewStore())

	if _, err := identity.Profile(context.Background(), "nobody"); !errors.Is(err, ErrNotLoggedIn) {
		t.Errorf("expected ErrNotLoggedIn, got %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	states := newMockStateRepository()
	identity := newTestIdentityService(states, cart.NewStore())
	ctx := context.Background()

	if _, _, err := identity.Register(ctx, "s1", RegisterForm{Name: "old", Email: "old@x.y"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	user, err := identity.UpdateProfile(ctx, "s1", ProfileUpdate{
		Name:  "new",
		Email: "new@x.y",
		Phone: "+7 000",
	})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if user.Name != "new" || user.Email != "new@x.y" || user.Phone != "+7 000" {
		t.Errorf("unexpected profile after update: %+v", user)
	}

	saved, _ := identity.Profile(ctx, "s1")
	if saved.Name != "new" {
		t.Errorf("update not persisted: %+v", saved)
	}

	if _, err := identity.UpdateProfile(ctx, "s2", ProfileUpdate{Name: "x"}); !errors.Is(err, ErrNotLoggedIn) {
		t.Errorf("expected ErrNotLoggedIn for fresh session, got %v", err)
	}
}

// Registration preserves order history already mirrored for the session.
func TestRegisterPreservesOrderHistory(t *testing.T) {
	states := newMockStateRepository()
	carts := cart.NewStore()
	identity := newTestIdentityService(states, carts)
	shop := NewShopService(catalog.Default(), carts, states, zap.NewNop())
	ctx := context.Background()

	shop.AddToCart("s1", 1)
	if _, err := shop.SubmitOrder(ctx, "s1", domain.OrderForm{Name: "guest"}); err != nil {
		t.Fatalf("SubmitOrder failed: %v", err)
	}

	if _, _, err := identity.Register(ctx, "s1", RegisterForm{Name: "x"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	orders, err := shop.OrderHistory(ctx, "s1")
	if err != nil {
		t.Fatalf("OrderHistory failed: %v", err)
	}
	if len(orders) != 1 {
		t.Errorf("order history lost on register: %+v", orders)
	}
}
