package services

import (
	"context"
	"strings"
	"testing"

	"github.com/AnshRaj112/jurnal-backend/internal/i18n"
	"github.com/AnshRaj112/jurnal-backend/internal/store"
)

func newAuthFixture() (*AuthService, *MemorySessions) {
	sessions := NewMemorySessions()
	svc := NewAuthService(store.NewMemory(), sessions)
	// skip argon2 cost in unit tests
	svc.hash = func(p string) (string, error) { return "hashed:" + p, nil }
	svc.verify = func(p, h string) (bool, error) { return h == "hashed:"+p, nil }
	return svc, sessions
}

func TestSignupAndSignin(t *testing.T) {
	svc, sessions := newAuthFixture()
	ctx := context.Background()

	s, err := svc.Signup(ctx, SignupInput{Username: "Dewi_88", Password: "rahasia123"}, i18n.English)
	if err != nil {
		t.Fatalf("Signup() error = %v", err)
	}
	if s.User.Username != "dewi_88" || s.Profile.DisplayName != "Dewi_88" || s.Profile.Locale != "en" {
		t.Errorf("account = %+v / %+v", s.User, s.Profile)
	}
	if userID, ok, _ := sessions.Validate(ctx, s.Token); !ok || userID != s.User.ID {
		t.Errorf("signup token resolves to %q, %v", userID, ok)
	}

	in, err := svc.Signin(ctx, "DEWI_88", "rahasia123", i18n.English)
	if err != nil {
		t.Fatalf("Signin() error = %v", err)
	}
	if in.User.ID != s.User.ID || in.Token == s.Token {
		t.Errorf("signin = %+v", in)
	}
	if _, ok, _ := sessions.Validate(ctx, s.Token); ok {
		t.Error("signin should replace the earlier session")
	}

	if err := svc.Signout(ctx, in.Token, i18n.English); err != nil {
		t.Fatal(err)
	}
	if id, _ := svc.Authenticate(ctx, in.Token); id != "" {
		t.Error("token should be invalid after signout")
	}
}

func TestSignupValidation(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Signup(ctx, SignupInput{Username: "ok_name", Password: "short"}, i18n.English)
	if e := wantKind(t, err, KindInvalid); e.Message != "Password must be at least 8 characters." {
		t.Errorf("message = %q", e.Message)
	}

	_, err = svc.Signup(ctx, SignupInput{Username: "x", Password: "longenough"}, i18n.Indonesian)
	wantKind(t, err, KindInvalid)

	if _, err := svc.Signup(ctx, SignupInput{Username: "taken", Password: "longenough"}, i18n.English); err != nil {
		t.Fatal(err)
	}
	_, err = svc.Signup(ctx, SignupInput{Username: "TAKEN", Password: "longenough"}, i18n.English)
	if e := wantKind(t, err, KindConflict); e.Message != "Username is already taken." {
		t.Errorf("message = %q", e.Message)
	}
}

func TestSigninRejectsBadCredentials(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()
	if _, err := svc.Signup(ctx, SignupInput{Username: "dewi", Password: "rahasia123"}, i18n.Indonesian); err != nil {
		t.Fatal(err)
	}

	for _, tc := range []struct{ user, pass string }{{"dewi", "salah12345"}, {"nobody", "rahasia123"}, {"", ""}} {
		_, err := svc.Signin(ctx, tc.user, tc.pass, i18n.English)
		if e := wantKind(t, err, KindUnauthorized); e.Message != "Invalid username or password." {
			t.Errorf("Signin(%q) message = %q", tc.user, e.Message)
		}
	}
}

func TestMeAndUpdateProfile(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()
	s, err := svc.Signup(ctx, SignupInput{Username: "dewi", Password: "rahasia123", DisplayName: "Dewi"}, i18n.Indonesian)
	if err != nil {
		t.Fatal(err)
	}

	name, locale := "  Dewi S. ", "en-US"
	p, err := svc.UpdateProfile(ctx, s.User.ID, ProfileUpdate{DisplayName: &name, Locale: &locale}, i18n.Indonesian)
	if err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}
	if p.DisplayName != "Dewi S." || p.Locale != "en" {
		t.Errorf("profile = %+v", p)
	}

	me, err := svc.Me(ctx, s.User.ID, i18n.Indonesian)
	if err != nil {
		t.Fatal(err)
	}
	if me.Profile.DisplayName != "Dewi S." || me.User.PasswordHash == "" {
		t.Errorf("me = %+v / %+v", me.User, me.Profile)
	}

	long := strings.Repeat("n", MaxDisplayNameLength+1)
	_, err = svc.UpdateProfile(ctx, s.User.ID, ProfileUpdate{DisplayName: &long}, i18n.Indonesian)
	wantKind(t, err, KindInvalid)

	_, err = svc.Me(ctx, "", i18n.Indonesian)
	wantKind(t, err, KindUnauthorized)
}
