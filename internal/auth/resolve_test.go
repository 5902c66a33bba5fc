package auth

import (
	"testing"

	"github.com/markbates/goth"
	"github.com/snapseek/api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.SearchRecord{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestNewProfileFallbacks(t *testing.T) {
	tests := []struct {
		name      string
		gothUser  goth.User
		wantEmail string
		wantName  string
		wantErr   bool
	}{
		{
			name: "complete profile",
			gothUser: goth.User{
				Provider: "google", UserID: "g-1",
				Email: "Jane@Example.COM", Name: "Jane Doe", AvatarURL: "http://a/1.png",
			},
			wantEmail: "jane@example.com",
			wantName:  "Jane Doe",
		},
		{
			name: "missing email falls back to provider-local address",
			gothUser: goth.User{
				Provider: "github", UserID: "77", Name: "Octo",
			},
			wantEmail: "77@github.local",
			wantName:  "Octo",
		},
		{
			name: "missing name falls back to nickname",
			gothUser: goth.User{
				Provider: "github", UserID: "77", Email: "octo@example.com", NickName: "octocat",
			},
			wantEmail: "octo@example.com",
			wantName:  "octocat",
		},
		{
			name: "missing name and nickname falls back to email local part",
			gothUser: goth.User{
				Provider: "facebook", UserID: "f-9", Email: "someone@example.com",
			},
			wantEmail: "someone@example.com",
			wantName:  "someone",
		},
		{
			name:     "unsupported provider rejected",
			gothUser: goth.User{Provider: "twitter", UserID: "t-1"},
			wantErr:  true,
		},
		{
			name:     "missing provider user id rejected",
			gothUser: goth.User{Provider: "google"},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProfile(tt.gothUser)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewProfile: %v", err)
			}
			if p.Email != tt.wantEmail {
				t.Errorf("expected email %q, got %q", tt.wantEmail, p.Email)
			}
			if p.Name != tt.wantName {
				t.Errorf("expected name %q, got %q", tt.wantName, p.Name)
			}
		})
	}
}

func TestResolveUserCreatesNew(t *testing.T) {
	db := testDB(t)

	user, err := ResolveUser(db, Profile{
		Provider: "google", ProviderUserID: "g-1",
		Email: "jane@example.com", Name: "Jane", Avatar: "http://a/1.png",
	})
	if err != nil {
		t.Fatalf("ResolveUser: %v", err)
	}

	if user.ID == 0 {
		t.Fatal("expected persisted user")
	}
	if user.GoogleID == nil || *user.GoogleID != "g-1" {
		t.Error("google linkage not set")
	}
	if user.Provider != "google" {
		t.Errorf("expected primary provider google, got %s", user.Provider)
	}

	var count int64
	db.Model(&models.User{}).Count(&count)
	if count != 1 {
		t.Errorf("expected 1 user, got %d", count)
	}
}

func TestResolveUserMatchesLinkageFirst(t *testing.T) {
	db := testDB(t)

	first, err := ResolveUser(db, Profile{
		Provider: "google", ProviderUserID: "g-1",
		Email: "jane@example.com", Name: "Jane",
	})
	if err != nil {
		t.Fatalf("first login: %v", err)
	}

	// Same provider account returning with a changed email still resolves
	// to the linked user.
	again, err := ResolveUser(db, Profile{
		Provider: "google", ProviderUserID: "g-1",
		Email: "different@example.com", Name: "Jane", Avatar: "http://a/new.png",
	})
	if err != nil {
		t.Fatalf("second login: %v", err)
	}

	if again.ID != first.ID {
		t.Error("expected same user for same provider account")
	}

	var reloaded models.User
	db.First(&reloaded, first.ID)
	if reloaded.Avatar != "http://a/new.png" {
		t.Error("avatar not refreshed on login")
	}
}

func TestResolveUserLinksByEmail(t *testing.T) {
	db := testDB(t)

	first, err := ResolveUser(db, Profile{
		Provider: "google", ProviderUserID: "g-1",
		Email: "jane@example.com", Name: "Jane",
	})
	if err != nil {
		t.Fatalf("google login: %v", err)
	}

	linked, err := ResolveUser(db, Profile{
		Provider: "github", ProviderUserID: "gh-9",
		Email: "jane@example.com", Name: "Jane",
	})
	if err != nil {
		t.Fatalf("github login: %v", err)
	}

	if linked.ID != first.ID {
		t.Fatal("expected github identity linked onto existing user")
	}

	var reloaded models.User
	db.First(&reloaded, first.ID)
	if reloaded.GithubID == nil || *reloaded.GithubID != "gh-9" {
		t.Error("github linkage not stored")
	}
	if reloaded.GoogleID == nil || *reloaded.GoogleID != "g-1" {
		t.Error("google linkage lost")
	}
	if reloaded.Provider != "google" {
		t.Error("primary provider must stay the first provider")
	}

	var count int64
	db.Model(&models.User{}).Count(&count)
	if count != 1 {
		t.Errorf("expected 1 user, got %d", count)
	}
}

func TestResolveUserDistinctEmailsStayDistinct(t *testing.T) {
	db := testDB(t)

	a, _ := ResolveUser(db, Profile{
		Provider: "google", ProviderUserID: "g-1",
		Email: "a@example.com", Name: "A",
	})
	b, err := ResolveUser(db, Profile{
		Provider: "google", ProviderUserID: "g-2",
		Email: "b@example.com", Name: "B",
	})
	if err != nil {
		t.Fatalf("ResolveUser: %v", err)
	}

	if a.ID == b.ID {
		t.Error("distinct provider accounts with distinct emails must not merge")
	}
}
