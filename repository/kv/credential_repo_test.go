package kv

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/eduverse/backend/domain"
	"github.com/eduverse/backend/internal/infrastructure/kvstore"
)

func intPtr(v int) *int { return &v }

func testUsers() []*domain.User {
	created := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	return []*domain.User{
		{
			ID: "u-student", Email: "s@example.com", FullName: "Sam Student",
			Role: domain.RoleStudent, Verified: true, CreatedAt: created,
			Profile: &domain.StudentProfile{
				NationalID: "123456789012", InstitutionName: "Central University",
				CourseName: "Physics", EnrollmentReason: "degree",
			},
		},
		{
			ID: "u-expert", Email: "e@example.com", FullName: "Eve Expert",
			Role: domain.RoleIndependentExpert, CreatedAt: created,
			Profile: &domain.ExpertProfile{
				NationalID: "223456789012", OrganizationName: "Freelance",
				YearsExperience: intPtr(7), Specialization: "networks",
			},
		},
		{
			ID: "u-certifier", Email: "c@example.com", FullName: "Cal Certifier",
			Role: domain.RoleCertifier, CreatedAt: created,
			Profile: &domain.CertifierProfile{
				NationalID: "323456789012", OrganizationName: "CertBoard",
				AccreditationDetails: "national accreditation", Website: "https://certboard.example",
			},
		},
		{
			ID: "u-provider", Email: "p@example.com", FullName: "Pat Provider",
			Role: domain.RoleJobProvider, CreatedAt: created,
			Profile: &domain.JobProviderProfile{
				NationalID: "423456789012", CompanyName: "Acme",
				RegistrationNumber: "REG-1", Industry: "logistics",
				YearFounded: 2005, Headquarters: "Accra",
				ContactNumber: "+23320000000", CompanySize: "11-50",
				RevenueRange: "<1M", TypicalOpenings: "drivers",
				Description: "last-mile delivery",
			},
		},
	}
}

func TestCredentialRoundTrip(t *testing.T) {
	ctx := context.Background()

	for _, user := range testUsers() {
		t.Run(string(user.Role), func(t *testing.T) {
			store := kvstore.NewMemory()
			repo := NewCredentialStore(store, nil)

			if err := repo.Save(ctx, user); err != nil {
				t.Fatalf("Save: %v", err)
			}
			loaded, err := repo.Load(ctx)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if !reflect.DeepEqual(loaded, user) {
				t.Errorf("Load = %+v, want %+v", loaded, user)
			}
		})
	}
}

func TestSaveOverwritesPrevious(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	repo := NewCredentialStore(store, nil)

	users := testUsers()
	if err := repo.Save(ctx, users[0]); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := repo.Save(ctx, users[1]); err != nil {
		t.Fatalf("Save second: %v", err)
	}

	loaded, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.ID != users[1].ID {
		t.Errorf("Load ID = %s, want %s", loaded.ID, users[1].ID)
	}
}

func TestLoadAbsent(t *testing.T) {
	repo := NewCredentialStore(kvstore.NewMemory(), nil)
	user, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if user != nil {
		t.Errorf("Load = %+v, want nil", user)
	}
}

func TestLoadSelfHealsCorruptRecord(t *testing.T) {
	ctx := context.Background()

	corrupt := [][]byte{
		[]byte("not json at all"),
		[]byte(`{"id":"u1","role":"educator"}`),
		[]byte(`{"role":"student"}`),
		[]byte(`{"id":"u1","role":"student","profile":{"nationalId":[1]}}`),
	}

	for _, raw := range corrupt {
		store := kvstore.NewMemory()
		repo := NewCredentialStore(store, nil)
		if err := store.Put(SessionKey, raw); err != nil {
			t.Fatalf("Put: %v", err)
		}

		user, err := repo.Load(ctx)
		if err != nil {
			t.Fatalf("Load(%q): %v", raw, err)
		}
		if user != nil {
			t.Errorf("Load(%q) = %+v, want nil", raw, user)
		}
		if v, _ := store.Get(SessionKey); v != nil {
			t.Errorf("corrupt entry %q not cleared", raw)
		}
	}
}

func TestClearIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	repo := NewCredentialStore(store, nil)

	if err := repo.Save(ctx, testUsers()[0]); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("Clear twice: %v", err)
	}
	user, err := repo.Load(ctx)
	if err != nil || user != nil {
		t.Errorf("Load after Clear = %+v, %v, want nil, nil", user, err)
	}
}

func TestSaveRejectsEmptyUser(t *testing.T) {
	repo := NewCredentialStore(kvstore.NewMemory(), nil)
	if err := repo.Save(context.Background(), nil); err == nil {
		t.Error("expected error for nil user")
	}
	if err := repo.Save(context.Background(), &domain.User{}); err == nil {
		t.Error("expected error for user without id")
	}
}
