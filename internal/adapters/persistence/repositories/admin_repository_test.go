package repositories_test

import (
	"errors"
	"sync"
	"testing"

	"kada-admin/internal/adapters/persistence/models"
	"kada-admin/internal/adapters/persistence/repositories"
	"kada-admin/internal/core/domain"
	"kada-admin/internal/testutil"

	"gorm.io/gorm"
)

func TestAdminRepository_ExistsExcludesSelf(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)
	repo := repositories.NewAdminRepository(db)

	a := fx.CreateAdmin(ctx, "admin")
	b := fx.CreateAdmin(ctx, "kerani")

	taken, err := repo.ExistsByUsername(ctx, "admin", a.ID)
	if err != nil || taken {
		t.Errorf("own username: got (%v, %v), want (false, nil)", taken, err)
	}
	taken, err = repo.ExistsByUsername(ctx, "admin", b.ID)
	if err != nil || !taken {
		t.Errorf("other's username: got (%v, %v), want (true, nil)", taken, err)
	}
	taken, err = repo.ExistsByEmail(ctx, "kerani@kada.gov.my", 0)
	if err != nil || !taken {
		t.Errorf("email: got (%v, %v), want (true, nil)", taken, err)
	}
}

func TestAdminRepository_DeleteMissing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)
	repo := repositories.NewAdminRepository(db)
	fx.CreateAdmin(ctx, "admin")
	fx.CreateAdmin(ctx, "kerani")

	if err := repo.DeleteUnlessLast(ctx, 99); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("got %v, want ErrRecordNotFound", err)
	}
	if n := fx.Count(ctx, &models.Admin{}); n != 2 {
		t.Errorf("got %d admins, want 2", n)
	}
}

func TestAdminRepository_DeleteUnlessLast(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)
	repo := repositories.NewAdminRepository(db)

	a := fx.CreateAdmin(ctx, "admin")
	b := fx.CreateAdmin(ctx, "kerani")

	if err := repo.DeleteUnlessLast(ctx, b.ID); err != nil {
		t.Fatalf("DeleteUnlessLast: %v", err)
	}
	if err := repo.DeleteUnlessLast(ctx, a.ID); !errors.Is(err, domain.ErrLastAdmin) {
		t.Errorf("last admin err = %v, want ErrLastAdmin", err)
	}
	if n := fx.Count(ctx, &models.Admin{}); n != 1 {
		t.Errorf("got %d admins, want 1", n)
	}
}

// Two admins deleting each other at once must leave one of them behind.
func TestAdminRepository_DeleteUnlessLastConcurrent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)
	repo := repositories.NewAdminRepository(db)

	a := fx.CreateAdmin(ctx, "admin")
	b := fx.CreateAdmin(ctx, "kerani")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, id := range []uint{a.ID, b.ID} {
		wg.Add(1)
		go func(i int, id uint) {
			defer wg.Done()
			errs[i] = repo.DeleteUnlessLast(ctx, id)
		}(i, id)
	}
	wg.Wait()

	deleted, refused := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			deleted++
		case errors.Is(err, domain.ErrLastAdmin):
			refused++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if deleted != 1 || refused != 1 {
		t.Errorf("deleted=%d refused=%d, want 1 and 1", deleted, refused)
	}
	if n := fx.Count(ctx, &models.Admin{}); n != 1 {
		t.Errorf("got %d admins, want 1", n)
	}
}
