package settings

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	r := NewRepository(NewMemoryStore())
	t.Cleanup(func() {
		_ = r.Close()
	})
	return r
}

func TestRepositoryExample(t *testing.T) {
	ctx := context.Background()
	r := newTestRepository(t)

	first, err := r.Create(ctx, validSetting())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if first.ID != 1 {
		t.Fatalf("expected id 1, got %d", first.ID)
	}

	dup := validSetting()
	dup.BaudRate = 115200
	_, err = r.Create(ctx, dup)
	var dupErr *DuplicatePortError
	if !errors.As(err, &dupErr) {
		t.Fatalf("expected DuplicatePortError, got %v", err)
	}
	if dupErr.Port != "COM3" || dupErr.ExistingID != 1 {
		t.Errorf("unexpected duplicate detail %+v", dupErr)
	}

	changed := validSetting()
	changed.BaudRate = 19200
	if _, err := r.Update(ctx, 1, changed); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	got, found, err := r.GetByID(ctx, 1)
	if err != nil || !found {
		t.Fatalf("GetByID(1) = %v, %v", found, err)
	}
	if got.BaudRate != 19200 {
		t.Errorf("expected baud 19200, got %d", got.BaudRate)
	}
}

func TestRepositoryCreateAssignsDistinctIDs(t *testing.T) {
	ctx := context.Background()
	r := newTestRepository(t)

	seen := make(map[int64]bool)
	for i := 0; i < 5; i++ {
		s := validSetting()
		s.Port = fmt.Sprintf("/dev/ttyUSB%d", i)
		created, err := r.Create(ctx, s)
		if err != nil {
			t.Fatalf("Create(%s) failed: %v", s.Port, err)
		}
		if seen[created.ID] {
			t.Fatalf("id %d handed out twice", created.ID)
		}
		seen[created.ID] = true
	}
}

func TestRepositoryCreateIgnoresCallerIDAndTrimsPort(t *testing.T) {
	ctx := context.Background()
	r := newTestRepository(t)

	s := validSetting()
	s.ID = 99
	s.Port = "  COM3 "
	created, err := r.Create(ctx, s)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID != 1 || created.Port != "COM3" {
		t.Fatalf("unexpected record %+v", created)
	}

	if _, found, _ := r.GetByPort(ctx, "COM3 "); !found {
		t.Error("GetByPort did not trim its argument")
	}
}

func TestRepositoryCreateValidationHasNoSideEffect(t *testing.T) {
	ctx := context.Background()
	r := newTestRepository(t)

	bad := validSetting()
	bad.DataBits = 12
	if _, err := r.Create(ctx, bad); !errors.Is(err, ErrInvalidSetting) {
		t.Fatalf("expected validation error, got %v", err)
	}

	list, err := r.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected no records after failed create, got %d", len(list))
	}
}

func TestRepositoryUpdateChangesOnlyMutatedFields(t *testing.T) {
	ctx := context.Background()
	r := newTestRepository(t)

	orig := validSetting()
	orig.Parity = ParityEven
	created, err := r.Create(ctx, orig)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	changed := created
	changed.BaudRate = 57600
	updated, err := r.Update(ctx, created.ID, changed)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	want := created
	want.BaudRate = 57600
	if !reflect.DeepEqual(updated, want) {
		t.Errorf("Update returned %+v, want %+v", updated, want)
	}
	got, _, err := r.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("stored %+v, want %+v", got, want)
	}
}

func TestRepositoryUpdateErrors(t *testing.T) {
	ctx := context.Background()
	r := newTestRepository(t)

	a, err := r.Create(ctx, validSetting())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	other := validSetting()
	other.Port = "COM4"
	b, err := r.Create(ctx, other)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	t.Run("unknown id", func(t *testing.T) {
		_, err := r.Update(ctx, 404, validSetting())
		var nf *NotFoundError
		if !errors.As(err, &nf) || nf.ID != 404 {
			t.Fatalf("expected NotFoundError for 404, got %v", err)
		}
	})

	t.Run("invalid candidate", func(t *testing.T) {
		bad := a
		bad.Parity = 0
		if _, err := r.Update(ctx, a.ID, bad); !errors.Is(err, ErrInvalidSetting) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("rename onto other port", func(t *testing.T) {
		rename := a
		rename.Port = b.Port
		rename.BaudRate = 300
		_, err := r.Update(ctx, a.ID, rename)
		var dup *DuplicatePortError
		if !errors.As(err, &dup) || dup.ExistingID != b.ID {
			t.Fatalf("expected DuplicatePortError against %d, got %v", b.ID, err)
		}
		got, _, _ := r.GetByID(ctx, a.ID)
		if got != a {
			t.Errorf("failed update modified record: %+v", got)
		}
	})

	t.Run("rename to free port", func(t *testing.T) {
		rename := a
		rename.Port = "COM9"
		if _, err := r.Update(ctx, a.ID, rename); err != nil {
			t.Fatalf("rename failed: %v", err)
		}
		if _, found, _ := r.GetByPort(ctx, "COM3"); found {
			t.Error("old port still resolves after rename")
		}
		if got, found, _ := r.GetByPort(ctx, "COM9"); !found || got.ID != a.ID {
			t.Errorf("GetByPort(COM9) = %+v, %v", got, found)
		}
	})
}

func TestRepositoryDeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	r := newTestRepository(t)

	created, err := r.Create(ctx, validSetting())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	deleted, err := r.Delete(ctx, created.ID)
	if err != nil || !deleted {
		t.Fatalf("first Delete = %v, %v", deleted, err)
	}
	if _, found, err := r.GetByID(ctx, created.ID); err != nil || found {
		t.Fatalf("GetByID after delete = %v, %v", found, err)
	}
	deleted, err = r.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}
	if deleted {
		t.Error("second Delete reported a removal")
	}
}

func TestRepositoryIDsNotReusedAfterDelete(t *testing.T) {
	ctx := context.Background()
	r := newTestRepository(t)

	first, _ := r.Create(ctx, validSetting())
	if _, err := r.Delete(ctx, first.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	second, err := r.Create(ctx, validSetting())
	if err != nil {
		t.Fatalf("Create after delete failed: %v", err)
	}
	if second.ID == first.ID {
		t.Fatalf("id %d reused after delete", first.ID)
	}
}

func TestRepositoryGetMissingIsNotAnError(t *testing.T) {
	ctx := context.Background()
	r := newTestRepository(t)

	if _, found, err := r.GetByPort(ctx, "/dev/ttyS0"); err != nil || found {
		t.Errorf("GetByPort on empty repository = %v, %v", found, err)
	}
	if _, found, err := r.GetByID(ctx, 1); err != nil || found {
		t.Errorf("GetByID on empty repository = %v, %v", found, err)
	}
}

func TestRepositoryListAllIsStable(t *testing.T) {
	ctx := context.Background()
	r := newTestRepository(t)

	for _, port := range []string{"COM7", "COM1", "COM4"} {
		s := validSetting()
		s.Port = port
		if _, err := r.Create(ctx, s); err != nil {
			t.Fatalf("Create(%s) failed: %v", port, err)
		}
	}

	first, err := r.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	second, err := r.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("listings differ:\n%v\n%v", first, second)
	}
	for i := 1; i < len(first); i++ {
		if first[i-1].ID >= first[i].ID {
			t.Fatalf("listing not in id order: %v", first)
		}
	}
}

func TestRepositoryConcurrentCreateSamePort(t *testing.T) {
	ctx := context.Background()
	r := newTestRepository(t)

	const workers = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		dups      int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.Create(ctx, validSetting())
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, ErrDuplicatePort):
				dups++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if successes != 1 || dups != workers-1 {
		t.Fatalf("got %d successes and %d duplicates", successes, dups)
	}
}

func TestRepositoryPrune(t *testing.T) {
	ctx := context.Background()
	r := newTestRepository(t)

	for _, port := range []string{"/dev/ttyUSB0", "/dev/ttyUSB1", "/dev/ttyACM0"} {
		s := validSetting()
		s.Port = port
		if _, err := r.Create(ctx, s); err != nil {
			t.Fatalf("Create(%s) failed: %v", port, err)
		}
	}

	removed, err := r.Prune(ctx, []string{"/dev/ttyUSB1"})
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if len(removed) != 2 {
		t.Fatalf("expected 2 pruned records, got %v", removed)
	}
	list, _ := r.ListAll(ctx)
	if len(list) != 1 || list[0].Port != "/dev/ttyUSB1" {
		t.Fatalf("unexpected remaining records %v", list)
	}
}

// failingStore fails every operation with err.
type failingStore struct{ err error }

func (f failingStore) Insert(context.Context, Setting) (Setting, error) { return Setting{}, f.err }
func (f failingStore) Replace(context.Context, Setting) error           { return f.err }
func (f failingStore) Delete(context.Context, int64) (bool, error)      { return false, f.err }
func (f failingStore) ByID(context.Context, int64) (Setting, bool, error) {
	return Setting{}, false, f.err
}
func (f failingStore) ByPort(context.Context, string) (Setting, bool, error) {
	return Setting{}, false, f.err
}
func (f failingStore) List(context.Context) ([]Setting, error) { return nil, f.err }
func (f failingStore) Close() error                            { return nil }

func TestRepositorySurfacesStorageErrors(t *testing.T) {
	ctx := context.Background()
	diskErr := errors.New("disk on fire")
	r := NewRepository(failingStore{err: diskErr})

	checks := map[string]error{}
	_, checks["create"] = r.Create(ctx, validSetting())
	_, checks["update"] = r.Update(ctx, 1, validSetting())
	_, checks["delete"] = r.Delete(ctx, 1)
	_, _, checks["get by id"] = r.GetByID(ctx, 1)
	_, _, checks["get by port"] = r.GetByPort(ctx, "COM3")
	_, checks["list"] = r.ListAll(ctx)
	_, checks["prune"] = r.Prune(ctx, nil)

	for op, err := range checks {
		var se *StorageError
		if !errors.As(err, &se) {
			t.Errorf("%s: expected StorageError, got %v", op, err)
			continue
		}
		if !errors.Is(err, ErrStorage) || !errors.Is(err, diskErr) {
			t.Errorf("%s: error chain lost kind or cause: %v", op, err)
		}
	}
}

func TestRepositoryClosedMemoryStore(t *testing.T) {
	ctx := context.Background()
	r := NewRepository(NewMemoryStore())
	if err := r.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if _, err := r.ListAll(ctx); !errors.Is(err, ErrStorage) {
		t.Fatalf("expected StorageError from closed store, got %v", err)
	}
}
