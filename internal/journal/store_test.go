package journal

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/radiantjournal/radiant/internal/store"
)

func newTestStore(t *testing.T) (*Store, *store.KV) {
	t.Helper()
	db, err := store.OpenPath(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("OpenPath: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	kv := db.KV()
	return NewStore(kv, nil), kv
}

func TestStore_LoadMissing(t *testing.T) {
	s, _ := newTestStore(t)
	d := s.Load(context.Background())
	if len(d.Affirmations) != 0 || d.Affirmations == nil {
		t.Fatalf("expected initial journal, got %+v", d)
	}
}

func TestStore_UpdateRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	_, err := s.Update(ctx, func(d *Data) error {
		if err := d.AddAffirmation("I show up every day."); err != nil {
			return err
		}
		return d.SetGoal("wealth", "Max out retirement savings")
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	d := s.Load(ctx)
	if len(d.Affirmations) != 1 || d.Goals.Wealth != "Max out retirement savings" {
		t.Fatalf("reloaded %+v", d)
	}
}

func TestStore_UpdateErrorSkipsSave(t *testing.T) {
	ctx := context.Background()
	s, kv := newTestStore(t)

	_, err := s.Update(ctx, func(d *Data) error {
		_ = d.AddTrait("patient")
		return ErrUnknownGoal
	})
	if !errors.Is(err, ErrUnknownGoal) {
		t.Fatalf("err = %v", err)
	}
	if _, found, _ := kv.Load(ctx, Namespace); found {
		t.Fatal("journal saved despite mutation error")
	}
}

func TestStore_LoadMergesPartialDocument(t *testing.T) {
	ctx := context.Background()
	s, kv := newTestStore(t)

	doc := `{"affirmations":["I am calm."],"traits":null,"visionBoards":{"lifestyle":[{"id":"x","uri":"u","addedAt":1}]}}`
	if err := kv.Save(ctx, Namespace, []byte(doc)); err != nil {
		t.Fatal(err)
	}

	d := s.Load(ctx)
	if len(d.Affirmations) != 1 || len(d.VisionBoards.Lifestyle) != 1 {
		t.Fatalf("document values lost: %+v", d)
	}
	if d.Traits == nil || d.Standards == nil || d.VisionBoards.RoleModels == nil {
		t.Fatal("missing lists should default to empty")
	}
}

func TestStore_LoadCorrupt(t *testing.T) {
	ctx := context.Background()
	s, kv := newTestStore(t)
	if err := kv.Save(ctx, Namespace, []byte(`not json`)); err != nil {
		t.Fatal(err)
	}
	if d := s.Load(ctx); len(d.Affirmations) != 0 {
		t.Fatalf("expected initial journal, got %+v", d)
	}
}

func TestStore_Clear(t *testing.T) {
	ctx := context.Background()
	s, kv := newTestStore(t)
	if err := s.Save(ctx, Initial()); err != nil {
		t.Fatal(err)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatal(err)
	}
	if _, found, _ := kv.Load(ctx, Namespace); found {
		t.Fatal("journal still stored after Clear")
	}
}
