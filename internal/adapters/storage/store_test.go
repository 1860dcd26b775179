package storage_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/gridiron/internal/adapters/storage"
	"github.com/okian/gridiron/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func rec(name string) model.SavedRanking {
	return model.SavedRanking{
		ID:   name + "-id",
		Name: name,
		Date: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Rankings: []model.RankedEntry{
			{Rank: 1, Entity: model.Entity{ID: "p1", Kind: model.KindPlayer, Name: "Player 1"}},
			{Rank: 2, Entity: model.Entity{ID: "p2", Kind: model.KindPlayer, Name: "Player 2"}},
		},
	}
}

func testStoreContract(t *testing.T, name string, open func() storage.Store) {
	t.Helper()
	ctx := context.Background()

	Convey("Given an empty "+name+" store", t, func() {
		s := open()
		defer func() { _ = s.Close() }()

		Convey("When nothing has been saved", func() {
			recs, err := s.List(ctx, "players")

			Convey("Then List returns an empty slice", func() {
				So(err, ShouldBeNil)
				So(recs, ShouldBeEmpty)
			})
		})

		Convey("When records are appended under different keys", func() {
			So(s.Append(ctx, "players", rec("mine")), ShouldBeNil)
			So(s.Append(ctx, "teams", rec("theirs")), ShouldBeNil)

			Convey("Then keys are isolated", func() {
				players, err := s.List(ctx, "players")
				So(err, ShouldBeNil)
				So(len(players), ShouldEqual, 1)
				So(players[0].Name, ShouldEqual, "mine")
				So(len(players[0].Rankings), ShouldEqual, 2)

				teams, err := s.List(ctx, "teams")
				So(err, ShouldBeNil)
				So(len(teams), ShouldEqual, 1)
				So(teams[0].Name, ShouldEqual, "theirs")
			})
		})

		Convey("When an 11th record is appended", func() {
			for i := 1; i <= 11; i++ {
				So(s.Append(ctx, "players", rec(fmt.Sprintf("save-%d", i))), ShouldBeNil)
			}

			Convey("Then the oldest record is evicted, FIFO", func() {
				recs, err := s.List(ctx, "players")
				So(err, ShouldBeNil)
				So(len(recs), ShouldEqual, 10)
				So(recs[0].Name, ShouldEqual, "save-2")
				So(recs[9].Name, ShouldEqual, "save-11")
			})
		})

		Convey("When a record is deleted by index", func() {
			So(s.Append(ctx, "players", rec("first")), ShouldBeNil)
			So(s.Append(ctx, "players", rec("second")), ShouldBeNil)
			So(s.Delete(ctx, "players", 0), ShouldBeNil)

			Convey("Then only the other record remains", func() {
				recs, err := s.List(ctx, "players")
				So(err, ShouldBeNil)
				So(len(recs), ShouldEqual, 1)
				So(recs[0].Name, ShouldEqual, "second")
			})
		})

		Convey("When deleting a missing index", func() {
			err := s.Delete(ctx, "players", 5)

			Convey("Then it fails with ErrNoSuchSave", func() {
				So(err, ShouldEqual, storage.ErrNoSuchSave)
			})
		})
	})
}

func TestMemoryStore(t *testing.T) {
	testStoreContract(t, "memory", func() storage.Store {
		return storage.NewMemoryStore()
	})
}

func TestFileStore(t *testing.T) {
	testStoreContract(t, "file", func() storage.Store {
		s, err := storage.NewFileStore(filepath.Join(t.TempDir(), "saves.json"))
		if err != nil {
			t.Fatalf("failed to open file store: %v", err)
		}
		return s
	})
}

func TestSQLiteStore(t *testing.T) {
	testStoreContract(t, "sqlite", func() storage.Store {
		s, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "saves.db"))
		if err != nil {
			t.Fatalf("failed to open sqlite store: %v", err)
		}
		return s
	})
}

func TestFileStoreReload(t *testing.T) {
	ctx := context.Background()

	Convey("Given a file store with saved data", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "saves.json")

		s, err := storage.NewFileStore(path)
		So(err, ShouldBeNil)
		So(s.Append(ctx, "players", rec("persisted")), ShouldBeNil)
		So(s.Close(), ShouldBeNil)

		Convey("When reopened", func() {
			s2, err := storage.NewFileStore(path)
			So(err, ShouldBeNil)
			defer func() { _ = s2.Close() }()

			Convey("Then the data survives", func() {
				recs, err := s2.List(ctx, "players")
				So(err, ShouldBeNil)
				So(len(recs), ShouldEqual, 1)
				So(recs[0].Name, ShouldEqual, "persisted")
			})
		})
	})

	Convey("Given a corrupt saves file", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "saves.json")
		So(os.WriteFile(path, []byte("{not json"), 0o644), ShouldBeNil)

		Convey("When the store opens it", func() {
			s, err := storage.NewFileStore(path)
			So(err, ShouldBeNil)
			defer func() { _ = s.Close() }()

			Convey("Then it reads as no saves, not a crash", func() {
				recs, err := s.List(ctx, "players")
				So(err, ShouldBeNil)
				So(recs, ShouldBeEmpty)
			})
		})
	})
}
