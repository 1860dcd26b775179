package editor_test

import (
	"context"
	"fmt"
	"image"
	"testing"

	"github.com/okian/gridiron/internal/adapters/export"
	"github.com/okian/gridiron/internal/adapters/storage"
	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/domain/ranking"
	"github.com/okian/gridiron/internal/editor"
	"github.com/okian/gridiron/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

type stubLogos struct{ ready bool }

func (s *stubLogos) Ready() bool { return s.ready }

func (s *stubLogos) Image(string) (image.Image, bool) { return nil, false }

func TestMain(m *testing.M) {
	_ = logger.Init()
	m.Run()
}

func players(n int) []model.Entity {
	out := make([]model.Entity, n)
	for i := range out {
		out[i] = model.Entity{
			ID:   fmt.Sprintf("p%d", i+1),
			Kind: model.KindPlayer,
			Name: fmt.Sprintf("Player %d", i+1),
		}
	}
	return out
}

func newEditor(logosReady bool) *editor.Editor {
	exp := export.New(export.WithLogoSource(&stubLogos{ready: logosReady}))
	return editor.New(editor.PlayersConfig(), storage.NewMemoryStore(), exp)
}

func loadedEditor(t *testing.T, n int) *editor.Editor {
	t.Helper()
	e := newEditor(true)
	if err := e.BeginLoad(); err != nil {
		t.Fatalf("begin load: %v", err)
	}
	if err := e.CompleteLoad(context.Background(), players(n)); err != nil {
		t.Fatalf("complete load: %v", err)
	}
	return e
}

func ids(list []model.RankedEntry) []string {
	out := make([]string, len(list))
	for i, e := range list {
		out[i] = e.Entity.ID
	}
	return out
}

func TestLoadGuard(t *testing.T) {
	ctx := context.Background()

	Convey("Given a fresh editor", t, func() {
		e := newEditor(true)

		Convey("Then operations before load are rejected", func() {
			_, err := e.List()
			So(err, ShouldEqual, editor.ErrNotLoaded)

			_, _, err = e.MoveByDrag(ctx, 0, 1)
			So(err, ShouldEqual, editor.ErrNotLoaded)
		})

		Convey("When the load lifecycle runs", func() {
			So(e.BeginLoad(), ShouldBeNil)
			So(e.State(), ShouldEqual, editor.Loading)

			Convey("Then a second concurrent load is rejected", func() {
				So(e.BeginLoad(), ShouldEqual, editor.ErrLoadInProgress)
			})

			Convey("And after completion the guard is permanent", func() {
				So(e.CompleteLoad(ctx, players(5)), ShouldBeNil)
				So(e.State(), ShouldEqual, editor.Loaded)

				// The one-shot guard: a late API response must not clobber edits.
				So(e.BeginLoad(), ShouldEqual, editor.ErrAlreadyLoaded)
				So(e.CompleteLoad(ctx, players(3)), ShouldEqual, editor.ErrAlreadyLoaded)

				list, err := e.List()
				So(err, ShouldBeNil)
				So(len(list), ShouldEqual, 5)
			})
		})

		Convey("When a load is aborted", func() {
			So(e.BeginLoad(), ShouldBeNil)
			e.AbortLoad()

			Convey("Then the editor can try again", func() {
				So(e.State(), ShouldEqual, editor.Unloaded)
				So(e.BeginLoad(), ShouldBeNil)
			})
		})
	})
}

func TestMutationsAndHistory(t *testing.T) {
	ctx := context.Background()

	Convey("Given a loaded editor with 5 players", t, func() {
		e := loadedEditor(t, 5)

		Convey("When dragging with actual movement", func() {
			list, changed, err := e.MoveByDrag(ctx, 4, 0)
			So(err, ShouldBeNil)
			So(changed, ShouldBeTrue)
			So(ids(list), ShouldResemble, []string{"p5", "p1", "p2", "p3", "p4"})

			Convey("Then undo restores and redo re-applies", func() {
				list, ok, err := e.Undo(ctx)
				So(err, ShouldBeNil)
				So(ok, ShouldBeTrue)
				So(ids(list), ShouldResemble, []string{"p1", "p2", "p3", "p4", "p5"})

				list, ok, err = e.Redo(ctx)
				So(err, ShouldBeNil)
				So(ok, ShouldBeTrue)
				So(ids(list), ShouldResemble, []string{"p5", "p1", "p2", "p3", "p4"})
			})
		})

		Convey("When the drag is a no-op", func() {
			_, changed, err := e.MoveByDrag(ctx, 2, 2)
			So(err, ShouldBeNil)
			So(changed, ShouldBeFalse)

			Convey("Then nothing was committed", func() {
				So(e.CanUndo(), ShouldBeFalse)
			})
		})

		Convey("When a rank edit is invalid", func() {
			_, changed, err := e.MoveByRankEntry(ctx, 1, 99)
			So(err, ShouldBeNil)
			So(changed, ShouldBeFalse)
			So(e.CanUndo(), ShouldBeFalse)
		})

		Convey("When adding a duplicate", func() {
			_, err := e.Add(ctx, model.Entity{ID: "p3", Name: "Impostor"})
			So(err, ShouldEqual, ranking.ErrDuplicateEntity)
			So(e.CanUndo(), ShouldBeFalse)
		})

		Convey("When resetting after edits", func() {
			_, _, err := e.MoveByDrag(ctx, 0, 4)
			So(err, ShouldBeNil)

			list, err := e.Reset(ctx)
			So(err, ShouldBeNil)
			So(ids(list), ShouldResemble, []string{"p1", "p2", "p3", "p4", "p5"})

			Convey("Then the reset itself is undoable", func() {
				list, ok, err := e.Undo(ctx)
				So(err, ShouldBeNil)
				So(ok, ShouldBeTrue)
				So(ids(list)[4], ShouldEqual, "p1")
			})
		})
	})
}

func TestSaves(t *testing.T) {
	ctx := context.Background()

	Convey("Given a loaded editor", t, func() {
		e := loadedEditor(t, 5)

		Convey("When saving with a whitespace-only name", func() {
			_, err := e.Save(ctx, "   ")

			Convey("Then the save is rejected and nothing is stored", func() {
				So(err, ShouldEqual, editor.ErrEmptyName)
				recs, lerr := e.Saves(ctx)
				So(lerr, ShouldBeNil)
				So(recs, ShouldBeEmpty)
			})
		})

		Convey("When saving with an over-long name", func() {
			long := make([]byte, 51)
			for i := range long {
				long[i] = 'x'
			}
			_, err := e.Save(ctx, string(long))
			So(err, ShouldEqual, editor.ErrNameTooLong)
		})

		Convey("When saving, editing, then loading the save", func() {
			_, err := e.Save(ctx, "my list")
			So(err, ShouldBeNil)

			_, _, err = e.MoveByDrag(ctx, 0, 4)
			So(err, ShouldBeNil)
			So(e.CanUndo(), ShouldBeTrue)

			list, err := e.LoadSave(ctx, 0)
			So(err, ShouldBeNil)

			Convey("Then the snapshot replaces the list and history is reseeded", func() {
				So(ids(list), ShouldResemble, []string{"p1", "p2", "p3", "p4", "p5"})
				So(e.CanUndo(), ShouldBeFalse)
				So(e.CanRedo(), ShouldBeFalse)
			})
		})

		Convey("When deleting a save", func() {
			_, err := e.Save(ctx, "one")
			So(err, ShouldBeNil)
			_, err = e.Save(ctx, "two")
			So(err, ShouldBeNil)

			So(e.DeleteSave(ctx, 0), ShouldBeNil)
			recs, err := e.Saves(ctx)
			So(err, ShouldBeNil)
			So(len(recs), ShouldEqual, 1)
			So(recs[0].Name, ShouldEqual, "two")
		})
	})
}

func TestExportThroughEditor(t *testing.T) {
	ctx := context.Background()

	Convey("Given a loaded editor with ready logos", t, func() {
		e := loadedEditor(t, 30)

		Convey("When exporting a configured size", func() {
			res, err := e.Export(ctx, 5)

			Convey("Then a PNG comes back", func() {
				So(err, ShouldBeNil)
				So(len(res.PNG), ShouldBeGreaterThan, 0)
				So(res.Columns, ShouldEqual, 1)
			})
		})

		Convey("When exporting an unsupported size", func() {
			_, err := e.Export(ctx, 7)
			So(err, ShouldEqual, editor.ErrBadExportSize)
		})
	})

	Convey("Given logos still preloading", t, func() {
		exp := export.New(export.WithLogoSource(&stubLogos{ready: false}))
		e := editor.New(editor.PlayersConfig(), storage.NewMemoryStore(), exp)
		So(e.BeginLoad(), ShouldBeNil)
		So(e.CompleteLoad(ctx, players(10)), ShouldBeNil)

		Convey("When exporting", func() {
			_, err := e.Export(ctx, 5)

			Convey("Then the readiness gate refuses", func() {
				So(err, ShouldEqual, export.ErrLogosNotReady)
			})
		})
	})
}
