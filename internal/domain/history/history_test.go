package history_test

import (
	"fmt"
	"testing"

	"github.com/okian/gridiron/internal/domain/history"
	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/domain/ranking"
	. "github.com/smartystreets/goconvey/convey"
)

func listOf(ids ...string) ranking.List {
	entities := make([]model.Entity, len(ids))
	for i, id := range ids {
		entities[i] = model.Entity{ID: id, Name: id}
	}
	return ranking.Reset(entities)
}

func firstID(l ranking.List) string {
	if len(l) == 0 {
		return ""
	}
	return l[0].Entity.ID
}

func TestLog(t *testing.T) {
	Convey("Given a log seeded with an initial list", t, func() {
		l := history.NewLog(listOf("a"))

		Convey("Then it starts with one snapshot and nothing to undo or redo", func() {
			So(l.Len(), ShouldEqual, 1)
			So(l.CanUndo(), ShouldBeFalse)
			So(l.CanRedo(), ShouldBeFalse)
			So(firstID(l.Current()), ShouldEqual, "a")
		})

		Convey("When snapshots are committed", func() {
			l.Commit(listOf("b"))
			l.Commit(listOf("c"))

			Convey("Then the cursor follows the newest snapshot", func() {
				So(l.Len(), ShouldEqual, 3)
				So(firstID(l.Current()), ShouldEqual, "c")
				So(l.CanUndo(), ShouldBeTrue)
				So(l.CanRedo(), ShouldBeFalse)
			})

			Convey("And undo walks back through them", func() {
				got, ok := l.Undo()
				So(ok, ShouldBeTrue)
				So(firstID(got), ShouldEqual, "b")

				got, ok = l.Undo()
				So(ok, ShouldBeTrue)
				So(firstID(got), ShouldEqual, "a")

				_, ok = l.Undo()
				So(ok, ShouldBeFalse)
			})

			Convey("And undo followed by redo restores the pre-undo state", func() {
				before := firstID(l.Current())
				_, _ = l.Undo()
				got, ok := l.Redo()
				So(ok, ShouldBeTrue)
				So(firstID(got), ShouldEqual, before)
			})

			Convey("And committing after an undo truncates the redo tail", func() {
				_, _ = l.Undo()
				l.Commit(listOf("d"))
				So(l.CanRedo(), ShouldBeFalse)
				So(firstID(l.Current()), ShouldEqual, "d")
				So(l.Len(), ShouldEqual, 3)
			})
		})

		Convey("When redo is attempted at the newest snapshot", func() {
			_, ok := l.Redo()

			Convey("Then it is a no-op", func() {
				So(ok, ShouldBeFalse)
				So(firstID(l.Current()), ShouldEqual, "a")
			})
		})
	})
}

func TestLogCapacity(t *testing.T) {
	Convey("Given a log with the default capacity of 50", t, func() {
		l := history.NewLog(listOf("s0"))

		Convey("When 60 mutations are committed", func() {
			for i := 1; i <= 60; i++ {
				l.Commit(listOf(fmt.Sprintf("s%d", i)))
			}

			Convey("Then exactly 50 snapshots remain with the oldest evicted", func() {
				So(l.Len(), ShouldEqual, 50)
				So(firstID(l.Current()), ShouldEqual, "s60")
				So(l.CanRedo(), ShouldBeFalse)
				So(l.Cursor(), ShouldEqual, 49)

				// Walking all the way back lands on the oldest surviving snapshot.
				for l.CanUndo() {
					_, _ = l.Undo()
				}
				So(firstID(l.Current()), ShouldEqual, "s11")
			})
		})
	})

	Convey("Given a log with a custom capacity", t, func() {
		l := history.NewLog(listOf("s0"), history.WithCapacity(3))

		Convey("When it overflows", func() {
			l.Commit(listOf("s1"))
			l.Commit(listOf("s2"))
			l.Commit(listOf("s3"))

			Convey("Then the window slides", func() {
				So(l.Len(), ShouldEqual, 3)
				So(firstID(l.Current()), ShouldEqual, "s3")
				for l.CanUndo() {
					_, _ = l.Undo()
				}
				So(firstID(l.Current()), ShouldEqual, "s1")
			})
		})
	})
}

func TestReseed(t *testing.T) {
	Convey("Given a log with accumulated history", t, func() {
		l := history.NewLog(listOf("a"))
		l.Commit(listOf("b"))
		l.Commit(listOf("c"))

		Convey("When it is reseeded from a loaded save", func() {
			l.Reseed(listOf("saved"))

			Convey("Then the old history is gone", func() {
				So(l.Len(), ShouldEqual, 1)
				So(l.Cursor(), ShouldEqual, 0)
				So(l.CanUndo(), ShouldBeFalse)
				So(l.CanRedo(), ShouldBeFalse)
				So(firstID(l.Current()), ShouldEqual, "saved")
			})
		})
	})
}
