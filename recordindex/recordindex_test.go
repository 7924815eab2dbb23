package recordindex

import (
	"testing"

	"github.com/fulldump/biff"

	"github.com/fulldump/dataform/record"
)

func collect(traverse func(f func(e *Entry) bool)) []int {
	positions := []int{}
	traverse(func(e *Entry) bool {
		positions = append(positions, e.Position)
		return true
	})
	return positions
}

func TestIndex(t *testing.T) {

	biff.Alternative("Index", func(a *biff.A) {

		records := []record.Record{
			record.New("Carol", "C3", "Female", "Yukon", "1970-01-01"),
			record.New("Alice", "A1", "Female", "Ontario", "1990-05-01"),
			record.Parse("broken"),
			record.New("Bob", "B2", "Male", "Quebec", "1985-11-23"),
			record.New("Alice bis", "A1", "Female", "Manitoba", "1991-05-01"),
			record.New("Andy", "A10", "Male", "Nunavut", "1999-09-09"),
		}
		index := New(records)

		biff.AssertEqual(index.Len(), 5)

		a.Alternative("Ascend", func(a *biff.A) {
			biff.AssertEqual(collect(index.Ascend), []int{1, 4, 5, 3, 0})
		})

		a.Alternative("Descend", func(a *biff.A) {
			biff.AssertEqual(collect(index.Descend), []int{0, 3, 5, 4, 1})
		})

		a.Alternative("Prefix", func(a *biff.A) {
			positions := collect(func(f func(e *Entry) bool) {
				index.Prefix("A1", f)
			})
			biff.AssertEqual(positions, []int{1, 4, 5})
		})

		a.Alternative("Prefix without matches", func(a *biff.A) {
			positions := collect(func(f func(e *Entry) bool) {
				index.Prefix("Z", f)
			})
			biff.AssertEqual(positions, []int{})
		})

		a.Alternative("Stop early", func(a *biff.A) {
			n := 0
			index.Ascend(func(e *Entry) bool {
				n++
				return n < 2
			})
			biff.AssertEqual(n, 2)
		})
	})
}
