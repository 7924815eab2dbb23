package service

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/fulldump/biff"
	"go.uber.org/goleak"

	"github.com/fulldump/dataform/journal"
	"github.com/fulldump/dataform/record"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var (
	alice = record.New("Alice Smith", "A1", "Female", "Ontario", "1990-05-01")
	bob   = record.New("Bob Lee", "B2", "Male", "Quebec", "1985-11-23")
	carol = record.New("Carol Diaz", "A2", "Female", "Ontario", "1979-03-14")
)

func indexes(items []*Item) []int {
	result := []int{}
	for _, item := range items {
		result = append(result, item.Index)
	}
	return result
}

func TestService(t *testing.T) {

	biff.Alternative("Service", func(a *biff.A) {

		dir := t.TempDir()
		s := NewService(&Config{
			Filename: filepath.Join(dir, "records.txt"),
			Journal:  filepath.Join(dir, "records.journal"),
		}, nil)

		biff.AssertEqual(s.GetStatus(), StatusOpening)
		biff.AssertNil(s.Load())
		biff.AssertEqual(s.GetStatus(), StatusOperating)

		a.Alternative("Find on empty store", func(a *biff.A) {
			_, err := s.Find("A1")
			biff.AssertTrue(errors.Is(err, ErrRecordNotFound))
		})

		a.Alternative("Remove on empty store", func(a *biff.A) {
			_, err := s.Remove(0)
			biff.AssertTrue(errors.Is(err, ErrIndexOutOfRange))
		})

		a.Alternative("Insert three", func(a *biff.A) {
			for i, r := range []record.Record{alice, bob, carol} {
				item, err := s.Insert(r)
				biff.AssertNil(err)
				biff.AssertEqual(item.Index, i)
			}

			a.Alternative("Find", func(a *biff.A) {
				item, err := s.Find("B2")
				biff.AssertNil(err)
				biff.AssertEqual(item, &Item{Index: 1, Record: bob})

				_, err = s.Find("Z9")
				biff.AssertTrue(errors.Is(err, ErrRecordNotFound))
			})

			a.Alternative("Remove", func(a *biff.A) {
				item, err := s.Remove(1)
				biff.AssertNil(err)
				biff.AssertEqual(item.Record, bob)

				items, err := s.List(ListOptions{})
				biff.AssertNil(err)
				biff.AssertEqual(len(items), 2)
				biff.AssertEqual(items[1].Record, carol)

				commands, err := s.History()
				biff.AssertNil(err)
				biff.AssertEqual(len(commands), 4)
				biff.AssertEqual(commands[3].Name, journal.CommandDelete)
			})

			a.Alternative("Remove out of range", func(a *biff.A) {
				_, err := s.Remove(3)
				biff.AssertTrue(errors.Is(err, ErrIndexOutOfRange))

				n, err := s.Reload()
				biff.AssertNil(err)
				biff.AssertEqual(n, 3)
			})

			a.Alternative("List sorted by id", func(a *biff.A) {
				items, err := s.List(ListOptions{Sort: "id"})
				biff.AssertNil(err)
				biff.AssertEqual(indexes(items), []int{0, 2, 1})

				items, err = s.List(ListOptions{Sort: "-id"})
				biff.AssertNil(err)
				biff.AssertEqual(indexes(items), []int{1, 2, 0})
			})

			a.Alternative("List by prefix", func(a *biff.A) {
				items, err := s.List(ListOptions{Prefix: "A"})
				biff.AssertNil(err)
				biff.AssertEqual(indexes(items), []int{0, 2})

				items, err = s.List(ListOptions{Prefix: "A", Sort: "-id"})
				biff.AssertNil(err)
				biff.AssertEqual(indexes(items), []int{2, 0})
			})

			a.Alternative("List with bad sort", func(a *biff.A) {
				_, err := s.List(ListOptions{Sort: "name"})
				biff.AssertTrue(errors.Is(err, ErrInvalidArgument))
			})

			a.Alternative("Search by province", func(a *biff.A) {
				items, err := s.Search(SearchOptions{
					Filter: map[string]interface{}{"province": "Ontario"},
				})
				biff.AssertNil(err)
				biff.AssertEqual(indexes(items), []int{0, 2})
			})

			a.Alternative("Search with skip and limit", func(a *biff.A) {
				items, err := s.Search(SearchOptions{Skip: 1, Limit: 1})
				biff.AssertNil(err)
				biff.AssertEqual(indexes(items), []int{1})
			})

			a.Alternative("Search with operator", func(a *biff.A) {
				items, err := s.Search(SearchOptions{
					Filter: map[string]interface{}{
						"id": map[string]interface{}{"$in": []interface{}{"B2", "A2"}},
					},
				})
				biff.AssertNil(err)
				biff.AssertEqual(indexes(items), []int{1, 2})
			})

			a.Alternative("Search unknown field", func(a *biff.A) {
				_, err := s.Search(SearchOptions{
					Filter: map[string]interface{}{"email": "x"},
				})
				biff.AssertTrue(errors.Is(err, ErrInvalidArgument))
			})

			a.Alternative("History", func(a *biff.A) {
				commands, err := s.History()
				biff.AssertNil(err)
				biff.AssertEqual(len(commands), 3)
				payload, err := commands[2].Decode()
				biff.AssertNil(err)
				biff.AssertEqual(payload, &journal.AppendPayload{Record: carol})
			})
		})

		a.Alternative("Concurrent inserts", func(a *biff.A) {
			n := 50
			wg := &sync.WaitGroup{}
			for i := 0; i < n; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					s.Insert(alice)
				}()
			}
			wg.Wait()

			count, err := s.Reload()
			biff.AssertNil(err)
			biff.AssertEqual(count, n)
		})

		a.Alternative("Stop", func(a *biff.A) {
			s.Stop()
			biff.AssertEqual(s.GetStatus(), StatusClosing)
		})
	})
}

func TestService_WithoutJournal(t *testing.T) {

	s := NewService(&Config{
		Filename: filepath.Join(t.TempDir(), "records.txt"),
	}, nil)
	biff.AssertNil(s.Load())

	_, err := s.Insert(alice)
	biff.AssertNil(err)

	commands, err := s.History()
	biff.AssertNil(err)
	biff.AssertEqual(len(commands), 0)
}
