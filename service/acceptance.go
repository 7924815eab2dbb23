package service

import (
	"net/http"

	"github.com/fulldump/apitest"
	"github.com/fulldump/biff"
)

type JSON = map[string]interface{}

// Acceptance describes the behavior of the records API over any transport
// that exposes it under apiRequest.
func Acceptance(a *biff.A, apiRequest func(method, path string) *apitest.Request) {

	alice := JSON{
		"fullName":    "Alice Smith",
		"id":          "A1",
		"gender":      "Female",
		"province":    "Ontario",
		"dateOfBirth": "1990-05-01",
	}
	bob := JSON{
		"fullName":    "Bob Lee",
		"id":          "B2",
		"gender":      "male",
		"province":    "Quebec",
		"dateOfBirth": "1985-11-23",
	}
	bobStored := JSON{
		"index":       1,
		"fullName":    "Bob Lee",
		"id":          "B2",
		"gender":      "Male",
		"province":    "Quebec",
		"dateOfBirth": "1985-11-23",
	}

	a.Alternative("List empty", func(a *biff.A) {
		resp := apiRequest("GET", "/records").Do()
		Save(resp, "List records - empty", ``)

		biff.AssertEqual(resp.StatusCode, http.StatusOK)
		biff.AssertEqualJson(resp.BodyJson(), []JSON{})
	})

	a.Alternative("Find on empty store", func(a *biff.A) {
		resp := apiRequest("POST", "/records:find").
			WithBodyJson(JSON{"id": "A1"}).Do()
		Save(resp, "Find - empty store", ``)

		biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
		biff.AssertEqualJson(resp.BodyJson(), JSON{
			"error": JSON{
				"message":     "record not found: store is empty",
				"description": "Record not found",
			},
		})
	})

	a.Alternative("Insert with blank fields", func(a *biff.A) {
		resp := apiRequest("POST", "/records").
			WithBodyJson(JSON{"fullName": "Alice Smith", "id": "A1"}).Do()
		Save(resp, "Insert - validation error", ``)

		biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
		biff.AssertEqualJson(resp.BodyJson(), JSON{
			"error": JSON{
				"message":     "All fields must be filled out.",
				"description": "Validation error",
				"fields":      []string{"gender", "province", "dateOfBirth"},
			},
		})
	})

	a.Alternative("Insert with malformed JSON", func(a *biff.A) {
		resp := apiRequest("POST", "/records").
			WithBodyString(`{"fullName": `).Do()

		biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
	})

	a.Alternative("Insert two records", func(a *biff.A) {
		resp := apiRequest("POST", "/records").
			WithBodyJson(alice).Do()
		Save(resp, "Insert", `
			Appends a record to the backing file. Every field is required, the
			gender is Male or Female and the date of birth is YYYY-MM-DD.
		`)

		biff.AssertEqual(resp.StatusCode, http.StatusCreated)
		aliceStored := JSON{"index": 0}
		for k, v := range alice {
			aliceStored[k] = v
		}
		biff.AssertEqualJson(resp.BodyJson(), aliceStored)

		resp = apiRequest("POST", "/records").
			WithBodyJson(bob).Do()
		biff.AssertEqual(resp.StatusCode, http.StatusCreated)
		biff.AssertEqualJson(resp.BodyJson(), bobStored)

		a.Alternative("List", func(a *biff.A) {
			resp := apiRequest("GET", "/records").Do()
			Save(resp, "List records", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqualJson(resp.BodyJson(), []JSON{aliceStored, bobStored})
		})

		a.Alternative("List sorted descending", func(a *biff.A) {
			resp := apiRequest("GET", "/records").
				WithQuery("sort", "-id").Do()
			Save(resp, "List records - sorted by id", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqualJson(resp.BodyJson(), []JSON{bobStored, aliceStored})
		})

		a.Alternative("List with bad sort", func(a *biff.A) {
			resp := apiRequest("GET", "/records").
				WithQuery("sort", "name").Do()

			biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
		})

		a.Alternative("Find", func(a *biff.A) {
			resp := apiRequest("POST", "/records:find").
				WithBodyJson(JSON{"id": "B2"}).Do()
			Save(resp, "Find", `
				Returns the first record with exactly this id.
			`)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqualJson(resp.BodyJson(), bobStored)
		})

		a.Alternative("Find not found", func(a *biff.A) {
			resp := apiRequest("POST", "/records:find").
				WithBodyJson(JSON{"id": "Z9"}).Do()
			Save(resp, "Find - not found", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
			biff.AssertEqualJson(resp.BodyJson(), JSON{
				"error": JSON{
					"message":     "record not found: id 'Z9'",
					"description": "Record not found",
				},
			})
		})

		a.Alternative("Find without id", func(a *biff.A) {
			resp := apiRequest("POST", "/records:find").
				WithBodyJson(JSON{}).Do()

			biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
		})

		a.Alternative("Remove", func(a *biff.A) {
			resp := apiRequest("POST", "/records:remove").
				WithBodyJson(JSON{"index": 1}).Do()
			Save(resp, "Remove", `
				Removes the record at index and rewrites the whole backing file.
			`)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqualJson(resp.BodyJson(), bobStored)

			resp = apiRequest("GET", "/records").Do()
			biff.AssertEqualJson(resp.BodyJson(), []JSON{aliceStored})

			a.Alternative("History", func(a *biff.A) {
				resp := apiRequest("GET", "/history").Do()
				Save(resp, "History", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				entries := resp.BodyJson().([]interface{})
				biff.AssertEqual(len(entries), 3)
				biff.AssertEqual(entries[2].(JSON)["name"], "delete")
			})
		})

		a.Alternative("Remove out of range", func(a *biff.A) {
			resp := apiRequest("POST", "/records:remove").
				WithBodyJson(JSON{"index": 2}).Do()
			Save(resp, "Remove - out of range", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusNotFound)

			resp = apiRequest("GET", "/records").Do()
			biff.AssertEqualJson(resp.BodyJson(), []JSON{aliceStored, bobStored})
		})

		a.Alternative("Remove without index", func(a *biff.A) {
			resp := apiRequest("POST", "/records:remove").
				WithBodyJson(JSON{}).Do()

			biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
		})

		a.Alternative("Reload", func(a *biff.A) {
			resp := apiRequest("POST", "/records:reload").Do()
			Save(resp, "Reload", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqualJson(resp.BodyJson(), JSON{"total": 2})
		})

		a.Alternative("Search", func(a *biff.A) {
			resp := apiRequest("POST", "/records:search").
				WithBodyJson(JSON{
					"filter": JSON{"province": "Quebec"},
				}).Do()
			Save(resp, "Search", `
				Filters records with mongo-like conditions on their fields.
			`)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqualJson(resp.BodyJson(), []JSON{bobStored})
		})

		a.Alternative("Search unknown field", func(a *biff.A) {
			resp := apiRequest("POST", "/records:search").
				WithBodyJson(JSON{
					"filter": JSON{"email": "alice@example.com"},
				}).Do()
			Save(resp, "Search - unknown field", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
		})
	})
}
