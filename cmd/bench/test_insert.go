package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"
)

func TestInsert(c Config) {

	if c.Base == "" {
		stop := CreateServer(&c, 0)
		defer stop()
	}

	client := NewClient()

	items := c.N
	failed := int64(0)

	t0 := time.Now()
	Parallel(c.Workers, func() {
		for {
			n := atomic.AddInt64(&items, -1)
			if n < 0 {
				break
			}

			payload, _ := json.Marshal(JSON{
				"fullName":    fmt.Sprintf("Person %d", n),
				"id":          fmt.Sprintf("P%d", n),
				"gender":      "Male",
				"province":    "Quebec",
				"dateOfBirth": "1985-11-23",
			})

			resp, err := client.Post(c.Base+"/v1/records", "application/json", bytes.NewReader(payload))
			if err != nil {
				fmt.Println("ERROR: do request:", err.Error())
				atomic.AddInt64(&failed, 1)
				continue
			}
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()

			if resp.StatusCode != http.StatusCreated {
				atomic.AddInt64(&failed, 1)
			}
		}
	})

	Report("inserted", c.N, time.Since(t0))
	if failed > 0 {
		fmt.Println("failed:", failed)
	}
}
