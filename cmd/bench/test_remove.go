package main

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"
)

func TestRemove(c Config) {

	if c.Base == "" {
		stop := CreateServer(&c, c.N)
		defer stop()
	}

	client := NewClient()
	removeURL := c.Base + "/v1/records:remove"

	items := c.N
	removed := int64(0)

	t0 := time.Now()
	Parallel(c.Workers, func() {
		for atomic.AddInt64(&items, -1) >= 0 {

			// Every removal rewrites the whole file, the head is always there.
			req, err := http.NewRequest(http.MethodPost, removeURL, strings.NewReader(`{"index":0}`))
			if err != nil {
				fmt.Println("ERROR: new request:", err.Error())
				return
			}
			req.Header.Set("Content-Type", "application/json")

			resp, err := client.Do(req)
			if err != nil {
				fmt.Println("ERROR: do request:", err.Error())
				continue
			}
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				fmt.Println("ERROR: bad status:", resp.Status)
				continue
			}
			atomic.AddInt64(&removed, 1)
		}
	})

	Report("removed", removed, time.Since(t0))
}

func TestReload(c Config) {

	if c.Base == "" {
		stop := CreateServer(&c, c.N)
		defer stop()
	}

	client := NewClient()

	t0 := time.Now()
	resp, err := client.Post(c.Base+"/v1/records:reload", "application/json", nil)
	if err != nil {
		fmt.Println("ERROR: do request:", err.Error())
		return
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	took := time.Since(t0)

	fmt.Println("response:", strings.TrimSpace(string(body)))
	Report("reloaded", c.N, took)
}
