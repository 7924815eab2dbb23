package main

import (
	"bufio"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fulldump/dataform/bootstrap"
	"github.com/fulldump/dataform/configuration"
	"github.com/fulldump/dataform/record"
)

type JSON = map[string]any

func Parallel(workers int, f func()) {
	wg := &sync.WaitGroup{}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f()
		}()
	}
	wg.Wait()
}

func TempDir() (string, func()) {
	dir, err := os.MkdirTemp("", "dataform_bench_*")
	if err != nil {
		panic("Could not create temp directory: " + err.Error())
	}

	cleanup := func() {
		os.RemoveAll(dir)
	}

	return dir, cleanup
}

func NewClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			MaxConnsPerHost:     1024,
			MaxIdleConnsPerHost: 1024,
			MaxIdleConns:        1024,
		},
		Timeout: 10 * time.Second,
	}
}

// Preload writes n records straight to filename.
func Preload(filename string, n int64) {
	f, err := os.Create(filename)
	if err != nil {
		panic(err)
	}
	defer f.Close()

	w := bufio.NewWriterSize(f, 1*1024*1024)
	for i := int64(0); i < n; i++ {
		r := record.New(
			fmt.Sprintf("Person %d", i),
			fmt.Sprintf("P%d", i),
			"Female",
			"Ontario",
			"1990-05-01",
		)
		fmt.Fprintln(w, r.Line())
	}
	err = w.Flush()
	if err != nil {
		panic(err)
	}
}

// CreateServer starts a local server over a fresh records file, preloaded
// with preload records.
func CreateServer(c *Config, preload int64) (stop func()) {
	dir, cleanup := TempDir()
	cleanups = append(cleanups, cleanup)

	conf := configuration.Default()
	conf.HttpAddr = "127.0.0.1:8080"
	conf.Filename = filepath.Join(dir, "records.txt")
	c.Base = "http://" + conf.HttpAddr

	if preload > 0 {
		Preload(conf.Filename, preload)
	}

	start, stop, err := bootstrap.Bootstrap(&conf, nil)
	if err != nil {
		panic(err)
	}
	go start()

	WaitOperating(c.Base)

	return stop
}

func WaitOperating(base string) {
	for i := 0; i < 100; i++ {
		resp, err := http.Get(base + "/v1/records?prefix=-")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}
	panic("server is not operating")
}

func Report(verb string, n int64, took time.Duration) {
	fmt.Println(verb+":", n)
	fmt.Println("took:", took)
	fmt.Printf("Throughput: %.2f rows/sec\n", float64(n)/took.Seconds())
}
