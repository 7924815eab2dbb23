package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/fulldump/goconfig"
)

type Config struct {
	Test    string `usage:"name of the test: ALL | INSERT | REMOVE | RELOAD"`
	Base    string `usage:"base URL, empty to start a local server"`
	N       int64  `usage:"number of records"`
	Workers int    `usage:"number of workers"`
}

var cleanups []func()

func main() {

	defer func() {
		fmt.Println("Cleaning up...")
		for _, cleanup := range cleanups {
			cleanup()
		}
	}()

	c := Config{
		Test:    "insert",
		Base:    "",
		N:       10_000,
		Workers: 16,
	}
	goconfig.Read(&c)

	switch strings.ToUpper(c.Test) {
	case "ALL":
		TestInsert(c)
		TestRemove(c)
		TestReload(c)
	case "INSERT":
		TestInsert(c)
	case "REMOVE":
		TestRemove(c)
	case "RELOAD":
		TestReload(c)
	default:
		log.Fatalf("Unknown test %s", c.Test)
	}

}
