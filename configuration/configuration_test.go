package configuration

import (
	"testing"

	"github.com/fulldump/biff"
)

func TestDefault(t *testing.T) {

	c := Default()

	biff.AssertEqual(c.HttpAddr, ":8080")
	biff.AssertEqual(c.Filename, "records.txt")
	biff.AssertEqual(c.Journal, "")
	biff.AssertFalse(c.AtomicRewrite)
	biff.AssertEqual(c.LogLevel, "info")
	biff.AssertEqual(c.LogFormat, "console")
	biff.AssertFalse(c.EnableCompression)
	biff.AssertEqual(c.ApiKey, "")
	biff.AssertEqual(c.ApiSecret, "")
}
