package configuration

type Configuration struct {
	HttpAddr          string `usage:"HTTP address"`
	Filename          string `usage:"records file, one record per line"`
	Journal           string `usage:"operation journal file, empty to disable"`
	AtomicRewrite     bool   `usage:"rewrite the records file through a temporary file on delete"`
	LogLevel          string `usage:"log level: debug, info, warn or error"`
	LogFormat         string `usage:"log format: console or json"`
	EnableCompression bool   `usage:"gzip responses when the client accepts it"`
	ApiKey            string `usage:"required X-Api-Key header, empty to disable authentication"`
	ApiSecret         string `usage:"required X-Api-Secret header"`
	Version           bool   `usage:"show version and exit"`
	ShowBanner        bool   `usage:"show big banner"`
	ShowConfig        bool   `usage:"print config"`
}

func Default() Configuration {
	return Configuration{
		HttpAddr:   ":8080",
		Filename:   "records.txt",
		LogLevel:   "info",
		LogFormat:  "console",
		ShowBanner: true,
	}
}
