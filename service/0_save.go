package service

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/fulldump/apitest"

	"github.com/fulldump/dataform/utils"
)

// Save writes a markdown example of the request/response pair into the
// directory named by DATAFORM_API_EXAMPLES. Without it nothing is written.
func Save(response *apitest.Response, title, description string) {

	examplesPath := os.Getenv("DATAFORM_API_EXAMPLES")
	if examplesPath == "" {
		return
	}

	request := response.Request

	query := request.URL.RawQuery
	if query != "" {
		query = "?" + query
	}

	b := &strings.Builder{}

	fmt.Fprintf(b, "# %s\n\n", title)
	if description = trimIndent(description); description != "" {
		fmt.Fprintf(b, "%s\n\n", description)
	}

	b.WriteString("Curl example:\n\n```sh\n")
	b.WriteString("curl")
	if request.Method != "GET" {
		b.WriteString(" -X " + request.Method)
	}
	fmt.Fprintf(b, " \"https://example.com%s%s\"", request.URL.Path, query)
	for _, k := range utils.GetKeys(request.Header) {
		for _, v := range request.Header[k] {
			fmt.Fprintf(b, " \\\n-H \"%s: %s\"", k, v)
		}
	}
	if body := formatJSON(response.BodyRequestString()); body != "" {
		fmt.Fprintf(b, " \\\n-d '%s'", body)
	}
	b.WriteString("\n```\n\n")

	b.WriteString("HTTP request/response example:\n\n```http\n")
	fmt.Fprintf(b, "%s %s%s %s\nHost: example.com\n", request.Method, request.URL.Path, query, request.Proto)
	for _, k := range utils.GetKeys(request.Header) {
		for _, v := range request.Header[k] {
			fmt.Fprintf(b, "%s: %s\n", k, v)
		}
	}
	fmt.Fprintf(b, "\n%s\n\n", formatJSON(response.BodyRequestString()))

	fmt.Fprintf(b, "%s %s\n", response.Proto, response.Status)
	for _, k := range utils.GetKeys(response.Header) {
		if k == "Date" {
			continue
		}
		for _, v := range response.Header[k] {
			fmt.Fprintf(b, "%s: %s\n", k, v)
		}
	}
	fmt.Fprintf(b, "\n%s\n```\n", formatJSON(response.BodyString()))

	filename := strings.ReplaceAll(strings.ToLower(title), " ", "_") + ".md"
	p := path.Join(examplesPath, path.Clean(filename))
	err := os.WriteFile(p, []byte(b.String()), 0666)
	if err != nil {
		fmt.Println("Saving err:", err)
	}
}

func formatJSON(body string) string {

	var i interface{}
	err := json.Unmarshal([]byte(body), &i)
	if err != nil {
		return body
	}

	formatted, err := json.MarshalIndent(i, "", "    ")
	if err != nil {
		return body
	}

	return string(formatted)
}

// trimIndent removes the common leading tabs of a multiline raw string.
func trimIndent(d string) string {

	lines := strings.Split(strings.Trim(d, "\n"), "\n")

	minTabs := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, "\t"))
		if minTabs < 0 || n < minTabs {
			minTabs = n
		}
	}
	if minTabs <= 0 {
		return strings.TrimSpace(d)
	}

	prefix := strings.Repeat("\t", minTabs)
	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, prefix)
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}
