package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	out := &bytes.Buffer{}
	root := newRootCmd()
	root.SetOut(out)
	root.SetErr(io.Discard)
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

type workspace struct {
	file    string
	journal string
}

func newWorkspace(t *testing.T) *workspace {
	dir := t.TempDir()
	return &workspace{
		file:    filepath.Join(dir, "records.txt"),
		journal: filepath.Join(dir, "records.journal"),
	}
}

func (w *workspace) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return run(t, append([]string{"--file", w.file, "--journal", w.journal}, args...)...)
}

func (w *workspace) add(t *testing.T, name, id, gender, province, dob string) {
	t.Helper()
	out, err := w.run(t, "add",
		"--name", name,
		"--id", id,
		"--gender", gender,
		"--province", province,
		"--dob", dob,
	)
	require.NoError(t, err)
	require.Equal(t, "Success: Record saved successfully.\n", out)
}

func (w *workspace) content(t *testing.T) string {
	t.Helper()
	b, err := os.ReadFile(w.file)
	require.NoError(t, err)
	return string(b)
}

func TestAdd(t *testing.T) {
	w := newWorkspace(t)

	w.add(t, "Alice Smith", "A1", "female", "Ontario", "1990-05-01")

	assert.Equal(t, "Alice Smith,A1,Female,Ontario,1990-05-01\n", w.content(t))
}

func TestAdd_Validation(t *testing.T) {
	w := newWorkspace(t)

	_, err := w.run(t, "add", "--name", "Alice Smith", "--id", "A1")
	require.Error(t, err)
	assert.Equal(t, "Validation Error: All fields must be filled out.", err.Error())

	_, err = w.run(t, "add",
		"--name", "Alice Smith",
		"--id", "A1",
		"--gender", "Female",
		"--province", "Ontario",
		"--dob", "1990-02-30",
	)
	require.Error(t, err)
	assert.Equal(t, "Validation Error: Date of birth must be a valid YYYY-MM-DD date.", err.Error())

	_, statErr := os.Stat(w.file)
	assert.True(t, os.IsNotExist(statErr))
}

func TestFind(t *testing.T) {
	w := newWorkspace(t)

	out, err := w.run(t, "find", "A1")
	require.NoError(t, err)
	assert.Equal(t, "No Records: No records found.\n", out)

	w.add(t, "Alice Smith", "A1", "Female", "Ontario", "1990-05-01")
	w.add(t, "Bob Lee", "B2", "Male", "Quebec", "1985-11-23")

	out, err = w.run(t, "find", "B2")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Record Found: Record found with ID: B2\n"))
	assert.Contains(t, out, "index:       1\n")
	assert.Contains(t, out, "fullName:    Bob Lee\n")
	assert.Contains(t, out, "province:    Quebec\n")

	out, err = w.run(t, "find", "Z9")
	require.NoError(t, err)
	assert.Equal(t, "Record Not Found: No record found with ID: Z9\n", out)
}

func TestDelete(t *testing.T) {
	w := newWorkspace(t)

	w.add(t, "Alice Smith", "A1", "Female", "Ontario", "1990-05-01")
	w.add(t, "Bob Lee", "B2", "Male", "Quebec", "1985-11-23")
	w.add(t, "Carol Diaz", "C3", "Female", "Ontario", "1979-03-14")

	out, err := w.run(t, "delete", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Record Found: Record found with ID: B2\nSuccess: Record deleted successfully.\n", out)
	assert.Equal(t,
		"Alice Smith,A1,Female,Ontario,1990-05-01\nCarol Diaz,C3,Female,Ontario,1979-03-14\n",
		w.content(t))

	out, err = w.run(t, "delete", "--index", "0")
	require.NoError(t, err)
	assert.Equal(t, "Success: Record 0 deleted successfully.\n", out)
	assert.Equal(t, "Carol Diaz,C3,Female,Ontario,1979-03-14\n", w.content(t))

	_, err = w.run(t, "delete", "--index", "5")
	assert.Error(t, err)

	_, err = w.run(t, "delete")
	assert.Error(t, err)

	out, err = w.run(t, "history")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[3], "delete")
	assert.Contains(t, lines[4], `"index":0`)
}

func TestList(t *testing.T) {
	w := newWorkspace(t)

	w.add(t, "Bob Lee", "B2", "Male", "Quebec", "1985-11-23")
	w.add(t, "Alice Smith", "A1", "Female", "Ontario", "1990-05-01")
	w.add(t, "Carol Diaz", "A2", "Female", "Ontario", "1979-03-14")

	ids := func(out string) []string {
		result := []string{}
		for _, line := range strings.Split(strings.TrimSpace(out), "\n")[1:] {
			result = append(result, strings.Fields(line)[1])
		}
		return result
	}

	out, err := w.run(t, "list")
	require.NoError(t, err)
	assert.Equal(t, []string{"B2", "A1", "A2"}, ids(out))

	out, err = w.run(t, "list", "--sort", "id")
	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "A2", "B2"}, ids(out))

	out, err = w.run(t, "list", "--sort", "-id", "--prefix", "A")
	require.NoError(t, err)
	assert.Equal(t, []string{"A2", "A1"}, ids(out))

	_, err = w.run(t, "list", "--sort", "name")
	assert.Error(t, err)
}

func TestSearch(t *testing.T) {
	w := newWorkspace(t)

	w.add(t, "Alice Smith", "A1", "Female", "Ontario", "1990-05-01")
	w.add(t, "Bob Lee", "B2", "Male", "Quebec", "1985-11-23")
	w.add(t, "Carol Diaz", "C3", "Female", "Ontario", "1979-03-14")

	out, err := w.run(t, "search", "--filter", `{"province":"Ontario"}`, "--skip", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Carol Diaz")
	assert.NotContains(t, out, "Alice Smith")
	assert.NotContains(t, out, "Bob Lee")

	_, err = w.run(t, "search", "--filter", `{"email":"x"}`)
	assert.Error(t, err)

	_, err = w.run(t, "search", "--filter", `{`)
	assert.Error(t, err)
}

func TestExport(t *testing.T) {
	w := newWorkspace(t)

	w.add(t, "Alice Smith", "A1", "Female", "Ontario", "1990-05-01")

	out, err := w.run(t, "export")
	require.NoError(t, err)
	assert.Equal(t, "fullName,id,gender,province,dateOfBirth\nAlice Smith,A1,Female,Ontario,1990-05-01\n", out)

	out, err = w.run(t, "export", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, `dateOfBirth: "1990-05-01"`)
	exported := []exportedRecord{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &exported))
	assert.Equal(t, []exportedRecord{{
		Index:       0,
		FullName:    "Alice Smith",
		ID:          "A1",
		Gender:      "Female",
		Province:    "Ontario",
		DateOfBirth: "1990-05-01",
	}}, exported)

	out, err = w.run(t, "export", "--format", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"index":0,"fullName":"Alice Smith","id":"A1","gender":"Female","province":"Ontario","dateOfBirth":"1990-05-01"}]`, out)

	_, err = w.run(t, "export", "--format", "xml")
	assert.Error(t, err)
}

func TestMalformedLines(t *testing.T) {
	w := newWorkspace(t)

	err := os.WriteFile(w.file, []byte("Smith, John,J1,Male,Ontario,1980-01-01\nAlice Smith,A1,Female,Ontario,1990-05-01\n"), 0644)
	require.NoError(t, err)

	out, err := w.run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "(malformed: Smith, John,J1,Male,Ontario,1980-01-01)")

	out, err = w.run(t, "find", "A1")
	require.NoError(t, err)
	assert.Contains(t, out, "index:       1\n")
}

func TestHistory_Disabled(t *testing.T) {
	_, err := run(t, "--file", filepath.Join(t.TempDir(), "records.txt"), "history")
	assert.Error(t, err)
}
