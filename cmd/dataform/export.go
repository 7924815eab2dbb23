package main

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/fulldump/dataform/record"
	"github.com/fulldump/dataform/service"
)

type exportedRecord struct {
	Index       int      `json:"index" yaml:"index"`
	FullName    string   `json:"fullName" yaml:"fullName"`
	ID          string   `json:"id" yaml:"id"`
	Gender      string   `json:"gender" yaml:"gender"`
	Province    string   `json:"province" yaml:"province"`
	DateOfBirth string   `json:"dateOfBirth" yaml:"dateOfBirth"`
	Raw         []string `json:"raw,omitempty" yaml:"raw,omitempty"`
}

func newExportedRecord(item *service.Item) exportedRecord {
	get := func(f record.Field) string {
		v, _ := item.Record.Get(f)
		return v
	}
	e := exportedRecord{
		Index:       item.Index,
		FullName:    get(record.FullName),
		ID:          get(record.ID),
		Gender:      get(record.Gender),
		Province:    get(record.Province),
		DateOfBirth: get(record.DateOfBirth),
	}
	if !item.Record.Valid() {
		e.Raw = item.Record
	}
	return e
}

func newExportCmd(a *app) *cobra.Command {

	format := "csv"

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every record to stdout as csv, json or yaml",
		Long: `Writes every record in file order.

The csv output quotes fields properly, so it is safe to open with a
spreadsheet even when a field holds a comma.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open()
			if err != nil {
				return err
			}
			items, err := s.List(service.ListOptions{})
			if err != nil {
				return err
			}
			return export(cmd.OutOrStdout(), format, items)
		},
	}

	cmd.Flags().StringVar(&format, "format", format, "csv, json or yaml")

	return cmd
}

func export(w io.Writer, format string, items []*service.Item) error {

	exported := make([]exportedRecord, len(items))
	for i, item := range items {
		exported[i] = newExportedRecord(item)
	}

	switch format {
	case "csv":
		return exportCsv(w, exported)
	case "json":
		err := json.MarshalWrite(w, exported, jsontext.WithIndent("  "))
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, "\n")
		return err
	case "yaml":
		e := yaml.NewEncoder(w)
		e.SetIndent(2)
		err := e.Encode(exported)
		if err != nil {
			return err
		}
		return e.Close()
	}

	return fmt.Errorf("unknown format '%s', must be csv, json or yaml", format)
}

func exportCsv(w io.Writer, exported []exportedRecord) error {

	c := csv.NewWriter(w)
	c.Write(record.FieldNames())
	for _, e := range exported {
		if e.Raw != nil {
			continue
		}
		c.Write([]string{e.FullName, e.ID, e.Gender, e.Province, e.DateOfBirth})
	}
	c.Flush()

	return c.Error()
}
