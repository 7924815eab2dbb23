package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fulldump/dataform/form"
	"github.com/fulldump/dataform/record"
	"github.com/fulldump/dataform/service"
)

func newAddCmd(a *app) *cobra.Command {

	fields := form.Fields{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append a new record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.form()
			if err != nil {
				return err
			}
			f.Fields = fields
			return report(cmd, f.Save())
		},
	}

	cmd.Flags().StringVar(&fields.FullName, "name", "", "full name")
	cmd.Flags().StringVar(&fields.ID, "id", "", "id")
	cmd.Flags().StringVar(&fields.Gender, "gender", "", "gender: "+strings.Join(form.Genders, " or "))
	cmd.Flags().StringVar(&fields.Province, "province", "", "province")
	cmd.Flags().StringVar(&fields.DateOfBirth, "dob", "", "date of birth, YYYY-MM-DD")

	return cmd
}

func newFindCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "find [id]",
		Short: "Show the first record with this id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.form()
			if err != nil {
				return err
			}
			f.Fields.ID = args[0]

			notice := f.Find()
			err = report(cmd, notice)
			if err != nil {
				return err
			}

			index, ok := f.Selection.Index()
			if ok {
				printFields(cmd.OutOrStdout(), index, f.Fields)
			}
			return nil
		},
	}
}

func newDeleteCmd(a *app) *cobra.Command {

	index := -1

	cmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete the first record with this id, or the one at --index",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {

			if cmd.Flags().Changed("index") {
				if len(args) > 0 {
					return fmt.Errorf("use either an id or --index")
				}
				s, err := a.open()
				if err != nil {
					return err
				}
				item, err := s.Remove(index)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Success: Record %d deleted successfully.\n", item.Index)
				return nil
			}

			if len(args) == 0 {
				return fmt.Errorf("an id or --index is required")
			}

			f, err := a.form()
			if err != nil {
				return err
			}
			f.Fields.ID = args[0]

			err = report(cmd, f.Find())
			if err != nil {
				return err
			}
			if !f.CanDelete() {
				return nil
			}

			notice, _ := f.Delete()
			return report(cmd, notice)
		},
	}

	cmd.Flags().IntVar(&index, "index", -1, "position of the record in the file, starting at 0")

	return cmd
}

func newListCmd(a *app) *cobra.Command {

	options := service.ListOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open()
			if err != nil {
				return err
			}
			items, err := s.List(options)
			if err != nil {
				return err
			}
			printItems(cmd.OutOrStdout(), items)
			return nil
		},
	}

	cmd.Flags().StringVar(&options.Sort, "sort", "", "sort by id or -id, file order by default")
	cmd.Flags().StringVar(&options.Prefix, "prefix", "", "only ids starting with this prefix")

	return cmd
}

func printFields(w io.Writer, index int, f form.Fields) {
	tw := tabwriter.NewWriter(w, 0, 4, 1, ' ', 0)
	fmt.Fprintf(tw, "index:\t%d\n", index)
	fmt.Fprintf(tw, "fullName:\t%s\n", f.FullName)
	fmt.Fprintf(tw, "id:\t%s\n", f.ID)
	fmt.Fprintf(tw, "gender:\t%s\n", f.Gender)
	fmt.Fprintf(tw, "province:\t%s\n", f.Province)
	fmt.Fprintf(tw, "dateOfBirth:\t%s\n", f.DateOfBirth)
	tw.Flush()
}

func printItems(w io.Writer, items []*service.Item) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "INDEX\tID\tFULL NAME\tGENDER\tPROVINCE\tDATE OF BIRTH")
	for _, item := range items {
		if !item.Record.Valid() {
			fmt.Fprintf(tw, "%d\t(malformed: %s)\n", item.Index, item.Record.Line())
			continue
		}
		get := func(f record.Field) string {
			v, _ := item.Record.Get(f)
			return v
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			item.Index,
			get(record.ID),
			get(record.FullName),
			get(record.Gender),
			get(record.Province),
			get(record.DateOfBirth),
		)
	}
	tw.Flush()
}
