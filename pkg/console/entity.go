package console

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/example/shopadmin/pkg/actors"
	"github.com/example/shopadmin/pkg/admin"
	"github.com/example/shopadmin/pkg/client"
	"github.com/spf13/cobra"
)

// entity describes how one collection is shown on the console.
type entity[T any, F any] struct {
	schema  *admin.Schema[T, F]
	seed    func() []T
	columns []string
	// row renders rec; all is the whole collection, for joins within it.
	row func(rec T, all []T) []string
	// label names a record in the delete prompt.
	label func(T) string
	// detail prints one record for `show`. Defaults to indented JSON.
	detail func(io.Writer, T) error
	// narrow adds list flags and returns the filter they select.
	narrow func(*cobra.Command) func([]T) []T
	// resolve fills display names that live in other collections.
	resolve func(*App, []T) ([]T, error)
	extra   func(*App, *entity[T, F]) []*cobra.Command
}

func (e *entity[T, F]) command(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   e.schema.Resource,
		Short: "Manage " + e.schema.Resource,
	}
	cmd.AddCommand(e.listCommand(a), e.showCommand(a), e.createCommand(a), e.editCommand(a), e.deleteCommand(a))
	if e.extra != nil {
		cmd.AddCommand(e.extra(a, e)...)
	}
	return cmd
}

func (e *entity[T, F]) listCommand(a *App) *cobra.Command {
	var search string
	var narrow func([]T) []T

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List " + e.schema.Resource + ", optionally filtered by a search term",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := openSession(a, e, false)
			all, err := s.load("")
			var view *actors.View[T, F]
			if err == nil {
				view, err = s.coll.SetSearch(search)
			}
			s.close()
			if err != nil {
				return err
			}
			records := view.Records
			if narrow != nil {
				records = narrow(records)
			}
			if records, err = e.names(a, records); err != nil {
				return err
			}
			if err := e.printTable(a.out, records, all.Records); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%d of %d %s\n", len(records), view.Total, e.schema.Resource)
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "case-insensitive search term")
	if e.narrow != nil {
		narrow = e.narrow(cmd)
	}
	return cmd
}

func (e *entity[T, F]) showCommand(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one " + e.schema.Singular,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			rec, err := e.fetch(cmd.Context(), a, id)
			if err != nil {
				return err
			}
			resolved, err := e.names(a, []T{rec})
			if err != nil {
				return err
			}
			return e.show(a.out, resolved[0])
		},
	}
}

// fetch reads one record: from the API when online, from the sample
// records offline.
func (e *entity[T, F]) fetch(ctx context.Context, a *App, id int64) (T, error) {
	notFound := fmt.Errorf("%s %d: %w", e.schema.Singular, id, admin.ErrNotFound)
	if !a.offline {
		rec, err := newStore(a, e.schema).Get(ctx, id)
		if client.IsNotFound(err) {
			return rec, notFound
		}
		return rec, err
	}
	for _, rec := range e.seed() {
		if e.schema.ID(rec) == id {
			return rec, nil
		}
	}
	var zero T
	return zero, notFound
}

func (e *entity[T, F]) names(a *App, records []T) ([]T, error) {
	if e.resolve == nil {
		return records, nil
	}
	return e.resolve(a, records)
}

func (e *entity[T, F]) createCommand(a *App) *cobra.Command {
	var sets []string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a " + e.schema.Singular + " from --set field=value pairs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseSets(sets)
			if err != nil {
				return err
			}
			s := openSession(a, e, false)
			view, err := s.submit(s.coll.BeginCreate, values)
			s.close()
			if err != nil {
				return err
			}
			return e.printTable(a.out, []T{*view.Record}, view.Records)
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "field=value, using the API field names (repeatable)")
	return cmd
}

func (e *entity[T, F]) editCommand(a *App) *cobra.Command {
	var sets []string
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a " + e.schema.Singular,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			values, err := parseSets(sets)
			if err != nil {
				return err
			}
			s := openSession(a, e, false)
			view, err := s.submit(func() (*actors.View[T, F], error) { return s.coll.BeginEdit(id) }, values)
			s.close()
			if err != nil {
				return err
			}
			return e.printTable(a.out, []T{*view.Record}, view.Records)
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "field=value, using the API field names (repeatable)")
	return cmd
}

func (e *entity[T, F]) deleteCommand(a *App) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a " + e.schema.Singular,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			s := openSession(a, e, yes)
			if _, err = s.coll.Load(); err == nil {
				_, err = s.coll.Delete(id)
			}
			s.close()
			if errors.Is(err, admin.ErrNotConfirmed) {
				fmt.Fprintln(a.out, "Cancelled.")
				return nil
			}
			return err
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func (s *session[T, F]) load(search string) (*actors.View[T, F], error) {
	if _, err := s.coll.Load(); err != nil {
		return nil, err
	}
	return s.coll.SetSearch(search)
}

// submit walks the dialog: load, open, fill, submit. The returned view holds
// the submitted record.
func (s *session[T, F]) submit(open func() (*actors.View[T, F], error), values map[string]string) (*actors.View[T, F], error) {
	if _, err := s.coll.Load(); err != nil {
		return nil, err
	}
	if _, err := open(); err != nil {
		return nil, err
	}
	if _, err := s.coll.DecodeForm(values); err != nil {
		return nil, err
	}
	return s.coll.Submit()
}

func (e *entity[T, F]) printTable(w io.Writer, records, all []T) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(e.columns, "\t"))
	for _, rec := range records {
		fmt.Fprintln(tw, strings.Join(e.row(rec, all), "\t"))
	}
	return tw.Flush()
}

func (e *entity[T, F]) show(w io.Writer, rec T) error {
	if e.detail != nil {
		return e.detail(w, rec)
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", e.schema.Singular, err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

// parseSets turns field=value pairs into dialog input. The value may be
// empty, which clears optional fields.
func parseSets(sets []string) (map[string]string, error) {
	values := make(map[string]string, len(sets))
	for _, set := range sets {
		key, value, ok := strings.Cut(set, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --set %q: want field=value", set)
		}
		values[key] = value
	}
	return values, nil
}
