package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/doistemposcafe/totem/internal/adapter/outbound/api"
	"github.com/doistemposcafe/totem/internal/domain/auth"
)

// Staff-resource gates mirror the dashboards: restaurant and manager
// administration is ADMIN territory, day-to-day catalog and order
// handling is open to MANAGER as well.
var (
	staffRoles = []auth.Role{auth.RoleManager, auth.RoleAdmin}
	adminRoles = []auth.Role{auth.RoleAdmin}
)

func init() {
	rootCmd.AddCommand(
		newResourceCmd("products", "Manage menu products",
			func(c *api.Client) api.Resource[api.Product] { return c.Products },
			staffRoles, true),
		newResourceCmd("users", "Manage user accounts",
			func(c *api.Client) api.Resource[api.User] { return c.Users },
			staffRoles, false),
		newResourceCmd("orders", "Manage orders",
			func(c *api.Client) api.Resource[api.Order] { return c.Orders },
			staffRoles, false),
		newResourceCmd("order-items", "Manage order items",
			func(c *api.Client) api.Resource[api.OrderItem] { return c.OrderItems },
			staffRoles, false),
		newResourceCmd("payments", "Manage payments",
			func(c *api.Client) api.Resource[api.Payment] { return c.Payments },
			staffRoles, false),
		newResourceCmd("menu-categories", "Manage menu categories",
			func(c *api.Client) api.Resource[api.MenuCategory] { return c.MenuCategories },
			staffRoles, true),
		newResourceCmd("restaurants", "Manage restaurants",
			func(c *api.Client) api.Resource[api.Restaurant] { return c.Restaurants },
			adminRoles, false),
		newResourceCmd("managers", "Manage manager accounts",
			func(c *api.Client) api.Resource[api.Manager] { return c.Managers },
			adminRoles, false),
	)
}

// newResourceCmd builds one command group exposing a backend resource
// as list/get/save/update/delete. gate is checked locally before the
// backend call, mirroring the UI's conditional rendering; publicReads
// leaves list and get open the way the public menu pages are.
func newResourceCmd[T any](use, short string, pick func(*api.Client) api.Resource[T], gate []auth.Role, publicReads bool) *cobra.Command {
	group := &cobra.Command{
		Use:   use,
		Short: short,
	}

	var jsonBody string

	list := &cobra.Command{
		Use:   "list",
		Short: "List all records",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := gatedDeps(gate, publicReads)
			if err != nil {
				return err
			}
			out, err := pick(d.client).List(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(out)
		},
	}

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Fetch one record by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := gatedDeps(gate, publicReads)
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			out, err := pick(d.client).Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(out)
		},
	}

	save := &cobra.Command{
		Use:   "save",
		Short: "Create a record from JSON",
		Long:  "Create a record. Pass the body with --json, or pipe it on stdin.",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := gatedDeps(gate, false)
			if err != nil {
				return err
			}
			var in T
			if err := readJSONBody(jsonBody, &in); err != nil {
				return err
			}
			out, err := pick(d.client).Save(cmd.Context(), in)
			if err != nil {
				return err
			}
			return printJSON(out)
		},
	}
	save.Flags().StringVar(&jsonBody, "json", "", "record body as JSON (default: read stdin)")

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace a record from JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := gatedDeps(gate, false)
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			var in T
			if err := readJSONBody(jsonBody, &in); err != nil {
				return err
			}
			out, err := pick(d.client).Update(cmd.Context(), id, in)
			if err != nil {
				return err
			}
			return printJSON(out)
		},
	}
	update.Flags().StringVar(&jsonBody, "json", "", "record body as JSON (default: read stdin)")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a record by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := gatedDeps(gate, false)
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := pick(d.client).Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Printf("Deleted %s %d.\n", use, id)
			return nil
		},
	}

	group.AddCommand(list, get, save, update, del)
	return group
}

// gatedDeps wires dependencies and enforces the local role gate.
// The backend enforces authorization regardless; the local check just
// gives a clear message instead of a 403.
func gatedDeps(gate []auth.Role, public bool) (*deps, error) {
	d, err := buildDeps()
	if err != nil {
		return nil, err
	}
	if public {
		return d, nil
	}
	if !d.sessions.IsAuthenticated() {
		return nil, fmt.Errorf("not signed in, run: totem login")
	}
	if !d.sessions.HasAnyRole(gate...) {
		return nil, fmt.Errorf("your roles %v do not allow this command (requires one of %v)",
			d.sessions.Roles(), gate)
	}
	return d, nil
}

// readJSONBody decodes the --json flag value, or stdin when empty.
func readJSONBody(flagValue string, out any) error {
	data := []byte(flagValue)
	if flagValue == "" {
		var err error
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse record JSON: %w", err)
	}
	return nil
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: expected a number", raw)
	}
	return id, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
