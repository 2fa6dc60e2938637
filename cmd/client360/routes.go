package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vango-dev/client360/internal/errors"
	"github.com/vango-dev/client360/pkg/dashboard"
	"github.com/vango-dev/client360/pkg/navserver"
	"github.com/vango-dev/client360/pkg/router"
)

func routesCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "List the route table",
		Long: `List every route in match order.

Routes are tried top to bottom and the first match wins.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table := dashboard.Table()
			routes := table.Routes()

			out := make([]navserver.RouteInfo, len(routes))
			for i, rp := range routes {
				names, _ := table.ParamNames(rp.Name)
				if names == nil {
					names = []string{}
				}
				out[i] = navserver.RouteInfo{RoutePattern: rp, Params: names}
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), out)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tNAME\tVIEW\tPATH")
			for i, r := range out {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, r.Name, r.View, r.Path)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")

	return cmd
}

func resolveCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "resolve <path>",
		Short: "Resolve a path to its route",
		Long: `Resolve a path against the route table and print the matched
route, view and view inputs.

Examples:
  client360 resolve /region/5/rm/9
  client360 resolve "/metro/3?view=map" --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := dashboard.Table().MatchPath(args[0])
			if err != nil {
				return errors.Classify(err, "E300")
			}
			crumbs, err := dashboard.Breadcrumbs(m)
			if err != nil {
				return err
			}

			if asJSON {
				resp := navserver.ResolveResponse{
					Route:       m.Route.Name,
					View:        m.Route.View,
					Path:        router.ParseTarget(args[0]).Path,
					Params:      m.Params,
					Props:       m.Props(),
					Breadcrumbs: crumbs,
				}
				if len(m.Query) > 0 {
					resp.Query = m.Query
				}
				return writeJSON(cmd.OutOrStdout(), resp)
			}

			success(cmd, "%s → %s", m.Route.Name, m.Route.View)
			info(cmd, "path:  %s", m.Route.Path)
			for _, p := range m.Params {
				info(cmd, "param: %s=%s", p.Name, p.Value)
			}
			trail := make([]string, len(crumbs))
			for i, c := range crumbs {
				trail[i] = string(c.Variant)
			}
			info(cmd, "trail: %s", strings.Join(trail, " › "))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")

	return cmd
}

func hrefCmd() *cobra.Command {
	var query []string

	cmd := &cobra.Command{
		Use:   "href <route> [name=value...]",
		Short: "Build the path of a named route",
		Long: `Build the path of a named route from parameter values.

Examples:
  client360 href Region regionId=5
  client360 href ClientDetail regionId=5 rmId=9 relationshipId=12 clientId=77
  client360 href Metro metroId=3 --query view=map`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parsePairs(args[1:])
			if err != nil {
				return err
			}
			q, err := parsePairs(query)
			if err != nil {
				return err
			}
			values := make(map[string][]string, len(q))
			for k, v := range q {
				values[k] = []string{v}
			}

			href, err := dashboard.Table().HrefWithQuery(args[0], params, values)
			if err != nil {
				return errors.Classify(err, "E202")
			}
			fmt.Fprintln(cmd.OutOrStdout(), href)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&query, "query", "q", nil, "Query parameter as name=value (repeatable)")

	return cmd
}

// parsePairs parses name=value arguments.
func parsePairs(args []string) (map[string]string, error) {
	out := make(map[string]string, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid argument %q: want name=value", arg)
		}
		out[name] = value
	}
	return out, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
