package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/osse101/AssignmentSync_Go/internal/bootstrap"
	"github.com/osse101/AssignmentSync_Go/internal/mapping"
	"github.com/osse101/AssignmentSync_Go/internal/schema"
)

type propertyView struct {
	Name    string   `json:"name"`
	Type    string   `json:"type"`
	Options []string `json:"options,omitempty"`
}

type bindingView struct {
	Field    string `json:"field"`
	Property string `json:"property,omitempty"`
	Type     string `json:"type,omitempty"`
}

type schemaView struct {
	DatabaseID string         `json:"database_id"`
	Title      string         `json:"title"`
	Properties []propertyView `json:"properties"`
	Bindings   []bindingView  `json:"bindings"`
}

// NewSchemaCommand creates the schema command
func NewSchemaCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Show the destination properties and how fields bind to them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchema(cmd, rootOpts)
		},
	}
}

func runSchema(cmd *cobra.Command, opts *RootOptions) error {
	cfg, logCloser, err := opts.loadConfig()
	if err != nil {
		return err
	}
	defer logCloser.Close()

	ctx := cmd.Context()
	app, err := bootstrap.Build(ctx, cfg, bootstrap.Options{})
	if err != nil {
		return WrapExitError(ExitCommandError, ErrMsgWire, err)
	}
	defer app.Close()

	s, err := app.Inspector.Refresh(ctx)
	if err != nil {
		return WrapExitError(ExitFailure, ErrMsgSchema, err)
	}

	view := describeSchema(s, mapping.Resolve(app.FieldMaps.Current(), s))
	out := opts.formatter(cmd)
	if out.JSON() {
		return out.WriteJSON(view)
	}
	printSchema(out, view)
	return nil
}

func describeSchema(s *schema.Schema, b mapping.Bindings) schemaView {
	view := schemaView{DatabaseID: s.DatabaseID, Title: s.Title}
	for _, name := range s.Names() {
		p, _ := s.Property(name)
		pv := propertyView{Name: p.Name, Type: string(p.Type)}
		for _, o := range p.Options {
			pv.Options = append(pv.Options, o.Name)
		}
		view.Properties = append(view.Properties, pv)
	}
	for _, f := range mapping.AllFields {
		bv := bindingView{Field: string(f)}
		if bd, ok := b.Get(f); ok {
			bv.Property, bv.Type = bd.Property, string(bd.Type)
		}
		view.Bindings = append(view.Bindings, bv)
	}
	return view
}

func printSchema(out *OutputFormatter, v schemaView) {
	out.Printf("%s %s (%s)\n\n", styleTitle.Render("Database"), v.Title, v.DatabaseID)

	props := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("PROPERTY", "TYPE", "OPTIONS")
	for _, p := range v.Properties {
		props.Row(p.Name, p.Type, strings.Join(p.Options, ", "))
	}
	out.Println(props.Render())

	binds := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("FIELD", "PROPERTY", "TYPE")
	for _, b := range v.Bindings {
		prop := b.Property
		if prop == "" {
			prop = styleDim.Render("(unbound)")
		}
		binds.Row(b.Field, prop, b.Type)
	}
	out.Println(binds.Render())
}
