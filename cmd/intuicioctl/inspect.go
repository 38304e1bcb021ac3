package main

import (
	"github.com/spf13/cobra"

	"github.com/intuicio-go/kernel/cmd/intuicioctl/program"
	"github.com/intuicio-go/kernel/pkg/core"
)

func init() {
	rootCmd.AddCommand(newTypesCmd())
	rootCmd.AddCommand(newFuncsCmd())
}

func newTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List every type registered by the built-in standard library",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := core.NewRegistry().WithBasicTypes()
			program.RegisterStdlib(registry)
			return listTypes(registry)
		},
	}
}

func newFuncsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "funcs",
		Short: "List every function registered by the built-in standard library",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := core.NewRegistry().WithBasicTypes()
			program.RegisterStdlib(registry)
			return listFuncs(registry)
		},
	}
}

func listTypes(registry *core.Registry) error {
	names := make([]string, 0)
	for _, t := range registry.Types() {
		names = append(names, t.ModuleName()+"::"+t.Name())
	}
	if jsonOut {
		return printJSON(names)
	}
	for _, n := range names {
		printInfo("%s\n", n)
	}
	return nil
}

func listFuncs(registry *core.Registry) error {
	sigs := make([]string, 0)
	for _, f := range registry.Functions() {
		sigs = append(sigs, f.String())
	}
	if jsonOut {
		return printJSON(sigs)
	}
	for _, s := range sigs {
		printInfo("%s\n", s)
	}
	return nil
}
