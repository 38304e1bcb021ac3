package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/intuicio-go/kernel/cmd/intuicioctl/program"
	"github.com/intuicio-go/kernel/pkg/core"
	"github.com/intuicio-go/kernel/pkg/vm"
	"github.com/intuicio-go/kernel/pkg/vm/trace"
)

func init() {
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newDebugCmd())
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <script.json>",
		Short: "Run a script to completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(args[0], false)
		},
	}
}

func newDebugCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "debug <script.json>",
		Short: "Run a script with the trace debugger attached",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(args[0], true)
		},
	}
}

func runScript(path string, attachDebugger bool) error {
	registry, s, err := program.Load(path)
	if err != nil {
		printError("%v\n", err)
		return err
	}

	scope := vm.NewScope(s)
	if attachDebugger {
		scope = scope.WithDebugger(vm.NewDebuggerHandle(trace.NewPrinter(os.Stdout)))
	}

	ctx := core.NewContext()
	future := vm.NewFuture(scope, registry, vm.OwnedContext{Context: ctx})
	if operationsPerPoll > 0 {
		future = future.WithOperationsPerPoll(operationsPerPoll)
	}

	polls := 0
	for future.Poll() == vm.Pending {
		polls++
		printVerbose("poll %d: suspended\n", polls)
	}

	summary := map[string]any{
		"script":     path,
		"polls":      polls + 1,
		"stack_size": ctx.Stack.Position(),
	}
	if jsonOut {
		return printJSON(summary)
	}
	printInfo("completed %s after %d poll(s); %d value(s) left on the stack\n", path, summary["polls"], summary["stack_size"])
	return nil
}
