// Package trace is a reference vm.Debugger that renders scope stepping to
// a terminal, styled the way the teacher's hiveexplorer TUI styles its
// value tables.
package trace

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/intuicio-go/kernel/pkg/core"
	"github.com/intuicio-go/kernel/pkg/script"
	"github.com/intuicio-go/kernel/pkg/vm"
)

var (
	scopeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4"))

	operationStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#0A0A0A")).
			Background(lipgloss.Color("#F4F4F4"))

	exitStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))
)

// Printer is a vm.Debugger that writes a colorized, indented trace of
// scope entry/exit and every operation executed. Indentation tracks
// nesting depth so a BranchScope/LoopScope/PushScope's child prints
// visibly nested under its parent.
type Printer struct {
	out   io.Writer
	depth int
}

// NewPrinter wraps out for colorized trace output.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

func (p *Printer) indent() string { return strings.Repeat("  ", p.depth) }

func (p *Printer) OnEnterScope(scope *vm.Scope, ctx *core.Context, registry *core.Registry) {
	fmt.Fprintf(p.out, "%s%s\n", p.indent(), scopeStyle.Render(fmt.Sprintf("scope #%d enter", scope.Symbol())))
	p.depth++
}

func (p *Printer) OnEnterOperation(scope *vm.Scope, op script.Operation, position int, ctx *core.Context, registry *core.Registry) {
	fmt.Fprintf(p.out, "%s%s\n", p.indent(), operationStyle.Render(fmt.Sprintf("[%d] %T", position, op)))
}

func (p *Printer) OnExitOperation(scope *vm.Scope, op script.Operation, position int, ctx *core.Context, registry *core.Registry) {
}

func (p *Printer) OnExitScope(scope *vm.Scope, ctx *core.Context, registry *core.Registry) {
	p.depth--
	if p.depth < 0 {
		p.depth = 0
	}
	fmt.Fprintf(p.out, "%s%s\n", p.indent(), exitStyle.Render(fmt.Sprintf("scope #%d exit", scope.Symbol())))
}
