package structure

import (
	"fmt"
	"strings"
)

// Assembler renders decided fields into the fixed-section template.
// The section order and exact header text are a hard contract: the
// validator checks for these headers verbatim.
type Assembler struct{}

// NewAssembler creates an assembler.
func NewAssembler() *Assembler {
	return &Assembler{}
}

// Assemble renders the structured prompt. Pure string formatting, no
// validation, no side effects.
func (a *Assembler) Assemble(persona, platform, objective string, scopeIn, scopeOut, constraints, execution, outputContract []string) string {
	var b strings.Builder

	b.WriteString("ROLE\n")
	b.WriteString(persona)
	b.WriteString("\n\nPLATFORM\n")
	b.WriteString(platform)
	b.WriteString("\n\nOBJECTIVE\n")
	b.WriteString(objective)
	b.WriteString("\n\nSCOPE\nIncluded:\n")
	writeBullets(&b, scopeIn)
	b.WriteString("\nExcluded:\n")
	writeBullets(&b, scopeOut)
	b.WriteString("\nCONSTRAINTS\n")
	writeBullets(&b, constraints)
	b.WriteString("\nEXECUTION\n")
	for i, step := range execution {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}
	b.WriteString("\nOUTPUT CONTRACT\n")
	writeBullets(&b, outputContract)

	return strings.TrimRight(b.String(), "\n")
}

func writeBullets(b *strings.Builder, items []string) {
	for _, item := range items {
		b.WriteString("- ")
		b.WriteString(item)
		b.WriteString("\n")
	}
}
