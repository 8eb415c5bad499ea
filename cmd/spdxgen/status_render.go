package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// severity grades a status line and picks its badge text and color.
type severity int

const (
	sevInfo severity = iota
	sevOK
	sevWarn
	sevError
)

func (s severity) badge() string {
	switch s {
	case sevOK:
		return "OK"
	case sevWarn:
		return "WARN"
	case sevError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func (s severity) color() string {
	switch s {
	case sevOK:
		return ansiGreen
	case sevWarn:
		return ansiYellow
	case sevError:
		return ansiRed
	default:
		return ansiBlue
	}
}

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

// statusPrinter writes aligned status sections to a single destination,
// coloring them only when that destination is a terminal.
type statusPrinter struct {
	out   io.Writer
	color bool
}

func newStatusPrinter(out io.Writer) *statusPrinter {
	return &statusPrinter{out: out, color: writerIsTerminal(out)}
}

func (p *statusPrinter) section(title string) {
	heading := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	p.println(heading, ansiBlue)
	p.println(strings.Repeat("-", len(heading)), ansiBlue)
}

func (p *statusPrinter) line(label string, sev severity, message string) {
	badge := "[" + sev.badge() + "]"
	if message != "" {
		badge += " " + message
	}
	p.println(fmt.Sprintf("  %-20s %s", label+":", badge), sev.color())
}

func (p *statusPrinter) blank() {
	fmt.Fprintln(p.out)
}

func (p *statusPrinter) println(text, color string) {
	if p.color && color != "" {
		fmt.Fprintln(p.out, color+text+ansiReset)
		return
	}
	fmt.Fprintln(p.out, text)
}

func writerIsTerminal(out io.Writer) bool {
	file, ok := out.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
