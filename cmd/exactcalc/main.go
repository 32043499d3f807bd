package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/zephyrtronium/exactcalc"
)

func main() {
	log.SetFlags(0)
	var (
		inname string
		nl     bool
		c      calc
	)
	flag.StringVar(&inname, "in", "", "input file (default stdin if no args given)")
	flag.BoolVar(&nl, "n", false, "parse separate input lines as separate expressions")
	flag.BoolVar(&c.echo, "echo", false, "print parse trees, or postfix tokens with -postfix")
	flag.BoolVar(&c.float, "float", false, "also print the floating-point approximation of exact results")
	flag.BoolVar(&c.postfix, "postfix", false, "evaluate through the postfix converter instead of the parse tree")
	flag.Parse()

	if inname == "" && flag.NArg() == 0 && term.IsTerminal(int(os.Stdin.Fd())) {
		if err := repl(&c); err != nil {
			log.Fatal(err)
		}
		return
	}

	var ins []io.RuneScanner
	f, err := infile(inname, flag.NArg() == 0)
	if err != nil {
		log.Fatal(err)
	}
	if f != nil {
		ins = append(ins, f)
	}
	for _, arg := range flag.Args() {
		ins = append(ins, strings.NewReader(arg))
	}

	var opts []exactcalc.ParseOption
	if nl {
		opts = append(opts, exactcalc.StopOn('\n'))
	}
	for _, in := range ins {
		for {
			// First check whether we're done with the input.
			if _, _, err := in.ReadRune(); err != nil {
				if err == io.EOF {
					break
				}
				log.Fatal(err)
			}
			in.UnreadRune()
			toks, err := exactcalc.Scan(in, opts...)
			if err != nil {
				var serr *exactcalc.SyntaxError
				if !nl || !errors.As(err, &serr) {
					log.Fatal(err)
				}
				fmt.Println(err)
				if err := skipLine(in); err != nil {
					log.Fatal(err)
				}
				continue
			}
			if len(toks) == 0 {
				// Trailing blank lines.
				continue
			}
			fmt.Println(c.line(toks))
		}
	}
}

// calc evaluates token sequences and formats results.
type calc struct {
	echo, float, postfix bool
}

// line evaluates one expression and returns the line to print for it.
func (c *calc) line(toks []exactcalc.Token) string {
	var b strings.Builder
	var (
		v   exactcalc.Value
		err error
	)
	if c.postfix {
		var post []exactcalc.Token
		post, err = exactcalc.ToPostfix(toks)
		if err == nil {
			if c.echo {
				fmt.Fprintf(&b, "%s : ", exactcalc.FormatTokens(post))
			}
			v, err = exactcalc.EvalPostfix(post)
		}
	} else {
		var e *exactcalc.Expr
		e, err = exactcalc.ParseTokens(toks)
		if err == nil {
			if c.echo {
				fmt.Fprintf(&b, "%v : ", e)
			}
			v, err = e.Eval()
		}
	}
	if err != nil {
		b.WriteString(err.Error())
		return b.String()
	}
	b.WriteString(v.String())
	if c.float && v.IsExact() && v.Kind() != exactcalc.KindInteger {
		fmt.Fprintf(&b, " ≈ %g", v.Float64())
	}
	return b.String()
}

// repl runs an interactive prompt on the terminal attached to stdin.
func repl(c *calc) error {
	fd := int(os.Stdin.Fd())
	old, err := term.MakeRaw(fd)
	if err != nil {
		return err
	}
	defer term.Restore(fd, old)
	t := term.NewTerminal(struct {
		io.Reader
		io.Writer
	}{os.Stdin, os.Stdout}, "> ")
	for {
		s, err := t.ReadLine()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if strings.TrimSpace(s) == "" {
			continue
		}
		toks, err := exactcalc.Tokenize(s)
		if err != nil {
			fmt.Fprintln(t, err)
			continue
		}
		fmt.Fprintln(t, c.line(toks))
	}
}

// skipLine discards input through the next newline.
func skipLine(in io.RuneScanner) error {
	for {
		r, _, err := in.ReadRune()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if r == '\n' {
			return nil
		}
	}
}

func infile(inname string, std bool) (io.RuneScanner, error) {
	var f *os.File
	switch {
	case inname != "" && inname != "-":
		in, err := os.Open(inname)
		if err != nil {
			return nil, err
		}
		f = in
	case inname == "-", std:
		f = os.Stdin
	}
	if f == nil {
		return nil, nil
	}
	return bufio.NewReader(f), nil
}
