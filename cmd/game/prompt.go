package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	world "Stronghold/internal/world/entity"
)

// errInputClosed 标准输入结束（Ctrl-D 或管道读完）。
var errInputClosed = errors.New("input closed")

// prompter 读一行、校验、不合法就重问。
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewScanner(in), out: out}
}

func (p *prompter) printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

func (p *prompter) line(prompt string) (string, error) {
	p.printf("%s", prompt)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", errInputClosed
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// intIn 读取 [lo, hi] 内的整数。
func (p *prompter) intIn(prompt string, lo, hi int) (int, error) {
	for {
		s, err := p.line(prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(s)
		if err == nil && n >= lo && n <= hi {
			return n, nil
		}
		p.printf("invalid input, enter a number between %d and %d\n", lo, hi)
	}
}

// point 读取 "x y"（也接受逗号分隔）。空行返回 ok=false，表示跳过。
func (p *prompter) point(prompt string) (world.Point, bool, error) {
	for {
		s, err := p.line(prompt)
		if err != nil {
			return world.Point{}, false, err
		}
		if s == "" {
			return world.Point{}, false, nil
		}
		fields := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == ',' || r == ';' })
		if len(fields) == 2 {
			x, ex := strconv.Atoi(fields[0])
			y, ey := strconv.Atoi(fields[1])
			if ex == nil && ey == nil && x >= 0 && x < world.Width && y >= 0 && y < world.Height {
				return world.Point{X: x, Y: y}, true, nil
			}
		}
		p.printf("invalid coordinates, enter \"x y\" with 0..%d, or an empty line to skip\n", world.Width-1)
	}
}
