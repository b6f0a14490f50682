package command

import (
	"errors"
	"strings"
	"unicode"
)

// Kind identifies one of the commands the bot understands.
type Kind int

const (
	Help Kind = iota
	Start
	Info
	Price
	Calc
)

// Arity describes what a command accepts after its keyword.
type Arity int

const (
	// NoArgs commands reject any trailing text.
	NoArgs Arity = iota
	// OneArg commands need a non-empty argument string.
	OneArg
	// RawArgs commands receive the remainder as-is, possibly empty.
	RawArgs
)

// Spec is one row of the command grammar.
type Spec struct {
	Kind        Kind
	Name        string
	Arity       Arity
	Args        string
	Description string
}

// Specs is the grammar. Keywords are lowercase; matching is case-insensitive.
var Specs = []Spec{
	{Kind: Help, Name: "help", Arity: NoArgs, Description: "显示所有命令"},
	{Kind: Start, Name: "start", Arity: NoArgs, Description: "开始使用"},
	{Kind: Info, Name: "info", Arity: NoArgs, Description: "关于本机器人"},
	{Kind: Price, Name: "p", Arity: OneArg, Args: "[币名]", Description: "查询币价"},
	{Kind: Calc, Name: "calc", Arity: RawArgs, Args: "[数量] [币名]", Description: "计算总价"},
}

var ErrNotCommand = errors.New("not a command")

// Command is a parsed invocation. Args holds the raw argument string.
type Command struct {
	Kind Kind
	Args string
}

// Parse matches text against the grammar. botName is the bot's own username;
// commands addressed to another bot via /cmd@name are rejected.
func Parse(text, botName string) (Command, error) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return Command{}, ErrNotCommand
	}

	head, args := text, ""
	if i := strings.IndexFunc(text, unicode.IsSpace); i >= 0 {
		head, args = text[:i], strings.TrimSpace(text[i:])
	}

	keyword, addressee, addressed := strings.Cut(strings.TrimPrefix(head, "/"), "@")
	if addressed && !strings.EqualFold(addressee, botName) {
		return Command{}, ErrNotCommand
	}

	spec, ok := lookup(keyword)
	if !ok {
		return Command{}, ErrNotCommand
	}

	switch spec.Arity {
	case NoArgs:
		if args != "" {
			return Command{}, ErrNotCommand
		}
	case OneArg:
		if args == "" {
			return Command{}, ErrNotCommand
		}
	}

	return Command{Kind: spec.Kind, Args: args}, nil
}

func lookup(keyword string) (Spec, bool) {
	keyword = strings.ToLower(keyword)
	for _, s := range Specs {
		if s.Name == keyword {
			return s, true
		}
	}
	return Spec{}, false
}

// Usage renders the table as "/<name> [args] - <description>" lines.
func Usage() string {
	var b strings.Builder
	for i, s := range Specs {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("/" + s.Name)
		if s.Args != "" {
			b.WriteString(" " + s.Args)
		}
		b.WriteString(" - " + s.Description)
	}
	return b.String()
}
