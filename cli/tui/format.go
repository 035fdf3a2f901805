package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mwantia/rediscmd/cmd"
)

// FormatReply renders a command reply the way redis-cli prints it.
func FormatReply(reply cmd.Reply) string {
	return formatReply(reply, 0)
}

func formatReply(reply cmd.Reply, indent int) string {
	switch r := reply.(type) {
	case nil:
		return "(nil)"
	case string:
		return strconv.Quote(r)
	case int64:
		return fmt.Sprintf("(integer) %d", r)
	case uint64:
		return fmt.Sprintf("(integer) %d", r)
	case int:
		return fmt.Sprintf("(integer) %d", r)
	case float64:
		return "(double) " + strconv.FormatFloat(r, 'g', -1, 64)
	case []cmd.Reply:
		if len(r) == 0 {
			return "(empty array)"
		}
		width := len(strconv.Itoa(len(r)))
		pad := strings.Repeat(" ", indent)
		lines := make([]string, len(r))
		for i, item := range r {
			prefix := fmt.Sprintf("%*d) ", width, i+1)
			text := formatReply(item, indent+len(prefix))
			if i == 0 {
				lines[i] = prefix + text
			} else {
				lines[i] = pad + prefix + text
			}
		}
		return strings.Join(lines, "\n")
	default:
		return fmt.Sprint(r)
	}
}

// FormatUsage renders a one-line synopsis such as "HELLO.FOO input [optional] [N n]".
func FormatUsage(schema *cmd.Schema) string {
	parts := []string{strings.ToUpper(schema.Name())}
	for _, arg := range schema.Args() {
		value := placeholder(arg)
		switch {
		case arg.Category == cmd.CategoryRequired:
			parts = append(parts, value)
		case arg.Category == cmd.CategoryOptional:
			parts = append(parts, "["+value+"]")
		case arg.HasDefault():
			parts = append(parts, "["+strings.ToUpper(arg.Name)+" "+value+"]")
		default:
			parts = append(parts, strings.ToUpper(arg.Name)+" "+value)
		}
	}
	return strings.Join(parts, " ")
}

// FormatArg describes a single argument declaration.
func FormatArg(arg cmd.Arg) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s %s", arg.Name, arg.Category, arg.Type)
	if arg.IsVector() {
		fmt.Fprintf(&b, " x%d", arg.Arity)
	}
	if arg.HasDefault() {
		fmt.Fprintf(&b, ", default %s", arg.Default)
	}
	b.WriteString(")")
	if arg.Description != "" {
		b.WriteString(": " + arg.Description)
	}
	return b.String()
}

func placeholder(arg cmd.Arg) string {
	if !arg.IsVector() {
		return arg.Name
	}
	names := make([]string, arg.Arity)
	for i := range names {
		names[i] = fmt.Sprintf("%s%d", arg.Name, i+1)
	}
	return strings.Join(names, " ")
}
