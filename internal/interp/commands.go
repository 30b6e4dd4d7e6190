package interp

import (
	"fmt"
	"strconv"
	"strings"

	"hostshell/pkg/hosttypes"
)

type commandFunc func(i *Interpreter, args []string) (hosttypes.ReturnCode, string)

func builtinCommands() map[string]commandFunc {
	return map[string]commandFunc{
		"set":      cmdSet,
		"unset":    cmdUnset,
		"vars":     cmdVars,
		"incr":     cmdIncr,
		"puts":     cmdPuts,
		"error":    cmdError,
		"return":   cmdReturn,
		"break":    cmdBreak,
		"continue": cmdContinue,
		"debug":    cmdDebug,
		"exit":     cmdExit,
		"host":     cmdHost,
	}
}

func wrongArgs(usage string) (hosttypes.ReturnCode, string) {
	return hosttypes.Error, fmt.Sprintf("wrong # args: should be %q", usage)
}

func cmdSet(i *Interpreter, args []string) (hosttypes.ReturnCode, string) {
	switch len(args) {
	case 1:
		value, ok := i.vars[args[0]]
		if !ok {
			return hosttypes.Error, fmt.Sprintf("can't read %q: no such variable", args[0])
		}
		return hosttypes.Ok, value
	case 2:
		i.vars[args[0]] = args[1]
		return hosttypes.Ok, args[1]
	default:
		return wrongArgs("set varName ?newValue?")
	}
}

func cmdUnset(i *Interpreter, args []string) (hosttypes.ReturnCode, string) {
	if len(args) == 0 {
		return wrongArgs("unset varName ?varName ...?")
	}
	for _, name := range args {
		if !i.UnsetVariable(name) {
			return hosttypes.Error, fmt.Sprintf("can't unset %q: no such variable", name)
		}
	}
	return hosttypes.Ok, ""
}

func cmdVars(i *Interpreter, args []string) (hosttypes.ReturnCode, string) {
	if len(args) != 0 {
		return wrongArgs("vars")
	}
	return hosttypes.Ok, strings.Join(i.VariableNames(), " ")
}

func cmdIncr(i *Interpreter, args []string) (hosttypes.ReturnCode, string) {
	if len(args) < 1 || len(args) > 2 {
		return wrongArgs("incr varName ?increment?")
	}

	increment := int64(1)
	if len(args) == 2 {
		n, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return hosttypes.Error, fmt.Sprintf("expected integer but got %q", args[1])
		}
		increment = n
	}

	current := int64(0)
	if value, ok := i.vars[args[0]]; ok {
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return hosttypes.Error, fmt.Sprintf("expected integer but got %q", value)
		}
		current = n
	}

	result := strconv.FormatInt(current+increment, 10)
	i.vars[args[0]] = result
	return hosttypes.Ok, result
}

func cmdPuts(i *Interpreter, args []string) (hosttypes.ReturnCode, string) {
	newline := true
	if len(args) > 0 && args[0] == "-nonewline" {
		newline = false
		args = args[1:]
	}
	if len(args) != 1 {
		return wrongArgs("puts ?-nonewline? string")
	}
	if i.host == nil {
		return hosttypes.Error, "no host is bound"
	}

	text := args[0]
	if newline {
		text += "\n"
	}
	if !i.host.Write(text) {
		return hosttypes.Error, "host write failed"
	}
	return hosttypes.Ok, ""
}

func cmdError(_ *Interpreter, args []string) (hosttypes.ReturnCode, string) {
	if len(args) != 1 {
		return wrongArgs("error message")
	}
	return hosttypes.Error, args[0]
}

func cmdReturn(_ *Interpreter, args []string) (hosttypes.ReturnCode, string) {
	if len(args) > 1 {
		return wrongArgs("return ?value?")
	}
	if len(args) == 1 {
		return hosttypes.Return, args[0]
	}
	return hosttypes.Return, ""
}

func cmdBreak(_ *Interpreter, args []string) (hosttypes.ReturnCode, string) {
	if len(args) != 0 {
		return wrongArgs("break")
	}
	return hosttypes.Break, ""
}

func cmdContinue(_ *Interpreter, args []string) (hosttypes.ReturnCode, string) {
	if len(args) != 0 {
		return wrongArgs("continue")
	}
	return hosttypes.Continue, ""
}

func cmdDebug(i *Interpreter, args []string) (hosttypes.ReturnCode, string) {
	if len(args) == 0 {
		return hosttypes.Ok, strconv.FormatBool(i.debug)
	}
	if len(args) != 1 {
		return wrongArgs("debug ?on|off?")
	}
	switch strings.ToLower(args[0]) {
	case "on", "true", "1":
		i.debug = true
	case "off", "false", "0":
		i.debug = false
	default:
		return hosttypes.Error, fmt.Sprintf("expected on or off but got %q", args[0])
	}
	return hosttypes.Ok, ""
}

func cmdExit(i *Interpreter, args []string) (hosttypes.ReturnCode, string) {
	if len(args) > 1 {
		return wrongArgs("exit ?returnCode?")
	}
	code := 0
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return hosttypes.Error, fmt.Sprintf("expected integer but got %q", args[0])
		}
		code = n
	}
	i.exited = true
	i.exitCode = code
	return hosttypes.Ok, ""
}

// cmdHost exposes the bound host: flags, reset, title, state, prompt, roles and color.
func cmdHost(i *Interpreter, args []string) (hosttypes.ReturnCode, string) {
	if len(args) == 0 {
		return wrongArgs("host option ?arg ...?")
	}
	if i.host == nil {
		return hosttypes.Error, "no host is bound"
	}

	switch args[0] {
	case "flags":
		return hosttypes.Ok, i.host.GetHostFlags().String()
	case "reset":
		if len(args) == 2 && args[1] == "flags" {
			return hosttypes.Ok, strconv.FormatBool(i.host.ResetHostFlags())
		}
		if err := i.host.Reset(); err != nil {
			return hosttypes.Error, err.Error()
		}
		return hosttypes.Ok, ""
	case "title":
		return hosttypes.Ok, i.host.DefaultTitle()
	case "state":
		lines := make([]string, 0)
		for _, pair := range i.host.QueryState() {
			lines = append(lines, pair.Key+": "+pair.Value)
		}
		return hosttypes.Ok, strings.Join(lines, "\n")
	case "prompt":
		return hostPrompt(i, args[1:])
	case "roles":
		lister, ok := i.host.(interface{ ColorRoles() []string })
		if !ok {
			return hosttypes.Ok, ""
		}
		return hosttypes.Ok, strings.Join(lister.ColorRoles(), " ")
	case "color":
		return hostColor(i, args[1:])
	default:
		return hosttypes.Error, fmt.Sprintf("bad option %q: must be color, flags, prompt, reset, roles, state or title", args[0])
	}
}

func hostPrompt(i *Interpreter, args []string) (hosttypes.ReturnCode, string) {
	if len(args) != 1 {
		return wrongArgs("host prompt none|start|continue")
	}

	var promptType hosttypes.PromptType
	switch args[0] {
	case "none":
		promptType = hosttypes.PromptNone
	case "start":
		promptType = hosttypes.PromptStart
	case "continue":
		promptType = hosttypes.PromptContinue
	default:
		return hosttypes.Error, fmt.Sprintf("bad prompt type %q", args[0])
	}

	flags := i.promptFlags(false)
	code, err := i.host.Prompt(promptType, &flags)
	if err != nil {
		return code, err.Error()
	}
	return code, flags.String()
}

func hostColor(i *Interpreter, args []string) (hosttypes.ReturnCode, string) {
	if len(args) < 2 {
		return wrongArgs("host color get|set name ?foreground? ?background?")
	}

	switch args[0] {
	case "get":
		if len(args) != 2 {
			return wrongArgs("host color get name")
		}
		fg, bg, err := i.host.GetColors("", args[1], true, true)
		if err != nil {
			return hosttypes.CodeOf(err), err.Error()
		}
		return hosttypes.Ok, fg.String() + " " + bg.String()
	case "set":
		if len(args) < 3 || len(args) > 4 {
			return wrongArgs("host color set name foreground ?background?")
		}
		fg, setFg, err := parseColorArg(args[2])
		if err != nil {
			return hosttypes.Error, err.Error()
		}
		bg, setBg := hosttypes.ColorNone, false
		if len(args) == 4 {
			if bg, setBg, err = parseColorArg(args[3]); err != nil {
				return hosttypes.Error, err.Error()
			}
		}
		if err := i.host.SetColors("", args[1], setFg, setBg, fg, bg); err != nil {
			return hosttypes.CodeOf(err), err.Error()
		}
		return hosttypes.Ok, ""
	default:
		return hosttypes.Error, fmt.Sprintf("bad color option %q: must be get or set", args[0])
	}
}

// parseColorArg parses a color; "-" leaves that half unchanged.
func parseColorArg(arg string) (hosttypes.ConsoleColor, bool, error) {
	if arg == "-" {
		return hosttypes.ColorNone, false, nil
	}
	c, err := hosttypes.ParseConsoleColor(arg)
	if err != nil {
		return hosttypes.ColorNone, false, err
	}
	return c, true, nil
}
