package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagEnum // has predefined values
	flagFile
	flagDir
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long   string
	Short  string
	Type   flagType
	Desc   string
	Values []string // for enum flags
}

// commandDef describes a command for completion.
type commandDef struct {
	Name      string
	Desc      string
	Flags     []flagDef
	ArgGlob   string // file argument pattern, e.g. "*.json"
	ArgIsDir  bool   // takes a directory argument
	ArgValues []string
}

// flagCompletionMeta refines flag types the FlagSet cannot express.
var flagCompletionMeta = map[string]flagDef{
	"shape":      {Type: flagEnum, Values: []string{"fragment", "style", "full", "document"}},
	"config":     {Type: flagFile},
	"env-file":   {Type: flagFile},
	"log-file":   {Type: flagFile},
	"style":      {Type: flagFile},
	"output":     {Type: flagDir},
	"asset-path": {Type: flagDir},
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}
		if f.Value.Type() == "bool" {
			fd.Type = flagBool
		}
		if meta, ok := flagCompletionMeta[f.Name]; ok {
			fd.Type = meta.Type
			fd.Values = meta.Values
		}
		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
// Flags come from the same FlagSets the commands parse.
func getCommands() []commandDef {
	return []commandDef{
		{
			Name:    "convert",
			Desc:    "Convert Lexical JSON documents to HTML",
			Flags:   extractFlagsFromFlagSet(newConvertFlagSet(&convertFlags{})),
			ArgGlob: "*.json",
		},
		{
			Name:     "watch",
			Desc:     "Reconvert documents as they change",
			Flags:    extractFlagsFromFlagSet(newWatchFlagSet(&watchFlags{})),
			ArgIsDir: true,
		},
		{
			Name:  "serve",
			Desc:  "Run the HTTP conversion service",
			Flags: extractFlagsFromFlagSet(newServeFlagSet(&serveFlags{})),
		},
		{
			Name:  "mcp",
			Desc:  "Serve conversion tools over MCP",
			Flags: extractFlagsFromFlagSet(newMCPFlagSet(&mcpFlags{})),
		},
		{
			Name:  "css",
			Desc:  "Print the bundled stylesheet",
			Flags: extractFlagsFromFlagSet(newCSSFlagSet(&cssFlags{})),
		},
		{
			Name:  "doctor",
			Desc:  "Check assets and PDF readiness",
			Flags: extractFlagsFromFlagSet(newDoctorFlagSet(&doctorFlags{})),
		},
		{
			Name:      "completion",
			Desc:      "Generate shell completion script",
			ArgValues: []string{string(ShellBash), string(ShellZsh), string(ShellFish)},
		},
		{Name: "version", Desc: "Show version information"},
		{
			Name:      "help",
			Desc:      "Show help for a command",
			ArgValues: []string{"convert", "watch", "serve", "mcp", "css", "doctor", "completion", "version"},
		},
	}
}

// GenerateCompletion writes the completion script for shell to w.
func GenerateCompletion(w io.Writer, shell Shell) error {
	cmds := getCommands()
	switch shell {
	case ShellBash:
		return generateBash(w, cmds)
	case ShellZsh:
		return generateZsh(w, cmds)
	case ShellFish:
		return generateFish(w, cmds)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish)", ErrUnsupportedShell, shell)
	}
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: lexical2html completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for bash, zsh or fish.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w, "  Bash:  eval \"$(lexical2html completion bash)\"   # in ~/.bashrc")
	fmt.Fprintln(w, "  Zsh:   eval \"$(lexical2html completion zsh)\"    # in ~/.zshrc, before compinit")
	fmt.Fprintln(w, "  Fish:  lexical2html completion fish > ~/.config/fish/completions/lexical2html.fish")
}

// ---------------------------------------------------------------------------
// Bash
// ---------------------------------------------------------------------------

func generateBash(w io.Writer, cmds []commandDef) error {
	var b strings.Builder

	names := make([]string, 0, len(cmds))
	for _, c := range cmds {
		names = append(names, c.Name)
	}

	b.WriteString("# bash completion for lexical2html\n")
	b.WriteString("_lexical2html() {\n")
	b.WriteString("    local cur prev cmd\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n\n")
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W \"%s\" -- \"$cur\"))\n", strings.Join(names, " "))
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"$cmd\" in\n")

	for _, c := range cmds {
		fmt.Fprintf(&b, "    %s)\n", c.Name)

		var valueCases []string
		var words []string
		for _, f := range c.Flags {
			opts := "--" + f.Long
			words = append(words, "--"+f.Long)
			if f.Short != "" {
				opts += "|-" + f.Short
				words = append(words, "-"+f.Short)
			}
			switch f.Type {
			case flagEnum:
				valueCases = append(valueCases, fmt.Sprintf("        %s) COMPREPLY=($(compgen -W \"%s\" -- \"$cur\")); return ;;", opts, strings.Join(f.Values, " ")))
			case flagFile:
				valueCases = append(valueCases, fmt.Sprintf("        %s) COMPREPLY=($(compgen -f -- \"$cur\")); return ;;", opts))
			case flagDir:
				valueCases = append(valueCases, fmt.Sprintf("        %s) COMPREPLY=($(compgen -d -- \"$cur\")); return ;;", opts))
			}
		}
		if len(valueCases) > 0 {
			b.WriteString("        case \"$prev\" in\n")
			b.WriteString(strings.Join(valueCases, "\n"))
			b.WriteString("\n        esac\n")
		}

		var args string
		switch {
		case c.ArgGlob != "":
			args = fmt.Sprintf("$(compgen -f -X '!%s' -- \"$cur\") $(compgen -d -- \"$cur\")", c.ArgGlob)
		case c.ArgIsDir:
			args = "$(compgen -d -- \"$cur\")"
		case len(c.ArgValues) > 0:
			args = fmt.Sprintf("$(compgen -W \"%s\" -- \"$cur\")", strings.Join(c.ArgValues, " "))
		}

		switch {
		case len(words) > 0 && args != "":
			b.WriteString("        if [[ \"$cur\" == -* ]]; then\n")
			fmt.Fprintf(&b, "            COMPREPLY=($(compgen -W \"%s\" -- \"$cur\"))\n", strings.Join(words, " "))
			b.WriteString("        else\n")
			fmt.Fprintf(&b, "            COMPREPLY=(%s)\n", args)
			b.WriteString("        fi\n")
		case len(words) > 0:
			fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W \"%s\" -- \"$cur\"))\n", strings.Join(words, " "))
		case args != "":
			fmt.Fprintf(&b, "        COMPREPLY=(%s)\n", args)
		}
		b.WriteString("        ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n")
	b.WriteString("complete -F _lexical2html lexical2html\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// ---------------------------------------------------------------------------
// Zsh
// ---------------------------------------------------------------------------

// zshEscape escapes text for use inside a single-quoted _arguments spec.
func zshEscape(s string) string {
	r := strings.NewReplacer(`'`, `'\''`, `[`, `\[`, `]`, `\]`, `:`, `\:`)
	return r.Replace(s)
}

func generateZsh(w io.Writer, cmds []commandDef) error {
	var b strings.Builder

	b.WriteString("#compdef lexical2html\n\n")
	b.WriteString("_lexical2html() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    local cmd=${words[2]}\n")
	b.WriteString("    shift words\n")
	b.WriteString("    (( CURRENT-- ))\n\n")
	b.WriteString("    case $cmd in\n")

	for _, c := range cmds {
		var specs []string
		for _, f := range c.Flags {
			action := ""
			switch f.Type {
			case flagEnum:
				action = fmt.Sprintf(":%s:(%s)", f.Long, strings.Join(f.Values, " "))
			case flagFile:
				action = fmt.Sprintf(":%s:_files", f.Long)
			case flagDir:
				action = fmt.Sprintf(":%s:_files -/", f.Long)
			case flagString:
				action = fmt.Sprintf(":%s: ", f.Long)
			}
			desc := zshEscape(f.Desc)
			if f.Short != "" {
				specs = append(specs, fmt.Sprintf("'(-%s --%s)'{-%s,--%s}'[%s]%s'", f.Short, f.Long, f.Short, f.Long, desc, action))
			} else {
				specs = append(specs, fmt.Sprintf("'--%s[%s]%s'", f.Long, desc, action))
			}
		}
		switch {
		case c.ArgGlob != "":
			specs = append(specs, fmt.Sprintf("'*:file:_files -g \"%s\"'", c.ArgGlob))
		case c.ArgIsDir:
			specs = append(specs, "'1:directory:_files -/'")
		case len(c.ArgValues) > 0:
			specs = append(specs, fmt.Sprintf("'1:argument:(%s)'", strings.Join(c.ArgValues, " ")))
		}

		fmt.Fprintf(&b, "    %s)\n", c.Name)
		if len(specs) > 0 {
			b.WriteString("        _arguments \\\n            ")
			b.WriteString(strings.Join(specs, " \\\n            "))
			b.WriteString("\n")
		}
		b.WriteString("        ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("compdef _lexical2html lexical2html\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// ---------------------------------------------------------------------------
// Fish
// ---------------------------------------------------------------------------

// fishEscape escapes text for use inside a single-quoted fish string.
func fishEscape(s string) string {
	return strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(s)
}

func generateFish(w io.Writer, cmds []commandDef) error {
	var b strings.Builder

	b.WriteString("# fish completion for lexical2html\n")
	b.WriteString("complete -c lexical2html -f\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c lexical2html -n __fish_use_subcommand -a %s -d '%s'\n", c.Name, fishEscape(c.Desc))
	}

	for _, c := range cmds {
		cond := fmt.Sprintf("-n '__fish_seen_subcommand_from %s'", c.Name)
		for _, f := range c.Flags {
			line := fmt.Sprintf("complete -c lexical2html %s -l %s", cond, f.Long)
			if f.Short != "" {
				line += " -s " + f.Short
			}
			switch f.Type {
			case flagEnum:
				line += fmt.Sprintf(" -x -a '%s'", strings.Join(f.Values, " "))
			case flagFile:
				line += " -r -F"
			case flagDir:
				line += " -x -a '(__fish_complete_directories)'"
			case flagString:
				line += " -x"
			}
			line += fmt.Sprintf(" -d '%s'", fishEscape(f.Desc))
			b.WriteString(line + "\n")
		}
		switch {
		case c.ArgGlob != "":
			fmt.Fprintf(&b, "complete -c lexical2html %s -F\n", cond)
		case c.ArgIsDir:
			fmt.Fprintf(&b, "complete -c lexical2html %s -x -a '(__fish_complete_directories)'\n", cond)
		case len(c.ArgValues) > 0:
			fmt.Fprintf(&b, "complete -c lexical2html %s -x -a '%s'\n", cond, strings.Join(c.ArgValues, " "))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
