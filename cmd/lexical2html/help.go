package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: lexical2html <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert     Convert Lexical JSON documents to HTML (and PDF)")
	fmt.Fprintln(w, "  watch       Reconvert documents in a directory as they change")
	fmt.Fprintln(w, "  serve       Run the HTTP conversion service")
	fmt.Fprintln(w, "  mcp         Serve conversion tools over MCP (stdio)")
	fmt.Fprintln(w, "  css         Print the bundled stylesheet")
	fmt.Fprintln(w, "  doctor      Check assets and PDF readiness")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'lexical2html help <command>' for details on a specific command.")
}

// printCommonUsage prints flags shared by every converting command.
func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w, "Configuration:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --env-file <path>     KEY=VALUE overrides (default: .env)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --style <s>           Style name, CSS file path or inline CSS")
	fmt.Fprintln(w, "      --prefix <class>      Wrapper class (default: lexical-content)")
	fmt.Fprintln(w, "      --highlight-style <s> Chroma style for code colors (e.g. github)")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom styles/scripts/templates directory")
	fmt.Fprintln(w, "      --minify              Minify the stylesheet")
	fmt.Fprintln(w, "      --no-style            Disable CSS styling")
	fmt.Fprintln(w, "      --no-script           Omit the interaction script")
	fmt.Fprintln(w, "      --minify-script       Minify the interaction script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing and debug logs")
	fmt.Fprintln(w, "      --log-file <path>     Also write JSON logs to a rotated file")
}

// printDocumentUsage prints bundle and document flags.
func printDocumentUsage(w io.Writer) {
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "      --shape <s>           fragment, style, full (default), document")
	fmt.Fprintln(w, "      --title <s>           Document title (\"\" = file name)")
	fmt.Fprintln(w, "      --lang <s>            Document language (default: en)")
	fmt.Fprintln(w, "      --base-url <url>      Resolve relative src/href against this URL")
	fmt.Fprintln(w)
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: lexical2html convert <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert Lexical editor JSON to HTML.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    .json file, directory, or - for stdin")
	fmt.Fprintln(w, "           (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output .html file or directory")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --pdf                 Also write a PDF (requires Chrome)")
	fmt.Fprintln(w, "  -t, --timeout <d>         PDF generation timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	printDocumentUsage(w)
	printCommonUsage(w)
}

// printWatchUsage prints usage for the watch command.
func printWatchUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: lexical2html watch <dir> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Reconvert .json documents under dir whenever they change.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (default: next to source)")
	fmt.Fprintln(w, "      --debounce <d>        Wait for writes to settle (default: 300ms)")
	fmt.Fprintln(w)
	printDocumentUsage(w)
	printCommonUsage(w)
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: lexical2html serve [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run the HTTP conversion service.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Routes:")
	fmt.Fprintln(w, "  POST /v1/convert?shape=&title=   Convert the request body")
	fmt.Fprintln(w, "  GET  /v1/styles.css              Stylesheet")
	fmt.Fprintln(w, "  GET  /v1/script.js               Interaction script")
	fmt.Fprintln(w, "  GET  /healthz, /metrics")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Server:")
	fmt.Fprintln(w, "      --addr <host:port>    Listen address (default: :8080)")
	fmt.Fprintln(w, "      --cache-size <n>      Converted results kept in memory (0 = off)")
	fmt.Fprintln(w, "      --read-timeout <d>    Request read timeout (default: 10s)")
	fmt.Fprintln(w)
	printDocumentUsage(w)
	printCommonUsage(w)
}

// printMCPUsage prints usage for the mcp command.
func printMCPUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: lexical2html mcp [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Serve MCP tools on stdin/stdout: convert_lexical, get_stylesheet.")
	fmt.Fprintln(w)
	printDocumentUsage(w)
	printCommonUsage(w)
}

// printCSSUsage prints usage for the css command.
func printCSSUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: lexical2html css [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the stylesheet embedded in style, full and document bundles.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "      --list                List available styles and highlight styles")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: lexical2html doctor [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check that the configured stylesheet and script load, and whether")
	fmt.Fprintln(w, "Chrome is available for --pdf. Exits 1 when conversion would fail.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "      --json                Print the report as JSON")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// runHelp prints help for a specific command and returns the exit code.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "watch":
		printWatchUsage(env.Stdout)
	case "serve":
		printServeUsage(env.Stdout)
	case "mcp":
		printMCPUsage(env.Stdout)
	case "css":
		printCSSUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: lexical2html version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: lexical2html help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
