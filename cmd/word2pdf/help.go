package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: word2pdf <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  serve      Run the upload page and conversion API")
	fmt.Fprintln(w, "  convert    Convert Word documents into a ZIP of PDFs")
	fmt.Fprintln(w, "  upload     Send Word documents to a running server")
	fmt.Fprintln(w, "  doctor     Check system configuration")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'word2pdf help <command>' for details on a specific command.")
}

func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
}

func printConversionUsage(w io.Writer) {
	fmt.Fprintln(w, "Conversion:")
	fmt.Fprintln(w, "  -e, --engine <s>          Engine: text (default), libreoffice")
	fmt.Fprintln(w, "      --font-size <n>       Font size in points (4-72, default 11)")
	fmt.Fprintln(w, "      --font <s>            Core font (default Helvetica)")
	fmt.Fprintln(w, "      --margin <f>          Page margin in points (0-200, default 50)")
	fmt.Fprintln(w, "      --compression <n>     Archive level (0 = store, 1-9, default 6)")
	fmt.Fprintln(w, "      --libreoffice <path>  LibreOffice binary (default: soffice on PATH)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Per-file LibreOffice timeout (default 2m)")
}

func printLimitUsage(w io.Writer) {
	fmt.Fprintln(w, "Limits:")
	fmt.Fprintln(w, "      --max-files <n>       Files per batch (default 100)")
	fmt.Fprintln(w, "      --max-file-size <s>   Size per file (default 500MiB)")
	fmt.Fprintln(w, "      --max-total-size <s>  Size per batch (default 500MiB)")
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: word2pdf serve [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Serve the upload page on / and the conversion API on POST /api/convert.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Server:")
	fmt.Fprintln(w, "  -a, --addr <addr>         Listen address (default :8080)")
	fmt.Fprintln(w, "      --max-concurrent <n>  Batches converting at once (0 = auto)")
	fmt.Fprintln(w, "      --request-timeout <d> Hard ceiling per request (default 10m)")
	fmt.Fprintln(w, "      --debug               Include stack traces in 500 responses")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory with pages/index.html, styles/default.css")
	fmt.Fprintln(w, "      --log-level <s>       debug, info, warn, error")
	fmt.Fprintln(w, "      --log-format <s>      text, json")
	fmt.Fprintln(w)
	printLimitUsage(w)
	fmt.Fprintln(w)
	printConversionUsage(w)
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: word2pdf convert <file|dir>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert Word documents locally into one ZIP of PDFs.")
	fmt.Fprintln(w, "Directories contribute every .doc and .docx file below them.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Archive to write (default converted-pdfs.zip)")
	fmt.Fprintln(w)
	printConversionUsage(w)
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printUploadUsage prints usage for the upload command.
func printUploadUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: word2pdf upload <file|dir>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Send Word documents to a word2pdf server as one batch.")
	fmt.Fprintln(w, "The selection is checked against the limits before anything is sent.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Upload:")
	fmt.Fprintln(w, "  -s, --server <url>        Server URL (default http://localhost:8080)")
	fmt.Fprintln(w, "  -o, --output <path>       Archive to write (default converted-pdfs.zip)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Request timeout (default 15m)")
	fmt.Fprintln(w)
	printLimitUsage(w)
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "serve":
		printServeUsage(env.Stdout)
	case "convert":
		printConvertUsage(env.Stdout)
	case "upload":
		printUploadUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: word2pdf version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: word2pdf help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}

// printDoctorUsage prints doctor command help.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: word2pdf doctor [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check LibreOffice, environment and temp directory.")
	fmt.Fprintln(w, "Exits 1 when a required component is missing.")
}
