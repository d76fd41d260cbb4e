package main

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"

	"github.com/ethereum/go-ethereum/log"
	"github.com/spf13/cobra"

	"github.com/zkonic/solyul/pkg/emit"
	"github.com/zkonic/solyul/pkg/evm/assembly"
	"github.com/zkonic/solyul/pkg/evm/etherealir"
	"github.com/zkonic/solyul/pkg/sink"
	"github.com/zkonic/solyul/pkg/solc/version"
	"github.com/zkonic/solyul/pkg/yul/parser"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func init() {
	if Version == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if info.Main.Version != "" && info.Main.Version != "(devel)" {
				Version = info.Main.Version
			}
			for _, setting := range info.Settings {
				switch setting.Key {
				case "vcs.revision":
					if len(setting.Value) >= 7 {
						GitCommit = setting.Value[:7]
					}
				case "vcs.time":
					BuildTime = setting.Value
				}
			}
		}
	}
}

var (
	outputFile  string
	solcVersion string
	dumpFlags   string
	evmMode     bool
)

func main() {
	glogHandler := log.NewGlogHandler(log.NewTerminalHandler(os.Stderr, false))
	glogHandler.Verbosity(log.LevelInfo)
	log.SetDefault(log.NewLogger(glogHandler))

	rootCmd := &cobra.Command{
		Use:   "solyulc",
		Short: "solyulc: Yul and EVM assembly frontend",
		Long: `solyulc lowers optimized Yul IR or legacy EVM stack assembly into
the structured control-flow "Ethereal IR" an external code generator
consumes. It never emits machine code itself; --dump prints the
intermediate representation a Sink implementation would otherwise
drive silently.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
	}

	lowerCmd := &cobra.Command{
		Use:   "lower [file]",
		Short: "Lower a Yul object or EVM assembly segment",
		Long: `Lower a Yul object (default) or, with --evm, a single EVM assembly
code segment read as JSON, and print the resulting sink trace.
If no file is specified or '-' is given, reads from stdin.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runLower,
	}
	lowerCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	lowerCmd.Flags().StringVar(&solcVersion, "solc-version", "0.8.20", "solc version to gate instruction arity and push variants")
	lowerCmd.Flags().StringVar(&dumpFlags, "dump", "", "comma-separated dump targets: yul,ethir")
	lowerCmd.Flags().BoolVar(&evmMode, "evm", false, "treat the input as EVM legacy assembly rather than Yul")

	versionCmd := &cobra.Command{
		Use:   "version-detect [file]",
		Short: "Detect Solidity version from pragma",
		Long:  "Detect the Solidity version constraint from a file's pragma directive.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runVersionDetect,
	}

	rootCmd.AddCommand(lowerCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runLower(cmd *cobra.Command, args []string) error {
	input, err := readInput(args)
	if err != nil {
		return err
	}

	v, err := version.Parse(solcVersion)
	if err != nil {
		return fmt.Errorf("invalid --solc-version: %w", err)
	}

	dumps := make(map[string]bool)
	for _, d := range strings.Split(dumpFlags, ",") {
		if d = strings.TrimSpace(d); d != "" {
			dumps[d] = true
		}
	}

	recorder := sink.NewRecorder()

	if evmMode {
		asm, err := assembly.Parse([]byte(input))
		if err != nil {
			return fmt.Errorf("parsing assembly: %w", err)
		}
		flat := etherealir.Segment(asm.Code)
		fn, err := etherealir.Build(v, etherealir.Deploy, flat)
		if err != nil {
			return fmt.Errorf("building ethereal IR: %w", err)
		}
		if dumps["ethir"] {
			fmt.Fprintln(os.Stderr, fn.String())
		}
		if err := emit.NewEthIREmitter(recorder).Emit(fn, "main"); err != nil {
			return fmt.Errorf("emitting: %w", err)
		}
	} else {
		p := parser.New(input, parser.Options{})
		obj, err := p.ParseObject()
		if err != nil {
			return fmt.Errorf("parsing Yul object: %w", err)
		}
		if dumps["yul"] {
			fmt.Fprintf(os.Stderr, "object %s\n", obj.Name)
		}
		if err := emit.NewYulEmitter(recorder).EmitObject(obj); err != nil {
			return fmt.Errorf("emitting: %w", err)
		}
	}

	return writeOutput([]byte(strings.Join(recorder.Instructions, "\n") + "\n"))
}

func runVersionDetect(cmd *cobra.Command, args []string) error {
	input, err := readInput(args)
	if err != nil {
		return err
	}

	detected, err := version.Detect(input)
	if err != nil {
		return fmt.Errorf("version detection error: %w", err)
	}

	fmt.Printf("Pragma: %s\n", detected.Raw)
	fmt.Printf("Version: %s\n", detected.Version)
	if detected.Constraint != "" {
		fmt.Printf("Constraint: %s\n", detected.Constraint)
	}
	return nil
}

func readInput(args []string) (string, error) {
	var reader io.Reader

	if len(args) == 0 || args[0] == "-" {
		reader = os.Stdin
	} else {
		file, err := os.Open(args[0])
		if err != nil {
			return "", fmt.Errorf("cannot open file: %w", err)
		}
		defer file.Close()
		reader = file
	}

	content, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("cannot read input: %w", err)
	}
	return string(content), nil
}

func writeOutput(data []byte) error {
	var writer io.Writer

	if outputFile == "" {
		writer = os.Stdout
	} else {
		file, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("cannot create output file: %w", err)
		}
		defer file.Close()
		writer = file
	}

	_, err := writer.Write(data)
	return err
}
