// Command dealcalc runs one deal through the engine from the command line.
// The request document is the same JSON the API accepts.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"finalis_engine/pkg/core/engine"
)

func main() {
	input := flag.String("input", "", "Path to request JSON (default: stdin)")
	compact := flag.Bool("compact", false, "Emit compact JSON instead of indented")
	flag.Parse()

	data, err := readInput(*input)
	if err != nil {
		fmt.Printf("Error reading input: %v\n", err)
		os.Exit(1)
	}

	var req engine.DealInput
	if err := json.Unmarshal(data, &req); err != nil {
		fmt.Printf("Error unmarshaling request: %v\n", err)
		os.Exit(1)
	}

	result, err := engine.NewProcessor().Process(req)
	if err != nil {
		if engine.IsValidationError(err) {
			fmt.Printf("Validation error: %v\n", err)
		} else {
			fmt.Printf("Processing error: %v\n", err)
		}
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	if !*compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(result); err != nil {
		fmt.Printf("Error encoding result: %v\n", err)
		os.Exit(1)
	}
}

func readInput(path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
