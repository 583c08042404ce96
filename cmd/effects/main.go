package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"mhalvorsen/dialog/internal/bindings"
	"mhalvorsen/dialog/internal/effects"
	"mhalvorsen/dialog/internal/values"
)

func main() {
	// Check that an effect string is provided as an argument
	if len(os.Args) < 2 {
		log.Error().Msg("Usage: effects <effect-string> [var=value ...]")
		return
	}

	// Parse the effect string
	effect, err := effects.Parse(os.Args[1])
	if err != nil {
		log.Error().Err(err).Msg("Error parsing effect")
		return
	}

	// Build the grounding binding from the remaining var=value arguments
	binding := bindings.New()
	for _, pair := range os.Args[2:] {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			log.Error().Str("pair", pair).Msg("Bindings must be given as var=value")
			return
		}
		binding.AddPair(parts[0], values.Create(parts[1]))
	}

	// Ground the effect and report the per-variable resolution
	grounded := effect.Ground(binding)
	fmt.Println("Effect:", grounded)
	for variable := range grounded.OutputVariables() {
		fmt.Printf("  %s -> %s (add=%v)\n", variable, grounded.GetValues(variable), grounded.IsAdd(variable))
	}
	fmt.Println("Condition:", grounded.Condition())

	log.Info().Msg("Effect inspection completed successfully.")
}
