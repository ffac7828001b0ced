package pkg

import (
	"featsel/pkg/io"

	"github.com/rs/zerolog/log"
)

func printDataErrors(errors []io.DataError) {
	for _, err := range errors {
		log.Error().Msgf("Error parsing data at line %d: %s", err.Line, err.Error)
	}
}
