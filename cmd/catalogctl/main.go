// Command catalogctl prepares and inspects course catalog files.
//
// Usage:
//
//	catalogctl normalize --in raw.json --out UMASS_BOSTON.json --university UMASS_BOSTON
//	catalogctl filter --in UMASS_BOSTON.json --prefix CS --exclude CSP --out cs.json
//	catalogctl lookup --dir data/catalogs --university UMASS_BOSTON --prefix CS
package main

import (
	"os"

	"github.com/yigit/uniadvisor/internal/pkg/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger.Error().Err(err).Msg("catalogctl failed")
		os.Exit(1)
	}
}
