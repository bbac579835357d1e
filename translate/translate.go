// Package translate renders diagnostic strings through the user's locale.
package translate

import (
	"log"
	"sync"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/message"
)

const DEFAULT_LOCALE = "en-US"

var (
	printer     *message.Printer
	printerOnce sync.Once
)

func setup() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("msp430: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{DEFAULT_LOCALE}
	}

	printer = message.NewPrinter(message.MatchLanguage(locales...))
}

// Printer returns the locale aware message printer.
func Printer() *message.Printer {
	printerOnce.Do(setup)
	return printer
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return Printer().Sprintf(key, args...)
}
