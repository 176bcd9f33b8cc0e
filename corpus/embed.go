package corpus

import (
	_ "embed"
	"strings"
	"sync"
)

// Embedded default lists. The word list is a compact common-English set
// covering the vocabulary of everyday prose plus frequent abbreviations;
// callers with larger dictionaries substitute their own via FromReaders.
var (
	//go:embed data/words.txt
	wordData string

	//go:embed data/passwords.txt
	passwordData string
)

// Default returns the process-wide Corpus built from the embedded lists.
// The build runs once, on first call.
var Default = sync.OnceValue(func() *Corpus {
	c, err := FromReaders(strings.NewReader(wordData), strings.NewReader(passwordData))
	if err != nil {
		// The embedded lists are validated by tests; failing here means
		// the binary itself is corrupt.
		panic("corpus: embedded data: " + err.Error())
	}
	return c
})
