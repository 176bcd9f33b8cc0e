// Package corpus provides the word and password sets the detector
// consults. A Corpus is built once, at startup or on first use, and is
// immutable afterwards; lookups are plain map reads and safe for
// unrestricted concurrent use.
package corpus

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Corpus is an immutable set of known English words and known passwords.
type Corpus struct {
	words     map[string]struct{}
	passwords map[string]struct{}
}

// IsWord reports whether token is a known English word. Tokens are
// expected lowercase; the lookup is exact.
func (c *Corpus) IsWord(token string) bool {
	_, ok := c.words[token]
	return ok
}

// IsPassword reports whether s exactly matches a known password.
// Matching is case-sensitive: "Password123" and "password123" are
// distinct entries.
func (c *Corpus) IsPassword(s string) bool {
	_, ok := c.passwords[s]
	return ok
}

// WordCount returns the number of known words.
func (c *Corpus) WordCount() int { return len(c.words) }

// PasswordCount returns the number of known passwords.
func (c *Corpus) PasswordCount() int { return len(c.passwords) }

// FromReaders builds a Corpus from newline-delimited word and password
// lists. Word entries are trimmed and lowercased; blank lines and
// comment lines starting with '#' are skipped. Password entries keep
// their case; entries containing inner whitespace are rejected.
// Either reader may be nil to leave that set empty.
func FromReaders(words, passwords io.Reader) (*Corpus, error) {
	c := &Corpus{
		words:     make(map[string]struct{}),
		passwords: make(map[string]struct{}),
	}

	if words != nil {
		if err := scanLines(words, func(line string) error {
			c.words[strings.ToLower(line)] = struct{}{}
			return nil
		}); err != nil {
			return nil, fmt.Errorf("read word list: %w", err)
		}
	}

	if passwords != nil {
		if err := scanLines(passwords, func(line string) error {
			if strings.ContainsAny(line, " \t") {
				return fmt.Errorf("password entry %q contains whitespace", line)
			}
			c.passwords[line] = struct{}{}
			return nil
		}); err != nil {
			return nil, fmt.Errorf("read password list: %w", err)
		}
	}

	return c, nil
}

// scanLines feeds each non-blank, non-comment line to fn.
func scanLines(r io.Reader, fn func(line string) error) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := fn(line); err != nil {
			return err
		}
	}
	return sc.Err()
}
