package corpus

import (
	"strings"
	"testing"
)

func TestFromReaders(t *testing.T) {
	words := strings.NewReader("# comment\nHello\n\n  World  \ncat\n")
	passwords := strings.NewReader("letmein\nPassword1\n")

	c, err := FromReaders(words, passwords)
	if err != nil {
		t.Fatalf("FromReaders: %v", err)
	}

	if got, want := c.WordCount(), 3; got != want {
		t.Errorf("WordCount = %d, want %d", got, want)
	}
	if !c.IsWord("hello") {
		t.Error("expected lowercased entry 'hello' to be a word")
	}
	if c.IsWord("Hello") {
		t.Error("lookup is exact; 'Hello' should not match")
	}
	if !c.IsWord("world") || !c.IsWord("cat") {
		t.Error("expected 'world' and 'cat' to be words")
	}
	if got, want := c.PasswordCount(), 2; got != want {
		t.Errorf("PasswordCount = %d, want %d", got, want)
	}
}

func TestFromReadersNilReaders(t *testing.T) {
	c, err := FromReaders(nil, nil)
	if err != nil {
		t.Fatalf("FromReaders(nil, nil): %v", err)
	}
	if c.WordCount() != 0 || c.PasswordCount() != 0 {
		t.Errorf("expected empty corpus, got %d words, %d passwords",
			c.WordCount(), c.PasswordCount())
	}
	if c.IsWord("anything") {
		t.Error("empty corpus recognized a word")
	}
}

func TestFromReadersRejectsWhitespacePassword(t *testing.T) {
	_, err := FromReaders(nil, strings.NewReader("ok\nbad entry\n"))
	if err == nil {
		t.Fatal("expected error for password entry with whitespace")
	}
	if !strings.Contains(err.Error(), "bad entry") {
		t.Errorf("error should name the offending entry, got: %v", err)
	}
}

func TestIsPasswordCaseSensitive(t *testing.T) {
	c, err := FromReaders(nil, strings.NewReader("Password1\n"))
	if err != nil {
		t.Fatalf("FromReaders: %v", err)
	}
	if !c.IsPassword("Password1") {
		t.Error("exact match should be recognized")
	}
	if c.IsPassword("password1") {
		t.Error("password matching must be case-sensitive")
	}
}

func TestDefaultEmbedded(t *testing.T) {
	c := Default()

	if c.WordCount() < 2000 {
		t.Errorf("embedded word list too small: %d entries", c.WordCount())
	}
	if c.PasswordCount() < 200 {
		t.Errorf("embedded password list too small: %d entries", c.PasswordCount())
	}

	for _, w := range []string{"the", "quick", "brown", "fox", "jumps", "over", "lazy", "dog", "nasa", "fbi", "cia", "a", "i"} {
		if !c.IsWord(w) {
			t.Errorf("embedded corpus missing word %q", w)
		}
	}
	for _, w := range []string{"xqzzt", "asdfgh", "vwpq"} {
		if c.IsWord(w) {
			t.Errorf("embedded corpus should not contain %q as a word", w)
		}
	}

	if !c.IsPassword("123456") || !c.IsPassword("qwerty") || !c.IsPassword("asdfgh") {
		t.Error("embedded password list missing expected entries")
	}

	if Default() != c {
		t.Error("Default must return the same corpus on every call")
	}
}
