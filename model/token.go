package model

import "os"

// TokenState describes whether a Hugging Face access token is needed
// before the model can be downloaded.
type TokenState int

const (
	// TokenNotRequired means the model is already installed.
	TokenNotRequired TokenState = iota

	// TokenAvailable means a token was found in the environment.
	TokenAvailable

	// TokenRequired means no model is installed and no token is set.
	// Downloads of gated repositories will fail until one is provided.
	TokenRequired
)

func (s TokenState) String() string {
	switch s {
	case TokenNotRequired:
		return "not required"
	case TokenAvailable:
		return "available"
	case TokenRequired:
		return "required"
	default:
		return "unknown"
	}
}

// CheckToken reports the token situation for the model directory.
func CheckToken(dir string) TokenState {
	if Exists(dir) {
		return TokenNotRequired
	}
	if authToken() != "" {
		return TokenAvailable
	}
	return TokenRequired
}

func authToken() string {
	if tok := os.Getenv("HF_TOKEN"); tok != "" {
		return tok
	}
	return os.Getenv("HUGGING_FACE_HUB_TOKEN")
}
