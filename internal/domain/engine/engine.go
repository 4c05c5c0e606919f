// Package engine holds the closed set of fuzzing engines and the
// engine-family discrimination (afl vs libfuzzer) used to validate
// resource usage and image compatibility.
package engine

import "github.com/bondifuzz/api-gateway/internal/domain/lang"

// ID is a closed enum of supported fuzzing engines; fail closed on unknown
// values rather than dispatching dynamically.
type ID string

const (
	AFL                ID = "afl"
	AFLRust            ID = "afl.rs"
	SharpFuzzAFL       ID = "sharpfuzz-afl"
	LibFuzzer          ID = "libfuzzer"
	Jazzer             ID = "jazzer"
	Atheris            ID = "atheris"
	CargoFuzz          ID = "cargo-fuzz"
	GoFuzzLibFuzzer    ID = "go-fuzz-libfuzzer"
	SharpFuzzLibFuzzer ID = "sharpfuzz-libfuzzer"
)

var aflFamily = map[ID]bool{
	AFL:          true,
	AFLRust:      true,
	SharpFuzzAFL: true,
}

var libFuzzerFamily = map[ID]bool{
	LibFuzzer:          true,
	Jazzer:             true,
	Atheris:            true,
	CargoFuzz:          true,
	GoFuzzLibFuzzer:    true,
	SharpFuzzLibFuzzer: true,
}

// IsAFL reports whether id belongs to the AFL engine family.
func IsAFL(id ID) bool { return aflFamily[id] }

// IsLibFuzzer reports whether id belongs to the libFuzzer engine family.
func IsLibFuzzer(id ID) bool { return libFuzzerFamily[id] }

// Valid reports whether id is a known engine, of either family.
func Valid(id ID) bool { return IsAFL(id) || IsLibFuzzer(id) }

// Engine is the admin-managed catalog entry for an engine, naming the
// languages it accepts.
type Engine struct {
	ID          ID        `bson:"_id" json:"id"`
	DisplayName string    `bson:"display_name" json:"display_name"`
	Langs       []lang.ID `bson:"langs" json:"langs"`
}

// SupportsLang reports whether l is in e's accepted language list.
func (e Engine) SupportsLang(l lang.ID) bool {
	for _, accepted := range e.Langs {
		if accepted == l {
			return true
		}
	}

	return false
}

// CreateInput is the request payload for registering an engine.
type CreateInput struct {
	ID          ID        `json:"id" validate:"required"`
	DisplayName string    `json:"display_name" validate:"required,max=100"`
	Langs       []lang.ID `json:"langs"`
}
