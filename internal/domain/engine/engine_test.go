package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bondifuzz/api-gateway/internal/domain/lang"
)

func TestEngineFamilies(t *testing.T) {
	assert.True(t, IsAFL(AFL))
	assert.True(t, IsAFL(AFLRust))
	assert.False(t, IsAFL(LibFuzzer))

	assert.True(t, IsLibFuzzer(Jazzer))
	assert.False(t, IsLibFuzzer(AFL))

	assert.False(t, Valid("nonsense"))
}

func TestEngineSupportsLang(t *testing.T) {
	e := Engine{ID: LibFuzzer, Langs: []lang.ID{lang.Cpp, lang.Rust}}

	assert.True(t, e.SupportsLang(lang.Cpp))
	assert.False(t, e.SupportsLang(lang.Go))
}
