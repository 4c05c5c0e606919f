package consumer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCrashLink(t *testing.T) {
	uc := &UseCase{PublicSelfURL: "https://gateway.example.com"}

	assert.Equal(t,
		"https://gateway.example.com/fuzzers/fz1/revisions/rev1/crashes/c1",
		uc.crashLink("fz1", "rev1", "c1"),
	)

	unset := &UseCase{}
	assert.Equal(t, "", unset.crashLink("fz1", "rev1", "c1"))
}
