package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNodeGroupValid(t *testing.T) {
	assert.True(t, NodeGroup{Kind: KindCloud, Cloud: &CloudGroup{}}.Valid())
	assert.True(t, NodeGroup{Kind: KindLocal, Local: &LocalGroup{}}.Valid())
	assert.False(t, NodeGroup{Kind: KindCloud, Local: &LocalGroup{}}.Valid())
	assert.False(t, NodeGroup{Kind: KindCloud}.Valid())
}

func TestFitsRevision(t *testing.T) {
	p := Pool{Resources: Resources{FuzzerMaxCPU: 2000, FuzzerMaxRAM: 2000, FuzzerMaxTmpfsSize: 500}}

	assert.True(t, p.FitsRevision(1000, 1000, 200))
	assert.False(t, p.FitsRevision(3000, 1000, 200))
	assert.False(t, p.FitsRevision(1000, 1900, 200))
}
