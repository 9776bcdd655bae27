package resilience

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindUpstream, KindOf(Upstream("search", eris.New("quota"))))
	assert.Equal(t, KindMalformed, KindOf(Malformed("research.profile", eris.New("bad json"))))
	assert.Equal(t, KindFatal, KindOf(Fatal("store", eris.New("constraint"))))
	assert.Equal(t, KindFatal, KindOf(eris.New("unclassified")))
}

func TestRecoverable(t *testing.T) {
	assert.True(t, Recoverable(Upstream("search", eris.New("down"))))
	assert.True(t, Recoverable(Malformed("extract", eris.New("bad"))))
	assert.False(t, Recoverable(Fatal("store", eris.New("broken"))))
	assert.False(t, Recoverable(eris.New("unclassified")))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "upstream", KindUpstream.String())
	assert.Equal(t, "malformed", KindMalformed.String())
	assert.Equal(t, "fatal", KindFatal.String())
}

func TestStageError_MessageAndUnwrap(t *testing.T) {
	cause := eris.New("boom")
	err := Upstream("discovery.search", cause)

	assert.Equal(t, "discovery.search: boom", err.Error())
	assert.ErrorIs(t, err, cause)
}
