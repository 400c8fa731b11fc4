package provisioning

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePhase struct {
	name string
	ran  *[]string
	err  error
}

func (p *fakePhase) Name() string { return p.name }

func (p *fakePhase) Provision(_ *Context) error {
	*p.ran = append(*p.ran, p.name)
	return p.err
}

func TestRunPhases_Sequential(t *testing.T) {
	t.Parallel()

	var ran []string
	phases := []Phase{
		&fakePhase{name: "cloud run service", ran: &ran},
		&fakePhase{name: "api gateway", ran: &ran},
	}

	err := RunPhases(testContext(t, nil), phases)
	require.NoError(t, err)
	assert.Equal(t, []string{"cloud run service", "api gateway"}, ran)
}

func TestRunPhases_AbortsOnFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("provisioning failed")
	var ran []string
	phases := []Phase{
		&fakePhase{name: "first", ran: &ran, err: boom},
		&fakePhase{name: "second", ran: &ran},
	}

	err := RunPhases(testContext(t, nil), phases)

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "first phase failed")
	assert.Equal(t, []string{"first"}, ran, "later phases are not run")
}

func TestRunPhases_Empty(t *testing.T) {
	t.Parallel()
	assert.NoError(t, RunPhases(testContext(t, nil), nil))
}
