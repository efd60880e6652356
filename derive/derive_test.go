package derive_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relaywire/amqp10/amqperr"
	"github.com/relaywire/amqp10/derive"
)

type testOpen struct {
	_           derive.Marker `amqp:"descriptor=amqp:open:list,code=0x10"`
	ContainerID string        `amqp:"field,0"`
	HostName    string        `amqp:"field,1,optional"`
	MaxFrame    uint32        `amqp:"field,2,optional"`
}

// unitRecord carries no amqp descriptor marker field at all, the "unit
// record" case §4.6 names: there is nothing to hang a descriptor tag on.
type unitRecord struct {
	Name string
}

// untaggedVariant's second field's tag omits the required "field" literal,
// the "untagged variant" case §4.6 names.
type untaggedVariant struct {
	_    derive.Marker `amqp:"descriptor=test:untagged-variant:list,code=0x60"`
	Name string        `amqp:"0"`
}

// nonASCIIDescriptor's marker tag carries a non-ASCII descriptor symbol.
type nonASCIIDescriptor struct {
	_    derive.Marker `amqp:"descriptor=amqp:ünïcode:list,code=0x61"`
	Name string        `amqp:"field,0"`
}

// directCycle refers to itself, the direct form of the "cyclic
// descriptors" case §4.6 names.
type directCycle struct {
	_    derive.Marker `amqp:"descriptor=test:direct-cycle:list,code=0x62"`
	Next *directCycle  `amqp:"field,0,optional"`
}

// transitiveCycleA/B refer to each other, the transitive form of the
// "cyclic descriptors" case.
type transitiveCycleA struct {
	_    derive.Marker     `amqp:"descriptor=test:transitive-cycle-a:list,code=0x63"`
	Next *transitiveCycleB `amqp:"field,0,optional"`
}

type transitiveCycleB struct {
	_    derive.Marker     `amqp:"descriptor=test:transitive-cycle-b:list,code=0x64"`
	Back *transitiveCycleA `amqp:"field,0,optional"`
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	in := testOpen{ContainerID: "my-app", HostName: "broker.local", MaxFrame: 65536}

	c, err := derive.Marshal(&in)
	require.NoError(t, err)

	var out testOpen
	require.NoError(t, derive.Unmarshal(c, &out))
	assert.Equal(t, in, out)
}

func TestUnmarshalLeavesTrailingFieldsZero(t *testing.T) {
	in := testOpen{ContainerID: "only-one-field"}
	c, err := derive.Marshal(&in)
	require.NoError(t, err)

	// Trim the composite down to just the first field, simulating a peer
	// that omitted every trailing optional field.
	c.Fields = c.Fields[:1]

	var out testOpen
	require.NoError(t, derive.Unmarshal(c, &out))
	assert.Equal(t, "only-one-field", out.ContainerID)
	assert.Equal(t, "", out.HostName)
	assert.Equal(t, uint32(0), out.MaxFrame)
}

func TestDescriptorOf(t *testing.T) {
	desc, err := derive.DescriptorOf(testOpen{})
	require.NoError(t, err)
	assert.False(t, desc.IsSymbol)
	assert.Equal(t, uint64(0x10), desc.Code)
}

func TestMarshalRejectsUnitRecord(t *testing.T) {
	_, err := derive.Marshal(unitRecord{Name: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no amqp descriptor marker field")
}

func TestMarshalRejectsUntaggedVariant(t *testing.T) {
	_, err := derive.Marshal(untaggedVariant{Name: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed field tag")
}

func TestMarshalRejectsNonASCIIDescriptor(t *testing.T) {
	_, err := derive.Marshal(nonASCIIDescriptor{Name: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, amqperr.ErrInvalidField)
}

func TestMarshalRejectsDirectCyclicDescriptor(t *testing.T) {
	// The cycle is in the declared field-type graph, not in any runtime
	// value, so an unpopulated Next still triggers the rejection.
	_, err := derive.Marshal(&directCycle{})
	require.Error(t, err)
	assert.ErrorIs(t, err, amqperr.ErrSpecificationNonCompliant)
}

func TestMarshalRejectsTransitiveCyclicDescriptor(t *testing.T) {
	_, err := derive.Marshal(&transitiveCycleA{})
	require.Error(t, err)
	assert.ErrorIs(t, err, amqperr.ErrSpecificationNonCompliant)
}
