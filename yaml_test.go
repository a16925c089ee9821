package nest

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnmarshalYAML(t *testing.T) {
	t.Run("mappings decode as ordered documents", func(t *testing.T) {
		v, err := UnmarshalYAML([]byte("z: 1\na: 2\nm: 3\n"))
		require.NoError(t, err)
		d, ok := v.(Document)
		require.True(t, ok)
		require.Equal(t, []string{"z", "a", "m"}, d.Keys())
	})

	t.Run("nested composites", func(t *testing.T) {
		in := []byte("name:\n  first: Jeremy\n  last: Bankes\ntags:\n  - a\n  - b\n")
		v, err := UnmarshalYAML(in)
		require.NoError(t, err)
		require.Equal(t, Document{
			{Key: "name", Value: Document{
				{Key: "first", Value: "Jeremy"},
				{Key: "last", Value: "Bankes"},
			}},
			{Key: "tags", Value: Array{"a", "b"}},
		}, v)
	})

	t.Run("decoded structures are addressable", func(t *testing.T) {
		v, err := UnmarshalYAML([]byte("server:\n  host: localhost\n  port: 8080\n"))
		require.NoError(t, err)
		require.Equal(t, "localhost", Get(v, "server.host"))
	})

	t.Run("malformed input fails", func(t *testing.T) {
		_, err := UnmarshalYAML([]byte("a: [unclosed"))
		require.Error(t, err)
	})
}

func TestMarshalYAML(t *testing.T) {
	t.Run("key order survives", func(t *testing.T) {
		d := Document{
			{Key: "z", Value: 1},
			{Key: "a", Value: Document{{Key: "b", Value: true}}},
		}
		out, err := MarshalYAML(d)
		require.NoError(t, err)
		require.Equal(t, "z: 1\na:\n  b: true\n", string(out))
	})

	t.Run("round trip", func(t *testing.T) {
		d := Document{
			{Key: "name", Value: Document{{Key: "first", Value: "Jeremy"}}},
			{Key: "tags", Value: Array{"a", "b"}},
		}
		out, err := MarshalYAML(d)
		require.NoError(t, err)
		back, err := UnmarshalYAML(out)
		require.NoError(t, err)
		require.Equal(t, d, back)
	})
}
