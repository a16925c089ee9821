package nest

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func sample() Document {
	return Document{
		{Key: "name", Value: Document{
			{Key: "first", Value: "Jeremy"},
			{Key: "last", Value: "Bankes"},
		}},
		{Key: "tags", Value: Array{"a", "b"}},
		{Key: "count", Value: 1},
		{Key: "nothing", Value: nil},
	}
}

func TestHas(t *testing.T) {
	t.Run("present paths", func(t *testing.T) {
		d := sample()
		require.True(t, Has(d, "name"))
		require.True(t, Has(d, "name.first"))
		require.True(t, Has(d, "tags.0"))
	})

	t.Run("absent paths", func(t *testing.T) {
		d := sample()
		require.False(t, Has(d, "name.middle"))
		require.False(t, Has(d, "tags.5"))
		require.False(t, Has(d, "missing"))
	})

	t.Run("stored nil is present", func(t *testing.T) {
		d := sample()
		require.True(t, Has(d, "nothing"))
	})

	t.Run("scalar mid-path is a miss", func(t *testing.T) {
		d := sample()
		require.False(t, Has(d, "count.anything"))
	})

	t.Run("bracket syntax is not part of this grammar", func(t *testing.T) {
		d := sample()
		require.False(t, Has(d, "tags[0]"))
		require.True(t, Has(d, "tags.0"))
	})

	t.Run("pointer root", func(t *testing.T) {
		d := sample()
		require.True(t, Has(&d, "name.first"))
	})

	t.Run("empty path is present for any source", func(t *testing.T) {
		d := sample()
		require.True(t, Has(d, ""))
	})
}

func TestGet(t *testing.T) {
	t.Run("returns the value placed there", func(t *testing.T) {
		d := sample()
		require.Equal(t, "Jeremy", Get(d, "name.first"))
		require.Equal(t, "b", Get(d, "tags.1"))
	})

	t.Run("absent path returns nil", func(t *testing.T) {
		d := sample()
		require.Nil(t, Get(d, "name.middle"))
	})

	t.Run("absent path returns fallback", func(t *testing.T) {
		d := sample()
		require.Equal(t, "none", GetOr(d, "name.middle", "none"))
	})

	t.Run("scalar mid-path returns fallback", func(t *testing.T) {
		d := Document{{Key: "a", Value: 1}}
		require.Equal(t, "fallback", GetOr(d, "a.b.c", "fallback"))
	})

	t.Run("stored nil wins over fallback", func(t *testing.T) {
		d := sample()
		require.Nil(t, GetOr(d, "nothing", "fallback"))
	})

	t.Run("pre-split path is not consumed", func(t *testing.T) {
		d := sample()
		p := Path{"name", "first"}
		require.Equal(t, "Jeremy", GetPath(d, p))
		require.Equal(t, Path{"name", "first"}, p)
		require.Equal(t, "Jeremy", GetPath(d, p))
	})
}

func TestSet(t *testing.T) {
	t.Run("set then get returns the just-set value", func(t *testing.T) {
		d := Document{}
		require.NoError(t, Set(&d, "a.b.c", 5))
		require.Equal(t, 5, Get(d, "a.b.c"))
	})

	t.Run("index segment creates an array intermediate", func(t *testing.T) {
		d := Document{}
		require.NoError(t, Set(&d, "a.b.0.c", 5))

		want := Document{{Key: "a", Value: Document{{Key: "b", Value: Array{
			Document{{Key: "c", Value: 5}},
		}}}}}
		require.Equal(t, want, d)
	})

	t.Run("bracket and dot forms address the same location", func(t *testing.T) {
		dotted, bracketed := Document{}, Document{}
		require.NoError(t, Set(&dotted, "a.0.b", 1))
		require.NoError(t, Set(&bracketed, "a[0].b", 1))
		require.Equal(t, dotted, bracketed)
	})

	t.Run("overwrites existing values of any type", func(t *testing.T) {
		d := sample()
		require.NoError(t, Set(&d, "name", "replaced"))
		require.Equal(t, "replaced", Get(d, "name"))
	})

	t.Run("overwrites a scalar mid-path with a container", func(t *testing.T) {
		d := Document{{Key: "a", Value: 1}}
		require.NoError(t, Set(&d, "a.b", 2))
		require.Equal(t, 2, Get(d, "a.b"))
	})

	t.Run("grows arrays with nil holes", func(t *testing.T) {
		d := Document{{Key: "a", Value: Array{"x"}}}
		require.NoError(t, Set(&d, "a[3]", "y"))
		require.Equal(t, Array{"x", nil, nil, "y"}, Get(d, "a"))
	})

	t.Run("preserves sibling order", func(t *testing.T) {
		d := sample()
		require.NoError(t, Set(&d, "name.middle", "Q"))
		name := Get(d, "name").(Document)
		require.Equal(t, []string{"first", "last", "middle"}, name.Keys())
	})

	t.Run("array root", func(t *testing.T) {
		a := Array{}
		require.NoError(t, Set(&a, "[0].name", "x"))
		require.Equal(t, "x", Get(a, "0.name"))
	})

	t.Run("empty path is invalid", func(t *testing.T) {
		d := Document{}
		err := Set(&d, "", 1)
		require.ErrorIs(t, err, ErrInvalidPath)
	})

	t.Run("pre-split path is not consumed", func(t *testing.T) {
		d := Document{}
		p := Path{"a", "b"}
		require.NoError(t, SetPath(&d, p, 1))
		require.Equal(t, Path{"a", "b"}, p)
		require.NoError(t, SetPath(&d, p, 2))
		require.Equal(t, 2, Get(d, "a.b"))
	})
}

func TestDelete(t *testing.T) {
	t.Run("present leaf is removed and returned", func(t *testing.T) {
		d := sample()
		removed, err := Delete(&d, "name.first")
		require.NoError(t, err)
		require.Equal(t, "Jeremy", removed)
		require.False(t, Has(d, "name.first"))
		require.True(t, Has(d, "name.last"))
	})

	t.Run("absent path returns nil and leaves the structure unchanged", func(t *testing.T) {
		d := sample()
		before := sample()
		removed, err := Delete(&d, "name.middle")
		require.NoError(t, err)
		require.Nil(t, removed)
		require.Equal(t, before, d)
	})

	t.Run("array element is spliced out", func(t *testing.T) {
		d := sample()
		removed, err := Delete(&d, "tags[0]")
		require.NoError(t, err)
		require.Equal(t, "a", removed)
		require.Equal(t, Array{"b"}, Get(d, "tags"))
	})

	t.Run("scalar mid-path is a miss", func(t *testing.T) {
		d := sample()
		removed, err := Delete(&d, "count.deep")
		require.NoError(t, err)
		require.Nil(t, removed)
	})

	t.Run("empty path is invalid", func(t *testing.T) {
		d := sample()
		_, err := Delete(&d, "")
		require.ErrorIs(t, err, ErrInvalidPath)
	})
}

func TestEnsure(t *testing.T) {
	t.Run("absent path is initialized with the fallback", func(t *testing.T) {
		d := Document{}
		v, err := Ensure(&d, "settings.volume", 50)
		require.NoError(t, err)
		require.Equal(t, 50, v)
		require.Equal(t, 50, Get(d, "settings.volume"))
	})

	t.Run("present path keeps its prior value", func(t *testing.T) {
		d := Document{{Key: "settings", Value: Document{{Key: "volume", Value: 80}}}}
		v, err := Ensure(&d, "settings.volume", 50)
		require.NoError(t, err)
		require.Equal(t, 80, v)
	})

	t.Run("idempotent", func(t *testing.T) {
		d := Document{}
		first, err := Ensure(&d, "a.b", "x")
		require.NoError(t, err)
		after := Document{}
		require.NoError(t, Set(&after, "a.b", "x"))
		require.Equal(t, after, d)

		second, err := Ensure(&d, "a.b", "x")
		require.NoError(t, err)
		require.Equal(t, first, second)
		require.Equal(t, after, d)
	})

	t.Run("present nil is not reinitialized", func(t *testing.T) {
		d := Document{{Key: "nothing", Value: nil}}
		v, err := Ensure(&d, "nothing", "fallback")
		require.NoError(t, err)
		require.Nil(t, v)
	})
}
