package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_InfersKinds(t *testing.T) {
	ds, err := New(
		[]string{"time", "temp", "site", "empty"},
		[][]string{
			{"1", "20.5", "north", ""},
			{"2", "NA", "south", "NaN"},
			{"3", "22", "east", ""},
		},
	)
	require.NoError(t, err)

	assert.Equal(t, 3, ds.Len())
	assert.Equal(t, 4, ds.Width())
	assert.Equal(t, []string{"time", "temp", "site", "empty"}, ds.Columns())
	assert.Equal(t, []string{"time", "temp", "empty"}, ds.NumericColumns())

	temp, ok := ds.Column("temp")
	require.True(t, ok)
	assert.True(t, temp.IsMissing(1))
	assert.Nil(t, temp.Value(1))
	assert.Equal(t, 22.0, temp.Value(2))
	assert.Equal(t, []float64{20.5, 22}, temp.Floats())
	assert.Equal(t, "nan", temp.Display(1))

	site, _ := ds.Column("site")
	assert.Equal(t, Text, site.Kind())
	assert.Equal(t, "north", site.Value(0))
	_, isNum := site.Float(0)
	assert.False(t, isNum)
}

func TestNew_PadsShortRows(t *testing.T) {
	ds, err := New([]string{"a", "b", "c"}, [][]string{{"1", "2"}, {"3"}})
	require.NoError(t, err)

	c, _ := ds.Column("c")
	assert.Equal(t, 2, c.MissingCount())
	assert.Equal(t, []string{"3", "", ""}, ds.Row(1))
}

func TestNew_RejectsWideRows(t *testing.T) {
	_, err := New([]string{"a", "b"}, [][]string{{"1", "2"}, {"1", "2", "3"}})

	var wide *RowWidthError
	require.True(t, errors.As(err, &wide))
	assert.Equal(t, 2, wide.Row)
	assert.Equal(t, 2, wide.Expected)
	assert.Equal(t, 3, wide.Got)
}

func TestNew_NoColumns(t *testing.T) {
	_, err := New(nil, nil)
	assert.ErrorIs(t, err, ErrNoColumns)
}

func TestNew_DuplicateHeaders(t *testing.T) {
	ds, err := New([]string{"v", "v"}, [][]string{{"1", "x"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"v", "v.1"}, ds.Columns())
	assert.Equal(t, []string{"v"}, ds.NumericColumns())
}

func TestSubset_KeepsKinds(t *testing.T) {
	ds, err := New([]string{"k", "n"}, [][]string{{"a", "1"}, {"b", "x"}, {"c", "3"}})
	require.NoError(t, err)
	require.Equal(t, Text, ds.ColumnAt(1).Kind())

	sub := ds.Subset([]int{2, 0})
	assert.Equal(t, 2, sub.Len())
	assert.Equal(t, []string{"c", "3"}, sub.Row(0))
	assert.Equal(t, Text, sub.ColumnAt(1).Kind())

	// Reinfer sees only numeric cells now.
	assert.Equal(t, Numeric, sub.Reinfer().ColumnAt(1).Kind())
}

func TestUniqueCount(t *testing.T) {
	ds, err := New([]string{"n", "s"}, [][]string{{"1", "a"}, {"1.0", "a"}, {"2", "b"}, {"", ""}})
	require.NoError(t, err)

	assert.Equal(t, 2, ds.ColumnAt(0).UniqueCount())
	assert.Equal(t, 2, ds.ColumnAt(1).UniqueCount())
}

func TestWriteCSV(t *testing.T) {
	ds, err := New([]string{"name", "note"}, [][]string{{"a", "has, comma"}, {"b", "NA"}})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, ds.WriteCSV(&buf))
	assert.Equal(t, "name,note\na,\"has, comma\"\nb,\n", buf.String())
}

func TestKind_MarshalText(t *testing.T) {
	b, err := Numeric.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "numeric", string(b))
	assert.Equal(t, "text", Text.String())
}

func TestKind_UnmarshalText(t *testing.T) {
	for _, k := range []Kind{Numeric, Text} {
		var got Kind
		b, err := k.MarshalText()
		require.NoError(t, err)
		require.NoError(t, got.UnmarshalText(b))
		assert.Equal(t, k, got)
	}

	var k Kind
	assert.Error(t, k.UnmarshalText([]byte("float")))
	assert.Error(t, k.UnmarshalText(nil))
}

func TestDescriptors_JSONRoundTrip(t *testing.T) {
	ds, err := New([]string{"n", "s"}, [][]string{{"1", "a"}, {"2", "b"}})
	require.NoError(t, err)

	b, err := json.Marshal(ds.Descriptors())
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"n","kind":"numeric"},{"name":"s","kind":"text"}]`, string(b))

	var got []Descriptor
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, ds.Descriptors(), got)

	assert.Error(t, json.Unmarshal([]byte(`[{"name":"n","kind":"date"}]`), &got))
}

func TestMapText(t *testing.T) {
	ds, err := New([]string{"n", "s"}, [][]string{{"1", " Foo "}, {"2", ""}})
	require.NoError(t, err)

	out := ds.MapText(func(s string) string { return "x" + s })

	s, _ := out.Column("s")
	assert.Equal(t, "x Foo ", s.Raw(0))
	assert.True(t, s.IsMissing(1))
	n, _ := out.Column("n")
	assert.Equal(t, "1", n.Raw(0))

	orig, _ := ds.Column("s")
	assert.Equal(t, " Foo ", orig.Raw(0), "source is not modified")
}
