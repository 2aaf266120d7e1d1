package page

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOffset(t *testing.T) {
	require.Equal(t, 0, Request{Page: 0, Size: 20}.Offset())
	require.Equal(t, 60, Request{Page: 3, Size: 20}.Offset())
	require.Equal(t, 0, Request{Page: -1, Size: 20}.Offset())
}

func TestOffsetSaturatesOnHugePages(t *testing.T) {
	req := Request{Page: math.MaxInt / 50, Size: 100}
	require.Equal(t, math.MaxInt, req.Offset())
	require.Empty(t, Slice([]int{1, 2, 3}, req))
}

func TestOrderBy(t *testing.T) {
	cols := Columns{"surname": "e.surname", "dateOfBirth": "e.date_of_birth"}

	require.Equal(t, "ORDER BY e.id ASC", cols.OrderBy(nil, "e.id"))
	require.Equal(t,
		"ORDER BY e.surname DESC, e.date_of_birth ASC, e.id ASC",
		cols.OrderBy([]Order{{Field: "surname", Desc: true}, {Field: "dateOfBirth"}, {Field: "unknown"}}, "e.id"),
	)
}

func TestUnsupported(t *testing.T) {
	cols := Columns{"name": "name"}

	_, bad := cols.Unsupported([]Order{{Field: "name"}})
	require.False(t, bad)

	field, bad := cols.Unsupported([]Order{{Field: "name"}, {Field: "salary"}})
	require.True(t, bad)
	require.Equal(t, "salary", field)
}

func TestSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	require.Equal(t, []int{1, 2}, Slice(items, Request{Page: 0, Size: 2}))
	require.Equal(t, []int{5}, Slice(items, Request{Page: 2, Size: 2}))
	require.Empty(t, Slice(items, Request{Page: 10, Size: 2}))
}
