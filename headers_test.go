package ocrtable

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestResolveHeaders_CallerOrder(t *testing.T) {
	headers, err := ResolveHeaders(samplePage(), []string{"金额", "项目"})
	require.NoError(t, err)

	require.Equal(t, []string{"金额", "项目"}, headers.Labels())
	require.Equal(t, 5, headers[0].Index)
	require.Equal(t, 2, headers[1].Index)
	require.Equal(t, 65.0, headers[0].Props.CenterX)
}

func TestResolveHeaders_FirstMatchWins(t *testing.T) {
	detections := []Detection{
		det("Qty", 0, 0, 10, 10),
		det("Qty", 50, 0, 60, 10),
	}

	headers, err := ResolveHeaders(detections, []string{"Qty"})
	require.NoError(t, err)
	require.Equal(t, 0, headers[0].Index)
}

func TestResolveHeaders_RepeatedLabelReusesDetection(t *testing.T) {
	detections := []Detection{
		det("Name", 0, 0, 10, 10),
		det("Price", 20, 0, 30, 10),
	}

	headers, err := ResolveHeaders(detections, []string{"Name", "Price", "Name"})
	require.NoError(t, err)
	require.Len(t, headers, 3)
	require.Equal(t, headers[0].Index, headers[2].Index)
	require.Equal(t, []int{0, 1}, headers.Indices())
}

func TestResolveHeaders_Missing(t *testing.T) {
	_, err := ResolveHeaders(samplePage(), []string{"项目", "备注"})
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrHeaderNotFound))
	require.Contains(t, err.Error(), "备注")
}

func TestResolveHeaders_ExactMatchOnly(t *testing.T) {
	detections := []Detection{det(" 项目", 0, 0, 10, 10)}

	_, err := ResolveHeaders(detections, []string{"项目"})
	require.True(t, errors.Is(err, ErrHeaderNotFound))
}

func TestResolveHeaders_MissingInput(t *testing.T) {
	_, err := ResolveHeaders(nil, sampleHeaders)
	require.Equal(t, ErrMissingInput, err)

	_, err = ResolveHeaders(samplePage(), nil)
	require.Equal(t, ErrMissingInput, err)
}

func TestHeaderSet_Band(t *testing.T) {
	detections := []Detection{
		det("A", 0, 2, 10, 10),
		det("B", 20, 0, 30, 14),
		det("C", 40, 1, 50, 9),
	}
	headers, err := ResolveHeaders(detections, []string{"A", "B", "C"})
	require.NoError(t, err)

	require.Equal(t, 0.0, headers.Top())
	require.Equal(t, 14.0, headers.Bottom())
	require.Equal(t, 8.0, headers.MedianHeight())
	require.True(t, headers.Contains(1))
	require.False(t, headers.Contains(3))
}

func TestHeaderSet_SortedByPosition(t *testing.T) {
	headers, err := ResolveHeaders(samplePage(), []string{"金额", "项目", "单价", "数量"})
	require.NoError(t, err)

	sorted := headers.SortedByPosition()
	require.Equal(t, []string{"项目", "数量", "单价", "金额"}, sorted.Labels())
	require.Equal(t, []string{"金额", "项目", "单价", "数量"}, headers.Labels(), "input set must be untouched")
}
