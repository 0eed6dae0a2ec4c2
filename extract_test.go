package ocrtable

import (
	"sort"
	"testing"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

var sampleTable = []map[string]string{
	{"项目": "A", "数量": "1", "单价": "100", "金额": "100"},
	{"项目": "多行", "数量": "2", "单价": "50", "金额": "100"},
}

func TestExtractTable_Sample(t *testing.T) {
	table := ExtractTable(samplePage(), sampleHeaders, quietOption())

	require.Equal(t, sampleTable, rowValues(table))
	for _, row := range table {
		require.Equal(t, sampleHeaders, row.Labels)
	}
}

func TestExtractDocument_Sample(t *testing.T) {
	doc := ExtractDocument(samplePage(), sampleHeaders, quietOption())

	require.Equal(t, sampleTable, rowValues(doc.Table))
	require.Equal(t, "序号:1\n日期:2025-01-01", doc.Before)
	require.Equal(t, "总计:200", doc.After)

	require.Equal(t, []int{2, 3, 4, 5}, doc.Partition.Header)
	require.Equal(t, []int{6, 7, 8, 9, 10, 12, 13, 14, 11}, doc.Partition.Table)
	require.Equal(t, []int{15}, doc.Partition.After)
	require.Equal(t, []int{0, 1}, doc.Partition.Before)
	require.Empty(t, doc.Partition.Unplaced)
}

func TestExtract_MissingHeaderFailsClosed(t *testing.T) {
	headers := []string{"项目", "数量", "单价", "备注"}

	logger, hook := quietLogger()
	require.Nil(t, ExtractTable(samplePage(), headers, WithLogger(logger)))
	require.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)

	doc := ExtractDocument(samplePage(), headers, WithLogger(logger))
	require.Equal(t, Document{}, doc)

	_, err := NewExtractor(Config{Logger: logger}).TryExtractTable(samplePage(), headers)
	require.True(t, errors.Is(err, ErrHeaderNotFound))
}

func TestExtract_MissingInput(t *testing.T) {
	require.Nil(t, ExtractTable(nil, sampleHeaders, quietOption()))
	require.Nil(t, ExtractTable(samplePage(), nil, quietOption()))
	require.Nil(t, ExtractTable(samplePage(), []string{}, quietOption()))
	require.Equal(t, Document{}, ExtractDocument(nil, sampleHeaders, quietOption()))

	_, err := NewExtractor(DefaultConfig()).TryExtractDocument([]Detection{}, sampleHeaders)
	require.Equal(t, ErrMissingInput, err)
}

func TestExtract_NothingBelowHeader(t *testing.T) {
	detections := samplePage()[2:6]

	require.Empty(t, ExtractTable(detections, sampleHeaders, quietOption()))

	doc := ExtractDocument(detections, sampleHeaders, quietOption())
	require.Empty(t, doc.Table)
	require.Equal(t, "", doc.Before)
	require.Equal(t, "", doc.After)
}

func TestExtract_Deterministic(t *testing.T) {
	first := ExtractDocument(samplePage(), sampleHeaders, quietOption())
	for range 5 {
		require.Equal(t, first, ExtractDocument(samplePage(), sampleHeaders, quietOption()))
	}
}

func TestExtract_InputUntouched(t *testing.T) {
	detections := samplePage()
	ExtractDocument(detections, sampleHeaders, quietOption())
	require.Equal(t, samplePage(), detections)
}

func TestExtract_RowsInVerticalOrder(t *testing.T) {
	// Rows listed bottom-up in the input
	detections := []Detection{
		det("third", 0, 80, 10, 90),
		det("first", 0, 20, 10, 30),
		det("Key", 0, 0, 10, 10),
		det("second", 0, 50, 10, 60),
	}

	table := ExtractTable(detections, []string{"Key"}, quietOption())
	require.Len(t, table, 3)
	require.Equal(t, "first", table[0].Get("Key"))
	require.Equal(t, "second", table[1].Get("Key"))
	require.Equal(t, "third", table[2].Get("Key"))
}

func TestExtractDocument_PartitionExhaustive(t *testing.T) {
	detections := append(samplePage(),
		det("页眉", 100, -40, 120, -32),   // before, far right
		det("旁注", 100, 2, 120, 12),      // overlaps the header band
		det("footer", 20, 200, 30, 210), // second rejected row
	)

	doc := ExtractDocument(detections, sampleHeaders, quietOption())

	var all []int
	for _, part := range [][]int{doc.Partition.Header, doc.Partition.Table, doc.Partition.After, doc.Partition.Before, doc.Partition.Unplaced} {
		all = append(all, part...)
	}
	sort.Ints(all)

	want := make([]int, len(detections))
	for i := range want {
		want[i] = i
	}
	require.Equal(t, want, all, "every detection must be accounted for exactly once")
	require.Equal(t, []int{17}, doc.Partition.Unplaced)
	require.Equal(t, "页眉\n序号:1\n日期:2025-01-01", doc.Before)
	// Row boundaries are not kept; the large gap becomes a paragraph break
	require.Equal(t, "总计:200\n\nfooter", doc.After)
}

func TestExtractDocument_RendererSkippedWhenEmpty(t *testing.T) {
	calls := 0
	renderer := RendererFunc(func(boxes []Polygon, texts []string) string {
		calls++
		require.NotEmpty(t, boxes)
		require.Len(t, texts, len(boxes))
		return "rendered"
	})

	detections := samplePage()[2:10]
	doc := ExtractDocument(detections, sampleHeaders, WithRenderer(renderer), quietOption())
	require.Equal(t, 0, calls)
	require.Len(t, doc.Table, 1)

	doc = ExtractDocument(samplePage(), sampleHeaders, WithRenderer(renderer), quietOption())
	require.Equal(t, 2, calls)
	require.Equal(t, "rendered", doc.Before)
	require.Equal(t, "rendered", doc.After)
}

func TestExtract_HeaderSortOption(t *testing.T) {
	shuffled := []string{"金额", "项目", "单价", "数量"}

	sorted := ExtractTable(samplePage(), shuffled, WithHeaderSort(true), quietOption())
	require.Equal(t, sampleTable, rowValues(sorted))
	require.Equal(t, sampleHeaders, sorted[0].Labels)

	// Without sorting the first label is 金额 and its band is not where the amounts are
	unsorted := ExtractTable(samplePage(), shuffled, quietOption())
	for _, row := range unsorted {
		require.Equal(t, shuffled, row.Labels)
	}
	require.NotEqual(t, sampleTable, rowValues(unsorted))
}

func TestExtract_RowThresholdFactor(t *testing.T) {
	// A tight threshold splits the wrapped first cell into its own rows
	table := ExtractTable(samplePage(), sampleHeaders, WithRowThresholdFactor(0.4), quietOption())

	require.Len(t, table, 3)
	require.Equal(t, "多", table[1].Get("项目"))
	require.Equal(t, "", table[1].Get("数量"))
	require.Equal(t, "行", table[2].Get("项目"))
}

func TestNewExtractor_FillsDefaults(t *testing.T) {
	e := NewExtractor(Config{})

	require.Equal(t, DefaultRowThresholdFactor, e.Config().RowThresholdFactor)
	require.NotNil(t, e.Config().Renderer)
	require.NotNil(t, e.Config().Logger)
}
