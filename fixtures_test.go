package ocrtable

import (
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

var sampleHeaders = []string{"项目", "数量", "单价", "金额"}

func quad(x0, y0, x1, y1 float64) Polygon {
	return RectPolygon(Rect{X0: x0, Y0: y0, X1: x1, Y1: y1})
}

func det(text string, x0, y0, x1, y1 float64) Detection {
	return Detection{Box: quad(x0, y0, x1, y1), Text: text}
}

// samplePage is an invoice: two lines of prose, a four column header, two rows
// (the second with a wrapped first cell) and a trailing total.
func samplePage() []Detection {
	return []Detection{
		// Before the table
		det("序号:1", 0, -30, 40, -20),
		det("日期:2025-01-01", 0, -15, 80, -5),
		// Header
		det("项目", 0, 0, 10, 10),
		det("数量", 20, 0, 30, 10),
		det("单价", 40, 0, 50, 10),
		det("金额", 60, 0, 70, 10),
		// Row 1
		det("A", 0, 15, 10, 25),
		det("1", 20, 15, 30, 25),
		det("100", 40, 15, 50, 25),
		det("100", 60, 15, 70, 25),
		// Row 2, first cell wrapped over two lines
		det("多", 0, 30, 10, 40),
		det("行", 0, 40, 10, 50),
		det("2", 20, 35, 30, 45),
		det("50", 40, 35, 50, 45),
		det("100", 60, 35, 70, 45),
		// After the table
		det("总计:200", 0, 55, 60, 65),
	}
}

func quietLogger() (*logrus.Logger, *logtest.Hook) {
	return logtest.NewNullLogger()
}

func quietOption() Option {
	logger, _ := quietLogger()
	return WithLogger(logger)
}

func rowValues(table []TableRow) []map[string]string {
	out := make([]map[string]string, len(table))
	for i, row := range table {
		out[i] = row.Map()
	}
	return out
}
