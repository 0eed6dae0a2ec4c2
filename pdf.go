package ocrtable

import (
	"math"
	"unicode"

	"github.com/klippa-app/go-pdfium"
	"github.com/klippa-app/go-pdfium/references"
	"github.com/klippa-app/go-pdfium/requests"
	"github.com/pkg/errors"
)

// pdfChar is a single character from a PDF text layer.
type pdfChar struct {
	Text rune
	Box  Rect
}

// ExtractPDFDetections turns the text layer of a loaded page into word detections,
// so born-digital PDFs can go through the same pipeline as OCR output.
func ExtractPDFDetections(instance pdfium.Pdfium, page references.FPDF_PAGE) ([]Detection, error) {
	pageHeight, err := instance.FPDF_GetPageHeightF(&requests.FPDF_GetPageHeightF{
		Page: requests.Page{
			ByReference: &page,
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get page size")
	}

	textPage, err := instance.FPDFText_LoadPage(&requests.FPDFText_LoadPage{
		Page: requests.Page{
			ByReference: &page,
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load text page")
	}
	defer instance.FPDFText_ClosePage(&requests.FPDFText_ClosePage{
		TextPage: textPage.TextPage,
	})

	charCount, err := instance.FPDFText_CountChars(&requests.FPDFText_CountChars{
		TextPage: textPage.TextPage,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to count characters")
	}

	chars := make([]pdfChar, 0, charCount.Count)
	for i := range charCount.Count {
		unicodeRes, err := instance.FPDFText_GetUnicode(&requests.FPDFText_GetUnicode{
			TextPage: textPage.TextPage,
			Index:    i,
		})
		if err != nil || unicodeRes.Unicode == 0 {
			continue
		}

		charBox, err := instance.FPDFText_GetCharBox(&requests.FPDFText_GetCharBox{
			TextPage: textPage.TextPage,
			Index:    i,
		})
		if err != nil {
			continue
		}

		// Convert PDF coordinates (origin bottom-left) to image coordinates (origin top-left)
		height := float64(pageHeight.PageHeight)
		chars = append(chars, pdfChar{
			Text: rune(unicodeRes.Unicode),
			Box: Rect{
				X0: charBox.Left,
				Y0: height - charBox.Top,
				X1: charBox.Right,
				Y1: height - charBox.Bottom,
			},
		})
	}

	return groupCharsIntoWords(chars), nil
}

// LoadPDFDetections opens a PDF file and returns the word detections of one page (0-indexed).
func LoadPDFDetections(instance pdfium.Pdfium, filePath string, pageIndex int) ([]Detection, error) {
	pages, err := loadPDFPages(instance, filePath, pageIndex, pageIndex)
	if err != nil {
		return nil, err
	}
	return pages[0], nil
}

// LoadPDFPages opens a PDF file and returns word detections for every page.
func LoadPDFPages(instance pdfium.Pdfium, filePath string) ([][]Detection, error) {
	return loadPDFPages(instance, filePath, 0, -1)
}

func loadPDFPages(instance pdfium.Pdfium, filePath string, startPage, endPage int) ([][]Detection, error) {
	doc, err := instance.OpenDocument(&requests.OpenDocument{
		FilePath: &filePath,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open PDF document")
	}
	defer instance.FPDF_CloseDocument(&requests.FPDF_CloseDocument{
		Document: doc.Document,
	})

	pageCount, err := instance.FPDF_GetPageCount(&requests.FPDF_GetPageCount{
		Document: doc.Document,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get page count")
	}

	if endPage < 0 || endPage >= pageCount.PageCount {
		endPage = pageCount.PageCount - 1
	}
	if startPage < 0 || startPage > endPage {
		return nil, errors.Errorf("invalid page range %d-%d for %d pages", startPage, endPage, pageCount.PageCount)
	}

	var pages [][]Detection
	for i := startPage; i <= endPage; i++ {
		pageResp, err := instance.FPDF_LoadPage(&requests.FPDF_LoadPage{
			Document: doc.Document,
			Index:    i,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to load page %d", i+1)
		}

		detections, err := ExtractPDFDetections(instance, pageResp.Page)
		instance.FPDF_ClosePage(&requests.FPDF_ClosePage{
			Page: pageResp.Page,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to extract page %d", i+1)
		}
		pages = append(pages, detections)
	}

	return pages, nil
}

// groupCharsIntoWords merges characters in content order into word detections.
// A word ends at whitespace, when the next character leaves the word's line, or
// when the horizontal gap exceeds the word's average character width.
func groupCharsIntoWords(chars []pdfChar) []Detection {
	var words []Detection
	var current []rune
	var box Rect
	var widthSum float64

	flush := func() {
		if len(current) > 0 {
			words = append(words, Detection{Box: RectPolygon(box), Text: string(current)})
		}
		current = nil
		widthSum = 0
	}

	for _, char := range chars {
		if unicode.IsSpace(char.Text) {
			flush()
			continue
		}

		if len(current) > 0 {
			avgWidth := widthSum / float64(len(current))
			sameLine := math.Abs(char.Box.CenterY()-box.CenterY()) <= box.Height()/2
			gap := char.Box.X0 - box.X1
			if !sameLine || gap > avgWidth || gap < -avgWidth {
				flush()
			}
		}

		if len(current) == 0 {
			box = char.Box
		} else {
			box.X0 = math.Min(box.X0, char.Box.X0)
			box.Y0 = math.Min(box.Y0, char.Box.Y0)
			box.X1 = math.Max(box.X1, char.Box.X1)
			box.Y1 = math.Max(box.Y1, char.Box.Y1)
		}
		current = append(current, char.Text)
		widthSum += char.Box.Width()
	}
	flush()

	return words
}
