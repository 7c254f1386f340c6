package pdf

import (
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"taskly/internal/models"
)

const dateLayout = "02.01.2006 15:04"

// ThreadExporter renders an activity and its comment thread as a printable PDF.
type ThreadExporter struct {
	// FontPath is a TTF used for full UTF-8 output. Empty falls back to the core Helvetica font.
	FontPath string
	fontName string
}

func NewThreadExporter(fontPath string) *ThreadExporter {
	e := &ThreadExporter{FontPath: fontPath, fontName: "Helvetica"}
	if fontPath != "" {
		e.fontName = "DejaVu"
	}
	return e
}

func (e *ThreadExporter) ExportActivity(w io.Writer, item *models.ActivityFeedItem) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Activity #%d", item.ID), true)
	pdf.SetAuthor("taskly", false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)

	tr := func(s string) string { return s }
	if e.FontPath != "" {
		pdf.AddUTF8Font(e.fontName, "", e.FontPath)
		pdf.AddUTF8Font(e.fontName, "B", e.FontPath)
	} else {
		tr = pdf.UnicodeTranslatorFromDescriptor("")
	}
	pdf.AddPage()

	pdf.SetFont(e.fontName, "B", 16)
	pdf.CellFormat(0, 10, tr(item.TaskTitle), "", 1, "L", false, 0, "")
	pdf.SetFont(e.fontName, "", 10)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Task #%d, activity #%d", item.TaskID, item.ID)), "", 1, "L", false, 0, "")
	e.hr(pdf)

	e.kvLine(pdf, tr, "Author", item.AuthorName)
	e.kvLine(pdf, tr, "Logged", item.CreatedAt.Format(dateLayout))
	if item.ImageURL != nil && *item.ImageURL != "" {
		e.kvLine(pdf, tr, "Image", *item.ImageURL)
	}
	pdf.Ln(2)
	pdf.SetFont(e.fontName, "", 11)
	pdf.MultiCell(0, 6, tr(item.Description), "", "L", false)
	pdf.Ln(2)
	e.hr(pdf)

	pdf.SetFont(e.fontName, "B", 12)
	pdf.CellFormat(0, 7, tr(fmt.Sprintf("Discussion (%d)", countNodes(item.Comments))), "", 1, "L", false, 0, "")
	if len(item.Comments) == 0 {
		pdf.SetFont(e.fontName, "", 11)
		pdf.CellFormat(0, 6, "No comments yet.", "", 1, "L", false, 0, "")
	}
	for _, node := range item.Comments {
		e.comment(pdf, tr, node, 0)
	}

	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(e.fontName, "", 9)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render activity %d: %w", item.ID, err)
	}
	return nil
}

// comment writes node and its replies, indenting one step per depth level.
func (e *ThreadExporter) comment(pdf *gofpdf.Fpdf, tr func(string) string, node *models.CommentNode, depth int) {
	left, _, _, _ := pdf.GetMargins()
	indent := float64(depth) * 8
	if indent > 48 {
		indent = 48
	}
	pdf.SetX(left + indent)
	pdf.SetFont(e.fontName, "B", 10)
	head := fmt.Sprintf("%s, %s", node.AuthorName, node.CreatedAt.Format(dateLayout))
	pdf.CellFormat(0, 5, tr(strings.TrimPrefix(head, ", ")), "", 1, "L", false, 0, "")

	pdf.SetX(left + indent)
	pdf.SetFont(e.fontName, "", 10)
	pdf.MultiCell(0, 5, tr(node.Content), "L", "L", false)
	pdf.Ln(1)

	for _, reply := range node.Replies {
		e.comment(pdf, tr, reply, depth+1)
	}
}

func (e *ThreadExporter) kvLine(pdf *gofpdf.Fpdf, tr func(string) string, key, val string) {
	pdf.SetFont(e.fontName, "B", 11)
	pdf.CellFormat(30, 6, key+":", "", 0, "L", false, 0, "")
	pdf.SetFont(e.fontName, "", 11)
	pdf.CellFormat(0, 6, tr(val), "", 1, "L", false, 0, "")
}

func (e *ThreadExporter) hr(pdf *gofpdf.Fpdf) {
	y := pdf.GetY() + 1.5
	pdf.SetLineWidth(0.2)
	pdf.Line(20, y, 190, y)
	pdf.SetY(y + 2)
}

func countNodes(nodes []*models.CommentNode) int {
	n := 0
	for _, node := range nodes {
		n += 1 + countNodes(node.Replies)
	}
	return n
}
