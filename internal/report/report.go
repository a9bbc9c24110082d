package report

import (
	_ "embed"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// AttemptReport holds everything printed in an attempt report.
type AttemptReport struct {
	AttemptID     uint
	CandidateName string
	Email         string
	TestTitle     string
	Status        string
	StartTime     time.Time
	EndTime       *time.Time
	Score         *float64
	Questions     []QuestionLine
}

// QuestionLine is one answered or unanswered question of the test.
type QuestionLine struct {
	Order          int
	Content        string
	Type           string
	MaxScore       int
	ScoreAwarded   int
	Answered       bool
	IsCorrect      bool
	SelectedOption []string
	CorrectOption  []string
	TextAnswer     string
}

const (
	timeLayout = "2006-01-02 15:04 MST"
	fontFamily = "DejaVu"
)

// DejaVu covers Latin and Cyrillic, so names and answers are printed as typed.
var (
	//go:embed fonts/DejaVuSans.ttf
	regularFont []byte
	//go:embed fonts/DejaVuSans-Bold.ttf
	boldFont []byte
)

func newDocument() *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddUTF8FontFromBytes(fontFamily, "", regularFont)
	pdf.AddUTF8FontFromBytes(fontFamily, "B", boldFont)
	return pdf
}

// WriteAttemptPDF renders the report as an A4 PDF into w.
func WriteAttemptPDF(w io.Writer, r AttemptReport) error {
	pdf := newDocument()
	render(pdf, r)
	return pdf.Output(w)
}

func render(pdf *gofpdf.Fpdf, r AttemptReport) {
	pdf.SetTitle(fmt.Sprintf("Attempt %d report", r.AttemptID), true)
	pdf.AddPage()

	pdf.SetFont(fontFamily, "B", 16)
	pdf.MultiCell(0, 10, "Test attempt report", "", "L", false)
	pdf.Ln(4)

	pdf.SetFont(fontFamily, "", 12)
	end := "-"
	if r.EndTime != nil {
		end = r.EndTime.Format(timeLayout)
	}
	score := "-"
	if r.Score != nil {
		score = fmt.Sprintf("%.2f%%", *r.Score)
	}
	info := fmt.Sprintf("Candidate: %s\nEmail: %s\nTest: %s\nStatus: %s\nStarted: %s\nFinished: %s\nScore: %s\n",
		r.CandidateName, r.Email, r.TestTitle, r.Status, r.StartTime.Format(timeLayout), end, score)
	pdf.MultiCell(0, 8, info, "", "L", false)
	pdf.Ln(4)

	for _, q := range r.Questions {
		pdf.SetFont(fontFamily, "B", 12)
		pdf.MultiCell(0, 8, fmt.Sprintf("Question %d (%s, %d/%d):", q.Order, q.Type, q.ScoreAwarded, q.MaxScore), "", "L", false)

		pdf.SetFont(fontFamily, "", 12)
		pdf.MultiCell(0, 8, q.Content, "", "L", false)
		pdf.Ln(2)

		var lines []string
		switch {
		case !q.Answered:
			lines = append(lines, "Answer: (no answer)")
		case q.Type == "TEXT":
			lines = append(lines, "Answer: "+q.TextAnswer, "Not graded automatically.")
		default:
			lines = append(lines,
				"Answer: "+strings.Join(q.SelectedOption, "; "),
				"Correct: "+strings.Join(q.CorrectOption, "; "))
		}
		if q.Answered && q.Type != "TEXT" && !q.IsCorrect {
			lines = append(lines, "Result: incorrect")
		}
		pdf.MultiCell(0, 8, strings.Join(lines, "\n"), "", "L", false)
		pdf.Ln(4)
	}
}
