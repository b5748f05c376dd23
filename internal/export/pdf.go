// Package export renders a single complaint as a downloadable PDF document.
package export

import (
	"io"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/Manikandankb2403/College-Complaint-Management-System/internal/models"
)

// ComplaintPDF writes the formatted document for one complaint to w.
// assigneeName is the resolved display name of the current assignee, or
// "Unassigned".
func ComplaintPDF(w io.Writer, c *models.Complaint, assigneeName string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 10, "Complaint Details", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, "College Complaint Management System", "", 1, "C", false, 0, "")
	pdf.Ln(6)

	line := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(45, 8, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 12)
		pdf.MultiCell(0, 8, value, "", "L", false)
	}

	line("Department No:", c.DeptNo)
	line("Department:", c.Department)
	line("Category:", c.Category)
	line("Details:", c.Details)
	line("Status:", strings.ToUpper(strings.ReplaceAll(string(c.Status), "_", " ")))
	line("Assigned To:", assigneeName)
	line("Submitted On:", c.CreatedAt.Format("02 Jan 2006"))
	line("Last Updated:", c.UpdatedAt.Format("02 Jan 2006"))

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.CellFormat(0, 8, "Generated on "+time.Now().Format("02 Jan 2006"), "", 1, "C", false, 0, "")

	return pdf.Output(w)
}
