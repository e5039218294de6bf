// Package pdf renders student portfolios as PDF documents.
package pdf

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/studenthub/backend/internal/app/models/dto"
)

// RenderPortfolio renders a verified achievement portfolio. Activities
// are grouped by type, each group under its own heading.
func RenderPortfolio(p *dto.PortfolioResponse) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(18, 18, 18)
	doc.AddPage()

	// Title block
	doc.SetFont("Helvetica", "B", 20)
	doc.CellFormat(0, 12, "Student Achievement Portfolio", "", 1, "C", false, 0, "")
	doc.SetFont("Helvetica", "", 11)
	doc.CellFormat(0, 7, p.Student.Name, "", 1, "C", false, 0, "")

	meta := p.Student.Email
	if p.Student.StudentID != nil {
		meta = *p.Student.StudentID + "  |  " + meta
	}
	if p.Student.Department != nil {
		meta += "  |  " + *p.Student.Department
	}
	doc.SetTextColor(90, 90, 90)
	doc.CellFormat(0, 6, meta, "", 1, "C", false, 0, "")
	doc.SetTextColor(0, 0, 0)
	doc.Ln(4)

	// Summary line
	doc.SetFont("Helvetica", "B", 12)
	doc.CellFormat(0, 8, "Summary", "B", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 11)
	doc.CellFormat(0, 7,
		fmt.Sprintf("Approved activities: %d        Total credits earned: %d",
			p.Summary.TotalActivities, p.Summary.TotalCredits),
		"", 1, "L", false, 0, "")
	doc.Ln(4)

	// Stable section order across renders
	types := make([]string, 0, len(p.Activities))
	for t := range p.Activities {
		types = append(types, t)
	}
	sort.Strings(types)

	for _, t := range types {
		doc.SetFont("Helvetica", "B", 13)
		doc.SetFillColor(235, 238, 245)
		doc.CellFormat(0, 9, sectionTitle(t), "", 1, "L", true, 0, "")
		doc.Ln(1)

		for _, a := range p.Activities[t] {
			doc.SetFont("Helvetica", "B", 11)
			doc.CellFormat(130, 6, a.Title, "", 0, "L", false, 0, "")
			doc.SetFont("Helvetica", "", 10)
			doc.CellFormat(0, 6, fmt.Sprintf("%d credits", a.Credits), "", 1, "R", false, 0, "")

			doc.SetTextColor(90, 90, 90)
			doc.SetFont("Helvetica", "", 9)
			detail := a.Date.Format("January 2, 2006")
			if a.Organizer != nil {
				detail += "  |  " + *a.Organizer
			}
			if a.Duration != nil {
				detail += "  |  " + *a.Duration
			}
			doc.CellFormat(0, 5, detail, "", 1, "L", false, 0, "")
			doc.SetTextColor(0, 0, 0)

			if a.Description != "" {
				doc.SetFont("Helvetica", "", 10)
				doc.MultiCell(0, 5, a.Description, "", "L", false)
			}
			doc.Ln(3)
		}
		doc.Ln(2)
	}

	doc.SetY(-22)
	doc.SetFont("Helvetica", "I", 8)
	doc.SetTextColor(120, 120, 120)
	doc.CellFormat(0, 5,
		fmt.Sprintf("Generated on %s. All listed activities were verified by faculty.",
			time.Now().Format("January 2, 2006")),
		"", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render portfolio pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func sectionTitle(activityType string) string {
	titles := map[string]string{
		"conference":    "Conferences",
		"workshop":      "Workshops",
		"certification": "Certifications",
		"club_activity": "Club Activities",
		"volunteering":  "Volunteering",
		"competition":   "Competitions",
		"leadership":    "Leadership",
		"internship":    "Internships",
	}
	if t, ok := titles[activityType]; ok {
		return t
	}
	return activityType
}
