package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"time"

	config "school_backend/configs"
	"school_backend/database"
	"school_backend/grading"
	"school_backend/models"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

type reportCardLine struct {
	Subject     string
	Teacher     string
	Performance string
	GradeLetter string
}

type reportCardData struct {
	StudentName string
	ClassName   string
	IssuedOn    string
	Lines       []reportCardLine
}

// GenerateReportCard renders a student's current grades to PDF, uploads it
// and records the result. Runs in the background off the request path.
func GenerateReportCard(studentID uuid.UUID) (*models.ReportCard, error) {
	var detail models.StudentDetail
	if err := database.DB.Preload("User").Preload("Class").First(&detail, "id = ?", studentID).Error; err != nil {
		return nil, fmt.Errorf("load student %s: %w", studentID, err)
	}

	var grades []models.Grade
	if err := database.DB.Preload("Subject").Preload("Teacher").
		Where("student_id = ?", studentID).Find(&grades).Error; err != nil {
		return nil, fmt.Errorf("load grades for student %s: %w", studentID, err)
	}

	data := reportCardData{
		StudentName: detail.User.Name,
		ClassName:   detail.Class.Name,
		IssuedOn:    time.Now().Format("January 2, 2006"),
	}
	for _, g := range grades {
		data.Lines = append(data.Lines, reportCardLine{
			Subject:     g.Subject.Name,
			Teacher:     g.Teacher.Name,
			Performance: fmt.Sprintf("%.1f", grading.Performance(g.AssignmentMarks, g.QuizMarks, g.PaperMarks)),
			GradeLetter: g.GradeLetter,
		})
	}

	htmlContent, err := renderReportCardHTML(data)
	if err != nil {
		return nil, fmt.Errorf("render report card: %w", err)
	}

	pdfBytes, err := generatePDFFromHTML(htmlContent)
	if err != nil {
		return nil, fmt.Errorf("print report card: %w", err)
	}

	pdfURL, err := uploadPDFToCloudinary(pdfBytes, studentID.String())
	if err != nil {
		return nil, fmt.Errorf("upload report card: %w", err)
	}

	card := models.ReportCard{
		StudentID:   studentID,
		PdfURL:      pdfURL,
		GeneratedAt: time.Now(),
	}
	if err := database.DB.Create(&card).Error; err != nil {
		return nil, fmt.Errorf("save report card record: %w", err)
	}

	log.Printf("✅ Generated report card for student %s", studentID)
	return &card, nil
}

func renderReportCardHTML(data reportCardData) (string, error) {
	tmpl, err := template.ParseFiles("templates/report_card.html")
	if err != nil {
		return "", err
	}

	var rendered bytes.Buffer
	if err := tmpl.Execute(&rendered, data); err != nil {
		return "", err
	}
	return rendered.String(), nil
}

func generatePDFFromHTML(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

func uploadPDFToCloudinary(fileBytes []byte, studentID string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploadParams := uploader.UploadParams{
		PublicID:     fmt.Sprintf("report_cards/%s_%s", studentID, uuid.New().String()),
		Folder:       "school_report_cards",
		ResourceType: "raw",
	}

	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploadParams)
	if err != nil {
		return "", err
	}

	return uploadResult.SecureURL, nil
}
