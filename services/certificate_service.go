package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"time"

	config "github.com/jkamau589/pet_haven/configs"
	"github.com/jkamau589/pet_haven/database"
	"github.com/jkamau589/pet_haven/models"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// GenerateAdoptionCertificate renders and uploads the keepsake PDF for a
// completed adoption, then stores its URL on the adoption record. Runs in
// the background; failures are logged and the adoption stands without a
// certificate.
func GenerateAdoptionCertificate(record models.AdoptionRecord, pet models.Pet, adopter models.User) {
	htmlData, err := generateCertificateHTML(adopter.FullName, pet.Name, pet.Species)
	if err != nil {
		log.Printf("🔥 Failed to generate certificate HTML: %v", err)
		return
	}

	pdfBytes, err := generatePDFFromHTML(htmlData)
	if err != nil {
		log.Printf("🔥 Failed to generate PDF: %v", err)
		return
	}

	uploadURL, err := uploadToCloudinary(pdfBytes, record.AdopterID.String())
	if err != nil {
		log.Printf("🔥 Failed to upload certificate to Cloudinary: %v", err)
		return
	}

	record.CertificateURL = &uploadURL
	if err := database.DB.Save(&record).Error; err != nil {
		log.Printf("🔥 Failed to store certificate URL for adoption %s: %v", record.ID, err)
		return
	}
	log.Printf("✅ Generated adoption certificate for pet %s and adopter %s.", pet.Name, adopter.FullName)
}

func generateCertificateHTML(adopterName, petName, species string) (string, error) {
	tmpl, err := template.ParseFiles("templates/adoption_certificate.html")
	if err != nil {
		return "", err
	}

	data := struct {
		AdopterName  string
		PetName      string
		Species      string
		AdoptionDate string
	}{
		AdopterName:  adopterName,
		PetName:      petName,
		Species:      species,
		AdoptionDate: time.Now().Format("January 2, 2006"),
	}

	var renderedHTML bytes.Buffer
	if err := tmpl.Execute(&renderedHTML, data); err != nil {
		return "", err
	}
	return renderedHTML.String(), nil
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

func uploadToCloudinary(fileBytes []byte, adopterID string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploadParams := uploader.UploadParams{
		PublicID:     fmt.Sprintf("certificates/%s_%s", adopterID, uuid.New().String()),
		Folder:       "pet_haven_certificates",
		ResourceType: "raw",
	}

	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploadParams)
	if err != nil {
		return "", err
	}

	return uploadResult.SecureURL, nil
}
