package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/jkamau589/pet_haven/database"
	"github.com/jkamau589/pet_haven/models"
	"github.com/jkamau589/pet_haven/notifications"
)

const lostReportMaxAgeDays = 30

// ExpireStaleLostReports marks open lost-pet reports older than 30 days as
// expired and lets the reporter know.
func ExpireStaleLostReports() {
	log.Println("Running job: ExpireStaleLostReports...")

	cutoff := time.Now().AddDate(0, 0, -lostReportMaxAgeDays)

	var staleReports []models.LostPetReport
	err := database.DB.
		Preload("Reporter").
		Where("status = ? AND last_seen_at < ?", models.LostReportOpen, cutoff).
		Find(&staleReports).Error
	if err != nil {
		log.Printf("Error checking for stale lost-pet reports: %v", err)
		return
	}

	if len(staleReports) == 0 {
		return
	}

	for _, report := range staleReports {
		report.Status = models.LostReportExpired
		if err := database.DB.Save(&report).Error; err != nil {
			log.Printf("Error expiring report %s: %v", report.ID, err)
			continue
		}
		log.Printf("Expired lost-pet report %s (%s)", report.ID, report.PetName)

		emailSubject := "Your lost pet report has expired"
		emailBody := fmt.Sprintf(
			"<h1>Report Expired</h1><p>Hi %s,</p><p>Your lost pet report for <b>%s</b> has been open for %d days and was automatically marked as expired. If %s is still missing, you can file a new report any time.</p>",
			report.Reporter.FullName, report.PetName, lostReportMaxAgeDays, report.PetName,
		)
		go notifications.SendEmail(report.Reporter.FullName, report.Reporter.Email, emailSubject, emailBody)
	}
}
