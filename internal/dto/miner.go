package dto

import "github.com/noah-isme/mineral-licensing-api/internal/models"

// LicenseSummary is the license card shown to a licensed miner.
type LicenseSummary struct {
	LicenseStatus    interface{} `json:"license_status"`
	LicenseNumber    interface{} `json:"license_number"`
	ActiveDate       string      `json:"active_date"`
	PeriodOfValidity interface{} `json:"period_of_validity"`
	Expires          string      `json:"expires"`
}

// RoyaltySummary reports the outstanding royalty.
type RoyaltySummary struct {
	RoyaltyAmountDue interface{} `json:"royalty_amount_due"`
	DueBy            string      `json:"due_by"`
}

// AnnouncementItem is a comment rendered for display.
type AnnouncementItem struct {
	Text interface{} `json:"text"`
	Date string      `json:"date"`
}

// MinerAnnouncements is the licensed miner feed.
type MinerAnnouncements struct {
	Announcements    []AnnouncementItem `json:"announcements"`
	StatusCategories []string           `json:"status_categories"`
}

// AnnouncementFeed is the unlicensed miner feed.
type AnnouncementFeed struct {
	Announcements []AnnouncementItem `json:"announcements"`
}

// ApplicationStatus reports where a miner's application stands.
type ApplicationStatus struct {
	Status  interface{} `json:"status"`
	MinerID string      `json:"miner_id"`
}

// ApplicationDetail wraps the full application row.
type ApplicationDetail struct {
	Application models.Record `json:"application"`
}

// DocumentList wraps a miner's uploaded documents.
type DocumentList struct {
	Documents []models.Record `json:"documents"`
}

// DocumentUploadResult carries the public URL of an uploaded document.
type DocumentUploadResult struct {
	DocumentURL string `json:"document_url"`
}

// LicenseSubmitResult is returned after a license application is stored.
type LicenseSubmitResult struct {
	Rows    []models.Record
	MinerID string
}
