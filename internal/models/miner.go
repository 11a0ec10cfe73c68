package models

// Tables read on behalf of a miner.
const (
	TableUsers     = "users"
	TableDocuments = "documents"
	TableRoyalty   = "royalty"
	TableComments  = "comments"
)

// users columns.
const (
	UserID            = "id"
	UserLicenseStatus = "license_status"
	UserActiveDate    = "active_date"
)

// LicenseStatusPending is set when a miner submits an application.
const LicenseStatusPending = "pending"

// documents columns.
const (
	DocumentMinerID    = "miner_id"
	DocumentName       = "document_name"
	DocumentType       = "document_type"
	DocumentURL        = "document_url"
	DocumentUploadDate = "upload_date"
	DocumentStatus     = "status"
)

// DocumentStatusPendingReview marks a freshly uploaded document.
const DocumentStatusPendingReview = "pending_review"

// royalty columns.
const (
	RoyaltyMinerID     = "miner_id"
	RoyaltyTotalAmount = "total_amount"
)

// comments columns. Comments are shown to miners as announcements.
const (
	CommentMinerID   = "miner_id"
	CommentText      = "text"
	CommentCreatedAt = "created_at"
)
