package models

// TableApplication holds mining license applications, one or more per miner.
const TableApplication = "application"

// Application columns referenced directly by the services.
const (
	ApplicationMinerID              = "miner_id"
	ApplicationStatus               = "status"
	ApplicationExplorationLicenseNo = "exploration_license_no"
	ApplicationPeriodOfValidity     = "period_of_validity"
	ApplicationCreatedAt            = "created_at"
)

// ApplicationStatus values.
const (
	ApplicationStatusPending   = "pending"
	ApplicationStatusSubmitted = "submitted"
	ApplicationStatusCompleted = "completed"
	ApplicationStatusApproved  = "approved"
)

// ApplicationTextFields are copied from the submission as-is.
var ApplicationTextFields = []string{
	"exploration_license_no",
	"applicant_name",
	"national_id",
	"company_name",
	"company_registration_no",
	"address",
	"phone_number",
	"email",
	"mineral_type",
	"mining_method",
	"site_location",
	"district",
	"period_of_validity",
}

// ApplicationNumericFields hold loosely formatted numbers ("$1,200 USD",
// "35%") that are normalized before insert.
var ApplicationNumericFields = []string{
	"area_of_license",
	"estimated_investment",
	"expected_production",
	"local_ownership",
	"employment_count",
	"expected_annual_revenue",
}

// ApplicationFileFields are supporting documents stored as public URLs.
var ApplicationFileFields = []string{
	"articles_of_association",
	"annual_reports",
	"licensed_boundary_survey",
	"environmental_impact_assessment",
	"mining_plan",
	"tax_clearance_certificate",
	"national_id_copy",
}

// ApplicationRequiredFields must be present and non-blank on submission.
var ApplicationRequiredFields = []string{
	"exploration_license_no",
	"applicant_name",
	"national_id",
	"company_name",
	"mineral_type",
	"period_of_validity",
}

// StatusCategories lists the application statuses shown on the miner page.
var StatusCategories = []string{"Pending", "Submitted", "Completed", "Approved"}
