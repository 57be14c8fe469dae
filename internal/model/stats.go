package model

// DashboardStats is the role-specific statistics object. Only the block
// for the caller's role is populated; a role with no defined block gets
// the zero value, never an error.
type DashboardStats struct {
	// admin
	TotalPatients      *int64 `json:"total_patients,omitempty"`
	TotalDoctors       *int64 `json:"total_doctors,omitempty"`
	TotalAppointments  *int64 `json:"total_appointments,omitempty"`
	TotalDepartments   *int64 `json:"total_departments,omitempty"`
	RecentAppointments *int64 `json:"recent_appointments,omitempty"`
	PendingBilling     *int64 `json:"pending_billing,omitempty"`

	// doctor
	MyAppointments    *int64 `json:"my_appointments,omitempty"`
	TodayAppointments *int64 `json:"today_appointments,omitempty"`
	MyPrescriptions   *int64 `json:"my_prescriptions,omitempty"`
	PendingLabTests   *int64 `json:"pending_lab_tests,omitempty"`

	// patient
	MyLabTests *int64 `json:"my_lab_tests,omitempty"`

	// lab
	TotalLabTests     *int64 `json:"total_lab_tests,omitempty"`
	CompletedLabTests *int64 `json:"completed_lab_tests,omitempty"`
}

// Count wraps an int64 for the optional stats fields.
func Count(n int64) *int64 {
	return &n
}
