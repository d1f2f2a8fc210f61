package models

// Setting is a process-wide key/value pair, admin-mutable. Values are stored
// as strings and parsed where they are consumed.
type Setting struct {
	Key   string `gorm:"primaryKey;size:64" json:"key"`
	Value string `gorm:"size:255;not null" json:"value"`
}

// Setting keys consumed by the settlement engine.
const (
	SettingAdminCode              = "ADMIN_CODE"
	SettingReferralsNeeded        = "REFERRALS_NEEDED"
	SettingKycRequiredForReferral = "KYC_REQUIRED_FOR_REFERRAL"
)

// TableName overrides the table name
func (Setting) TableName() string {
	return "settings"
}
