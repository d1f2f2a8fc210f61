package settlement

import (
	"strconv"

	"gorm.io/gorm"

	"github.com/etherdox/ethersms/models"
)

const (
	defaultReferralsNeeded        = 20
	defaultKycRequiredForReferral = true
)

// Settings is the typed view of the admin-mutable settings rows the
// settlement engine consumes. Values are stored as strings; unparsable or
// missing rows fall back to the defaults.
type Settings struct {
	AdminCode              string
	ReferralsNeeded        int
	KycRequiredForReferral bool
}

// LoadSettings reads the settings table through the given handle, which may
// be a transaction so the values are consistent with the rest of the
// operation.
func LoadSettings(db *gorm.DB) Settings {
	s := Settings{
		ReferralsNeeded:        defaultReferralsNeeded,
		KycRequiredForReferral: defaultKycRequiredForReferral,
	}

	var rows []models.Setting
	if err := db.Find(&rows).Error; err != nil {
		return s
	}

	for _, row := range rows {
		switch row.Key {
		case models.SettingAdminCode:
			s.AdminCode = row.Value
		case models.SettingReferralsNeeded:
			if n, err := strconv.Atoi(row.Value); err == nil && n > 0 {
				s.ReferralsNeeded = n
			}
		case models.SettingKycRequiredForReferral:
			s.KycRequiredForReferral = row.Value == "true"
		}
	}

	return s
}
