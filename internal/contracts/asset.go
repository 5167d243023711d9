package contracts

import "time"

// AssetType classifies an instrument for display/grouping purposes
type AssetType string

const (
	AssetTypeCNIndex AssetType = "cn_index"
	AssetTypeUSIndex AssetType = "us_index"
	AssetTypeGold    AssetType = "gold"
	AssetTypeBond    AssetType = "bond"
	AssetTypeCash    AssetType = "cash"
	AssetTypeOther   AssetType = "other"
)

// Asset is one instrument in the user's target portfolio.
// Immutable within a single planning run.
type Asset struct {
	ID          string    `json:"id,omitempty"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	Type        AssetType `json:"type"`
	Market      string    `json:"market,omitempty"` // "US", "CN", ...
	Weight      float64   `json:"weight"`           // target weight in [0,1]; invalid → 1.0 before normalization
	Description string    `json:"description,omitempty"`
}

// UserConfig is the per-user planning configuration
// ⭐ SSOT: 사용자 설정 구조는 여기서만 정의
type UserConfig struct {
	UserID            string    `json:"user_id"`
	MonthlyInvestment float64   `json:"monthly_investment"`
	BufferAmount      float64   `json:"buffer_amount"` // reserve pool, outside the monthly budget
	Assets            []Asset   `json:"assets"`
	CreatedAt         time.Time `json:"created_at,omitempty"`
	UpdatedAt         time.Time `json:"updated_at,omitempty"`
}
