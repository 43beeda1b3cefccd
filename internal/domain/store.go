package domain

import "time"

// Store is a seller storefront. Each user owns at most one store and names are unique.
type Store struct {
	ID          string
	OwnerID     string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OwnerUserID implements ownership checks.
func (s *Store) OwnerUserID() string { return s.OwnerID }

// OwningStoreID lets a store be checked with the store-scoped guard.
func (s *Store) OwningStoreID() string { return s.ID }

// ThemeCustomization is the 1:1 storefront theme of a store. It has no owner field of
// its own; ownership is resolved through the store.
type ThemeCustomization struct {
	ID        string
	StoreID   string
	Settings  ThemeSettings
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OwningStoreID implements store-scoped ownership checks.
func (t *ThemeCustomization) OwningStoreID() string { return t.StoreID }

// ThemeSettings holds every storefront styling knob. It is persisted as a JSON document.
type ThemeSettings struct {
	Theme string `json:"theme,omitempty"`

	FontFamily        string `json:"fontFamily,omitempty"`
	FontSize          string `json:"fontSize,omitempty"`
	FontColor         string `json:"fontColor,omitempty"`
	HeadingFontFamily string `json:"headingFontFamily,omitempty"`
	HeadingFontSize   string `json:"headingFontSize,omitempty"`
	HeadingFontColor  string `json:"headingFontColor,omitempty"`

	BackgroundColor     string `json:"backgroundColor,omitempty"`
	BackgroundColor2    string `json:"backgroundColor2,omitempty"`
	TextColor           string `json:"textColor,omitempty"`
	AccentColor         string `json:"accentColor,omitempty"`
	BorderColor         string `json:"borderColor,omitempty"`
	CardBackgroundColor string `json:"cardBackgroundColor,omitempty"`

	ButtonColor          string `json:"buttonColor,omitempty"`
	ButtonTextColor      string `json:"buttonTextColor,omitempty"`
	ButtonHoverColor     string `json:"buttonHoverColor,omitempty"`
	ButtonHoverTextColor string `json:"buttonHoverTextColor,omitempty"`
	ButtonBorderRadius   string `json:"buttonBorderRadius,omitempty"`

	NavBarColor      string `json:"navBarColor,omitempty"`
	NavBarTextColor  string `json:"navBarTextColor,omitempty"`
	NavBarHoverColor string `json:"navBarHoverColor,omitempty"`

	LinkColor      string `json:"linkColor,omitempty"`
	LinkHoverColor string `json:"linkHoverColor,omitempty"`

	ErrorColor   string `json:"errorColor,omitempty"`
	SuccessColor string `json:"successColor,omitempty"`
	WarningColor string `json:"warningColor,omitempty"`

	BorderRadius      string `json:"borderRadius,omitempty"`
	ProductGridLayout string `json:"productGridLayout,omitempty"`
	ContainerWidth    string `json:"containerWidth,omitempty"`

	BannerImage string `json:"bannerImage,omitempty"`
	FooterImage string `json:"footerImage,omitempty"`
	LogoImage   string `json:"logoImage,omitempty"`
	AboutImage  string `json:"aboutImage,omitempty"`
	Favicon     string `json:"favicon,omitempty"`

	BannerText string `json:"bannerText,omitempty"`
	FooterText string `json:"footerText,omitempty"`
}
