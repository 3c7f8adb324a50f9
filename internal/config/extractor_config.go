package config

// ExtractorConfig defines how the widget is located within fetched markup
// and how availability is decided.
type ExtractorConfig struct {
	// WidgetID is the element id of the monitored widget, matched
	// case-insensitively.
	WidgetID string `json:"widget_id,omitempty" yaml:"widget_id,omitempty" validate:"omitempty,min=1"`
	// SentinelText marks explicit absence of listings. The match is a
	// case-sensitive substring check.
	SentinelText string `json:"sentinel_text,omitempty" yaml:"sentinel_text,omitempty" validate:"omitempty,min=1"`
	// WidgetTokens drive the loose id/class fallback locator.
	WidgetTokens []string `json:"widget_tokens,omitempty" yaml:"widget_tokens,omitempty"`
	// TableKeywords drive the last-resort table scan locator.
	TableKeywords []string `json:"table_keywords,omitempty" yaml:"table_keywords,omitempty"`
	// TreatBlankWidgetAsEmpty controls the policy for a located widget
	// that carries neither the sentinel nor any text. When false (the
	// default) such a widget counts as AVAILABLE with a placeholder item;
	// when true it counts as EMPTY.
	TreatBlankWidgetAsEmpty bool `json:"treat_blank_widget_as_empty" yaml:"treat_blank_widget_as_empty"`
}

// NewDefaultExtractorConfig creates default extractor configuration
func NewDefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		WidgetID:      DefaultWidgetID,
		SentinelText:  DefaultSentinelText,
		WidgetTokens:  []string{"opportunity", "announcement", "widget"},
		TableKeywords: []string{"opportunity", "announcement", "program"},
	}
}
